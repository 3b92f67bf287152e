// Package ats scores plain resume text against heuristics commonly attributed
// to applicant tracking systems.
//
// Analysis is synchronous and allocation-local: an Analyzer holds only
// immutable thresholds and the pattern tables are read-only, so a single
// Analyzer can be shared by any number of goroutines.
package ats

import (
	"math"
	"strings"
)

// Analyzer runs every check with a fixed set of thresholds.
type Analyzer struct {
	thresholds Thresholds
}

var defaultAnalyzer = &Analyzer{thresholds: DefaultThresholds()}

// New returns an Analyzer using the given thresholds after validating them.
func New(t Thresholds) (*Analyzer, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{thresholds: t}, nil
}

// Default returns the shared Analyzer configured with DefaultThresholds.
func Default() *Analyzer {
	return defaultAnalyzer
}

// Thresholds returns a copy of the analyzer's thresholds.
func (a *Analyzer) Thresholds() Thresholds {
	return a.limits()
}

// limits returns the thresholds the checks run with. A nil or zero Analyzer
// uses DefaultThresholds.
func (a *Analyzer) limits() Thresholds {
	if a == nil || a.thresholds == (Thresholds{}) {
		return defaultAnalyzer.thresholds
	}
	return a.thresholds
}

// Analyze scores resumeText with the default thresholds. When jobDescription
// is blank the keyword-match check is omitted.
func Analyze(resumeText, jobDescription string) Result {
	return defaultAnalyzer.Analyze(resumeText, jobDescription)
}

// Analyze runs all checks in a fixed order and computes the weighted score.
func (a *Analyzer) Analyze(resumeText, jobDescription string) Result {
	checks := make([]Finding, 0, 13)
	checks = append(checks,
		a.checkContactInfo(resumeText),
		a.checkSection(CheckSectionSummary, "Summary", weightSectionSummary, sectionSummaryRe, resumeText),
		a.checkSection(CheckSectionExperience, "Experience", weightSectionExperience, sectionExperienceRe, resumeText),
		a.checkSection(CheckSectionEducation, "Education", weightSectionEducation, sectionEducationRe, resumeText),
		a.checkSection(CheckSectionSkills, "Skills", weightSectionSkills, sectionSkillsRe, resumeText),
		a.checkWordCount(resumeText),
		a.checkActionVerbs(resumeText),
		a.checkMetrics(resumeText),
		a.checkFormatting(resumeText),
	)
	if f, ok := a.checkKeywordMatch(resumeText, jobDescription); ok {
		checks = append(checks, f)
	}
	checks = append(checks,
		a.checkDateFormat(resumeText),
		a.checkPronouns(resumeText),
		a.checkReadability(resumeText),
	)
	return Result{Score: Score(checks), Checks: checks}
}

// Score computes round(100 * earned / total) where a pass earns the full
// weight, a warning half and a fail nothing.
func Score(checks []Finding) int {
	total, earned := 0.0, 0.0
	for _, f := range checks {
		w := float64(f.Weight)
		total += w
		switch f.Status {
		case StatusPass:
			earned += w
		case StatusWarning:
			earned += w * 0.5
		}
	}
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * earned / total))
}

// HasJobDescription reports whether jobDescription would enable the keyword check.
func HasJobDescription(jobDescription string) bool {
	return strings.TrimSpace(jobDescription) != ""
}
