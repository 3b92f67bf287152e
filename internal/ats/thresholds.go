package ats

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Thresholds holds the tunable cut points used by the checks.
type Thresholds struct {
	WordCount   WordCountThresholds   `yaml:"wordCount" json:"wordCount"`
	ActionVerbs RatioThresholds       `yaml:"actionVerbs" json:"actionVerbs"`
	Metrics     CountThresholds       `yaml:"metrics" json:"metrics"`
	Formatting  FormattingThresholds  `yaml:"formatting" json:"formatting"`
	Keywords    KeywordThresholds     `yaml:"keywords" json:"keywords"`
	Pronouns    PronounThresholds     `yaml:"pronouns" json:"pronouns"`
	Readability ReadabilityThresholds `yaml:"readability" json:"readability"`
}

// WordCountThresholds: below Min fails, [Min, Ideal) warns, [Ideal, Max] passes,
// (Max, Long] warns, above Long warns as excessive.
type WordCountThresholds struct {
	Min   int `yaml:"min" json:"min"`
	Ideal int `yaml:"ideal" json:"ideal"`
	Max   int `yaml:"max" json:"max"`
	Long  int `yaml:"long" json:"long"`
}

// RatioThresholds: ratio >= Pass passes, >= Warn warns.
type RatioThresholds struct {
	Pass float64 `yaml:"pass" json:"pass"`
	Warn float64 `yaml:"warn" json:"warn"`
}

// CountThresholds: count >= Pass passes, >= Warn warns.
type CountThresholds struct {
	Pass int `yaml:"pass" json:"pass"`
	Warn int `yaml:"warn" json:"warn"`
}

// FormattingThresholds controls the ATS-unfriendly formatting check.
type FormattingThresholds struct {
	UnusualCharLimit  int `yaml:"unusualCharLimit" json:"unusualCharLimit"`
	AllCapsLineLength int `yaml:"allCapsLineLength" json:"allCapsLineLength"`
	AllCapsLineLimit  int `yaml:"allCapsLineLimit" json:"allCapsLineLimit"`
	FailIssues        int `yaml:"failIssues" json:"failIssues"`
}

// KeywordThresholds controls the job-description keyword check.
type KeywordThresholds struct {
	Pass            float64 `yaml:"pass" json:"pass"`
	Warn            float64 `yaml:"warn" json:"warn"`
	MaxMissingTerms int     `yaml:"maxMissingTerms" json:"maxMissingTerms"`
}

// PronounThresholds: zero passes, up to WarnMax warns.
type PronounThresholds struct {
	WarnMax int `yaml:"warnMax" json:"warnMax"`
}

// ReadabilityThresholds controls sentence-length scoring.
type ReadabilityThresholds struct {
	MinSentenceChars  int     `yaml:"minSentenceChars" json:"minSentenceChars"`
	LongSentenceWords int     `yaml:"longSentenceWords" json:"longSentenceWords"`
	PassAvgWords      float64 `yaml:"passAvgWords" json:"passAvgWords"`
	PassAvgWordLength float64 `yaml:"passAvgWordLength" json:"passAvgWordLength"`
	WarnAvgWords      float64 `yaml:"warnAvgWords" json:"warnAvgWords"`
	WarnLongSentences int     `yaml:"warnLongSentences" json:"warnLongSentences"`
}

// DefaultThresholds returns the reference thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		WordCount:   WordCountThresholds{Min: 200, Ideal: 400, Max: 800, Long: 1200},
		ActionVerbs: RatioThresholds{Pass: 0.5, Warn: 0.25},
		Metrics:     CountThresholds{Pass: 5, Warn: 2},
		Formatting: FormattingThresholds{
			UnusualCharLimit:  10,
			AllCapsLineLength: 30,
			AllCapsLineLimit:  2,
			FailIssues:        3,
		},
		Keywords: KeywordThresholds{Pass: 0.6, Warn: 0.35, MaxMissingTerms: 8},
		Pronouns: PronounThresholds{WarnMax: 3},
		Readability: ReadabilityThresholds{
			MinSentenceChars:  5,
			LongSentenceWords: 30,
			PassAvgWords:      20,
			PassAvgWordLength: 7,
			WarnAvgWords:      25,
			WarnLongSentences: 2,
		},
	}
}

// LoadThresholds reads a YAML file and overlays it on the defaults. Keys that
// are absent keep their default value.
func LoadThresholds(path string) (Thresholds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Thresholds{}, fmt.Errorf("read thresholds %s: %w", path, err)
	}
	return ParseThresholds(data)
}

// ParseThresholds decodes YAML thresholds over the defaults and validates them.
func ParseThresholds(data []byte) (Thresholds, error) {
	t := DefaultThresholds()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Thresholds{}, fmt.Errorf("parse thresholds: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Thresholds{}, err
	}
	return t, nil
}

// Validate checks that cut points keep their relative ordering.
func (t Thresholds) Validate() error {
	var errs []error
	wc := t.WordCount
	if !(0 < wc.Min && wc.Min <= wc.Ideal && wc.Ideal <= wc.Max && wc.Max <= wc.Long) {
		errs = append(errs, fmt.Errorf("wordCount must satisfy 0 < min <= ideal <= max <= long, got %d/%d/%d/%d", wc.Min, wc.Ideal, wc.Max, wc.Long))
	}
	if err := validateRatio("actionVerbs", t.ActionVerbs.Pass, t.ActionVerbs.Warn); err != nil {
		errs = append(errs, err)
	}
	if err := validateRatio("keywords", t.Keywords.Pass, t.Keywords.Warn); err != nil {
		errs = append(errs, err)
	}
	if t.Metrics.Warn < 0 || t.Metrics.Warn > t.Metrics.Pass {
		errs = append(errs, fmt.Errorf("metrics must satisfy 0 <= warn <= pass, got warn=%d pass=%d", t.Metrics.Warn, t.Metrics.Pass))
	}
	if t.Keywords.MaxMissingTerms < 0 {
		errs = append(errs, errors.New("keywords.maxMissingTerms must not be negative"))
	}
	f := t.Formatting
	if f.UnusualCharLimit < 0 || f.AllCapsLineLength <= 0 || f.AllCapsLineLimit < 0 || f.FailIssues <= 1 {
		errs = append(errs, errors.New("formatting thresholds out of range"))
	}
	if t.Pronouns.WarnMax < 0 {
		errs = append(errs, errors.New("pronouns.warnMax must not be negative"))
	}
	r := t.Readability
	if r.MinSentenceChars < 0 || r.LongSentenceWords <= 0 || r.PassAvgWords <= 0 || r.PassAvgWordLength <= 0 || r.WarnAvgWords < r.PassAvgWords || r.WarnLongSentences < 0 {
		errs = append(errs, errors.New("readability thresholds out of range"))
	}
	return errors.Join(errs...)
}

func validateRatio(name string, pass, warn float64) error {
	if warn < 0 || warn > pass || pass > 1 {
		return fmt.Errorf("%s must satisfy 0 <= warn <= pass <= 1, got warn=%.2f pass=%.2f", name, warn, pass)
	}
	return nil
}
