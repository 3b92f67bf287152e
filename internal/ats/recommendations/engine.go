package recommendations

import (
	"sort"
	"strings"
	"unicode"

	"resume-ats/internal/ats"
)

// maxRecommendations caps the list returned to callers.
const maxRecommendations = 7

// FromResult converts an analysis result into engine input. Passing findings
// are ignored.
func FromResult(res ats.Result) Input {
	var in Input
	for _, f := range res.Checks {
		if f.Status == ats.StatusPass {
			continue
		}
		switch f.ID {
		case ats.CheckKeywordMatch:
			in.MissingJDKeywords = append(in.MissingJDKeywords, f.Details...)
			in.KeywordStatus = string(f.Status)
			if len(f.Details) > 0 {
				continue
			}
		case ats.CheckFormatting:
			in.FormattingIssues = append(in.FormattingIssues, f.Details...)
			continue
		case ats.CheckContactInfo:
			in.MissingContact = append(in.MissingContact, f.Details...)
			in.ContactStatus = string(f.Status)
			continue
		case ats.CheckActionVerbs:
			in.WeakOpeners = append(in.WeakOpeners, f.Details...)
		}
		in.Issues = append(in.Issues, Issue{
			CheckID: f.ID,
			Status:  string(f.Status),
			Label:   f.Label,
			Message: f.Message,
			Weight:  f.Weight,
		})
	}
	return in
}

// ForResult is shorthand for GenerateRecommendations(FromResult(res)).
func ForResult(res ats.Result) []Recommendation {
	return GenerateRecommendations(FromResult(res))
}

// GenerateRecommendations builds deterministic recommendations from normalized findings.
func GenerateRecommendations(input Input) []Recommendation {
	candidates := make([]Recommendation, 0, 16)
	mappers := []func(Input) []Recommendation{
		func(in Input) []Recommendation {
			return fromIssues(in.Issues, in.WeakOpeners)
		},
		func(in Input) []Recommendation {
			return fromMissingJDKeywords(in.MissingJDKeywords, in.KeywordStatus)
		},
		func(in Input) []Recommendation {
			return fromFormattingIssues(in.FormattingIssues)
		},
		func(in Input) []Recommendation {
			return fromMissingContact(in.MissingContact, in.ContactStatus)
		},
	}
	for _, mapper := range mappers {
		candidates = append(candidates, mapper(input)...)
	}

	deduped := dedupe(candidates)
	sortRecommendations(deduped)
	if len(deduped) > maxRecommendations {
		deduped = deduped[:maxRecommendations]
	}
	for i := range deduped {
		deduped[i].Order = i + 1
	}
	return deduped
}

func severityRank(value string) int {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "critical":
		return 3
	case "warning":
		return 2
	default:
		return 1
	}
}

func impactRank(value string) int {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "high":
		return 3
	case "medium":
		return 2
	default:
		return 1
	}
}

func categoryRank(value string) int {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "ATS":
		return 5
	case "SKILLS":
		return 4
	case "EXPERIENCE":
		return 3
	case "STRUCTURE":
		return 2
	case "FORMATTING":
		return 1
	default:
		return 0
	}
}

func slugify(input string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "item"
	}
	return out
}

func dedupe(items []Recommendation) []Recommendation {
	seen := make(map[string]Recommendation, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			continue
		}
		if existing, ok := seen[id]; ok {
			seen[id] = mergeRecommendation(existing, item)
			continue
		}
		seen[id] = item
		order = append(order, id)
	}
	out := make([]Recommendation, 0, len(order))
	for _, id := range order {
		out = append(out, seen[id])
	}
	return out
}

func mergeRecommendation(a, b Recommendation) Recommendation {
	if strings.TrimSpace(a.Title) == "" {
		a.Title = b.Title
	}
	if strings.TrimSpace(a.Why) == "" {
		a.Why = b.Why
	}
	if strings.TrimSpace(a.Action) == "" {
		a.Action = b.Action
	}
	if strings.TrimSpace(a.Category) == "" {
		a.Category = b.Category
	}
	if severityRank(b.Severity) > severityRank(a.Severity) {
		a.Severity = b.Severity
	}
	if impactRank(b.Impact) > impactRank(a.Impact) {
		a.Impact = b.Impact
	}
	return a
}

func sortRecommendations(items []Recommendation) {
	sort.SliceStable(items, func(i, j int) bool {
		a := items[i]
		b := items[j]
		if severityRank(a.Severity) != severityRank(b.Severity) {
			return severityRank(a.Severity) > severityRank(b.Severity)
		}
		if impactRank(a.Impact) != impactRank(b.Impact) {
			return impactRank(a.Impact) > impactRank(b.Impact)
		}
		if categoryRank(a.Category) != categoryRank(b.Category) {
			return categoryRank(a.Category) > categoryRank(b.Category)
		}
		if !strings.EqualFold(a.Title, b.Title) {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
		return a.ID < b.ID
	})
}

// mapStatus turns a finding status and weight into severity and impact.
func mapStatus(status string, weight int) (string, string) {
	severity := "info"
	switch strings.ToLower(strings.TrimSpace(status)) {
	case string(ats.StatusFail):
		severity = "critical"
	case string(ats.StatusWarning):
		severity = "warning"
	}
	switch {
	case weight >= 10:
		return severity, "high"
	case weight >= 7:
		return severity, "medium"
	default:
		return severity, "low"
	}
}

func uniqueSortedStrings(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
