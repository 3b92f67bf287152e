package ats

import "sort"

// Score bands used by report views.
const (
	BandExcellent = "Excellent"
	BandGood      = "Good"
	BandNeedsWork = "Needs Work"
	BandPoor      = "Poor"
)

// Band maps a score to its display label: 80 and above is Excellent, 60-79
// Good, 40-59 Needs Work and anything lower Poor.
func Band(score int) string {
	switch {
	case score >= 80:
		return BandExcellent
	case score >= 60:
		return BandGood
	case score >= 40:
		return BandNeedsWork
	default:
		return BandPoor
	}
}

// SortedBySeverity returns a copy of checks ordered fail, warning, pass.
// Findings with the same status keep their relative order.
func SortedBySeverity(checks []Finding) []Finding {
	out := make([]Finding, len(checks))
	copy(out, checks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Status.rank() < out[j].Status.rank()
	})
	return out
}

// Summary counts findings per status.
type Summary struct {
	Pass    int `json:"pass"`
	Warning int `json:"warning"`
	Fail    int `json:"fail"`
}

// Summarize counts the findings of r by status.
func Summarize(r Result) Summary {
	var s Summary
	for _, f := range r.Checks {
		switch f.Status {
		case StatusPass:
			s.Pass++
		case StatusWarning:
			s.Warning++
		case StatusFail:
			s.Fail++
		}
	}
	return s
}
