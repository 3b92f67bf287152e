package reports

import (
	"time"

	"resume-ats/internal/ats"
	"resume-ats/internal/ats/recommendations"
)

// ReportResponse is the outward-facing representation of a report.
type ReportResponse struct {
	ReportID               string                           `json:"reportId"`
	DocumentID             string                           `json:"documentId,omitempty"`
	Source                 Source                           `json:"source"`
	Score                  int                              `json:"score"`
	Band                   string                           `json:"band"`
	Summary                ats.Summary                      `json:"summary"`
	Checks                 []ats.Finding                    `json:"checks"`
	Recommendations        []recommendations.Recommendation `json:"recommendations"`
	JobDescriptionProvided bool                             `json:"jobDescriptionProvided"`
	CreatedAt              time.Time                        `json:"createdAt"`
}

// ReportListItem is the compact list representation of a report.
type ReportListItem struct {
	ReportID   string      `json:"reportId"`
	DocumentID string      `json:"documentId,omitempty"`
	Source     Source      `json:"source"`
	Score      int         `json:"score"`
	Band       string      `json:"band"`
	Summary    ats.Summary `json:"summary"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// ToResponse converts a report for JSON output.
func ToResponse(r Report) ReportResponse {
	checks := r.Checks
	if checks == nil {
		checks = []ats.Finding{}
	}
	recs := r.Recommendations
	if recs == nil {
		recs = []recommendations.Recommendation{}
	}
	return ReportResponse{
		ReportID:               r.ID,
		DocumentID:             r.DocumentID,
		Source:                 r.Source,
		Score:                  r.Score,
		Band:                   r.Band,
		Summary:                r.Summary,
		Checks:                 checks,
		Recommendations:        recs,
		JobDescriptionProvided: r.JobDescriptionProvided,
		CreatedAt:              r.CreatedAt,
	}
}

func toListItems(reports []Report) []ReportListItem {
	out := make([]ReportListItem, 0, len(reports))
	for _, r := range reports {
		out = append(out, ReportListItem{
			ReportID:   r.ID,
			DocumentID: r.DocumentID,
			Source:     r.Source,
			Score:      r.Score,
			Band:       r.Band,
			Summary:    r.Summary,
			CreatedAt:  r.CreatedAt,
		})
	}
	return out
}
