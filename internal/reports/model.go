package reports

import (
	"time"

	"resume-ats/internal/ats"
	"resume-ats/internal/ats/recommendations"
)

// Source records where the scored resume text came from.
type Source string

const (
	SourceText     Source = "text"
	SourceDocument Source = "document"
)

// Job description formats accepted by ScoreInput.
const (
	FormatText = "text"
	FormatHTML = "html"
)

// Report is one persisted run of the ATS analyzer.
type Report struct {
	ID                     string
	UserID                 string
	DocumentID             string
	Source                 Source
	Score                  int
	Band                   string
	Summary                ats.Summary
	Checks                 []ats.Finding
	Recommendations        []recommendations.Recommendation
	JobDescriptionProvided bool
	CreatedAt              time.Time
}

// ScoreInput is the text to score. JobDescriptionFormat is "text" (default) or "html".
type ScoreInput struct {
	ResumeText           string
	JobDescription       string
	JobDescriptionFormat string
}
