package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-ats/internal/ats"
	"resume-ats/internal/ats/recommendations"
	"resume-ats/internal/documents"
	"resume-ats/internal/extract"
	"resume-ats/internal/shared/metrics"
	"resume-ats/internal/shared/telemetry"
)

// Input size limits, in bytes of UTF-8 text.
const (
	MaxResumeBytes         = 200_000
	MaxJobDescriptionBytes = 100_000
)

// DocumentSource resolves stored documents and their text.
type DocumentSource interface {
	Get(ctx context.Context, userID, documentID string) (documents.Document, error)
	Text(ctx context.Context, doc documents.Document) (string, error)
}

// Service scores resumes and persists the resulting reports.
type Service struct {
	Repo      Repo
	Documents DocumentSource
	Analyzer  *ats.Analyzer
	Now       func() time.Time
}

func (s *Service) analyzer() *ats.Analyzer {
	if s.Analyzer != nil {
		return s.Analyzer
	}
	return ats.Default()
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// ScoreText scores raw resume text and stores the report.
func (s *Service) ScoreText(ctx context.Context, userID string, in ScoreInput) (Report, error) {
	return s.score(ctx, userID, "", SourceText, in)
}

// ScoreDocument extracts text from one of the user's documents and scores it.
// Only the job description fields of in are used.
func (s *Service) ScoreDocument(ctx context.Context, userID, documentID string, in ScoreInput) (Report, error) {
	if s.Documents == nil {
		return Report{}, fmt.Errorf("document scoring is not configured")
	}
	doc, err := s.Documents.Get(ctx, userID, documentID)
	if err != nil {
		metrics.IncScoringFailed()
		return Report{}, err
	}
	text, err := s.Documents.Text(ctx, doc)
	if err != nil {
		metrics.IncScoringFailed()
		return Report{}, err
	}
	in.ResumeText = text
	return s.score(ctx, userID, doc.ID, SourceDocument, in)
}

func (s *Service) score(ctx context.Context, userID, documentID string, source Source, in ScoreInput) (Report, error) {
	if strings.TrimSpace(userID) == "" {
		metrics.IncScoringFailed()
		return Report{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	if len(in.ResumeText) > MaxResumeBytes {
		metrics.IncScoringFailed()
		return Report{}, fmt.Errorf("%w: resume text exceeds %d bytes", ErrInvalidInput, MaxResumeBytes)
	}
	jd, err := JobDescriptionText(in.JobDescription, in.JobDescriptionFormat)
	if err != nil {
		metrics.IncScoringFailed()
		return Report{}, err
	}

	start := time.Now()
	result := s.analyzer().Analyze(in.ResumeText, jd)
	elapsed := time.Since(start)
	metrics.ObserveScoringDurationMs(float64(elapsed.Microseconds()) / 1000.0)

	rep := BuildReport(result, ats.HasJobDescription(jd))
	rep.ID = uuid.NewString()
	rep.UserID = userID
	rep.DocumentID = documentID
	rep.Source = source
	rep.CreatedAt = s.now()

	if err := s.Repo.Create(ctx, rep); err != nil {
		metrics.IncScoringFailed()
		return Report{}, fmt.Errorf("store report: %w", err)
	}

	metrics.IncReportCreated(rep.Band)
	metrics.ObserveScore(rep.Score)
	telemetry.Info("report.created", map[string]any{
		"report_id":   rep.ID,
		"user_id":     userID,
		"document_id": documentID,
		"source":      string(source),
		"score":       rep.Score,
		"band":        rep.Band,
		"with_jd":     rep.JobDescriptionProvided,
		"duration_ms": float64(elapsed.Microseconds()) / 1000.0,
	})
	return rep, nil
}

// BuildReport derives the stored presentation of an analysis result.
func BuildReport(result ats.Result, jobDescriptionProvided bool) Report {
	return Report{
		Score:                  result.Score,
		Band:                   ats.Band(result.Score),
		Summary:                ats.Summarize(result),
		Checks:                 result.Checks,
		Recommendations:        recommendations.ForResult(result),
		JobDescriptionProvided: jobDescriptionProvided,
	}
}

// JobDescriptionText returns the plain text of a job description given in format.
func JobDescriptionText(jd, format string) (string, error) {
	if len(jd) > MaxJobDescriptionBytes {
		return "", fmt.Errorf("%w: job description exceeds %d bytes", ErrInvalidInput, MaxJobDescriptionBytes)
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return jd, nil
	case FormatHTML:
		if strings.TrimSpace(jd) == "" {
			return "", nil
		}
		text, err := extract.HTMLToText(strings.NewReader(jd))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return text, nil
	default:
		return "", fmt.Errorf("%w: jobDescriptionFormat must be %q or %q", ErrInvalidInput, FormatText, FormatHTML)
	}
}

// Get returns one of the user's reports.
func (s *Service) Get(ctx context.Context, userID, reportID string) (Report, error) {
	if userID == "" || strings.TrimSpace(reportID) == "" {
		return Report{}, fmt.Errorf("%w: user id and report id required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID, reportID)
}

// List returns the user's reports, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Report, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}
