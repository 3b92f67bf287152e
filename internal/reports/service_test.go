package reports

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"resume-ats/internal/ats"
	"resume-ats/internal/documents"
	"resume-ats/internal/shared/storage/object/local"
)

func readStrongResume(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../ats/testdata/strong_resume.txt")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return string(data)
}

func newTestService(t *testing.T) (*Service, *documents.Service) {
	t.Helper()
	docs := &documents.Service{Store: local.New(t.TempDir()), Repo: documents.NewMemoryRepo()}
	now := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)
	svc := &Service{
		Repo:      NewMemoryRepo(),
		Documents: docs,
		Now: func() time.Time {
			now = now.Add(time.Minute)
			return now
		},
	}
	return svc, docs
}

func TestScoreTextStoresReport(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	resume := readStrongResume(t)

	rep, err := svc.ScoreText(ctx, "guest:a", ScoreInput{ResumeText: resume})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	want := ats.Analyze(resume, "")
	if rep.Score != want.Score || len(rep.Checks) != len(want.Checks) {
		t.Fatalf("report differs from analyzer: score %d vs %d", rep.Score, want.Score)
	}
	if rep.Band != ats.Band(rep.Score) || rep.Source != SourceText || rep.JobDescriptionProvided {
		t.Fatalf("unexpected report metadata %+v", rep)
	}
	if rep.Summary.Pass+rep.Summary.Warning+rep.Summary.Fail != len(rep.Checks) {
		t.Fatalf("summary does not cover all checks: %+v", rep.Summary)
	}

	got, err := svc.Get(ctx, "guest:a", rep.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != rep.ID || got.Score != rep.Score {
		t.Fatalf("stored report mismatch %+v", got)
	}
	if _, err := svc.Get(ctx, "guest:b", rep.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected other principal to get ErrNotFound, got %v", err)
	}
}

func TestScoreTextWithHTMLJobDescription(t *testing.T) {
	svc, _ := newTestService(t)
	jd := "<html><body><h2>Backend Engineer</h2><ul><li>Kubernetes</li><li>Terraform</li></ul><script>var tracking = 1;</script></body></html>"

	rep, err := svc.ScoreText(context.Background(), "guest:a", ScoreInput{
		ResumeText:           "Experience\n- Built services in Go.",
		JobDescription:       jd,
		JobDescriptionFormat: "HTML",
	})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if !rep.JobDescriptionProvided || len(rep.Checks) != 13 {
		t.Fatalf("expected keyword-match to run, got %d checks", len(rep.Checks))
	}
	var kw ats.Finding
	for _, f := range rep.Checks {
		if f.ID == ats.CheckKeywordMatch {
			kw = f
		}
	}
	for _, d := range kw.Details {
		if d == "tracking" || d == "var" {
			t.Fatalf("script content leaked into keywords: %v", kw.Details)
		}
	}
	if !strings.Contains(strings.Join(kw.Details, " "), "kubernetes") {
		t.Fatalf("expected kubernetes among missing keywords, got %v", kw.Details)
	}
}

func TestScoreTextValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		user string
		in   ScoreInput
	}{
		{name: "no user", in: ScoreInput{ResumeText: "Experience"}},
		{name: "bad format", user: "guest:a", in: ScoreInput{ResumeText: "Experience", JobDescription: "Go", JobDescriptionFormat: "pdf"}},
		{name: "huge resume", user: "guest:a", in: ScoreInput{ResumeText: strings.Repeat("a", MaxResumeBytes+1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.ScoreText(ctx, tc.user, tc.in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestScoreTextBlankResumeStoresFailingReport(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	rep, err := svc.ScoreText(ctx, "guest:a", ScoreInput{ResumeText: "  \n "})
	if err != nil {
		t.Fatalf("score blank resume: %v", err)
	}
	if len(rep.Checks) != 12 {
		t.Fatalf("expected 12 checks, got %d", len(rep.Checks))
	}
	for _, f := range rep.Checks {
		if (f.ID == ats.CheckContactInfo || f.ID == ats.CheckWordCount) && f.Status != ats.StatusFail {
			t.Fatalf("expected %s to fail on blank resume, got %s", f.ID, f.Status)
		}
	}
	if _, err := svc.Get(ctx, "guest:a", rep.ID); err != nil {
		t.Fatalf("blank report not stored: %v", err)
	}
}

func TestScoreTextSizeCapCountsBytes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// 2-byte runes: under the cap in runes, over it in bytes.
	resume := strings.Repeat("é", MaxResumeBytes/2+1)
	if _, err := svc.ScoreText(ctx, "guest:a", ScoreInput{ResumeText: resume}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	jd := strings.Repeat("a", MaxJobDescriptionBytes+1)
	_, err := svc.ScoreText(ctx, "guest:a", ScoreInput{ResumeText: "Experience", JobDescription: jd})
	if !errors.Is(err, ErrInvalidInput) || !strings.Contains(err.Error(), "bytes") {
		t.Fatalf("expected byte cap error for job description, got %v", err)
	}
}

func TestScoreDocumentUsesExtractedText(t *testing.T) {
	ctx := context.Background()
	svc, docs := newTestService(t)
	resume := readStrongResume(t)

	doc, err := docs.Upload(ctx, "guest:a", "resume.txt", "text/plain", strings.NewReader(resume))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	rep, err := svc.ScoreDocument(ctx, "guest:a", doc.ID, ScoreInput{JobDescription: "Golang Kubernetes PostgreSQL"})
	if err != nil {
		t.Fatalf("score document: %v", err)
	}
	if rep.DocumentID != doc.ID || rep.Source != SourceDocument {
		t.Fatalf("unexpected report linkage %+v", rep)
	}
	want := ats.Analyze(strings.TrimSpace(resume), "Golang Kubernetes PostgreSQL")
	if rep.Score != want.Score {
		t.Fatalf("expected score %d, got %d", want.Score, rep.Score)
	}

	if _, err := svc.ScoreDocument(ctx, "guest:b", doc.ID, ScoreInput{}); !errors.Is(err, documents.ErrNotFound) {
		t.Fatalf("expected documents.ErrNotFound for other principal, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	var ids []string
	for i := 0; i < 3; i++ {
		rep, err := svc.ScoreText(ctx, "guest:a", ScoreInput{ResumeText: "Skills\nGo"})
		if err != nil {
			t.Fatalf("score %d: %v", i, err)
		}
		ids = append(ids, rep.ID)
	}

	page, err := svc.List(ctx, "guest:a", 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 2 || page[0].ID != ids[2] || page[1].ID != ids[1] {
		t.Fatalf("unexpected page order")
	}
	rest, err := svc.List(ctx, "guest:a", 2, 2)
	if err != nil {
		t.Fatalf("list offset: %v", err)
	}
	if len(rest) != 1 || rest[0].ID != ids[0] {
		t.Fatalf("unexpected second page")
	}
}

func TestJobDescriptionText(t *testing.T) {
	got, err := JobDescriptionText("<p>Go &amp; SQL</p>", "html")
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	if got != "Go & SQL" {
		t.Fatalf("unexpected text %q", got)
	}
	if got, _ := JobDescriptionText("   ", "html"); got != "" {
		t.Fatalf("expected blank html to stay blank, got %q", got)
	}
	if got, _ := JobDescriptionText("<b>raw</b>", ""); got != "<b>raw</b>" {
		t.Fatalf("expected text format to pass through, got %q", got)
	}
}
