package reports

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"resume-ats/internal/ats"
	"resume-ats/internal/shared/storage/db"
)

func sampleReport() Report {
	rep := BuildReport(ats.Analyze("Experience\n- Led a team of 6 engineers.\nSkills\nGo", "Go Kubernetes"), true)
	rep.ID = "report-1"
	rep.UserID = "guest:a"
	rep.Source = SourceText
	rep.CreatedAt = time.Date(2026, time.May, 5, 8, 30, 0, 0, time.UTC)
	return rep
}

func TestSQLRepoCreatePostgres(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	repo := &SQLRepo{DB: conn, Dialect: db.Postgres}
	rep := sampleReport()

	mock.ExpectExec("INSERT INTO reports .* VALUES \\(\\$1, \\$2, \\$3, \\$4, \\$5, \\$6, \\$7, \\$8, \\$9, \\$10, \\$11\\)").
		WithArgs(
			rep.ID,
			rep.UserID,
			nil, // document_id
			"text",
			rep.Score,
			rep.Band,
			sqlmock.AnyArg(), // summary
			sqlmock.AnyArg(), // checks
			sqlmock.AnyArg(), // recommendations
			true,
			rep.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), rep); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestSQLRepoGetByIDDecodesJSON(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	repo := &SQLRepo{DB: conn, Dialect: db.Postgres}

	cols := []string{"id", "user_id", "document_id", "source", "score", "band", "summary", "checks", "recommendations", "job_description_provided", "created_at"}
	created := time.Now().UTC()
	mock.ExpectQuery("FROM reports\\s+WHERE user_id = \\$1 AND id = \\$2").
		WithArgs("guest:a", "report-1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			"report-1", "guest:a", "doc-9", "document", int64(72), "Good",
			[]byte(`{"pass":1,"warning":1,"fail":0}`),
			[]byte(`[{"id":"metrics","label":"Quantified Achievements","status":"pass","message":"ok","weight":11},{"id":"pronouns","label":"Personal Pronouns","status":"warning","message":"2","weight":5}]`),
			[]byte(`[]`),
			false, created,
		))

	rep, err := repo.GetByID(context.Background(), "guest:a", "report-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if rep.DocumentID != "doc-9" || rep.Source != SourceDocument || rep.Score != 72 {
		t.Fatalf("unexpected report %+v", rep)
	}
	if len(rep.Checks) != 2 || rep.Checks[1].Status != ats.StatusWarning || rep.Summary.Warning != 1 {
		t.Fatalf("unexpected decoded findings %+v / %+v", rep.Checks, rep.Summary)
	}

	mock.ExpectQuery("FROM reports").WithArgs("guest:a", "nope").WillReturnRows(sqlmock.NewRows(cols))
	if _, err := repo.GetByID(context.Background(), "guest:a", "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLRepoSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	conn, dialect, err := db.Connect(ctx, "sqlite://"+filepath.Join(t.TempDir(), "history.db"), db.DefaultMigrateOptions())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	if err := db.RunMigrations(ctx, conn, dialect); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := &SQLRepo{DB: conn, Dialect: dialect}
	first := sampleReport()
	second := sampleReport()
	second.ID = "report-2"
	second.CreatedAt = first.CreatedAt.Add(time.Hour)
	second.JobDescriptionProvided = false

	for _, rep := range []Report{first, second} {
		if err := repo.Create(ctx, rep); err != nil {
			t.Fatalf("create %s: %v", rep.ID, err)
		}
	}

	got, err := repo.GetByID(ctx, "guest:a", "report-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Score != first.Score || len(got.Checks) != len(first.Checks) || !got.JobDescriptionProvided {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("expected created_at %v, got %v", first.CreatedAt, got.CreatedAt)
	}
	if len(got.Recommendations) != len(first.Recommendations) {
		t.Fatalf("expected %d recommendations, got %d", len(first.Recommendations), len(got.Recommendations))
	}

	list, err := repo.ListByUser(ctx, "guest:a", 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "report-2" {
		t.Fatalf("expected newest first, got %+v", list)
	}
	if other, err := repo.ListByUser(ctx, "guest:b", 10, 0); err != nil || len(other) != 0 {
		t.Fatalf("expected no reports for other principal, got %d (%v)", len(other), err)
	}
}
