package documents

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"resume-ats/internal/shared/storage/db"
)

func newMockRepo(t *testing.T) (*SQLRepo, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return &SQLRepo{DB: conn, Dialect: db.Postgres}, mock
}

func TestSQLRepoCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	doc := Document{
		ID:         "doc-1",
		UserID:     "guest:a",
		FileName:   "resume.pdf",
		MimeType:   "application/pdf",
		SizeBytes:  1024,
		StorageKey: "abc/123_resume.pdf",
		CreatedAt:  time.Now().UTC(),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO documents (id, user_id, file_name, mime_type, size_bytes, storage_key, created_at)\nVALUES ($1, $2, $3, $4, $5, $6, $7)")).
		WithArgs(doc.ID, doc.UserID, doc.FileName, doc.MimeType, doc.SizeBytes, doc.StorageKey, doc.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestSQLRepoGetByIDScansNullableColumns(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2026, time.February, 2, 10, 0, 0, 0, time.UTC)
	extracted := created.Add(time.Minute)

	cols := []string{"id", "user_id", "file_name", "mime_type", "size_bytes", "storage_key", "extracted_text_key", "extracted_at", "created_at"}
	mock.ExpectQuery("FROM documents\\s+WHERE user_id = \\$1 AND id = \\$2").
		WithArgs("guest:a", "doc-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("doc-1", "guest:a", "resume.pdf", "application/pdf", int64(10), "k", "k.extracted.txt", extracted, created))

	doc, err := repo.GetByID(context.Background(), "guest:a", "doc-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if doc.ExtractedTextKey != "k.extracted.txt" || doc.ExtractedAt == nil || !doc.ExtractedAt.Equal(extracted) {
		t.Fatalf("unexpected extraction fields %+v", doc)
	}

	mock.ExpectQuery("FROM documents").
		WithArgs("guest:a", "missing").
		WillReturnRows(sqlmock.NewRows(cols))
	if _, err := repo.GetByID(context.Background(), "guest:a", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestSQLRepoListClampsLimit(t *testing.T) {
	repo, mock := newMockRepo(t)
	cols := []string{"id", "user_id", "file_name", "mime_type", "size_bytes", "storage_key", "extracted_text_key", "extracted_at", "created_at"}
	mock.ExpectQuery("LIMIT \\$2 OFFSET \\$3").
		WithArgs("guest:a", 100, 0).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("doc-2", "guest:a", "b.txt", "text/plain", int64(1), "k2", nil, nil, time.Now()).
			AddRow("doc-1", "guest:a", "a.txt", "text/plain", int64(1), "k1", nil, nil, time.Now()))

	docs, err := repo.ListByUser(context.Background(), "guest:a", 500, -4)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(docs) != 2 || docs[0].ID != "doc-2" || docs[0].ExtractedAt != nil {
		t.Fatalf("unexpected docs %+v", docs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestSQLRepoUpdateExtractionSQLite(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer conn.Close()
	repo := &SQLRepo{DB: conn, Dialect: db.SQLite}
	at := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("SET extracted_text_key = ?, extracted_at = ?")).
		WithArgs("k.extracted.txt", at, "guest:a", "doc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateExtraction(context.Background(), "guest:a", "doc-1", "k.extracted.txt", at); err != nil {
		t.Fatalf("UpdateExtraction: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
