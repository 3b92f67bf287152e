package documents

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-ats/internal/extract"
	"resume-ats/internal/shared/metrics"
	"resume-ats/internal/shared/storage/object"
	"resume-ats/internal/shared/telemetry"
	"resume-ats/internal/shared/util"
)

// DefaultMaxUploadBytes is the upload limit used when Service.MaxUploadBytes is zero.
const DefaultMaxUploadBytes = 10 << 20

const extractedSuffix = ".extracted.txt"

// Service contains business logic for documents.
type Service struct {
	Store          object.ObjectStore
	Repo           Repo
	MaxUploadBytes int64
	Now            func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) maxUpload() int64 {
	if s.MaxUploadBytes > 0 {
		return s.MaxUploadBytes
	}
	return DefaultMaxUploadBytes
}

// Upload validates the file, saves it to object storage and records the document.
// declaredMime is the client supplied content type and may be empty.
func (s *Service) Upload(ctx context.Context, userID, fileName, declaredMime string, r io.Reader) (Document, error) {
	if strings.TrimSpace(userID) == "" {
		return Document{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	limit := s.maxUpload()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return Document{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return Document{}, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, limit)
	}
	if len(data) == 0 {
		return Document{}, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}

	mimeType := extract.NormalizeMimeType(declaredMime, name, data)
	if !extract.Supported(mimeType, name, data) {
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}

	storageKey, size, _, err := s.Store.Save(ctx, userID, name, bytes.NewReader(data))
	if err != nil {
		return Document{}, fmt.Errorf("save upload: %w", err)
	}

	doc := Document{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   name,
		MimeType:   mimeType,
		SizeBytes:  size,
		StorageKey: storageKey,
		CreatedAt:  s.now(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, fmt.Errorf("record document: %w", err)
	}

	metrics.IncDocumentUploaded()
	telemetry.Info("document.uploaded", map[string]any{
		"document_id": doc.ID,
		"user_id":     userID,
		"mime_type":   mimeType,
		"size_bytes":  size,
	})
	return doc, nil
}

// Current returns the most recent document for a user.
func (s *Service) Current(ctx context.Context, userID string) (Document, error) {
	if userID == "" {
		return Document{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return s.Repo.GetCurrentByUser(ctx, userID)
}

// Get returns one of the user's documents.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	if userID == "" || strings.TrimSpace(documentID) == "" {
		return Document{}, fmt.Errorf("%w: user id and document id required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID, documentID)
}

// List returns the user's documents, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Text returns the plain text of a stored document. The first successful
// extraction is cached next to the original and recorded on the document.
func (s *Service) Text(ctx context.Context, doc Document) (string, error) {
	text, err := extract.ExtractText(ctx, s.Store, doc.StorageKey, doc.MimeType, doc.FileName)
	if err != nil {
		metrics.IncExtractionFailed()
		telemetry.Error("document.extract_failed", map[string]any{
			"document_id": doc.ID,
			"mime_type":   doc.MimeType,
			"error":       err,
		})
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	if doc.ExtractedTextKey == "" {
		if err := s.Repo.UpdateExtraction(ctx, doc.UserID, doc.ID, doc.StorageKey+extractedSuffix, s.now()); err != nil {
			telemetry.Warn("document.extract_record_failed", map[string]any{
				"document_id": doc.ID,
				"error":       err,
			})
		}
	}
	return text, nil
}
