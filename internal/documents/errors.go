package documents

import "errors"

var (
	// ErrNotFound indicates the document does not exist for the caller.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTooLarge indicates the upload exceeds the configured size limit.
	ErrTooLarge = errors.New("file too large")

	// ErrUnsupportedType indicates no extractor can read the upload.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrExtraction indicates the stored file could not be turned into text.
	ErrExtraction = errors.New("text extraction failed")
)
