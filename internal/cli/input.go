package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"resume-ats/internal/extract"
	"resume-ats/internal/reports"
)

// readDocument extracts plain text from a resume or job description file.
// The type is taken from the file extension and contents.
func readDocument(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	text, err := extract.ExtractTextFromBytes(ctx, data, "", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", path, err)
	}
	return text, nil
}

// readJobDescription returns the job description text and its format. HTML
// files are returned raw so the scorer converts them.
func readJobDescription(ctx context.Context, path string, forceHTML bool) (string, string, error) {
	if path == "" {
		return "", "", nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	if forceHTML || ext == ".html" || ext == ".htm" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "", fmt.Errorf("read %s: %w", path, err)
		}
		return string(data), reports.FormatHTML, nil
	}
	text, err := readDocument(ctx, path)
	if err != nil {
		return "", "", err
	}
	return text, reports.FormatText, nil
}
