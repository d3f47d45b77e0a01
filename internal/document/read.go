package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for document formats the reader cannot
// decode.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Read loads a document into plain text, dispatching on file extension.
// Plain text and Markdown are read verbatim; PDFs go through text
// extraction. Binary Word formats are rejected.
func Read(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".markdown", "":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading document: %w", err)
		}
		return string(data), nil
	case ".pdf":
		return ExtractPDFText(path)
	case ".doc", ".docx":
		return "", fmt.Errorf("%w: %s (convert Word documents to plain text first)", ErrUnsupportedFormat, filepath.Ext(path))
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
