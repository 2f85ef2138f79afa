// Package extractor turns raw PDF/DOCX bytes into plain text.
package extractor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/contractlens/legal-intel/internal/core/domain"
	"github.com/contractlens/legal-intel/internal/infrastructure/extractor/docx"
	"github.com/contractlens/legal-intel/internal/infrastructure/extractor/pdf"
)

// Extractor dispatches on the filename extension to a format-specific
// text extractor.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, filename string, data []byte) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "pdf":
		text, err := pdf.ExtractText(data)
		if err != nil {
			return "", fmt.Errorf("extract pdf text: %w", err)
		}
		return text, nil
	case "docx":
		text, err := docx.ExtractText(data)
		if err != nil {
			return "", fmt.Errorf("extract docx text: %w", err)
		}
		return text, nil
	default:
		return "", domain.WrapError(domain.ErrUnsupportedFileType, "extract text", fmt.Errorf("extension %q", ext))
	}
}
