package classifier

import (
	"context"
	"log/slog"

	"github.com/contractlens/legal-intel/internal/core/domain"
	"github.com/contractlens/legal-intel/internal/core/ports"
)

// Fallback wraps a classifier backend so that a backend failure degrades
// to all-nil metadata instead of aborting the enclosing document save.
// The document text still gets stored; the labels can be recovered later
// through reclassification.
type Fallback struct {
	primary ports.MetadataClassifier
}

func WithFallback(primary ports.MetadataClassifier) *Fallback {
	return &Fallback{primary: primary}
}

func (f *Fallback) Classify(ctx context.Context, text, filename string) (domain.ExtractedMetadata, error) {
	meta, err := f.primary.Classify(ctx, text, filename)
	if err != nil {
		slog.Warn("classifier_backend_failed",
			"filename", filename,
			"error", err,
		)
		return domain.ExtractedMetadata{}, nil
	}
	return meta, nil
}
