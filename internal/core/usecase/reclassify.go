package usecase

import (
	"context"
	"fmt"

	"github.com/contractlens/legal-intel/internal/core/ports"
)

// ReclassifyUseCase re-runs classification over an already stored
// document. Useful after a taxonomy change, or to recover labels for
// documents saved with empty metadata during a backend outage. The four
// metadata columns are replaced in a single update, so readers never see
// a half-reclassified document.
type ReclassifyUseCase struct {
	repo       ports.DocumentRepository
	classifier ports.MetadataClassifier
	events     ports.EventPublisher
}

func NewReclassifyUseCase(
	repo ports.DocumentRepository,
	classifier ports.MetadataClassifier,
	events ports.EventPublisher,
) *ReclassifyUseCase {
	return &ReclassifyUseCase{
		repo:       repo,
		classifier: classifier,
		events:     events,
	}
}

// RequestReclassify enqueues a reclassification after verifying the
// document exists.
func (uc *ReclassifyUseCase) RequestReclassify(ctx context.Context, documentID string) error {
	if _, err := uc.repo.GetByID(ctx, documentID); err != nil {
		return fmt.Errorf("fetch document by id: %w", err)
	}
	if err := uc.events.PublishReclassify(ctx, documentID); err != nil {
		return fmt.Errorf("publish reclassify request: %w", err)
	}
	return nil
}

// ProcessByID performs the reclassification. Invoked by the worker.
func (uc *ReclassifyUseCase) ProcessByID(ctx context.Context, documentID string) error {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("fetch document by id: %w", err)
	}

	meta, err := uc.classifier.Classify(ctx, doc.Content, doc.Filename)
	if err != nil {
		return fmt.Errorf("classify document: %w", err)
	}

	if err := uc.repo.UpdateMetadata(ctx, doc.ID, meta); err != nil {
		return fmt.Errorf("update document metadata: %w", err)
	}
	return nil
}
