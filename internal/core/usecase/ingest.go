package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/contractlens/legal-intel/internal/core/domain"
	"github.com/contractlens/legal-intel/internal/core/ports"
)

// IngestUseCase processes an upload batch: per file it validates the
// extension, stores the raw bytes, extracts text, classifies, and
// creates the document row with its metadata in one insert. A failing
// file is counted and skipped, never aborting the batch.
type IngestUseCase struct {
	repo       ports.DocumentRepository
	storage    ports.ObjectStorage
	extractor  ports.TextExtractor
	classifier ports.MetadataClassifier
	events     ports.EventPublisher
}

func NewIngestUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	extractor ports.TextExtractor,
	classifier ports.MetadataClassifier,
	events ports.EventPublisher,
) *IngestUseCase {
	return &IngestUseCase{
		repo:       repo,
		storage:    storage,
		extractor:  extractor,
		classifier: classifier,
		events:     events,
	}
}

func (uc *IngestUseCase) UploadBatch(ctx context.Context, files []ports.FileUpload) (domain.UploadReport, error) {
	if len(files) == 0 {
		return domain.UploadReport{}, domain.WrapError(domain.ErrInvalidInput, "upload batch", errors.New("no files provided"))
	}

	var report domain.UploadReport
	for _, file := range files {
		if err := uc.ingestOne(ctx, file); err != nil {
			report.Failed++
			slog.Warn("document_ingest_failed", "filename", file.Filename, "error", err)
			continue
		}
		report.Processed++
		slog.Info("document_ingested", "filename", file.Filename)
	}
	return report, nil
}

func (uc *IngestUseCase) ingestOne(ctx context.Context, file ports.FileUpload) error {
	fileType, err := fileTypeOf(file.Filename)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(file.Filename))
	if err := uc.storage.Save(ctx, storageKey, bytes.NewReader(file.Data)); err != nil {
		return fmt.Errorf("save to object storage: %w", err)
	}

	text, err := uc.extractor.Extract(ctx, file.Filename, file.Data)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}

	// The fallback decorator turns backend failures into all-nil
	// metadata, so classification never fails the upload.
	meta, err := uc.classifier.Classify(ctx, text, file.Filename)
	if err != nil {
		return fmt.Errorf("classify document: %w", err)
	}

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:                id,
		Filename:          file.Filename,
		FileType:          fileType,
		FileSize:          int64(len(file.Data)),
		Content:           text,
		ExtractedMetadata: meta,
		StoragePath:       storageKey,
		UploadedAt:        now,
		ProcessedAt:       &now,
	}
	if err := uc.repo.Create(ctx, doc); err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	// Lifecycle event for downstream consumers. The document is already
	// committed, so a publish failure is logged, not surfaced.
	if err := uc.events.PublishDocumentIngested(ctx, doc.ID); err != nil {
		slog.Warn("publish_ingested_event_failed", "document_id", doc.ID, "error", err)
	}
	return nil
}

func fileTypeOf(filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "pdf", "docx":
		return ext, nil
	default:
		return "", domain.WrapError(domain.ErrUnsupportedFileType, "validate upload", fmt.Errorf("extension %q", ext))
	}
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document.bin"
	}
	return base
}
