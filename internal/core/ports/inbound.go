package ports

import (
	"context"

	"github.com/contractlens/legal-intel/internal/core/domain"
)

// FileUpload is one file from a multipart upload batch.
type FileUpload struct {
	Filename string
	Data     []byte
}

// DocumentIngestor is the inbound contract for document upload
// orchestration.
type DocumentIngestor interface {
	UploadBatch(ctx context.Context, files []FileUpload) (domain.UploadReport, error)
}

// DocumentQueryService answers natural-language questions with filtered
// document lookups.
type DocumentQueryService interface {
	Ask(ctx context.Context, question string) (domain.QueryIntent, []domain.ResultRecord, error)
}

// DocumentReader is the inbound read model for stored documents.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context) ([]domain.Document, error)
}

// DashboardService aggregates stored metadata for display and export.
type DashboardService interface {
	Aggregate(ctx context.Context) (domain.DashboardCounts, error)
}

// DocumentReclassifier re-runs classification over stored documents.
type DocumentReclassifier interface {
	RequestReclassify(ctx context.Context, documentID string) error
	ProcessByID(ctx context.Context, documentID string) error
}
