package ports

import (
	"context"
	"io"

	"github.com/contractlens/legal-intel/internal/core/domain"
)

// DocumentRepository persists and reads document state. List and the
// Find methods return documents in ascending upload order (uploaded_at,
// then id) so query results are stable.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context) ([]domain.Document, error)
	FindByField(ctx context.Context, field domain.MetadataField, value string) ([]domain.Document, error)
	// FindByJurisdiction matches either alias column of the
	// jurisdiction domain (governing_law or jurisdiction).
	FindByJurisdiction(ctx context.Context, value string) ([]domain.Document, error)
	UpdateMetadata(ctx context.Context, id string, meta domain.ExtractedMetadata) error
}

// ObjectStorage stores the raw uploaded files.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// TextExtractor turns raw document bytes into plain text. The format is
// chosen from the filename extension.
type TextExtractor interface {
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}

// MetadataClassifier maps document text plus filename onto the closed
// taxonomy. Implementations must be total over input text: absence of a
// match is a nil field, not an error.
type MetadataClassifier interface {
	Classify(ctx context.Context, text, filename string) (domain.ExtractedMetadata, error)
}

// EventPublisher emits document lifecycle events.
type EventPublisher interface {
	PublishDocumentIngested(ctx context.Context, documentID string) error
	PublishReclassify(ctx context.Context, documentID string) error
}

// ReclassifyQueue consumes reclassification requests.
type ReclassifyQueue interface {
	SubscribeReclassify(ctx context.Context, handler func(context.Context, string) error) error
}
