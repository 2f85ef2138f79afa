package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/contractlens/legal-intel/internal/core/domain"
)

// fakeRepo is an in-memory DocumentRepository preserving insert order.
type fakeRepo struct {
	mu   sync.Mutex
	docs []domain.Document

	createErr error
	listErr   error
	findErr   error
	updateErr error
}

func (r *fakeRepo) Create(_ context.Context, doc *domain.Document) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, *doc)
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.docs {
		if r.docs[i].ID == id {
			doc := r.docs[i]
			return &doc, nil
		}
	}
	return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", fmt.Errorf("id %q", id))
}

func (r *fakeRepo) List(context.Context) ([]domain.Document, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Document, len(r.docs))
	copy(out, r.docs)
	return out, nil
}

func (r *fakeRepo) FindByField(_ context.Context, field domain.MetadataField, value string) ([]domain.Document, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Document
	for _, doc := range r.docs {
		var got *string
		switch field {
		case domain.FieldAgreementType:
			got = doc.AgreementType
		case domain.FieldIndustry:
			got = doc.Industry
		case domain.FieldGeography:
			got = doc.Geography
		case domain.FieldGoverningLaw, domain.FieldJurisdiction:
			got = doc.GoverningLaw
		default:
			return nil, domain.WrapError(domain.ErrInvalidInput, "filter documents", fmt.Errorf("field %q", field))
		}
		if got != nil && *got == value {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindByJurisdiction(ctx context.Context, value string) ([]domain.Document, error) {
	return r.FindByField(ctx, domain.FieldGoverningLaw, value)
}

func (r *fakeRepo) UpdateMetadata(_ context.Context, id string, meta domain.ExtractedMetadata) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.docs {
		if r.docs[i].ID == id {
			r.docs[i].ExtractedMetadata = meta
			return nil
		}
	}
	return domain.WrapError(domain.ErrDocumentNotFound, "update metadata", fmt.Errorf("id %q", id))
}

type fakeStorage struct {
	mu      sync.Mutex
	saved   map[string][]byte
	saveErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: map[string][]byte{}}
}

func (s *fakeStorage) Save(_ context.Context, key string, data io.Reader) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[key] = raw
	return nil
}

func (s *fakeStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.saved[key]
	if !ok {
		return nil, fmt.Errorf("key %q not stored", key)
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

// fakeExtractor treats the upload bytes as the document text.
type fakeExtractor struct {
	err error
}

func (e *fakeExtractor) Extract(_ context.Context, filename string, data []byte) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	if !strings.HasSuffix(filename, ".pdf") && !strings.HasSuffix(filename, ".docx") {
		return "", domain.WrapError(domain.ErrUnsupportedFileType, "extract text", fmt.Errorf("filename %q", filename))
	}
	return string(data), nil
}

type fakePublisher struct {
	mu           sync.Mutex
	ingested     []string
	reclassified []string
	publishErr   error
}

func (p *fakePublisher) PublishDocumentIngested(_ context.Context, documentID string) error {
	if p.publishErr != nil {
		return p.publishErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ingested = append(p.ingested, documentID)
	return nil
}

func (p *fakePublisher) PublishReclassify(_ context.Context, documentID string) error {
	if p.publishErr != nil {
		return p.publishErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reclassified = append(p.reclassified, documentID)
	return nil
}

type stubClassifier struct {
	meta domain.ExtractedMetadata
	err  error
}

func (c *stubClassifier) Classify(context.Context, string, string) (domain.ExtractedMetadata, error) {
	return c.meta, c.err
}
