package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/contractlens/legal-intel/internal/core/domain"
)

type failingClassifier struct {
	err error
}

func (f *failingClassifier) Classify(context.Context, string, string) (domain.ExtractedMetadata, error) {
	return domain.ExtractedMetadata{}, f.err
}

func TestFallbackDegradesBackendFailureToEmptyMetadata(t *testing.T) {
	f := WithFallback(&failingClassifier{err: errors.New("backend down")})

	meta, err := f.Classify(context.Background(), "some text", "a.pdf")
	if err != nil {
		t.Fatalf("expected degraded success, got error %v", err)
	}
	if !meta.IsEmpty() {
		t.Fatalf("expected empty metadata, got %+v", meta)
	}
}

func TestFallbackPassesThroughSuccess(t *testing.T) {
	f := WithFallback(NewRuleBased(domain.DefaultTaxonomy()))

	meta, err := f.Classify(context.Background(), "non-disclosure agreement", "a.pdf")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if meta.AgreementType == nil || *meta.AgreementType != "NDA" {
		t.Fatalf("expected NDA, got %v", meta.AgreementType)
	}
}
