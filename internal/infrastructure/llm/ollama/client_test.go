package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/contractlens/legal-intel/internal/core/domain"
	"github.com/contractlens/legal-intel/internal/infrastructure/resilience"
)

func newTestClassifier(t *testing.T, serverURL string) *Classifier {
	t.Helper()
	cfg := resilience.DefaultConfig()
	cfg.BreakerEnabled = false
	cfg.RetryMaxAttempts = 1
	return NewClassifier(New(serverURL, "test-model"), domain.DefaultTaxonomy(), resilience.NewExecutor(cfg))
}

func TestClassifyCoercesModelOutputToVocabulary(t *testing.T) {
	var capturedPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		capturedPrompt, _ = payload["prompt"].(string)
		_, _ = w.Write([]byte(`{"response":"{\"agreement_type\":\"nda\",\"governing_law\":\"Mars\",\"industry\":\"Technology\",\"geography\":null}"}`))
	}))
	defer server.Close()

	classifier := newTestClassifier(t, server.URL)
	meta, err := classifier.Classify(context.Background(), "some contract text", "contract.pdf")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	if meta.AgreementType == nil || *meta.AgreementType != "NDA" {
		t.Fatalf("expected agreement type NDA, got %v", meta.AgreementType)
	}
	if meta.GoverningLaw != nil {
		t.Fatalf("expected out-of-vocabulary governing law to coerce to nil, got %q", *meta.GoverningLaw)
	}
	if meta.Industry == nil || *meta.Industry != "Technology" {
		t.Fatalf("expected industry Technology, got %v", meta.Industry)
	}
	if meta.Geography != nil {
		t.Fatalf("expected nil geography, got %q", *meta.Geography)
	}

	if !strings.Contains(capturedPrompt, "contract.pdf") || !strings.Contains(capturedPrompt, "NDA") {
		t.Fatalf("unexpected prompt: %s", capturedPrompt)
	}
}

func TestClassifyWrapsServerErrorsAsTemporary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	classifier := newTestClassifier(t, server.URL)
	_, err := classifier.Classify(context.Background(), "text", "a.pdf")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected ErrTemporary, got %v", err)
	}
	if !strings.Contains(err.Error(), "model unavailable") {
		t.Fatalf("expected response body in error, got %v", err)
	}
}

func TestClassifyRejectsNonJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":"I cannot help with that."}`))
	}))
	defer server.Close()

	classifier := newTestClassifier(t, server.URL)
	_, err := classifier.Classify(context.Background(), "text", "a.pdf")
	if err == nil {
		t.Fatalf("expected parse error for non-JSON model output")
	}
}
