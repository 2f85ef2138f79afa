package ollama

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/contractlens/legal-intel/internal/core/domain"
	"github.com/contractlens/legal-intel/internal/infrastructure/resilience"
)

// Classifier asks the model for the four metadata fields and then folds
// every returned value back onto the closed taxonomy. Model output
// outside the vocabulary becomes nil, never an error.
type Classifier struct {
	client   *Client
	tax      *domain.Taxonomy
	executor *resilience.Executor
}

func NewClassifier(client *Client, tax *domain.Taxonomy, executor *resilience.Executor) *Classifier {
	return &Classifier{client: client, tax: tax, executor: executor}
}

type extractionResponse struct {
	AgreementType *string `json:"agreement_type"`
	GoverningLaw  *string `json:"governing_law"`
	Industry      *string `json:"industry"`
	Geography     *string `json:"geography"`
}

func (c *Classifier) Classify(ctx context.Context, text, filename string) (domain.ExtractedMetadata, error) {
	prompt := buildExtractionPrompt(text, filename,
		c.tax.Labels(domain.CategoryAgreementType),
		c.tax.Labels(domain.CategoryJurisdiction),
		c.tax.Labels(domain.CategoryIndustry),
		c.tax.Labels(domain.CategoryGeography),
	)

	var raw string
	err := c.executor.Execute(ctx, "ollama_extract", func(ctx context.Context) error {
		var genErr error
		raw, genErr = c.client.generateJSON(ctx, prompt)
		return genErr
	}, classifyOllamaError)
	if err != nil {
		return domain.ExtractedMetadata{}, wrapTemporaryIfNeeded("classify document", err)
	}

	var parsed extractionResponse
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &parsed); err != nil {
		return domain.ExtractedMetadata{}, fmt.Errorf("parse extraction json: %w", err)
	}

	return domain.ExtractedMetadata{
		AgreementType: c.canonical(domain.CategoryAgreementType, parsed.AgreementType),
		GoverningLaw:  c.canonical(domain.CategoryJurisdiction, parsed.GoverningLaw),
		Industry:      c.canonical(domain.CategoryIndustry, parsed.Industry),
		Geography:     c.canonical(domain.CategoryGeography, parsed.Geography),
	}, nil
}

func (c *Classifier) canonical(category domain.Category, raw *string) *string {
	if raw == nil {
		return nil
	}
	return c.tax.Canonical(category, *raw)
}
