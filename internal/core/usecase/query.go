package usecase

import (
	"context"
	"fmt"

	"github.com/contractlens/legal-intel/internal/core/domain"
	"github.com/contractlens/legal-intel/internal/core/ports"
	"github.com/contractlens/legal-intel/internal/core/queryrouter"
)

// QueryUseCase routes a question and resolves the intent against the
// document store.
type QueryUseCase struct {
	router *queryrouter.Router
	repo   ports.DocumentRepository
}

func NewQueryUseCase(router *queryrouter.Router, repo ports.DocumentRepository) *QueryUseCase {
	return &QueryUseCase{router: router, repo: repo}
}

func (uc *QueryUseCase) Ask(ctx context.Context, question string) (domain.QueryIntent, []domain.ResultRecord, error) {
	intent := uc.router.Route(question)
	docs, err := uc.resolve(ctx, intent)
	if err != nil {
		return intent, nil, err
	}

	results := make([]domain.ResultRecord, 0, len(docs))
	for _, doc := range docs {
		results = append(results, domain.ResultFromDocument(doc))
	}
	return intent, results, nil
}

// resolve applies the intent as a store lookup. The category switch is
// deliberately closed: each known category names its column explicitly,
// and the jurisdiction category matches either alias column.
func (uc *QueryUseCase) resolve(ctx context.Context, intent domain.QueryIntent) ([]domain.Document, error) {
	if intent.Category == domain.CategoryGeneral {
		docs, err := uc.repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}
		return docs, nil
	}

	if intent.Value == nil {
		return nil, nil
	}

	var (
		docs []domain.Document
		err  error
	)
	switch intent.Category {
	case domain.CategoryJurisdiction:
		docs, err = uc.repo.FindByJurisdiction(ctx, *intent.Value)
	case domain.CategoryAgreementType:
		docs, err = uc.repo.FindByField(ctx, domain.FieldAgreementType, *intent.Value)
	case domain.CategoryIndustry:
		docs, err = uc.repo.FindByField(ctx, domain.FieldIndustry, *intent.Value)
	case domain.CategoryGeography:
		docs, err = uc.repo.FindByField(ctx, domain.FieldGeography, *intent.Value)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("filter documents by %s: %w", intent.Category, err)
	}
	return docs, nil
}
