package usecase

import (
	"context"
	"fmt"

	"github.com/contractlens/legal-intel/internal/core/domain"
	"github.com/contractlens/legal-intel/internal/core/ports"
)

// DashboardUseCase aggregates stored metadata into per-label counts.
type DashboardUseCase struct {
	repo ports.DocumentRepository
}

func NewDashboardUseCase(repo ports.DocumentRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

func (uc *DashboardUseCase) Aggregate(ctx context.Context) (domain.DashboardCounts, error) {
	docs, err := uc.repo.List(ctx)
	if err != nil {
		return domain.DashboardCounts{}, fmt.Errorf("list documents: %w", err)
	}

	counts := domain.DashboardCounts{
		AgreementTypes: map[string]int{},
		GoverningLaws:  map[string]int{},
		Industries:     map[string]int{},
		Geographies:    map[string]int{},
	}
	for _, doc := range docs {
		countLabel(counts.AgreementTypes, doc.AgreementType)
		countLabel(counts.GoverningLaws, doc.GoverningLaw)
		countLabel(counts.Industries, doc.Industry)
		countLabel(counts.Geographies, doc.Geography)
	}
	return counts, nil
}

func countLabel(counts map[string]int, label *string) {
	if label == nil {
		return
	}
	counts[*label]++
}
