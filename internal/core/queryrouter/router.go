// Package queryrouter maps free-text questions onto structured filter
// intents over the metadata taxonomy.
package queryrouter

import (
	"regexp"
	"strings"

	"github.com/contractlens/legal-intel/internal/core/domain"
)

// trigger pairs a category with the question pattern that selects it.
// Detection order is fixed: jurisdiction, agreement type, industry,
// geography. The first matching trigger wins; no match routes to the
// general category.
type trigger struct {
	category domain.Category
	pattern  *regexp.Regexp
}

// Router routes questions against an injected taxonomy. Routing is a
// total function: every input string maps to exactly one category and a
// value-or-nil.
type Router struct {
	tax      *domain.Taxonomy
	triggers []trigger
}

func New(tax *domain.Taxonomy) *Router {
	return &Router{
		tax: tax,
		triggers: []trigger{
			{domain.CategoryJurisdiction, regexp.MustCompile(`(?i)\b(governed by|governing law|jurisdictions?|laws?|courts?)\b`)},
			{domain.CategoryAgreementType, regexp.MustCompile(`(?i)\b(agreement types?|types? of (agreements?|contracts?)|ndas?|msas?|franchise|employment|licen[cs]es?|licen[cs]ing|service agreements?|purchase|lease)\b`)},
			{domain.CategoryIndustry, regexp.MustCompile(`(?i)\b(industry|industries|sector|technology|software|oil|gas|petroleum|healthcare|medical|finance|financial|banking|real estate|manufacturing|retail|transportation|logistics)\b`)},
			{domain.CategoryGeography, regexp.MustCompile(`(?i)\b(geograph(y|ies)|regions?|middle east|europe|asia|north america|africa|australia)\b`)},
		},
	}
}

// Route detects the question's category and extracts its target value.
// The value is the first canonical label of the detected category whose
// literal name appears in the question; a detected category with no
// resolvable value keeps a nil value, which resolves to an empty result.
func (r *Router) Route(question string) domain.QueryIntent {
	q := strings.TrimSpace(question)
	if q == "" {
		return domain.QueryIntent{Category: domain.CategoryGeneral}
	}
	for _, t := range r.triggers {
		if t.pattern.MatchString(q) {
			return domain.QueryIntent{
				Category: t.category,
				Value:    r.tax.FindMention(t.category, q),
			}
		}
	}
	return domain.QueryIntent{Category: domain.CategoryGeneral}
}
