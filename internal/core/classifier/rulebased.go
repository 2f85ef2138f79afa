// Package classifier implements the rule-based metadata classifier and
// the fallback policy shared by all classifier backends.
package classifier

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/contractlens/legal-intel/internal/core/domain"
)

// RuleBased classifies document text against an injected taxonomy using
// ordered pattern matching. It is pure and deterministic: identical input
// always yields identical output, and no input ever produces an error.
type RuleBased struct {
	tax *domain.Taxonomy
}

func NewRuleBased(tax *domain.Taxonomy) *RuleBased {
	return &RuleBased{tax: tax}
}

// Classify maps text plus filename onto the four taxonomy domains. The
// agreement type consults the filename before the text; the other
// domains read the text only. A domain with no match stays nil.
func (c *RuleBased) Classify(_ context.Context, text, filename string) (domain.ExtractedMetadata, error) {
	return domain.ExtractedMetadata{
		AgreementType: c.agreementType(text, filename),
		GoverningLaw:  c.tax.MatchText(domain.CategoryJurisdiction, text),
		Industry:      c.tax.MatchText(domain.CategoryIndustry, text),
		Geography:     c.tax.MatchText(domain.CategoryGeography, text),
	}, nil
}

func (c *RuleBased) agreementType(text, filename string) *string {
	if label := c.tax.MatchText(domain.CategoryAgreementType, normalizeFilename(filename)); label != nil {
		return label
	}
	return c.tax.MatchText(domain.CategoryAgreementType, text)
}

// normalizeFilename strips the extension and folds separators to spaces
// so word-boundary patterns see "nda contract" in "nda_contract.pdf".
func normalizeFilename(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', '.':
			return ' '
		default:
			return r
		}
	}, base)
}
