package classifier

import (
	"context"
	"testing"

	"github.com/contractlens/legal-intel/internal/core/domain"
)

func TestClassifyExtractsAllFourDomains(t *testing.T) {
	c := NewRuleBased(domain.DefaultTaxonomy())

	text := `This Master Services Agreement is entered into between the parties.
It shall be governed by the laws of the United Arab Emirates.
The supplier operates oil and gas facilities across the Middle East.`

	meta, err := c.Classify(context.Background(), text, "supplier_msa.pdf")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	assertLabel(t, "agreement type", meta.AgreementType, "MSA")
	assertLabel(t, "governing law", meta.GoverningLaw, "UAE")
	assertLabel(t, "industry", meta.Industry, "Oil & Gas")
	assertLabel(t, "geography", meta.Geography, "Middle East")
}

func TestClassifyPrefersFilenameForAgreementType(t *testing.T) {
	c := NewRuleBased(domain.DefaultTaxonomy())

	// The text mentions a license, but the filename says NDA.
	meta, err := c.Classify(context.Background(),
		"the receiving party holds a license to evaluate the materials",
		"nda_contract.pdf")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	assertLabel(t, "agreement type", meta.AgreementType, "NDA")
}

func TestClassifyFallsBackToTextWhenFilenameSaysNothing(t *testing.T) {
	c := NewRuleBased(domain.DefaultTaxonomy())

	meta, err := c.Classify(context.Background(),
		"this confidentiality agreement binds both parties", "scan-0042.pdf")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	assertLabel(t, "agreement type", meta.AgreementType, "NDA")
}

func TestClassifyUnmatchedTextYieldsEmptyMetadata(t *testing.T) {
	c := NewRuleBased(domain.DefaultTaxonomy())

	meta, err := c.Classify(context.Background(),
		"meeting notes from the quarterly review", "notes.pdf")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if !meta.IsEmpty() {
		t.Fatalf("expected empty metadata, got %+v", meta)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := NewRuleBased(domain.DefaultTaxonomy())
	text := "employment agreement under English law for a healthcare provider in Europe"

	first, err := c.Classify(context.Background(), text, "contract.docx")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := c.Classify(context.Background(), text, "contract.docx")
		if err != nil {
			t.Fatalf("Classify() error = %v", err)
		}
		if !sameLabel(first.AgreementType, again.AgreementType) ||
			!sameLabel(first.GoverningLaw, again.GoverningLaw) ||
			!sameLabel(first.Industry, again.Industry) ||
			!sameLabel(first.Geography, again.Geography) {
			t.Fatalf("classification drifted: %+v vs %+v", first, again)
		}
	}
}

func assertLabel(t *testing.T, field string, got *string, want string) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s = nil, want %q", field, want)
	}
	if *got != want {
		t.Fatalf("%s = %q, want %q", field, *got, want)
	}
}

func sameLabel(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
