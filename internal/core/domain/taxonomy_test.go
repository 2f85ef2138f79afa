package domain

import "testing"

func TestMatchTextRespectsWordBoundaries(t *testing.T) {
	tax := DefaultTaxonomy()

	if got := tax.MatchText(CategoryJurisdiction, "a quiet house in the countryside"); got != nil {
		t.Fatalf("expected no jurisdiction match in 'house', got %q", *got)
	}
	if got := tax.MatchText(CategoryJurisdiction, "disputes go to US courts"); got == nil || *got != "US" {
		t.Fatalf("expected US, got %v", got)
	}
}

func TestMatchTextPrefersEarliestDeclaredLabel(t *testing.T) {
	spec := TaxonomySpec{
		AgreementTypes: []LabelSpec{
			{Name: "First", Patterns: []string{`shared term`}},
			{Name: "Second", Patterns: []string{`shared term`}},
		},
		Jurisdictions: []LabelSpec{{Name: "X", Patterns: []string{`x`}}},
		Industries:    []LabelSpec{{Name: "Y", Patterns: []string{`y`}}},
		Geographies:   []LabelSpec{{Name: "Z", Patterns: []string{`z`}}},
	}
	tax, err := CompileTaxonomy(spec)
	if err != nil {
		t.Fatalf("CompileTaxonomy() error = %v", err)
	}

	got := tax.MatchText(CategoryAgreementType, "document with a SHARED TERM inside")
	if got == nil || *got != "First" {
		t.Fatalf("expected First, got %v", got)
	}
}

func TestMatchTextFoldsCityMentionsToJurisdiction(t *testing.T) {
	tax := DefaultTaxonomy()

	if got := tax.MatchText(CategoryJurisdiction, "disputes are heard in Dubai courts"); got == nil || *got != "UAE" {
		t.Fatalf("expected UAE, got %v", got)
	}
	if got := tax.MatchText(CategoryJurisdiction, "under the exclusive jurisdiction of Riyadh"); got == nil || *got != "Saudi Arabia" {
		t.Fatalf("expected Saudi Arabia, got %v", got)
	}
}

func TestMatchTextEmptyTextMatchesNothing(t *testing.T) {
	tax := DefaultTaxonomy()
	for _, category := range []Category{CategoryAgreementType, CategoryJurisdiction, CategoryIndustry, CategoryGeography} {
		if got := tax.MatchText(category, "   "); got != nil {
			t.Fatalf("category %s matched %q on blank text", category, *got)
		}
	}
}

func TestCanonicalFoldsCaseAndRejectsUnknownValues(t *testing.T) {
	tax := DefaultTaxonomy()

	if got := tax.Canonical(CategoryAgreementType, "nda"); got == nil || *got != "NDA" {
		t.Fatalf("expected NDA, got %v", got)
	}
	if got := tax.Canonical(CategoryJurisdiction, " uae "); got == nil || *got != "UAE" {
		t.Fatalf("expected UAE, got %v", got)
	}
	if got := tax.Canonical(CategoryIndustry, "Astrology"); got != nil {
		t.Fatalf("expected nil for unknown value, got %q", *got)
	}
}

func TestFindMentionScansDeclaredOrder(t *testing.T) {
	tax := DefaultTaxonomy()

	if got := tax.FindMention(CategoryJurisdiction, "Which agreements are governed by UAE law?"); got == nil || *got != "UAE" {
		t.Fatalf("expected UAE, got %v", got)
	}
	if got := tax.FindMention(CategoryGeography, "anything about the Middle East region?"); got == nil || *got != "Middle East" {
		t.Fatalf("expected Middle East, got %v", got)
	}
	if got := tax.FindMention(CategoryJurisdiction, "what agreement types do we have?"); got != nil {
		t.Fatalf("expected no mention, got %q", *got)
	}
}

func TestCompileTaxonomyRejectsBrokenSpecs(t *testing.T) {
	cases := []struct {
		name string
		spec TaxonomySpec
	}{
		{"empty label name", TaxonomySpec{AgreementTypes: []LabelSpec{{Name: " ", Patterns: []string{`x`}}}}},
		{"no patterns", TaxonomySpec{AgreementTypes: []LabelSpec{{Name: "NDA"}}}},
		{"invalid regex", TaxonomySpec{AgreementTypes: []LabelSpec{{Name: "NDA", Patterns: []string{`(`}}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := CompileTaxonomy(tc.spec); err == nil {
				t.Fatalf("expected compile error")
			}
		})
	}
}

func TestLabelsReturnsDeclaredOrder(t *testing.T) {
	tax := DefaultTaxonomy()
	labels := tax.Labels(CategoryAgreementType)
	if len(labels) == 0 || labels[0] != "NDA" || labels[1] != "MSA" {
		t.Fatalf("unexpected label order: %v", labels)
	}
}
