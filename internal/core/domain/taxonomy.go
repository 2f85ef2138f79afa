package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Category identifies one metadata domain of the closed taxonomy.
// CategoryGeneral is only produced by query routing, never by
// classification.
type Category string

const (
	CategoryAgreementType Category = "agreement_type"
	CategoryJurisdiction  Category = "jurisdiction"
	CategoryIndustry      Category = "industry"
	CategoryGeography     Category = "geography"
	CategoryGeneral       Category = "general"
)

// LabelSpec declares one canonical label and the regex alternations that
// recognize it. Fragments are compiled case-insensitively with word
// boundaries on both sides, so "US" never matches inside "house".
type LabelSpec struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
}

// TaxonomySpec is the serializable form of the taxonomy. Label order is
// contractual: when several labels match the same text, the earliest
// declared label wins.
type TaxonomySpec struct {
	AgreementTypes []LabelSpec `yaml:"agreement_types"`
	Jurisdictions  []LabelSpec `yaml:"jurisdictions"`
	Industries     []LabelSpec `yaml:"industries"`
	Geographies    []LabelSpec `yaml:"geographies"`
}

type label struct {
	name     string
	patterns []*regexp.Regexp
	// mention matches the literal canonical name, used for value
	// extraction from questions.
	mention *regexp.Regexp
}

// Taxonomy is the compiled closed vocabulary shared by the classifier and
// the query router. Immutable after construction; build one at startup
// and inject it, never hold it as package state.
type Taxonomy struct {
	domains map[Category][]label
}

func CompileTaxonomy(spec TaxonomySpec) (*Taxonomy, error) {
	domains := make(map[Category][]label, 4)
	for _, part := range []struct {
		category Category
		specs    []LabelSpec
	}{
		{CategoryAgreementType, spec.AgreementTypes},
		{CategoryJurisdiction, spec.Jurisdictions},
		{CategoryIndustry, spec.Industries},
		{CategoryGeography, spec.Geographies},
	} {
		labels, err := compileLabels(part.category, part.specs)
		if err != nil {
			return nil, err
		}
		domains[part.category] = labels
	}
	return &Taxonomy{domains: domains}, nil
}

func compileLabels(category Category, specs []LabelSpec) ([]label, error) {
	labels := make([]label, 0, len(specs))
	for _, s := range specs {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("taxonomy %s: empty label name", category)
		}
		if len(s.Patterns) == 0 {
			return nil, fmt.Errorf("taxonomy %s: label %q has no patterns", category, name)
		}
		compiled := make([]*regexp.Regexp, 0, len(s.Patterns))
		for _, fragment := range s.Patterns {
			re, err := regexp.Compile(`(?i)\b(?:` + fragment + `)\b`)
			if err != nil {
				return nil, fmt.Errorf("taxonomy %s: label %q: compile %q: %w", category, name, fragment, err)
			}
			compiled = append(compiled, re)
		}
		labels = append(labels, label{
			name:     name,
			patterns: compiled,
			// s? tolerates plural mentions ("NDAs", "MSAs").
			mention: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `s?\b`),
		})
	}
	return labels, nil
}

// Labels returns the canonical label names of a domain in declared order.
func (t *Taxonomy) Labels(category Category) []string {
	labels := t.domains[category]
	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = l.name
	}
	return names
}

// MatchText returns the first declared label whose patterns match the
// text, or nil when none match. Empty text matches nothing.
func (t *Taxonomy) MatchText(category Category, text string) *string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	for _, l := range t.domains[category] {
		for _, re := range l.patterns {
			if re.MatchString(text) {
				name := l.name
				return &name
			}
		}
	}
	return nil
}

// Canonical maps a free-form value onto the domain's canonical label by
// case-insensitive name equality. Values outside the closed vocabulary
// yield nil.
func (t *Taxonomy) Canonical(category Category, raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	for _, l := range t.domains[category] {
		if strings.EqualFold(l.name, trimmed) {
			name := l.name
			return &name
		}
	}
	return nil
}

// FindMention scans a question for the literal canonical name of any
// label in the domain, in declared order.
func (t *Taxonomy) FindMention(category Category, question string) *string {
	if strings.TrimSpace(question) == "" {
		return nil
	}
	for _, l := range t.domains[category] {
		if l.mention.MatchString(question) {
			name := l.name
			return &name
		}
	}
	return nil
}

// DefaultTaxonomySpec is the built-in legal agreement vocabulary. The
// declaration order below is part of the classification contract.
func DefaultTaxonomySpec() TaxonomySpec {
	return TaxonomySpec{
		AgreementTypes: []LabelSpec{
			{Name: "NDA", Patterns: []string{`non[- ]disclosure`, `nda`, `confidentiality agreement`}},
			{Name: "MSA", Patterns: []string{`master services? agreement`, `msa`}},
			{Name: "Franchise Agreement", Patterns: []string{`franchise`}},
			{Name: "Employment Agreement", Patterns: []string{`employment`}},
			{Name: "License Agreement", Patterns: []string{`licen[cs]e`, `licen[cs]ing`}},
			{Name: "Service Agreement", Patterns: []string{`services? agreement`}},
			{Name: "Purchase Agreement", Patterns: []string{`purchase`}},
			{Name: "Lease Agreement", Patterns: []string{`lease`, `tenancy`}},
		},
		Jurisdictions: []LabelSpec{
			{Name: "UAE", Patterns: []string{`uae`, `united arab emirates`, `dubai`, `abu dhabi`}},
			{Name: "UK", Patterns: []string{`uk`, `united kingdom`, `england`, `english`, `wales`, `british`}},
			{Name: "US", Patterns: []string{`us`, `usa`, `united states`, `delaware`, `new york`, `california`}},
			{Name: "Singapore", Patterns: []string{`singapore`}},
			{Name: "Hong Kong", Patterns: []string{`hong kong`}},
			{Name: "Qatar", Patterns: []string{`qatar`, `doha`}},
			{Name: "Saudi Arabia", Patterns: []string{`saudi arabia`, `saudi`, `ksa`, `riyadh`}},
			{Name: "Kuwait", Patterns: []string{`kuwait`}},
			{Name: "Bahrain", Patterns: []string{`bahrain`}},
			{Name: "Oman", Patterns: []string{`oman`, `muscat`}},
		},
		Industries: []LabelSpec{
			{Name: "Technology", Patterns: []string{`technology`, `software`, `information technology`, `saas`, `telecommunications?`}},
			{Name: "Oil & Gas", Patterns: []string{`oil (?:and|&) gas`, `petroleum`, `oilfield`, `drilling`, `pipeline`}},
			{Name: "Healthcare", Patterns: []string{`healthcare`, `health care`, `medical`, `hospital`, `pharmaceutical`, `clinical`}},
			{Name: "Finance", Patterns: []string{`financial`, `finance`, `banking`, `investment`, `insurance`}},
			{Name: "Real Estate", Patterns: []string{`real estate`, `property development`, `realty`}},
			{Name: "Manufacturing", Patterns: []string{`manufacturing`, `manufacturer`, `industrial production`}},
			{Name: "Retail", Patterns: []string{`retail`, `e-?commerce`, `consumer goods`}},
			{Name: "Transportation", Patterns: []string{`transportation`, `logistics`, `shipping`, `freight`, `aviation`}},
		},
		Geographies: []LabelSpec{
			{Name: "Middle East", Patterns: []string{`middle east`, `middle[- ]eastern`, `gulf region`, `gcc`, `mena`}},
			{Name: "Europe", Patterns: []string{`europe`, `european`}},
			{Name: "Asia", Patterns: []string{`asia`, `asia[- ]pacific`, `apac`, `asian`}},
			{Name: "North America", Patterns: []string{`north america`, `north american`}},
			{Name: "Africa", Patterns: []string{`africa`, `african`}},
			{Name: "Australia", Patterns: []string{`australia`, `australian`, `oceania`}},
		},
	}
}

// DefaultTaxonomy compiles the built-in vocabulary. The table above is
// static and known-good, so a compile failure is a programming error.
func DefaultTaxonomy() *Taxonomy {
	tax, err := CompileTaxonomy(DefaultTaxonomySpec())
	if err != nil {
		panic(fmt.Sprintf("compile default taxonomy: %v", err))
	}
	return tax
}
