// Package rules holds the classification data the extraction pipeline is
// constructed with: category keyword rules, unit aliases, emission factors
// and conversion constants. The table is plain data so deployments can swap
// category and unit mappings without touching extraction logic; JSON input
// is validated against a schema before use.
package rules

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Havardbaban/buildcarbon-sub000/constants"
)

// Factor is reference data: kg CO2e per one unit of activity.
type Factor struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Unit         constants.Unit  `json:"unit"`
	KgCO2PerUnit decimal.Decimal `json:"kg_co2_per_unit"`
	Source       string          `json:"source,omitempty"`
}

// CategoryRule maps description keywords to an emission category, its GHG
// scope and a default factor. First matching keyword wins.
type CategoryRule struct {
	Category constants.Category `json:"category"`
	Scope    int                `json:"scope"`
	Keywords []string           `json:"keywords"`
	Factor   *Factor            `json:"factor,omitempty"`
}

// UnitAlias maps one raw unit token to a canonical unit. Multiplier converts
// the raw quantity into the canonical unit (grams carry 0.001 into kg).
type UnitAlias struct {
	Unit       constants.Unit  `json:"unit"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

// Table is the full rule set. Immutable after construction.
type Table struct {
	Categories []CategoryRule       `json:"categories"`
	Units      map[string]UnitAlias `json:"units"`

	// PieceMassKg is the assumed mass of one piece when converting
	// piece-counted lines into kilograms; applies only to the listed
	// categories. A placeholder constant in provenance, hence data here.
	PieceMassKg         decimal.Decimal      `json:"piece_mass_kg"`
	PieceMassCategories []constants.Category `json:"piece_mass_categories"`
}

// Match returns the first category rule whose keyword occurs in the line,
// case-insensitively. A line never matches more than one rule.
func (t *Table) Match(line string) (*CategoryRule, bool) {
	lower := strings.ToLower(line)
	for i := range t.Categories {
		for _, kw := range t.Categories[i].Keywords {
			if strings.Contains(lower, kw) {
				return &t.Categories[i], true
			}
		}
	}
	return nil, false
}

// LookupUnit resolves a raw unit token to its canonical unit and multiplier.
func (t *Table) LookupUnit(token string) (UnitAlias, bool) {
	a, ok := t.Units[strings.ToLower(strings.TrimSuffix(strings.TrimSpace(token), "."))]
	return a, ok
}

// FactorFor returns the default factor attached to a category's rule.
func (t *Table) FactorFor(cat constants.Category) (*Factor, bool) {
	for i := range t.Categories {
		if t.Categories[i].Category == cat && t.Categories[i].Factor != nil {
			return t.Categories[i].Factor, true
		}
	}
	return nil, false
}

// AllowsPieceMass reports whether piece→kilogram conversion applies to cat.
func (t *Table) AllowsPieceMass(cat constants.Category) bool {
	for _, c := range t.PieceMassCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// UnitTokens returns the known raw unit tokens, longest first, for building
// the segmenter's trailing quantity+unit pattern.
func (t *Table) UnitTokens() []string {
	tokens := make([]string, 0, len(t.Units))
	for tok := range t.Units {
		tokens = append(tokens, tok)
	}
	// longest-first so "kwh" wins over "kg" prefix overlaps in alternation
	for i := 0; i < len(tokens); i++ {
		for j := i + 1; j < len(tokens); j++ {
			if len(tokens[j]) > len(tokens[i]) || (len(tokens[j]) == len(tokens[i]) && tokens[j] < tokens[i]) {
				tokens[i], tokens[j] = tokens[j], tokens[i]
			}
		}
	}
	return tokens
}
