package constants

import (
	"strings"
)

type Category string

const (
	FuelDiesel  Category = "fuel_diesel"
	FuelPetrol  Category = "fuel_petrol"
	Electricity Category = "electricity"
	NaturalGas  Category = "natural_gas"
	Travel      Category = "travel"
	Hotel       Category = "hotel"
	Waste       Category = "waste"
	Goods       Category = "goods"
	Services    Category = "services"
)

var allCategories = []Category{
	FuelDiesel,
	FuelPetrol,
	Electricity,
	NaturalGas,
	Travel,
	Hotel,
	Waste,
	Goods,
	Services,
}

// Scope returns the GHG-protocol scope for a category:
// 1 = direct combustion, 2 = purchased energy, 3 = value chain.
func (c Category) Scope() int {
	switch c {
	case FuelDiesel, FuelPetrol, NaturalGas:
		return 1
	case Electricity:
		return 2
	default:
		return 3
	}
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

func Canonicalize(input string) (Category, bool) {
	if input == "" {
		return "", false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	// synonyms map
	synonyms := map[string]Category{
		"fuel":        FuelDiesel,
		"diesel":      FuelDiesel,
		"petrol":      FuelPetrol,
		"gasoline":    FuelPetrol,
		"bensin":      FuelPetrol,
		"power":       Electricity,
		"strøm":       Electricity,
		"gas":         NaturalGas,
		"flight":      Travel,
		"taxi":        Travel,
		"lodging":     Hotel,
		"overnatting": Hotel,
		"avfall":      Waste,
		"materials":   Goods,
		"varer":       Goods,
		"tjenester":   Services,
	}

	if cat, ok := synonyms[normalized]; ok {
		return cat, true
	}

	for _, cat := range allCategories {
		if normalized == strings.ToLower(string(cat)) {
			return cat, true
		}
	}

	return "", false
}
