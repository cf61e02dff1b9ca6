package constants

import "testing"

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"fuel_diesel", FuelDiesel, true},
		{"Diesel", FuelDiesel, true},
		{"bensin", FuelPetrol, true},
		{"strøm", Electricity, true},
		{"  overnatting  ", Hotel, true},
		{"varer", Goods, true},
		{"spaceflight", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Canonicalize(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestScope(t *testing.T) {
	tests := []struct {
		cat  Category
		want int
	}{
		{FuelDiesel, 1},
		{FuelPetrol, 1},
		{NaturalGas, 1},
		{Electricity, 2},
		{Travel, 3},
		{Hotel, 3},
		{Waste, 3},
		{Goods, 3},
		{Services, 3},
	}
	for _, tt := range tests {
		if got := tt.cat.Scope(); got != tt.want {
			t.Errorf("%s.Scope() = %d, want %d", tt.cat, got, tt.want)
		}
	}
}

func TestUnitValid(t *testing.T) {
	for _, u := range AllUnits() {
		if !u.Valid() {
			t.Errorf("%s should be valid", u)
		}
	}
	if Unit("furlong").Valid() {
		t.Error("furlong should not be valid")
	}
}
