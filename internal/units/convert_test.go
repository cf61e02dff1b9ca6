package units

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Havardbaban/buildcarbon-sub000/constants"
	"github.com/Havardbaban/buildcarbon-sub000/internal/common"
	"github.com/Havardbaban/buildcarbon-sub000/internal/rules"
)

func newConverter() *Converter {
	return New(rules.Default(common.LoadConfig().Factors))
}

func TestNormalize(t *testing.T) {
	c := newConverter()

	tests := []struct {
		name  string
		token string
		qty   string
		unit  constants.Unit
		want  string
		ok    bool
	}{
		{"liter variants", "liter", "200", constants.UnitLiter, "200", true},
		{"short liter", "l", "200", constants.UnitLiter, "200", true},
		{"kilogram", "kg", "50", constants.UnitKilogram, "50", true},
		{"grams scale down", "g", "500", constants.UnitKilogram, "0.5", true},
		{"tonnes scale up", "tonn", "2", constants.UnitKilogram, "2000", true},
		{"pieces", "stk", "3", constants.UnitPiece, "3", true},
		{"kwh", "kwh", "1500", constants.UnitKilowattHour, "1500", true},
		{"cubic meter unicode", "m³", "85", constants.UnitCubicMeter, "85", true},
		{"trailing dot trimmed", "stk.", "3", constants.UnitPiece, "3", true},
		{"unknown token", "furlong", "7", "", "7", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qty := decimal.RequireFromString(tt.qty)
			unit, got, ok := c.Normalize(tt.token, qty)
			if ok != tt.ok {
				t.Fatalf("Normalize(%q) ok = %v, want %v", tt.token, ok, tt.ok)
			}
			if !ok {
				// raw value passes through unchanged
				if !got.Equal(qty) {
					t.Errorf("passthrough qty = %s, want %s", got, qty)
				}
				return
			}
			if unit != tt.unit {
				t.Errorf("unit = %s, want %s", unit, tt.unit)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("qty = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestConvertIdentity(t *testing.T) {
	c := newConverter()
	// kilogram to kilogram is a no-op; the gram scale-down only ever fires
	// for gram inputs at normalization time
	qty := decimal.RequireFromString("12.5")
	got, ok := c.Convert(qty, constants.UnitKilogram, constants.UnitKilogram, constants.Goods)
	if !ok || !got.Equal(qty) {
		t.Errorf("identity conversion = %s ok=%v, want %s ok=true", got, ok, qty)
	}
}

func TestConvertPieceToKilogram(t *testing.T) {
	c := newConverter()
	got, ok := c.Convert(decimal.NewFromInt(4), constants.UnitPiece, constants.UnitKilogram, constants.Goods)
	if !ok {
		t.Fatal("expected piece→kg to convert for goods")
	}
	if !got.Equal(decimal.RequireFromString("10")) {
		t.Errorf("4 pieces = %s kg, want 10 (2.5 kg per piece)", got)
	}
}

func TestConvertPieceToKilogramDisallowedCategory(t *testing.T) {
	c := newConverter()
	if _, ok := c.Convert(decimal.NewFromInt(4), constants.UnitPiece, constants.UnitKilogram, constants.Hotel); ok {
		t.Error("piece→kg must not apply outside the allowed categories")
	}
}

func TestConvertUnconvertible(t *testing.T) {
	c := newConverter()
	if _, ok := c.Convert(decimal.NewFromInt(10), constants.UnitLiter, constants.UnitKilowattHour, constants.Electricity); ok {
		t.Error("liter→kWh must be unconvertible")
	}
}
