package lineitem

import (
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Havardbaban/buildcarbon-sub000/constants"
	"github.com/Havardbaban/buildcarbon-sub000/internal/common"
	"github.com/Havardbaban/buildcarbon-sub000/internal/rules"
	"github.com/Havardbaban/buildcarbon-sub000/internal/textnorm"
)

func newSegmenter(t *testing.T) *Segmenter {
	t.Helper()
	table := rules.Default(common.LoadConfig().Factors)
	return New(slog.Default(), Config{}, table)
}

func TestSegmentClassification(t *testing.T) {
	s := newSegmenter(t)

	tests := []struct {
		name     string
		line     string
		category constants.Category
		scope    int
	}{
		{"diesel line", "Diesel 200 liter", constants.FuelDiesel, 1},
		{"electricity line", "Byggstrøm mars 1500 kwh", constants.Electricity, 2},
		{"hotel line", "Hotell overnatting 2 stk", constants.Hotel, 3},
		{"goods line", "Betong B30 12 m3", constants.Goods, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := s.Segment([]string{tt.line})
			if len(segs) != 1 {
				t.Fatalf("got %d segments, want 1", len(segs))
			}
			if segs[0].Rule.Category != tt.category {
				t.Errorf("category = %s, want %s", segs[0].Rule.Category, tt.category)
			}
			if segs[0].Rule.Scope != tt.scope {
				t.Errorf("scope = %d, want %d", segs[0].Rule.Scope, tt.scope)
			}
		})
	}
}

func TestSegmentDiscards(t *testing.T) {
	s := newSegmenter(t)

	tests := []struct {
		name string
		line string
	}{
		{"too short", "Diesel"},
		{"no keyword match", "Ukjent vare 3 stk"},
		{"total line", "Totalt diesel kr 5 000,00"},
		{"org number line", "Org.nr 987 654 321 diesel"},
		{"date line", "15.03.2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if segs := s.Segment([]string{tt.line}); len(segs) != 0 {
				t.Errorf("line %q produced %d segments, want 0", tt.line, len(segs))
			}
		})
	}
}

func TestSegmentQuantityAndUnit(t *testing.T) {
	s := newSegmenter(t)
	segs := s.Segment(textnorm.Lines("Diesel 200 liter\n"))
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	item := segs[0].Item
	if item.Description != "Diesel" {
		t.Errorf("description = %q, want %q", item.Description, "Diesel")
	}
	if item.Quantity == nil || !item.Quantity.Equal(decimal.NewFromInt(200)) {
		t.Errorf("quantity = %v, want 200", item.Quantity)
	}
	if item.UnitRaw == nil || *item.UnitRaw != "liter" {
		t.Errorf("unit raw = %v, want liter", item.UnitRaw)
	}
}

func TestSegmentDecimalQuantity(t *testing.T) {
	s := newSegmenter(t)
	segs := s.Segment(textnorm.Lines("Anleggsdiesel 12,5 liter\n"))
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	item := segs[0].Item
	if item.Quantity == nil || !item.Quantity.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("quantity = %v, want 12.5", item.Quantity)
	}
}

func TestSegmentDescriptionFallsBackToLine(t *testing.T) {
	s := newSegmenter(t)
	segs := s.Segment([]string{"Dieselavgift uten mengde"})
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	item := segs[0].Item
	if item.Description != "Dieselavgift uten mengde" {
		t.Errorf("description = %q, want whole line", item.Description)
	}
	if item.Quantity != nil || item.UnitRaw != nil {
		t.Errorf("expected no quantity/unit, got %v %v", item.Quantity, item.UnitRaw)
	}
}

func TestSegmentFirstKeywordWins(t *testing.T) {
	s := newSegmenter(t)
	// "diesel" appears before the electricity table entry can match "energi"
	segs := s.Segment([]string{"Diesel til energiproduksjon 100 liter"})
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	if segs[0].Rule.Category != constants.FuelDiesel {
		t.Errorf("category = %s, want %s", segs[0].Rule.Category, constants.FuelDiesel)
	}
}

func TestSegmentAmountFromCurrencyMarker(t *testing.T) {
	s := newSegmenter(t)
	segs := s.Segment([]string{"Diesel kr 5 360,00 200 liter"})
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	item := segs[0].Item
	if item.Quantity == nil || !item.Quantity.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("quantity = %v, want 200", item.Quantity)
	}
	if item.Amount == nil || !item.Amount.Equal(decimal.RequireFromString("5360")) {
		t.Errorf("amount = %v, want 5360", item.Amount)
	}
}
