// Package units maps raw invoice unit tokens onto the canonical unit set and
// converts quantities between canonical units where a defined rule exists.
package units

import (
	"github.com/shopspring/decimal"

	"github.com/Havardbaban/buildcarbon-sub000/constants"
	"github.com/Havardbaban/buildcarbon-sub000/internal/rules"
)

type Converter struct {
	table *rules.Table
}

func New(table *rules.Table) *Converter {
	return &Converter{table: table}
}

// Normalize resolves a raw token to its canonical unit and the quantity in
// that unit ("200 g" becomes 0.2 kg). Unrecognized tokens return ok=false;
// the caller passes the raw value through with a nil normalized unit.
func (c *Converter) Normalize(token string, qty decimal.Decimal) (constants.Unit, decimal.Decimal, bool) {
	alias, ok := c.table.LookupUnit(token)
	if !ok {
		return "", qty, false
	}
	return alias.Unit, qty.Mul(alias.Multiplier), true
}

// Convert moves a quantity from one canonical unit to another. Identity
// conversions always succeed. Piece→kilogram applies the assumed per-piece
// mass, and only for categories the rule table allows it for. Everything
// else is unconvertible: ok=false, and the caller must emit no value rather
// than a wrong one.
func (c *Converter) Convert(qty decimal.Decimal, from, to constants.Unit, cat constants.Category) (decimal.Decimal, bool) {
	if from == to {
		return qty, true
	}
	if from == constants.UnitPiece && to == constants.UnitKilogram && c.table.AllowsPieceMass(cat) {
		return qty.Mul(c.table.PieceMassKg), true
	}
	return decimal.Decimal{}, false
}
