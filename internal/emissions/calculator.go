// Package emissions turns resolved quantities into CO2-equivalent masses.
// Method selection is a strict priority chain: a stated mass always beats a
// derived one, energy beats fuel, fuel beats gas, and the category-factor
// path runs last. The calculator never defaults a missing quantity to 1 and
// never treats "no data" as zero; absence propagates as nil.
package emissions

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Havardbaban/buildcarbon-sub000/constants"
	"github.com/Havardbaban/buildcarbon-sub000/internal/entity"
	"github.com/Havardbaban/buildcarbon-sub000/internal/rules"
	"github.com/Havardbaban/buildcarbon-sub000/internal/units"
)

// method labels recorded on every computed value
const (
	SourceDirect     = "direct"
	SourceEnergyGrid = "energy_grid"
	SourceFuelDiesel = "fuel_diesel"
	SourceFuelPetrol = "fuel_petrol"
	SourceGas        = "gas"
	SourceFactor     = "category_factor"
)

type Config struct {
	GridKgPerKwh     decimal.Decimal
	DieselKgPerLiter decimal.Decimal
	PetrolKgPerLiter decimal.Decimal
	GasKgPerM3       decimal.Decimal
}

type Calculator struct {
	logger *slog.Logger
	cfg    Config
	table  *rules.Table
	conv   *units.Converter
}

func New(logger *slog.Logger, cfg Config, table *rules.Table) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{logger: logger, cfg: cfg, table: table, conv: units.New(table)}
}

// Estimate holds one computed CO2 mass with its provenance.
type Estimate struct {
	CO2Kg    decimal.Decimal
	Source   string
	FactorID *string
}

// Input is everything the method chain may draw on for one calculation.
type Input struct {
	StatedCO2Kg *decimal.Decimal // carried over from upstream, wins outright
	EnergyKwh   *decimal.Decimal
	FuelLiters  *decimal.Decimal
	GasM3       *decimal.Decimal
	Context     string // surrounding text, sniffed for diesel vs petrol
}

// Compute walks the method chain and returns the first applicable estimate,
// rounded to 1 decimal. Nil when no method applies.
func (c *Calculator) Compute(in Input) *Estimate {
	if in.StatedCO2Kg != nil {
		return c.estimate(*in.StatedCO2Kg, SourceDirect, nil)
	}
	if in.EnergyKwh != nil {
		return c.estimate(in.EnergyKwh.Mul(c.cfg.GridKgPerKwh), SourceEnergyGrid, nil)
	}
	if in.FuelLiters != nil {
		factor, source := c.cfg.PetrolKgPerLiter, SourceFuelPetrol
		if strings.Contains(strings.ToLower(in.Context), "diesel") {
			factor, source = c.cfg.DieselKgPerLiter, SourceFuelDiesel
		}
		return c.estimate(in.FuelLiters.Mul(factor), source, nil)
	}
	if in.GasM3 != nil {
		return c.estimate(in.GasM3.Mul(c.cfg.GasKgPerM3), SourceGas, nil)
	}
	return nil
}

// ComputeLine enriches one classified line item. The line path prefers the
// generic method chain when the line itself states a quantity in kWh, liters
// or m³, then falls back to the category's factor times the quantity
// converted into the factor's unit.
func (c *Calculator) ComputeLine(item entity.LineItem, rule *rules.CategoryRule, stated *decimal.Decimal) *Estimate {
	in := Input{StatedCO2Kg: stated, Context: item.Description + " " + string(rule.Category)}
	if item.Quantity != nil && item.Unit != nil {
		switch *item.Unit {
		case constants.UnitKilowattHour:
			in.EnergyKwh = item.Quantity
		case constants.UnitLiter:
			if rule.Category == constants.FuelDiesel || rule.Category == constants.FuelPetrol {
				in.FuelLiters = item.Quantity
			}
		case constants.UnitCubicMeter:
			if rule.Category == constants.NaturalGas {
				in.GasM3 = item.Quantity
			}
		}
	}
	if est := c.Compute(in); est != nil {
		return est
	}
	return c.fromFactor(item, rule)
}

// fromFactor is the last tier: category factor × quantity converted into the
// factor's unit. No quantity, no factor, or an unconvertible unit all yield
// nil, never a fabricated value.
func (c *Calculator) fromFactor(item entity.LineItem, rule *rules.CategoryRule) *Estimate {
	if item.Quantity == nil {
		return nil
	}
	factor := rule.Factor
	if factor == nil {
		f, ok := c.table.FactorFor(rule.Category)
		if !ok {
			return nil
		}
		factor = f
	}

	qty := *item.Quantity
	if item.Unit != nil {
		converted, ok := c.conv.Convert(qty, *item.Unit, factor.Unit, rule.Category)
		if !ok {
			c.logger.Debug("emissions.unconvertible",
				"unit", string(*item.Unit), "factor_unit", string(factor.Unit),
				"category", string(rule.Category),
			)
			return nil
		}
		qty = converted
	}
	// nil normalized unit: assume the quantity is already in the factor's
	// unit, a known-imprecise last resort

	return c.estimate(qty.Mul(factor.KgCO2PerUnit), SourceFactor, &factor.ID)
}

func (c *Calculator) estimate(kg decimal.Decimal, source string, factorID *string) *Estimate {
	return &Estimate{CO2Kg: kg.Round(1), Source: source, FactorID: factorID}
}
