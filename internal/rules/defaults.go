package rules

import (
	"github.com/shopspring/decimal"

	"github.com/Havardbaban/buildcarbon-sub000/constants"
	"github.com/Havardbaban/buildcarbon-sub000/internal/common"
)

// Default builds the compiled-in rule table from factor configuration.
// Factor magnitudes come from config so deployments can override the
// placeholder defaults without shipping a JSON table.
func Default(fc common.FactorConfig) *Table {
	diesel := decimal.NewFromFloat(fc.DieselKgPerLiter)
	petrol := decimal.NewFromFloat(fc.PetrolKgPerLiter)
	grid := decimal.NewFromFloat(fc.GridKgPerKwh)
	gas := decimal.NewFromFloat(fc.GasKgPerM3)

	return &Table{
		Categories: []CategoryRule{
			{
				Category: constants.FuelDiesel,
				Scope:    constants.FuelDiesel.Scope(),
				Keywords: []string{"diesel", "anleggsdiesel", "hvo"},
				Factor: &Factor{
					ID: "fuel-diesel-l", Name: "Diesel", Unit: constants.UnitLiter,
					KgCO2PerUnit: diesel, Source: "default table",
				},
			},
			{
				Category: constants.FuelPetrol,
				Scope:    constants.FuelPetrol.Scope(),
				Keywords: []string{"bensin", "petrol", "gasoline", "drivstoff", "fuel"},
				Factor: &Factor{
					ID: "fuel-petrol-l", Name: "Petrol", Unit: constants.UnitLiter,
					KgCO2PerUnit: petrol, Source: "default table",
				},
			},
			{
				Category: constants.Electricity,
				Scope:    constants.Electricity.Scope(),
				Keywords: []string{"strøm", "elektrisitet", "electricity", "energi", "kraft", "byggstrøm"},
				Factor: &Factor{
					ID: "grid-kwh", Name: "Grid electricity", Unit: constants.UnitKilowattHour,
					KgCO2PerUnit: grid, Source: "default table",
				},
			},
			{
				Category: constants.NaturalGas,
				Scope:    constants.NaturalGas.Scope(),
				Keywords: []string{"naturgass", "natural gas", "propan", "lpg", "gass"},
				Factor: &Factor{
					ID: "gas-m3", Name: "Natural gas", Unit: constants.UnitCubicMeter,
					KgCO2PerUnit: gas, Source: "default table",
				},
			},
			{
				Category: constants.Travel,
				Scope:    constants.Travel.Scope(),
				Keywords: []string{"flight", "fly", "taxi", "togbillett", "reise", "travel", "kilometergodtgjørelse"},
			},
			{
				Category: constants.Hotel,
				Scope:    constants.Hotel.Scope(),
				Keywords: []string{"hotel", "hotell", "overnatting", "lodging"},
			},
			{
				Category: constants.Waste,
				Scope:    constants.Waste.Scope(),
				Keywords: []string{"avfall", "waste", "deponi", "restavfall", "container"},
				Factor: &Factor{
					ID: "waste-kg", Name: "Mixed waste", Unit: constants.UnitKilogram,
					KgCO2PerUnit: decimal.NewFromFloat(0.5), Source: "default table",
				},
			},
			{
				Category: constants.Goods,
				Scope:    constants.Goods.Scope(),
				Keywords: []string{"sement", "cement", "betong", "concrete", "stål", "steel", "trevirke", "timber", "gips", "isolasjon", "materialer"},
				Factor: &Factor{
					ID: "goods-kg", Name: "Construction goods", Unit: constants.UnitKilogram,
					KgCO2PerUnit: decimal.NewFromFloat(0.8), Source: "default table",
				},
			},
			{
				Category: constants.Services,
				Scope:    constants.Services.Scope(),
				Keywords: []string{"konsulent", "consulting", "rådgivning", "tjeneste", "service", "montering"},
			},
		},
		Units: map[string]UnitAlias{
			"l":        {Unit: constants.UnitLiter, Multiplier: decimal.NewFromInt(1)},
			"liter":    {Unit: constants.UnitLiter, Multiplier: decimal.NewFromInt(1)},
			"litre":    {Unit: constants.UnitLiter, Multiplier: decimal.NewFromInt(1)},
			"ltr":      {Unit: constants.UnitLiter, Multiplier: decimal.NewFromInt(1)},
			"kg":       {Unit: constants.UnitKilogram, Multiplier: decimal.NewFromInt(1)},
			"kilogram": {Unit: constants.UnitKilogram, Multiplier: decimal.NewFromInt(1)},
			"g":        {Unit: constants.UnitKilogram, Multiplier: decimal.NewFromFloat(0.001)},
			"gram":     {Unit: constants.UnitKilogram, Multiplier: decimal.NewFromFloat(0.001)},
			"tonn":     {Unit: constants.UnitKilogram, Multiplier: decimal.NewFromInt(1000)},
			"stk":      {Unit: constants.UnitPiece, Multiplier: decimal.NewFromInt(1)},
			"st":       {Unit: constants.UnitPiece, Multiplier: decimal.NewFromInt(1)},
			"pcs":      {Unit: constants.UnitPiece, Multiplier: decimal.NewFromInt(1)},
			"pc":       {Unit: constants.UnitPiece, Multiplier: decimal.NewFromInt(1)},
			"kwh":      {Unit: constants.UnitKilowattHour, Multiplier: decimal.NewFromInt(1)},
			"m3":       {Unit: constants.UnitCubicMeter, Multiplier: decimal.NewFromInt(1)},
			"m³":       {Unit: constants.UnitCubicMeter, Multiplier: decimal.NewFromInt(1)},
		},
		PieceMassKg:         decimal.NewFromFloat(fc.PieceMassKg),
		PieceMassCategories: []constants.Category{constants.Goods},
	}
}
