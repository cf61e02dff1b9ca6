// Package finance implements the project-finance side of the system:
// discounted cash flows, internal rate of return, loan amortization,
// debt-service coverage, payback and the bounded ESG intensity score.
// All functions are pure over their numeric inputs.
package finance

import (
	"math"

	"github.com/Havardbaban/buildcarbon-sub000/internal/common"
)

// ProjectAssumptions are the externally supplied inputs for a quick project
// estimate. Baseline figures describe the measured period; the engine
// annualizes them before applying the reduction rate.
type ProjectAssumptions struct {
	Capex                 float64 `json:"capex"`
	OpexAnnual            float64 `json:"opex_annual"`
	ExpectedReductionRate float64 `json:"expected_reduction_rate"` // 0..1
	LifetimeYears         int     `json:"lifetime_years"`
	DiscountRate          float64 `json:"discount_rate"` // 0..1
	CarbonPricePerTon     float64 `json:"carbon_price_per_ton"`

	BaselinePeriodMonths int     `json:"baseline_period_months"`
	BaselineSpend        float64 `json:"baseline_spend"`
	BaselineCO2Kg        float64 `json:"baseline_co2_kg"`
	BaselineQuantity     float64 `json:"baseline_quantity"`

	// Overrides replace derived annual figures when set.
	AnnualCostSavingsOverride *float64 `json:"annual_cost_savings_override,omitempty"`
	AnnualCO2SavingsOverride  *float64 `json:"annual_co2_savings_override,omitempty"`
}

// ProjectMetrics is the derived result, recomputed on every call.
type ProjectMetrics struct {
	AnnualizedSpend    float64 `json:"annualized_spend"`
	AnnualizedCO2Kg    float64 `json:"annualized_co2_kg"`
	AnnualCostSavings  float64 `json:"annual_cost_savings"`
	AnnualCO2SavingsKg float64 `json:"annual_co2_savings_kg"`
	AnnualCarbonValue  float64 `json:"annual_carbon_value"`
	AnnualNetBenefit   float64 `json:"annual_net_benefit"`
	NPV                float64 `json:"npv"`
	PaybackYears       *int    `json:"payback_years,omitempty"`
}

// EstimateProject annualizes the baseline, applies the expected reduction
// and discounts the resulting net benefit over the project lifetime.
func EstimateProject(a ProjectAssumptions) (ProjectMetrics, error) {
	if a.LifetimeYears <= 0 {
		return ProjectMetrics{}, common.NewAppError("FINANCE_INPUT", "lifetime years must be positive", common.ErrInvalidInput)
	}
	if a.ExpectedReductionRate < 0 || a.ExpectedReductionRate > 1 {
		return ProjectMetrics{}, common.NewAppError("FINANCE_INPUT", "reduction rate must be in [0,1]", common.ErrInvalidInput)
	}
	if a.DiscountRate < 0 || a.DiscountRate >= 1 {
		return ProjectMetrics{}, common.NewAppError("FINANCE_INPUT", "discount rate must be in [0,1)", common.ErrInvalidInput)
	}

	months := a.BaselinePeriodMonths
	if months <= 0 {
		months = 12
	}
	annualize := 12.0 / float64(months)

	m := ProjectMetrics{
		AnnualizedSpend: a.BaselineSpend * annualize,
		AnnualizedCO2Kg: a.BaselineCO2Kg * annualize,
	}

	m.AnnualCostSavings = m.AnnualizedSpend * a.ExpectedReductionRate
	if a.AnnualCostSavingsOverride != nil {
		m.AnnualCostSavings = *a.AnnualCostSavingsOverride
	}
	m.AnnualCO2SavingsKg = m.AnnualizedCO2Kg * a.ExpectedReductionRate
	if a.AnnualCO2SavingsOverride != nil {
		m.AnnualCO2SavingsKg = *a.AnnualCO2SavingsOverride
	}
	m.AnnualCarbonValue = m.AnnualCO2SavingsKg / 1000.0 * a.CarbonPricePerTon
	m.AnnualNetBenefit = m.AnnualCostSavings + m.AnnualCarbonValue - a.OpexAnnual

	flows := make([]float64, a.LifetimeYears+1)
	flows[0] = -a.Capex
	for t := 1; t <= a.LifetimeYears; t++ {
		flows[t] = m.AnnualNetBenefit
	}
	m.NPV = NPV(a.DiscountRate, flows)
	m.PaybackYears = Payback(flows)
	return m, nil
}

// NPV discounts flows[t] by (1+rate)^t for t = 0..len-1.
func NPV(rate float64, flows []float64) float64 {
	npv := 0.0
	for t, cf := range flows {
		npv += cf / math.Pow(1+rate, float64(t))
	}
	return npv
}

// Payback returns the first year at which cumulative cash flow becomes
// non-negative, nil if it never does within the series.
func Payback(flows []float64) *int {
	cum := 0.0
	for t, cf := range flows {
		cum += cf
		if cum >= 0 {
			year := t
			return &year
		}
	}
	return nil
}
