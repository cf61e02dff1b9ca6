package finance

import (
	"errors"
	"math"
	"testing"

	"github.com/Havardbaban/buildcarbon-sub000/internal/common"
)

const tol = 1e-6

func almost(a, b float64) bool { return math.Abs(a-b) < tol }

func TestNPV(t *testing.T) {
	tests := []struct {
		name  string
		rate  float64
		flows []float64
		want  float64
	}{
		{"zero rate sums flows", 0, []float64{-100, 60, 60}, 20},
		{"single outflow", 0.10, []float64{-100}, -100},
		{"discounted inflow", 0.10, []float64{-100, 110}, 0},
		{"empty series", 0.10, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NPV(tt.rate, tt.flows); !almost(got, tt.want) {
				t.Errorf("NPV = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestPayback(t *testing.T) {
	tests := []struct {
		name  string
		flows []float64
		want  *int
	}{
		{"recovers in year two", []float64{-100, 60, 60}, intp(2)},
		{"exact recovery counts", []float64{-100, 100}, intp(1)},
		{"never recovers", []float64{-100, 10, 10}, nil},
		{"no investment", []float64{50, 10}, intp(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Payback(tt.flows)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("Payback = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("Payback = %d, want %d", *got, *tt.want)
			}
		})
	}
}

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }

func TestEstimateProject(t *testing.T) {
	a := ProjectAssumptions{
		Capex:                 100000,
		OpexAnnual:            2000,
		ExpectedReductionRate: 0.20,
		LifetimeYears:         10,
		DiscountRate:          0.06,
		CarbonPricePerTon:     1000,
		BaselinePeriodMonths:  6,
		BaselineSpend:         60000,
		BaselineCO2Kg:         5000,
	}
	m, err := EstimateProject(a)
	if err != nil {
		t.Fatal(err)
	}
	// six months of baseline doubles into the annual figures
	if !almost(m.AnnualizedSpend, 120000) {
		t.Errorf("AnnualizedSpend = %g, want 120000", m.AnnualizedSpend)
	}
	if !almost(m.AnnualizedCO2Kg, 10000) {
		t.Errorf("AnnualizedCO2Kg = %g, want 10000", m.AnnualizedCO2Kg)
	}
	if !almost(m.AnnualCostSavings, 24000) {
		t.Errorf("AnnualCostSavings = %g, want 24000", m.AnnualCostSavings)
	}
	if !almost(m.AnnualCO2SavingsKg, 2000) {
		t.Errorf("AnnualCO2SavingsKg = %g, want 2000", m.AnnualCO2SavingsKg)
	}
	// 2000 kg is 2 tons at 1000 per ton
	if !almost(m.AnnualCarbonValue, 2000) {
		t.Errorf("AnnualCarbonValue = %g, want 2000", m.AnnualCarbonValue)
	}
	if !almost(m.AnnualNetBenefit, 24000) {
		t.Errorf("AnnualNetBenefit = %g, want 24000", m.AnnualNetBenefit)
	}
	// cross-check the NPV against the closed-form annuity present value
	annuityPV := 24000 * (1 - math.Pow(1.06, -10)) / 0.06
	if !almost(m.NPV, annuityPV-100000) {
		t.Errorf("NPV = %g, want %g", m.NPV, annuityPV-100000)
	}
	if m.PaybackYears == nil || *m.PaybackYears != 5 {
		t.Errorf("PaybackYears = %v, want 5", m.PaybackYears)
	}
}

func TestEstimateProjectOverrides(t *testing.T) {
	a := ProjectAssumptions{
		ExpectedReductionRate:     0.50,
		LifetimeYears:             5,
		DiscountRate:              0,
		BaselineSpend:             10000,
		BaselineCO2Kg:             1000,
		AnnualCostSavingsOverride: floatp(7500),
		AnnualCO2SavingsOverride:  floatp(300),
	}
	m, err := EstimateProject(a)
	if err != nil {
		t.Fatal(err)
	}
	if !almost(m.AnnualCostSavings, 7500) {
		t.Errorf("override ignored: AnnualCostSavings = %g", m.AnnualCostSavings)
	}
	if !almost(m.AnnualCO2SavingsKg, 300) {
		t.Errorf("override ignored: AnnualCO2SavingsKg = %g", m.AnnualCO2SavingsKg)
	}
}

func TestEstimateProjectRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		a    ProjectAssumptions
	}{
		{"zero lifetime", ProjectAssumptions{LifetimeYears: 0}},
		{"reduction above one", ProjectAssumptions{LifetimeYears: 5, ExpectedReductionRate: 1.2}},
		{"negative discount", ProjectAssumptions{LifetimeYears: 5, DiscountRate: -0.1}},
		{"discount at one", ProjectAssumptions{LifetimeYears: 5, DiscountRate: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EstimateProject(tt.a)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, common.ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}
