package finance

import (
	"math"

	"github.com/Havardbaban/buildcarbon-sub000/internal/common"
)

// IRR iteration constants: a hard bound, not a timeout.
const (
	irrMaxIterations = 100
	irrEpsilon       = 1e-7
	irrDefaultGuess  = 0.10
)

// InvestmentInput describes one financed efficiency project. Fields with no
// per-project value fall back to the configured analysis constants.
type InvestmentInput struct {
	Capex          float64 `json:"capex"`
	ConsultantFees float64 `json:"consultant_fees"`
	Grant          float64 `json:"grant"`

	AnnualEnergySavings float64 `json:"annual_energy_savings"` // gross, before tax

	LoanAmount     float64 `json:"loan_amount"`
	LoanRate       float64 `json:"loan_rate"`
	LoanTenorYears int     `json:"loan_tenor_years"`

	TaxRate           float64 `json:"tax_rate"`
	DepreciationYears int     `json:"depreciation_years"`
	HorizonYears      int     `json:"horizon_years"`
	DiscountRate      float64 `json:"discount_rate"`

	// ESG intensity inputs
	AnnualCO2Kg float64 `json:"annual_co2_kg"`
	AnnualSpend float64 `json:"annual_spend"`
}

// AmortizationRow is one year of a standard annuity schedule.
type AmortizationRow struct {
	Year      int     `json:"year"`
	Opening   float64 `json:"opening"`
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Closing   float64 `json:"closing"`
}

// IRRResult carries the rate together with an explicit convergence status;
// a non-convergent run still reports its last iterate as best effort.
type IRRResult struct {
	Rate       float64 `json:"rate"`
	Converged  bool    `json:"converged"`
	Iterations int     `json:"iterations"`
}

// InvestmentAnalysis is the full metrics record for one project.
type InvestmentAnalysis struct {
	Depreciation       float64           `json:"depreciation"`
	TaxShield          float64           `json:"tax_shield"`
	AfterTaxSavings    float64           `json:"after_tax_savings"`
	DebtService        float64           `json:"debt_service"`
	CashFlowsUnlevered []float64         `json:"cash_flows_unlevered"`
	CashFlowsLevered   []float64         `json:"cash_flows_levered"`
	NPV                float64           `json:"npv"`
	IRR                IRRResult         `json:"irr"`
	Amortization       []AmortizationRow `json:"amortization"`
	DSCR               []float64         `json:"dscr"`
	PaybackYear        *int              `json:"payback_year,omitempty"`
	ESGScore           float64           `json:"esg_score"`
}

// Analyze builds the complete analysis. Config supplies the fixed constants
// any zero-valued input field falls back to.
func Analyze(in InvestmentInput, cfg common.FinanceConfig) (InvestmentAnalysis, error) {
	if in.HorizonYears <= 0 {
		in.HorizonYears = cfg.HorizonYears
	}
	if in.DepreciationYears <= 0 {
		in.DepreciationYears = cfg.DepreciationYears
	}
	if in.LoanTenorYears <= 0 {
		in.LoanTenorYears = cfg.LoanTenorYears
	}
	if in.DiscountRate == 0 {
		in.DiscountRate = cfg.DiscountRate
	}
	if in.TaxRate == 0 {
		in.TaxRate = cfg.TaxRate
	}
	if in.HorizonYears <= 0 || in.DepreciationYears <= 0 || in.LoanTenorYears <= 0 {
		return InvestmentAnalysis{}, common.NewAppError("FINANCE_INPUT", "analysis periods must be positive", common.ErrInvalidInput)
	}

	var a InvestmentAnalysis

	// straight-line depreciation over the consultant-inclusive basis
	a.Depreciation = (in.Capex + in.ConsultantFees) / float64(in.DepreciationYears)
	a.TaxShield = a.Depreciation * in.TaxRate
	a.AfterTaxSavings = in.AnnualEnergySavings * (1 - in.TaxRate)

	if in.LoanAmount > 0 {
		a.Amortization = AmortizationSchedule(in.LoanAmount, in.LoanRate, in.LoanTenorYears)
		a.DebtService = AnnuityPayment(in.LoanAmount, in.LoanRate, in.LoanTenorYears)
	}

	year0 := -(in.Capex + in.ConsultantFees - in.Grant)
	a.CashFlowsUnlevered = make([]float64, in.HorizonYears+1)
	a.CashFlowsLevered = make([]float64, in.HorizonYears+1)
	a.CashFlowsUnlevered[0] = year0
	a.CashFlowsLevered[0] = year0
	for t := 1; t <= in.HorizonYears; t++ {
		cf := a.AfterTaxSavings
		if t <= in.DepreciationYears {
			cf += a.TaxShield
		}
		a.CashFlowsUnlevered[t] = cf
		if t <= in.LoanTenorYears {
			cf -= a.DebtService
		}
		a.CashFlowsLevered[t] = cf
	}

	a.NPV = NPV(in.DiscountRate, a.CashFlowsUnlevered)
	a.IRR = IRR(a.CashFlowsUnlevered, irrDefaultGuess)
	a.PaybackYear = Payback(a.CashFlowsLevered)

	if a.DebtService > 0 {
		a.DSCR = make([]float64, in.LoanTenorYears)
		for t := 0; t < in.LoanTenorYears; t++ {
			a.DSCR[t] = (a.AfterTaxSavings + a.TaxShield) / a.DebtService
		}
	}

	a.ESGScore = ESGScore(in.AnnualCO2Kg, in.AnnualSpend, cfg.ESGBestIntensity, cfg.ESGWorstIntensity)
	return a, nil
}

// IRR finds the discount rate where NPV crosses zero by Newton-Raphson.
// Convergence is not guaranteed for pathological cash-flow shapes; callers
// must check Converged and sanity-check the rate against the NPV sign.
func IRR(flows []float64, guess float64) IRRResult {
	rate := guess
	for i := 1; i <= irrMaxIterations; i++ {
		npv := NPV(rate, flows)
		deriv := npvDerivative(rate, flows)
		if math.Abs(deriv) < 1e-12 {
			return IRRResult{Rate: rate, Converged: false, Iterations: i}
		}
		step := npv / deriv
		rate -= step
		if rate <= -1 {
			// keep the iterate in the domain of (1+r)^t
			rate = -0.9999
		}
		if math.Abs(step) < irrEpsilon {
			return IRRResult{Rate: rate, Converged: true, Iterations: i}
		}
	}
	return IRRResult{Rate: rate, Converged: false, Iterations: irrMaxIterations}
}

func npvDerivative(rate float64, flows []float64) float64 {
	d := 0.0
	for t, cf := range flows {
		if t == 0 {
			continue
		}
		d -= float64(t) * cf / math.Pow(1+rate, float64(t+1))
	}
	return d
}

// AnnuityPayment is the standard fixed payment for principal at rate over
// years. A zero rate degenerates to straight division.
func AnnuityPayment(principal, rate float64, years int) float64 {
	if years <= 0 {
		return 0
	}
	if rate == 0 {
		return principal / float64(years)
	}
	return principal * rate / (1 - math.Pow(1+rate, -float64(years)))
}

// AmortizationSchedule builds the annuity schedule: each period's interest is
// opening balance × rate, principal is payment − interest capped at the
// remaining balance, closing is opening − principal.
func AmortizationSchedule(principal, rate float64, years int) []AmortizationRow {
	if years <= 0 || principal <= 0 {
		return nil
	}
	payment := AnnuityPayment(principal, rate, years)
	rows := make([]AmortizationRow, 0, years)
	opening := principal
	for y := 1; y <= years; y++ {
		interest := opening * rate
		principalPaid := payment - interest
		if principalPaid > opening {
			principalPaid = opening
		}
		closing := opening - principalPaid
		rows = append(rows, AmortizationRow{
			Year:      y,
			Opening:   opening,
			Payment:   payment,
			Interest:  interest,
			Principal: principalPaid,
			Closing:   closing,
		})
		opening = closing
	}
	return rows
}

// ESGScore linearly interpolates CO2-per-currency-unit intensity between the
// best and worst reference intensities, clamped to [0,100]. Zero spend means
// intensity is undefined; the score bottoms out rather than divides.
func ESGScore(co2Kg, spend, bestIntensity, worstIntensity float64) float64 {
	if spend <= 0 || worstIntensity <= bestIntensity {
		return 0
	}
	intensity := co2Kg / spend
	score := 100 * (worstIntensity - intensity) / (worstIntensity - bestIntensity)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
