package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Havardbaban/buildcarbon-sub000/constants"
)

// Document is one OCR'd invoice handed to the pipeline. RawText is the
// collaborator's output; Hints carry quantities upstream extraction may
// already have produced.
type Document struct {
	ID      uuid.UUID `json:"id"`
	RawText string    `json:"raw_text"`
	Hints   Hints     `json:"hints"`
}

// Hints are already-known numeric quantities for a document. The emission
// calculator prefers these over re-deriving them from text.
type Hints struct {
	EnergyKwh  *decimal.Decimal `json:"energy_kwh,omitempty"`
	FuelLiters *decimal.Decimal `json:"fuel_liters,omitempty"`
	GasM3      *decimal.Decimal `json:"gas_m3,omitempty"`
	CO2Kg      *decimal.Decimal `json:"co2_kg,omitempty"`
}

// ParsedHeader holds the document-level fields recovered from the text.
// Every field is optional; a nil pointer means the extractor found nothing,
// never that the value was zero.
type ParsedHeader struct {
	Vendor        *string          `json:"vendor,omitempty"`
	InvoiceNumber *string          `json:"invoice_number,omitempty"`
	OrgNumber     *string          `json:"org_number,omitempty"`
	IssueDate     *time.Time       `json:"issue_date,omitempty"`
	TotalAmount   *decimal.Decimal `json:"total_amount,omitempty"`
	CurrencyCode  string           `json:"currency_code"`
	EnergyKwh     *decimal.Decimal `json:"energy_kwh,omitempty"`
	FuelLiters    *decimal.Decimal `json:"fuel_liters,omitempty"`
	GasM3         *decimal.Decimal `json:"gas_m3,omitempty"`
	CO2Kg         *decimal.Decimal `json:"co2_kg,omitempty"`
}

// LineItem is one detected purchase line. Description always carries the raw
// line text when nothing more specific could be split off.
type LineItem struct {
	Description string           `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	UnitRaw     *string          `json:"unit_raw,omitempty"`
	Unit        *constants.Unit  `json:"unit,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
}

// EnrichedLine is a LineItem after classification and emission calculation.
// CO2Kg is non-nil only when both a resolved quantity and a matched factor
// existed; there is no guessing.
type EnrichedLine struct {
	LineItem
	Category  *constants.Category `json:"category,omitempty"`
	Scope     *int                `json:"scope,omitempty"`
	FactorID  *string             `json:"factor_id,omitempty"`
	CO2Kg     *decimal.Decimal    `json:"co2_kg,omitempty"`
	CO2Source *string             `json:"co2_source,omitempty"`
}

// ExtractionResult is the full output of the pipeline for one document.
type ExtractionResult struct {
	DocumentID uuid.UUID      `json:"document_id"`
	Header     ParsedHeader   `json:"header"`
	Lines      []EnrichedLine `json:"lines"`
	CreatedAt  time.Time      `json:"created_at"`
}

// TotalCO2Kg sums line-level CO2, rounded to 1 decimal. Nil when no line
// produced a value.
func (r *ExtractionResult) TotalCO2Kg() *decimal.Decimal {
	var sum decimal.Decimal
	found := false
	for _, l := range r.Lines {
		if l.CO2Kg != nil {
			sum = sum.Add(*l.CO2Kg)
			found = true
		}
	}
	if !found {
		return nil
	}
	rounded := sum.Round(1)
	return &rounded
}
