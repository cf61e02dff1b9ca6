// Package export produces an XLSX workbook of structured extraction results
// for handoff to downstream accounting tools.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Havardbaban/buildcarbon-sub000/internal/entity"
)

type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ResultsXLSX returns a workbook (as bytes) with one header row per document
// and one line row per enriched line.
func (s *Service) ResultsXLSX(results []*entity.ExtractionResult) ([]byte, error) {
	start := time.Now()
	f := excelize.NewFile()

	const docSheet = "Documents"
	const lineSheet = "Lines"
	if err := renameDefault(f, docSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(lineSheet); err != nil {
		return nil, err
	}

	docHeaders := []string{
		"Document ID", "Vendor", "Invoice No", "Org Number", "Issue Date",
		"Total", "Currency", "Energy kWh", "Fuel L", "Gas m3", "CO2 kg",
	}
	writeRow(f, docSheet, 1, toAny(docHeaders))

	lineHeaders := []string{
		"Document ID", "Description", "Quantity", "Unit", "Amount",
		"Category", "Scope", "CO2 kg", "CO2 Source",
	}
	writeRow(f, lineSheet, 1, toAny(lineHeaders))

	docRow, lineRow := 2, 2
	for _, res := range results {
		h := res.Header
		writeRow(f, docSheet, docRow, []any{
			res.DocumentID.String(),
			strOr(h.Vendor), strOr(h.InvoiceNumber), strOr(h.OrgNumber),
			dateOr(h.IssueDate),
			decOr(h.TotalAmount), h.CurrencyCode,
			decOr(h.EnergyKwh), decOr(h.FuelLiters), decOr(h.GasM3), decOr(h.CO2Kg),
		})
		docRow++

		for _, l := range res.Lines {
			unit := ""
			if l.Unit != nil {
				unit = string(*l.Unit)
			} else if l.UnitRaw != nil {
				unit = *l.UnitRaw
			}
			category, scope := "", ""
			if l.Category != nil {
				category = string(*l.Category)
			}
			if l.Scope != nil {
				scope = fmt.Sprintf("%d", *l.Scope)
			}
			writeRow(f, lineSheet, lineRow, []any{
				res.DocumentID.String(), l.Description,
				decOr(l.Quantity), unit, decOr(l.Amount),
				category, scope, decOr(l.CO2Kg), strOr(l.CO2Source),
			})
			lineRow++
		}
	}

	_ = f.SetColWidth(docSheet, "A", "A", 38)
	_ = f.SetColWidth(docSheet, "B", "B", 28)
	_ = f.SetColWidth(lineSheet, "A", "A", 38)
	_ = f.SetColWidth(lineSheet, "B", "B", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"documents", len(results),
		"lines", lineRow-2,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func renameDefault(f *excelize.File, name string) error {
	return f.SetSheetName(f.GetSheetName(0), name)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func strOr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func decOr(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func dateOr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
