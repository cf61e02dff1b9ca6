// Package extract recovers document-level fields from normalized OCR text:
// vendor, invoice number, organization number, issue date, currency, the
// authoritative total and header-level energy/fuel/gas/CO2 quantities.
//
// Every field is found by an ordered chain of heuristics; the first strategy
// that produces a validated candidate wins and re-running on the same text
// always returns the same result. A field no strategy can place is nil.
package extract

import (
	"log/slog"

	"github.com/Havardbaban/buildcarbon-sub000/internal/entity"
)

type Config struct {
	HomeCurrency    string // fallback ISO 4217 code, default NOK
	VendorScanLines int    // vendor fallback scan depth, default 12
}

type Extractor struct {
	logger *slog.Logger
	cfg    Config
}

func New(logger *slog.Logger, cfg Config) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.HomeCurrency == "" {
		cfg.HomeCurrency = "NOK"
	}
	if cfg.VendorScanLines <= 0 {
		cfg.VendorScanLines = 12
	}
	return &Extractor{logger: logger, cfg: cfg}
}

// Header runs every field heuristic over the normalized lines and assembles
// the parsed header. Pure; never fails, missing fields stay nil.
func (e *Extractor) Header(lines []string) entity.ParsedHeader {
	h := entity.ParsedHeader{
		Vendor:        Vendor(lines, e.cfg.VendorScanLines),
		InvoiceNumber: InvoiceNumber(lines),
		OrgNumber:     OrgNumber(lines),
		IssueDate:     IssueDate(lines),
		CurrencyCode:  Currency(lines, e.cfg.HomeCurrency),
		TotalAmount:   ResolveTotal(lines),
		EnergyKwh:     EnergyKwh(lines),
		FuelLiters:    FuelLiters(lines),
		GasM3:         GasM3(lines),
		CO2Kg:         StatedCO2Kg(lines),
	}

	e.logger.Debug("extract.header",
		"vendor_found", h.Vendor != nil,
		"invoice_no_found", h.InvoiceNumber != nil,
		"date_found", h.IssueDate != nil,
		"total_found", h.TotalAmount != nil,
		"currency", h.CurrencyCode,
	)
	return h
}
