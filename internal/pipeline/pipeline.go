// Package pipeline wires the extraction stages together: normalize, header
// fields + total, line segmentation, unit normalization and emission
// calculation. One Run call per document; stages are pure, so concurrent
// Runs over independent documents are safe.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Havardbaban/buildcarbon-sub000/internal/common"
	"github.com/Havardbaban/buildcarbon-sub000/internal/emissions"
	"github.com/Havardbaban/buildcarbon-sub000/internal/entity"
	"github.com/Havardbaban/buildcarbon-sub000/internal/extract"
	"github.com/Havardbaban/buildcarbon-sub000/internal/lineitem"
	"github.com/Havardbaban/buildcarbon-sub000/internal/rules"
	"github.com/Havardbaban/buildcarbon-sub000/internal/textnorm"
	"github.com/Havardbaban/buildcarbon-sub000/internal/units"
)

type Pipeline struct {
	Logger    *slog.Logger
	Rules     *rules.Table
	Extractor *extract.Extractor
	Segmenter *lineitem.Segmenter
	Units     *units.Converter
	Emissions *emissions.Calculator
}

// New assembles a pipeline from configuration. A nil table uses the
// compiled-in defaults.
func New(logger *slog.Logger, cfg *common.Config, table *rules.Table) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = common.LoadConfig()
	}
	if table == nil {
		table = rules.Default(cfg.Factors)
	}
	return &Pipeline{
		Logger: logger,
		Rules:  table,
		Extractor: extract.New(logger, extract.Config{
			HomeCurrency:    cfg.Extraction.HomeCurrency,
			VendorScanLines: cfg.Extraction.VendorScanLines,
		}),
		Segmenter: lineitem.New(logger, lineitem.Config{
			MinLineLen: cfg.Extraction.MinItemLineLen,
		}, table),
		Units: units.New(table),
		Emissions: emissions.New(logger, emissions.Config{
			GridKgPerKwh:     decimal.NewFromFloat(cfg.Factors.GridKgPerKwh),
			DieselKgPerLiter: decimal.NewFromFloat(cfg.Factors.DieselKgPerLiter),
			PetrolKgPerLiter: decimal.NewFromFloat(cfg.Factors.PetrolKgPerLiter),
			GasKgPerM3:       decimal.NewFromFloat(cfg.Factors.GasKgPerM3),
		}, table),
	}
}

// Run executes the full extraction for one document.
func (p *Pipeline) Run(ctx context.Context, doc entity.Document) (*entity.ExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	lines, _ := textnorm.Normalize(doc.RawText)

	header := p.Extractor.Header(lines)
	mergeHints(&header, doc.Hints)

	segments := p.Segmenter.Segment(lines)
	enriched := make([]entity.EnrichedLine, 0, len(segments))
	for _, seg := range segments {
		enriched = append(enriched, p.enrich(seg))
	}

	// header-level emission from hints and extracted quantities
	if header.CO2Kg == nil {
		if est := p.Emissions.Compute(emissions.Input{
			EnergyKwh:  header.EnergyKwh,
			FuelLiters: header.FuelLiters,
			GasM3:      header.GasM3,
			Context:    doc.RawText,
		}); est != nil {
			header.CO2Kg = &est.CO2Kg
		}
	}

	res := &entity.ExtractionResult{
		DocumentID: doc.ID,
		Header:     header,
		Lines:      enriched,
		CreatedAt:  time.Now().UTC(),
	}

	p.Logger.Info("pipeline.ok",
		"document_id", doc.ID.String(),
		"lines", len(lines),
		"items", len(enriched),
		"total_found", header.TotalAmount != nil,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

func (p *Pipeline) enrich(seg lineitem.Segment) entity.EnrichedLine {
	item := seg.Item
	if item.UnitRaw != nil && item.Quantity != nil {
		if unit, qty, ok := p.Units.Normalize(*item.UnitRaw, *item.Quantity); ok {
			item.Unit = &unit
			item.Quantity = &qty
		}
		// unrecognized units pass the raw value through with a nil unit
	}

	line := entity.EnrichedLine{LineItem: item}
	cat := seg.Rule.Category
	scope := seg.Rule.Scope
	line.Category = &cat
	line.Scope = &scope

	if est := p.Emissions.ComputeLine(item, seg.Rule, nil); est != nil {
		line.CO2Kg = &est.CO2Kg
		src := est.Source
		line.CO2Source = &src
		line.FactorID = est.FactorID
	}
	return line
}

// mergeHints prefers externally supplied quantities over text-derived ones.
func mergeHints(h *entity.ParsedHeader, hints entity.Hints) {
	if hints.EnergyKwh != nil {
		h.EnergyKwh = hints.EnergyKwh
	}
	if hints.FuelLiters != nil {
		h.FuelLiters = hints.FuelLiters
	}
	if hints.GasM3 != nil {
		h.GasM3 = hints.GasM3
	}
	if hints.CO2Kg != nil {
		h.CO2Kg = hints.CO2Kg
	}
}
