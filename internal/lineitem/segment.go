// Package lineitem splits normalized invoice text into candidate purchase
// lines, classifies each against the rule table and pulls a trailing
// quantity+unit pair out of the line.
package lineitem

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Havardbaban/buildcarbon-sub000/internal/entity"
	"github.com/Havardbaban/buildcarbon-sub000/internal/numparse"
	"github.com/Havardbaban/buildcarbon-sub000/internal/rules"
)

// Segment pairs a detected line item with the category rule that matched it.
type Segment struct {
	Item entity.LineItem
	Rule *rules.CategoryRule
}

type Config struct {
	MinLineLen int // shorter lines are never items, default 8
}

type Segmenter struct {
	logger *slog.Logger
	cfg    Config
	table  *rules.Table
	reQty  *regexp.Regexp
}

// non-item patterns: headers, totals, identity lines
var reNonItem = regexp.MustCompile(`(?i)\b(faktura|invoice|kvittering|total|totalt|sum|å betale|mva|vat|moms|org\.?\s?nr|kontonummer|konto|kid|iban|forfall|due date|side \d)`)

var (
	reDateish  = regexp.MustCompile(`^\d{1,2}[./-]\d{1,2}[./-]\d{2,4}$`)
	reCurrency = regexp.MustCompile(`(?i)\b(kr|nok|sek|dkk|eur|usd|gbp)\b|[€$£]`)
	reNumTok   = regexp.MustCompile(`\d[\d .,]*\d|\d`)
)

func New(logger *slog.Logger, cfg Config, table *rules.Table) *Segmenter {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MinLineLen <= 0 {
		cfg.MinLineLen = 8
	}
	// trailing "<number> <unit>" with the unit alternation built from the
	// table so external unit tables extend the segmenter too. The number
	// shape allows 3-digit grouping and one decimal part, so a preceding
	// monetary amount cannot merge into the quantity token.
	tokens := table.UnitTokens()
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = regexp.QuoteMeta(t)
	}
	pattern := fmt.Sprintf(`(?i)(\d+(?:[ .,]\d{3})*(?:[.,]\d+)?)\s*(%s)\.?\s*$`, strings.Join(quoted, "|"))
	return &Segmenter{
		logger: logger,
		cfg:    cfg,
		table:  table,
		reQty:  regexp.MustCompile(pattern),
	}
}

// Segment classifies each line against the keyword table. Lines matching no
// keyword, matching a non-item pattern or shorter than the minimum length
// are discarded. First matching keyword wins; a line never lands in two
// categories.
func (s *Segmenter) Segment(lines []string) []Segment {
	var out []Segment
	for _, ln := range lines {
		if len(ln) < s.cfg.MinLineLen {
			continue
		}
		if reNonItem.MatchString(ln) || reDateish.MatchString(strings.TrimSpace(ln)) {
			continue
		}
		rule, ok := s.table.Match(ln)
		if !ok {
			continue
		}
		out = append(out, Segment{Item: s.parseItem(ln), Rule: rule})
	}
	s.logger.Debug("lineitem.segment", "lines_in", len(lines), "items_out", len(out))
	return out
}

// parseItem splits "<description> <number> <unit>"; description falls back
// to the whole line when no trailing quantity pattern is present.
func (s *Segmenter) parseItem(ln string) entity.LineItem {
	item := entity.LineItem{Description: ln}

	m := s.reQty.FindStringSubmatchIndex(ln)
	if m == nil {
		item.Amount = lineAmount(ln, -1, -1)
		return item
	}
	qtyTok := ln[m[2]:m[3]]
	unitTok := strings.ToLower(ln[m[4]:m[5]])

	qty, ok := numparse.Amount(qtyTok)
	if !ok {
		return item
	}

	if desc := strings.TrimSpace(ln[:m[0]]); desc != "" {
		item.Description = desc
	}
	item.Quantity = &qty
	item.UnitRaw = &unitTok
	item.Amount = lineAmount(ln, m[2], m[3])
	return item
}

// lineAmount picks a monetary amount off the line, but only when a currency
// marker makes the reading unambiguous. Tokens overlapping the quantity span
// [qs,qe) are skipped.
func lineAmount(ln string, qs, qe int) *decimal.Decimal {
	if !reCurrency.MatchString(ln) {
		return nil
	}
	var best *decimal.Decimal
	for _, loc := range reNumTok.FindAllStringIndex(ln, -1) {
		if qs >= 0 && loc[0] < qe && loc[1] > qs {
			continue
		}
		d, ok := numparse.Amount(ln[loc[0]:loc[1]])
		if !ok || !d.IsPositive() {
			continue
		}
		if best == nil || d.GreaterThan(*best) {
			v := d
			best = &v
		}
	}
	if best != nil {
		r := best.Round(2)
		return &r
	}
	return nil
}
