package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Havardbaban/buildcarbon-sub000/internal/numparse"
)

// The resolver walks a strict four-tier chain; a tier is attempted only when
// every tier above it produced nothing. Within a tier the largest qualifying
// value wins; invoices show a gross total larger than any sub-total.

var (
	reNumToken  = regexp.MustCompile(`\d[\d .,]*\d|\d`)
	reKrMarker  = regexp.MustCompile(`(?i)\b(kr|nok|sek|dkk|eur|usd|gbp)\b|[€$£]`)
	reDateOnly  = regexp.MustCompile(`^\d{1,2}[./-]\d{1,2}[./-]\d{2,4}$`)
	maxPlausib  = decimal.NewFromInt(1_000_000_000)
	maxDigitLen = 11 // tokens this long are account/KID/phone numbers
)

// strong labels announcing the payable amount, checked case-insensitively
var strongTotalLabels = []string{
	"beløp å betale",
	"å betale",
	"til betaling",
	"sum å betale",
	"amount due",
	"to pay",
	"total",
	"totalt",
}

var vatWords = []string{"mva", "moms", "vat", "tax"}

var totalNoiseWords = []string{
	"kontonummer", "konto", "account", "iban", "swift", "bic",
	"kid", "kundenummer", "customer",
	"telefon", "tlf", "phone", "faks", "fax",
	"org",
}

// ResolveTotal finds the authoritative monetary total of the document, or
// nil when no tier produces one. Callers must treat nil as unknown, never
// as zero. The returned value is rounded to 2 decimals.
func ResolveTotal(lines []string) *decimal.Decimal {
	if d := totalOnLabeledLine(lines); d != nil {
		return round2(d)
	}
	if d := totalOnLineAfterLabel(lines); d != nil {
		return round2(d)
	}
	if d := totalOnCurrencyLine(lines); d != nil {
		return round2(d)
	}
	if d := totalAnywhere(lines); d != nil {
		return round2(d)
	}
	return nil
}

// tier 1: number on the same line as a strong label
func totalOnLabeledLine(lines []string) *decimal.Decimal {
	var best *decimal.Decimal
	for _, ln := range lines {
		if !hasStrongLabel(ln) {
			continue
		}
		best = maxCandidate(best, lineCandidates(ln))
	}
	return best
}

// tier 2: label on one line, number on the very next
func totalOnLineAfterLabel(lines []string) *decimal.Decimal {
	var best *decimal.Decimal
	for i, ln := range lines {
		if !hasStrongLabel(ln) || i+1 >= len(lines) {
			continue
		}
		best = maxCandidate(best, lineCandidates(lines[i+1]))
	}
	return best
}

// tier 3: any currency-marked line, skipping tax/VAT lines
func totalOnCurrencyLine(lines []string) *decimal.Decimal {
	var best *decimal.Decimal
	for _, ln := range lines {
		if !reKrMarker.MatchString(ln) || containsAny(strings.ToLower(ln), vatWords) {
			continue
		}
		best = maxCandidate(best, lineCandidates(ln))
	}
	return best
}

// tier 4: full-document sweep minus bank/ID/phone noise and date lines
func totalAnywhere(lines []string) *decimal.Decimal {
	var best *decimal.Decimal
	for _, ln := range lines {
		if containsAny(strings.ToLower(ln), totalNoiseWords) {
			continue
		}
		if reDateOnly.MatchString(strings.TrimSpace(ln)) {
			continue
		}
		best = maxCandidate(best, lineCandidates(ln))
	}
	return best
}

func hasStrongLabel(ln string) bool {
	return containsAny(strings.ToLower(ln), strongTotalLabels)
}

// lineCandidates parses every numeric token on the line into plausible
// monetary candidates, in order of appearance. Date tokens are removed
// first; "15.03.2024" would otherwise parse as an amount.
func lineCandidates(ln string) []decimal.Decimal {
	ln = reDateToken.ReplaceAllString(ln, "")
	var out []decimal.Decimal
	for _, tok := range reNumToken.FindAllString(ln, -1) {
		if numparse.DigitCount(tok) >= maxDigitLen {
			continue
		}
		d, ok := numparse.Amount(tok)
		if !ok || !plausibleTotal(d) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func plausibleTotal(d decimal.Decimal) bool {
	return d.IsPositive() && d.LessThan(maxPlausib)
}

func maxCandidate(best *decimal.Decimal, cands []decimal.Decimal) *decimal.Decimal {
	for i := range cands {
		if best == nil || cands[i].GreaterThan(*best) {
			best = &cands[i]
		}
	}
	return best
}

func round2(d *decimal.Decimal) *decimal.Decimal {
	r := d.Round(2)
	return &r
}
