package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Havardbaban/buildcarbon-sub000/internal/numparse"
)

var (
	reVendorLabel = regexp.MustCompile(`(?i)^(?:vendor|from|fra|issuer|supplier|leverandør|selger|utsteder|avsender)\s*[:.]?\s+(.+)$`)
	reInvoiceNo   = regexp.MustCompile(`(?i)\b(?:invoice|faktura)(?:\s*(?:no|nr|number|nummer))?\s*[:#.]?\s*([A-Za-z0-9][A-Za-z0-9\-/]{3,})`)
	reOrgLabel    = regexp.MustCompile(`(?i)\borg(?:\.?\s?nr|anisasjonsnummer|anization(?:\s+number)?)?\b\D{0,8}(\d[\d ]{5,}\d)`)
	reBareOrg     = regexp.MustCompile(`\b(\d{3} ?\d{3} ?\d{3})\b`)
	reDateLabel   = regexp.MustCompile(`(?i)(?:fakturadato|invoice\s*date|dato|date)\D{0,8}(\d{1,2}[./-]\d{1,2}[./-]\d{2,4})`)
	reDateToken   = regexp.MustCompile(`\b(\d{1,2})[./-](\d{1,2})[./-](\d{2,4})\b`)
	reHasLetter   = regexp.MustCompile(`\p{L}`)

	// quantity shape: 3-digit grouping plus at most one decimal part, so an
	// adjacent amount on the same line never merges into the quantity
	reEnergyKwh = regexp.MustCompile(`(?i)(\d+(?:[ .,]\d{3})*(?:[.,]\d+)?)\s*kwh\b`)
	reLiters    = regexp.MustCompile(`(?i)(\d+(?:[ .,]\d{3})*(?:[.,]\d+)?)\s*(?:liter|litre|ltr|l)\b`)
	reCubic     = regexp.MustCompile(`(?i)(\d+(?:[ .,]\d{3})*(?:[.,]\d+)?)\s*m(?:3|³)\b`)
	reCO2Before = regexp.MustCompile(`(?i)(\d+(?:[ .,]\d{3})*(?:[.,]\d+)?)\s*kg\s*co2`)
	reCO2After  = regexp.MustCompile(`(?i)co2\D{0,10}?(\d+(?:[ .,]\d{3})*(?:[.,]\d+)?)\s*kg\b`)
)

// vendor noise: labels and address fragments that disqualify a candidate line
var vendorNoiseWords = []string{
	"faktura", "invoice", "kvittering", "receipt", "konto", "account", "iban",
	"betaling", "payment", "due", "forfall", "mva", "vat", "org",
	"adresse", "address", "postboks", "p.o. box",
}

var addressWords = []string{
	"gate", "gata", "vei", "veien", "allé", "street", "road", "avenue",
	"postboks", "box",
}

// Vendor applies three strategies in order: explicit label, line above the
// organization-number line, then the first plausible name near the top.
func Vendor(lines []string, scanDepth int) *string {
	// (a) explicit label
	for _, ln := range lines {
		if m := reVendorLabel.FindStringSubmatch(ln); m != nil {
			cand := strings.TrimSpace(m[1])
			if !vendorNoise(cand) {
				return &cand
			}
		}
	}

	// (b) line immediately preceding the org-number line
	for i, ln := range lines {
		if reOrgLabel.MatchString(ln) || looksLikeBareOrg(ln) {
			if i > 0 {
				cand := strings.TrimSpace(lines[i-1])
				if cand != "" && !vendorNoise(cand) {
					return &cand
				}
			}
		}
	}

	// (c) first of the top lines with a letter that is neither address nor noise
	depth := scanDepth
	if depth > len(lines) {
		depth = len(lines)
	}
	for _, ln := range lines[:depth] {
		if !reHasLetter.MatchString(ln) {
			continue
		}
		if vendorNoise(ln) || addressLike(ln) {
			continue
		}
		cand := strings.TrimSpace(ln)
		return &cand
	}
	return nil
}

func vendorNoise(s string) bool {
	lower := strings.ToLower(s)
	for _, w := range vendorNoiseWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return mostlyDigits(s)
}

func addressLike(s string) bool {
	lower := strings.ToLower(s)
	for _, w := range addressWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func mostlyDigits(s string) bool {
	total, digits := 0, 0
	for _, r := range s {
		if r == ' ' {
			continue
		}
		total++
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return total > 0 && digits*2 > total
}

// InvoiceNumber returns the first labeled alphanumeric token of length >= 4.
func InvoiceNumber(lines []string) *string {
	for _, ln := range lines {
		if m := reInvoiceNo.FindStringSubmatch(ln); m != nil {
			tok := m[1]
			return &tok
		}
	}
	return nil
}

// OrgNumber finds a labeled 7+ digit group or a bare 9-digit group and
// validates that it is exactly 9 digits once internal spaces are removed.
func OrgNumber(lines []string) *string {
	for _, ln := range lines {
		if m := reOrgLabel.FindStringSubmatch(ln); m != nil {
			if n, ok := nineDigits(m[1]); ok {
				return &n
			}
		}
	}
	for _, ln := range lines {
		if m := reBareOrg.FindStringSubmatch(ln); m != nil {
			if n, ok := nineDigits(m[1]); ok {
				return &n
			}
		}
	}
	return nil
}

func nineDigits(s string) (string, bool) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s) != 9 {
		return "", false
	}
	return s, true
}

func looksLikeBareOrg(s string) bool {
	m := reBareOrg.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	_, ok := nineDigits(m[1])
	return ok
}

// IssueDate takes the first labeled date, then any D.M.Y token. Candidates
// with day > 31 or month > 12 (or otherwise impossible dates) are rejected,
// not clamped; a document without a valid candidate yields nil.
func IssueDate(lines []string) *time.Time {
	for _, ln := range lines {
		if m := reDateLabel.FindStringSubmatch(ln); m != nil {
			if t, ok := parseDMY(m[1]); ok {
				return &t
			}
		}
	}
	for _, ln := range lines {
		for _, m := range reDateToken.FindAllStringSubmatch(ln, -1) {
			if t, ok := parseDMY(m[0]); ok {
				return &t
			}
		}
	}
	return nil
}

func parseDMY(tok string) (time.Time, bool) {
	m := reDateToken.FindStringSubmatch(tok)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	if year < 100 {
		// two-digit pivot: 70..99 -> 1900s, 00..69 -> 2000s
		if year >= 70 {
			year += 1900
		} else {
			year += 2000
		}
	}
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// reject dates time.Date silently normalized (e.g. 31.02)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}

// currencyWords maps spelled-out currency mentions to ISO codes; iterated in
// fixed order to keep extraction deterministic.
var currencyWords = []struct {
	word string
	code string
}{
	{"kroner", "NOK"},
	{"krone", "NOK"},
	{"euro", "EUR"},
	{"dollar", "USD"},
	{"pund", "GBP"},
	{"pound", "GBP"},
}

var reCurrencyCode = regexp.MustCompile(`\b(NOK|SEK|DKK|EUR|USD|GBP|CHF|ISK)\b`)

// Currency returns the configured home currency unless the text names
// another one via an ISO code, symbol or currency word.
func Currency(lines []string, home string) string {
	for _, ln := range lines {
		if m := reCurrencyCode.FindStringSubmatch(ln); m != nil {
			return m[1]
		}
	}
	for _, ln := range lines {
		lower := strings.ToLower(ln)
		for _, cw := range currencyWords {
			if strings.Contains(lower, cw.word) {
				return cw.code
			}
		}
		if strings.Contains(ln, "€") {
			return "EUR"
		}
		if strings.Contains(ln, "£") {
			return "GBP"
		}
		if strings.Contains(ln, "$") {
			return "USD"
		}
		if reKrMarker.MatchString(ln) {
			return "NOK"
		}
	}
	return home
}

// EnergyKwh returns the first kWh quantity stated anywhere in the text.
func EnergyKwh(lines []string) *decimal.Decimal {
	return firstQuantity(lines, reEnergyKwh, nil)
}

// FuelLiters returns a liter quantity from a line that also mentions fuel;
// the bare "l" token is too ambiguous to trust without that context.
func FuelLiters(lines []string) *decimal.Decimal {
	fuelContext := []string{"diesel", "bensin", "petrol", "drivstoff", "fuel", "gasoline"}
	return firstQuantity(lines, reLiters, fuelContext)
}

// GasM3 returns a cubic-meter quantity from a gas-related line.
func GasM3(lines []string) *decimal.Decimal {
	gasContext := []string{"gass", "gas", "propan", "lpg"}
	return firstQuantity(lines, reCubic, gasContext)
}

// StatedCO2Kg returns a CO2 mass the document states outright.
func StatedCO2Kg(lines []string) *decimal.Decimal {
	if d := firstQuantity(lines, reCO2Before, nil); d != nil {
		return d
	}
	return firstQuantity(lines, reCO2After, nil)
}

func firstQuantity(lines []string, re *regexp.Regexp, context []string) *decimal.Decimal {
	for _, ln := range lines {
		if context != nil && !containsAny(strings.ToLower(ln), context) {
			continue
		}
		if m := re.FindStringSubmatch(ln); m != nil {
			if d, ok := numparse.Amount(m[1]); ok && d.IsPositive() {
				return &d
			}
		}
	}
	return nil
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
