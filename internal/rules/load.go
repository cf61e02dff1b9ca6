package rules

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Havardbaban/buildcarbon-sub000/internal/common"
)

// Load reads a JSON rule table, validates it against the schema and returns
// the parsed table. Keywords and unit tokens are lower-cased on load so the
// matchers never have to.
func Load(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, common.WrapError(err, "read rule table")
	}
	if err := ValidateJSONAgainstSchema(BuildTableJSONSchema(), data); err != nil {
		return nil, common.NewAppError("RULES_INVALID", "rule table rejected", err)
	}

	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, common.WrapError(err, "decode rule table")
	}

	for i := range t.Categories {
		for j, kw := range t.Categories[i].Keywords {
			t.Categories[i].Keywords[j] = strings.ToLower(strings.TrimSpace(kw))
		}
	}
	units := make(map[string]UnitAlias, len(t.Units))
	for tok, alias := range t.Units {
		if alias.Multiplier.IsZero() {
			return nil, common.NewAppError("RULES_INVALID",
				fmt.Sprintf("unit %q has zero multiplier", tok), common.ErrValidation)
		}
		units[strings.ToLower(strings.TrimSpace(tok))] = alias
	}
	t.Units = units

	if t.PieceMassKg.IsZero() {
		t.PieceMassKg = decimal.NewFromFloat(2.5)
	}
	return &t, nil
}

// LoadFile is Load over a file path.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.WrapError(err, "open rule table")
	}
	defer f.Close()
	return Load(f)
}
