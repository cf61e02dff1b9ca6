// Package store is the reference implementation of the persistence
// collaborator: an embedded sqlite database holding extraction results.
// The core never depends on it; callers hand results over after the
// pipeline has finished.
package store

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/Havardbaban/buildcarbon-sub000/constants"
	"github.com/Havardbaban/buildcarbon-sub000/internal/common"
	"github.com/Havardbaban/buildcarbon-sub000/internal/entity"
)

type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the database at path. Use ":memory:" for
// an ephemeral store.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, common.WrapError(err, "open sqlite")
	}
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id            TEXT PRIMARY KEY,
	vendor        TEXT,
	invoice_no    TEXT,
	org_number    TEXT,
	issue_date    TEXT,
	total_amount  TEXT,
	currency_code TEXT NOT NULL,
	energy_kwh    TEXT,
	fuel_liters   TEXT,
	gas_m3        TEXT,
	co2_kg        TEXT,
	created_at    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS lines (
	document_id TEXT NOT NULL REFERENCES documents(id),
	position    INTEGER NOT NULL,
	description TEXT NOT NULL,
	quantity    TEXT,
	unit_raw    TEXT,
	unit        TEXT,
	amount      TEXT,
	category    TEXT,
	scope       INTEGER,
	factor_id   TEXT,
	co2_kg      TEXT,
	co2_source  TEXT,
	PRIMARY KEY (document_id, position)
);
`

// Init creates the schema when missing.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return common.WrapError(err, "init schema")
}

// SaveResult persists one extraction result, replacing any previous rows for
// the same document.
func (s *Store) SaveResult(ctx context.Context, res *entity.ExtractionResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.WrapError(err, "begin tx")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM lines WHERE document_id = ?`, res.DocumentID.String()); err != nil {
		return common.WrapError(err, "clear lines")
	}

	h := res.Header
	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO documents
			(id, vendor, invoice_no, org_number, issue_date, total_amount,
			 currency_code, energy_kwh, fuel_liters, gas_m3, co2_kg, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.DocumentID.String(),
		h.Vendor, h.InvoiceNumber, h.OrgNumber,
		dateStr(h.IssueDate), decStr(h.TotalAmount), h.CurrencyCode,
		decStr(h.EnergyKwh), decStr(h.FuelLiters), decStr(h.GasM3), decStr(h.CO2Kg),
		res.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return common.WrapError(err, "insert document")
	}

	for i, l := range res.Lines {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO lines
				(document_id, position, description, quantity, unit_raw, unit,
				 amount, category, scope, factor_id, co2_kg, co2_source)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			res.DocumentID.String(), i, l.Description,
			decStr(l.Quantity), l.UnitRaw, unitStr(l.Unit),
			decStr(l.Amount), catStr(l.Category), l.Scope, l.FactorID,
			decStr(l.CO2Kg), l.CO2Source,
		)
		if err != nil {
			return common.WrapError(err, "insert line")
		}
	}

	if err := tx.Commit(); err != nil {
		return common.WrapError(err, "commit")
	}
	s.logger.Info("store.save.ok", "document_id", res.DocumentID.String(), "lines", len(res.Lines))
	return nil
}

// GetResult loads a persisted result by document id.
func (s *Store) GetResult(ctx context.Context, id uuid.UUID) (*entity.ExtractionResult, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT vendor, invoice_no, org_number, issue_date, total_amount,
		       currency_code, energy_kwh, fuel_liters, gas_m3, co2_kg, created_at
		FROM documents WHERE id = ?`, id.String())

	var h entity.ParsedHeader
	var issueDate, total, kwh, liters, m3, co2 sql.NullString
	var createdAt string
	err := row.Scan(&h.Vendor, &h.InvoiceNumber, &h.OrgNumber, &issueDate, &total,
		&h.CurrencyCode, &kwh, &liters, &m3, &co2, &createdAt)
	if err == sql.ErrNoRows {
		return nil, common.NewAppError("STORE_NOT_FOUND", "document not found", common.ErrNotFound)
	}
	if err != nil {
		return nil, common.WrapError(err, "scan document")
	}
	h.IssueDate = parseDate(issueDate)
	h.TotalAmount = parseDec(total)
	h.EnergyKwh = parseDec(kwh)
	h.FuelLiters = parseDec(liters)
	h.GasM3 = parseDec(m3)
	h.CO2Kg = parseDec(co2)

	res := &entity.ExtractionResult{DocumentID: id, Header: h}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		res.CreatedAt = t
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT description, quantity, unit_raw, unit, amount,
		       category, scope, factor_id, co2_kg, co2_source
		FROM lines WHERE document_id = ? ORDER BY position`, id.String())
	if err != nil {
		return nil, common.WrapError(err, "query lines")
	}
	defer rows.Close()

	for rows.Next() {
		var l entity.EnrichedLine
		var qty, amt, lco2, unit, cat sql.NullString
		var scope sql.NullInt64
		if err := rows.Scan(&l.Description, &qty, &l.UnitRaw, &unit, &amt,
			&cat, &scope, &l.FactorID, &lco2, &l.CO2Source); err != nil {
			return nil, common.WrapError(err, "scan line")
		}
		l.Quantity = parseDec(qty)
		l.Amount = parseDec(amt)
		l.CO2Kg = parseDec(lco2)
		if unit.Valid {
			u := constants.Unit(unit.String)
			l.Unit = &u
		}
		if cat.Valid {
			c := constants.Category(cat.String)
			l.Category = &c
		}
		if scope.Valid {
			sc := int(scope.Int64)
			l.Scope = &sc
		}
		res.Lines = append(res.Lines, l)
	}
	return res, rows.Err()
}

func decStr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func parseDec(ns sql.NullString) *decimal.Decimal {
	if !ns.Valid {
		return nil
	}
	d, err := decimal.NewFromString(ns.String)
	if err != nil {
		return nil
	}
	return &d
}

func dateStr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func parseDate(ns sql.NullString) *time.Time {
	if !ns.Valid {
		return nil
	}
	t, err := time.ParseInLocation("2006-01-02", ns.String, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

func unitStr(u *constants.Unit) *string {
	if u == nil {
		return nil
	}
	s := string(*u)
	return &s
}

func catStr(c *constants.Category) *string {
	if c == nil {
		return nil
	}
	s := string(*c)
	return &s
}
