package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SingleItem represents a one-off item row.
type SingleItem struct {
	ItemID      string          `db:"item_id"`
	Date        time.Time       `db:"date"`
	Category    string          `db:"category"`
	Description string          `db:"description"`
	Kind        string          `db:"kind"`
	Amount      decimal.Decimal `db:"amount"`
	Enabled     bool            `db:"enabled"`
	AccountID   string          `db:"account_id"`
	AuditFields
}

// RecurringItem represents a recurring item row. DateTo is nullable for
// open-ended items.
type RecurringItem struct {
	ItemID      string          `db:"item_id"`
	Every       int             `db:"every"`
	Unit        string          `db:"unit"`
	Category    string          `db:"category"`
	Description string          `db:"description"`
	DateFrom    time.Time       `db:"date_from"`
	DateTo      *time.Time      `db:"date_to"`
	Kind        string          `db:"kind"`
	Amount      decimal.Decimal `db:"amount"`
	Enabled     bool            `db:"enabled"`
	AccountID   string          `db:"account_id"`
	AuditFields
}
