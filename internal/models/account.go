package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a financial account row.
type Account struct {
	AccountID      string          `db:"account_id"`
	Name           string          `db:"name"`
	AccountType    string          `db:"account_type"`
	AnchorDate     time.Time       `db:"anchor_date"`
	EndDate        time.Time       `db:"end_date"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	Liquid         bool            `db:"liquid"`
	AuditFields
}
