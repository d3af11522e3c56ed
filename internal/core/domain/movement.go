package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpeningBalanceCategory is the category of the synthetic row that seeds each
// per-account projection with the account's opening balance.
const OpeningBalanceCategory = "Opening Balance"

// Movement is one row of projection output: a dated change to an account
// balance and the running balance after applying it. Amount is always an
// additive currency delta, even when the underlying item was percent-kind;
// consumers never need to know the kind to read Amount as "change in balance".
// Movements are derived fresh on every projection call and never persisted.
type Movement struct {
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	AccountID   string          `json:"accountID"`
	Kind        ItemKind        `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Balance     decimal.Decimal `json:"balance"`
}

// CombinedMovement is the legacy global-ledger row shape: instead of one
// balance per account, exactly two pooled running balances (cash and bank)
// are carried on every row.
type CombinedMovement struct {
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	AccountType string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Cash        decimal.Decimal `json:"cash"`
	Bank        decimal.Decimal `json:"bank"`
}
