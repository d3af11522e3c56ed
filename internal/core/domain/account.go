package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a financial account whose balance the projection engine
// tracks over time. AnchorDate is the date at which OpeningBalance is defined;
// EndDate bounds the account's lifetime and is the default stop for open-ended
// recurring items.
type Account struct {
	AccountID      string          `json:"accountID"`
	Name           string          `json:"name"`
	AccountType    string          `json:"accountType"` // free-form classification, e.g. "Bank Account" or "Cash"
	AnchorDate     time.Time       `json:"anchorDate"`
	EndDate        time.Time       `json:"endDate"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Liquid         bool            `json:"liquid"`
	AuditFields
}
