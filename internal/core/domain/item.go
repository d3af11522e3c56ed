package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IntervalUnit is the calendar unit a recurring item repeats in.
type IntervalUnit string

const (
	UnitDay   IntervalUnit = "day"
	UnitWeek  IntervalUnit = "week"
	UnitMonth IntervalUnit = "month"
	UnitYear  IntervalUnit = "year"
)

// IsValid reports whether the unit is one of the supported interval units.
// Unknown units are a configuration error and must be rejected before any
// expansion begins.
func (u IntervalUnit) IsValid() bool {
	switch u {
	case UnitDay, UnitWeek, UnitMonth, UnitYear:
		return true
	}
	return false
}

// ItemKind describes how an item's amount updates a balance: as an additive
// currency delta or as a multiplicative percentage.
type ItemKind string

const (
	KindAbsolute ItemKind = "absolute"
	KindPercent  ItemKind = "percent"
)

// IsValid reports whether the kind is a supported balance-update semantic.
func (k ItemKind) IsValid() bool {
	return k == KindAbsolute || k == KindPercent
}

// SingleItem is one dated balance-affecting movement.
type SingleItem struct {
	ItemID      string          `json:"itemID"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Kind        ItemKind        `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Enabled     bool            `json:"enabled"`
	AccountID   string          `json:"accountID"`
	AuditFields
}

// RecurringItem defines a repeating movement. DateTo is nil for open-ended
// items, in which case the owning account's EndDate bounds expansion.
type RecurringItem struct {
	ItemID      string          `json:"itemID"`
	Every       int             `json:"every"`
	Unit        IntervalUnit    `json:"unit"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	DateFrom    time.Time       `json:"dateFrom"`
	DateTo      *time.Time      `json:"dateTo,omitempty"`
	Kind        ItemKind        `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Enabled     bool            `json:"enabled"`
	AccountID   string          `json:"accountID"`
	AuditFields
}
