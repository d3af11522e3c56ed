package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Scenario is a named "what-if" overlay namespace. It has no effect on the
// baseline projection; its overrides only apply when the scenario is selected.
type Scenario struct {
	ScenarioID  string `json:"scenarioID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AuditFields
}

// OverrideOp is the kind of change an override applies.
type OverrideOp string

const (
	// OpAdd synthesizes a new item that exists only inside the scenario.
	OpAdd OverrideOp = "add"
	// OpReplace merges overridden fields into an existing base item.
	OpReplace OverrideOp = "replace"
)

// IsValid reports whether the op is a supported override operation.
func (o OverrideOp) IsValid() bool {
	return o == OpAdd || o == OpReplace
}

// RecurringOverride is a partial RecurringItem applied within one scenario.
// For OpReplace only the mutable fields (amount, dates, every, unit, enabled)
// are merged; category, description, kind and accountID always come from the
// base item. For OpAdd every field the base entity requires must be present.
type RecurringOverride struct {
	OverrideID  string           `json:"overrideID"`
	ScenarioID  string           `json:"scenarioID"`
	Op          OverrideOp       `json:"op"`
	TargetID    string           `json:"targetID,omitempty"` // required for replace, ignored for add
	Every       *int             `json:"every,omitempty"`
	Unit        *IntervalUnit    `json:"unit,omitempty"`
	Category    string           `json:"category,omitempty"`
	Description string           `json:"description,omitempty"`
	DateFrom    *time.Time       `json:"dateFrom,omitempty"`
	DateTo      *time.Time       `json:"dateTo,omitempty"`
	Kind        ItemKind         `json:"kind,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Enabled     *bool            `json:"enabled,omitempty"`
	AccountID   string           `json:"accountID,omitempty"`
	AuditFields
}

// SingleOverride is the one-off counterpart of RecurringOverride.
type SingleOverride struct {
	OverrideID  string           `json:"overrideID"`
	ScenarioID  string           `json:"scenarioID"`
	Op          OverrideOp       `json:"op"`
	TargetID    string           `json:"targetID,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
	Category    string           `json:"category,omitempty"`
	Description string           `json:"description,omitempty"`
	Kind        ItemKind         `json:"kind,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Enabled     *bool            `json:"enabled,omitempty"`
	AccountID   string           `json:"accountID,omitempty"`
	AuditFields
}
