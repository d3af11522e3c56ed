package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Scenario represents a what-if scenario row.
type Scenario struct {
	ScenarioID  string `db:"scenario_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	AuditFields
}

// RecurringOverride represents a recurring override row. All overridable
// columns are nullable; NULL means "not overridden" for replace rows.
type RecurringOverride struct {
	OverrideID  string           `db:"override_id"`
	ScenarioID  string           `db:"scenario_id"`
	Op          string           `db:"op"`
	TargetID    string           `db:"target_id"` // empty for add rows, stored as NULL
	Every       *int             `db:"every"`
	Unit        *string          `db:"unit"`
	Category    string           `db:"category"`
	Description string           `db:"description"`
	DateFrom    *time.Time       `db:"date_from"`
	DateTo      *time.Time       `db:"date_to"`
	Kind        string           `db:"kind"`
	Amount      *decimal.Decimal `db:"amount"`
	Enabled     *bool            `db:"enabled"`
	AccountID   string           `db:"account_id"`
	AuditFields
}

// SingleOverride represents a single-item override row.
type SingleOverride struct {
	OverrideID  string           `db:"override_id"`
	ScenarioID  string           `db:"scenario_id"`
	Op          string           `db:"op"`
	TargetID    string           `db:"target_id"`
	Date        *time.Time       `db:"date"`
	Category    string           `db:"category"`
	Description string           `db:"description"`
	Kind        string           `db:"kind"`
	Amount      *decimal.Decimal `db:"amount"`
	Enabled     *bool            `db:"enabled"`
	AccountID   string           `db:"account_id"`
	AuditFields
}
