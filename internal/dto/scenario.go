package dto

import (
	"time"

	"github.com/mkrv/cashflow_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertScenarioRequest defines the data for creating or updating a scenario.
type UpsertScenarioRequest struct {
	ScenarioID  *string `json:"id"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
}

// ToDomain converts the request into a domain.Scenario under the given id.
func (r UpsertScenarioRequest) ToDomain(scenarioID string) domain.Scenario {
	return domain.Scenario{
		ScenarioID:  scenarioID,
		Name:        r.Name,
		Description: r.Description,
	}
}

// ScenarioResponse defines the data returned for a scenario.
type ScenarioResponse struct {
	ScenarioID  string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToScenarioResponse converts a domain.Scenario to its response DTO.
func ToScenarioResponse(s *domain.Scenario) ScenarioResponse {
	return ScenarioResponse{
		ScenarioID:  s.ScenarioID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
	}
}

// ToListScenarioResponse converts a slice of scenarios to DTOs.
func ToListScenarioResponse(scenarios []domain.Scenario) []ScenarioResponse {
	res := make([]ScenarioResponse, len(scenarios))
	for i, s := range scenarios {
		res[i] = ToScenarioResponse(&s)
	}
	return res
}

// UpsertRecurringOverrideRequest defines a partial recurring item applied
// within a scenario. For op=replace, targetID must reference an existing
// recurring item and only the mutable fields are honoured. For op=add, every
// field a recurring item requires must be supplied.
type UpsertRecurringOverrideRequest struct {
	OverrideID  *string              `json:"id"`
	Op          domain.OverrideOp    `json:"op" binding:"required,oneof=add replace"`
	TargetID    string               `json:"targetID"`
	Every       *int                 `json:"every" binding:"omitempty,gt=0"`
	Unit        *domain.IntervalUnit `json:"unit" binding:"omitempty,oneof=day week month year"`
	Category    string               `json:"category"`
	Description string               `json:"description"`
	DateFrom    *string              `json:"dateFrom" binding:"omitempty,datetime=2006-01-02"`
	DateTo      *string              `json:"dateTo" binding:"omitempty,datetime=2006-01-02"`
	Kind        domain.ItemKind      `json:"kind" binding:"omitempty,oneof=absolute percent"`
	Amount      *decimal.Decimal     `json:"amount"`
	Enabled     *bool                `json:"enabled"`
	AccountID   string               `json:"accountID"`
}

// ToDomain converts the request into a domain.RecurringOverride.
func (r UpsertRecurringOverrideRequest) ToDomain(overrideID, scenarioID string) (domain.RecurringOverride, error) {
	from, err := ParseOptionalDate(r.DateFrom)
	if err != nil {
		return domain.RecurringOverride{}, err
	}
	to, err := ParseOptionalDate(r.DateTo)
	if err != nil {
		return domain.RecurringOverride{}, err
	}
	o := domain.RecurringOverride{
		OverrideID:  overrideID,
		ScenarioID:  scenarioID,
		Op:          r.Op,
		TargetID:    r.TargetID,
		Every:       r.Every,
		Unit:        r.Unit,
		Category:    r.Category,
		Description: r.Description,
		DateFrom:    from,
		DateTo:      to,
		Kind:        r.Kind,
		Enabled:     r.Enabled,
		AccountID:   r.AccountID,
	}
	if r.Amount != nil {
		amt := r.Amount.Round(2)
		o.Amount = &amt
	}
	return o, nil
}

// UpsertSingleOverrideRequest is the one-off counterpart of
// UpsertRecurringOverrideRequest.
type UpsertSingleOverrideRequest struct {
	OverrideID  *string           `json:"id"`
	Op          domain.OverrideOp `json:"op" binding:"required,oneof=add replace"`
	TargetID    string            `json:"targetID"`
	Date        *string           `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Category    string            `json:"category"`
	Description string            `json:"description"`
	Kind        domain.ItemKind   `json:"kind" binding:"omitempty,oneof=absolute percent"`
	Amount      *decimal.Decimal  `json:"amount"`
	Enabled     *bool             `json:"enabled"`
	AccountID   string            `json:"accountID"`
}

// ToDomain converts the request into a domain.SingleOverride.
func (r UpsertSingleOverrideRequest) ToDomain(overrideID, scenarioID string) (domain.SingleOverride, error) {
	date, err := ParseOptionalDate(r.Date)
	if err != nil {
		return domain.SingleOverride{}, err
	}
	o := domain.SingleOverride{
		OverrideID:  overrideID,
		ScenarioID:  scenarioID,
		Op:          r.Op,
		TargetID:    r.TargetID,
		Date:        date,
		Category:    r.Category,
		Description: r.Description,
		Kind:        r.Kind,
		Enabled:     r.Enabled,
		AccountID:   r.AccountID,
	}
	if r.Amount != nil {
		amt := r.Amount.Round(2)
		o.Amount = &amt
	}
	return o, nil
}

// OverrideResponse acknowledges an override upsert.
type OverrideResponse struct {
	OverrideID string            `json:"id"`
	ScenarioID string            `json:"scenarioID"`
	Op         domain.OverrideOp `json:"op"`
	TargetID   string            `json:"targetID,omitempty"`
}
