package services

import (
	"context"
	"time"

	"github.com/mkrv/cashflow_app/internal/core/domain"
	"github.com/mkrv/cashflow_app/internal/dto"
)

// AccountSvc exposes account CRUD to the transport layer.
type AccountSvc interface {
	UpsertAccount(ctx context.Context, req dto.UpsertAccountRequest) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error
}

// ItemSvc exposes single and recurring item CRUD.
type ItemSvc interface {
	UpsertSingleItem(ctx context.Context, req dto.UpsertSingleItemRequest) (*domain.SingleItem, error)
	UpsertRecurringItem(ctx context.Context, req dto.UpsertRecurringItemRequest) (*domain.RecurringItem, error)
	ListSingleItems(ctx context.Context, accountID string) ([]domain.SingleItem, error)
	ListRecurringItems(ctx context.Context, accountID string) ([]domain.RecurringItem, error)
	DeleteSingleItem(ctx context.Context, itemID string) error
	DeleteRecurringItem(ctx context.Context, itemID string) error
}

// ScenarioSvc exposes scenario and override CRUD. Override writes enforce the
// configuration invariants (valid op, replace targets exist, at most one
// replace per target, add overrides carry every required field).
type ScenarioSvc interface {
	UpsertScenario(ctx context.Context, req dto.UpsertScenarioRequest) (*domain.Scenario, error)
	ListScenarios(ctx context.Context) ([]domain.Scenario, error)
	DeleteScenario(ctx context.Context, scenarioID string) error
	UpsertRecurringOverride(ctx context.Context, scenarioID string, req dto.UpsertRecurringOverrideRequest) (*domain.RecurringOverride, error)
	UpsertSingleOverride(ctx context.Context, scenarioID string, req dto.UpsertSingleOverrideRequest) (*domain.SingleOverride, error)
	DeleteRecurringOverride(ctx context.Context, overrideID string) error
	DeleteSingleOverride(ctx context.Context, overrideID string) error
}

// ProjectionSvc runs the projection engine against a fresh storage snapshot.
// Empty scenarioID means the baseline; empty accountID means all accounts;
// a nil until means no cutoff. Unknown scenario or account filters yield an
// empty result, not an error.
type ProjectionSvc interface {
	Project(ctx context.Context, scenarioID, accountID string, until *time.Time) ([]domain.Movement, error)
	ProjectCombined(ctx context.Context, until *time.Time) ([]domain.CombinedMovement, error)
}

// ServiceContainer bundles the services handed to the HTTP layer.
type ServiceContainer struct {
	Account    AccountSvc
	Item       ItemSvc
	Scenario   ScenarioSvc
	Projection ProjectionSvc
}
