package repositories

import (
	"context"

	"github.com/mkrv/cashflow_app/internal/core/domain"
)

// ScenarioReader defines read operations for scenarios and their overrides.
type ScenarioReader interface {
	FindScenarioByID(ctx context.Context, scenarioID string) (*domain.Scenario, error)
	ListScenarios(ctx context.Context) ([]domain.Scenario, error)
	ListRecurringOverrides(ctx context.Context, scenarioID string) ([]domain.RecurringOverride, error)
	ListSingleOverrides(ctx context.Context, scenarioID string) ([]domain.SingleOverride, error)

	// HasReplaceOverride reports whether the scenario already holds a replace
	// override for the given target, excluding the override with excludeID so
	// an upsert can update itself.
	HasRecurringReplaceOverride(ctx context.Context, scenarioID, targetID, excludeID string) (bool, error)
	HasSingleReplaceOverride(ctx context.Context, scenarioID, targetID, excludeID string) (bool, error)
}

// ScenarioWriter defines write operations for scenarios and overrides.
type ScenarioWriter interface {
	UpsertScenario(ctx context.Context, scenario domain.Scenario) error
	DeleteScenario(ctx context.Context, scenarioID string) error
	UpsertRecurringOverride(ctx context.Context, override domain.RecurringOverride) error
	UpsertSingleOverride(ctx context.Context, override domain.SingleOverride) error
	DeleteRecurringOverride(ctx context.Context, overrideID string) error
	DeleteSingleOverride(ctx context.Context, overrideID string) error
}

// ScenarioRepository combines all scenario persistence operations.
type ScenarioRepository interface {
	ScenarioReader
	ScenarioWriter
}

// RepositoryProvider bundles the concrete repositories handed to the service
// container.
type RepositoryProvider struct {
	AccountRepo  AccountRepository
	ItemRepo     ItemRepository
	ScenarioRepo ScenarioRepository
}
