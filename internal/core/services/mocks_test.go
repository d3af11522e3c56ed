package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mkrv/cashflow_app/internal/core/domain"
)

// MockAccountRepository is a mock type for the AccountRepository interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpsertAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// MockItemRepository is a mock type for the ItemRepository interface
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindSingleItemByID(ctx context.Context, itemID string) (*domain.SingleItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SingleItem), args.Error(1)
}

func (m *MockItemRepository) FindRecurringItemByID(ctx context.Context, itemID string) (*domain.RecurringItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringItem), args.Error(1)
}

func (m *MockItemRepository) ListSingleItems(ctx context.Context, accountID string) ([]domain.SingleItem, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SingleItem), args.Error(1)
}

func (m *MockItemRepository) ListRecurringItems(ctx context.Context, accountID string) ([]domain.RecurringItem, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringItem), args.Error(1)
}

func (m *MockItemRepository) UpsertSingleItem(ctx context.Context, item domain.SingleItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) UpsertRecurringItem(ctx context.Context, item domain.RecurringItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) DeleteSingleItem(ctx context.Context, itemID string) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockItemRepository) DeleteRecurringItem(ctx context.Context, itemID string) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

// MockScenarioRepository is a mock type for the ScenarioRepository interface
type MockScenarioRepository struct {
	mock.Mock
}

func (m *MockScenarioRepository) FindScenarioByID(ctx context.Context, scenarioID string) (*domain.Scenario, error) {
	args := m.Called(ctx, scenarioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scenario), args.Error(1)
}

func (m *MockScenarioRepository) ListScenarios(ctx context.Context) ([]domain.Scenario, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Scenario), args.Error(1)
}

func (m *MockScenarioRepository) ListRecurringOverrides(ctx context.Context, scenarioID string) ([]domain.RecurringOverride, error) {
	args := m.Called(ctx, scenarioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringOverride), args.Error(1)
}

func (m *MockScenarioRepository) ListSingleOverrides(ctx context.Context, scenarioID string) ([]domain.SingleOverride, error) {
	args := m.Called(ctx, scenarioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SingleOverride), args.Error(1)
}

func (m *MockScenarioRepository) HasRecurringReplaceOverride(ctx context.Context, scenarioID, targetID, excludeID string) (bool, error) {
	args := m.Called(ctx, scenarioID, targetID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockScenarioRepository) HasSingleReplaceOverride(ctx context.Context, scenarioID, targetID, excludeID string) (bool, error) {
	args := m.Called(ctx, scenarioID, targetID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockScenarioRepository) UpsertScenario(ctx context.Context, scenario domain.Scenario) error {
	args := m.Called(ctx, scenario)
	return args.Error(0)
}

func (m *MockScenarioRepository) DeleteScenario(ctx context.Context, scenarioID string) error {
	args := m.Called(ctx, scenarioID)
	return args.Error(0)
}

func (m *MockScenarioRepository) UpsertRecurringOverride(ctx context.Context, override domain.RecurringOverride) error {
	args := m.Called(ctx, override)
	return args.Error(0)
}

func (m *MockScenarioRepository) UpsertSingleOverride(ctx context.Context, override domain.SingleOverride) error {
	args := m.Called(ctx, override)
	return args.Error(0)
}

func (m *MockScenarioRepository) DeleteRecurringOverride(ctx context.Context, overrideID string) error {
	args := m.Called(ctx, overrideID)
	return args.Error(0)
}

func (m *MockScenarioRepository) DeleteSingleOverride(ctx context.Context, overrideID string) error {
	args := m.Called(ctx, overrideID)
	return args.Error(0)
}
