package repositories

import (
	"context"

	"github.com/mkrv/cashflow_app/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves every account.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// UpsertAccount inserts the account or updates it when the id exists.
	UpsertAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account by id.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepository combines all account persistence operations.
type AccountRepository interface {
	AccountReader
	AccountWriter
}
