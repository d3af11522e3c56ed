package repositories

import (
	"context"

	"github.com/mkrv/cashflow_app/internal/core/domain"
)

// ItemReader defines read operations for single and recurring items. List
// methods take an optional accountID filter; the empty string lists items for
// all accounts. Disabled items are included; scenario resolution decides
// what is effective.
type ItemReader interface {
	FindSingleItemByID(ctx context.Context, itemID string) (*domain.SingleItem, error)
	FindRecurringItemByID(ctx context.Context, itemID string) (*domain.RecurringItem, error)
	ListSingleItems(ctx context.Context, accountID string) ([]domain.SingleItem, error)
	ListRecurringItems(ctx context.Context, accountID string) ([]domain.RecurringItem, error)
}

// ItemWriter defines write operations for items. Upserts are idempotent by
// item id.
type ItemWriter interface {
	UpsertSingleItem(ctx context.Context, item domain.SingleItem) error
	UpsertRecurringItem(ctx context.Context, item domain.RecurringItem) error
	DeleteSingleItem(ctx context.Context, itemID string) error
	DeleteRecurringItem(ctx context.Context, itemID string) error
}

// ItemRepository combines all item persistence operations.
type ItemRepository interface {
	ItemReader
	ItemWriter
}
