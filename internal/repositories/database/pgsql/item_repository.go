package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkrv/cashflow_app/internal/apperrors"
	"github.com/mkrv/cashflow_app/internal/core/domain"
	portsrepo "github.com/mkrv/cashflow_app/internal/core/ports/repositories"
	"github.com/mkrv/cashflow_app/internal/models"
)

type PgxItemRepository struct {
	pool *pgxpool.Pool
}

// newPgxItemRepository creates a new repository for single and recurring
// item data.
func newPgxItemRepository(pool *pgxpool.Pool) portsrepo.ItemRepository {
	return &PgxItemRepository{pool: pool}
}

var _ portsrepo.ItemRepository = (*PgxItemRepository)(nil)

func toModelSingleItem(d domain.SingleItem) models.SingleItem {
	return models.SingleItem{
		ItemID:      d.ItemID,
		Date:        d.Date,
		Category:    d.Category,
		Description: d.Description,
		Kind:        string(d.Kind),
		Amount:      d.Amount,
		Enabled:     d.Enabled,
		AccountID:   d.AccountID,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainSingleItem(m models.SingleItem) domain.SingleItem {
	return domain.SingleItem{
		ItemID:      m.ItemID,
		Date:        m.Date.UTC(),
		Category:    m.Category,
		Description: m.Description,
		Kind:        domain.ItemKind(m.Kind),
		Amount:      m.Amount,
		Enabled:     m.Enabled,
		AccountID:   m.AccountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

func toModelRecurringItem(d domain.RecurringItem) models.RecurringItem {
	return models.RecurringItem{
		ItemID:      d.ItemID,
		Every:       d.Every,
		Unit:        string(d.Unit),
		Category:    d.Category,
		Description: d.Description,
		DateFrom:    d.DateFrom,
		DateTo:      d.DateTo,
		Kind:        string(d.Kind),
		Amount:      d.Amount,
		Enabled:     d.Enabled,
		AccountID:   d.AccountID,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainRecurringItem(m models.RecurringItem) domain.RecurringItem {
	var dateTo *time.Time
	if m.DateTo != nil {
		t := m.DateTo.UTC()
		dateTo = &t
	}
	return domain.RecurringItem{
		ItemID:      m.ItemID,
		Every:       m.Every,
		Unit:        domain.IntervalUnit(m.Unit),
		Category:    m.Category,
		Description: m.Description,
		DateFrom:    m.DateFrom.UTC(),
		DateTo:      dateTo,
		Kind:        domain.ItemKind(m.Kind),
		Amount:      m.Amount,
		Enabled:     m.Enabled,
		AccountID:   m.AccountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const singleItemColumns = `item_id, date, category, description, kind, amount, enabled, account_id, created_at, last_updated_at`

const recurringItemColumns = `item_id, every, unit, category, description, date_from, date_to, kind, amount, enabled, account_id, created_at, last_updated_at`

func scanSingleItem(row pgx.Row) (models.SingleItem, error) {
	var m models.SingleItem
	err := row.Scan(
		&m.ItemID,
		&m.Date,
		&m.Category,
		&m.Description,
		&m.Kind,
		&m.Amount,
		&m.Enabled,
		&m.AccountID,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func scanRecurringItem(row pgx.Row) (models.RecurringItem, error) {
	var m models.RecurringItem
	err := row.Scan(
		&m.ItemID,
		&m.Every,
		&m.Unit,
		&m.Category,
		&m.Description,
		&m.DateFrom,
		&m.DateTo,
		&m.Kind,
		&m.Amount,
		&m.Enabled,
		&m.AccountID,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// UpsertSingleItem inserts or updates a one-off item.
func (r *PgxItemRepository) UpsertSingleItem(ctx context.Context, item domain.SingleItem) error {
	m := toModelSingleItem(item)

	query := `
		INSERT INTO single_items (` + singleItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (item_id) DO UPDATE SET
			date = EXCLUDED.date,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			kind = EXCLUDED.kind,
			amount = EXCLUDED.amount,
			enabled = EXCLUDED.enabled,
			account_id = EXCLUDED.account_id,
			last_updated_at = EXCLUDED.last_updated_at;
	`

	_, err := r.pool.Exec(ctx, query,
		m.ItemID, m.Date, m.Category, m.Description, m.Kind,
		m.Amount, m.Enabled, m.AccountID, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		return wrapItemWriteError(err, "single item", m.ItemID)
	}
	return nil
}

// UpsertRecurringItem inserts or updates a recurring item.
func (r *PgxItemRepository) UpsertRecurringItem(ctx context.Context, item domain.RecurringItem) error {
	m := toModelRecurringItem(item)

	query := `
		INSERT INTO recurring_items (` + recurringItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (item_id) DO UPDATE SET
			every = EXCLUDED.every,
			unit = EXCLUDED.unit,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			date_from = EXCLUDED.date_from,
			date_to = EXCLUDED.date_to,
			kind = EXCLUDED.kind,
			amount = EXCLUDED.amount,
			enabled = EXCLUDED.enabled,
			account_id = EXCLUDED.account_id,
			last_updated_at = EXCLUDED.last_updated_at;
	`

	_, err := r.pool.Exec(ctx, query,
		m.ItemID, m.Every, m.Unit, m.Category, m.Description,
		m.DateFrom, m.DateTo, m.Kind, m.Amount, m.Enabled,
		m.AccountID, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		return wrapItemWriteError(err, "recurring item", m.ItemID)
	}
	return nil
}

// wrapItemWriteError maps PostgreSQL constraint violations onto the shared
// sentinel errors.
func wrapItemWriteError(err error, entity, id string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s %s", apperrors.ErrDuplicate, entity, id)
		case "23503":
			return fmt.Errorf("%w: %s %s references a missing account", apperrors.ErrMissingReference, entity, id)
		}
	}
	return fmt.Errorf("failed to upsert %s %s: %w", entity, id, err)
}

// FindSingleItemByID retrieves a one-off item by its ID.
func (r *PgxItemRepository) FindSingleItemByID(ctx context.Context, itemID string) (*domain.SingleItem, error) {
	query := `SELECT ` + singleItemColumns + ` FROM single_items WHERE item_id = $1;`

	m, err := scanSingleItem(r.pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find single item by ID %s: %w", itemID, err)
	}

	d := toDomainSingleItem(m)
	return &d, nil
}

// FindRecurringItemByID retrieves a recurring item by its ID.
func (r *PgxItemRepository) FindRecurringItemByID(ctx context.Context, itemID string) (*domain.RecurringItem, error) {
	query := `SELECT ` + recurringItemColumns + ` FROM recurring_items WHERE item_id = $1;`

	m, err := scanRecurringItem(r.pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find recurring item by ID %s: %w", itemID, err)
	}

	d := toDomainRecurringItem(m)
	return &d, nil
}

// ListSingleItems retrieves one-off items, optionally filtered by account.
// Disabled items are included.
func (r *PgxItemRepository) ListSingleItems(ctx context.Context, accountID string) ([]domain.SingleItem, error) {
	query := `SELECT ` + singleItemColumns + ` FROM single_items`
	args := []any{}
	if accountID != "" {
		query += ` WHERE account_id = $1`
		args = append(args, accountID)
	}
	query += ` ORDER BY date, item_id;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query single items: %w", err)
	}
	defer rows.Close()

	items := []domain.SingleItem{}
	for rows.Next() {
		m, err := scanSingleItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan single item row: %w", err)
		}
		items = append(items, toDomainSingleItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating single item rows: %w", err)
	}
	return items, nil
}

// ListRecurringItems retrieves recurring items, optionally filtered by
// account. Disabled items are included.
func (r *PgxItemRepository) ListRecurringItems(ctx context.Context, accountID string) ([]domain.RecurringItem, error) {
	query := `SELECT ` + recurringItemColumns + ` FROM recurring_items`
	args := []any{}
	if accountID != "" {
		query += ` WHERE account_id = $1`
		args = append(args, accountID)
	}
	query += ` ORDER BY date_from, item_id;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring items: %w", err)
	}
	defer rows.Close()

	items := []domain.RecurringItem{}
	for rows.Next() {
		m, err := scanRecurringItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring item row: %w", err)
		}
		items = append(items, toDomainRecurringItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recurring item rows: %w", err)
	}
	return items, nil
}

// DeleteSingleItem removes a one-off item by id.
func (r *PgxItemRepository) DeleteSingleItem(ctx context.Context, itemID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM single_items WHERE item_id = $1;`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete single item %s: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: single item %s", apperrors.ErrNotFound, itemID)
	}
	return nil
}

// DeleteRecurringItem removes a recurring item by id.
func (r *PgxItemRepository) DeleteRecurringItem(ctx context.Context, itemID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM recurring_items WHERE item_id = $1;`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete recurring item %s: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: recurring item %s", apperrors.ErrNotFound, itemID)
	}
	return nil
}
