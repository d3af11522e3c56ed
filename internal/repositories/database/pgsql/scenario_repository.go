package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mkrv/cashflow_app/internal/apperrors"
	"github.com/mkrv/cashflow_app/internal/core/domain"
	portsrepo "github.com/mkrv/cashflow_app/internal/core/ports/repositories"
	"github.com/mkrv/cashflow_app/internal/models"
)

type PgxScenarioRepository struct {
	pool *pgxpool.Pool
}

// newPgxScenarioRepository creates a new repository for scenarios and their
// overrides.
func newPgxScenarioRepository(pool *pgxpool.Pool) portsrepo.ScenarioRepository {
	return &PgxScenarioRepository{pool: pool}
}

var _ portsrepo.ScenarioRepository = (*PgxScenarioRepository)(nil)

// nullStr maps the empty string onto SQL NULL so optional text columns stay
// NULL instead of accumulating empty strings.
func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toDomainScenario(m models.Scenario) domain.Scenario {
	return domain.Scenario{
		ScenarioID:  m.ScenarioID,
		Name:        m.Name,
		Description: m.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// UpsertScenario inserts or updates a scenario.
func (r *PgxScenarioRepository) UpsertScenario(ctx context.Context, scenario domain.Scenario) error {
	query := `
		INSERT INTO scenarios (scenario_id, name, description, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (scenario_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			last_updated_at = EXCLUDED.last_updated_at;
	`

	_, err := r.pool.Exec(ctx, query,
		scenario.ScenarioID,
		scenario.Name,
		scenario.Description,
		scenario.CreatedAt,
		scenario.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: scenario %s", apperrors.ErrDuplicate, scenario.ScenarioID)
		}
		return fmt.Errorf("failed to upsert scenario %s: %w", scenario.ScenarioID, err)
	}
	return nil
}

// FindScenarioByID retrieves a scenario by its ID.
func (r *PgxScenarioRepository) FindScenarioByID(ctx context.Context, scenarioID string) (*domain.Scenario, error) {
	query := `SELECT scenario_id, name, description, created_at, last_updated_at FROM scenarios WHERE scenario_id = $1;`

	var m models.Scenario
	err := r.pool.QueryRow(ctx, query, scenarioID).Scan(
		&m.ScenarioID,
		&m.Name,
		&m.Description,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find scenario by ID %s: %w", scenarioID, err)
	}

	d := toDomainScenario(m)
	return &d, nil
}

// ListScenarios retrieves every scenario ordered by name.
func (r *PgxScenarioRepository) ListScenarios(ctx context.Context) ([]domain.Scenario, error) {
	query := `SELECT scenario_id, name, description, created_at, last_updated_at FROM scenarios ORDER BY name, scenario_id;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer rows.Close()

	scenarios := []domain.Scenario{}
	for rows.Next() {
		var m models.Scenario
		if err := rows.Scan(&m.ScenarioID, &m.Name, &m.Description, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scenario row: %w", err)
		}
		scenarios = append(scenarios, toDomainScenario(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scenario rows: %w", err)
	}
	return scenarios, nil
}

// DeleteScenario removes a scenario. Its overrides are removed by the
// ON DELETE CASCADE constraints.
func (r *PgxScenarioRepository) DeleteScenario(ctx context.Context, scenarioID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM scenarios WHERE scenario_id = $1;`, scenarioID)
	if err != nil {
		return fmt.Errorf("failed to delete scenario %s: %w", scenarioID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: scenario %s", apperrors.ErrNotFound, scenarioID)
	}
	return nil
}

// UpsertRecurringOverride inserts or updates a recurring override.
func (r *PgxScenarioRepository) UpsertRecurringOverride(ctx context.Context, override domain.RecurringOverride) error {
	query := `
		INSERT INTO recurring_overrides (override_id, scenario_id, op, target_id, every, unit, category, description, date_from, date_to, kind, amount, enabled, account_id, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (override_id) DO UPDATE SET
			scenario_id = EXCLUDED.scenario_id,
			op = EXCLUDED.op,
			target_id = EXCLUDED.target_id,
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

	var unit sql.NullString
	if override.Unit != nil {
		unit = sql.NullString{String: string(*override.Unit), Valid: true}
	}

	_, err := r.pool.Exec(ctx, query,
		override.OverrideID,
		override.ScenarioID,
		string(override.Op),
		nullStr(override.TargetID),
		override.Every,
		unit,
		nullStr(override.Category),
		nullStr(override.Description),
		override.DateFrom,
		override.DateTo,
		nullStr(string(override.Kind)),
		override.Amount,
		override.Enabled,
		nullStr(override.AccountID),
		override.CreatedAt,
		override.LastUpdatedAt,
	)
	if err != nil {
		return wrapOverrideWriteError(err, "recurring override", override.OverrideID)
	}
	return nil
}

// UpsertSingleOverride inserts or updates a single-item override.
func (r *PgxScenarioRepository) UpsertSingleOverride(ctx context.Context, override domain.SingleOverride) error {
	query := `
		INSERT INTO single_overrides (override_id, scenario_id, op, target_id, date, category, description, kind, amount, enabled, account_id, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (override_id) DO UPDATE SET
			scenario_id = EXCLUDED.scenario_id,
			op = EXCLUDED.op,
			target_id = EXCLUDED.target_id,
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
		override.OverrideID,
		override.ScenarioID,
		string(override.Op),
		nullStr(override.TargetID),
		override.Date,
		nullStr(override.Category),
		nullStr(override.Description),
		nullStr(string(override.Kind)),
		override.Amount,
		override.Enabled,
		nullStr(override.AccountID),
		override.CreatedAt,
		override.LastUpdatedAt,
	)
	if err != nil {
		return wrapOverrideWriteError(err, "single override", override.OverrideID)
	}
	return nil
}

// wrapOverrideWriteError maps PostgreSQL constraint violations onto the
// shared sentinel errors. The partial unique index on replace overrides
// surfaces as a 23505 here.
func wrapOverrideWriteError(err error, entity, id string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s %s", apperrors.ErrDuplicate, entity, id)
		case "23503":
			return fmt.Errorf("%w: %s %s references a missing scenario", apperrors.ErrMissingReference, entity, id)
		}
	}
	return fmt.Errorf("failed to upsert %s %s: %w", entity, id, err)
}

const recurringOverrideColumns = `override_id, scenario_id, op, target_id, every, unit, category, description, date_from, date_to, kind, amount, enabled, account_id, created_at, last_updated_at`

// ListRecurringOverrides retrieves the recurring overrides of one scenario.
func (r *PgxScenarioRepository) ListRecurringOverrides(ctx context.Context, scenarioID string) ([]domain.RecurringOverride, error) {
	query := `SELECT ` + recurringOverrideColumns + ` FROM recurring_overrides WHERE scenario_id = $1 ORDER BY created_at, override_id;`

	rows, err := r.pool.Query(ctx, query, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring overrides for scenario %s: %w", scenarioID, err)
	}
	defer rows.Close()

	overrides := []domain.RecurringOverride{}
	for rows.Next() {
		var m models.RecurringOverride
		var targetID, unit, category, description, kind, accountID sql.NullString
		var every sql.NullInt32
		var dateFrom, dateTo sql.NullTime
		var amount decimal.NullDecimal
		var enabled sql.NullBool

		err := rows.Scan(
			&m.OverrideID,
			&m.ScenarioID,
			&m.Op,
			&targetID,
			&every,
			&unit,
			&category,
			&description,
			&dateFrom,
			&dateTo,
			&kind,
			&amount,
			&enabled,
			&accountID,
			&m.CreatedAt,
			&m.LastUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring override row: %w", err)
		}

		d := domain.RecurringOverride{
			OverrideID:  m.OverrideID,
			ScenarioID:  m.ScenarioID,
			Op:          domain.OverrideOp(m.Op),
			TargetID:    targetID.String,
			Category:    category.String,
			Description: description.String,
			Kind:        domain.ItemKind(kind.String),
			AccountID:   accountID.String,
			AuditFields: domain.AuditFields{
				CreatedAt:     m.CreatedAt,
				LastUpdatedAt: m.LastUpdatedAt,
			},
		}
		if every.Valid {
			v := int(every.Int32)
			d.Every = &v
		}
		if unit.Valid {
			u := domain.IntervalUnit(unit.String)
			d.Unit = &u
		}
		if dateFrom.Valid {
			t := dateFrom.Time.UTC()
			d.DateFrom = &t
		}
		if dateTo.Valid {
			t := dateTo.Time.UTC()
			d.DateTo = &t
		}
		if amount.Valid {
			a := amount.Decimal
			d.Amount = &a
		}
		if enabled.Valid {
			b := enabled.Bool
			d.Enabled = &b
		}

		overrides = append(overrides, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recurring override rows: %w", err)
	}
	return overrides, nil
}

const singleOverrideColumns = `override_id, scenario_id, op, target_id, date, category, description, kind, amount, enabled, account_id, created_at, last_updated_at`

// ListSingleOverrides retrieves the single-item overrides of one scenario.
func (r *PgxScenarioRepository) ListSingleOverrides(ctx context.Context, scenarioID string) ([]domain.SingleOverride, error) {
	query := `SELECT ` + singleOverrideColumns + ` FROM single_overrides WHERE scenario_id = $1 ORDER BY created_at, override_id;`

	rows, err := r.pool.Query(ctx, query, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query single overrides for scenario %s: %w", scenarioID, err)
	}
	defer rows.Close()

	overrides := []domain.SingleOverride{}
	for rows.Next() {
		var m models.SingleOverride
		var targetID, category, description, kind, accountID sql.NullString
		var date sql.NullTime
		var amount decimal.NullDecimal
		var enabled sql.NullBool

		err := rows.Scan(
			&m.OverrideID,
			&m.ScenarioID,
			&m.Op,
			&targetID,
			&date,
			&category,
			&description,
			&kind,
			&amount,
			&enabled,
			&accountID,
			&m.CreatedAt,
			&m.LastUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan single override row: %w", err)
		}

		d := domain.SingleOverride{
			OverrideID:  m.OverrideID,
			ScenarioID:  m.ScenarioID,
			Op:          domain.OverrideOp(m.Op),
			TargetID:    targetID.String,
			Category:    category.String,
			Description: description.String,
			Kind:        domain.ItemKind(kind.String),
			AccountID:   accountID.String,
			AuditFields: domain.AuditFields{
				CreatedAt:     m.CreatedAt,
				LastUpdatedAt: m.LastUpdatedAt,
			},
		}
		if date.Valid {
			t := date.Time.UTC()
			d.Date = &t
		}
		if amount.Valid {
			a := amount.Decimal
			d.Amount = &a
		}
		if enabled.Valid {
			b := enabled.Bool
			d.Enabled = &b
		}

		overrides = append(overrides, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating single override rows: %w", err)
	}
	return overrides, nil
}

// HasRecurringReplaceOverride reports whether the scenario already holds a
// replace override for targetID, ignoring the override with excludeID.
func (r *PgxScenarioRepository) HasRecurringReplaceOverride(ctx context.Context, scenarioID, targetID, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM recurring_overrides
			WHERE scenario_id = $1 AND op = 'replace' AND target_id = $2 AND override_id <> $3
		);
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, scenarioID, targetID, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check recurring replace override for target %s: %w", targetID, err)
	}
	return exists, nil
}

// HasSingleReplaceOverride reports whether the scenario already holds a
// replace override for targetID, ignoring the override with excludeID.
func (r *PgxScenarioRepository) HasSingleReplaceOverride(ctx context.Context, scenarioID, targetID, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM single_overrides
			WHERE scenario_id = $1 AND op = 'replace' AND target_id = $2 AND override_id <> $3
		);
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, scenarioID, targetID, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check single replace override for target %s: %w", targetID, err)
	}
	return exists, nil
}

// DeleteRecurringOverride removes a recurring override by id.
func (r *PgxScenarioRepository) DeleteRecurringOverride(ctx context.Context, overrideID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM recurring_overrides WHERE override_id = $1;`, overrideID)
	if err != nil {
		return fmt.Errorf("failed to delete recurring override %s: %w", overrideID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: recurring override %s", apperrors.ErrNotFound, overrideID)
	}
	return nil
}

// DeleteSingleOverride removes a single-item override by id.
func (r *PgxScenarioRepository) DeleteSingleOverride(ctx context.Context, overrideID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM single_overrides WHERE override_id = $1;`, overrideID)
	if err != nil {
		return fmt.Errorf("failed to delete single override %s: %w", overrideID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: single override %s", apperrors.ErrNotFound, overrideID)
	}
	return nil
}
