package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mkrv/cashflow_app/internal/apperrors"
	"github.com/mkrv/cashflow_app/internal/core/domain"
	portsrepo "github.com/mkrv/cashflow_app/internal/core/ports/repositories"
	portssvc "github.com/mkrv/cashflow_app/internal/core/ports/services"
	"github.com/mkrv/cashflow_app/internal/dto"
)

// scenarioService implements portssvc.ScenarioSvc. Override writes are where
// the configuration invariants are enforced: a replace must target an
// existing item of the matching kind and at most one replace per
// (scenario, target) may exist; an add must carry every field the base
// entity requires. Rejecting here keeps resolution from ever having to guess.
type scenarioService struct {
	BaseService
	scenarioRepo portsrepo.ScenarioRepository
	itemRepo     portsrepo.ItemReader
	accountRepo  portsrepo.AccountReader
}

// NewScenarioService creates a new scenario service.
func NewScenarioService(scenarioRepo portsrepo.ScenarioRepository, itemRepo portsrepo.ItemReader, accountRepo portsrepo.AccountReader) portssvc.ScenarioSvc {
	return &scenarioService{scenarioRepo: scenarioRepo, itemRepo: itemRepo, accountRepo: accountRepo}
}

var _ portssvc.ScenarioSvc = (*scenarioService)(nil)

func (s *scenarioService) UpsertScenario(ctx context.Context, req dto.UpsertScenarioRequest) (*domain.Scenario, error) {
	scenarioID := uuid.NewString()
	if req.ScenarioID != nil && *req.ScenarioID != "" {
		scenarioID = *req.ScenarioID
	}

	scenario := req.ToDomain(scenarioID)
	now := time.Now()
	scenario.AuditFields = domain.AuditFields{CreatedAt: now, LastUpdatedAt: now}

	if err := s.scenarioRepo.UpsertScenario(ctx, scenario); err != nil {
		s.LogError(ctx, err, "Failed to upsert scenario", slog.String("scenario_id", scenarioID))
		return nil, err
	}

	s.LogInfo(ctx, "Scenario upserted", slog.String("scenario_id", scenarioID), slog.String("name", scenario.Name))
	return &scenario, nil
}

func (s *scenarioService) ListScenarios(ctx context.Context) ([]domain.Scenario, error) {
	scenarios, err := s.scenarioRepo.ListScenarios(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list scenarios")
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	if scenarios == nil {
		return []domain.Scenario{}, nil
	}
	return scenarios, nil
}

func (s *scenarioService) DeleteScenario(ctx context.Context, scenarioID string) error {
	if err := s.scenarioRepo.DeleteScenario(ctx, scenarioID); err != nil {
		s.LogError(ctx, err, "Failed to delete scenario", slog.String("scenario_id", scenarioID))
		return err
	}
	s.LogInfo(ctx, "Scenario deleted", slog.String("scenario_id", scenarioID))
	return nil
}

func (s *scenarioService) UpsertRecurringOverride(ctx context.Context, scenarioID string, req dto.UpsertRecurringOverrideRequest) (*domain.RecurringOverride, error) {
	if err := s.checkScenarioExists(ctx, scenarioID); err != nil {
		return nil, err
	}

	overrideID := uuid.NewString()
	if req.OverrideID != nil && *req.OverrideID != "" {
		overrideID = *req.OverrideID
	}

	override, err := req.ToDomain(overrideID, scenarioID)
	if err != nil {
		s.LogError(ctx, err, "Invalid override dates", slog.String("override_id", overrideID))
		return nil, err
	}

	switch override.Op {
	case domain.OpReplace:
		if override.TargetID == "" {
			return nil, fmt.Errorf("%w: replace override requires a targetID", apperrors.ErrValidation)
		}
		if _, err := s.itemRepo.FindRecurringItemByID(ctx, override.TargetID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: recurring item %s targeted by override %s in scenario %s",
					apperrors.ErrMissingReference, override.TargetID, overrideID, scenarioID)
			}
			return nil, err
		}
		dup, err := s.scenarioRepo.HasRecurringReplaceOverride(ctx, scenarioID, override.TargetID, overrideID)
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, fmt.Errorf("%w: scenario %s already replaces recurring item %s",
				apperrors.ErrDuplicate, scenarioID, override.TargetID)
		}
	case domain.OpAdd:
		if err := s.validateRecurringAdd(ctx, override); err != nil {
			s.LogError(ctx, err, "Incomplete add override", slog.String("override_id", overrideID))
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown override op %q", apperrors.ErrValidation, override.Op)
	}

	now := time.Now()
	override.AuditFields = domain.AuditFields{CreatedAt: now, LastUpdatedAt: now}

	if err := s.scenarioRepo.UpsertRecurringOverride(ctx, override); err != nil {
		s.LogError(ctx, err, "Failed to upsert recurring override", slog.String("override_id", overrideID))
		return nil, err
	}

	s.LogInfo(ctx, "Recurring override upserted",
		slog.String("override_id", overrideID),
		slog.String("scenario_id", scenarioID),
		slog.String("op", string(override.Op)))
	return &override, nil
}

func (s *scenarioService) UpsertSingleOverride(ctx context.Context, scenarioID string, req dto.UpsertSingleOverrideRequest) (*domain.SingleOverride, error) {
	if err := s.checkScenarioExists(ctx, scenarioID); err != nil {
		return nil, err
	}

	overrideID := uuid.NewString()
	if req.OverrideID != nil && *req.OverrideID != "" {
		overrideID = *req.OverrideID
	}

	override, err := req.ToDomain(overrideID, scenarioID)
	if err != nil {
		s.LogError(ctx, err, "Invalid override date", slog.String("override_id", overrideID))
		return nil, err
	}

	switch override.Op {
	case domain.OpReplace:
		if override.TargetID == "" {
			return nil, fmt.Errorf("%w: replace override requires a targetID", apperrors.ErrValidation)
		}
		if _, err := s.itemRepo.FindSingleItemByID(ctx, override.TargetID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: single item %s targeted by override %s in scenario %s",
					apperrors.ErrMissingReference, override.TargetID, overrideID, scenarioID)
			}
			return nil, err
		}
		dup, err := s.scenarioRepo.HasSingleReplaceOverride(ctx, scenarioID, override.TargetID, overrideID)
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, fmt.Errorf("%w: scenario %s already replaces single item %s",
				apperrors.ErrDuplicate, scenarioID, override.TargetID)
		}
	case domain.OpAdd:
		if err := s.validateSingleAdd(ctx, override); err != nil {
			s.LogError(ctx, err, "Incomplete add override", slog.String("override_id", overrideID))
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown override op %q", apperrors.ErrValidation, override.Op)
	}

	now := time.Now()
	override.AuditFields = domain.AuditFields{CreatedAt: now, LastUpdatedAt: now}

	if err := s.scenarioRepo.UpsertSingleOverride(ctx, override); err != nil {
		s.LogError(ctx, err, "Failed to upsert single override", slog.String("override_id", overrideID))
		return nil, err
	}

	s.LogInfo(ctx, "Single override upserted",
		slog.String("override_id", overrideID),
		slog.String("scenario_id", scenarioID),
		slog.String("op", string(override.Op)))
	return &override, nil
}

func (s *scenarioService) DeleteRecurringOverride(ctx context.Context, overrideID string) error {
	if err := s.scenarioRepo.DeleteRecurringOverride(ctx, overrideID); err != nil {
		s.LogError(ctx, err, "Failed to delete recurring override", slog.String("override_id", overrideID))
		return err
	}
	s.LogInfo(ctx, "Recurring override deleted", slog.String("override_id", overrideID))
	return nil
}

func (s *scenarioService) DeleteSingleOverride(ctx context.Context, overrideID string) error {
	if err := s.scenarioRepo.DeleteSingleOverride(ctx, overrideID); err != nil {
		s.LogError(ctx, err, "Failed to delete single override", slog.String("override_id", overrideID))
		return err
	}
	s.LogInfo(ctx, "Single override deleted", slog.String("override_id", overrideID))
	return nil
}

func (s *scenarioService) checkScenarioExists(ctx context.Context, scenarioID string) error {
	_, err := s.scenarioRepo.FindScenarioByID(ctx, scenarioID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: scenario %s does not exist", apperrors.ErrNotFound, scenarioID)
	}
	return err
}

func (s *scenarioService) validateRecurringAdd(ctx context.Context, o domain.RecurringOverride) error {
	if o.Every == nil || o.Unit == nil || o.DateFrom == nil {
		return fmt.Errorf("%w: add override %s must supply every, unit and dateFrom", apperrors.ErrValidation, o.OverrideID)
	}
	if !o.Unit.IsValid() {
		return fmt.Errorf("%w: unknown interval unit %q", apperrors.ErrValidation, *o.Unit)
	}
	if o.DateTo != nil && o.DateTo.Before(*o.DateFrom) {
		return fmt.Errorf("%w: dateTo is before dateFrom", apperrors.ErrValidation)
	}
	if o.Category == "" || !o.Kind.IsValid() || o.Amount == nil || o.AccountID == "" {
		return fmt.Errorf("%w: add override %s must supply category, kind, amount and accountID", apperrors.ErrValidation, o.OverrideID)
	}
	return s.checkAccountExists(ctx, o.AccountID)
}

func (s *scenarioService) validateSingleAdd(ctx context.Context, o domain.SingleOverride) error {
	if o.Date == nil {
		return fmt.Errorf("%w: add override %s must supply a date", apperrors.ErrValidation, o.OverrideID)
	}
	if o.Category == "" || !o.Kind.IsValid() || o.Amount == nil || o.AccountID == "" {
		return fmt.Errorf("%w: add override %s must supply category, kind, amount and accountID", apperrors.ErrValidation, o.OverrideID)
	}
	return s.checkAccountExists(ctx, o.AccountID)
}

func (s *scenarioService) checkAccountExists(ctx context.Context, accountID string) error {
	_, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: account %s does not exist", apperrors.ErrMissingReference, accountID)
	}
	return err
}
