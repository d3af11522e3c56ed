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

// itemService implements portssvc.ItemSvc.
type itemService struct {
	BaseService
	itemRepo    portsrepo.ItemRepository
	accountRepo portsrepo.AccountReader
}

// NewItemService creates a new item service.
func NewItemService(itemRepo portsrepo.ItemRepository, accountRepo portsrepo.AccountReader) portssvc.ItemSvc {
	return &itemService{itemRepo: itemRepo, accountRepo: accountRepo}
}

var _ portssvc.ItemSvc = (*itemService)(nil)

func (s *itemService) UpsertSingleItem(ctx context.Context, req dto.UpsertSingleItemRequest) (*domain.SingleItem, error) {
	itemID := uuid.NewString()
	if req.ItemID != nil && *req.ItemID != "" {
		itemID = *req.ItemID
	}

	item, err := req.ToDomain(itemID)
	if err != nil {
		s.LogError(ctx, err, "Invalid single item date", slog.String("item_id", itemID))
		return nil, err
	}
	if err := s.checkAccountExists(ctx, item.AccountID); err != nil {
		s.LogError(ctx, err, "Single item references unknown account",
			slog.String("item_id", itemID), slog.String("account_id", item.AccountID))
		return nil, err
	}

	now := time.Now()
	item.AuditFields = domain.AuditFields{CreatedAt: now, LastUpdatedAt: now}

	if err := s.itemRepo.UpsertSingleItem(ctx, item); err != nil {
		s.LogError(ctx, err, "Failed to upsert single item", slog.String("item_id", itemID))
		return nil, err
	}

	s.LogInfo(ctx, "Single item upserted", slog.String("item_id", itemID))
	return &item, nil
}

func (s *itemService) UpsertRecurringItem(ctx context.Context, req dto.UpsertRecurringItemRequest) (*domain.RecurringItem, error) {
	itemID := uuid.NewString()
	if req.ItemID != nil && *req.ItemID != "" {
		itemID = *req.ItemID
	}

	item, err := req.ToDomain(itemID)
	if err != nil {
		s.LogError(ctx, err, "Invalid recurring item dates", slog.String("item_id", itemID))
		return nil, err
	}
	if err := validateRecurrence(item); err != nil {
		s.LogError(ctx, err, "Invalid recurrence definition", slog.String("item_id", itemID))
		return nil, err
	}
	if err := s.checkAccountExists(ctx, item.AccountID); err != nil {
		s.LogError(ctx, err, "Recurring item references unknown account",
			slog.String("item_id", itemID), slog.String("account_id", item.AccountID))
		return nil, err
	}

	now := time.Now()
	item.AuditFields = domain.AuditFields{CreatedAt: now, LastUpdatedAt: now}

	if err := s.itemRepo.UpsertRecurringItem(ctx, item); err != nil {
		s.LogError(ctx, err, "Failed to upsert recurring item", slog.String("item_id", itemID))
		return nil, err
	}

	s.LogInfo(ctx, "Recurring item upserted", slog.String("item_id", itemID))
	return &item, nil
}

func (s *itemService) ListSingleItems(ctx context.Context, accountID string) ([]domain.SingleItem, error) {
	items, err := s.itemRepo.ListSingleItems(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list single items", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list single items: %w", err)
	}
	if items == nil {
		return []domain.SingleItem{}, nil
	}
	return items, nil
}

func (s *itemService) ListRecurringItems(ctx context.Context, accountID string) ([]domain.RecurringItem, error) {
	items, err := s.itemRepo.ListRecurringItems(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recurring items", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list recurring items: %w", err)
	}
	if items == nil {
		return []domain.RecurringItem{}, nil
	}
	return items, nil
}

func (s *itemService) DeleteSingleItem(ctx context.Context, itemID string) error {
	if err := s.itemRepo.DeleteSingleItem(ctx, itemID); err != nil {
		s.LogError(ctx, err, "Failed to delete single item", slog.String("item_id", itemID))
		return err
	}
	s.LogInfo(ctx, "Single item deleted", slog.String("item_id", itemID))
	return nil
}

func (s *itemService) DeleteRecurringItem(ctx context.Context, itemID string) error {
	if err := s.itemRepo.DeleteRecurringItem(ctx, itemID); err != nil {
		s.LogError(ctx, err, "Failed to delete recurring item", slog.String("item_id", itemID))
		return err
	}
	s.LogInfo(ctx, "Recurring item deleted", slog.String("item_id", itemID))
	return nil
}

func (s *itemService) checkAccountExists(ctx context.Context, accountID string) error {
	_, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: account %s does not exist", apperrors.ErrMissingReference, accountID)
	}
	return err
}

// validateRecurrence checks the configuration invariants of a recurring
// definition. Binding validation already covers most of these for HTTP input;
// the service re-checks so bad data never reaches the expander.
func validateRecurrence(item domain.RecurringItem) error {
	if !item.Unit.IsValid() {
		return fmt.Errorf("%w: unknown interval unit %q", apperrors.ErrValidation, item.Unit)
	}
	if item.Every <= 0 {
		return fmt.Errorf("%w: interval count must be positive, got %d", apperrors.ErrValidation, item.Every)
	}
	if item.DateTo != nil && item.DateTo.Before(item.DateFrom) {
		return fmt.Errorf("%w: dateTo %s is before dateFrom %s", apperrors.ErrValidation,
			item.DateTo.Format(domain.DateLayout), item.DateFrom.Format(domain.DateLayout))
	}
	return nil
}
