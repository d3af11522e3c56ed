package services

import (
	"context"
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

// accountService implements portssvc.AccountSvc.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new account service.
func NewAccountService(repo portsrepo.AccountRepository) portssvc.AccountSvc {
	return &accountService{accountRepo: repo}
}

var _ portssvc.AccountSvc = (*accountService)(nil)

func (s *accountService) UpsertAccount(ctx context.Context, req dto.UpsertAccountRequest) (*domain.Account, error) {
	accountID := uuid.NewString()
	if req.AccountID != nil && *req.AccountID != "" {
		accountID = *req.AccountID
	}

	account, err := req.ToDomain(accountID)
	if err != nil {
		s.LogError(ctx, err, "Invalid account dates", slog.String("account_id", accountID))
		return nil, err
	}
	if account.EndDate.Before(account.AnchorDate) {
		err := fmt.Errorf("%w: account end date %s is before anchor date %s",
			apperrors.ErrValidation, req.EndDate, req.AnchorDate)
		s.LogError(ctx, err, "Invalid account lifetime", slog.String("account_id", accountID))
		return nil, err
	}

	now := time.Now()
	account.AuditFields = domain.AuditFields{CreatedAt: now, LastUpdatedAt: now}

	if err := s.accountRepo.UpsertAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to upsert account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account upserted", slog.String("account_id", accountID), slog.String("name", account.Name))
	return &account, nil
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}
