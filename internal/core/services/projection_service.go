package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/mkrv/cashflow_app/internal/apperrors"
	"github.com/mkrv/cashflow_app/internal/core/domain"
	portsrepo "github.com/mkrv/cashflow_app/internal/core/ports/repositories"
	portssvc "github.com/mkrv/cashflow_app/internal/core/ports/services"
	"github.com/mkrv/cashflow_app/internal/core/projection"
	"github.com/shopspring/decimal"
)

// Pool ids for the legacy global-ledger mode: accounts classified as "Cash"
// pool into one synthetic account, everything else pools into "Bank Account".
const (
	cashPoolID   = "pool-cash"
	bankPoolID   = "pool-bank"
	cashPoolType = "Cash"
	bankPoolType = "Bank Account"
)

// projectionService implements portssvc.ProjectionSvc. Each call loads a
// fresh snapshot of accounts, items and overrides and runs the pure engine
// over it; nothing is cached between calls, so concurrent projections never
// share mutable state.
type projectionService struct {
	BaseService
	accountRepo  portsrepo.AccountReader
	itemRepo     portsrepo.ItemReader
	scenarioRepo portsrepo.ScenarioReader
}

// NewProjectionService creates a new projection service.
func NewProjectionService(accountRepo portsrepo.AccountReader, itemRepo portsrepo.ItemReader, scenarioRepo portsrepo.ScenarioReader) portssvc.ProjectionSvc {
	return &projectionService{accountRepo: accountRepo, itemRepo: itemRepo, scenarioRepo: scenarioRepo}
}

var _ portssvc.ProjectionSvc = (*projectionService)(nil)

func (s *projectionService) Project(ctx context.Context, scenarioID, accountID string, until *time.Time) ([]domain.Movement, error) {
	snap, found, err := s.loadSnapshot(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	if !found {
		// Unknown scenario is a valid empty state, not an error.
		s.LogDebug(ctx, "Projection requested for unknown scenario", slog.String("scenario_id", scenarioID))
		return []domain.Movement{}, nil
	}

	targets := snap.accounts
	if accountID != "" {
		account, ok := snap.accountsByID[accountID]
		if !ok {
			s.LogDebug(ctx, "Projection requested for unknown account", slog.String("account_id", accountID))
			return []domain.Movement{}, nil
		}
		targets = []domain.Account{account}
	}

	stream, err := s.resolveAndCombine(ctx, snap)
	if err != nil {
		return nil, err
	}

	rows := []domain.Movement{}
	for _, account := range targets {
		rows = append(rows, projection.FoldAccount(account, stream)...)
	}
	return filterUntil(rows, until), nil
}

func (s *projectionService) ProjectCombined(ctx context.Context, until *time.Time) ([]domain.CombinedMovement, error) {
	snap, _, err := s.loadSnapshot(ctx, "")
	if err != nil {
		return nil, err
	}

	stream, err := s.resolveAndCombine(ctx, snap)
	if err != nil {
		return nil, err
	}

	// The pooled view is the same fold run over two synthetic accounts: each
	// movement is retagged to the pool its owning account classifies into.
	cashPool, hasCash := poolAccount(cashPoolID, cashPoolType, snap.accounts, func(a domain.Account) bool {
		return a.AccountType == cashPoolType
	})
	bankPool, hasBank := poolAccount(bankPoolID, bankPoolType, snap.accounts, func(a domain.Account) bool {
		return a.AccountType != cashPoolType
	})

	retagged := make([]projection.Occurrence, 0, len(stream))
	for _, occ := range stream {
		account, ok := snap.accountsByID[occ.AccountID]
		if !ok {
			continue
		}
		if account.AccountType == cashPoolType {
			occ.AccountID = cashPoolID
		} else {
			occ.AccountID = bankPoolID
		}
		retagged = append(retagged, occ)
	}

	var cashRows, bankRows []domain.Movement
	if hasCash {
		cashRows = projection.FoldAccount(cashPool, retagged)
	}
	if hasBank {
		bankRows = projection.FoldAccount(bankPool, retagged)
	}

	rows := mergePools(cashRows, bankRows)
	if until != nil {
		kept := rows[:0]
		for _, r := range rows {
			if r.Date.Before(*until) {
				kept = append(kept, r)
			}
		}
		rows = kept
	}
	return rows, nil
}

// snapshot is the immutable data set one projection call works on.
type snapshot struct {
	accounts     []domain.Account
	accountsByID map[string]domain.Account
	scenarioID   string
	recurring    []domain.RecurringItem
	single       []domain.SingleItem
	recurringOvr []domain.RecurringOverride
	singleOvr    []domain.SingleOverride
}

// loadSnapshot fetches everything a projection needs in one pass. The second
// return value is false when the requested scenario does not exist.
func (s *projectionService) loadSnapshot(ctx context.Context, scenarioID string) (*snapshot, bool, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load accounts for projection: %w", err)
	}
	// Deterministic cross-account ordering regardless of storage order.
	sort.SliceStable(accounts, func(i, j int) bool {
		if accounts[i].Name != accounts[j].Name {
			return accounts[i].Name < accounts[j].Name
		}
		return accounts[i].AccountID < accounts[j].AccountID
	})

	byID := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.AccountID] = a
	}

	recurring, err := s.itemRepo.ListRecurringItems(ctx, "")
	if err != nil {
		return nil, false, fmt.Errorf("failed to load recurring items for projection: %w", err)
	}
	single, err := s.itemRepo.ListSingleItems(ctx, "")
	if err != nil {
		return nil, false, fmt.Errorf("failed to load single items for projection: %w", err)
	}

	snap := &snapshot{
		accounts:     accounts,
		accountsByID: byID,
		scenarioID:   scenarioID,
		recurring:    recurring,
		single:       single,
	}

	if scenarioID == "" {
		return snap, true, nil
	}

	if _, err := s.scenarioRepo.FindScenarioByID(ctx, scenarioID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return snap, false, nil
		}
		return nil, false, fmt.Errorf("failed to load scenario %s: %w", scenarioID, err)
	}
	snap.recurringOvr, err = s.scenarioRepo.ListRecurringOverrides(ctx, scenarioID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load recurring overrides for scenario %s: %w", scenarioID, err)
	}
	snap.singleOvr, err = s.scenarioRepo.ListSingleOverrides(ctx, scenarioID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load single overrides for scenario %s: %w", scenarioID, err)
	}
	return snap, true, nil
}

func (s *projectionService) resolveAndCombine(ctx context.Context, snap *snapshot) ([]projection.Occurrence, error) {
	recurring, single, issues := projection.Resolve(snap.scenarioID, snap.recurring, snap.single, snap.recurringOvr, snap.singleOvr)
	for _, issue := range issues {
		s.LogWarn(ctx, "Override excluded from scenario resolution",
			slog.String("scenario_id", snap.scenarioID),
			slog.String("override_id", issue.OverrideID),
			slog.String("target_id", issue.TargetID),
			slog.String("reason", issue.Reason))
	}

	stream, err := projection.Combine(recurring, single, snap.accountsByID)
	if err != nil {
		return nil, fmt.Errorf("failed to combine items for projection: %w", err)
	}
	return stream, nil
}

// filterUntil drops rows at or after the cutoff. The cutoff is a view
// filter applied after folding: balances before it are unaffected by
// movements at or beyond it.
func filterUntil(rows []domain.Movement, until *time.Time) []domain.Movement {
	if until == nil {
		return rows
	}
	kept := make([]domain.Movement, 0, len(rows))
	for _, r := range rows {
		if r.Date.Before(*until) {
			kept = append(kept, r)
		}
	}
	return kept
}

// poolAccount synthesizes one pooled account out of the accounts matching
// the classifier: opening balances sum, the anchor is the earliest member
// anchor and the lifetime runs to the latest member end date.
func poolAccount(id, name string, accounts []domain.Account, matches func(domain.Account) bool) (domain.Account, bool) {
	pool := domain.Account{AccountID: id, Name: name, AccountType: name, OpeningBalance: decimal.Zero}
	found := false
	for _, a := range accounts {
		if !matches(a) {
			continue
		}
		if !found || a.AnchorDate.Before(pool.AnchorDate) {
			pool.AnchorDate = a.AnchorDate
		}
		if !found || a.EndDate.After(pool.EndDate) {
			pool.EndDate = a.EndDate
		}
		pool.OpeningBalance = pool.OpeningBalance.Add(a.OpeningBalance)
		found = true
	}
	return pool, found
}

// mergePools zips the two per-pool trajectories into dual-balance rows in
// chronological order, carrying the latest seen balance of each pool onto
// every row. Cash rows win ties so the merge is deterministic.
func mergePools(cashRows, bankRows []domain.Movement) []domain.CombinedMovement {
	var lastCash, lastBank decimal.Decimal
	out := make([]domain.CombinedMovement, 0, len(cashRows)+len(bankRows))

	emit := func(m domain.Movement, accountType string) {
		if accountType == cashPoolType {
			lastCash = m.Balance
		} else {
			lastBank = m.Balance
		}
		out = append(out, domain.CombinedMovement{
			Date:        m.Date,
			Category:    m.Category,
			Description: m.Description,
			AccountType: accountType,
			Amount:      m.Amount,
			Cash:        lastCash,
			Bank:        lastBank,
		})
	}

	i, j := 0, 0
	for i < len(cashRows) && j < len(bankRows) {
		if !bankRows[j].Date.Before(cashRows[i].Date) {
			emit(cashRows[i], cashPoolType)
			i++
		} else {
			emit(bankRows[j], bankPoolType)
			j++
		}
	}
	for ; i < len(cashRows); i++ {
		emit(cashRows[i], cashPoolType)
	}
	for ; j < len(bankRows); j++ {
		emit(bankRows[j], bankPoolType)
	}
	return out
}
