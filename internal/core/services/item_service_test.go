package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mkrv/cashflow_app/internal/apperrors"
	"github.com/mkrv/cashflow_app/internal/core/domain"
	portssvc "github.com/mkrv/cashflow_app/internal/core/ports/services"
	"github.com/mkrv/cashflow_app/internal/core/services"
	"github.com/mkrv/cashflow_app/internal/dto"
)

type ItemServiceTestSuite struct {
	suite.Suite
	mockItemRepo    *MockItemRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.ItemSvc
	ctx             context.Context
}

func (s *ItemServiceTestSuite) SetupTest() {
	s.mockItemRepo = new(MockItemRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.service = services.NewItemService(s.mockItemRepo, s.mockAccountRepo)
	s.ctx = context.Background()
}

func (s *ItemServiceTestSuite) expectAccount(accountID string) {
	s.mockAccountRepo.On("FindAccountByID", mock.Anything, accountID).
		Return(&domain.Account{AccountID: accountID}, nil)
}

func (s *ItemServiceTestSuite) TestUpsertSingleItemGeneratesID() {
	s.expectAccount("acc-1")
	s.mockItemRepo.On("UpsertSingleItem", mock.Anything, mock.AnythingOfType("domain.SingleItem")).Return(nil)

	item, err := s.service.UpsertSingleItem(s.ctx, dto.UpsertSingleItemRequest{
		Date:        "2025-02-10",
		Category:    "Groceries",
		Description: "weekly shop",
		Kind:        domain.KindAbsolute,
		Amount:      decimal.NewFromInt(-50),
		AccountID:   "acc-1",
	})

	s.Require().NoError(err)
	s.NotEmpty(item.ItemID)
	s.True(item.Enabled, "enabled defaults to true")
	s.mockItemRepo.AssertExpectations(s.T())
}

func (s *ItemServiceTestSuite) TestUpsertSingleItemUnknownAccount() {
	s.mockAccountRepo.On("FindAccountByID", mock.Anything, "acc-ghost").
		Return(nil, apperrors.ErrNotFound)

	_, err := s.service.UpsertSingleItem(s.ctx, dto.UpsertSingleItemRequest{
		Date:        "2025-02-10",
		Category:    "Groceries",
		Description: "weekly shop",
		Kind:        domain.KindAbsolute,
		AccountID:   "acc-ghost",
	})

	s.ErrorIs(err, apperrors.ErrMissingReference)
	s.mockItemRepo.AssertNotCalled(s.T(), "UpsertSingleItem", mock.Anything, mock.Anything)
}

func (s *ItemServiceTestSuite) TestUpsertRecurringItemRejectsInvertedDates() {
	_, err := s.service.UpsertRecurringItem(s.ctx, dto.UpsertRecurringItemRequest{
		Every:       1,
		Unit:        domain.UnitMonth,
		Category:    "Rent",
		Description: "flat",
		DateFrom:    "2025-06-01",
		DateTo:      strp("2025-01-01"),
		Kind:        domain.KindAbsolute,
		Amount:      decimal.NewFromInt(-900),
		AccountID:   "acc-1",
	})

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ItemServiceTestSuite) TestUpsertRecurringItemRoundsAmount() {
	s.expectAccount("acc-1")
	s.mockItemRepo.On("UpsertRecurringItem", mock.Anything, mock.AnythingOfType("domain.RecurringItem")).Return(nil)

	item, err := s.service.UpsertRecurringItem(s.ctx, dto.UpsertRecurringItemRequest{
		Every:       1,
		Unit:        domain.UnitMonth,
		Category:    "Rent",
		Description: "flat",
		DateFrom:    "2025-01-01",
		Kind:        domain.KindAbsolute,
		Amount:      decimal.RequireFromString("-899.999"),
		AccountID:   "acc-1",
	})

	s.Require().NoError(err)
	s.True(decimal.RequireFromString("-900").Equal(item.Amount), "amount %s", item.Amount)
}

func (s *ItemServiceTestSuite) TestListSingleItemsNilBecomesEmpty() {
	s.mockItemRepo.On("ListSingleItems", mock.Anything, "").Return([]domain.SingleItem(nil), nil)

	items, err := s.service.ListSingleItems(s.ctx, "")

	s.Require().NoError(err)
	s.NotNil(items)
	s.Empty(items)
}

func strp(s string) *string { return &s }

func TestItemServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ItemServiceTestSuite))
}
