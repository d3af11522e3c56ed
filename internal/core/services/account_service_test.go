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

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvc
	ctx      context.Context
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockAccountRepository)
	s.service = services.NewAccountService(s.mockRepo)
	s.ctx = context.Background()
}

func (s *AccountServiceTestSuite) TestUpsertAccountGeneratesID() {
	s.mockRepo.On("UpsertAccount", mock.Anything, mock.AnythingOfType("domain.Account")).Return(nil)

	account, err := s.service.UpsertAccount(s.ctx, dto.UpsertAccountRequest{
		Name:           "Checking",
		AccountType:    "Bank Account",
		AnchorDate:     "2025-01-01",
		EndDate:        "2030-12-31",
		OpeningBalance: decimal.NewFromInt(1000),
		Liquid:         true,
	})

	s.Require().NoError(err)
	s.NotEmpty(account.AccountID)
	s.Equal("Checking", account.Name)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestUpsertAccountKeepsGivenID() {
	s.mockRepo.On("UpsertAccount", mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountID == "acc-1"
	})).Return(nil)

	id := "acc-1"
	account, err := s.service.UpsertAccount(s.ctx, dto.UpsertAccountRequest{
		AccountID:   &id,
		Name:        "Checking",
		AccountType: "Bank Account",
		AnchorDate:  "2025-01-01",
		EndDate:     "2030-12-31",
	})

	s.Require().NoError(err)
	s.Equal("acc-1", account.AccountID)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestUpsertAccountRejectsInvertedLifetime() {
	_, err := s.service.UpsertAccount(s.ctx, dto.UpsertAccountRequest{
		Name:        "Backwards",
		AccountType: "Cash",
		AnchorDate:  "2030-01-01",
		EndDate:     "2025-01-01",
	})

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "UpsertAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestUpsertAccountRejectsBadDate() {
	_, err := s.service.UpsertAccount(s.ctx, dto.UpsertAccountRequest{
		Name:        "Bad",
		AccountType: "Cash",
		AnchorDate:  "01/02/2025",
		EndDate:     "2030-01-01",
	})

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AccountServiceTestSuite) TestListAccountsNilBecomesEmpty() {
	s.mockRepo.On("ListAccounts", mock.Anything).Return([]domain.Account(nil), nil)

	accounts, err := s.service.ListAccounts(s.ctx)

	s.Require().NoError(err)
	s.NotNil(accounts)
	s.Empty(accounts)
}

func (s *AccountServiceTestSuite) TestDeleteAccountPropagatesNotFound() {
	s.mockRepo.On("DeleteAccount", mock.Anything, "acc-ghost").Return(apperrors.ErrNotFound)

	err := s.service.DeleteAccount(s.ctx, "acc-ghost")

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
