package dto

import (
	"fmt"
	"time"

	"github.com/mkrv/cashflow_app/internal/apperrors"
	"github.com/mkrv/cashflow_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertAccountRequest defines the data needed to create or update an
// account. AccountID present means update, absent means create.
type UpsertAccountRequest struct {
	AccountID      *string         `json:"id"`
	Name           string          `json:"name" binding:"required"`
	AccountType    string          `json:"accountType" binding:"required"`
	AnchorDate     string          `json:"anchorDate" binding:"required,datetime=2006-01-02"`
	EndDate        string          `json:"endDate" binding:"required,datetime=2006-01-02"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Liquid         bool            `json:"liquid"`
}

// ToDomain converts the request into a domain.Account under the given id.
func (r UpsertAccountRequest) ToDomain(accountID string) (domain.Account, error) {
	anchor, err := ParseDate(r.AnchorDate)
	if err != nil {
		return domain.Account{}, err
	}
	end, err := ParseDate(r.EndDate)
	if err != nil {
		return domain.Account{}, err
	}
	return domain.Account{
		AccountID:      accountID,
		Name:           r.Name,
		AccountType:    r.AccountType,
		AnchorDate:     anchor,
		EndDate:        end,
		OpeningBalance: r.OpeningBalance.Round(2),
		Liquid:         r.Liquid,
	}, nil
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string          `json:"id"`
	Name           string          `json:"name"`
	AccountType    string          `json:"accountType"`
	AnchorDate     string          `json:"anchorDate"`
	EndDate        string          `json:"endDate"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Liquid         bool            `json:"liquid"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		Name:           acc.Name,
		AccountType:    acc.AccountType,
		AnchorDate:     FormatDate(acc.AnchorDate),
		EndDate:        FormatDate(acc.EndDate),
		OpeningBalance: acc.OpeningBalance,
		Liquid:         acc.Liquid,
		CreatedAt:      acc.CreatedAt,
		LastUpdatedAt:  acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of accounts to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ParseDate parses a wire-format calendar date (UTC, whole days).
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(domain.DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, s)
	}
	return t, nil
}

// ParseOptionalDate parses a nullable wire-format date.
func ParseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate renders a date in the wire format.
func FormatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}
