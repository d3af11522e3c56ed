package dto

import (
	"time"

	"github.com/mkrv/cashflow_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertSingleItemRequest defines the data for creating or updating a
// one-off item. Amounts are negative for expenses, positive for income.
type UpsertSingleItemRequest struct {
	ItemID      *string         `json:"id"`
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Kind        domain.ItemKind `json:"kind" binding:"required,oneof=absolute percent"`
	Amount      decimal.Decimal `json:"amount"`
	Enabled     *bool           `json:"enabled"`
	AccountID   string          `json:"accountID" binding:"required"`
}

// ToDomain converts the request into a domain.SingleItem under the given id.
func (r UpsertSingleItemRequest) ToDomain(itemID string) (domain.SingleItem, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return domain.SingleItem{}, err
	}
	enabled := true
	if r.Enabled != nil {
		enabled = *r.Enabled
	}
	return domain.SingleItem{
		ItemID:      itemID,
		Date:        date,
		Category:    r.Category,
		Description: r.Description,
		Kind:        r.Kind,
		Amount:      r.Amount.Round(2),
		Enabled:     enabled,
		AccountID:   r.AccountID,
	}, nil
}

// UpsertRecurringItemRequest defines the data for creating or updating a
// recurring item. DateTo absent means open-ended; expansion then stops at the
// owning account's end date.
type UpsertRecurringItemRequest struct {
	ItemID      *string             `json:"id"`
	Every       int                 `json:"every" binding:"required,gt=0"`
	Unit        domain.IntervalUnit `json:"unit" binding:"required,oneof=day week month year"`
	Category    string              `json:"category" binding:"required"`
	Description string              `json:"description" binding:"required"`
	DateFrom    string              `json:"dateFrom" binding:"required,datetime=2006-01-02"`
	DateTo      *string             `json:"dateTo" binding:"omitempty,datetime=2006-01-02"`
	Kind        domain.ItemKind     `json:"kind" binding:"required,oneof=absolute percent"`
	Amount      decimal.Decimal     `json:"amount"`
	Enabled     *bool               `json:"enabled"`
	AccountID   string              `json:"accountID" binding:"required"`
}

// ToDomain converts the request into a domain.RecurringItem under the given id.
func (r UpsertRecurringItemRequest) ToDomain(itemID string) (domain.RecurringItem, error) {
	from, err := ParseDate(r.DateFrom)
	if err != nil {
		return domain.RecurringItem{}, err
	}
	to, err := ParseOptionalDate(r.DateTo)
	if err != nil {
		return domain.RecurringItem{}, err
	}
	enabled := true
	if r.Enabled != nil {
		enabled = *r.Enabled
	}
	return domain.RecurringItem{
		ItemID:      itemID,
		Every:       r.Every,
		Unit:        r.Unit,
		Category:    r.Category,
		Description: r.Description,
		DateFrom:    from,
		DateTo:      to,
		Kind:        r.Kind,
		Amount:      r.Amount.Round(2),
		Enabled:     enabled,
		AccountID:   r.AccountID,
	}, nil
}

// SingleItemResponse defines the data returned for a one-off item.
type SingleItemResponse struct {
	ItemID      string          `json:"id"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Kind        domain.ItemKind `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Enabled     bool            `json:"enabled"`
	AccountID   string          `json:"accountID"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToSingleItemResponse converts a domain.SingleItem to its response DTO.
func ToSingleItemResponse(item *domain.SingleItem) SingleItemResponse {
	return SingleItemResponse{
		ItemID:      item.ItemID,
		Date:        FormatDate(item.Date),
		Category:    item.Category,
		Description: item.Description,
		Kind:        item.Kind,
		Amount:      item.Amount,
		Enabled:     item.Enabled,
		AccountID:   item.AccountID,
		CreatedAt:   item.CreatedAt,
	}
}

// ToListSingleItemResponse converts a slice of one-off items to DTOs.
func ToListSingleItemResponse(items []domain.SingleItem) []SingleItemResponse {
	res := make([]SingleItemResponse, len(items))
	for i, item := range items {
		res[i] = ToSingleItemResponse(&item)
	}
	return res
}

// RecurringItemResponse defines the data returned for a recurring item.
type RecurringItemResponse struct {
	ItemID      string              `json:"id"`
	Every       int                 `json:"every"`
	Unit        domain.IntervalUnit `json:"unit"`
	Category    string              `json:"category"`
	Description string              `json:"description"`
	DateFrom    string              `json:"dateFrom"`
	DateTo      *string             `json:"dateTo,omitempty"`
	Kind        domain.ItemKind     `json:"kind"`
	Amount      decimal.Decimal     `json:"amount"`
	Enabled     bool                `json:"enabled"`
	AccountID   string              `json:"accountID"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// ToRecurringItemResponse converts a domain.RecurringItem to its response DTO.
func ToRecurringItemResponse(item *domain.RecurringItem) RecurringItemResponse {
	res := RecurringItemResponse{
		ItemID:      item.ItemID,
		Every:       item.Every,
		Unit:        item.Unit,
		Category:    item.Category,
		Description: item.Description,
		DateFrom:    FormatDate(item.DateFrom),
		Kind:        item.Kind,
		Amount:      item.Amount,
		Enabled:     item.Enabled,
		AccountID:   item.AccountID,
		CreatedAt:   item.CreatedAt,
	}
	if item.DateTo != nil {
		to := FormatDate(*item.DateTo)
		res.DateTo = &to
	}
	return res
}

// ToListRecurringItemResponse converts a slice of recurring items to DTOs.
func ToListRecurringItemResponse(items []domain.RecurringItem) []RecurringItemResponse {
	res := make([]RecurringItemResponse, len(items))
	for i, item := range items {
		res[i] = ToRecurringItemResponse(&item)
	}
	return res
}
