package dto

import (
	"github.com/mkrv/cashflow_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProjectionParams defines query parameters for projection requests.
type ProjectionParams struct {
	ScenarioID string `form:"scenarioID"`
	AccountID  string `form:"accountID"`
	Until      string `form:"until"`
}

// MovementResponse is one projected movement row. Amount is always an
// additive currency delta, regardless of the movement's kind.
type MovementResponse struct {
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	AccountID   string          `json:"accountID"`
	Kind        domain.ItemKind `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Balance     decimal.Decimal `json:"balance"`
}

// ToMovementResponse converts a domain.Movement to its response DTO.
func ToMovementResponse(m domain.Movement) MovementResponse {
	return MovementResponse{
		Date:        FormatDate(m.Date),
		Category:    m.Category,
		Description: m.Description,
		AccountID:   m.AccountID,
		Kind:        m.Kind,
		Amount:      m.Amount,
		Balance:     m.Balance,
	}
}

// ToListMovementResponse converts a slice of movements to DTOs.
func ToListMovementResponse(movements []domain.Movement) []MovementResponse {
	res := make([]MovementResponse, len(movements))
	for i, m := range movements {
		res[i] = ToMovementResponse(m)
	}
	return res
}

// CombinedMovementResponse is one row of the legacy global-ledger view with
// the two pooled running balances.
type CombinedMovementResponse struct {
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	AccountType string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Cash        decimal.Decimal `json:"cash"`
	Bank        decimal.Decimal `json:"bank"`
}

// ToListCombinedMovementResponse converts pooled rows to DTOs.
func ToListCombinedMovementResponse(rows []domain.CombinedMovement) []CombinedMovementResponse {
	res := make([]CombinedMovementResponse, len(rows))
	for i, r := range rows {
		res[i] = CombinedMovementResponse{
			Date:        FormatDate(r.Date),
			Category:    r.Category,
			Description: r.Description,
			AccountType: r.AccountType,
			Amount:      r.Amount,
			Cash:        r.Cash,
			Bank:        r.Bank,
		}
	}
	return res
}
