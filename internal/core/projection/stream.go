package projection

import (
	"github.com/mkrv/cashflow_app/internal/core/domain"
)

// Combine expands every effective recurring item and appends every effective
// single item into one flat occurrence stream. Movements whose accountID does
// not resolve to a known account are dropped from account-scoped projections.
// The stream is deliberately unsorted: ordering is the balance folder's job
// because the sort key differs between the per-account and pooled views.
func Combine(
	recurring []domain.RecurringItem,
	single []domain.SingleItem,
	accounts map[string]domain.Account,
) ([]Occurrence, error) {
	var stream []Occurrence

	for _, item := range recurring {
		account, ok := accounts[item.AccountID]
		if !ok {
			continue
		}
		occs, err := Expand(item, account)
		if err != nil {
			return nil, err
		}
		stream = append(stream, occs...)
	}

	for _, item := range single {
		if _, ok := accounts[item.AccountID]; !ok {
			continue
		}
		stream = append(stream, Occurrence{
			Date:        item.Date,
			Category:    item.Category,
			Description: item.Description,
			Kind:        item.Kind,
			Amount:      item.Amount.Round(2),
			AccountID:   item.AccountID,
		})
	}

	return stream, nil
}
