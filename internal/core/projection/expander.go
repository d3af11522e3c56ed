package projection

import (
	"fmt"
	"time"

	"github.com/mkrv/cashflow_app/internal/apperrors"
	"github.com/mkrv/cashflow_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Occurrence is one concrete dated movement before folding: either a single
// item or one generated instance of a recurring item, tagged with its owning
// account and update kind.
type Occurrence struct {
	Date        time.Time
	Category    string
	Description string
	Kind        domain.ItemKind
	Amount      decimal.Decimal
	AccountID   string
}

// Expand materializes a recurring item into its finite list of occurrences,
// bounded by [DateFrom, stop] where stop is the item's own DateTo when
// present, else the owning account's EndDate. Expansion never consults
// "today", so projections are reproducible for any historical or future
// query. Disabled items expand to nothing; DateFrom past the stop date yields
// an empty list, not an error.
func Expand(item domain.RecurringItem, account domain.Account) ([]Occurrence, error) {
	if !item.Unit.IsValid() {
		return nil, fmt.Errorf("%w: recurring item %s has unknown interval unit %q", apperrors.ErrValidation, item.ItemID, item.Unit)
	}
	if item.Every <= 0 {
		return nil, fmt.Errorf("%w: recurring item %s has non-positive interval %d", apperrors.ErrValidation, item.ItemID, item.Every)
	}
	if !item.Enabled {
		return nil, nil
	}

	stop := account.EndDate
	if item.DateTo != nil {
		stop = *item.DateTo
	}

	amount := item.Amount.Round(2)
	var out []Occurrence
	for cur := item.DateFrom; !cur.After(stop); {
		out = append(out, Occurrence{
			Date:        cur,
			Category:    item.Category,
			Description: item.Description,
			Kind:        item.Kind,
			Amount:      amount,
			AccountID:   item.AccountID,
		})
		next, err := Step(cur, item.Unit, item.Every)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return out, nil
}
