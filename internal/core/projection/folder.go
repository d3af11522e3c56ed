package projection

import (
	"sort"

	"github.com/mkrv/cashflow_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// FoldAccount walks the combined stream for one account in a fixed
// deterministic order and emits the running-balance trajectory. The first row
// is always a synthetic opening movement at the account's anchor date whose
// balance equals the opening balance; occurrences before the anchor date are
// ignored. Re-running the fold on unchanged input yields identical output:
// ties sort by (date, opening-row-first, category, description) and the
// remaining order is stable in the input order.
func FoldAccount(account domain.Account, stream []Occurrence) []domain.Movement {
	type row struct {
		occ     Occurrence
		opening bool
	}

	rows := []row{{
		occ: Occurrence{
			Date:        account.AnchorDate,
			Category:    domain.OpeningBalanceCategory,
			Description: account.Name,
			Kind:        domain.KindAbsolute,
			Amount:      decimal.Zero,
			AccountID:   account.AccountID,
		},
		opening: true,
	}}
	for _, occ := range stream {
		if occ.AccountID != account.AccountID || occ.Date.Before(account.AnchorDate) {
			continue
		}
		rows = append(rows, row{occ: occ})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.occ.Date.Equal(b.occ.Date) {
			return a.occ.Date.Before(b.occ.Date)
		}
		if a.opening != b.opening {
			return a.opening
		}
		if a.occ.Category != b.occ.Category {
			return a.occ.Category < b.occ.Category
		}
		return a.occ.Description < b.occ.Description
	})

	balance := account.OpeningBalance.Round(2)
	movements := make([]domain.Movement, 0, len(rows))
	for _, r := range rows {
		var reported decimal.Decimal
		if r.opening {
			reported = decimal.Zero
		} else if r.occ.Kind == domain.KindPercent {
			balance, reported = applyPercent(balance, r.occ.Amount)
		} else {
			reported = r.occ.Amount
			balance = balance.Add(reported)
		}
		movements = append(movements, domain.Movement{
			Date:        r.occ.Date,
			Category:    r.occ.Category,
			Description: r.occ.Description,
			AccountID:   account.AccountID,
			Kind:        r.occ.Kind,
			Amount:      reported,
			Balance:     balance,
		})
	}
	return movements
}

// applyPercent applies a multiplicative movement and back-computes the
// equivalent currency delta so consumers can read the reported amount as a
// plain change in balance. An amount of -100 zeroes the balance; the usual
// back-computation would divide by zero there, so that case reports the plain
// difference instead.
func applyPercent(balance, percent decimal.Decimal) (newBalance, reported decimal.Decimal) {
	multiplier := decimal.NewFromInt(1).Add(percent.Div(oneHundred))
	newBalance = balance.Mul(multiplier).Round(2)
	if multiplier.IsZero() {
		return newBalance, newBalance.Sub(balance)
	}
	return newBalance, newBalance.Sub(newBalance.Div(multiplier)).Round(2)
}
