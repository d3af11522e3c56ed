package projection_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrv/cashflow_app/internal/apperrors"
	"github.com/mkrv/cashflow_app/internal/core/domain"
	"github.com/mkrv/cashflow_app/internal/core/projection"
)

func testAccount() domain.Account {
	return domain.Account{
		AccountID:      "acc-1",
		Name:           "Main",
		AccountType:    "Bank Account",
		AnchorDate:     date(2025, time.January, 1),
		EndDate:        date(2025, time.December, 31),
		OpeningBalance: decimal.NewFromInt(1000),
		Liquid:         true,
	}
}

func monthlyItem() domain.RecurringItem {
	return domain.RecurringItem{
		ItemID:    "rec-1",
		Every:     1,
		Unit:      domain.UnitMonth,
		Category:  "Salary",
		DateFrom:  date(2025, time.January, 15),
		Kind:      domain.KindAbsolute,
		Amount:    decimal.NewFromInt(2500),
		Enabled:   true,
		AccountID: "acc-1",
	}
}

func TestExpandBoundedByDateTo(t *testing.T) {
	item := monthlyItem()
	to := date(2025, time.March, 31)
	item.DateTo = &to

	occs, err := projection.Expand(item, testAccount())
	require.NoError(t, err)
	require.Len(t, occs, 3)
	assert.True(t, date(2025, time.January, 15).Equal(occs[0].Date))
	assert.True(t, date(2025, time.February, 15).Equal(occs[1].Date))
	assert.True(t, date(2025, time.March, 15).Equal(occs[2].Date))
	for _, occ := range occs {
		assert.Equal(t, "Salary", occ.Category)
		assert.Equal(t, "acc-1", occ.AccountID)
		assert.Equal(t, domain.KindAbsolute, occ.Kind)
		assert.True(t, decimal.NewFromInt(2500).Equal(occ.Amount))
	}
}

func TestExpandOpenEndedUsesAccountEndDate(t *testing.T) {
	occs, err := projection.Expand(monthlyItem(), testAccount())
	require.NoError(t, err)
	// Jan 15 through Dec 15, one per month.
	require.Len(t, occs, 12)
	assert.True(t, date(2025, time.December, 15).Equal(occs[11].Date))
}

func TestExpandStopDateInclusive(t *testing.T) {
	item := monthlyItem()
	to := date(2025, time.February, 15)
	item.DateTo = &to

	occs, err := projection.Expand(item, testAccount())
	require.NoError(t, err)
	require.Len(t, occs, 2)
	assert.True(t, to.Equal(occs[1].Date))
}

func TestExpandMonthEndClamping(t *testing.T) {
	item := monthlyItem()
	item.DateFrom = date(2025, time.January, 31)
	to := date(2025, time.April, 30)
	item.DateTo = &to

	occs, err := projection.Expand(item, testAccount())
	require.NoError(t, err)
	require.Len(t, occs, 4)
	assert.True(t, date(2025, time.January, 31).Equal(occs[0].Date))
	assert.True(t, date(2025, time.February, 28).Equal(occs[1].Date))
	// The clamp is not remembered, so the series continues on the 28th.
	assert.True(t, date(2025, time.March, 28).Equal(occs[2].Date))
	assert.True(t, date(2025, time.April, 28).Equal(occs[3].Date))
}

func TestExpandDisabledYieldsNothing(t *testing.T) {
	item := monthlyItem()
	item.Enabled = false

	occs, err := projection.Expand(item, testAccount())
	require.NoError(t, err)
	assert.Empty(t, occs)
}

func TestExpandStartAfterStopYieldsNothing(t *testing.T) {
	item := monthlyItem()
	item.DateFrom = date(2026, time.June, 1)

	occs, err := projection.Expand(item, testAccount())
	require.NoError(t, err)
	assert.Empty(t, occs)
}

func TestExpandRejectsBadRecurrence(t *testing.T) {
	item := monthlyItem()
	item.Unit = domain.IntervalUnit("decade")
	_, err := projection.Expand(item, testAccount())
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	item = monthlyItem()
	item.Every = 0
	_, err = projection.Expand(item, testAccount())
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestExpandRoundsAmounts(t *testing.T) {
	item := monthlyItem()
	item.Amount = decimal.RequireFromString("10.005")
	to := date(2025, time.January, 31)
	item.DateTo = &to

	occs, err := projection.Expand(item, testAccount())
	require.NoError(t, err)
	require.Len(t, occs, 1)
	assert.True(t, decimal.RequireFromString("10.01").Equal(occs[0].Amount), "got %s", occs[0].Amount)
}

func TestCombineSkipsUnknownAccounts(t *testing.T) {
	accounts := map[string]domain.Account{"acc-1": testAccount()}

	orphanRecurring := monthlyItem()
	orphanRecurring.AccountID = "ghost"
	single := domain.SingleItem{
		ItemID:    "sgl-1",
		Date:      date(2025, time.March, 1),
		Category:  "Bonus",
		Kind:      domain.KindAbsolute,
		Amount:    decimal.NewFromInt(300),
		Enabled:   true,
		AccountID: "acc-1",
	}
	orphanSingle := single
	orphanSingle.ItemID = "sgl-2"
	orphanSingle.AccountID = "ghost"

	stream, err := projection.Combine(
		[]domain.RecurringItem{orphanRecurring},
		[]domain.SingleItem{single, orphanSingle},
		accounts,
	)
	require.NoError(t, err)
	require.Len(t, stream, 1)
	assert.Equal(t, "Bonus", stream[0].Category)
	assert.Equal(t, "acc-1", stream[0].AccountID)
}
