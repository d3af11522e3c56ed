package projection_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrv/cashflow_app/internal/core/domain"
	"github.com/mkrv/cashflow_app/internal/core/projection"
)

func occ(d time.Time, category string, kind domain.ItemKind, amount string) projection.Occurrence {
	return projection.Occurrence{
		Date:      d,
		Category:  category,
		Kind:      kind,
		Amount:    decimal.RequireFromString(amount),
		AccountID: "acc-1",
	}
}

func TestFoldAccountOpeningRow(t *testing.T) {
	account := testAccount()

	rows := projection.FoldAccount(account, nil)

	require.Len(t, rows, 1)
	opening := rows[0]
	assert.True(t, account.AnchorDate.Equal(opening.Date))
	assert.Equal(t, domain.OpeningBalanceCategory, opening.Category)
	assert.Equal(t, account.Name, opening.Description)
	assert.True(t, opening.Amount.IsZero())
	assert.True(t, account.OpeningBalance.Equal(opening.Balance))
}

func TestFoldAccountRunningBalance(t *testing.T) {
	account := testAccount() // opens with 1000

	rows := projection.FoldAccount(account, []projection.Occurrence{
		occ(date(2025, time.February, 1), "Rent", domain.KindAbsolute, "-400"),
		occ(date(2025, time.January, 15), "Salary", domain.KindAbsolute, "2500"),
	})

	require.Len(t, rows, 3)
	// Sorted by date despite input order.
	assert.Equal(t, "Salary", rows[1].Category)
	assert.True(t, decimal.NewFromInt(3500).Equal(rows[1].Balance))
	assert.Equal(t, "Rent", rows[2].Category)
	assert.True(t, decimal.NewFromInt(3100).Equal(rows[2].Balance))
}

func TestFoldAccountPercentMovement(t *testing.T) {
	account := testAccount()
	account.OpeningBalance = decimal.NewFromInt(1000)

	rows := projection.FoldAccount(account, []projection.Occurrence{
		occ(date(2025, time.March, 1), "Interest", domain.KindPercent, "10"),
	})

	require.Len(t, rows, 2)
	interest := rows[1]
	assert.True(t, decimal.NewFromInt(1100).Equal(interest.Balance), "balance %s", interest.Balance)
	// Reported amount is the equivalent currency delta.
	assert.True(t, decimal.NewFromInt(100).Equal(interest.Amount), "amount %s", interest.Amount)
}

func TestFoldAccountFullLossPercent(t *testing.T) {
	account := testAccount()
	account.OpeningBalance = decimal.NewFromInt(750)

	rows := projection.FoldAccount(account, []projection.Occurrence{
		occ(date(2025, time.March, 1), "Write-off", domain.KindPercent, "-100"),
	})

	require.Len(t, rows, 2)
	assert.True(t, rows[1].Balance.IsZero())
	assert.True(t, decimal.NewFromInt(-750).Equal(rows[1].Amount), "amount %s", rows[1].Amount)
}

func TestFoldAccountIgnoresPreAnchorAndForeignRows(t *testing.T) {
	account := testAccount()

	foreign := occ(date(2025, time.June, 1), "Other", domain.KindAbsolute, "50")
	foreign.AccountID = "acc-2"

	rows := projection.FoldAccount(account, []projection.Occurrence{
		occ(date(2024, time.December, 31), "Too Early", domain.KindAbsolute, "999"),
		foreign,
	})

	require.Len(t, rows, 1)
	assert.Equal(t, domain.OpeningBalanceCategory, rows[0].Category)
}

// Same-day rows order by (opening first, category, description) so repeated
// folds of the same snapshot yield byte-identical trajectories.
func TestFoldAccountDeterministicTieOrder(t *testing.T) {
	account := testAccount()
	day := date(2025, time.April, 1)

	stream := []projection.Occurrence{
		occ(day, "Zeta", domain.KindAbsolute, "1"),
		occ(day, "Alpha", domain.KindAbsolute, "2"),
		occ(day, "Alpha", domain.KindAbsolute, "3"),
	}
	stream[2].Description = "b"
	stream[1].Description = "a"

	first := projection.FoldAccount(account, stream)
	second := projection.FoldAccount(account, stream)

	require.Len(t, first, 4)
	assert.Equal(t, "Alpha", first[1].Category)
	assert.Equal(t, "a", first[1].Description)
	assert.Equal(t, "b", first[2].Description)
	assert.Equal(t, "Zeta", first[3].Category)
	assert.Equal(t, first, second)
}

func TestFoldAccountPercentSequenceRounds(t *testing.T) {
	account := testAccount()
	account.OpeningBalance = decimal.RequireFromString("333.33")

	rows := projection.FoldAccount(account, []projection.Occurrence{
		occ(date(2025, time.February, 1), "Interest", domain.KindPercent, "0.5"),
		occ(date(2025, time.March, 1), "Interest", domain.KindPercent, "0.5"),
	})

	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.True(t, r.Balance.Equal(r.Balance.Round(2)), "balance %s not quantized", r.Balance)
		assert.True(t, r.Amount.Equal(r.Amount.Round(2)), "amount %s not quantized", r.Amount)
	}
	// 333.33 * 1.005 = 335.00 (rounded), then 335.00 * 1.005 = 336.68.
	assert.True(t, decimal.RequireFromString("335").Equal(rows[1].Balance), "balance %s", rows[1].Balance)
	assert.True(t, decimal.RequireFromString("336.68").Equal(rows[2].Balance), "balance %s", rows[2].Balance)
}
