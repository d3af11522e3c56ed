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

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func boolp(b bool) *bool { return &b }

func TestResolveBaselineFiltersDisabled(t *testing.T) {
	disabled := monthlyItem()
	disabled.ItemID = "rec-off"
	disabled.Enabled = false

	single := domain.SingleItem{ItemID: "sgl-1", Date: date(2025, time.May, 1), Category: "Bonus", Kind: domain.KindAbsolute, Amount: decimal.NewFromInt(100), Enabled: true, AccountID: "acc-1"}
	disabledSingle := single
	disabledSingle.ItemID = "sgl-off"
	disabledSingle.Enabled = false

	recurring, singles, issues := projection.Resolve("",
		[]domain.RecurringItem{monthlyItem(), disabled},
		[]domain.SingleItem{single, disabledSingle},
		nil, nil,
	)

	assert.Empty(t, issues)
	require.Len(t, recurring, 1)
	assert.Equal(t, "rec-1", recurring[0].ItemID)
	require.Len(t, singles, 1)
	assert.Equal(t, "sgl-1", singles[0].ItemID)
}

func TestResolveReplaceMergesMutableFieldsOnly(t *testing.T) {
	base := monthlyItem()
	override := domain.RecurringOverride{
		OverrideID:  "ovr-1",
		ScenarioID:  "scn-1",
		Op:          domain.OpReplace,
		TargetID:    "rec-1",
		Amount:      decp("3000"),
		Category:    "Should Be Ignored",
		Description: "also ignored",
		AccountID:   "other-account",
	}

	recurring, _, issues := projection.Resolve("scn-1",
		[]domain.RecurringItem{base}, nil,
		[]domain.RecurringOverride{override}, nil,
	)

	assert.Empty(t, issues)
	require.Len(t, recurring, 1)
	merged := recurring[0]
	assert.True(t, decimal.NewFromInt(3000).Equal(merged.Amount))
	// Identity fields always come from the base item.
	assert.Equal(t, base.Category, merged.Category)
	assert.Equal(t, base.Description, merged.Description)
	assert.Equal(t, base.AccountID, merged.AccountID)
	assert.Equal(t, base.ItemID, merged.ItemID)
}

func TestResolveReplaceCanReEnable(t *testing.T) {
	base := monthlyItem()
	base.Enabled = false

	recurring, _, issues := projection.Resolve("scn-1",
		[]domain.RecurringItem{base}, nil,
		[]domain.RecurringOverride{{
			OverrideID: "ovr-1", ScenarioID: "scn-1", Op: domain.OpReplace,
			TargetID: "rec-1", Enabled: boolp(true),
		}}, nil,
	)

	assert.Empty(t, issues)
	require.Len(t, recurring, 1)
	assert.True(t, recurring[0].Enabled)
}

func TestResolveReplaceCanDisable(t *testing.T) {
	recurring, _, issues := projection.Resolve("scn-1",
		[]domain.RecurringItem{monthlyItem()}, nil,
		[]domain.RecurringOverride{{
			OverrideID: "ovr-1", ScenarioID: "scn-1", Op: domain.OpReplace,
			TargetID: "rec-1", Enabled: boolp(false),
		}}, nil,
	)

	assert.Empty(t, issues)
	assert.Empty(t, recurring)
}

func TestResolveAddSynthesizesItem(t *testing.T) {
	every := 2
	unit := domain.UnitWeek
	from := date(2025, time.June, 1)

	recurring, _, issues := projection.Resolve("scn-1", nil, nil,
		[]domain.RecurringOverride{{
			OverrideID: "ovr-1", ScenarioID: "scn-1", Op: domain.OpAdd,
			Every: &every, Unit: &unit, DateFrom: &from,
			Category: "Side Gig", Kind: domain.KindAbsolute,
			Amount: decp("150"), AccountID: "acc-1",
		}}, nil,
	)

	assert.Empty(t, issues)
	require.Len(t, recurring, 1)
	added := recurring[0]
	assert.NotEmpty(t, added.ItemID)
	assert.NotEqual(t, "ovr-1", added.ItemID)
	assert.Equal(t, 2, added.Every)
	assert.Equal(t, domain.UnitWeek, added.Unit)
	assert.True(t, added.Enabled)
}

func TestResolveAddMissingFieldsReported(t *testing.T) {
	recurring, _, issues := projection.Resolve("scn-1", nil, nil,
		[]domain.RecurringOverride{{
			OverrideID: "ovr-1", ScenarioID: "scn-1", Op: domain.OpAdd,
			Category: "No Recurrence", Kind: domain.KindAbsolute,
			Amount: decp("10"), AccountID: "acc-1",
		}}, nil,
	)

	assert.Empty(t, recurring)
	require.Len(t, issues, 1)
	assert.Equal(t, "ovr-1", issues[0].OverrideID)
}

func TestResolveReplaceUnknownTargetReported(t *testing.T) {
	recurring, _, issues := projection.Resolve("scn-1",
		[]domain.RecurringItem{monthlyItem()}, nil,
		[]domain.RecurringOverride{{
			OverrideID: "ovr-1", ScenarioID: "scn-1", Op: domain.OpReplace,
			TargetID: "missing", Amount: decp("1"),
		}}, nil,
	)

	require.Len(t, issues, 1)
	assert.Equal(t, "missing", issues[0].TargetID)
	// The base item is untouched.
	require.Len(t, recurring, 1)
	assert.True(t, monthlyItem().Amount.Equal(recurring[0].Amount))
}

func TestResolveDuplicateReplaceFirstWins(t *testing.T) {
	recurring, _, issues := projection.Resolve("scn-1",
		[]domain.RecurringItem{monthlyItem()}, nil,
		[]domain.RecurringOverride{
			{OverrideID: "ovr-1", ScenarioID: "scn-1", Op: domain.OpReplace, TargetID: "rec-1", Amount: decp("1111")},
			{OverrideID: "ovr-2", ScenarioID: "scn-1", Op: domain.OpReplace, TargetID: "rec-1", Amount: decp("2222")},
		}, nil,
	)

	require.Len(t, issues, 1)
	assert.Equal(t, "ovr-2", issues[0].OverrideID)
	require.Len(t, recurring, 1)
	assert.True(t, decimal.NewFromInt(1111).Equal(recurring[0].Amount))
}

// A scenario never mutates the base data it resolves against.
func TestResolveLeavesBaseUntouched(t *testing.T) {
	base := []domain.RecurringItem{monthlyItem()}

	_, _, _ = projection.Resolve("scn-1", base, nil,
		[]domain.RecurringOverride{{
			OverrideID: "ovr-1", ScenarioID: "scn-1", Op: domain.OpReplace,
			TargetID: "rec-1", Amount: decp("9999"),
		}}, nil,
	)

	assert.True(t, monthlyItem().Amount.Equal(base[0].Amount))
	assert.True(t, base[0].Enabled)
}

func TestResolveSingleOverrides(t *testing.T) {
	base := domain.SingleItem{ItemID: "sgl-1", Date: date(2025, time.May, 1), Category: "Bonus", Kind: domain.KindAbsolute, Amount: decimal.NewFromInt(100), Enabled: true, AccountID: "acc-1"}
	newDate := date(2025, time.July, 1)
	addDate := date(2025, time.August, 15)

	_, singles, issues := projection.Resolve("scn-1", nil,
		[]domain.SingleItem{base},
		nil,
		[]domain.SingleOverride{
			{OverrideID: "ovr-1", ScenarioID: "scn-1", Op: domain.OpReplace, TargetID: "sgl-1", Date: &newDate, Amount: decp("250")},
			{OverrideID: "ovr-2", ScenarioID: "scn-1", Op: domain.OpAdd, Date: &addDate, Category: "One-off", Kind: domain.KindPercent, Amount: decp("-10"), AccountID: "acc-1"},
		},
	)

	assert.Empty(t, issues)
	require.Len(t, singles, 2)
	assert.True(t, newDate.Equal(singles[0].Date))
	assert.True(t, decimal.NewFromInt(250).Equal(singles[0].Amount))
	assert.Equal(t, domain.KindPercent, singles[1].Kind)
}
