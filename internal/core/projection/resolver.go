package projection

import (
	"github.com/google/uuid"
	"github.com/mkrv/cashflow_app/internal/core/domain"
)

// ResolveIssue records an override that could not be applied while resolving
// a scenario. The override is excluded from the effective set instead of
// aborting the projection, so one bad override never blocks unrelated
// accounts; callers log the issues with enough context to fix the data.
type ResolveIssue struct {
	OverrideID string
	TargetID   string
	Reason     string
}

// Resolve produces the effective item sets for a scenario. With an empty
// scenarioID the effective sets are the base sets filtered to enabled items.
// With a scenario, replace overrides merge their mutable fields into the
// targeted base item (immutable fields always come from the base), add
// overrides synthesize brand-new items under fresh ids, and the result is
// filtered to effectively-enabled items after the merge, so an override may
// re-enable a disabled base item.
func Resolve(
	scenarioID string,
	baseRecurring []domain.RecurringItem,
	baseSingle []domain.SingleItem,
	recurringOverrides []domain.RecurringOverride,
	singleOverrides []domain.SingleOverride,
) ([]domain.RecurringItem, []domain.SingleItem, []ResolveIssue) {
	if scenarioID == "" {
		var recurring []domain.RecurringItem
		for _, it := range baseRecurring {
			if it.Enabled {
				recurring = append(recurring, it)
			}
		}
		var single []domain.SingleItem
		for _, it := range baseSingle {
			if it.Enabled {
				single = append(single, it)
			}
		}
		return recurring, single, nil
	}

	var issues []ResolveIssue

	recurringByID := make(map[string]struct{}, len(baseRecurring))
	for _, it := range baseRecurring {
		recurringByID[it.ItemID] = struct{}{}
	}
	singleByID := make(map[string]struct{}, len(baseSingle))
	for _, it := range baseSingle {
		singleByID[it.ItemID] = struct{}{}
	}

	// At most one replace override per (scenario, target) is meaningful.
	// Duplicates are rejected at write time; if bad data reaches us anyway,
	// the first override wins and the rest are reported.
	recurringReplace := make(map[string]domain.RecurringOverride)
	for _, o := range recurringOverrides {
		if o.Op != domain.OpReplace {
			continue
		}
		if _, ok := recurringByID[o.TargetID]; !ok {
			issues = append(issues, ResolveIssue{OverrideID: o.OverrideID, TargetID: o.TargetID, Reason: "replace override targets unknown recurring item"})
			continue
		}
		if _, dup := recurringReplace[o.TargetID]; dup {
			issues = append(issues, ResolveIssue{OverrideID: o.OverrideID, TargetID: o.TargetID, Reason: "duplicate replace override for recurring item"})
			continue
		}
		recurringReplace[o.TargetID] = o
	}
	singleReplace := make(map[string]domain.SingleOverride)
	for _, o := range singleOverrides {
		if o.Op != domain.OpReplace {
			continue
		}
		if _, ok := singleByID[o.TargetID]; !ok {
			issues = append(issues, ResolveIssue{OverrideID: o.OverrideID, TargetID: o.TargetID, Reason: "replace override targets unknown single item"})
			continue
		}
		if _, dup := singleReplace[o.TargetID]; dup {
			issues = append(issues, ResolveIssue{OverrideID: o.OverrideID, TargetID: o.TargetID, Reason: "duplicate replace override for single item"})
			continue
		}
		singleReplace[o.TargetID] = o
	}

	var recurring []domain.RecurringItem
	for _, base := range baseRecurring {
		merged := base
		if o, ok := recurringReplace[base.ItemID]; ok {
			merged = mergeRecurring(base, o)
		}
		if merged.Enabled {
			recurring = append(recurring, merged)
		}
	}
	for _, o := range recurringOverrides {
		if o.Op != domain.OpAdd {
			continue
		}
		item, reason := synthesizeRecurring(o)
		if reason != "" {
			issues = append(issues, ResolveIssue{OverrideID: o.OverrideID, Reason: reason})
			continue
		}
		if item.Enabled {
			recurring = append(recurring, item)
		}
	}

	var single []domain.SingleItem
	for _, base := range baseSingle {
		merged := base
		if o, ok := singleReplace[base.ItemID]; ok {
			merged = mergeSingle(base, o)
		}
		if merged.Enabled {
			single = append(single, merged)
		}
	}
	for _, o := range singleOverrides {
		if o.Op != domain.OpAdd {
			continue
		}
		item, reason := synthesizeSingle(o)
		if reason != "" {
			issues = append(issues, ResolveIssue{OverrideID: o.OverrideID, Reason: reason})
			continue
		}
		if item.Enabled {
			single = append(single, item)
		}
	}

	return recurring, single, issues
}

// mergeRecurring overlays the override's mutable fields on the base item.
// Category, description, kind and accountID are immutable under replace.
func mergeRecurring(base domain.RecurringItem, o domain.RecurringOverride) domain.RecurringItem {
	merged := base
	if o.Every != nil {
		merged.Every = *o.Every
	}
	if o.Unit != nil {
		merged.Unit = *o.Unit
	}
	if o.DateFrom != nil {
		merged.DateFrom = *o.DateFrom
	}
	if o.DateTo != nil {
		dt := *o.DateTo
		merged.DateTo = &dt
	}
	if o.Amount != nil {
		merged.Amount = *o.Amount
	}
	if o.Enabled != nil {
		merged.Enabled = *o.Enabled
	}
	return merged
}

func mergeSingle(base domain.SingleItem, o domain.SingleOverride) domain.SingleItem {
	merged := base
	if o.Date != nil {
		merged.Date = *o.Date
	}
	if o.Amount != nil {
		merged.Amount = *o.Amount
	}
	if o.Enabled != nil {
		merged.Enabled = *o.Enabled
	}
	return merged
}

// synthesizeRecurring builds a brand-new item from an add override. The
// returned reason is non-empty when a required field is missing, which is a
// configuration error normally caught at override-write time.
func synthesizeRecurring(o domain.RecurringOverride) (domain.RecurringItem, string) {
	switch {
	case o.Every == nil || o.Unit == nil || o.DateFrom == nil:
		return domain.RecurringItem{}, "add override is missing recurrence fields"
	case o.AccountID == "" || o.Category == "" || !o.Kind.IsValid() || o.Amount == nil:
		return domain.RecurringItem{}, "add override is missing required item fields"
	case !o.Unit.IsValid():
		return domain.RecurringItem{}, "add override has unknown interval unit"
	}
	enabled := true
	if o.Enabled != nil {
		enabled = *o.Enabled
	}
	item := domain.RecurringItem{
		ItemID:      uuid.NewString(),
		Every:       *o.Every,
		Unit:        *o.Unit,
		Category:    o.Category,
		Description: o.Description,
		DateFrom:    *o.DateFrom,
		Kind:        o.Kind,
		Amount:      *o.Amount,
		Enabled:     enabled,
		AccountID:   o.AccountID,
	}
	if o.DateTo != nil {
		dt := *o.DateTo
		item.DateTo = &dt
	}
	return item, ""
}

func synthesizeSingle(o domain.SingleOverride) (domain.SingleItem, string) {
	switch {
	case o.Date == nil:
		return domain.SingleItem{}, "add override is missing a date"
	case o.AccountID == "" || o.Category == "" || !o.Kind.IsValid() || o.Amount == nil:
		return domain.SingleItem{}, "add override is missing required item fields"
	}
	enabled := true
	if o.Enabled != nil {
		enabled = *o.Enabled
	}
	return domain.SingleItem{
		ItemID:      uuid.NewString(),
		Date:        *o.Date,
		Category:    o.Category,
		Description: o.Description,
		Kind:        o.Kind,
		Amount:      *o.Amount,
		Enabled:     enabled,
		AccountID:   o.AccountID,
	}, ""
}
