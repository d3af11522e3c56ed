// Package projection implements the cash-flow projection engine: pure
// computation that turns accounts, one-off and recurring items and scenario
// overlays into deterministic running-balance trajectories. The package does
// no I/O; callers load a snapshot of the data and hand it in.
package projection

import (
	"fmt"
	"time"

	"github.com/mkrv/cashflow_app/internal/apperrors"
	"github.com/mkrv/cashflow_app/internal/core/domain"
)

// Step advances a calendar date by `every` units. Month and year steps clamp
// to the last day of the target month when the source day does not exist
// there (Jan 31 + 1 month = Feb 28/29). Clamping is not remembered across
// steps: callers stepping repeatedly advance from the clamped date.
func Step(date time.Time, unit domain.IntervalUnit, every int) (time.Time, error) {
	switch unit {
	case domain.UnitDay:
		return date.AddDate(0, 0, every), nil
	case domain.UnitWeek:
		return date.AddDate(0, 0, 7*every), nil
	case domain.UnitMonth:
		return addMonthsClamped(date, every), nil
	case domain.UnitYear:
		return addMonthsClamped(date, 12*every), nil
	}
	return time.Time{}, fmt.Errorf("%w: unknown interval unit %q", apperrors.ErrValidation, unit)
}

// addMonthsClamped adds whole months without the day-overflow rollover that
// time.AddDate performs (Jan 31 + 1 month must not become Mar 3).
func addMonthsClamped(date time.Time, months int) time.Time {
	y, m, d := date.Date()
	firstOfTarget := time.Date(y, m, 1, 0, 0, 0, 0, date.Location()).AddDate(0, months, 0)
	if last := firstOfTarget.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, 0, 0, 0, 0, date.Location())
}
