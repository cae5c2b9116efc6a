package dates

import (
	"time"

	"github.com/existflow/gridplan/internal/model"
)

// PresetRange resolves a named range preset against a base date. Custom (or
// unknown) presets return false and leave the caller's bounds untouched.
func PresetRange(preset model.RangePreset, base time.Time) (model.DateRange, bool) {
	var start, end time.Time
	switch preset {
	case model.PresetThisWeek:
		start, end = WeekRange(base)
	case model.PresetNextTwoWeeks:
		start, end = NextTwoWeeksRange(base)
	case model.PresetThisMonth:
		start, end = MonthRange(base)
	case model.PresetNextMonth:
		start, end = NextMonthRange(base)
	default:
		return model.DateRange{}, false
	}
	return model.DateRange{Start: Format(start), End: Format(end), Preset: preset}, true
}

// DefaultRange is the initial filter range: the current month.
func DefaultRange() model.DateRange {
	r, _ := PresetRange(model.PresetThisMonth, time.Now())
	return r
}
