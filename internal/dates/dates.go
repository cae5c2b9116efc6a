// Package dates provides the canonical date-string format and the calendar
// range math used by filters and views. Weeks start on Monday.
package dates

import "time"

// Canonical is the wire format for all planner dates.
const Canonical = "2006-01-02"

// The planner only addresses dates inside this window.
var (
	MinPlannerDate = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.Local)
	MaxPlannerDate = time.Date(2030, time.December, 31, 0, 0, 0, 0, time.Local)
)

// Format renders a time as a canonical date string.
func Format(t time.Time) string {
	return t.Format(Canonical)
}

// Parse parses a canonical date string.
func Parse(s string) (time.Time, error) {
	return time.ParseInLocation(Canonical, s, time.Local)
}

// Valid reports whether s is a syntactically valid canonical date.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Today returns the current date as a canonical string.
func Today() string {
	return Format(time.Now())
}

// Clamp restricts a date to the addressable planner window.
func Clamp(t time.Time) time.Time {
	if t.Before(MinPlannerDate) {
		return MinPlannerDate
	}
	if t.After(MaxPlannerDate) {
		return MaxPlannerDate
	}
	return t
}

// ClampString clamps a canonical date string, passing through unparseable
// input unchanged.
func ClampString(s string) string {
	t, err := Parse(s)
	if err != nil {
		return s
	}
	return Format(Clamp(t))
}

// StartOfWeek returns the Monday on or before t, at midnight.
func StartOfWeek(t time.Time) time.Time {
	day := truncate(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

// EndOfWeek returns the Sunday on or after t, at midnight.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 6)
}

// StartOfMonth returns the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// WeekRange returns the Monday..Sunday range containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	return StartOfWeek(t), EndOfWeek(t)
}

// MonthRange returns the first..last day range of t's month.
func MonthRange(t time.Time) (time.Time, time.Time) {
	return StartOfMonth(t), EndOfMonth(t)
}

// NextTwoWeeksRange returns this week's Monday through next week's Sunday.
func NextTwoWeeksRange(t time.Time) (time.Time, time.Time) {
	return StartOfWeek(t), EndOfWeek(t.AddDate(0, 0, 7))
}

// NextMonthRange returns the full range of the month after t's.
func NextMonthRange(t time.Time) (time.Time, time.Time) {
	return MonthRange(StartOfMonth(t).AddDate(0, 1, 0))
}

// MonthMatrix returns the weeks covering t's month, each week a row of
// seven days, padded to full Monday-based weeks.
func MonthMatrix(t time.Time) [][]time.Time {
	start := StartOfWeek(StartOfMonth(t))
	end := EndOfWeek(EndOfMonth(t))

	var weeks [][]time.Time
	for day := start; !day.After(end); day = day.AddDate(0, 0, 7) {
		week := make([]time.Time, 7)
		for i := range week {
			week[i] = day.AddDate(0, 0, i)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// SameMonth reports whether two times fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
