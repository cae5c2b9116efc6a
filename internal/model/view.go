package model

// View is the active calendar granularity.
type View string

const (
	ViewYear  View = "year"
	ViewMonth View = "month"
	ViewWeek  View = "week"
	ViewDay   View = "day"
)

// ParseView maps a string to a known view, defaulting to month.
func ParseView(s string) View {
	switch View(s) {
	case ViewYear, ViewMonth, ViewWeek, ViewDay:
		return View(s)
	default:
		return ViewMonth
	}
}
