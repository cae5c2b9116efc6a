package tui

import (
	"time"

	"github.com/existflow/gridplan/internal/dates"
)

// truncate shortens a string to max length with ellipsis
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// parseDay parses a canonical planner date
func parseDay(s string) (time.Time, error) {
	return dates.Parse(s)
}
