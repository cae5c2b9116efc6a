// Package selector provides pure read-only queries over planner state.
// Nothing here mutates its inputs.
package selector

import (
	"sort"
	"strings"

	"github.com/existflow/gridplan/internal/model"
)

// FilteredItems returns the items visible under the given filters, stable
// sorted ascending by date. Visibility applies, in order: the project
// predicate (include-mode shows only the listed ids; all-mode shows every
// selectable project and hides Archived), a case-insensitive substring
// search across title, notes, project name, assignee, and icon label, and
// an inclusive date-range test applied only when both bounds are present.
func FilteredItems(items []model.PlannerItem, filters model.Filters, projects []model.Project) []model.PlannerItem {
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}

	includeMode := filters.Mode == model.FilterInclude
	var allowed map[string]bool
	if includeMode {
		allowed = make(map[string]bool, len(filters.ProjectIDs))
		for _, id := range filters.ProjectIDs {
			allowed[id] = true
		}
	}

	term := strings.ToLower(filters.Search)
	rangeActive := filters.Range.Start != "" && filters.Range.End != ""

	out := make([]model.PlannerItem, 0, len(items))
	for _, it := range items {
		if includeMode {
			if !allowed[it.ProjectID] {
				continue
			}
		} else if it.ProjectID == model.ArchivedProjectID {
			// All-mode hides Archived by default.
			continue
		}

		if term != "" {
			haystack := strings.ToLower(strings.Join([]string{
				it.Title, it.Notes, names[it.ProjectID], it.Assignee, it.Icon.DisplayLabel(),
			}, " "))
			if !strings.Contains(haystack, term) {
				continue
			}
		}

		if rangeActive && (it.Date < filters.Range.Start || it.Date > filters.Range.End) {
			continue
		}

		out = append(out, it)
	}

	// Canonical date strings sort chronologically as plain strings.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// GroupByDate buckets items by their exact date string, preserving the
// input order within each bucket.
func GroupByDate(items []model.PlannerItem) map[string][]model.PlannerItem {
	grouped := make(map[string][]model.PlannerItem)
	for _, it := range items {
		grouped[it.Date] = append(grouped[it.Date], it)
	}
	return grouped
}

// ProjectUsage counts items per project id. The store's DeleteProject is a
// silent no-op on precondition failure, so callers pre-check here.
func ProjectUsage(items []model.PlannerItem) map[string]int {
	usage := make(map[string]int)
	for _, it := range items {
		usage[it.ProjectID]++
	}
	return usage
}

// ItemsBetween returns the items whose date lies in [start, end], both
// canonical date strings, preserving input order.
func ItemsBetween(items []model.PlannerItem, start, end string) []model.PlannerItem {
	var out []model.PlannerItem
	for _, it := range items {
		if it.Date >= start && it.Date <= end {
			out = append(out, it)
		}
	}
	return out
}

// IconUsage counts items per icon display label, skipping icon-less items.
func IconUsage(items []model.PlannerItem) map[string]int {
	usage := make(map[string]int)
	for _, it := range items {
		if label := it.Icon.DisplayLabel(); label != "" {
			usage[label]++
		}
	}
	return usage
}
