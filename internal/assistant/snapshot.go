// Package assistant derives a read-only planner summary and forwards it,
// with a user question, to a configured chat endpoint.
package assistant

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/existflow/gridplan/internal/dates"
	"github.com/existflow/gridplan/internal/model"
	"github.com/existflow/gridplan/internal/selector"
	"github.com/existflow/gridplan/internal/store"
)

// ItemSummary is the assistant-facing view of one planner item.
type ItemSummary struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Project string `json:"project"`
}

// Snapshot is the read-only planner digest sent to the assistant. It never
// includes notes or assignees; only what is needed for scheduling talk.
type Snapshot struct {
	TotalItems    int            `json:"totalItems"`
	TotalProjects int            `json:"totalProjects"`
	PerProject    map[string]int `json:"perProject"`
	Upcoming      []ItemSummary  `json:"upcoming"`
	Recent        []ItemSummary  `json:"recent"`
	IconUsage     map[string]int `json:"iconUsage"`
}

const windowDays = 7

// BuildSnapshot digests a state snapshot using the selector primitives.
// Upcoming covers today through the next week, recent the week before
// today, both sorted by date.
func BuildSnapshot(st store.State) Snapshot {
	names := make(map[string]string, len(st.Projects))
	for _, p := range st.Projects {
		names[p.ID] = p.Name
	}

	perProject := make(map[string]int)
	for id, count := range selector.ProjectUsage(st.Items) {
		name := names[id]
		if name == "" {
			name = id
		}
		perProject[name] = count
	}

	today := time.Now()
	upcoming := summarize(selector.ItemsBetween(st.Items,
		dates.Format(today), dates.Format(today.AddDate(0, 0, windowDays))), names)
	recent := summarize(selector.ItemsBetween(st.Items,
		dates.Format(today.AddDate(0, 0, -windowDays)), dates.Format(today.AddDate(0, 0, -1))), names)

	return Snapshot{
		TotalItems:    len(st.Items),
		TotalProjects: len(st.Projects),
		PerProject:    perProject,
		Upcoming:      upcoming,
		Recent:        recent,
		IconUsage:     selector.IconUsage(st.Items),
	}
}

func summarize(items []model.PlannerItem, names map[string]string) []ItemSummary {
	out := make([]ItemSummary, 0, len(items))
	for _, it := range items {
		out = append(out, ItemSummary{
			Title:   it.Title,
			Date:    it.Date,
			Project: names[it.ProjectID],
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Describe renders the snapshot as a compact plain-text context block.
func (s Snapshot) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "The planner holds %d items across %d projects.\n", s.TotalItems, s.TotalProjects)

	if len(s.PerProject) > 0 {
		names := make([]string, 0, len(s.PerProject))
		for name := range s.PerProject {
			names = append(names, name)
		}
		sort.Strings(names)
		b.WriteString("Items per project:")
		for _, name := range names {
			fmt.Fprintf(&b, " %s=%d", name, s.PerProject[name])
		}
		b.WriteString("\n")
	}

	writeWindow(&b, "Upcoming week", s.Upcoming)
	writeWindow(&b, "Past week", s.Recent)
	return b.String()
}

func writeWindow(b *strings.Builder, label string, items []ItemSummary) {
	if len(items) == 0 {
		fmt.Fprintf(b, "%s: nothing scheduled.\n", label)
		return
	}
	fmt.Fprintf(b, "%s:\n", label)
	for _, it := range items {
		fmt.Fprintf(b, "- %s [%s] %s\n", it.Date, it.Project, it.Title)
	}
}
