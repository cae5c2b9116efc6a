package assistant

import (
	"strings"
	"testing"
	"time"

	"github.com/existflow/gridplan/internal/dates"
	"github.com/existflow/gridplan/internal/model"
	"github.com/existflow/gridplan/internal/store"
)

func snapshotFixture(t *testing.T) store.State {
	t.Helper()
	s := store.New(store.State{Projects: []model.Project{
		{ID: "p1", Name: "Marketing", Colour: "#1C7ED6"},
		{ID: "p2", Name: "Personal", Colour: "#F06595"},
	}})

	today := time.Now()
	add := func(project, title string, offset int) {
		t.Helper()
		if _, err := s.UpsertItem(store.ItemInput{
			ProjectID: project,
			Title:     title,
			Date:      dates.Format(today.AddDate(0, 0, offset)),
		}); err != nil {
			t.Fatalf("upsert %q: %v", title, err)
		}
	}

	add("p1", "Launch review", 2)
	add("p1", "Draft newsletter", 5)
	add("p2", "Dentist", -3)
	add("p2", "Far future", 30)
	return s.Snapshot()
}

func TestBuildSnapshotCounts(t *testing.T) {
	snap := BuildSnapshot(snapshotFixture(t))

	if snap.TotalItems != 4 {
		t.Fatalf("TotalItems = %d, want 4", snap.TotalItems)
	}
	// Marketing, Personal, plus the reserved Archived project.
	if snap.TotalProjects != 3 {
		t.Fatalf("TotalProjects = %d, want 3", snap.TotalProjects)
	}
	if snap.PerProject["Marketing"] != 2 || snap.PerProject["Personal"] != 2 {
		t.Fatalf("PerProject = %v", snap.PerProject)
	}
}

func TestBuildSnapshotWindows(t *testing.T) {
	snap := BuildSnapshot(snapshotFixture(t))

	if len(snap.Upcoming) != 2 {
		t.Fatalf("Upcoming = %+v, want 2 entries", snap.Upcoming)
	}
	if snap.Upcoming[0].Title != "Launch review" || snap.Upcoming[1].Title != "Draft newsletter" {
		t.Fatalf("Upcoming not date-ordered: %+v", snap.Upcoming)
	}
	if snap.Upcoming[0].Project != "Marketing" {
		t.Fatalf("project name not resolved: %+v", snap.Upcoming[0])
	}

	if len(snap.Recent) != 1 || snap.Recent[0].Title != "Dentist" {
		t.Fatalf("Recent = %+v, want the past-week item only", snap.Recent)
	}

	for _, it := range snap.Upcoming {
		if it.Title == "Far future" {
			t.Fatal("item beyond the window leaked into Upcoming")
		}
	}
}

func TestDescribe(t *testing.T) {
	snap := BuildSnapshot(snapshotFixture(t))
	text := snap.Describe()

	if !strings.Contains(text, "4 items across 3 projects") {
		t.Fatalf("missing totals line:\n%s", text)
	}
	if !strings.Contains(text, "Marketing=2") || !strings.Contains(text, "Personal=2") {
		t.Fatalf("missing per-project counts:\n%s", text)
	}
	if !strings.Contains(text, "- ") || !strings.Contains(text, "[Marketing] Launch review") {
		t.Fatalf("missing upcoming listing:\n%s", text)
	}
	if strings.Contains(text, "Far future") {
		t.Fatalf("out-of-window item listed:\n%s", text)
	}
}

func TestDescribeEmptyPlanner(t *testing.T) {
	text := BuildSnapshot(store.New(store.State{}).Snapshot()).Describe()
	if !strings.Contains(text, "Upcoming week: nothing scheduled.") {
		t.Fatalf("missing empty-window line:\n%s", text)
	}
	if !strings.Contains(text, "Past week: nothing scheduled.") {
		t.Fatalf("missing empty-window line:\n%s", text)
	}
}
