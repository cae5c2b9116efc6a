package selector

import (
	"testing"

	"github.com/existflow/gridplan/internal/model"
)

var testProjects = []model.Project{
	{ID: "p1", Name: "Marketing", Colour: "#1C7ED6"},
	{ID: "p2", Name: "Personal", Colour: "#F06595"},
	{ID: model.ArchivedProjectID, Name: "Archived", Colour: "#6B7280"},
}

func testItems() []model.PlannerItem {
	return []model.PlannerItem{
		{ID: "i1", ProjectID: "p1", Title: "Draft launch post", Date: "2026-09-03", Assignee: "Sam"},
		{ID: "i2", ProjectID: "p2", Title: "Gym", Date: "2026-09-01"},
		{ID: "i3", ProjectID: "p1", Title: "Weekly catch-up", Date: "2026-09-01", Icon: model.BuiltinIcon("weekly")},
		{ID: "i4", ProjectID: model.ArchivedProjectID, Title: "Old campaign", Date: "2026-09-02"},
	}
}

func allFilters() model.Filters {
	return model.Filters{Mode: model.FilterAll, ProjectIDs: []string{}}
}

func ids(items []model.PlannerItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestFilteredItemsAllModeHidesArchived(t *testing.T) {
	got := FilteredItems(testItems(), allFilters(), testProjects)
	for _, it := range got {
		if it.ProjectID == model.ArchivedProjectID {
			t.Fatal("all mode must hide Archived items")
		}
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 visible items, got %d", len(got))
	}
}

func TestFilteredItemsIncludeModeShowsArchivedWhenListed(t *testing.T) {
	f := model.Filters{Mode: model.FilterInclude, ProjectIDs: []string{model.ArchivedProjectID}}
	got := FilteredItems(testItems(), f, testProjects)
	if len(got) != 1 || got[0].ID != "i4" {
		t.Fatalf("expected only the archived item, got %v", ids(got))
	}
}

func TestFilteredItemsEmptyIncludeShowsNothing(t *testing.T) {
	f := model.Filters{Mode: model.FilterInclude, ProjectIDs: []string{}}
	if got := FilteredItems(testItems(), f, testProjects); len(got) != 0 {
		t.Fatalf("empty include list must show nothing, got %v", ids(got))
	}
}

func TestFilteredItemsSortedByDateStable(t *testing.T) {
	got := FilteredItems(testItems(), allFilters(), testProjects)
	want := []string{"i2", "i3", "i1"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("expected order %v, got %v", want, ids(got))
		}
	}
}

func TestFilteredItemsSearchFields(t *testing.T) {
	cases := []struct {
		term string
		want []string
	}{
		{"LAUNCH", []string{"i1"}},    // title, case-insensitive
		{"personal", []string{"i2"}},  // project name
		{"sam", []string{"i1"}},       // assignee
		{"catch-up", []string{"i3"}},  // icon display label and title
		{"nothing-matches", []string{}},
	}
	for _, c := range cases {
		f := allFilters()
		f.Search = c.term
		got := FilteredItems(testItems(), f, testProjects)
		if len(got) != len(c.want) {
			t.Errorf("search %q: expected %v, got %v", c.term, c.want, ids(got))
			continue
		}
		for i, id := range c.want {
			if got[i].ID != id {
				t.Errorf("search %q: expected %v, got %v", c.term, c.want, ids(got))
			}
		}
	}
}

func TestFilteredItemsRangeNeedsBothBounds(t *testing.T) {
	f := allFilters()
	f.Range = model.DateRange{Start: "2026-09-02"}
	if got := FilteredItems(testItems(), f, testProjects); len(got) != 3 {
		t.Fatalf("half-open range must not filter, got %v", ids(got))
	}

	f.Range = model.DateRange{Start: "2026-09-01", End: "2026-09-01"}
	got := FilteredItems(testItems(), f, testProjects)
	if len(got) != 2 {
		t.Fatalf("expected the two Sep 1 items, got %v", ids(got))
	}
}

func TestGroupByDate(t *testing.T) {
	grouped := GroupByDate(testItems())
	if len(grouped["2026-09-01"]) != 2 {
		t.Fatalf("expected 2 items on Sep 1, got %d", len(grouped["2026-09-01"]))
	}
	if grouped["2026-09-01"][0].ID != "i2" {
		t.Fatal("grouping must preserve input order")
	}
}

func TestProjectUsage(t *testing.T) {
	usage := ProjectUsage(testItems())
	if usage["p1"] != 2 || usage["p2"] != 1 || usage[model.ArchivedProjectID] != 1 {
		t.Fatalf("unexpected usage: %v", usage)
	}
}

func TestItemsBetween(t *testing.T) {
	got := ItemsBetween(testItems(), "2026-09-02", "2026-09-03")
	if len(got) != 2 {
		t.Fatalf("expected 2 items in window, got %v", ids(got))
	}
}

func TestIconUsage(t *testing.T) {
	usage := IconUsage(testItems())
	if usage["Weekly Catch-up"] != 1 || len(usage) != 1 {
		t.Fatalf("unexpected icon usage: %v", usage)
	}
}
