package model

import (
	"reflect"
	"testing"
)

func testProjects() []Project {
	return []Project{
		{ID: "p1", Name: "Marketing", Colour: "#1C7ED6"},
		{ID: "p2", Name: "Personal", Colour: "#F06595"},
		{ID: ArchivedProjectID, Name: "Archived", Colour: "#6B7280"},
	}
}

func TestReconcileDropsUnknownAndDuplicateIDs(t *testing.T) {
	f := Filters{
		Mode:       FilterInclude,
		ProjectIDs: []string{"p1", "ghost", "p1", "p2", "p2", ArchivedProjectID},
	}
	got := Reconcile(f, testProjects())

	if got.Mode != FilterInclude {
		t.Fatalf("expected include mode, got %q", got.Mode)
	}
	want := []string{"p1", "p2", ArchivedProjectID}
	if !reflect.DeepEqual(got.ProjectIDs, want) {
		t.Fatalf("expected ids %v, got %v", want, got.ProjectIDs)
	}
}

func TestReconcileCollapsesFullIncludeToAll(t *testing.T) {
	f := Filters{Mode: FilterInclude, ProjectIDs: []string{"p2", "p1"}}
	got := Reconcile(f, testProjects())

	if got.Mode != FilterAll {
		t.Fatalf("expected collapse to all mode, got %q", got.Mode)
	}
	if len(got.ProjectIDs) != 0 {
		t.Fatalf("all mode must carry an empty id list, got %v", got.ProjectIDs)
	}
}

func TestReconcileNoCollapseWhenArchivedIncluded(t *testing.T) {
	// Archived is not selectable, so explicitly including it keeps the
	// filter in include mode even when every selectable id is listed.
	f := Filters{Mode: FilterInclude, ProjectIDs: []string{"p1", "p2", ArchivedProjectID}}
	got := Reconcile(f, testProjects())

	if got.Mode != FilterInclude {
		t.Fatalf("expected include mode to survive, got %q", got.Mode)
	}
}

func TestReconcileAllModeForcesEmptyIDs(t *testing.T) {
	f := Filters{Mode: FilterAll, ProjectIDs: []string{"p1"}}
	got := Reconcile(f, testProjects())

	if got.Mode != FilterAll || len(got.ProjectIDs) != 0 {
		t.Fatalf("expected all mode with empty ids, got %q %v", got.Mode, got.ProjectIDs)
	}
}

func TestReconcileEmptyIncludeStaysEmpty(t *testing.T) {
	f := Filters{Mode: FilterInclude, ProjectIDs: []string{}}
	got := Reconcile(f, testProjects())

	if got.Mode != FilterInclude || len(got.ProjectIDs) != 0 {
		t.Fatalf("empty include list must be preserved, got %q %v", got.Mode, got.ProjectIDs)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	projects := testProjects()
	inputs := []Filters{
		{Mode: FilterInclude, ProjectIDs: []string{"p1", "ghost", "p1"}},
		{Mode: FilterInclude, ProjectIDs: []string{"p1", "p2"}},
		{Mode: FilterAll, ProjectIDs: []string{"p1"}},
		{Mode: FilterInclude, ProjectIDs: []string{ArchivedProjectID}},
	}
	for _, f := range inputs {
		once := Reconcile(f, projects)
		twice := Reconcile(once, projects)
		if !once.Equal(twice) {
			t.Fatalf("reconcile not idempotent for %v: %v != %v", f, once, twice)
		}
	}
}

func TestSelectableIDsExcludesArchived(t *testing.T) {
	got := SelectableIDs(testProjects())
	want := []string{"p1", "p2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
