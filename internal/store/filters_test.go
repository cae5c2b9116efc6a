package store

import (
	"reflect"
	"testing"

	"github.com/existflow/gridplan/internal/model"
)

func TestToggleFromAllModeHidesToggled(t *testing.T) {
	s := newTestStore(t)

	// All-mode over {p1, p2, Archived}: toggling p1 hides it, leaving the
	// complement over the selectable set.
	s.ToggleProjectVisibility("p1")

	f := s.Snapshot().Filters
	if f.Mode != model.FilterInclude {
		t.Fatalf("expected include mode, got %q", f.Mode)
	}
	if !reflect.DeepEqual(f.ProjectIDs, []string{"p2"}) {
		t.Fatalf("expected [p2], got %v", f.ProjectIDs)
	}
}

func TestToggleBackCollapsesToAll(t *testing.T) {
	s := newTestStore(t)

	s.ToggleProjectVisibility("p1")
	s.ToggleProjectVisibility("p1")

	f := s.Snapshot().Filters
	if f.Mode != model.FilterAll || len(f.ProjectIDs) != 0 {
		t.Fatalf("expected collapse back to all mode, got %q %v", f.Mode, f.ProjectIDs)
	}
}

func TestToggleUnknownProjectNoOp(t *testing.T) {
	s := newTestStore(t)
	before := s.Snapshot().Filters
	s.ToggleProjectVisibility("ghost")
	if !before.Equal(s.Snapshot().Filters) {
		t.Fatal("toggling an unknown project must not change filters")
	}
}

func TestToggleArchivedFromAllMode(t *testing.T) {
	s := newTestStore(t)

	// Archived is not selectable; toggling it from all-mode yields the full
	// selectable complement, which the reconciler collapses back to all.
	s.ToggleProjectVisibility(model.ArchivedProjectID)

	f := s.Snapshot().Filters
	if f.Mode != model.FilterAll {
		t.Fatalf("expected all mode to survive, got %q %v", f.Mode, f.ProjectIDs)
	}
}

func TestClearAndSelectAll(t *testing.T) {
	s := newTestStore(t)

	s.ClearProjectSelection()
	f := s.Snapshot().Filters
	if f.Mode != model.FilterInclude || len(f.ProjectIDs) != 0 {
		t.Fatalf("expected empty include mode, got %q %v", f.Mode, f.ProjectIDs)
	}

	s.SelectAllProjects()
	f = s.Snapshot().Filters
	if f.Mode != model.FilterAll || len(f.ProjectIDs) != 0 {
		t.Fatalf("expected all mode, got %q %v", f.Mode, f.ProjectIDs)
	}
}

func TestSetFiltersSearch(t *testing.T) {
	s := newTestStore(t)

	s.SetFilters(func(f model.Filters) model.Filters {
		f.Search = "launch"
		return f
	})
	if got := s.Snapshot().Filters.Search; got != "launch" {
		t.Fatalf("expected search set, got %q", got)
	}

	// Identity update must not notify.
	calls := 0
	unsub := s.Subscribe(func() { calls++ })
	defer unsub()
	s.SetFilters(func(f model.Filters) model.Filters { return f })
	if calls != 0 {
		t.Fatalf("identity filter update must be silent, got %d notifications", calls)
	}
}

func TestSetFiltersReconcilesResult(t *testing.T) {
	s := newTestStore(t)

	s.SetFilters(func(f model.Filters) model.Filters {
		f.Mode = model.FilterInclude
		f.ProjectIDs = []string{"p1", "ghost", "p1", "p2"}
		return f
	})

	f := s.Snapshot().Filters
	// Clean list covers every selectable project, so it collapses to all.
	if f.Mode != model.FilterAll || len(f.ProjectIDs) != 0 {
		t.Fatalf("expected reconciled collapse, got %q %v", f.Mode, f.ProjectIDs)
	}
}
