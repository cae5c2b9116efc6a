package db

import (
	"path/filepath"
	"testing"

	"github.com/existflow/gridplan/internal/model"
	"github.com/existflow/gridplan/internal/store"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(filepath.Join(t.TempDir(), "planner.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestLoadStateFreshDatabase(t *testing.T) {
	database := openTestDB(t)

	st, err := database.LoadState()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(st.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(st.Items))
	}
	if _, ok := model.FindProject(st.Projects, model.ArchivedProjectID); !ok {
		t.Fatal("expected the reserved Archived project in a fresh state")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	database := openTestDB(t)

	s := store.New(store.State{Projects: []model.Project{
		{ID: "p1", Name: "Marketing", Colour: "#1C7ED6"},
	}})
	id, err := s.UpsertItem(store.ItemInput{
		ProjectID: "p1",
		Title:     "Draft launch post",
		Date:      "2026-09-03",
		Icon:      "copy",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := database.SaveState(s.Snapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := database.LoadState()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(loaded.Items) != 1 || loaded.Items[0].ID != id {
		t.Fatalf("expected the saved item back, got %+v", loaded.Items)
	}
	if loaded.Items[0].Icon.Kind != model.IconBuiltin || loaded.Items[0].Icon.Key != "copy" {
		t.Fatalf("icon lost in round trip: %+v", loaded.Items[0].Icon)
	}
	if _, ok := model.FindProject(loaded.Projects, "p1"); !ok {
		t.Fatal("expected the saved project back")
	}
}

func TestSaveStateOverwrites(t *testing.T) {
	database := openTestDB(t)

	s := store.New(store.State{Projects: []model.Project{{ID: "p1", Name: "Marketing"}}})
	if err := database.SaveState(s.Snapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}

	s.AddProject("Personal", "#F06595")
	if err := database.SaveState(s.Snapshot()); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := database.LoadState()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	names := map[string]bool{}
	for _, p := range loaded.Projects {
		names[p.Name] = true
	}
	if !names["Personal"] {
		t.Fatalf("expected second save visible, got %v", names)
	}
}

func TestAutosavePersistsMutations(t *testing.T) {
	database := openTestDB(t)

	s := store.New(store.State{Projects: []model.Project{{ID: "p1", Name: "Marketing"}}})
	unsub := database.Autosave(s)
	defer unsub()

	if _, err := s.UpsertItem(store.ItemInput{ProjectID: "p1", Title: "Persisted", Date: "2026-09-01"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	loaded, err := database.LoadState()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Items) != 1 || loaded.Items[0].Title != "Persisted" {
		t.Fatalf("expected autosaved item, got %+v", loaded.Items)
	}
}
