package cli

import (
	"fmt"

	"github.com/existflow/gridplan/internal/db"
	"github.com/existflow/gridplan/internal/store"
	"github.com/existflow/gridplan/internal/sync"
)

// session bundles the open database and the planner store built from it.
// Mutations are flushed back to the database automatically.
type session struct {
	db     *db.DB
	store  *store.Store
	unsave func()
}

func openSession() (*session, error) {
	database, err := db.OpenDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	state, err := database.LoadState()
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to load planner state: %w", err)
	}

	s := store.New(state)
	return &session{
		db:     database,
		store:  s,
		unsave: database.Autosave(s),
	}, nil
}

func (s *session) close() {
	s.unsave()
	_ = s.db.Close()
}

// maybePull replaces local state from the server before a read when the
// --sync flag is set and the user is logged in.
func maybePull(s *session, forceSync bool) {
	if !forceSync {
		return
	}
	client, err := sync.NewClient()
	if err != nil || !client.IsLoggedIn() {
		return
	}

	fmt.Println("🔄 Syncing...")
	projects, items, version, err := client.Pull()
	if err != nil {
		fmt.Printf("⚠️  Sync failed: %v\n", err)
		return
	}
	if version == 0 {
		fmt.Println("✓ Nothing on server yet")
		return
	}
	s.store.ReplaceProjects(projects)
	s.store.ReplaceItems(items)
	fmt.Printf("✓ Synced (server version %d)\n", version)
}

// maybePush pushes local state to the server after a write when the
// --sync flag is set and the user is logged in.
func maybePush(s *session, forceSync bool) {
	if !forceSync {
		return
	}
	client, err := sync.NewClient()
	if err != nil || !client.IsLoggedIn() {
		return
	}

	fmt.Println("🔄 Syncing changes...")
	version, err := client.Push(s.store.Snapshot())
	if err != nil {
		fmt.Printf("⚠️  Sync failed: %v\n", err)
		return
	}
	fmt.Printf("✓ Synced (server version %d)\n", version)
}
