package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/existflow/gridplan/internal/logger"
	"github.com/existflow/gridplan/internal/migrate"
	"github.com/existflow/gridplan/internal/store"
)

const stateKey = "planner-state"

// LoadState reads the persisted blob, runs it through the schema migration
// engine, and returns the store's initial state. A missing row yields a
// fresh default state.
func (db *DB) LoadState() (store.State, error) {
	var blob []byte
	err := db.QueryRow(`SELECT value FROM planner_state WHERE key = ?`, stateKey).Scan(&blob)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return store.State{}, fmt.Errorf("failed to read planner state: %w", err)
	}

	doc, err := migrate.Load(blob)
	if err != nil {
		return store.State{}, err
	}

	return store.State{Items: doc.Items, Projects: doc.Projects}, nil
}

// SaveState persists a state snapshot as the current-version blob.
func (db *DB) SaveState(st store.State) error {
	blob, err := migrate.Marshal(migrate.Document{Items: st.Items, Projects: st.Projects})
	if err != nil {
		return fmt.Errorf("failed to encode planner state: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO planner_state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		stateKey, string(blob), time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to write planner state: %w", err)
	}
	return nil
}

// Autosave subscribes a save-after-every-mutation observer to the store.
// Returns the unsubscribe function.
func (db *DB) Autosave(s *store.Store) func() {
	return s.Subscribe(func() {
		if err := db.SaveState(s.Snapshot()); err != nil {
			logger.Error("Autosave failed", logger.F("error", err))
		}
	})
}
