// Package store holds the planner's single source of truth: projects,
// items, filters, the view/date cursor, and the one-slot undo buffer.
// Every mutation runs atomically under one lock and enforces the
// referential invariants before observers are notified.
package store

import (
	"errors"
	"sync"

	"github.com/existflow/gridplan/internal/dates"
	"github.com/existflow/gridplan/internal/model"
)

var (
	// ErrProjectNotFound is returned when an item references a project
	// that does not exist. This is a programmer error, not user input.
	ErrProjectNotFound = errors.New("store: project does not exist for item")
	// ErrInvalidDate is returned when an item date is absent or not a
	// canonical YYYY-MM-DD string.
	ErrInvalidDate = errors.New("store: item date must be a valid YYYY-MM-DD string")
	// ErrEmptyTitle is returned when an item title is empty after
	// normalization.
	ErrEmptyTitle = errors.New("store: item title must not be empty")
)

// State is one immutable snapshot of everything the store owns, minus the
// undo buffer, which is session-only.
type State struct {
	Items         []model.PlannerItem
	Projects      []model.Project
	View          model.View
	ReferenceDate string
	FocusedDate   string
	Filters       model.Filters
}

// Store is the mutable planner state container. Constructed once per
// session; all access goes through its methods.
type Store struct {
	mu sync.Mutex

	items         []model.PlannerItem
	projects      []model.Project
	view          model.View
	referenceDate string
	focusedDate   string
	filters       model.Filters
	undo          *model.PlannerItem

	listenMu  sync.Mutex
	listeners map[int]func()
	nextToken int
}

// New builds a store from an initial state, normalizing it: the reserved
// Archived project is ensured, at least one project exists, zero-value
// cursor fields get defaults, and the filters are reconciled.
func New(initial State) *Store {
	s := &Store{
		items:         append([]model.PlannerItem(nil), initial.Items...),
		projects:      append([]model.Project(nil), initial.Projects...),
		view:          initial.View,
		referenceDate: initial.ReferenceDate,
		focusedDate:   initial.FocusedDate,
		filters:       initial.Filters,
		listeners:     make(map[int]func()),
	}

	s.projects = ensureArchived(s.projects)
	if len(s.projects) == 1 {
		// Only Archived present: synthesize a default user project so the
		// at-least-one-project invariant has a selectable member.
		s.projects = append(s.projects, newProject(model.DefaultProjectName, model.DefaultProjectColour))
	}
	if s.view == "" {
		s.view = model.ViewMonth
	}
	if s.referenceDate == "" {
		s.referenceDate = dates.Today()
	}
	if s.focusedDate == "" {
		s.focusedDate = dates.Today()
	}
	if s.filters.Mode == "" {
		s.filters = model.Filters{
			Mode:       model.FilterAll,
			ProjectIDs: []string{},
			Range:      dates.DefaultRange(),
		}
	}
	s.filters = model.Reconcile(s.filters, s.projects)
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	return State{
		Items:         append([]model.PlannerItem(nil), s.items...),
		Projects:      append([]model.Project(nil), s.projects...),
		View:          s.view,
		ReferenceDate: s.referenceDate,
		FocusedDate:   s.focusedDate,
		Filters:       s.filters,
	}
}

// Subscribe registers an observer invoked after every successful mutation.
// The returned function unsubscribes it.
func (s *Store) Subscribe(fn func()) func() {
	s.listenMu.Lock()
	defer s.listenMu.Unlock()
	token := s.nextToken
	s.nextToken++
	s.listeners[token] = fn
	return func() {
		s.listenMu.Lock()
		defer s.listenMu.Unlock()
		delete(s.listeners, token)
	}
}

// notify runs outside the state lock so observers may read the store.
func (s *Store) notify() {
	s.listenMu.Lock()
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// SetView switches the calendar granularity.
func (s *Store) SetView(view model.View) {
	s.mu.Lock()
	if s.view == view {
		s.mu.Unlock()
		return
	}
	s.view = view
	s.mu.Unlock()
	s.notify()
}

// SetReferenceDate moves the date anchoring the visible period.
func (s *Store) SetReferenceDate(date string) {
	date = dates.ClampString(date)
	s.mu.Lock()
	if s.referenceDate == date {
		s.mu.Unlock()
		return
	}
	s.referenceDate = date
	s.mu.Unlock()
	s.notify()
}

// SetFocusedDate moves the keyboard-focus date.
func (s *Store) SetFocusedDate(date string) {
	date = dates.ClampString(date)
	s.mu.Lock()
	if s.focusedDate == date {
		s.mu.Unlock()
		return
	}
	s.focusedDate = date
	s.mu.Unlock()
	s.notify()
}

// ReplaceProjects overwrites the project list wholesale. Used by the sync
// adapter; the reserved Archived project is re-ensured and filters are
// reconciled against the new set.
func (s *Store) ReplaceProjects(projects []model.Project) {
	s.mu.Lock()
	s.projects = ensureArchived(append([]model.Project(nil), projects...))
	s.filters = model.Reconcile(s.filters, s.projects)
	s.mu.Unlock()
	s.notify()
}

// ReplaceItems overwrites the item list wholesale.
func (s *Store) ReplaceItems(items []model.PlannerItem) {
	s.mu.Lock()
	s.items = append([]model.PlannerItem(nil), items...)
	s.mu.Unlock()
	s.notify()
}

// Restore resets items and projects to a previously captured snapshot.
// The sync adapter uses it to roll back an optimistic mutation after a
// failed remote write.
func (s *Store) Restore(snapshot State) {
	s.mu.Lock()
	s.items = append([]model.PlannerItem(nil), snapshot.Items...)
	s.projects = ensureArchived(append([]model.Project(nil), snapshot.Projects...))
	s.filters = model.Reconcile(s.filters, s.projects)
	s.mu.Unlock()
	s.notify()
}

func ensureArchived(projects []model.Project) []model.Project {
	for _, p := range projects {
		if p.IsArchived() {
			return projects
		}
	}
	return append(projects, model.ArchivedProject())
}
