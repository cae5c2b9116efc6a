package store

import "github.com/existflow/gridplan/internal/model"

// SetFilters applies a pure transformation to the current filters. The
// result is reconciled against the project set; no-op when nothing
// effectively changes.
func (s *Store) SetFilters(updater func(model.Filters) model.Filters) {
	s.mu.Lock()
	next := updater(s.filters)
	if next.Equal(s.filters) {
		s.mu.Unlock()
		return
	}
	next = model.Reconcile(next, s.projects)
	if next.Equal(s.filters) {
		s.mu.Unlock()
		return
	}
	s.filters = next
	s.mu.Unlock()
	s.notify()
}

// ToggleProjectVisibility flips one project in or out of the visible set.
// From all-mode the clicked project is hidden by switching to include-mode
// with the complement of the selectable projects; inside include-mode the
// id is added or removed, with reconciliation collapsing back to all-mode
// when the list covers every selectable project again.
func (s *Store) ToggleProjectVisibility(projectID string) {
	s.mu.Lock()
	if _, ok := model.FindProject(s.projects, projectID); !ok {
		s.mu.Unlock()
		return
	}

	next := s.filters
	if s.filters.Mode == model.FilterAll {
		complement := []string{}
		for _, id := range model.SelectableIDs(s.projects) {
			if id != projectID {
				complement = append(complement, id)
			}
		}
		next.Mode = model.FilterInclude
		next.ProjectIDs = complement
	} else {
		ids := []string{}
		removed := false
		for _, id := range s.filters.ProjectIDs {
			if id == projectID {
				removed = true
				continue
			}
			ids = append(ids, id)
		}
		if !removed {
			ids = append(ids, projectID)
		}
		next.ProjectIDs = ids
	}

	next = model.Reconcile(next, s.projects)
	if next.Equal(s.filters) {
		s.mu.Unlock()
		return
	}
	s.filters = next
	s.mu.Unlock()
	s.notify()
}

// SelectAllProjects returns to all-mode visibility.
func (s *Store) SelectAllProjects() {
	s.mu.Lock()
	if s.filters.Mode == model.FilterAll {
		s.mu.Unlock()
		return
	}
	s.filters.Mode = model.FilterAll
	s.filters.ProjectIDs = []string{}
	s.mu.Unlock()
	s.notify()
}

// ClearProjectSelection switches to include-mode with an empty list,
// hiding every project.
func (s *Store) ClearProjectSelection() {
	s.mu.Lock()
	s.filters.Mode = model.FilterInclude
	s.filters.ProjectIDs = []string{}
	s.mu.Unlock()
	s.notify()
}
