package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/existflow/gridplan/internal/dates"
	"github.com/existflow/gridplan/internal/model"
)

// ItemInput carries the caller-supplied fields of an upsert. Icon and
// IconCustom mirror the legacy field pair; a custom icon with a non-empty
// key wins and clears the built-in key.
type ItemInput struct {
	ID              string
	ProjectID       string
	Title           string
	Notes           string
	Date            string
	Assignee        string
	Icon            string
	IconCustomKey   string
	IconCustomLabel string
}

// UpsertItem inserts a new item or fully replaces an existing one,
// preserving the original CreatedAt on replace. The project reference is
// validated hard; any successful upsert clears the undo buffer.
func (s *Store) UpsertItem(in ItemInput) (string, error) {
	title := model.NormalizeTitle(in.Title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if !dates.Valid(in.Date) {
		return "", ErrInvalidDate
	}

	s.mu.Lock()
	if _, ok := model.FindProject(s.projects, in.ProjectID); !ok {
		s.mu.Unlock()
		return "", ErrProjectNotFound
	}

	id := in.ID
	if id == "" {
		id = uuid.New().String()
	}

	now := time.Now()
	next := model.PlannerItem{
		ID:        id,
		ProjectID: in.ProjectID,
		Title:     title,
		Notes:     in.Notes,
		Date:      in.Date,
		Assignee:  in.Assignee,
		Icon:      model.ResolveIcon(in.Icon, in.IconCustomKey, in.IconCustomLabel),
		CreatedAt: now,
		UpdatedAt: now,
	}

	replaced := false
	for i, it := range s.items {
		if it.ID == id {
			next.CreatedAt = it.CreatedAt
			s.items[i] = next
			replaced = true
			break
		}
	}
	if !replaced {
		s.items = append(s.items, next)
	}

	// An edit is not an undo target.
	s.undo = nil
	s.mu.Unlock()
	s.notify()
	return id, nil
}

// DeleteItem removes an item, parking a copy in the one-slot undo buffer.
// Unknown ids are a silent no-op.
func (s *Store) DeleteItem(id string) {
	s.mu.Lock()
	var target *model.PlannerItem
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ID == id {
			copied := it
			target = &copied
			continue
		}
		kept = append(kept, it)
	}
	if target == nil {
		s.mu.Unlock()
		return
	}
	s.items = kept
	s.undo = target
	s.mu.Unlock()
	s.notify()
}

// RestoreLastDeleted re-inserts the most recently deleted item with a
// refreshed UpdatedAt and empties the undo buffer. No-op when the buffer
// is empty.
func (s *Store) RestoreLastDeleted() {
	s.mu.Lock()
	if s.undo == nil {
		s.mu.Unlock()
		return
	}
	restored := *s.undo
	restored.UpdatedAt = time.Now()
	s.items = append(s.items, restored)
	s.undo = nil
	s.mu.Unlock()
	s.notify()
}

// HasUndo reports whether an item is parked in the undo buffer.
func (s *Store) HasUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.undo != nil
}
