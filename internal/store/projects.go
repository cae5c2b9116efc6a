package store

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/existflow/gridplan/internal/model"
)

func newProject(name, colour string) model.Project {
	now := time.Now()
	return model.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Colour:    colour,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddProject creates a project, or returns the id of the existing project
// with the same name (case-insensitive, trimmed). Idempotent by name.
func (s *Store) AddProject(name, colour string) string {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	for _, p := range s.projects {
		if strings.EqualFold(p.Name, name) {
			s.mu.Unlock()
			return p.ID
		}
	}

	project := newProject(name, colour)
	s.projects = append(s.projects, project)
	s.filters = model.Reconcile(s.filters, s.projects)
	s.mu.Unlock()
	s.notify()
	return project.ID
}

// UpdateProject renames or recolours a project. No-op when the project is
// unknown or nothing changed.
func (s *Store) UpdateProject(id, name, colour string) {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	changed := false
	for i, p := range s.projects {
		if p.ID != id {
			continue
		}
		if p.Name == name && p.Colour == colour {
			break
		}
		s.projects[i].Name = name
		s.projects[i].Colour = colour
		s.projects[i].UpdatedAt = time.Now()
		changed = true
		break
	}
	if !changed {
		s.mu.Unlock()
		return
	}
	s.filters = model.Reconcile(s.filters, s.projects)
	s.mu.Unlock()
	s.notify()
}

// DeleteProject removes a project and reassigns its items to the reserved
// Archived project. Silent no-op when the id is unknown, when it is the
// Archived id, or when it is the last remaining project; callers are
// expected to pre-check with the selector layer's usage counts.
func (s *Store) DeleteProject(id string) {
	s.mu.Lock()
	if id == model.ArchivedProjectID || len(s.projects) <= 1 {
		s.mu.Unlock()
		return
	}
	if _, ok := model.FindProject(s.projects, id); !ok {
		s.mu.Unlock()
		return
	}

	kept := s.projects[:0]
	for _, p := range s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.projects = kept

	now := time.Now()
	for i, it := range s.items {
		if it.ProjectID == id {
			s.items[i].ProjectID = model.ArchivedProjectID
			s.items[i].UpdatedAt = now
		}
	}

	s.filters = model.Reconcile(s.filters, s.projects)
	s.mu.Unlock()
	s.notify()
}
