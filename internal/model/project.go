package model

import "time"

// ArchivedProjectID is the reserved id of the system "Archived" project.
// Items whose project is deleted are reassigned to it, and it can never
// be deleted itself.
const ArchivedProjectID = "sys-archived"

const (
	archivedProjectName   = "Archived"
	archivedProjectColour = "#6B7280"

	DefaultProjectName   = "General"
	DefaultProjectColour = "#1C7ED6"
)

// Project is a named, coloured grouping that every planner item belongs to.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Colour    string    `json:"colour"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsArchived reports whether this is the reserved Archived project.
func (p Project) IsArchived() bool {
	return p.ID == ArchivedProjectID
}

// ArchivedProject returns a fresh copy of the reserved Archived project.
func ArchivedProject() Project {
	now := time.Now()
	return Project{
		ID:        ArchivedProjectID,
		Name:      archivedProjectName,
		Colour:    archivedProjectColour,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SelectableIDs returns the ids of all non-Archived projects, in order.
// These are the projects that participate in "all" visibility mode.
func SelectableIDs(projects []Project) []string {
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		if p.IsArchived() {
			continue
		}
		ids = append(ids, p.ID)
	}
	return ids
}

// FindProject returns the project with the given id, if present.
func FindProject(projects []Project, id string) (Project, bool) {
	for _, p := range projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}
