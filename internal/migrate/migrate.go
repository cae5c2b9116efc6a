// Package migrate upgrades persisted planner blobs from older schema
// versions to the current normalized shape. Migration runs once at load
// time; the output is stamped with the current version so no step ever
// runs twice on the same data.
//
// Version history:
//
//	v0: flat item list with inline project names and an optional per-name
//	    colour override map, no project entities
//	v1: normalized projects with stable ids, items keyed by project id
//	v2: the reserved Archived project is guaranteed to exist exactly once
package migrate

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/existflow/gridplan/internal/colour"
	"github.com/existflow/gridplan/internal/dates"
	"github.com/existflow/gridplan/internal/model"
)

// CurrentVersion is the schema version this build reads and writes.
const CurrentVersion = 2

// Document is the persisted planner state in its current shape.
type Document struct {
	Version  int                 `json:"version"`
	Items    []model.PlannerItem `json:"items"`
	Projects []model.Project     `json:"projects"`
}

// envelope is the version-dispatch view of an arbitrary persisted blob.
type envelope struct {
	Version         int               `json:"version"`
	Items           json.RawMessage   `json:"items"`
	Projects        json.RawMessage   `json:"projects"`
	ColourOverrides map[string]string `json:"colourOverrides"`
}

// legacyItem is a v0 flat item carrying an inline project name.
type legacyItem struct {
	ID         string `json:"id"`
	Project    string `json:"project"`
	Title      string `json:"title"`
	Notes      string `json:"notes"`
	Date       string `json:"date"`
	Assignee   string `json:"assignee"`
	Colour     string `json:"colour"`
	Icon       string `json:"icon"`
	IconCustom *struct {
		Key   string `json:"key"`
		Label string `json:"label"`
	} `json:"iconCustom"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Load decodes a persisted blob of any known version and upgrades it to
// the current shape. A nil or empty blob yields a fresh default document.
// Items are never dropped: every input item maps to exactly one output
// item pointing at a valid project.
func Load(data []byte) (Document, error) {
	if len(data) == 0 {
		return normalizeArchived(defaultDocument()), nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Document{}, fmt.Errorf("decode planner state: %w", err)
	}

	var doc Document
	switch {
	case env.Version == 0 || env.Projects == nil:
		var err error
		doc, err = upgradeV0(env)
		if err != nil {
			return Document{}, err
		}
	case env.Version <= CurrentVersion:
		if err := json.Unmarshal(data, &doc); err != nil {
			return Document{}, fmt.Errorf("decode planner state v%d: %w", env.Version, err)
		}
	default:
		return Document{}, fmt.Errorf("planner state version %d is newer than supported version %d", env.Version, CurrentVersion)
	}

	return normalizeArchived(doc), nil
}

// Marshal encodes a document for persistence, stamped with the current
// version.
func Marshal(doc Document) ([]byte, error) {
	doc.Version = CurrentVersion
	return json.Marshal(doc)
}

func defaultDocument() Document {
	now := time.Now()
	return Document{
		Projects: []model.Project{{
			ID:        uuid.New().String(),
			Name:      model.DefaultProjectName,
			Colour:    model.DefaultProjectColour,
			CreatedAt: now,
			UpdatedAt: now,
		}},
		Items: []model.PlannerItem{},
	}
}

// upgradeV0 rebuilds project entities from the inline names of a flat v0
// item list and rewrites every item to reference the new ids.
func upgradeV0(env envelope) (Document, error) {
	var legacy []legacyItem
	if env.Items != nil {
		if err := json.Unmarshal(env.Items, &legacy); err != nil {
			return Document{}, fmt.Errorf("decode legacy items: %w", err)
		}
	}

	registry := make(map[string]model.Project)
	var order []string

	ensureProject := func(name, colourHint string) model.Project {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			trimmed = model.DefaultProjectName
		}
		key := strings.ToLower(trimmed)
		if p, ok := registry[key]; ok {
			return p
		}
		c := colourHint
		if c == "" {
			c = env.ColourOverrides[trimmed]
		}
		if c == "" {
			c = colour.Derive(trimmed)
		}
		now := time.Now()
		p := model.Project{
			ID:        uuid.New().String(),
			Name:      trimmed,
			Colour:    c,
			CreatedAt: now,
			UpdatedAt: now,
		}
		registry[key] = p
		order = append(order, key)
		return p
	}

	items := make([]model.PlannerItem, 0, len(legacy))
	for _, raw := range legacy {
		project := ensureProject(raw.Project, raw.Colour)

		id := raw.ID
		if id == "" {
			id = uuid.New().String()
		}
		date := raw.Date
		if date == "" {
			date = dates.Today()
		}
		createdAt := parseTimestamp(raw.CreatedAt, time.Now())
		updatedAt := parseTimestamp(raw.UpdatedAt, createdAt)

		customKey, customLabel := "", ""
		if raw.IconCustom != nil && raw.IconCustom.Key != "" {
			customKey, customLabel = raw.IconCustom.Key, raw.IconCustom.Label
		}

		items = append(items, model.PlannerItem{
			ID:        id,
			ProjectID: project.ID,
			Title:     raw.Title,
			Notes:     raw.Notes,
			Date:      date,
			Assignee:  raw.Assignee,
			Icon:      model.ResolveIcon(raw.Icon, customKey, customLabel),
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		})
	}

	doc := Document{Version: 1, Items: items}
	if len(order) == 0 {
		return Document{Version: 1, Items: items, Projects: defaultDocument().Projects}, nil
	}
	for _, key := range order {
		doc.Projects = append(doc.Projects, registry[key])
	}
	return doc, nil
}

// normalizeArchived establishes the v2 invariant: exactly one project
// carries the reserved Archived id. A project merely named "Archived"
// under a different id is merged into the reserved one, with its items
// repointed; remaining projects are deduplicated by id. Idempotent.
func normalizeArchived(doc Document) Document {
	merged := make(map[string]string) // old id -> reserved id
	hasReserved := false
	for _, p := range doc.Projects {
		if p.ID == model.ArchivedProjectID {
			hasReserved = true
			break
		}
	}

	seen := make(map[string]bool, len(doc.Projects))
	kept := doc.Projects[:0]
	for _, p := range doc.Projects {
		if seen[p.ID] {
			continue
		}
		if p.ID != model.ArchivedProjectID && strings.EqualFold(strings.TrimSpace(p.Name), "Archived") {
			merged[p.ID] = model.ArchivedProjectID
			continue
		}
		seen[p.ID] = true
		kept = append(kept, p)
	}
	doc.Projects = kept

	if !hasReserved {
		doc.Projects = append(doc.Projects, model.ArchivedProject())
	}

	if len(merged) > 0 {
		now := time.Now()
		for i, it := range doc.Items {
			if target, ok := merged[it.ProjectID]; ok {
				doc.Items[i].ProjectID = target
				doc.Items[i].UpdatedAt = now
			}
		}
	}

	doc.Version = CurrentVersion
	return doc
}

func parseTimestamp(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return fallback
}
