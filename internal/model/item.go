package model

import (
	"encoding/json"
	"strings"
	"time"
)

// PlannerItem is a single scheduled entry on the planner.
type PlannerItem struct {
	ID        string
	ProjectID string
	Title     string
	Notes     string
	Date      string // canonical YYYY-MM-DD
	Assignee  string
	Icon      Icon
	CreatedAt time.Time
	UpdatedAt time.Time
}

// itemWire is the persisted/synced layout of a planner item. The in-memory
// Icon variant flattens to the legacy icon/iconCustom field pair.
type itemWire struct {
	ID         string          `json:"id"`
	ProjectID  string          `json:"projectId"`
	Title      string          `json:"title"`
	Notes      string          `json:"notes,omitempty"`
	Date       string          `json:"date"`
	Assignee   string          `json:"assignee,omitempty"`
	Icon       string          `json:"icon,omitempty"`
	IconCustom *customIconWire `json:"iconCustom,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type customIconWire struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

func (it PlannerItem) MarshalJSON() ([]byte, error) {
	w := itemWire{
		ID:        it.ID,
		ProjectID: it.ProjectID,
		Title:     it.Title,
		Notes:     it.Notes,
		Date:      it.Date,
		Assignee:  it.Assignee,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
	switch it.Icon.Kind {
	case IconBuiltin:
		w.Icon = it.Icon.Key
	case IconCustom:
		w.IconCustom = &customIconWire{Key: it.Icon.Key, Label: it.Icon.Label}
	}
	return json.Marshal(w)
}

func (it *PlannerItem) UnmarshalJSON(data []byte) error {
	var w itemWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*it = PlannerItem{
		ID:        w.ID,
		ProjectID: w.ProjectID,
		Title:     w.Title,
		Notes:     w.Notes,
		Date:      w.Date,
		Assignee:  w.Assignee,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
	customKey, customLabel := "", ""
	if w.IconCustom != nil {
		customKey, customLabel = w.IconCustom.Key, w.IconCustom.Label
	}
	it.Icon = ResolveIcon(w.Icon, customKey, customLabel)
	return nil
}

// NormalizeTitle trims the title and collapses internal whitespace runs to
// single spaces.
func NormalizeTitle(title string) string {
	return strings.Join(strings.Fields(title), " ")
}
