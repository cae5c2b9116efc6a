package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Draft launch", "Draft launch"},
		{"  Draft   launch  ", "Draft launch"},
		{"\tDraft\n launch ", "Draft launch"},
		{"   ", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeTitle(c.in); got != c.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestItemMarshalBuiltinIcon(t *testing.T) {
	it := PlannerItem{
		ID:        "i1",
		ProjectID: "p1",
		Title:     "Weekly catch-up",
		Date:      "2026-09-07",
		Icon:      BuiltinIcon("weekly"),
	}
	data, err := json.Marshal(it)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"icon":"weekly"`) {
		t.Fatalf("expected builtin icon key on the wire, got %s", s)
	}
	if strings.Contains(s, "iconCustom") {
		t.Fatalf("builtin icon must not emit iconCustom, got %s", s)
	}
}

func TestItemMarshalCustomIcon(t *testing.T) {
	it := PlannerItem{
		ID:        "i1",
		ProjectID: "p1",
		Title:     "Board update",
		Date:      "2026-09-07",
		Icon:      CustomIcon("board", "Board Update"),
	}
	data, err := json.Marshal(it)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"iconCustom":{"key":"board","label":"Board Update"}`) {
		t.Fatalf("expected custom icon pair on the wire, got %s", s)
	}
	if strings.Contains(s, `"icon":"`) {
		t.Fatalf("custom icon must clear the builtin key, got %s", s)
	}
}

func TestItemUnmarshalCustomIconWins(t *testing.T) {
	// Legacy writers could leave both fields populated; the custom icon wins.
	blob := []byte(`{
		"id": "i1",
		"projectId": "p1",
		"title": "Review copy",
		"date": "2026-09-03",
		"icon": "review",
		"iconCustom": {"key": "board", "label": "Board Update"}
	}`)

	var it PlannerItem
	if err := json.Unmarshal(blob, &it); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if it.Icon.Kind != IconCustom || it.Icon.Key != "board" {
		t.Fatalf("expected custom icon to win, got %+v", it.Icon)
	}
}

func TestItemRoundTripPreservesFields(t *testing.T) {
	it := PlannerItem{
		ID:        "i1",
		ProjectID: "p1",
		Title:     "Draft launch post",
		Notes:     "needs two rounds",
		Date:      "2026-09-02",
		Assignee:  "Sam",
		Icon:      BuiltinIcon("copy"),
	}
	data, err := json.Marshal(it)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back PlannerItem
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Title != it.Title || back.Notes != it.Notes || back.Assignee != it.Assignee {
		t.Fatalf("round trip lost fields: %+v", back)
	}
	if back.Icon != it.Icon {
		t.Fatalf("round trip lost icon: %+v != %+v", back.Icon, it.Icon)
	}
}
