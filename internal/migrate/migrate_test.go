package migrate

import (
	"strings"
	"testing"

	"github.com/existflow/gridplan/internal/model"
)

func TestLoadEmptyBlobYieldsDefaults(t *testing.T) {
	doc, err := Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Version != CurrentVersion {
		t.Fatalf("expected version %d, got %d", CurrentVersion, doc.Version)
	}
	if len(doc.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(doc.Items))
	}
	if len(doc.Projects) != 2 {
		t.Fatalf("expected default project plus Archived, got %d", len(doc.Projects))
	}
	if _, ok := model.FindProject(doc.Projects, model.ArchivedProjectID); !ok {
		t.Fatal("expected the reserved Archived project")
	}
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	_, err := Load([]byte(`{"version": 99, "items": [], "projects": []}`))
	if err == nil {
		t.Fatal("expected error for newer version")
	}
	if !strings.Contains(err.Error(), "newer than supported") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	if _, err := Load([]byte(`{not json`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestUpgradeV0BuildsProjectsFromNames(t *testing.T) {
	blob := []byte(`{
		"items": [
			{"id": "i1", "project": "Marketing", "title": "Post", "date": "2026-09-01"},
			{"id": "i2", "project": "marketing", "title": "Reel", "date": "2026-09-02"},
			{"id": "i3", "project": "Personal", "title": "Gym", "date": "2026-09-03", "colour": "#F06595"}
		],
		"colourOverrides": {"Marketing": "#1C7ED6"}
	}`)

	doc, err := Load(blob)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(doc.Items) != 3 {
		t.Fatalf("migration must never drop items, got %d of 3", len(doc.Items))
	}

	// Marketing and marketing collapse into one project (case-insensitive).
	byName := map[string]model.Project{}
	for _, p := range doc.Projects {
		byName[p.Name] = p
	}
	marketing, ok := byName["Marketing"]
	if !ok {
		t.Fatalf("expected Marketing project, got %+v", doc.Projects)
	}
	if marketing.Colour != "#1C7ED6" {
		t.Fatalf("expected colour override applied, got %q", marketing.Colour)
	}
	personal, ok := byName["Personal"]
	if !ok || personal.Colour != "#F06595" {
		t.Fatalf("expected Personal with inline colour, got %+v", personal)
	}

	if doc.Items[0].ProjectID != marketing.ID || doc.Items[1].ProjectID != marketing.ID {
		t.Fatal("expected both marketing items to share one project id")
	}
	if doc.Items[2].ProjectID != personal.ID {
		t.Fatal("expected personal item rewritten to the new project id")
	}
}

func TestUpgradeV0DerivesColourWhenNoHint(t *testing.T) {
	doc, err := Load([]byte(`{"items": [{"project": "Ops", "title": "Audit", "date": "2026-09-01"}]}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, p := range doc.Projects {
		if p.Name == "Ops" {
			if len(p.Colour) != 7 || p.Colour[0] != '#' {
				t.Fatalf("expected derived hex colour, got %q", p.Colour)
			}
			return
		}
	}
	t.Fatal("expected an Ops project")
}

func TestUpgradeV0FillsMissingFields(t *testing.T) {
	doc, err := Load([]byte(`{"items": [{"project": "Ops", "title": "No date or id"}]}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	it := doc.Items[0]
	if it.ID == "" {
		t.Fatal("expected generated item id")
	}
	if it.Date == "" {
		t.Fatal("expected default date")
	}
}

func TestUpgradeV0CustomIconNeedsKey(t *testing.T) {
	blob := []byte(`{
		"items": [
			{"project": "Ops", "title": "A", "date": "2026-09-01", "iconCustom": {"key": "", "label": "Orphan label"}},
			{"project": "Ops", "title": "B", "date": "2026-09-01", "icon": "review", "iconCustom": {"key": "board", "label": "Board"}}
		]
	}`)
	doc, err := Load(blob)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Items[0].Icon.Kind != model.IconNone {
		t.Fatalf("custom icon without key must be dropped, got %+v", doc.Items[0].Icon)
	}
	if doc.Items[1].Icon.Kind != model.IconCustom || doc.Items[1].Icon.Key != "board" {
		t.Fatalf("expected custom icon to win over builtin, got %+v", doc.Items[1].Icon)
	}
}

func TestUpgradeV0EmptyYieldsDefaultProject(t *testing.T) {
	doc, err := Load([]byte(`{"items": []}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	names := make([]string, 0, len(doc.Projects))
	for _, p := range doc.Projects {
		names = append(names, p.Name)
	}
	if len(doc.Projects) != 2 {
		t.Fatalf("expected default plus Archived, got %v", names)
	}
}

func TestNormalizeArchivedMergesImpostor(t *testing.T) {
	blob := []byte(`{
		"version": 1,
		"projects": [
			{"id": "p1", "name": "Marketing", "colour": "#1C7ED6"},
			{"id": "fake-archive", "name": "archived", "colour": "#000000"}
		],
		"items": [
			{"id": "i1", "projectId": "fake-archive", "title": "Old stuff", "date": "2026-01-15"}
		]
	}`)

	doc, err := Load(blob)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, ok := model.FindProject(doc.Projects, "fake-archive"); ok {
		t.Fatal("expected impostor Archived project merged away")
	}
	if _, ok := model.FindProject(doc.Projects, model.ArchivedProjectID); !ok {
		t.Fatal("expected the reserved Archived project")
	}
	if doc.Items[0].ProjectID != model.ArchivedProjectID {
		t.Fatalf("expected item repointed to reserved id, got %q", doc.Items[0].ProjectID)
	}
}

func TestNormalizeArchivedDeduplicatesIDs(t *testing.T) {
	blob := []byte(`{
		"version": 2,
		"projects": [
			{"id": "p1", "name": "Marketing"},
			{"id": "p1", "name": "Marketing copy"},
			{"id": "sys-archived", "name": "Archived"}
		],
		"items": []
	}`)

	doc, err := Load(blob)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	count := 0
	for _, p := range doc.Projects {
		if p.ID == "p1" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected duplicate ids collapsed, got %d", count)
	}
}

func TestMarshalStampsCurrentVersion(t *testing.T) {
	doc, err := Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	doc.Version = 0

	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	back, err := Load(data)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if back.Version != CurrentVersion {
		t.Fatalf("expected stamped version %d, got %d", CurrentVersion, back.Version)
	}
}

func TestLoadIdempotentAcrossRoundTrips(t *testing.T) {
	first, err := Load([]byte(`{
		"items": [{"project": "Marketing", "title": "Post", "date": "2026-09-01"}]
	}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	data, err := Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := Load(data)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}

	if len(second.Projects) != len(first.Projects) || len(second.Items) != len(first.Items) {
		t.Fatalf("round trip changed shape: %d/%d projects, %d/%d items",
			len(first.Projects), len(second.Projects), len(first.Items), len(second.Items))
	}
}
