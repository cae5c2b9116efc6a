package sync

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/existflow/gridplan/internal/model"
	"github.com/existflow/gridplan/internal/store"
)

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	return &Client{
		config: &Config{
			ServerURL: serverURL,
			Token:     "test-token",
			UserID:    "u1",
		},
		configPath: filepath.Join(t.TempDir(), "sync.json"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func testState() store.State {
	s := store.New(store.State{Projects: []model.Project{
		{ID: "p1", Name: "Marketing", Colour: "#1C7ED6"},
	}})
	s.UpsertItem(store.ItemInput{ProjectID: "p1", Title: "Draft launch post", Date: "2026-09-03"})
	return s.Snapshot()
}

func TestPushMirrorsFullState(t *testing.T) {
	var got PushRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/sync" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			t.Errorf("missing bearer token, got %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode push: %v", err)
		}
		json.NewEncoder(w).Encode(PushResponse{Version: 7})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	version, err := c.Push(testState())
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	if version != 7 {
		t.Fatalf("version = %d, want 7", version)
	}
	if c.config.LastVersion != 7 {
		t.Fatalf("last version not recorded, got %d", c.config.LastVersion)
	}

	if got.Encrypted {
		t.Fatal("push marked encrypted without a key")
	}
	// Archived is ensured by the store, so two projects travel.
	if len(got.Projects) != 2 || len(got.Items) != 1 {
		t.Fatalf("push carried %d projects, %d items", len(got.Projects), len(got.Items))
	}

	raw, err := base64.StdEncoding.DecodeString(got.Items[0].Payload)
	if err != nil {
		t.Fatalf("payload not base64: %v", err)
	}
	var it model.PlannerItem
	if err := json.Unmarshal(raw, &it); err != nil {
		t.Fatalf("payload not an item document: %v", err)
	}
	if it.Title != "Draft launch post" || it.Date != "2026-09-03" {
		t.Fatalf("item payload mangled: %+v", it)
	}
}

func TestPushRequiresLogin(t *testing.T) {
	c := newTestClient(t, "http://localhost:0")
	c.config.Token = ""
	if _, err := c.Push(testState()); err == nil {
		t.Fatal("expected error when logged out")
	}
}

func TestPullDecodesRemoteDocuments(t *testing.T) {
	st := testState()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := PullResponse{Version: 12}
		for _, p := range st.Projects {
			raw, _ := json.Marshal(p)
			resp.Projects = append(resp.Projects, Record{ClientID: p.ID, Payload: base64.StdEncoding.EncodeToString(raw)})
		}
		for _, it := range st.Items {
			raw, _ := json.Marshal(it)
			resp.Items = append(resp.Items, Record{ClientID: it.ID, Payload: base64.StdEncoding.EncodeToString(raw)})
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	projects, items, version, err := c.Pull()
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	if version != 12 {
		t.Fatalf("version = %d, want 12", version)
	}
	if len(projects) != len(st.Projects) || len(items) != 1 {
		t.Fatalf("pulled %d projects, %d items", len(projects), len(items))
	}
	if items[0].Title != "Draft launch post" {
		t.Fatalf("item mangled in transit: %+v", items[0])
	}
}

func TestPullSkipsUnreadableRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		good, _ := json.Marshal(model.Project{ID: "p1", Name: "Marketing"})
		json.NewEncoder(w).Encode(PullResponse{
			Projects: []Record{
				{ClientID: "bad", Payload: "%%not-base64%%"},
				{ClientID: "p1", Payload: base64.StdEncoding.EncodeToString(good)},
			},
			Version: 1,
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	projects, _, _, err := c.Pull()
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != "p1" {
		t.Fatalf("expected the readable record only, got %+v", projects)
	}
}

func TestPullEncryptedWithoutKeyFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(PullResponse{Encrypted: true, Version: 3})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, _, _, err := c.Pull(); err == nil {
		t.Fatal("expected error pulling encrypted data without a key")
	}
}

func TestEncryptedPushPullRoundTrip(t *testing.T) {
	var stored PushRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			json.NewDecoder(r.Body).Decode(&stored)
			json.NewEncoder(w).Encode(PushResponse{Version: 1})
		case http.MethodGet:
			json.NewEncoder(w).Encode(PullResponse{
				Projects:  stored.Projects,
				Items:     stored.Items,
				Encrypted: stored.Encrypted,
				Version:   1,
			})
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.SetupEncryption("hunter2hunter2"); err != nil {
		t.Fatalf("setup encryption: %v", err)
	}

	if _, err := c.Push(testState()); err != nil {
		t.Fatalf("push: %v", err)
	}
	if !stored.Encrypted {
		t.Fatal("push not marked encrypted")
	}
	// Sealed payloads must not be plain base64 JSON.
	if raw, err := base64.StdEncoding.DecodeString(stored.Items[0].Payload); err == nil {
		var it model.PlannerItem
		if json.Unmarshal(raw, &it) == nil && it.Title != "" {
			t.Fatal("item payload readable without the key")
		}
	}

	_, items, _, err := c.Pull()
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Draft launch post" {
		t.Fatalf("encrypted round trip lost the item: %+v", items)
	}
}
