package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/gridplan/internal/config"
	"github.com/existflow/gridplan/internal/db"
	"github.com/existflow/gridplan/internal/logger"
	"github.com/existflow/gridplan/internal/model"
	"github.com/existflow/gridplan/internal/selector"
	"github.com/existflow/gridplan/internal/store"
	"github.com/existflow/gridplan/internal/sync"
)

// Pane represents which pane is focused
type Pane int

const (
	PaneSidebar Pane = iota
	PaneCalendar
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddItem
	ModeAddProject
	ModeEditItem
	ModeSearch
	ModeHelp
)

// Model is the main TUI model
type Model struct {
	db    *db.DB
	store *store.Store
	cfg   *config.Config

	// Sync
	syncClient      *sync.Client
	adapter         *sync.Adapter
	syncRefreshChan chan struct{} // Channel to trigger UI refresh on remote pull

	// UI state
	width      int
	height     int
	pane       Pane
	mode       Mode
	projCursor int
	itemCursor int

	// Input
	input textinput.Model

	// Item being edited in ModeEditItem
	editID string

	message string

	unsave func()
}

// NewModel creates a new TUI model
func NewModel(database *db.DB, cfg *config.Config) Model {
	logger.Info("Initializing TUI model")

	ti := textinput.New()
	ti.Placeholder = "Enter item..."
	ti.CharLimit = 256
	ti.Width = 50

	state, err := database.LoadState()
	if err != nil {
		logger.Error("Failed to load planner state", logger.F("error", err))
	}

	s := store.New(state)
	s.SetView(model.ParseView(cfg.DefaultView))

	m := Model{
		db:              database,
		store:           s,
		cfg:             cfg,
		pane:            PaneCalendar,
		mode:            ModeNormal,
		input:           ti,
		syncRefreshChan: make(chan struct{}, 1), // Buffered to avoid blocking
		unsave:          database.Autosave(s),
	}

	// Initialize sync
	sClient, err := sync.NewClient()
	if err == nil && sClient.IsLoggedIn() {
		logger.Info("Sync client initialized and logged in")
		m.syncClient = sClient
		m.adapter = sync.NewAdapter(sClient, s)

		// Set callback to signal UI refresh when remote changes are pulled
		m.adapter.SetOnPull(func() {
			logger.Debug("Sync pull callback triggered")
			// Non-blocking send to trigger UI refresh
			select {
			case m.syncRefreshChan <- struct{}{}:
			default:
			}
		})

		m.adapter.Start()
	} else if err != nil {
		logger.Debug("Sync client not initialized", logger.F("error", err))
	} else {
		logger.Debug("Sync client not logged in")
	}

	logger.Debug("TUI model initialized",
		logger.F("projects", len(s.Snapshot().Projects)),
		logger.F("items", len(s.Snapshot().Items)))
	return m
}

// visibleItems returns the items passing the active filters, in date order.
func (m Model) visibleItems() []model.PlannerItem {
	st := m.store.Snapshot()
	return selector.FilteredItems(st.Items, st.Filters, st.Projects)
}

// focusedItems returns the visible items on the focused day.
func (m Model) focusedItems() []model.PlannerItem {
	st := m.store.Snapshot()
	var out []model.PlannerItem
	for _, it := range m.visibleItems() {
		if it.Date == st.FocusedDate {
			out = append(out, it)
		}
	}
	return out
}

func (m Model) currentProject() *model.Project {
	projects := m.store.Snapshot().Projects
	if m.projCursor < len(projects) {
		p := projects[m.projCursor]
		return &p
	}
	return nil
}

func (m Model) currentItem() *model.PlannerItem {
	items := m.focusedItems()
	if m.itemCursor < len(items) {
		it := items[m.itemCursor]
		return &it
	}
	return nil
}

func (m Model) focusedTime() time.Time {
	t, err := parseDay(m.store.Snapshot().FocusedDate)
	if err != nil {
		return time.Now()
	}
	return t
}
