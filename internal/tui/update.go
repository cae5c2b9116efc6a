package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/gridplan/internal/colour"
	"github.com/existflow/gridplan/internal/dates"
	"github.com/existflow/gridplan/internal/model"
	"github.com/existflow/gridplan/internal/store"
)

// tickMsg is sent every second for time updates
type tickMsg time.Time

// syncRefreshMsg is sent when remote changes are pulled
type syncRefreshMsg struct{}

// Init initializes the model with a tick command
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.waitForSyncRefresh())
}

func tickCmd() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForSyncRefresh listens for sync refresh signals
func (m Model) waitForSyncRefresh() tea.Cmd {
	if m.syncRefreshChan == nil {
		return nil
	}
	return func() tea.Msg {
		<-m.syncRefreshChan
		return syncRefreshMsg{}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		// Continue ticking for time updates
		return m, tickCmd()

	case syncRefreshMsg:
		m.clampCursors()
		m.message = "Synced from cloud"
		return m, m.waitForSyncRefresh()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Handle mode-specific input
		switch m.mode {
		case ModeAddItem, ModeAddProject, ModeEditItem:
			return m.updateInput(msg)
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}

		// Normal mode key handling
		return m.handleNormalKeys(msg)
	}

	return m, cmd
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, m.quit()

	case key.Matches(msg, keys.Tab):
		if m.pane == PaneSidebar {
			m.pane = PaneCalendar
		} else {
			m.pane = PaneSidebar
		}

	case key.Matches(msg, keys.Up):
		m.handleUp()

	case key.Matches(msg, keys.Down):
		m.handleDown()

	case key.Matches(msg, keys.Left):
		if m.pane == PaneCalendar {
			m.moveFocus(0, 0, -1)
		} else {
			m.pane = PaneCalendar
		}

	case key.Matches(msg, keys.Right):
		if m.pane == PaneCalendar {
			m.moveFocus(0, 0, 1)
		}

	case key.Matches(msg, keys.Prev):
		m.shiftPeriod(-1)

	case key.Matches(msg, keys.Next):
		m.shiftPeriod(1)

	case key.Matches(msg, keys.Today):
		m.store.SetReferenceDate(dates.Today())
		m.store.SetFocusedDate(dates.Today())
		m.itemCursor = 0

	case msg.String() == "m":
		m.store.SetView(model.ViewMonth)
	case msg.String() == "w":
		m.store.SetView(model.ViewWeek)
	case msg.String() == "d":
		m.store.SetView(model.ViewDay)
	case msg.String() == "y":
		m.store.SetView(model.ViewYear)

	case key.Matches(msg, keys.Add):
		return m.startAddItem()

	case key.Matches(msg, keys.Project):
		return m.startAddProject()

	case key.Matches(msg, keys.Edit):
		return m.startEditItem()

	case key.Matches(msg, keys.Delete):
		m.handleDelete()

	case key.Matches(msg, keys.Undo):
		m.handleUndo()

	case key.Matches(msg, keys.Enter):
		m.handleEnter()

	case key.Matches(msg, keys.ShowAll):
		m.store.SelectAllProjects()
		m.message = "Showing all projects"

	case key.Matches(msg, keys.Search):
		return m.startSearch()

	case key.Matches(msg, keys.Escape):
		st := m.store.Snapshot()
		if st.Filters.Search != "" {
			m.store.SetFilters(func(f model.Filters) model.Filters {
				f.Search = ""
				return f
			})
			m.message = "Search cleared"
		}

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp

	case key.Matches(msg, keys.Logout):
		m.handleLogout()

	case key.Matches(msg, keys.Refresh):
		m.handleRefresh()
	}

	return m, nil
}

// quit flushes pending sync work and closes observers before exiting.
func (m Model) quit() tea.Cmd {
	if m.adapter != nil {
		if err := m.adapter.PushNowIfPending(); err != nil {
			// Already logged by the adapter; nothing the UI can do here.
			_ = err
		}
		m.adapter.Stop()
	}
	if m.unsave != nil {
		m.unsave()
	}
	return tea.Quit
}

func (m *Model) handleUp() {
	if m.pane == PaneSidebar {
		if m.projCursor > 0 {
			m.projCursor--
		}
		return
	}
	st := m.store.Snapshot()
	if st.View == model.ViewDay || st.View == model.ViewWeek {
		if m.itemCursor > 0 {
			m.itemCursor--
		}
		return
	}
	m.moveFocus(0, 0, -7)
}

func (m *Model) handleDown() {
	if m.pane == PaneSidebar {
		if m.projCursor < len(m.store.Snapshot().Projects)-1 {
			m.projCursor++
		}
		return
	}
	st := m.store.Snapshot()
	if st.View == model.ViewDay || st.View == model.ViewWeek {
		if m.itemCursor < len(m.focusedItems())-1 {
			m.itemCursor++
		}
		return
	}
	m.moveFocus(0, 0, 7)
}

// moveFocus shifts the focused date by years, months and days, keeping the
// reference date on the same period.
func (m *Model) moveFocus(years, months, days int) {
	next := m.focusedTime().AddDate(years, months, days)
	m.store.SetFocusedDate(dates.Format(next))
	m.store.SetReferenceDate(dates.Format(next))
	m.itemCursor = 0
}

// shiftPeriod moves one whole period in the current view.
func (m *Model) shiftPeriod(dir int) {
	switch m.store.Snapshot().View {
	case model.ViewYear:
		m.moveFocus(dir, 0, 0)
	case model.ViewMonth:
		m.moveFocus(0, dir, 0)
	case model.ViewWeek:
		m.moveFocus(0, 0, 7*dir)
	case model.ViewDay:
		m.moveFocus(0, 0, dir)
	}
}

// handleEnter toggles project visibility in the sidebar.
func (m *Model) handleEnter() {
	if m.pane != PaneSidebar {
		return
	}
	p := m.currentProject()
	if p == nil {
		return
	}
	m.store.ToggleProjectVisibility(p.ID)
	m.message = fmt.Sprintf("Toggled: %s", p.Name)
}

func (m Model) startAddItem() (tea.Model, tea.Cmd) {
	m.mode = ModeAddItem
	m.input.SetValue("")
	m.input.Placeholder = "Enter item..."
	m.input.Focus()
	return m, textinput.Blink
}

func (m Model) startAddProject() (tea.Model, tea.Cmd) {
	m.mode = ModeAddProject
	m.input.SetValue("")
	m.input.Placeholder = "Enter project name..."
	m.input.Focus()
	return m, textinput.Blink
}

func (m Model) startEditItem() (tea.Model, tea.Cmd) {
	it := m.currentItem()
	if it == nil {
		return m, nil
	}
	m.mode = ModeEditItem
	m.editID = it.ID
	m.input.SetValue(it.Title)
	m.input.Placeholder = "Edit item..."
	m.input.Focus()
	m.input.CursorEnd()
	return m, textinput.Blink
}

func (m Model) startSearch() (tea.Model, tea.Cmd) {
	m.mode = ModeSearch
	m.input.SetValue(m.store.Snapshot().Filters.Search)
	m.input.Placeholder = "/"
	m.input.Focus()
	return m, textinput.Blink
}

func (m *Model) handleDelete() {
	it := m.currentItem()
	if it == nil {
		return
	}
	m.store.DeleteItem(it.ID)
	m.clampCursors()
	m.message = fmt.Sprintf("Deleted: %s (u to undo)", truncate(it.Title, 30))
}

func (m *Model) handleUndo() {
	if !m.store.HasUndo() {
		m.message = "Nothing to undo"
		return
	}
	m.store.RestoreLastDeleted()
	m.message = "Restored last deleted item"
}

func (m *Model) handleLogout() {
	if m.syncClient != nil {
		if err := m.syncClient.Logout(); err != nil {
			m.message = fmt.Sprintf("Logout error: %v", err)
		} else {
			if m.adapter != nil {
				m.adapter.Stop()
				m.adapter = nil
			}
			m.syncClient = nil
			m.message = "Logged out successfully"
		}
	} else {
		m.message = "Not logged in"
	}
}

func (m *Model) handleRefresh() {
	if m.adapter != nil {
		if err := m.adapter.PushNowIfPending(); err != nil {
			m.message = fmt.Sprintf("Sync error: %v", err)
		} else {
			m.message = "Synced"
		}
	} else {
		m.message = "Not logged in - use 'gridplan auth login' first"
	}
}

func (m *Model) clampCursors() {
	if n := len(m.store.Snapshot().Projects); m.projCursor >= n && m.projCursor > 0 {
		m.projCursor = n - 1
	}
	if n := len(m.focusedItems()); m.itemCursor >= n && m.itemCursor > 0 {
		m.itemCursor = n - 1
	}
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.Enter):
		value := m.input.Value()
		if value == "" {
			m.mode = ModeNormal
			return m, nil
		}

		switch m.mode {
		case ModeAddItem:
			st := m.store.Snapshot()
			projectID := m.addTargetProject()
			if projectID == "" {
				m.message = "No project to add to"
				break
			}
			_, err := m.store.UpsertItem(store.ItemInput{
				ProjectID: projectID,
				Title:     value,
				Date:      st.FocusedDate,
			})
			if err != nil {
				m.message = fmt.Sprintf("Error adding item: %v", err)
			} else {
				m.message = fmt.Sprintf("Added: %s", value)
			}

		case ModeAddProject:
			m.store.AddProject(value, colour.Derive(value))
			m.message = fmt.Sprintf("Created project: %s", value)

		case ModeEditItem:
			st := m.store.Snapshot()
			for _, it := range st.Items {
				if it.ID != m.editID {
					continue
				}
				_, err := m.store.UpsertItem(store.ItemInput{
					ID:              it.ID,
					ProjectID:       it.ProjectID,
					Title:           value,
					Notes:           it.Notes,
					Date:            it.Date,
					Assignee:        it.Assignee,
					Icon:            builtinKey(it.Icon),
					IconCustomKey:   customKey(it.Icon),
					IconCustomLabel: customLabel(it.Icon),
				})
				if err != nil {
					m.message = fmt.Sprintf("Error updating item: %v", err)
				} else {
					m.message = fmt.Sprintf("Updated: %s", value)
				}
				break
			}
		}

		m.mode = ModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// addTargetProject picks the project a new item goes to: the sidebar
// selection when it is not Archived, otherwise the first selectable project.
func (m Model) addTargetProject() string {
	st := m.store.Snapshot()
	if p := m.currentProject(); p != nil && !p.IsArchived() {
		return p.ID
	}
	for _, p := range st.Projects {
		if !p.IsArchived() {
			return p.ID
		}
	}
	return ""
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.store.SetFilters(func(f model.Filters) model.Filters {
			f.Search = ""
			return f
		})
		return m, nil

	case key.Matches(msg, keys.Enter):
		m.mode = ModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	// Live filter as user types
	query := m.input.Value()
	m.store.SetFilters(func(f model.Filters) model.Filters {
		f.Search = query
		return f
	})
	m.clampCursors()
	return m, cmd
}

func builtinKey(i model.Icon) string {
	if i.Kind == model.IconBuiltin {
		return i.Key
	}
	return ""
}

func customKey(i model.Icon) string {
	if i.Kind == model.IconCustom {
		return i.Key
	}
	return ""
}

func customLabel(i model.Icon) string {
	if i.Kind == model.IconCustom {
		return i.Label
	}
	return ""
}
