package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/gridplan/internal/dates"
	"github.com/existflow/gridplan/internal/model"
	"github.com/existflow/gridplan/internal/selector"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sidebar := m.renderSidebar()
	calendar := m.renderCalendar()
	statusBar := m.renderStatusBar()

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, calendar)

	// Add modal if in input mode
	if m.mode == ModeAddItem || m.mode == ModeAddProject || m.mode == ModeEditItem {
		modal := m.renderModal()
		mainContent = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			modal,
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	if m.mode == ModeHelp {
		mainContent = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, statusBar)
}

func (m Model) renderSidebar() string {
	sidebarWidth := 26
	st := m.store.Snapshot()
	usage := selector.ProjectUsage(st.Items)

	var s string

	now := time.Now().Format("15:04:05")
	s += lipgloss.NewStyle().Bold(true).Foreground(Primary).Render("GridPlan") + "\n"
	s += HelpStyle.Render(now) + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render("─────────────────────") + "\n\n"

	for i, p := range st.Projects {
		cursor := "  "
		style := ProjectItemStyle
		if i == m.projCursor && m.pane == PaneSidebar {
			cursor = "❯ "
			style = ProjectItemSelectedStyle
		}

		mark := "○"
		if projectVisible(st.Filters, p) {
			mark = "●"
		} else {
			style = ProjectHiddenStyle
		}

		line := fmt.Sprintf("%s%s %s %-10s %d", cursor, mark, ProjectDot(p.Colour), truncate(p.Name, 10), usage[p.ID])
		s += style.Render(line) + "\n"
	}

	s += "\n" + lipgloss.NewStyle().Foreground(Border).Render("─────────────────────") + "\n"
	s += HelpStyle.Render("enter toggle  A all") + "\n"
	s += HelpStyle.Render("p new project")

	return SidebarStyle.Width(sidebarWidth).Height(m.height - 2).Render(s)
}

// projectVisible reports whether a project's items show under the filters.
func projectVisible(f model.Filters, p model.Project) bool {
	if f.Mode == model.FilterAll {
		return !p.IsArchived()
	}
	for _, id := range f.ProjectIDs {
		if id == p.ID {
			return true
		}
	}
	return false
}

func (m Model) renderCalendar() string {
	width := m.width - 28
	st := m.store.Snapshot()

	var s string
	switch st.View {
	case model.ViewYear:
		s = m.renderYear(width)
	case model.ViewMonth:
		s = m.renderMonth(width)
	case model.ViewWeek:
		s = m.renderWeek(width)
	case model.ViewDay:
		s = m.renderDay(width)
	}

	return CalendarStyle.Width(width).Height(m.height - 2).Render(s)
}

func (m Model) renderYear(width int) string {
	focused := m.focusedTime()

	counts := make(map[time.Month]int)
	for _, it := range m.visibleItems() {
		if t, err := parseDay(it.Date); err == nil && t.Year() == focused.Year() {
			counts[t.Month()]++
		}
	}

	var s string
	s += HeaderStyle.Render(fmt.Sprintf("%d", focused.Year())) + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("─", max(width-4, 1))) + "\n\n"

	for month := time.January; month <= time.December; month++ {
		style := ItemStyle
		if month == focused.Month() {
			style = ItemSelectedStyle
		}
		bar := strings.Repeat("▪", min(counts[month], 30))
		s += style.Render(fmt.Sprintf("%-10s %3d %s", month.String(), counts[month], bar)) + "\n"
	}

	s += "\n" + HelpStyle.Render("[/]:year  m:month view")
	return s
}

func (m Model) renderMonth(width int) string {
	st := m.store.Snapshot()
	focused := m.focusedTime()
	today := dates.Today()

	grouped := selector.GroupByDate(m.visibleItems())

	var s string
	s += HeaderStyle.Render(focused.Format("January 2006")) + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("─", max(width-4, 1))) + "\n\n"

	// Weekday header, Monday first
	var head string
	for _, wd := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		head += DayMutedStyle.Render(wd)
	}
	s += head + "\n"

	for _, week := range dates.MonthMatrix(focused) {
		var row string
		for _, day := range week {
			date := dates.Format(day)
			n := len(grouped[date])

			cell := fmt.Sprintf("%2d", day.Day())
			if n > 0 {
				cell += fmt.Sprintf(" ·%d", n)
			}

			style := DayStyle
			switch {
			case date == st.FocusedDate:
				style = DayFocusedStyle
			case date == today:
				style = DayTodayStyle
			case !dates.SameMonth(day, focused):
				style = DayMutedStyle
			}
			row += style.Render(cell)
		}
		s += row + "\n"
	}

	// Focused day items below the grid
	s += "\n" + lipgloss.NewStyle().Bold(true).Render(st.FocusedDate) + "\n"
	s += m.renderItemList(m.focusedItems(), width)

	return s
}

func (m Model) renderWeek(width int) string {
	st := m.store.Snapshot()
	focused := m.focusedTime()
	grouped := selector.GroupByDate(m.visibleItems())

	start, end := dates.WeekRange(focused)

	var s string
	header := fmt.Sprintf("Week of %s – %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	s += HeaderStyle.Render(header) + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("─", max(width-4, 1))) + "\n\n"

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := dates.Format(day)
		label := day.Format("Mon Jan 2")

		style := lipgloss.NewStyle().Bold(true)
		if date == st.FocusedDate {
			style = style.Foreground(Highlight)
		}
		s += style.Render(label) + "\n"

		items := grouped[date]
		if len(items) == 0 {
			s += HelpStyle.Render("  —") + "\n"
			continue
		}
		if date == st.FocusedDate {
			s += m.renderItemList(items, width)
		} else {
			for _, it := range items {
				s += ItemStyle.Render("  "+m.itemLine(it, width-6)) + "\n"
			}
		}
	}

	return s
}

func (m Model) renderDay(width int) string {
	focused := m.focusedTime()

	var s string
	s += HeaderStyle.Render(focused.Format("Monday, January 2, 2006")) + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("─", max(width-4, 1))) + "\n\n"

	items := m.focusedItems()
	if len(items) == 0 {
		s += HelpStyle.Render("  No items. Press 'a' to add one.")
		return s
	}
	s += m.renderItemList(items, width)
	return s
}

// renderItemList renders the focused day's items with the item cursor.
func (m Model) renderItemList(items []model.PlannerItem, width int) string {
	if len(items) == 0 {
		return HelpStyle.Render("  No items. Press 'a' to add one.") + "\n"
	}

	var s string
	for i, it := range items {
		cursor := "  "
		style := ItemStyle
		if i == m.itemCursor && m.pane == PaneCalendar {
			cursor = "❯ "
			style = ItemSelectedStyle
		}
		s += style.Render(cursor+m.itemLine(it, width-8)) + "\n"
	}
	return s
}

func (m Model) itemLine(it model.PlannerItem, width int) string {
	st := m.store.Snapshot()

	dot := "·"
	if p, ok := model.FindProject(st.Projects, it.ProjectID); ok {
		dot = ProjectDot(p.Colour)
	}

	line := fmt.Sprintf("%s %s", dot, truncate(it.Title, max(width-20, 10)))
	if label := it.Icon.DisplayLabel(); label != "" {
		line += HelpStyle.Render(" [" + label + "]")
	}
	if it.Assignee != "" {
		line += HelpStyle.Render(" @" + it.Assignee)
	}
	return line
}

func (m Model) renderStatusBar() string {
	st := m.store.Snapshot()

	// When in search mode, show inline search input (like vim)
	if m.mode == ModeSearch {
		n := len(m.visibleItems())
		return StatusBarStyle.Width(m.width).Render(fmt.Sprintf("/%s [%d match(es)]", m.input.View(), n))
	}

	help := "m/w/d/y:view  [/]:period  t:today  a:add  e:edit  x:del  u:undo  /:search  ?:help  q:quit"
	if st.Filters.Search != "" {
		help = fmt.Sprintf("/%s  [%d matches]  Esc:clear", st.Filters.Search, len(m.visibleItems()))
	} else if m.message != "" {
		help = m.message
	}

	// Append sync status (right aligned)
	syncMsg := ""
	if m.adapter != nil {
		syncMsg = "Sync on"
	}

	if syncMsg != "" {
		avail := m.width - len(help) - len(syncMsg) - 2
		if avail > 0 {
			help += strings.Repeat(" ", avail) + syncMsg
		} else {
			help += " " + syncMsg
		}
	}

	return StatusBarStyle.Width(m.width).Render(help)
}

func (m Model) renderModal() string {
	st := m.store.Snapshot()

	title := "Add Item"
	switch m.mode {
	case ModeAddProject:
		title = "New Project"
	case ModeEditItem:
		title = "Edit Item"
	}

	if m.mode == ModeAddItem {
		name := ""
		if p, ok := model.FindProject(st.Projects, m.addTargetProject()); ok {
			name = p.Name
		}
		title = fmt.Sprintf("Add Item to %s on %s", name, st.FocusedDate)
	}

	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n"
	content += m.input.View() + "\n\n"
	content += HelpStyle.Render("Enter:save  Esc:cancel")

	return ModalStyle.Render(content)
}

func (m Model) renderHelp() string {
	help := `
╭─── Keyboard Shortcuts ────╮
│                           │
│  Navigation               │
│  ──────────               │
│  h/←     Previous day     │
│  l/→     Next day         │
│  j/k     Down/up          │
│  [ / ]   Prev/next period │
│  t       Jump to today    │
│  Tab     Switch pane      │
│                           │
│  Views                    │
│  ─────                    │
│  m w d y Month/week/      │
│          day/year view    │
│                           │
│  Actions                  │
│  ───────                  │
│  a       Add item         │
│  e       Edit item        │
│  x       Delete item      │
│  u       Undo delete      │
│  p       New project      │
│  Enter   Toggle project   │
│  A       Show all         │
│  /       Search           │
│                           │
│  Other                    │
│  ─────                    │
│  ?       Toggle help      │
│  q       Quit             │
│                           │
╰───────────────────────────╯

     Press any key to close
`
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, help)
}
