package tui

import "github.com/charmbracelet/lipgloss"

// Color palette based on TUI design
var (
	// Status colors
	SyncOK      = lipgloss.Color("#95E1A3") // Green
	SyncPending = lipgloss.Color("#FFE66D") // Yellow
	SyncError   = lipgloss.Color("#FF6B6B") // Red

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
	Highlight = lipgloss.Color("#4ECDC4")
	TodayMark = lipgloss.Color("#FFB347")
)

// Styles
var (
	// Header
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	// Sidebar
	SidebarStyle = lipgloss.NewStyle().
			Width(24).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(Border).
			Padding(1, 1)

	// Calendar pane
	CalendarStyle = lipgloss.NewStyle().
			Padding(1, 2)

	// Project rows
	ProjectItemStyle = lipgloss.NewStyle().
				Padding(0, 1)

	ProjectItemSelectedStyle = lipgloss.NewStyle().
					Padding(0, 1).
					Background(Surface).
					Bold(true)

	ProjectHiddenStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(TextMuted)

	// Item rows
	ItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	ItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	// Calendar cells
	DayStyle = lipgloss.NewStyle().
			Width(9).
			Align(lipgloss.Left)

	DayFocusedStyle = lipgloss.NewStyle().
			Width(9).
			Align(lipgloss.Left).
			Background(Surface).
			Bold(true)

	DayMutedStyle = lipgloss.NewStyle().
			Width(9).
			Align(lipgloss.Left).
			Foreground(TextMuted)

	DayTodayStyle = lipgloss.NewStyle().
			Width(9).
			Align(lipgloss.Left).
			Foreground(TodayMark).
			Bold(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	// Input modal
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// ProjectDot renders a coloured marker for a project.
func ProjectDot(colour string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(colour)).Render("●")
}
