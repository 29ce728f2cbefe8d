package tui

import "github.com/charmbracelet/lipgloss"

// One Dark Pro color palette
var (
	// Background colors
	ColorBgPrimary   = lipgloss.Color("#282C34")
	ColorBgHighlight = lipgloss.Color("#2C313C")

	// Foreground colors
	ColorFgPrimary = lipgloss.Color("#ABB2BF")
	ColorFgMuted   = lipgloss.Color("#636B78")
	ColorFgComment = lipgloss.Color("#5C6370")

	// Syntax colors
	ColorRed     = lipgloss.Color("#E06C75")
	ColorGreen   = lipgloss.Color("#98C379")
	ColorYellow  = lipgloss.Color("#E5C07B")
	ColorBlue    = lipgloss.Color("#61AFEF")
	ColorMagenta = lipgloss.Color("#C678DD")
	ColorCyan    = lipgloss.Color("#56B6C2")
	ColorOrange  = lipgloss.Color("#D19A66")

	// UI colors
	ColorBorder = lipgloss.Color("#3F4451")
)

// Component styles
var (
	// Header bar
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true).
			PaddingLeft(1)

	// Widget panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	PanelActiveStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBlue).
				Padding(0, 1)

	PanelTitleStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	// Deadline list
	OverdueStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	DueSoonStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	// Table rows
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorCyan).
				Bold(true)

	TableRowStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorFgPrimary).
				Background(ColorBgHighlight)

	// Workload bars
	BarStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	BarLabelStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	// Timeline
	TimelineSpanStyle = lipgloss.NewStyle().
				Foreground(ColorBlue)

	TimelineDoneStyle = lipgloss.NewStyle().
				Foreground(ColorFgMuted)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1).
			PaddingRight(1)

	// Errors and notices
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment)
)
