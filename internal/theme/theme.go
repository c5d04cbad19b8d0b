package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// DetailPanelStyle wraps the detail view content area.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// BorderStyle provides a standard rounded border for panels.
var BorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// StageStyle returns a color-coded style for a case stage label. Stages
// progress from blue (filed) through green (archived).
func StageStyle(stage string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch stage {
	case "Petição Inicial":
		return base.Foreground(ColorBlue)
	case "Instrução":
		return base.Foreground(ColorYellow)
	case "Sentença":
		return base.Foreground(ColorMagenta)
	case "Recurso":
		return base.Foreground(ColorOrange)
	case "Execução":
		return base.Foreground(ColorRed)
	case "Arquivado":
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}

// UrgencyStyle returns a style for a deadline alert based on how many
// days remain. Overdue and same-day deadlines are red, the coming week
// orange, everything further out yellow.
func UrgencyStyle(dayOffset int) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch {
	case dayOffset <= 0:
		return base.Foreground(ColorRed)
	case dayOffset <= 7:
		return base.Foreground(ColorOrange)
	default:
		return base.Foreground(ColorYellow)
	}
}

// AlertTypeStyle returns a color-coded style for the alert type label.
func AlertTypeStyle(alertType string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch alertType {
	case "deadline":
		return base.Foreground(ColorRed)
	case "notice":
		return base.Foreground(ColorOrange)
	case "publication":
		return base.Foreground(ColorBlue)
	case "ruling":
		return base.Foreground(ColorMagenta)
	default:
		return base.Foreground(ColorGray)
	}
}

// ContactTypeStyle returns a color-coded style for the contact type label.
func ContactTypeStyle(contactType string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch contactType {
	case "parte":
		return base.Foreground(ColorBlue)
	case "advogado":
		return base.Foreground(ColorMagenta)
	default:
		return base.Foreground(ColorGray)
	}
}
