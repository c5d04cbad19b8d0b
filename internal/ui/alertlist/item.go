package alertlist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmaia/casedesk/internal/model"
	"github.com/dmaia/casedesk/internal/theme"
)

// AlertItem wraps a model.Alert so it can be used in a bubbles/list.
type AlertItem struct {
	Alert model.Alert
}

// FilterValue returns the string used for fuzzy filtering.
func (i AlertItem) FilterValue() string {
	return i.Alert.CaseNumber + " " + i.Alert.Description
}

// Title returns the alert description for the list.
func (i AlertItem) Title() string { return i.Alert.Description }

// Description returns a short summary line for the list.
func (i AlertItem) Description() string {
	return i.Alert.CaseNumber + " | " + i.Alert.Date
}

// ItemDelegate implements list.ItemDelegate for rendering alert rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single alert line: urgency marker, type badge, case
// number, date and description.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ai, ok := item.(AlertItem)
	if !ok {
		return
	}
	a := ai.Alert

	urgency := theme.UrgencyStyle(a.DayOffset).Render(offsetLabel(a.DayOffset))
	typeBadge := theme.AlertTypeStyle(string(a.Type)).Render(string(a.Type))

	numberStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	dateStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)

	line := fmt.Sprintf(
		"%s %s %s %s  %s",
		urgency,
		typeBadge,
		numberStyle.Render(a.CaseNumber),
		dateStyle.Render(a.Date),
		a.Description,
	)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// offsetLabel renders the day offset as a compact label.
func offsetLabel(offset int) string {
	switch {
	case offset == 0:
		return "HOJE"
	case offset < 0:
		return fmt.Sprintf("%dd atrás", -offset)
	default:
		return fmt.Sprintf("em %dd", offset)
	}
}
