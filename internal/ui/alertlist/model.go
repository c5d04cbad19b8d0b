package alertlist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmaia/casedesk/internal/keys"
	"github.com/dmaia/casedesk/internal/model"
	"github.com/dmaia/casedesk/internal/theme"
)

// DismissMsg asks the parent to dismiss the selected alert.
type DismissMsg struct {
	AlertID string
}

// OpenCaseMsg asks the parent to open the case behind an alert.
type OpenCaseMsg struct {
	Number string
}

// ExportRequestMsg asks the parent to export the current alert list.
type ExportRequestMsg struct {
	Alerts []model.Alert
}

// Model is the alert list view component.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	alerts []model.Alert
	width  int
	height int
}

// New creates a new alert list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Alertas de Prazo"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetAlerts replaces the backing alert collection. The engine already
// sorts by urgency, so display order is insertion order.
func (m *Model) SetAlerts(alerts []model.Alert) tea.Cmd {
	m.alerts = alerts
	items := make([]list.Item, len(alerts))
	for i, a := range alerts {
		items[i] = AlertItem{Alert: a}
	}
	return m.list.SetItems(items)
}

// Update handles messages for the alert list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Select):
			item, ok := m.list.SelectedItem().(AlertItem)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return OpenCaseMsg{Number: item.Alert.CaseNumber}
			}

		case key.Matches(keyMsg, m.keys.Dismiss):
			item, ok := m.list.SelectedItem().(AlertItem)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return DismissMsg{AlertID: item.Alert.ID}
			}

		case key.Matches(keyMsg, m.keys.Export):
			alerts := m.alerts
			return m, func() tea.Msg {
				return ExportRequestMsg{Alerts: alerts}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the alert list view.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		style := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return style.Render("Nenhum alerta pendente.")
	}
	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
