package casedetail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmaia/casedesk/internal/keys"
	"github.com/dmaia/casedesk/internal/model"
	"github.com/dmaia/casedesk/internal/theme"
	"github.com/dmaia/casedesk/internal/ui/caselist"
)

// BackMsg signals the parent to navigate back to the case list.
type BackMsg struct{}

// NoteRequestMsg asks the parent to open the note form for this case.
type NoteRequestMsg struct {
	CaseNumber string
}

// TaskRequestMsg asks the parent to open the task form for this case.
type TaskRequestMsg struct {
	CaseNumber string
}

// ToggleTaskMsg asks the parent to flip the completion of a task.
type ToggleTaskMsg struct {
	TaskID string
}

// DeleteTaskMsg asks the parent to delete a task.
type DeleteTaskMsg struct {
	TaskID string
}

// Model is the case detail view component.
type Model struct {
	kase      *model.Case
	notes     []model.Note
	tasks     []model.Task
	viewport  viewport.Model
	keys      *keys.KeyMap
	taskIndex int
	width     int
	height    int
}

// New creates a new case detail model.
func New(k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetCase updates the case being displayed along with its annotations.
func (m *Model) SetCase(c *model.Case, notes []model.Note, tasks []model.Task) {
	m.kase = c
	m.notes = notes
	m.tasks = tasks
	if m.taskIndex >= len(tasks) {
		m.taskIndex = 0
	}
	m.viewport.SetContent(m.renderContent())
}

// CaseNumber returns the number of the currently displayed case, or "".
func (m Model) CaseNumber() string {
	if m.kase == nil {
		return ""
	}
	return m.kase.Number
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }

		case key.Matches(keyMsg, m.keys.NewNote):
			if m.kase != nil {
				number := m.kase.Number
				return m, func() tea.Msg {
					return NoteRequestMsg{CaseNumber: number}
				}
			}

		case key.Matches(keyMsg, m.keys.NewTask):
			if m.kase != nil {
				number := m.kase.Number
				return m, func() tea.Msg {
					return TaskRequestMsg{CaseNumber: number}
				}
			}

		case key.Matches(keyMsg, m.keys.ToggleTask):
			if len(m.tasks) > 0 {
				id := m.tasks[m.taskIndex].ID
				return m, func() tea.Msg {
					return ToggleTaskMsg{TaskID: id}
				}
			}

		case keyMsg.String() == "D":
			if len(m.tasks) > 0 {
				id := m.tasks[m.taskIndex].ID
				return m, func() tea.Msg {
					return DeleteTaskMsg{TaskID: id}
				}
			}

		// Shift+j/k move the task cursor; plain j/k scroll the viewport.
		case keyMsg.String() == "J":
			if m.taskIndex < len(m.tasks)-1 {
				m.taskIndex++
				m.viewport.SetContent(m.renderContent())
			}
			return m, nil

		case keyMsg.String() == "K":
			if m.taskIndex > 0 {
				m.taskIndex--
				m.viewport.SetContent(m.renderContent())
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.kase == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("Nenhum processo selecionado")
	}

	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.kase == nil {
		return ""
	}

	c := m.kase
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(c.Number))

	stageBadge := theme.StageStyle(string(c.Stage)).Render(string(c.Stage))
	sections = append(sections, stageBadge)
	sections = append(sections, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	meta := func(label, value string) {
		if value == "" {
			return
		}
		sections = append(sections, fmt.Sprintf(
			"%s %s", metaStyle.Render(label), valStyle.Render(value),
		))
	}

	meta("Classe: ", c.Class)
	meta("Assunto:", c.Subject)
	meta("Foro:   ", c.Forum)
	meta("Vara:   ", c.Division)
	meta("Juiz:   ", c.Judge)
	if c.ClaimAmount > 0 {
		meta("Valor:  ", caselist.FormatAmount(c.ClaimAmount))
	}
	if len(c.Parties) > 0 {
		meta("Partes: ", strings.Join(c.Parties, "; "))
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", min(m.width-4, 80)))

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)

	// Movements, newest first.
	sections = append(sections, "", separator, "")
	sections = append(sections, headerStyle.Render(
		fmt.Sprintf("Movimentações (%d)", len(c.Movements)),
	))
	sections = append(sections, "")

	dateStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue)
	if len(c.Movements) == 0 {
		sections = append(sections, metaStyle.Render("Sem movimentações."))
	}
	for _, mv := range c.Movements {
		if mv.Date != "" {
			sections = append(sections, fmt.Sprintf(
				"%s %s", dateStyle.Render(mv.Date), mv.Description,
			))
		} else {
			sections = append(sections, mv.Description)
		}
	}

	// Notes.
	sections = append(sections, "", separator, "")
	sections = append(sections, headerStyle.Render(
		fmt.Sprintf("Anotações (%d)", len(m.notes)),
	))
	sections = append(sections, "")
	if len(m.notes) == 0 {
		sections = append(sections, metaStyle.Render("Sem anotações. Pressione n para criar."))
	}
	timeStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	for _, n := range m.notes {
		sections = append(sections, timeStyle.Render(n.CreatedAt.Format("02/01/2006 15:04")))
		sections = append(sections, n.Content)
		sections = append(sections, "")
	}

	// Tasks, with a cursor moved by Shift+j/k.
	sections = append(sections, separator, "")
	sections = append(sections, headerStyle.Render(
		fmt.Sprintf("Tarefas (%d)", len(m.tasks)),
	))
	sections = append(sections, "")
	if len(m.tasks) == 0 {
		sections = append(sections, metaStyle.Render("Sem tarefas. Pressione t para criar."))
	}
	for i, task := range m.tasks {
		sections = append(sections, m.renderTask(task, i == m.taskIndex))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTask draws a single task line with completion and due markers.
func (m Model) renderTask(task model.Task, selected bool) string {
	marker := "○"
	if task.Completed {
		marker = "✓"
	}

	line := fmt.Sprintf("%s %s", marker, task.Title)
	if task.DueDate != nil {
		due := task.DueDate.Format("02/01/2006")
		if task.IsOverdue() {
			due = theme.UrgencyStyle(0).Render(due + " ATRASADA")
		}
		line += "  " + due
	}

	if task.Completed {
		line = lipgloss.NewStyle().Foreground(theme.ColorGray).Render(line)
	}
	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}
