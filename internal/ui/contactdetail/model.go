package contactdetail

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
)

// BackMsg signals the parent to navigate back to the contact list.
type BackMsg struct{}

// EditRequestMsg asks the parent to open the edit form for this contact.
type EditRequestMsg struct {
	ContactID string
}

// NoteRequestMsg asks the parent to open the note form for this contact.
type NoteRequestMsg struct {
	ContactID string
}

// TaskRequestMsg asks the parent to open the task form for this contact.
type TaskRequestMsg struct {
	ContactID string
}

// ToggleTaskMsg asks the parent to flip the completion of a task.
type ToggleTaskMsg struct {
	TaskID string
}

// DeleteTaskMsg asks the parent to delete a task.
type DeleteTaskMsg struct {
	TaskID string
}

// Model is the contact detail view component: contact data, the cases the
// contact appears in, and the notes and tasks scoped to the contact.
type Model struct {
	contact   *model.Contact
	cases     []model.Case
	notes     []model.Note
	tasks     []model.Task
	viewport  viewport.Model
	keys      *keys.KeyMap
	taskIndex int
	width     int
	height    int
}

// New creates a new contact detail model.
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

// SetContact updates the contact being displayed along with its related
// cases and annotations.
func (m *Model) SetContact(c *model.Contact, cases []model.Case, notes []model.Note, tasks []model.Task) {
	m.contact = c
	m.cases = cases
	m.notes = notes
	m.tasks = tasks
	if m.taskIndex >= len(tasks) {
		m.taskIndex = 0
	}
	m.viewport.SetContent(m.renderContent())
}

// ContactID returns the ID of the currently displayed contact, or "".
func (m Model) ContactID() string {
	if m.contact == nil {
		return ""
	}
	return m.contact.ID
}

// Update handles messages for the contact detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }

		case keyMsg.String() == "e":
			if m.contact != nil {
				id := m.contact.ID
				return m, func() tea.Msg {
					return EditRequestMsg{ContactID: id}
				}
			}

		case key.Matches(keyMsg, m.keys.NewNote):
			if m.contact != nil {
				id := m.contact.ID
				return m, func() tea.Msg {
					return NoteRequestMsg{ContactID: id}
				}
			}

		case key.Matches(keyMsg, m.keys.NewTask):
			if m.contact != nil {
				id := m.contact.ID
				return m, func() tea.Msg {
					return TaskRequestMsg{ContactID: id}
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

// View renders the contact detail view.
func (m Model) View() string {
	if m.contact == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("Nenhum contato selecionado")
	}

	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.contact == nil {
		return ""
	}

	c := m.contact
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(c.Name))

	badges := theme.ContactTypeStyle(c.Type).Render(c.Type)
	if c.Status == model.ContactStatusInactive {
		badges += " " + lipgloss.NewStyle().Foreground(theme.ColorGray).Render("(inativo)")
	}
	sections = append(sections, badges)
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

	meta("Telefone: ", c.Phone)
	meta("E-mail:   ", c.Email)
	meta("Endereço: ", c.Address)
	meta("CPF/CNPJ: ", c.TaxID)

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", min(m.width-4, 80)))

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)

	// Cases whose party list includes this contact's name.
	sections = append(sections, "", separator, "")
	sections = append(sections, headerStyle.Render(
		fmt.Sprintf("Processos (%d)", len(m.cases)),
	))
	sections = append(sections, "")
	if len(m.cases) == 0 {
		sections = append(sections, metaStyle.Render("Nenhum processo vinculado."))
	}
	for _, cs := range m.cases {
		stageBadge := theme.StageStyle(string(cs.Stage)).Render(string(cs.Stage))
		sections = append(sections, fmt.Sprintf("%s %s %s",
			valStyle.Render(cs.Number), stageBadge, metaStyle.Render(cs.Subject),
		))
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
