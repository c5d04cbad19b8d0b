// Package annotform implements the shared create form for notes and
// tasks, scoped to either a case or a contact.
package annotform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmaia/casedesk/internal/model"
	"github.com/dmaia/casedesk/internal/theme"
)

// Kind selects what the form creates.
type Kind int

const (
	KindNote Kind = iota
	KindTask
)

// NoteSubmittedMsg is dispatched when a note form is completed.
type NoteSubmittedMsg struct {
	Note model.Note
}

// TaskSubmittedMsg is dispatched when a task form is completed.
type TaskSubmittedMsg struct {
	Task model.Task
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	content string
	title   string
	dueDate string
}

// Model is the Bubble Tea model for the note/task form.
type Model struct {
	form       *huh.Form
	fb         *formBindings
	kind       Kind
	caseNumber string
	contactID  string
	width      int
	height     int
}

// New creates a new annotation form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the form. Exactly one of caseNumber and contactID
// should be non-empty; it becomes the annotation's scope.
func (m *Model) Start(kind Kind, caseNumber, contactID string) tea.Cmd {
	m.kind = kind
	m.caseNumber = caseNumber
	m.contactID = contactID
	m.fb.content = ""
	m.fb.title = ""
	m.fb.dueDate = ""

	if kind == KindNote {
		m.form = m.buildNoteForm()
	} else {
		m.form = m.buildTaskForm()
	}
	return m.form.Init()
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "Nova Anotação"
	if m.kind == KindTask {
		titleText = "Nova Tarefa"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildNoteForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Anotação").
				Placeholder("Texto da anotação...").
				Value(&m.fb.content).
				Validate(validateRequired("Anotação")),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) buildTaskForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Título").
				Placeholder("O que precisa ser feito?").
				Value(&m.fb.title).
				Validate(validateRequired("Título")),
			huh.NewInput().
				Title("Vencimento").
				Placeholder("dd/mm/aaaa (opcional)").
				Value(&m.fb.dueDate).
				Validate(validateOptionalDate),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	var caseNumber, contactID *string
	if m.caseNumber != "" {
		n := m.caseNumber
		caseNumber = &n
	}
	if m.contactID != "" {
		id := m.contactID
		contactID = &id
	}

	if m.kind == KindNote {
		note := model.Note{
			CaseNumber: caseNumber,
			ContactID:  contactID,
			Content:    strings.TrimSpace(m.fb.content),
		}
		return func() tea.Msg { return NoteSubmittedMsg{Note: note} }
	}

	task := model.Task{
		CaseNumber: caseNumber,
		ContactID:  contactID,
		Title:      strings.TrimSpace(m.fb.title),
	}
	if due := strings.TrimSpace(m.fb.dueDate); due != "" {
		if t, err := time.Parse("02/01/2006", due); err == nil {
			task.DueDate = &t
		}
	}
	return func() tea.Msg { return TaskSubmittedMsg{Task: task} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s é obrigatório", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse("02/01/2006", s); err != nil {
		return fmt.Errorf("data inválida, use dd/mm/aaaa")
	}
	return nil
}
