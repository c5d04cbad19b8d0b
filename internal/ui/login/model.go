// Package login implements the credential prompt shown before the
// session loads.
package login

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmaia/casedesk/internal/auth"
	"github.com/dmaia/casedesk/internal/theme"
)

// SuccessMsg is dispatched when the credentials check out.
type SuccessMsg struct {
	Username string
}

// QuitMsg is dispatched when the user aborts the login form.
type QuitMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	username string
	password string
}

// Model is the login view component.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	gate   *auth.Gate
	failed bool
	width  int
	height int
}

// New creates a new login model backed by the given gate. The form is
// built eagerly so Init can run against a model copy.
func New(gate *auth.Gate, width, height int) Model {
	m := Model{
		fb:     &formBindings{},
		gate:   gate,
		width:  width,
		height: height,
	}
	m.form = m.buildForm()
	return m
}

// Init starts the login form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// reset clears the password and rebuilds the form for another attempt.
func (m *Model) reset() tea.Cmd {
	m.fb.password = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the login view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		if m.gate.Check(m.fb.username, m.fb.password) {
			username := m.fb.username
			return m, func() tea.Msg { return SuccessMsg{Username: username} }
		}
		// Wrong credentials: rebuild the form and show the error.
		m.failed = true
		return m, m.reset()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return QuitMsg{} }
	}

	return m, cmd
}

// View renders the login prompt centered on screen.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("CaseDesk - Acesso") + "\n"
	if m.failed {
		content += lipgloss.NewStyle().
			Foreground(theme.ColorRed).
			Render("Usuário ou senha incorretos.") + "\n"
	}
	content += m.form.View()

	box := theme.BorderStyle.Padding(1, 3).Render(content)

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		box,
	)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Usuário").
				Value(&m.fb.username),
			huh.NewInput().
				Title("Senha").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password),
		),
	).WithWidth(48)
}
