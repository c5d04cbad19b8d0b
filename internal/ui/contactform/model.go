package contactform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmaia/casedesk/internal/model"
	"github.com/dmaia/casedesk/internal/theme"
)

// ContactSavedMsg is dispatched when the user submits contact edits.
type ContactSavedMsg struct {
	Contact model.Contact
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	phone   string
	email   string
	address string
	taxID   string
	ctype   string
	status  string
}

// Model is the Bubble Tea model for the contact edit form.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	contact model.Contact
	width   int
	height  int
}

// New creates a new contact form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the form for editing the given contact. The name is
// shown but not editable: it is the merge key against case party lists.
func (m *Model) Start(contact model.Contact) tea.Cmd {
	m.contact = contact
	m.fb.phone = contact.Phone
	m.fb.email = contact.Email
	m.fb.address = contact.Address
	m.fb.taxID = contact.TaxID
	m.fb.ctype = contact.Type
	m.fb.status = contact.Status
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the contact form.
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

// View renders the contact form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Editar Contato: "+m.contact.Name) +
		"\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Telefone").
				Placeholder("(11) 99999-9999").
				Value(&m.fb.phone),
			huh.NewInput().
				Title("E-mail").
				Placeholder("nome@exemplo.com.br").
				Value(&m.fb.email).
				Validate(validateOptionalEmail),
			huh.NewInput().
				Title("Endereço").
				Value(&m.fb.address),
			huh.NewInput().
				Title("CPF/CNPJ").
				Value(&m.fb.taxID),
			huh.NewSelect[string]().
				Title("Tipo").
				Options(
					huh.NewOption("Parte", model.ContactTypeParty),
					huh.NewOption("Advogado", model.ContactTypeLawyer),
					huh.NewOption("Outro", model.ContactTypeOther),
				).
				Value(&m.fb.ctype),
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("Ativo", model.ContactStatusActive),
					huh.NewOption("Inativo", model.ContactStatusInactive),
				).
				Value(&m.fb.status),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	contact := m.contact
	contact.Phone = strings.TrimSpace(m.fb.phone)
	contact.Email = strings.TrimSpace(m.fb.email)
	contact.Address = strings.TrimSpace(m.fb.address)
	contact.TaxID = strings.TrimSpace(m.fb.taxID)
	contact.Type = m.fb.ctype
	contact.Status = m.fb.status

	return func() tea.Msg { return ContactSavedMsg{Contact: contact} }
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

func validateOptionalEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !strings.Contains(s, "@") || strings.Contains(s, " ") {
		return fmt.Errorf("e-mail inválido")
	}
	return nil
}
