package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/dmaia/casedesk/internal/auth"
	"github.com/dmaia/casedesk/internal/export"
	"github.com/dmaia/casedesk/internal/keys"
	"github.com/dmaia/casedesk/internal/model"
	"github.com/dmaia/casedesk/internal/session"
	"github.com/dmaia/casedesk/internal/ui"
	"github.com/dmaia/casedesk/internal/ui/alertlist"
	"github.com/dmaia/casedesk/internal/ui/annotform"
	"github.com/dmaia/casedesk/internal/ui/casedetail"
	"github.com/dmaia/casedesk/internal/ui/caselist"
	"github.com/dmaia/casedesk/internal/ui/command"
	"github.com/dmaia/casedesk/internal/ui/contactdetail"
	"github.com/dmaia/casedesk/internal/ui/contactform"
	"github.com/dmaia/casedesk/internal/ui/contactlist"
	"github.com/dmaia/casedesk/internal/ui/dashboard"
	helpview "github.com/dmaia/casedesk/internal/ui/help"
	"github.com/dmaia/casedesk/internal/ui/login"
	"github.com/dmaia/casedesk/internal/ui/stageboard"
)

// sessionReadyMsg signals that the one-shot session initialization is
// done.
type sessionReadyMsg struct {
	err error
}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewDashboard
	ViewCases
	ViewDetail
	ViewAlerts
	ViewContacts
	ViewContactDetail
	ViewBoard
	ViewHelp
	ViewCommand
	ViewAnnotForm
	ViewContactForm
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the session state.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	session      *session.Session
	keys         *keys.KeyMap
	log          *zap.Logger
	exportDir    string

	loginView     login.Model
	dashView      dashboard.Model
	caseList      caselist.Model
	detail        casedetail.Model
	alertList     alertlist.Model
	contactList   contactlist.Model
	contactDetail contactdetail.Model
	boardView     stageboard.Model
	contactForm   contactform.Model
	annotForm     annotform.Model
	helpView      helpview.Model
	commandView   command.Model

	ready         bool
	loading       bool
	statusMessage string
}

// New creates the root application model.
func New(s *session.Session, gate *auth.Gate, exportDir string, log *zap.Logger) Model {
	k := keys.DefaultKeyMap()

	return Model{
		currentView:   ViewLogin,
		session:       s,
		keys:          k,
		log:           log,
		exportDir:     exportDir,
		loginView:     login.New(gate, 80, 24),
		dashView:      dashboard.New(80, 24),
		caseList:      caselist.New(k, 80, 24),
		detail:        casedetail.New(k, 80, 24),
		alertList:     alertlist.New(k, 80, 24),
		contactList:   contactlist.New(k, 80, 24),
		contactDetail: contactdetail.New(k, 80, 24),
		boardView:     stageboard.New(k, 80, 24),
		contactForm:   contactform.New(80, 24),
		annotForm:     annotform.New(80, 24),
		helpView:      helpview.New(k, 80, 24),
		commandView:   command.New(80, 24),
	}
}

// Init starts at the login prompt.
func (m Model) Init() tea.Cmd {
	return m.loginView.Init()
}

// initSession returns a command that runs the one-shot session load.
func (m Model) initSession() tea.Cmd {
	s := m.session
	return func() tea.Msg {
		return sessionReadyMsg{err: s.Init(context.Background())}
	}
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.loginView.SetSize(msg.Width, msg.Height)
		m.dashView.SetSize(contentWidth, contentHeight)
		m.caseList.SetSize(contentWidth, contentHeight)
		m.detail.SetSize(contentWidth, contentHeight)
		m.alertList.SetSize(contentWidth, contentHeight)
		m.contactList.SetSize(contentWidth, contentHeight)
		m.contactDetail.SetSize(contentWidth, contentHeight)
		m.boardView.SetSize(contentWidth, contentHeight)
		m.contactForm.SetSize(contentWidth, contentHeight)
		m.annotForm.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		// Forward to the active view so huh forms can lay themselves out.
		return m.updateActiveView(msg)

	case login.SuccessMsg:
		m.log.Info("login accepted", zap.String("user", msg.Username))
		m.currentView = ViewDashboard
		m.loading = true
		return m, m.initSession()

	case login.QuitMsg:
		return m, tea.Quit

	case sessionReadyMsg:
		m.loading = false
		if msg.err != nil {
			m.log.Error("session init failed", zap.Error(msg.err))
			m.statusMessage = "Erro ao carregar dados: " + msg.err.Error()
			return m, nil
		}
		return m, m.refreshViews()

	case caselist.SelectedCaseMsg:
		return m.openCase(msg.Number)

	case caselist.ExportRequestMsg:
		path := export.DefaultPath(m.exportDir, "processos", time.Now())
		if err := export.Cases(path, msg.Cases); err != nil {
			m.statusMessage = "Falha na exportação: " + err.Error()
		} else {
			m.statusMessage = "Exportado: " + path
		}
		return m, nil

	case alertlist.ExportRequestMsg:
		path := export.DefaultPath(m.exportDir, "alertas", time.Now())
		if err := export.Alerts(path, msg.Alerts); err != nil {
			m.statusMessage = "Falha na exportação: " + err.Error()
		} else {
			m.statusMessage = "Exportado: " + path
		}
		return m, nil

	case alertlist.OpenCaseMsg:
		return m.openCase(msg.Number)

	case alertlist.DismissMsg:
		if err := m.session.DismissAlert(context.Background(), msg.AlertID); err != nil {
			m.statusMessage = "Falha ao descartar alerta: " + err.Error()
			return m, nil
		}
		return m, m.refreshViews()

	case casedetail.BackMsg:
		m.currentView = m.previousView
		if m.currentView == ViewDetail {
			m.currentView = ViewCases
		}
		return m, nil

	case casedetail.NoteRequestMsg:
		m.previousView = m.currentView
		m.currentView = ViewAnnotForm
		return m, m.annotForm.Start(annotform.KindNote, msg.CaseNumber, "")

	case casedetail.TaskRequestMsg:
		m.previousView = m.currentView
		m.currentView = ViewAnnotForm
		return m, m.annotForm.Start(annotform.KindTask, msg.CaseNumber, "")

	case casedetail.ToggleTaskMsg:
		if err := m.session.ToggleTask(context.Background(), msg.TaskID); err != nil {
			m.statusMessage = "Falha ao atualizar tarefa: " + err.Error()
			return m, nil
		}
		m.refreshDetail()
		return m, nil

	case casedetail.DeleteTaskMsg:
		if err := m.session.DeleteTask(context.Background(), msg.TaskID); err != nil {
			m.statusMessage = "Falha ao excluir tarefa: " + err.Error()
			return m, nil
		}
		m.refreshDetail()
		return m, nil

	case contactlist.SelectedContactMsg:
		return m.openContact(msg.ContactID)

	case contactlist.NoteRequestMsg:
		m.previousView = m.currentView
		m.currentView = ViewAnnotForm
		return m, m.annotForm.Start(annotform.KindNote, "", msg.ContactID)

	case contactlist.TaskRequestMsg:
		m.previousView = m.currentView
		m.currentView = ViewAnnotForm
		return m, m.annotForm.Start(annotform.KindTask, "", msg.ContactID)

	case contactdetail.BackMsg:
		m.currentView = m.previousView
		if m.currentView == ViewContactDetail {
			m.currentView = ViewContacts
		}
		return m, nil

	case contactdetail.EditRequestMsg:
		contact, ok := m.session.ContactByID(msg.ContactID)
		if !ok {
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewContactForm
		return m, m.contactForm.Start(*contact)

	case contactdetail.NoteRequestMsg:
		m.previousView = m.currentView
		m.currentView = ViewAnnotForm
		return m, m.annotForm.Start(annotform.KindNote, "", msg.ContactID)

	case contactdetail.TaskRequestMsg:
		m.previousView = m.currentView
		m.currentView = ViewAnnotForm
		return m, m.annotForm.Start(annotform.KindTask, "", msg.ContactID)

	case contactdetail.ToggleTaskMsg:
		if err := m.session.ToggleTask(context.Background(), msg.TaskID); err != nil {
			m.statusMessage = "Falha ao atualizar tarefa: " + err.Error()
			return m, nil
		}
		m.refreshContactDetail()
		return m, nil

	case contactdetail.DeleteTaskMsg:
		if err := m.session.DeleteTask(context.Background(), msg.TaskID); err != nil {
			m.statusMessage = "Falha ao excluir tarefa: " + err.Error()
			return m, nil
		}
		m.refreshContactDetail()
		return m, nil

	case stageboard.OpenCaseMsg:
		return m.openCase(msg.Number)

	case contactform.ContactSavedMsg:
		m.currentView = m.previousView
		if err := m.session.UpdateContact(context.Background(), msg.Contact); err != nil {
			m.statusMessage = "Falha ao salvar contato: " + err.Error()
			return m, nil
		}
		return m, m.refreshViews()

	case contactform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case annotform.NoteSubmittedMsg:
		m.currentView = m.previousView
		if _, err := m.session.AddNote(context.Background(), msg.Note); err != nil {
			m.statusMessage = "Falha ao salvar anotação: " + err.Error()
			return m, nil
		}
		m.refreshDetail()
		m.refreshContactDetail()
		return m, nil

	case annotform.TaskSubmittedMsg:
		m.currentView = m.previousView
		if _, err := m.session.AddTask(context.Background(), msg.Task); err != nil {
			m.statusMessage = "Falha ao salvar tarefa: " + err.Error()
			return m, nil
		}
		m.refreshDetail()
		m.refreshContactDetail()
		return m, nil

	case annotform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m.executeCommand(string(msg))

	case tea.KeyMsg:
		if !m.inputFocused() {
			m.statusMessage = ""
		}
		if handled, model, cmd := m.handleGlobalKeys(msg); handled {
			return model, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKeys intercepts keys that work across the main views.
// Forms, the login prompt and focused search inputs keep their input.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return true, m, tea.Quit
	}

	if m.inputFocused() {
		return false, m, nil
	}

	switch msg.String() {
	case "q":
		if m.currentView != ViewDetail && m.currentView != ViewContactDetail &&
			m.currentView != ViewHelp {
			return true, m, tea.Quit
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case ":":
		if m.currentView == ViewCommand {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return true, m, m.commandView.Focus()

	case "1":
		m.currentView = ViewDashboard
		return true, m, nil

	case "2":
		m.currentView = ViewCases
		return true, m, nil

	case "3":
		m.currentView = ViewAlerts
		return true, m, nil

	case "4":
		m.currentView = ViewContacts
		return true, m, nil

	case "5":
		m.currentView = ViewBoard
		return true, m, nil
	}

	return false, m, nil
}

// inputFocused reports whether the active view owns all key input.
func (m Model) inputFocused() bool {
	switch m.currentView {
	case ViewLogin, ViewCommand, ViewAnnotForm, ViewContactForm:
		return true
	case ViewCases:
		return m.caseList.Searching()
	case ViewContacts:
		return m.contactList.Searching()
	}
	return false
}

// executeCommand handles a command string from the command palette.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	switch cmd {
	case "quit", "sair", "q":
		return m, tea.Quit
	case "dashboard", "painel":
		m.currentView = ViewDashboard
	case "cases", "processos":
		m.currentView = ViewCases
	case "alerts", "alertas", "prazos":
		m.currentView = ViewAlerts
	case "contacts", "contatos":
		m.currentView = ViewContacts
	case "board", "funil", "kanban":
		m.currentView = ViewBoard
	case "export", "exportar":
		path := export.DefaultPath(m.exportDir, "processos", time.Now())
		if err := export.Cases(path, m.session.Cases); err != nil {
			m.statusMessage = "Falha na exportação: " + err.Error()
		} else {
			m.statusMessage = "Exportado: " + path
		}
	case "reload", "recarregar":
		m.loading = true
		return m, m.initSession()
	}
	return m, nil
}

// openCase switches to the detail view for the given case number.
func (m Model) openCase(number string) (tea.Model, tea.Cmd) {
	c, ok := m.session.CaseByNumber(number)
	if !ok {
		return m, nil
	}
	if m.currentView != ViewDetail {
		m.previousView = m.currentView
	}
	m.currentView = ViewDetail
	m.detail.SetCase(c, m.session.NotesFor(number, ""), m.session.TasksFor(number, ""))
	return m, nil
}

// refreshViews pushes the current session state into every view.
func (m *Model) refreshViews() tea.Cmd {
	m.dashView.SetData(m.session.Cases, m.session.Alerts, m.session.Tasks)
	m.boardView.SetCases(m.session.Cases)
	cmds := []tea.Cmd{
		m.caseList.SetCases(m.session.Cases),
		m.alertList.SetAlerts(m.session.Alerts),
		m.contactList.SetContacts(m.session.Contacts),
	}
	m.refreshDetail()
	m.refreshContactDetail()
	return tea.Batch(cmds...)
}

// openContact switches to the detail view for the given contact ID.
func (m Model) openContact(id string) (tea.Model, tea.Cmd) {
	c, ok := m.session.ContactByID(id)
	if !ok {
		return m, nil
	}
	if m.currentView != ViewContactDetail {
		m.previousView = m.currentView
	}
	m.currentView = ViewContactDetail
	m.contactDetail.SetContact(c, m.relatedCases(c.Name),
		m.session.NotesFor("", id), m.session.TasksFor("", id))
	return m, nil
}

// refreshContactDetail re-renders the contact detail view from session
// state when a contact is open.
func (m *Model) refreshContactDetail() {
	id := m.contactDetail.ContactID()
	if id == "" {
		return
	}
	if c, ok := m.session.ContactByID(id); ok {
		m.contactDetail.SetContact(c, m.relatedCases(c.Name),
			m.session.NotesFor("", id), m.session.TasksFor("", id))
	}
}

// relatedCases returns the cases whose party list contains the name.
func (m Model) relatedCases(name string) []model.Case {
	var out []model.Case
	for _, c := range m.session.Cases {
		for _, p := range c.Parties {
			if p == name {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// refreshDetail re-renders the detail view from session state when a
// case is open.
func (m *Model) refreshDetail() {
	number := m.detail.CaseNumber()
	if number == "" {
		return
	}
	if c, ok := m.session.CaseByNumber(number); ok {
		m.detail.SetCase(c, m.session.NotesFor(number, ""), m.session.TasksFor(number, ""))
	}
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewDashboard:
		m.dashView, cmd = m.dashView.Update(msg)
	case ViewCases:
		m.caseList, cmd = m.caseList.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewAlerts:
		m.alertList, cmd = m.alertList.Update(msg)
	case ViewContacts:
		m.contactList, cmd = m.contactList.Update(msg)
	case ViewContactDetail:
		m.contactDetail, cmd = m.contactDetail.Update(msg)
	case ViewBoard:
		m.boardView, cmd = m.boardView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewAnnotForm:
		m.annotForm, cmd = m.annotForm.Update(msg)
	case ViewContactForm:
		m.contactForm, cmd = m.contactForm.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Carregando..."
	}

	if m.currentView == ViewLogin {
		return m.loginView.View()
	}

	header := m.layout.RenderHeader("CaseDesk", m.headerSummary())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	if m.loading {
		return "Carregando processos..."
	}

	switch m.currentView {
	case ViewDashboard:
		return m.dashView.View()
	case ViewCases:
		return m.caseList.View()
	case ViewDetail:
		return m.detail.View()
	case ViewAlerts:
		return m.alertList.View()
	case ViewContacts:
		return m.contactList.View()
	case ViewContactDetail:
		return m.contactDetail.View()
	case ViewBoard:
		return m.boardView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewAnnotForm:
		return m.annotForm.View()
	case ViewContactForm:
		return m.contactForm.View()
	default:
		return ""
	}
}

// headerSummary returns the right-aligned header counters.
func (m Model) headerSummary() string {
	overdue := 0
	for _, a := range m.session.Alerts {
		if a.DayOffset <= 0 {
			overdue++
		}
	}
	summary := fmt.Sprintf(
		"%d processos | %d alertas",
		len(m.session.Cases), len(m.session.Alerts),
	)
	if overdue > 0 {
		summary += fmt.Sprintf(" (%d urgentes)", overdue)
	}
	return summary
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.statusMessage != "" {
		return m.statusMessage
	}

	switch m.currentView {
	case ViewHelp:
		return "? fechar ajuda"
	case ViewCommand:
		return ": fechar | enter executar"
	case ViewDetail:
		return "esc voltar | n anotação | t tarefa | J/K tarefa | x concluir | D excluir | j/k rolar"
	case ViewAlerts:
		return "enter abrir processo | d descartar | e exportar | 1-5 telas"
	case ViewContacts:
		return "enter abrir | n anotação | t tarefa | / buscar | 1-5 telas"
	case ViewContactDetail:
		return "esc voltar | e editar | n anotação | t tarefa | J/K tarefa | x concluir | D excluir | j/k rolar"
	case ViewBoard:
		return "h/l fase | j/k processo | enter abrir | 1-5 telas"
	case ViewAnnotForm, ViewContactForm:
		return "enter confirmar | esc cancelar"
	case ViewCases:
		if summary := m.caseList.FilterSummary(); summary != "" {
			return summary + " | f/esc limpar"
		}
		return "enter abrir | / buscar | f fase | tab ordenar | e exportar | 1-5 telas"
	default:
		return "q sair | ? ajuda | 1 painel | 2 processos | 3 alertas | 4 contatos | 5 funil"
	}
}
