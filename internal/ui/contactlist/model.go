package contactlist

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmaia/casedesk/internal/keys"
	"github.com/dmaia/casedesk/internal/model"
	"github.com/dmaia/casedesk/internal/theme"
)

// SelectedContactMsg asks the parent to open the detail view for a
// contact.
type SelectedContactMsg struct {
	ContactID string
}

// NoteRequestMsg asks the parent to open the note form for a contact.
type NoteRequestMsg struct {
	ContactID string
}

// TaskRequestMsg asks the parent to open the task form for a contact.
type TaskRequestMsg struct {
	ContactID string
}

// Model is the contact directory view component.
type Model struct {
	list        list.Model
	keys        *keys.KeyMap
	contacts    []model.Contact
	query       string
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new contact list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Contatos"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "nome do contato..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		keys:        k,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetContacts replaces the backing contact collection.
func (m *Model) SetContacts(contacts []model.Contact) tea.Cmd {
	m.contacts = contacts
	return m.refresh()
}

// Update handles messages for the contact list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.searchMode {
			return m.handleSearchKeys(keyMsg)
		}
		return m.handleNormalKeys(keyMsg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.query = strings.TrimSpace(m.searchInput.Value())
		return m, m.refresh()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.query = ""
		return m, m.refresh()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(ContactItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedContactMsg{ContactID: item.Contact.ID}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.NewNote):
		item, ok := m.list.SelectedItem().(ContactItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return NoteRequestMsg{ContactID: item.Contact.ID}
		}

	case key.Matches(msg, m.keys.NewTask):
		item, ok := m.list.SelectedItem().(ContactItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return TaskRequestMsg{ContactID: item.Contact.ID}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// Searching reports whether the search input currently has focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// refresh recomputes visible items from the search query.
func (m *Model) refresh() tea.Cmd {
	var items []list.Item
	q := strings.ToLower(m.query)
	for _, c := range m.contacts {
		if q != "" && !strings.Contains(strings.ToLower(c.Name), q) {
			continue
		}
		items = append(items, ContactItem{Contact: c})
	}
	return m.list.SetItems(items)
}

// View renders the contact list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		style := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		if m.query != "" {
			return style.Render("Nenhum contato encontrado.")
		}
		return style.Render("Nenhum contato no diretório.")
	}

	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
