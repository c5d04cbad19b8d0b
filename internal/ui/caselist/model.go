package caselist

import (
	"sort"
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

// SelectedCaseMsg is sent when a user selects a case to view details.
type SelectedCaseMsg struct {
	Number string
}

// ExportRequestMsg is sent when the user asks for a CSV export of the
// currently visible cases.
type ExportRequestMsg struct {
	Cases []model.Case
}

// sortModes defines the available sort modes cycled by Tab.
var sortModes = []string{
	"number",
	"stage",
	"amount",
}

// Model is the case list view component.
type Model struct {
	list        list.Model
	keys        *keys.KeyMap
	cases       []model.Case
	stageFilter int // index into model.StageOrder, -1 means all
	sortIndex   int
	query       string
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new case list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Processos"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "número, parte, assunto..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		keys:        k,
		stageFilter: -1,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetCases replaces the backing case collection and refreshes the list.
func (m *Model) SetCases(cases []model.Case) tea.Cmd {
	m.cases = cases
	return m.refresh()
}

// Visible returns the cases currently shown, in display order.
func (m Model) Visible() []model.Case {
	out := make([]model.Case, 0, len(m.list.Items()))
	for _, item := range m.list.Items() {
		if ci, ok := item.(CaseItem); ok {
			out = append(out, ci.Case)
		}
	}
	return out
}

// Update handles messages for the case list view.
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
		item, ok := m.list.SelectedItem().(CaseItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedCaseMsg{Number: item.Case.Number}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.FilterStage):
		// Cycle: all -> each stage in procedural order -> all.
		m.stageFilter++
		if m.stageFilter >= len(model.StageOrder) {
			m.stageFilter = -1
		}
		return m, m.refresh()

	case key.Matches(msg, m.keys.CycleSort):
		m.sortIndex = (m.sortIndex + 1) % len(sortModes)
		return m, m.refresh()

	case key.Matches(msg, m.keys.Export):
		visible := m.Visible()
		return m, func() tea.Msg {
			return ExportRequestMsg{Cases: visible}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// refresh recomputes the visible items from the filter, query and sort.
func (m *Model) refresh() tea.Cmd {
	visible := make([]model.Case, 0, len(m.cases))
	for _, c := range m.cases {
		if m.stageFilter >= 0 && c.Stage != model.StageOrder[m.stageFilter] {
			continue
		}
		if m.query != "" && !matchesQuery(c, m.query) {
			continue
		}
		visible = append(visible, c)
	}

	sortCases(visible, sortModes[m.sortIndex])

	items := make([]list.Item, len(visible))
	for i, c := range visible {
		items[i] = CaseItem{Case: c}
	}
	return m.list.SetItems(items)
}

// matchesQuery reports whether the query appears in the case number,
// parties, subject or class, case-insensitively.
func matchesQuery(c model.Case, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(c.Number), q) ||
		strings.Contains(strings.ToLower(c.Subject), q) ||
		strings.Contains(strings.ToLower(c.Class), q) {
		return true
	}
	for _, p := range c.Parties {
		if strings.Contains(strings.ToLower(p), q) {
			return true
		}
	}
	return false
}

// sortCases orders cases by the given mode, falling back to case number
// so the order is stable across refreshes.
func sortCases(cases []model.Case, mode string) {
	sort.SliceStable(cases, func(i, j int) bool {
		switch mode {
		case "stage":
			si, sj := stageRank(cases[i].Stage), stageRank(cases[j].Stage)
			if si != sj {
				return si < sj
			}
		case "amount":
			if cases[i].ClaimAmount != cases[j].ClaimAmount {
				return cases[i].ClaimAmount > cases[j].ClaimAmount
			}
		}
		return cases[i].Number < cases[j].Number
	})
}

// stageRank returns the procedural position of a stage.
func stageRank(s model.Stage) int {
	for i, stage := range model.StageOrder {
		if stage == s {
			return i
		}
	}
	return len(model.StageOrder)
}

// Searching reports whether the search input currently has focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// FilterSummary describes the active filters for the status bar, empty
// when nothing is filtered.
func (m Model) FilterSummary() string {
	var parts []string
	if m.stageFilter >= 0 {
		parts = append(parts, "fase: "+string(model.StageOrder[m.stageFilter]))
	}
	if m.query != "" {
		parts = append(parts, "busca: "+m.query)
	}
	return strings.Join(parts, " | ")
}

// View renders the case list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when no cases are visible.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.stageFilter >= 0 || m.query != "" {
		return style.Render("Nenhum processo corresponde aos filtros.\nPressione f ou / para ajustar.")
	}

	return style.Render(
		"Nenhum processo carregado.\n\n" +
			"Verifique o caminho do CSV na configuração.",
	)
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
