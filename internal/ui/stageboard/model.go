// Package stageboard renders the case funnel board: one column per
// workflow stage, each listing its cases with a per-stage claim total.
package stageboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmaia/casedesk/internal/keys"
	"github.com/dmaia/casedesk/internal/model"
	"github.com/dmaia/casedesk/internal/theme"
	"github.com/dmaia/casedesk/internal/ui/caselist"
)

// minColumnWidth keeps narrow terminals from producing unreadable columns.
const minColumnWidth = 20

// cardHeight is the number of lines one case card occupies, including the
// trailing blank line.
const cardHeight = 4

// OpenCaseMsg asks the parent to open the detail view for a case.
type OpenCaseMsg struct {
	Number string
}

// Model is the stage board view component.
type Model struct {
	cases  []model.Case
	keys   *keys.KeyMap
	col    int
	row    int
	width  int
	height int
}

// New creates a new stage board model.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{keys: k, width: width, height: height}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetCases replaces the backing case collection and clamps the cursor.
func (m *Model) SetCases(cases []model.Case) {
	m.cases = cases
	m.clampCursor()
}

// Update handles messages for the stage board view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case keyMsg.String() == "h", keyMsg.String() == "left":
		if m.col > 0 {
			m.col--
			m.row = 0
		}

	case keyMsg.String() == "l", keyMsg.String() == "right":
		if m.col < len(model.StageOrder)-1 {
			m.col++
			m.row = 0
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.row < len(m.column(m.col))-1 {
			m.row++
		}

	case key.Matches(keyMsg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}

	case key.Matches(keyMsg, m.keys.Select):
		cards := m.column(m.col)
		if m.row < len(cards) {
			number := cards[m.row].Number
			return m, func() tea.Msg {
				return OpenCaseMsg{Number: number}
			}
		}
	}

	return m, nil
}

// View renders the board: a totals line and one column per stage.
func (m Model) View() string {
	grayStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)

	if len(m.cases) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("Nenhum processo carregado.")
	}

	summary := grayStyle.Render(fmt.Sprintf(
		"%d processos | Valor total %s",
		len(m.cases), caselist.FormatAmount(ClaimTotal(m.cases)),
	))

	colWidth := m.width/len(model.StageOrder) - 1
	if colWidth < minColumnWidth {
		colWidth = minColumnWidth
	}

	columns := make([]string, 0, len(model.StageOrder))
	for i, stage := range model.StageOrder {
		columns = append(columns, m.renderColumn(i, stage, colWidth))
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	return lipgloss.NewStyle().Padding(1, 1).Render(
		lipgloss.JoinVertical(lipgloss.Left, summary, "", board),
	)
}

// renderColumn draws one stage column: header with count and claim total,
// then the case cards, scrolled so the cursor stays visible.
func (m Model) renderColumn(index int, stage model.Stage, width int) string {
	cards := m.column(index)
	active := index == m.col

	header := fmt.Sprintf("%s (%d)", stage, len(cards))
	headerStyle := theme.StageStyle(string(stage)).Bold(active)
	totalStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)

	lines := []string{
		headerStyle.Render(truncate(header, width)),
		totalStyle.Render(truncate(caselist.FormatAmount(ClaimTotal(cards)), width)),
		lipgloss.NewStyle().Foreground(theme.ColorSubtle).Render(
			strings.Repeat("─", width),
		),
	}

	if len(cards) == 0 {
		lines = append(lines, totalStyle.Render("vazio"))
	}

	visible := (m.height - 6) / cardHeight
	if visible < 1 {
		visible = 1
	}
	start := 0
	if active && m.row >= visible {
		start = m.row - visible + 1
	}
	end := start + visible
	if end > len(cards) {
		end = len(cards)
	}

	for i := start; i < end; i++ {
		lines = append(lines, m.renderCard(cards[i], width, active && i == m.row))
	}
	if end < len(cards) {
		lines = append(lines, totalStyle.Render(
			fmt.Sprintf("... e mais %d", len(cards)-end),
		))
	}

	return lipgloss.NewStyle().
		Width(width).
		PaddingRight(1).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderCard draws one compact case card.
func (m Model) renderCard(c model.Case, width int, selected bool) string {
	numberStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	grayStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)

	subject := c.Subject
	if subject == "" {
		subject = c.Class
	}
	party := ""
	if len(c.Parties) > 0 {
		party = c.Parties[0]
	}

	footer := caselist.FormatAmount(c.ClaimAmount)
	if last := c.LastMovement(); last != nil && last.Date != "" {
		footer += "  " + last.Date
	}

	lines := []string{
		numberStyle.Render(truncate(c.Number, width-2)),
		truncate(subject, width-2),
		grayStyle.Render(truncate(party, width-2)),
		grayStyle.Render(truncate(footer, width-2)),
	}
	card := lipgloss.JoinVertical(lipgloss.Left, lines...)

	if selected {
		return theme.SelectedItemStyle.Render(card)
	}
	return theme.ListItemStyle.Render(card)
}

// column returns the cases in the given stage column, source order kept.
func (m Model) column(index int) []model.Case {
	return Buckets(m.cases)[model.StageOrder[index]]
}

// clampCursor keeps the cursor inside the current column after a reload.
func (m *Model) clampCursor() {
	cards := m.column(m.col)
	if m.row >= len(cards) {
		m.row = 0
	}
}

// SetSize updates the board dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Buckets groups cases by stage, preserving source order within each
// bucket. Every stage has an entry, possibly empty.
func Buckets(cases []model.Case) map[model.Stage][]model.Case {
	buckets := make(map[model.Stage][]model.Case, len(model.StageOrder))
	for _, stage := range model.StageOrder {
		buckets[stage] = nil
	}
	for _, c := range cases {
		buckets[c.Stage] = append(buckets[c.Stage], c)
	}
	return buckets
}

// ClaimTotal sums the claim amounts of the given cases.
func ClaimTotal(cases []model.Case) float64 {
	var total float64
	for _, c := range cases {
		total += c.ClaimAmount
	}
	return total
}

// truncate cuts a string to at most width runes with an ellipsis.
func truncate(s string, width int) string {
	if width < 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
