// Package dashboard renders the summary screen: case and claim totals,
// the stage funnel, alert urgency counts, the next deadlines and the
// newest movements.
package dashboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmaia/casedesk/internal/model"
	"github.com/dmaia/casedesk/internal/theme"
	"github.com/dmaia/casedesk/internal/ui/caselist"
)

// maxBarWidth caps the funnel bar length.
const maxBarWidth = 30

// maxUpcoming caps how many deadlines the dashboard lists.
const maxUpcoming = 5

// maxRecent caps how many movements the feed lists.
const maxRecent = 5

// maxRecentRunes caps the description length in the movement feed.
const maxRecentRunes = 80

// Model is the dashboard view component.
type Model struct {
	cases  []model.Case
	alerts []model.Alert
	tasks  []model.Task
	width  int
	height int
}

// New creates a new dashboard model.
func New(width, height int) Model {
	return Model{width: width, height: height}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetData replaces the collections backing the dashboard.
func (m *Model) SetData(cases []model.Case, alerts []model.Alert, tasks []model.Task) {
	m.cases = cases
	m.alerts = alerts
	m.tasks = tasks
}

// Update handles messages (the dashboard is read-only).
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	var sections []string

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	grayStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)

	// Headline counters.
	overdue, today, upcoming := m.alertCounts()
	openTasks := 0
	for _, t := range m.tasks {
		if !t.Completed {
			openTasks++
		}
	}

	counters := []string{
		m.counter("Processos", fmt.Sprintf("%d", len(m.cases)), theme.ColorBlue),
		m.counter("Valor total", caselist.FormatAmount(m.claimTotal()), theme.ColorGreen),
		m.counter("Vencidos", fmt.Sprintf("%d", overdue), theme.ColorRed),
		m.counter("Hoje", fmt.Sprintf("%d", today), theme.ColorOrange),
		m.counter("Próximos", fmt.Sprintf("%d", upcoming), theme.ColorYellow),
		m.counter("Tarefas abertas", fmt.Sprintf("%d", openTasks), theme.ColorMagenta),
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, counters...))
	sections = append(sections, "")

	// Stage funnel.
	sections = append(sections, headerStyle.Render("Fases"))
	sections = append(sections, "")
	counts := m.stageCounts()
	most := 0
	for _, n := range counts {
		if n > most {
			most = n
		}
	}
	for _, stage := range model.StageOrder {
		n := counts[stage]
		bar := ""
		if most > 0 && n > 0 {
			width := n * maxBarWidth / most
			if width == 0 {
				width = 1
			}
			bar = theme.StageStyle(string(stage)).
				Padding(0).
				Render(strings.Repeat("█", width))
		}
		sections = append(sections, fmt.Sprintf(
			"%-16s %3d %s", stage, n, bar,
		))
	}
	sections = append(sections, "")

	// Next deadlines. The alert list is already sorted by urgency.
	sections = append(sections, headerStyle.Render("Próximos Prazos"))
	sections = append(sections, "")
	if len(m.alerts) == 0 {
		sections = append(sections, grayStyle.Render("Nenhum alerta pendente."))
	}
	for i, a := range m.alerts {
		if i >= maxUpcoming {
			sections = append(sections, grayStyle.Render(
				fmt.Sprintf("... e mais %d (tecla 3)", len(m.alerts)-maxUpcoming),
			))
			break
		}
		urgency := theme.UrgencyStyle(a.DayOffset).Render(fmt.Sprintf("%+dd", a.DayOffset))
		sections = append(sections, fmt.Sprintf(
			"%s %s %s  %s", urgency, a.CaseNumber,
			grayStyle.Render(a.Date), a.Description,
		))
	}
	sections = append(sections, "")

	// Newest movement per case, merged across the collection.
	sections = append(sections, headerStyle.Render("Últimas Movimentações"))
	sections = append(sections, "")
	recent := m.recentMovements(maxRecent)
	if len(recent) == 0 {
		sections = append(sections, grayStyle.Render("Nenhuma movimentação datada."))
	}
	dateStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue)
	for _, r := range recent {
		stageBadge := theme.StageStyle(string(r.Stage)).Render(string(r.Stage))
		sections = append(sections, fmt.Sprintf(
			"%s %s %s  %s", dateStyle.Render(r.Date), r.CaseNumber,
			stageBadge, truncate(r.Description, maxRecentRunes),
		))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// counter renders one headline number box.
func (m Model) counter(label, value string, color lipgloss.AdaptiveColor) string {
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(color)
	labelStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)

	return theme.BorderStyle.
		Padding(0, 2).
		Render(lipgloss.JoinVertical(
			lipgloss.Center,
			valueStyle.Render(value),
			labelStyle.Render(label),
		))
}

// stageCounts tallies cases per stage.
func (m Model) stageCounts() map[model.Stage]int {
	counts := make(map[model.Stage]int)
	for _, c := range m.cases {
		counts[c.Stage]++
	}
	return counts
}

// claimTotal sums the claim amounts over the whole case collection.
func (m Model) claimTotal() float64 {
	var total float64
	for _, c := range m.cases {
		total += c.ClaimAmount
	}
	return total
}

// recentMovement is one row of the movement feed.
type recentMovement struct {
	Date        string
	CaseNumber  string
	Stage       model.Stage
	Description string
}

// recentMovements collects the newest dated movement of each case and
// returns the most recent ones, newest first. Undated and unparseable
// dates are skipped.
func (m Model) recentMovements(limit int) []recentMovement {
	var out []recentMovement
	stamps := make(map[string]time.Time)

	for _, c := range m.cases {
		last := c.LastMovement()
		if last == nil || last.Date == "" {
			continue
		}
		ts, err := time.Parse("02/01/2006", last.Date)
		if err != nil {
			continue
		}
		out = append(out, recentMovement{
			Date:        last.Date,
			CaseNumber:  c.Number,
			Stage:       c.Stage,
			Description: last.Description,
		})
		stamps[c.Number] = ts
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := stamps[out[i].CaseNumber], stamps[out[j].CaseNumber]
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return out[i].CaseNumber < out[j].CaseNumber
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// truncate cuts a description to at most width runes with an ellipsis.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

// alertCounts splits the alert list into overdue, due today and upcoming.
func (m Model) alertCounts() (overdue, today, upcoming int) {
	for _, a := range m.alerts {
		switch {
		case a.DayOffset < 0:
			overdue++
		case a.DayOffset == 0:
			today++
		default:
			upcoming++
		}
	}
	return overdue, today, upcoming
}

// SetSize updates the dashboard dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
