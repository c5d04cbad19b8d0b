package caselist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmaia/casedesk/internal/model"
	"github.com/dmaia/casedesk/internal/theme"
)

// CaseItem wraps a model.Case so it can be used in a bubbles/list.
type CaseItem struct {
	Case model.Case
}

// FilterValue returns the string used for fuzzy filtering.
func (i CaseItem) FilterValue() string {
	return i.Case.Number + " " + strings.Join(i.Case.Parties, " ")
}

// Title returns the case number for the list.
func (i CaseItem) Title() string { return i.Case.Number }

// Description returns a short summary line for the list.
func (i CaseItem) Description() string {
	parts := []string{
		string(i.Case.Stage),
		i.Case.Subject,
	}
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering case rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single case line: number, stage badge, subject, parties
// and claim amount.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ci, ok := item.(CaseItem)
	if !ok {
		return
	}
	c := ci.Case

	numberStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	number := numberStyle.Render(c.Number)

	stageBadge := theme.StageStyle(string(c.Stage)).Render(string(c.Stage))

	subject := c.Subject
	if subject == "" {
		subject = c.Class
	}

	partyStr := ""
	if len(c.Parties) > 0 {
		partyStr = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render(" " + summarizeParties(c.Parties))
	}

	amountStr := ""
	if c.ClaimAmount > 0 {
		amountStr = lipgloss.NewStyle().
			Foreground(theme.ColorGreen).
			Render(fmt.Sprintf("  %s", FormatAmount(c.ClaimAmount)))
	}

	line := fmt.Sprintf("%s %s %s%s%s", number, stageBadge, subject, partyStr, amountStr)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// summarizeParties shows at most two party names.
func summarizeParties(parties []string) string {
	display := parties
	if len(display) > 2 {
		display = display[:2]
	}
	s := strings.Join(display, " × ")
	if len(parties) > 2 {
		s += fmt.Sprintf(" +%d", len(parties)-2)
	}
	return s
}

// FormatAmount renders a claim amount in Brazilian currency notation,
// e.g. R$ 15.000,50.
func FormatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	parts := strings.SplitN(s, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var b strings.Builder
	n := len(intPart)
	for i, r := range intPart {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return "R$ " + b.String() + "," + fracPart
}
