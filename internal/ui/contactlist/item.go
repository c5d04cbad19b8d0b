package contactlist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmaia/casedesk/internal/model"
	"github.com/dmaia/casedesk/internal/theme"
)

// ContactItem wraps a model.Contact so it can be used in a bubbles/list.
type ContactItem struct {
	Contact model.Contact
}

// FilterValue returns the string used for fuzzy filtering.
func (i ContactItem) FilterValue() string { return i.Contact.Name }

// Title returns the contact name for the list.
func (i ContactItem) Title() string { return i.Contact.Name }

// Description returns a short summary line for the list.
func (i ContactItem) Description() string {
	return i.Contact.Type + " | " + i.Contact.Status
}

// ItemDelegate implements list.ItemDelegate for rendering contact rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single contact line: name, type badge, case count and
// contact details when present.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ci, ok := item.(ContactItem)
	if !ok {
		return
	}
	c := ci.Contact

	nameStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	grayStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)

	name := nameStyle.Render(c.Name)
	typeBadge := theme.ContactTypeStyle(c.Type).Render(c.Type)

	caseStr := grayStyle.Render(fmt.Sprintf("%d processo(s)", c.CaseCount))

	details := ""
	if c.Email != "" {
		details += "  " + grayStyle.Render(c.Email)
	}
	if c.Phone != "" {
		details += "  " + grayStyle.Render(c.Phone)
	}

	inactive := ""
	if c.Status == model.ContactStatusInactive {
		inactive = lipgloss.NewStyle().
			Foreground(theme.ColorYellow).
			Render(" inativo")
	}

	line := fmt.Sprintf("%s %s %s%s%s", name, typeBadge, caseStr, details, inactive)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
