package contactdetail

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmaia/casedesk/internal/keys"
	"github.com/dmaia/casedesk/internal/model"
)

func testContact() *model.Contact {
	return &model.Contact{
		ID:     "c1",
		Name:   "Ana Silva",
		Phone:  "(11) 99999-0000",
		Type:   model.ContactTypeParty,
		Status: model.ContactStatusActive,
	}
}

func TestSetContact_RendersAnnotations(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 24)

	contactID := "c1"
	m.SetContact(testContact(),
		[]model.Case{{Number: "0001", Stage: model.StageEvidence, Subject: "Cobrança"}},
		[]model.Note{{ID: "n1", ContactID: &contactID, Content: "Prefere e-mail", CreatedAt: time.Now()}},
		[]model.Task{{ID: "t1", ContactID: &contactID, Title: "Enviar procuração"}},
	)

	assert.Equal(t, "c1", m.ContactID())

	content := m.renderContent()
	assert.Contains(t, content, "Ana Silva")
	assert.Contains(t, content, "0001")
	assert.Contains(t, content, "Prefere e-mail")
	assert.Contains(t, content, "Enviar procuração")
}

func TestUpdate_ToggleEmitsSelectedTaskID(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 24)
	contactID := "c1"
	m.SetContact(testContact(), nil, nil, []model.Task{
		{ID: "t1", ContactID: &contactID, Title: "a"},
		{ID: "t2", ContactID: &contactID, Title: "b"},
	})

	// Shift+j moves the cursor to the second task before toggling.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("J")})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	require.NotNil(t, cmd)

	msg, ok := cmd().(ToggleTaskMsg)
	require.True(t, ok)
	assert.Equal(t, "t2", msg.TaskID)
}
