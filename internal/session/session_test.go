package session

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dmaia/casedesk/internal/loader"
	"github.com/dmaia/casedesk/internal/model"
	"github.com/dmaia/casedesk/internal/source"
	"github.com/dmaia/casedesk/internal/store"
)

// stubSource feeds the loader a fixed export.
type stubSource struct {
	rows []source.Row
}

func (s *stubSource) FetchRows(ctx context.Context) ([]source.Row, error) {
	return s.rows, nil
}

// newSession builds a session over a fresh SQLite store and the given rows.
func newSession(t *testing.T, rows []source.Row) *Session {
	t.Helper()
	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "casedesk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	l := loader.New(&stubSource{rows: rows}, zap.NewNop())
	return New(l, st, zap.NewNop())
}

func exportRow(number, parties, movements string) source.Row {
	return source.Row{
		"Numero_Processo":   number,
		"Partes_Envolvidas": parties,
		"Movimentacoes":     movements,
	}
}

func TestInit_PopulatesState(t *testing.T) {
	// A last movement dated today with a deadline keyword always yields
	// one alert, regardless of when the test runs.
	today := time.Now().Format("02/01/2006")
	rows := []source.Row{
		exportRow("0001", "Ana Silva; Banco Azul S.A.",
			fmt.Sprintf("[%s] Prazo para manifestação", today)),
	}

	s := newSession(t, rows)
	require.NoError(t, s.Init(context.Background()))

	require.Len(t, s.Cases, 1)
	assert.Len(t, s.Contacts, 2)
	require.Len(t, s.Alerts, 1)
	assert.Equal(t, "0001:last", s.Alerts[0].ID)
	assert.Equal(t, 0, s.Alerts[0].DayOffset)
}

func TestDismissAlert_SurvivesReinitialization(t *testing.T) {
	today := time.Now().Format("02/01/2006")
	rows := []source.Row{
		exportRow("0001", "Ana Silva",
			fmt.Sprintf("[%s] Intimação expedida", today)),
	}

	s := newSession(t, rows)
	ctx := context.Background()
	require.NoError(t, s.Init(ctx))
	require.Len(t, s.Alerts, 1)

	require.NoError(t, s.DismissAlert(ctx, s.Alerts[0].ID))
	assert.Empty(t, s.Alerts)

	// A fresh init over the same store must not resurrect the alert.
	require.NoError(t, s.Init(ctx))
	assert.Empty(t, s.Alerts)
}

func TestAddNoteAndTask(t *testing.T) {
	s := newSession(t, []source.Row{exportRow("0001", "Ana Silva", "")})
	ctx := context.Background()
	require.NoError(t, s.Init(ctx))

	caseNumber := "0001"
	note, err := s.AddNote(ctx, model.Note{
		CaseNumber: &caseNumber,
		Content:    "Aguardando documentos do cliente",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)
	require.Len(t, s.NotesFor("0001", ""), 1)

	task, err := s.AddTask(ctx, model.Task{
		CaseNumber: &caseNumber,
		Title:      "Protocolar manifestação",
	})
	require.NoError(t, err)

	require.NoError(t, s.ToggleTask(ctx, task.ID))
	tasks := s.TasksFor("0001", "")
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Completed)
	assert.NotNil(t, tasks[0].CompletedAt)
}

func TestContactScopedAnnotations(t *testing.T) {
	s := newSession(t, []source.Row{exportRow("0001", "Ana Silva", "")})
	ctx := context.Background()
	require.NoError(t, s.Init(ctx))

	require.NotEmpty(t, s.Contacts)
	contactID := s.Contacts[0].ID

	_, err := s.AddNote(ctx, model.Note{
		ContactID: &contactID,
		Content:   "Prefere contato por e-mail",
	})
	require.NoError(t, err)
	_, err = s.AddTask(ctx, model.Task{
		ContactID: &contactID,
		Title:     "Enviar procuração",
	})
	require.NoError(t, err)

	require.Len(t, s.NotesFor("", contactID), 1)
	require.Len(t, s.TasksFor("", contactID), 1)

	// Contact annotations never leak into case scope and vice versa.
	assert.Empty(t, s.NotesFor("0001", ""))
	assert.Empty(t, s.TasksFor("0001", ""))
	assert.Empty(t, s.NotesFor("", "unknown-id"))

	// The contact scope survives a reload from the store.
	require.NoError(t, s.Init(ctx))
	assert.Len(t, s.NotesFor("", contactID), 1)
	assert.Len(t, s.TasksFor("", contactID), 1)
}

func TestDeleteNoteAndTask(t *testing.T) {
	s := newSession(t, []source.Row{exportRow("0001", "Ana Silva", "")})
	ctx := context.Background()
	require.NoError(t, s.Init(ctx))

	caseNumber := "0001"
	note, err := s.AddNote(ctx, model.Note{CaseNumber: &caseNumber, Content: "rascunho"})
	require.NoError(t, err)
	task, err := s.AddTask(ctx, model.Task{CaseNumber: &caseNumber, Title: "ligar para cliente"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteNote(ctx, note.ID))
	require.NoError(t, s.DeleteTask(ctx, task.ID))
	assert.Empty(t, s.NotesFor("0001", ""))
	assert.Empty(t, s.TasksFor("0001", ""))

	// Deleting twice surfaces the store's not-found error.
	assert.Error(t, s.DeleteTask(ctx, task.ID))
}

func TestUpdateContact_KeepsDerivedCaseCount(t *testing.T) {
	s := newSession(t, []source.Row{exportRow("0001", "Ana Silva", "")})
	ctx := context.Background()
	require.NoError(t, s.Init(ctx))

	c, ok := s.ContactByID(s.Contacts[0].ID)
	require.True(t, ok)

	edited := *c
	edited.Email = "ana@exemplo.com.br"
	edited.CaseCount = 0 // callers are not trusted with the derived field
	require.NoError(t, s.UpdateContact(ctx, edited))

	updated, _ := s.ContactByID(c.ID)
	assert.Equal(t, "ana@exemplo.com.br", updated.Email)
	assert.Equal(t, 1, updated.CaseCount)
}

func TestCaseByNumber_MissIsNotAnError(t *testing.T) {
	s := newSession(t, []source.Row{exportRow("0001", "", "")})
	require.NoError(t, s.Init(context.Background()))

	_, ok := s.CaseByNumber("9999")
	assert.False(t, ok)
}
