package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmaia/casedesk/internal/model"
)

func newTestStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "casedesk.db")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func strPtr(s string) *string { return &s }

func TestContacts_UpsertGetUpdate(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	contacts := []model.Contact{
		{ID: "c-1", Name: "Ana Silva", Type: model.ContactTypeParty,
			Status: model.ContactStatusActive, CreatedAt: now, UpdatedAt: now},
		{ID: "c-2", Name: "Banco Azul S.A.", Type: model.ContactTypeParty,
			Status: model.ContactStatusActive, CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, s.UpsertContacts(ctx, contacts))

	got, err := s.GetContacts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Ana Silva", got[0].Name)

	// Upserting again must not duplicate.
	require.NoError(t, s.UpsertContacts(ctx, contacts))
	got, err = s.GetContacts(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	edited := got[0]
	edited.Phone = "(11) 98888-7777"
	edited.Type = model.ContactTypeLawyer
	require.NoError(t, s.UpdateContact(ctx, edited))

	got, err = s.GetContacts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "(11) 98888-7777", got[0].Phone)
	assert.Equal(t, model.ContactTypeLawyer, got[0].Type)
}

func TestUpdateContact_NotFound(t *testing.T) {
	s, _ := newTestStore(t)
	err := s.UpdateContact(context.Background(), model.Contact{ID: "missing"})
	assert.Error(t, err)
}

func TestNotes_CreateGetDelete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateNote(ctx, model.Note{
		CaseNumber: strPtr("0001"),
		Content:    "Cliente ligou pedindo atualização",
	}))
	require.NoError(t, s.CreateNote(ctx, model.Note{
		ContactID: strPtr("c-1"),
		Content:   "Endereço confirmado",
	}))

	all, err := s.GetNotes(ctx, NoteFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.NotEmpty(t, all[0].ID)

	byCase, err := s.GetNotes(ctx, NoteFilter{CaseNumber: strPtr("0001")})
	require.NoError(t, err)
	require.Len(t, byCase, 1)
	assert.Equal(t, "Cliente ligou pedindo atualização", byCase[0].Content)

	byContact, err := s.GetNotes(ctx, NoteFilter{ContactID: strPtr("c-1")})
	require.NoError(t, err)
	require.Len(t, byContact, 1)

	require.NoError(t, s.DeleteNote(ctx, byCase[0].ID))
	remaining, err := s.GetNotes(ctx, NoteFilter{})
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestCreateNote_RejectsEmptyContent(t *testing.T) {
	s, _ := newTestStore(t)
	err := s.CreateNote(context.Background(), model.Note{Content: "   "})
	assert.Error(t, err)
}

func TestTasks_CreateToggleDelete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	due := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateTask(ctx, model.Task{
		CaseNumber: strPtr("0001"),
		Title:      "Protocolar manifestação",
		DueDate:    &due,
	}))

	tasks, err := s.GetTasks(ctx, TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.False(t, tasks[0].Completed)
	assert.Nil(t, tasks[0].CompletedAt)

	require.NoError(t, s.ToggleTask(ctx, tasks[0].ID))

	// Completed tasks drop out of the default filter.
	open, err := s.GetTasks(ctx, TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, open)

	all, err := s.GetTasks(ctx, TaskFilter{IncludeCompleted: true})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Completed)
	assert.NotNil(t, all[0].CompletedAt)

	// Toggling back clears completed_at.
	require.NoError(t, s.ToggleTask(ctx, all[0].ID))
	all, err = s.GetTasks(ctx, TaskFilter{IncludeCompleted: true})
	require.NoError(t, err)
	assert.False(t, all[0].Completed)
	assert.Nil(t, all[0].CompletedAt)

	require.NoError(t, s.DeleteTask(ctx, all[0].ID))
	_, err = s.GetTasks(ctx, TaskFilter{IncludeCompleted: true})
	require.NoError(t, err)
}

func TestDismissedAlerts_PersistAcrossReopen(t *testing.T) {
	s, path := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.DismissAlert(ctx, "0001:last"))
	require.NoError(t, s.DismissAlert(ctx, "0001:20/06/2024"))
	// Dismissing twice is a no-op.
	require.NoError(t, s.DismissAlert(ctx, "0001:last"))

	dismissed, err := s.GetDismissedAlertIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, dismissed, 2)
	assert.True(t, dismissed["0001:last"])

	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	dismissed, err = reopened.GetDismissedAlertIDs(ctx)
	require.NoError(t, err)
	assert.True(t, dismissed["0001:20/06/2024"])
}
