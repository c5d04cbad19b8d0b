package store

import (
	"context"

	"github.com/dmaia/casedesk/internal/model"
)

// NoteFilter scopes note queries to a case, a contact, or neither.
type NoteFilter struct {
	CaseNumber *string
	ContactID  *string
}

// TaskFilter scopes task queries.
type TaskFilter struct {
	CaseNumber       *string
	ContactID        *string
	IncludeCompleted bool
}

// Store defines the persistence interface for the four locally kept
// collections: contacts, notes, tasks, and dismissed-alert identifiers.
// Case data itself is never persisted; it is reloaded from the export on
// every start.
type Store interface {
	// === Contacts ===

	UpsertContacts(ctx context.Context, contacts []model.Contact) error
	GetContacts(ctx context.Context) ([]model.Contact, error)
	UpdateContact(ctx context.Context, contact model.Contact) error

	// === Notes ===

	CreateNote(ctx context.Context, note model.Note) error
	GetNotes(ctx context.Context, filter NoteFilter) ([]model.Note, error)
	DeleteNote(ctx context.Context, id string) error

	// === Tasks ===

	CreateTask(ctx context.Context, task model.Task) error
	GetTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	ToggleTask(ctx context.Context, id string) error
	DeleteTask(ctx context.Context, id string) error

	// === Dismissed alerts ===

	DismissAlert(ctx context.Context, id string) error
	GetDismissedAlertIDs(ctx context.Context) (map[string]bool, error)
}
