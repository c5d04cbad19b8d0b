// Package session owns the in-memory application state for one run: the
// loaded case collection, the derived alert list, and the user-editable
// collections backed by the store. All mutation funnels through its
// methods; there is exactly one writer (the open session), so every
// mutation is a synchronous read-modify-write followed by a store write.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmaia/casedesk/internal/deadline"
	"github.com/dmaia/casedesk/internal/directory"
	"github.com/dmaia/casedesk/internal/loader"
	"github.com/dmaia/casedesk/internal/model"
	"github.com/dmaia/casedesk/internal/store"
)

// Session is the top-level application state.
type Session struct {
	loader *loader.Loader
	store  store.Store
	log    *zap.Logger

	Cases    []model.Case
	Contacts []model.Contact
	Notes    []model.Note
	Tasks    []model.Task
	Alerts   []model.Alert

	dismissed map[string]bool
}

// New creates an empty session. Call Init to populate it.
func New(l *loader.Loader, st store.Store, log *zap.Logger) *Session {
	return &Session{
		loader:    l,
		store:     st,
		log:       log,
		dismissed: make(map[string]bool),
	}
}

// Init performs the one-shot initialization: load the case export, merge
// the contact directory, read the persisted collections, and generate the
// alert list. An unreachable export yields an empty case collection, not
// an error; a broken local store is fatal.
func (s *Session) Init(ctx context.Context) error {
	s.Cases = s.loader.Load(ctx)

	persisted, err := s.store.GetContacts(ctx)
	if err != nil {
		return fmt.Errorf("loading contacts: %w", err)
	}
	s.Contacts = directory.Build(s.Cases, persisted, time.Now().UTC())
	if err := s.store.UpsertContacts(ctx, s.Contacts); err != nil {
		return fmt.Errorf("saving contact directory: %w", err)
	}

	if s.Notes, err = s.store.GetNotes(ctx, store.NoteFilter{}); err != nil {
		return fmt.Errorf("loading notes: %w", err)
	}
	if s.Tasks, err = s.store.GetTasks(ctx, store.TaskFilter{IncludeCompleted: true}); err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}
	if s.dismissed, err = s.store.GetDismissedAlertIDs(ctx); err != nil {
		return fmt.Errorf("loading dismissed alerts: %w", err)
	}

	s.Alerts = deadline.New(time.Now()).Generate(s.Cases, s.dismissed)

	s.log.Info("session initialized",
		zap.Int("cases", len(s.Cases)),
		zap.Int("contacts", len(s.Contacts)),
		zap.Int("alerts", len(s.Alerts)),
	)
	return nil
}

// CaseByNumber looks up a case by its number. A miss is a normal outcome,
// not an error.
func (s *Session) CaseByNumber(number string) (*model.Case, bool) {
	for i := range s.Cases {
		if s.Cases[i].Number == number {
			return &s.Cases[i], true
		}
	}
	return nil, false
}

// ContactByID looks up a contact by its synthetic ID.
func (s *Session) ContactByID(id string) (*model.Contact, bool) {
	for i := range s.Contacts {
		if s.Contacts[i].ID == id {
			return &s.Contacts[i], true
		}
	}
	return nil, false
}

// NotesFor returns the notes scoped to a case number or contact ID.
func (s *Session) NotesFor(caseNumber, contactID string) []model.Note {
	var out []model.Note
	for _, n := range s.Notes {
		if caseNumber != "" && n.CaseNumber != nil && *n.CaseNumber == caseNumber {
			out = append(out, n)
		}
		if contactID != "" && n.ContactID != nil && *n.ContactID == contactID {
			out = append(out, n)
		}
	}
	return out
}

// TasksFor returns the tasks scoped to a case number or contact ID.
func (s *Session) TasksFor(caseNumber, contactID string) []model.Task {
	var out []model.Task
	for _, t := range s.Tasks {
		if caseNumber != "" && t.CaseNumber != nil && *t.CaseNumber == caseNumber {
			out = append(out, t)
		}
		if contactID != "" && t.ContactID != nil && *t.ContactID == contactID {
			out = append(out, t)
		}
	}
	return out
}

// AddNote persists a new note and prepends it to the in-memory list.
func (s *Session) AddNote(ctx context.Context, note model.Note) (model.Note, error) {
	note.ID = uuid.New().String()
	note.CreatedAt = time.Now().UTC()

	if err := s.store.CreateNote(ctx, note); err != nil {
		return model.Note{}, err
	}
	s.Notes = append([]model.Note{note}, s.Notes...)
	return note, nil
}

// AddTask persists a new task and appends it to the in-memory list.
func (s *Session) AddTask(ctx context.Context, task model.Task) (model.Task, error) {
	task.ID = uuid.New().String()

	if err := s.store.CreateTask(ctx, task); err != nil {
		return model.Task{}, err
	}
	s.Tasks = append(s.Tasks, task)
	return task, nil
}

// ToggleTask flips a task's completion state in the store and in memory.
func (s *Session) ToggleTask(ctx context.Context, id string) error {
	if err := s.store.ToggleTask(ctx, id); err != nil {
		return err
	}
	now := time.Now().UTC()
	for i := range s.Tasks {
		if s.Tasks[i].ID != id {
			continue
		}
		s.Tasks[i].Completed = !s.Tasks[i].Completed
		if s.Tasks[i].Completed {
			s.Tasks[i].CompletedAt = &now
		} else {
			s.Tasks[i].CompletedAt = nil
		}
		s.Tasks[i].UpdatedAt = now
		break
	}
	return nil
}

// DeleteNote removes a note from the store and the in-memory list.
func (s *Session) DeleteNote(ctx context.Context, id string) error {
	if err := s.store.DeleteNote(ctx, id); err != nil {
		return err
	}
	for i := range s.Notes {
		if s.Notes[i].ID == id {
			s.Notes = append(s.Notes[:i], s.Notes[i+1:]...)
			break
		}
	}
	return nil
}

// DeleteTask removes a task from the store and the in-memory list.
func (s *Session) DeleteTask(ctx context.Context, id string) error {
	if err := s.store.DeleteTask(ctx, id); err != nil {
		return err
	}
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			s.Tasks = append(s.Tasks[:i], s.Tasks[i+1:]...)
			break
		}
	}
	return nil
}

// DismissAlert records the alert ID as dismissed and drops it from the
// current list. The ID is deterministic, so the alert stays gone on the
// next load.
func (s *Session) DismissAlert(ctx context.Context, id string) error {
	if err := s.store.DismissAlert(ctx, id); err != nil {
		return err
	}
	s.dismissed[id] = true

	for i := range s.Alerts {
		if s.Alerts[i].ID == id {
			s.Alerts = append(s.Alerts[:i], s.Alerts[i+1:]...)
			break
		}
	}
	return nil
}

// UpdateContact persists contact edits and refreshes the in-memory entry.
func (s *Session) UpdateContact(ctx context.Context, contact model.Contact) error {
	if err := s.store.UpdateContact(ctx, contact); err != nil {
		return err
	}
	for i := range s.Contacts {
		if s.Contacts[i].ID == contact.ID {
			contact.CaseCount = s.Contacts[i].CaseCount
			s.Contacts[i] = contact
			break
		}
	}
	return nil
}
