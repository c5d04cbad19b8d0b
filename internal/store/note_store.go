package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmaia/casedesk/internal/model"
)

// CreateNote inserts a new note. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateNote(ctx context.Context, note model.Note) error {
	if strings.TrimSpace(note.Content) == "" {
		return fmt.Errorf("note content must not be empty")
	}
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (id, case_number, contact_id, content, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		note.ID, note.CaseNumber, note.ContactID, note.Content, note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating note: %w", err)
	}
	return nil
}

// GetNotes retrieves notes matching the filter, newest first.
func (s *SQLiteStore) GetNotes(ctx context.Context, filter NoteFilter) ([]model.Note, error) {
	var conditions []string
	var args []interface{}

	if filter.CaseNumber != nil {
		conditions = append(conditions, "case_number = ?")
		args = append(args, *filter.CaseNumber)
	}
	if filter.ContactID != nil {
		conditions = append(conditions, "contact_id = ?")
		args = append(args, *filter.ContactID)
	}

	query := "SELECT * FROM notes"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(
			&n.ID, &n.CaseNumber, &n.ContactID, &n.Content, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning note row: %w", err)
		}
		notes = append(notes, n)
	}

	return notes, rows.Err()
}

// DeleteNote removes a note by ID.
func (s *SQLiteStore) DeleteNote(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("note %s not found", id)
	}
	return nil
}
