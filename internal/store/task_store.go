package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmaia/casedesk/internal/model"
)

// CreateTask inserts a new task. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateTask(ctx context.Context, task model.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return fmt.Errorf("task title must not be empty")
	}
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (
			id, case_number, contact_id, title, due_date,
			completed, created_at, completed_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.CaseNumber, task.ContactID, task.Title, task.DueDate,
		boolToInt(task.Completed), task.CreatedAt, task.CompletedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}
	return nil
}

// GetTasks retrieves tasks matching the filter, ordered by due date with
// undated tasks last.
func (s *SQLiteStore) GetTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
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
	if !filter.IncludeCompleted {
		conditions = append(conditions, "completed = 0")
	}

	query := "SELECT * FROM tasks"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY due_date IS NULL, due_date, created_at"

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// ToggleTask flips the completed state of a task, maintaining completed_at.
func (s *SQLiteStore) ToggleTask(ctx context.Context, id string) error {
	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET
			completed = CASE WHEN completed = 0 THEN 1 ELSE 0 END,
			completed_at = CASE WHEN completed = 0 THEN ? ELSE NULL END,
			updated_at = ?
		WHERE id = ?`,
		now, now, id,
	)
	if err != nil {
		return fmt.Errorf("toggling task %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %s not found", id)
	}
	return nil
}

// DeleteTask removes a task by ID.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %s not found", id)
	}
	return nil
}

// scanTask scans a task row from a sqlx.Rows result set.
func scanTask(rows interface {
	Scan(dest ...interface{}) error
}) (model.Task, error) {
	var (
		task         model.Task
		caseNumber   *string
		contactID    *string
		dueDate      *time.Time
		completedInt int
		completedAt  *time.Time
	)

	err := rows.Scan(
		&task.ID, &caseNumber, &contactID, &task.Title, &dueDate,
		&completedInt, &task.CreatedAt, &completedAt, &task.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("scanning task row: %w", err)
	}

	task.CaseNumber = caseNumber
	task.ContactID = contactID
	task.DueDate = dueDate
	task.Completed = completedInt != 0
	task.CompletedAt = completedAt

	return task, nil
}
