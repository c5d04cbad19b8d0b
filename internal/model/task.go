package model

import "time"

// Task is a user-created follow-up item, optionally scoped to a case or
// a contact.
type Task struct {
	ID         string     `json:"id" db:"id"`
	CaseNumber *string    `json:"case_number,omitempty" db:"case_number"`
	ContactID  *string    `json:"contact_id,omitempty" db:"contact_id"`
	Title      string     `json:"title" db:"title"`
	DueDate    *time.Time `json:"due_date,omitempty" db:"due_date"`
	Completed  bool       `json:"completed" db:"completed"`

	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// IsOverdue reports whether the task is past due and still open.
func (t Task) IsOverdue() bool {
	return t.DueDate != nil && t.DueDate.Before(time.Now()) && !t.Completed
}
