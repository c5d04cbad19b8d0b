package model

import "time"

// Note is a free-text annotation attached to a case, a contact, or neither.
type Note struct {
	ID         string    `json:"id" db:"id"`
	CaseNumber *string   `json:"case_number,omitempty" db:"case_number"`
	ContactID  *string   `json:"contact_id,omitempty" db:"contact_id"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
