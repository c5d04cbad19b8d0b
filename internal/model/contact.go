package model

import "time"

// Contact type and status tags. New contacts discovered in case data get
// the defaults; the user refines them later.
const (
	ContactTypeParty  = "parte"
	ContactTypeLawyer = "advogado"
	ContactTypeOther  = "outro"

	ContactStatusActive   = "ativo"
	ContactStatusInactive = "inativo"
)

// Contact is a party in the directory. Name is the natural key used to
// merge against case party lists; the synthetic ID is assigned at first
// sight and is what notes and tasks reference.
type Contact struct {
	ID      string `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Phone   string `json:"phone" db:"phone"`
	Email   string `json:"email" db:"email"`
	Address string `json:"address" db:"address"`
	TaxID   string `json:"tax_id" db:"tax_id"`
	Type    string `json:"type" db:"type"`
	Status  string `json:"status" db:"status"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// CaseCount is derived at load time from the case party lists.
	CaseCount int `json:"case_count,omitempty" db:"-"`
}
