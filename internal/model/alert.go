package model

// AlertType categorizes what kind of docket event triggered an alert.
type AlertType string

const (
	AlertTypeDeadline    AlertType = "deadline"
	AlertTypeNotice      AlertType = "notice"
	AlertTypePublication AlertType = "publication"
	AlertTypeRuling      AlertType = "ruling"
	AlertTypeGeneral     AlertType = "general"
)

// Alert is a deadline reminder derived from a case's movements.
//
// ID is deterministic across reloads (case number plus either a fixed
// "last" marker or the matched date string), so dismissals persist: two
// alerts with the same ID represent the same underlying fact. The
// dismissed flag lives in the store, not here.
type Alert struct {
	ID          string    `json:"id"`
	CaseNumber  string    `json:"case_number"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Type        AlertType `json:"type"`

	// DayOffset is the signed distance from today in days: negative for
	// days already elapsed, zero for today, positive for days until.
	DayOffset int `json:"day_offset"`
}
