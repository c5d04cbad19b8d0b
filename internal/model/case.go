package model

// Stage is the derived workflow stage of a case. Values are the display
// labels used by the original ESAJ export, so they render as-is.
type Stage string

const (
	StagePetition    Stage = "Petição Inicial"
	StageEvidence    Stage = "Instrução"
	StageJudgment    Stage = "Sentença"
	StageAppeal      Stage = "Recurso"
	StageEnforcement Stage = "Execução"
	StageArchived    Stage = "Arquivado"
)

// StageOrder lists all stages in procedural order, used for the dashboard
// funnel and the case-list stage filter.
var StageOrder = []Stage{
	StagePetition,
	StageEvidence,
	StageJudgment,
	StageAppeal,
	StageEnforcement,
	StageArchived,
}

// Movement is a single docket entry parsed from the movement log.
// Immutable once parsed.
type Movement struct {
	// Date is the raw source-format date string (dd/mm/yyyy). Empty when
	// the entry had no bracketed date prefix.
	Date string `json:"date"`

	// Description is the free text of the entry.
	Description string `json:"description"`

	// FullText is the original undivided segment.
	FullText string `json:"full_text"`
}

// Case is one litigation matter loaded from the spreadsheet export.
// Stage is computed once at load time and never written back.
type Case struct {
	// Number is the case number, unique and stable across reloads.
	Number string `json:"number"`

	Class    string `json:"class"`
	Subject  string `json:"subject"`
	Forum    string `json:"forum"`
	Division string `json:"division"`
	Judge    string `json:"judge"`

	// ClaimAmount is the currency-normalized claim value, never negative.
	ClaimAmount float64 `json:"claim_amount"`

	// Parties preserves the source order; duplicate names are permitted.
	Parties []string `json:"parties"`

	// Movements is newest-first. Downstream logic relies on position, not
	// date comparison, to find the most recent entry.
	Movements []Movement `json:"movements"`

	Stage Stage `json:"stage"`
}

// LastMovement returns the newest movement, or nil when the case has none.
func (c *Case) LastMovement() *Movement {
	if len(c.Movements) == 0 {
		return nil
	}
	return &c.Movements[0]
}
