// Package classify assigns workflow stages to cases and alert categories
// to docket entries using ordered keyword rules. Rule order encodes real
// tie-break intent: an appeal decision mentions both "sentença" and
// "recurso", and the appeal group must win because it is checked first.
package classify

import (
	"strings"

	"github.com/dmaia/casedesk/internal/model"
)

// stageScanWindow is how many of the most recent movements feed the scan
// buffer. Older entries describe stages the case has already left.
const stageScanWindow = 3

type stageRule struct {
	stage    model.Stage
	keywords []string
}

// stageRules are evaluated in order; the first rule with any keyword
// present in the scan buffer wins.
var stageRules = []stageRule{
	{model.StageArchived, []string{
		"trânsito em julgado", "transitado em julgado", "arquivado",
	}},
	{model.StageAppeal, []string{
		"recurso", "agravo", "apelação", "embargos de declaração",
	}},
	{model.StageJudgment, []string{
		"sentença", "julgado", "procedente", "improcedente",
	}},
	{model.StageEnforcement, []string{
		"penhora", "execução", "cumprimento de sentença", "bloqueio",
	}},
	{model.StageEvidence, []string{
		"audiência", "perícia", "instrução", "prova",
	}},
}

// Stage inspects the most recent movements of a case (newest-first) and
// returns exactly one workflow stage. Cases with no movements, or whose
// recent movements match no keyword group, default to the initial
// petition stage.
func Stage(movements []model.Movement) model.Stage {
	if len(movements) == 0 {
		return model.StagePetition
	}

	window := movements
	if len(window) > stageScanWindow {
		window = window[:stageScanWindow]
	}

	var b strings.Builder
	for _, m := range window {
		b.WriteString(m.Description)
		b.WriteString(" ")
		b.WriteString(m.FullText)
		b.WriteString(" ")
	}
	buffer := strings.ToLower(b.String())

	for _, rule := range stageRules {
		for _, kw := range rule.keywords {
			if strings.Contains(buffer, kw) {
				return rule.stage
			}
		}
	}
	return model.StagePetition
}
