package classify

import (
	"strings"

	"github.com/dmaia/casedesk/internal/model"
)

type alertTypeRule struct {
	typ      model.AlertType
	keywords []string
}

// alertTypeRules are evaluated in order; deadline terms take precedence
// over notice terms, which take precedence over publication and ruling
// terms.
var alertTypeRules = []alertTypeRule{
	{model.AlertTypeDeadline, []string{"prazo"}},
	{model.AlertTypeNotice, []string{"intimação", "citação"}},
	{model.AlertTypePublication, []string{"publicado", "publicação", "dje"}},
	{model.AlertTypeRuling, []string{"sentença", "decisão", "despacho", "acórdão"}},
}

// AlertType classifies a single movement description into an alert
// category. Descriptions matching no keyword are general.
func AlertType(description string) model.AlertType {
	text := strings.ToLower(description)

	for _, rule := range alertTypeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.typ
			}
		}
	}
	return model.AlertTypeGeneral
}
