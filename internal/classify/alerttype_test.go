package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmaia/casedesk/internal/model"
)

func TestAlertType(t *testing.T) {
	tests := []struct {
		description string
		want        model.AlertType
	}{
		{"Prazo para manifestação", model.AlertTypeDeadline},
		{"Intimação via portal", model.AlertTypeNotice},
		{"Citação expedida", model.AlertTypeNotice},
		{"Publicado no DJE", model.AlertTypePublication},
		{"Sentença proferida", model.AlertTypeRuling},
		{"Despacho de mero expediente", model.AlertTypeRuling},
		{"Audiência realizada", model.AlertTypeGeneral},
		{"", model.AlertTypeGeneral},
		// Deadline terms outrank notice terms when both appear.
		{"Intimação: prazo de 15 dias para resposta", model.AlertTypeDeadline},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, AlertType(tt.description))
		})
	}
}
