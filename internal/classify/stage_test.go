package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmaia/casedesk/internal/model"
)

func movs(descriptions ...string) []model.Movement {
	var out []model.Movement
	for _, d := range descriptions {
		out = append(out, model.Movement{Description: d, FullText: d})
	}
	return out
}

func TestStage(t *testing.T) {
	tests := []struct {
		name      string
		movements []model.Movement
		want      model.Stage
	}{
		{
			name:      "no movements defaults to petition",
			movements: nil,
			want:      model.StagePetition,
		},
		{
			name:      "no keyword match defaults to petition",
			movements: movs("Juntada de petição", "Conclusos ao juiz"),
			want:      model.StagePetition,
		},
		{
			name:      "appeal",
			movements: movs("Recurso de apelação interposto"),
			want:      model.StageAppeal,
		},
		{
			name:      "appeal wins over judgment when both present",
			movements: movs("Sentença mantida, recurso improvido"),
			want:      model.StageAppeal,
		},
		{
			name:      "judgment",
			movements: movs("Sentença proferida, pedido julgado procedente"),
			want:      model.StageJudgment,
		},
		{
			name:      "archived wins over everything",
			movements: movs("Trânsito em julgado certificado, recurso não interposto"),
			want:      model.StageArchived,
		},
		{
			name:      "enforcement",
			movements: movs("Penhora de bens determinada"),
			want:      model.StageEnforcement,
		},
		{
			// The judgment group is checked before enforcement, so the
			// "sentença" substring wins here. Deliberate rule-order quirk.
			name:      "compliance phase still reads as judgment",
			movements: movs("Iniciado o cumprimento de sentença"),
			want:      model.StageJudgment,
		},
		{
			name:      "evidence",
			movements: movs("Audiência de instrução designada"),
			want:      model.StageEvidence,
		},
		{
			name: "keywords outside the three newest movements are ignored",
			movements: movs(
				"Conclusos para despacho inicial",
				"Juntada de documentos",
				"Distribuído por sorteio",
				"Sentença proferida",
			),
			want: model.StagePetition,
		},
		{
			name: "third movement is still inside the window",
			movements: movs(
				"Juntada de documentos",
				"Conclusos",
				"Audiência realizada",
			),
			want: model.StageEvidence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stage(tt.movements))
		})
	}
}
