package loader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dmaia/casedesk/internal/model"
	"github.com/dmaia/casedesk/internal/source"
)

// stubSource returns canned rows or a canned error.
type stubSource struct {
	rows []source.Row
	err  error
}

func (s *stubSource) FetchRows(ctx context.Context) ([]source.Row, error) {
	return s.rows, s.err
}

func TestLoad(t *testing.T) {
	src := &stubSource{rows: []source.Row{
		{
			"Numero_Processo":   "1002345-67.2024.8.26.0100",
			"Classe":            "Procedimento Comum Cível",
			"Assunto":           "Indenização por Dano Material",
			"Foro":              "Foro Central Cível",
			"Vara":              "12ª Vara Cível",
			"Juiz":              "Carla Mendes",
			"Valor_Acao":        "R$ 1.234,56",
			"Partes_Envolvidas": "Ana Silva, João Pedro; Maria",
			"Movimentacoes":     "[10/01/2024] Sentença proferida||[05/01/2024] Conclusos",
		},
	}}

	cases := New(src, zap.NewNop()).Load(context.Background())
	require.Len(t, cases, 1)

	c := cases[0]
	assert.Equal(t, "1002345-67.2024.8.26.0100", c.Number)
	assert.Equal(t, "12ª Vara Cível", c.Division)
	assert.InDelta(t, 1234.56, c.ClaimAmount, 0.001)
	assert.Equal(t, []string{"Ana Silva", "João Pedro", "Maria"}, c.Parties)
	require.Len(t, c.Movements, 2)
	assert.Equal(t, "10/01/2024", c.Movements[0].Date)
	assert.Equal(t, model.StageJudgment, c.Stage)
}

func TestLoad_MissingFieldsDefault(t *testing.T) {
	src := &stubSource{rows: []source.Row{
		{"Numero_Processo": "0001"},
	}}

	cases := New(src, zap.NewNop()).Load(context.Background())
	require.Len(t, cases, 1)

	c := cases[0]
	assert.Zero(t, c.ClaimAmount)
	assert.Empty(t, c.Parties)
	assert.Empty(t, c.Movements)
	assert.Equal(t, model.StagePetition, c.Stage)
}

func TestLoad_FetchFailureYieldsEmptyCollection(t *testing.T) {
	src := &stubSource{err: errors.New("file missing")}

	cases := New(src, zap.NewNop()).Load(context.Background())
	assert.Empty(t, cases)
}
