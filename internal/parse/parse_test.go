package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"formatted amount", "R$ 1.234,56", 1234.56},
		{"no symbol", "1.234,56", 1234.56},
		{"millions", "R$ 2.500.000,00", 2500000},
		{"plain integer", "500", 500},
		{"absent sentinel", "N/A", 0},
		{"empty", "", 0},
		{"garbage", "a definir", 0},
		{"negative clamped", "-100,00", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Currency(tt.input), 0.001)
		})
	}
}

func TestParties(t *testing.T) {
	got := Parties("Ana Silva, João Pedro; Maria")
	assert.Equal(t, []string{"Ana Silva", "João Pedro", "Maria"}, got)
}

func TestParties_PreservesOrderAndDuplicates(t *testing.T) {
	got := Parties("Banco Azul S.A.; Ana Silva, Banco Azul S.A.")
	assert.Equal(t, []string{"Banco Azul S.A.", "Ana Silva", "Banco Azul S.A."}, got)
}

func TestParties_Absent(t *testing.T) {
	assert.Empty(t, Parties("N/A"))
	assert.Empty(t, Parties(""))
	assert.Empty(t, Parties(" ; , "))
}

func TestMovements(t *testing.T) {
	got := Movements("[10/01/2024] Despacho proferido||Sem data aqui")
	require.Len(t, got, 2)

	assert.Equal(t, "10/01/2024", got[0].Date)
	assert.Equal(t, "Despacho proferido", got[0].Description)
	assert.Equal(t, "[10/01/2024] Despacho proferido", got[0].FullText)

	assert.Equal(t, "", got[1].Date)
	assert.Equal(t, "Sem data aqui", got[1].Description)
	assert.Equal(t, "Sem data aqui", got[1].FullText)
}

func TestMovements_PreservesSourceOrder(t *testing.T) {
	// Entries arrive newest-first and must not be re-sorted, even when
	// the embedded dates are out of order.
	got := Movements("[05/03/2024] Mais recente||[20/03/2024] Mais antiga no meio||[01/01/2024] Antiga")
	require.Len(t, got, 3)
	assert.Equal(t, "05/03/2024", got[0].Date)
	assert.Equal(t, "20/03/2024", got[1].Date)
	assert.Equal(t, "01/01/2024", got[2].Date)
}

func TestMovements_Absent(t *testing.T) {
	assert.Empty(t, Movements("N/A"))
	assert.Empty(t, Movements(""))
	assert.Empty(t, Movements("|| || "))
}
