package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFetchRows(t *testing.T) {
	path := writeExport(t,
		"Numero_Processo,Classe,Valor_Acao\n"+
			"0001,Execução Fiscal,\"R$ 1.000,00\"\n"+
			"0002,Cobrança,N/A\n")

	rows, err := NewCSVFile(path).FetchRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "0001", rows[0]["Numero_Processo"])
	assert.Equal(t, "R$ 1.000,00", rows[0]["Valor_Acao"])
	assert.Equal(t, "N/A", rows[1]["Valor_Acao"])
}

func TestFetchRows_ShortRecords(t *testing.T) {
	path := writeExport(t, "Numero_Processo,Classe\n0001\n")

	rows, err := NewCSVFile(path).FetchRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "0001", rows[0]["Numero_Processo"])
	_, present := rows[0]["Classe"]
	assert.False(t, present)
}

func TestFetchRows_BOMStripped(t *testing.T) {
	path := writeExport(t, "\uFEFFNumero_Processo\n0001\n")

	rows, err := NewCSVFile(path).FetchRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "0001", rows[0]["Numero_Processo"])
}

func TestFetchRows_MissingFile(t *testing.T) {
	_, err := NewCSVFile(filepath.Join(t.TempDir(), "absent.csv")).
		FetchRows(context.Background())
	assert.Error(t, err)
}
