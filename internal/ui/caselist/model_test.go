package caselist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmaia/casedesk/internal/model"
)

func TestMatchesQuery(t *testing.T) {
	c := model.Case{
		Number:  "1002030-11.2024.8.26.0100",
		Subject: "Cobrança",
		Class:   "Procedimento Comum",
		Parties: []string{"Ana Silva", "Banco Azul S.A."},
	}

	assert.True(t, matchesQuery(c, "1002030"))
	assert.True(t, matchesQuery(c, "ana silva"))
	assert.True(t, matchesQuery(c, "BANCO"))
	assert.True(t, matchesQuery(c, "cobran"))
	assert.False(t, matchesQuery(c, "maria"))
}

func TestSortCases(t *testing.T) {
	cases := []model.Case{
		{Number: "0003", Stage: model.StageArchived, ClaimAmount: 100},
		{Number: "0001", Stage: model.StagePetition, ClaimAmount: 500},
		{Number: "0002", Stage: model.StagePetition, ClaimAmount: 900},
	}

	sortCases(cases, "number")
	assert.Equal(t, "0001", cases[0].Number)

	sortCases(cases, "amount")
	assert.Equal(t, "0002", cases[0].Number)
	assert.Equal(t, "0003", cases[2].Number)

	sortCases(cases, "stage")
	// Petition cases first, tie broken by number.
	assert.Equal(t, "0001", cases[0].Number)
	assert.Equal(t, "0002", cases[1].Number)
	assert.Equal(t, "0003", cases[2].Number)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "R$ 15.000,50", FormatAmount(15000.50))
	assert.Equal(t, "R$ 950,00", FormatAmount(950))
	assert.Equal(t, "R$ 1.234.567,89", FormatAmount(1234567.89))
}
