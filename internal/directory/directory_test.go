package directory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmaia/casedesk/internal/model"
)

var now = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func TestBuild_DiscoversNewParties(t *testing.T) {
	cases := []model.Case{
		{Number: "0001", Parties: []string{"Ana Silva", "Banco Azul S.A."}},
		{Number: "0002", Parties: []string{"Ana Silva"}},
	}

	contacts := Build(cases, nil, now)
	require.Len(t, contacts, 2)

	assert.Equal(t, "Ana Silva", contacts[0].Name)
	assert.NotEmpty(t, contacts[0].ID)
	assert.Equal(t, model.ContactTypeParty, contacts[0].Type)
	assert.Equal(t, model.ContactStatusActive, contacts[0].Status)
	assert.Equal(t, 2, contacts[0].CaseCount)
	assert.Equal(t, 1, contacts[1].CaseCount)
}

func TestBuild_KeepsPersistedContactsAndFields(t *testing.T) {
	persisted := []model.Contact{
		{
			ID:     "c-1",
			Name:   "Ana Silva",
			Phone:  "(11) 99999-0000",
			Type:   model.ContactTypeLawyer,
			Status: model.ContactStatusActive,
		},
		{ID: "c-2", Name: "Antigo Cliente"},
	}
	cases := []model.Case{
		{Number: "0001", Parties: []string{"Ana Silva", "Novo Réu"}},
	}

	contacts := Build(cases, persisted, now)
	require.Len(t, contacts, 3)

	// Existing contact keeps its identity and user-edited fields.
	assert.Equal(t, "c-1", contacts[0].ID)
	assert.Equal(t, "(11) 99999-0000", contacts[0].Phone)
	assert.Equal(t, model.ContactTypeLawyer, contacts[0].Type)
	assert.Equal(t, 1, contacts[0].CaseCount)

	// A contact absent from every case survives with a zero count.
	assert.Equal(t, "Antigo Cliente", contacts[1].Name)
	assert.Equal(t, 0, contacts[1].CaseCount)

	assert.Equal(t, "Novo Réu", contacts[2].Name)
}

func TestBuild_DuplicateNameInOneCaseCountsOnce(t *testing.T) {
	cases := []model.Case{
		{Number: "0001", Parties: []string{"Ana Silva", "Ana Silva"}},
	}

	contacts := Build(cases, nil, now)
	require.Len(t, contacts, 1)
	assert.Equal(t, 1, contacts[0].CaseCount)
}

func TestBuild_EmptyInputs(t *testing.T) {
	assert.Empty(t, Build(nil, nil, now))
}
