package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmaia/casedesk/internal/model"
)

func TestAlertCounts(t *testing.T) {
	m := New(80, 24)
	m.SetData(nil, []model.Alert{
		{ID: "a", DayOffset: -3},
		{ID: "b", DayOffset: 0},
		{ID: "c", DayOffset: 0},
		{ID: "d", DayOffset: 12},
	}, nil)

	overdue, today, upcoming := m.alertCounts()
	assert.Equal(t, 1, overdue)
	assert.Equal(t, 2, today)
	assert.Equal(t, 1, upcoming)
}

func TestStageCounts(t *testing.T) {
	m := New(80, 24)
	m.SetData([]model.Case{
		{Number: "1", Stage: model.StagePetition},
		{Number: "2", Stage: model.StagePetition},
		{Number: "3", Stage: model.StageJudgment},
	}, nil, nil)

	counts := m.stageCounts()
	assert.Equal(t, 2, counts[model.StagePetition])
	assert.Equal(t, 1, counts[model.StageJudgment])
	assert.Equal(t, 0, counts[model.StageAppeal])
}

func TestClaimTotal(t *testing.T) {
	m := New(80, 24)
	m.SetData([]model.Case{
		{Number: "1", ClaimAmount: 15000.50},
		{Number: "2", ClaimAmount: 950},
		{Number: "3"},
	}, nil, nil)

	assert.InDelta(t, 15950.50, m.claimTotal(), 0.001)
}

func TestRecentMovements_NewestFirstAcrossCases(t *testing.T) {
	m := New(80, 24)
	m.SetData([]model.Case{
		{Number: "0001", Stage: model.StageEvidence, Movements: []model.Movement{
			{Date: "10/06/2024", Description: "Audiência designada"},
			{Date: "01/06/2024", Description: "Despacho"},
		}},
		{Number: "0002", Stage: model.StageJudgment, Movements: []model.Movement{
			{Date: "15/06/2024", Description: "Sentença publicada"},
		}},
		{Number: "0003", Movements: []model.Movement{
			{Date: "", Description: "Conclusos"},
		}},
		{Number: "0004"},
	}, nil, nil)

	recent := m.recentMovements(5)
	// Only the newest movement of each dated case shows up.
	if assert.Len(t, recent, 2) {
		assert.Equal(t, "0002", recent[0].CaseNumber)
		assert.Equal(t, "15/06/2024", recent[0].Date)
		assert.Equal(t, "0001", recent[1].CaseNumber)
		assert.Equal(t, "Audiência designada", recent[1].Description)
	}
}

func TestRecentMovements_RespectsLimit(t *testing.T) {
	m := New(80, 24)
	m.SetData([]model.Case{
		{Number: "0001", Movements: []model.Movement{{Date: "10/06/2024", Description: "a"}}},
		{Number: "0002", Movements: []model.Movement{{Date: "11/06/2024", Description: "b"}}},
		{Number: "0003", Movements: []model.Movement{{Date: "12/06/2024", Description: "c"}}},
	}, nil, nil)

	assert.Len(t, m.recentMovements(2), 2)
}
