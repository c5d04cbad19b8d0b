package stageboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmaia/casedesk/internal/model"
)

func boardCase(number string, stage model.Stage, amount float64) model.Case {
	return model.Case{Number: number, Stage: stage, ClaimAmount: amount}
}

func TestBuckets_GroupsByStageKeepingOrder(t *testing.T) {
	cases := []model.Case{
		boardCase("0003", model.StageJudgment, 100),
		boardCase("0001", model.StageEvidence, 50),
		boardCase("0002", model.StageEvidence, 75),
	}

	buckets := Buckets(cases)

	// Every stage has an entry so the board always renders six columns.
	assert.Len(t, buckets, len(model.StageOrder))
	assert.Empty(t, buckets[model.StageArchived])

	evidence := buckets[model.StageEvidence]
	if assert.Len(t, evidence, 2) {
		assert.Equal(t, "0001", evidence[0].Number)
		assert.Equal(t, "0002", evidence[1].Number)
	}
}

func TestClaimTotal(t *testing.T) {
	cases := []model.Case{
		boardCase("0001", model.StageEvidence, 15000.50),
		boardCase("0002", model.StageEvidence, 950),
		boardCase("0003", model.StageJudgment, 0),
	}

	assert.InDelta(t, 15950.50, ClaimTotal(cases), 0.001)
	assert.Zero(t, ClaimTotal(nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Execução", truncate("Execução", 10))
	assert.Equal(t, "Execuçã…", truncate("Execução Fiscal", 8))
	assert.Equal(t, "", truncate("abc", 0))
}
