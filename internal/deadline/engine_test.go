package deadline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmaia/casedesk/internal/model"
)

// now anchors every test at 15/06/2024.
var now = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

func caseWith(number string, movements ...model.Movement) model.Case {
	return model.Case{Number: number, Movements: movements}
}

func mov(date, description string) model.Movement {
	return model.Movement{Date: date, Description: description, FullText: description}
}

func TestGenerate_LastMovementToday(t *testing.T) {
	cases := []model.Case{
		caseWith("0001", mov("15/06/2024", "Prazo para manifestação em 15 dias")),
	}

	alerts := New(now).Generate(cases, nil)
	require.Len(t, alerts, 1)

	assert.Equal(t, "0001:last", alerts[0].ID)
	assert.Equal(t, 0, alerts[0].DayOffset)
	assert.Equal(t, model.AlertTypeDeadline, alerts[0].Type)
	assert.Equal(t, "0001", alerts[0].CaseNumber)
}

func TestGenerate_LastMovementWindowBoundaries(t *testing.T) {
	tests := []struct {
		name string
		date string
		want int // expected alert count
	}{
		{"today", "15/06/2024", 1},
		{"fourteen days ago", "01/06/2024", 1},
		{"exactly fifteen days ago is outside", "31/05/2024", 0},
		{"future-dated last movement is outside the trailing window", "16/06/2024", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cases := []model.Case{
				caseWith("0002", mov(tt.date, "Intimação expedida")),
			}
			alerts := New(now).Generate(cases, nil)
			assert.Len(t, alerts, tt.want)
		})
	}
}

func TestGenerate_LastMovementNeedsActionKeyword(t *testing.T) {
	cases := []model.Case{
		caseWith("0003", mov("14/06/2024", "Juntada de documentos")),
	}
	assert.Empty(t, New(now).Generate(cases, nil))
}

func TestGenerate_LastMovementUnparseableDate(t *testing.T) {
	cases := []model.Case{
		caseWith("0004", mov("", "Prazo para manifestação")),
		caseWith("0005", mov("32/01/2024", "Prazo para manifestação")),
	}
	assert.Empty(t, New(now).Generate(cases, nil))
}

func TestGenerate_EmbeddedFutureDate(t *testing.T) {
	cases := []model.Case{
		caseWith("0006", mov("", "Audiência designada para 20/06/2024")),
	}

	alerts := New(now).Generate(cases, nil)
	require.Len(t, alerts, 1)

	assert.Equal(t, "0006:20/06/2024", alerts[0].ID)
	assert.Equal(t, "20/06/2024", alerts[0].Date)
	assert.Equal(t, 5, alerts[0].DayOffset)
}

func TestGenerate_EmbeddedFutureDateBoundaries(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"today is excluded", "Pagamento até 15/06/2024", 0},
		{"tomorrow is included", "Pagamento até 16/06/2024", 1},
		{"29 days out is included", "Pagamento até 14/07/2024", 1},
		{"exactly 30 days out is excluded", "Pagamento até 15/07/2024", 0},
		{"31 days out is excluded", "Pagamento até 16/07/2024", 0},
		{"past dates are excluded", "Ocorrido em 01/06/2024", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cases := []model.Case{caseWith("0007", mov("", tt.text))}
			assert.Len(t, New(now).Generate(cases, nil), tt.want)
		})
	}
}

func TestGenerate_InvalidEmbeddedDateSkipped(t *testing.T) {
	// Day 32 never parses; the scan continues to the next match.
	cases := []model.Case{
		caseWith("0008", mov("", "Prazos em 32/01/2024 e 20/06/2024")),
	}

	alerts := New(now).Generate(cases, nil)
	require.Len(t, alerts, 1)
	assert.Equal(t, "0008:20/06/2024", alerts[0].ID)
}

func TestGenerate_SameDateMentionedTwiceCollapses(t *testing.T) {
	cases := []model.Case{
		caseWith("0009",
			mov("", "Audiência em 20/06/2024"),
			mov("", "Confirmada a audiência de 20/06/2024"),
		),
	}

	alerts := New(now).Generate(cases, nil)
	assert.Len(t, alerts, 1)
}

func TestGenerate_DistinctDatesProduceDistinctAlerts(t *testing.T) {
	cases := []model.Case{
		caseWith("0010", mov("", "Perícia em 18/06/2024 e audiência em 25/06/2024")),
	}

	alerts := New(now).Generate(cases, nil)
	require.Len(t, alerts, 2)
	assert.Equal(t, "0010:18/06/2024", alerts[0].ID)
	assert.Equal(t, "0010:25/06/2024", alerts[1].ID)
}

func TestGenerate_OnlyFiveNewestMovementsScanned(t *testing.T) {
	cases := []model.Case{
		caseWith("0011",
			mov("", "Conclusos"),
			mov("", "Juntada"),
			mov("", "Despacho"),
			mov("", "Certidão"),
			mov("", "Publicação"),
			mov("", "Audiência antiga remarcada para 20/06/2024"),
		),
	}
	assert.Empty(t, New(now).Generate(cases, nil))
}

func TestGenerate_BothStrategiesForSamePhysicalDate(t *testing.T) {
	// The last-movement marker and the matched-date string are different
	// ID schemes, so both legitimately fire.
	cases := []model.Case{
		caseWith("0012", mov("15/06/2024", "Prazo: pagamento até 20/06/2024")),
	}

	alerts := New(now).Generate(cases, nil)
	require.Len(t, alerts, 2)
	assert.Equal(t, "0012:last", alerts[0].ID)
	assert.Equal(t, 0, alerts[0].DayOffset)
	assert.Equal(t, "0012:20/06/2024", alerts[1].ID)
	assert.Equal(t, 5, alerts[1].DayOffset)
}

func TestGenerate_DismissedAlertsNeverEmitted(t *testing.T) {
	cases := []model.Case{
		caseWith("0013", mov("15/06/2024", "Prazo: pagamento até 20/06/2024")),
	}
	dismissed := map[string]bool{"0013:last": true}

	alerts := New(now).Generate(cases, dismissed)
	require.Len(t, alerts, 1)
	assert.Equal(t, "0013:20/06/2024", alerts[0].ID)
}

func TestGenerate_Deterministic(t *testing.T) {
	cases := []model.Case{
		caseWith("0014", mov("14/06/2024", "Intimação: manifestar até 25/06/2024")),
		caseWith("0015", mov("", "Audiência em 18/06/2024")),
	}

	first := New(now).Generate(cases, nil)
	second := New(now).Generate(cases, nil)
	assert.Equal(t, first, second)
}

func TestGenerate_SortedByDayOffsetAscending(t *testing.T) {
	cases := []model.Case{
		caseWith("0016", mov("", "Audiência em 25/06/2024")),
		caseWith("0017", mov("05/06/2024", "Intimação expedida")),
		caseWith("0018", mov("", "Perícia em 17/06/2024")),
	}

	alerts := New(now).Generate(cases, nil)
	require.Len(t, alerts, 3)
	assert.Equal(t, -10, alerts[0].DayOffset)
	assert.Equal(t, 2, alerts[1].DayOffset)
	assert.Equal(t, 10, alerts[2].DayOffset)
}

func TestGenerate_TruncatesLongDescriptions(t *testing.T) {
	long := "Prazo para manifestação sobre o laudo pericial apresentado pelo perito judicial nomeado nos autos, " +
		"devendo as partes se manifestar no prazo comum de quinze dias úteis contados da publicação"
	cases := []model.Case{caseWith("0019", mov("15/06/2024", long))}

	alerts := New(now).Generate(cases, nil)
	require.Len(t, alerts, 1)
	assert.Less(t, len([]rune(alerts[0].Description)), len([]rune(long)))
	assert.Contains(t, alerts[0].Description, "Prazo para manifestação")
}
