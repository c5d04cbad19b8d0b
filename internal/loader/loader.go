// Package loader turns raw export rows into the typed case collection.
package loader

import (
	"context"

	"go.uber.org/zap"

	"github.com/dmaia/casedesk/internal/classify"
	"github.com/dmaia/casedesk/internal/model"
	"github.com/dmaia/casedesk/internal/parse"
	"github.com/dmaia/casedesk/internal/source"
)

// Column names of the ESAJ spreadsheet export.
const (
	colNumber    = "Numero_Processo"
	colClass     = "Classe"
	colSubject   = "Assunto"
	colForum     = "Foro"
	colDivision  = "Vara"
	colJudge     = "Juiz"
	colAmount    = "Valor_Acao"
	colParties   = "Partes_Envolvidas"
	colMovements = "Movimentacoes"
)

// Loader fetches the tabular export and assembles typed cases.
type Loader struct {
	src source.Source
	log *zap.Logger
}

// New creates a Loader reading from the given source.
func New(src source.Source, log *zap.Logger) *Loader {
	return &Loader{src: src, log: log}
}

// Load produces the case collection. A wholesale fetch failure yields an
// empty collection plus a logged diagnostic; callers must treat that as a
// valid, if degenerate, outcome. Missing row fields fall back to the
// parser defaults and never abort the load.
func (l *Loader) Load(ctx context.Context) []model.Case {
	rows, err := l.src.FetchRows(ctx)
	if err != nil {
		l.log.Warn("case export unavailable, starting with empty collection",
			zap.Error(err))
		return nil
	}

	cases := make([]model.Case, 0, len(rows))
	for _, row := range rows {
		movements := parse.Movements(row[colMovements])
		cases = append(cases, model.Case{
			Number:      row[colNumber],
			Class:       row[colClass],
			Subject:     row[colSubject],
			Forum:       row[colForum],
			Division:    row[colDivision],
			Judge:       row[colJudge],
			ClaimAmount: parse.Currency(row[colAmount]),
			Parties:     parse.Parties(row[colParties]),
			Movements:   movements,
			Stage:       classify.Stage(movements),
		})
	}

	l.log.Info("case export loaded", zap.Int("cases", len(cases)))
	return cases
}
