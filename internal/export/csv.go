// Package export writes the current case and alert collections back out
// as CSV files, mirroring the column layout of the import format so the
// result can be re-imported or opened in a spreadsheet.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dmaia/casedesk/internal/model"
)

// Cases writes the given cases to path as CSV. The header mirrors the
// import columns, plus the derived stage.
func Cases(path string, cases []model.Case) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"Numero_Processo", "Classe", "Assunto", "Foro", "Vara", "Juiz",
		"Valor_Acao", "Partes_Envolvidas", "Fase", "Ultima_Movimentacao",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing export header: %w", err)
	}

	for _, c := range cases {
		last := ""
		if m := c.LastMovement(); m != nil {
			last = m.FullText
			if last == "" {
				last = m.Description
			}
		}
		record := []string{
			c.Number,
			c.Class,
			c.Subject,
			c.Forum,
			c.Division,
			c.Judge,
			strconv.FormatFloat(c.ClaimAmount, 'f', 2, 64),
			strings.Join(c.Parties, "; "),
			string(c.Stage),
			last,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing case %s: %w", c.Number, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing export: %w", err)
	}
	return nil
}

// Alerts writes the given alerts to path as CSV, in the order given.
func Alerts(path string, alerts []model.Alert) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"Processo", "Data", "Tipo", "Dias", "Descricao"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing export header: %w", err)
	}

	for _, a := range alerts {
		record := []string{
			a.CaseNumber,
			a.Date,
			string(a.Type),
			strconv.Itoa(a.DayOffset),
			a.Description,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing alert %s: %w", a.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing export: %w", err)
	}
	return nil
}

// DefaultPath returns a timestamped file name inside dir, e.g.
// casedesk-processos-20240615-1530.csv.
func DefaultPath(dir, kind string, now time.Time) string {
	name := fmt.Sprintf("casedesk-%s-%s.csv", kind, now.Format("20060102-1504"))
	return filepath.Join(dir, name)
}
