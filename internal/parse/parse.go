// Package parse converts raw spreadsheet cell strings into typed values.
// All functions are total: malformed input yields a documented default,
// never an error.
package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dmaia/casedesk/internal/model"
)

// absentSentinel is the placeholder the export uses for missing cells.
const absentSentinel = "N/A"

// movementDelimiter joins individual docket entries in the movement column.
const movementDelimiter = "||"

// datedEntryPattern matches a bracketed-date prefix followed by free text,
// e.g. "[10/01/2024] Despacho proferido".
var datedEntryPattern = regexp.MustCompile(`^\[(.*?)\]\s*(.*)$`)

// Currency parses a locale-formatted amount ("R$ 1.234,56") into a
// non-negative float. Absent or unparseable input yields zero.
func Currency(value string) float64 {
	if value == "" || value == absentSentinel {
		return 0
	}

	cleaned := strings.ReplaceAll(value, "R$", "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.Replace(cleaned, ",", ".", 1)
	cleaned = strings.TrimSpace(cleaned)

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || amount < 0 {
		return 0
	}
	return amount
}

// Parties splits a delimited party-list cell on commas and semicolons,
// trimming whitespace and dropping empty segments. Source order is
// preserved; duplicate names are kept.
func Parties(value string) []string {
	if value == "" || value == absentSentinel {
		return nil
	}

	segments := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';'
	})

	var parties []string
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		parties = append(parties, seg)
	}
	return parties
}

// Movements splits the movement-log cell into an ordered sequence of
// docket entries. Entries are not re-sorted: the source order (newest
// first) is preserved verbatim, since stage and alert logic rely on
// position to find the most recent entry.
func Movements(value string) []model.Movement {
	if value == "" || value == absentSentinel {
		return nil
	}

	var movements []model.Movement
	for _, entry := range strings.Split(value, movementDelimiter) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if m := datedEntryPattern.FindStringSubmatch(entry); m != nil {
			movements = append(movements, model.Movement{
				Date:        m[1],
				Description: m[2],
				FullText:    entry,
			})
			continue
		}

		movements = append(movements, model.Movement{
			Description: entry,
			FullText:    entry,
		})
	}
	return movements
}
