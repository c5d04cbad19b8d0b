// Package deadline scans case movements for actionable dates and emits
// deduplicated deadline alerts.
//
// Two independent detection strategies run per case: the "actionable last
// movement" check (a recent movement whose text demands a response) and
// the "embedded future date" scan (dd/mm/yyyy substrings inside recent
// descriptions). The two use different identifier schemes and may both
// fire for the same physical date; that is belt-and-suspenders alerting,
// not a defect.
package deadline

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dmaia/casedesk/internal/classify"
	"github.com/dmaia/casedesk/internal/model"
)

const (
	// lastMovementWindowDays is the trailing window for the actionable
	// last-movement check: strictly after N days ago, today inclusive.
	lastMovementWindowDays = 15

	// futureWindowDays bounds the embedded-date scan: strictly after
	// today, strictly before N days from now.
	futureWindowDays = 30

	// embeddedScanWindow is how many of the newest movements are scanned
	// for embedded dates.
	embeddedScanWindow = 5

	// descriptionLimit caps alert descriptions, in runes.
	descriptionLimit = 120

	// dateLayout is the source date format (day/month/4-digit year).
	dateLayout = "02/01/2006"

	// lastMarker suffixes last-movement alert IDs so exactly one such
	// alert exists per case regardless of rerun.
	lastMarker = "last"
)

// datePattern matches dd/mm/yyyy substrings inside free text. Calendar
// validity is checked by time.Parse afterwards.
var datePattern = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)

// actionKeywords gate the last-movement strategy: the newest movement
// only produces an alert when its text demands something of the parties
// (deadline, response, service, publication, proceed directive, clerk's
// administrative act).
var actionKeywords = []string{
	"prazo",
	"manifest",
	"intima",
	"citação",
	"publicado",
	"publicação",
	"prossiga",
	"prosseguimento",
	"ato ordinat",
}

// Engine generates deadline alerts for a case collection. Now is fixed at
// construction so a run is deterministic and testable.
type Engine struct {
	today time.Time
}

// New creates an Engine anchored at the given wall-clock time. Day
// offsets are computed against the calendar date of now.
func New(now time.Time) *Engine {
	return &Engine{
		today: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
}

// Generate runs both detection strategies over the case collection and
// returns the alert list sorted ascending by day offset (most urgent
// first). IDs present in dismissed are never emitted, and an ID emitted
// earlier in the same run is never emitted twice.
func (e *Engine) Generate(cases []model.Case, dismissed map[string]bool) []model.Alert {
	seen := make(map[string]bool)
	var alerts []model.Alert

	emit := func(a model.Alert) {
		if dismissed[a.ID] || seen[a.ID] {
			return
		}
		seen[a.ID] = true
		alerts = append(alerts, a)
	}

	for i := range cases {
		e.lastMovementAlert(&cases[i], emit)
		e.embeddedDateAlerts(&cases[i], emit)
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].DayOffset != alerts[j].DayOffset {
			return alerts[i].DayOffset < alerts[j].DayOffset
		}
		return alerts[i].ID < alerts[j].ID
	})
	return alerts
}

// lastMovementAlert emits an alert when the newest movement of the case
// is dated within the trailing window and its text contains an
// action-required keyword. The ID uses a fixed marker instead of the
// date so reruns keep it stable.
func (e *Engine) lastMovementAlert(c *model.Case, emit func(model.Alert)) {
	m := c.LastMovement()
	if m == nil {
		return
	}

	date, err := time.Parse(dateLayout, m.Date)
	if err != nil {
		return
	}

	offset := e.dayOffset(date)
	if offset > 0 || offset <= -lastMovementWindowDays {
		return
	}

	text := strings.ToLower(m.Description)
	actionable := false
	for _, kw := range actionKeywords {
		if strings.Contains(text, kw) {
			actionable = true
			break
		}
	}
	if !actionable {
		return
	}

	emit(model.Alert{
		ID:          c.Number + ":" + lastMarker,
		CaseNumber:  c.Number,
		Date:        m.Date,
		Description: truncate(m.Description),
		Type:        classify.AlertType(m.Description),
		DayOffset:   offset,
	})
}

// embeddedDateAlerts scans the newest movements for dd/mm/yyyy substrings
// that land strictly between today and the future window. Each distinct
// matched date string yields its own alert; the same date mentioned twice
// collapses through the in-run dedup set. Unparseable matches are skipped
// and the scan continues.
func (e *Engine) embeddedDateAlerts(c *model.Case, emit func(model.Alert)) {
	window := c.Movements
	if len(window) > embeddedScanWindow {
		window = window[:embeddedScanWindow]
	}

	for _, m := range window {
		for _, raw := range datePattern.FindAllString(m.Description, -1) {
			date, err := time.Parse(dateLayout, raw)
			if err != nil {
				continue
			}

			offset := e.dayOffset(date)
			if offset <= 0 || offset >= futureWindowDays {
				continue
			}

			emit(model.Alert{
				ID:          c.Number + ":" + raw,
				CaseNumber:  c.Number,
				Date:        raw,
				Description: truncate(m.Description),
				Type:        classify.AlertType(m.Description),
				DayOffset:   offset,
			})
		}
	}
}

// dayOffset returns the signed day distance from today to date: negative
// for elapsed days, zero for today, positive for days until.
func (e *Engine) dayOffset(date time.Time) int {
	return int(date.Sub(e.today).Hours() / 24)
}

// truncate caps a description at descriptionLimit runes.
func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= descriptionLimit {
		return s
	}
	return string(runes[:descriptionLimit]) + "…"
}
