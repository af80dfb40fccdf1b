// Package window resolves report range requests into concrete half-open time windows
package window

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format accepted for explicit ranges
const DateLayout = "2006-01-02"

// BoundLayout is the timestamp format used when a store keys records by ISO text
const BoundLayout = "2006-01-02T15:04:05Z"

const day = 24 * time.Hour

// DefaultRange is applied when no code is given or the code is unknown
const DefaultRange = "7d"

// ranges maps named range codes to their lookback
// month codes are fixed day counts, not calendar months
var ranges = map[string]time.Duration{
	"7d":  7 * day,
	"14d": 14 * day,
	"30d": 30 * day,
	"3m":  90 * day,
	"6m":  180 * day,
	"9m":  270 * day,
}

// Codes returns the supported range codes in ascending length
func Codes() []string { return []string{"7d", "14d", "30d", "3m", "6m", "9m"} }

// Known reports whether code is a supported range code
func Known(code string) bool {
	_, ok := ranges[code]
	return ok
}

// Duration returns the lookback for code, falling back to 7 days
func Duration(code string) time.Duration {
	if d, ok := ranges[code]; ok {
		return d
	}
	return ranges[DefaultRange]
}

// Window is a half-open interval [Start, End)
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies in [Start, End)
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Previous returns the window of length d ending where w starts
func (w Window) Previous(d time.Duration) Window {
	return Window{Start: w.Start.Add(-d), End: w.Start}
}

// Bounds renders start and end as UTC ISO text for text-keyed stores
func (w Window) Bounds() (start, end string) {
	return w.Start.UTC().Format(BoundLayout), w.End.UTC().Format(BoundLayout)
}

// Request is a range request as it arrives from a caller
// StartDate and EndDate are YYYY-MM-DD, Range is a named code
type Request struct {
	StartDate string
	EndDate   string
	Range     string
}

// Resolution is the resolved window plus how it was derived
type Resolution struct {
	Window Window
	// Explicit is true when the window came from start and end dates
	Explicit bool
	// FellBack is true when explicit dates were given but did not parse
	FellBack bool
}

// Resolve turns a request into a window relative to now
// both dates must be present and valid for an explicit window, the end day is fully included
// unparsable dates fall back to the default 7 day window ending at now
func Resolve(req Request, now time.Time) Resolution {
	startRaw := strings.TrimSpace(req.StartDate)
	endRaw := strings.TrimSpace(req.EndDate)

	if startRaw != "" && endRaw != "" {
		start, okStart := parseDate(startRaw)
		end, okEnd := parseDate(endRaw)
		if okStart && okEnd {
			return Resolution{
				Window:   Window{Start: start, End: end.Add(day)},
				Explicit: true,
			}
		}
		return Resolution{
			Window:   Window{Start: now.Add(-Duration(DefaultRange)), End: now},
			FellBack: true,
		}
	}

	code := strings.TrimSpace(req.Range)
	return Resolution{Window: Window{Start: now.Add(-Duration(code)), End: now}}
}

// parseDate parses a calendar date at UTC midnight
func parseDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
