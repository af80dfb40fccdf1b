// Package records models logged HR assistant interactions
// defaulting happens once in FromAttrs so aggregators never see raw store values
package records

import (
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"hranalytics/internal/core/window"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Attribute names as stored in the record table
const (
	AttrUserID            = "user_id"
	AttrTimestamp         = "timestamp"
	AttrCategory          = "category"
	AttrSatisfaction      = "satisfaction"
	AttrResolved          = "resolved"
	AttrQueryTimestamp    = "query_timestamp"
	AttrResponseTimestamp = "response_timestamp"
	AttrDepartment        = "department"
	AttrSeniority         = "seniority"
	AttrNewUser           = "new_user"
)

// Unknown is the bucket for missing category, department, and seniority values
const Unknown = "unknown"

// LatencyLayout is the only layout accepted for query and response timestamps
const LatencyLayout = "2006-01-02T15:04:05Z"

// Attrs is a raw attribute bag from a record store, blank values count as missing
type Attrs map[string]string

// Seniority is the normalized seniority bucket
type Seniority string

// Seniority buckets
const (
	SeniorityJunior  Seniority = "junior"
	SeniorityMid     Seniority = "mid"
	SenioritySenior  Seniority = "senior"
	SeniorityUnknown Seniority = Unknown
)

// QueryRecord is one logged interaction with defaults already applied
type QueryRecord struct {
	UserID            string
	Timestamp         string
	Category          string
	Satisfaction      int
	Resolved          bool
	QueryTimestamp    string
	ResponseTimestamp string
	Department        string
	Seniority         Seniority
	NewUser           bool
}

// FromAttrs builds a record from raw attributes
func FromAttrs(a Attrs) QueryRecord {
	get := func(k string) string { return strings.TrimSpace(a[k]) }

	return QueryRecord{
		UserID:            get(AttrUserID),
		Timestamp:         get(AttrTimestamp),
		Category:          orUnknown(get(AttrCategory)),
		Satisfaction:      parseSatisfaction(get(AttrSatisfaction)),
		Resolved:          get(AttrResolved) == "true",
		QueryTimestamp:    get(AttrQueryTimestamp),
		ResponseTimestamp: get(AttrResponseTimestamp),
		Department:        orUnknown(get(AttrDepartment)),
		Seniority:         parseSeniority(get(AttrSeniority)),
		NewUser:           fold(get(AttrNewUser)) == "true",
	}
}

// FromAttrsList maps FromAttrs over a slice
func FromAttrsList(in []Attrs) []QueryRecord {
	out := make([]QueryRecord, 0, len(in))
	for _, a := range in {
		out = append(out, FromAttrs(a))
	}
	return out
}

// HasUser reports whether the record counts toward user metrics
func (r QueryRecord) HasUser() bool { return r.UserID != "" && r.Timestamp != "" }

// ValidSatisfaction reports whether the rating is in 1..5
func (r QueryRecord) ValidSatisfaction() bool { return r.Satisfaction >= 1 && r.Satisfaction <= 5 }

// Satisfied reports a rating of 4 or better
func (r QueryRecord) Satisfied() bool { return r.Satisfaction >= 4 }

// DayKey returns the YYYY-MM-DD prefix of the timestamp when it is a real date
func (r QueryRecord) DayKey() (string, bool) {
	if len(r.Timestamp) < len(window.DateLayout) {
		return "", false
	}
	d := r.Timestamp[:len(window.DateLayout)]
	if _, err := time.Parse(window.DateLayout, d); err != nil {
		return "", false
	}
	return d, true
}

// Latency returns seconds between query and response when both parse
func (r QueryRecord) Latency() (float64, bool) {
	if r.QueryTimestamp == "" || r.ResponseTimestamp == "" {
		return 0, false
	}
	q, err := time.Parse(LatencyLayout, r.QueryTimestamp)
	if err != nil {
		return 0, false
	}
	resp, err := time.Parse(LatencyLayout, r.ResponseTimestamp)
	if err != nil {
		return 0, false
	}
	return resp.Sub(q).Seconds(), true
}

// Attrs renders the record back into raw attributes for writers
func (r QueryRecord) Attrs() Attrs {
	return Attrs{
		AttrUserID:            r.UserID,
		AttrTimestamp:         r.Timestamp,
		AttrCategory:          r.Category,
		AttrSatisfaction:      strconv.Itoa(r.Satisfaction),
		AttrResolved:          strconv.FormatBool(r.Resolved),
		AttrQueryTimestamp:    r.QueryTimestamp,
		AttrResponseTimestamp: r.ResponseTimestamp,
		AttrDepartment:        r.Department,
		AttrSeniority:         string(r.Seniority),
		AttrNewUser:           strconv.FormatBool(r.NewUser),
	}
}

// timestampLayouts are tried in order, zone-less layouts are read as UTC
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp accepts the ISO 8601 variants seen in the record log
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeTimestamp renders a parsable timestamp as UTC text in window.BoundLayout
// stores compare that text against window bounds, so every writer goes through here
func NormalizeTimestamp(s string) (string, bool) {
	t, ok := ParseTimestamp(s)
	if !ok {
		return "", false
	}
	return t.UTC().Format(window.BoundLayout), true
}

// InWindow keeps records whose normalized timestamp falls in the text range of w.Bounds
// kept records carry the normalized timestamp, unparsable ones are dropped
// this is the predicate text-keyed stores run, so in-memory and stored filtering agree
func InWindow(recs []QueryRecord, w window.Window) []QueryRecord {
	start, end := w.Bounds()
	out := make([]QueryRecord, 0, len(recs))
	for _, r := range recs {
		ts, ok := NormalizeTimestamp(r.Timestamp)
		if !ok || ts < start || ts >= end {
			continue
		}
		r.Timestamp = ts
		out = append(out, r)
	}
	return out
}

// casers are stateful, pool them for concurrent handlers
var casePool = sync.Pool{
	New: func() any { return cases.Lower(language.Und) },
}

func fold(s string) string {
	if s == "" {
		return s
	}
	c := casePool.Get().(cases.Caser)
	out := c.String(s)
	casePool.Put(c)
	return out
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}

// parseSatisfaction reads integer text or truncates numeric text, anything else is 0
func parseSatisfaction(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0
	}
	return int(f)
}

func parseSeniority(s string) Seniority {
	switch Seniority(fold(s)) {
	case SeniorityJunior:
		return SeniorityJunior
	case SeniorityMid:
		return SeniorityMid
	case SenioritySenior:
		return SenioritySenior
	default:
		return SeniorityUnknown
	}
}
