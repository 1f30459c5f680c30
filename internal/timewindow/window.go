// Package timewindow resolves report periods and partitions records into
// "created in period" and "updated in period" buckets.
package timewindow

import (
	"fmt"
	"strings"
	"time"
)

// CST is the report timezone (UTC+8). The "today" period is anchored at CST
// midnight and all rendered timestamps are displayed in it, matching the
// upstream project.
var CST = time.FixedZone("CST", 8*60*60)

// Kind names a supported report period.
type Kind string

const (
	KindToday Kind = "today"
	KindDay   Kind = "day"
	KindWeek  Kind = "week"
)

// Window is the timestamp range selecting records for a report run. The
// range is half-open [Start, End) except for the "today" variant, which is
// closed on both ends because End is the moment the run started.
type Window struct {
	Start  time.Time
	End    time.Time
	Closed bool
	Kind   Kind
	Label  string
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if t.Before(w.Start) {
		return false
	}
	if w.Closed {
		return !t.After(w.End)
	}
	return t.Before(w.End)
}

// Since returns the window start in RFC 3339 form, for the GitHub `since`
// listing parameter.
func (w Window) Since() string {
	return w.Start.UTC().Format(time.RFC3339)
}

// Resolve builds the window for a period kind relative to now.
//
//	today: CST midnight through now (closed).
//	day:   the full UTC day before the current one.
//	week:  the Monday-through-Sunday week before the current one, UTC.
//
// An unknown kind is a configuration error and is returned to the caller.
func Resolve(kind string, now time.Time) (Window, error) {
	switch Kind(strings.ToLower(kind)) {
	case KindToday:
		nowCST := now.In(CST)
		start := time.Date(nowCST.Year(), nowCST.Month(), nowCST.Day(), 0, 0, 0, 0, CST)
		return Window{
			Start:  start,
			End:    now,
			Closed: true,
			Kind:   KindToday,
			Label:  "today",
		}, nil
	case KindDay:
		utc := now.UTC()
		end := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
		return Window{
			Start: end.AddDate(0, 0, -1),
			End:   end,
			Kind:  KindDay,
			Label: "yesterday",
		}, nil
	case KindWeek:
		utc := now.UTC()
		midnight := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
		daysSinceMonday := (int(utc.Weekday()) + 6) % 7
		lastMonday := midnight.AddDate(0, 0, -(daysSinceMonday + 7))
		return Window{
			Start: lastMonday,
			End:   lastMonday.AddDate(0, 0, 7),
			Kind:  KindWeek,
			Label: "last week (Monday through Sunday)",
		}, nil
	default:
		return Window{}, fmt.Errorf("unsupported period %q (expected today, day or week)", kind)
	}
}
