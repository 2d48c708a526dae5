// file: internals/helpers/dbtime/tod.go
package dbtime

import (
	"fmt"
	"strings"
	"time"
)

// Tod is a wall-clock time of day with no date or zone.
type Tod struct{ time.Time }

// From keeps only the hour, minute and second of t.
func From(t time.Time) Tod {
	return Tod{Time: time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)}
}

// Parse accepts "HH:MM" or "HH:MM:SS".
func Parse(s string) (Tod, error) {
	s = strings.TrimSpace(s)
	if len(s) == 5 {
		s += ":00"
	}
	tt, err := time.Parse("15:04:05", s)
	if err != nil {
		return Tod{}, fmt.Errorf("tod: %q is not HH:MM", s)
	}
	return From(tt), nil
}

func (t Tod) Before(u Tod) bool { return t.Time.Before(u.Time) }

// String renders "HH:MM", the form stored in settings.
func (t Tod) String() string { return t.Format("15:04") }

// Within reports whether now falls in [open, closing).
func Within(now time.Time, open, closing Tod) bool {
	n := From(now)
	return !n.Before(open) && n.Before(closing)
}
