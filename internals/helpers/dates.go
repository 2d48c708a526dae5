package helper

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns UTC.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

// DateRangeQuery reads optional ?from= and ?to= bounds. The to bound is
// inclusive of the whole day when given as a plain date.
func DateRangeQuery(from, to string) (*time.Time, *time.Time, error) {
	var f, t *time.Time
	if strings.TrimSpace(from) != "" {
		v, err := ParseDate(from)
		if err != nil {
			return nil, nil, err
		}
		f = &v
	}
	if strings.TrimSpace(to) != "" {
		v, err := ParseDate(to)
		if err != nil {
			return nil, nil, err
		}
		if len(strings.TrimSpace(to)) == len(DateLayout) {
			v = v.Add(24*time.Hour - time.Nanosecond)
		}
		t = &v
	}
	if f != nil && t != nil && t.Before(*f) {
		return nil, nil, fmt.Errorf("to must not be before from")
	}
	return f, t, nil
}
