// Package timeutil renders the Unix-nanosecond timestamps of archived
// runs for listings and reports.
package timeutil

import (
	"fmt"
	"time"
)

// StampLayout is the layout of Stamp.
const StampLayout = "2006-01-02 15:04:05.000"

// Stamp formats a run timestamp in local time.
func Stamp(ns int64) string {
	return time.Unix(0, ns).Format(StampLayout)
}

// Elapsed reports how long a run took, rounded to the millisecond below a
// minute and to the tenth of a second above it. A run that never finished
// has no elapsed time.
func Elapsed(start int64, end *int64) string {
	if end == nil {
		return ""
	}
	d := time.Duration(*end - start)
	if d < 0 {
		d = 0
	}
	if d < time.Minute {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}

// ageUnits are tried largest first; the first one that fits wins.
var ageUnits = []struct {
	size   time.Duration
	suffix string
}{
	{24 * time.Hour, "d"},
	{time.Hour, "h"},
	{time.Minute, "m"},
	{time.Second, "s"},
}

// Age describes how long ago a run started relative to now, e.g. "5s ago"
// or "2d ago".
func Age(ns int64, now time.Time) string {
	diff := now.Sub(time.Unix(0, ns))
	for _, u := range ageUnits {
		if diff >= u.size {
			return fmt.Sprintf("%d%s ago", diff/u.size, u.suffix)
		}
	}
	return "just now"
}
