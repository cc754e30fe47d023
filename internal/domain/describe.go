package domain

import (
	"strconv"
	"strings"
	"time"
)

// Describe renders the target table for humans, e.g. "Nov 1–3 at 16:00 Moscow time".
// A run of consecutive days in one month at one clock time is collapsed into a range;
// anything else is listed entry by entry.
func Describe(targets []Target, loc *time.Location) string {
	if len(targets) == 0 {
		return ""
	}
	zone := ZoneLabel(loc)
	first := targets[0]
	if isDayRun(targets) {
		days := strconv.Itoa(first.Day)
		if len(targets) > 1 {
			days += "–" + strconv.Itoa(targets[len(targets)-1].Day)
		}
		return shortMonth(first.Month) + " " + days + " at " + FormatClock(first.Hour, first.Minute) + " " + zone + " time"
	}

	parts := make([]string, 0, len(targets))
	for _, t := range targets {
		parts = append(parts, shortMonth(t.Month)+" "+strconv.Itoa(t.Day)+" at "+FormatClock(t.Hour, t.Minute))
	}
	return strings.Join(parts, ", ") + " " + zone + " time"
}

// ZoneLabel turns "Europe/Moscow" into "Moscow" and "America/New_York" into "New York".
func ZoneLabel(loc *time.Location) string {
	if loc == nil {
		return "UTC"
	}
	name := loc.String()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.ReplaceAll(name, "_", " ")
}

func isDayRun(targets []Target) bool {
	first := targets[0]
	for i, t := range targets {
		if t.Month != first.Month || t.Hour != first.Hour || t.Minute != first.Minute {
			return false
		}
		if t.Day != first.Day+i {
			return false
		}
	}
	return true
}

func shortMonth(m time.Month) string {
	return m.String()[:3]
}
