package domain

import (
	"fmt"
	"time"
)

// Target is a calendar point without a year: the reminder fires on Month/Day
// at Hour:Minute in the process timezone.
type Target struct {
	Month  time.Month
	Day    int
	Hour   int
	Minute int
}

// Validate checks ranges. Day is checked against a leap year so Feb 29 is accepted.
func (t Target) Validate() error {
	if t.Month < time.January || t.Month > time.December {
		return fmt.Errorf("%w: month %d", ErrInvalidTarget, t.Month)
	}
	if t.Day < 1 || t.Day > daysIn(t.Month, 2024) {
		return fmt.Errorf("%w: day %d of %s", ErrInvalidTarget, t.Day, t.Month)
	}
	if t.Hour < 0 || t.Hour > 23 {
		return fmt.Errorf("%w: hour %d", ErrInvalidTarget, t.Hour)
	}
	if t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("%w: minute %d", ErrInvalidTarget, t.Minute)
	}
	return nil
}

// String renders the target as "MM-DD HH:MM", the same form ParseTargets accepts.
func (t Target) String() string {
	return fmt.Sprintf("%02d-%02d %02d:%02d", int(t.Month), t.Day, t.Hour, t.Minute)
}

// Resolve builds the target in yearHint in now's location. If that instant is
// before now it is rebuilt in yearHint+1. A candidate equal to now is kept.
func Resolve(yearHint int, t Target, now time.Time) time.Time {
	loc := now.Location()
	candidate := time.Date(yearHint, t.Month, t.Day, t.Hour, t.Minute, 0, 0, loc)
	if candidate.Before(now) {
		candidate = time.Date(yearHint+1, t.Month, t.Day, t.Hour, t.Minute, 0, 0, loc)
	}
	return candidate
}

// Matches reports whether at falls on the target's calendar day. It is false
// when time.Date normalised the target, e.g. Feb 29 in a non-leap year.
func (t Target) Matches(at time.Time) bool {
	return at.Month() == t.Month && at.Day() == t.Day
}

// NextOccurrence resolves t starting from the year of now.
func NextOccurrence(t Target, now time.Time) time.Time {
	return Resolve(now.Year(), t, now)
}

func daysIn(m time.Month, year int) int {
	// Day 0 of the next month is the last day of m.
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
