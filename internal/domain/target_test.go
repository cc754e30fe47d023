package domain

import (
	"errors"
	"testing"
	"time"
)

// helper: load a tz or fail the test
func mustLoc(t *testing.T, tz string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(tz)
	if err != nil {
		t.Fatalf("load tz: %v", err)
	}
	return loc
}

func TestResolve_DayAlreadyPassedRollsToNextYear(t *testing.T) {
	msk := mustLoc(t, "Europe/Moscow")
	now := time.Date(2025, time.November, 2, 10, 0, 0, 0, msk)

	got := Resolve(now.Year(), Target{Month: time.November, Day: 1, Hour: 16}, now)
	want := time.Date(2026, time.November, 1, 16, 0, 0, 0, msk)
	if !got.Equal(want) {
		t.Fatalf("want %s, got %s", want, got)
	}
	if got.Location() != msk {
		t.Fatalf("want location %s, got %s", msk, got.Location())
	}
}

func TestResolve_LaterSameDayKept(t *testing.T) {
	msk := mustLoc(t, "Europe/Moscow")
	now := time.Date(2025, time.November, 2, 10, 0, 0, 0, msk)

	got := Resolve(now.Year(), Target{Month: time.November, Day: 2, Hour: 16}, now)
	want := time.Date(2025, time.November, 2, 16, 0, 0, 0, msk)
	if !got.Equal(want) {
		t.Fatalf("want %s, got %s", want, got)
	}
}

func TestResolve_EqualToNowIsKept(t *testing.T) {
	msk := mustLoc(t, "Europe/Moscow")
	now := time.Date(2025, time.November, 3, 16, 0, 0, 0, msk)

	got := Resolve(2025, Target{Month: time.November, Day: 3, Hour: 16}, now)
	if !got.Equal(now) {
		t.Fatalf("want %s, got %s", now, got)
	}
}

func TestResolve_Properties(t *testing.T) {
	msk := mustLoc(t, "Europe/Moscow")
	nows := []time.Time{
		time.Date(2025, time.January, 1, 0, 0, 0, 0, msk),
		time.Date(2025, time.June, 15, 12, 30, 0, 0, msk),
		time.Date(2025, time.November, 2, 10, 0, 0, 0, msk),
		time.Date(2025, time.December, 31, 23, 59, 59, 0, msk),
	}
	targets := []Target{
		{Month: time.January, Day: 1, Hour: 0, Minute: 0},
		{Month: time.March, Day: 15, Hour: 9, Minute: 45},
		{Month: time.November, Day: 2, Hour: 16, Minute: 0},
		{Month: time.December, Day: 31, Hour: 23, Minute: 59},
	}

	for _, now := range nows {
		for _, tg := range targets {
			naive := time.Date(now.Year(), tg.Month, tg.Day, tg.Hour, tg.Minute, 0, 0, msk)
			got := Resolve(now.Year(), tg, now)

			if !naive.Before(now) {
				if !got.Equal(naive) {
					t.Fatalf("now=%s target=%s: want unmodified %s, got %s", now, tg, naive, got)
				}
			} else {
				want := naive.AddDate(1, 0, 0)
				if !got.Equal(want) {
					t.Fatalf("now=%s target=%s: want %s, got %s", now, tg, want, got)
				}
				if got.Before(now) {
					t.Fatalf("now=%s target=%s: result %s is before now", now, tg, got)
				}
			}

			if again := Resolve(now.Year(), tg, now); !again.Equal(got) {
				t.Fatalf("not idempotent: %s vs %s", got, again)
			}
		}
	}
}

func TestNextOccurrence_UsesYearOfNow(t *testing.T) {
	msk := mustLoc(t, "Europe/Moscow")
	now := time.Date(2030, time.May, 5, 8, 0, 0, 0, msk)
	got := NextOccurrence(Target{Month: time.May, Day: 6, Hour: 8}, now)
	if got.Year() != 2030 || got.Day() != 6 {
		t.Fatalf("unexpected %s", got)
	}
}

func TestTarget_Validate(t *testing.T) {
	cases := []struct {
		name string
		tg   Target
		ok   bool
	}{
		{"ok", Target{Month: time.November, Day: 1, Hour: 16}, true},
		{"leap day", Target{Month: time.February, Day: 29, Hour: 12}, true},
		{"day 31 in 30-day month", Target{Month: time.November, Day: 31}, false},
		{"month zero", Target{Month: 0, Day: 1}, false},
		{"hour 24", Target{Month: time.January, Day: 1, Hour: 24}, false},
		{"minute 60", Target{Month: time.January, Day: 1, Minute: 60}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.tg.Validate()
			if c.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !c.ok && !errors.Is(err, ErrInvalidTarget) {
				t.Fatalf("want ErrInvalidTarget, got %v", err)
			}
		})
	}
}

func TestTarget_MatchesDetectsNormalisedLeapDay(t *testing.T) {
	msk := mustLoc(t, "Europe/Moscow")
	leap := Target{Month: time.February, Day: 29, Hour: 16}

	got := NextOccurrence(leap, time.Date(2025, time.January, 10, 0, 0, 0, 0, msk))
	if got.Month() != time.March || got.Day() != 1 {
		t.Fatalf("want Mar 1 in a non-leap year, got %s", got)
	}
	if leap.Matches(got) {
		t.Fatal("shifted date must not match the target")
	}

	got = NextOccurrence(leap, time.Date(2028, time.January, 10, 0, 0, 0, 0, msk))
	if !leap.Matches(got) {
		t.Fatalf("leap year date must match, got %s", got)
	}
}
