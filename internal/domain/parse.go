package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrEmptyTargets  = errors.New("empty target list")
	ErrInvalidTarget = errors.New("invalid target")
)

// DefaultTargets is the built-in table: Nov 1, 2 and 3 at 16:00.
const DefaultTargets = "11-01 16:00,11-02 16:00,11-03 16:00"

// ParseTargets parses a comma separated list of "MM-DD HH:MM" entries.
// Every entry is validated; the first bad entry fails the whole list.
func ParseTargets(s string) ([]Target, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyTargets
	}
	var out []Target
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		t, err := parseTarget(part)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, ErrEmptyTargets
	}
	return out, nil
}

func parseTarget(s string) (Target, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Target{}, fmt.Errorf("%w: %q: expected MM-DD HH:MM", ErrInvalidTarget, s)
	}
	date := strings.Split(fields[0], "-")
	if len(date) != 2 {
		return Target{}, fmt.Errorf("%w: %q: expected MM-DD", ErrInvalidTarget, s)
	}
	month, err := strconv.Atoi(date[0])
	if err != nil {
		return Target{}, fmt.Errorf("%w: %q: month", ErrInvalidTarget, s)
	}
	day, err := strconv.Atoi(date[1])
	if err != nil {
		return Target{}, fmt.Errorf("%w: %q: day", ErrInvalidTarget, s)
	}
	mins, err := parseHHMM(fields[1])
	if err != nil {
		return Target{}, fmt.Errorf("%w: %q: %v", ErrInvalidTarget, s, err)
	}
	t := Target{Month: time.Month(month), Day: day, Hour: mins / 60, Minute: mins % 60}
	if err := t.Validate(); err != nil {
		return Target{}, err
	}
	return t, nil
}

func parseHHMM(s string) (int, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, errors.New("expected HH:MM")
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, errors.New("invalid hour")
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, errors.New("invalid minute")
	}
	return h*60 + m, nil
}

// LoadTZ returns the IANA location for tz.
func LoadTZ(tz string) (*time.Location, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	return loc, nil
}

// FormatClock returns HH:MM.
func FormatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
