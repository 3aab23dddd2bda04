// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package daykey

import (
	"errors"
	"strings"
	"time"
)

// Layout is the day-granularity format of a Key.
const Layout = "2006-01-02"

var ErrInvalidDay = errors.New("invalid voting day")

// Key identifies one voting day.
type Key string

func (k Key) String() string {
	return string(k)
}

// Today returns the Key for now, evaluated in now's location.
func Today(now time.Time) Key {
	return Key(now.Format(Layout))
}

// Normalize converts a stored day value (date or RFC 3339 timestamp) to a Key.
// Timestamps are read in the server's local zone, the same zone Today is
// evaluated in for time.Now.
func Normalize(raw string) (Key, error) {
	return NormalizeIn(raw, time.Local)
}

// NormalizeIn is Normalize with timestamps reduced to their calendar date in
// loc. Bare dates are taken as-is.
func NormalizeIn(raw string, loc *time.Location) (Key, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidDay
	}

	if t, err := time.Parse(Layout, raw); err == nil {
		return Today(t), nil
	}

	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return "", ErrInvalidDay
	}
	if loc == nil {
		loc = time.Local
	}
	return Today(t.In(loc)), nil
}
