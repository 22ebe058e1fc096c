package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Clock is a time of day counted in minutes since midnight. 24:00 (1440) is
// valid so that a day can close at midnight.
type Clock int

const (
	Midnight  Clock = 0
	EndOfDay  Clock = 24 * 60
	clockForm       = "15:04"
)

// ParseClock accepts "HH:MM" (00:00 - 24:00).
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	if s == "24:00" {
		return EndOfDay, nil
	}
	t, err := time.Parse(clockForm, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q, expected HH:MM", s)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

// ClockOf returns the time of day of t in t's location.
func ClockOf(t time.Time) Clock {
	return Clock(t.Hour()*60 + t.Minute())
}

func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

// Sub returns c-o in minutes.
func (c Clock) Sub(o Clock) int {
	return int(c - o)
}

func (c Clock) Valid() bool {
	return c >= Midnight && c <= EndOfDay
}

// On anchors the time of day to the calendar date of day.
func (c Clock) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, int(c), 0, 0, day.Location())
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
