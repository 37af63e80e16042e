// File: internal/domain/model/clock.go
package model

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ClockTime is a wall-clock time of day on a 24-hour clock.
type ClockTime struct {
	Hour   int
	Minute int
}

// Add shifts the time by the given number of minutes (negative allowed) and
// wraps around midnight in both directions, so 23:50+14 is 00:04 and
// 00:10-30 is 23:40.
func (t ClockTime) Add(minutes int) ClockTime {
	total := (t.Hour*60 + t.Minute + minutes) % minutesPerDay
	if total < 0 {
		total += minutesPerDay
	}
	return ClockTime{Hour: total / 60, Minute: total % 60}
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseClock parses "HH:MM". Timetable APIs sometimes append a timezone
// suffix ("04:38 (WIB)"); anything after the first space is ignored.
func ParseClock(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return ClockTime{}, fmt.Errorf("malformed clock time %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return ClockTime{}, fmt.Errorf("malformed hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return ClockTime{}, fmt.Errorf("malformed minute in %q", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("clock time %q out of range", s)
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}
