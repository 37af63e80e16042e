// File: internal/domain/model/prayer.go
package model

import (
	"fmt"
	"strings"
)

// Prayer is the closed set of daily prayers the bot knows about.
type Prayer int

const (
	Imsak Prayer = iota
	Fajr
	Dhuhr
	Asr
	Maghrib
	Isha
)

var prayerNames = [...]string{"Imsak", "Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"}

func (p Prayer) String() string {
	if p < 0 || int(p) >= len(prayerNames) {
		return fmt.Sprintf("Prayer(%d)", int(p))
	}
	return prayerNames[p]
}

// Prayers returns all prayers in canonical (chronological) order.
func Prayers() []Prayer {
	return []Prayer{Imsak, Fajr, Dhuhr, Asr, Maghrib, Isha}
}

// ParsePrayer maps a timetable name onto the enum. Names the enum does not
// cover (Sunrise, Sunset, Midnight, ...) report ok=false and are dropped.
func ParsePrayer(name string) (Prayer, bool) {
	for i, n := range prayerNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Prayer(i), true
		}
	}
	return 0, false
}

// ParsePrayerSet parses a comma-separated allow-list such as
// "Imsak,Fajr,Maghrib" into an enablement set. Unknown names are an error so
// config typos surface at startup instead of silently dropping reminders.
func ParsePrayerSet(csv string) (map[Prayer]bool, error) {
	set := make(map[Prayer]bool)
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p, ok := ParsePrayer(part)
		if !ok {
			return nil, fmt.Errorf("unknown prayer name %q", part)
		}
		set[p] = true
	}
	return set, nil
}

// prayerOffsets are the fixed per-prayer minute corrections applied to the
// upstream timetable. Prayers absent from the table get no correction.
var prayerOffsets = map[Prayer]int{
	Imsak:   -18,
	Fajr:    -18,
	Dhuhr:   3,
	Asr:     0,
	Maghrib: 2,
	Isha:    14,
}

// Offset returns the minute correction for p, 0 when none is configured.
func (p Prayer) Offset() int {
	return prayerOffsets[p]
}

// PrayerTimes maps each known prayer to its (already offset-corrected)
// wall-clock time for one location and day.
type PrayerTimes map[Prayer]ClockTime
