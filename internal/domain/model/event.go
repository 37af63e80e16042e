// File: internal/domain/model/event.go
package model

import "fmt"

// Event identifies one schedulable reminder. The first six mirror the
// prayers; the rest are derived fasting events announced to the shared group
// rather than the individual user.
type Event int

const (
	EventImsak Event = iota
	EventFajr
	EventDhuhr
	EventAsr
	EventMaghrib
	EventIsha
	EventSahur
	EventBerbukaWarning
	EventBerbukaCelebration
)

var eventNames = [...]string{
	"Imsak", "Fajr", "Dhuhr", "Asr", "Maghrib", "Isha",
	"Sahur", "BerbukaWarning", "BerbukaCelebration",
}

func (e Event) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return fmt.Sprintf("Event(%d)", int(e))
	}
	return eventNames[e]
}

// Event returns the reminder event corresponding to the prayer itself.
func (p Prayer) Event() Event {
	return Event(p)
}

// Announcement reports whether the event goes to the process-wide
// announcement destination instead of the user's own chat.
func (e Event) Announcement() bool {
	return e >= EventSahur
}

// Derived describes a synthetic event installed alongside a parent prayer,
// offset by a fixed number of minutes from the parent's time.
type Derived struct {
	Event  Event
	Offset int
}

var derivedEvents = map[Prayer][]Derived{
	Imsak: {
		{Event: EventSahur, Offset: -30},
	},
	Maghrib: {
		{Event: EventBerbukaWarning, Offset: -5},
		{Event: EventBerbukaCelebration, Offset: 0},
	},
}

// DerivedFrom returns the synthetic events attached to p, if any. They are
// only installed when p itself is in the notification allow-list.
func DerivedFrom(p Prayer) []Derived {
	return derivedEvents[p]
}
