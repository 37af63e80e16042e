// File: internal/domain/model/location.go
package model

import (
	"fmt"
	"strings"
)

// Location is a user's registered city/country pair.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Key returns the normalized cache/lookup key for the location. Keys are
// trimmed and case-folded so "jakarta, Indonesia" and "Jakarta,Indonesia"
// share one timetable fetch; display strings keep the user's casing.
func (l Location) Key() string {
	return strings.ToLower(strings.TrimSpace(l.City)) + "," + strings.ToLower(strings.TrimSpace(l.Country))
}

func (l Location) IsZero() bool {
	return strings.TrimSpace(l.City) == "" && strings.TrimSpace(l.Country) == ""
}

func (l Location) String() string {
	return fmt.Sprintf("%s, %s", l.City, l.Country)
}
