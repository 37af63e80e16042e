package adapter

import "context"

// TimetableAPI fetches raw prayer timings ("name" -> "HH:MM") for one
// city/country from the external timetable service. Transport or shape
// problems surface as domain.ErrProviderUnavailable.
type TimetableAPI interface {
	FetchTimings(ctx context.Context, city, country string) (map[string]string, error)
}
