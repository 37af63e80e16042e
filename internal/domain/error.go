package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound            = errors.New("entity not found")
	ErrProviderUnavailable = errors.New("timetable provider unavailable")
	ErrInvalidLocation     = errors.New("invalid location input")
	ErrSendFailure         = errors.New("outbound message send failed")
	ErrMalformedEvent      = errors.New("malformed inbound event")
)
