package vitals

import "errors"

var (
	ErrReadingNotFound = errors.New("vitals reading not found")
	ErrInvalidCursor   = errors.New("cursor does not reference a reading of this patient")
	// ErrDuplicateReading is returned by Create when (device, sequence) was already stored.
	ErrDuplicateReading = errors.New("reading already ingested")
)
