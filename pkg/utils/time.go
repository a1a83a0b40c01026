package utils

import "time"

// TimestampLayout is the layout used for persisted and serialized timestamps.
// Fixed-width nanoseconds keep the strings sortable.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// legacyLayout matches timestamps written without a zone offset; they are read as UTC.
const legacyLayout = "2006-01-02T15:04:05.999999999"

// ParseTimestamp parses an RFC3339 timestamp with optional fractional seconds.
// Timestamps without an offset are accepted and interpreted as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		legacy, legacyErr := time.Parse(legacyLayout, s)
		if legacyErr != nil {
			return time.Time{}, err
		}
		t = legacy
	}
	return t.UTC(), nil
}
