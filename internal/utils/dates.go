package utils

import (
	"errors"
	"strings"
	"time"
)

// ErrMissingUTCZ indicates a date string without the explicit UTC "Z" suffix.
var ErrMissingUTCZ = errors.New("date must carry the UTC 'Z' suffix")

// ParseUTCDate parses an ISO-8601 date that must be expressed in UTC with a
// trailing "Z". Offsets such as "+01:00" are rejected so callers never store a
// timestamp whose zone was silently converted.
func ParseUTCDate(input string) (time.Time, error) {
	if !strings.HasSuffix(input, "Z") {
		return time.Time{}, ErrMissingUTCZ
	}
	t, err := time.Parse(time.RFC3339Nano, input)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// FormatUTCDate renders t as an ISO-8601 UTC string with millisecond precision.
func FormatUTCDate(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
