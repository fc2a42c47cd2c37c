package codec

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTime reports a string that is not an RFC3339 timestamp.
var ErrInvalidTime = errors.New("invalid RFC3339 time")

// TimeRFC3339 returns a Codec between RFC3339 strings and time.Time.
// Encoding normalizes to UTC.
func TimeRFC3339() Codec[string, time.Time] { return rfc3339Codec{} }

type rfc3339Codec struct{}

func (rfc3339Codec) Decode(a string) (time.Time, error) {
	t, err := parseRFC3339(a)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, a)
	}
	return t, nil
}

func (rfc3339Codec) Encode(b time.Time) (string, error) {
	if b.IsZero() {
		return "", fmt.Errorf("%w: zero time", ErrInvalidTime)
	}
	return formatRFC3339Canonical(b), nil
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Go trims trailing zeros of RFC3339Nano.
	return t.UTC().Format(time.RFC3339Nano)
}
