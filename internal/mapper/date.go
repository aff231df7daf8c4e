package mapper

import (
	"errors"
	"strings"
	"time"
)

var errFractionalSeconds = errors.New("fractional seconds are not part of the layout")

// DateLayout is the upstream timestamp format, YYYY-MM-DD-HH:MM:SS.
const DateLayout = "2006-01-02-15:04:05"

// DatePolicy selects how a timestamp field treats its time delimiters.
type DatePolicy int

const (
	// StrictDelimiters parses the raw string as-is.
	StrictDelimiters DatePolicy = iota
	// LenientDelimiters replaces every ';' with ':' before parsing. The
	// upstream publish date is known to use ';' between hour, minute and second.
	LenientDelimiters
)

func (p DatePolicy) String() string {
	if p == LenientDelimiters {
		return "lenient"
	}
	return "strict"
}

// ParseDate parses raw as a DateLayout timestamp in UTC. field names the
// source field for error reporting.
func ParseDate(field, raw string, policy DatePolicy) (time.Time, error) {
	s := raw
	if policy == LenientDelimiters {
		s = strings.ReplaceAll(s, ";", ":")
	}
	// time.Parse accepts fractional seconds after the seconds field even
	// though the layout has none.
	if strings.ContainsAny(s, ".,") {
		return time.Time{}, &MalformedDateError{Field: field, Raw: raw, Err: errFractionalSeconds}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &MalformedDateError{Field: field, Raw: raw, Err: err}
	}
	return t, nil
}
