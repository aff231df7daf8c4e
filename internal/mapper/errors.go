package mapper

import (
	"fmt"
)

// MissingFieldError reports a required field that is absent (or null) in a
// detail, media or list payload. Field is a path such as "sections[2].type".
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("mapper: missing required field %q", e.Field)
}

// InvalidFieldError reports a field present with the wrong JSON type.
type InvalidFieldError struct {
	Field string
	Want  string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("mapper: field %q must be %s", e.Field, e.Want)
}

// MalformedDateError reports a timestamp that does not match DateLayout.
// Raw is the string as received, before any delimiter normalization.
type MalformedDateError struct {
	Field string
	Raw   string
	Err   error
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("mapper: malformed date in %q: %q", e.Field, e.Raw)
}

func (e *MalformedDateError) Unwrap() error {
	return e.Err
}

// UnrecognizedSectionTypeError describes a media-feed item whose type is
// neither image nor media.
type UnrecognizedSectionTypeError struct {
	Index int
	Type  string
}

func (e *UnrecognizedSectionTypeError) Error() string {
	return fmt.Sprintf("mapper: unrecognized media type %q at media[%d]", e.Type, e.Index)
}
