package fetchers

import "fmt"

// MalformedTimeError is returned when a record's Time is absent or not MM:SS
type MalformedTimeError struct {
	Index  int
	Value  string
	Reason string
}

func (e *MalformedTimeError) Error() string {
	return fmt.Sprintf("record %d: malformed time %q: %s", e.Index, e.Value, e.Reason)
}

// MalformedNumberError is returned when a numeric field does not parse
type MalformedNumberError struct {
	Index int
	Field string
	Value string
	Err   error
}

func (e *MalformedNumberError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("record %d: malformed %s %q", e.Index, e.Field, e.Value)
	}
	return fmt.Sprintf("record %d: malformed %s %q: %v", e.Index, e.Field, e.Value, e.Err)
}

func (e *MalformedNumberError) Unwrap() error {
	return e.Err
}
