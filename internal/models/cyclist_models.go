package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// RawRecord represents one entry of the cyclist-data JSON array as published.
// Numeric-like fields may arrive as JSON numbers or as strings.
type RawRecord struct {
	Time        string    `json:"Time"`
	Place       FlexValue `json:"Place"`
	Seconds     FlexValue `json:"Seconds"`
	Name        string    `json:"Name"`
	Year        FlexValue `json:"Year"`
	Nationality string    `json:"Nationality"`
	Doping      string    `json:"Doping"`
	URL         string    `json:"URL"`
}

// FlexValue holds the literal text of a JSON scalar that may be encoded either
// as a number or as a string. Null and missing keys are absent.
type FlexValue struct {
	raw     string
	present bool
}

// NewFlexValue creates a present value from its literal text
func NewFlexValue(s string) FlexValue {
	return FlexValue{raw: s, present: true}
}

// IsPresent reports whether the value was set to something other than null or ""
func (v FlexValue) IsPresent() bool {
	return v.present && strings.TrimSpace(v.raw) != ""
}

// String returns the literal text, or "" when absent
func (v FlexValue) String() string {
	return v.raw
}

// UnmarshalJSON accepts numbers, strings and null
func (v *FlexValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = FlexValue{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid string value: %w", err)
		}
		*v = NewFlexValue(s)
	case '{', '[':
		return fmt.Errorf("expected number or string, got %s", string(data))
	default:
		// numbers, true and false keep their literal text; coercion decides later
		*v = NewFlexValue(string(data))
	}
	return nil
}

// MarshalJSON writes the literal text back as a string, or null when absent
func (v FlexValue) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("null"), nil
	}
	return json.Marshal(v.raw)
}
