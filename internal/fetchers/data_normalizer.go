package fetchers

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"dopingplot/internal/models"
)

var (
	clockRe = regexp.MustCompile(`^(\d+):(\d+)$`)

	errNotIntegral = errors.New("not an integral value")
	errNotEraYear  = errors.New("not a 4-digit year")
	errMissing     = errors.New("value is required")
)

// maxMinutes keeps MM*time.Minute + 59s within time.Duration
const maxMinutes = (math.MaxInt64 - 59*int64(time.Second)) / int64(time.Minute)

// fieldCoercion fixes the semantic type of one RaceRecord field
type fieldCoercion struct {
	field  string
	coerce func(index int, raw models.RawRecord, rec *models.RaceRecord) error
}

// coercions is applied in order to every raw record. Each RaceRecord field is
// typed exactly once here so consumers never inspect raw values again.
var coercions = []fieldCoercion{
	{"Year", coerceYear},
	{"Time", coerceFinishTime},
	{"Doping", coerceDoping},
	{"Name", func(_ int, raw models.RawRecord, rec *models.RaceRecord) error {
		rec.Name = raw.Name
		return nil
	}},
	{"Nationality", func(_ int, raw models.RawRecord, rec *models.RaceRecord) error {
		rec.Nationality = raw.Nationality
		return nil
	}},
	{"Place", coercePlace},
	{"Seconds", coerceSeconds},
	{"URL", func(_ int, raw models.RawRecord, rec *models.RaceRecord) error {
		rec.URL = raw.URL
		return nil
	}},
}

// DataNormalizer turns raw dataset entries into typed race records
type DataNormalizer struct{}

// NewDataNormalizer creates a new data normalizer instance
func NewDataNormalizer() *DataNormalizer {
	return &DataNormalizer{}
}

// Normalize converts raw records into race records, preserving input order.
// The first invalid record aborts the conversion with a *MalformedTimeError or
// *MalformedNumberError naming its index.
func (n *DataNormalizer) Normalize(raw []models.RawRecord) ([]models.RaceRecord, error) {
	return Normalize(raw)
}

// Normalize is the package-level form of DataNormalizer.Normalize
func Normalize(raw []models.RawRecord) ([]models.RaceRecord, error) {
	records := make([]models.RaceRecord, 0, len(raw))
	for i, r := range raw {
		var rec models.RaceRecord
		for _, c := range coercions {
			if err := c.coerce(i, r, &rec); err != nil {
				return nil, err
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParseFinishTime parses "MM:SS" into a time anchored to models.ReferenceDate
func ParseFinishTime(s string) (time.Time, error) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("expected MM:SS")
	}

	minutes, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || minutes > maxMinutes {
		return time.Time{}, fmt.Errorf("minutes out of range")
	}
	seconds, err := strconv.Atoi(m[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("seconds: %w", err)
	}
	if seconds > 59 {
		return time.Time{}, fmt.Errorf("seconds out of range")
	}

	return models.ClockAt(time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second), nil
}

func coerceYear(index int, raw models.RawRecord, rec *models.RaceRecord) error {
	if !raw.Year.IsPresent() {
		return &MalformedNumberError{Index: index, Field: "Year", Value: raw.Year.String(), Err: errMissing}
	}
	year, err := parseInteger(raw.Year.String())
	if err != nil {
		return &MalformedNumberError{Index: index, Field: "Year", Value: raw.Year.String(), Err: err}
	}
	if year < 1000 || year > 9999 {
		return &MalformedNumberError{Index: index, Field: "Year", Value: raw.Year.String(), Err: errNotEraYear}
	}
	rec.Year = year
	return nil
}

func coerceFinishTime(index int, raw models.RawRecord, rec *models.RaceRecord) error {
	if raw.Time == "" {
		return &MalformedTimeError{Index: index, Value: raw.Time, Reason: "time is required"}
	}
	t, err := ParseFinishTime(raw.Time)
	if err != nil {
		return &MalformedTimeError{Index: index, Value: raw.Time, Reason: err.Error()}
	}
	rec.FinishTime = t
	return nil
}

// coerceDoping treats any non-empty allegation, whitespace included, as doped
func coerceDoping(_ int, raw models.RawRecord, rec *models.RaceRecord) error {
	rec.Doped = raw.Doping != ""
	rec.DopingAllegation = raw.Doping
	return nil
}

func coercePlace(index int, raw models.RawRecord, rec *models.RaceRecord) error {
	if !raw.Place.IsPresent() {
		return nil
	}
	place, err := parseInteger(raw.Place.String())
	if err != nil {
		return &MalformedNumberError{Index: index, Field: "Place", Value: raw.Place.String(), Err: err}
	}
	rec.Place = &place
	return nil
}

func coerceSeconds(index int, raw models.RawRecord, rec *models.RaceRecord) error {
	if !raw.Seconds.IsPresent() {
		return nil
	}
	seconds, err := parseNumber(raw.Seconds.String())
	if err != nil {
		return &MalformedNumberError{Index: index, Field: "Seconds", Value: raw.Seconds.String(), Err: err}
	}
	rec.Seconds = &seconds
	return nil
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number")
	}
	return v, nil
}

func parseInteger(s string) (int, error) {
	v, err := parseNumber(s)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, errNotIntegral
	}
	return int(v), nil
}
