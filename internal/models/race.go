package models

import (
	"fmt"
	"time"
)

// ReferenceDate anchors every finish time so only minutes and seconds carry meaning
var ReferenceDate = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// RaceRecord is a normalized cyclist entry. It is never mutated after normalization.
type RaceRecord struct {
	Year             int       `json:"year"`
	FinishTime       time.Time `json:"finish_time"`
	Doped            bool      `json:"doped"`
	DopingAllegation string    `json:"doping_allegation,omitempty"`
	Name             string    `json:"name"`
	Nationality      string    `json:"nationality"`
	Place            *int      `json:"place,omitempty"`
	Seconds          *float64  `json:"seconds,omitempty"`
	URL              string    `json:"url,omitempty"`
}

// Elapsed returns the finish time as a duration since the reference date
func (r RaceRecord) Elapsed() time.Duration {
	return r.FinishTime.Sub(ReferenceDate)
}

// ClockTime returns the finish time formatted as MM:SS
func (r RaceRecord) ClockTime() string {
	return FormatClock(r.FinishTime)
}

// ClockAt anchors an elapsed duration to the reference date
func ClockAt(elapsed time.Duration) time.Time {
	return ReferenceDate.Add(elapsed)
}

// ElapsedSeconds returns whole and fractional seconds since the reference date
func ElapsedSeconds(t time.Time) float64 {
	return t.Sub(ReferenceDate).Seconds()
}

// FormatClock formats a reference-anchored time as zero-padded MM:SS.
// Minutes past the hour are not wrapped, so 75 minutes prints as "75:00".
func FormatClock(t time.Time) string {
	total := int64(t.Sub(ReferenceDate) / time.Second)
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	return fmt.Sprintf("%s%02d:%02d", sign, total/60, total%60)
}
