package geometry

import (
	"time"

	"dopingplot/internal/models"
)

// LinearScale maps a numeric domain onto a pixel range with an affine
// transform. Values outside the domain are extrapolated, never clamped.
type LinearScale struct {
	DomainMin float64 `json:"domain_min"`
	DomainMax float64 `json:"domain_max"`
	RangeMin  float64 `json:"range_min"`
	RangeMax  float64 `json:"range_max"`
}

// Scale maps a domain value to a pixel coordinate. A zero-width domain maps
// everything to the middle of the range.
func (s LinearScale) Scale(v float64) float64 {
	span := s.DomainMax - s.DomainMin
	if span == 0 {
		return (s.RangeMin + s.RangeMax) / 2
	}
	return s.RangeMin + (v-s.DomainMin)/span*(s.RangeMax-s.RangeMin)
}

// Invert maps a pixel coordinate back to the domain
func (s LinearScale) Invert(px float64) float64 {
	span := s.RangeMax - s.RangeMin
	if span == 0 {
		return (s.DomainMin + s.DomainMax) / 2
	}
	return s.DomainMin + (px-s.RangeMin)/span*(s.DomainMax-s.DomainMin)
}

// Ticks returns round domain values for about count ticks
func (s LinearScale) Ticks(count int) []float64 {
	return Ticks(s.DomainMin, s.DomainMax, count)
}

// YearScale is the x scale: race year to horizontal pixel
type YearScale struct {
	LinearScale
}

// Scale maps a year to its horizontal pixel position
func (s YearScale) Scale(year int) float64 {
	return s.LinearScale.Scale(float64(year))
}

// Ticks returns whole years only
func (s YearScale) Ticks(count int) []int {
	return IntegerTicks(s.DomainMin, s.DomainMax, count)
}

// TimeScale is the y scale: finish time to vertical pixel. The domain is
// stored as elapsed seconds since models.ReferenceDate.
type TimeScale struct {
	LinearScale
}

// Scale maps a finish time to its vertical pixel position
func (s TimeScale) Scale(t time.Time) float64 {
	return s.LinearScale.Scale(models.ElapsedSeconds(t))
}

// Invert maps a vertical pixel position back to a finish time
func (s TimeScale) Invert(px float64) time.Time {
	return secondsToClock(s.LinearScale.Invert(px))
}

// Ticks returns round finish times anchored to the reference date
func (s TimeScale) Ticks(count int) []time.Time {
	values := Ticks(s.DomainMin, s.DomainMax, count)
	ticks := make([]time.Time, len(values))
	for i, v := range values {
		ticks[i] = secondsToClock(v)
	}
	return ticks
}

func secondsToClock(seconds float64) time.Time {
	return models.ClockAt(time.Duration(seconds * float64(time.Second)))
}
