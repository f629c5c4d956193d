// Package geometry derives the chart coordinate system for the race records:
// domains, pixel scales, margins and tick positions. It performs no I/O.
package geometry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"dopingplot/internal/models"
)

// ErrEmptyDataset is returned when there are no records to derive a domain from
var ErrEmptyDataset = errors.New("geometry: empty dataset")

// ErrInvalidPadding is returned when the time padding is negative, not finite
// or pushes the y domain past what time.Duration can hold
var ErrInvalidPadding = errors.New("geometry: time padding out of range")

// YearDomain is the padded x domain
type YearDomain struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// TimeDomain is the padded y domain, anchored to models.ReferenceDate
type TimeDomain struct {
	Min time.Time `json:"min"`
	Max time.Time `json:"max"`
}

// Rect is an axis-aligned pixel rectangle
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PlotGeometry is everything a renderer needs to place marks, axes and
// gridlines without recomputing the layout.
type PlotGeometry struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`

	XScale  YearScale  `json:"x_scale"`
	YScale  TimeScale  `json:"y_scale"`
	XDomain YearDomain `json:"x_domain"`
	YDomain TimeDomain `json:"y_domain"`

	XTicks     []int       `json:"x_ticks"`
	YTicks     []time.Time `json:"y_ticks"`
	XGridTicks []int       `json:"x_grid_ticks"`
	YGridTicks []time.Time `json:"y_grid_ticks"`
}

// timePadding converts the padding to a duration that keeps both ends of
// [minTime-pad, maxTime+pad] representable
func timePadding(seconds float64, minTime, maxTime time.Duration) (time.Duration, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0, fmt.Errorf("%w: %v seconds", ErrInvalidPadding, seconds)
	}
	nanos := seconds * float64(time.Second)
	if nanos >= 1<<62 {
		return 0, fmt.Errorf("%w: %v seconds", ErrInvalidPadding, seconds)
	}
	pad := time.Duration(nanos)
	if maxTime > math.MaxInt64-pad || minTime < math.MinInt64+pad {
		return 0, fmt.Errorf("%w: %v seconds", ErrInvalidPadding, seconds)
	}
	return pad, nil
}

// BuildGeometry computes scales, domains and ticks for the records.
// It returns ErrEmptyDataset when records is empty and ErrInvalidPadding
// for a time padding that cannot be represented.
func BuildGeometry(records []models.RaceRecord, cfg Config) (*PlotGeometry, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	minYear, maxYear := records[0].Year, records[0].Year
	minTime, maxTime := records[0].Elapsed(), records[0].Elapsed()
	for _, r := range records[1:] {
		if r.Year < minYear {
			minYear = r.Year
		}
		if r.Year > maxYear {
			maxYear = r.Year
		}
		if e := r.Elapsed(); e < minTime {
			minTime = e
		} else if e > maxTime {
			maxTime = e
		}
	}

	margin := cfg.Margin.Resolve()
	xDomain := YearDomain{Min: minYear - cfg.YearPadding, Max: maxYear + cfg.YearPadding}

	pad, err := timePadding(cfg.TimePaddingSeconds, minTime, maxTime)
	if err != nil {
		return nil, err
	}
	yDomain := TimeDomain{
		Min: models.ClockAt(minTime - pad),
		Max: models.ClockAt(maxTime + pad),
	}

	xScale := YearScale{LinearScale{
		DomainMin: float64(xDomain.Min),
		DomainMax: float64(xDomain.Max),
		RangeMin:  margin.Left,
		RangeMax:  cfg.CanvasWidth - margin.Right,
	}}

	// Earlier (faster) times sit at the top of the canvas.
	yScale := TimeScale{LinearScale{
		DomainMin: models.ElapsedSeconds(yDomain.Min),
		DomainMax: models.ElapsedSeconds(yDomain.Max),
		RangeMin:  cfg.CanvasHeight - margin.Bottom,
		RangeMax:  margin.Top,
	}}

	return &PlotGeometry{
		Width:      cfg.CanvasWidth,
		Height:     cfg.CanvasHeight,
		Margin:     margin,
		XScale:     xScale,
		YScale:     yScale,
		XDomain:    xDomain,
		YDomain:    yDomain,
		XTicks:     xScale.Ticks(cfg.xTicks()),
		YTicks:     yScale.Ticks(cfg.yTicks()),
		XGridTicks: xScale.Ticks(cfg.gridTicks()),
		YGridTicks: yScale.Ticks(cfg.gridTicks()),
	}, nil
}

// PlotArea returns the rectangle inside the margins
func (g *PlotGeometry) PlotArea() Rect {
	return Rect{
		X:      g.Margin.Left,
		Y:      g.Margin.Top,
		Width:  g.Width - g.Margin.Left - g.Margin.Right,
		Height: g.Height - g.Margin.Top - g.Margin.Bottom,
	}
}

// Point returns the pixel position of a record's mark
func (g *PlotGeometry) Point(r models.RaceRecord) (x, y float64) {
	return g.XScale.Scale(r.Year), g.YScale.Scale(r.FinishTime)
}

// XTickLabels formats the x ticks as plain integers
func (g *PlotGeometry) XTickLabels() []string {
	labels := make([]string, len(g.XTicks))
	for i, year := range g.XTicks {
		labels[i] = FormatYear(year)
	}
	return labels
}

// YTickLabels formats the y ticks as MM:SS
func (g *PlotGeometry) YTickLabels() []string {
	labels := make([]string, len(g.YTicks))
	for i, t := range g.YTicks {
		labels[i] = models.FormatClock(t)
	}
	return labels
}

// FormatYear renders a year tick without grouping or decimals
func FormatYear(year int) string {
	return strconv.Itoa(year)
}
