package geometry

// Default tick targets when a Config leaves them unset
const (
	DefaultXTickCount    = 10
	DefaultYTickCount    = 10
	DefaultGridTickCount = 10
)

// Config holds the cosmetic parameters of the plot. None of them change the
// meaning of the chart, only its whitespace and density.
type Config struct {
	CanvasWidth  float64    `json:"canvas_width"`
	CanvasHeight float64    `json:"canvas_height"`
	Margin       MarginSpec `json:"margin"`

	// YearPadding extends the x domain by this many years on both sides
	YearPadding int `json:"year_padding"`

	// TimePaddingSeconds extends the y domain symmetrically
	TimePaddingSeconds float64 `json:"time_padding_seconds"`

	XTickCount    int `json:"x_tick_count"`
	YTickCount    int `json:"y_tick_count"`
	GridTickCount int `json:"grid_tick_count"`
}

// DefaultConfig returns the layout of the published chart: a 1200x500 canvas
// with a plot area inset 175px horizontally and 75px vertically.
func DefaultConfig() Config {
	return Config{
		CanvasWidth:   1200,
		CanvasHeight:  500,
		Margin:        Sides(75, 175, 75, 175),
		YearPadding:   1,
		XTickCount:    DefaultXTickCount,
		YTickCount:    DefaultYTickCount,
		GridTickCount: DefaultGridTickCount,
	}
}

func (c Config) xTicks() int {
	if c.XTickCount > 0 {
		return c.XTickCount
	}
	return DefaultXTickCount
}

func (c Config) yTicks() int {
	if c.YTickCount > 0 {
		return c.YTickCount
	}
	return DefaultYTickCount
}

func (c Config) gridTicks() int {
	if c.GridTickCount > 0 {
		return c.GridTickCount
	}
	return DefaultGridTickCount
}

// MarginSpec accepts either a symmetric padding or explicit sides. Any side
// left nil falls back to Symmetric.
type MarginSpec struct {
	Symmetric float64  `json:"symmetric"`
	Top       *float64 `json:"top,omitempty"`
	Right     *float64 `json:"right,omitempty"`
	Bottom    *float64 `json:"bottom,omitempty"`
	Left      *float64 `json:"left,omitempty"`
}

// Margin is the resolved four-sided padding around the plot area
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Uniform returns a MarginSpec with the same padding on every side
func Uniform(v float64) MarginSpec {
	return MarginSpec{Symmetric: v}
}

// Sides returns a MarginSpec with every side set explicitly
func Sides(top, right, bottom, left float64) MarginSpec {
	return MarginSpec{Top: &top, Right: &right, Bottom: &bottom, Left: &left}
}

// Resolve normalizes the margins to four explicit sides
func (s MarginSpec) Resolve() Margin {
	side := func(v *float64) float64 {
		if v != nil {
			return *v
		}
		return s.Symmetric
	}
	return Margin{
		Top:    side(s.Top),
		Right:  side(s.Right),
		Bottom: side(s.Bottom),
		Left:   side(s.Left),
	}
}
