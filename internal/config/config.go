package config

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sethvargo/go-envconfig"

	"dopingplot/internal/geometry"
)

// Deployment modes
const (
	ModeLocal = "local"
	ModeGCS   = "gcs"
)

// Config holds all configuration for the doping plot service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8990"`

	// Data source
	DatasetURL   string        `env:"DATASET_URL,default=https://raw.githubusercontent.com/freeCodeCamp/ProjectReferenceData/master/cyclist-data.json"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT,default=30s"`
	FetchRetries int           `env:"FETCH_RETRIES,default=3"`

	// Storage configuration
	DeploymentMode  string `env:"DEPLOYMENT_MODE,default=local"`
	GCSBucket       string `env:"GCS_BUCKET"`
	LocalReportsDir string `env:"LOCAL_REPORTS_DIR,default=./reports"`
	MockupMode      bool   `env:"MOCKUP_MODE,default=false"`

	// Service configuration
	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=json"`

	Chart ChartConfig
}

// ChartConfig holds the cosmetic plot parameters. Margin sides left unset
// fall back to CHART_MARGIN; with no margin set at all the default layout
// is used.
type ChartConfig struct {
	Width  float64 `env:"CHART_WIDTH,default=1200"`
	Height float64 `env:"CHART_HEIGHT,default=500"`

	Margin       *float64 `env:"CHART_MARGIN,noinit"`
	MarginTop    *float64 `env:"CHART_MARGIN_TOP,noinit"`
	MarginRight  *float64 `env:"CHART_MARGIN_RIGHT,noinit"`
	MarginBottom *float64 `env:"CHART_MARGIN_BOTTOM,noinit"`
	MarginLeft   *float64 `env:"CHART_MARGIN_LEFT,noinit"`

	YearPadding        int     `env:"CHART_YEAR_PADDING,default=1"`
	TimePaddingSeconds float64 `env:"CHART_TIME_PADDING_SECONDS,default=0"`

	XTicks    int `env:"CHART_X_TICKS,default=10"`
	YTicks    int `env:"CHART_Y_TICKS,default=10"`
	GridTicks int `env:"CHART_GRID_TICKS,default=10"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	return LoadWithLookuper(ctx, envconfig.OsLookuper())
}

// LoadWithLookuper loads configuration from the given lookuper and validates it
func LoadWithLookuper(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks values that parse but make no sense
func (c *Config) Validate() error {
	switch c.DeploymentMode {
	case ModeLocal:
	case ModeGCS:
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required when DEPLOYMENT_MODE=%s", ModeGCS)
		}
	default:
		return fmt.Errorf("unknown DEPLOYMENT_MODE %q", c.DeploymentMode)
	}

	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	if c.FetchRetries < 0 {
		return fmt.Errorf("FETCH_RETRIES must not be negative, got %d", c.FetchRetries)
	}
	return c.Chart.Validate()
}

// Validate checks the chart layout
func (c ChartConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("chart canvas must be positive, got %vx%v", c.Width, c.Height)
	}
	if c.YearPadding < 0 || c.TimePaddingSeconds < 0 {
		return fmt.Errorf("chart padding must not be negative")
	}
	if math.IsNaN(c.TimePaddingSeconds) || math.IsInf(c.TimePaddingSeconds, 0) {
		return fmt.Errorf("CHART_TIME_PADDING_SECONDS must be finite, got %v", c.TimePaddingSeconds)
	}

	margin := c.marginSpec().Resolve()
	for name, v := range map[string]float64{
		"top": margin.Top, "right": margin.Right, "bottom": margin.Bottom, "left": margin.Left,
	} {
		if v < 0 {
			return fmt.Errorf("chart margin %s must not be negative, got %v", name, v)
		}
	}
	if margin.Left+margin.Right >= c.Width || margin.Top+margin.Bottom >= c.Height {
		return fmt.Errorf("chart margins leave no plot area on a %vx%v canvas", c.Width, c.Height)
	}
	return nil
}

func (c ChartConfig) marginSpec() geometry.MarginSpec {
	if c.Margin == nil && c.MarginTop == nil && c.MarginRight == nil && c.MarginBottom == nil && c.MarginLeft == nil {
		return geometry.DefaultConfig().Margin
	}
	margins := geometry.MarginSpec{
		Top:    c.MarginTop,
		Right:  c.MarginRight,
		Bottom: c.MarginBottom,
		Left:   c.MarginLeft,
	}
	if c.Margin != nil {
		margins.Symmetric = *c.Margin
	}
	return margins
}

// GeometryConfig maps the chart settings onto the geometry builder's config
func (c *Config) GeometryConfig() geometry.Config {
	return geometry.Config{
		CanvasWidth:        c.Chart.Width,
		CanvasHeight:       c.Chart.Height,
		Margin:             c.Chart.marginSpec(),
		YearPadding:        c.Chart.YearPadding,
		TimePaddingSeconds: c.Chart.TimePaddingSeconds,
		XTickCount:         c.Chart.XTicks,
		YTickCount:         c.Chart.YTicks,
		GridTickCount:      c.Chart.GridTicks,
	}
}
