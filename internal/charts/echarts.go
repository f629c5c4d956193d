package charts

import (
	"fmt"
	"io"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"dopingplot/internal/geometry"
	"dopingplot/internal/models"
)

// ECharts cannot invert a value axis, so finish times are plotted as negated
// elapsed seconds and the labels undo the sign.
const clockLabelFormatter = `function (value) {
	var s = Math.abs(value);
	var m = Math.floor(s / 60);
	var ss = Math.round(s - m * 60);
	return (m < 10 ? '0' : '') + m + ':' + (ss < 10 ? '0' : '') + ss;
}`

const (
	yearLabelFormatter = `function (value) { return String(value); }`
	tooltipFormatter   = `function (params) { return params.name; }`
)

func fmtPixels(v float64) string {
	return fmt.Sprintf("%dpx", px(v))
}

// NewInteractiveScatter builds the hoverable ECharts scatter for the records
func NewInteractiveScatter(records []models.RaceRecord, g *geometry.PlotGeometry) (*echarts.Scatter, error) {
	if g == nil {
		return nil, fmt.Errorf("geometry cannot be nil")
	}

	scatter := echarts.NewScatter()
	scatter.SetGlobalOptions(
		echarts.WithInitializationOpts(opts.Initialization{
			PageTitle: ChartTitle,
			Width:     fmtPixels(g.Width),
			Height:    fmtPixels(g.Height),
		}),
		echarts.WithTitleOpts(opts.Title{
			Title: ChartTitle,
			Left:  "center",
		}),
		echarts.WithTooltipOpts(opts.Tooltip{
			Show:      true,
			Trigger:   "item",
			Formatter: opts.FuncOpts(tooltipFormatter),
		}),
		echarts.WithLegendOpts(opts.Legend{
			Show:   true,
			Orient: "vertical",
			Right:  "10",
			Top:    "middle",
		}),
		echarts.WithGridOpts(opts.Grid{
			Top:    fmtPixels(g.Margin.Top),
			Right:  fmtPixels(g.Margin.Right),
			Bottom: fmtPixels(g.Margin.Bottom),
			Left:   fmtPixels(g.Margin.Left),
		}),
		echarts.WithXAxisOpts(opts.XAxis{
			Name:      XAxisLabel,
			Type:      "value",
			Min:       g.XDomain.Min,
			Max:       g.XDomain.Max,
			SplitLine: &opts.SplitLine{Show: true},
			AxisLabel: &opts.AxisLabel{Show: true, Formatter: opts.FuncOpts(yearLabelFormatter)},
		}),
		echarts.WithYAxisOpts(opts.YAxis{
			Name:      YAxisLabel,
			Type:      "value",
			Min:       -models.ElapsedSeconds(g.YDomain.Max),
			Max:       -models.ElapsedSeconds(g.YDomain.Min),
			SplitLine: &opts.SplitLine{Show: true},
			AxisLabel: &opts.AxisLabel{Show: true, Formatter: opts.FuncOpts(clockLabelFormatter)},
		}),
	)

	for _, entry := range Legend() {
		points := make([]opts.ScatterData, 0, len(records))
		for _, rec := range records {
			if rec.Doped != entry.Doped {
				continue
			}
			points = append(points, opts.ScatterData{
				Name:       TooltipContent(rec),
				Value:      []interface{}{rec.Year, -models.ElapsedSeconds(rec.FinishTime)},
				SymbolSize: DotRadius * 2,
			})
		}
		scatter.AddSeries(entry.Label, points,
			echarts.WithItemStyleOpts(opts.ItemStyle{Color: entry.Color}))
	}

	return scatter, nil
}

// RenderInteractive writes the interactive chart as a standalone HTML page
func RenderInteractive(w io.Writer, records []models.RaceRecord, g *geometry.PlotGeometry) error {
	scatter, err := NewInteractiveScatter(records, g)
	if err != nil {
		return err
	}
	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("failed to render interactive chart: %w", err)
	}
	return nil
}
