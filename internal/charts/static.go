package charts

import (
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"dopingplot/internal/geometry"
	"dopingplot/internal/models"
)

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// continuousRange builds a go-chart range; go-chart refuses zero-width
// ranges, so a degenerate domain is widened by half a unit each way.
func continuousRange(min, max float64, descending bool) *chart.ContinuousRange {
	if min == max {
		min, max = min-0.5, max+0.5
	}
	return &chart.ContinuousRange{Min: min, Max: max, Descending: descending}
}

// RenderPNG draws the scatter plot as a static PNG image using the same
// domains, ticks and gridlines as the SVG renderer.
func RenderPNG(w io.Writer, records []models.RaceRecord, g *geometry.PlotGeometry) error {
	graph, err := staticChart(records, g)
	if err != nil {
		return err
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render png chart: %w", err)
	}
	return nil
}

func staticChart(records []models.RaceRecord, g *geometry.PlotGeometry) (*chart.Chart, error) {
	if g == nil {
		return nil, fmt.Errorf("geometry cannot be nil")
	}

	xTicks := make([]chart.Tick, len(g.XTicks))
	for i, label := range g.XTickLabels() {
		xTicks[i] = chart.Tick{Value: float64(g.XTicks[i]), Label: label}
	}
	yTicks := make([]chart.Tick, len(g.YTicks))
	for i, label := range g.YTickLabels() {
		yTicks[i] = chart.Tick{Value: models.ElapsedSeconds(g.YTicks[i]), Label: label}
	}

	xGrid := make([]chart.GridLine, len(g.XGridTicks))
	for i, year := range g.XGridTicks {
		xGrid[i] = chart.GridLine{Value: float64(year)}
	}
	yGrid := make([]chart.GridLine, len(g.YGridTicks))
	for i, t := range g.YGridTicks {
		yGrid[i] = chart.GridLine{Value: models.ElapsedSeconds(t)}
	}

	gridStyle := chart.Style{
		StrokeColor: drawing.Color{R: 224, G: 224, B: 224, A: 255},
		StrokeWidth: 1,
	}

	var series []chart.Series
	for _, entry := range Legend() {
		var xs, ys []float64
		for _, rec := range records {
			if rec.Doped != entry.Doped {
				continue
			}
			xs = append(xs, float64(rec.Year))
			ys = append(ys, models.ElapsedSeconds(rec.FinishTime))
		}
		// go-chart cannot draw a series without values
		if len(xs) == 0 {
			continue
		}
		color := hexColor(entry.Color)
		series = append(series, chart.ContinuousSeries{
			Name: entry.Label,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    DotRadius,
				DotColor:    color,
				StrokeColor: color,
			},
			XValues: xs,
			YValues: ys,
		})
	}
	if len(series) == 0 {
		return nil, geometry.ErrEmptyDataset
	}

	graph := &chart.Chart{
		Title: ChartTitle,
		TitleStyle: chart.Style{
			FontSize:  16,
			FontColor: drawing.ColorBlack,
		},
		Width:  int(g.Width),
		Height: int(g.Height),
		Background: chart.Style{
			Padding: chart.Box{
				Top:    int(g.Margin.Top),
				Left:   int(g.Margin.Left),
				Right:  int(g.Margin.Right),
				Bottom: int(g.Margin.Bottom),
			},
		},
		XAxis: chart.XAxis{
			Name:           XAxisLabel,
			NameStyle:      chart.Style{FontSize: 12},
			Style:          chart.Style{FontSize: 10},
			Range:          continuousRange(float64(g.XDomain.Min), float64(g.XDomain.Max), false),
			Ticks:          xTicks,
			GridLines:      xGrid,
			GridMajorStyle: gridStyle,
		},
		// earlier times at the top
		YAxis: chart.YAxis{
			Name:      YAxisLabel,
			NameStyle: chart.Style{FontSize: 12},
			Style:     chart.Style{FontSize: 10},
			Range: continuousRange(
				models.ElapsedSeconds(g.YDomain.Min),
				models.ElapsedSeconds(g.YDomain.Max),
				true,
			),
			Ticks:          yTicks,
			GridLines:      yGrid,
			GridMajorStyle: gridStyle,
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(graph)}

	return graph, nil
}
