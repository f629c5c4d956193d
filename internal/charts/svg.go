package charts

import (
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"time"

	svg "github.com/ajstarks/svgo"

	"dopingplot/internal/geometry"
	"dopingplot/internal/models"
)

const tickSize = 6

// errWriter keeps the first write error so the svgo calls can stay linear
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

func px(v float64) int {
	return int(math.Round(v))
}

func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, html.EscapeString(value))
}

// RenderSVG draws the scatter plot as a standalone SVG document: title,
// both axes, gridlines, one dot per record and the legend.
func RenderSVG(w io.Writer, records []models.RaceRecord, g *geometry.PlotGeometry) error {
	if g == nil {
		return fmt.Errorf("geometry cannot be nil")
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	width, height := px(g.Width), px(g.Height)
	area := g.PlotArea()
	left, top := px(area.X), px(area.Y)
	right, bottom := px(area.X+area.Width), px(area.Y+area.Height)

	canvas.Start(width, height,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, width, height),
		`preserveAspectRatio="xMidYMid meet"`,
		`class="svg-graph"`)

	// gridlines
	canvas.Group(`class="grid"`, `stroke="#e0e0e0"`, `stroke-width="1"`)
	for _, year := range g.XGridTicks {
		x := px(g.XScale.Scale(year))
		canvas.Line(x, top, x, bottom, `class="grid-line"`)
	}
	for _, t := range g.YGridTicks {
		y := px(g.YScale.Scale(t))
		canvas.Line(left, y, right, y, `class="grid-line"`)
	}
	canvas.Gend()

	// x axis
	canvas.Group(`id="x-axis"`, fmt.Sprintf(`transform="translate(0,%d)"`, bottom), `font-size="10"`, `text-anchor="middle"`)
	canvas.Line(left, 0, right, 0, `class="domain"`, `stroke="currentColor"`)
	for i, year := range g.XTicks {
		x := px(g.XScale.Scale(year))
		canvas.Group(`class="tick"`, attr("data-value", strconv.Itoa(year)))
		canvas.Line(x, 0, x, tickSize, `stroke="currentColor"`)
		canvas.Text(x, tickSize+12, g.XTickLabels()[i], `fill="currentColor"`)
		canvas.Gend()
	}
	canvas.Text(right, px(g.Margin.Bottom/2), XAxisLabel, `class="x-label"`, `fill="currentColor"`)
	canvas.Gend()

	// y axis
	yLabels := g.YTickLabels()
	canvas.Group(`id="y-axis"`, fmt.Sprintf(`transform="translate(%d,0)"`, left), `font-size="10"`, `text-anchor="end"`)
	for i, t := range g.YTicks {
		y := px(g.YScale.Scale(t))
		canvas.Group(`class="tick"`, attr("data-value", t.Format(time.RFC3339)))
		canvas.Line(-tickSize, y, 0, y, `stroke="currentColor"`)
		canvas.Text(-tickSize-3, y, yLabels[i], `dy="0.32em"`, `fill="currentColor"`)
		canvas.Gend()
	}
	canvas.Text(-(top+bottom)/2, -px(g.Margin.Left/2), YAxisLabel,
		`class="y-label"`, `transform="rotate(-90)"`, `text-anchor="middle"`, `fill="currentColor"`)
	canvas.Gend()

	// marks
	canvas.Group(`class="dots"`)
	for _, rec := range records {
		x, y := g.Point(rec)
		canvas.Circle(px(x), px(y), DotRadius,
			`class="dot"`,
			attr("data-xvalue", strconv.Itoa(rec.Year)),
			attr("data-yvalue", rec.FinishTime.Format(time.RFC3339)),
			attr("data-tooltip", TooltipContent(rec)),
			attr("fill", FillColor(rec.Doped)),
			`stroke="#333"`)
	}
	canvas.Gend()

	canvas.Text(width/2, px(g.Margin.Top/2), ChartTitle, `id="title"`, `text-anchor="middle"`, `font-size="24"`)

	canvas.Group(`id="legend"`, `font-size="12"`)
	for i, entry := range Legend() {
		y := height/2 - i*20
		canvas.Group(`class="legend"`, fmt.Sprintf(`transform="translate(0,%d)"`, y))
		canvas.Rect(right+10, 0, LegendSwatch, LegendSwatch, `class="legend-shape"`, attr("fill", entry.Color), `stroke="white"`)
		canvas.Text(right+16+LegendSwatch, LegendSwatch/2, entry.Label,
			`class="legend-text"`, `dy=".35em"`, `fill="currentColor"`)
		canvas.Gend()
	}
	canvas.Gend()

	canvas.End()
	if ew.err != nil {
		return fmt.Errorf("failed to write svg: %w", ew.err)
	}
	return nil
}
