package charts

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dopingplot/internal/geometry"
)

func testGeometry(t *testing.T) *geometry.PlotGeometry {
	t.Helper()
	g, err := geometry.BuildGeometry(testRecords(), geometry.DefaultConfig())
	require.NoError(t, err)
	return g
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRenderSVG(t *testing.T) {
	records := testRecords()
	g := testGeometry(t)

	var buf bytes.Buffer
	require.NoError(t, RenderSVG(&buf, records, g))
	out := buf.String()

	for _, want := range []string{
		`viewBox="0 0 1200 500"`,
		`id="title"`,
		ChartTitle,
		`id="x-axis"`,
		`id="y-axis"`,
		`id="legend"`,
		`class="grid-line"`,
		`data-xvalue="1995"`,
		`data-yvalue="1970-01-01T00:36:50Z"`,
		`data-xvalue="2015"`,
		`data-yvalue="1970-01-01T00:35:16Z"`,
		`fill="` + DopedColor + `"`,
		`fill="` + CleanColor + `"`,
		`>1994<`,
		`>2016<`,
		`>36:50<`,
		"No doping allegations",
		"Riders with doping allegations",
	} {
		assert.Contains(t, out, want)
	}

	assert.Equal(t, len(records), strings.Count(out, `class="dot"`))

	// tooltip markup is escaped once more inside the attribute
	assert.Contains(t, out, `data-tooltip="Marco Pantani, ITA, 1&lt;br/&gt;Year: 1995`)
}

func TestRenderSVGErrors(t *testing.T) {
	assert.Error(t, RenderSVG(&bytes.Buffer{}, testRecords(), nil), "nil geometry")
	assert.Error(t, RenderSVG(failingWriter{}, testRecords(), testGeometry(t)), "failing writer")
}

func TestStaticChart(t *testing.T) {
	g := testGeometry(t)

	graph, err := staticChart(testRecords(), g)
	require.NoError(t, err)
	assert.Len(t, graph.Series, 2)
	assert.Equal(t, 1200, graph.Width)
	assert.Equal(t, 500, graph.Height)
	assert.Len(t, graph.XAxis.Ticks, len(g.XTicks))
	assert.Len(t, graph.YAxis.GridLines, len(g.YGridTicks))

	clean := testRecords()[1:]
	cleanGeometry, err := geometry.BuildGeometry(clean, geometry.DefaultConfig())
	require.NoError(t, err)
	graph, err = staticChart(clean, cleanGeometry)
	require.NoError(t, err)
	assert.Len(t, graph.Series, 1, "empty doped series is skipped")

	_, err = staticChart(nil, g)
	assert.ErrorIs(t, err, geometry.ErrEmptyDataset)
}

func TestContinuousRange(t *testing.T) {
	r := continuousRange(2000, 2000, false)
	assert.Equal(t, 1999.5, r.Min)
	assert.Equal(t, 2000.5, r.Max)

	r = continuousRange(10, 20, true)
	assert.Equal(t, 10.0, r.Min)
	assert.Equal(t, 20.0, r.Max)
	assert.True(t, r.Descending)
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPNG(&buf, testRecords(), testGeometry(t)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), "PNG signature")
}

func TestRenderInteractive(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderInteractive(&buf, testRecords(), testGeometry(t)))
	out := buf.String()

	for _, want := range []string{"echarts", ChartTitle, "No doping allegations", "Riders with doping allegations", "scatter"} {
		assert.Contains(t, out, want)
	}
}

func TestGenerateCharts(t *testing.T) {
	generator := NewChartGenerator()

	set, err := generator.GenerateCharts(testRecords(), testGeometry(t))
	require.NoError(t, err)
	assert.NotEmpty(t, set.SVG)
	assert.NotEmpty(t, set.PNG)
	assert.NotEmpty(t, set.Interactive)

	files := set.Files()
	for _, name := range []string{SVGFileName, PNGFileName, InteractiveFileName} {
		assert.NotEmpty(t, files[name], name)
	}

	require.Len(t, set.Snippets, 2)
	for _, snippet := range set.Snippets {
		assert.NotEmpty(t, snippet.ID)
		assert.NotEmpty(t, snippet.Title, snippet.ID)
		assert.NotEmpty(t, snippet.Div, snippet.ID)
		assert.NotEmpty(t, snippet.HTML, snippet.ID)
		assert.Contains(t, snippet.HTML, snippet.Div)
	}
}

func TestGenerateChartsNilGeometry(t *testing.T) {
	_, err := NewChartGenerator().GenerateCharts(testRecords(), nil)
	assert.Error(t, err)
}

func TestSVGSnippet(t *testing.T) {
	snippet := newSVGSnippet([]byte("<svg></svg>"))

	assert.Contains(t, snippet.Div, `id="chart-scatter"`)
	assert.Contains(t, snippet.Script, "ev.pageX+20")
	assert.Contains(t, snippet.Script, "ev.pageY+-20")
	assert.Contains(t, snippet.HTML, snippet.Script)
}

func TestSVGSnippetMatchesTooltipModel(t *testing.T) {
	snippet := newSVGSnippet([]byte("<svg></svg>"))

	var tip Tooltip
	tip.Show(testRecords()[0], HoverEvent{PageX: 0, PageY: 0})

	assert.Contains(t, snippet.Script, fmt.Sprintf("ev.pageX+%v", tip.Left))
	assert.Contains(t, snippet.Script, fmt.Sprintf("ev.pageY+%v", tip.Top))
	assert.Contains(t, snippet.Script, "tip.style.display='none'", "mouseout hides the tooltip")
}
