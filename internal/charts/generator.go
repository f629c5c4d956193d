package charts

import (
	"bytes"
	"fmt"

	"dopingplot/internal/geometry"
	"dopingplot/internal/logger"
	"dopingplot/internal/models"
)

// Artifact names of the rendered charts
const (
	SVGFileName         = "scatter.svg"
	PNGFileName         = "scatter.png"
	InteractiveFileName = "interactive.html"
)

// ChartSet holds every rendering of one dataset. PNG and Interactive are
// empty when their renderer failed.
type ChartSet struct {
	SVG         []byte
	PNG         []byte
	Interactive []byte
	Snippets    []ChartSnippet
}

// ChartGenerator handles creation of the chart renderings
type ChartGenerator struct {
	log *logger.Logger
}

// NewChartGenerator creates a new chart generator
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{
		log: logger.GetGlobalLogger().WithComponent("charts"),
	}
}

// GenerateCharts renders the records with every renderer. The SVG is
// required; the PNG and interactive page are best effort.
func (cg *ChartGenerator) GenerateCharts(records []models.RaceRecord, g *geometry.PlotGeometry) (*ChartSet, error) {
	var svgBuf bytes.Buffer
	if err := RenderSVG(&svgBuf, records, g); err != nil {
		return nil, fmt.Errorf("failed to render svg chart: %w", err)
	}
	set := &ChartSet{SVG: svgBuf.Bytes()}
	set.Snippets = append(set.Snippets, newSVGSnippet(set.SVG))

	var pngBuf bytes.Buffer
	if err := RenderPNG(&pngBuf, records, g); err != nil {
		cg.log.Warn("Static chart skipped", map[string]interface{}{"error": err.Error()})
	} else {
		set.PNG = pngBuf.Bytes()
	}

	var pageBuf bytes.Buffer
	if err := RenderInteractive(&pageBuf, records, g); err != nil {
		cg.log.Warn("Interactive chart skipped", map[string]interface{}{"error": err.Error()})
	} else {
		set.Interactive = pageBuf.Bytes()
		set.Snippets = append(set.Snippets, newInteractiveSnippet(InteractiveFileName, g.Width, g.Height))
	}

	cg.log.Debug("Charts rendered", map[string]interface{}{
		"records":  len(records),
		"snippets": len(set.Snippets),
		"svg_size": len(set.SVG),
		"png_size": len(set.PNG),
	})
	return set, nil
}

// Files maps artifact names to their contents for the renderings present
func (s *ChartSet) Files() map[string][]byte {
	files := map[string][]byte{SVGFileName: s.SVG}
	if len(s.PNG) > 0 {
		files[PNGFileName] = s.PNG
	}
	if len(s.Interactive) > 0 {
		files[InteractiveFileName] = s.Interactive
	}
	return files
}
