package reports

import (
	"encoding/json"
	"fmt"
	"html/template"
	"sort"
	"time"

	"dopingplot/internal/charts"
	"dopingplot/internal/geometry"
	"dopingplot/internal/models"
	"dopingplot/internal/storage"
)

// Artifact names written next to the chart files
const (
	IndexFileName    = storage.ReportIndexFile
	RecordsFileName  = "records.json"
	GeometryFileName = "geometry.json"
)

// GeneratedFiles contains all files generated for a report
type GeneratedFiles struct {
	FolderPath string
	Timestamp  time.Time
	Summary    Summary
	Files      map[string][]byte
}

// Names returns the artifact names in storage order: the index page comes
// last so a listed report is always complete.
func (gf *GeneratedFiles) Names() []string {
	names := make([]string, 0, len(gf.Files))
	for name := range gf.Files {
		if name != IndexFileName {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := gf.Files[IndexFileName]; ok {
		names = append(names, IndexFileName)
	}
	return names
}

// FileGenerator handles generation of all report files
type FileGenerator struct {
	chartGen    *charts.ChartGenerator
	htmlBuilder *HTMLBuilder
	version     string
}

// NewFileGenerator creates a new file generator
func NewFileGenerator(version string) *FileGenerator {
	return &FileGenerator{
		chartGen:    charts.NewChartGenerator(),
		htmlBuilder: NewHTMLBuilder(),
		version:     version,
	}
}

// GenerateAllFiles creates all report files (HTML, charts, JSON)
func (fg *FileGenerator) GenerateAllFiles(records []models.RaceRecord, g *geometry.PlotGeometry, timestamp time.Time) (*GeneratedFiles, error) {
	summary, err := Summarize(records)
	if err != nil {
		return nil, err
	}

	chartSet, err := fg.chartGen.GenerateCharts(records, g)
	if err != nil {
		return nil, err
	}

	files := &GeneratedFiles{
		FolderPath: storage.GenerateReportFolderPath(timestamp),
		Timestamp:  timestamp,
		Summary:    summary,
		Files:      chartSet.Files(),
	}

	if files.Files[RecordsFileName], err = json.MarshalIndent(records, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to encode records: %w", err)
	}
	if files.Files[GeometryFileName], err = json.MarshalIndent(g, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to encode geometry: %w", err)
	}

	page, err := fg.generateHTML(summary, chartSet, files, timestamp)
	if err != nil {
		return nil, err
	}
	files.Files[IndexFileName] = []byte(page)

	return files, nil
}

func (fg *FileGenerator) generateHTML(summary Summary, chartSet *charts.ChartSet, files *GeneratedFiles, timestamp time.Time) (string, error) {
	intro, err := fg.htmlBuilder.ConvertMarkdownToHTML(summary.IntroMarkdown())
	if err != nil {
		return "", err
	}

	data := TemplateData{
		Title:       charts.ChartTitle,
		GeneratedAt: timestamp.UTC().Format("2006-01-02 15:04:05 UTC"),
		Version:     fg.version,
		RecordCount: summary.Records,
		Intro:       template.HTML(intro),
	}
	for _, snippet := range chartSet.Snippets {
		data.Charts = append(data.Charts, template.HTML(snippet.HTML))
	}

	labels := map[string]string{
		charts.SVGFileName:         "Scatter plot (SVG)",
		charts.PNGFileName:         "Scatter plot (PNG)",
		charts.InteractiveFileName: "Interactive chart",
		RecordsFileName:            "Normalized records (JSON)",
		GeometryFileName:           "Plot geometry (JSON)",
	}
	for _, name := range files.Names() {
		if label, ok := labels[name]; ok {
			data.Downloads = append(data.Downloads, Download{Href: name, Label: label})
		}
	}

	return fg.htmlBuilder.BuildCompleteHTML(data)
}
