package reports

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// HTMLBuilder handles HTML generation with goldmark
type HTMLBuilder struct {
	templateLoader *TemplateLoader
	goldmark       goldmark.Markdown
}

// NewHTMLBuilder creates an HTML builder
func NewHTMLBuilder() *HTMLBuilder {
	// Raw HTML in the markdown is escaped: rider names come from the dataset.
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	return &HTMLBuilder{
		templateLoader: NewTemplateLoader(),
		goldmark:       md,
	}
}

// Download is a link to one of the report artifacts
type Download struct {
	Href  string
	Label string
}

// TemplateData represents the data structure for the HTML template
type TemplateData struct {
	Title       string
	GeneratedAt string
	Version     string
	RecordCount int
	CSS         template.CSS
	Intro       template.HTML
	Charts      []template.HTML
	Downloads   []Download
}

// ConvertMarkdownToHTML converts markdown to HTML using goldmark
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdownContent string) (string, error) {
	var buf bytes.Buffer
	if err := h.goldmark.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

// BuildCompleteHTML renders the report page. The embedded styles are used
// when data carries no CSS of its own.
func (h *HTMLBuilder) BuildCompleteHTML(data TemplateData) (string, error) {
	templateContent, err := h.templateLoader.LoadHTMLTemplate()
	if err != nil {
		return "", err
	}
	tmpl, err := template.New("report").Parse(templateContent)
	if err != nil {
		return "", fmt.Errorf("failed to parse report template: %w", err)
	}

	if data.CSS == "" {
		css, err := h.templateLoader.LoadCSSStyles()
		if err != nil {
			return "", err
		}
		data.CSS = template.CSS(css)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute report template: %w", err)
	}
	return buf.String(), nil
}
