package charts

import (
	"html"
	"strconv"
	"strings"

	"dopingplot/internal/models"
)

// Tooltip placement relative to the pointer
const (
	TooltipOffsetX = 20
	TooltipOffsetY = -20
)

// HoverEvent carries the pointer position of a hover. Renderers pass it in
// explicitly; the tooltip never reads pointer state from anywhere else.
type HoverEvent struct {
	PageX float64 `json:"page_x"`
	PageY float64 `json:"page_y"`
}

// Tooltip is the state of the hover box. The page script in snippets.go
// mirrors Show and Hide in the browser using the same offsets.
type Tooltip struct {
	Visible bool    `json:"visible"`
	Left    float64 `json:"left"`
	Top     float64 `json:"top"`
	Year    int     `json:"data_year"`
	Content string  `json:"content"`
}

// Show fills the tooltip for rec and places it next to the pointer
func (t *Tooltip) Show(rec models.RaceRecord, ev HoverEvent) {
	t.Visible = true
	t.Left = ev.PageX + TooltipOffsetX
	t.Top = ev.PageY + TooltipOffsetY
	t.Year = rec.Year
	t.Content = TooltipContent(rec)
}

// Hide clears the tooltip
func (t *Tooltip) Hide() {
	*t = Tooltip{}
}

// TooltipContent renders the hover text for a record as an HTML fragment.
// Rider fields are escaped; absent Place or Seconds render empty.
func TooltipContent(rec models.RaceRecord) string {
	var b strings.Builder
	b.WriteString(html.EscapeString(rec.Name))
	b.WriteString(", ")
	b.WriteString(html.EscapeString(rec.Nationality))
	b.WriteString(", ")
	if rec.Place != nil {
		b.WriteString(strconv.Itoa(*rec.Place))
	}
	b.WriteString("<br/>Year: ")
	b.WriteString(strconv.Itoa(rec.Year))
	b.WriteString(", Time: ")
	b.WriteString(models.FormatClock(rec.FinishTime))
	b.WriteString("<br/>Doping: &quot;")
	b.WriteString(html.EscapeString(rec.DopingAllegation))
	b.WriteString("&quot;<br/>Seconds: ")
	if rec.Seconds != nil {
		b.WriteString(strconv.FormatFloat(*rec.Seconds, 'f', -1, 64))
	}
	return b.String()
}
