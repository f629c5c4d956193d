package reports

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"dopingplot/internal/geometry"
	"dopingplot/internal/models"
)

// Summary holds the headline numbers shown above the chart
type Summary struct {
	Records   int               `json:"records"`
	Doped     int               `json:"doped"`
	Clean     int               `json:"clean"`
	FirstYear int               `json:"first_year"`
	LastYear  int               `json:"last_year"`
	Fastest   models.RaceRecord `json:"fastest"`
	Slowest   models.RaceRecord `json:"slowest"`
}

// Summarize computes the summary. Ties on time keep the earlier record.
func Summarize(records []models.RaceRecord) (Summary, error) {
	if len(records) == 0 {
		return Summary{}, geometry.ErrEmptyDataset
	}

	s := Summary{
		Records:   len(records),
		FirstYear: records[0].Year,
		LastYear:  records[0].Year,
		Fastest:   records[0],
		Slowest:   records[0],
	}
	for i, r := range records {
		if r.Doped {
			s.Doped++
		} else {
			s.Clean++
		}
		if i == 0 {
			continue
		}
		if r.Year < s.FirstYear {
			s.FirstYear = r.Year
		}
		if r.Year > s.LastYear {
			s.LastYear = r.Year
		}
		if r.Elapsed() < s.Fastest.Elapsed() {
			s.Fastest = r
		}
		if r.Elapsed() > s.Slowest.Elapsed() {
			s.Slowest = r
		}
	}
	return s, nil
}

// DopedShare is the fraction of records with a doping allegation
func (s Summary) DopedShare() float64 {
	if s.Records == 0 {
		return 0
	}
	return float64(s.Doped) / float64(s.Records)
}

// Table renders the summary with go-pretty
func (s Summary) Table() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Ascents", s.Records},
		{"Years", fmt.Sprintf("%d to %d", s.FirstYear, s.LastYear)},
		{"With doping allegations", fmt.Sprintf("%d (%s%%)", s.Doped, strconv.FormatFloat(s.DopedShare()*100, 'f', 1, 64))},
		{"Without allegations", s.Clean},
		{"Fastest", fmt.Sprintf("%s, %s (%d)", s.Fastest.ClockTime(), s.Fastest.Name, s.Fastest.Year)},
		{"Slowest", fmt.Sprintf("%s, %s (%d)", s.Slowest.ClockTime(), s.Slowest.Name, s.Slowest.Year)},
	})
	return t
}

// IntroMarkdown is the text shown above the chart
func (s Summary) IntroMarkdown() string {
	return fmt.Sprintf(`## Fastest times up Alpe d'Huez

Each dot is one ascent: the year on the horizontal axis, the finish time on
the vertical axis with the fastest times at the top. Red dots mark riders with
doping allegations; hover a dot for the rider, time and allegation.

%s
`, s.Table().RenderMarkdown())
}
