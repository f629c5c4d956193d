package charts

// Chart text shared by every renderer
const (
	ChartTitle   = "Doping in Bicycle Racing"
	XAxisLabel   = "Year"
	YAxisLabel   = "Time (Minutes)"
	DotRadius    = 6
	LegendSwatch = 18
)

// Fill colors for the doped domain, taken from the Set1 categorical scheme
const (
	DopedColor = "#e41a1c"
	CleanColor = "#377eb8"
)

// LegendEntry is one swatch of the legend
type LegendEntry struct {
	Doped bool   `json:"doped"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Legend returns the legend keyed on the doped domain, false first
func Legend() []LegendEntry {
	return []LegendEntry{
		{Doped: false, Label: "No doping allegations", Color: CleanColor},
		{Doped: true, Label: "Riders with doping allegations", Color: DopedColor},
	}
}

// FillColor returns the mark color for a record's doping status
func FillColor(doped bool) string {
	if doped {
		return DopedColor
	}
	return CleanColor
}
