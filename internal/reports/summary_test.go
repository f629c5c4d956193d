package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dopingplot/internal/fetchers"
	"dopingplot/internal/geometry"
	"dopingplot/internal/models"
)

func raceRecord(t *testing.T, year int, clock string, doped bool, name string) models.RaceRecord {
	t.Helper()
	finish, err := fetchers.ParseFinishTime(clock)
	require.NoError(t, err)
	return models.RaceRecord{
		Year:        year,
		FinishTime:  finish,
		Doped:       doped,
		Name:        name,
		Nationality: "ITA",
	}
}

func sampleRecords(t *testing.T) []models.RaceRecord {
	return []models.RaceRecord{
		raceRecord(t, 1995, "36:50", true, "Marco Pantani"),
		raceRecord(t, 2015, "39:12", false, "Thibaut Pinot"),
		raceRecord(t, 1997, "37:35", true, "Marco Pantani"),
		raceRecord(t, 2011, "39:12", false, "Pierre Rolland"),
	}
}

func TestSummarize(t *testing.T) {
	s, err := Summarize(sampleRecords(t))
	require.NoError(t, err)

	assert.Equal(t, 4, s.Records)
	assert.Equal(t, 2, s.Doped)
	assert.Equal(t, 2, s.Clean)
	assert.Equal(t, 1995, s.FirstYear)
	assert.Equal(t, 2015, s.LastYear)
	assert.Equal(t, 1995, s.Fastest.Year)
	assert.Equal(t, "Thibaut Pinot", s.Slowest.Name, "ties keep the earlier record")
	assert.InDelta(t, 0.5, s.DopedShare(), 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := Summarize(nil)
	assert.ErrorIs(t, err, geometry.ErrEmptyDataset)
	assert.Zero(t, Summary{}.DopedShare())
}

func TestSummaryMarkdown(t *testing.T) {
	s, err := Summarize(sampleRecords(t))
	require.NoError(t, err)

	md := s.IntroMarkdown()
	assert.Contains(t, md, "## Fastest times up Alpe d'Huez")
	assert.Contains(t, md, "| With doping allegations | 2 (50.0%) |")
	assert.Contains(t, md, "36:50, Marco Pantani (1995)")
	assert.Contains(t, md, "1995 to 2015")
}
