package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawRecordDecoding(t *testing.T) {
	t.Run("numbers and strings", func(t *testing.T) {
		data := []byte(`[
			{"Time":"36:50","Place":1,"Seconds":2210,"Name":"Marco Pantani","Year":1995,"Nationality":"ITA","Doping":"Alleged drug use during 1995 due to high hematocrit levels","URL":"https://en.wikipedia.org/wiki/Marco_Pantani#Alleged_drug_use"},
			{"Time":"37:15","Place":"2","Seconds":"2235","Name":"Miguel Indurain","Year":"1995","Nationality":"ESP","Doping":"","URL":""}
		]`)

		var records []RawRecord
		require.NoError(t, json.Unmarshal(data, &records))
		require.Len(t, records, 2)

		assert.Equal(t, "1995", records[0].Year.String())
		assert.Equal(t, "1", records[0].Place.String())
		assert.Equal(t, "2210", records[0].Seconds.String())
		assert.Equal(t, "36:50", records[0].Time)
		assert.True(t, records[0].Year.IsPresent())

		assert.Equal(t, "1995", records[1].Year.String())
		assert.Equal(t, "2", records[1].Place.String())
		assert.Equal(t, "", records[1].Doping)
	})

	t.Run("null and missing values are absent", func(t *testing.T) {
		var rec RawRecord
		require.NoError(t, json.Unmarshal([]byte(`{"Time":"36:50","Year":1995,"Place":null}`), &rec))

		assert.False(t, rec.Place.IsPresent())
		assert.False(t, rec.Seconds.IsPresent())
		assert.True(t, rec.Year.IsPresent())
	})

	t.Run("empty string is absent", func(t *testing.T) {
		var rec RawRecord
		require.NoError(t, json.Unmarshal([]byte(`{"Place":""}`), &rec))
		assert.False(t, rec.Place.IsPresent())
	})

	t.Run("objects are rejected", func(t *testing.T) {
		var rec RawRecord
		err := json.Unmarshal([]byte(`{"Year":{"value":1995}}`), &rec)
		assert.Error(t, err)
	})
}

func TestFlexValueMarshal(t *testing.T) {
	out, err := json.Marshal(struct {
		A FlexValue `json:"a"`
		B FlexValue `json:"b"`
	}{A: NewFlexValue("1995")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"1995","b":null}`, string(out))
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"typical", 36*time.Minute + 50*time.Second, "36:50"},
		{"zero padded", 5*time.Minute + 7*time.Second, "05:07"},
		{"zero", 0, "00:00"},
		{"past the hour", 75 * time.Minute, "75:00"},
		{"negative", -30 * time.Second, "-00:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatClock(ClockAt(tt.elapsed)))
		})
	}
}

func TestRaceRecordElapsed(t *testing.T) {
	rec := RaceRecord{Year: 1994, FinishTime: ClockAt(35*time.Minute + 16*time.Second)}

	assert.Equal(t, 35*time.Minute+16*time.Second, rec.Elapsed())
	assert.Equal(t, "35:16", rec.ClockTime())
	assert.Equal(t, 2116.0, ElapsedSeconds(rec.FinishTime))
}
