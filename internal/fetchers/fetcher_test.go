package fetchers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDataset = `[
	{"Time":"36:50","Place":1,"Seconds":2210,"Name":"Marco Pantani","Year":1995,"Nationality":"ITA","Doping":"Alleged drug use during 1995 due to high hematocrit levels","URL":"https://en.wikipedia.org/wiki/Marco_Pantani#Alleged_drug_use"},
	{"Time":"36:55","Place":2,"Seconds":2215,"Name":"Marco Pantani","Year":1997,"Nationality":"ITA","Doping":"Alleged drug use during 1997 due to high hermatocrit levels","URL":"https://en.wikipedia.org/wiki/Marco_Pantani#Alleged_drug_use"},
	{"Time":"37:15","Place":3,"Seconds":2235,"Name":"Marco Pantani","Year":1994,"Nationality":"ITA","Doping":"","URL":""}
]`

func newTestFetcher() *DataFetcher {
	return NewDataFetcherWithOptions(FetcherOptions{
		Timeout:       5 * time.Second,
		RetryCount:    0,
		RetryWaitTime: 10 * time.Millisecond,
	})
}

func TestNewDataFetcher(t *testing.T) {
	fetcher := NewDataFetcher()
	require.NotNil(t, fetcher)
	assert.NotNil(t, fetcher.client)
	assert.NotNil(t, fetcher.normalizer)
}

func TestFetchRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleDataset))
	}))
	defer srv.Close()

	records, err := newTestFetcher().FetchRecords(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, 1995, records[0].Year)
	assert.True(t, records[0].Doped)
	assert.True(t, records[1].Doped)
	assert.False(t, records[2].Doped)
	assert.Equal(t, "37:15", records[2].ClockTime())
}

func TestFetchRawRecordsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestFetcher().FetchRawRecords(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestFetchRawRecordsRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(sampleDataset))
	}))
	defer srv.Close()

	fetcher := NewDataFetcherWithOptions(FetcherOptions{
		Timeout:       5 * time.Second,
		RetryCount:    2,
		RetryWaitTime: 10 * time.Millisecond,
	})

	raw, err := fetcher.FetchRawRecords(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, raw, 3)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchRawRecordsInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	_, err := newTestFetcher().FetchRawRecords(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse dataset response")
}

func TestFetchRecordsMalformedTime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"Year":"1994","Time":"bad","Doping":""}]`))
	}))
	defer srv.Close()

	_, err := newTestFetcher().FetchRecords(context.Background(), srv.URL)
	var timeErr *MalformedTimeError
	assert.True(t, errors.As(err, &timeErr))
}

func TestFetchContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleDataset))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestFetcher().FetchRawRecords(ctx, srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
