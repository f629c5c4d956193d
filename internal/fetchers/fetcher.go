package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"dopingplot/internal/logger"
	"dopingplot/internal/models"
)

// DefaultDatasetURL is the published cyclist doping dataset
const DefaultDatasetURL = "https://raw.githubusercontent.com/freeCodeCamp/ProjectReferenceData/master/cyclist-data.json"

// FetcherOptions tunes the HTTP client used for the dataset
type FetcherOptions struct {
	Timeout       time.Duration
	RetryCount    int
	RetryWaitTime time.Duration
}

// DataFetcher downloads the cyclist dataset and normalizes it
type DataFetcher struct {
	client     *resty.Client
	normalizer *DataNormalizer
	log        *logger.Logger
}

// NewDataFetcher creates a new data fetcher instance with default options
func NewDataFetcher() *DataFetcher {
	return NewDataFetcherWithOptions(FetcherOptions{
		Timeout:       30 * time.Second,
		RetryCount:    3,
		RetryWaitTime: 2 * time.Second,
	})
}

// NewDataFetcherWithOptions creates a data fetcher with explicit client options
func NewDataFetcherWithOptions(o FetcherOptions) *DataFetcher {
	client := resty.New()
	client.SetTimeout(o.Timeout)
	client.SetRetryCount(o.RetryCount)
	client.SetRetryWaitTime(o.RetryWaitTime)
	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		return err != nil || r.StatusCode() >= http.StatusInternalServerError
	})

	return &DataFetcher{
		client:     client,
		normalizer: NewDataNormalizer(),
		log:        logger.GetGlobalLogger().WithComponent("fetcher"),
	}
}

// FetchRawRecords downloads and decodes the dataset without interpreting it
func (f *DataFetcher) FetchRawRecords(ctx context.Context, url string) ([]models.RawRecord, error) {
	if url == "" {
		url = DefaultDatasetURL
	}

	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("dataset endpoint returned status %d", resp.StatusCode())
	}

	raw, err := DecodeRawRecords(resp.Body())
	if err != nil {
		return nil, err
	}

	f.log.Debug("dataset downloaded", map[string]interface{}{
		"url":     url,
		"records": len(raw),
		"bytes":   len(resp.Body()),
	})
	return raw, nil
}

// FetchRecords downloads the dataset and normalizes every entry
func (f *DataFetcher) FetchRecords(ctx context.Context, url string) ([]models.RaceRecord, error) {
	raw, err := f.FetchRawRecords(ctx, url)
	if err != nil {
		return nil, err
	}

	records, err := f.normalizer.Normalize(raw)
	if err != nil {
		f.log.Error("dataset normalization failed", err)
		return nil, err
	}

	f.log.Info("dataset normalized", map[string]interface{}{"records": len(records)})
	return records, nil
}

// DecodeRawRecords parses the dataset body: a JSON array of raw records
func DecodeRawRecords(body []byte) ([]models.RawRecord, error) {
	var raw []models.RawRecord
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse dataset response: %w", err)
	}
	return raw, nil
}
