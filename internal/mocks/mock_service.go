package mocks

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"dopingplot/internal/fetchers"
	"dopingplot/internal/logger"
	"dopingplot/internal/models"
)

// DatasetFileName is the name of the sample dataset, embedded and on disk
const DatasetFileName = "cyclist-data.json"

//go:embed data/cyclist-data.json
var embeddedDataset []byte

// MockService handles loading mock data for offline runs and tests
type MockService struct {
	mocksDir string
}

// NewMockService creates a new mock service. A dataset file in mocksDir
// overrides the embedded sample; an empty mocksDir uses the sample only.
func NewMockService(mocksDir string) *MockService {
	return &MockService{
		mocksDir: mocksDir,
	}
}

// DatasetJSON returns the raw dataset body
func (m *MockService) DatasetJSON() ([]byte, error) {
	if m.mocksDir == "" {
		return embeddedDataset, nil
	}

	content, err := os.ReadFile(filepath.Join(m.mocksDir, DatasetFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return embeddedDataset, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read mock dataset: %w", err)
	}
	return content, nil
}

// LoadRawRecords loads the dataset exactly as the endpoint would return it
func (m *MockService) LoadRawRecords() ([]models.RawRecord, error) {
	body, err := m.DatasetJSON()
	if err != nil {
		return nil, err
	}
	return fetchers.DecodeRawRecords(body)
}

// LoadRecords loads and normalizes the dataset
func (m *MockService) LoadRecords() ([]models.RaceRecord, error) {
	raw, err := m.LoadRawRecords()
	if err != nil {
		return nil, err
	}
	return fetchers.Normalize(raw)
}

// FetchRecords serves the mock dataset through the same call shape as the
// HTTP fetcher; the url is ignored.
func (m *MockService) FetchRecords(ctx context.Context, url string) ([]models.RaceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.LoadRecords()
}

// Handler serves the dataset like the public endpoint does, so the HTTP
// fetcher can run against it offline.
func (m *MockService) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := m.DatasetJSON()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write(body); err != nil {
			logger.Warn("failed to write mock dataset", map[string]interface{}{
				"error": err.Error(),
				"path":  r.URL.Path,
			})
		}
	})
}
