package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"dopingplot/internal/config"
	"dopingplot/internal/fetchers"
	"dopingplot/internal/geometry"
	"dopingplot/internal/logger"
	"dopingplot/internal/mocks"
	"dopingplot/internal/models"
)

// Pipeline stages, used to label failures
const (
	StageFetch    = "fetch"
	StageGeometry = "geometry"
	StageRender   = "render"
	StageStore    = "store"
)

// StageError tells which pipeline stage failed
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// RecordSource yields normalized records. Both the HTTP fetcher and the mock
// service implement it.
type RecordSource interface {
	FetchRecords(ctx context.Context, url string) ([]models.RaceRecord, error)
}

// Observer is told about every generation attempt
type Observer interface {
	ReportGenerated(duration time.Duration, records int)
	GenerationFailed(stage string)
}

type nopObserver struct{}

func (nopObserver) ReportGenerated(time.Duration, int) {}
func (nopObserver) GenerationFailed(string)            {}

// Option configures a ReportGenerator
type Option func(*ReportGenerator)

// WithClock sets the clock that stamps reports
func WithClock(clock clockwork.Clock) Option {
	return func(rg *ReportGenerator) { rg.clock = clock }
}

// WithSource replaces the record source chosen from the config
func WithSource(source RecordSource) Option {
	return func(rg *ReportGenerator) { rg.source = source }
}

// WithStorage stores every generated report through the orchestrator
func WithStorage(store *StorageOrchestrator) Option {
	return func(rg *ReportGenerator) { rg.store = store }
}

// WithObserver reports outcomes to the observer
func WithObserver(observer Observer) Option {
	return func(rg *ReportGenerator) { rg.observer = observer }
}

// ReportGenerator runs the whole pipeline: fetch, normalize, geometry,
// render and store.
type ReportGenerator struct {
	cfg      *config.Config
	source   RecordSource
	files    *FileGenerator
	store    *StorageOrchestrator
	clock    clockwork.Clock
	observer Observer
	log      *logger.Logger
}

// NewRecordSource picks the mock dataset in mockup mode and the HTTP
// fetcher otherwise
func NewRecordSource(cfg *config.Config) RecordSource {
	if cfg.MockupMode {
		return mocks.NewMockService("")
	}
	return fetchers.NewDataFetcherWithOptions(fetchers.FetcherOptions{
		Timeout:       cfg.FetchTimeout,
		RetryCount:    cfg.FetchRetries,
		RetryWaitTime: 2 * time.Second,
	})
}

// NewReportGenerator creates a report generator. Without WithSource the
// records come from NewRecordSource.
func NewReportGenerator(cfg *config.Config, opts ...Option) *ReportGenerator {
	rg := &ReportGenerator{
		cfg:      cfg,
		files:    NewFileGenerator(config.GetVersion()),
		clock:    clockwork.NewRealClock(),
		observer: nopObserver{},
		log:      logger.GetGlobalLogger().WithComponent("reports"),
	}
	for _, opt := range opts {
		opt(rg)
	}

	if rg.source == nil {
		rg.source = NewRecordSource(cfg)
	}
	return rg
}

func (rg *ReportGenerator) fail(stage string, err error) error {
	rg.observer.GenerationFailed(stage)
	rg.log.Error("Report generation failed", err, map[string]interface{}{"stage": stage})
	return &StageError{Stage: stage, Err: err}
}

// Generate produces a complete report and stores it when storage is set
func (rg *ReportGenerator) Generate(ctx context.Context) (*GeneratedFiles, error) {
	start := rg.clock.Now()
	rg.log.Info("Starting report generation", map[string]interface{}{
		"mockup": rg.cfg.MockupMode,
		"url":    rg.cfg.DatasetURL,
	})

	records, err := rg.source.FetchRecords(ctx, rg.cfg.DatasetURL)
	if err != nil {
		return nil, rg.fail(StageFetch, err)
	}

	plot, err := geometry.BuildGeometry(records, rg.cfg.GeometryConfig())
	if err != nil {
		return nil, rg.fail(StageGeometry, err)
	}

	files, err := rg.files.GenerateAllFiles(records, plot, start.UTC())
	if err != nil {
		return nil, rg.fail(StageRender, err)
	}

	if rg.store != nil {
		if err := rg.store.StoreAllFiles(ctx, files); err != nil {
			return nil, rg.fail(StageStore, err)
		}
	}

	elapsed := rg.clock.Since(start)
	rg.observer.ReportGenerated(elapsed, len(records))
	rg.log.Info("Report generation completed", map[string]interface{}{
		"folder":   files.FolderPath,
		"records":  len(records),
		"duration": elapsed.String(),
	})
	return files, nil
}
