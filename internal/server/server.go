package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"dopingplot/internal/config"
	"dopingplot/internal/logger"
	"dopingplot/internal/reports"
	"dopingplot/internal/storage"
)

// Server represents the main application server
type Server struct {
	Config    *config.Config
	Storage   storage.StorageClient
	Generator *reports.ReportGenerator
	Metrics   *Metrics

	generateMutex sync.Mutex
	log           *logger.Logger
}

// NewServer creates a server backed by the storage selected in cfg
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	store, err := storage.NewStorageClient(ctx, storage.DeploymentMode(cfg.DeploymentMode), cfg)
	if err != nil {
		return nil, err
	}
	return NewServerWithStorage(cfg, store), nil
}

// NewServerWithStorage creates a server around an existing storage client.
// Extra options are passed to the report generator.
func NewServerWithStorage(cfg *config.Config, store storage.StorageClient, opts ...reports.Option) *Server {
	metrics := NewMetrics()
	opts = append([]reports.Option{
		reports.WithStorage(reports.NewStorageOrchestrator(store)),
		reports.WithObserver(metrics),
	}, opts...)

	s := &Server{
		Config:    cfg,
		Storage:   store,
		Generator: reports.NewReportGenerator(cfg, opts...),
		Metrics:   metrics,
		log:       logger.GetGlobalLogger().WithComponent("server"),
	}
	s.log.Info("Server initialized", map[string]interface{}{
		"deployment_mode": cfg.DeploymentMode,
		"mockup":          cfg.MockupMode,
	})
	return s
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/generate", s.HandleGenerate)
	mux.HandleFunc("/reports", s.HandleListReports)
	mux.HandleFunc("/files/", s.HandleFileProxy)
	mux.Handle("/metrics", s.Metrics.Handler())

	// Catch-all
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}

// HTTPServer wraps the routes with the service timeouts
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         ":" + s.Config.Port,
		Handler:      s.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
}

// Close cleans up server resources
func (s *Server) Close() error {
	if s.Storage != nil {
		if err := s.Storage.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}
	return nil
}
