package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"dopingplot/internal/config"
	"dopingplot/internal/reports"
	"dopingplot/internal/storage"
)

const (
	defaultReportLimit = 10
	maxReportLimit     = 100
)

//go:embed initial_page.html
var initialPage []byte

// ReportURL is where the server exposes a stored report folder
func ReportURL(folder string) string {
	return "/files/" + path.Join(folder, reports.IndexFileName)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// HandleRoot redirects to the latest report
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	latestReportURL, err := s.findLatestReportURL(r.Context())
	if err != nil {
		s.log.Debug("No reports available", map[string]interface{}{"reason": err.Error()})
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(initialPage)
		return
	}

	http.Redirect(w, r, latestReportURL, http.StatusFound)
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "healthy",
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
		"version":         config.GetVersion(),
		"deployment_mode": s.Config.DeploymentMode,
		"mockup":          s.Config.MockupMode,
	})
}

// HandleGenerate runs the report pipeline. Only one run at a time.
func (s *Server) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !s.generateMutex.TryLock() {
		s.log.Warn("Report generation already in progress, rejecting new request")
		s.Metrics.GenerateConflicts.Inc()
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":   "Report generation already in progress",
			"message": "Another report generation is currently running. Please wait for it to complete before starting a new one.",
			"status":  "conflict",
		})
		return
	}
	defer s.generateMutex.Unlock()

	start := time.Now()
	files, err := s.Generator.Generate(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		stage := ""
		var stageErr *reports.StageError
		if errors.As(err, &stageErr) {
			stage = stageErr.Stage
			if stage == reports.StageFetch {
				status = http.StatusBadGateway
			}
		}
		writeJSON(w, status, map[string]interface{}{
			"error":  err.Error(),
			"stage":  stage,
			"status": "failed",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "success",
		"folder":      files.FolderPath,
		"report_url":  ReportURL(files.FolderPath),
		"files":       files.Names(),
		"timestamp":   files.Timestamp.Format(time.RFC3339),
		"duration_ms": time.Since(start).Milliseconds(),
		"summary":     files.Summary,
	})
}

// HandleFileProxy serves report files from local storage or GCS
func (s *Server) HandleFileProxy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filePath := strings.TrimPrefix(r.URL.Path, "/files/")
	if filePath == "" {
		http.Error(w, "File path required", http.StatusBadRequest)
		return
	}
	filePath, err := storage.CleanObjectPath(filePath)
	if err != nil {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	fileData, err := s.Storage.GetFile(r.Context(), filePath)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("Failed to get file from storage", err, map[string]interface{}{"path": filePath})
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(fileData)
}

// HandleListReports lists recent reports
func (s *Server) HandleListReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := parseLimit(r.URL.Query().Get("limit"))
	folders, err := s.Storage.ListReports(r.Context(), limit)
	if err != nil {
		s.log.Error("Failed to list reports", err)
		http.Error(w, "Failed to list reports", http.StatusInternalServerError)
		return
	}

	urls := make([]string, 0, len(folders))
	for _, folder := range folders {
		urls = append(urls, ReportURL(folder))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reports":   folders,
		"urls":      urls,
		"count":     len(folders),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// parseLimit reads the limit query parameter. Missing or invalid values
// fall back to the default; large values are capped.
func parseLimit(raw string) int {
	if raw == "" {
		return defaultReportLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return defaultReportLimit
	}
	if limit > maxReportLimit {
		return maxReportLimit
	}
	return limit
}

func (s *Server) findLatestReportURL(ctx context.Context) (string, error) {
	folders, err := s.Storage.ListReports(ctx, 1)
	if err != nil {
		return "", err
	}
	if len(folders) == 0 {
		return "", fmt.Errorf("no reports available")
	}
	return ReportURL(folders[0]), nil
}
