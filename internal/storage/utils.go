package storage

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"time"
)

// ReportIndexFile is the page that marks a folder as a complete report
const ReportIndexFile = "index.html"

// GenerateReportFolderPath generates a consistent folder path for reports
// Format: YYYY/MM/DD/DopingReport-YYYY-MM-DD-HH-MM-SS
func GenerateReportFolderPath(timestamp time.Time) string {
	return fmt.Sprintf("%04d/%02d/%02d/DopingReport-%04d-%02d-%02d-%02d-%02d-%02d",
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Hour(), timestamp.Minute(), timestamp.Second())
}

// CleanObjectPath normalizes a storage path and rejects anything that would
// escape the storage root.
func CleanObjectPath(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	if p == "" || strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("invalid storage path %q", p)
	}
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return "", fmt.Errorf("invalid storage path %q", p)
		}
	}
	cleaned := path.Clean(p)
	if cleaned == "." {
		return "", fmt.Errorf("invalid storage path %q", p)
	}
	return cleaned, nil
}

// newestFirst sorts report folders so the latest timestamp comes first and
// applies the limit. Folder names embed zero-padded timestamps, so string
// order is chronological.
func newestFirst(reports []string, limit int) []string {
	sort.Sort(sort.Reverse(sort.StringSlice(reports)))
	if limit > 0 && limit < len(reports) {
		reports = reports[:limit]
	}
	return reports
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".html":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css"
	case ".md":
		return "text/markdown"
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
