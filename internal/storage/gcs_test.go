package storage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

// fakeListServer answers the JSON API object listing for one bucket
func fakeListServer(t *testing.T, bucket string, names []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || !strings.HasSuffix(r.URL.Path, "/b/"+bucket+"/o") {
			http.NotFound(w, r)
			return
		}
		items := make([]map[string]string, len(names))
		for i, name := range names {
			items[i] = map[string]string{"kind": "storage#object", "bucket": bucket, "name": name}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"kind": "storage#objects", "items": items})
	}))
}

func TestGCSClientListReports(t *testing.T) {
	server := fakeListServer(t, "doping-reports", []string{
		"2025/12/31/DopingReport-2025-12-31-23-59-59/index.html",
		"2025/12/31/DopingReport-2025-12-31-23-59-59/scatter.svg",
		"2026/01/02/DopingReport-2026-01-02-10-00-00/index.html",
		"2026/01/02/DopingReport-2026-01-02-10-00-00/records.json",
		"2026/01/03/DopingReport-2026-01-03-00-00-00/scatter.png",
	})
	defer server.Close()

	ctx := context.Background()
	client, err := NewGCSClient(ctx, "doping-reports",
		option.WithEndpoint(server.URL+"/storage/v1/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	defer client.Close()

	reports, err := client.ListReports(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2026/01/02/DopingReport-2026-01-02-10-00-00",
		"2025/12/31/DopingReport-2025-12-31-23-59-59",
	}, reports)

	latest, err := client.ListReports(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026/01/02/DopingReport-2026-01-02-10-00-00"}, latest)
}

func TestGCSClientRejectsInvalidPaths(t *testing.T) {
	ctx := context.Background()
	client, err := NewGCSClient(ctx, "doping-reports", option.WithoutAuthentication())
	require.NoError(t, err)
	defer client.Close()

	assert.Error(t, client.StoreFile(ctx, "../index.html", []byte("x")))
	_, err = client.GetFile(ctx, "/etc/passwd")
	assert.Error(t, err)
}
