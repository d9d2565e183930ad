package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bid-finder/config"
	"bid-finder/models"
	"bid-finder/query"
	"bid-finder/services"
)

type fakeQueries struct {
	lastReq services.QueryRequest
	dumped  string
	err     error
}

func (f *fakeQueries) Query(_ context.Context, req services.QueryRequest) (*services.QueryResult, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	row := models.Row{Columns: []string{"Mã TBMT", "Xuất xứ"}, Values: []any{"IB2400001", "Việt Nam"}}
	return &services.QueryResult{
		Standard: services.DatasetResult{Data: []models.Row{row}, Count: 42, Displayed: 1},
		Extended: services.DatasetResult{Data: []models.Row{}, Count: 0, Displayed: 0},
	}, nil
}

func (f *fakeQueries) Dump(_ context.Context, ds query.Dataset) (*services.DumpResult, error) {
	f.dumped = ds.Name
	if f.err != nil {
		return nil, f.err
	}
	return &services.DumpResult{Data: []models.Row{}, Count: 0}, nil
}

type fakeHistory struct {
	meta *services.Metadata
	err  error
}

func (f *fakeHistory) Metadata(context.Context) (*services.Metadata, error) {
	return f.meta, f.err
}

func newTestRouter(t *testing.T, queries *fakeQueries, history *fakeHistory) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		AllowedOrigins:     []string{"http://localhost:8001"},
		AllowedOriginRegex: `^https://.*\.netlify\.app$`,
		AssetsDir:          filepath.Join(t.TempDir(), "missing"),
	}
	router, err := setupRouter(cfg, zap.NewNop(), queries, history)
	require.NoError(t, err)
	return router
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, &fakeQueries{}, &fakeHistory{})

	for _, method := range []string{http.MethodGet, http.MethodHead} {
		w := serve(router, method, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code, method)
		assert.Empty(t, w.Body.String(), method)
	}
}

func TestQueryRoute(t *testing.T) {
	queries := &fakeQueries{}
	router := newTestRouter(t, queries, &fakeHistory{})

	body := `{
		"filters": {"country": "Vietnam", "place": ["Hà Nội"], "dateFrom": "2024-01-01"},
		"sort": [{"column": "unitPrice", "order": "desc"}],
		"limit": 50
	}`
	w := serve(router, http.MethodPost, "/api/query", body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"success": true,
		"df1": {"data": [{"Mã TBMT": "IB2400001", "Xuất xứ": "Việt Nam"}], "count": 42, "displayed": 1},
		"df2": {"data": [], "count": 0, "displayed": 0}
	}`, w.Body.String())

	req := queries.lastReq
	require.NotNil(t, req.Filters)
	assert.Equal(t, "Vietnam", req.Filters.Country)
	assert.Equal(t, []string{"Hà Nội"}, req.Filters.Place)
	assert.Equal(t, []query.SortRule{{Column: "unitPrice", Order: "desc"}}, req.Sort)
	require.NotNil(t, req.Limit)
	assert.Equal(t, 50, *req.Limit)
}

func TestQueryRoute_OptionalFields(t *testing.T) {
	queries := &fakeQueries{}
	router := newTestRouter(t, queries, &fakeHistory{})

	w := serve(router, http.MethodPost, "/api/query", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, queries.lastReq.Filters)
	assert.Nil(t, queries.lastReq.Limit)
}

func TestQueryRoute_MalformedBody(t *testing.T) {
	router := newTestRouter(t, &fakeQueries{}, &fakeHistory{})

	w := serve(router, http.MethodPost, "/api/query", `{"filters": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success": false, "error": "invalid request body"}`, w.Body.String())
}

func TestQueryRoute_ExecutionError(t *testing.T) {
	router := newTestRouter(t, &fakeQueries{err: errors.New("connection reset")}, &fakeHistory{})

	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{}`))
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success": false, "error": "internal server error", "request_id": "req-42"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestDumpRoutes(t *testing.T) {
	queries := &fakeQueries{}
	router := newTestRouter(t, queries, &fakeHistory{})

	for _, name := range []string{"df1", "df2"} {
		w := serve(router, http.MethodGet, "/api/"+name, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success": true, "data": [], "count": 0}`, w.Body.String())
		assert.Equal(t, name, queries.dumped)
	}
}

func TestMetadataRoute(t *testing.T) {
	total := 0
	history := &fakeHistory{meta: &services.Metadata{Success: true, History: []services.RunSummary{}, TotalRuns: &total}}
	router := newTestRouter(t, &fakeQueries{}, history)

	w := serve(router, http.MethodGet, "/api/metadata", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true, "history": [], "total_runs": 0}`, w.Body.String())

	history.err = errors.New("boom")
	w = serve(router, http.MethodGet, "/api/metadata", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAssets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))
	gin.SetMode(gin.TestMode)
	router, err := setupRouter(&config.Config{AssetsDir: dir}, zap.NewNop(), &fakeQueries{}, &fakeHistory{})
	require.NoError(t, err)

	w := serve(router, http.MethodGet, "/assets/app.js", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())

	w = serve(newTestRouter(t, &fakeQueries{}, &fakeHistory{}), http.MethodGet, "/assets/app.js", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsRoute(t *testing.T) {
	w := serve(newTestRouter(t, &fakeQueries{}, &fakeHistory{}), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
