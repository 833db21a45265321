// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pdiddy/paper-browser/internal/corpus"
	"github.com/pdiddy/paper-browser/internal/tracking"
	"github.com/pdiddy/paper-browser/pkg/types"
)

const sampleCSV = `title,authors,journal,year,sample_size,country_region,study_type,abstract
Echo Chambers Online,"Smith, J.; Lee, K.",Journal of Media Studies,2019,"1,200",USA,Survey,A survey on polarization in online media
Platform Moderation,"Chen, W.",Political Communication,2021,340,Germany,Experiment,Field experiment on content takedowns
Misinformation Spread,"Garcia, M.; Patel, R.",Journal of Media Studies,2020,N/A,NOT SPECIFIED,Survey,Survey evidence on diffusion of false claims
`

func newTestServer(t *testing.T, cfg types.ServerConfig) (*Server, *tracking.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := corpus.NewStore()
	if err := store.Load(strings.NewReader(sampleCSV)); err != nil {
		t.Fatal(err)
	}

	track, err := tracking.NewStore(types.TrackingConfig{DBDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { track.Close() })

	return New(store, track, zap.NewNop(), cfg), track
}

func doRequest(t *testing.T, router http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListPapers(t *testing.T) {
	srv, _ := newTestServer(t, types.ServerConfig{})
	w := doRequest(t, srv.Router(), http.MethodGet, "/api/papers", "", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var papers []types.Paper
	if err := json.Unmarshal(w.Body.Bytes(), &papers); err != nil {
		t.Fatal(err)
	}
	if len(papers) != 3 {
		t.Errorf("got %d papers, want 3", len(papers))
	}
	if papers[0].ID != "paper_001" {
		t.Errorf("first id = %q, want paper_001", papers[0].ID)
	}
}

func TestSearchEndpointLogsQuery(t *testing.T) {
	srv, track := newTestServer(t, types.ServerConfig{})
	router := srv.Router()

	w := doRequest(t, router, http.MethodGet,
		"/api/search?q=survey&yearFrom=2020", "", map[string]string{"X-Session-ID": "sess-9"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Papers []types.Paper `json:"papers"`
		Count  int           `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 1 || resp.Papers[0].ID != "paper_003" {
		t.Errorf("got %+v, want single paper_003", resp.Papers)
	}

	logs, err := track.RecentSearchLogs(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d search logs, want 1", len(logs))
	}
	if logs[0].Query != "survey" || logs[0].ResultCount != 1 || logs[0].SessionID != "sess-9" {
		t.Errorf("logged entry = %+v", logs[0])
	}
	if !strings.Contains(logs[0].FiltersJSON, `"yearFrom":"2020"`) {
		t.Errorf("FiltersJSON = %q, want yearFrom recorded", logs[0].FiltersJSON)
	}
}

func TestGetPaperNotFound(t *testing.T) {
	srv, _ := newTestServer(t, types.ServerConfig{})
	w := doRequest(t, srv.Router(), http.MethodGet, "/api/paper/paper_999", "", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "paper not found") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestStatisticsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, types.ServerConfig{})
	w := doRequest(t, srv.Router(), http.MethodGet, "/api/statistics", "", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var stats types.Statistics
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalPapers != 3 || stats.TotalStudies != 1540 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestCompareSkipsUnknownIDs(t *testing.T) {
	srv, track := newTestServer(t, types.ServerConfig{})
	w := doRequest(t, srv.Router(), http.MethodGet,
		"/api/compare?ids=paper_001,paper_999,paper_003", "", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 2 {
		t.Errorf("count = %d, want 2", resp.Count)
	}

	logs, err := track.RecentCompareLogs(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 || len(logs[0].PaperIDs) != 2 {
		t.Errorf("compare logs = %+v", logs)
	}
}

func TestCompareRequiresIDs(t *testing.T) {
	srv, _ := newTestServer(t, types.ServerConfig{})
	w := doRequest(t, srv.Router(), http.MethodGet, "/api/compare", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestTrackDownloadEndpoint(t *testing.T) {
	srv, track := newTestServer(t, types.ServerConfig{})
	w := doRequest(t, srv.Router(), http.MethodPost, "/api/track/download",
		`{"paper_ids":["paper_001","paper_002"],"session_id":"sess-1"}`, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	logs, err := track.RecentDownloadLogs(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d download logs, want 1", len(logs))
	}
	if logs[0].Format != "CSV" {
		t.Errorf("format = %q, want default CSV", logs[0].Format)
	}
}

func TestUploadRequestEndpoint(t *testing.T) {
	srv, track := newTestServer(t, types.ServerConfig{})
	router := srv.Router()

	w := doRequest(t, router, http.MethodPost, "/api/upload-request",
		`{"request_name":"Dr. Smith","email":"smith@example.edu","institution":"State University","status":"approved"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var created types.UploadRequest
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.Status != types.StatusPending {
		t.Errorf("status = %q, want pending regardless of payload", created.Status)
	}

	pending, err := track.ListRequests(context.Background(), types.StatusPending)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 {
		t.Errorf("got %d pending requests, want 1", len(pending))
	}
}

func TestUploadRequestValidation(t *testing.T) {
	srv, _ := newTestServer(t, types.ServerConfig{})
	w := doRequest(t, srv.Router(), http.MethodPost, "/api/upload-request",
		`{"institution":"State University"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAdminAuth(t *testing.T) {
	srv, _ := newTestServer(t, types.ServerConfig{AdminToken: "tok_secret"})
	router := srv.Router()

	w := doRequest(t, router, http.MethodGet, "/api/admin/stats", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", w.Code)
	}

	w = doRequest(t, router, http.MethodGet, "/api/admin/stats", "",
		map[string]string{"X-Admin-Token": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token: status = %d, want 401", w.Code)
	}

	w = doRequest(t, router, http.MethodGet, "/api/admin/stats", "",
		map[string]string{"X-Admin-Token": "tok_secret"})
	if w.Code != http.StatusOK {
		t.Errorf("valid token: status = %d, want 200", w.Code)
	}
}

func TestAdminAuthOpenWithoutToken(t *testing.T) {
	srv, _ := newTestServer(t, types.ServerConfig{})
	w := doRequest(t, srv.Router(), http.MethodGet, "/api/admin/stats", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 when no token configured", w.Code)
	}
}

func TestAdminLogsUnknownKind(t *testing.T) {
	srv, _ := newTestServer(t, types.ServerConfig{})
	w := doRequest(t, srv.Router(), http.MethodGet, "/api/admin/logs/bogus", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestSetRequestStatusFlow(t *testing.T) {
	srv, track := newTestServer(t, types.ServerConfig{})
	router := srv.Router()

	created, err := track.CreateRequest(context.Background(), types.UploadRequest{
		RequestName: "A", Email: "a@example.edu",
	})
	if err != nil {
		t.Fatal(err)
	}

	// Invalid status value: rejected, stored row unchanged.
	w := doRequest(t, router, http.MethodPut, "/api/admin/requests/1/status",
		`{"status":"bogus"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid status: code = %d, want 400", w.Code)
	}
	got, err := track.GetRequest(context.Background(), created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != types.StatusPending {
		t.Errorf("status = %q, want pending after rejected update", got.Status)
	}

	// Unknown id.
	w = doRequest(t, router, http.MethodPut, "/api/admin/requests/999/status",
		`{"status":"approved"}`, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown id: code = %d, want 404", w.Code)
	}

	// Valid transition returns the updated row.
	w = doRequest(t, router, http.MethodPut, "/api/admin/requests/1/status",
		`{"status":"approved"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("approve: code = %d: %s", w.Code, w.Body.String())
	}
	var updated types.UploadRequest
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatal(err)
	}
	if updated.Status != types.StatusApproved {
		t.Errorf("status = %q, want approved", updated.Status)
	}
}

func TestRateLimit(t *testing.T) {
	srv, _ := newTestServer(t, types.ServerConfig{RateLimit: 0.001, RateBurst: 1})
	router := srv.Router()

	w := doRequest(t, router, http.MethodGet, "/api/papers", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("first request: status = %d, want 200", w.Code)
	}
	w = doRequest(t, router, http.MethodGet, "/api/papers", "", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("second request: status = %d, want 429", w.Code)
	}
}
