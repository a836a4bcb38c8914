package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basstatic/internal/config"
)

const siteDocument = `{"events":[{"id":4,"type":"full","status":"published","title":"Warehouse Pressure","date":"2025-03-09","venue":"Nuanu","location":"Bali","artists":["DJ Lowend"],"mc":[],"genres":[],"ticketLink":"https://tickets.example.com","guestlistEnabled":false,"heroVideo":null,"posterImage":null,"bgMusic":null,"streamRecording":null}],"settings":{"activeEventId":4}}`

func newTestServer(t *testing.T) *Server {
	t.Helper()

	site := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(site, "data"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(site, "media", "events", "4"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(site, "data", "events.json"), []byte(siteDocument), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(site, "media", "events", "4", "poster.txt"), []byte("poster"), 0o644))

	cfg := &config.Config{
		GinMode:        gin.TestMode,
		SiteDir:        site,
		DocumentPath:   "data/events.json",
		DocumentSource: config.DocumentSourceFile,
		AdminPassword:  "s3cret",
		UploadMaxBytes: 1 << 20,
		MediaBackend:   config.MediaBackendRepository,
		MetricsEnabled: true,
	}

	s, err := NewServer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.Cleanup() })
	return s
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.GetRouter().ServeHTTP(w, req)
	return w
}

func TestServer_PublicRoutes(t *testing.T) {
	s := newTestServer(t)

	w := serve(s, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "9 March in Nuanu")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = serve(s, httptest.NewRequest(http.MethodGet, "/data/events.json", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, siteDocument, w.Body.String())

	w = serve(s, httptest.NewRequest(http.MethodGet, "/media/events/4/poster.txt", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "poster", w.Body.String())

	w = serve(s, httptest.NewRequest(http.MethodGet, "/events/4", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)

	w := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w = serve(s, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServer_AdminRoutes(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/admin/save", "/.netlify/functions/admin-save"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"credential":"wrong","document":{"events":[]}}`))
		req.Header.Set("Content-Type", "application/json")
		w := serve(s, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	// The repository token is not configured
	req := httptest.NewRequest(http.MethodPost, "/api/admin/save", strings.NewReader(`{"credential":"s3cret","document":{"events":[],"settings":{"activeEventId":null}}}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(s, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Server misconfigured")

	w = serve(s, httptest.NewRequest(http.MethodGet, "/api/admin/save", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestServer_CommitsRequireBasicAuth(t *testing.T) {
	s := newTestServer(t)

	w := serve(s, httptest.NewRequest(http.MethodGet, "/api/admin/commits", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/commits", nil)
	req.SetBasicAuth("admin", "s3cret")
	w = serve(s, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Commit log is disabled")
}

func TestServer_UnknownRoute(t *testing.T) {
	s := newTestServer(t)

	w := serve(s, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}
