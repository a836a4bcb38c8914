package adminclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basstatic/internal/models"
)

const document = `{"events":[{"id":1,"type":"full","status":"published","title":"Vol. 1","date":"2024-07-12","venue":"Nuanu","location":"Bali","artists":[],"mc":[],"genres":[],"ticketLink":null,"guestlistEnabled":true,"heroVideo":null,"posterImage":null,"bgMusic":null,"streamRecording":null}],"settings":{"activeEventId":1}}`

func newCredentials(t *testing.T, credential string) *FileCredentialStore {
	t.Helper()
	store := &FileCredentialStore{Path: filepath.Join(t.TempDir(), "basstatic", "credential")}
	if credential != "" {
		require.NoError(t, store.Save(credential))
	}
	return store
}

func TestFileCredentialStore(t *testing.T) {
	store := newCredentials(t, "")

	got, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.Save("s3cret"))
	got, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	got, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/events.json", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("t"))
		w.Write([]byte(document))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, newCredentials(t, ""), 0)
	store, err := c.LoadDocument(context.Background())
	require.NoError(t, err)
	require.Len(t, store.Events, 1)
	assert.Equal(t, "Vol. 1", store.Events[0].Title)
}

func TestSave(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/admin/save", r.URL.Path)

		var req models.SaveRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "s3cret", req.Credential)
		saved, err := models.ParseEventStore(req.Document)
		require.NoError(t, err)
		assert.Equal(t, "Vol. 1", saved.Events[0].Title)

		w.Write([]byte(`{"ok":true,"revision":"abc123"}`))
	}))
	defer srv.Close()

	store, err := models.ParseEventStore([]byte(document))
	require.NoError(t, err)

	c := NewClient(srv.URL, newCredentials(t, "s3cret"), 0)
	revision, err := c.Save(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, "abc123", revision)
}

func TestSave_UnauthorizedClearsCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Unauthorized"}`))
	}))
	defer srv.Close()

	creds := newCredentials(t, "stale")
	c := NewClient(srv.URL, creds, 0)

	_, err := c.Save(context.Background(), &models.EventStore{})
	assert.ErrorIs(t, err, ErrUnauthorized)

	got, err := creds.Load()
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = c.Save(context.Background(), &models.EventStore{})
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestSave_ServerErrorCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"Repository API error","detail":"sha mismatch"}`))
	}))
	defer srv.Close()

	creds := newCredentials(t, "s3cret")
	c := NewClient(srv.URL, creds, 0)

	_, err := c.Save(context.Background(), &models.EventStore{})
	var serverErr *ServerError
	require.True(t, errors.As(err, &serverErr))
	assert.Equal(t, http.StatusBadGateway, serverErr.StatusCode)
	assert.Equal(t, "Repository API error: sha mismatch", err.Error())

	// only a 401 drops the credential
	got, _ := creds.Load()
	assert.Equal(t, "s3cret", got)
}

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "s3cret", r.FormValue("password"))
		assert.Equal(t, "media/events/1/poster.png", r.FormValue("path"))
		assert.Equal(t, "true", r.FormValue("thumb"))

		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "flyer.png", header.Filename)
		assert.Equal(t, []byte("png"), data)

		w.Write([]byte(`{"ok":true,"path":"media/events/1/poster.png","revision":"r1","thumb":"media/events/1/poster-thumb.jpg"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, newCredentials(t, "s3cret"), 0)
	resp, err := c.Upload(context.Background(), "media/events/1/poster.png", "flyer.png", []byte("png"), true)
	require.NoError(t, err)
	assert.Equal(t, "r1", resp.Revision)
	assert.Equal(t, "media/events/1/poster-thumb.jpg", resp.Thumb)
}

func TestCommits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, password, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "s3cret", password)
		assert.Equal(t, "media", r.URL.Query().Get("kind"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		w.Write([]byte(`[{"id":3,"kind":"media","path":"media/events/1/a.png","revision":"r3"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, newCredentials(t, "s3cret"), 0)
	records, err := c.Commits(context.Background(), "media", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "r3", records[0].Revision)
}
