package service

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"basstatic/internal/external"
)

type storedFile struct {
	sha     string
	content []byte
}

type putCall struct {
	Path    string
	Message string
	SHA     string
	Branch  string
	Content []byte
}

// fakeRepository is an in-memory repository contents API with sha preconditions
type fakeRepository struct {
	mu       sync.Mutex
	files    map[string]storedFile
	puts     []putCall
	gets     int
	commits  int
	failGet  int
	failPut  int
	failBody string
}

func newFakeRepository(t *testing.T) (*fakeRepository, *external.ContentsClient) {
	t.Helper()
	repo := &fakeRepository{files: map[string]storedFile{}}
	srv := httptest.NewServer(repo)
	t.Cleanup(srv.Close)

	client := external.NewContentsClient(external.ContentsConfig{
		BaseURL: srv.URL,
		Token:   "token",
		Repo:    "owner/site",
		Branch:  "main",
	})
	return repo, client
}

func (f *fakeRepository) seed(path, content string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	sha := blobSHA([]byte(content))
	f.files[path] = storedFile{sha: sha, content: []byte(content)}
	return sha
}

func (f *fakeRepository) lastPut() putCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.puts[len(f.puts)-1]
}

func blobSHA(b []byte) string {
	return fmt.Sprintf("%x", sha1.Sum(b))
}

func (f *fakeRepository) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	const prefix = "/repos/owner/site/contents/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, prefix)
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		f.gets++
		if f.failGet != 0 {
			w.WriteHeader(f.failGet)
			fmt.Fprint(w, f.failBody)
			return
		}
		file, ok := f.files[path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"Not Found"}`)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"path":     path,
			"sha":      file.sha,
			"encoding": "base64",
			"content":  base64.StdEncoding.EncodeToString(file.content),
		})

	case http.MethodPut:
		var body struct {
			Message string `json:"message"`
			Content string `json:"content"`
			Branch  string `json:"branch"`
			SHA     string `json:"sha"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		content, _ := base64.StdEncoding.DecodeString(body.Content)
		f.puts = append(f.puts, putCall{Path: path, Message: body.Message, SHA: body.SHA, Branch: body.Branch, Content: content})

		if f.failPut != 0 {
			w.WriteHeader(f.failPut)
			fmt.Fprint(w, f.failBody)
			return
		}
		if current, ok := f.files[path]; ok && current.sha != body.SHA {
			w.WriteHeader(http.StatusConflict)
			fmt.Fprintf(w, `{"message":"%s does not match %s"}`, path, body.SHA)
			return
		}

		sha := blobSHA(content)
		f.files[path] = storedFile{sha: sha, content: content}
		f.commits++
		status := http.StatusOK
		if body.SHA == "" {
			status = http.StatusCreated
		}
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"content":{"sha":%q},"commit":{"sha":"commit-%d"}}`, sha, f.commits)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
