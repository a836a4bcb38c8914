package external

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrFileNotFound is returned by GetFile when the path does not exist on the branch
var ErrFileNotFound = errors.New("file not found in repository")

// ContentsConfig configures the hosted repository contents API
type ContentsConfig struct {
	BaseURL   string
	Token     string
	Repo      string // owner/name
	Branch    string
	UserAgent string
	Timeout   time.Duration
}

// Configured reports whether the server-side repository credentials are present
func (c ContentsConfig) Configured() bool {
	return c.Token != "" && c.Repo != ""
}

// ContentsClient talks to a GitHub-compatible repository contents API
type ContentsClient struct {
	baseURL    string
	token      string
	repo       string
	branch     string
	userAgent  string
	httpClient *http.Client
}

// APIError is a non-2xx answer of the contents API
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("unexpected status code: %d: %s", e.StatusCode, e.Body)
}

// FileInfo is the current state of a file in the repository
type FileInfo struct {
	Path    string
	SHA     string
	Content []byte
}

// PutFileRequest describes one commit of a single file
type PutFileRequest struct {
	Path    string
	Content []byte
	Message string
	// SHA is the revision being replaced; empty creates the file
	SHA string
}

// PutFileResponse is the result of a commit
type PutFileResponse struct {
	ContentSHA string
	CommitSHA  string
}

type contentsGetResponse struct {
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type contentsPutBody struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch,omitempty"`
	SHA     string `json:"sha,omitempty"`
}

type contentsPutResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

func NewContentsClient(cfg ContentsConfig) *ContentsClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.github.com"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "basstatic-admin"
	}

	return &ContentsClient{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		token:     cfg.Token,
		repo:      cfg.Repo,
		branch:    cfg.Branch,
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (cc *ContentsClient) fileURL(path string) string {
	segments := strings.Split(strings.TrimLeft(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/repos/%s/contents/%s", cc.baseURL, cc.repo, strings.Join(segments, "/"))
}

func (cc *ContentsClient) newRequest(ctx context.Context, method, rawURL string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+cc.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", cc.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// GetFile reads the current revision and content of path
func (cc *ContentsClient) GetFile(ctx context.Context, path string) (*FileInfo, error) {
	rawURL := cc.fileURL(path)
	if cc.branch != "" {
		rawURL += "?ref=" + url.QueryEscape(cc.branch)
	}

	req, err := cc.newRequest(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := cc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrFileNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result contentsGetResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	info := &FileInfo{Path: result.Path, SHA: result.SHA}
	if result.Encoding == "base64" && result.Content != "" {
		// the API wraps base64 content at 60 columns
		content, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(result.Content, "\n", ""))
		if err != nil {
			return nil, fmt.Errorf("failed to decode file content: %w", err)
		}
		info.Content = content
	}

	return info, nil
}

// PutFile commits the whole content of one file. When SHA is set the
// repository rejects the write if the file has changed since.
func (cc *ContentsClient) PutFile(ctx context.Context, putReq PutFileRequest) (*PutFileResponse, error) {
	jsonBody, err := json.Marshal(contentsPutBody{
		Message: putReq.Message,
		Content: base64.StdEncoding.EncodeToString(putReq.Content),
		Branch:  cc.branch,
		SHA:     putReq.SHA,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := cc.newRequest(ctx, http.MethodPut, cc.fileURL(putReq.Path), bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}

	resp, err := cc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to put file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result contentsPutResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &PutFileResponse{
		ContentSHA: result.Content.SHA,
		CommitSHA:  result.Commit.SHA,
	}, nil
}
