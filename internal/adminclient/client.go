package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"basstatic/internal/models"
)

var (
	// ErrUnauthorized means the server rejected the stored credential; it has been cleared
	ErrUnauthorized = errors.New("unauthorized: log in again")
	// ErrNoCredential means no credential has been stored yet
	ErrNoCredential = errors.New("not logged in")
)

// ServerError is a non-2xx answer carrying the server's error message
type ServerError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// Client talks to the site's public read path and the admin endpoints
type Client struct {
	baseURL     string
	credentials CredentialStore
	httpClient  *http.Client
}

func NewClient(baseURL string, credentials CredentialStore, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		credentials: credentials,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// LoadDocument fetches the published document, bypassing intermediate caches
func (c *Client) LoadDocument(ctx context.Context) (*models.EventStore, error) {
	rawURL := c.baseURL + "/data/events.json?t=" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, serverError(resp.StatusCode, body)
	}
	return models.ParseEventStore(body)
}

// Save commits the whole document and returns the new revision
func (c *Client) Save(ctx context.Context, store *models.EventStore) (string, error) {
	credential, err := c.credential()
	if err != nil {
		return "", err
	}

	document, err := store.MarshalDocument()
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	payload, err := json.Marshal(models.SaveRequest{Credential: credential, Document: document})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/admin/save", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var result models.SaveResponse
	if err := c.do(req, &result); err != nil {
		return "", err
	}
	return result.Revision, nil
}

// Upload commits one media file at path
func (c *Client) Upload(ctx context.Context, path, filename string, data []byte, thumb bool) (*models.UploadResponse, error) {
	credential, err := c.credential()
	if err != nil {
		return nil, err
	}

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	fields := map[string]string{"password": credential, "path": path}
	if thumb {
		fields["thumb"] = "true"
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("failed to write form: %w", err)
		}
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to write form: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to write form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/admin/upload", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var result models.UploadResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Commits lists the server's commit audit log
func (c *Client) Commits(ctx context.Context, kind string, limit int) ([]models.CommitRecord, error) {
	credential, err := c.credential()
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	if kind != "" {
		q.Set("kind", kind)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	rawURL := c.baseURL + "/api/admin/commits"
	if len(q) > 0 {
		rawURL += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth("admin", credential)

	var records []models.CommitRecord
	if err := c.do(req, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) credential() (string, error) {
	credential, err := c.credentials.Load()
	if err != nil {
		return "", err
	}
	if credential == "" {
		return "", ErrNoCredential
	}
	return credential, nil
}

// do sends an admin request. A 401 clears the stored credential.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.credentials.Clear(); err != nil {
			return fmt.Errorf("%w (%v)", ErrUnauthorized, err)
		}
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return serverError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func serverError(status int, body []byte) error {
	var resp models.ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Error == "" {
		return &ServerError{StatusCode: status, Message: http.StatusText(status)}
	}
	return &ServerError{StatusCode: status, Message: resp.Error, Detail: resp.Detail}
}
