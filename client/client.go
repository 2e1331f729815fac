package client

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
	"strings"

	"github.com/abiiranathan/docsearch/models"
)

// UploadField is the multipart field name every uploaded file is sent under.
const UploadField = "files"

// ErrNoFiles is returned by Upload when called without files. No request is made.
var ErrNoFiles = errors.New("no files selected")

// StatusError is returned when the backend answers with a non-2xx status.
// Message holds the server supplied error text and is empty when the
// response carried none or was not valid JSON.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Code)
}

// File is one file to upload.
type File struct {
	Name   string
	Reader io.Reader
}

// Client talks to the docsearch backend.
type Client struct {
	base *url.URL
	http *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a client for the backend at baseURL. Requests have no
// timeout of their own; use the context to bound them.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q: scheme and host are required", baseURL)
	}

	c := &Client{base: base, http: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) endpoint(path string) string {
	return c.base.JoinPath(path).String()
}

// Upload posts files as one multipart body, one part per file.
func (c *Client) Upload(ctx context.Context, files []File) (*models.UploadResponse, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := mw.CreateFormFile(UploadField, f.Name)
		if err != nil {
			return nil, fmt.Errorf("creating part for %s: %w", f.Name, err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/upload"), &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out models.UploadResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search posts a search request and returns the grouped results.
func (c *Client) Search(ctx context.Context, search models.SearchRequest) (*models.SearchResponse, error) {
	data, err := json.Marshal(search)
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/search"), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out models.SearchResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Documents lists the names of the stored documents.
func (c *Client) Documents(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/documents"), nil)
	if err != nil {
		return nil, err
	}

	var out models.DocumentList
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out.Documents, nil
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", req.URL.Path, err)
	}
	return nil
}

// errorMessage extracts the "error" field of a failure body. Malformed
// bodies yield an empty message.
func errorMessage(body io.Reader) string {
	var e models.ErrorResponse
	if err := json.NewDecoder(body).Decode(&e); err != nil {
		return ""
	}
	return strings.TrimSpace(e.Error)
}
