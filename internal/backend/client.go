package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrRejected wraps a {"success": false} acknowledgement.
var ErrRejected = errors.New("backend rejected request")

// CatalogSource is the read side of the backend the course controller uses.
type CatalogSource interface {
	FetchConfig(ctx context.Context) (Config, error)
	FetchCourses(ctx context.Context) ([]Course, error)
	RefreshCourses(ctx context.Context) error
}

// FileAPI is the note file CRUD surface.
type FileAPI interface {
	ListFiles(ctx context.Context, course string) ([]FileInfo, error)
	FetchFile(ctx context.Context, course, name string) (string, error)
	SaveFile(ctx context.Context, course, name, content string) error
	DeleteFile(ctx context.Context, course, name string) error
}

// SettingsAPI stores and verifies the Canvas credentials held by the backend.
type SettingsAPI interface {
	SaveConfig(ctx context.Context, creds Credentials) error
	TestConnection(ctx context.Context, creds Credentials) error
}

// Ensure Client implements every surface at compile time.
var (
	_ CatalogSource = (*Client)(nil)
	_ FileAPI       = (*Client)(nil)
	_ SettingsAPI   = (*Client)(nil)
)

// Client talks to the notedeck backend HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultServer  = "127.0.0.1:8080"
	requestTimeout = 5 * time.Second
)

// NewClient builds a Client for the given host:port or URL. userAgent may be
// empty.
func NewClient(server, userAgent string) (*Client, error) {
	base, err := parseBaseURL(server)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(userAgent) == "" {
		userAgent = "notedeck"
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: userAgent,
	}, nil
}

// BaseURL returns the resolved backend address.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// FetchConfig retrieves the backend's Canvas configuration summary.
func (c *Client) FetchConfig(ctx context.Context) (Config, error) {
	var payload Config
	if err := c.do(ctx, http.MethodGet, []string{"api", "config"}, nil, &payload); err != nil {
		return Config{}, err
	}
	return payload, nil
}

// SaveConfig persists the Canvas URL and access token on the backend.
func (c *Client) SaveConfig(ctx context.Context, creds Credentials) error {
	return c.doResult(ctx, http.MethodPost, []string{"api", "config"}, creds)
}

// TestConnection asks the backend to verify the credentials without saving.
func (c *Client) TestConnection(ctx context.Context, creds Credentials) error {
	return c.doResult(ctx, http.MethodPost, []string{"api", "config", "test"}, creds)
}

// FetchCourses retrieves the course collection.
func (c *Client) FetchCourses(ctx context.Context) ([]Course, error) {
	var payload []Course
	if err := c.do(ctx, http.MethodGet, []string{"api", "courses"}, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// RefreshCourses asks the backend to re-pull the catalog from Canvas.
func (c *Client) RefreshCourses(ctx context.Context) error {
	return c.doResult(ctx, http.MethodPost, []string{"api", "courses"}, struct{}{})
}

// ListFiles lists the note files stored for a course.
func (c *Client) ListFiles(ctx context.Context, course string) ([]FileInfo, error) {
	if strings.TrimSpace(course) == "" {
		return nil, fmt.Errorf("course name required")
	}
	var payload []FileInfo
	if err := c.do(ctx, http.MethodGet, []string{"api", "files", course}, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchFile returns a note file's content.
func (c *Client) FetchFile(ctx context.Context, course, name string) (string, error) {
	if strings.TrimSpace(course) == "" || strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("course and file name required")
	}
	var payload fileContent
	if err := c.do(ctx, http.MethodGet, []string{"api", "files", course, name}, nil, &payload); err != nil {
		return "", err
	}
	return payload.Content, nil
}

// SaveFile creates or replaces a note file.
func (c *Client) SaveFile(ctx context.Context, course, name, content string) error {
	if strings.TrimSpace(course) == "" || strings.TrimSpace(name) == "" {
		return fmt.Errorf("course and file name required")
	}
	body := saveFileRequest{Filename: name, Content: content}
	return c.doResult(ctx, http.MethodPost, []string{"api", "files", course}, body)
}

// DeleteFile removes a note file.
func (c *Client) DeleteFile(ctx context.Context, course, name string) error {
	if strings.TrimSpace(course) == "" || strings.TrimSpace(name) == "" {
		return fmt.Errorf("course and file name required")
	}
	return c.doResult(ctx, http.MethodDelete, []string{"api", "files", course, name}, nil)
}

func (c *Client) doResult(ctx context.Context, method string, segments []string, body any) error {
	var result Result
	if err := c.do(ctx, method, segments, body, &result); err != nil {
		return err
	}
	if !result.Success {
		if msg := strings.TrimSpace(result.Error); msg != "" {
			return fmt.Errorf("%w: %s", ErrRejected, msg)
		}
		return ErrRejected
	}
	return nil
}

func (c *Client) do(ctx context.Context, method string, segments []string, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	rel := &url.URL{
		Path:    "/" + strings.Join(segments, "/"),
		RawPath: "/" + strings.Join(escaped, "/"),
	}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s %s returned status %d", method, rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(server string) (*url.URL, error) {
	trimmed := strings.TrimSpace(server)
	if trimmed == "" {
		trimmed = defaultServer
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server %q: %w", server, err)
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
