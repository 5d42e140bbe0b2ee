package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultServer {
		t.Fatalf("host = %q, want %q", u.Host, defaultServer)
	}

	u, err = parseBaseURL("https://notes.example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
}

type recordedRequest struct {
	method string
	path   string
	body   string
	ua     string
}

func newTestServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *[]recordedRequest) {
	t.Helper()
	var seen []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		seen = append(seen, recordedRequest{
			method: r.Method,
			path:   r.URL.EscapedPath(),
			body:   string(body),
			ua:     r.Header.Get("User-Agent"),
		})
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "notedeck/test")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c, &seen
}

func TestClient_CatalogEndpoints(t *testing.T) {
	c, seen := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/config":
			_, _ = w.Write([]byte(`{"canvas_url":"https://school.instructure.com","has_token":true}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/courses":
			_, _ = w.Write([]byte(`[
				{"id":1,"name":"Biology 101","course_code":"BIO101","term":"Fall 2025","end_at":"2025-12-20T23:59:00Z"},
				{"id":2,"name":"History","course_code":"HIST","term":null,"end_at":null}
			]`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/courses":
			_, _ = w.Write([]byte(`{"success":true}`))
		default:
			http.NotFound(w, r)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	cfg, err := c.FetchConfig(ctx)
	if err != nil {
		t.Fatalf("FetchConfig returned error: %v", err)
	}
	if !cfg.Configured() || cfg.CanvasURL != "https://school.instructure.com" {
		t.Fatalf("FetchConfig = %#v, want configured school url", cfg)
	}

	courses, err := c.FetchCourses(ctx)
	if err != nil {
		t.Fatalf("FetchCourses returned error: %v", err)
	}
	if len(courses) != 2 || courses[0].ID != 1 || courses[0].CourseCode != "BIO101" {
		t.Fatalf("FetchCourses = %#v, want two courses", courses)
	}
	if courses[1].Term != nil || courses[1].EndAt != nil {
		t.Fatalf("null term/end_at decoded as %#v / %#v, want nil", courses[1].Term, courses[1].EndAt)
	}
	if end, ok := courses[0].EndTime(); !ok || end.Year() != 2025 || end.Month() != time.December {
		t.Fatalf("EndTime = %v ok=%v, want 2025-12-20", end, ok)
	}

	if err := c.RefreshCourses(ctx); err != nil {
		t.Fatalf("RefreshCourses returned error: %v", err)
	}
	last := (*seen)[len(*seen)-1]
	if last.body != "{}" {
		t.Fatalf("RefreshCourses body = %q, want {}", last.body)
	}
	for _, req := range *seen {
		if !strings.HasPrefix(req.ua, "notedeck/") {
			t.Fatalf("User-Agent = %q, want notedeck/*", req.ua)
		}
	}
}

func TestClient_ConfigMutations(t *testing.T) {
	var gotCreds []Credentials
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var creds Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		gotCreds = append(gotCreds, creds)
		switch r.URL.Path {
		case "/api/config/test":
			_, _ = w.Write([]byte(`{"success":false,"error":"Invalid access token"}`))
		case "/api/config":
			_, _ = w.Write([]byte(`{"success":true}`))
		default:
			http.NotFound(w, r)
		}
	})

	creds := Credentials{CanvasURL: "https://school.instructure.com", CanvasToken: "tok"}
	err := c.TestConnection(context.Background(), creds)
	if !errors.Is(err, ErrRejected) || !strings.Contains(err.Error(), "Invalid access token") {
		t.Fatalf("TestConnection error = %v, want rejection with backend message", err)
	}
	if err := c.SaveConfig(context.Background(), creds); err != nil {
		t.Fatalf("SaveConfig returned error: %v", err)
	}
	// TestConnection sends the same body as SaveConfig.
	if len(gotCreds) != 2 || gotCreds[0] != creds || gotCreds[1] != creds {
		t.Fatalf("credentials sent = %#v, want %#v twice", gotCreds, creds)
	}
}

func TestClient_FileEndpoints(t *testing.T) {
	c, seen := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/files/Biology 101":
			_, _ = w.Write([]byte(`[{"name":"week1.txt"},{"name":"exam.txt"}]`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/files/Biology 101/week1.txt":
			_, _ = w.Write([]byte(`{"content":"# Cells\nmitochondria"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/files/Biology 101":
			_, _ = w.Write([]byte(`{"success":true}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/api/files/Biology 101/week1.txt":
			_, _ = w.Write([]byte(`{"success":true}`))
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	files, err := c.ListFiles(ctx, "Biology 101")
	if err != nil {
		t.Fatalf("ListFiles returned error: %v", err)
	}
	if len(files) != 2 || files[0].Name != "week1.txt" {
		t.Fatalf("ListFiles = %#v, want 2 files", files)
	}
	if got := (*seen)[0].path; got != "/api/files/Biology%20101" {
		t.Fatalf("escaped path = %q, want /api/files/Biology%%20101", got)
	}

	content, err := c.FetchFile(ctx, "Biology 101", "week1.txt")
	if err != nil {
		t.Fatalf("FetchFile returned error: %v", err)
	}
	if content != "# Cells\nmitochondria" {
		t.Fatalf("FetchFile = %q", content)
	}

	if err := c.SaveFile(ctx, "Biology 101", "week1.txt", "updated"); err != nil {
		t.Fatalf("SaveFile returned error: %v", err)
	}
	var body saveFileRequest
	if err := json.Unmarshal([]byte((*seen)[2].body), &body); err != nil {
		t.Fatalf("decode SaveFile body: %v", err)
	}
	if body.Filename != "week1.txt" || body.Content != "updated" {
		t.Fatalf("SaveFile body = %#v", body)
	}

	if err := c.DeleteFile(ctx, "Biology 101", "week1.txt"); err != nil {
		t.Fatalf("DeleteFile returned error: %v", err)
	}
	if (*seen)[3].method != http.MethodDelete {
		t.Fatalf("DeleteFile method = %q, want DELETE", (*seen)[3].method)
	}
}

func TestClient_FileArgumentsRequired(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()
	if _, err := c.ListFiles(ctx, " "); err == nil {
		t.Fatalf("ListFiles returned nil error, want error")
	}
	if _, err := c.FetchFile(ctx, "c", ""); err == nil {
		t.Fatalf("FetchFile returned nil error, want error")
	}
	if err := c.SaveFile(ctx, "", "f", "x"); err == nil {
		t.Fatalf("SaveFile returned nil error, want error")
	}
	if err := c.DeleteFile(ctx, "c", " "); err == nil {
		t.Fatalf("DeleteFile returned nil error, want error")
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/config":
			_, _ = w.Write([]byte("{not-json"))
		case "/api/courses":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	})

	_, err := c.FetchConfig(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchConfig error = %v, want decode response error", err)
	}

	_, err = c.FetchCourses(context.Background())
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("FetchCourses error = %v, want status 500 error", err)
	}
}

func TestClient_RejectionWithoutMessage(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	})
	err := c.RefreshCourses(context.Background())
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("RefreshCourses error = %v, want ErrRejected", err)
	}
}
