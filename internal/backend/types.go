package backend

import (
	"regexp"
	"strings"
	"time"
)

// Course mirrors one entry of /api/courses.
type Course struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	CourseCode    string  `json:"course_code"`
	WorkflowState string  `json:"workflow_state,omitempty"`
	Term          *string `json:"term"`
	StartAt       *string `json:"start_at,omitempty"`
	EndAt         *string `json:"end_at"`
}

// EndTime returns the parsed end timestamp. ok is false when the course has
// no end date or it cannot be parsed.
func (c Course) EndTime() (time.Time, bool) {
	if c.EndAt == nil {
		return time.Time{}, false
	}
	t := parseTime(*c.EndAt)
	return t, !t.IsZero()
}

// StartTime returns the parsed start timestamp when present.
func (c Course) StartTime() (time.Time, bool) {
	if c.StartAt == nil {
		return time.Time{}, false
	}
	t := parseTime(*c.StartAt)
	return t, !t.IsZero()
}

var (
	seasonPattern = regexp.MustCompile(`(?i)(Fall|Spring|Summer|Winter)\s*(\d{4})`)
	yearPattern   = regexp.MustCompile(`\d{4}`)
	termIDPattern = regexp.MustCompile(`Term:\s*(\d+)`)
)

// TermLabel returns the course term, recovering one from the name or course
// code when the backend did not send it.
func (c Course) TermLabel() string {
	if c.Term != nil {
		if term := strings.TrimSpace(*c.Term); term != "" {
			return term
		}
	}
	for _, source := range []string{c.Name, c.CourseCode} {
		if m := seasonPattern.FindStringSubmatch(source); m != nil {
			return m[1] + " " + m[2]
		}
	}
	for _, source := range []string{c.Name, c.CourseCode} {
		if year := yearPattern.FindString(source); year != "" {
			return year
		}
	}
	if m := termIDPattern.FindStringSubmatch(c.Name); m != nil {
		return "Term: " + m[1]
	}
	return "Current Term"
}

// DisplayName falls back to the course code for unnamed courses.
func (c Course) DisplayName() string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}
	if code := strings.TrimSpace(c.CourseCode); code != "" {
		return code
	}
	return "Unknown Course"
}

// Config mirrors GET /api/config.
type Config struct {
	CanvasURL string `json:"canvas_url"`
	HasToken  bool   `json:"has_token"`
}

// Configured reports whether the backend has both a URL and a token.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.CanvasURL) != "" && c.HasToken
}

// Credentials is the body of POST /api/config and /api/config/test.
type Credentials struct {
	CanvasURL   string `json:"canvas_url"`
	CanvasToken string `json:"canvas_token"`
}

// Result is the generic acknowledgement returned by mutating endpoints.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// FileInfo describes one note file of a course.
type FileInfo struct {
	Name string `json:"name"`
}

type fileContent struct {
	Content string `json:"content"`
}

type saveFileRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
