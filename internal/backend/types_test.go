package backend

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestCourse_TermLabel(t *testing.T) {
	cases := []struct {
		name   string
		course Course
		want   string
	}{
		{"explicit term", Course{Term: strPtr("Spring 2026"), Name: "Fall 2020 Bio"}, "Spring 2026"},
		{"blank term falls through", Course{Term: strPtr("  "), Name: "Chem fall2025"}, "fall 2025"},
		{"season in name", Course{Name: "Biology Winter 2024"}, "Winter 2024"},
		{"season in code", Course{Name: "Biology", CourseCode: "BIO-Summer 2023"}, "Summer 2023"},
		{"year in name", Course{Name: "Physics 2022 cohort"}, "2022"},
		{"year in code", Course{Name: "Physics", CourseCode: "PHY-2021"}, "2021"},
		{"term id", Course{Name: "Physics Term: 42"}, "Term: 42"},
		{"fallback", Course{Name: "Physics", CourseCode: "PHY"}, "Current Term"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.course.TermLabel(); got != tc.want {
				t.Fatalf("TermLabel() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCourse_EndTime(t *testing.T) {
	cases := []struct {
		name   string
		endAt  *string
		wantOK bool
		want   time.Time
	}{
		{"nil", nil, false, time.Time{}},
		{"blank", strPtr(" "), false, time.Time{}},
		{"garbage", strPtr("soon"), false, time.Time{}},
		{"rfc3339", strPtr("2025-05-01T10:00:00Z"), true, time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)},
		{"fractional", strPtr("2025-05-01T10:00:00.250Z"), true, time.Date(2025, 5, 1, 10, 0, 0, 250e6, time.UTC)},
		{"date only", strPtr("2025-05-01"), true, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Course{EndAt: tc.endAt}.EndTime()
			if ok != tc.wantOK || !got.Equal(tc.want) {
				t.Fatalf("EndTime() = %v, %v; want %v, %v", got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestCourse_DisplayName(t *testing.T) {
	if got := (Course{Name: " Bio "}).DisplayName(); got != "Bio" {
		t.Fatalf("DisplayName = %q, want Bio", got)
	}
	if got := (Course{CourseCode: "BIO"}).DisplayName(); got != "BIO" {
		t.Fatalf("DisplayName = %q, want BIO", got)
	}
	if got := (Course{}).DisplayName(); got != "Unknown Course" {
		t.Fatalf("DisplayName = %q, want Unknown Course", got)
	}
}
