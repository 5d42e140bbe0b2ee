package logs

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestOpenWritesToDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	if err := Open(dir); err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	Printf("course refresh failed: %s", "boom")

	if got, want := Path(), filepath.Join(dir, FileName); got != want {
		t.Fatalf("Path = %q, want %q", got, want)
	}
	data, err := os.ReadFile(Path())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "[notedeck] ") || !strings.Contains(string(data), "course refresh failed: boom") {
		t.Fatalf("log contents = %q, want prefixed message", data)
	}
}

func TestOpenRejectsBlankDir(t *testing.T) {
	if err := Open(" "); err == nil {
		t.Fatalf("Open(blank) returned nil error")
	}
}

func TestTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("a\n\nb\nc\nd\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cases := []struct {
		name string
		max  int
		want []string
	}{
		{"fewer than max", 10, []string{"a", "b", "c", "d"}},
		{"exactly max", 4, []string{"a", "b", "c", "d"}},
		{"wraps ring", 2, []string{"c", "d"}},
		{"zero", 0, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Tail(path, tc.max)
			if err != nil {
				t.Fatalf("Tail: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Tail(%d) = %#v, want %#v", tc.max, got, tc.want)
			}
		})
	}
}

func TestTail_MissingFile(t *testing.T) {
	got, err := Tail(filepath.Join(t.TempDir(), "nope.log"), 5)
	if err != nil || got != nil {
		t.Fatalf("Tail(missing) = %#v, %v; want nil, nil", got, err)
	}
}
