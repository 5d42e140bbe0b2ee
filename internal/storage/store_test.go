package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	if _, ok, err := s.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want ok=false err=nil", ok, err)
	}
	if err := s.Set("hiddenCourses", "[1,2]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := s.Get("hiddenCourses")
	if err != nil || !ok || got != "[1,2]" {
		t.Fatalf("Get = %q ok=%v err=%v, want [1,2]", got, ok, err)
	}
	if err := s.Set("hiddenCourses", "[]"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, _, _ = s.Get("hiddenCourses")
	if got != "[]" {
		t.Fatalf("Get after overwrite = %q, want []", got)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	exerciseStore(t, s)

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Set("k", "v"); !errors.Is(err, ErrClosed) {
		t.Fatalf("Set after Close = %v, want ErrClosed", err)
	}
}

func TestBoltStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	s, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	exerciseStore(t, s)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Set("k", "v"); !errors.Is(err, ErrClosed) {
		t.Fatalf("Set after Close = %v, want ErrClosed", err)
	}
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	if err := s.Set("theme", "Slate"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
	got, ok, err := reopened.Get("theme")
	if err != nil || !ok || got != "Slate" {
		t.Fatalf("Get after reopen = %q ok=%v err=%v, want Slate", got, ok, err)
	}
}

func TestOpenBolt_EmptyPath(t *testing.T) {
	if _, err := OpenBolt("  "); err == nil {
		t.Fatalf("OpenBolt(blank) returned nil error")
	}
}
