package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/notedeck/internal/update"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server != defaultServer {
		t.Fatalf("Server = %q, want %q", cfg.Server, defaultServer)
	}

	wantDataDir, err := expandPath(defaultDataDir)
	if err != nil {
		t.Fatalf("expandPath(defaultDataDir) returned error: %v", err)
	}
	if cfg.DataDir != wantDataDir {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, wantDataDir)
	}
	if cfg.StatePath() != filepath.Join(wantDataDir, "state.db") {
		t.Fatalf("StatePath = %q", cfg.StatePath())
	}
	if cfg.VersionURL != update.DefaultVersionURL || cfg.DownloadURL != update.DefaultDownloadURL {
		t.Fatalf("update URLs = %q, %q", cfg.VersionURL, cfg.DownloadURL)
	}
	if cfg.CountdownInterval != time.Minute {
		t.Fatalf("CountdownInterval = %s, want 1m", cfg.CountdownInterval)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
server = "  10.0.0.5:9999  "
data_dir = "  ~/.notedeck  "
version_url = "https://example.com/version.txt"
download_url = " https://example.com/download "
countdown_seconds = 15
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server != "10.0.0.5:9999" {
		t.Fatalf("Server = %q, want %q", cfg.Server, "10.0.0.5:9999")
	}
	if !strings.HasPrefix(cfg.DataDir, home) {
		t.Fatalf("DataDir = %q, want it under HOME %q", cfg.DataDir, home)
	}
	if cfg.LogPath() != filepath.Join(cfg.DataDir, "notedeck.log") {
		t.Fatalf("LogPath = %q", cfg.LogPath())
	}
	if cfg.VersionURL != "https://example.com/version.txt" || cfg.DownloadURL != "https://example.com/download" {
		t.Fatalf("update URLs = %q, %q", cfg.VersionURL, cfg.DownloadURL)
	}
	if cfg.CountdownInterval != 15*time.Second {
		t.Fatalf("CountdownInterval = %s, want 15s", cfg.CountdownInterval)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
server = "   "
data_dir = ""
countdown_seconds = -5
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server != defaultServer {
		t.Fatalf("Server = %q, want %q", cfg.Server, defaultServer)
	}
	wantDataDir, err := expandPath(defaultDataDir)
	if err != nil {
		t.Fatalf("expandPath(defaultDataDir) returned error: %v", err)
	}
	if cfg.DataDir != wantDataDir {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, wantDataDir)
	}
	if cfg.CountdownInterval != time.Minute {
		t.Fatalf("CountdownInterval = %s, want 1m", cfg.CountdownInterval)
	}
}

func TestLoad_InvalidTOMLIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("server = [unterminated"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoad_DefaultPathUsesHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "notedeck")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`server = "example:1"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server != "example:1" {
		t.Fatalf("Server = %q, want %q", cfg.Server, "example:1")
	}
}

func TestPathsFallBackWithoutDataDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	var cfg Config
	if !strings.HasSuffix(cfg.StatePath(), filepath.Join(".local", "share", "notedeck", "state.db")) {
		t.Fatalf("StatePath = %q", cfg.StatePath())
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/notes")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "notes") {
		t.Fatalf("expandPath = %q", got)
	}
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
