package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/notedeck/internal/update"
)

// Config holds notedeck's startup settings.
type Config struct {
	// Server is the host:port or URL of the notes backend.
	Server string
	// DataDir holds the local state database and the log file.
	DataDir string
	// VersionURL serves the latest release number.
	VersionURL string
	// DownloadURL is offered to the user when an update is available.
	DownloadURL string
	// CountdownInterval is how often countdown labels refresh.
	CountdownInterval time.Duration
}

const (
	defaultConfigPath       = "~/.config/notedeck/config.toml"
	defaultDataDir          = "~/.local/share/notedeck"
	defaultServer           = "127.0.0.1:8080"
	defaultCountdownSeconds = 60

	stateFileName = "state.db"
	logFileName   = "notedeck.log"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Server:            defaultServer,
		DataDir:           mustExpand(defaultDataDir),
		VersionURL:        update.DefaultVersionURL,
		DownloadURL:       update.DefaultDownloadURL,
		CountdownInterval: defaultCountdownSeconds * time.Second,
	}
}

// Load locates and parses the notedeck config, falling back to defaults when
// the file is missing. Invalid TOML is an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Server           string `toml:"server"`
		DataDir          string `toml:"data_dir"`
		VersionURL       string `toml:"version_url"`
		DownloadURL      string `toml:"download_url"`
		CountdownSeconds int    `toml:"countdown_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.Server); v != "" {
		cfg.Server = v
	}
	if v := strings.TrimSpace(raw.DataDir); v != "" {
		cfg.DataDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.VersionURL); v != "" {
		cfg.VersionURL = v
	}
	if v := strings.TrimSpace(raw.DownloadURL); v != "" {
		cfg.DownloadURL = v
	}
	if raw.CountdownSeconds > 0 {
		cfg.CountdownInterval = time.Duration(raw.CountdownSeconds) * time.Second
	}

	return cfg, nil
}

// StatePath returns the local key/value database path.
func (c Config) StatePath() string {
	return filepath.Join(c.dataDir(), stateFileName)
}

// LogPath returns the notedeck log file path.
func (c Config) LogPath() string {
	return filepath.Join(c.dataDir(), logFileName)
}

func (c Config) dataDir() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir)
	}
	return c.DataDir
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
