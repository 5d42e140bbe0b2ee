package update

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/five82/notedeck/internal/schedule"
)

// CheckInterval is how often Start re-checks after the initial run.
const CheckInterval = 24 * time.Hour

const (
	// DefaultVersionURL serves the latest release number as plain text.
	DefaultVersionURL = "https://raw.githubusercontent.com/five82/notedeck/main/version.txt"
	// DefaultDownloadURL is where users are sent to fetch a release.
	DefaultDownloadURL = "https://github.com/five82/notedeck/releases/latest"
)

// maxVersionBytes bounds how much of the version file is read.
const maxVersionBytes = 1 << 10

// Info is the outcome of one check.
type Info struct {
	Latest      string
	Current     string
	HasUpdate   bool
	DownloadURL string
}

// Checker fetches the remote version file and compares it with the running
// version.
type Checker struct {
	client      *http.Client
	versionURL  string
	downloadURL string
	current     string
	logger      *log.Logger

	mu       sync.Mutex
	notified string
	cancel   context.CancelFunc
	task     schedule.Periodic
	interval time.Duration
}

// Options configures a Checker. Zero values fall back to defaults.
type Options struct {
	VersionURL  string
	DownloadURL string
	Current     string
	Client      *http.Client
	Logger      *log.Logger
	Interval    time.Duration
}

// NewChecker builds a Checker from opts.
func NewChecker(opts Options) *Checker {
	c := &Checker{
		client:      opts.Client,
		versionURL:  strings.TrimSpace(opts.VersionURL),
		downloadURL: strings.TrimSpace(opts.DownloadURL),
		current:     strings.TrimSpace(opts.Current),
		logger:      opts.Logger,
		interval:    opts.Interval,
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: 10 * time.Second}
	}
	if c.versionURL == "" {
		c.versionURL = DefaultVersionURL
	}
	if c.downloadURL == "" {
		c.downloadURL = DefaultDownloadURL
	}
	if c.current == "" {
		c.current = Version
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard, "", 0)
	}
	if c.interval <= 0 {
		c.interval = CheckInterval
	}
	return c
}

// Check fetches the remote version once.
func (c *Checker) Check(ctx context.Context) (Info, error) {
	info := Info{Current: c.current, DownloadURL: c.downloadURL}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.versionURL, nil)
	if err != nil {
		return info, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "notedeck/"+c.current)
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.client.Do(req)
	if err != nil {
		return info, fmt.Errorf("fetch version: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return info, fmt.Errorf("fetch version: %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxVersionBytes))
	if err != nil {
		return info, fmt.Errorf("read version: %w", err)
	}
	latest := strings.TrimSpace(string(data))
	if latest == "" {
		return info, errors.New("version file is empty")
	}
	info.Latest = latest

	newer, err := IsNewVersion(latest, c.current)
	if err != nil {
		return info, err
	}
	info.HasUpdate = newer
	return info, nil
}

// Start checks immediately and then every interval until ctx is cancelled or
// Stop is called. notify runs on the checker goroutine, once per newer
// version. Calling Start again replaces the running schedule.
func (c *Checker) Start(ctx context.Context, notify func(Info)) {
	c.Stop()
	runCtx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()
	c.task.Start(runCtx, c.interval, true, func() {
		c.poll(runCtx, notify)
	})
}

// Stop cancels the schedule and any in-flight request.
func (c *Checker) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	c.task.Stop()
}

func (c *Checker) poll(ctx context.Context, notify func(Info)) {
	info, err := c.Check(ctx)
	if err != nil {
		if ctx.Err() == nil {
			c.logger.Printf("update check: %v", err)
		}
		return
	}
	if !info.HasUpdate {
		return
	}
	c.mu.Lock()
	seen := c.notified == info.Latest
	c.notified = info.Latest
	c.mu.Unlock()
	if seen {
		return
	}
	c.logger.Printf("update available: %s (running %s)", info.Latest, info.Current)
	if notify != nil {
		notify(info)
	}
}
