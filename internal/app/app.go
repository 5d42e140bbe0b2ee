package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/five82/notedeck/internal/backend"
	"github.com/five82/notedeck/internal/config"
	"github.com/five82/notedeck/internal/courses"
	"github.com/five82/notedeck/internal/logs"
	"github.com/five82/notedeck/internal/notes"
	"github.com/five82/notedeck/internal/prefs"
	"github.com/five82/notedeck/internal/state"
	"github.com/five82/notedeck/internal/storage"
	"github.com/five82/notedeck/internal/ui"
	"github.com/five82/notedeck/internal/update"
)

// startupTimeout bounds the initial catalog load before the UI appears.
const startupTimeout = 10 * time.Second

// Options configure the notedeck application.
type Options struct {
	ConfigPath  string
	PrefsPath   string // empty uses default ~/.config/notedeck/prefs.toml
	Server      string // overrides the configured backend address
	TickSeconds int    // countdown refresh in seconds; zero uses config
}

// Run boots the notedeck TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(&cfg, opts)

	if err := logs.Open(cfg.DataDir); err != nil {
		fmt.Fprintf(os.Stderr, "notedeck: logging disabled: %v\n", err)
	}
	defer func() { _ = logs.Close() }()
	logs.Printf("notedeck %s starting, backend %s", update.Version, cfg.Server)

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, _ := prefs.Load(prefsPath)

	kv := openStore(cfg.StatePath())
	defer func() { _ = kv.Close() }()

	client, err := backend.NewClient(cfg.Server, "notedeck/"+update.Version)
	if err != nil {
		return fmt.Errorf("init backend client: %w", err)
	}

	ctrl := courses.NewController(
		courses.NewHiddenStore(kv, logs.Logger),
		nil,
		courses.WithLogger(logs.Logger),
		courses.WithMode(courses.ParseMode(userPrefs.View)),
	)

	store := &state.Store{}

	// Initial load happens before the UI starts so the first frame has data.
	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	cat := ctrl.Startup(startCtx, client)
	cancel()
	recordCatalog(store, cat)

	checker := update.NewChecker(update.Options{
		VersionURL:  cfg.VersionURL,
		DownloadURL: cfg.DownloadURL,
		Current:     update.Version,
		Logger:      logs.Logger,
	})

	return ui.Run(ui.Options{
		Context:       ctx,
		Controller:    ctrl,
		Catalog:       client,
		Settings:      client,
		Notes:         notes.NewService(client, logs.Logger),
		Store:         store,
		Checker:       checker,
		Logger:        logs.Logger,
		LogPath:       logs.Path(),
		CountdownTick: cfg.CountdownInterval,
		ThemeName:     userPrefs.Theme,
		PrefsPath:     prefsPath,
	})
}

func applyOverrides(cfg *config.Config, opts Options) {
	if opts.Server != "" {
		cfg.Server = opts.Server
	}
	if opts.TickSeconds > 0 {
		cfg.CountdownInterval = time.Duration(opts.TickSeconds) * time.Second
	}
}

// openStore opens the local state database. When it cannot be opened the
// hidden-course set lives in memory for this session only.
func openStore(path string) storage.Store {
	db, err := storage.OpenBolt(path)
	if err != nil {
		logs.Printf("open state db %s: %v (hidden courses will not persist)", path, err)
		return storage.NewMemoryStore()
	}
	return db
}

// recordCatalog stores the outcome of a catalog load for the header.
func recordCatalog(store *state.Store, cat courses.Catalog) {
	if cat.Err != nil {
		store.Update(nil, len(cat.Courses), cat.Err)
		return
	}
	store.Update(&cat.Config, len(cat.Courses), nil)
}
