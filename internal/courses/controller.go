package courses

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/five82/notedeck/internal/backend"
	"github.com/five82/notedeck/internal/schedule"
)

// DefaultCountdownInterval is how often countdown labels are recomputed.
const DefaultCountdownInterval = time.Minute

// Renderer receives derived view data. It is the boundary to whatever draws
// the courses.
type Renderer interface {
	Render(courses []backend.Course, status string)
	RenderCountdowns(labels map[int64]Countdown)
}

// Catalog is one load of the backend's config and course collection.
type Catalog struct {
	Config  backend.Config
	Courses []backend.Course
	// Err joins every failure hit while loading; the other fields already
	// hold degraded values.
	Err error
}

// FetchCatalog loads config then courses from src. When refresh is set the
// backend is asked to re-pull the catalog first. Failures degrade to empty
// values and are logged; they never stop the remaining steps.
func FetchCatalog(ctx context.Context, src backend.CatalogSource, refresh bool, logger *log.Logger) Catalog {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	var cat Catalog
	var errs []error
	if src == nil {
		return Catalog{Courses: []backend.Course{}, Err: errors.New("no catalog source")}
	}

	if refresh {
		if err := src.RefreshCourses(ctx); err != nil {
			logger.Printf("refresh courses: %v", err)
			errs = append(errs, fmt.Errorf("refresh courses: %w", err))
		}
	}

	cfg, err := src.FetchConfig(ctx)
	if err != nil {
		logger.Printf("load config: %v", err)
		errs = append(errs, fmt.Errorf("load config: %w", err))
		cfg = backend.Config{}
	}
	cat.Config = cfg

	list, err := src.FetchCourses(ctx)
	if err != nil {
		logger.Printf("load courses: %v", err)
		errs = append(errs, fmt.Errorf("load courses: %w", err))
		list = nil
	}
	if list == nil {
		list = []backend.Course{}
	}
	cat.Courses = list
	cat.Err = errors.Join(errs...)
	return cat
}

// Option customizes a Controller.
type Option func(*Controller)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger used for absorbed failures.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMode sets the initial view mode.
func WithMode(mode Mode) Option {
	return func(c *Controller) {
		c.mode = ParseMode(string(mode))
	}
}

// Controller owns the course collection, the hidden set and the view mode,
// and derives what the user sees from them. All methods except the countdown
// timer must be called from a single goroutine (the UI event loop).
type Controller struct {
	courses  []backend.Course
	config   backend.Config
	hidden   HiddenSet
	mode     Mode
	query    string
	ready    bool
	rendered []backend.Course

	store    *HiddenStore
	renderer Renderer
	now      func() time.Time
	logger   *log.Logger
	ticker   schedule.Periodic
}

// NewController builds a controller persisting hidden courses through store
// and pushing view data to renderer. renderer may be nil.
func NewController(store *HiddenStore, renderer Renderer, opts ...Option) *Controller {
	c := &Controller{
		courses:  []backend.Course{},
		hidden:   HiddenSet{},
		mode:     ModeActive,
		store:    store,
		renderer: renderer,
		now:      time.Now,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetRenderer swaps the presentation layer.
func (c *Controller) SetRenderer(r Renderer) {
	c.renderer = r
}

// Startup runs the ordered startup sequence: hidden set, config, courses,
// ready, render. It always reaches the ready state.
func (c *Controller) Startup(ctx context.Context, src backend.CatalogSource) Catalog {
	c.LoadHidden()
	cat := FetchCatalog(ctx, src, false, c.logger)
	c.ApplyCatalog(cat)
	c.ready = true
	c.Render()
	return cat
}

// Refresh asks src to re-pull the catalog, then reloads config and courses.
// Failures degrade the same way as Startup.
func (c *Controller) Refresh(ctx context.Context, src backend.CatalogSource) Catalog {
	cat := FetchCatalog(ctx, src, true, c.logger)
	c.ApplyCatalog(cat)
	return cat
}

// LoadHidden replaces the hidden set with the persisted one.
func (c *Controller) LoadHidden() {
	c.hidden = c.store.Load()
}

// ApplyCatalog replaces the config and course collection and re-renders.
func (c *Controller) ApplyCatalog(cat Catalog) {
	c.config = cat.Config
	if cat.Courses == nil {
		c.courses = []backend.Course{}
	} else {
		c.courses = cat.Courses
	}
	c.Render()
}

// MarkReady reveals the view; Render is a no-op before this.
func (c *Controller) MarkReady() {
	c.ready = true
	c.Render()
}

// Ready reports whether startup completed.
func (c *Controller) Ready() bool { return c.ready }

// Config returns the last loaded backend config.
func (c *Controller) Config() backend.Config { return c.config }

// Courses returns the full course collection.
func (c *Controller) Courses() []backend.Course { return c.courses }

// Mode returns the current view mode.
func (c *Controller) Mode() Mode { return c.mode }

// Hidden returns a copy of the hidden set.
func (c *Controller) Hidden() HiddenSet { return c.hidden.Clone() }

// IsHidden reports whether id is in the hidden set.
func (c *Controller) IsHidden(id int64) bool { return c.hidden.Has(id) }

// Query returns the active search query.
func (c *Controller) Query() string { return c.query }

// SetView switches the view mode and re-renders.
func (c *Controller) SetView(mode Mode) {
	c.mode = ParseMode(string(mode))
	c.Render()
}

// CycleView advances to the next view mode.
func (c *Controller) CycleView() Mode {
	c.SetView(c.mode.Next())
	return c.mode
}

// ToggleCourseVisibility flips id in the hidden set, persists the set and
// re-renders. It reports whether id is now hidden.
func (c *Controller) ToggleCourseVisibility(id int64) bool {
	if c.hidden == nil {
		c.hidden = HiddenSet{}
	}
	hidden := c.hidden.Toggle(id)
	c.store.Save(c.hidden)
	c.Render()
	return hidden
}

// Search narrows the rendered courses by a fuzzy query.
func (c *Controller) Search(query string) {
	c.query = query
	c.Render()
}

// FilteredCourses returns the courses visible in the current mode.
func (c *Controller) FilteredCourses() []backend.Course {
	return FilterCourses(c.courses, c.hidden, c.mode, c.now())
}

// VisibleCourses is FilteredCourses narrowed by the search query.
func (c *Controller) VisibleCourses() []backend.Course {
	return Search(c.FilteredCourses(), c.query)
}

// IsCourseExpired reports whether course ended before now.
func (c *Controller) IsCourseExpired(course backend.Course) bool {
	return Expired(courseEnd(course), c.now())
}

// CalculateTimeRemaining returns the countdown for course at the current time.
func (c *Controller) CalculateTimeRemaining(course backend.Course) Countdown {
	return TimeRemaining(courseEnd(course), c.now())
}

// Status summarizes the current view.
func (c *Controller) Status() string {
	return StatusSummary(len(c.courses), len(c.hidden), len(c.FilteredCourses()), c.mode)
}

// Render re-derives the view, hands it to the renderer and refreshes the
// countdowns of the rendered courses.
func (c *Controller) Render() {
	if !c.ready {
		return
	}
	filtered := c.FilteredCourses()
	visible := Search(filtered, c.query)
	c.rendered = visible
	status := StatusSummary(len(c.courses), len(c.hidden), len(filtered), c.mode)
	if c.renderer != nil {
		c.renderer.Render(visible, status)
	}
	c.RefreshCountdowns()
}

// RefreshCountdowns recomputes labels for rendered courses that have an end
// date and pushes them to the renderer.
func (c *Controller) RefreshCountdowns() map[int64]Countdown {
	now := c.now()
	labels := make(map[int64]Countdown, len(c.rendered))
	for _, course := range c.rendered {
		end := courseEnd(course)
		if end == nil {
			continue
		}
		labels[course.ID] = TimeRemaining(end, now)
	}
	if c.renderer != nil {
		c.renderer.RenderCountdowns(labels)
	}
	return labels
}

// StartCountdownTimer schedules dispatch every interval, replacing any
// previous timer. dispatch runs on the timer goroutine and is expected to
// hand control back to the event loop, which then calls RefreshCountdowns.
func (c *Controller) StartCountdownTimer(ctx context.Context, interval time.Duration, dispatch func()) {
	if interval <= 0 {
		interval = DefaultCountdownInterval
	}
	c.ticker.Start(ctx, interval, false, dispatch)
}

// TimerRunning reports whether the countdown timer is active.
func (c *Controller) TimerRunning() bool {
	return c.ticker.Running()
}

// Close stops the countdown timer.
func (c *Controller) Close() {
	c.ticker.Stop()
}
