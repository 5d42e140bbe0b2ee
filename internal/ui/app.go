package ui

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/notedeck/internal/backend"
	"github.com/five82/notedeck/internal/courses"
	"github.com/five82/notedeck/internal/notes"
	"github.com/five82/notedeck/internal/prefs"
	"github.com/five82/notedeck/internal/state"
	"github.com/five82/notedeck/internal/update"
)

// View represents the current active view.
type View int

const (
	ViewCourses View = iota
	ViewNotes
	ViewSettings
	ViewLogs
)

// courseView receives the controller's output. Model copies share it by
// pointer, so the latest render is visible to whichever copy Bubble Tea holds.
type courseView struct {
	courses    []backend.Course
	status     string
	countdowns map[int64]courses.Countdown
}

var _ courses.Renderer = (*courseView)(nil)

func (v *courseView) Render(list []backend.Course, status string) {
	v.courses = list
	v.status = status
}

func (v *courseView) RenderCountdowns(labels map[int64]courses.Countdown) {
	v.countdowns = labels
}

var errNoBackend = errors.New("backend client is not configured")

// noFiles stands in for a missing file API.
type noFiles struct{}

func (noFiles) ListFiles(context.Context, string) ([]backend.FileInfo, error) {
	return nil, errNoBackend
}

func (noFiles) FetchFile(context.Context, string, string) (string, error) {
	return "", errNoBackend
}

func (noFiles) SaveFile(context.Context, string, string, string) error { return errNoBackend }

func (noFiles) DeleteFile(context.Context, string, string) error { return errNoBackend }

// Options configures the UI.
type Options struct {
	Context       context.Context
	Controller    *courses.Controller
	Catalog       backend.CatalogSource
	Settings      backend.SettingsAPI
	Notes         *notes.Service
	Store         *state.Store
	Checker       *update.Checker
	Logger        *log.Logger
	LogPath       string
	CountdownTick time.Duration
	ThemeName     string
	PrefsPath     string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx           context.Context
	ctrl          *courses.Controller
	catalog       backend.CatalogSource
	settingsAPI   backend.SettingsAPI
	notesSvc      *notes.Service
	store         *state.Store
	logger        *log.Logger
	logPath       string
	prefsPath     string
	countdownTick time.Duration

	// UI state
	keys        keyMap
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	spinner     spinner.Model

	// Course state
	view        *courseView
	snapshot    state.Snapshot
	selectedRow int
	refreshing  bool
	searching   bool
	searchInput textinput.Model

	// Sub views
	notes    notesState
	settings settingsState

	// Log viewer
	logViewport viewport.Model
	logErr      string

	// Update banner
	update          *update.Info
	updateDismissed bool

	// Transient status line
	flash flashMessage

	// Overlays
	showHelp bool
	modal    Modal
}

type flashMessage struct {
	id    int
	text  string
	isErr bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.CountdownTick
	if tick <= 0 {
		tick = courses.DefaultCountdownInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	ctrl := opts.Controller
	if ctrl == nil {
		ctrl = courses.NewController(nil, nil)
	}
	view := &courseView{}
	ctrl.SetRenderer(view)
	ctrl.Render()

	notesSvc := opts.Notes
	if notesSvc == nil {
		notesSvc = notes.NewService(noFiles{}, logger)
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search courses"
	search.CharLimit = 120

	m := Model{
		ctx:           ctx,
		ctrl:          ctrl,
		catalog:       opts.Catalog,
		settingsAPI:   opts.Settings,
		notesSvc:      notesSvc,
		store:         opts.Store,
		logger:        logger,
		logPath:       opts.LogPath,
		prefsPath:     prefsPath,
		countdownTick: tick,
		keys:          DefaultKeyMap(),
		theme:         GetTheme(themeName),
		currentView:   ViewCourses,
		spinner:       sp,
		view:          view,
		searchInput:   search,
		notes:         newNotesState(),
		settings:      newSettingsState(),
		logViewport:   viewport.New(0, 0),
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, textinput.Blink)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case countdownTickMsg:
		m.ctrl.RefreshCountdowns()
		return m, nil

	case catalogMsg:
		return m.handleCatalog(msg)

	case updateAvailableMsg:
		info := update.Info(msg)
		m.update = &info
		m.updateDismissed = false
		return m, nil

	case flashExpiredMsg:
		if int(msg) == m.flash.id {
			m.flash.text = ""
		}
		return m, nil

	case logLoadedMsg:
		m.handleLogLoaded(msg)
		return m, nil

	case notesListMsg, noteOpenedMsg, noteSavedMsg, noteCreatedMsg, noteDeletedMsg,
		createNoteRequestMsg, deleteNoteRequestMsg, discardNoteMsg:
		return m.handleNotesMsg(msg)

	case settingsResultMsg:
		return m.handleSettingsResult(msg)
	}

	// Forward anything else (cursor blink) to the focused input.
	return m.updateFocusedInput(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// busy reports whether any background request is in flight.
func (m Model) busy() bool {
	return m.refreshing || m.notes.loading || m.notes.pending || m.settings.pending
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Views with a focused text input get every other key.
	switch {
	case m.searching:
		return m.handleSearchKey(msg)
	case m.currentView == ViewNotes && m.notes.editing:
		return m.handleEditorKey(msg)
	case m.currentView == ViewSettings:
		return m.handleSettingsKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.currentView = ViewLogs
		return m, loadLogCmd(m.logPath)

	case key.Matches(msg, m.keys.CopyUpdate) && m.bannerVisible():
		return m.copyUpdateLink()

	case key.Matches(msg, m.keys.DismissUpdate) && m.bannerVisible():
		m.updateDismissed = true
		return m, nil
	}

	switch m.currentView {
	case ViewCourses:
		return m.handleCoursesKey(msg)
	case ViewNotes:
		return m.handleNotesListKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	}

	return m, nil
}

// updateFocusedInput forwards non-key messages to the active input so cursor
// blinking keeps working.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.searching:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case m.currentView == ViewNotes && m.notes.editing:
		m.notes.editor, cmd = m.notes.editor.Update(msg)
	case m.currentView == ViewSettings:
		i := m.settings.focus
		m.settings.inputs[i], cmd = m.settings.inputs[i].Update(msg)
	}
	return m, cmd
}

// resize propagates the terminal size to sized components.
func (m *Model) resize() {
	contentHeight := m.contentHeight()
	m.logViewport.Width = max(m.width-4, 10)
	m.logViewport.Height = max(contentHeight-2, 3)
	m.notes.resize(m.width, contentHeight)
	m.searchInput.Width = max(m.width/3, 20)
}

// contentHeight is the space left below the header, banner and command bar.
func (m Model) contentHeight() int {
	h := m.height - 3 // header + command bar + status line
	if m.bannerVisible() {
		h--
	}
	return max(h, 5)
}

// setFlash shows a transient status message.
func (m *Model) setFlash(text string, isErr bool) tea.Cmd {
	m.flash.id++
	m.flash.text = text
	m.flash.isErr = isErr
	id := m.flash.id
	return tea.Tick(FlashDuration, func(time.Time) tea.Msg {
		return flashExpiredMsg(id)
	})
}

func (m Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, View: string(m.ctrl.Mode())}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Printf("save prefs: %v", err)
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.bannerVisible() {
		b.WriteString(m.renderUpdateBanner())
		b.WriteString("\n")
	}

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())
	b.WriteString("\n")

	b.WriteString(m.renderStatusLine())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewCourses:
		return m.renderCourses()
	case ViewNotes:
		return m.renderNotes()
	case ViewSettings:
		return m.renderSettings()
	case ViewLogs:
		return m.renderLogs()
	default:
		return ""
	}
}

// renderStatusLine shows the flash message, a spinner, or the search input.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles()
	var parts []string
	if m.busy() {
		parts = append(parts, styles.AccentText.Render(m.spinner.View()))
	}
	switch {
	case m.searching:
		parts = append(parts, m.searchInput.View())
	case m.flash.text != "" && m.flash.isErr:
		parts = append(parts, styles.DangerText.Render(m.flash.text))
	case m.flash.text != "":
		parts = append(parts, styles.SuccessText.Render(m.flash.text))
	case m.ctrl.Query() != "":
		parts = append(parts, styles.MutedText.Render("filter: "+m.ctrl.Query()))
	}
	return lipgloss.NewStyle().Width(m.width).Render(strings.Join(parts, " "))
}

// Messages

type countdownTickMsg time.Time

type updateAvailableMsg update.Info

type flashExpiredMsg int

type catalogMsg struct {
	catalog courses.Catalog
	refresh bool
}

type logLoadedMsg struct {
	lines []string
	err   error
}

// Commands

func loadCatalogCmd(ctx context.Context, src backend.CatalogSource, refresh bool, logger *log.Logger) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, 2*RequestTimeout)
		defer cancel()
		return catalogMsg{catalog: courses.FetchCatalog(ctx, src, refresh, logger), refresh: refresh}
	}
}

// Run starts the Bubble Tea program and the background timers that feed it.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx

	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	m.ctrl.StartCountdownTimer(ctx, m.countdownTick, func() {
		p.Send(countdownTickMsg(time.Now()))
	})
	defer m.ctrl.Close()

	if opts.Checker != nil {
		opts.Checker.Start(ctx, func(info update.Info) {
			p.Send(updateAvailableMsg(info))
		})
		defer opts.Checker.Stop()
	}

	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
