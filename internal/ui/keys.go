package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding
	Logs       key.Binding

	// Courses
	ViewActive   key.Binding
	ViewPast     key.Binding
	ViewHidden   key.Binding
	ViewAll      key.Binding
	CycleView    key.Binding
	ToggleHidden key.Binding
	Refresh      key.Binding
	Search       key.Binding
	OpenNotes    key.Binding
	Settings     key.Binding

	// Update banner
	CopyUpdate    key.Binding
	DismissUpdate key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Notes
	NewNote     key.Binding
	DeleteNote  key.Binding
	SaveNote    key.Binding
	PreviewNote key.Binding

	// Settings
	NextField      key.Binding
	TestConnection key.Binding
	SaveSettings   key.Binding

	// Search/input
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "View log"),
		),

		// Courses
		ViewActive: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Active courses"),
		),
		ViewPast: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Past courses"),
		),
		ViewHidden: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Hidden courses"),
		),
		ViewAll: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "All courses"),
		),
		CycleView: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Cycle view"),
		),
		ToggleHidden: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Hide/show course"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh from Canvas"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search courses"),
		),
		OpenNotes: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open notes"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Settings"),
		),

		// Update banner
		CopyUpdate: key.NewBinding(
			key.WithKeys("U"),
			key.WithHelp("U", "Copy download link"),
		),
		DismissUpdate: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Dismiss update"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("ctrl+u", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("ctrl+d", "Page down"),
		),

		// Notes
		NewNote: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New note"),
		),
		DeleteNote: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Delete note"),
		),
		SaveNote: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Save note"),
		),
		PreviewNote: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "Toggle preview"),
		),

		// Settings
		NextField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Next field"),
		),
		TestConnection: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "Test connection"),
		),
		SaveSettings: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Save settings"),
		),

		// Search/input
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ViewActive, k.ViewPast, k.ViewHidden, k.ViewAll, k.CycleView},
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.ToggleHidden, k.Refresh, k.Search, k.OpenNotes, k.Settings},
		{k.NewNote, k.DeleteNote, k.SaveNote, k.PreviewNote},
		{k.CopyUpdate, k.DismissUpdate},
		{k.CycleTheme, k.Logs, k.Help, k.Quit},
	}
}
