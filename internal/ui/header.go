package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/notedeck/internal/courses"
)

const logoText = "notedeck"

// renderHeader renders the status bar: logo, backend state, mode and counts.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newPainter(m.theme.Surface)
	compact := m.width < LayoutCompactWidth
	sep := bg.Pad(2)

	parts := []string{bg.Render(logoText, styles.Logo)}
	parts = append(parts, m.connectionIndicator(styles, bg, compact))

	parts = append(parts,
		bg.Render("View:", styles.MutedText)+bg.Pad(1)+
			bg.Render(m.ctrl.Mode().Label(), styles.AccentText))

	if m.ctrl.Ready() {
		if m.view.status != "" {
			parts = append(parts, bg.Render(m.view.status, styles.Text))
		}
	} else {
		parts = append(parts, bg.Render("Loading courses...", styles.WarningText))
	}

	if hidden := len(m.ctrl.Hidden()); hidden > 0 && !compact && m.ctrl.Mode() != courses.ModeHidden {
		parts = append(parts, bg.Render(fmt.Sprintf("◌ %d", hidden), styles.FaintText))
	}

	if m.busy() {
		parts = append(parts, bg.Render(m.spinner.View(), styles.AccentText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		MaxWidth(m.width).
		Render(strings.Join(parts, sep))
}

// connectionIndicator summarizes the last catalog load.
func (m Model) connectionIndicator(styles Styles, bg painter, compact bool) string {
	snap := m.snapshot
	switch {
	case snap.IsOffline():
		return bg.Render("● OFFLINE", styles.DangerText.Bold(true))
	case snap.LastError != nil:
		label := "● ERROR"
		if !compact {
			label += " " + truncate(firstLine(snap.LastError.Error()), 40)
		}
		return bg.Render(label, styles.WarningText)
	case snap.HasConfig && snap.Config.Configured():
		if compact {
			return bg.Render("● ON", styles.SuccessText)
		}
		host := strings.TrimPrefix(strings.TrimPrefix(snap.Config.CanvasURL, "https://"), "http://")
		return bg.Render("● "+truncate(host, 32), styles.SuccessText)
	case snap.HasConfig:
		return bg.Render("● NOT CONFIGURED", styles.WarningText.Bold(true))
	default:
		return bg.Render("● CONNECTING", styles.MutedText)
	}
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newPainter(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewNotes:
		if m.notes.editing {
			preview := "Preview"
			if m.notes.preview {
				preview = "Edit"
			}
			commands = []cmd{
				{"ctrl+s", "Save"},
				{"ctrl+p", preview},
				{"esc", "Close"},
			}
		} else {
			commands = []cmd{
				{"enter", "Open"},
				{"n", "New"},
				{"d", "Delete"},
				{"r", "Reload"},
				{"esc", "Courses"},
				{"?", "More"},
			}
		}
	case ViewSettings:
		commands = []cmd{
			{"tab", "Field"},
			{"ctrl+t", "Test"},
			{"ctrl+s", "Save"},
			{"esc", "Back"},
		}
	case ViewLogs:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"g/G", "Top/Bottom"},
			{"r", "Reload"},
			{"esc", "Courses"},
		}
	default:
		commands = []cmd{
			{"1-4", "View"},
			{"space", "Hide/Show"},
			{"enter", "Notes"},
			{"/", "Search"},
			{"r", "Refresh"},
			{"s", "Settings"},
			{"L", "Log"},
			{"?", "More"},
		}
	}

	colon := bg.Fill(":")
	sep := bg.Pad(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(strings.Join(segments, sep))
}
