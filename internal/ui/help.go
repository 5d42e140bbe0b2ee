package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Courses",
			items: []helpItem{
				{"1/2/3/4", "Active/Past/Hidden/All"},
				{"v", "Cycle view"},
				{"j/k", "Move up/down"},
				{"g/G", "Go to top/bottom"},
				{"space", "Hide/show course"},
				{"/", "Search courses"},
				{"r", "Refresh from Canvas"},
				{"enter", "Open notes"},
				{"s", "Settings"},
			},
		},
		{
			title: "Notes",
			items: []helpItem{
				{"n", "New note"},
				{"enter", "Open note"},
				{"d", "Delete note"},
				{"ctrl+s", "Save note"},
				{"ctrl+p", "Toggle preview"},
				{"esc", "Close note / back"},
			},
		},
		{
			title: "Settings",
			items: []helpItem{
				{"tab", "Next field"},
				{"ctrl+t", "Test connection"},
				{"ctrl+s", "Save settings"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"U/x", "Copy/dismiss update"},
				{"L", "View log"},
				{"T", "Cycle theme"},
				{"h/?", "Toggle help"},
				{"e/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder

	title := styles.Text.Bold(true).Render("Keyboard Shortcuts")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")

		for _, item := range section.items {
			keyStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.theme.Warning)).
				Width(12)
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}

		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(44)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
