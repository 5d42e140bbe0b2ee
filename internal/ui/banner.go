package ui

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

func (m Model) bannerVisible() bool {
	return m.update != nil && m.update.HasUpdate && !m.updateDismissed
}

// renderUpdateBanner renders the one line new-version prompt.
func (m Model) renderUpdateBanner() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := newPainter(m.theme.FocusBg)

	text := bg.Render("Update available:", styles.WarningText.Bold(true)) + bg.Pad(1) +
		bg.Render(m.update.Latest, styles.Text) + bg.Pad(1) +
		bg.Render("(current "+m.update.Current+")", styles.MutedText) + bg.Pad(2) +
		bg.Render("U", styles.AccentText) + bg.Fill(":") + bg.Render("copy link", styles.MutedText) + bg.Pad(2) +
		bg.Render("x", styles.AccentText) + bg.Fill(":") + bg.Render("dismiss", styles.MutedText)

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.FocusBg)).
		Width(m.width).
		MaxWidth(m.width).
		Render(text)
}

// copyUpdateLink puts the download URL on the clipboard.
func (m Model) copyUpdateLink() (tea.Model, tea.Cmd) {
	url := m.update.DownloadURL
	if err := clipboardWrite(url); err != nil {
		m.logger.Printf("copy update link: %v", err)
		flash := m.setFlash("Download at "+url, false)
		return m, flash
	}
	flash := m.setFlash("Download link copied to clipboard", false)
	return m, flash
}
