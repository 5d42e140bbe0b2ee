package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/notedeck/internal/logs"
)

func loadLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logs.Tail(path, LogViewLines)
		return logLoadedMsg{lines: lines, err: err}
	}
}

func (m *Model) handleLogLoaded(msg logLoadedMsg) {
	if msg.err != nil {
		m.logErr = msg.err.Error()
		m.logViewport.SetContent("")
		return
	}
	m.logErr = ""
	m.logViewport.SetContent(strings.Join(msg.lines, "\n"))
	m.logViewport.GotoBottom()
}

// handleLogsKey scrolls the log viewer.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.currentView = ViewCourses
		return m, nil
	case "r":
		return m, loadLogCmd(m.logPath)
	case "g", "home":
		m.logViewport.GotoTop()
		return m, nil
	case "G", "end":
		m.logViewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// renderLogs renders the notedeck log tail.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	var body string
	switch {
	case m.logErr != "":
		body = styles.DangerText.Render(m.logErr)
	case m.logPath == "":
		body = styles.MutedText.Render("Logging is disabled")
	case m.logViewport.TotalLineCount() <= 1 && strings.TrimSpace(m.logViewport.View()) == "":
		body = styles.MutedText.Render("Log is empty")
	default:
		body = m.logViewport.View()
	}
	title := "Log"
	if m.logPath != "" {
		title = "Log: " + truncateMiddle(m.logPath, max(m.width/2, 20))
	}
	return m.renderTitledBox(title, body, m.width, m.contentHeight(), true)
}
