package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/notedeck/internal/backend"
)

const (
	fieldURL = iota
	fieldToken
)

// settingsState holds the Canvas credential form.
type settingsState struct {
	inputs  [2]textinput.Model
	focus   int
	pending bool
	message string
	isErr   bool
}

func newSettingsState() settingsState {
	url := textinput.New()
	url.Placeholder = "https://school.instructure.com"
	url.CharLimit = 200
	url.Width = 50

	token := textinput.New()
	token.Placeholder = "Canvas access token"
	token.EchoMode = textinput.EchoPassword
	token.EchoCharacter = '•'
	token.CharLimit = 200
	token.Width = 50

	return settingsState{inputs: [2]textinput.Model{url, token}}
}

func (s settingsState) credentials() backend.Credentials {
	return backend.Credentials{
		CanvasURL:   strings.TrimSpace(s.inputs[fieldURL].Value()),
		CanvasToken: strings.TrimSpace(s.inputs[fieldToken].Value()),
	}
}

type settingsAction string

const (
	actionTest settingsAction = "test"
	actionSave settingsAction = "save"
)

type settingsResultMsg struct {
	action settingsAction
	err    error
}

func (m Model) settingsCmd(action settingsAction, creds backend.Credentials) tea.Cmd {
	api, parent := m.settingsAPI, m.ctx
	return func() tea.Msg {
		if api == nil {
			return settingsResultMsg{action: action, err: errNoBackend}
		}
		ctx, cancel := context.WithTimeout(parent, 2*RequestTimeout)
		defer cancel()
		var err error
		if action == actionSave {
			err = api.SaveConfig(ctx, creds)
		} else {
			err = api.TestConnection(ctx, creds)
		}
		return settingsResultMsg{action: action, err: err}
	}
}

// openSettings shows the credential form prefilled with the known URL.
func (m Model) openSettings() (tea.Model, tea.Cmd) {
	m.currentView = ViewSettings
	m.settings.message = ""
	m.settings.isErr = false
	if m.settings.inputs[fieldURL].Value() == "" {
		m.settings.inputs[fieldURL].SetValue(m.ctrl.Config().CanvasURL)
	}
	m.settings.focus = fieldURL
	m.settings.inputs[fieldToken].Blur()
	focus := m.settings.inputs[fieldURL].Focus()
	return m, focus
}

// handleSettingsKey processes keys in the settings form.
func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.settings.inputs[m.settings.focus].Blur()
		m.currentView = ViewCourses
		return m, nil

	case key.Matches(msg, m.keys.NextField), msg.Type == tea.KeyUp, msg.Type == tea.KeyDown:
		m.settings.inputs[m.settings.focus].Blur()
		m.settings.focus = (m.settings.focus + 1) % len(m.settings.inputs)
		focus := m.settings.inputs[m.settings.focus].Focus()
		return m, focus

	case key.Matches(msg, m.keys.TestConnection):
		return m.submitSettings(actionTest)

	case key.Matches(msg, m.keys.SaveSettings), msg.Type == tea.KeyEnter:
		return m.submitSettings(actionSave)
	}

	var cmd tea.Cmd
	i := m.settings.focus
	m.settings.inputs[i], cmd = m.settings.inputs[i].Update(msg)
	return m, cmd
}

func (m Model) submitSettings(action settingsAction) (tea.Model, tea.Cmd) {
	if m.settings.pending {
		return m, nil
	}
	creds := m.settings.credentials()
	if creds.CanvasURL == "" || creds.CanvasToken == "" {
		m.settings.message = "Please enter both the Canvas URL and an access token."
		m.settings.isErr = true
		return m, nil
	}
	m.settings.pending = true
	m.settings.isErr = false
	if action == actionSave {
		m.settings.message = "Saving..."
	} else {
		m.settings.message = "Testing connection..."
	}
	return m, tea.Batch(m.settingsCmd(action, creds), m.spinner.Tick)
}

// handleSettingsResult reports a finished test or save. A successful save
// reloads the catalog with the new credentials.
func (m Model) handleSettingsResult(msg settingsResultMsg) (tea.Model, tea.Cmd) {
	m.settings.pending = false
	if msg.err != nil {
		m.settings.isErr = true
		if msg.action == actionSave {
			m.settings.message = "Save failed: " + firstLine(msg.err.Error())
		} else {
			m.settings.message = "Connection failed: " + firstLine(msg.err.Error())
		}
		return m, nil
	}

	m.settings.isErr = false
	if msg.action == actionTest {
		m.settings.message = "Connection successful."
		return m, nil
	}
	m.settings.message = "Settings saved. Loading courses..."
	m.settings.inputs[fieldToken].SetValue("")
	m.refreshing = true
	return m, tea.Batch(loadCatalogCmd(m.ctx, m.catalog, true, m.logger), m.spinner.Tick)
}

// renderSettings renders the credential form.
func (m Model) renderSettings() string {
	styles := m.theme.Styles()
	labels := [2]string{"Canvas URL", "Access token"}

	var b strings.Builder
	cfg := m.ctrl.Config()
	switch {
	case cfg.Configured():
		b.WriteString(styles.SuccessText.Render("Canvas is configured"))
		b.WriteString(styles.MutedText.Render(" (" + cfg.CanvasURL + ")"))
	case strings.TrimSpace(cfg.CanvasURL) != "":
		b.WriteString(styles.WarningText.Render("No access token saved"))
	default:
		b.WriteString(styles.WarningText.Render("Canvas is not configured"))
	}
	b.WriteString("\n\n")

	for i, input := range m.settings.inputs {
		label := styles.MutedText.Render(padRight(labels[i], 14))
		if i == m.settings.focus {
			label = styles.AccentText.Bold(true).Render(padRight(labels[i], 14))
		}
		b.WriteString(label)
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	if m.settings.message != "" {
		if m.settings.isErr {
			b.WriteString(styles.DangerText.Render(m.settings.message))
		} else {
			b.WriteString(styles.InfoText.Render(m.settings.message))
		}
		b.WriteString("\n\n")
	}
	b.WriteString(styles.FaintText.Render("Create a token in Canvas under Account > Settings > New Access Token."))

	return m.renderTitledBox("Settings", b.String(), m.width, m.contentHeight(), true)
}
