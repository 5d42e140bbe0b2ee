package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// promptModal asks for one line of text. validate runs on enter; its error
// is shown inline and keeps the prompt open.
type promptModal struct {
	title    string
	input    textinput.Model
	validate func(string) error
	submit   func(string) tea.Cmd
	err      string
}

func newPromptModal(title, placeholder string, validate func(string) error, submit func(string) tea.Cmd) *promptModal {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = 200
	input.Width = 40
	input.Focus()
	return &promptModal{title: title, input: input, validate: validate, submit: submit}
}

func (p *promptModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.Escape):
			return p, nil, true
		case key.Matches(k, keys.Confirm):
			value := strings.TrimSpace(p.input.Value())
			if p.validate != nil {
				if err := p.validate(value); err != nil {
					p.err = err.Error()
					return p, nil, false
				}
			}
			return p, p.submit(value), true
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.err = ""
	return p, cmd, false
}

func (p *promptModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(p.title))
	b.WriteString("\n\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")
	if p.err != "" {
		b.WriteString(styles.DangerText.Render(p.err))
	} else {
		b.WriteString(styles.FaintText.Render("enter create · esc cancel"))
	}
	return placeModal(theme, width, height, b.String())
}

// confirmModal asks a yes/no question and runs onConfirm on yes. action
// labels the yes key.
type confirmModal struct {
	title     string
	message   string
	action    string
	onConfirm tea.Cmd
}

func newConfirmModal(title, message, action string, onConfirm tea.Cmd) *confirmModal {
	return &confirmModal{title: title, message: message, action: action, onConfirm: onConfirm}
}

func (c *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case k.String() == "y", key.Matches(k, keys.Confirm):
		return c, c.onConfirm, true
	case k.String() == "n", key.Matches(k, keys.Escape):
		return c, nil, true
	}
	return c, nil, false
}

func (c *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	content := styles.DangerText.Render(c.title) + "\n\n" +
		styles.Text.Render(c.message) + "\n\n" +
		styles.WarningText.Render("y") + styles.MutedText.Render(" "+c.action+"   ") +
		styles.WarningText.Render("n") + styles.MutedText.Render(" cancel")
	return placeModal(theme, width, height, content)
}

// placeModal centers content in a bordered box.
func placeModal(theme Theme, width, height int, content string) string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(min(60, max(width-4, 20)))

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
