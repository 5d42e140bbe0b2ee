package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/notedeck/internal/backend"
	"github.com/five82/notedeck/internal/notes"
)

// notesState holds the notes view for one course.
type notesState struct {
	course   string
	files    []backend.FileInfo
	selected int
	err      string

	loading bool // list or open in flight
	pending bool // save, create or delete in flight

	editing bool
	preview bool
	dirty   bool
	saved   string // content as last loaded or saved
	editor  textarea.Model

	previewPort viewport.Model

	listWidth int
}

func newNotesState() notesState {
	editor := textarea.New()
	editor.Placeholder = "Start typing..."
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.Prompt = ""
	return notesState{
		editor:      editor,
		previewPort: viewport.New(0, 0),
	}
}

func (n *notesState) resize(width, height int) {
	n.listWidth = max(width*30/100, 24)
	editorWidth := max(width-n.listWidth-4, 20)
	n.editor.SetWidth(editorWidth)
	n.editor.SetHeight(max(height-2, 3))
	n.previewPort.Width = editorWidth
	n.previewPort.Height = max(height-2, 3)
}

func (n notesState) currentFile() string {
	if n.selected < 0 || n.selected >= len(n.files) {
		return ""
	}
	return n.files[n.selected].Name
}

// Messages

type notesListMsg struct {
	course string
	files  []backend.FileInfo
	err    error
}

type noteOpenedMsg struct {
	course  string
	name    string
	content string
	err     error
}

type noteSavedMsg struct {
	target  notes.Context
	content string
	err     error
}

type noteCreatedMsg struct {
	course string
	name   string
	err    error
}

type noteDeletedMsg struct {
	course string
	name   string
	err    error
}

type createNoteRequestMsg struct{ name string }

type discardNoteMsg struct{}

type deleteNoteRequestMsg struct {
	course string
	name   string
}

// Commands

func (m Model) listNotesCmd(course string) tea.Cmd {
	svc, parent := m.notesSvc, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, RequestTimeout)
		defer cancel()
		files, err := svc.List(ctx, course)
		return notesListMsg{course: course, files: files, err: err}
	}
}

func (m Model) openNoteCmd(course, name string) tea.Cmd {
	svc, parent := m.notesSvc, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, RequestTimeout)
		defer cancel()
		content, err := svc.Open(ctx, course, name)
		return noteOpenedMsg{course: course, name: name, content: content, err: err}
	}
}

func (m Model) saveNoteCmd(target notes.Context, content string) tea.Cmd {
	svc, parent := m.notesSvc, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, RequestTimeout)
		defer cancel()
		return noteSavedMsg{target: target, content: content, err: svc.Save(ctx, target, content)}
	}
}

func (m Model) createNoteCmd(course, name string) tea.Cmd {
	svc, parent := m.notesSvc, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, RequestTimeout)
		defer cancel()
		created, err := svc.Create(ctx, course, name, "")
		return noteCreatedMsg{course: course, name: created, err: err}
	}
}

func (m Model) deleteNoteCmd(course, name string) tea.Cmd {
	svc, parent := m.notesSvc, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, RequestTimeout)
		defer cancel()
		return noteDeletedMsg{course: course, name: name, err: svc.Delete(ctx, course, name)}
	}
}

// openNotes switches to the notes view for course.
func (m Model) openNotes(course backend.Course) (tea.Model, tea.Cmd) {
	name := course.DisplayName()
	editor, port, width := m.notes.editor, m.notes.previewPort, m.notes.listWidth
	m.notes = notesState{course: name, loading: true, editor: editor, previewPort: port, listWidth: width}
	m.notes.editor.Reset()
	m.currentView = ViewNotes
	return m, tea.Batch(m.listNotesCmd(name), m.spinner.Tick)
}

// leaveEditor clears the editing context and returns focus to the file list.
func (m *Model) leaveEditor() {
	m.notesSvc.Close()
	m.notes.editing = false
	m.notes.preview = false
	m.notes.dirty = false
	m.notes.editor.Blur()
	m.notes.editor.Reset()
}

// handleNotesListKey processes keys while the file list is focused.
func (m Model) handleNotesListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.leaveEditor()
		m.currentView = ViewCourses
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.notes.loading {
			return m, nil
		}
		m.notes.loading = true
		return m, tea.Batch(m.listNotesCmd(m.notes.course), m.spinner.Tick)

	case key.Matches(msg, m.keys.NewNote):
		if m.notes.pending {
			return m, nil
		}
		m.modal = newPromptModal("New note", "File name", func(value string) error {
			_, err := notes.NormalizeFilename(value)
			return err
		}, func(value string) tea.Cmd {
			return func() tea.Msg { return createNoteRequestMsg{name: value} }
		})
		return m, textinput.Blink

	case key.Matches(msg, m.keys.DeleteNote):
		name := m.notes.currentFile()
		if m.notes.pending || name == "" {
			return m, nil
		}
		course := m.notes.course
		m.modal = newConfirmModal("Delete note",
			fmt.Sprintf("Delete %q from %s?", name, course), "delete",
			func() tea.Msg { return deleteNoteRequestMsg{course: course, name: name} })
		return m, nil

	case key.Matches(msg, m.keys.OpenNotes):
		name := m.notes.currentFile()
		if name == "" || m.notes.loading {
			return m, nil
		}
		m.notes.loading = true
		return m, tea.Batch(m.openNoteCmd(m.notes.course, name), m.spinner.Tick)
	}

	m.notes.selected = moveIndex(m.keys, msg, m.notes.selected, len(m.notes.files), m.contentHeight()-2)
	return m, nil
}

// handleEditorKey processes keys while a note is open.
func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		// The editor stays open until an in-flight save reports back.
		if m.notes.pending {
			return m, nil
		}
		if m.notes.dirty {
			cur, _ := m.notesSvc.Current()
			m.modal = newConfirmModal("Discard changes",
				fmt.Sprintf("Close %s without saving?", cur.File), "discard",
				func() tea.Msg { return discardNoteMsg{} })
			return m, nil
		}
		m.leaveEditor()
		return m, nil

	case key.Matches(msg, m.keys.SaveNote):
		if m.notes.pending {
			return m, nil
		}
		cur, ok := m.notesSvc.Current()
		if !ok {
			flash := m.setFlash("No note is open", true)
			return m, flash
		}
		m.notes.pending = true
		cmd := tea.Batch(m.saveNoteCmd(cur, m.notes.editor.Value()), m.spinner.Tick)
		return m, cmd

	case key.Matches(msg, m.keys.PreviewNote):
		m.notes.preview = !m.notes.preview
		if m.notes.preview {
			m.notes.editor.Blur()
			m.notes.previewPort.SetContent(m.renderPreview())
			m.notes.previewPort.GotoTop()
			return m, nil
		}
		focus := m.notes.editor.Focus()
		return m, focus
	}

	var cmd tea.Cmd
	if m.notes.preview {
		m.notes.previewPort, cmd = m.notes.previewPort.Update(msg)
		return m, cmd
	}
	m.notes.editor, cmd = m.notes.editor.Update(msg)
	m.notes.dirty = m.notes.editor.Value() != m.notes.saved
	return m, cmd
}

// handleNotesMsg applies note request results.
func (m Model) handleNotesMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case notesListMsg:
		if msg.course != m.notes.course {
			return m, nil
		}
		m.notes.loading = false
		if msg.err != nil {
			m.notes.files = nil
			m.notes.err = "Could not load notes: " + firstLine(msg.err.Error())
			return m, nil
		}
		m.notes.err = ""
		m.notes.files = msg.files
		m.notes.selected = min(max(m.notes.selected, 0), max(len(msg.files)-1, 0))
		return m, nil

	case noteOpenedMsg:
		m.notes.loading = false
		if m.currentView != ViewNotes || msg.course != m.notes.course {
			m.notesSvc.Close()
			return m, nil
		}
		if msg.err != nil {
			flash := m.setFlash("Could not open "+msg.name+": "+firstLine(msg.err.Error()), true)
			return m, flash
		}
		m.notes.editor.SetValue(msg.content)
		m.notes.saved = msg.content
		m.notes.dirty = false
		m.notes.editing = true
		m.notes.preview = false
		focus := m.notes.editor.Focus()
		return m, focus

	case noteSavedMsg:
		m.notes.pending = false
		if msg.err != nil {
			if errors.Is(msg.err, notes.ErrNoFile) {
				flash := m.setFlash("No note is open", true)
				return m, flash
			}
			flash := m.setFlash("Save failed: "+firstLine(msg.err.Error()), true)
			return m, flash
		}
		flash := m.setFlash("Saved "+msg.target.File, false)
		if cur, open := m.notesSvc.Current(); !open || cur != msg.target {
			return m, flash
		}
		m.notes.saved = msg.content
		m.notes.dirty = m.notes.editor.Value() != msg.content
		return m, flash

	case discardNoteMsg:
		if m.notes.editing && !m.notes.pending {
			m.leaveEditor()
		}
		return m, nil

	case createNoteRequestMsg:
		if m.notes.pending {
			return m, nil
		}
		m.notes.pending = true
		return m, tea.Batch(m.createNoteCmd(m.notes.course, msg.name), m.spinner.Tick)

	case noteCreatedMsg:
		m.notes.pending = false
		if msg.err != nil {
			flash := m.setFlash("Create failed: "+firstLine(msg.err.Error()), true)
			return m, flash
		}
		if msg.course != m.notes.course {
			return m, nil
		}
		m.notes.files = appendFile(m.notes.files, msg.name)
		m.notes.selected = indexOfFile(m.notes.files, msg.name)
		m.notes.loading = true
		flash := m.setFlash("Created "+msg.name, false)
		return m, tea.Batch(flash, m.openNoteCmd(msg.course, msg.name))

	case deleteNoteRequestMsg:
		if m.notes.pending {
			return m, nil
		}
		m.notes.pending = true
		return m, tea.Batch(m.deleteNoteCmd(msg.course, msg.name), m.spinner.Tick)

	case noteDeletedMsg:
		m.notes.pending = false
		if msg.err != nil {
			flash := m.setFlash("Delete failed: "+firstLine(msg.err.Error()), true)
			return m, flash
		}
		if _, open := m.notesSvc.Current(); !open && m.notes.editing {
			m.notes.editing = false
			m.notes.editor.Blur()
			m.notes.editor.Reset()
		}
		if msg.course == m.notes.course {
			m.notes.loading = true
			cmd := tea.Batch(m.setFlash("Deleted "+msg.name, false), m.listNotesCmd(m.notes.course))
			return m, cmd
		}
		flash := m.setFlash("Deleted "+msg.name, false)
		return m, flash
	}
	return m, nil
}

func appendFile(files []backend.FileInfo, name string) []backend.FileInfo {
	if indexOfFile(files, name) >= 0 {
		return files
	}
	return append(files, backend.FileInfo{Name: name})
}

func indexOfFile(files []backend.FileInfo, name string) int {
	for i, f := range files {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func (m Model) renderPreview() string {
	value := m.notes.editor.Value()
	if strings.TrimSpace(value) == "" {
		return m.theme.Styles().MutedText.Render("Nothing to preview")
	}
	return notes.Render(value, m.notes.previewPort.Width)
}

// renderNotes renders the file list beside the editor or preview.
func (m Model) renderNotes() string {
	height := m.contentHeight()
	listWidth := min(max(m.notes.listWidth, 24), m.width)
	editorWidth := m.width - listWidth

	list := m.renderTitledBox("Notes: "+m.notes.course, m.renderNoteList(listWidth-2), listWidth, height, !m.notes.editing)
	if editorWidth < 10 {
		return list
	}

	title := "Editor"
	var body string
	cur, open := m.notesSvc.Current()
	switch {
	case !m.notes.editing || !open:
		body = m.theme.Styles().MutedText.Render("Select a note and press enter")
	case m.notes.preview:
		title = "Preview: " + cur.File
		body = m.notes.previewPort.View()
	default:
		title = cur.File
		if m.notes.dirty {
			title += " *"
		}
		body = m.notes.editor.View()
	}
	editor := m.renderTitledBox(title, body, editorWidth, height, m.notes.editing)
	return lipgloss.JoinHorizontal(lipgloss.Top, list, editor)
}

func (m Model) renderNoteList(width int) string {
	styles := m.theme.Styles()
	bgColor := m.theme.FocusBg
	if m.notes.editing {
		bgColor = m.theme.SurfaceAlt
	}
	bg := newPainter(bgColor)

	if m.notes.err != "" {
		return bg.Render(truncate(m.notes.err, width), styles.DangerText)
	}
	if len(m.notes.files) == 0 {
		if m.notes.loading {
			return bg.Render("Loading...", styles.MutedText)
		}
		return bg.Render("No notes yet. Press n to create one.", styles.MutedText)
	}

	cur, open := m.notesSvc.Current()
	lines := make([]string, 0, len(m.notes.files)+8)
	for i, f := range m.notes.files {
		name := truncate(f.Name, width-2)
		if open && cur.File == f.Name {
			name = "● " + name
		} else {
			name = "  " + name
		}
		if i == m.notes.selected {
			lines = append(lines, lipgloss.NewStyle().
				Background(lipgloss.Color(m.theme.SelectionBg)).
				Foreground(lipgloss.Color(m.theme.SelectionText)).
				Width(width).
				Render(name))
			continue
		}
		lines = append(lines, bg.Render(name, styles.Text))
	}

	if m.notes.editing {
		if outline := notes.Outline(m.notes.editor.Value()); len(outline) > 0 {
			lines = append(lines, "", bg.Render("Outline", styles.AccentText.Bold(true)))
			for _, h := range outline {
				indent := strings.Repeat("  ", max(h.Level-1, 0))
				lines = append(lines, bg.Render(truncate(indent+h.Title, width), styles.MutedText))
			}
		}
	}
	return strings.Join(lines, "\n")
}
