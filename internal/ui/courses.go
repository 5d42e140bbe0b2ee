package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/notedeck/internal/backend"
	"github.com/five82/notedeck/internal/courses"
)

// handleCoursesKey processes keyboard input for the course list.
func (m Model) handleCoursesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ViewActive):
		return m.setMode(courses.ModeActive)
	case key.Matches(msg, m.keys.ViewPast):
		return m.setMode(courses.ModePast)
	case key.Matches(msg, m.keys.ViewHidden):
		return m.setMode(courses.ModeHidden)
	case key.Matches(msg, m.keys.ViewAll):
		return m.setMode(courses.ModeAll)
	case key.Matches(msg, m.keys.CycleView):
		return m.setMode(m.ctrl.Mode().Next())

	case key.Matches(msg, m.keys.ToggleHidden):
		course := m.selectedCourse()
		if course == nil {
			return m, nil
		}
		hidden := m.ctrl.ToggleCourseVisibility(course.ID)
		m.clampSelection()
		verb := "shown"
		if hidden {
			verb = "hidden"
		}
		flash := m.setFlash(fmt.Sprintf("%s %s", course.DisplayName(), verb), false)
		return m, flash

	case key.Matches(msg, m.keys.Refresh):
		if m.refreshing {
			return m, nil
		}
		m.refreshing = true
		return m, tea.Batch(loadCatalogCmd(m.ctx, m.catalog, true, m.logger), m.spinner.Tick)

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.ctrl.Query())
		m.searchInput.CursorEnd()
		focus := m.searchInput.Focus()
		return m, focus

	case key.Matches(msg, m.keys.OpenNotes):
		course := m.selectedCourse()
		if course == nil {
			return m, nil
		}
		return m.openNotes(*course)

	case key.Matches(msg, m.keys.Settings):
		return m.openSettings()

	case key.Matches(msg, m.keys.Escape):
		if m.ctrl.Query() != "" {
			m.ctrl.Search("")
			m.clampSelection()
		}
		return m, nil
	}

	m.moveSelection(msg, len(m.view.courses))
	return m, nil
}

// handleSearchKey edits the live course search.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.ctrl.Search("")
		m.clampSelection()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if value := m.searchInput.Value(); value != m.ctrl.Query() {
		m.ctrl.Search(value)
		m.selectedRow = 0
	}
	return m, cmd
}

func (m Model) setMode(mode courses.Mode) (tea.Model, tea.Cmd) {
	m.ctrl.SetView(mode)
	m.selectedRow = 0
	m.savePrefs()
	return m, nil
}

// handleCatalog applies a finished catalog load.
func (m Model) handleCatalog(msg catalogMsg) (tea.Model, tea.Cmd) {
	m.refreshing = false
	cat := msg.catalog

	var selectedID int64
	if course := m.selectedCourse(); course != nil {
		selectedID = course.ID
	}
	m.ctrl.ApplyCatalog(cat)
	if !m.ctrl.Ready() {
		m.ctrl.MarkReady()
	}
	m.restoreSelection(selectedID)

	if m.store != nil {
		if cat.Err != nil {
			m.store.Update(nil, 0, cat.Err)
		} else {
			m.store.Update(&cat.Config, len(cat.Courses), nil)
		}
		m.snapshot = m.store.Snapshot()
	}

	switch {
	case cat.Err != nil:
		flash := m.setFlash("Load failed: "+firstLine(cat.Err.Error()), true)
		return m, flash
	case msg.refresh:
		flash := m.setFlash(fmt.Sprintf("Loaded %d courses", len(cat.Courses)), false)
		return m, flash
	}
	return m, nil
}

// selectedCourse returns the highlighted course, if any.
func (m Model) selectedCourse() *backend.Course {
	list := m.view.courses
	if len(list) == 0 || m.selectedRow < 0 || m.selectedRow >= len(list) {
		return nil
	}
	course := list[m.selectedRow]
	return &course
}

func (m *Model) clampSelection() {
	n := len(m.view.courses)
	if m.selectedRow >= n {
		m.selectedRow = n - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

// restoreSelection keeps the cursor on the same course across reloads.
func (m *Model) restoreSelection(id int64) {
	if id != 0 {
		for i, course := range m.view.courses {
			if course.ID == id {
				m.selectedRow = i
				return
			}
		}
	}
	m.clampSelection()
}

// moveSelection applies list navigation keys to selectedRow.
func (m *Model) moveSelection(msg tea.KeyMsg, count int) {
	m.selectedRow = moveIndex(m.keys, msg, m.selectedRow, count, m.contentHeight()-2)
}

func moveIndex(keys keyMap, msg tea.KeyMsg, index, count, page int) int {
	if count == 0 {
		return 0
	}
	page = max(page, 1)
	switch {
	case key.Matches(msg, keys.Down):
		index++
	case key.Matches(msg, keys.Up):
		index--
	case key.Matches(msg, keys.Top):
		index = 0
	case key.Matches(msg, keys.Bottom):
		index = count - 1
	case key.Matches(msg, keys.PageDown):
		index += page
	case key.Matches(msg, keys.PageUp):
		index -= page
	}
	return min(max(index, 0), count-1)
}

// renderCourses renders the course list with a detail pane.
func (m Model) renderCourses() string {
	styles := m.theme.Styles()
	contentHeight := m.contentHeight()

	if !m.ctrl.Ready() {
		msg := styles.MutedText.Render("Loading courses...")
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, msg)
	}

	title := fmt.Sprintf("%s Courses (%d)", m.ctrl.Mode().Label(), len(m.view.courses))

	if m.width < LayoutCompactWidth {
		content := m.renderCourseTable(m.width-2, m.theme.FocusBg)
		return m.renderTitledBox(title, content, m.width, contentHeight, true)
	}

	tableWidth := m.width * 55 / 100
	if m.width >= LayoutExtraWideWidth {
		tableWidth = m.width * 45 / 100
	}
	detailWidth := m.width - tableWidth

	tablePane := m.renderTitledBox(title, m.renderCourseTable(tableWidth-2, m.theme.FocusBg), tableWidth, contentHeight, true)

	var detail string
	if course := m.selectedCourse(); course != nil {
		detail = m.renderCourseDetail(*course, detailWidth-4)
	} else {
		detail = styles.MutedText.Background(lipgloss.Color(m.theme.SurfaceAlt)).Render(m.emptyMessage())
	}
	detailPane := m.renderTitledBox("Details", detail, detailWidth, contentHeight, false)

	return lipgloss.JoinHorizontal(lipgloss.Top, tablePane, detailPane)
}

func (m Model) emptyMessage() string {
	if m.ctrl.Query() != "" {
		return "No courses match the search"
	}
	switch m.ctrl.Mode() {
	case courses.ModeHidden:
		return "No hidden courses"
	case courses.ModePast:
		return "No past courses"
	default:
		if !m.ctrl.Config().Configured() {
			return "No courses. Press s to set up Canvas."
		}
		return "No courses"
	}
}

// renderCourseTable renders the visible courses as styled rows, scrolled so
// the selection stays on screen.
func (m Model) renderCourseTable(width int, bgColor string) string {
	list := m.view.courses
	if len(list) == 0 {
		return newPainter(bgColor).Render(m.emptyMessage(), m.theme.Styles().MutedText)
	}

	rows := max(m.contentHeight()-2, 1)
	start := 0
	if m.selectedRow >= rows {
		start = m.selectedRow - rows + 1
	}
	end := min(start+rows, len(list))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		selected := i == m.selectedRow
		rowBg := bgColor
		if selected {
			rowBg = m.theme.SelectionBg
		}
		content := m.formatCourseRow(list[i], width, rowBg, selected)
		lines = append(lines, lipgloss.NewStyle().
			Background(lipgloss.Color(rowBg)).
			Width(width).
			Render(content))
	}
	return strings.Join(lines, "\n")
}

// formatCourseRow formats one row: "◌ Name · CODE   3 days left".
func (m Model) formatCourseRow(course backend.Course, width int, bgColor string, selected bool) string {
	bg := newPainter(bgColor)
	countdown := m.countdownFor(course)

	marker := " "
	if m.ctrl.IsHidden(course.ID) {
		marker = "◌"
	}

	label := ""
	if countdown.HasTimer() {
		label = countdown.Label
	}
	code := strings.TrimSpace(course.CourseCode)
	nameWidth := max(width-plainWidth(label)-plainWidth(code)-8, 10)

	var markerStyle, nameStyle, codeStyle, labelStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		markerStyle, nameStyle, codeStyle, labelStyle = selText, selText.Bold(true), selText, selText
	} else {
		styles := m.theme.Styles()
		markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.CountdownColors[keyHidden]))
		nameStyle = styles.Text
		codeStyle = styles.MutedText
		labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.CountdownColor(countdown)))
	}

	left := bg.Render(marker, markerStyle) + bg.Pad(1) +
		bg.Render(truncate(course.DisplayName(), nameWidth), nameStyle)
	if code != "" {
		left += bg.Render(" · ", m.theme.Styles().FaintText) + bg.Render(code, codeStyle)
	}
	if label == "" {
		return left
	}
	gap := max(width-lipgloss.Width(left)-plainWidth(label)-1, 1)
	return left + bg.Pad(gap) + bg.Render(label, labelStyle)
}

// countdownFor prefers the label pushed by the last refresh so rows and
// detail agree between ticks.
func (m Model) countdownFor(course backend.Course) courses.Countdown {
	if c, ok := m.view.countdowns[course.ID]; ok {
		return c
	}
	return m.ctrl.CalculateTimeRemaining(course)
}

// renderCourseDetail renders the detail pane for one course.
func (m Model) renderCourseDetail(course backend.Course, width int) string {
	bgColor := m.theme.SurfaceAlt
	bg := newPainter(bgColor)
	styles := m.theme.Styles()
	countdown := m.countdownFor(course)

	row := func(label, value string, style lipgloss.Style) string {
		return bg.Render(padRight(label, 10), styles.MutedText) + bg.Render(truncate(value, width-11), style)
	}

	badgeKey := countdownKey(countdown)
	if m.ctrl.IsHidden(course.ID) {
		badgeKey = keyHidden
	}
	badge := styles.BadgeStyle(badgeKey).Render(strings.ToUpper(badgeKey))

	lines := []string{
		bg.Render(truncate(course.DisplayName(), max(width-plainWidth(badgeKey)-3, 1)), styles.Text.Bold(true)) +
			bg.Pad(1) + badge,
		"",
		row("Code", fallback(course.CourseCode, "-"), styles.Text),
		row("Term", course.TermLabel(), styles.Text),
		row("Course ID", fmt.Sprintf("%d", course.ID), styles.Text),
	}
	if state := strings.TrimSpace(course.WorkflowState); state != "" {
		lines = append(lines, row("State", state, styles.Text))
	}
	if start, ok := course.StartTime(); ok {
		lines = append(lines, row("Starts", formatDate(start), styles.Text))
	}
	if end, ok := course.EndTime(); ok {
		lines = append(lines, row("Ends", formatDate(end), styles.Text))
	}
	countdownStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.CountdownColor(countdown)))
	lines = append(lines, row("Remaining", countdown.Label, countdownStyle))

	visibility := "Visible"
	visibilityStyle := styles.SuccessText
	if m.ctrl.IsHidden(course.ID) {
		visibility = "Hidden"
		visibilityStyle = styles.WarningText
	}
	lines = append(lines, row("Status", visibility, visibilityStyle))
	if m.ctrl.IsCourseExpired(course) {
		lines = append(lines, row("", "Course has ended", styles.DangerText))
	}

	lines = append(lines, "",
		bg.Render("enter", styles.WarningText)+bg.Render(" notes  ", styles.MutedText)+
			bg.Render("space", styles.WarningText)+bg.Render(" hide/show", styles.MutedText))
	return strings.Join(lines, "\n")
}

// renderTitledBox renders content in a box with the title embedded in the top border.
// When focused is true, uses BorderFocus color and FocusBg background.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := newPainter(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 1)
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := plainWidth(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	paddedLines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		paddedLines = append(paddedLines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(paddedLines, "\n") + "\n" + bottomBorder
}

func formatDate(t time.Time) string {
	return t.Local().Format("Mon Jan 2, 2006 15:04")
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
