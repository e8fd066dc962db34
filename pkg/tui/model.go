// Package tui is the interactive terminal front-end for the tester: a
// single-line pattern input, a multi-line subject input and a live report.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/praetorian-inc/rexp/pkg/format"
	"github.com/praetorian-inc/rexp/pkg/reference"
	"github.com/praetorian-inc/rexp/pkg/tester"
)

// focusedPane tracks which pane has keyboard focus.
type focusedPane int

const (
	panePattern focusedPane = iota
	paneSubject
	paneReport
	paneCount
)

// patternPaneHeight is title + border + one input line.
const patternPaneHeight = 4

// Model is the root Bubble Tea model for the tester TUI.
//
// The model owns the Tester for the lifetime of the program; every edit is
// pushed into it from Update, which runs on the Bubble Tea event loop.
type Model struct {
	tester *tester.Tester
	tables *reference.Tables

	pattern textinput.Model
	subject textarea.Model
	report  reportPane

	focus focusedPane

	// Help state
	showHelp    bool
	helpContent string
	helpOffset  int

	width  int
	height int
}

// New creates a Model around t. The inputs start from t's current pattern
// and subject. tables may be nil, in which case the help overlay only lists keys.
func New(t *tester.Tester, tables *reference.Tables) Model {
	pattern := textinput.New()
	pattern.Prompt = "/ "
	pattern.Placeholder = "pattern"
	pattern.SetValue(t.Pattern())
	pattern.Focus()

	subject := textarea.New()
	subject.Placeholder = "subject"
	subject.ShowLineNumbers = false
	subject.CharLimit = 0
	subject.SetValue(t.Subject())

	m := Model{
		tester:  t,
		tables:  tables,
		pattern: pattern,
		subject: subject,
		focus:   panePattern,
	}
	m.syncReport()
	return m
}

// Tester returns the tester driven by the model.
func (m Model) Tester() *tester.Tester {
	return m.tester
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("rexp"), textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			return m.updateHelp(msg)
		}

		// Global keys (work regardless of focus)
		switch {
		case keyMatches(msg, defaultKeys.ForceQuit), keyMatches(msg, defaultKeys.Quit):
			return m, tea.Quit
		case keyMatches(msg, defaultKeys.ToggleHelp):
			m.showHelp = true
			m.helpOffset = 0
			m.helpContent = renderHelp(m.tables, m.tester.Evaluator().Config().Engine)
			return m, nil
		case keyMatches(msg, defaultKeys.NextFocus):
			return m, m.setFocus((m.focus + 1) % paneCount)
		case keyMatches(msg, defaultKeys.PrevFocus):
			return m, m.setFocus((m.focus + paneCount - 1) % paneCount)
		}

		// Delegate to focused pane
		var cmd tea.Cmd
		switch m.focus {
		case panePattern:
			m.pattern, cmd = m.pattern.Update(msg)
		case paneSubject:
			m.subject, cmd = m.subject.Update(msg)
		case paneReport:
			m.report, cmd = m.report.Update(msg)
		}
		m.syncInputs()
		return m, cmd
	}

	// Cursor blink and other component messages
	var patternCmd, subjectCmd tea.Cmd
	m.pattern, patternCmd = m.pattern.Update(msg)
	m.subject, subjectCmd = m.subject.Update(msg)
	return m, tea.Batch(patternCmd, subjectCmd)
}

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, defaultKeys.ForceQuit):
		return m, tea.Quit
	case keyMatches(msg, defaultKeys.Quit), keyMatches(msg, defaultKeys.ToggleHelp):
		m.showHelp = false
	case keyMatches(msg, defaultKeys.Down):
		m.helpOffset++
	case keyMatches(msg, defaultKeys.Up):
		if m.helpOffset > 0 {
			m.helpOffset--
		}
	case keyMatches(msg, defaultKeys.PageDown):
		m.helpOffset += m.height / 2
	case keyMatches(msg, defaultKeys.PageUp):
		m.helpOffset = max(0, m.helpOffset-m.height/2)
	}
	return m, nil
}

// syncInputs pushes the editor contents into the tester. The tester ignores
// values that did not change.
func (m *Model) syncInputs() {
	m.tester.SetPattern(m.pattern.Value())
	m.tester.SetSubject(m.subject.Value())
	m.syncReport()
}

func (m *Model) syncReport() {
	m.report.setReport(m.tester.Report(), m.tester.Outcome().Kind)
}

func (m *Model) setFocus(p focusedPane) tea.Cmd {
	m.focus = p
	m.report.focused = p == paneReport

	m.pattern.Blur()
	m.subject.Blur()
	switch p {
	case panePattern:
		return m.pattern.Focus()
	case paneSubject:
		return m.subject.Focus()
	}
	return nil
}

func (m *Model) updateLayout() {
	contentHeight := m.height - 1 // status bar
	subjectHeight := max(5, (contentHeight-patternPaneHeight)*35/100)
	reportHeight := max(4, contentHeight-patternPaneHeight-subjectHeight)

	m.pattern.Width = max(1, m.width-4-lipgloss.Width(m.pattern.Prompt)-1)
	m.subject.SetWidth(max(1, m.width-4))
	m.subject.SetHeight(max(1, subjectHeight-3))
	m.report.setSize(m.width, reportHeight)
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	patternView := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(" Pattern "),
		paneBorder(m.focus == panePattern).Width(m.width-2).Render(m.pattern.View()))

	subjectView := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(" Subject "),
		paneBorder(m.focus == paneSubject).Width(m.width-2).Render(m.subject.View()))

	return lipgloss.JoinVertical(lipgloss.Left,
		patternView,
		subjectView,
		m.report.View(),
		m.renderStatusBar())
}

func (m Model) renderStatusBar() string {
	engine := m.tester.Evaluator().Config().Engine
	summary := format.Summary(m.tester.Outcome())
	if summary == "" {
		summary = "empty pattern"
	}
	left := statusBarStyle.Render(fmt.Sprintf(" %s | %s", engine, summary))

	right := fmt.Sprintf("%s:%s  %s:%s  %s:%s",
		helpKeyStyle.Render("tab"), helpDescStyle.Render("focus"),
		helpKeyStyle.Render("C-r"), helpDescStyle.Render("reference"),
		helpKeyStyle.Render("esc"), helpDescStyle.Render("quit"),
	)

	gap := max(0, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderHelpOverlay() string {
	overlayWidth := m.width * 80 / 100
	overlayHeight := m.height * 80 / 100

	lines := strings.Split(m.helpContent, "\n")
	offset := min(m.helpOffset, max(0, len(lines)-1))
	end := min(offset+max(1, overlayHeight-4), len(lines))
	content := strings.Join(lines[offset:end], "\n")

	box := modalStyle.
		Width(overlayWidth - 4).
		Height(overlayHeight - 2).
		Render(content)

	overlayView := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(" Reference (esc to close) "), box)

	// Center on screen
	hPad := (m.width - lipgloss.Width(overlayView)) / 2
	vPad := (m.height - lipgloss.Height(overlayView)) / 2

	return strings.Repeat("\n", max(0, vPad)) +
		lipgloss.NewStyle().PaddingLeft(max(0, hPad)).Render(overlayView)
}

// Run starts the TUI on the terminal and blocks until the user quits.
func Run(t *tester.Tester, tables *reference.Tables) error {
	p := tea.NewProgram(New(t, tables), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
