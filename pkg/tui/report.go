package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/praetorian-inc/rexp/pkg/format"
	"github.com/praetorian-inc/rexp/pkg/types"
)

// reportPane shows the current report with manual scrolling.
type reportPane struct {
	report  string
	kind    types.OutcomeKind
	lines   []string
	width   int
	height  int
	offset  int
	focused bool
}

// setReport replaces the content. The scroll position resets only when the
// report text changed.
func (rp *reportPane) setReport(report string, kind types.OutcomeKind) {
	if report == rp.report && kind == rp.kind && rp.lines != nil {
		return
	}
	rp.report = report
	rp.kind = kind
	rp.lines = strings.Split(strings.TrimSuffix(report, "\n"), "\n")
	rp.offset = 0
}

func (rp *reportPane) setSize(width, height int) {
	rp.width = width
	rp.height = height
	rp.clampOffset()
}

func (rp reportPane) visibleRows() int {
	// title + top/bottom border
	return max(1, rp.height-3)
}

func (rp *reportPane) clampOffset() {
	maxOffset := max(0, len(rp.lines)-rp.visibleRows())
	rp.offset = min(max(0, rp.offset), maxOffset)
}

func (rp reportPane) Update(msg tea.Msg) (reportPane, tea.Cmd) {
	if !rp.focused {
		return rp, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMatches(msg, defaultKeys.Up):
			rp.offset--
		case keyMatches(msg, defaultKeys.Down):
			rp.offset++
		case keyMatches(msg, defaultKeys.PageUp):
			rp.offset -= rp.visibleRows()
		case keyMatches(msg, defaultKeys.PageDown):
			rp.offset += rp.visibleRows()
		case keyMatches(msg, defaultKeys.Home):
			rp.offset = 0
		case keyMatches(msg, defaultKeys.End):
			rp.offset = len(rp.lines)
		}
		rp.clampOffset()
	}
	return rp, nil
}

func (rp reportPane) View() string {
	if rp.width <= 0 || rp.height <= 0 {
		return ""
	}
	contentWidth := max(1, rp.width-4)

	var visible []string
	if rp.kind == types.OutcomeEmpty {
		visible = []string{reportNoneStyle.Render("Type a pattern to start matching")}
	} else {
		end := min(rp.offset+rp.visibleRows(), len(rp.lines))
		for _, line := range rp.lines[rp.offset:end] {
			visible = append(visible, rp.styleLine(truncateString(line, contentWidth)))
		}
	}

	var b strings.Builder
	for i, line := range visible {
		b.WriteString(padRight(line, contentWidth))
		if i < len(visible)-1 {
			b.WriteString("\n")
		}
	}

	title := titleStyle.Render(" Report ")
	if len(rp.lines) > rp.visibleRows() && rp.kind == types.OutcomeMatches {
		title += statusBarStyle.Render(scrollIndicator(rp.offset, rp.visibleRows(), len(rp.lines)))
	}

	content := paneBorder(rp.focused).
		Width(rp.width - 2).
		Height(rp.height - 3).
		Render(b.String())

	return lipgloss.JoinVertical(lipgloss.Left, title, content)
}

// styleLine colors one report line according to the outcome kind.
func (rp reportPane) styleLine(line string) string {
	switch rp.kind {
	case types.OutcomeCompileError, types.OutcomeMatchError:
		return reportErrorStyle.Render(line)
	case types.OutcomeNoMatches:
		return reportNoneStyle.Render(line)
	}

	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed+"\n" == format.BlockOpen, trimmed+"\n" == format.BlockClose:
		return reportBlockStyle.Render(line)
	case strings.HasSuffix(trimmed, ": None,"):
		return reportNoneStyle.Render(line)
	}

	// "    0: Some(...),"
	if idx := strings.Index(line, "Some("); idx >= 0 {
		return line[:idx] + reportValueStyle.Render(line[idx:])
	}
	return line
}

func scrollIndicator(offset, rows, total int) string {
	last := min(offset+rows, total)
	return fmt.Sprintf(" %d-%d/%d", offset+1, last, total)
}
