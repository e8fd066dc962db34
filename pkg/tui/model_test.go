package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/praetorian-inc/rexp/pkg/matcher"
	"github.com/praetorian-inc/rexp/pkg/reference"
	"github.com/praetorian-inc/rexp/pkg/tester"
	"github.com/praetorian-inc/rexp/pkg/types"
)

func newModel(t *testing.T, engine matcher.Engine) Model {
	t.Helper()
	cfg := matcher.DefaultConfig()
	cfg.Engine = engine
	ev, err := tester.NewEvaluator(cfg, nil)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}
	tables, err := reference.Builtin()
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	m := New(tester.New(ev), tables)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

func send(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestModel_TypingUpdatesReport(t *testing.T) {
	m := newModel(t, matcher.EngineRE2)

	if got := m.Tester().Report(); got != "" {
		t.Fatalf("expected empty report, got %q", got)
	}

	m = typeText(m, "(a)|b")
	if got := m.Tester().Pattern(); got != "(a)|b" {
		t.Fatalf("pattern = %q", got)
	}
	if got := m.Tester().Report(); got != "None" {
		t.Errorf("expected None against empty subject, got %q", got)
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != paneSubject {
		t.Fatalf("expected subject focus, got %d", m.focus)
	}
	m = typeText(m, "ab")

	want := "Some(Captures({\n    0: Some(\"a\"),\n    1: Some(\"a\"),\n})),\n" +
		"Some(Captures({\n    0: Some(\"b\"),\n    1: None,\n})),\n"
	if got := m.Tester().Report(); got != want {
		t.Errorf("report mismatch:\n got %q\nwant %q", got, want)
	}
	if m.report.kind != types.OutcomeMatches {
		t.Errorf("report pane kind = %v", m.report.kind)
	}
	if !strings.Contains(m.View(), "2 matches") {
		t.Error("expected status bar to show match count")
	}
}

func TestModel_CompileErrorShown(t *testing.T) {
	m := newModel(t, matcher.EngineRE2)
	m = typeText(m, "(")

	want := "error parsing regexp: missing closing ): `(`"
	if got := m.Tester().Report(); got != want {
		t.Errorf("report = %q, want %q", got, want)
	}
	if m.report.kind != types.OutcomeCompileError {
		t.Errorf("kind = %v", m.report.kind)
	}
}

func TestModel_FocusCycles(t *testing.T) {
	m := newModel(t, matcher.EngineRE2)

	order := []focusedPane{paneSubject, paneReport, panePattern}
	for _, want := range order {
		m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
		if m.focus != want {
			t.Fatalf("after tab: focus = %d, want %d", m.focus, want)
		}
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != paneReport {
		t.Errorf("shift+tab: focus = %d, want report", m.focus)
	}
	if !m.report.focused {
		t.Error("report pane should be focused")
	}
}

func TestModel_ReportPaneIgnoresTyping(t *testing.T) {
	m := newModel(t, matcher.EngineRE2)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "x")

	if m.Tester().Pattern() != "" || m.Tester().Subject() != "" {
		t.Errorf("typing in report pane changed inputs: %q %q", m.Tester().Pattern(), m.Tester().Subject())
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	m := newModel(t, matcher.EngineRegexp2)

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if !m.showHelp {
		t.Fatal("ctrl+r should open help")
	}
	if !strings.Contains(m.helpContent, "a(?=b)") {
		t.Error("regexp2 help should list lookahead")
	}

	// esc closes the overlay instead of quitting
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHelp {
		t.Error("esc should close help")
	}
	if cmd != nil {
		t.Error("closing help should not quit")
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyF1})
	if !m.showHelp {
		t.Error("F1 should open help")
	}
}

func TestModel_Quit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := newModel(t, matcher.EngineRE2)
		_, cmd := send(m, msg)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", msg)
		}
	}
}

func TestModel_InitialValues(t *testing.T) {
	ev, err := tester.NewEvaluator(matcher.DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	tst := tester.New(ev)
	tst.SetPattern(`\d`)
	tst.SetSubject("a1")

	m := New(tst, nil)
	if m.pattern.Value() != `\d` || m.subject.Value() != "a1" {
		t.Errorf("inputs not seeded: %q %q", m.pattern.Value(), m.subject.Value())
	}
	if m.report.kind != types.OutcomeMatches {
		t.Errorf("kind = %v", m.report.kind)
	}
	if m.View() != "Loading..." {
		t.Error("expected loading view before window size")
	}
}
