package tui

import (
	"fmt"
	"strings"

	"github.com/praetorian-inc/rexp/pkg/matcher"
	"github.com/praetorian-inc/rexp/pkg/reference"
)

// renderHelp builds the help overlay: key bindings followed by the syntax and
// modifier tables for engine.
func renderHelp(tables *reference.Tables, engine matcher.Engine) string {
	var b strings.Builder

	b.WriteString(helpSectionStyle.Render("KEYS"))
	b.WriteString("\n")
	for _, binding := range []struct{ keys, desc string }{
		{"Tab / Shift+Tab", "Cycle focus: pattern, subject, report"},
		{"j/k or Up/Down", "Scroll the report (report pane)"},
		{"Ctrl+f/Ctrl+b", "Page down/up"},
		{"g/G", "Jump to top/bottom"},
		{"Ctrl+r or F1", "Toggle this reference"},
		{"Esc or Ctrl+c", "Quit"},
	} {
		writeRow(&b, binding.keys, binding.desc, 18)
	}

	if tables == nil {
		return b.String()
	}

	syntax := tables.SyntaxFor(engine)
	modifiers := tables.ModifiersFor(engine)

	b.WriteString("\n")
	b.WriteString(helpSectionStyle.Render(fmt.Sprintf("SYNTAX (%s)", engine)))
	b.WriteString("\n")
	width := codeWidth(syntax)
	for _, en := range syntax {
		writeRow(&b, en.Code, en.Description, width)
	}

	b.WriteString("\n")
	b.WriteString(helpSectionStyle.Render("MODIFIERS"))
	b.WriteString(helpDescStyle.Render("  enable with (?i), disable with (?-i)"))
	b.WriteString("\n")
	width = codeWidth(modifiers)
	for _, en := range modifiers {
		writeRow(&b, en.Code, en.Description, width)
	}

	return b.String()
}

func writeRow(b *strings.Builder, code, desc string, width int) {
	b.WriteString("  ")
	b.WriteString(helpKeyStyle.Render(padRight(code, width)))
	b.WriteString("  ")
	b.WriteString(helpDescStyle.Render(desc))
	b.WriteString("\n")
}

func codeWidth(entries []reference.Entry) int {
	width := 0
	for _, en := range entries {
		width = max(width, len([]rune(en.Code)))
	}
	return width
}
