// Package reference holds the regex syntax and modifier tables shown next to
// the tester. The tables are YAML embedded in the binary; custom tables can be
// loaded from any fs.FS or file.
package reference

import "github.com/praetorian-inc/rexp/pkg/matcher"

// Entry is one construct with a short description.
type Entry struct {
	Code        string           `json:"code"`
	Description string           `json:"description"`
	Engines     []matcher.Engine `json:"engines,omitempty"` // empty = all engines
}

// Supports reports whether the construct is available on engine e.
func (en Entry) Supports(e matcher.Engine) bool {
	if len(en.Engines) == 0 {
		return true
	}
	for _, supported := range en.Engines {
		if supported == e {
			return true
		}
	}
	return false
}

// Tables is the full reference.
type Tables struct {
	Syntax    []Entry `json:"syntax"`
	Modifiers []Entry `json:"modifiers"`
}

// SyntaxFor returns the syntax entries available on engine e.
func (t *Tables) SyntaxFor(e matcher.Engine) []Entry {
	return filterEntries(t.Syntax, e)
}

// ModifiersFor returns the modifiers available on engine e.
func (t *Tables) ModifiersFor(e matcher.Engine) []Entry {
	return filterEntries(t.Modifiers, e)
}

// For returns a copy of the tables restricted to engine e.
func (t *Tables) For(e matcher.Engine) *Tables {
	return &Tables{
		Syntax:    t.SyntaxFor(e),
		Modifiers: t.ModifiersFor(e),
	}
}

func filterEntries(entries []Entry, e matcher.Engine) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, en := range entries {
		if en.Supports(e) {
			out = append(out, en)
		}
	}
	return out
}
