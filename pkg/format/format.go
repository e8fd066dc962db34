// Package format renders evaluation results as the canonical report text.
//
// The report is the only thing presentation layers show, and it is compared
// byte for byte in tests, so every function here is deterministic: the same
// matches always produce the same bytes.
//
// A report with matches looks like:
//
//	Some(Captures({
//	    0: Some("a"),
//	    1: Some("a"),
//	    2: None,
//	})),
//
// with one block per match in scan order. A compiled pattern with no matches
// renders as NoMatch.
package format

import (
	"strconv"
	"strings"

	"github.com/praetorian-inc/rexp/pkg/types"
)

// NoMatch is the report for a valid pattern that matched nothing.
const NoMatch = "None"

// Block markers. BlockOpen is never part of a compile error report.
const (
	BlockOpen   = "Some(Captures({\n"
	BlockClose  = "})),\n"
	groupIndent = "    "
)

// Report renders matches. It never fails: captured bytes that are not valid
// UTF-8 are escaped as \xNN by the quoting rules.
func Report(matches []types.MatchResult) string {
	if len(matches) == 0 {
		return NoMatch
	}

	var sb strings.Builder
	for _, m := range matches {
		writeBlock(&sb, m)
	}
	return sb.String()
}

// Outcome renders a whole evaluation outcome.
func Outcome(o types.Outcome) string {
	switch o.Kind {
	case types.OutcomeEmpty:
		return ""
	case types.OutcomeCompileError, types.OutcomeMatchError:
		return o.Message
	default:
		return Report(o.Matches)
	}
}

// Quote renders a captured value as it appears inside Some(...): a Go
// double-quoted string literal, with invalid UTF-8 escaped as \xNN.
func Quote(value string) string {
	return strconv.Quote(value)
}

func writeBlock(sb *strings.Builder, m types.MatchResult) {
	sb.WriteString(BlockOpen)
	for _, g := range m.Groups {
		sb.WriteString(groupIndent)
		sb.WriteString(strconv.Itoa(g.Index))
		sb.WriteString(": ")
		if text, ok := g.Text(); ok {
			sb.WriteString("Some(")
			sb.WriteString(Quote(text))
			sb.WriteString(")")
		} else {
			sb.WriteString("None")
		}
		sb.WriteString(",\n")
	}
	sb.WriteString(BlockClose)
}

// Summary is a one-line description of an outcome for status bars.
func Summary(o types.Outcome) string {
	switch o.Kind {
	case types.OutcomeEmpty:
		return ""
	case types.OutcomeCompileError:
		return "compile error"
	case types.OutcomeMatchError:
		return "match aborted"
	case types.OutcomeNoMatches:
		return "no matches"
	}
	if len(o.Matches) == 1 {
		return "1 match"
	}
	return strconv.Itoa(len(o.Matches)) + " matches"
}
