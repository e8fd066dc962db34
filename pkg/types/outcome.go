package types

import (
	"encoding/json"
	"fmt"
)

// OutcomeKind tags the result of one evaluation.
type OutcomeKind int

const (
	OutcomeEmpty        OutcomeKind = iota // pattern is the empty string
	OutcomeCompileError                    // pattern failed to compile
	OutcomeNoMatches                       // pattern compiled, nothing matched
	OutcomeMatches                         // one or more matches
	OutcomeMatchError                      // matching was aborted by the engine (budget exceeded)
)

var outcomeKindNames = map[OutcomeKind]string{
	OutcomeEmpty:        "empty",
	OutcomeCompileError: "compile_error",
	OutcomeNoMatches:    "no_matches",
	OutcomeMatches:      "matches",
	OutcomeMatchError:   "match_error",
}

func (k OutcomeKind) String() string {
	if name, ok := outcomeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("OutcomeKind(%d)", int(k))
}

// MarshalJSON writes the kind as its name.
func (k OutcomeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON reads a kind written by MarshalJSON.
func (k *OutcomeKind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for kind, n := range outcomeKindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown outcome kind %q", name)
}

// Outcome is the tagged result of evaluating a pattern against a subject.
// Message is set only for OutcomeCompileError and OutcomeMatchError; Matches
// only for OutcomeMatches.
type Outcome struct {
	Kind    OutcomeKind   `json:"kind"`
	Message string        `json:"message,omitempty"`
	Matches []MatchResult `json:"matches,omitempty"`
}

// EmptyOutcome is the outcome for an empty pattern.
func EmptyOutcome() Outcome {
	return Outcome{Kind: OutcomeEmpty}
}

// CompileErrorOutcome carries the engine's diagnostic verbatim.
func CompileErrorOutcome(message string) Outcome {
	return Outcome{Kind: OutcomeCompileError, Message: message}
}

// MatchErrorOutcome carries the engine's message for an aborted scan.
func MatchErrorOutcome(message string) Outcome {
	return Outcome{Kind: OutcomeMatchError, Message: message}
}

// MatchesOutcome returns OutcomeNoMatches when matches is empty.
func MatchesOutcome(matches []MatchResult) Outcome {
	if len(matches) == 0 {
		return Outcome{Kind: OutcomeNoMatches}
	}
	return Outcome{Kind: OutcomeMatches, Matches: matches}
}

// IsError reports whether the outcome carries a diagnostic instead of matches.
func (o Outcome) IsError() bool {
	return o.Kind == OutcomeCompileError || o.Kind == OutcomeMatchError
}
