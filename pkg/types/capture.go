package types

import (
	"encoding/json"
	"strconv"
)

// Capture is the state of one capture group within a single match.
//
// A group is either present, carrying the captured bytes and their span, or
// absent because it did not participate in the match (for example the
// untaken branch of an alternation). Construct values with PresentCapture
// and AbsentCapture.
type Capture struct {
	Index   int        `json:"index"`
	Name    string     `json:"name,omitempty"`
	Present bool       `json:"present"`
	Value   []byte     `json:"-"`
	Span    OffsetSpan `json:"span"`
}

// PresentCapture returns a capture that participated in the match.
func PresentCapture(index int, name string, value []byte, span OffsetSpan) Capture {
	return Capture{
		Index:   index,
		Name:    name,
		Present: true,
		Value:   value,
		Span:    span,
	}
}

// AbsentCapture returns a capture that did not participate in the match.
func AbsentCapture(index int, name string) Capture {
	return Capture{
		Index: index,
		Name:  name,
		Span:  OffsetSpan{Start: -1, End: -1},
	}
}

// Text returns the captured value as a string and whether the group is present.
func (c Capture) Text() (string, bool) {
	if !c.Present {
		return "", false
	}
	return string(c.Value), true
}

// MatchResult is one match of a pattern in a subject.
// Groups holds every group the pattern defines, group 0 (the whole match) first.
type MatchResult struct {
	Location Location  `json:"location"`
	Groups   []Capture `json:"groups"`
}

// Whole returns group 0.
func (m MatchResult) Whole() Capture {
	if len(m.Groups) == 0 {
		return AbsentCapture(0, "")
	}
	return m.Groups[0]
}

type captureJSON struct {
	Index   int        `json:"index"`
	Name    string     `json:"name,omitempty"`
	Present bool       `json:"present"`
	Value   *string    `json:"value,omitempty"`
	Quoted  string     `json:"quoted,omitempty"`
	Span    OffsetSpan `json:"span"`
}

// MarshalJSON encodes the captured bytes as a string; absent groups carry no value.
// encoding/json replaces invalid UTF-8 in value with U+FFFD, so quoted also
// carries the Go-quoted bytes exactly as the report renders them.
func (c Capture) MarshalJSON() ([]byte, error) {
	out := captureJSON{
		Index:   c.Index,
		Name:    c.Name,
		Present: c.Present,
		Span:    c.Span,
	}
	if c.Present {
		v := string(c.Value)
		out.Value = &v
		out.Quoted = strconv.Quote(v)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (c *Capture) UnmarshalJSON(data []byte) error {
	var in captureJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Present {
		v := ""
		if in.Value != nil {
			v = *in.Value
		}
		*c = PresentCapture(in.Index, in.Name, []byte(v), in.Span)
		return nil
	}
	*c = AbsentCapture(in.Index, in.Name)
	return nil
}
