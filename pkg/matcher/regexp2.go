package matcher

import (
	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/rexp/pkg/types"
)

// backtrackMatcher implements Matcher using regexp2 for Perl-style constructs
// (lookaround, backreferences, atomic groups) that RE2 rejects.
//
// regexp2 backtracks, so a pathological pattern can run for exponential time.
// Every scan is bounded by the regexp's MatchTimeout; exceeding it aborts the
// scan with an error instead of a partial result.
type backtrackMatcher struct {
	re    *regexp2.Regexp
	names []string
}

func compileRegexp2(pattern string, cfg Config) (Matcher, error) {
	// Try RE2 mode first so Go-style syntax such as (?P<name>...) keeps its meaning
	re, err := regexp2.Compile(pattern, regexp2.RE2)
	if err != nil {
		// Fallback to default Perl-compatible mode for constructs RE2 mode rejects
		re, err = regexp2.Compile(pattern, regexp2.None)
		if err != nil {
			return nil, err
		}
	}
	re.MatchTimeout = cfg.MatchTimeout

	names := re.GetGroupNames()
	for i, name := range names {
		if isNumericName(name) {
			names[i] = ""
		}
	}

	return &backtrackMatcher{re: re, names: names}, nil
}

func (m *backtrackMatcher) FindAll(subject []byte) ([]types.MatchResult, error) {
	text := string(subject)
	offsets := runeByteOffsets(text)
	lines := types.NewLineIndex(subject)

	match, err := m.re.FindStringMatch(text)
	if err != nil {
		return nil, err
	}

	var results []types.MatchResult
	prevEnd := -1
	for match != nil {
		// Drop an empty match abutting the previous one, as regexp.FindAll does
		if match.Length > 0 || match.Index != prevEnd {
			results = append(results, m.buildResult(subject, lines, offsets, match))
		}
		prevEnd = match.Index + match.Length

		match, err = m.re.FindNextMatch(match)
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// buildResult converts a regexp2 match (rune offsets) into byte offsets of subject.
func (m *backtrackMatcher) buildResult(subject []byte, lines *types.LineIndex, offsets []int, match *regexp2.Match) types.MatchResult {
	numGroups := m.NumGroups()
	indices := make([]int, 2*numGroups)
	for i := range indices {
		indices[i] = -1
	}

	for i, group := range match.Groups() {
		if i >= numGroups || len(group.Captures) == 0 {
			continue
		}
		// A repeated group reports its last iteration, as RE2 does
		c := group.Captures[len(group.Captures)-1]
		indices[2*i] = offsets[c.Index]
		indices[2*i+1] = offsets[c.Index+c.Length]
	}
	indices[0] = offsets[match.Index]
	indices[1] = offsets[match.Index+match.Length]

	return buildMatch(subject, lines, indices, m.names, numGroups)
}

func (m *backtrackMatcher) NumGroups() int {
	return len(m.re.GetGroupNumbers())
}

func (m *backtrackMatcher) GroupNames() []string {
	names := make([]string, len(m.names))
	copy(names, m.names)
	return names
}

func (m *backtrackMatcher) String() string {
	return m.re.String()
}

func (m *backtrackMatcher) Engine() Engine {
	return EngineRegexp2
}

// runeByteOffsets maps rune index to byte offset in s, with one extra entry
// for the end of s. Invalid UTF-8 bytes count as one rune each, matching the
// []rune conversion regexp2 performs.
func runeByteOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}

func isNumericName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
