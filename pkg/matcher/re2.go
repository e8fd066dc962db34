package matcher

import (
	"regexp"

	"github.com/coregx/coregex"
	"github.com/praetorian-inc/rexp/pkg/prefilter"
	"github.com/praetorian-inc/rexp/pkg/types"
)

// indexEngine is the part of the stdlib regexp API shared by regexp.Regexp
// and coregex.Regex.
type indexEngine interface {
	FindAllSubmatchIndex(b []byte, n int) [][]int
	NumSubexp() int
	SubexpNames() []string
	String() string
}

// indexMatcher implements Matcher for engines with the stdlib submatch-index API.
type indexMatcher struct {
	re     indexEngine
	engine Engine
	pf     *prefilter.Prefilter // nil when disabled or no keywords are required
	names  []string
	groups int // including group 0
}

// newIndexMatcher wraps re. groups is the capture count including the whole
// match; stdlib NumSubexp excludes it, coregex NumSubexp already counts it.
func newIndexMatcher(re indexEngine, engine Engine, groups int, cfg Config) *indexMatcher {
	m := &indexMatcher{
		re:     re,
		engine: engine,
		names:  re.SubexpNames(),
		groups: groups,
	}
	if cfg.Prefilter {
		m.pf = prefilter.New(re.String())
	}
	return m
}

func compileRE2(pattern string, cfg Config) (Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return newIndexMatcher(re, EngineRE2, re.NumSubexp()+1, cfg), nil
}

func compileCoregex(pattern string, cfg Config) (Matcher, error) {
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return newIndexMatcher(re, EngineCoregex, re.NumSubexp(), cfg), nil
}

// FindAll scans subject with the engine's leftmost-first iteration. The engines
// advance past empty matches, so the scan always terminates.
func (m *indexMatcher) FindAll(subject []byte) ([]types.MatchResult, error) {
	if !m.pf.MayMatch(subject) {
		return nil, nil
	}

	all := m.re.FindAllSubmatchIndex(subject, -1)
	if len(all) == 0 {
		return nil, nil
	}

	numGroups := m.NumGroups()
	lines := types.NewLineIndex(subject)
	results := make([]types.MatchResult, 0, len(all))
	for _, indices := range all {
		if len(indices) < 2 {
			continue
		}
		results = append(results, buildMatch(subject, lines, indices, m.names, numGroups))
	}
	return results, nil
}

func (m *indexMatcher) NumGroups() int {
	return m.groups
}

func (m *indexMatcher) GroupNames() []string {
	names := make([]string, m.NumGroups())
	copy(names, m.names)
	return names
}

func (m *indexMatcher) String() string {
	return m.re.String()
}

func (m *indexMatcher) Engine() Engine {
	return m.engine
}
