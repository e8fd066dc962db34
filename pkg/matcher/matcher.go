package matcher

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/praetorian-inc/rexp/pkg/types"
)

// Engine names a regular expression implementation.
type Engine string

const (
	// EngineRE2 is Go's regexp package: linear time, leftmost-first, byte oriented.
	EngineRE2 Engine = "re2"
	// EngineCoregex is github.com/coregx/coregex: RE2 syntax, linear time.
	EngineCoregex Engine = "coregex"
	// EngineRegexp2 is github.com/dlclark/regexp2: backtracking with Perl/.NET
	// constructs, bounded by Config.MatchTimeout.
	EngineRegexp2 Engine = "regexp2"
)

// ErrUnknownEngine is returned for engine names that are not supported.
var ErrUnknownEngine = errors.New("unknown regex engine")

// Engines lists the supported engines, default first.
func Engines() []Engine {
	return []Engine{EngineRE2, EngineCoregex, EngineRegexp2}
}

// ParseEngine resolves an engine name (case-insensitive). The empty name is EngineRE2.
func ParseEngine(name string) (Engine, error) {
	if name == "" {
		return EngineRE2, nil
	}
	e := Engine(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Engines() {
		if e == known {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEngine, name)
}

// Matcher is a compiled pattern.
//
// A Matcher is owned by a single evaluation; implementations are immutable
// after Compile and keep no state between FindAll calls.
type Matcher interface {
	// FindAll scans subject left to right for all non-overlapping matches.
	// Every returned MatchResult has NumGroups captures, present or absent.
	// An error is only returned when the engine aborts the scan (regexp2
	// match timeout).
	FindAll(subject []byte) ([]types.MatchResult, error)

	// NumGroups returns the number of groups including group 0.
	NumGroups() int

	// GroupNames returns the group names indexed by group number ("" for unnamed).
	GroupNames() []string

	// String returns the source pattern.
	String() string

	// Engine reports which implementation compiled the pattern.
	Engine() Engine
}

// Config for matcher compilation.
type Config struct {
	// Engine selects the implementation (default EngineRE2).
	Engine Engine

	// MatchTimeout bounds a single FindAll for EngineRegexp2 (0 = no limit).
	MatchTimeout time.Duration

	// Prefilter enables the Aho-Corasick literal prefilter for RE2-syntax engines.
	Prefilter bool
}

// DefaultConfig returns the default compilation settings.
func DefaultConfig() Config {
	return Config{
		Engine:       EngineRE2,
		MatchTimeout: 2 * time.Second,
		Prefilter:    true,
	}
}

// CompileError is a pattern that the engine rejected.
// Error returns the engine's diagnostic unchanged.
type CompileError struct {
	Pattern string
	Engine  Engine
	Err     error
}

func (e *CompileError) Error() string {
	return e.Err.Error()
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Compile builds a Matcher for pattern.
//
// The caller handles the empty pattern; Compile treats it like any other
// pattern (it matches the empty string everywhere). Syntax errors are
// returned as *CompileError. An unknown engine yields ErrUnknownEngine.
func Compile(pattern string, cfg Config) (Matcher, error) {
	engine, err := ParseEngine(string(cfg.Engine))
	if err != nil {
		return nil, err
	}

	var m Matcher
	switch engine {
	case EngineRE2:
		m, err = compileRE2(pattern, cfg)
	case EngineCoregex:
		m, err = compileCoregex(pattern, cfg)
	case EngineRegexp2:
		m, err = compileRegexp2(pattern, cfg)
	}
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Engine: engine, Err: err}
	}
	return m, nil
}
