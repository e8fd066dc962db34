// Package rexp is a regular expression tester library.
//
// It compiles a pattern, scans a subject for every non-overlapping match and
// renders all capture groups of every match as a report. A Tester keeps the
// report up to date as the pattern and subject change.
//
// # Basic Usage
//
// One-shot evaluation:
//
//	report, err := rexp.Evaluate(`(a)|b`, "ab")
//	if err != nil {
//	    log.Fatal(err) // only for invalid options
//	}
//	fmt.Print(report)
//
// # Live Tester
//
//	t, err := rexp.NewTester(rexp.WithEngine(rexp.EngineRegexp2))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cancel := t.Subscribe(func(report string) {
//	    fmt.Println(report)
//	})
//	defer cancel()
//
//	t.SetPattern(`(?<word>\w+)`)
//	t.SetSubject("hello world")
package rexp

import (
	"fmt"
	"time"

	"github.com/praetorian-inc/rexp/pkg/format"
	"github.com/praetorian-inc/rexp/pkg/matcher"
	"github.com/praetorian-inc/rexp/pkg/reference"
	"github.com/praetorian-inc/rexp/pkg/tester"
	"github.com/praetorian-inc/rexp/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/rexp" without subpackages.
type (
	// Tester holds a pattern and a subject and keeps their report current.
	Tester = tester.Tester

	// Outcome is the structured result of one evaluation.
	Outcome = types.Outcome

	// OutcomeKind tags an Outcome.
	OutcomeKind = types.OutcomeKind

	// MatchResult is one match with all its capture groups.
	MatchResult = types.MatchResult

	// Capture is one group of a match, present or absent.
	Capture = types.Capture

	// Engine names a regex implementation.
	Engine = matcher.Engine

	// Logger receives debug messages.
	Logger = tester.DebugLogger

	// ReferenceTables are the syntax and modifier tables.
	ReferenceTables = reference.Tables
)

// Re-export outcome kinds.
const (
	OutcomeEmpty        = types.OutcomeEmpty
	OutcomeCompileError = types.OutcomeCompileError
	OutcomeNoMatches    = types.OutcomeNoMatches
	OutcomeMatches      = types.OutcomeMatches
	OutcomeMatchError   = types.OutcomeMatchError
)

// Re-export engines.
const (
	EngineRE2     = matcher.EngineRE2
	EngineCoregex = matcher.EngineCoregex
	EngineRegexp2 = matcher.EngineRegexp2
)

// NoMatch is the report of a valid pattern that matched nothing.
const NoMatch = format.NoMatch

// testerConfig holds evaluation configuration.
type testerConfig struct {
	matcher matcher.Config
	logger  Logger
}

// Option configures evaluation.
type Option func(*testerConfig)

// WithEngine selects the regex engine. The default is EngineRE2.
func WithEngine(engine Engine) Option {
	return func(c *testerConfig) {
		c.matcher.Engine = engine
	}
}

// WithMatchTimeout bounds a single scan on EngineRegexp2. Zero disables the
// limit. Default is 2 seconds.
func WithMatchTimeout(d time.Duration) Option {
	return func(c *testerConfig) {
		c.matcher.MatchTimeout = d
	}
}

// WithoutPrefilter disables the literal prefilter.
func WithoutPrefilter() Option {
	return func(c *testerConfig) {
		c.matcher.Prefilter = false
	}
}

// WithLogger sets a debug logger.
func WithLogger(logger Logger) Option {
	return func(c *testerConfig) {
		c.logger = logger
	}
}

func newEvaluator(opts []Option) (*tester.Evaluator, error) {
	config := &testerConfig{
		matcher: matcher.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(config)
	}

	ev, err := tester.NewEvaluator(config.matcher, config.logger)
	if err != nil {
		return nil, fmt.Errorf("creating evaluator: %w", err)
	}
	return ev, nil
}

// NewTester creates a Tester with empty pattern and subject.
//
// By default, the tester:
//   - Uses EngineRE2 (linear time)
//   - Uses the literal prefilter
//   - Bounds EngineRegexp2 scans at 2 seconds
func NewTester(opts ...Option) (*Tester, error) {
	ev, err := newEvaluator(opts)
	if err != nil {
		return nil, err
	}
	return tester.New(ev), nil
}

// Evaluate returns the report for pattern and subject. Pattern problems are
// part of the report; the error is only set for invalid options.
func Evaluate(pattern, subject string, opts ...Option) (string, error) {
	ev, err := newEvaluator(opts)
	if err != nil {
		return "", err
	}
	return ev.Evaluate(pattern, subject), nil
}

// EvaluateOutcome is Evaluate returning the structured result.
func EvaluateOutcome(pattern, subject string, opts ...Option) (Outcome, error) {
	ev, err := newEvaluator(opts)
	if err != nil {
		return Outcome{}, err
	}
	return ev.Outcome(pattern, subject), nil
}

// Reference returns the built-in syntax and modifier tables.
func Reference() (*ReferenceTables, error) {
	return reference.Builtin()
}
