package tester

import (
	"errors"

	"github.com/praetorian-inc/rexp/pkg/format"
	"github.com/praetorian-inc/rexp/pkg/matcher"
	"github.com/praetorian-inc/rexp/pkg/types"
)

// Evaluator turns (pattern, subject) into an Outcome using one matcher configuration.
//
// Evaluation is a pure function of its inputs and the configuration: every
// call compiles the pattern from scratch and nothing is cached between calls.
type Evaluator struct {
	config matcher.Config
	logger DebugLogger
}

// NewEvaluator validates cfg and returns an Evaluator. A nil logger is replaced by NoopLogger.
func NewEvaluator(cfg matcher.Config, logger DebugLogger) (*Evaluator, error) {
	engine, err := matcher.ParseEngine(string(cfg.Engine))
	if err != nil {
		return nil, err
	}
	cfg.Engine = engine
	if logger == nil {
		logger = NoopLogger{}
	}
	return &Evaluator{config: cfg, logger: logger}, nil
}

// Config returns the matcher configuration in use.
func (e *Evaluator) Config() matcher.Config {
	return e.config
}

// Outcome evaluates pattern against subject.
//
//   - empty pattern: OutcomeEmpty, the compiler is not invoked
//   - compile failure: OutcomeCompileError with the engine's diagnostic
//   - otherwise OutcomeNoMatches or OutcomeMatches
//
// A regexp2 scan that exceeds its time budget yields OutcomeMatchError.
func (e *Evaluator) Outcome(pattern, subject string) types.Outcome {
	if pattern == "" {
		return types.EmptyOutcome()
	}

	m, err := matcher.Compile(pattern, e.config)
	if err != nil {
		var ce *matcher.CompileError
		if !errors.As(err, &ce) {
			// Only reachable with an engine NewEvaluator did not validate
			e.logger.Log("compile %q: %v", pattern, err)
		}
		return types.CompileErrorOutcome(err.Error())
	}

	matches, err := m.FindAll([]byte(subject))
	if err != nil {
		e.logger.Log("scan aborted for %q (%s): %v", pattern, m.Engine(), err)
		return types.MatchErrorOutcome(err.Error())
	}

	e.logger.Log("pattern %q: %d groups, %d matches", pattern, m.NumGroups(), len(matches))
	return types.MatchesOutcome(matches)
}

// Evaluate returns the report text for pattern and subject.
func (e *Evaluator) Evaluate(pattern, subject string) string {
	return format.Outcome(e.Outcome(pattern, subject))
}

var defaultEvaluator = &Evaluator{config: matcher.DefaultConfig(), logger: NoopLogger{}}

// Evaluate returns the report for pattern and subject with the default configuration.
func Evaluate(pattern, subject string) string {
	return defaultEvaluator.Evaluate(pattern, subject)
}
