package tester

import (
	"reflect"

	"github.com/praetorian-inc/rexp/pkg/format"
	"github.com/praetorian-inc/rexp/pkg/signal"
	"github.com/praetorian-inc/rexp/pkg/types"
)

// Tester is the live regex tester: two inputs and a report derived from them.
//
// SetPattern and SetSubject recompute the report before they return, and only
// when the value actually changed, so Report always reflects the latest
// inputs. Subscribers hear about the new report synchronously, once per
// change of the report text.
//
// Thread Safety: Tester is NOT safe for concurrent use. Drive it from a single
// goroutine (a UI update loop, the serve loop, the JS event loop).
type Tester struct {
	evaluator *Evaluator
	pattern   *signal.Signal[string]
	subject   *signal.Signal[string]
	outcome   *signal.Memo[types.Outcome]
	report    *signal.Memo[string]
}

// New creates a Tester with empty inputs.
func New(evaluator *Evaluator) *Tester {
	t := &Tester{
		evaluator: evaluator,
		pattern:   signal.New(""),
		subject:   signal.New(""),
	}
	t.outcome = signal.NewMemo(func() types.Outcome {
		return t.evaluator.Outcome(t.pattern.Get(), t.subject.Get())
	}, outcomesEqual, t.pattern, t.subject)
	t.report = signal.NewMemo(func() string {
		return format.Outcome(t.outcome.Get())
	}, func(a, b string) bool { return a == b }, t.outcome)
	return t
}

// SetPattern replaces the pattern.
func (t *Tester) SetPattern(pattern string) {
	t.pattern.Set(pattern)
}

// SetSubject replaces the subject.
func (t *Tester) SetSubject(subject string) {
	t.subject.Set(subject)
}

// Pattern returns the current pattern.
func (t *Tester) Pattern() string {
	return t.pattern.Get()
}

// Subject returns the current subject.
func (t *Tester) Subject() string {
	return t.subject.Get()
}

// Report returns the report for the current inputs.
func (t *Tester) Report() string {
	return t.report.Get()
}

// Outcome returns the structured result behind Report.
func (t *Tester) Outcome() types.Outcome {
	return t.outcome.Get()
}

// Subscribe registers fn to receive every new report. It returns a function
// that removes the subscription.
func (t *Tester) Subscribe(fn func(report string)) func() {
	return t.report.Subscribe(fn)
}

// Recomputations returns how many times the inputs have been evaluated,
// including the initial evaluation of the empty inputs.
func (t *Tester) Recomputations() int {
	return t.outcome.Computations()
}

// Evaluator returns the evaluator backing the tester.
func (t *Tester) Evaluator() *Evaluator {
	return t.evaluator
}

func outcomesEqual(a, b types.Outcome) bool {
	return reflect.DeepEqual(a, b)
}
