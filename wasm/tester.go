//go:build wasm

package main

import (
	"encoding/json"
	"sync"
	"syscall/js"

	"github.com/praetorian-inc/rexp/pkg/matcher"
	"github.com/praetorian-inc/rexp/pkg/reference"
	"github.com/praetorian-inc/rexp/pkg/tester"
)

// session is one tester owned by the page, plus its JS subscriptions.
type session struct {
	tester  *tester.Tester
	cancels []func()
}

var (
	sessions   = make(map[int]*session)
	sessionsMu sync.RWMutex
	nextID     int
)

// newTester creates a tester for the given engine ("" for the default).
// JS: RexpNewTester(engine?) -> {handle} or {error}
func newTester(this js.Value, args []js.Value) interface{} {
	cfg := matcher.DefaultConfig()
	if len(args) > 0 && args[0].Type() == js.TypeString {
		cfg.Engine = matcher.Engine(args[0].String())
	}

	ev, err := tester.NewEvaluator(cfg, tester.NoopLogger{})
	if err != nil {
		return map[string]interface{}{"error": "failed to create tester: " + err.Error()}
	}

	sessionsMu.Lock()
	id := nextID
	nextID++
	sessions[id] = &session{tester: tester.New(ev)}
	sessionsMu.Unlock()

	return map[string]interface{}{"handle": id}
}

func lookup(args []js.Value) (*session, map[string]interface{}) {
	if len(args) < 1 {
		return nil, map[string]interface{}{"error": "handle argument required"}
	}

	sessionsMu.RLock()
	s, ok := sessions[args[0].Int()]
	sessionsMu.RUnlock()

	if !ok {
		return nil, map[string]interface{}{"error": "invalid tester handle"}
	}
	return s, nil
}

// setPattern replaces the pattern and returns the new report.
// JS: RexpSetPattern(handle, pattern) -> report string or {error}
func setPattern(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "handle and pattern arguments required"}
	}
	s, errResult := lookup(args)
	if errResult != nil {
		return errResult
	}
	s.tester.SetPattern(args[1].String())
	return s.tester.Report()
}

// setSubject replaces the subject and returns the new report.
// JS: RexpSetSubject(handle, subject) -> report string or {error}
func setSubject(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "handle and subject arguments required"}
	}
	s, errResult := lookup(args)
	if errResult != nil {
		return errResult
	}
	s.tester.SetSubject(args[1].String())
	return s.tester.Report()
}

// report returns the current report.
// JS: RexpReport(handle) -> report string or {error}
func report(this js.Value, args []js.Value) interface{} {
	s, errResult := lookup(args)
	if errResult != nil {
		return errResult
	}
	return s.tester.Report()
}

// outcome returns the structured outcome behind the report.
// JS: RexpOutcome(handle) -> JSON outcome or {error}
func outcome(this js.Value, args []js.Value) interface{} {
	s, errResult := lookup(args)
	if errResult != nil {
		return errResult
	}

	jsonBytes, err := json.Marshal(s.tester.Outcome())
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal outcome: " + err.Error()}
	}
	return string(jsonBytes)
}

// subscribe calls callback(report) every time the report changes.
// JS: RexpSubscribe(handle, callback)
func subscribe(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 || args[1].Type() != js.TypeFunction {
		return map[string]interface{}{"error": "handle and callback arguments required"}
	}
	s, errResult := lookup(args)
	if errResult != nil {
		return errResult
	}

	callback := args[1]
	cancel := s.tester.Subscribe(func(report string) {
		callback.Invoke(report)
	})

	sessionsMu.Lock()
	s.cancels = append(s.cancels, cancel)
	sessionsMu.Unlock()
	return nil
}

// closeTester drops a tester and its subscriptions.
// JS: RexpCloseTester(handle)
func closeTester(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "handle argument required"}
	}

	handle := args[0].Int()

	sessionsMu.Lock()
	s, ok := sessions[handle]
	if ok {
		delete(sessions, handle)
	}
	sessionsMu.Unlock()

	if !ok {
		return map[string]interface{}{"error": "invalid tester handle"}
	}

	for _, cancel := range s.cancels {
		cancel()
	}
	return nil
}

// evaluate is a one-shot evaluation with the default engine.
// JS: RexpEvaluate(pattern, subject) -> report string
func evaluate(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "pattern and subject arguments required"}
	}
	return tester.Evaluate(args[0].String(), args[1].String())
}

// getReference returns the reference tables as JSON, optionally for one engine.
// JS: RexpReference(engine?) -> JSON tables
func getReference(this js.Value, args []js.Value) interface{} {
	tables, err := reference.Builtin()
	if err != nil {
		return map[string]interface{}{"error": "failed to load reference: " + err.Error()}
	}

	if len(args) > 0 && args[0].Type() == js.TypeString {
		engine, err := matcher.ParseEngine(args[0].String())
		if err != nil {
			return map[string]interface{}{"error": err.Error()}
		}
		tables = tables.For(engine)
	}

	jsonBytes, err := json.Marshal(tables)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal reference: " + err.Error()}
	}

	return string(jsonBytes)
}
