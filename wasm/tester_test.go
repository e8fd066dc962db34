//go:build wasm

package main

import (
	"encoding/json"
	"syscall/js"
	"testing"

	"github.com/praetorian-inc/rexp/pkg/reference"
	"github.com/praetorian-inc/rexp/pkg/types"
)

func mustHandle(t *testing.T, result interface{}) int {
	t.Helper()
	resultMap, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected map result, got %T", result)
	}
	if errMsg, hasError := resultMap["error"]; hasError {
		t.Fatalf("Failed to create tester: %v", errMsg)
	}
	handle, ok := resultMap["handle"].(int)
	if !ok {
		t.Fatal("Expected handle in result")
	}
	return handle
}

// TestTesterCreation tests creating a tester with the default engine
func TestTesterCreation(t *testing.T) {
	handle := mustHandle(t, newTester(js.Value{}, nil))
	closeTester(js.Value{}, []js.Value{js.ValueOf(handle)})
}

// TestTesterUnknownEngine tests engine validation
func TestTesterUnknownEngine(t *testing.T) {
	result := newTester(js.Value{}, []js.Value{js.ValueOf("pcre")})
	errMap, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected error map, got %T", result)
	}
	if _, hasError := errMap["error"]; !hasError {
		t.Error("Expected error for unknown engine")
	}
}

// TestSetPatternAndSubject tests the live report
func TestSetPatternAndSubject(t *testing.T) {
	handle := mustHandle(t, newTester(js.Value{}, []js.Value{js.ValueOf("re2")}))
	defer closeTester(js.Value{}, []js.Value{js.ValueOf(handle)})

	if got := setPattern(js.Value{}, []js.Value{js.ValueOf(handle), js.ValueOf("(a)|b")}); got != "None" {
		t.Errorf("Expected None, got %v", got)
	}

	want := "Some(Captures({\n    0: Some(\"a\"),\n    1: Some(\"a\"),\n})),\n" +
		"Some(Captures({\n    0: Some(\"b\"),\n    1: None,\n})),\n"
	if got := setSubject(js.Value{}, []js.Value{js.ValueOf(handle), js.ValueOf("ab")}); got != want {
		t.Errorf("Unexpected report: %v", got)
	}
	if got := report(js.Value{}, []js.Value{js.ValueOf(handle)}); got != want {
		t.Errorf("Report mismatch: %v", got)
	}

	jsonStr, ok := outcome(js.Value{}, []js.Value{js.ValueOf(handle)}).(string)
	if !ok {
		t.Fatal("Expected outcome JSON string")
	}
	var o types.Outcome
	if err := json.Unmarshal([]byte(jsonStr), &o); err != nil {
		t.Fatalf("Failed to parse outcome: %v", err)
	}
	if o.Kind != types.OutcomeMatches || len(o.Matches) != 2 {
		t.Errorf("Unexpected outcome: %+v", o)
	}
}

// TestSubscribe tests that JS callbacks receive new reports
func TestSubscribe(t *testing.T) {
	handle := mustHandle(t, newTester(js.Value{}, nil))

	var reports []string
	callback := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		reports = append(reports, args[0].String())
		return nil
	})
	defer callback.Release()

	if res := subscribe(js.Value{}, []js.Value{js.ValueOf(handle), callback.Value}); res != nil {
		t.Fatalf("Subscribe failed: %v", res)
	}

	setPattern(js.Value{}, []js.Value{js.ValueOf(handle), js.ValueOf("x")})
	closeTester(js.Value{}, []js.Value{js.ValueOf(handle)})

	if len(reports) != 1 || reports[0] != "None" {
		t.Errorf("Expected one None report, got %v", reports)
	}
}

// TestEvaluate tests the stateless entry point
func TestEvaluate(t *testing.T) {
	got := evaluate(js.Value{}, []js.Value{js.ValueOf(""), js.ValueOf("abc")})
	if got != "" {
		t.Errorf("Expected empty report for empty pattern, got %v", got)
	}

	got = evaluate(js.Value{}, []js.Value{js.ValueOf("("), js.ValueOf("abc")})
	if got != "error parsing regexp: missing closing ): `(`" {
		t.Errorf("Unexpected compile error report: %v", got)
	}
}

// TestGetReference tests retrieving the reference tables
func TestGetReference(t *testing.T) {
	result := getReference(js.Value{}, []js.Value{js.ValueOf("regexp2")})

	jsonStr, ok := result.(string)
	if !ok {
		if errMap, isMap := result.(map[string]interface{}); isMap {
			t.Fatalf("Got error: %v", errMap["error"])
		}
		t.Fatalf("Expected string result, got %T", result)
	}

	var tables reference.Tables
	if err := json.Unmarshal([]byte(jsonStr), &tables); err != nil {
		t.Fatalf("Failed to parse reference: %v", err)
	}
	if len(tables.Syntax) == 0 || len(tables.Modifiers) == 0 {
		t.Error("Expected syntax and modifier entries")
	}
}

// TestCloseTester tests tester cleanup
func TestCloseTester(t *testing.T) {
	handle := mustHandle(t, newTester(js.Value{}, nil))

	if res := closeTester(js.Value{}, []js.Value{js.ValueOf(handle)}); res != nil {
		t.Fatalf("Close failed: %v", res)
	}

	result := report(js.Value{}, []js.Value{js.ValueOf(handle)})
	errMap, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected error map, got %T", result)
	}
	if _, hasError := errMap["error"]; !hasError {
		t.Error("Expected error when using closed tester")
	}
}
