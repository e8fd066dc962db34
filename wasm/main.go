//go:build wasm

package main

import (
	"syscall/js"
)

func main() {
	// Export functions to JavaScript
	js.Global().Set("RexpNewTester", js.FuncOf(newTester))
	js.Global().Set("RexpSetPattern", js.FuncOf(setPattern))
	js.Global().Set("RexpSetSubject", js.FuncOf(setSubject))
	js.Global().Set("RexpReport", js.FuncOf(report))
	js.Global().Set("RexpOutcome", js.FuncOf(outcome))
	js.Global().Set("RexpSubscribe", js.FuncOf(subscribe))
	js.Global().Set("RexpCloseTester", js.FuncOf(closeTester))
	js.Global().Set("RexpEvaluate", js.FuncOf(evaluate))
	js.Global().Set("RexpReference", js.FuncOf(getReference))

	// Keep WASM running
	<-make(chan struct{})
}
