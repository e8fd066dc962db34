package tester

// DebugLogger receives diagnostics from evaluation: compile failures, aborted
// scans, and group and match counts. The report never depends on it.
type DebugLogger interface {
	Log(format string, args ...interface{})
}

// NoopLogger discards evaluation diagnostics. It is the default for
// Evaluators built without a logger and for the WASM sessions.
type NoopLogger struct{}

func (NoopLogger) Log(format string, args ...interface{}) {}
