package serve

import (
	"encoding/json"

	"github.com/praetorian-inc/rexp/pkg/types"
)

// Request types
const (
	TypeSetPattern = "set_pattern"
	TypeSetSubject = "set_subject"
	TypeEvaluate   = "evaluate"
	TypeReport     = "report"
	TypeReference  = "reference"
	TypeClose      = "close"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "set_pattern" | "set_subject" | "evaluate" | "report" | "reference" | "close"
	Payload json.RawMessage `json:"payload"`
}

// SetPatternPayload is the payload for "set_pattern" requests
type SetPatternPayload struct {
	Pattern string `json:"pattern"`
}

// SetSubjectPayload is the payload for "set_subject" requests
type SetSubjectPayload struct {
	Subject string `json:"subject"`
}

// EvaluatePayload is the payload for "evaluate" requests.
// Evaluate does not touch the session's inputs.
type EvaluatePayload struct {
	Pattern string `json:"pattern"`
	Subject string `json:"subject"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | request type | "decode" | "unknown"
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version string `json:"version"`
	Engine  string `json:"engine"`
}

// ReportData is the data field for responses that carry a report
type ReportData struct {
	Report  string        `json:"report"`
	Outcome types.Outcome `json:"outcome"`
}
