package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"github.com/praetorian-inc/rexp/pkg/format"
	"github.com/praetorian-inc/rexp/pkg/reference"
	"github.com/praetorian-inc/rexp/pkg/tester"
	"github.com/praetorian-inc/rexp/pkg/types"
)

// Version is the server protocol version
const Version = "1.0.0"

// Server drives one Tester session over NDJSON.
type Server struct {
	tester  *tester.Tester
	encoder *json.Encoder
	decoder *json.Decoder
}

// NewServer creates a new streaming server
func NewServer(t *tester.Tester, in io.Reader, out io.Writer) *Server {
	return &Server{
		tester:  t,
		encoder: json.NewEncoder(out),
		decoder: json.NewDecoder(bufio.NewReader(in)),
	}
}

// Run starts the server main loop. Requests are decoded on a separate
// goroutine but always handled here, so the tester has a single owner.
func (s *Server) Run(ctx context.Context) error {
	s.sendReady()

	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain any pending requests before handling EOF
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(req) {
						return nil
					}
				default:
					if err == io.EOF {
						return nil
					}
					s.sendError("decode", err.Error())
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(req) {
				return nil
			}
		}
	}
}

// processRequest handles a single request and returns true if the server should exit
func (s *Server) processRequest(req Request) bool {
	switch req.Type {
	case TypeSetPattern:
		s.handleSetPattern(req.Payload)
	case TypeSetSubject:
		s.handleSetSubject(req.Payload)
	case TypeEvaluate:
		s.handleEvaluate(req.Payload)
	case TypeReport:
		s.sendReport(TypeReport, s.tester.Report(), s.tester.Outcome())
	case TypeReference:
		s.handleReference()
	case TypeClose:
		return true
	default:
		s.sendError("unknown", "unknown request type: "+req.Type)
	}
	return false
}

func (s *Server) sendReady() {
	data, _ := json.Marshal(ReadyData{
		Version: Version,
		Engine:  string(s.tester.Evaluator().Config().Engine),
	})
	s.encoder.Encode(Response{
		Success: true,
		Type:    "ready",
		Data:    data,
	})
}

func (s *Server) handleSetPattern(payload json.RawMessage) {
	var p SetPatternPayload
	if err := decodePayload(payload, &p); err != nil {
		s.sendError(TypeSetPattern, err.Error())
		return
	}
	s.tester.SetPattern(p.Pattern)
	s.sendReport(TypeSetPattern, s.tester.Report(), s.tester.Outcome())
}

func (s *Server) handleSetSubject(payload json.RawMessage) {
	var p SetSubjectPayload
	if err := decodePayload(payload, &p); err != nil {
		s.sendError(TypeSetSubject, err.Error())
		return
	}
	s.tester.SetSubject(p.Subject)
	s.sendReport(TypeSetSubject, s.tester.Report(), s.tester.Outcome())
}

func (s *Server) handleEvaluate(payload json.RawMessage) {
	var p EvaluatePayload
	if err := decodePayload(payload, &p); err != nil {
		s.sendError(TypeEvaluate, err.Error())
		return
	}
	outcome := s.tester.Evaluator().Outcome(p.Pattern, p.Subject)
	s.sendReport(TypeEvaluate, format.Outcome(outcome), outcome)
}

func (s *Server) handleReference() {
	tables, err := reference.Builtin()
	if err != nil {
		s.sendError(TypeReference, err.Error())
		return
	}

	data, _ := json.Marshal(tables.For(s.tester.Evaluator().Config().Engine))
	s.encoder.Encode(Response{
		Success: true,
		Type:    TypeReference,
		Data:    data,
	})
}

func (s *Server) sendReport(reqType, report string, outcome types.Outcome) {
	data, err := json.Marshal(ReportData{Report: report, Outcome: outcome})
	if err != nil {
		s.sendError(reqType, err.Error())
		return
	}
	s.encoder.Encode(Response{
		Success: true,
		Type:    reqType,
		Data:    data,
	})
}

func (s *Server) sendError(reqType, msg string) {
	s.encoder.Encode(Response{
		Success: false,
		Type:    reqType,
		Error:   msg,
	})
}

// decodePayload unmarshals payload into v. A missing payload leaves v zeroed.
func decodePayload(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return nil
	}
	return json.Unmarshal(payload, v)
}
