// Package serve runs searches for a long-lived client over NDJSON on
// stdin/stdout.
package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"github.com/sirupsen/logrus"
)

// Version is the server protocol version
const Version = "1.0.0"

// Server reads requests and writes one response per request.
type Server struct {
	encoder *json.Encoder
	decoder *json.Decoder
	log     logrus.FieldLogger
}

// NewServer creates a new streaming server. A nil log discards.
func NewServer(in io.Reader, out io.Writer, log logrus.FieldLogger) *Server {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Server{
		encoder: json.NewEncoder(out),
		decoder: json.NewDecoder(bufio.NewReader(in)),
		log:     log,
	}
}

// Run starts the server main loop
func (s *Server) Run(ctx context.Context) error {
	// Send ready signal
	s.sendReady()

	// Use buffered channels for incoming requests
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

	// Process requests until stdin closes or context cancels
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
					// No more pending requests
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
	s.log.WithField("type", req.Type).Debug("request")

	switch req.Type {
	case "search":
		s.handleSearch(req.Payload)
	case "search_batch":
		s.handleSearchBatch(req.Payload)
	case "close":
		return true
	default:
		s.sendError("unknown", "unknown request type: "+req.Type)
	}
	return false
}

func (s *Server) sendReady() {
	s.send("ready", ReadyData{Version: Version})
}

func (s *Server) handleSearch(payload json.RawMessage) {
	var p SearchPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("search", err.Error())
		return
	}

	r, err := newRunner(p.Query, s.log)
	if err != nil {
		s.sendError("search", err.Error())
		return
	}
	result, err := search(r, p.Query, p.ContentItem)
	if err != nil {
		s.sendError("search", err.Error())
		return
	}

	s.send("search", result)
}

func (s *Server) handleSearchBatch(payload json.RawMessage) {
	var p SearchBatchPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("search_batch", err.Error())
		return
	}

	r, err := newRunner(p.Query, s.log)
	if err != nil {
		s.sendError("search_batch", err.Error())
		return
	}

	batch := BatchSearchResult{Results: make([]SearchResult, 0, len(p.Items))}
	for _, item := range p.Items {
		result, err := search(r, p.Query, item)
		if err != nil {
			s.sendError("search_batch", err.Error())
			return
		}
		batch.Results = append(batch.Results, result)
		batch.Total += len(result.Lines)
	}

	s.send("search_batch", batch)
}

func (s *Server) send(reqType string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.sendError(reqType, err.Error())
		return
	}
	if err := s.encoder.Encode(Response{Success: true, Type: reqType, Data: data}); err != nil {
		s.log.WithError(err).Warn("writing response")
	}
}

func (s *Server) sendError(reqType, msg string) {
	if err := s.encoder.Encode(Response{Success: false, Type: reqType, Error: msg}); err != nil {
		s.log.WithError(err).Warn("writing response")
	}
}
