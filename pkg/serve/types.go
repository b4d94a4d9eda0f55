package serve

import (
	"encoding/json"

	"github.com/praetorian-inc/minigrep/pkg/types"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "search" | "search_batch" | "close"
	Payload json.RawMessage `json:"payload"`
}

// Query carries the search settings shared by both request types.
type Query struct {
	Query          string `json:"query"`
	IgnoreCase     bool   `json:"ignore_case"`
	Regexp         bool   `json:"regexp"`
	OnPatternError string `json:"on_pattern_error"` // "abort" (default) | "plain"
}

// SearchPayload is the payload for "search" requests
type SearchPayload struct {
	Query
	ContentItem
}

// ContentItem is one body to search.
type ContentItem struct {
	Source  string `json:"source"`
	Content string `json:"content"`
}

// SearchBatchPayload is the payload for "search_batch" requests
type SearchBatchPayload struct {
	Query
	Items []ContentItem `json:"items"`
}

// LineResult is one matched line.
type LineResult struct {
	Line  int          `json:"line"`
	Text  string       `json:"text"`
	Spans []types.Span `json:"spans"`
}

// SearchResult holds the matches for one body.
type SearchResult struct {
	Source string       `json:"source"`
	Lines  []LineResult `json:"lines"`
}

// BatchSearchResult holds the matches for every body of a batch.
type BatchSearchResult struct {
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | "search" | "search_batch" | "decode" | "unknown"
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version string `json:"version"`
}
