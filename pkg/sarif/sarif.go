// Package sarif renders search matches as a SARIF 2.1.0 log.
package sarif

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/praetorian-inc/minigrep/pkg/types"
)

// SARIF 2.1.0 constants
const (
	SchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	Version   = "2.1.0"
	ToolName  = "minigrep"

	// RuleID identifies every result: one search has one rule, its query.
	RuleID = "minigrep.match"
)

// Report is the top-level SARIF report structure
type Report struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run represents a single invocation of the tool
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

// Tool describes the analysis tool
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver contains tool metadata
type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Rules   []Rule `json:"rules,omitempty"`
}

// Rule describes the query that produced the results
type Rule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	ShortDescription ShortDescription `json:"shortDescription"`
}

// ShortDescription contains rule description text
type ShortDescription struct {
	Text string `json:"text"`
}

// Result represents a single match
type Result struct {
	RuleID    string     `json:"ruleId"`
	Level     string     `json:"level"`
	Message   Message    `json:"message"`
	Locations []Location `json:"locations"`
}

// Message contains the result message
type Message struct {
	Text string `json:"text"`
}

// Location describes where a result was found
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation specifies file location
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

// ArtifactLocation identifies the file
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region specifies the line/column range. Columns are 1-based and count
// characters.
type Region struct {
	StartLine   int     `json:"startLine"`
	StartColumn int     `json:"startColumn"`
	EndLine     int     `json:"endLine"`
	EndColumn   int     `json:"endColumn"`
	Snippet     Snippet `json:"snippet,omitempty"`
}

// Snippet contains the matched line
type Snippet struct {
	Text string `json:"text"`
}

// NewReport creates a report for one search of query.
func NewReport(toolVersion, query string, ignoreCase bool) *Report {
	desc := fmt.Sprintf("Lines containing %q", query)
	if ignoreCase {
		desc += " (case-insensitive)"
	}

	return &Report{
		Schema:  SchemaURI,
		Version: Version,
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:    ToolName,
						Version: toolVersion,
						Rules: []Rule{{
							ID:               RuleID,
							Name:             "Match",
							ShortDescription: ShortDescription{Text: desc},
						}},
					},
				},
				Results: []Result{},
			},
		},
	}
}

// AddLine adds one result per span on line. A line without spans (a plain
// fallback search) becomes a single whole-line result.
func (r *Report) AddLine(filePath string, line types.Line, spans []types.Span) {
	if len(spans) == 0 {
		spans = []types.Span{{Start: 0, End: len(line.Text)}}
	}

	uri := formatFileURI(filePath)
	for _, s := range spans {
		region := Region{
			StartLine:   line.Number,
			StartColumn: column(line.Text, s.Start),
			EndLine:     line.Number,
			EndColumn:   column(line.Text, s.End),
			Snippet:     Snippet{Text: line.Text},
		}

		r.Runs[0].Results = append(r.Runs[0].Results, Result{
			RuleID: RuleID,
			Level:  "note",
			Message: Message{
				Text: line.Text[s.Start:s.End],
			},
			Locations: []Location{
				{
					PhysicalLocation: PhysicalLocation{
						ArtifactLocation: ArtifactLocation{URI: uri},
						Region:           region,
					},
				},
			},
		})
	}
}

// ResultCount returns the number of results recorded.
func (r *Report) ResultCount() int {
	return len(r.Runs[0].Results)
}

// ToJSON serializes the report to JSON bytes
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// column converts a byte offset into a 1-based character column.
func column(text string, offset int) int {
	return utf8.RuneCountInString(text[:offset]) + 1
}

// formatFileURI converts a file path to SARIF URI format
// Absolute paths get file:// prefix, relative paths stay as-is
func formatFileURI(path string) string {
	if filepath.IsAbs(path) {
		// Normalize path separators for URI format
		path = filepath.ToSlash(path)
		// Ensure path starts with /
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	// Relative paths stay as-is
	return filepath.ToSlash(path)
}
