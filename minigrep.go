// Package minigrep finds the lines of a text that contain a query.
//
// # Basic Usage
//
// Resolve a configuration from command-line style inputs and search a body:
//
//	cfg, err := minigrep.BuildConfig([]string{"duct", "poem.txt"}, config.OSEnv)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	searcher := minigrep.NewSearcher()
//	lines, err := searcher.SearchFile(cfg)
//	for _, l := range lines {
//	    fmt.Println(l.Text())
//	}
//
// # With Highlighting
//
//	searcher := minigrep.NewSearcher(
//	    minigrep.WithHighlight(minigrep.PlainMarkers("[", "]")),
//	)
//	lines, _ := searcher.Search(cfg, "safe, fast, productive.")
//	// lines[0].Text() == "safe, fast, pro[duct]ive."
package minigrep

import (
	"fmt"
	"os"

	"github.com/praetorian-inc/minigrep/pkg/config"
	"github.com/praetorian-inc/minigrep/pkg/highlight"
	"github.com/praetorian-inc/minigrep/pkg/runner"
	"github.com/praetorian-inc/minigrep/pkg/types"
)

// Re-export commonly used types for convenience.
type (
	// Config is the resolved search request.
	Config = config.Config

	// MatchedLine is a line returned by a search.
	MatchedLine = types.MatchedLine

	// Markers are the emphasis sequences placed around matches.
	Markers = highlight.Markers

	// PatternError reports a query that is not a valid pattern.
	PatternError = highlight.PatternError
)

// Re-export pattern error policies.
const (
	PolicyAbort = runner.PolicyAbort
	PolicyPlain = runner.PolicyPlain
)

// BuildConfig resolves inputs (program name excluded) and the environment
// into a Config.
func BuildConfig(inputs []string, env config.EnvSource) (Config, error) {
	return config.Build(inputs, env)
}

// DefaultMarkers returns bold red terminal markers.
func DefaultMarkers() Markers {
	return highlight.DefaultMarkers()
}

// PlainMarkers returns literal text markers.
func PlainMarkers(begin, end string) Markers {
	return highlight.PlainMarkers(begin, end)
}

// Option configures a Searcher.
type Option func(*runner.Options)

// WithHighlight wraps every match in markers.
func WithHighlight(markers Markers) Option {
	return func(o *runner.Options) {
		o.Highlight = true
		o.Markers = markers
	}
}

// WithRegexp treats the query as a regular expression.
func WithRegexp() Option {
	return func(o *runner.Options) {
		o.Regexp = true
	}
}

// WithPatternErrorPolicy sets what happens when the query is not a valid
// pattern. Default is PolicyAbort.
func WithPatternErrorPolicy(p runner.Policy) Option {
	return func(o *runner.Options) {
		o.OnPatternError = p
	}
}

// Searcher runs searches. It is stateless and safe for concurrent use.
type Searcher struct {
	runner *runner.Runner
}

// NewSearcher creates a Searcher. By default it matches literally and
// returns plain lines.
func NewSearcher(opts ...Option) *Searcher {
	o := runner.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Searcher{runner: runner.New(o)}
}

// Search returns the lines of content that match cfg, in order.
func (s *Searcher) Search(cfg Config, content string) ([]MatchedLine, error) {
	return s.runner.Run(cfg, content)
}

// SearchFile reads cfg.FilePath and searches it.
func (s *Searcher) SearchFile(cfg Config) ([]MatchedLine, error) {
	content, err := os.ReadFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return s.Search(cfg, string(content))
}
