package runner

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/praetorian-inc/minigrep/pkg/highlight"
)

// Policy decides what a search does when the query is not a valid pattern.
type Policy int

const (
	// PolicyAbort returns the PatternError and no results.
	PolicyAbort Policy = iota
	// PolicyPlain disables highlighting for the whole search and returns
	// plain lines. In regexp mode the query is then matched literally.
	PolicyPlain
)

// String returns the string representation of Policy.
func (p Policy) String() string {
	switch p {
	case PolicyAbort:
		return "abort"
	case PolicyPlain:
		return "plain"
	default:
		return "unknown"
	}
}

// ParsePolicy parses "abort" or "plain".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "abort":
		return PolicyAbort, nil
	case "plain":
		return PolicyPlain, nil
	default:
		return PolicyAbort, fmt.Errorf("unknown pattern error policy %q (want abort or plain)", s)
	}
}

// Options configures a Runner.
type Options struct {
	// Highlight wraps each match in Markers.
	Highlight bool

	// Markers used when Highlight is set. Zero value means DefaultMarkers.
	Markers highlight.Markers

	// Regexp treats the query as a regular expression.
	Regexp bool

	// OnPatternError is applied once per search.
	OnPatternError Policy

	// Logger receives policy fallbacks. Nil discards.
	Logger logrus.FieldLogger
}

// DefaultOptions returns plain literal search options.
func DefaultOptions() Options {
	return Options{OnPatternError: PolicyAbort}
}

func (o Options) markers() highlight.Markers {
	if o.Markers.IsZero() {
		return highlight.DefaultMarkers()
	}
	return o.Markers
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
