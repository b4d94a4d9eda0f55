// Package runner ties the matcher and highlighter together for one search.
package runner

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/praetorian-inc/minigrep/pkg/config"
	"github.com/praetorian-inc/minigrep/pkg/highlight"
	"github.com/praetorian-inc/minigrep/pkg/matcher"
	"github.com/praetorian-inc/minigrep/pkg/types"
)

// Runner executes searches. It holds no per-search state and is safe for
// concurrent use.
type Runner struct {
	opts Options
	log  logrus.FieldLogger
}

// New creates a Runner.
func New(opts Options) *Runner {
	return &Runner{opts: opts, log: opts.logger()}
}

// Run is shorthand for New(opts).Run(cfg, content).
func Run(cfg config.Config, content string, opts Options) ([]types.MatchedLine, error) {
	return New(opts).Run(cfg, content)
}

// Run returns every line of content that matches cfg, in original order.
// The result is empty, not nil, when nothing matches.
func (r *Runner) Run(cfg config.Config, content string) ([]types.MatchedLine, error) {
	m, pat, err := r.prepare(cfg)
	if err != nil {
		return nil, err
	}

	lines, err := m.Match(content)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}

	var hl *highlight.Highlighter
	if r.opts.Highlight && pat != nil {
		hl = highlight.New(pat, r.opts.markers())
	}

	out := make([]types.MatchedLine, 0, len(lines))
	for _, line := range lines {
		if hl == nil {
			out = append(out, types.PlainLine(line))
			continue
		}
		rendered, err := hl.Highlight(line.Text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line.Number, err)
		}
		out = append(out, types.HighlightedLine(line, rendered))
	}
	return out, nil
}

// Spans returns the matching lines of content together with the byte ranges
// of the matches on each line. Spans are nil for every line when the policy
// fell back to a plain search.
func (r *Runner) Spans(cfg config.Config, content string) ([]types.Line, [][]types.Span, error) {
	m, pat, err := r.prepare(cfg)
	if err != nil {
		return nil, nil, err
	}
	lines, err := m.Match(content)
	if err != nil {
		return nil, nil, fmt.Errorf("searching: %w", err)
	}

	spans := make([][]types.Span, len(lines))
	if pat == nil {
		return lines, spans, nil
	}
	h := highlight.New(pat, r.opts.markers())
	for i, line := range lines {
		if spans[i], err = h.Spans(line.Text); err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line.Number, err)
		}
	}
	return lines, spans, nil
}

// prepare compiles the pattern once per search and selects the matcher.
// The returned Pattern is nil when the policy fell back to a plain search.
func (r *Runner) prepare(cfg config.Config) (matcher.Matcher, *highlight.Pattern, error) {
	pat, err := highlight.Compile(cfg.Query, cfg.IgnoreCase, r.opts.Regexp)
	if err != nil {
		if r.opts.OnPatternError == PolicyAbort {
			return nil, nil, err
		}
		r.log.WithError(err).WithField("query", cfg.Query).
			Warn("invalid pattern, searching literally without highlighting")
		return matcher.NewExact(cfg.Query, cfg.IgnoreCase), nil, nil
	}

	if r.opts.Regexp {
		return matcher.WithRegexp(pat.Regexp()), pat, nil
	}
	return matcher.NewExact(cfg.Query, cfg.IgnoreCase), pat, nil
}
