package serve

import (
	"github.com/sirupsen/logrus"

	"github.com/praetorian-inc/minigrep/pkg/config"
	"github.com/praetorian-inc/minigrep/pkg/runner"
	"github.com/praetorian-inc/minigrep/pkg/types"
)

// newRunner builds the runner for q.
func newRunner(q Query, log logrus.FieldLogger) (*runner.Runner, error) {
	policy, err := runner.ParsePolicy(q.OnPatternError)
	if err != nil {
		return nil, err
	}
	return runner.New(runner.Options{
		Regexp:         q.Regexp,
		OnPatternError: policy,
		Logger:         log,
	}), nil
}

// search runs q over one item.
func search(r *runner.Runner, q Query, item ContentItem) (SearchResult, error) {
	cfg := config.Config{Query: q.Query, FilePath: item.Source, IgnoreCase: q.IgnoreCase}
	lines, spans, err := r.Spans(cfg, item.Content)
	if err != nil {
		return SearchResult{}, err
	}

	result := SearchResult{Source: item.Source, Lines: make([]LineResult, 0, len(lines))}
	for i, l := range lines {
		s := spans[i]
		if s == nil {
			s = []types.Span{}
		}
		result.Lines = append(result.Lines, LineResult{Line: l.Number, Text: l.Text, Spans: s})
	}
	return result, nil
}
