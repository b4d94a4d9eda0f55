package matcher

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/praetorian-inc/minigrep/pkg/prefilter"
	"github.com/praetorian-inc/minigrep/pkg/types"
)

// ExactMatcher implements literal substring matching with a case sensitivity option.
type ExactMatcher struct {
	query      string
	ignoreCase bool
	prefilter  *prefilter.Prefilter // case-sensitive only
}

// NewExact creates a literal matcher. With ignoreCase, both the query and
// every candidate line are compared under Unicode default case folding.
func NewExact(query string, ignoreCase bool) *ExactMatcher {
	m := &ExactMatcher{
		query:      query,
		ignoreCase: ignoreCase,
	}
	if ignoreCase {
		m.query = cases.Fold().String(query)
	} else {
		m.prefilter = prefilter.New([]string{query})
	}
	return m
}

// Match returns every line containing the query.
func (m *ExactMatcher) Match(content string) ([]types.Line, error) {
	if m.prefilter != nil && !m.prefilter.MayContain([]byte(content)) {
		return []types.Line{}, nil
	}

	lines := types.SplitLines(content)
	matches := make([]types.Line, 0, len(lines)/4+1)

	if !m.ignoreCase {
		for _, line := range lines {
			if strings.Contains(line.Text, m.query) {
				matches = append(matches, line)
			}
		}
		return matches, nil
	}

	// Caser keeps state between calls, so one per Match keeps the matcher reentrant
	fold := cases.Fold()
	for _, line := range lines {
		if strings.Contains(fold.String(line.Text), m.query) {
			matches = append(matches, line)
		}
	}
	return matches, nil
}

// Query returns the query as compared against lines (folded when case-insensitive).
func (m *ExactMatcher) Query() string {
	return m.query
}

// IgnoreCase reports whether the matcher folds case.
func (m *ExactMatcher) IgnoreCase() bool {
	return m.ignoreCase
}
