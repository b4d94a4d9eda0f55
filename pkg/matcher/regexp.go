package matcher

import (
	"fmt"

	"github.com/dlclark/regexp2"

	"github.com/praetorian-inc/minigrep/pkg/types"
)

// RegexpMatcher implements Matcher using regexp2 for Perl-style regex support.
// The pattern is compiled once at construction and reused for every line.
type RegexpMatcher struct {
	pattern string
	re      *regexp2.Regexp
}

// NewRegexp compiles pattern. RE2 syntax is tried first; patterns using
// Perl-only features fall back to the default regexp2 syntax.
func NewRegexp(pattern string, ignoreCase bool) (*RegexpMatcher, error) {
	re, err := Compile(pattern, ignoreCase)
	if err != nil {
		return nil, err
	}
	return &RegexpMatcher{pattern: pattern, re: re}, nil
}

// WithRegexp wraps an already compiled expression, so a pattern validated
// elsewhere is not compiled twice.
func WithRegexp(re *regexp2.Regexp) *RegexpMatcher {
	return &RegexpMatcher{pattern: re.String(), re: re}
}

// Compile compiles pattern with the options shared by matching and
// highlighting, and sets MatchTimeout.
func Compile(pattern string, ignoreCase bool) (*regexp2.Regexp, error) {
	opts := regexp2.RegexOptions(regexp2.RE2)
	if ignoreCase {
		opts |= regexp2.IgnoreCase
	}

	// Try RE2 mode first (safer, no backtracking)
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		// Fallback to default Perl-compatible mode if RE2 fails (for advanced features like (?x))
		re, err = regexp2.Compile(pattern, opts&^regexp2.RE2)
		if err != nil {
			return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
		}
	}
	re.MatchTimeout = MatchTimeout
	return re, nil
}

// Match returns every line on which the pattern finds a match.
func (m *RegexpMatcher) Match(content string) ([]types.Line, error) {
	lines := types.SplitLines(content)
	matches := make([]types.Line, 0, len(lines)/4+1)

	for _, line := range lines {
		ok, err := m.re.MatchString(line.Text)
		if err != nil {
			return nil, fmt.Errorf("matching line %d: %w", line.Number, err)
		}
		if ok {
			matches = append(matches, line)
		}
	}
	return matches, nil
}

// Pattern returns the source pattern.
func (m *RegexpMatcher) Pattern() string {
	return m.pattern
}
