package highlight

import (
	"github.com/dlclark/regexp2"
	"golang.org/x/text/cases"

	"github.com/praetorian-inc/minigrep/pkg/matcher"
)

// Pattern is the compiled matching rule for one search invocation.
// Compile it once and share it across every line.
type Pattern struct {
	query      string
	ignoreCase bool
	regexp     bool
	re         *regexp2.Regexp
	folded     string // literal case-insensitive query under Unicode folding
}

// Compile validates and compiles query.
// In literal mode the query is escaped first, so any literal query compiles.
// In regexp mode the query is compiled as written and an invalid expression
// yields a *PatternError.
//
// A case-insensitive literal query is highlighted under Unicode full case
// folding, the same rule the literal matcher uses, so "STRASSE" marks "Straße".
func Compile(query string, ignoreCase, regexp bool) (*Pattern, error) {
	source := query
	if !regexp {
		source = regexp2.Escape(query)
	}

	re, err := matcher.Compile(source, ignoreCase)
	if err != nil {
		return nil, &PatternError{Pattern: query, Err: err}
	}

	p := &Pattern{
		query:      query,
		ignoreCase: ignoreCase,
		regexp:     regexp,
		re:         re,
	}
	if ignoreCase && !regexp {
		p.folded = cases.Fold().String(query)
	}
	return p, nil
}

// Query returns the query the pattern was compiled from.
func (p *Pattern) Query() string {
	return p.query
}

// IgnoreCase reports the case rule the pattern was compiled with.
func (p *Pattern) IgnoreCase() bool {
	return p.ignoreCase
}

// IsRegexp reports whether the query was compiled as a regular expression.
func (p *Pattern) IsRegexp() bool {
	return p.regexp
}

// Regexp returns the compiled expression.
func (p *Pattern) Regexp() *regexp2.Regexp {
	return p.re
}
