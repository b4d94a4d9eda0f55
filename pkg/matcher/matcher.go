package matcher

import (
	"github.com/praetorian-inc/minigrep/pkg/types"
)

// Matcher selects the lines of a body that contain a query.
type Matcher interface {
	// Match splits content into lines and returns, in original order, every
	// line that satisfies the matcher. Duplicate lines are kept.
	Match(content string) ([]types.Line, error)
}

// New creates the Matcher variant selected by cfg.
//   - Regexp: the query is a regexp2 pattern (compile errors are returned).
//   - IgnoreCase: Unicode case-folded containment.
//   - otherwise: exact containment.
func New(cfg Config) (Matcher, error) {
	if cfg.Regexp {
		return NewRegexp(cfg.Query, cfg.IgnoreCase)
	}
	return NewExact(cfg.Query, cfg.IgnoreCase), nil
}
