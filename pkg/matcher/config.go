package matcher

import "time"

// Config selects and parameterises a Matcher.
type Config struct {
	// Query is the text (or pattern, when Regexp is set) to look for.
	Query string

	// IgnoreCase enables case-insensitive matching.
	IgnoreCase bool

	// Regexp treats Query as a regular expression instead of literal text.
	Regexp bool
}

// MatchTimeout bounds a single regexp evaluation to prevent catastrophic
// backtracking on hostile patterns.
const MatchTimeout = 5 * time.Second
