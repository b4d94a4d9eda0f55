package types

// Line is one line of a searched body without its terminator.
type Line struct {
	Number int    // 1-based line number within the body
	Text   string // view into the original body
}

// MatchKind tags the two shapes a MatchedLine can take.
type MatchKind int

const (
	// Plain carries the original line untouched.
	Plain MatchKind = iota
	// Highlighted carries an owned copy of the line with emphasis markers.
	Highlighted
)

// String returns the string representation of MatchKind.
func (k MatchKind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Highlighted:
		return "highlighted"
	default:
		return "unknown"
	}
}

// MatchedLine is a line returned by a search. It is either a Plain view of
// the original line or a Highlighted rendering built from it.
type MatchedLine struct {
	kind     MatchKind
	line     Line
	rendered string
}

// PlainLine wraps an unmodified line.
func PlainLine(line Line) MatchedLine {
	return MatchedLine{kind: Plain, line: line}
}

// HighlightedLine pairs a line with its rendered form.
func HighlightedLine(line Line, rendered string) MatchedLine {
	return MatchedLine{kind: Highlighted, line: line, rendered: rendered}
}

// Kind reports whether the line is Plain or Highlighted.
func (m MatchedLine) Kind() MatchKind {
	return m.kind
}

// IsHighlighted is shorthand for Kind() == Highlighted.
func (m MatchedLine) IsHighlighted() bool {
	return m.kind == Highlighted
}

// Line returns the original line.
func (m MatchedLine) Line() Line {
	return m.line
}

// Text returns the text to display: the rendered form for highlighted lines,
// the original text otherwise.
func (m MatchedLine) Text() string {
	if m.kind == Highlighted {
		return m.rendered
	}
	return m.line.Text
}
