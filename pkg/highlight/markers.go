package highlight

import (
	"strings"

	"github.com/fatih/color"
)

// Markers are the begin/end emphasis sequences placed around each match.
type Markers struct {
	Begin string
	End   string
}

// DefaultMarkers returns bold red ANSI markers. Colour is forced on for the
// returned sequences; callers decide whether to highlight at all.
func DefaultMarkers() Markers {
	return ColorMarkers(color.New(color.Bold, color.FgRed))
}

// ColorMarkers derives begin/end sequences from a fatih/color style.
func ColorMarkers(c *color.Color) Markers {
	c.EnableColor()
	rendered := c.Sprint("\x00")
	i := strings.IndexByte(rendered, 0)
	return Markers{
		Begin: rendered[:i],
		End:   rendered[i+1:],
	}
}

// PlainMarkers returns literal text markers, e.g. PlainMarkers("[", "]").
// Text between an existing begin/end pair in a line is left alone, so an
// occurrence that already sits inside such a pair is never wrapped: with
// markers "<" and ">", query "<a" on "x <a> <a" gives "x <a> <<a>".
func PlainMarkers(begin, end string) Markers {
	return Markers{Begin: begin, End: end}
}

// IsZero reports whether no markers are set.
func (m Markers) IsZero() bool {
	return m.Begin == "" && m.End == ""
}
