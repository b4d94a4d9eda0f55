package highlight

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/praetorian-inc/minigrep/pkg/types"
)

// foldedSegment is the case-folded text of one plain segment. For every
// folded byte it records the original rune it came from.
type foldedSegment struct {
	text  string
	start []int // original byte offset of the source rune
	end   []int // original byte offset just past the source rune
	next  []int // folded offset where the following rune begins
}

// foldSegment folds seg one rune at a time so hits in the folded text can be
// mapped back to whole runes of line.
func foldSegment(line string, seg segment) foldedSegment {
	fold := cases.Fold()
	text := line[seg.start:seg.end]

	var b strings.Builder
	b.Grow(len(text))
	fs := foldedSegment{
		start: make([]int, 0, len(text)),
		end:   make([]int, 0, len(text)),
		next:  make([]int, 0, len(text)),
	}
	for i := 0; i < len(text); {
		_, w := utf8.DecodeRuneInString(text[i:])
		f := fold.String(text[i : i+w])
		b.WriteString(f)
		next := b.Len()
		for j := 0; j < len(f); j++ {
			fs.start = append(fs.start, seg.start+i)
			fs.end = append(fs.end, seg.start+i+w)
			fs.next = append(fs.next, next)
		}
		i += w
	}
	fs.text = b.String()
	return fs
}

// scanFolded finds the folded query in a plain segment. Spans cover whole
// original runes, so "ss" in "Maße" wraps the "ß".
func (h *Highlighter) scanFolded(line string, seg segment, emit func(types.Span)) {
	query := h.pattern.folded
	fs := foldSegment(line, seg)

	pos := 0
	for pos < len(fs.text) {
		i := strings.Index(fs.text[pos:], query)
		if i < 0 {
			return
		}
		first := pos + i
		last := first + len(query) - 1
		emit(types.Span{Start: fs.start[first], End: fs.end[last]})
		pos = fs.next[last]
	}
}
