package highlight

import (
	"fmt"
	"strings"

	"github.com/praetorian-inc/minigrep/pkg/types"
)

// Highlighter wraps every match of a Pattern in Markers.
//
// Matches are leftmost and non-overlapping. Text already inside a
// Begin...End pair, and ANSI escape sequences, are never searched, so
// highlighting an already-highlighted line returns it unchanged. With plain
// text markers a line that happens to contain Begin...End is treated the
// same way.
type Highlighter struct {
	pattern *Pattern
	markers Markers
}

// New returns a Highlighter for pattern using markers.
func New(pattern *Pattern, markers Markers) *Highlighter {
	return &Highlighter{pattern: pattern, markers: markers}
}

// Markers returns the markers in use.
func (h *Highlighter) Markers() Markers {
	return h.markers
}

// Highlight returns line with every match wrapped in the markers.
// All non-match characters are preserved in order. An empty query matches
// nothing visible and the line comes back unchanged.
func (h *Highlighter) Highlight(line string) (string, error) {
	if h.pattern.query == "" || h.markers.IsZero() {
		return line, nil
	}

	var b strings.Builder
	b.Grow(len(line))
	prev := 0
	err := h.scan(line, func(s types.Span) {
		b.WriteString(line[prev:s.Start])
		b.WriteString(h.markers.Begin)
		b.WriteString(line[s.Start:s.End])
		b.WriteString(h.markers.End)
		prev = s.End
	})
	if err != nil {
		return "", err
	}
	b.WriteString(line[prev:])
	return b.String(), nil
}

// Spans returns the byte ranges of line that Highlight would wrap.
func (h *Highlighter) Spans(line string) ([]types.Span, error) {
	if h.pattern.query == "" {
		return nil, nil
	}
	var spans []types.Span
	err := h.scan(line, func(s types.Span) {
		spans = append(spans, s)
	})
	return spans, err
}

func (h *Highlighter) scan(line string, emit func(types.Span)) error {
	for _, seg := range split(line, h.markers) {
		if seg.opaque {
			continue
		}
		if h.pattern.folded != "" {
			h.scanFolded(line, seg, emit)
			continue
		}
		if err := h.scanPlain(line, seg, emit); err != nil {
			return err
		}
	}
	return nil
}

// scanPlain matches within one plain segment. regexp2 reports rune indices,
// so byte offsets are recorded per rune while decoding.
func (h *Highlighter) scanPlain(line string, seg segment, emit func(types.Span)) error {
	text := line[seg.start:seg.end]
	runes := make([]rune, 0, len(text))
	offsets := make([]int, 0, len(text)+1)
	for i, r := range text {
		runes = append(runes, r)
		offsets = append(offsets, seg.start+i)
	}
	offsets = append(offsets, seg.end)

	m, err := h.pattern.re.FindRunesMatch(runes)
	for m != nil && err == nil {
		if m.Length > 0 {
			emit(types.Span{
				Start: offsets[m.Index],
				End:   offsets[m.Index+m.Length],
			})
		}
		m, err = h.pattern.re.FindNextMatch(m)
	}
	if err != nil {
		return fmt.Errorf("highlighting %q: %w", h.pattern.query, err)
	}
	return nil
}
