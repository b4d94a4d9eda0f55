package highlight

import "strings"

// segment is a run of the line that is either searchable text or opaque
// content (an already-marked span or a terminal escape) copied verbatim.
type segment struct {
	start, end int
	opaque     bool
}

// split cuts line into plain and opaque segments. Existing Begin...End spans
// and ANSI CSI sequences are opaque.
func split(line string, m Markers) []segment {
	var segs []segment
	plainStart := 0
	i := 0
	for i < len(line) {
		end := opaqueAt(line, i, m)
		if end <= i {
			i++
			continue
		}
		if i > plainStart {
			segs = append(segs, segment{start: plainStart, end: i})
		}
		segs = append(segs, segment{start: i, end: end, opaque: true})
		i = end
		plainStart = end
	}
	if plainStart < len(line) {
		segs = append(segs, segment{start: plainStart, end: len(line)})
	}
	return segs
}

// opaqueAt returns the end of an opaque run starting at i, or i when none starts there.
func opaqueAt(line string, i int, m Markers) int {
	if m.Begin != "" && strings.HasPrefix(line[i:], m.Begin) {
		rest := i + len(m.Begin)
		if m.End == "" {
			return rest
		}
		if j := strings.Index(line[rest:], m.End); j >= 0 {
			return rest + j + len(m.End)
		}
	}
	return csiEnd(line, i)
}

// csiEnd returns the end of the CSI sequence ESC [ params intermediates final
// starting at i, or i when there is none.
func csiEnd(line string, i int) int {
	if i+1 >= len(line) || line[i] != 0x1b || line[i+1] != '[' {
		return i
	}
	j := i + 2
	for j < len(line) && line[j] >= 0x30 && line[j] <= 0x3f {
		j++
	}
	for j < len(line) && line[j] >= 0x20 && line[j] <= 0x2f {
		j++
	}
	if j < len(line) && line[j] >= 0x40 && line[j] <= 0x7e {
		return j + 1
	}
	return i
}
