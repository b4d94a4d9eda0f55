package types

import "strings"

// SplitLines splits content into lines on '\n' boundaries.
// Terminators are excluded, a trailing '\r' is dropped so CRLF bodies behave
// like LF bodies, and a final terminator does not produce an extra empty line.
// Each Line.Text is a substring of content; nothing is copied.
func SplitLines(content string) []Line {
	if content == "" {
		return nil
	}

	lines := make([]Line, 0, strings.Count(content, "\n")+1)
	number := 1
	start := 0
	for start < len(content) {
		end := strings.IndexByte(content[start:], '\n')
		var text string
		if end < 0 {
			text = content[start:]
			start = len(content)
		} else {
			text = content[start : start+end]
			start += end + 1
		}
		text = strings.TrimSuffix(text, "\r")
		lines = append(lines, Line{Number: number, Text: text})
		number++
	}
	return lines
}
