package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/praetorian-inc/minigrep/pkg/config"
	"github.com/praetorian-inc/minigrep/pkg/sarif"
	"github.com/praetorian-inc/minigrep/pkg/types"
)

// styles holds color formatters for path and line-number prefixes
type styles struct {
	path       *color.Color
	lineNumber *color.Color
	separator  *color.Color
}

// newStyles creates color formatters for human output
func newStyles(enabled bool) *styles {
	s := &styles{
		path:       color.New(color.FgMagenta),
		lineNumber: color.New(color.FgGreen),
		separator:  color.New(color.FgCyan),
	}

	if enabled {
		s.path.EnableColor()
		s.lineNumber.EnableColor()
		s.separator.EnableColor()
	} else {
		s.path.DisableColor()
		s.lineNumber.DisableColor()
		s.separator.DisableColor()
	}

	return s
}

// colorEnabled decides whether to emit colour for mode. In auto mode colour
// requires a terminal on out and NO_COLOR unset.
func colorEnabled(mode string, out io.Writer, env config.EnvSource) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	if _, ok := env.Lookup("NO_COLOR"); ok {
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writer renders search results.
type writer struct {
	out         io.Writer
	styles      *styles
	lineNumbers bool
	json        *json.Encoder
	report      *sarif.Report // set for sarif output
}

func newWriter(out io.Writer, opts searchOptions, colored bool) *writer {
	return &writer{
		out:         out,
		styles:      newStyles(colored),
		lineNumbers: opts.lineNumbers,
		json:        json.NewEncoder(out),
	}
}

// writeHuman prints one matched line per output line. path is empty when
// only one body is searched.
func (w *writer) writeHuman(path string, lines []types.MatchedLine) error {
	sep := w.styles.separator.Sprint(":")
	for _, l := range lines {
		prefix := ""
		if path != "" {
			prefix += w.styles.path.Sprint(path) + sep
		}
		if w.lineNumbers {
			prefix += w.styles.lineNumber.Sprint(l.Line().Number) + sep
		}
		if _, err := fmt.Fprintln(w.out, prefix+l.Text()); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}

// jsonMatch is one line of JSON output.
type jsonMatch struct {
	Path  string       `json:"path"`
	Line  int          `json:"line"`
	Text  string       `json:"text"`
	Spans []types.Span `json:"spans"`
}

// writeStructured records lines in the SARIF report when one is set and
// otherwise emits one JSON object per matched line.
func (w *writer) writeStructured(path string, lines []types.Line, spans [][]types.Span) error {
	if w.report != nil {
		for i, l := range lines {
			w.report.AddLine(path, l, spans[i])
		}
		return nil
	}

	for i, l := range lines {
		m := jsonMatch{
			Path:  path,
			Line:  l.Number,
			Text:  l.Text,
			Spans: spans[i],
		}
		if m.Spans == nil {
			m.Spans = []types.Span{}
		}
		if err := w.json.Encode(m); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}

// flush writes buffered output. Only the SARIF report is buffered, and it is
// always written, even when empty.
func (w *writer) flush() error {
	if w.report == nil {
		return nil
	}
	data, err := w.report.ToJSON()
	if err != nil {
		return fmt.Errorf("encoding sarif: %w", err)
	}
	if _, err := fmt.Fprintln(w.out, string(data)); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
