package runner

import (
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/minigrep/pkg/config"
	"github.com/praetorian-inc/minigrep/pkg/highlight"
	"github.com/praetorian-inc/minigrep/pkg/types"
)

const poem = "Rust:\nsafe, fast, productive.\nPick three.\nTrust me.\nDuct tape."

func texts(lines []types.MatchedLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text()
	}
	return out
}

func TestRun(t *testing.T) {
	brackets := highlight.PlainMarkers("[", "]")

	tests := []struct {
		name string
		cfg  config.Config
		opts Options
		want []string
	}{
		{
			name: "case sensitive plain",
			cfg:  config.Config{Query: "duct"},
			want: []string{"safe, fast, productive."},
		},
		{
			name: "case insensitive plain",
			cfg:  config.Config{Query: "rUsT", IgnoreCase: true},
			want: []string{"Rust:", "Trust me."},
		},
		{
			name: "highlighted",
			cfg:  config.Config{Query: "duct"},
			opts: Options{Highlight: true, Markers: brackets},
			want: []string{"safe, fast, pro[duct]ive."},
		},
		{
			name: "highlighted case insensitive keeps original case",
			cfg:  config.Config{Query: "duct", IgnoreCase: true},
			opts: Options{Highlight: true, Markers: brackets},
			want: []string{"safe, fast, pro[duct]ive.", "[Duct] tape."},
		},
		{
			name: "regexp",
			cfg:  config.Config{Query: `^[PT]`},
			opts: Options{Regexp: true, Highlight: true, Markers: brackets},
			want: []string{"[P]ick three.", "[T]rust me."},
		},
		{
			name: "literal metacharacters",
			cfg:  config.Config{Query: "."},
			opts: Options{Highlight: true, Markers: brackets},
			want: []string{"safe, fast, productive[.]", "Pick three[.]", "Trust me[.]", "Duct tape[.]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Run(tt.cfg, poem, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, texts(got))
			for _, l := range got {
				assert.Equal(t, tt.opts.Highlight, l.IsHighlighted())
			}
		})
	}
}

func TestRun_CaseFoldedHighlight(t *testing.T) {
	opts := Options{Highlight: true, Markers: highlight.PlainMarkers("<", ">")}

	tests := []struct {
		query string
		line  string
		want  string
	}{
		{query: "STRASSE", line: "Straße", want: "<Straße>"},
		{query: "ΣΑΣ", line: "σας", want: "<σας>"},
		{query: "ss", line: "Maße", want: "Ma<ß>e"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := Run(config.Config{Query: tt.query, IgnoreCase: true}, tt.line, opts)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.True(t, got[0].IsHighlighted())
			assert.Equal(t, tt.want, got[0].Text())
		})
	}
}

func TestRun_NoMatchIsEmptyNotNil(t *testing.T) {
	got, err := Run(config.Config{Query: "xyz"}, poem, DefaultOptions())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRun_LineNumbers(t *testing.T) {
	got, err := Run(config.Config{Query: "e."}, poem, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, got, 4)
	for i, want := range []int{2, 3, 4, 5} {
		assert.Equal(t, want, got[i].Line().Number)
	}
}

func TestRun_PatternErrorAbort(t *testing.T) {
	got, err := Run(config.Config{Query: "a(b"}, "a(b\n", Options{Regexp: true, Highlight: true})
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, highlight.ErrInvalidPattern))

	var pe *highlight.PatternError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "a(b", pe.Pattern)
}

func TestRun_PatternErrorPlain(t *testing.T) {
	logger, hook := test.NewNullLogger()
	opts := Options{
		Regexp:         true,
		Highlight:      true,
		Markers:        highlight.PlainMarkers("[", "]"),
		OnPatternError: PolicyPlain,
		Logger:         logger,
	}

	got, err := Run(config.Config{Query: "a(b"}, "xa(by\nab\n", opts)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].IsHighlighted())
	assert.Equal(t, "xa(by", got[0].Text())

	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestRunner_Reentrant(t *testing.T) {
	r := New(Options{Highlight: true, Markers: highlight.PlainMarkers("<", ">")})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := r.Run(config.Config{Query: "rust", IgnoreCase: true}, poem)
			assert.NoError(t, err)
			assert.Equal(t, []string{"<Rust>:", "T<rust> me."}, texts(got))
		}()
	}
	wg.Wait()
}

func TestRunner_Spans(t *testing.T) {
	r := New(DefaultOptions())
	lines, spans, err := r.Spans(config.Config{Query: "a"}, "banana\nxyz\ncat")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, []types.Span{{Start: 1, End: 2}, {Start: 3, End: 4}, {Start: 5, End: 6}}, spans[0])
	assert.Equal(t, []types.Span{{Start: 1, End: 2}}, spans[1])
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("plain")
	require.NoError(t, err)
	assert.Equal(t, PolicyPlain, p)

	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyAbort, p)

	_, err = ParsePolicy("ignore")
	assert.Error(t, err)
	assert.Equal(t, "plain", PolicyPlain.String())
}
