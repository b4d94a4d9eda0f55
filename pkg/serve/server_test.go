package serve

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run feeds input to a server and returns its response lines.
func run(t *testing.T, input string) []Response {
	t.Helper()
	out := &bytes.Buffer{}
	srv := NewServer(strings.NewReader(input), out, nil)
	require.NoError(t, srv.Run(context.Background()))

	var resps []Response
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		var resp Response
		require.NoError(t, json.Unmarshal([]byte(line), &resp))
		resps = append(resps, resp)
	}
	return resps
}

func TestServer_SendsReadyOnStart(t *testing.T) {
	in := strings.NewReader("")
	out := &bytes.Buffer{}

	srv := NewServer(in, out, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately to exit after ready

	_ = srv.Run(ctx)

	// Parse first line as ready message
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.NotEmpty(t, lines)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "ready", resp.Type)

	var ready ReadyData
	require.NoError(t, json.Unmarshal(resp.Data, &ready))
	assert.Equal(t, Version, ready.Version)
}

func TestServer_Search(t *testing.T) {
	request := `{"type":"search","payload":{"query":"rust","ignore_case":true,"source":"poem","content":"Rust:\nsafe, fast, productive.\nTrust me."}}` + "\n"
	resps := run(t, request)
	require.Len(t, resps, 2) // ready + search response

	resp := resps[1]
	assert.True(t, resp.Success)
	assert.Equal(t, "search", resp.Type)

	var result SearchResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, "poem", result.Source)
	require.Len(t, result.Lines, 2)
	assert.Equal(t, 1, result.Lines[0].Line)
	assert.Equal(t, "Rust:", result.Lines[0].Text)
	assert.Equal(t, 3, result.Lines[1].Line)
	require.Len(t, result.Lines[1].Spans, 1)
	assert.Equal(t, 1, result.Lines[1].Spans[0].Start)
	assert.Equal(t, 5, result.Lines[1].Spans[0].End)
}

func TestServer_SearchNoMatch(t *testing.T) {
	resps := run(t, `{"type":"search","payload":{"query":"xyz","source":"s","content":"abc"}}`+"\n")
	require.Len(t, resps, 2)

	var result SearchResult
	require.NoError(t, json.Unmarshal(resps[1].Data, &result))
	assert.NotNil(t, result.Lines)
	assert.Empty(t, result.Lines)
}

func TestServer_SearchBatch(t *testing.T) {
	request := `{"type":"search_batch","payload":{"query":"a","items":[{"source":"s1","content":"banana\nkiwi"},{"source":"s2","content":"cherry"},{"source":"s3","content":"a\na"}]}}` + "\n"
	resps := run(t, request)
	require.Len(t, resps, 2)

	resp := resps[1]
	assert.True(t, resp.Success)
	assert.Equal(t, "search_batch", resp.Type)

	var batch BatchSearchResult
	require.NoError(t, json.Unmarshal(resp.Data, &batch))
	require.Len(t, batch.Results, 3)
	assert.Equal(t, 3, batch.Total)
	assert.Len(t, batch.Results[0].Lines, 1)
	assert.Len(t, batch.Results[0].Lines[0].Spans, 3)
	assert.Empty(t, batch.Results[1].Lines)
	assert.Len(t, batch.Results[2].Lines, 2)
}

func TestServer_SearchBatch_EOFAfterRequest(t *testing.T) {
	// responses must be sent even when EOF arrives before the main loop
	// processes the pending request
	for i := 0; i < 10; i++ {
		request := `{"type":"search_batch","payload":{"query":"x","items":[{"source":"s1","content":"x"}]}}` + "\n"
		resps := run(t, request)
		require.Len(t, resps, 2, "iteration %d", i)
		assert.True(t, resps[1].Success, "iteration %d", i)
	}
}

func TestServer_PatternError(t *testing.T) {
	request := `{"type":"search","payload":{"query":"a(b","regexp":true,"source":"s","content":"a(b"}}` + "\n" +
		`{"type":"search","payload":{"query":"a(b","regexp":true,"on_pattern_error":"plain","source":"s","content":"a(b"}}` + "\n"
	resps := run(t, request)
	require.Len(t, resps, 3)

	assert.False(t, resps[1].Success)
	assert.Contains(t, resps[1].Error, "invalid pattern")

	assert.True(t, resps[2].Success)
	var result SearchResult
	require.NoError(t, json.Unmarshal(resps[2].Data, &result))
	require.Len(t, result.Lines, 1)
	assert.Empty(t, result.Lines[0].Spans)
}

func TestServer_BadPolicy(t *testing.T) {
	resps := run(t, `{"type":"search","payload":{"query":"a","on_pattern_error":"ignore","content":"a"}}`+"\n")
	require.Len(t, resps, 2)
	assert.False(t, resps[1].Success)
	assert.Equal(t, "search", resps[1].Type)
}

func TestServer_GracefulShutdownOnContext(t *testing.T) {
	// Slow reader that blocks
	pr, pw := io.Pipe()
	out := &bytes.Buffer{}

	srv := NewServer(pr, out, nil)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error)
	go func() {
		done <- srv.Run(ctx)
	}()

	// Wait for ready signal
	time.Sleep(100 * time.Millisecond)

	// Cancel context
	cancel()
	pw.Close()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}

func TestServer_CloseCommand(t *testing.T) {
	resps := run(t, `{"type":"close","payload":{}}`+"\n"+`{"type":"search","payload":{"query":"a","content":"a"}}`+"\n")
	require.Len(t, resps, 1) // Only ready signal
}

func TestServer_UnknownCommand(t *testing.T) {
	resps := run(t, `{"type":"invalid","payload":{}}`+"\n")
	require.Len(t, resps, 2)
	assert.False(t, resps[1].Success)
	assert.Contains(t, resps[1].Error, "unknown request type")
}

func TestServer_MalformedJSON(t *testing.T) {
	resps := run(t, `{invalid json}`+"\n")
	require.GreaterOrEqual(t, len(resps), 2)
	assert.False(t, resps[1].Success)
	assert.Equal(t, "decode", resps[1].Type)
}
