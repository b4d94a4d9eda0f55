package enum

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNeedle = "quarterly needle"

func buildZip(t *testing.T, members map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range members {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)
	return buildZip(t, map[string]string{
		"word/document.xml":   body.String(),
		"[Content_Types].xml": `<Types/>`,
	})
}

func buildXLSX(t *testing.T, shared ...string) []byte {
	t.Helper()
	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?><sst>`)
	for _, s := range shared {
		body.WriteString(`<si><t>` + s + `</t></si>`)
	}
	body.WriteString(`</sst>`)
	return buildZip(t, map[string]string{
		"xl/sharedStrings.xml":     body.String(),
		"xl/worksheets/sheet1.xml": `<worksheet><sheetData><row><c><v>42</v></c><c><v>7</v></c></row></sheetData></worksheet>`,
		"xl/styles.xml":            `<styleSheet><fonts><font>ignored</font></fonts></styleSheet>`,
	})
}

func TestExtractText_DOCX(t *testing.T) {
	results, err := ExtractText("report.docx", buildDOCX(t, "first paragraph", testNeedle))
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "word/document.xml", results[0].Name)
	assert.Equal(t, "first paragraph\n"+testNeedle, string(results[0].Content))
}

func TestExtractText_XLSX(t *testing.T) {
	results, err := ExtractText("BOOK.XLSX", buildXLSX(t, "alpha", testNeedle))
	require.NoError(t, err)

	byName := map[string]string{}
	for _, r := range results {
		byName[r.Name] = string(r.Content)
	}
	assert.Equal(t, "alpha\n"+testNeedle, byName["xl/sharedStrings.xml"])
	assert.Equal(t, "42 7", byName["xl/worksheets/sheet1.xml"])
	assert.NotContains(t, byName, "xl/styles.xml")
}

func TestExtractText_Invalid(t *testing.T) {
	for _, name := range []string{"broken.docx", "broken.xlsx", "broken.pdf", "broken.7z"} {
		t.Run(name, func(t *testing.T) {
			_, err := ExtractText(name, []byte("not really a document"))
			assert.Error(t, err)
		})
	}
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := ExtractText("file.txt", []byte("hello"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type: .txt")
}

func TestExtractBlobs(t *testing.T) {
	blobs, err := extractBlobs("docs/report.docx", buildDOCX(t, testNeedle))
	require.NoError(t, err)
	require.Len(t, blobs, 1)
	assert.Equal(t, "docs/report.docx!word/document.xml", blobs[0].Path())
	assert.Equal(t, "archive", blobs[0].Provenance.Kind())
}

func TestFileEnumerator(t *testing.T) {
	tmpDir := t.TempDir()

	text := filepath.Join(tmpDir, ".hidden-poem.txt")
	require.NoError(t, os.WriteFile(text, []byte("Rust:\nsafe"), 0644))

	var got []Blob
	err := NewFileEnumerator(Config{Root: text}).Enumerate(context.Background(), func(b Blob) error {
		got = append(got, b)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, text, got[0].Path())
	assert.Equal(t, "Rust:\nsafe", string(got[0].Content))

	doc := filepath.Join(tmpDir, "report.docx")
	require.NoError(t, os.WriteFile(doc, buildDOCX(t, testNeedle), 0644))

	got = nil
	err = NewFileEnumerator(Config{Root: doc, ExtractArchives: "docx,pdf"}).Enumerate(context.Background(), func(b Blob) error {
		got = append(got, b)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, doc+"!word/document.xml", got[0].Path())
}

func TestFileEnumerator_Missing(t *testing.T) {
	err := NewFileEnumerator(Config{Root: filepath.Join(t.TempDir(), "nope")}).Enumerate(context.Background(), func(Blob) error {
		t.Fatal("callback must not run")
		return nil
	})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestShouldExtract(t *testing.T) {
	tests := []struct {
		setting string
		ext     string
		want    bool
	}{
		{"", ".pdf", false},
		{"all", ".pdf", true},
		{"all", ".txt", false},
		{"pdf,docx", ".docx", true},
		{"PDF, 7z", ".7z", true},
		{"pdf", ".xlsx", false},
	}

	for _, tt := range tests {
		t.Run(tt.setting+tt.ext, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldExtract(Config{ExtractArchives: tt.setting}, tt.ext))
		})
	}
}

func TestGetExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"file.7z", ".7z"},
		{"file.xlsx", ".xlsx"},
		{"FILE.XLSX", ".xlsx"},
		{"path/to/file.pdf", ".pdf"},
		{"file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := getExtension(tt.path)
			if got != tt.want {
				t.Errorf("getExtension(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsBinary(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    bool
	}{
		{name: "text content", content: []byte("Hello, World!"), want: false},
		{name: "binary content with null byte", content: []byte{0x00, 0x01, 0x02, 0x03}, want: true},
		{name: "mixed content with null byte", content: []byte("Hello\x00World"), want: true},
		{name: "empty content", content: []byte{}, want: false},
		{name: "null past first 8KB", content: append(bytes.Repeat([]byte("a"), 9000), 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isBinary(tt.content); got != tt.want {
				t.Errorf("isBinary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "multiple spaces", input: "Hello    World", want: "Hello World"},
		{name: "leading and trailing spaces", input: "  Hello World  ", want: "Hello World"},
		{name: "newlines and tabs", input: "Hello\n\tWorld", want: "Hello World"},
		{name: "normal text", input: "Hello World", want: "Hello World"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanText(tt.input); got != tt.want {
				t.Errorf("cleanText() = %q, want %q", got, tt.want)
			}
		})
	}
}
