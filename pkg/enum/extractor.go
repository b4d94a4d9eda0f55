package enum

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/bodgit/sevenzip"
	"github.com/ledongthuc/pdf"

	"github.com/praetorian-inc/minigrep/pkg/types"
)

// ExtractedContent represents text extracted from a binary file.
type ExtractedContent struct {
	Name    string // path within the archive (e.g., "xl/sharedStrings.xml")
	Content []byte // extracted text content
}

// maxMemberSize caps how much of a single archive member is read.
const maxMemberSize = 64 << 20

var extractors = map[string]func([]byte) ([]ExtractedContent, error){
	".xlsx": extractXLSX,
	".docx": extractDOCX,
	".pdf":  extractPDF,
	".7z":   extract7z,
}

func isExtractable(ext string) bool {
	_, ok := extractors[ext]
	return ok
}

// ExtractText extracts text from supported binary files (xlsx, docx, pdf, 7z).
func ExtractText(path string, content []byte) ([]ExtractedContent, error) {
	ext := getExtension(path)
	fn, ok := extractors[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
	return fn(content)
}

// extractBlobs runs ExtractText and names each result archive!member.
func extractBlobs(path string, content []byte) ([]Blob, error) {
	extracted, err := ExtractText(path, content)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", path, err)
	}
	blobs := make([]Blob, 0, len(extracted))
	for _, ec := range extracted {
		blobs = append(blobs, Blob{
			Content: ec.Content,
			Provenance: types.ArchiveProvenance{
				ArchivePath: path,
				MemberPath:  ec.Name,
			},
		})
	}
	return blobs, nil
}

// extractXLSX extracts text from Excel files (xlsx format).
func extractXLSX(content []byte) ([]ExtractedContent, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx as zip: %w", err)
	}

	return extractZipXML(zipReader, func(name string) bool {
		if name == "xl/sharedStrings.xml" {
			return true
		}
		return strings.HasPrefix(name, "xl/worksheets/sheet") && strings.HasSuffix(name, ".xml")
	}), nil
}

// extractDOCX extracts text from Word documents (docx format).
func extractDOCX(content []byte) ([]ExtractedContent, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open docx as zip: %w", err)
	}

	return extractZipXML(zipReader, func(name string) bool {
		return name == "word/document.xml"
	}), nil
}

// extractZipXML collects the text nodes of every member selected by want.
// Each paragraph-level text run becomes its own line.
func extractZipXML(zr *zip.Reader, want func(string) bool) []ExtractedContent {
	var results []ExtractedContent
	for _, file := range zr.File {
		if !want(file.Name) {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(io.LimitReader(rc, maxMemberSize))
		rc.Close()
		if err != nil {
			continue
		}

		if text := extractXMLText(data); len(text) > 0 {
			results = append(results, ExtractedContent{
				Name:    file.Name,
				Content: []byte(text),
			})
		}
	}
	return results
}

// extractPDF extracts text from PDF files using ledongthuc/pdf.
func extractPDF(content []byte) ([]ExtractedContent, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	// Extract text from all pages
	var text strings.Builder
	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Continue on error to extract what we can
			continue
		}

		text.WriteString(pageText)
		text.WriteString("\n")
	}

	extracted := text.String()
	if len(strings.TrimSpace(extracted)) == 0 {
		return nil, nil
	}

	return []ExtractedContent{
		{
			Name:    "content",
			Content: []byte(extracted),
		},
	}, nil
}

// extract7z returns the text members of a 7z archive in name order.
// Binary members are skipped.
func extract7z(content []byte) ([]ExtractedContent, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z archive: %w", err)
	}

	var results []ExtractedContent
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(io.LimitReader(rc, maxMemberSize))
		rc.Close()
		if err != nil || len(data) == 0 || isBinary(data) {
			continue
		}
		results = append(results, ExtractedContent{
			Name:    filepath.ToSlash(f.Name),
			Content: data,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})
	return results, nil
}

// extractXMLText extracts text content from XML data.
// Text within one paragraph (<w:p>, <si>, <row>) is joined by spaces and
// paragraphs are separated by newlines so line search stays meaningful.
func extractXMLText(data []byte) string {
	var lines []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.EndElement:
			switch t.Name.Local {
			case "p", "si", "row":
				flush()
			}
		case xml.CharData:
			content := cleanText(string(t))
			if content == "" {
				continue
			}
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(content)
		}
	}
	flush()

	return strings.Join(lines, "\n")
}

// cleanText removes extra whitespace and non-printable characters.
func cleanText(s string) string {
	var result strings.Builder
	lastSpace := false

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastSpace {
				result.WriteRune(' ')
				lastSpace = true
			}
		} else if unicode.IsPrint(r) {
			result.WriteRune(r)
			lastSpace = false
		}
	}

	return strings.TrimSpace(result.String())
}
