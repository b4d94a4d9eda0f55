package prefilter

import (
	"github.com/cloudflare/ahocorasick"
)

// Prefilter uses Aho-Corasick to reject bodies that cannot contain any of
// the keywords, before they are split into lines.
type Prefilter struct {
	matcher  *ahocorasick.Matcher
	keywords []string // unique keywords, matcher index order
	always   bool     // an empty keyword matches every body
}

// New creates a prefilter for keywords. Duplicates are collapsed.
func New(keywords []string) *Prefilter {
	pf := &Prefilter{}

	seen := make(map[string]bool)
	for _, keyword := range keywords {
		if keyword == "" {
			pf.always = true
			continue
		}
		if !seen[keyword] {
			seen[keyword] = true
			pf.keywords = append(pf.keywords, keyword)
		}
	}

	// Build Aho-Corasick matcher if we have keywords
	if len(pf.keywords) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(pf.keywords)
	}

	return pf
}

// MayContain reports whether content contains at least one keyword.
// A prefilter with no keywords, or with an empty keyword, accepts everything.
func (pf *Prefilter) MayContain(content []byte) bool {
	if pf.always || pf.matcher == nil {
		return true
	}
	return len(pf.matcher.Match(content)) > 0
}

// Hits returns the keywords found in content, in keyword order.
func (pf *Prefilter) Hits(content []byte) []string {
	if pf.matcher == nil {
		return nil
	}

	hits := pf.matcher.Match(content)
	result := make([]string, 0, len(hits))
	seen := make(map[int]bool)
	for _, hit := range hits {
		if !seen[hit] {
			seen[hit] = true
			result = append(result, pf.keywords[hit])
		}
	}
	return result
}
