package summary

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// Document is a compacted JSON object produced by the model
type Document json.RawMessage

var (
	leadingFence  = regexp.MustCompile("(?i)\\A```[a-z0-9_+-]*\\s*")
	trailingFence = regexp.MustCompile("```+\\z")
)

// StripFences trims whitespace and removes one leading (optionally tagged) and
// any trailing markdown fence
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = leadingFence.ReplaceAllString(s, "")
	s = trailingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ParseDocument accepts s only when it is a single valid JSON object
func ParseDocument(s string) (Document, bool) {
	s = strings.TrimSpace(s)
	if !gjson.Valid(s) || !gjson.Parse(s).IsObject() {
		return nil, false
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(s)); err != nil {
		return nil, false
	}
	return Document(buf.Bytes()), true
}

// ExtractFirstObject scans s for the first balanced {...} span that parses as an
// object. Braces inside string literals are counted like any other. A candidate
// that fails to parse is dropped and scanning resumes after it; a '}' at depth
// zero is ignored. start and end delimit the accepted span (end exclusive).
func ExtractFirstObject(s string) (doc Document, start, end int, ok bool) {
	depth := 0
	candidate := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
			if candidate < 0 {
				candidate = i
			}
		case '}':
			if depth > 0 {
				depth--
			}
			if depth == 0 && candidate >= 0 {
				if d, parsed := ParseDocument(s[candidate : i+1]); parsed {
					return d, candidate, i + 1, true
				}
				candidate = -1
			}
		}
	}
	return nil, 0, 0, false
}

// CoerceText recovers a document from free text: fences are stripped, then the
// whole text is parsed, then the first balanced object is extracted.
func CoerceText(text string) (Document, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}
	s := StripFences(text)
	if d, ok := ParseDocument(s); ok {
		return d, true
	}
	d, _, _, ok := ExtractFirstObject(s)
	return d, ok
}
