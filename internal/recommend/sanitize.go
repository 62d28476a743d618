package recommend

import (
	"strings"
	"unicode"
)

const (
	utf8BOM   = "\uFEFF"
	jsonFence = "```json"
	fence     = "```"
)

// Sanitize isolates a JSON candidate from model output that may carry a
// byte-order mark, markdown fences or prose around the object. It never
// fails; text without JSON comes back in a form that will not parse.
func Sanitize(text string) string {
	s := strings.TrimPrefix(text, utf8BOM)

	if i := strings.Index(s, jsonFence); i >= 0 {
		s = s[i+len(jsonFence):]
	} else if i := strings.Index(s, fence); i >= 0 {
		s = s[i+len(fence):]
	}

	if i := strings.Index(s, fence); i >= 0 {
		s = s[:i]
	}

	if i := strings.IndexByte(s, '{'); i > 0 {
		s = s[i:]
	}

	return strings.TrimFunc(s, isSpaceOrBOM)
}

func isSpaceOrBOM(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
