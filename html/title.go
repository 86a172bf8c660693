package html

import (
	"strings"

	"golang.org/x/net/html"
)

const (
	titleOpen  = "<title>"
	titleClose = "</title>"
)

// ExtractTitle returns the text of the first <title>...</title> span in raw
// markup. It works on the string directly and does not need a parsed tree.
// Tag matching ignores ASCII case; the result is trimmed and has entities
// decoded.
func ExtractTitle(raw string) (string, bool) {
	lower := asciiLower(raw)
	start := strings.Index(lower, titleOpen)
	if start < 0 {
		return "", false
	}
	start += len(titleOpen)
	end := strings.Index(lower[start:], titleClose)
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(html.UnescapeString(raw[start : start+end])), true
}

// asciiLower lowercases only ASCII letters so byte offsets stay valid for
// the original string.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
