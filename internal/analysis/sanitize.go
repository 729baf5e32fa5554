package analysis

import "strings"

const fence = "```"

// Sanitize removes the decoration models tend to put around JSON despite being told not to: surrounding whitespace,
// a ``` code fence and a leading "json" language tag. Sanitize is idempotent.
func Sanitize(content string) string {
	for {
		cleaned := sanitizeOnce(content)
		if cleaned == content {
			return cleaned
		}
		content = cleaned
	}
}

func sanitizeOnce(content string) string {
	s := strings.TrimSpace(content)
	if len(s) >= 2*len(fence) && strings.HasPrefix(s, fence) && strings.HasSuffix(s, fence) {
		s = strings.TrimSpace(s[len(fence) : len(s)-len(fence)])
	}
	if len(s) >= len("json") && strings.EqualFold(s[:len("json")], "json") {
		s = strings.TrimSpace(s[len("json"):])
	}
	return s
}
