package bbcode

import "strings"

// sanitize escapes the five characters that matter for safe HTML text and
// attribute-value embedding. It is byte-wise ASCII; any multi-byte UTF-8
// sequence passes through unchanged since none of its continuation bytes
// collide with the ASCII range being escaped.
func sanitize(s string) string {
	if !strings.ContainsAny(s, `<>&"'`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '&':
			b.WriteString("&amp;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#x27;")
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
