package bbcode

import (
	"regexp"
	"strconv"
	"strings"
)

// applyWordFilter performs a case-insensitive, whole-word substitution of
// banned words using the same sentinel-then-replace contract as
// replaceEmojis, so a replacement's own text can never be re-matched by a
// later entry in the table.
func applyWordFilter(s string, filter map[string]string) string {
	if len(filter) == 0 {
		return s
	}

	words := make([]string, 0, len(filter))
	for w := range filter {
		words = append(words, regexp.QuoteMeta(w))
	}
	pattern := regexp.MustCompile(`(?i)\b(` + strings.Join(words, "|") + `)\b`)

	var replacements []string
	out := pattern.ReplaceAllStringFunc(s, func(match string) string {
		replacement, ok := filter[strings.ToLower(match)]
		if !ok {
			// Table keys are matched case-insensitively above; fall back
			// to a direct lookup in case the caller used mixed-case keys.
			for k, v := range filter {
				if strings.EqualFold(k, match) {
					replacement = v
					ok = true
					break
				}
			}
		}
		if !ok {
			return match
		}
		idx := len(replacements)
		replacements = append(replacements, replacement)
		return "\r" + strconv.Itoa(idx)
	})

	for idx := len(replacements) - 1; idx >= 0; idx-- {
		out = strings.Replace(out, "\r"+strconv.Itoa(idx), replacements[idx], 1)
	}
	return out
}
