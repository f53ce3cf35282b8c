package bbcode

import (
	"sort"
	"strconv"
	"strings"
)

// replaceEmojis performs collision-safe longest-match substitution of
// configured emoji codes. A naive single-pass replace would let the
// replacement text for one code be re-scanned and accidentally matched by
// another code (or by a substring of the first); instead this runs two
// passes: the first swaps every match for a sentinel "\r<index>" that
// cannot occur in ordinary BBCode input, the second swaps sentinels for
// their final HTML.
func replaceEmojis(s string, smilies map[string]string) string {
	if len(smilies) == 0 {
		return s
	}
	codes := make([]string, 0, len(smilies))
	for code := range smilies {
		codes = append(codes, code)
	}
	// Longest codes first so "cookie" is tried before "ookie".
	sort.Slice(codes, func(i, j int) bool { return len(codes[i]) > len(codes[j]) })

	var out strings.Builder
	out.Grow(len(s))
	var replacements []string

	i := 0
	for i < len(s) {
		matched := false
		for _, code := range codes {
			if code == "" {
				continue
			}
			if strings.HasPrefix(s[i:], code) {
				idx := len(replacements)
				replacements = append(replacements, smilies[code])
				out.WriteByte('\r')
				out.WriteString(strconv.Itoa(idx))
				i += len(code)
				matched = true
				break
			}
		}
		if !matched {
			out.WriteByte(s[i])
			i++
		}
	}

	if len(replacements) == 0 {
		return s
	}

	result := out.String()
	// Replace in descending index order: any sentinel string "\r<idx>" is
	// a prefix of every sentinel whose index is a base-10 extension of
	// idx (e.g. "\r1" is a prefix of "\r10"..\r19", "\r100".."\r199"), and
	// such an extension is always numerically larger. Retiring the
	// larger indices first guarantees a shorter sentinel is never
	// partially matched inside a longer one still waiting to be replaced.
	for idx := len(replacements) - 1; idx >= 0; idx-- {
		result = strings.Replace(result, "\r"+strconv.Itoa(idx), replacements[idx], 1)
	}
	return result
}
