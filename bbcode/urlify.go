package bbcode

import "regexp"

// bareURLRegexp matches an untagged http(s) URL in running text. It stops
// at whitespace or an angle bracket so it never reaches into surrounding
// markup.
var bareURLRegexp = regexp.MustCompile(`https?://[^\s<>"']+`)

// linkifyBareURLs wraps bare URLs appearing in running text with an
// unfurl-container span carrying a data-url attribute, so a downstream
// pass can fetch and render link preview metadata for them. It reuses the
// same skip-depth scan linkifyMentions uses so a URL that already sits
// inside an <a>, <pre>, or <code> element (an explicit [url] tag's
// rendered anchor, or a code block) is left untouched.
func linkifyBareURLs(html string) string {
	var out []byte
	skipDepth := 0
	i := 0
	n := len(html)

	for i < n {
		if html[i] == '<' {
			end := indexByteFrom(html, '>', i)
			if end < 0 {
				out = append(out, html[i:]...)
				break
			}
			tag := html[i : end+1]
			if isTrackedOpenTag(tag) {
				skipDepth++
			} else if isTrackedCloseTag(tag) {
				if skipDepth > 0 {
					skipDepth--
				}
			}
			out = append(out, tag...)
			i = end + 1
			continue
		}

		next := indexByteFrom(html, '<', i)
		if next < 0 {
			next = n
		}
		chunk := html[i:next]
		if skipDepth == 0 {
			chunk = bareURLRegexp.ReplaceAllStringFunc(chunk, func(url string) string {
				return `<span class="unfurl-container" data-url="` + url + `">` +
					`<a class="bbCode tagUrl" rel="nofollow" href="` + url + `">` + url + `</a></span>`
			})
		}
		out = append(out, chunk...)
		i = next
	}

	return string(out)
}
