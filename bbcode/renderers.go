package bbcode

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var allowedColorNames = map[string]bool{
	"black": true, "white": true, "red": true, "green": true, "blue": true,
	"yellow": true, "orange": true, "purple": true, "pink": true, "brown": true,
	"gray": true, "grey": true, "cyan": true, "magenta": true, "lime": true,
	"maroon": true, "navy": true, "olive": true, "silver": true, "teal": true,
	"gold": true, "indigo": true, "violet": true, "coral": true, "salmon": true,
	"turquoise": true, "crimson": true, "khaki": true, "plum": true,
	"orchid": true, "chocolate": true, "tomato": true, "steelblue": true,
	"skyblue": true, "royalblue": true, "forestgreen": true, "darkred": true,
	"darkblue": true, "darkgreen": true, "lightblue": true, "lightgreen": true,
	"lightgray": true, "lightgrey": true,
}

var allowedFonts = map[string]bool{
	"arial": true, "comic sans ms": true, "courier new": true, "georgia": true,
	"impact": true, "times new roman": true, "trebuchet ms": true,
	"verdana": true, "tahoma": true, "helvetica": true,
}

var codeLangAliases = map[string]string{
	"js": "javascript", "py": "python", "ts": "typescript", "sh": "bash",
	"rb": "ruby", "yml": "yaml", "c++": "cpp", "golang": "go", "plaintext": "text",
}

var allowedCodeLangs = map[string]bool{
	"javascript": true, "python": true, "typescript": true, "bash": true,
	"go": true, "rust": true, "c": true, "cpp": true, "java": true,
	"ruby": true, "php": true, "html": true, "css": true, "json": true,
	"sql": true, "yaml": true, "xml": true, "text": true, "markdown": true,
}

func isValidHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for i := 1; i < 7; i++ {
		c := s[i]
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}

func parseHTTPURL(raw string) (*url.URL, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	return u, true
}

func isSiteRelativePath(s string) bool {
	return strings.HasPrefix(s, "/") && !strings.Contains(s, "..")
}

// parseImageDimensions reads a "WxH" or "W" argument; each component must
// fall in 1..2000 or the whole argument is ignored (not treated as an
// error — the image is simply rendered without explicit dimensions).
func parseImageDimensions(arg string) (w, h int, ok bool) {
	parts := strings.SplitN(arg, "x", 2)
	width, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || width < 1 || width > 2000 {
		return 0, 0, false
	}
	if len(parts) == 1 {
		return width, 0, true
	}
	height, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || height < 1 || height > 2000 {
		return 0, 0, false
	}
	return width, height, true
}

// splitURLModifier separates a [url=...] argument into the URL and an
// optional trailing whitespace-delimited "unfurl"/"nounfurl" modifier.
func splitURLModifier(arg string) (rawURL string, unfurl, nounfurl bool) {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		return "", false, false
	}
	rawURL = fields[0]
	for _, f := range fields[1:] {
		switch f {
		case "unfurl":
			unfurl = true
		case "nounfurl":
			nounfurl = true
		}
	}
	return rawURL, unfurl, nounfurl
}

// plainTextOf reconstructs the literal text content of idx's subtree,
// ignoring markup — used as the link body/href source for [url]...[/url]
// forms that supply no explicit argument.
func plainTextOf(tree *Tree, idx int) string {
	el := tree.Nodes[idx]
	if len(el.Children) == 0 {
		return el.Text
	}
	var b strings.Builder
	for _, c := range el.Children {
		b.WriteString(plainTextOf(tree, c))
	}
	return b.String()
}

// renderResult is what a per-kind renderer hands back to the constructor:
// the open and close strings to wrap contents in, and whether validation
// failed (in which case the constructor discards these and falls back to
// echoing the element's literal raw source instead).
type renderResult struct {
	open, close string
	broken      bool
}

// renderOpenClose computes the non-broken open/close wrapper for a known
// element kind from the element itself and, where the kind needs it (a
// raw-text body, or a [url] with no argument), the plain text of its
// subtree. It may set broken to true, which the constructor must check before emitting
// anything — per the component contract, contents are always computed
// before the open tag, because validation failures change what the open
// tag looks like.
func renderOpenClose(tree *Tree, idx int, cfg Config) renderResult {
	el := tree.Nodes[idx]
	switch el.Kind {
	case Plain:
		return renderResult{}

	case HorizontalRule:
		return renderResult{open: "<hr />"}

	case Linebreak:
		return renderResult{open: "<br />"}

	case Bold:
		return renderResult{open: "<b>", close: "</b>"}
	case Italics:
		return renderResult{open: "<i>", close: "</i>"}
	case Underline:
		return renderResult{open: "<u>", close: "</u>"}
	case Strikethrough:
		return renderResult{open: "<s>", close: "</s>"}

	case Color:
		val := el.Argument
		valid := allowedColorNames[val] || isValidHexColor(val)
		if !valid {
			return renderResult{broken: true}
		}
		return renderResult{
			open:  fmt.Sprintf(`<span class="bbCode tagColor" style="color: %s">`, val),
			close: "</span>",
		}

	case Size:
		n, err := strconv.Atoi(strings.TrimSpace(el.Argument))
		if err != nil || n < 8 || n > 36 {
			return renderResult{broken: true}
		}
		return renderResult{
			open:  fmt.Sprintf(`<span class="bbCode tagSize" style="font-size: %dpx;">`, n),
			close: "</span>",
		}

	case Font:
		name := strings.ToLower(strings.TrimSpace(el.Argument))
		if !allowedFonts[name] {
			return renderResult{broken: true}
		}
		return renderResult{
			open:  fmt.Sprintf(`<span class="bbCode tagFont" style="font-family: %s;">`, name),
			close: "</span>",
		}

	case Code:
		if !el.HasArg || strings.TrimSpace(el.Argument) == "" {
			return renderResult{open: "<pre><code>", close: "</code></pre>"}
		}
		lang := strings.ToLower(strings.TrimSpace(el.Argument))
		if alias, ok := codeLangAliases[lang]; ok {
			lang = alias
		}
		if !allowedCodeLangs[lang] {
			return renderResult{open: "<pre><code>", close: "</code></pre>"}
		}
		return renderResult{
			open:  fmt.Sprintf(`<pre><code class="language-%s">`, lang),
			close: "</code></pre>",
		}

	case Quote:
		if el.HasArg {
			author := sanitize(el.Argument)
			return renderResult{
				open: fmt.Sprintf(`<blockquote class="bbCode tagQuote" data-author="%s"><div class="quoteAuthor">%s</div><div class="quoted">`, author, author),
				close: "</div></blockquote>",
			}
		}
		return renderResult{
			open:  `<blockquote class="bbCode tagQuote"><div class="quoted">`,
			close: "</div></blockquote>",
		}

	case Spoiler:
		title := "Spoiler"
		if el.HasArg && strings.TrimSpace(el.Argument) != "" {
			title = el.Argument
		}
		title = sanitize(title)
		if cfg.InlineSpoilers {
			return renderResult{
				open:  fmt.Sprintf(`<span class="blur-spoiler" data-spoiler-title="%s">`, title),
				close: "</span>",
			}
		}
		return renderResult{
			open:  fmt.Sprintf(`<details><summary>%s</summary>`, title),
			close: "</details>",
		}

	case Center:
		return renderResult{open: `<div style="text-align: center;">`, close: "</div>"}
	case Left:
		return renderResult{open: `<div style="text-align: left;">`, close: "</div>"}
	case Right:
		return renderResult{open: `<div style="text-align: right;">`, close: "</div>"}

	case List:
		switch strings.TrimSpace(el.Argument) {
		case "1", "a", "A", "i", "I":
			return renderResult{
				open:  fmt.Sprintf(`<ol type="%s">`, strings.TrimSpace(el.Argument)),
				close: "</ol>",
			}
		default:
			return renderResult{open: "<ul>", close: "</ul>"}
		}
	case ListItem:
		return renderResult{open: "<li>", close: "</li>"}

	case Table:
		return renderResult{open: "<table>", close: "</table>"}
	case TableRow:
		return renderResult{open: "<tr>", close: "</tr>"}
	case TableHeader:
		return renderResult{open: "<th>", close: "</th>"}
	case TableCell:
		return renderResult{open: "<td>", close: "</td>"}

	case Image:
		return renderImageLike(tree, idx, cfg, false)
	case Thumbnail:
		return renderImageLike(tree, idx, cfg, true)

	case Link:
		return renderLink(tree, idx)

	case Video:
		body := strings.TrimSpace(plainTextOf(tree, idx))
		u, ok := parseHTTPURL(body)
		if !ok || !isVideoURL(u) {
			return renderResult{broken: true}
		}
		if !cfg.EnableEmbeds {
			return linkFallback(u.String())
		}
		return renderResult{
			open:  fmt.Sprintf(`<video controls preload="metadata"><source src="%s" /></video>`, sanitize(u.String())),
		}

	case Audio:
		body := strings.TrimSpace(plainTextOf(tree, idx))
		u, ok := parseHTTPURL(body)
		if !ok || !isAudioURL(u) {
			return renderResult{broken: true}
		}
		if !cfg.EnableEmbeds {
			return linkFallback(u.String())
		}
		return renderResult{
			open: fmt.Sprintf(`<audio controls preload="metadata"><source src="%s" /></audio>`, sanitize(u.String())),
		}

	case YouTube:
		body := strings.TrimSpace(plainTextOf(tree, idx))
		u, ok := parseHTTPURL(body)
		if !ok {
			return renderResult{broken: true}
		}
		kind, id := detectMedia(u)
		if kind != mediaYouTube || id == "" {
			return renderResult{broken: true}
		}
		if !cfg.EnableEmbeds || !cfg.EnableYouTubeEmbeds {
			return linkFallback(u.String())
		}
		return renderResult{open: youtubeIframe(id)}

	case Media:
		return renderMediaAuto(tree, idx, cfg)
	}

	return renderResult{broken: true}
}

func youtubeIframe(id string) string {
	return fmt.Sprintf(`<iframe src="https://www.youtube-nocookie.com/embed/%s" allowfullscreen></iframe>`, sanitize(id))
}

func vimeoIframe(id string) string {
	return fmt.Sprintf(`<iframe src="https://player.vimeo.com/video/%s" allowfullscreen></iframe>`, sanitize(id))
}

func linkFallback(rawURL string) renderResult {
	escaped := sanitize(rawURL)
	return renderResult{
		open:  fmt.Sprintf(`<a class="bbCode tagUrl" rel="nofollow" href="%s">`, escaped),
		close: "</a>",
	}
}

func renderMediaAuto(tree *Tree, idx int, cfg Config) renderResult {
	body := strings.TrimSpace(plainTextOf(tree, idx))
	u, ok := parseHTTPURL(body)
	if !ok {
		return renderResult{broken: true}
	}
	if !cfg.EnableEmbeds {
		return linkFallback(u.String())
	}
	kind, id := detectMedia(u)
	switch kind {
	case mediaYouTube:
		if !cfg.EnableYouTubeEmbeds {
			return linkFallback(u.String())
		}
		return renderResult{open: youtubeIframe(id)}
	case mediaVimeo:
		return renderResult{open: vimeoIframe(id)}
	case mediaDirectVideo:
		return renderResult{open: fmt.Sprintf(`<video controls preload="metadata"><source src="%s" /></video>`, sanitize(u.String()))}
	case mediaDirectAudio:
		return renderResult{open: fmt.Sprintf(`<audio controls preload="metadata"><source src="%s" /></audio>`, sanitize(u.String()))}
	default:
		return renderResult{broken: true}
	}
}

func renderImageLike(tree *Tree, idx int, cfg Config, thumbnail bool) renderResult {
	el := tree.Nodes[idx]
	body := strings.TrimSpace(plainTextOf(tree, idx))

	var host string
	valid := false
	if u, ok := parseHTTPURL(body); ok {
		valid = true
		host = strings.ToLower(u.Hostname())
	} else if isSiteRelativePath(body) {
		valid = true
	}
	if !valid {
		return renderResult{broken: true}
	}

	if host != "" && !cfg.imageHostAllowed(host) {
		return linkFallback(body)
	}

	dims := ""
	if el.HasArg {
		if w, h, ok := parseImageDimensions(el.Argument); ok {
			if h > 0 {
				dims = fmt.Sprintf(` width="%d" height="%d"`, w, h)
			} else {
				dims = fmt.Sprintf(` width="%d"`, w)
			}
		}
	}

	src := sanitize(body)
	if thumbnail {
		return renderResult{
			open:  fmt.Sprintf(`<a class="bbCode tagThumb" href="%s"><img class="thumbnail" src="%s"%s /></a>`, src, src, dims),
		}
	}
	return renderResult{open: fmt.Sprintf(`<img src="%s"%s />`, src, dims)}
}

func renderLink(tree *Tree, idx int) renderResult {
	el := tree.Nodes[idx]

	var rawURL string
	var unfurl bool
	if el.HasArg {
		// nounfurl needs no separate handling: omitting the container is
		// already the default for an explicit [url] tag.
		u, uf, _ := splitURLModifier(el.Argument)
		rawURL = u
		unfurl = uf
		// [url unfurl] / [url nounfurl]: the argument is only a modifier
		// and the URL comes from the body.
		if u == "unfurl" || u == "nounfurl" {
			rawURL = ""
			unfurl = u == "unfurl"
		}
	}
	if rawURL == "" {
		rawURL = strings.TrimSpace(plainTextOf(tree, idx))
	}

	u, ok := parseHTTPURL(rawURL)
	if !ok {
		return renderResult{broken: true}
	}

	href := sanitize(u.String())
	anchorOpen := fmt.Sprintf(`<a class="bbCode tagUrl" rel="nofollow" href="%s">`, href)

	if unfurl {
		// [url unfurl] opts an explicit link into the same unfurl-container
		// wrapping bare URLs get automatically, flagging it for a
		// downstream unfurl pass to fetch and render link preview metadata.
		return renderResult{
			open:  fmt.Sprintf(`<span class="unfurl-container" data-url="%s">`, href) + anchorOpen,
			close: "</a></span>",
		}
	}

	return renderResult{
		open:  anchorOpen,
		close: "</a>",
	}
}
