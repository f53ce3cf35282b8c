package bbcode

import "golang.org/x/text/unicode/norm"

// Render walks tree depth-first and builds the final HTML fragment: tag
// renderers, sanitization, emoji substitution, and the word-filter pass
// all happen here; mention linkification and bare-URL auto-unfurl both
// run as post-passes over the finished string, mentions first so a URL
// immediately following an "@name" is never mistaken for part of it.
func Render(tree *Tree, cfg Config) string {
	html := renderNode(tree, tree.Root(), cfg)
	html = linkifyMentions(html)
	return linkifyBareURLs(html)
}

// renderLeafText produces the final HTML for a literal text leaf: word
// filter and emoji substitution only ever see already-sanitized content,
// since neither table is expected to contain the characters sanitize
// escapes and doing it in this order means a sentinel substitution can
// never be reopened by a later escaping pass.
func renderLeafText(text string, cfg Config) string {
	// Normalize to NFC first so a combining-character mention (e.g. an
	// accented name typed with a separate combining mark) matches the
	// same way a precomposed one does once linkifyMentions runs over the
	// finished HTML.
	out := norm.NFC.String(text)
	out = sanitize(out)
	out = applyWordFilter(out, cfg.WordFilter)
	out = replaceEmojis(out, cfg.Smilies)
	return out
}

func renderNode(tree *Tree, idx int, cfg Config) string {
	el := tree.Nodes[idx]

	if el.Parent == -1 {
		var out string
		for _, c := range el.Children {
			out += renderNode(tree, c, cfg)
		}
		return out
	}

	if el.Broken {
		return renderBrokenEcho(tree, idx, cfg)
	}

	// Raw-text containers (Plain/Code/Image/.../Media) never recurse into
	// parsed children; their single coalesced text child already holds
	// the literal body.
	if info, ok := LookupTag(el.Name); ok && info.rawTextBody {
		result := renderOpenClose(tree, idx, cfg)
		if result.broken {
			return renderBrokenEcho(tree, idx, cfg)
		}
		if el.Kind == Plain {
			return renderLeafText(plainTextOf(tree, idx), cfg)
		}
		if el.Kind == Code {
			return result.open + sanitize(plainTextOf(tree, idx)) + result.close
		}
		// Image/Thumbnail/Video/Audio/YouTube/Media: a successful embed
		// bundles its own markup entirely into open and leaves close
		// empty. A close-wrapped result means the renderer fell back to
		// a plain link, which needs the URL as its visible body text.
		if result.close == "" {
			return result.open
		}
		return result.open + sanitize(plainTextOf(tree, idx)) + result.close
	}

	var children string
	for _, c := range el.Children {
		children += renderNode(tree, c, cfg)
	}

	if el.Name == "" {
		// Plain text leaf or synthetic Linebreak produced directly by the
		// parser (not routed through the tag table at all).
		if el.Kind == Linebreak {
			return "<br />"
		}
		return renderLeafText(el.Text, cfg)
	}

	// Step 2: compute contents via the node's renderer before step 3
	// appends the open tag — a validation failure here changes what the
	// open tag looks like, so it must be resolved first.
	result := renderOpenClose(tree, idx, cfg)
	if result.broken {
		return renderBrokenEcho(tree, idx, cfg)
	}
	return result.open + children + result.close
}

// renderBrokenEcho reproduces the literal bracketed source of a broken
// element, with its textual contents sanitized but not reparsed.
func renderBrokenEcho(tree *Tree, idx int, cfg Config) string {
	el := tree.Nodes[idx]
	if len(el.Children) == 0 && el.Raw == "" {
		// Leaf broken node created directly by the parser (unknown tag,
		// unmatched close, or forbidden nesting): Text already holds the
		// exact literal source.
		return sanitize(el.Text)
	}
	var body string
	if len(el.Children) > 0 {
		for _, c := range el.Children {
			body += renderBrokenEcho(tree, c, cfg)
		}
	} else {
		body = sanitize(el.Text)
	}
	closeRaw := el.CloseRaw
	return sanitize(el.Raw) + body + sanitize(closeRaw)
}
