package bbcode

// Parse consumes a flat token stream and builds a Tree obeying the tag
// catalog's nesting policy: an open tag whose kind is forbidden under the
// current ancestor chain (or whose name is unknown) is appended as a
// broken leaf instead of being pushed; a close tag with no matching open
// on the stack is likewise folded back as broken text; unclosed
// containers at end-of-input simply stay open, which is equivalent to
// appending their close tag (the constructor renders whatever subtree
// exists regardless of whether a close token was ever seen).
func Parse(tokens []Token) *Tree {
	tree := newTree()
	stack := []int{tree.Root()}

	top := func() int { return stack[len(stack)-1] }

	// findOpen returns the stack position (not node index) of the nearest
	// open element matching name, or -1 if none is open.
	findOpen := func(name string) int {
		for i := len(stack) - 1; i > 0; i-- {
			if tree.Nodes[stack[i]].Name == name {
				return i
			}
		}
		return -1
	}

	ancestorHas := func(kind TagKind) bool {
		for i := len(stack) - 1; i >= 0; i-- {
			if tree.Nodes[stack[i]].Kind == kind {
				return true
			}
		}
		return false
	}

	for _, tok := range tokens {
		// Inside a raw-text container (Plain/Code and friends), every
		// token except the matching close is folded into literal text.
		if parentInfo, ok := currentRawText(tree, top()); ok {
			if tok.Kind == TokenClose && tok.Name == tree.Nodes[top()].Name {
				tree.Nodes[top()].CloseRaw = tok.Raw
				stack = stack[:len(stack)-1]
				continue
			}
			appendRaw(tree, top(), tok)
			_ = parentInfo
			continue
		}

		switch tok.Kind {
		case TokenText:
			tree.addChild(top(), Element{Text: tok.Text})

		case TokenLinebreak:
			tree.addChild(top(), Element{Kind: Linebreak, Raw: tok.Raw})

		case TokenClose:
			pos := findOpen(tok.Name)
			if pos < 0 {
				tree.addChild(top(), Element{Broken: true, Text: tok.Raw})
				continue
			}
			// Table cells/rows and list items auto-close any deeper,
			// still-open siblings as part of popping to the match.
			tree.Nodes[stack[pos]].CloseRaw = tok.Raw
			stack = stack[:pos]

		case TokenOpen:
			name := tok.Name
			if name == "*" {
				// [*] auto-closes a previous open list item in the same
				// list before opening the next one.
				if cur := tree.Nodes[top()]; cur.Kind == ListItem {
					stack = stack[:len(stack)-1]
				}
			}
			if name == "tr" {
				if cur := tree.Nodes[top()]; cur.Kind == TableRow {
					stack = stack[:len(stack)-1]
				}
			}
			if name == "td" || name == "th" {
				if cur := tree.Nodes[top()]; cur.Kind == TableCell || cur.Kind == TableHeader {
					stack = stack[:len(stack)-1]
				}
			}

			info, known := LookupTag(name)
			if !known {
				tree.addChild(top(), Element{Broken: true, Text: tok.Raw})
				continue
			}
			forbidden := false
			for _, mustKind := range info.mustBeInside {
				if !ancestorHas(mustKind) {
					forbidden = true
				}
			}
			el := Element{
				Kind:     info.kind,
				Name:     name,
				Argument: tok.Argument,
				HasArg:   tok.HasArg,
				Raw:      tok.Raw,
			}
			if forbidden {
				tree.addChild(top(), Element{Broken: true, Text: tok.Raw})
				continue
			}
			idx := tree.addChild(top(), el)
			if !info.selfClosing && !info.kind.isSelfClosing() {
				stack = append(stack, idx)
			}
		}
	}

	return tree
}

// currentRawText reports whether idx's element is a Plain/Code-style
// container whose children must not be reparsed as tags.
func currentRawText(tree *Tree, idx int) (tagInfo, bool) {
	name := tree.Nodes[idx].Name
	if name == "" {
		return tagInfo{}, false
	}
	info, ok := LookupTag(name)
	if !ok || !info.rawTextBody {
		return tagInfo{}, false
	}
	return info, true
}

// appendRaw folds a token back into literal text under a raw-text parent,
// coalescing with the previous text child when possible.
func appendRaw(tree *Tree, parent int, tok Token) {
	var literal string
	switch tok.Kind {
	case TokenText:
		literal = tok.Text
	case TokenLinebreak, TokenOpen, TokenClose:
		literal = tok.Raw
	}
	children := tree.Nodes[parent].Children
	if len(children) > 0 {
		last := children[len(children)-1]
		if tree.Nodes[last].Kind == Plain && tree.Nodes[last].Name == "" && len(tree.Nodes[last].Children) == 0 {
			tree.Nodes[last].Text += literal
			return
		}
	}
	tree.addChild(parent, Element{Text: literal})
}
