package bbcode

// TagKind is the closed set of element kinds the parser and constructor
// know about. Unknown tag names resolve to Invalid.
type TagKind int

const (
	Plain TagKind = iota
	HorizontalRule
	Linebreak
	Bold
	Italics
	Underline
	Strikethrough
	Color
	Font
	Size
	Code
	Quote
	Spoiler
	Center
	Left
	Right
	List
	ListItem
	Table
	TableRow
	TableHeader
	TableCell
	Image
	Thumbnail
	Link
	Video
	Audio
	YouTube
	Media
	Invalid
)

// tagInfo describes a TagKind's static shape: whether it self-closes,
// whether it can hold children at all, and which kinds may not appear as
// an ancestor when this kind is opened.
type tagInfo struct {
	kind           TagKind
	selfClosing    bool
	container      bool
	rawTextBody    bool // Plain/Code: children are not parsed, only escaped
	mustBeInside   []TagKind
	forbidAncestor []TagKind
}

var tagTable = map[string]tagInfo{
	"plain":         {kind: Plain, container: true, rawTextBody: true},
	"hr":            {kind: HorizontalRule, selfClosing: true},
	"br":            {kind: Linebreak, selfClosing: true},
	"b":             {kind: Bold, container: true},
	"i":             {kind: Italics, container: true},
	"u":             {kind: Underline, container: true},
	"s":             {kind: Strikethrough, container: true},
	"color":         {kind: Color, container: true},
	"font":          {kind: Font, container: true},
	"size":          {kind: Size, container: true},
	"code":          {kind: Code, container: true, rawTextBody: true},
	"quote":         {kind: Quote, container: true},
	"spoiler":       {kind: Spoiler, container: true},
	"center":        {kind: Center, container: true},
	"left":          {kind: Left, container: true},
	"right":         {kind: Right, container: true},
	"list":          {kind: List, container: true},
	"*":             {kind: ListItem, container: true, mustBeInside: []TagKind{List}},
	"table":         {kind: Table, container: true},
	"tr":            {kind: TableRow, container: true, mustBeInside: []TagKind{Table}},
	"th":            {kind: TableHeader, container: true, mustBeInside: []TagKind{TableRow}},
	"td":            {kind: TableCell, container: true, mustBeInside: []TagKind{TableRow}},
	"img":           {kind: Image, container: true, selfClosing: false, rawTextBody: true},
	"thumb":         {kind: Thumbnail, container: true, rawTextBody: true},
	"url":           {kind: Link, container: true},
	"video":         {kind: Video, container: true, rawTextBody: true},
	"audio":         {kind: Audio, container: true, rawTextBody: true},
	"youtube":       {kind: YouTube, container: true, rawTextBody: true},
	"media":         {kind: Media, container: true, rawTextBody: true},
}

// kindNames maps a TagKind back to a lowercase tag name from tagTable.
// Broken elements do not use it: they echo their own literal source.
var kindNames = func() map[TagKind]string {
	m := make(map[TagKind]string, len(tagTable))
	for name, info := range tagTable {
		if _, ok := m[info.kind]; !ok {
			m[info.kind] = name
		}
	}
	return m
}()

// LookupTag resolves a lowercased tag name to its tagInfo. The second
// return value is false for any name not in the static table, in which
// case callers should treat the tag as Invalid.
func LookupTag(name string) (tagInfo, bool) {
	info, ok := tagTable[name]
	return info, ok
}

// isSelfClosing reports whether an open tag of this kind should never
// expect or consume a matching close token. Image/Thumbnail/Video/Audio/
// YouTube/Media still parse a body up to their close tag (the body is
// their source URL) even though the HTML they eventually render is a
// self-closing element or void of nested markup.
func (k TagKind) isSelfClosing() bool {
	switch k {
	case HorizontalRule, Linebreak:
		return true
	default:
		return false
	}
}
