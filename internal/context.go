package livemark

import (
	"strings"
)

// A ScanContext classifies a byte offset in the source. It is computed
// entirely by this package's scanner, so callers such as the completion
// helper never depend on a host editor's token state.
type ScanContext uint32

const (
	// ContextText is character data between tags.
	ContextText ScanContext = iota
	// ContextTag is the tag-name position of an open or closing tag.
	ContextTag
	// ContextAttribute is the attribute section of an open tag.
	ContextAttribute
	// ContextComment is the interior of a comment.
	ContextComment
	// ContextRawText is the body of a script or style element.
	ContextRawText
)

// String returns a string representation of the ScanContext.
func (c ScanContext) String() string {
	switch c {
	case ContextText:
		return "Text"
	case ContextTag:
		return "Tag"
	case ContextAttribute:
		return "Attribute"
	case ContextComment:
		return "Comment"
	case ContextRawText:
		return "RawText"
	}
	return "Invalid"
}

// ContextAt reports the scan context of offset in source. Offsets past
// the end of source clamp to the end, which is where a live editor's
// cursor sits while typing.
func ContextAt(source string, offset int) ScanContext {
	if offset < 0 {
		offset = 0
	}
	if offset > len(source) {
		offset = len(source)
	}
	z := NewTokenizer(source, nil)
	pos := 0
	for pos < len(source) {
		tag, ok := z.locateTag(pos)
		if !ok {
			break
		}
		if offset < tag.Loc.Start {
			return ContextText
		}
		if offset < tag.End() {
			return contextWithin(source[tag.Loc.Start:tag.End()], offset-tag.Loc.Start)
		}
		pos = tag.End()
	}
	// No complete tag covers the offset. An unterminated construct
	// still has a context while it is being typed.
	tail := source[pos:offset]
	if i := strings.LastIndexByte(tail, '<'); i >= 0 && !strings.Contains(tail[i:], ">") {
		return contextWithin(tail[i:], offset-pos-i)
	}
	return ContextText
}

// contextWithin classifies a relative offset inside one tag span.
func contextWithin(tag string, rel int) ScanContext {
	if strings.HasPrefix(tag, commentOpen) {
		return ContextComment
	}
	lower := strings.ToLower(tag)
	if strings.HasPrefix(lower, scriptOpen) || strings.HasPrefix(lower, styleOpen) {
		if gt := strings.IndexByte(tag, '>'); gt >= 0 && rel > gt {
			return ContextRawText
		}
	}
	ws := Scan(tag, Match{Pattern: whitespacePattern, Window: 1}, 0, ScanOpts{Quotes: true})
	if ws != NotFound && rel > ws {
		return ContextAttribute
	}
	return ContextTag
}
