package livemark

import (
	"strconv"
	"strings"

	"github.com/livemark/preview/internal/loc"
	"golang.org/x/net/html/atom"
)

// A NodeType is the classification of one emitted Payload.
type NodeType uint32

const (
	// TextNode is a run of character data between tags.
	TextNode NodeType = iota
	// A CommentNode looks like <!--x-->.
	CommentNode
	// A DoctypeNode looks like <!DOCTYPE x>.
	DoctypeNode
	// An ElementNode is a start, end or self-closing tag.
	ElementNode
)

// String returns a string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	case DoctypeNode:
		return "Doctype"
	case ElementNode:
		return "Element"
	}
	return "Invalid(" + strconv.Itoa(int(t)) + ")"
}

// A Payload is one classified, offset-tagged unit of output. Payloads
// are built fresh per emission, carry no identity beyond their position
// and are not retained after the callback returns; any further use
// belongs to the caller.
type Payload struct {
	Type NodeType
	// Value holds a text run verbatim, or a comment body with its
	// delimiters stripped. Empty for doctypes and elements.
	Value string
	// Name is the tag name, upper-cased. Elements only.
	Name string
	// Atom is the atom for Name, or zero if Name is not a known tag.
	Atom atom.Atom
	// Attr is the ordered attribute list of an element open tag. Nil
	// for closing tags and tags without an attribute section.
	Attr []Attribute
	// Closing marks a </name> tag.
	Closing bool
	// Closed marks a self-closing tag, or a raw-text element whose
	// body and closing tag were consumed into this single payload.
	Closed bool
	// Loc spans the source bytes that produced this payload.
	Loc loc.Range
}

// String returns a source-shaped representation of the Payload, used by
// the pretty printers. It is not guaranteed to reproduce the original
// bytes; for that, slice the source with Loc.
func (p Payload) String() string {
	switch p.Type {
	case TextNode:
		return p.Value
	case CommentNode:
		return "<!--" + p.Value + "-->"
	case DoctypeNode:
		return "<!DOCTYPE>"
	case ElementNode:
		if p.Closing {
			return "</" + p.Name + ">"
		}
		buf := strings.Builder{}
		buf.WriteByte('<')
		buf.WriteString(p.Name)
		for _, a := range p.Attr {
			buf.WriteByte(' ')
			buf.WriteString(a.Key)
			buf.WriteString(`="`)
			buf.WriteString(a.Val)
			buf.WriteByte('"')
		}
		if p.Closed {
			buf.WriteByte('/')
		}
		buf.WriteByte('>')
		return buf.String()
	}
	return "Invalid(" + strconv.Itoa(int(p.Type)) + ")"
}

// buildPayload classifies one matched span and fills in everything but
// the offsets, which the enumerator attaches.
func buildPayload(content string) Payload {
	if content == "" || content[0] != '<' {
		return Payload{Type: TextNode, Value: content}
	}
	if strings.HasPrefix(content, commentOpen) {
		body := strings.TrimPrefix(content, commentOpen)
		body = strings.TrimSuffix(body, commentClose)
		return Payload{Type: CommentNode, Value: body}
	}
	if len(content) > 1 && content[1] == '!' {
		return Payload{Type: DoctypeNode}
	}

	p := Payload{Type: ElementNode}
	name := content[1:]
	if strings.HasPrefix(name, "/") {
		p.Closing = true
		name = name[1:]
	}
	if i := strings.IndexAny(name, " \t\r\n\f/>"); i >= 0 {
		name = name[:i]
	}
	p.Name = strings.ToUpper(name)
	p.Atom = atom.Lookup([]byte(strings.ToLower(name)))
	if p.Closing {
		// Closing tags carry no attributes.
		return p
	}
	rawText := p.Atom == atom.Script || p.Atom == atom.Style
	attrSrc := content
	if rawText {
		// The span reaches through the closing tag; only the opening
		// tag carries attributes.
		if gt := strings.IndexByte(content, '>'); gt >= 0 {
			attrSrc = content[:gt+1]
		}
	}
	p.Attr, _ = extractAttributes(attrSrc)
	if i := strings.LastIndexByte(attrSrc, '>'); i > 0 && attrSrc[i-1] == '/' {
		p.Closed = true
	}
	// A raw-text element's body and closing tag were already consumed
	// into this payload.
	if rawText {
		p.Closed = true
	}
	return p
}
