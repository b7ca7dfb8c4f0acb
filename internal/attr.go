package livemark

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// An Attribute is one key-value pair from an element open tag. Val has
// one layer of matching surrounding quotes stripped and escaped
// instances of that quote character un-escaped; everything else is raw.
type Attribute struct {
	Key string
	Val string
}

var whitespacePattern = regexp2.MustCompile(`^\s`, regexp2.None)

// extractAttributes splits the interior of an element open tag into an
// ordered attribute list. The bool reports whether the tag carried an
// attribute section at all, distinguishing "no section" from a section
// that parsed to nothing.
//
// Tokens without '=' are dropped: bare boolean attributes are not
// represented. A repeated key overwrites the earlier value in place, so
// order follows first occurrence. Downstream consumers rely on the
// last-wins behavior.
func extractAttributes(tag string) ([]Attribute, bool) {
	inner := strings.TrimSuffix(tag, ">")
	inner = strings.TrimSuffix(inner, "/")
	i := strings.IndexAny(inner, " \t\r\n\f")
	if i < 0 {
		return nil, false
	}
	inner = inner[i+1:]
	if inner == "" {
		return nil, false
	}

	attrs := make([]Attribute, 0)
	pos := 0
	for pos < len(inner) {
		// Quote awareness keeps whitespace inside a quoted value from
		// splitting the token.
		end := Scan(inner, Match{Pattern: whitespacePattern, Window: 1}, pos, ScanOpts{Quotes: true})
		if end == NotFound {
			end = len(inner)
		}
		token := strings.TrimSpace(inner[pos:end])
		pos = end + 1
		if token == "" {
			continue
		}
		eq := strings.IndexByte(token, '=')
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(token[:eq])
		if key == "" {
			continue
		}
		val := unquote(strings.TrimSpace(token[eq+1:]))
		attrs = setAttribute(attrs, key, val)
	}
	return attrs, true
}

// unquote strips one layer of matching surrounding quotes and
// un-escapes that quote character inside the value.
func unquote(val string) string {
	if len(val) < 2 {
		return val
	}
	q := val[0]
	if (q != '"' && q != '\'') || val[len(val)-1] != q {
		return val
	}
	val = val[1 : len(val)-1]
	return strings.ReplaceAll(val, `\`+string(q), string(q))
}

func setAttribute(attrs []Attribute, key, val string) []Attribute {
	for i := range attrs {
		if attrs[i].Key == key {
			attrs[i].Val = val
			return attrs
		}
	}
	return append(attrs, Attribute{Key: key, Val: val})
}
