package livemark

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// NotFound is the sentinel returned by Scan when no match exists at or
// after the requested offset.
const NotFound = -1

// A Match describes what Scan looks for: either a literal substring, or
// a compiled pattern applied to a fixed-size window of the source.
// Patterns must be anchored with '^' so a hit at the window start means
// a hit at the scan position.
type Match struct {
	Literal string
	Pattern *regexp2.Regexp
	// Window is the lookahead length handed to Pattern. The window is
	// truncated at end of source.
	Window int
}

// ScanOpts toggles the scanner's awareness of quoted and commented
// regions of the source.
type ScanOpts struct {
	// Quotes tracks an active quote character. A double or single
	// quote that is not preceded by a backslash toggles the state;
	// while a quote is open no match attempt or comment boundary
	// check happens.
	Quotes bool
	// CommentOpen and CommentClose suppress matching between the pair.
	// Both delimiters are skipped over whole, never re-scanned.
	CommentOpen  string
	CommentClose string
}

// Scan returns the index of the first match at or after from, or
// NotFound. With a zero ScanOpts and a literal Match this is a plain
// forward substring search.
func Scan(src string, m Match, from int, opts ScanOpts) int {
	if from < 0 {
		from = 0
	}
	if from > len(src) {
		return NotFound
	}
	if !opts.Quotes && opts.CommentOpen == "" && m.Pattern == nil {
		if i := strings.Index(src[from:], m.Literal); i >= 0 {
			return from + i
		}
		return NotFound
	}

	var quote byte
	for i := from; i < len(src); i++ {
		c := src[i]
		if opts.Quotes && (c == '"' || c == '\'') && !escaped(src, i) {
			switch {
			case quote == 0:
				quote = c
			case quote == c:
				quote = 0
			}
			continue
		}
		if quote != 0 {
			continue
		}
		if opts.CommentOpen != "" && strings.HasPrefix(src[i:], opts.CommentOpen) {
			rel := strings.Index(src[i+len(opts.CommentOpen):], opts.CommentClose)
			if rel < 0 {
				return NotFound
			}
			// Jump past the closing delimiter; the loop increment
			// accounts for the final byte.
			i += len(opts.CommentOpen) + rel + len(opts.CommentClose) - 1
			continue
		}
		if matchAt(src, m, i) {
			return i
		}
	}
	return NotFound
}

func matchAt(src string, m Match, i int) bool {
	if m.Pattern != nil {
		end := i + m.Window
		if end > len(src) {
			end = len(src)
		}
		ok, _ := m.Pattern.MatchString(src[i:end])
		return ok
	}
	return strings.HasPrefix(src[i:], m.Literal)
}

// escaped reports whether the byte at i is preceded by a backslash.
func escaped(src string, i int) bool {
	return i > 0 && src[i-1] == '\\'
}
