package livemark

import (
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/livemark/preview/internal/loc"
)

// tagOpenPattern matches the two bytes that begin a tag: '<' followed
// by a letter, '!' or '/'. Tag openers only occur outside quoted
// regions in well-formed input, so locating one needs no quote state.
var tagOpenPattern = regexp2.MustCompile(`^<[A-Za-z!/]`, regexp2.None)

const tagOpenWindow = 2

const (
	commentOpen  = "<!--"
	commentClose = "-->"
	scriptOpen   = "<script"
	scriptClose  = "</script>"
	styleOpen    = "<style"
	styleClose   = "</style>"
)

// locateTag finds the boundaries of the next tag at or after from.
// Comments span through their closing delimiter. Raw-text elements
// (script, style) span through their literal closing tag, so their
// interior is never handed back for tokenization. When a required
// closing delimiter is missing there is no tag; the caller folds the
// remainder into a trailing text run and a warning is recorded.
func (z *Tokenizer) locateTag(from int) (loc.Range, bool) {
	start := Scan(z.source, Match{Pattern: tagOpenPattern, Window: tagOpenWindow}, from, ScanOpts{})
	if start == NotFound {
		return loc.Range{}, false
	}
	rest := z.lower[start:]
	switch {
	case strings.HasPrefix(rest, commentOpen):
		end := Scan(z.source, Match{Literal: commentClose}, start+len(commentOpen), ScanOpts{})
		if end == NotFound {
			z.warn(loc.WARNING_UNTERMINATED_HTML_COMMENT, "Unterminated comment", start)
			return loc.Range{}, false
		}
		return rangeOf(start, end+len(commentClose)), true
	case strings.HasPrefix(rest, scriptOpen):
		end := Scan(z.lower, Match{Literal: scriptClose}, start+len(scriptOpen), ScanOpts{})
		if end == NotFound {
			z.warn(loc.WARNING_UNCLOSED_RAW_TEXT_ELEMENT, "Unclosed <script> element", start)
			return loc.Range{}, false
		}
		return rangeOf(start, end+len(scriptClose)), true
	case strings.HasPrefix(rest, styleOpen):
		end := Scan(z.lower, Match{Literal: styleClose}, start+len(styleOpen), ScanOpts{})
		if end == NotFound {
			z.warn(loc.WARNING_UNCLOSED_RAW_TEXT_ELEMENT, "Unclosed <style> element", start)
			return loc.Range{}, false
		}
		return rangeOf(start, end+len(styleClose)), true
	default:
		// The quote-aware scan lets '>' appear unescaped inside a
		// quoted attribute value.
		end := Scan(z.source, Match{Literal: ">"}, start+1, ScanOpts{Quotes: true})
		if end == NotFound {
			z.warn(loc.WARNING_UNCLOSED_HTML_TAG, "Unclosed tag", start)
			return loc.Range{}, false
		}
		return rangeOf(start, end+1), true
	}
}

func rangeOf(start, end int) loc.Range {
	return loc.Range{Loc: loc.Loc{Start: start}, Len: end - start}
}

func (z *Tokenizer) warn(code loc.DiagnosticCode, text string, start int) {
	if z.handler == nil {
		return
	}
	z.handler.AppendWarning(&loc.ErrorWithRange{
		Code: code,
		Text: text,
		Range: loc.Range{
			Loc: loc.Loc{Start: start},
			Len: len(z.source) - start,
		},
	})
}
