package livemark

import (
	"strings"

	"github.com/livemark/preview/internal/handler"
)

// A Tokenizer drives a single synchronous pass over a complete source
// string, emitting one Payload per node in increasing offset order.
// Each Tokenizer is independent; there is no shared state between
// instances and no suspension point during a pass.
type Tokenizer struct {
	source string
	// lower is a lower-cased copy of the source, used for the
	// case-insensitive raw-text close matches.
	lower   string
	handler *handler.Handler
}

// NewTokenizer returns a Tokenizer over source. h may be nil, in which
// case recovery warnings are discarded.
func NewTokenizer(source string, h *handler.Handler) *Tokenizer {
	return &Tokenizer{
		source:  source,
		lower:   strings.ToLower(source),
		handler: h,
	}
}

// An EmitFunc receives each emitted Payload. It is invoked
// synchronously and must not re-enter the Tokenizer or mutate the
// source it was given.
type EmitFunc func(Payload)

// EnumerateNodes walks the source once, alternating text runs and tag
// spans. Consecutive payloads never overlap and their offsets are
// non-decreasing; whitespace-only gaps between tags are skipped
// without a payload, so consumers must expect offset gaps.
//
// When a tag's required closing delimiter is missing, everything from
// the cursor to end of source is emitted as a single trailing text run.
// That recovery is deliberate and lossy; a warning lands on the handler
// but the payload stream stays well-formed.
func (z *Tokenizer) EnumerateNodes(emit EmitFunc) {
	pos := 0
	for pos < len(z.source) {
		tag, ok := z.locateTag(pos)
		gapEnd := len(z.source)
		if ok {
			gapEnd = tag.Loc.Start
		}
		if gap := z.source[pos:gapEnd]; strings.TrimSpace(gap) != "" {
			// A gap is always a text run, even when recovery folded an
			// unterminated tag into it and it happens to start with '<'.
			emit(Payload{Type: TextNode, Value: gap, Loc: rangeOf(pos, gapEnd)})
		}
		if !ok {
			return
		}
		p := buildPayload(z.source[tag.Loc.Start:tag.End()])
		p.Loc = tag
		emit(p)
		pos = tag.End()
	}
}

// Tokenize runs a full pass over source and collects the payloads.
func Tokenize(source string, h *handler.Handler) []Payload {
	payloads := make([]Payload, 0)
	NewTokenizer(source, h).EnumerateNodes(func(p Payload) {
		payloads = append(payloads, p)
	})
	return payloads
}
