//go:build js && wasm

package wasm_utils

import (
	"syscall/js"

	"github.com/norunners/vert"

	livemark "github.com/livemark/preview/internal"
	"github.com/livemark/preview/internal/handler"
	"github.com/livemark/preview/internal/loc"
)

// GetAttrs flattens a payload's ordered attribute list into a JS
// object. Later duplicates were already collapsed by the tokenizer.
func GetAttrs(p livemark.Payload) js.Value {
	attrs := js.Global().Get("Object").New()
	for _, attr := range p.Attr {
		attrs.Set(attr.Key, attr.Val)
	}
	return attrs
}

type JSPayload struct {
	NodeType     string `js:"nodeType"`
	NodeValue    string `js:"nodeValue"`
	NodeName     string `js:"nodeName"`
	Closing      bool   `js:"closing"`
	Closed       bool   `js:"closed"`
	SourceOffset int    `js:"sourceOffset"`
	SourceLength int    `js:"sourceLength"`
}

// PayloadValue converts one payload for the rendering surface.
func PayloadValue(p livemark.Payload) js.Value {
	v := vert.ValueOf(JSPayload{
		NodeType:     p.Type.String(),
		NodeValue:    p.Value,
		NodeName:     p.Name,
		Closing:      p.Closing,
		Closed:       p.Closed,
		SourceOffset: p.Loc.Loc.Start,
		SourceLength: p.Loc.Len,
	}).Value
	if p.Type == livemark.ElementNode && !p.Closing {
		v.Set("attributes", GetAttrs(p))
	}
	return v
}

// DiagnosticsValue converts the handler's collected diagnostics.
func DiagnosticsValue(h *handler.Handler) js.Value {
	msgs := h.Diagnostics()
	out := js.Global().Get("Array").New(len(msgs))
	for i, msg := range msgs {
		out.SetIndex(i, MessageValue(msg))
	}
	return out
}

func MessageValue(msg loc.DiagnosticMessage) js.Value {
	return vert.ValueOf(msg).Value
}
