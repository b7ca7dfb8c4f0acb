//go:build js && wasm

package main

import (
	"syscall/js"

	livemark "github.com/livemark/preview/internal"
	"github.com/livemark/preview/internal/handler"
	wasm_utils "github.com/livemark/preview/internal_wasm/utils"
)

func main() {
	js.Global().Set("__livemark_tokenize", js.FuncOf(Tokenize))
	<-make(chan bool)
}

func jsString(j js.Value) string {
	if j.IsUndefined() || j.IsNull() {
		return ""
	}
	return j.String()
}

func Tokenize(this js.Value, args []js.Value) interface{} {
	source := jsString(args[0])
	filename := "file.html"
	if len(args) > 1 {
		if f := jsString(args[1]); f != "" {
			filename = f
		}
	}
	h := handler.NewHandler(source, filename)

	payloads := js.Global().Get("Array").New()
	for i, p := range livemark.Tokenize(source, h) {
		payloads.SetIndex(i, wasm_utils.PayloadValue(p))
	}

	result := js.Global().Get("Object").New()
	result.Set("payloads", payloads)
	result.Set("diagnostics", wasm_utils.DiagnosticsValue(h))
	return result
}
