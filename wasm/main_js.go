//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/tribixbite/craftmatic-sub003/api"
)

func generateSchem(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf("missing kind or seed")
	}
	out, err := api.GenerateSchem(args[0].String(), int64(args[1].Int()))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	uint8arr := js.Global().Get("Uint8Array").New(len(out))
	js.CopyBytesToJS(uint8arr, out)
	return uint8arr
}

func schem2glb(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing schem bytes")
	}
	buf := make([]byte, args[0].Get("length").Int())
	js.CopyBytesToGo(buf, args[0])
	out, err := api.SchemToGLB(buf)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	uint8arr := js.Global().Get("Uint8Array").New(len(out))
	js.CopyBytesToJS(uint8arr, out)
	return uint8arr
}

func applyEdits(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf("missing schem bytes or edits")
	}
	buf := make([]byte, args[0].Get("length").Int())
	js.CopyBytesToGo(buf, args[0])
	out, err := api.ApplyEdits(buf, []byte(args[1].String()))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	uint8arr := js.Global().Get("Uint8Array").New(len(out))
	js.CopyBytesToJS(uint8arr, out)
	return uint8arr
}

func schemSummary(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing schem bytes")
	}
	buf := make([]byte, args[0].Get("length").Int())
	js.CopyBytesToGo(buf, args[0])
	out, err := api.Summary(buf)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return js.ValueOf(string(out))
}

func main() {
	js.Global().Set("generateSchem", js.FuncOf(generateSchem))
	js.Global().Set("schem2glb", js.FuncOf(schem2glb))
	js.Global().Set("applyEdits", js.FuncOf(applyEdits))
	js.Global().Set("schemSummary", js.FuncOf(schemSummary))
	select {}
}
