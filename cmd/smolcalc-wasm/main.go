//go:build js && wasm

// Command smolcalc-wasm is smolcalc compiled for the browser. Build it with
// GOOS=js GOARCH=wasm into smolcalc.wasm, and put it next to index.html and
// the wasm_exec.js of the Go distribution in the directory configured as
// web.assets.
package main

import (
	"context"

	"src.smolcalc.dev/pkg/mode"
	"src.smolcalc.dev/pkg/wasmhost"
)

func main() {
	if err := wasmhost.Run(context.Background(), mode.Builtin()); err != nil {
		println("smolcalc:", err.Error())
	}
	// Event handlers run on this program; keep it alive.
	select {}
}
