//go:build !(js && wasm)

package browser

import "github.com/vcrobe/nojs-router/history"

// Default returns nil: there is no browsing context outside js/wasm, so
// routers fall back to the abstract backend.
func Default() history.Window {
	return nil
}
