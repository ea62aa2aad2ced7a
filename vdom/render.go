//go:build js && wasm

package vdom

import (
	"fmt"
	"syscall/js"

	"github.com/vcrobe/nojs-router/console"
)

// Mount replaces the children of the first element matching selector with
// the rendered node. Click handlers of the previous tree are released.
func Mount(selector string, n *VNode) {
	doc := js.Global().Get("document")
	if !doc.Truthy() || n == nil {
		return
	}
	mount := doc.Call("querySelector", selector)
	if !mount.Truthy() {
		console.Error("[vdom.Mount] mount element not found for selector:", selector)
		return
	}

	releaseHandlers()
	mount.Set("innerHTML", "")
	mount.Call("appendChild", createElement(doc, n))
}

var handlers []js.Func

func releaseHandlers() {
	for _, h := range handlers {
		h.Release()
	}
	handlers = nil
}

func createElement(doc js.Value, n *VNode) js.Value {
	el := doc.Call("createElement", n.Tag)
	for k, v := range n.Attributes {
		el.Call("setAttribute", k, fmt.Sprint(v))
	}
	if n.Content != "" {
		el.Set("textContent", n.Content)
	}
	for _, child := range n.Children {
		if child != nil {
			el.Call("appendChild", createElement(doc, child))
		}
	}

	if n.OnClick != nil {
		onClick := n.OnClick
		cb := js.FuncOf(func(this js.Value, args []js.Value) any {
			if len(args) > 0 {
				args[0].Call("preventDefault")
			}
			onClick()
			return nil
		})
		handlers = append(handlers, cb)
		el.Call("addEventListener", "click", cb)
	}
	return el
}
