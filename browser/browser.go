//go:build js && wasm

// Package browser adapts the page's window, location and history objects
// to history.Window.
package browser

import (
	"strings"
	"syscall/js"

	"github.com/vcrobe/nojs-router/console"
	"github.com/vcrobe/nojs-router/history"
)

type window struct {
	global      js.Value
	pushAllowed bool
}

var _ history.Window = (*window)(nil)

// Default returns the page's window, or nil when there is no document (for
// instance under Node).
func Default() history.Window {
	global := js.Global()
	if global.Get("document").IsUndefined() {
		return nil
	}
	return &window{global: global, pushAllowed: supportsPushState(global)}
}

func supportsPushState(global js.Value) bool {
	ua := global.Get("navigator").Get("userAgent").String()
	if (strings.Contains(ua, "Android 2.") || strings.Contains(ua, "Android 4.0")) &&
		strings.Contains(ua, "Mobile Safari") &&
		!strings.Contains(ua, "Chrome") &&
		!strings.Contains(ua, "Windows Phone") {
		return false
	}
	h := global.Get("history")
	return h.Truthy() && h.Get("pushState").Type() == js.TypeFunction
}

func (w *window) location() js.Value {
	return w.global.Get("location")
}

func (w *window) Href() string {
	return w.location().Get("href").String()
}

func (w *window) Pathname() string {
	return w.global.Call("decodeURI", w.location().Get("pathname")).String()
}

func (w *window) Search() string {
	return w.location().Get("search").String()
}

func (w *window) Hash() string {
	return w.location().Get("hash").String()
}

func (w *window) SupportsPushState() bool {
	return w.pushAllowed
}

func (w *window) PushState(key, url string) {
	w.writeState("pushState", key, url, "assign")
}

func (w *window) ReplaceState(key, url string) {
	w.writeState("replaceState", key, url, "replace")
}

// writeState falls back to a full page load when the History API refuses
// the call (Safari limits pushState to 100 calls per 30 seconds).
func (w *window) writeState(method, key, url, fallback string) {
	defer func() {
		if rec := recover(); rec != nil {
			console.Warn("[Window."+method+"] falling back to location."+fallback+":", rec)
			w.location().Call(fallback, url)
		}
	}()

	state := js.Global().Get("Object").New()
	if method == "replaceState" {
		if current := w.global.Get("history").Get("state"); current.Truthy() {
			js.Global().Get("Object").Call("assign", state, current)
		}
	}
	state.Set("key", key)
	w.global.Get("history").Call(method, state, "", url)
}

func (w *window) StateKey() string {
	state := w.global.Get("history").Get("state")
	if !state.Truthy() {
		return ""
	}
	return stringOf(state.Get("key"))
}

func (w *window) Go(n int) {
	w.global.Get("history").Call("go", n)
}

func (w *window) SetHash(fragment string) {
	w.location().Set("hash", fragment)
}

func (w *window) ReplaceLocation(url string) {
	w.location().Call("replace", url)
}

func (w *window) BaseHref() string {
	el := w.global.Get("document").Call("querySelector", "base")
	if !el.Truthy() {
		return ""
	}
	return stringOf(el.Call("getAttribute", "href"))
}

func (w *window) ScrollPosition() history.Position {
	return history.Position{
		X: w.global.Get("pageXOffset").Float(),
		Y: w.global.Get("pageYOffset").Float(),
	}
}

func (w *window) ScrollTo(p history.Position) {
	w.global.Call("scrollTo", p.X, p.Y)
}

func (w *window) ElementPosition(selector string) (pos history.Position, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			console.Warn("[Window.ElementPosition] invalid selector:", selector)
			ok = false
		}
	}()

	doc := w.global.Get("document")
	var el js.Value
	// "#1foo" is not a valid CSS selector but is a valid id.
	if len(selector) > 1 && selector[0] == '#' && selector[1] >= '0' && selector[1] <= '9' {
		el = doc.Call("getElementById", selector[1:])
	} else {
		el = doc.Call("querySelector", selector)
	}
	if !el.Truthy() {
		return history.Position{}, false
	}

	docRect := doc.Get("documentElement").Call("getBoundingClientRect")
	elRect := el.Call("getBoundingClientRect")
	return history.Position{
		X: elRect.Get("left").Float() - docRect.Get("left").Float(),
		Y: elRect.Get("top").Float() - docRect.Get("top").Float(),
	}, true
}

func (w *window) AddEventListener(event string, fn func(string)) func() {
	listener := js.FuncOf(func(this js.Value, args []js.Value) any {
		key := ""
		if len(args) > 0 {
			if state := args[0].Get("state"); state.Truthy() {
				key = stringOf(state.Get("key"))
			}
		}
		fn(key)
		return nil
	})
	w.global.Call("addEventListener", event, listener)
	console.Debug("[Window.AddEventListener]", event, "listener registered")

	return func() {
		w.global.Call("removeEventListener", event, listener)
		listener.Release()
		console.Debug("[Window.AddEventListener]", event, "listener released")
	}
}

func stringOf(v js.Value) string {
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}
