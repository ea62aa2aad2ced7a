package runtime

import (
	"errors"

	"github.com/vcrobe/nojs-router/console"
)

// ErrNotMounted is returned when a component without a renderer tries to
// navigate.
var ErrNotMounted = errors.New("component is not mounted")

// ComponentBase can be embedded to get SetRenderer, StateHasChanged and
// Navigate.
type ComponentBase struct {
	renderer Renderer
}

// SetRenderer is called by the framework.
func (b *ComponentBase) SetRenderer(r Renderer) {
	b.renderer = r
}

// StateHasChanged asks the renderer to re-render.
func (b *ComponentBase) StateHasChanged() {
	if b.renderer == nil {
		console.Warn("[ComponentBase.StateHasChanged] renderer is nil (component not mounted?)")
		return
	}
	b.renderer.ReRender()
}

// Navigate requests client-side navigation to path.
//
//	func (c *MyComponent) HandleClick() {
//	    if err := c.Navigate("/about"); err != nil {
//	        console.Warn("navigation failed:", err.Error())
//	    }
//	}
func (b *ComponentBase) Navigate(path string) error {
	if b.renderer == nil {
		return ErrNotMounted
	}
	return b.renderer.Navigate(path)
}
