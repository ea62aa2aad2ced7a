// Package testcomponents holds in-memory doubles for rendering components
// in tests without a browser.
package testcomponents

import (
	"github.com/vcrobe/nojs-router/runtime"
	"github.com/vcrobe/nojs-router/vdom"
)

// TestRenderer implements runtime.Renderer in memory. It renders a root
// component, records the keys children were rendered under and forwards
// Navigate to an optional navigation manager.
type TestRenderer struct {
	currentVDOM *vdom.VNode
	component   runtime.Component
	nav         runtime.NavigationManager

	// Renders counts completed root renders.
	Renders int
	// ChildKeys lists the keys of the last render's children, in order.
	ChildKeys []string
}

var _ runtime.Renderer = (*TestRenderer)(nil)

// NewTestRenderer creates a test renderer attached to comp. nav may be nil.
func NewTestRenderer(comp runtime.Component, nav runtime.NavigationManager) *TestRenderer {
	r := &TestRenderer{
		component: comp,
		nav:       nav,
	}
	comp.SetRenderer(r)
	return r
}

// RenderRoot renders the root component and returns its tree.
func (r *TestRenderer) RenderRoot() *vdom.VNode {
	r.ChildKeys = nil
	r.currentVDOM = r.component.Render(r)
	r.Renders++
	return r.currentVDOM
}

// ReRender is what StateHasChanged ends up calling.
func (r *TestRenderer) ReRender() {
	r.RenderRoot()
}

// GetCurrentVDOM returns the most recently rendered tree.
func (r *TestRenderer) GetCurrentVDOM() *vdom.VNode {
	return r.currentVDOM
}

func (r *TestRenderer) RenderChild(key string, child runtime.Component) *vdom.VNode {
	r.ChildKeys = append(r.ChildKeys, key)
	child.SetRenderer(r)
	return child.Render(r)
}

// Navigate forwards to the navigation manager, if any.
func (r *TestRenderer) Navigate(path string) error {
	if r.nav == nil {
		return nil
	}
	return r.nav.Navigate(path)
}
