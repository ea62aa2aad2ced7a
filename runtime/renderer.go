package runtime

import "github.com/vcrobe/nojs-router/vdom"

// Renderer is the set of services a component may call while rendering.
type Renderer interface {
	// RenderChild renders child under key; the key identifies the
	// instance across renders.
	RenderChild(key string, child Component) *vdom.VNode

	// ReRender requests a new render cycle.
	ReRender()

	// Navigate performs client-side navigation to path.
	Navigate(path string) error
}

// NavigationManager performs client-side navigation. The router implements
// it; renderers delegate Navigate to one.
type NavigationManager interface {
	Navigate(path string) error
}
