package runtime

import "github.com/vcrobe/nojs-router/vdom"

// Component is anything the app shell can place in a route's chain.
type Component interface {
	// Render builds the component's virtual DOM. r renders children.
	Render(r Renderer) *vdom.VNode

	// SetRenderer attaches the renderer so the component can request
	// re-renders and navigations.
	SetRenderer(r Renderer)
}

// ComponentFactory builds a component for the params of the route that
// matched it.
type ComponentFactory func(params map[string]string) Component

// ComponentMetadata is the component value route configs carry. Two
// entries with the same TypeID are interchangeable, so an instance built
// for one can be kept when navigating to the other.
type ComponentMetadata struct {
	Factory ComponentFactory
	TypeID  uint32
}

// ParamsReceiver is implemented by components that keep their instance
// across navigations and need the new route params.
type ParamsReceiver interface {
	SetParams(params map[string]string)
}

// Cleaner is implemented by components that release resources when they
// leave the chain.
type Cleaner interface {
	OnDestroy()
}

// SlotHost is implemented by layouts with a body slot.
type SlotHost interface {
	SetBodyContent(children []*vdom.VNode)
}
