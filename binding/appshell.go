package binding

import (
	"fmt"
	"slices"
	"sync"

	"github.com/vcrobe/nojs-router/console"
	"github.com/vcrobe/nojs-router/route"
	"github.com/vcrobe/nojs-router/router"
	"github.com/vcrobe/nojs-router/runtime"
	"github.com/vcrobe/nojs-router/vdom"
)

// AppShell is a root component holding a persistent layout. Every route
// it receives is turned into a chain of component instances, one per
// matched record, nested through their body slots. Instances in front of
// the first record whose component type changed (the pivot) are kept, so
// shared layouts keep their state across navigations.
type AppShell struct {
	runtime.ComponentBase

	layout runtime.Component

	mu         sync.Mutex
	renderer   runtime.Renderer
	current    *route.Route
	chain      []runtime.ComponentMetadata
	live       []runtime.Component
	pivot      int
	key        string
	destroyFns []func()
	destroyed  bool
}

var (
	_ runtime.Component = (*AppShell)(nil)
	_ router.App        = (*AppShell)(nil)
)

// NewAppShell creates an app shell around layout, which may be nil. A
// layout implementing runtime.SlotHost receives the chain in its body.
func NewAppShell(layout runtime.Component) *AppShell {
	return &AppShell{layout: layout}
}

func (a *AppShell) SetRenderer(r runtime.Renderer) {
	a.mu.Lock()
	a.renderer = r
	a.mu.Unlock()
	a.ComponentBase.SetRenderer(r)
}

// OnDestroy registers fn to run on Destroy.
func (a *AppShell) OnDestroy(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.destroyFns = append(a.destroyFns, fn)
}

// Destroy detaches the shell from its router and destroys the chain.
// Later calls do nothing.
func (a *AppShell) Destroy() {
	a.mu.Lock()
	if a.destroyed {
		a.mu.Unlock()
		return
	}
	a.destroyed = true
	fns := a.destroyFns
	live := a.live
	a.destroyFns, a.live, a.chain = nil, nil, nil
	a.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	destroyAll(live)
}

// SetRoute rebuilds the chain for r and re-renders.
func (a *AppShell) SetRoute(r *route.Route) {
	a.mu.Lock()
	if a.destroyed || r == nil || r == a.current {
		a.mu.Unlock()
		return
	}

	chain := chainOf(r)
	pivot := calculatePivot(a.chain, chain)

	next := make([]runtime.Component, len(chain))
	copy(next[:pivot], a.live[:pivot])
	for i := 0; i < pivot; i++ {
		if receiver, ok := next[i].(runtime.ParamsReceiver); ok {
			receiver.SetParams(r.Params)
		}
	}
	for i := pivot; i < len(chain); i++ {
		next[i] = chain[i].Factory(r.Params)
	}
	dropped := slices.Clone(a.live[pivot:])

	a.current = r
	a.chain = chain
	a.live = next
	a.pivot = pivot
	a.key = fmt.Sprintf("%s:%d", r.FullPath, pivot)
	renderer := a.renderer
	a.mu.Unlock()

	console.Debug("[AppShell.SetRoute]", r.FullPath, "pivot:", pivot, "chain length:", len(chain))
	destroyAll(dropped)
	if renderer != nil {
		renderer.ReRender()
	}
}

// chainOf collects the default view of every matched record. Components
// that are not runtime.ComponentMetadata are skipped.
func chainOf(r *route.Route) []runtime.ComponentMetadata {
	chain := make([]runtime.ComponentMetadata, 0, len(r.Matched))
	for _, record := range r.Matched {
		c, ok := record.Component(route.DefaultView)
		if !ok {
			continue
		}
		switch meta := c.(type) {
		case runtime.ComponentMetadata:
			chain = append(chain, meta)
		case *runtime.ComponentMetadata:
			chain = append(chain, *meta)
		default:
			console.Warn(fmt.Sprintf("[AppShell.SetRoute] record %q has component of type %T, want runtime.ComponentMetadata", record.Path, c))
		}
	}
	return chain
}

// calculatePivot finds the first index where the chains differ by TypeID.
func calculatePivot(current, target []runtime.ComponentMetadata) int {
	n := min(len(current), len(target))
	for i := 0; i < n; i++ {
		if current[i].TypeID != target[i].TypeID {
			return i
		}
	}
	return n
}

func destroyAll(components []runtime.Component) {
	for _, c := range components {
		if cleaner, ok := c.(runtime.Cleaner); ok {
			cleaner.OnDestroy()
		}
	}
}

// Route returns the route the chain was built for.
func (a *AppShell) Route() *route.Route {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Chain returns the live component instances, outermost first.
func (a *AppShell) Chain() []runtime.Component {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.live)
}

// Pivot returns the first chain index rebuilt by the last navigation.
func (a *AppShell) Pivot() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pivot
}

// Key identifies the current chain for reconciliation.
func (a *AppShell) Key() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.key
}

// Render nests the chain bottom-up through body slots and places it in
// the persistent layout.
func (a *AppShell) Render(r runtime.Renderer) *vdom.VNode {
	live := a.Chain()

	var body *vdom.VNode
	for i := len(live) - 1; i >= 0; i-- {
		c := live[i]
		if host, ok := c.(runtime.SlotHost); ok {
			var slot []*vdom.VNode
			if body != nil {
				slot = []*vdom.VNode{body}
			}
			host.SetBodyContent(slot)
		}
		body = r.RenderChild(fmt.Sprintf("slot-chain-%d-%T-%p", i, c, c), c)
	}

	if a.layout != nil {
		if host, ok := a.layout.(runtime.SlotHost); ok {
			var slot []*vdom.VNode
			if body != nil {
				slot = []*vdom.VNode{body}
			}
			host.SetBodyContent(slot)
		}
		return r.RenderChild("persistent-layout", a.layout)
	}
	if body != nil {
		return body
	}
	return vdom.Div(nil)
}
