package binding

import (
	"github.com/vcrobe/nojs-router/console"
	"github.com/vcrobe/nojs-router/history"
	"github.com/vcrobe/nojs-router/route"
	"github.com/vcrobe/nojs-router/router"
	"github.com/vcrobe/nojs-router/runtime"
	"github.com/vcrobe/nojs-router/vdom"
)

const (
	ActiveClass      = "router-link-active"
	ExactActiveClass = "router-link-exact-active"
)

// Link renders an anchor to To that navigates through Router when clicked.
type Link struct {
	runtime.ComponentBase

	Router  *router.Router
	To      route.RawLocation
	Text    string
	Replace bool
}

var _ runtime.Component = (*Link)(nil)

func (l *Link) Render(runtime.Renderer) *vdom.VNode {
	current := l.Router.CurrentRoute()
	target := l.Router.Resolve(l.To)

	attrs := map[string]any{}
	switch {
	case route.IsSameRoute(current, target.Route):
		attrs["class"] = ActiveClass + " " + ExactActiveClass
	case route.IsIncludedRoute(current, target.Route):
		attrs["class"] = ActiveClass
	}

	return vdom.Anchor(target.Href, l.Text, attrs, l.navigate)
}

func (l *Link) navigate() {
	onAbort := func(err error) {
		if !history.IsNavigationFailure(err, history.Duplicated) {
			console.Warn("[Link.navigate]", err.Error())
		}
	}
	if l.Replace {
		l.Router.ReplaceFunc(l.To, nil, onAbort)
		return
	}
	l.Router.PushFunc(l.To, nil, onAbort)
}
