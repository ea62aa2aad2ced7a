//go:build js && wasm

package main

import (
	"strconv"

	"github.com/vcrobe/nojs-router/binding"
	"github.com/vcrobe/nojs-router/console"
	"github.com/vcrobe/nojs-router/route"
	"github.com/vcrobe/nojs-router/router"
	"github.com/vcrobe/nojs-router/runtime"
	"github.com/vcrobe/nojs-router/vdom"
)

// MainLayout is the persistent layout: navigation links plus a body slot.
type MainLayout struct {
	runtime.ComponentBase
	Router *router.Router
	body   []*vdom.VNode
}

func (l *MainLayout) SetBodyContent(children []*vdom.VNode) { l.body = children }

func (l *MainLayout) Render(r runtime.Renderer) *vdom.VNode {
	links := []*binding.Link{
		{Router: l.Router, To: route.Named("home", nil), Text: "Home"},
		{Router: l.Router, To: route.Path("/about"), Text: "About"},
		{Router: l.Router, To: route.Path("/admin"), Text: "Admin"},
		{Router: l.Router, To: route.Named("blog", map[string]string{"year": "2024"}), Text: "Blog"},
	}
	nav := make([]*vdom.VNode, 0, len(links))
	for i, link := range links {
		nav = append(nav, r.RenderChild(string(rune('a'+i)), link))
	}
	return vdom.Div(map[string]any{"class": "layout"},
		vdom.Div(map[string]any{"class": "nav"}, nav...),
		vdom.Div(map[string]any{"class": "body"}, l.body...),
	)
}

// HomePage is rendered for "/".
type HomePage struct {
	runtime.ComponentBase
	Years []int
}

func (h *HomePage) Render(runtime.Renderer) *vdom.VNode {
	children := []*vdom.VNode{vdom.Paragraph("Home", nil)}
	for _, year := range h.Years {
		path := "/posts/" + strconv.Itoa(year)
		children = append(children, vdom.Anchor(path, "Posts of "+strconv.Itoa(year), nil, func() {
			if err := h.Navigate(path); err != nil {
				console.Warn("[HomePage] navigation failed:", err.Error())
			}
		}))
	}
	return vdom.Div(nil, children...)
}

type AboutPage struct{ runtime.ComponentBase }

func (a *AboutPage) Render(runtime.Renderer) *vdom.VNode {
	return vdom.Paragraph("About", nil)
}

// AdminLayout nests the admin pages.
type AdminLayout struct {
	runtime.ComponentBase
	body []*vdom.VNode
}

func (a *AdminLayout) SetBodyContent(children []*vdom.VNode) { a.body = children }

func (a *AdminLayout) Render(runtime.Renderer) *vdom.VNode {
	return vdom.Div(map[string]any{"class": "admin"}, append([]*vdom.VNode{vdom.Paragraph("Admin", nil)}, a.body...)...)
}

type SettingsPage struct{ runtime.ComponentBase }

func (s *SettingsPage) Render(runtime.Renderer) *vdom.VNode {
	return vdom.Paragraph("Settings", nil)
}

// BlogPage keeps its instance across years and only swaps params.
type BlogPage struct {
	runtime.ComponentBase
	Year string
}

func (b *BlogPage) SetParams(params map[string]string) { b.Year = params["year"] }

func (b *BlogPage) Render(runtime.Renderer) *vdom.VNode {
	return vdom.Div(nil,
		vdom.Paragraph("Blog "+b.Year, nil),
		vdom.Anchor("/", "Back home", nil, func() {
			if err := b.Navigate("/"); err != nil {
				console.Warn("[BlogPage] navigation failed:", err.Error())
			}
		}),
	)
}

type PageNotFound struct{ runtime.ComponentBase }

func (p *PageNotFound) Render(runtime.Renderer) *vdom.VNode {
	return vdom.Paragraph("404 - page not found", nil)
}
