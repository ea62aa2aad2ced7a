//go:build js && wasm

// wasmdemo mounts a routed app shell into #app. Build with
// GOOS=js GOARCH=wasm and serve it next to wasm_exec.js.
package main

import (
	"fmt"

	"github.com/vcrobe/nojs-router/binding"
	"github.com/vcrobe/nojs-router/console"
	"github.com/vcrobe/nojs-router/history"
	"github.com/vcrobe/nojs-router/route"
	"github.com/vcrobe/nojs-router/router"
	"github.com/vcrobe/nojs-router/runtime"
	"github.com/vcrobe/nojs-router/vdom"
)

func main() {
	binding.Install()

	appRouter := router.New(router.Options{
		Mode: history.ModeHistory,
		Routes: []route.Config{
			{Path: "/", Name: "home", Component: page(1, func(map[string]string) runtime.Component { return &HomePage{Years: []int{2023, 2024}} })},
			{Path: "/about", Name: "about", Component: page(2, func(map[string]string) runtime.Component { return &AboutPage{} })},
			{
				Path:      "/admin",
				Component: page(3, func(map[string]string) runtime.Component { return &AdminLayout{} }),
				Meta:      map[string]any{"auth": true},
				Children: []route.Config{
					{Path: "", Component: page(4, func(map[string]string) runtime.Component { return &AboutPage{} })},
					{Path: "settings", Name: "settings", Component: page(5, func(map[string]string) runtime.Component { return &SettingsPage{} })},
				},
			},
			{Path: "/blog/:year(\\d+)", Name: "blog", Component: page(6, func(p map[string]string) runtime.Component { return &BlogPage{Year: p["year"]} })},
			{Path: "/posts/:year", Redirect: route.Named("blog", nil)},
			{Path: "*", Component: page(7, func(map[string]string) runtime.Component { return &PageNotFound{} })},
		},
		ScrollBehavior: func(to, _ *route.Route, saved *history.Position) *history.ScrollTarget {
			if saved != nil {
				return &history.ScrollTarget{Position: *saved}
			}
			if to.Hash != "" {
				return &history.ScrollTarget{Selector: to.Hash}
			}
			return &history.ScrollTarget{}
		},
	})

	appRouter.BeforeEach(func(to, _ *route.Route, next route.Next) {
		for _, record := range to.Matched {
			if auth, _ := record.Meta["auth"].(bool); auth && !loggedIn {
				next(route.Redirect(route.RawLocation{Path: "/", Replace: true}))
				return
			}
		}
		next(route.Continue())
	})
	appRouter.AfterEach(func(to, from *route.Route, failure error) {
		if failure == nil {
			console.Log(fmt.Sprintf("[wasmdemo] %s -> %s", from.FullPath, to.FullPath))
		}
	})
	appRouter.OnError(func(err error) {
		console.Error("[wasmdemo] navigation error:", err.Error())
	})

	shell := binding.NewAppShell(&MainLayout{Router: appRouter})
	renderer := &domRenderer{selector: "#app", root: shell, nav: appRouter}
	shell.SetRenderer(renderer)
	binding.Mount(appRouter, shell)

	// Keep the Go program running
	select {}
}

var loggedIn = true

func page(typeID uint32, factory runtime.ComponentFactory) runtime.ComponentMetadata {
	return runtime.ComponentMetadata{TypeID: typeID, Factory: factory}
}

// domRenderer renders the shell into the page on every ReRender.
type domRenderer struct {
	selector string
	root     *binding.AppShell
	nav      runtime.NavigationManager
}

var _ runtime.Renderer = (*domRenderer)(nil)

func (d *domRenderer) RenderChild(_ string, child runtime.Component) *vdom.VNode {
	child.SetRenderer(d)
	return child.Render(d)
}

func (d *domRenderer) ReRender() {
	vdom.Mount(d.selector, d.root.Render(d))
}

func (d *domRenderer) Navigate(path string) error {
	return d.nav.Navigate(path)
}
