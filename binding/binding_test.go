package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/nojs-router/history"
	"github.com/vcrobe/nojs-router/route"
	"github.com/vcrobe/nojs-router/router"
	"github.com/vcrobe/nojs-router/runtime"
	"github.com/vcrobe/nojs-router/testcomponents"
)

func adminRoutes(tr *testcomponents.Tracker) []route.Config {
	return []route.Config{
		{Path: "/", Component: tr.PageMeta("Home", 10)},
		{
			Path:      "/admin",
			Component: tr.LayoutMeta("admin", 1),
			Children: []route.Config{
				{Path: "users/:id", Component: tr.PageMeta("User", 2)},
				{Path: "settings", Component: tr.PageMeta("Settings", 3)},
			},
		},
		{Path: "/raw", Component: "not a component"},
	}
}

func mountShell(t *testing.T) (*router.Router, *AppShell, *testcomponents.Layout, *testcomponents.Tracker, *testcomponents.TestRenderer) {
	t.Helper()
	installed.Store(false)
	t.Cleanup(func() { installed.Store(false) })

	tr := &testcomponents.Tracker{}
	r := router.New(router.Options{Mode: history.ModeAbstract, Routes: adminRoutes(tr)})
	layout := &testcomponents.Layout{Name: "shell"}
	shell := NewAppShell(layout)
	renderer := testcomponents.NewTestRenderer(shell, r)

	require.True(t, Install())
	Mount(r, shell)
	return r, shell, layout, tr, renderer
}

func TestInstall(t *testing.T) {
	installed.Store(false)
	t.Cleanup(func() { installed.Store(false) })

	assert.False(t, Installed())
	assert.True(t, Install())
	assert.False(t, Install())
	assert.True(t, Installed())
}

func TestMount_SeedsCurrentRoute(t *testing.T) {
	r, shell, _, _, renderer := mountShell(t)

	assert.Same(t, route.Start, shell.Route())
	assert.Equal(t, []router.App{shell}, r.Apps())
	assert.Equal(t, 1, renderer.Renders)
}

func TestAppShell_ReusesInstancesBeforePivot(t *testing.T) {
	r, shell, _, tr, _ := mountShell(t)

	r.Push(route.Path("/admin/users/1"))
	require.Len(t, shell.Chain(), 2)
	assert.Equal(t, 0, shell.Pivot())
	assert.Equal(t, "/admin/users/1:0", shell.Key())

	r.Push(route.Path("/admin/users/2"))
	assert.Equal(t, 2, shell.Pivot())
	require.Len(t, tr.Pages, 1, "same component types keep their instances")
	assert.Equal(t, "2", tr.Pages[0].Params["id"])

	r.Push(route.Path("/admin/settings"))
	assert.Equal(t, 1, shell.Pivot())
	require.Len(t, tr.Layouts, 1)
	require.Len(t, tr.Pages, 2)
	assert.Equal(t, 1, tr.Pages[0].Destroyed)
	assert.Same(t, tr.Layouts[0], shell.Chain()[0])

	r.Push(route.Path("/"))
	assert.Equal(t, 0, shell.Pivot())
	assert.Equal(t, 1, tr.Layouts[0].Destroyed)
}

func TestAppShell_RenderNestsChain(t *testing.T) {
	r, _, layout, _, renderer := mountShell(t)

	r.Push(route.Path("/admin/users/7"))

	root := renderer.GetCurrentVDOM()
	require.NotNil(t, root)
	assert.Equal(t, "shell", root.Attr("class"))
	require.Len(t, layout.BodyContent, 1)
	admin := layout.BodyContent[0]
	assert.Equal(t, "admin", admin.Attr("class"))
	require.Len(t, admin.Children, 1)
	assert.Equal(t, "User 7", admin.Children[0].Content)
	assert.Len(t, renderer.ChildKeys, 3)
}

func TestAppShell_SkipsForeignComponents(t *testing.T) {
	r, shell, _, _, _ := mountShell(t)

	r.Push(route.Path("/raw"))

	assert.Empty(t, shell.Chain())
	assert.Equal(t, "/raw", shell.Route().FullPath)
}

func TestAppShell_DestroyDetachesFromRouter(t *testing.T) {
	r, shell, _, tr, _ := mountShell(t)
	r.Push(route.Path("/admin/users/1"))

	shell.Destroy()
	shell.Destroy()

	assert.Empty(t, r.Apps())
	assert.Same(t, route.Start, r.CurrentRoute())
	assert.Equal(t, 1, tr.Layouts[0].Destroyed)
	assert.Equal(t, 1, tr.Pages[0].Destroyed)

	r.Push(route.Path("/admin/settings"))
	assert.Equal(t, "/admin/users/1", shell.Route().FullPath, "a destroyed shell ignores routes")
}

func TestAppShell_WithoutLayout(t *testing.T) {
	tr := &testcomponents.Tracker{}
	shell := NewAppShell(nil)
	renderer := testcomponents.NewTestRenderer(shell, nil)

	assert.Equal(t, "div", renderer.RenderRoot().Tag)

	r := router.New(router.Options{Mode: history.ModeAbstract, Routes: adminRoutes(tr)})
	r.Init(shell)
	r.Push(route.Path("/"))

	assert.Equal(t, "Home", renderer.GetCurrentVDOM().Content)
}

func TestLink(t *testing.T) {
	r, _, _, _, _ := mountShell(t)
	r.Push(route.Path("/admin/users/1"))

	link := &Link{Router: r, To: route.Path("/admin/settings"), Text: "Settings"}
	node := link.Render(nil)
	assert.Equal(t, "a", node.Tag)
	assert.Equal(t, "/admin/settings", node.Attr("href"))
	assert.Equal(t, "Settings", node.Content)
	assert.Empty(t, node.Attr("class"))

	require.NotNil(t, node.OnClick)
	node.OnClick()
	assert.Equal(t, "/admin/settings", r.CurrentRoute().FullPath)

	node = link.Render(nil)
	assert.Equal(t, ActiveClass+" "+ExactActiveClass, node.Attr("class"))

	parent := &Link{Router: r, To: route.Path("/admin"), Replace: true}
	assert.Equal(t, ActiveClass, parent.Render(nil).Attr("class"))
}

func TestComponentNavigate(t *testing.T) {
	r, _, _, tr, _ := mountShell(t)
	r.Push(route.Path("/admin/users/1"))

	page := tr.Pages[0]
	require.NoError(t, page.Navigate("/admin/settings"))
	assert.Equal(t, "/admin/settings", r.CurrentRoute().FullPath)

	var orphan testcomponents.Page
	assert.ErrorIs(t, orphan.Navigate("/"), runtime.ErrNotMounted)
}
