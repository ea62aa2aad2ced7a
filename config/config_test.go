package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/nojs-router/history"
	"github.com/vcrobe/nojs-router/route"
	"github.com/vcrobe/nojs-router/router"
)

func TestLoad_AllFormatsAgree(t *testing.T) {
	want := &File{
		Mode:     "history",
		Base:     "/app",
		Fallback: new(bool),
		Routes: []Route{
			{Path: "/", Name: "home", Component: "Home"},
			{
				Path:      "/users",
				Component: "Users",
				Alias:     []string{"/people"},
				Meta:      map[string]any{"auth": true},
				Children:  []Route{{Path: ":id", Name: "user", Component: "User"}},
			},
			{Path: "/old", Redirect: "/users"},
		},
	}

	for _, name := range []string{"routes.toml", "routes.yaml", "routes.json"} {
		t.Run(name, func(t *testing.T) {
			f, err := Load(filepath.Join("testdata", name))
			require.NoError(t, err)
			assert.Equal(t, want, f)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("routes.ini")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(filepath.Join("testdata", "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Parse([]byte(`{"routes": [{"path": "/", "colour": "red"}]}`), FormatJSON)
	assert.Error(t, err)

	_, err = Parse([]byte("routes = ["), FormatTOML)
	assert.Error(t, err)

	_, err = Parse(nil, "ini")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestOptions(t *testing.T) {
	f, err := Load(filepath.Join("testdata", "routes.toml"))
	require.NoError(t, err)

	reg := MapRegistry{"Home": "home-component", "Users": "users-component", "User": "user-component"}
	opts, err := f.Options(reg)
	require.NoError(t, err)

	assert.Equal(t, history.ModeHistory, opts.Mode)
	assert.Equal(t, "/app", opts.Base)
	assert.True(t, opts.DisableFallback)
	require.Len(t, opts.Routes, 3)
	assert.Equal(t, "users-component", opts.Routes[1].Component)
	assert.Equal(t, "user-component", opts.Routes[1].Children[0].Component)
	assert.Equal(t, route.Path("/users"), opts.Routes[2].Redirect)

	r := router.New(opts)
	assert.Equal(t, history.ModeAbstract, r.Mode())
	got, err := r.Push(route.Path("/people/3")).Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "3", got.Params["id"])
	require.Len(t, got.Matched, 2)
	assert.Equal(t, true, got.Matched[0].Meta["auth"])
}

func TestOptions_Errors(t *testing.T) {
	_, err := (&File{Mode: "bogus"}).Options(nil)
	assert.ErrorIs(t, err, history.ErrInvalidMode)

	_, err = (&File{Routes: []Route{{Path: "/", Component: "Missing"}}}).Options(MapRegistry{})
	assert.ErrorIs(t, err, ErrUnknownComponent)

	_, err = (&File{Routes: []Route{{Name: "nameless"}}}).Options(nil)
	assert.ErrorIs(t, err, ErrInvalidRoute)

	_, err = (&File{Routes: []Route{{Path: "/", Redirect: "/a", RedirectName: "a"}}}).Options(nil)
	assert.ErrorIs(t, err, ErrInvalidRoute)
}

func TestOptions_DefaultChild(t *testing.T) {
	f, err := Parse([]byte(`
[[routes]]
path = "/user"
component = "User"

  [[routes.children]]
  path = ""
  component = "UserHome"

  [[routes.children]]
  path = "posts"
  component = "UserPosts"
`), FormatTOML)
	require.NoError(t, err)

	opts, err := f.Options(nil)
	require.NoError(t, err)
	opts.Mode = history.ModeAbstract

	r := router.New(opts)
	assert.Equal(t, []any{"User", "UserHome"}, r.GetMatchedComponents(&route.RawLocation{Path: "/user"}))
	assert.Equal(t, []any{"User", "UserPosts"}, r.GetMatchedComponents(&route.RawLocation{Path: "/user/posts"}))

	_, err = (&File{Routes: []Route{{Path: "", Component: "Root"}}}).Options(nil)
	assert.ErrorIs(t, err, ErrInvalidRoute)
}

func TestOptions_NamedComponentsAndRedirects(t *testing.T) {
	f := &File{Routes: []Route{
		{Path: "/a", Name: "a", Components: map[string]string{"default": "Main", "side": "Side"}},
		{Path: "/b", RedirectName: "a"},
	}}

	opts, err := f.Options(Names{})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"default": "Main", "side": "Side"}, opts.Routes[0].Components)
	assert.Equal(t, route.Named("a", nil), opts.Routes[1].Redirect)
	assert.False(t, opts.DisableFallback)
	assert.Equal(t, history.Mode(""), opts.Mode)
}
