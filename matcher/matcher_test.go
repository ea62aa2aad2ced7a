package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/nojs-router/route"
)

func usersTable() []route.Config {
	return []route.Config{
		{Path: "/", Name: "home", Component: "Home"},
		{
			Path:      "/users",
			Component: "Users",
			Alias:     []string{"/people"},
			Meta:      map[string]any{"section": "users"},
			Children: []route.Config{
				{Path: "", Component: "UserList"},
				{Path: ":id", Name: "user", Component: "User"},
			},
		},
	}
}

func paths(records []*route.Record) []string {
	res := make([]string, 0, len(records))
	for _, r := range records {
		res = append(res, r.Path)
	}
	return res
}

func TestMatch_Nested(t *testing.T) {
	m := New(usersTable())

	r := m.Match(route.Path("/users/3?tab=posts"), nil, nil)
	require.Len(t, r.Matched, 2)
	assert.Equal(t, "/users", r.Matched[0].Path)
	assert.Equal(t, "/users/:id", r.Matched[1].Path)
	assert.Equal(t, "user", r.Name)
	assert.Equal(t, map[string]string{"id": "3"}, r.Params)
	assert.Equal(t, "/users/3?tab=posts", r.FullPath)

	list := m.Match(route.Path("/users"), nil, nil)
	require.Len(t, list.Matched, 2)
	assert.Equal(t, []any{"Users", "UserList"}, list.MatchedComponents())
}

func TestMatch_Named(t *testing.T) {
	m := New(usersTable())

	r := m.Match(route.Named("user", map[string]string{"id": "7"}), nil, nil)
	assert.Equal(t, "/users/7", r.Path)
	assert.Len(t, r.Matched, 2)

	current := m.Match(route.Path("/users/3"), nil, nil)
	inherited := m.Match(route.Named("user", nil), current, nil)
	assert.Equal(t, "/users/3", inherited.Path)

	missing := m.Match(route.Named("nope", nil), nil, nil)
	assert.Empty(t, missing.Matched)
}

func TestMatch_Unmatched(t *testing.T) {
	m := New(usersTable())
	r := m.Match(route.Path("/nowhere"), nil, nil)
	assert.Empty(t, r.Matched)
	assert.Equal(t, "/nowhere", r.Path)
	assert.NotNil(t, r.Params)
}

func TestMatch_Alias(t *testing.T) {
	m := New(usersTable())

	r := m.Match(route.Path("/people/3"), nil, nil)
	assert.Equal(t, "/people/3", r.Path)
	require.Len(t, r.Matched, 2)
	assert.Equal(t, "/users/:id", r.Matched[1].Path)
	assert.Equal(t, "3", r.Params["id"])
	assert.Equal(t, "user", r.Name)

	root := m.Match(route.Path("/people"), nil, nil)
	require.NotEmpty(t, root.Matched)
	assert.Equal(t, "users", root.Matched[0].Meta["section"])
}

func TestMatch_Redirects(t *testing.T) {
	m := New(append(usersTable(),
		route.Config{Path: "/old", Redirect: route.Path("/users")},
		route.Config{Path: "/u/:id", Redirect: route.Path("/users/:id")},
		route.Config{Path: "/me", Redirect: route.Named("user", map[string]string{"id": "me"})},
		route.Config{Path: "/go", RedirectFunc: func(to *route.Route) route.RawLocation {
			return route.Path("/users/" + to.Query.Get("id"))
		}},
		route.Config{Path: "/ping", Redirect: route.Path("/pong")},
		route.Config{Path: "/pong", Redirect: route.Path("/ping")},
		route.Config{Path: "/lost", Redirect: route.Named("nope", nil)},
	))

	old := m.Match(route.Path("/old?x=1#top"), nil, nil)
	assert.Equal(t, "/users", old.Path)
	assert.Equal(t, "1", old.Query.Get("x"))
	assert.Equal(t, "#top", old.Hash)
	assert.Equal(t, "/old?x=1#top", old.RedirectedFrom)

	assert.Equal(t, "/users/5", m.Match(route.Path("/u/5"), nil, nil).Path)
	assert.Equal(t, "/users/me", m.Match(route.Path("/me"), nil, nil).Path)
	assert.Equal(t, "/users/9", m.Match(route.Path("/go?id=9"), nil, nil).Path)

	assert.Empty(t, m.Match(route.Path("/ping"), nil, nil).Matched)
	assert.Empty(t, m.Match(route.Path("/lost"), nil, nil).Matched)
}

func TestAddRoutes(t *testing.T) {
	m := New([]route.Config{
		{Path: "*", Component: "NotFound"},
		{Path: "/a", Component: "A"},
	})

	nf := m.Match(route.Path("/zzz"), nil, nil)
	require.Len(t, nf.Matched, 1)
	assert.Equal(t, "/zzz", nf.Params[route.WildcardParam])

	m.AddRoutes([]route.Config{
		{Path: "/a", Component: "Shadowed"},
		{Path: "/b", Name: "b", Component: "B"},
		{Path: "/x/:(", Component: "Broken"},
	})

	assert.Equal(t, []string{"/a", "/b", "*"}, paths(m.Routes()))
	assert.Equal(t, []any{"A"}, m.Match(route.Path("/a"), nil, nil).MatchedComponents())
	assert.Equal(t, []any{"B"}, m.Match(route.Path("/b"), nil, nil).MatchedComponents())

	record, ok := m.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, "/b", record.Path)
	_, ok = m.Lookup("missing")
	assert.False(t, ok)
}

func TestMatch_CaseSensitive(t *testing.T) {
	m := New([]route.Config{
		{Path: "/Strict", Component: "S", CaseSensitive: true},
		{Path: "/loose", Component: "L"},
	})
	assert.Empty(t, m.Match(route.Path("/strict"), nil, nil).Matched)
	assert.NotEmpty(t, m.Match(route.Path("/LOOSE"), nil, nil).Matched)
}

func TestMatch_RelativeToCurrent(t *testing.T) {
	m := New(usersTable())
	current := m.Match(route.Path("/users/3"), nil, nil)
	r := m.Match(route.Path("4"), current, nil)
	assert.Equal(t, "/users/4", r.Path)
}
