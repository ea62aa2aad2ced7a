package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runLines(t *testing.T, args ...string) []string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, run(args, &out))
	return strings.Split(strings.TrimSpace(out.String()), "\n")
}

func TestRun_Navigations(t *testing.T) {
	lines := runLines(t, "--routes", "testdata/routes.toml",
		"push", "/users/3",
		"push", "/old",
		"push", "/admin",
		"push", "/users",
		"back",
		"resolve", "/people/3",
		"current",
	)

	assert.Equal(t, []string{
		"push /users/3 -> /users/3",
		"push /old -> /users",
		`push /admin -> aborted: Navigation aborted from "/users" to "/admin" via a navigation guard.`,
		`push /users -> duplicated: Avoided redundant navigation to current location: "/users".`,
		"back -> /users/3",
		"resolve /people/3 -> /app/people/3 (name=user components=Users,User)",
		"current -> /users/3 (name=user components=Users,User)",
	}, lines)
}

func TestRun_Routes(t *testing.T) {
	lines := runLines(t, "--routes", "testdata/routes.toml", "routes")
	assert.Equal(t, []string{
		"/\thome",
		"/users/:id\tuser",
		"/users\t-",
		"/people/:id\tuser",
		"/people\t-",
		"/old\t-",
		"/admin\t-",
	}, lines)
}

func TestRun_Stats(t *testing.T) {
	lines := runLines(t, "--routes", "testdata/routes.toml", "--stats",
		"replace", "/users/1",
		"push", "/admin",
		"push", "/users/1",
	)
	assert.Equal(t, []string{
		"replace /users/1 -> /users/1",
		`push /admin -> aborted: Navigation aborted from "/users/1" to "/admin" via a navigation guard.`,
		`push /users/1 -> duplicated: Avoided redundant navigation to current location: "/users/1".`,
		"aborted\t1",
		"committed\t1",
		"duplicated\t1",
	}, lines)
}

func TestRun_BlockMetaDisabled(t *testing.T) {
	lines := runLines(t, "--routes", "testdata/routes.toml", "--block-meta", "", "push", "/admin")
	assert.Equal(t, []string{"push /admin -> /admin"}, lines)
}

func TestRun_UsageErrors(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorIs(t, run(nil, &out), errUsage)
	assert.ErrorIs(t, run([]string{"--routes", "testdata/routes.toml", "push"}, &out), errUsage)
	assert.ErrorIs(t, run([]string{"--routes", "testdata/routes.toml", "go", "x"}, &out), errUsage)
	assert.ErrorIs(t, run([]string{"--routes", "testdata/routes.toml", "jump"}, &out), errUsage)
	assert.ErrorIs(t, run([]string{"--nope"}, &out), errUsage)
	assert.Error(t, run([]string{"--routes", "testdata/missing.toml"}, &out))
}

func TestRun_Help(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"--help"}, &out))
	assert.Contains(t, out.String(), "resolve LOCATION")
	assert.Contains(t, out.String(), "--routes")
}
