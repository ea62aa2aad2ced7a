// Package binding attaches routers to host applications: the process-wide
// install state, mounting, an app shell that turns matched routes into
// component chains, and links.
package binding

import (
	"go.uber.org/atomic"

	"github.com/vcrobe/nojs-router/console"
	"github.com/vcrobe/nojs-router/internal/devcheck"
	"github.com/vcrobe/nojs-router/router"
)

var installed = atomic.NewBool(false)

// Install marks the binding as installed for the process. It reports
// false if it already was.
func Install() bool {
	if !installed.CompareAndSwap(false, true) {
		console.Debug("[binding.Install] already installed")
		return false
	}
	return true
}

// Installed reports whether Install was called.
func Installed() bool {
	return installed.Load()
}

// Mount attaches app to r and seeds app with the current route. Install
// must have been called first.
func Mount(r *router.Router, app router.App) {
	devcheck.Assert(Installed(), "binding.Install must be called before Mount")
	r.Init(app)
	app.SetRoute(r.CurrentRoute())
}
