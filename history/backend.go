// Package history implements the three history backends a router drives:
// HTML5 (real paths via the History API), Hash (fragment URLs) and Abstract
// (an in-memory stack for environments without a DOM).
package history

import "github.com/vcrobe/nojs-router/route"

// Mode names a backend variant.
type Mode string

const (
	ModeHistory  Mode = "history"
	ModeHash     Mode = "hash"
	ModeAbstract Mode = "abstract"
)

// Valid reports whether m is one of the three known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeHistory, ModeHash, ModeAbstract:
		return true
	}
	return false
}

// Router is what a backend needs from the navigation controller that owns it.
type Router interface {
	Match(raw route.RawLocation, current *route.Route, redirectedFrom *route.Location) *route.Route
	BeforeHooks() []route.Guard
	ResolveHooks() []route.Guard
	AfterHooks() []route.AfterHook
	ScrollBehavior() ScrollBehavior
	// HasApp reports whether an app instance is attached; scrolling is
	// skipped until one is.
	HasApp() bool
}

// Backend is the capability set shared by every variant.
type Backend interface {
	Mode() Mode
	// Current returns the last committed route, route.Start before the first.
	Current() *route.Route
	// Base returns the normalized base path.
	Base() string

	TransitionTo(to route.RawLocation, onComplete func(*route.Route), onAbort func(error))
	Push(to route.RawLocation, onComplete func(*route.Route), onAbort func(error))
	Replace(to route.RawLocation, onComplete func(*route.Route), onAbort func(error))
	Go(n int)

	// GetCurrentLocation returns the location the platform currently shows.
	GetCurrentLocation() string
	// EnsureURL makes the platform location agree with Current.
	EnsureURL(push bool)
	// HandleScroll applies the router's scroll behavior for a committed
	// transition.
	HandleScroll(to, from *route.Route, isPop bool)

	SetupListeners()
	Teardown()

	// Listen subscribes cb to every committed route.
	Listen(cb func(*route.Route))
	OnReady(cb func(), errorCb func(error))
	OnError(errorCb func(error))
}
