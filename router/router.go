// Package router is the navigation controller: it picks a history backend,
// runs navigations through it, keeps the hook registries and propagates
// every committed route to the attached apps.
package router

import (
	"fmt"
	"slices"
	"sync"

	"github.com/vcrobe/nojs-router/browser"
	"github.com/vcrobe/nojs-router/console"
	"github.com/vcrobe/nojs-router/history"
	"github.com/vcrobe/nojs-router/internal/devcheck"
	"github.com/vcrobe/nojs-router/matcher"
	"github.com/vcrobe/nojs-router/route"
	"github.com/vcrobe/nojs-router/runtime"
)

// App is a root application instance the router drives. Implementations
// must be comparable; pointer types are.
type App interface {
	// OnDestroy registers fn to run when the app is torn down.
	OnDestroy(fn func())
	// SetRoute stores the latest committed route.
	SetRoute(r *route.Route)
}

// Options configures New.
type Options struct {
	Routes []route.Config
	// Mode defaults to history.ModeHash.
	Mode history.Mode
	Base string
	// DisableFallback keeps history mode on browsers without pushState
	// instead of switching to hash mode.
	DisableFallback bool
	ScrollBehavior  history.ScrollBehavior
	// Window overrides the browser window. When nil the page's window is
	// used, and without one the router runs in abstract mode.
	Window history.Window
}

// Router is the navigation controller.
type Router struct {
	matcher  *matcher.Matcher
	history  history.Backend
	win      history.Window
	mode     history.Mode
	fallback bool
	scroll   history.ScrollBehavior

	beforeHooks  hookList[route.Guard]
	resolveHooks hookList[route.Guard]
	afterHooks   hookList[route.AfterHook]

	mu        sync.Mutex
	apps      []App
	app       App
	listening bool
}

var _ runtime.NavigationManager = (*Router)(nil)

// New builds a router and its history backend. The mode is fixed here.
func New(opts Options) *Router {
	r := &Router{
		matcher: matcher.New(opts.Routes),
		scroll:  opts.ScrollBehavior,
	}

	win := opts.Window
	if win == nil {
		win = browser.Default()
	}

	mode := opts.Mode
	if mode == "" {
		mode = history.ModeHash
	}
	r.fallback = mode == history.ModeHistory && (win == nil || !win.SupportsPushState()) && !opts.DisableFallback
	if r.fallback {
		mode = history.ModeHash
	}
	r.win = win
	if win == nil {
		devcheck.Warn(mode.Valid(), fmt.Sprintf("invalid mode: %s", mode))
		mode = history.ModeAbstract
	}

	host := backendHost{r}
	switch mode {
	case history.ModeHistory:
		r.history = history.NewHTML5(host, win, opts.Base)
	case history.ModeHash:
		r.history = history.NewHash(host, win, opts.Base, r.fallback)
	case history.ModeAbstract:
		r.history = history.NewAbstract(host, opts.Base)
	default:
		devcheck.Assert(false, fmt.Sprintf("%v: %q", history.ErrInvalidMode, mode))
		mode = history.ModeHash
		r.history = history.NewHash(host, win, opts.Base, false)
	}
	r.mode = mode

	console.Debug("[Router.New] mode:", string(mode), "base:", r.history.Base())
	return r
}

// Mode returns the backend mode in use.
func (r *Router) Mode() history.Mode { return r.mode }

// Fallback reports whether history mode was downgraded to hash mode.
func (r *Router) Fallback() bool { return r.fallback }

// History returns the backend.
func (r *Router) History() history.Backend { return r.history }

// CurrentRoute returns the last committed route, route.Start before the
// first one.
func (r *Router) CurrentRoute() *route.Route { return r.history.Current() }

// Init attaches app. The first app attached starts the router: for the DOM
// backends it navigates to the location the page shows and then listens
// for back/forward events. Later apps only receive routes. Attaching the
// same app twice does nothing.
func (r *Router) Init(app App) {
	r.mu.Lock()
	if slices.Contains(r.apps, app) {
		r.mu.Unlock()
		return
	}
	r.apps = append(r.apps, app)
	r.mu.Unlock()

	var detach sync.Once
	app.OnDestroy(func() {
		detach.Do(func() { r.detach(app) })
	})

	r.mu.Lock()
	if r.app != nil {
		r.mu.Unlock()
		return
	}
	r.app = app
	subscribe := !r.listening
	r.listening = true
	r.mu.Unlock()

	if subscribe {
		r.history.Listen(r.broadcast)
	}

	h := r.history
	if h.Mode() != history.ModeHistory && h.Mode() != history.ModeHash {
		return
	}
	h.TransitionTo(route.Path(h.GetCurrentLocation()), func(to *route.Route) {
		h.SetupListeners()
		if r.scroll != nil && r.win.SupportsPushState() {
			h.HandleScroll(to, h.Current(), false)
		}
	}, func(error) {
		h.SetupListeners()
	})
}

func (r *Router) broadcast(to *route.Route) {
	r.mu.Lock()
	apps := slices.Clone(r.apps)
	r.mu.Unlock()

	for _, app := range apps {
		app.SetRoute(to)
	}
}

func (r *Router) detach(app App) {
	r.mu.Lock()
	if i := slices.Index(r.apps, app); i >= 0 {
		r.apps = slices.Delete(r.apps, i, i+1)
	}
	if r.app == app {
		r.app = nil
		if len(r.apps) > 0 {
			r.app = r.apps[0]
		}
	}
	teardown := r.app == nil
	r.mu.Unlock()

	if teardown {
		console.Debug("[Router.detach] last app destroyed, tearing down history")
		r.history.Teardown()
	}
}

func (r *Router) hasApp() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.app != nil
}

// Apps returns the attached apps, the authoritative one first.
func (r *Router) Apps() []App {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.apps)
}

// Match resolves raw against the route table without navigating.
func (r *Router) Match(raw route.RawLocation, current *route.Route, redirectedFrom *route.Location) *route.Route {
	return r.matcher.Match(raw, current, redirectedFrom)
}

// Routes lists the compiled route records.
func (r *Router) Routes() []*route.Record {
	return r.matcher.Routes()
}

// Push navigates to to, adding a history entry.
func (r *Router) Push(to route.RawLocation) *Navigation {
	nav := newNavigation()
	r.history.Push(to, nav.resolve, nav.reject)
	return nav
}

// Replace navigates to to, replacing the current history entry.
func (r *Router) Replace(to route.RawLocation) *Navigation {
	nav := newNavigation()
	r.history.Replace(to, nav.resolve, nav.reject)
	return nav
}

// PushFunc is Push reporting through callbacks. Either may be nil.
func (r *Router) PushFunc(to route.RawLocation, onComplete func(*route.Route), onAbort func(error)) {
	r.history.Push(to, onComplete, onAbort)
}

// ReplaceFunc is Replace reporting through callbacks. Either may be nil.
func (r *Router) ReplaceFunc(to route.RawLocation, onComplete func(*route.Route), onAbort func(error)) {
	r.history.Replace(to, onComplete, onAbort)
}

// Go moves n entries through the history; out of range moves are ignored.
func (r *Router) Go(n int) { r.history.Go(n) }
func (r *Router) Back()    { r.Go(-1) }
func (r *Router) Forward() { r.Go(1) }

// Navigate pushes path for components. Failures of a navigation that
// settled synchronously are returned, except for a duplicate target.
func (r *Router) Navigate(path string) error {
	nav := r.Push(route.Path(path))
	select {
	case <-nav.Done():
		if err := nav.Err(); err != nil && !history.IsNavigationFailure(err, history.Duplicated) {
			return fmt.Errorf("navigate to %q: %w", path, err)
		}
	default:
	}
	return nil
}

// AddRoutes extends the route table. Once a navigation happened, the
// current location is matched again so it can land on a new route.
func (r *Router) AddRoutes(routes []route.Config) {
	r.matcher.AddRoutes(routes)
	if r.history.Current() != route.Start {
		r.history.TransitionTo(route.Path(r.history.GetCurrentLocation()), nil, nil)
	}
}

// OnReady calls cb once the first navigation committed, or errorCb if it
// failed. Registered after that, cb runs immediately.
func (r *Router) OnReady(cb func(), errorCb func(error)) {
	r.history.OnReady(cb, errorCb)
}

// OnError registers errorCb for unexpected errors raised during
// navigations. Expected failures such as aborts are not reported.
func (r *Router) OnError(errorCb func(error)) {
	r.history.OnError(errorCb)
}

// GetMatchedComponents returns the components of every record to matches,
// or of the current route when to is nil.
func (r *Router) GetMatchedComponents(to *route.RawLocation) []any {
	if to == nil {
		return r.MatchedComponentsOf(r.CurrentRoute())
	}
	return r.MatchedComponentsOf(r.Resolve(*to).Route)
}

// MatchedComponentsOf flattens rt's matched components.
func (r *Router) MatchedComponentsOf(rt *route.Route) []any {
	components := rt.MatchedComponents()
	if components == nil {
		return []any{}
	}
	return components
}

// backendHost exposes the router to its backend.
type backendHost struct {
	r *Router
}

var _ history.Router = backendHost{}

func (h backendHost) Match(raw route.RawLocation, current *route.Route, redirectedFrom *route.Location) *route.Route {
	return h.r.Match(raw, current, redirectedFrom)
}

func (h backendHost) BeforeHooks() []route.Guard             { return guardsOf(&h.r.beforeHooks) }
func (h backendHost) ResolveHooks() []route.Guard            { return guardsOf(&h.r.resolveHooks) }
func (h backendHost) AfterHooks() []route.AfterHook          { return afterHooksOf(&h.r.afterHooks) }
func (h backendHost) HasApp() bool                           { return h.r.hasApp() }
func (h backendHost) ScrollBehavior() history.ScrollBehavior { return h.r.scroll }
