package history

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"

	"go.uber.org/atomic"

	"github.com/vcrobe/nojs-router/console"
	"github.com/vcrobe/nojs-router/route"
)

// engine is the transition machinery every variant embeds. It owns the
// current route, the pending route and the ready/error callback queues.
// Its lock is never held while user callbacks run.
type engine struct {
	router   Router
	self     Backend
	basePath string

	mu            sync.Mutex
	current       *route.Route
	pending       *route.Route
	ready         bool
	readyCbs      []func()
	readyErrorCbs []func(error)
	errorCbs      []func(error)
	listeners     []func(*route.Route)
	cleanups      []func()
}

func newEngine(r Router, basePath string) engine {
	return engine{
		router:   r,
		basePath: basePath,
		current:  route.Start,
	}
}

var originRE = regexp.MustCompile(`^https?://[^/]+`)

// normalizeBase turns base into "" or "/segment..." without a trailing
// slash. An empty base falls back to the document's <base href>.
func normalizeBase(base string, win Window) string {
	if base == "" && win != nil {
		base = originRE.ReplaceAllString(win.BaseHref(), "")
	}
	if base == "" {
		base = "/"
	}
	if base[0] != '/' {
		base = "/" + base
	}
	return strings.TrimSuffix(base, "/")
}

func (e *engine) Current() *route.Route {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

func (e *engine) Base() string {
	return e.basePath
}

func (e *engine) Listen(cb func(*route.Route)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, cb)
}

func (e *engine) OnReady(cb func(), errorCb func(error)) {
	e.mu.Lock()
	if e.ready {
		e.mu.Unlock()
		if cb != nil {
			cb()
		}
		return
	}
	if cb != nil {
		e.readyCbs = append(e.readyCbs, cb)
	}
	if errorCb != nil {
		e.readyErrorCbs = append(e.readyErrorCbs, errorCb)
	}
	e.mu.Unlock()
}

func (e *engine) OnError(errorCb func(error)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errorCbs = append(e.errorCbs, errorCb)
}

// Teardown releases platform listeners and resets the backend to
// route.Start. Calling it again is harmless.
func (e *engine) Teardown() {
	e.mu.Lock()
	cleanups := e.cleanups
	e.cleanups = nil
	e.current = route.Start
	e.pending = nil
	e.mu.Unlock()

	for _, cleanup := range cleanups {
		cleanup()
	}
}

func (e *engine) listening() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.cleanups) > 0
}

func (e *engine) addCleanup(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cleanups = append(e.cleanups, fn)
}

// TransitionTo resolves to against the current route and runs the guard
// pipeline. The route is committed only after every guard approved it.
func (e *engine) TransitionTo(to route.RawLocation, onComplete func(*route.Route), onAbort func(error)) {
	prev := e.Current()

	target, err := e.match(to, prev)
	if err != nil {
		e.notifyError(err)
		if onAbort != nil {
			onAbort(err)
		}
		return
	}

	e.confirmTransition(target, func() {
		e.updateRoute(target)
		if onComplete != nil {
			onComplete(target)
		}
		e.self.EnsureURL(false)
		e.runAfterHooks(target, prev, nil)
		e.markReady()
	}, func(err error) {
		if onAbort != nil {
			onAbort(err)
		}
		if !IsNavigationFailure(err, Redirected) {
			e.runAfterHooks(target, prev, err)
		}
		// A redirect of the very first navigation is settled by the
		// navigation it redirects to.
		if !IsNavigationFailure(err, Redirected) || prev != route.Start {
			e.markReadyWithError(err)
		}
	})
}

func (e *engine) match(to route.RawLocation, current *route.Route) (r *route.Route, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("history: resolving %q: %v", to.Path+to.Name, rec)
		}
	}()
	return e.router.Match(to, current, nil), nil
}

func (e *engine) confirmTransition(to *route.Route, onComplete func(), onAbort func(error)) {
	current := e.Current()
	e.setPending(to)

	abort := func(err error) {
		if !IsNavigationFailure(err) && !e.notifyError(err) {
			console.Warn("[History.confirmTransition] uncaught error during route navigation:", err.Error())
		}
		onAbort(err)
	}

	lastTo := len(to.Matched) - 1
	lastCurrent := len(current.Matched) - 1
	if route.IsSameRoute(to, current) &&
		lastTo == lastCurrent &&
		(lastTo < 0 || to.Matched[lastTo] == current.Matched[lastCurrent]) {
		e.self.EnsureURL(false)
		if to.Hash != "" {
			e.self.HandleScroll(to, current, false)
		}
		abort(newDuplicatedError(current, to))
		return
	}

	_, _, activated := resolveQueue(current.Matched, to.Matched)
	queue := append(e.router.BeforeHooks(), enterGuards(activated)...)

	iterator := func(hook route.Guard, next func()) {
		if !e.isPending(to) {
			abort(newCancelledError(current, to))
			return
		}
		runGuard(hook, to, current, func(d route.Decision) {
			switch d.Kind() {
			case route.DecisionAbort:
				e.self.EnsureURL(true)
				abort(newAbortedError(current, to))
			case route.DecisionFail:
				e.self.EnsureURL(true)
				abort(d.Err())
			case route.DecisionRedirect:
				abort(newRedirectedError(current, to))
				target := d.Target()
				if target.Replace {
					e.self.Replace(target, nil, nil)
				} else {
					e.self.Push(target, nil, nil)
				}
			default:
				next()
			}
		})
	}

	runQueue(queue, iterator, func() {
		runQueue(e.router.ResolveHooks(), iterator, func() {
			if !e.isPending(to) {
				abort(newCancelledError(current, to))
				return
			}
			e.clearPending(to)
			onComplete()
		})
	})
}

// runGuard calls hook with a Next that only honours its first call. A panic
// before next was called becomes a failed navigation; a panic after it
// came from further down the pipeline and is re-raised.
func runGuard(hook route.Guard, to, from *route.Route, resolve func(route.Decision)) {
	called := atomic.NewBool(false)
	next := func(d route.Decision) {
		if !called.CompareAndSwap(false, true) {
			console.Warn("[History.runGuard] next called more than once in a navigation guard")
			return
		}
		resolve(d)
	}

	defer func() {
		if rec := recover(); rec != nil {
			if called.Load() {
				panic(rec)
			}
			next(route.Fail(fmt.Errorf("%w: %v", ErrGuardPanic, rec)))
		}
	}()
	hook(to, from, next)
}

func (e *engine) setPending(r *route.Route) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = r
}

func (e *engine) isPending(r *route.Route) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending == r
}

func (e *engine) clearPending(r *route.Route) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending == r {
		e.pending = nil
	}
}

func (e *engine) updateRoute(r *route.Route) {
	e.mu.Lock()
	e.current = r
	listeners := slices.Clone(e.listeners)
	e.mu.Unlock()

	for _, cb := range listeners {
		cb(r)
	}
}

func (e *engine) runAfterHooks(to, from *route.Route, failure error) {
	for _, hook := range e.router.AfterHooks() {
		if hook != nil {
			hook(to, from, failure)
		}
	}
}

// notifyError hands err to every OnError callback and reports whether
// there was one.
func (e *engine) notifyError(err error) bool {
	e.mu.Lock()
	cbs := slices.Clone(e.errorCbs)
	e.mu.Unlock()

	for _, cb := range cbs {
		cb(err)
	}
	return len(cbs) > 0
}

func (e *engine) markReady() {
	e.mu.Lock()
	if e.ready {
		e.mu.Unlock()
		return
	}
	e.ready = true
	cbs := e.readyCbs
	e.readyCbs = nil
	e.readyErrorCbs = nil
	e.mu.Unlock()

	for _, cb := range cbs {
		cb()
	}
}

func (e *engine) markReadyWithError(err error) {
	e.mu.Lock()
	if e.ready {
		e.mu.Unlock()
		return
	}
	e.ready = true
	cbs := e.readyErrorCbs
	e.readyCbs = nil
	e.readyErrorCbs = nil
	e.mu.Unlock()

	for _, cb := range cbs {
		cb(err)
	}
}
