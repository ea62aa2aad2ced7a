package router

import (
	"slices"
	"sync"

	"go.uber.org/atomic"

	"github.com/vcrobe/nojs-router/route"
)

type hookEntry[T any] struct {
	fn      T
	removed *atomic.Bool
}

// hookList is an ordered hook registry. Removal flags the entry as well as
// splicing it out, so a pipeline holding an older snapshot skips it too.
type hookList[T any] struct {
	mu      sync.Mutex
	entries []*hookEntry[T]
}

func (l *hookList[T]) add(fn T) (unregister func()) {
	e := &hookEntry[T]{fn: fn, removed: atomic.NewBool(false)}

	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()

	return func() {
		if !e.removed.CompareAndSwap(false, true) {
			return
		}
		l.mu.Lock()
		defer l.mu.Unlock()
		if i := slices.Index(l.entries, e); i >= 0 {
			l.entries = slices.Delete(l.entries, i, i+1)
		}
	}
}

func (l *hookList[T]) snapshot() []*hookEntry[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}

func guardsOf(l *hookList[route.Guard]) []route.Guard {
	entries := l.snapshot()
	guards := make([]route.Guard, len(entries))
	for i, e := range entries {
		e := e
		guards[i] = func(to, from *route.Route, next route.Next) {
			if e.removed.Load() {
				next(route.Continue())
				return
			}
			e.fn(to, from, next)
		}
	}
	return guards
}

func afterHooksOf(l *hookList[route.AfterHook]) []route.AfterHook {
	entries := l.snapshot()
	hooks := make([]route.AfterHook, len(entries))
	for i, e := range entries {
		e := e
		hooks[i] = func(to, from *route.Route, failure error) {
			if e.removed.Load() {
				return
			}
			e.fn(to, from, failure)
		}
	}
	return hooks
}

func noop() {}

// BeforeEach registers a guard that runs first for every navigation. The
// returned function unregisters it; calling it again does nothing.
func (r *Router) BeforeEach(guard route.Guard) (unregister func()) {
	if guard == nil {
		return noop
	}
	return r.beforeHooks.add(guard)
}

// BeforeResolve registers a guard that runs after every BeforeEach guard
// and BeforeEnter guard approved the navigation.
func (r *Router) BeforeResolve(guard route.Guard) (unregister func()) {
	if guard == nil {
		return noop
	}
	return r.resolveHooks.add(guard)
}

// AfterEach registers a hook called once a navigation settles. failure is
// nil for a committed navigation.
func (r *Router) AfterEach(hook route.AfterHook) (unregister func()) {
	if hook == nil {
		return noop
	}
	return r.afterHooks.add(hook)
}
