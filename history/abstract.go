package history

import (
	"sync"

	"github.com/vcrobe/nojs-router/route"
)

// Abstract keeps its own entry stack and never touches a URL. It serves
// non-browser hosts and tests.
type Abstract struct {
	engine

	stackMu sync.Mutex
	stack   []*route.Route
	index   int
}

var _ Backend = (*Abstract)(nil)

func NewAbstract(r Router, basePath string) *Abstract {
	a := &Abstract{
		engine: newEngine(r, normalizeBase(basePath, nil)),
		index:  -1,
	}
	a.self = a
	return a
}

func (a *Abstract) Mode() Mode { return ModeAbstract }

func (a *Abstract) Push(to route.RawLocation, onComplete func(*route.Route), onAbort func(error)) {
	a.TransitionTo(to, func(r *route.Route) {
		a.stackMu.Lock()
		a.stack = append(a.stack[:a.index+1], r)
		a.index++
		a.stackMu.Unlock()
		if onComplete != nil {
			onComplete(r)
		}
	}, onAbort)
}

func (a *Abstract) Replace(to route.RawLocation, onComplete func(*route.Route), onAbort func(error)) {
	a.TransitionTo(to, func(r *route.Route) {
		a.stackMu.Lock()
		if a.index < 0 {
			a.stack = []*route.Route{r}
			a.index = 0
		} else {
			a.stack = append(a.stack[:a.index], r)
		}
		a.stackMu.Unlock()
		if onComplete != nil {
			onComplete(r)
		}
	}, onAbort)
}

// Go moves n entries through the stack. Targets outside the stack are
// ignored. The move runs the guard pipeline; a duplicate target still
// moves the index.
func (a *Abstract) Go(n int) {
	a.stackMu.Lock()
	target := a.index + n
	if target < 0 || target >= len(a.stack) {
		a.stackMu.Unlock()
		return
	}
	r := a.stack[target]
	a.stackMu.Unlock()

	a.confirmTransition(r, func() {
		prev := a.Current()
		a.setIndex(target)
		a.updateRoute(r)
		a.runAfterHooks(r, prev, nil)
	}, func(err error) {
		if IsNavigationFailure(err, Duplicated) {
			a.setIndex(target)
		}
	})
}

func (a *Abstract) setIndex(i int) {
	a.stackMu.Lock()
	defer a.stackMu.Unlock()
	a.index = i
}

// Entries returns a copy of the stack and the current index into it.
func (a *Abstract) Entries() ([]*route.Route, int) {
	a.stackMu.Lock()
	defer a.stackMu.Unlock()
	return append([]*route.Route(nil), a.stack...), a.index
}

func (a *Abstract) GetCurrentLocation() string {
	a.stackMu.Lock()
	defer a.stackMu.Unlock()
	if a.index < 0 || a.index >= len(a.stack) {
		return "/"
	}
	return a.stack[a.index].FullPath
}

func (a *Abstract) EnsureURL(bool)                         {}
func (a *Abstract) SetupListeners()                        {}
func (a *Abstract) HandleScroll(_, _ *route.Route, _ bool) {}
