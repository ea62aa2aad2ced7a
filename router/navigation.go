package router

import (
	"context"
	"sync"

	"github.com/vcrobe/nojs-router/route"
)

// Navigation is the pending outcome of Push or Replace. It settles exactly
// once, with the committed route or with the error that stopped it.
type Navigation struct {
	done  chan struct{}
	once  sync.Once
	route *route.Route
	err   error
}

func newNavigation() *Navigation {
	return &Navigation{done: make(chan struct{})}
}

func (n *Navigation) resolve(r *route.Route) {
	n.once.Do(func() {
		n.route = r
		close(n.done)
	})
}

func (n *Navigation) reject(err error) {
	n.once.Do(func() {
		n.err = err
		close(n.done)
	})
}

// Done is closed once the navigation settled.
func (n *Navigation) Done() <-chan struct{} {
	return n.done
}

// Wait blocks until the navigation settles or ctx is done.
func (n *Navigation) Wait(ctx context.Context) (*route.Route, error) {
	select {
	case <-n.done:
		return n.route, n.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Route returns the committed route, or nil while pending or after a failure.
func (n *Navigation) Route() *route.Route {
	select {
	case <-n.done:
		return n.route
	default:
		return nil
	}
}

// Err returns why the navigation failed, or nil while pending or after a
// commit.
func (n *Navigation) Err() error {
	select {
	case <-n.done:
		return n.err
	default:
		return nil
	}
}
