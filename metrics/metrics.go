// Package metrics exports router navigation counters to Prometheus.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/atomic"

	"github.com/vcrobe/nojs-router/history"
	"github.com/vcrobe/nojs-router/route"
	"github.com/vcrobe/nojs-router/router"
)

// Outcome label values.
const (
	OutcomeCommitted  = "committed"
	OutcomeAborted    = "aborted"
	OutcomeCancelled  = "cancelled"
	OutcomeDuplicated = "duplicated"
	OutcomeFailed     = "failed"
)

// Metrics holds the router collectors. Build it with New and attach it to
// a router with Instrument.
type Metrics struct {
	Navigations        *prometheus.CounterVec
	Errors             prometheus.Counter
	NavigationDuration prometheus.Histogram

	mu      sync.Mutex
	pending *route.Route
	started time.Time
	now     func() time.Time
}

// New registers the router metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nojs_router_navigations_total",
			Help: "Total number of settled navigations by outcome",
		}, []string{"outcome"}),
		Errors: factory.NewCounter(prometheus.CounterOpts{
			Name: "nojs_router_errors_total",
			Help: "Total number of unexpected errors raised by navigation guards",
		}),
		NavigationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "nojs_router_navigation_duration_seconds",
			Help:    "Time from the first guard to the settlement of a navigation",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		}),
		now: time.Now,
	}
}

// Instrument hooks m into r. The returned function stops recording.
func (m *Metrics) Instrument(r *router.Router) (stop func()) {
	stopped := atomic.NewBool(false)
	removeBefore := r.BeforeEach(func(to, _ *route.Route, next route.Next) {
		m.mu.Lock()
		m.pending = to
		m.started = m.now()
		m.mu.Unlock()
		next(route.Continue())
	})
	removeAfter := r.AfterEach(func(to, _ *route.Route, failure error) {
		m.ObserveNavigation(failure)
		m.mu.Lock()
		if m.pending == to {
			m.NavigationDuration.Observe(m.now().Sub(m.started).Seconds())
			m.pending = nil
		}
		m.mu.Unlock()
	})
	r.OnError(func(error) {
		if !stopped.Load() {
			m.Errors.Inc()
		}
	})

	return func() {
		stopped.Store(true)
		removeBefore()
		removeAfter()
	}
}

// ObserveNavigation counts one settled navigation.
func (m *Metrics) ObserveNavigation(failure error) {
	m.Navigations.WithLabelValues(outcomeOf(failure)).Inc()
}

func outcomeOf(failure error) string {
	switch {
	case failure == nil:
		return OutcomeCommitted
	case history.IsNavigationFailure(failure, history.Duplicated):
		return OutcomeDuplicated
	case history.IsNavigationFailure(failure, history.Cancelled):
		return OutcomeCancelled
	case history.IsNavigationFailure(failure, history.Aborted):
		return OutcomeAborted
	default:
		return OutcomeFailed
	}
}
