package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/nojs-router/history"
	"github.com/vcrobe/nojs-router/route"
	"github.com/vcrobe/nojs-router/router"
)

func TestInstrument(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	clock := time.Unix(0, 0)
	m.now = func() time.Time {
		clock = clock.Add(2 * time.Millisecond)
		return clock
	}

	r := router.New(router.Options{
		Mode: history.ModeAbstract,
		Routes: []route.Config{
			{Path: "/a", Component: "A"},
			{Path: "/blocked", Component: "Blocked"},
			{Path: "/broken", Component: "Broken"},
		},
	})
	stop := m.Instrument(r)
	r.BeforeEach(func(to, _ *route.Route, next route.Next) {
		switch to.Path {
		case "/blocked":
			next(route.Abort())
		case "/broken":
			next(route.Fail(errors.New("boom")))
		default:
			next(route.Continue())
		}
	})

	r.Push(route.Path("/a"))
	r.Push(route.Path("/a"))
	r.Push(route.Path("/blocked"))
	r.Push(route.Path("/broken"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Navigations.WithLabelValues(OutcomeCommitted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Navigations.WithLabelValues(OutcomeDuplicated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Navigations.WithLabelValues(OutcomeAborted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Navigations.WithLabelValues(OutcomeFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Errors))

	count, err := testutil.GatherAndCount(reg, "nojs_router_navigation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Nil(t, m.pending)

	stop()
	r.Push(route.Path("/"))
	r.Push(route.Path("/broken"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Navigations.WithLabelValues(OutcomeCommitted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Navigations.WithLabelValues(OutcomeFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Errors))
}

func TestOutcomeOf(t *testing.T) {
	r := router.New(router.Options{Mode: history.ModeAbstract})
	var held route.Next
	r.BeforeEach(func(to, _ *route.Route, next route.Next) {
		if to.Path == "/slow" {
			held = next
			return
		}
		next(route.Continue())
	})
	slow := r.Push(route.Path("/slow"))
	r.Push(route.Path("/fast"))
	held(route.Continue())

	assert.Equal(t, OutcomeCancelled, outcomeOf(slow.Err()))
	assert.Equal(t, OutcomeCommitted, outcomeOf(nil))
	assert.Equal(t, OutcomeFailed, outcomeOf(errors.New("boom")))
}
