package route

// DecisionKind is what a guard asked the pipeline to do.
type DecisionKind int

const (
	// DecisionContinue lets the pipeline move on to the next guard.
	DecisionContinue DecisionKind = iota
	// DecisionAbort declines the navigation.
	DecisionAbort
	// DecisionRedirect abandons the navigation and starts a new one.
	DecisionRedirect
	// DecisionFail reports an unexpected error raised by the guard.
	DecisionFail
)

// Decision is passed to Next by a guard.
type Decision struct {
	kind   DecisionKind
	target RawLocation
	err    error
}

// Continue approves the pending navigation.
func Continue() Decision {
	return Decision{kind: DecisionContinue}
}

// Abort declines the pending navigation.
func Abort() Decision {
	return Decision{kind: DecisionAbort}
}

// Redirect abandons the pending navigation in favour of to.
// to.Replace selects a replace instead of a push.
func Redirect(to RawLocation) Decision {
	return Decision{kind: DecisionRedirect, target: to}
}

// Fail aborts the navigation with err. A nil err is treated as Abort.
func Fail(err error) Decision {
	if err == nil {
		return Abort()
	}
	return Decision{kind: DecisionFail, err: err}
}

func (d Decision) Kind() DecisionKind  { return d.kind }
func (d Decision) Target() RawLocation { return d.target }
func (d Decision) Err() error          { return d.err }

// Next resolves the guard it was handed to. It may be called later, from
// another goroutine, but only its first call counts.
type Next func(Decision)

// Guard inspects a pending transition from from to to and must eventually
// call next exactly once. A guard that never calls next stalls the
// navigation; there is no timeout.
type Guard func(to, from *Route, next Next)

// AfterHook observes a settled transition. failure is nil when to was
// committed.
type AfterHook func(to, from *Route, failure error)
