package history

import (
	"errors"
	"fmt"

	"github.com/vcrobe/nojs-router/route"
)

// FailureType classifies an expected navigation failure. Values are bit
// flags so IsNavigationFailure can test several kinds at once.
type FailureType int

const (
	// Redirected means a guard redirected the navigation elsewhere.
	Redirected FailureType = 1 << (iota + 1)
	// Aborted means a guard declined the navigation.
	Aborted
	// Cancelled means a newer navigation superseded this one.
	Cancelled
	// Duplicated means the target was already the current location.
	Duplicated
)

func (t FailureType) String() string {
	switch t {
	case Redirected:
		return "redirected"
	case Aborted:
		return "aborted"
	case Cancelled:
		return "cancelled"
	case Duplicated:
		return "duplicated"
	default:
		return fmt.Sprintf("FailureType(%d)", int(t))
	}
}

// Sentinel errors matched by errors.Is against a *NavigationFailure.
var (
	ErrRedirected = errors.New("navigation redirected")
	ErrAborted    = errors.New("navigation aborted")
	ErrCancelled  = errors.New("navigation cancelled")
	ErrDuplicated = errors.New("navigation duplicated")

	// ErrGuardPanic wraps a panic recovered from a guard.
	ErrGuardPanic = errors.New("navigation guard panicked")

	// ErrInvalidMode reports an unrecognized history mode.
	ErrInvalidMode = errors.New("invalid history mode")
)

// NavigationFailure is an expected outcome that stopped a navigation
// without anything going wrong: an abort, a redirect, a newer navigation or
// a duplicate target. Unexpected guard errors are never wrapped in it.
type NavigationFailure struct {
	Type FailureType
	From *route.Route
	To   *route.Route
	msg  string
}

func (e *NavigationFailure) Error() string {
	return e.msg
}

// Is lets errors.Is compare against the ErrX sentinels.
func (e *NavigationFailure) Is(target error) bool {
	switch target {
	case ErrRedirected:
		return e.Type == Redirected
	case ErrAborted:
		return e.Type == Aborted
	case ErrCancelled:
		return e.Type == Cancelled
	case ErrDuplicated:
		return e.Type == Duplicated
	}
	return false
}

// IsNavigationFailure reports whether err is a *NavigationFailure and, when
// types are given, whether it is one of them.
func IsNavigationFailure(err error, types ...FailureType) bool {
	var failure *NavigationFailure
	if !errors.As(err, &failure) {
		return false
	}
	if len(types) == 0 {
		return true
	}
	var mask FailureType
	for _, t := range types {
		mask |= t
	}
	return failure.Type&mask != 0
}

func newRedirectedError(from, to *route.Route) *NavigationFailure {
	return &NavigationFailure{
		Type: Redirected,
		From: from,
		To:   to,
		msg:  fmt.Sprintf("Redirected when going from %q to %q via a navigation guard.", from.FullPath, to.FullPath),
	}
}

func newDuplicatedError(from, to *route.Route) *NavigationFailure {
	return &NavigationFailure{
		Type: Duplicated,
		From: from,
		To:   to,
		msg:  fmt.Sprintf("Avoided redundant navigation to current location: %q.", from.FullPath),
	}
}

func newCancelledError(from, to *route.Route) *NavigationFailure {
	return &NavigationFailure{
		Type: Cancelled,
		From: from,
		To:   to,
		msg:  fmt.Sprintf("Navigation cancelled from %q to %q with a new navigation.", from.FullPath, to.FullPath),
	}
}

func newAbortedError(from, to *route.Route) *NavigationFailure {
	return &NavigationFailure{
		Type: Aborted,
		From: from,
		To:   to,
		msg:  fmt.Sprintf("Navigation aborted from %q to %q via a navigation guard.", from.FullPath, to.FullPath),
	}
}
