package history

// Position is a scroll offset in CSS pixels.
type Position struct {
	X float64
	Y float64
}

// Window is the slice of the browser a DOM-backed backend drives. The
// browser package implements it over syscall/js; historytest provides an
// in-memory double.
type Window interface {
	// Href returns the full document URL.
	Href() string
	// Pathname returns location.pathname, decoded.
	Pathname() string
	// Search returns location.search including '?'.
	Search() string
	// Hash returns location.hash including '#'.
	Hash() string

	// SupportsPushState reports whether history.pushState is usable.
	SupportsPushState() bool
	// PushState adds a history entry tagged with key.
	PushState(key, url string)
	// ReplaceState rewrites the current entry, tagging it with key.
	ReplaceState(key, url string)
	// StateKey returns the key of the current history entry, if any.
	StateKey() string
	// Go moves n entries through the session history.
	Go(n int)

	// SetHash assigns location.hash.
	SetHash(fragment string)
	// ReplaceLocation calls location.replace(url).
	ReplaceLocation(url string)
	// BaseHref returns the href of the document's <base> element, or "".
	BaseHref() string

	ScrollPosition() Position
	ScrollTo(p Position)
	// ElementPosition returns the document offset of the first element
	// matching selector.
	ElementPosition(selector string) (Position, bool)

	// AddEventListener subscribes fn to a window event ("popstate",
	// "hashchange"). fn receives the state key carried by the event.
	AddEventListener(event string, fn func(stateKey string)) (remove func())
}
