package history

import (
	"net/url"
	"sync"

	"github.com/google/uuid"

	"github.com/vcrobe/nojs-router/route"
)

// ScrollTarget tells the backend where to scroll after a navigation. When
// Selector matches an element the page scrolls to it, shifted back by
// Offset; otherwise X and Y are used.
type ScrollTarget struct {
	Position
	Selector string
	Offset   Position
}

// ScrollBehavior picks the scroll target for a committed navigation. saved
// is the position recorded for the history entry being returned to, and is
// nil unless the navigation came from a back/forward event. Returning nil
// leaves the scroll position alone.
type ScrollBehavior func(to, from *route.Route, saved *Position) *ScrollTarget

// scroller tags history entries with keys and remembers the scroll
// position each entry was left at.
type scroller struct {
	win Window

	mu        sync.Mutex
	key       string
	positions map[string]Position
}

func newScroller(win Window) *scroller {
	return &scroller{
		win:       win,
		key:       uuid.NewString(),
		positions: make(map[string]Position),
	}
}

func (s *scroller) stateKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key
}

func (s *scroller) setStateKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = key
}

func (s *scroller) save() {
	pos := s.win.ScrollPosition()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key != "" {
		s.positions[s.key] = pos
	}
}

func (s *scroller) saved() *Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.positions[s.key]
	if !ok {
		return nil
	}
	return &pos
}

// setup tags the landing entry and follows the key of whatever entry a
// popstate lands on.
func (s *scroller) setup() (remove func()) {
	if key := s.win.StateKey(); key != "" {
		s.setStateKey(key)
	}
	s.win.ReplaceState(s.stateKey(), relativeHref(s.win.Href()))

	return s.win.AddEventListener("popstate", func(key string) {
		s.save()
		if key != "" {
			s.setStateKey(key)
		}
	})
}

func (s *scroller) push(url string) {
	s.save()
	key := uuid.NewString()
	s.setStateKey(key)
	s.win.PushState(key, url)
}

func (s *scroller) replace(url string) {
	s.save()
	s.win.ReplaceState(s.stateKey(), url)
}

func (s *scroller) handle(r Router, to, from *route.Route, isPop bool) {
	if !r.HasApp() {
		return
	}
	behavior := r.ScrollBehavior()
	if behavior == nil {
		return
	}

	var saved *Position
	if isPop {
		saved = s.saved()
	}
	target := behavior(to, from, saved)
	if target == nil {
		return
	}

	pos := target.Position
	if target.Selector != "" {
		if el, ok := s.win.ElementPosition(target.Selector); ok {
			pos = Position{X: el.X - target.Offset.X, Y: el.Y - target.Offset.Y}
		}
	}
	s.win.ScrollTo(pos)
}

// relativeHref drops scheme and host from an absolute URL.
func relativeHref(href string) string {
	u, err := url.Parse(href)
	if err != nil || u.Host == "" {
		return href
	}
	u.Scheme = ""
	u.Host = ""
	u.User = nil
	return u.String()
}
