// Package historytest provides an in-memory browser window for exercising
// history backends without a DOM.
package historytest

import (
	"net/url"
	"sync"

	"github.com/vcrobe/nojs-router/history"
)

type entry struct {
	href string
	key  string
}

type listener struct {
	id int
	fn func(string)
}

// Window simulates a tab's session history. Go, SetHash and Back/Forward
// dispatch popstate and hashchange synchronously.
type Window struct {
	mu        sync.Mutex
	entries   []entry
	index     int
	listeners map[string][]listener
	nextID    int

	noPushState bool
	baseHref    string
	scroll      history.Position
	elements    map[string]history.Position

	// Scrolls records every ScrollTo call.
	Scrolls []history.Position
	// Reloads records every ReplaceLocation URL.
	Reloads []string
}

var _ history.Window = (*Window)(nil)

// Option configures a Window.
type Option func(*Window)

// WithoutPushState simulates a browser lacking history.pushState.
func WithoutPushState() Option {
	return func(w *Window) { w.noPushState = true }
}

// WithBaseHref sets the document's <base href>.
func WithBaseHref(href string) Option {
	return func(w *Window) { w.baseHref = href }
}

// WithElement places an element matching selector at pos.
func WithElement(selector string, pos history.Position) Option {
	return func(w *Window) { w.elements[selector] = pos }
}

// New returns a window showing href, which must be absolute.
func New(href string, opts ...Option) *Window {
	w := &Window{
		entries:   []entry{{href: href}},
		listeners: make(map[string][]listener),
		elements:  make(map[string]history.Position),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Window) current() *url.URL {
	u, _ := url.Parse(w.entries[w.index].href)
	return u
}

func (w *Window) Href() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.entries[w.index].href
}

func (w *Window) Pathname() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current().Path
}

func (w *Window) Search() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if q := w.current().RawQuery; q != "" {
		return "?" + q
	}
	return ""
}

func (w *Window) Hash() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if f := w.current().Fragment; f != "" {
		return "#" + f
	}
	return ""
}

func (w *Window) SupportsPushState() bool { return !w.noPushState }

func (w *Window) resolve(ref string) string {
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return w.current().ResolveReference(r).String()
}

func (w *Window) PushState(key, ref string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	e := entry{href: w.resolve(ref), key: key}
	w.entries = append(w.entries[:w.index+1], e)
	w.index++
}

func (w *Window) ReplaceState(key, ref string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries[w.index] = entry{href: w.resolve(ref), key: key}
}

func (w *Window) StateKey() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.entries[w.index].key
}

// Go moves through the session history and fires popstate, plus
// hashchange when only the fragment changed.
func (w *Window) Go(n int) {
	w.mu.Lock()
	target := w.index + n
	if n == 0 || target < 0 || target >= len(w.entries) {
		w.mu.Unlock()
		return
	}
	before := w.current()
	w.index = target
	after := w.current()
	key := w.entries[target].key
	w.mu.Unlock()

	w.Dispatch("popstate", key)
	if before.Fragment != after.Fragment {
		w.Dispatch("hashchange", "")
	}
}

// Back and Forward mirror the browser buttons.
func (w *Window) Back()    { w.Go(-1) }
func (w *Window) Forward() { w.Go(1) }

// SetHash assigns location.hash, adding an entry when the fragment changes.
func (w *Window) SetHash(fragment string) {
	w.mu.Lock()
	u := w.current()
	if u.Fragment == fragment {
		w.mu.Unlock()
		return
	}
	u.Fragment = fragment
	w.entries = append(w.entries[:w.index+1], entry{href: u.String()})
	w.index++
	w.mu.Unlock()

	w.Dispatch("hashchange", "")
}

// Visit simulates the user editing the address bar to a same-document URL.
func (w *Window) Visit(ref string) {
	w.mu.Lock()
	before := w.current()
	href := w.resolve(ref)
	w.entries = append(w.entries[:w.index+1], entry{href: href})
	w.index++
	after := w.current()
	w.mu.Unlock()

	w.Dispatch("popstate", "")
	if before.Fragment != after.Fragment {
		w.Dispatch("hashchange", "")
	}
}

// ReplaceLocation records a location.replace; the window shows the new URL
// as if the page had reloaded there.
func (w *Window) ReplaceLocation(ref string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	href := w.resolve(ref)
	w.Reloads = append(w.Reloads, href)
	w.entries[w.index] = entry{href: href}
}

func (w *Window) BaseHref() string { return w.baseHref }

// SetScrollPosition moves the simulated viewport.
func (w *Window) SetScrollPosition(p history.Position) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.scroll = p
}

func (w *Window) ScrollPosition() history.Position {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scroll
}

func (w *Window) ScrollTo(p history.Position) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.scroll = p
	w.Scrolls = append(w.Scrolls, p)
}

func (w *Window) ElementPosition(selector string) (history.Position, bool) {
	pos, ok := w.elements[selector]
	return pos, ok
}

func (w *Window) AddEventListener(event string, fn func(string)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextID++
	id := w.nextID
	w.listeners[event] = append(w.listeners[event], listener{id: id, fn: fn})

	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		ls := w.listeners[event]
		for i, l := range ls {
			if l.id == id {
				w.listeners[event] = append(ls[:i], ls[i+1:]...)
				return
			}
		}
	}
}

// Listeners returns how many handlers are subscribed to event.
func (w *Window) Listeners(event string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.listeners[event])
}

// Dispatch fires event with the given state key.
func (w *Window) Dispatch(event, key string) {
	w.mu.Lock()
	ls := append([]listener(nil), w.listeners[event]...)
	w.mu.Unlock()
	for _, l := range ls {
		l.fn(key)
	}
}

// Entries returns the session history URLs and the current index.
func (w *Window) Entries() ([]string, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	hrefs := make([]string, len(w.entries))
	for i, e := range w.entries {
		hrefs[i] = e.href
	}
	return hrefs, w.index
}
