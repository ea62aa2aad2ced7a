package history

import (
	"strings"

	"github.com/vcrobe/nojs-router/route"
)

// Hash keeps the route in the URL fragment.
type Hash struct {
	engine
	win    Window
	scroll *scroller
}

var _ Backend = (*Hash)(nil)

// NewHash binds a hash-mode backend to win. With fallback set, a page
// loaded at a real path is sent to base + "/#" + path and the backend
// stays idle; the reload takes over.
func NewHash(r Router, win Window, basePath string, fallback bool) *Hash {
	h := &Hash{
		engine: newEngine(r, normalizeBase(basePath, win)),
		win:    win,
		scroll: newScroller(win),
	}
	h.self = h
	if fallback && h.checkFallback() {
		return h
	}
	h.ensureSlash()
	return h
}

func (h *Hash) checkFallback() bool {
	location := locationOf(h.win, h.basePath)
	if strings.HasPrefix(location, "/#") {
		return false
	}
	h.win.ReplaceLocation(route.CleanPath(h.basePath + "/#" + location))
	return true
}

// ensureSlash makes sure the fragment starts with "/". It reports whether
// it already did.
func (h *Hash) ensureSlash() bool {
	path := h.hash()
	if strings.HasPrefix(path, "/") {
		return true
	}
	h.replaceHash("/" + path)
	return false
}

// hash reads the fragment from href rather than location.hash, which some
// browsers decode.
func (h *Hash) hash() string {
	href := h.win.Href()
	i := strings.IndexByte(href, '#')
	if i < 0 {
		return ""
	}
	return href[i+1:]
}

func (h *Hash) urlFor(path string) string {
	href := h.win.Href()
	if i := strings.IndexByte(href, '#'); i >= 0 {
		href = href[:i]
	}
	return href + "#" + path
}

func (h *Hash) pushHash(path string) {
	if h.win.SupportsPushState() {
		h.scroll.push(h.urlFor(path))
		return
	}
	h.win.SetHash(path)
}

func (h *Hash) replaceHash(path string) {
	if h.win.SupportsPushState() {
		h.scroll.replace(h.urlFor(path))
		return
	}
	h.win.ReplaceLocation(h.urlFor(path))
}

func (h *Hash) Mode() Mode { return ModeHash }

func (h *Hash) SetupListeners() {
	if h.listening() {
		return
	}

	supportsPush := h.win.SupportsPushState()
	supportsScroll := supportsPush && h.router.ScrollBehavior() != nil
	if supportsScroll {
		h.addCleanup(h.scroll.setup())
	}

	event := "hashchange"
	if supportsPush {
		event = "popstate"
	}
	h.addCleanup(h.win.AddEventListener(event, func(string) {
		current := h.Current()
		if !h.ensureSlash() {
			return
		}
		h.TransitionTo(route.Path(h.hash()), func(r *route.Route) {
			if supportsScroll {
				h.HandleScroll(r, current, true)
			}
			if !supportsPush {
				h.replaceHash(r.FullPath)
			}
		}, nil)
	}))
}

func (h *Hash) Go(n int) {
	h.win.Go(n)
}

func (h *Hash) Push(to route.RawLocation, onComplete func(*route.Route), onAbort func(error)) {
	from := h.Current()
	h.TransitionTo(to, func(r *route.Route) {
		h.pushHash(r.FullPath)
		h.HandleScroll(r, from, false)
		if onComplete != nil {
			onComplete(r)
		}
	}, onAbort)
}

func (h *Hash) Replace(to route.RawLocation, onComplete func(*route.Route), onAbort func(error)) {
	from := h.Current()
	h.TransitionTo(to, func(r *route.Route) {
		h.replaceHash(r.FullPath)
		h.HandleScroll(r, from, false)
		if onComplete != nil {
			onComplete(r)
		}
	}, onAbort)
}

func (h *Hash) EnsureURL(push bool) {
	current := h.Current().FullPath
	if h.hash() == current {
		return
	}
	if push {
		h.pushHash(current)
	} else {
		h.replaceHash(current)
	}
}

func (h *Hash) GetCurrentLocation() string {
	return h.hash()
}

func (h *Hash) HandleScroll(to, from *route.Route, isPop bool) {
	h.scroll.handle(h.router, to, from, isPop)
}
