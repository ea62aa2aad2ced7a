package history

import (
	"strings"

	"github.com/vcrobe/nojs-router/route"
)

// HTML5 keeps the route in the real URL path via the History API.
type HTML5 struct {
	engine
	win    Window
	scroll *scroller

	startLocation string
}

var _ Backend = (*HTML5)(nil)

// NewHTML5 binds a history-mode backend to win. basePath is normalized;
// an empty one falls back to the document's <base> element.
func NewHTML5(r Router, win Window, basePath string) *HTML5 {
	h := &HTML5{
		engine: newEngine(r, normalizeBase(basePath, win)),
		win:    win,
		scroll: newScroller(win),
	}
	h.self = h
	h.startLocation = locationOf(win, h.basePath)
	return h
}

// locationOf returns the window's path relative to base, plus search and
// hash. The base prefix is compared case-insensitively.
func locationOf(win Window, base string) string {
	path := win.Pathname()
	lower, lowerBase := strings.ToLower(path), strings.ToLower(base)
	if base != "" && (lower == lowerBase || strings.HasPrefix(lower, lowerBase+"/")) {
		path = path[len(base):]
	}
	if path == "" {
		path = "/"
	}
	return path + win.Search() + win.Hash()
}

func (h *HTML5) Mode() Mode { return ModeHistory }

func (h *HTML5) SetupListeners() {
	if h.listening() {
		return
	}

	supportsScroll := h.win.SupportsPushState() && h.router.ScrollBehavior() != nil
	if supportsScroll {
		h.addCleanup(h.scroll.setup())
	}

	h.addCleanup(h.win.AddEventListener("popstate", func(string) {
		current := h.Current()
		location := locationOf(h.win, h.basePath)
		// Some browsers fire popstate on page load.
		if current == route.Start && location == h.startLocation {
			return
		}
		h.TransitionTo(route.Path(location), func(r *route.Route) {
			if supportsScroll {
				h.HandleScroll(r, current, true)
			}
		}, nil)
	}))
}

func (h *HTML5) Go(n int) {
	h.win.Go(n)
}

func (h *HTML5) Push(to route.RawLocation, onComplete func(*route.Route), onAbort func(error)) {
	from := h.Current()
	h.TransitionTo(to, func(r *route.Route) {
		h.scroll.push(route.CleanPath(h.basePath + r.FullPath))
		h.HandleScroll(r, from, false)
		if onComplete != nil {
			onComplete(r)
		}
	}, onAbort)
}

func (h *HTML5) Replace(to route.RawLocation, onComplete func(*route.Route), onAbort func(error)) {
	from := h.Current()
	h.TransitionTo(to, func(r *route.Route) {
		h.scroll.replace(route.CleanPath(h.basePath + r.FullPath))
		h.HandleScroll(r, from, false)
		if onComplete != nil {
			onComplete(r)
		}
	}, onAbort)
}

func (h *HTML5) EnsureURL(push bool) {
	current := h.Current()
	if locationOf(h.win, h.basePath) == current.FullPath {
		return
	}
	url := route.CleanPath(h.basePath + current.FullPath)
	if push {
		h.scroll.push(url)
	} else {
		h.scroll.replace(url)
	}
}

func (h *HTML5) GetCurrentLocation() string {
	return locationOf(h.win, h.basePath)
}

func (h *HTML5) HandleScroll(to, from *route.Route, isPop bool) {
	h.scroll.handle(h.router, to, from, isPop)
}
