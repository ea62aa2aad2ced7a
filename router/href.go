package router

import (
	"github.com/vcrobe/nojs-router/history"
	"github.com/vcrobe/nojs-router/route"
)

// Resolved describes where a location would lead without navigating.
type Resolved struct {
	Location route.Location
	Route    *route.Route
	Href     string

	// NormalizedTo and Resolved mirror Location and Route for callers
	// written against the older field names.
	NormalizedTo route.Location
	Resolved     *route.Route
}

// Resolve resolves to against the current route.
func (r *Router) Resolve(to route.RawLocation) Resolved {
	return r.ResolveFrom(to, nil, false)
}

// ResolveFrom resolves to against current, or the current route when nil.
// appendPath appends relative paths to current's path.
func (r *Router) ResolveFrom(to route.RawLocation, current *route.Route, appendPath bool) Resolved {
	if current == nil {
		current = r.history.Current()
	}
	location := route.Normalize(to, current, appendPath)
	resolved := r.Match(location.Raw(), current, nil)

	fullPath := resolved.RedirectedFrom
	if fullPath == "" {
		fullPath = resolved.FullPath
	}
	href := createHref(r.history.Base(), fullPath, r.mode)

	return Resolved{
		Location:     location,
		Route:        resolved,
		Href:         href,
		NormalizedTo: location,
		Resolved:     resolved,
	}
}

func createHref(base, fullPath string, mode history.Mode) string {
	path := fullPath
	if mode == history.ModeHash {
		path = "#" + fullPath
	}
	if base != "" {
		return route.CleanPath(base + "/" + path)
	}
	return path
}
