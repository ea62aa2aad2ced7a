// Package matcher compiles a route table and resolves locations against it.
package matcher

import (
	"fmt"
	"strings"
	"sync"

	"github.com/vcrobe/nojs-router/console"
	"github.com/vcrobe/nojs-router/route"
)

// Matcher maps locations to routes. Match is total: a location nothing
// matches resolves to a route with no matched records.
type Matcher struct {
	mu       sync.RWMutex
	pathList []string
	pathMap  map[string]*route.Record
	nameMap  map[string]*route.Record
}

// New compiles routes into a Matcher.
func New(routes []route.Config) *Matcher {
	m := &Matcher{
		pathMap: make(map[string]*route.Record),
		nameMap: make(map[string]*route.Record),
	}
	m.AddRoutes(routes)
	return m
}

// AddRoutes merges routes into the table. Records whose path is already
// registered keep the earlier declaration.
func (m *Matcher) AddRoutes(routes []route.Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, cfg := range routes {
		m.addRouteRecord(cfg, nil, "")
	}

	// Wildcard routes always match last.
	var wildcards []string
	ordered := m.pathList[:0:0]
	for _, path := range m.pathList {
		if path == "*" {
			wildcards = append(wildcards, path)
			continue
		}
		ordered = append(ordered, path)
	}
	m.pathList = append(ordered, wildcards...)
}

func (m *Matcher) addRouteRecord(cfg route.Config, parent *route.Record, matchAs string) {
	path := normalizePath(cfg.Path, parent)
	pattern, err := route.CompilePattern(path, cfg.CaseSensitive)
	if err != nil {
		console.Error("[Matcher.AddRoutes] skipping route:", err.Error())
		return
	}

	record := &route.Record{
		Path:         path,
		Pattern:      pattern,
		Name:         cfg.Name,
		Parent:       parent,
		MatchAs:      matchAs,
		Redirect:     cfg.Redirect,
		RedirectFunc: cfg.RedirectFunc,
		Views:        route.ViewsOf(cfg),
		Meta:         cfg.Meta,
		BeforeEnter:  cfg.BeforeEnter,
	}

	if cfg.Name != "" && !record.HasRedirect() && hasDefaultChild(cfg.Children) {
		console.Warn(fmt.Sprintf("[Matcher.AddRoutes] named route %q has a default child; navigating by name will not render it", cfg.Name))
	}
	for _, child := range cfg.Children {
		childMatchAs := ""
		if matchAs != "" {
			childMatchAs = route.CleanPath(matchAs + "/" + child.Path)
		}
		m.addRouteRecord(child, record, childMatchAs)
	}

	if _, ok := m.pathMap[record.Path]; !ok {
		m.pathList = append(m.pathList, record.Path)
		m.pathMap[record.Path] = record
	}

	for _, alias := range cfg.Alias {
		if alias == path {
			console.Warn(fmt.Sprintf("[Matcher.AddRoutes] alias %q equals the route path; ignored", alias))
			continue
		}
		target := record.Path
		if target == "" {
			target = "/"
		}
		m.addRouteRecord(route.Config{Path: alias, Children: cfg.Children}, parent, target)
	}

	if cfg.Name != "" {
		if _, ok := m.nameMap[cfg.Name]; !ok {
			m.nameMap[cfg.Name] = record
		} else if matchAs == "" {
			console.Warn(fmt.Sprintf("[Matcher.AddRoutes] duplicate named route %q for path %q", cfg.Name, record.Path))
		}
	}
}

func hasDefaultChild(children []route.Config) bool {
	for _, child := range children {
		if child.Path == "" || child.Path == "/" {
			return true
		}
	}
	return false
}

func normalizePath(path string, parent *route.Record) string {
	path = strings.TrimRight(path, "/")
	if path == "" {
		if parent == nil {
			return "/"
		}
		return parent.Path
	}
	if path[0] == '/' || parent == nil {
		return path
	}
	return route.JoinPaths(parent.Path, path)
}

// Routes returns every record in match order.
func (m *Matcher) Routes() []*route.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make([]*route.Record, 0, len(m.pathList))
	for _, path := range m.pathList {
		res = append(res, m.pathMap[path])
	}
	return res
}

// Lookup returns the record registered under name.
func (m *Matcher) Lookup(name string) (*route.Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.nameMap[name]
	return record, ok
}

// Match resolves raw against the table. current supplies the base for
// relative targets and inherited params; redirectedFrom records the
// location a redirect started from.
func (m *Matcher) Match(raw route.RawLocation, current *route.Route, redirectedFrom *route.Location) *route.Route {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.match(raw, current, redirectedFrom, 0)
}

// maxRedirects bounds redirect and alias chains that point at each other.
const maxRedirects = 32

func (m *Matcher) match(raw route.RawLocation, current *route.Route, redirectedFrom *route.Location, depth int) *route.Route {
	location := route.Normalize(raw, current, false)

	if location.Name != "" {
		record, ok := m.nameMap[location.Name]
		if !ok {
			console.Warn(fmt.Sprintf("[Matcher.Match] route with name %q does not exist", location.Name))
			return route.NewRoute(nil, location, nil)
		}

		if location.Params == nil {
			location.Params = map[string]string{}
		}
		if current != nil {
			for _, key := range record.Pattern.Keys() {
				if key.Optional {
					continue
				}
				if _, ok := location.Params[key.Name]; ok {
					continue
				}
				if v, ok := current.Params[key.Name]; ok {
					location.Params[key.Name] = v
				}
			}
		}
		location.Path = fillParams(record.Pattern, location.Params, fmt.Sprintf("named route %q", location.Name))
		return m.createRoute(record, location, redirectedFrom, depth)
	}

	if location.Path != "" {
		for _, path := range m.pathList {
			record := m.pathMap[path]
			if params, ok := record.Pattern.Match(location.Path); ok {
				location.Params = params
				return m.createRoute(record, location, redirectedFrom, depth)
			}
		}
	}

	location.Params = map[string]string{}
	return route.NewRoute(nil, location, nil)
}

func (m *Matcher) createRoute(record *route.Record, location route.Location, redirectedFrom *route.Location, depth int) *route.Route {
	if record != nil && record.HasRedirect() {
		from := redirectedFrom
		if from == nil {
			from = &location
		}
		return m.redirect(record, location, from, depth)
	}
	if record != nil && record.MatchAs != "" {
		return m.alias(record, location, depth)
	}
	return route.NewRoute(record, location, redirectedFrom)
}

func (m *Matcher) redirect(record *route.Record, location route.Location, redirectedFrom *route.Location, depth int) *route.Route {
	if depth >= maxRedirects {
		console.Error(fmt.Sprintf("[Matcher.Match] redirect loop detected at %q", record.Path))
		return route.NewRoute(nil, location, nil)
	}

	target := record.Redirect
	if record.RedirectFunc != nil {
		target = record.RedirectFunc(route.NewRoute(record, location, nil))
	}
	if target.IsZero() {
		console.Warn(fmt.Sprintf("[Matcher.Match] invalid redirect option for %q", record.Path))
		return route.NewRoute(nil, location, nil)
	}

	query := location.Query
	if target.Query != nil {
		query = target.Query
	}
	hash := location.Hash
	if target.Hash != "" {
		hash = target.Hash
	}
	params := location.Params
	if target.Params != nil {
		params = target.Params
	}

	if target.Name != "" {
		if _, ok := m.nameMap[target.Name]; !ok {
			console.Warn(fmt.Sprintf("[Matcher.Match] redirect failed: named route %q not found", target.Name))
			return route.NewRoute(nil, location, nil)
		}
		next := route.Location{Name: target.Name, Query: query, Hash: hash, Params: params}
		return m.match(next.Raw(), nil, redirectedFrom, depth+1)
	}

	if target.Path != "" {
		targetPath, targetQuery, targetHash := route.ParsePath(target.Path)
		if targetQuery != "" && target.Query == nil {
			query = route.ResolveQuery(targetQuery, nil)
		}
		if targetHash != "" && target.Hash == "" {
			hash = targetHash
		}

		rawPath := normalizePath(targetPath, record.Parent)
		pattern, err := route.CompilePattern(rawPath, true)
		resolved := rawPath
		if err == nil {
			resolved = fillParams(pattern, params, fmt.Sprintf("redirect route with path %q", rawPath))
		}
		next := route.Location{Path: resolved, Query: query, Hash: hash}
		return m.match(next.Raw(), nil, redirectedFrom, depth+1)
	}

	console.Warn(fmt.Sprintf("[Matcher.Match] invalid redirect option for %q", record.Path))
	return route.NewRoute(nil, location, nil)
}

func (m *Matcher) alias(record *route.Record, location route.Location, depth int) *route.Route {
	if depth >= maxRedirects {
		return route.NewRoute(nil, location, nil)
	}

	pattern, err := route.CompilePattern(record.MatchAs, true)
	if err != nil {
		return route.NewRoute(nil, location, nil)
	}
	aliasedPath := fillParams(pattern, location.Params, fmt.Sprintf("aliased route with path %q", record.MatchAs))
	aliased := m.match(route.Location{Path: aliasedPath}.Raw(), nil, nil, depth+1)
	if len(aliased.Matched) == 0 {
		return route.NewRoute(nil, location, nil)
	}

	location.Params = aliased.Params
	return route.NewRoute(aliased.Matched[len(aliased.Matched)-1], location, nil)
}

func fillParams(pattern *route.Pattern, params map[string]string, what string) string {
	path, err := pattern.Fill(params)
	if err != nil {
		console.Warn(fmt.Sprintf("[Matcher.Match] %s: %v", what, err))
		return ""
	}
	return path
}
