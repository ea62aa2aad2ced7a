package route

import (
	"net/url"
	"sort"
	"strings"
)

// DefaultView is the view name a single Component is registered under.
const DefaultView = "default"

// Config declares one entry of the route table. Component values are opaque
// to the router; host bindings decide what they are.
type Config struct {
	Path       string
	Name       string
	Component  any
	Components map[string]any
	Children   []Config

	// Redirect sends matches to another location. RedirectFunc wins when
	// both are set.
	Redirect     RawLocation
	RedirectFunc func(to *Route) RawLocation

	Alias         []string
	Meta          map[string]any
	BeforeEnter   Guard
	CaseSensitive bool
}

// View is one named component of a record.
type View struct {
	Name      string
	Component any
}

// Record is a compiled Config.
type Record struct {
	Path         string
	Pattern      *Pattern
	Name         string
	Parent       *Record
	MatchAs      string
	Redirect     RawLocation
	RedirectFunc func(to *Route) RawLocation
	Views        []View
	Meta         map[string]any
	BeforeEnter  Guard
}

// HasRedirect reports whether matching this record redirects elsewhere.
func (r *Record) HasRedirect() bool {
	return r.RedirectFunc != nil || !r.Redirect.IsZero()
}

// Component returns the component registered under view name.
func (r *Record) Component(name string) (any, bool) {
	for _, v := range r.Views {
		if v.Name == name {
			return v.Component, true
		}
	}
	return nil, false
}

// ViewsOf orders a config's components: the default view first, then the
// remaining names lexically.
func ViewsOf(cfg Config) []View {
	components := cfg.Components
	if cfg.Component != nil {
		components = make(map[string]any, len(cfg.Components)+1)
		for k, v := range cfg.Components {
			components[k] = v
		}
		components[DefaultView] = cfg.Component
	}
	if len(components) == 0 {
		return nil
	}

	names := make([]string, 0, len(components))
	for name := range components {
		if name != DefaultView {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := components[DefaultView]; ok {
		names = append([]string{DefaultView}, names...)
	}

	views := make([]View, 0, len(names))
	for _, name := range names {
		views = append(views, View{Name: name, Component: components[name]})
	}
	return views
}

// Route is an immutable snapshot of a resolved location. A new Route
// replaces the previous one on every commit; never modify one in place.
type Route struct {
	Name           string
	Path           string
	Hash           string
	Query          url.Values
	Params         map[string]string
	FullPath       string
	Matched        []*Record
	Meta           map[string]any
	RedirectedFrom string
}

// Start is the route every backend holds before its first commit. It is
// compared by identity.
var Start = NewRoute(nil, Location{Path: "/"}, nil)

// NewRoute builds the Route for location matched against record. record may
// be nil for unmatched locations.
func NewRoute(record *Record, location Location, redirectedFrom *Location) *Route {
	path := location.Path
	if path == "" {
		path = "/"
	}
	query := cloneQuery(location.Query)

	r := &Route{
		Name:     location.Name,
		Path:     path,
		Hash:     location.Hash,
		Query:    query,
		Params:   cloneParams(location.Params),
		FullPath: FullPath(path, query, location.Hash),
		Matched:  formatMatch(record),
		Meta:     map[string]any{},
	}
	if record != nil {
		if r.Name == "" {
			r.Name = record.Name
		}
		if record.Meta != nil {
			r.Meta = record.Meta
		}
	}
	if redirectedFrom != nil {
		from := redirectedFrom.Path
		if from == "" {
			from = "/"
		}
		r.RedirectedFrom = FullPath(from, redirectedFrom.Query, redirectedFrom.Hash)
	}
	return r
}

// FullPath joins path, query and hash.
func FullPath(path string, query url.Values, hash string) string {
	if path == "" {
		path = "/"
	}
	return path + StringifyQuery(query) + hash
}

func formatMatch(record *Record) []*Record {
	var res []*Record
	for r := record; r != nil; r = r.Parent {
		res = append([]*Record{r}, res...)
	}
	return res
}

// IsSameRoute reports whether a and b point at the same location. Paths are
// compared without a trailing slash; named routes also compare params.
func IsSameRoute(a, b *Route) bool {
	if b == Start {
		return a == b
	}
	if a == nil || b == nil {
		return false
	}
	if a.Path != "" && b.Path != "" {
		return strings.TrimSuffix(a.Path, "/") == strings.TrimSuffix(b.Path, "/") &&
			a.Hash == b.Hash &&
			queryEqual(a.Query, b.Query)
	}
	if a.Name != "" && b.Name != "" {
		return a.Name == b.Name &&
			a.Hash == b.Hash &&
			queryEqual(a.Query, b.Query) &&
			paramsEqual(a.Params, b.Params)
	}
	return false
}

// IsIncludedRoute reports whether target is a prefix of current with a
// subset of its query, the rule an active link uses.
func IsIncludedRoute(current, target *Route) bool {
	cur := strings.TrimSuffix(current.Path, "/") + "/"
	tgt := strings.TrimSuffix(target.Path, "/") + "/"
	if !strings.HasPrefix(cur, tgt) {
		return false
	}
	if target.Hash != "" && current.Hash != target.Hash {
		return false
	}
	for key := range target.Query {
		if _, ok := current.Query[key]; !ok {
			return false
		}
	}
	return true
}

// MatchedComponents flattens the views of every matched record, in record
// order and view order.
func (r *Route) MatchedComponents() []any {
	if r == nil {
		return nil
	}
	var res []any
	for _, record := range r.Matched {
		for _, v := range record.Views {
			res = append(res, v.Component)
		}
	}
	return res
}

func paramsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
