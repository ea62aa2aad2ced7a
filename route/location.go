package route

import "net/url"

// RawLocation is a navigation target as written by callers. A plain path
// string goes in Path and may carry its own query and hash.
type RawLocation struct {
	Name    string
	Path    string
	Hash    string
	Query   url.Values
	Params  map[string]string
	Append  bool
	Replace bool

	normalized bool
}

// Path is the string form of a navigation target.
func Path(path string) RawLocation {
	return RawLocation{Path: path}
}

// Named targets a named route with params.
func Named(name string, params map[string]string) RawLocation {
	return RawLocation{Name: name, Params: params}
}

// IsZero reports whether no target was set.
func (r RawLocation) IsZero() bool {
	return r.Name == "" && r.Path == "" && r.Hash == "" && len(r.Query) == 0 && len(r.Params) == 0
}

// Location is a normalized RawLocation: either a name, or an absolute path
// with its query split out and its hash prefixed with '#'.
type Location struct {
	Name    string
	Path    string
	Hash    string
	Query   url.Values
	Params  map[string]string
	Replace bool
}

// Raw wraps an already normalized location so Normalize passes it through.
func (l Location) Raw() RawLocation {
	return RawLocation{
		Name:       l.Name,
		Path:       l.Path,
		Hash:       l.Hash,
		Query:      l.Query,
		Params:     l.Params,
		Replace:    l.Replace,
		normalized: true,
	}
}

// Normalize turns raw into a Location relative to current. appendPath makes
// relative paths append to current's path instead of replacing its last
// segment. When current is nil, "/" is the base.
func Normalize(raw RawLocation, current *Route, appendPath bool) Location {
	if raw.normalized {
		return Location{
			Name:    raw.Name,
			Path:    raw.Path,
			Hash:    raw.Hash,
			Query:   cloneQuery(raw.Query),
			Params:  cloneParams(raw.Params),
			Replace: raw.Replace,
		}
	}

	if raw.Name != "" {
		return Location{
			Name:    raw.Name,
			Hash:    hashOf(raw.Hash),
			Query:   cloneQuery(raw.Query),
			Params:  cloneParams(raw.Params),
			Replace: raw.Replace,
		}
	}

	// Params-only targets stay on the current route.
	if raw.Path == "" && len(raw.Params) > 0 && current != nil {
		params := cloneParams(current.Params)
		for k, v := range raw.Params {
			params[k] = v
		}
		if current.Name != "" {
			return Location{
				Name:    current.Name,
				Params:  params,
				Query:   cloneQuery(raw.Query),
				Hash:    hashOf(raw.Hash),
				Replace: raw.Replace,
			}
		}
		if len(current.Matched) > 0 {
			last := current.Matched[len(current.Matched)-1]
			path, err := last.Pattern.Fill(params)
			if err != nil {
				path = current.Path
			}
			return Location{
				Path:    path,
				Params:  params,
				Query:   cloneQuery(raw.Query),
				Hash:    hashOf(raw.Hash),
				Replace: raw.Replace,
			}
		}
	}

	parsedPath, parsedQuery, parsedHash := ParsePath(raw.Path)

	basePath := "/"
	if current != nil && current.Path != "" {
		basePath = current.Path
	}
	path := basePath
	if parsedPath != "" {
		path = ResolvePath(parsedPath, basePath, appendPath || raw.Append)
	}

	hash := raw.Hash
	if hash == "" {
		hash = parsedHash
	}

	return Location{
		Path:    path,
		Query:   ResolveQuery(parsedQuery, raw.Query),
		Hash:    hashOf(hash),
		Replace: raw.Replace,
	}
}

func hashOf(hash string) string {
	if hash != "" && hash[0] != '#' {
		return "#" + hash
	}
	return hash
}

func cloneParams(params map[string]string) map[string]string {
	res := make(map[string]string, len(params))
	for k, v := range params {
		res[k] = v
	}
	return res
}
