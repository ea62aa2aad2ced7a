package route

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// WildcardParam is the param name a trailing "*" segment is captured under.
const WildcardParam = "pathMatch"

// Key describes one dynamic segment of a Pattern.
type Key struct {
	Name     string
	Optional bool
	Wildcard bool
	pattern  *regexp.Regexp
}

type segment struct {
	static string
	key    *Key
	slash  bool
}

// Pattern is a compiled route path. Dynamic segments are written as
// ":name", "{name}" or ":name(regexp)"; a "?" suffix makes a segment
// optional and a lone "*" captures the rest of the path.
type Pattern struct {
	path     string
	regex    *regexp.Regexp
	keys     []*Key
	segments []segment
}

// CompilePattern compiles a record path. Matching tolerates one trailing
// slash and, unless caseSensitive, ignores letter case.
func CompilePattern(path string, caseSensitive bool) (*Pattern, error) {
	p := &Pattern{path: path}

	var expr strings.Builder
	if !caseSensitive {
		expr.WriteString("(?i)")
	}
	expr.WriteString("^")

	leading := strings.HasPrefix(path, "/")
	trimmed := strings.TrimSuffix(strings.TrimPrefix(path, "/"), "/")
	if trimmed == "" {
		if leading {
			expr.WriteString("/")
		}
		p.segments = append(p.segments, segment{slash: leading})
	} else {
		for i, raw := range strings.Split(trimmed, "/") {
			slash := leading || i > 0
			sep := ""
			if slash {
				sep = "/"
			}

			key, keyExpr, err := parseKey(raw)
			if err != nil {
				return nil, fmt.Errorf("route: compile %q: %w", path, err)
			}
			if key == nil {
				expr.WriteString(regexp.QuoteMeta(sep + raw))
				p.segments = append(p.segments, segment{static: raw, slash: slash})
				continue
			}

			p.keys = append(p.keys, key)
			p.segments = append(p.segments, segment{key: key, slash: slash})
			if key.Optional {
				expr.WriteString("(?:" + regexp.QuoteMeta(sep) + "(" + keyExpr + "))?")
			} else {
				expr.WriteString(regexp.QuoteMeta(sep) + "(" + keyExpr + ")")
			}
		}
	}
	expr.WriteString("/?$")

	regex, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("route: compile %q: %w", path, err)
	}
	p.regex = regex
	return p, nil
}

func parseKey(raw string) (*Key, string, error) {
	switch {
	case raw == "*":
		return &Key{Name: WildcardParam, Wildcard: true}, ".*", nil
	case strings.HasPrefix(raw, "{") && strings.HasSuffix(raw, "}"):
		name := strings.Trim(raw, "{}")
		optional := strings.HasSuffix(name, "?")
		name = strings.TrimSuffix(name, "?")
		if name == "" {
			return nil, "", fmt.Errorf("empty param name in %q", raw)
		}
		return &Key{Name: name, Optional: optional}, "[^/]+?", nil
	case strings.HasPrefix(raw, ":"):
		name := raw[1:]
		optional := strings.HasSuffix(name, "?")
		name = strings.TrimSuffix(name, "?")

		keyExpr := "[^/]+?"
		if open := strings.IndexByte(name, '('); open >= 0 {
			if !strings.HasSuffix(name, ")") {
				return nil, "", fmt.Errorf("unterminated param pattern in %q", raw)
			}
			keyExpr = name[open+1 : len(name)-1]
			name = name[:open]
		}
		if name == "" {
			return nil, "", fmt.Errorf("empty param name in %q", raw)
		}

		key := &Key{Name: name, Optional: optional}
		if keyExpr != "[^/]+?" {
			compiled, err := regexp.Compile("^(?:" + keyExpr + ")$")
			if err != nil {
				return nil, "", err
			}
			key.pattern = compiled
		}
		return key, keyExpr, nil
	}
	return nil, "", nil
}

// Path returns the source path the pattern was compiled from.
func (p *Pattern) Path() string {
	return p.path
}

// Keys returns the dynamic segments in declaration order.
func (p *Pattern) Keys() []*Key {
	return p.keys
}

// Match reports whether path matches and returns its decoded params.
func (p *Pattern) Match(path string) (map[string]string, bool) {
	m := p.regex.FindStringSubmatchIndex(path)
	if m == nil {
		return nil, false
	}

	params := make(map[string]string, len(p.keys))
	for i, key := range p.keys {
		start, end := m[2*(i+1)], m[2*(i+1)+1]
		if start < 0 {
			continue
		}
		value := path[start:end]
		if decoded, err := url.PathUnescape(value); err == nil {
			value = decoded
		}
		params[key.Name] = value
	}
	return params, true
}

// Fill builds a concrete path from params. A missing required param or a
// value rejected by a custom segment pattern is an error.
func (p *Pattern) Fill(params map[string]string) (string, error) {
	var b strings.Builder
	for _, seg := range p.segments {
		if seg.key == nil {
			if seg.slash {
				b.WriteString("/")
			}
			b.WriteString(seg.static)
			continue
		}

		value, ok := params[seg.key.Name]
		if !ok || value == "" {
			if seg.key.Optional || seg.key.Wildcard {
				continue
			}
			return "", fmt.Errorf("missing param %q for path %q", seg.key.Name, p.path)
		}
		if seg.key.pattern != nil && !seg.key.pattern.MatchString(value) {
			return "", fmt.Errorf("param %q=%q does not match pattern of %q", seg.key.Name, value, p.path)
		}
		if seg.slash {
			b.WriteString("/")
		}
		switch {
		case seg.key.Wildcard && seg.slash:
			b.WriteString(strings.TrimPrefix(value, "/"))
		case seg.key.Wildcard:
			b.WriteString(value)
		default:
			b.WriteString(url.PathEscape(value))
		}
	}

	if b.Len() == 0 {
		return "/", nil
	}
	return b.String(), nil
}
