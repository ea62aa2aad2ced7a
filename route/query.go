package route

import (
	"net/url"
	"strings"
)

// ParseQuery decodes a query string. A leading '?', '#' or '&' is ignored and
// malformed pairs are kept with their raw text instead of failing the parse.
func ParseQuery(query string) url.Values {
	res := url.Values{}
	query = strings.TrimLeft(strings.TrimSpace(query), "?#&")
	if query == "" {
		return res
	}

	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		res.Add(decodeQueryComponent(key), decodeQueryComponent(value))
	}
	return res
}

func decodeQueryComponent(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// StringifyQuery encodes query with a leading '?', or returns "" when empty.
// Keys are emitted in sorted order so equal queries produce equal full paths.
func StringifyQuery(query url.Values) string {
	if len(query) == 0 {
		return ""
	}
	encoded := query.Encode()
	if encoded == "" {
		return ""
	}
	return "?" + encoded
}

// ResolveQuery parses query and overlays extra on top of it.
func ResolveQuery(query string, extra url.Values) url.Values {
	parsed := ParseQuery(query)
	for key, values := range extra {
		parsed[key] = append([]string(nil), values...)
	}
	return parsed
}

func cloneQuery(query url.Values) url.Values {
	res := make(url.Values, len(query))
	for key, values := range query {
		res[key] = append([]string(nil), values...)
	}
	return res
}

func queryEqual(a, b url.Values) bool {
	if len(a) != len(b) {
		return false
	}
	for key, av := range a {
		bv, ok := b[key]
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
	}
	return true
}
