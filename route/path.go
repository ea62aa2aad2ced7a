package route

import "strings"

// CleanPath collapses every doubled separator into one.
func CleanPath(path string) string {
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	return path
}

// ParsePath splits a raw path into its path, query (without '?') and hash
// (with '#') parts.
func ParsePath(raw string) (path, query, hash string) {
	path = raw
	if i := strings.IndexByte(path, '#'); i >= 0 {
		hash = path[i:]
		path = path[:i]
	}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		query = path[i+1:]
		path = path[:i]
	}
	return path, query, hash
}

// ResolvePath resolves relative against base. With appendPath the last
// segment of base is kept, otherwise relative replaces it.
func ResolvePath(relative, base string, appendPath bool) string {
	if relative == "" {
		return base
	}
	switch relative[0] {
	case '/':
		return relative
	case '?', '#':
		return base + relative
	}

	stack := strings.Split(base, "/")
	if !appendPath || stack[len(stack)-1] == "" {
		stack = stack[:len(stack)-1]
	}

	for _, segment := range strings.Split(strings.TrimPrefix(relative, "/"), "/") {
		switch segment {
		case "..":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case ".":
		default:
			stack = append(stack, segment)
		}
	}

	if len(stack) == 0 || stack[0] != "" {
		stack = append([]string{""}, stack...)
	}
	return strings.Join(stack, "/")
}

// JoinPaths joins a parent record path and a child path the way nested
// route configs are flattened.
func JoinPaths(parent, child string) string {
	if child != "" && child[0] == '/' {
		return child
	}
	if parent == "" {
		return child
	}
	return CleanPath(parent + "/" + child)
}
