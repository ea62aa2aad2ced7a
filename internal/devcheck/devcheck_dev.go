//go:build dev

package devcheck

// Enabled reports whether assertions are fatal.
const Enabled = true

// Assert panics with msg when cond is false.
func Assert(cond bool, msg string) {
	if !cond {
		panic("[nojs-router] " + msg)
	}
}
