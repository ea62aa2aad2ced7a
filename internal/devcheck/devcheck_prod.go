//go:build !dev

package devcheck

import "github.com/vcrobe/nojs-router/console"

// Enabled reports whether assertions are fatal.
const Enabled = false

// Assert logs msg as an error when cond is false.
func Assert(cond bool, msg string) {
	if !cond {
		console.Error("[nojs-router] " + msg)
	}
}
