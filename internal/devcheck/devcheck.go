// Package devcheck holds the assertions whose failure policy depends on the
// build: with the dev tag they panic, otherwise they log and let the caller
// degrade.
package devcheck

import "github.com/vcrobe/nojs-router/console"

// Warn logs msg when cond is false.
func Warn(cond bool, msg string) {
	if !cond {
		console.Warn("[nojs-router] " + msg)
	}
}
