// Package gfpanic carries gosl/chk.Panic's one job forward: a fatal
// assertion for conditions that must never happen at runtime because the
// caller already violated an invariant at construction time (an unknown
// species name baked into the process-wide table, a malformed constant
// table shipped with the binary). It is not a substitute for gferrors,
// which classifies genuine runtime failure conditions a caller can recover
// from.
package gfpanic

import "fmt"

// Require panics with a formatted message if cond is false.
func Require(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
