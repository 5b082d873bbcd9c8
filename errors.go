package flux

import "fmt"

// abort reports a contract violation: a bug in the caller's use of the
// library (self-insertion, a panicking error/complete callback) rather
// than a recoverable stream error. abort simply panics, letting the
// process's default crash behavior take over. An abort raised inside a
// next callback is the exception: Observer.Next recovers it like any
// other panic and routes it through Error as a *PanicError.
func abort(format string, args ...any) {
	panic(fmt.Sprintf("flux: contract violation: "+format, args...))
}
