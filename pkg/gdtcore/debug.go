package gdtcore

import "fmt"

// Debug controls whether LowerEnvelope checks its preconditions (monotone
// abscissae, in-bounds apex heights, in-bounds abscissae) before trusting
// them. The reference implementation performs this checking only in debug
// builds and leaves release builds undefined on violation; Go has no
// separate release/debug compilation mode for this, so Debug is a package
// variable instead. Tests leave it at its default, true.
var Debug = true

// assertf panics with a formatted message when cond is false and Debug is
// enabled. It mirrors the reference implementation's assert() calls.
func assertf(cond bool, format string, args ...any) {
	if Debug && !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
