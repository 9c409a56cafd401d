package wfa

import "fmt"

// assertf panics when cond is false. Only active with the wfa_debug build tag.
func assertf(cond bool, format string, args ...any) {
	if checks && !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
