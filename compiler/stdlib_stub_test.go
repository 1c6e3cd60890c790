package compiler

import "github.com/ha1tch/preqlc/pqlstdlib"

// stubRegistry is a minimal pqlstdlib.Registry double for tests that need
// to observe or fake a standard-library dispatch without importing a real
// builtin implementation (out of scope per spec.md §1).
type stubRegistry struct {
	fns map[string]pqlstdlib.Func
}

func (r stubRegistry) Lookup(name string) (pqlstdlib.Func, bool) {
	fn, ok := r.fns[name]
	return fn, ok
}
