// Package pqlstdlib defines the calling convention the compiler uses to
// invoke Preql standard-library builtins (concat, intersect, union,
// substract, repeat). The builtins themselves are explicitly out of
// scope (spec.md §1); this package only names the contract.
package pqlstdlib

import "github.com/ha1tch/preqlc/pqlobj"

// State is the minimal slice of compiler state a builtin needs: enough
// to allocate names and raise errors, without pqlstdlib importing the
// compiler package back (which would create an import cycle, since the
// compiler imports pqlstdlib to look builtins up).
type State interface {
	UniqueName(prefix string) string
}

// Func is the calling convention every Preql standard-library builtin
// honours (spec.md §6: "a uniform (state, args...) -> Instance calling
// convention").
type Func func(st State, args ...pqlobj.Instance) (pqlobj.Instance, error)

// Registry is the external name -> builtin lookup the compiler calls
// through for the table-arithmetic functions (concat/intersect/union/
// substract) and for repeat (string*int coercion).
type Registry interface {
	Lookup(name string) (Func, bool)
}

// Names of the builtins the compiler's Arith case dispatches to.
const (
	Concat    = "concat"
	Intersect = "intersect"
	Union     = "union"
	Substract = "substract"
	Repeat    = "repeat"
)
