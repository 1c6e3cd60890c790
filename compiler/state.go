// Package compiler implements the evaluator and compiler: the subsystem
// that lowers a typed, already-parsed AST into the SQL IR (spec.md §4).
package compiler

import (
	"strconv"

	"github.com/ha1tch/preqlc/dialect"
	"github.com/ha1tch/preqlc/pqlstdlib"
)

// AccessLevel controls whether Parameter nodes resolve to late-bound SQL
// placeholders or to their bound value in scope (spec.md §4.2).
type AccessLevel int

const (
	// Compile: parameters compile to Parameter IR nodes.
	Compile AccessLevel = iota
	// Evaluate: parameters resolve to their bound value in scope.
	Evaluate
)

// Config holds the compiler's global settings (spec.md Design Note:
// "optimize, print_sql, debug, cache become fields on an explicit
// configuration struct threaded through State"), mirroring the
// teacher's DMLConfig/adapter.Config pattern.
type Config struct {
	// Optimize enables constant folding on literal arithmetic.
	Optimize bool
	// PrintSQL requests the (external) renderer echo generated SQL.
	// The compiler core only carries the flag; it doesn't act on it.
	PrintSQL bool
	// Debug enables Trace.LogStep calls.
	Debug bool
	// Cache is reserved for a future query-plan cache; unused by the
	// compiler core today.
	Cache bool
}

// DefaultConfig returns the default compiler configuration: optimisation
// on, everything else off.
func DefaultConfig() Config {
	return Config{Optimize: true}
}

// State is the process-wide execution context threaded through every
// compiler call: the database target, the current access level, the
// name-resolution scope stack, and a fresh-name counter (spec.md §3's
// State, §5's single-threaded resource contract).
type State struct {
	DBTarget    dialect.Target
	AccessLevel AccessLevel
	Config      Config
	Trace       Trace
	Registry    pqlstdlib.Registry

	scopes  []map[string]any
	counter int
}

// NewState builds a State with one empty root scope.
func NewState(target dialect.Target, cfg Config, trace Trace, registry pqlstdlib.Registry) *State {
	if trace == nil {
		trace = NopTrace{}
	}
	return &State{
		DBTarget: target,
		Config:   cfg,
		Trace:    trace,
		Registry: registry,
		scopes:   []map[string]any{{}},
	}
}

// Dialect resolves the State's configured dialect.Dialect.
func (s *State) Dialect() dialect.Dialect { return dialect.For(s.DBTarget) }

// UniqueName allocates a fresh, monotonically-numbered name from the
// per-State counter (spec.md §3/§5: "unique names are produced by
// incrementing the counter and concatenating a prefix").
func (s *State) UniqueName(prefix string) string {
	s.counter++
	return prefix + "_" + strconv.Itoa(s.counter)
}
