// Package sqlir is the SQL intermediate representation: a tree of
// relational fragments the compiler builds and a (separately owned,
// out-of-scope) renderer turns into dialect-specific SQL text.
//
// Every node carries its result type and a list of child nodes, matching
// spec.md §3's SQL IR table.
package sqlir

import "github.com/ha1tch/preqlc/pqltypes"

// Node is the sealed interface every IR variant satisfies.
type Node interface {
	node()
	ResultType() pqltypes.Type
	Children() []Node
}

type sealed struct{}

func (sealed) node() {}

// RawSql is an opaque, already-rendered SQL fragment (used for DDL and
// other text the compiler doesn't need to structurally inspect further).
type RawSql struct {
	sealed
	Type pqltypes.Type
	Text string
}

func (n RawSql) ResultType() pqltypes.Type { return n.Type }
func (n RawSql) Children() []Node          { return nil }

// Name is a bare column/table reference by alias.
type Name struct {
	sealed
	Type  pqltypes.Type
	Alias string
}

func (n Name) ResultType() pqltypes.Type { return n.Type }
func (n Name) Children() []Node          { return nil }

// ColumnAlias renames Source's output to Target within a Select's field
// list.
type ColumnAlias struct {
	sealed
	Source Node
	Target Node
}

func (n ColumnAlias) ResultType() pqltypes.Type { return n.Target.ResultType() }
func (n ColumnAlias) Children() []Node          { return []Node{n.Source, n.Target} }

// Select is a relational projection with an optional group-by.
type Select struct {
	sealed
	Type    *pqltypes.TableType
	Source  Node
	Fields  []Node // ColumnAlias nodes
	GroupBy []Node // Name nodes
}

func (n Select) ResultType() pqltypes.Type { return *n.Type }
func (n Select) Children() []Node {
	out := append([]Node{n.Source}, n.Fields...)
	return append(out, n.GroupBy...)
}

// CompareOp mirrors the rendered SQL comparison operators. Never "==",
// "<>", or "!in" (spec.md §8's "Operator rewrite" property); the !in
// case is instead represented as a Contains node (see DESIGN.md Open
// Question 2).
type CompareOp string

const (
	CmpEq CompareOp = "="
	CmpNe CompareOp = "!="
	CmpLt CompareOp = "<"
	CmpLe CompareOp = "<="
	CmpGt CompareOp = ">"
	CmpGe CompareOp = ">="
)

// Compare is a binary comparison.
type Compare struct {
	sealed
	Op   CompareOp
	Args [2]Node
}

func (n Compare) ResultType() pqltypes.Type { return pqltypes.BoolT }
func (n Compare) Children() []Node          { return n.Args[:] }

// ArithOp mirrors the rendered SQL arithmetic operators.
type ArithOp string

const (
	AriAdd ArithOp = "+"
	AriSub ArithOp = "-"
	AriMul ArithOp = "*"
	AriDiv ArithOp = "/"
)

// Arith is a binary arithmetic expression over a scalar/list type.
type Arith struct {
	sealed
	Type pqltypes.Type
	Op   ArithOp
	Args [2]Node
}

func (n Arith) ResultType() pqltypes.Type { return n.Type }
func (n Arith) Children() []Node          { return n.Args[:] }

// Like is the `~` pattern-match operator.
type Like struct {
	sealed
	Str     Node
	Pattern Node
}

func (n Like) ResultType() pqltypes.Type { return pqltypes.BoolT }
func (n Like) Children() []Node          { return []Node{n.Str, n.Pattern} }

// ContainsOp is either "in" or "not in".
type ContainsOp string

const (
	ContainsIn    ContainsOp = "in"
	ContainsNotIn ContainsOp = "not in"
)

// Contains is the `in`/`!in` membership test.
type Contains struct {
	sealed
	Op   ContainsOp
	Args [2]Node
}

func (n Contains) ResultType() pqltypes.Type { return pqltypes.BoolT }
func (n Contains) Children() []Node          { return n.Args[:] }

// MakeArray lifts a scalar inside an aggregate scope into an array-typed
// fragment (spec.md §4.3 Projection step 5).
type MakeArray struct {
	sealed
	Type  pqltypes.Type
	Inner Node
}

func (n MakeArray) ResultType() pqltypes.Type { return n.Type }
func (n MakeArray) Children() []Node          { return []Node{n.Inner} }

// RowDict is a literal row constructed from named expressions.
type RowDict struct {
	sealed
	Fields map[string]Node
}

func (n RowDict) ResultType() pqltypes.Type { return pqltypes.Null }
func (n RowDict) Children() []Node {
	out := make([]Node, 0, len(n.Fields))
	for _, v := range n.Fields {
		out = append(out, v)
	}
	return out
}

// Desc wraps an ordering key to request descending order.
type Desc struct {
	sealed
	Inner Node
}

func (n Desc) ResultType() pqltypes.Type { return n.Inner.ResultType() }
func (n Desc) Children() []Node          { return []Node{n.Inner} }

// Parameter is a late-bound SQL placeholder.
type Parameter struct {
	sealed
	Type pqltypes.Type
	Name string
}

func (n Parameter) ResultType() pqltypes.Type { return n.Type }
func (n Parameter) Children() []Node          { return nil }
