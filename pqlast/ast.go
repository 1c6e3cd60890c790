// Package pqlast defines the AST node shapes the compiler consumes.
//
// The parser that produces these nodes lives outside this module (see
// spec.md §1); this package only carries the contract both sides agree
// on. Every node carries a Meta region used solely in error construction.
package pqlast

import "github.com/ha1tch/preqlc/pqltypes"

// Meta is the source-location region attached to every AST node. It is
// opaque to the compiler beyond being threaded through error values.
type Meta struct {
	Path   string
	Line   int
	Column int

	// Parent, when set, lets an inner node's region be replaced by an
	// enclosing operator's region (spec.md §7's "Re-wrapped Preql-level
	// errors... replace their source region with the enclosing operator's
	// region").
	Parent *Meta
}

// WithParent returns a copy of m with Parent set, without mutating m.
func (m Meta) WithParent(parent Meta) Meta {
	m.Parent = &parent
	return m
}

// Node is the sealed interface every AST node satisfies.
type Node interface {
	node()
	GetMeta() Meta
}

type base struct {
	Meta Meta
}

func (base) node() {}

func (b base) GetMeta() Meta { return b.Meta }

// Name is a bare identifier reference, resolved through scope.
type Name struct {
	base
	Name string
}

// Attr is a field/column access on a base expression: base.Name.
type Attr struct {
	base
	Expr Node
	Name string
}

// Const is a literal value. Value is one of: nil, int64 (or int),
// decimal.Decimal for float literals, string, bool, or time.Time; the
// compiler does not interpret Value beyond lifting it into a
// pqlobj.ValueInstance. IsNull marks the null literal.
type Const struct {
	base
	Value any
	IsNull bool
}

// CompareOp is one of the comparison operators the parser may produce.
type CompareOp string

const (
	OpEq    CompareOp = "=="
	OpNe    CompareOp = "!="
	OpNeAlt CompareOp = "<>"
	OpLt    CompareOp = "<"
	OpLe    CompareOp = "<="
	OpGt    CompareOp = ">"
	OpGe    CompareOp = ">="
	OpIn    CompareOp = "in"
	OpNotIn CompareOp = "!in"
)

// Compare is a binary comparison: Args[0] Op Args[1].
type Compare struct {
	base
	Op   CompareOp
	Args [2]Node
}

// ArithOp is one of the arithmetic operators the parser may produce.
type ArithOp string

const (
	ArithAdd ArithOp = "+"
	ArithSub ArithOp = "-"
	ArithMul ArithOp = "*"
	ArithDiv ArithOp = "/"
	ArithAnd ArithOp = "&"
	ArithOr  ArithOp = "|"
)

// ArithOpNode carries its own Meta so operator-region errors can be
// reported precisely (mirrors the original's arith.op.meta).
type ArithOpNode struct {
	Meta Meta
	Op   ArithOp
}

// Arith is a binary arithmetic expression.
type Arith struct {
	base
	Op   ArithOpNode
	Args [2]Node
}

// Like is the `~` pattern-match operator.
type Like struct {
	base
	Str     Node
	Pattern Node
}

// NamedField is one field of a Projection's field list; Name is nil
// when the field's name is to be inferred.
type NamedField struct {
	Meta  Meta
	Name  *string
	Value Node
}

// Ellipsis stands for "all remaining columns except these" inside a
// projection field position; outside that position it is a syntax error.
type Ellipsis struct {
	base
	Exclude []string
}

// Projection is `table{fields; agg_fields; groupby}`.
type Projection struct {
	base
	Table     Node
	Fields    []NamedField
	AggFields []NamedField
	GroupBy   bool
}

// Selection is `table[conds]`.
type Selection struct {
	base
	Table Node
	Conds []Node
}

// Order is `table order fields`.
type Order struct {
	base
	Table  Node
	Fields []Node
}

// DescOrder wraps an ordering expression to request descending order.
type DescOrder struct {
	base
	Value Node
}

// SliceRange is the `[start:stop]` range of a Slice; either bound may
// be nil.
type SliceRange struct {
	Start Node
	Stop  Node
}

// Slice is `table[start:stop]`.
type Slice struct {
	base
	Table Node
	Range SliceRange
}

// List_ is a list literal `[e1, e2, ...]`.
type List_ struct {
	base
	Elems []Node
}

// Dict_ is a dict literal `{k: v, ...}`.
type Dict_ struct {
	base
	Elems map[string]Node
}

// Parameter is a late-bound compile-time parameter reference, declared
// with the type its bound value must have.
type Parameter struct {
	base
	Name string
	Type pqltypes.Type
}

// FuncCall is a call to a named function (builtin or user-defined).
type FuncCall struct {
	base
	Func Node
	Args []Node
}
