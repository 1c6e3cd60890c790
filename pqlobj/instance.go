// Package pqlobj implements Preql's value model: Instances wrapping a
// type, a SQL IR fragment, a lineage of source instances, and a side
// table of subqueries (spec.md §3).
package pqlobj

import (
	"github.com/ha1tch/preqlc/pqltypes"
	"github.com/ha1tch/preqlc/sqlir"
)

// Instance is the sealed interface every value-model variant satisfies.
// Instances are created by the compiler during a single compilation call
// and are pure except for Subqueries, which only ever grows.
type Instance interface {
	Type() pqltypes.Type
	Code() sqlir.Node
	Refs() []Instance
	Subqueries() map[string]sqlir.Node

	// AddSubquery registers a named subquery on this instance. Mutates
	// only the instance's own subquery table; callers that embed a
	// child instance's code into their own must separately merge the
	// child's subqueries in (see MergeSubqueries) — spec.md §5: "merged
	// into enclosing Instances by inclusion when a parent IR embeds the
	// child's code".
	AddSubquery(name string, q sqlir.Node)
}

// core is the common state every Instance variant embeds.
type core struct {
	typ  pqltypes.Type
	code sqlir.Node
	refs []Instance
	subq map[string]sqlir.Node
}

func newCore(typ pqltypes.Type, code sqlir.Node, refs []Instance) core {
	return core{typ: typ, code: code, refs: refs, subq: map[string]sqlir.Node{}}
}

func (c core) Type() pqltypes.Type            { return c.typ }
func (c core) Code() sqlir.Node               { return c.code }
func (c core) Refs() []Instance               { return c.refs }
func (c core) Subqueries() map[string]sqlir.Node { return c.subq }
func (c core) AddSubquery(name string, q sqlir.Node) { c.subq[name] = q }

// MergeSubqueries folds each source instance's subquery table into dst,
// implementing the inclusion-merge rule of spec.md §5.
func MergeSubqueries(dst map[string]sqlir.Node, sources ...Instance) {
	for _, s := range sources {
		for k, v := range s.Subqueries() {
			dst[k] = v
		}
	}
}

// ScalarInstance is a plain compiled value with no column/struct/table
// shape yet — the result of Like, Compare, and the scalar Arith path
// before any lifting into a ColumnInstance.
type ScalarInstance struct{ core }

// NewScalarInstance builds a ScalarInstance, matching
// `objects.Instance.make(code, type, refs)` in the original.
func NewScalarInstance(code sqlir.Node, typ pqltypes.Type, refs []Instance) *ScalarInstance {
	return &ScalarInstance{core: newCore(typ, code, refs)}
}

// ValueInstance additionally carries a known literal LocalValue,
// enabling constant folding (spec.md §8's "Constant folding" property).
// Float literals are held as decimal.Decimal (see DESIGN.md) so folding
// never loses precision to float64 rounding.
type ValueInstance struct {
	core
	LocalValue any
}

// NewValueInstance builds a ValueInstance.
func NewValueInstance(code sqlir.Node, typ pqltypes.Type, refs []Instance, value any) *ValueInstance {
	return &ValueInstance{core: newCore(typ, code, refs), LocalValue: value}
}

// Column is the interface ColumnInstance and StructColumnInstance both
// satisfy: anything that can appear as a projection field and be
// flattened to a leaf sequence.
type Column interface {
	Instance
	Flatten() []*ColumnInstance
}

// ColumnInstance wraps one database column.
type ColumnInstance struct{ core }

// NewColumnInstance builds a ColumnInstance.
func NewColumnInstance(code sqlir.Node, typ pqltypes.Type, refs []Instance) *ColumnInstance {
	return &ColumnInstance{core: newCore(typ, code, refs)}
}

// Flatten returns the column itself (a ColumnInstance is already a leaf).
func (c *ColumnInstance) Flatten() []*ColumnInstance { return []*ColumnInstance{c} }

// NamedColumn is one ordered, named member of a StructColumnInstance or
// column of a TableInstance.
type NamedColumn struct {
	Name string
	Col  Column
}

// StructColumnInstance holds an ordered map of named member columns.
type StructColumnInstance struct {
	core
	Members []NamedColumn
}

// NewStructColumnInstance builds a StructColumnInstance.
func NewStructColumnInstance(code sqlir.Node, typ pqltypes.Type, refs []Instance, members []NamedColumn) *StructColumnInstance {
	return &StructColumnInstance{core: newCore(typ, code, refs), Members: members}
}

// MemberByName looks up a member column by name.
func (s *StructColumnInstance) MemberByName(name string) (Column, bool) {
	for _, m := range s.Members {
		if m.Name == name {
			return m.Col, true
		}
	}
	return nil, false
}

// Flatten concatenates the flattening of every member, in declaration
// order (spec.md §8's "Flatten round-trip" property).
func (s *StructColumnInstance) Flatten() []*ColumnInstance {
	var out []*ColumnInstance
	for _, m := range s.Members {
		out = append(out, m.Col.Flatten()...)
	}
	return out
}

// TableInstance holds an ordered map of named columns (each a
// ColumnInstance or StructColumnInstance).
type TableInstance struct {
	core
	Columns []NamedColumn
}

// NewTableInstance builds a TableInstance.
func NewTableInstance(code sqlir.Node, typ *pqltypes.TableType, refs []Instance, columns []NamedColumn) *TableInstance {
	return &TableInstance{core: newCore(*typ, code, refs), Columns: columns}
}

// ColumnByName looks up a column by name.
func (t *TableInstance) ColumnByName(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c.Col, true
		}
	}
	return nil, false
}

// ToStructColumn converts the table's columns into a StructColumnInstance,
// used to bind `this` inside a projection scope (spec.md §4.3 step 4). The
// table's declared type isn't always a TableType — a list literal's is a
// ListType (see NewListTableInstance) — so the struct name falls back to a
// generic one rather than asserting the type.
func (t *TableInstance) ToStructColumn() *StructColumnInstance {
	name := "_row"
	if tt, ok := t.typ.(pqltypes.TableType); ok {
		name = tt.Name
	}
	st := pqltypes.StructType{Name: name, Fields: tableFieldsOf(t)}
	return NewStructColumnInstance(t.code, st, []Instance{t}, t.Columns)
}

func tableFieldsOf(t *TableInstance) []pqltypes.Field {
	fields := make([]pqltypes.Field, 0, len(t.Columns))
	for _, c := range t.Columns {
		fields = append(fields, pqltypes.Field{Name: c.Name, Type: c.Col.Type()})
	}
	return fields
}
