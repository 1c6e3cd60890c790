package pqlobj

import (
	"github.com/ha1tch/preqlc/pqltypes"
	"github.com/ha1tch/preqlc/sqlir"
)

// Aggregated rewraps i with its type marked pqltypes.Aggregated, matching
// the original's `objects.aggregated(c)`: entering an agg_fields scope
// marks every binding so a later MakeArray lift (see compiler/fields.go)
// knows to fire on it.
func Aggregated(i Instance) Instance {
	t := pqltypes.Aggregated{Inner: i.Type()}
	switch v := i.(type) {
	case *ColumnInstance:
		return &ColumnInstance{core: newCore(t, v.code, v.refs)}
	case *StructColumnInstance:
		return &StructColumnInstance{core: newCore(t, v.code, v.refs), Members: v.Members}
	case *TableInstance:
		return &TableInstance{core: newCore(t, v.code, v.refs), Columns: v.Columns}
	case *ValueInstance:
		return &ValueInstance{core: newCore(t, v.code, v.refs), LocalValue: v.LocalValue}
	default:
		return &ScalarInstance{core: newCore(t, i.Code(), i.Refs())}
	}
}

// WithCode rewraps i with a new SQL IR fragment, preserving its variant,
// type, and lineage — matching the original's `instance.replace(code=...)`
// (used by DescOrder, spec.md §4.3).
func WithCode(i Instance, code sqlir.Node) Instance {
	switch v := i.(type) {
	case *ColumnInstance:
		return &ColumnInstance{core: newCore(v.typ, code, v.refs)}
	case *StructColumnInstance:
		return &StructColumnInstance{core: newCore(v.typ, code, v.refs), Members: v.Members}
	case *TableInstance:
		return &TableInstance{core: newCore(v.typ, code, v.refs), Columns: v.Columns}
	case *ValueInstance:
		return &ValueInstance{core: newCore(v.typ, code, v.refs), LocalValue: v.LocalValue}
	default:
		return &ScalarInstance{core: newCore(i.Type(), code, i.Refs())}
	}
}

// RewrapColumn mirrors col's shape (leaf column or nested struct column)
// under a fresh SQL Name reference, giving leafAlias to a plain column and
// deriving each nested member's own SQL-friendly alias from alias — used
// to allocate the new-side column of a projected field (compile_remote.go)
// while keeping flatten() leaf counts in step with the old-side column.
func RewrapColumn(col Column, alias string) Column {
	if sc, ok := col.(*StructColumnInstance); ok {
		members := make([]NamedColumn, 0, len(sc.Members))
		for _, m := range sc.Members {
			leafAlias := pqltypes.SQLFriendlyName(alias + "." + m.Name)
			members = append(members, NamedColumn{Name: m.Name, Col: RewrapColumn(m.Col, leafAlias)})
		}
		return NewStructColumnInstance(sqlir.Name{Type: sc.Type(), Alias: alias}, sc.Type(), []Instance{sc}, members)
	}
	return NewColumnInstance(sqlir.Name{Type: col.Type(), Alias: alias}, col.Type(), []Instance{col})
}

// Remake rewraps i with new code and lineage, preserving its variant,
// declared type (TableType or, for a list literal, ListType — see
// NewListTableInstance), and Columns/Members — matching the original's
// `TableInstance.make(code, type, refs, columns)` re-assembly pattern used
// by Selection, Order, and Slice (spec.md §4.3), which must carry forward
// whatever type the operand already has rather than re-deriving one.
func Remake(i Instance, code sqlir.Node, refs []Instance) Instance {
	switch v := i.(type) {
	case *ColumnInstance:
		return &ColumnInstance{core: newCore(v.typ, code, refs)}
	case *StructColumnInstance:
		return &StructColumnInstance{core: newCore(v.typ, code, refs), Members: v.Members}
	case *TableInstance:
		return &TableInstance{core: newCore(v.typ, code, refs), Columns: v.Columns}
	case *ValueInstance:
		return &ValueInstance{core: newCore(v.typ, code, refs), LocalValue: v.LocalValue}
	default:
		return &ScalarInstance{core: newCore(i.Type(), code, refs)}
	}
}

// NewListTableInstance builds the TableInstance a list literal compiles
// to (spec.md §4.3's List literal case). Its declared Type is the
// ListType itself rather than a TableType — spec.md §8 scenario 5: "returns
// a TableInstance of ListType(Int)" — while Columns still carries the
// single synthetic "value" column membership tests (`in`/`!in`) need.
func NewListTableInstance(code sqlir.Node, listType pqltypes.ListType, refs []Instance, columns []NamedColumn) *TableInstance {
	return &TableInstance{core: newCore(listType, code, refs), Columns: columns}
}
