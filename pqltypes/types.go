// Package pqltypes implements Preql's closed type lattice: the catalogue
// of types the compiler reasons about (primitives, id, null, optional,
// list, aggregated, struct, relational column, datum column, table).
//
// Go has no sum types, so each variant is modelled as its own struct
// implementing the sealed Type interface (Design Note 1: "model each
// dispatch family... as a function performing an exhaustive match over
// a sealed variant").
package pqltypes

import "fmt"

// Type is the sealed interface every type-lattice variant satisfies.
type Type interface {
	typ()
	String() string
}

type sealed struct{}

func (sealed) typ() {}

// PrimitiveName enumerates the closed set of scalar primitives.
type PrimitiveName string

const (
	Int      PrimitiveName = "int"
	String   PrimitiveName = "string"
	Float    PrimitiveName = "float"
	Bool     PrimitiveName = "bool"
	Text     PrimitiveName = "text"
	Datetime PrimitiveName = "datetime"
)

// Primitive is a scalar base type.
type Primitive struct {
	sealed
	Name PrimitiveName
}

func (p Primitive) String() string { return string(p.Name) }

var (
	IntT      = Primitive{Name: Int}
	StringT   = Primitive{Name: String}
	FloatT    = Primitive{Name: Float}
	BoolT     = Primitive{Name: Bool}
	TextT     = Primitive{Name: Text}
	DatetimeT = Primitive{Name: Datetime}
)

// IdType marks an auto-assigned integer primary key.
type IdType struct{ sealed }

func (IdType) String() string { return "id" }

// NullType is the singleton type of the null value.
type NullType struct{ sealed }

func (NullType) String() string { return "null" }

// Null is the NullType singleton.
var Null = NullType{}

// OptionalType wraps a type that may additionally be null.
type OptionalType struct {
	sealed
	Inner Type
}

func (t OptionalType) String() string { return fmt.Sprintf("%s?", t.Inner) }

// ListType is a homogeneous list of Elem.
type ListType struct {
	sealed
	Elem Type
}

func (t ListType) String() string { return fmt.Sprintf("list<%s>", t.Elem) }

// AnyT is the wildcard element type of an as-yet-unconstrained list
// (spec.md §4.3's "list<any>" used to ignore empty lists in arithmetic
// type-set comparisons).
var AnyT Type = anyType{}

type anyType struct{ sealed }

func (anyType) String() string { return "any" }

// Aggregated marks a value living inside a group-by aggregate scope.
type Aggregated struct {
	sealed
	Inner Type
}

func (t Aggregated) String() string { return fmt.Sprintf("aggregated<%s>", t.Inner) }

// Field is one named, typed member of a StructType or column of a
// TableType. Order in the containing slice is the declaration order.
type Field struct {
	Name string
	Type Type
}

// StructType is a named, ordered mapping of field name to type.
type StructType struct {
	sealed
	Name   string
	Fields []Field
}

func (t StructType) String() string { return fmt.Sprintf("struct %s", t.Name) }

// FieldType looks up a field by name.
func (t StructType) FieldType(name string) (Type, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// NewStructType validates field-name uniqueness before constructing a
// StructType (spec.md §3 invariant: "column names within a
// TableType/StructType are unique").
func NewStructType(name string, fields []Field) (*StructType, error) {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name] {
			return nil, fmt.Errorf("pqltypes: duplicate field %q in struct %q", f.Name, name)
		}
		seen[f.Name] = true
	}
	return &StructType{Name: name, Fields: fields}, nil
}

// RelationalColumn is a foreign-key-shaped column referencing another
// table's rows.
type RelationalColumn struct {
	sealed
	Table *TableType
}

func (t RelationalColumn) String() string { return fmt.Sprintf("-> %s", t.Table.Name) }

// DatumColumn wraps a primitive/struct/etc. type as a stored column.
type DatumColumn struct {
	sealed
	Inner Type
}

func (t DatumColumn) String() string { return t.Inner.String() }

// TableType is a named, ordered mapping of column name to type, with an
// optional temporary flag and primary-key column paths. A primary-key
// path is a sequence of field names into (possibly nested) struct
// columns, e.g. ["address", "zip"].
type TableType struct {
	sealed
	Name        string
	Columns     []Field
	Temporary   bool
	PrimaryKeys [][]string
}

func (t TableType) String() string { return fmt.Sprintf("table %s", t.Name) }

// ColumnType looks up a top-level column by name.
func (t TableType) ColumnType(name string) (Type, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c.Type, true
		}
	}
	return nil, false
}

// NewTableType validates column-name uniqueness and that every primary
// key path resolves to an existing (possibly nested) column before
// constructing a TableType.
func NewTableType(name string, columns []Field, temporary bool, pks [][]string) (*TableType, error) {
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c.Name] {
			return nil, fmt.Errorf("pqltypes: duplicate column %q in table %q", c.Name, name)
		}
		seen[c.Name] = true
	}
	t := &TableType{Name: name, Columns: columns, Temporary: temporary, PrimaryKeys: pks}
	for _, pk := range pks {
		if !t.hasPath(pk) {
			return nil, fmt.Errorf("pqltypes: primary key path %v does not reference an existing column in table %q", pk, name)
		}
	}
	return t, nil
}

func (t TableType) hasPath(path []string) bool {
	if len(path) == 0 {
		return false
	}
	cur, ok := t.ColumnType(path[0])
	if !ok {
		return false
	}
	for _, seg := range path[1:] {
		st, ok := asStruct(cur)
		if !ok {
			return false
		}
		cur, ok = st.FieldType(seg)
		if !ok {
			return false
		}
	}
	return true
}

func asStruct(t Type) (*StructType, bool) {
	switch v := t.(type) {
	case StructType:
		return &v, true
	case *StructType:
		return v, true
	case DatumColumn:
		return asStruct(v.Inner)
	}
	return nil, false
}

// RowType is the anonymous row-result type produced by a Dict literal
// (original_source/preql names this types.RowType; spec.md §4.3's Dict
// case wraps its ValueInstance in one).
type RowType struct {
	sealed
	Row *TableType
}

func (t RowType) String() string { return fmt.Sprintf("row %s", t.Row.Name) }
