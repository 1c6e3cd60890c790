package pqltypes

import "strings"

// FlatColumn is one leaf of a flattened TableType: a dotted column path
// and its (non-struct) type.
type FlatColumn struct {
	Path string
	Type Type
}

// FlattenType yields table's columns as a leaf-only, dotted-name ordered
// sequence (spec.md §3 invariant). Struct-typed and datum-wrapped-struct
// columns are expanded into one leaf per nested field; every other
// column is its own leaf.
func (t TableType) FlattenType() []FlatColumn {
	var out []FlatColumn
	for _, c := range t.Columns {
		out = append(out, flattenField(c.Name, c.Type)...)
	}
	return out
}

func flattenField(prefix string, t Type) []FlatColumn {
	switch v := t.(type) {
	case StructType:
		return flattenStruct(prefix, v)
	case *StructType:
		return flattenStruct(prefix, *v)
	case DatumColumn:
		if st, ok := asStruct(v.Inner); ok {
			return flattenStruct(prefix, *st)
		}
	}
	return []FlatColumn{{Path: prefix, Type: t}}
}

func flattenStruct(prefix string, st StructType) []FlatColumn {
	var out []FlatColumn
	for _, f := range st.Fields {
		out = append(out, flattenField(prefix+"."+f.Name, f.Type)...)
	}
	return out
}

// SQLFriendlyName replaces dots in a flattened path with underscores,
// matching spec.md §4.4's alias rule ("dots in the full name are
// replaced with underscores when used as an alias").
func SQLFriendlyName(path string) string {
	return strings.ReplaceAll(path, ".", "_")
}
