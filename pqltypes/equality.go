package pqltypes

// Equal reports whether a and b are the same type, structurally.
func Equal(a, b Type) bool {
	switch av := a.(type) {
	case Primitive:
		bv, ok := b.(Primitive)
		return ok && av.Name == bv.Name
	case IdType:
		_, ok := b.(IdType)
		return ok
	case NullType:
		_, ok := b.(NullType)
		return ok
	case anyType:
		_, ok := b.(anyType)
		return ok
	case OptionalType:
		bv, ok := b.(OptionalType)
		return ok && Equal(av.Inner, bv.Inner)
	case ListType:
		bv, ok := b.(ListType)
		return ok && Equal(av.Elem, bv.Elem)
	case Aggregated:
		bv, ok := b.(Aggregated)
		return ok && Equal(av.Inner, bv.Inner)
	case StructType:
		bv, ok := b.(StructType)
		return ok && structEqual(av, bv)
	case RelationalColumn:
		bv, ok := b.(RelationalColumn)
		return ok && av.Table.Name == bv.Table.Name
	case DatumColumn:
		bv, ok := b.(DatumColumn)
		return ok && Equal(av.Inner, bv.Inner)
	case TableType:
		bv, ok := b.(TableType)
		return ok && av.Name == bv.Name
	case RowType:
		bv, ok := b.(RowType)
		return ok && av.Row.Name == bv.Row.Name
	}
	return false
}

func structEqual(a, b StructType) bool {
	if a.Name != b.Name || len(a.Fields) != len(b.Fields) {
		return false
	}
	for i, f := range a.Fields {
		if f.Name != b.Fields[i].Name || !Equal(f.Type, b.Fields[i].Type) {
			return false
		}
	}
	return true
}

// EffectiveType strips marker/wrapper variants (OptionalType, Aggregated,
// DatumColumn) that don't affect comparability, used by the Contains
// ("in"/"!in") type check in spec.md §4.3.
func EffectiveType(t Type) Type {
	switch v := t.(type) {
	case OptionalType:
		return EffectiveType(v.Inner)
	case Aggregated:
		return EffectiveType(v.Inner)
	case DatumColumn:
		return EffectiveType(v.Inner)
	default:
		return t
	}
}
