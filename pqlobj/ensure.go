package pqlobj

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ha1tch/preqlc/pqltypes"
	"github.com/ha1tch/preqlc/sqlir"
)

// EnsureColumn lifts a plain Instance into a Column when its type
// permits it (Primitive, NullType, IdType), matching the original's
// `_ensure_col_instance`. Anything else is reported back to the caller
// so it can raise a TypeError with the right source Meta.
func EnsureColumn(i Instance) (Column, error) {
	if c, ok := i.(Column); ok {
		return c, nil
	}
	switch i.Type().(type) {
	case pqltypes.Primitive, pqltypes.NullType, pqltypes.IdType:
		return NewColumnInstance(i.Code(), i.Type(), []Instance{i}), nil
	default:
		return nil, fmt.Errorf("expected a valid expression, got an instance of type %s", i.Type())
	}
}

// emptyListType is the type of EmptyList, the sentinel TableInstance an
// empty list literal with no declared element type compiles to.
// Projection, Selection, and Slice on it all short-circuit to itself
// (SPEC_FULL.md §6.1).
var emptyListType = pqltypes.ListType{Elem: pqltypes.AnyT}

// EmptyList is the singleton instance of an untyped empty list.
var EmptyList Instance = func() Instance {
	code := sqlir.RawSql{Type: emptyListType, Text: "<empty list>"}
	return &TableInstance{core: newCore(emptyListType, code, nil)}
}()

// IsEmptyList reports whether i is the EmptyList sentinel.
func IsEmptyList(i Instance) bool {
	return i == EmptyList
}

// NullInstance is the singleton instance of the null value (spec.md
// §4.3's Const case: "for the null type, yields the singleton null
// instance").
var NullInstance Instance = NewValueInstance(sqlir.RawSql{Type: pqltypes.Null, Text: "NULL"}, pqltypes.Null, nil, nil)

// NewValueInstanceFromLiteral lifts a host-language literal into a typed
// ValueInstance, matching the original's `make_value_instance`/
// `from_python` dispatch table. Numeric floating literals are expected
// as decimal.Decimal, not float64, so constant folding stays exact.
func NewValueInstanceFromLiteral(v any) (*ValueInstance, error) {
	switch val := v.(type) {
	case nil:
		return NewValueInstance(sqlir.RawSql{Type: pqltypes.Null, Text: "NULL"}, pqltypes.Null, nil, nil), nil
	case int64:
		return NewValueInstance(sqlir.RawSql{Type: pqltypes.IntT, Text: fmt.Sprintf("%d", val)}, pqltypes.IntT, nil, val), nil
	case int:
		return NewValueInstanceFromLiteral(int64(val))
	case decimal.Decimal:
		return NewValueInstance(sqlir.RawSql{Type: pqltypes.FloatT, Text: val.String()}, pqltypes.FloatT, nil, val), nil
	case string:
		return NewValueInstance(sqlir.RawSql{Type: pqltypes.StringT, Text: val}, pqltypes.StringT, nil, val), nil
	case bool:
		return NewValueInstance(sqlir.RawSql{Type: pqltypes.BoolT, Text: fmt.Sprintf("%v", val)}, pqltypes.BoolT, nil, val), nil
	case time.Time:
		return NewValueInstance(sqlir.RawSql{Type: pqltypes.DatetimeT, Text: val.Format(time.RFC3339)}, pqltypes.DatetimeT, nil, val), nil
	default:
		return nil, fmt.Errorf("pqlobj: cannot lift literal of Go type %T into a Preql value", v)
	}
}
