package compiler

import (
	"github.com/shopspring/decimal"

	"github.com/ha1tch/preqlc/compiler/pqlerrors"
	"github.com/ha1tch/preqlc/pqlast"
	"github.com/ha1tch/preqlc/pqlobj"
	"github.com/ha1tch/preqlc/pqlstdlib"
	"github.com/ha1tch/preqlc/pqltypes"
	"github.com/ha1tch/preqlc/sqlir"
)

var tableArithFuncs = map[pqlast.ArithOp]string{
	pqlast.ArithAdd: pqlstdlib.Concat,
	pqlast.ArithAnd: pqlstdlib.Intersect,
	pqlast.ArithOr:  pqlstdlib.Union,
	pqlast.ArithSub: pqlstdlib.Substract,
}

var scalarArithOps = map[pqlast.ArithOp]sqlir.ArithOp{
	pqlast.ArithAdd: sqlir.AriAdd,
	pqlast.ArithSub: sqlir.AriSub,
	pqlast.ArithMul: sqlir.AriMul,
	pqlast.ArithDiv: sqlir.AriDiv,
}

// compileArith implements spec.md §4.3's Arith case: table-vs-table
// dispatch to the standard library, otherwise scalar coercion, constant
// folding, and IR emission.
func compileArith(s *State, arith pqlast.Arith, a, b pqlobj.Instance) (pqlobj.Instance, error) {
	opMeta := arith.Op.Meta.WithParent(arith.Meta)

	ta, aIsTable := a.(*pqlobj.TableInstance)
	tb, bIsTable := b.(*pqlobj.TableInstance)
	if aIsTable && bIsTable {
		name, ok := tableArithFuncs[arith.Op.Op]
		if !ok {
			return nil, pqlerrors.New(pqlerrors.TypeError, opMeta, "operation %q not supported for tables", arith.Op.Op)
		}
		fn, ok := s.Registry.Lookup(name)
		if !ok {
			return nil, pqlerrors.New(pqlerrors.CompileError, opMeta, "standard library function %q is not registered", name)
		}
		res, err := fn(s, ta, tb)
		if err != nil {
			return nil, pqlerrors.Wrap(pqlerrors.TypeError, arith.Meta, err)
		}
		return res, nil
	}

	argTypes := []pqltypes.Type{a.Type(), b.Type()}
	typeSet := distinctTypesIgnoringAnyList(argTypes)

	if s.Config.Optimize && len(typeSet) == 1 && arith.Op.Op == pqlast.ArithAdd {
		va, aOK := a.(*pqlobj.ValueInstance)
		vb, bOK := b.(*pqlobj.ValueInstance)
		if aOK && bOK {
			if folded, ok := foldAdd(va.LocalValue, vb.LocalValue); ok {
				return pqlobj.NewValueInstanceFromLiteral(folded)
			}
		}
	}

	if len(typeSet) > 1 {
		switch {
		case sameTypeSet(typeSet, pqltypes.IntT, pqltypes.FloatT):
			typeSet = []pqltypes.Type{pqltypes.FloatT}

		case sameTypeSet(typeSet, pqltypes.IntT, pqltypes.StringT):
			if arith.Op.Op != pqlast.ArithMul {
				return nil, pqlerrors.New(pqlerrors.TypeError, opMeta, "operator %q not supported between string and integer", arith.Op.Op)
			}
			fn, ok := s.Registry.Lookup(pqlstdlib.Repeat)
			if !ok {
				return nil, pqlerrors.New(pqlerrors.CompileError, opMeta, "standard library function %q is not registered", pqlstdlib.Repeat)
			}
			str, num := a, b
			if !isStringTyped(a.Type()) {
				str, num = b, a
			}
			return fn(s, str, num)

		default:
			return nil, pqlerrors.New(pqlerrors.TypeError, opMeta, "all values provided to %q must be of the same type (got: %s, %s)", arith.Op.Op, a.Type(), b.Type())
		}
	}

	if !isArithmeticOperand(a.Type()) || !isArithmeticOperand(b.Type()) {
		return nil, pqlerrors.New(pqlerrors.TypeError, opMeta, "operation %q not supported for type: %s, %s", arith.Op.Op, a.Type(), b.Type())
	}

	resultType := typeSet[0]
	sqlOp, ok := scalarArithOps[arith.Op.Op]
	if !ok {
		return nil, pqlerrors.New(pqlerrors.TypeError, opMeta, "operator %q is not valid between scalar operands", arith.Op.Op)
	}
	code := sqlir.NewArith(resultType, sqlOp, [2]sqlir.Node{a.Code(), b.Code()})
	return pqlobj.NewScalarInstance(code, resultType, []pqlobj.Instance{a, b}), nil
}

func isStringTyped(t pqltypes.Type) bool {
	p, ok := pqltypes.EffectiveType(t).(pqltypes.Primitive)
	return ok && p.Name == pqltypes.String
}

func isArithmeticOperand(t pqltypes.Type) bool {
	switch t.(type) {
	case pqltypes.Primitive, pqltypes.ListType:
		return true
	default:
		return false
	}
}

// distinctTypesIgnoringAnyList is the original's `arg_types_set` (a set of
// operand types with `list<any>` — the empty-list sentinel's type —
// excluded, since it should never force a coercion decision).
func distinctTypesIgnoringAnyList(types []pqltypes.Type) []pqltypes.Type {
	anyList := pqltypes.ListType{Elem: pqltypes.AnyT}
	var out []pqltypes.Type
	for _, t := range types {
		if pqltypes.Equal(t, anyList) {
			continue
		}
		dup := false
		for _, seen := range out {
			if pqltypes.Equal(t, seen) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t)
		}
	}
	return out
}

func sameTypeSet(set []pqltypes.Type, a, b pqltypes.Type) bool {
	if len(set) != 2 {
		return false
	}
	return (pqltypes.Equal(set[0], a) && pqltypes.Equal(set[1], b)) ||
		(pqltypes.Equal(set[0], b) && pqltypes.Equal(set[1], a))
}

// foldAdd adds two literal values of the same Go-level kind, matching
// spec.md §8's constant-folding property. Float literals are held as
// decimal.Decimal so folding stays exact.
func foldAdd(v1, v2 any) (any, bool) {
	switch a := v1.(type) {
	case int64:
		b, ok := v2.(int64)
		if !ok {
			return nil, false
		}
		return a + b, true
	case decimal.Decimal:
		b, ok := v2.(decimal.Decimal)
		if !ok {
			return nil, false
		}
		return a.Add(b), true
	case string:
		b, ok := v2.(string)
		if !ok {
			return nil, false
		}
		return a + b, true
	default:
		return nil, false
	}
}
