package compiler

import (
	"context"
	"fmt"

	"github.com/ha1tch/preqlc/compiler/pqlerrors"
	"github.com/ha1tch/preqlc/pqlast"
	"github.com/ha1tch/preqlc/pqlobj"
)

// Evaluate is the recursive dispatch of spec.md §4.2: it resolves
// Name/Attr/Const directly and delegates everything else to
// compile_remote. The result is `any` because a Name may resolve to a
// pqltypes.Type (for generic-type application, spec.md §4.5) rather than
// an Instance.
func Evaluate(s *State, node pqlast.Node) (any, error) {
	if s.Config.Debug {
		s.Trace.LogStep(context.Background(), fmt.Sprintf("%T", node), "")
	}

	switch n := node.(type) {
	case pqlast.Name:
		v, ok := s.Resolve(n.Name)
		if !ok {
			err := pqlerrors.New(pqlerrors.CompileError, n.Meta, "name %q is not defined in this scope", n.Name)
			s.Trace.LogError(context.Background(), err)
			return nil, err
		}
		return v, nil

	case pqlast.Attr:
		base, err := EvaluateInstance(s, n.Expr)
		if err != nil {
			return nil, err
		}
		return resolveAttr(s, n, base)

	case pqlast.Const:
		if n.IsNull {
			return pqlobj.NullInstance, nil
		}
		v, err := pqlobj.NewValueInstanceFromLiteral(n.Value)
		if err != nil {
			return nil, pqlerrors.Wrap(pqlerrors.CompileError, n.Meta, err)
		}
		return v, nil

	default:
		return compileRemote(s, node)
	}
}

// EvaluateInstance evaluates node and asserts the result is an Instance,
// raising a CompileError (an invariant violation) if a type slipped
// through where an Instance was required.
func EvaluateInstance(s *State, node pqlast.Node) (pqlobj.Instance, error) {
	v, err := Evaluate(s, node)
	if err != nil {
		return nil, err
	}
	inst, ok := v.(pqlobj.Instance)
	if !ok {
		return nil, pqlerrors.New(pqlerrors.CompileError, node.GetMeta(), "expected a value, got a type (%v)", v)
	}
	return inst, nil
}

// EvaluateAll maps Evaluate over a sequence, in left-to-right order
// (spec.md §5's ordering rule for multi-subexpression constructs),
// asserting every result is an Instance.
func EvaluateAll(s *State, nodes []pqlast.Node) ([]pqlobj.Instance, error) {
	out := make([]pqlobj.Instance, 0, len(nodes))
	for _, n := range nodes {
		inst, err := EvaluateInstance(s, n)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

func resolveAttr(s *State, n pqlast.Attr, base pqlobj.Instance) (any, error) {
	switch b := base.(type) {
	case *pqlobj.StructColumnInstance:
		m, ok := b.MemberByName(n.Name)
		if !ok {
			return nil, pqlerrors.New(pqlerrors.TypeError, n.Meta, "no field %q on struct", n.Name)
		}
		return m, nil
	case *pqlobj.TableInstance:
		c, ok := b.ColumnByName(n.Name)
		if !ok {
			return nil, pqlerrors.New(pqlerrors.TypeError, n.Meta, "no column %q on table", n.Name)
		}
		return c, nil
	default:
		return nil, pqlerrors.New(pqlerrors.TypeError, n.Meta, "cannot access attribute %q on a non-struct, non-table value", n.Name)
	}
}
