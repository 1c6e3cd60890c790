package compiler

import (
	"strconv"
	"strings"

	"github.com/ha1tch/preqlc/compiler/pqlerrors"
	"github.com/ha1tch/preqlc/pqlast"
	"github.com/ha1tch/preqlc/pqlobj"
	"github.com/ha1tch/preqlc/pqltypes"
	"github.com/ha1tch/preqlc/sqlir"
)

// guessFieldName infers a projection field's name from its AST shape when
// no explicit name was given, matching spec.md §4.4's dispatch table.
func guessFieldName(n pqlast.Node) string {
	switch v := n.(type) {
	case pqlast.Name:
		return v.Name
	case pqlast.Attr:
		return guessFieldName(v.Expr) + "." + v.Name
	case pqlast.Projection:
		return guessFieldName(v.Table)
	case pqlast.FuncCall:
		return guessFieldName(v.Func)
	default:
		return "_"
	}
}

// processedField pairs a field's inferred name with its compiled column
// and allocated SQL alias, matching the original's _process_fields result
// shape (name -> (instance, alias)).
type processedField struct {
	Name  string
	Value pqlobj.Column
	Alias string
}

// processFields evaluates each field's value in the already-pushed scope,
// lifts Aggregated scalars into arrays, ensures a column shape, and
// allocates a unique SQL alias — spec.md §4.3 step 5.
func processFields(s *State, fields []pqlast.NamedField) ([]processedField, error) {
	out := make([]processedField, 0, len(fields))
	for _, f := range fields {
		suggested := guessFieldName(f.Value)
		if f.Name != nil {
			suggested = *f.Name
		}
		name := suggested
		if i := strings.LastIndex(suggested, "."); i >= 0 {
			name = suggested[i+1:]
		}
		sqlFriendly := pqltypes.SQLFriendlyName(name)

		v, err := EvaluateInstance(s, f.Value)
		if err != nil {
			return nil, err
		}

		if _, ok := v.Type().(pqltypes.Aggregated); ok {
			if _, isStruct := v.(*pqlobj.StructColumnInstance); isStruct {
				return nil, pqlerrors.New(pqlerrors.TypeError, f.Meta, "cannot make an array of structs")
			}
			v = pqlobj.NewColumnInstance(sqlir.MakeArray{Type: v.Type(), Inner: v.Code()}, v.Type(), []pqlobj.Instance{v})
		}

		col, err := pqlobj.EnsureColumn(v)
		if err != nil {
			return nil, pqlerrors.Wrap(pqlerrors.TypeError, f.Meta, err)
		}

		out = append(out, processedField{Name: name, Value: col, Alias: s.UniqueName(sqlFriendly)})
	}
	return out, nil
}

// expandEllipsis replaces each Ellipsis-valued field with one NamedField
// per column in columns not directly named by a sibling field nor
// excluded, matching the original's _expand_ellipsis.
func expandEllipsis(columns []pqlobj.NamedColumn, fields []pqlast.NamedField) ([]pqlast.NamedField, error) {
	direct := make(map[string]bool)
	for _, f := range fields {
		if n, ok := f.Value.(pqlast.Name); ok {
			direct[n.Name] = true
		}
	}

	out := make([]pqlast.NamedField, 0, len(fields))
	for _, f := range fields {
		ell, ok := f.Value.(pqlast.Ellipsis)
		if !ok {
			out = append(out, f)
			continue
		}
		if f.Name != nil {
			return nil, pqlerrors.New(pqlerrors.SyntaxError, f.Meta, "cannot use a name for ellipsis (inlining operation doesn't accept a name)")
		}
		exclude := make(map[string]bool, len(direct)+len(ell.Exclude))
		for n := range direct {
			exclude[n] = true
		}
		for _, n := range ell.Exclude {
			exclude[n] = true
		}
		for _, c := range columns {
			if exclude[c.Name] {
				continue
			}
			name := c.Name
			out = append(out, pqlast.NamedField{Meta: f.Meta, Name: &name, Value: pqlast.Name{Name: c.Name}})
		}
	}
	return out, nil
}

// findDuplicateFieldName reports the first explicitly-named field that
// repeats a name already seen across fields and aggFields, matching the
// original's find_duplicate(..., key=name) check (spec.md §4.3 step 3).
func findDuplicateFieldName(fields, aggFields []pqlast.NamedField) (pqlast.NamedField, bool) {
	seen := make(map[string]bool)
	all := append(append([]pqlast.NamedField{}, fields...), aggFields...)
	for _, f := range all {
		if f.Name == nil {
			continue
		}
		if seen[*f.Name] {
			return f, true
		}
		seen[*f.Name] = true
	}
	return pqlast.NamedField{}, false
}

// allocateProjectionName picks the final column name for a processed
// field, suffixing on collision against every name chosen so far in this
// projection (DESIGN.md Open Question 1: suffixing applies to an
// automatic name colliding with an explicit one too, not just
// automatic-vs-automatic).
func allocateProjectionName(name string, taken map[string]bool) string {
	if !taken[name] {
		taken[name] = true
		return name
	}
	for i := 1; ; i++ {
		candidate := name + strconv.Itoa(i)
		if !taken[candidate] {
			taken[candidate] = true
			return candidate
		}
	}
}
