package compiler

import (
	"github.com/ha1tch/preqlc/compiler/pqlerrors"
	"github.com/ha1tch/preqlc/pqlast"
	"github.com/ha1tch/preqlc/pqlobj"
	"github.com/ha1tch/preqlc/pqltypes"
	"github.com/ha1tch/preqlc/sqlir"
)

var compareOpRename = map[pqlast.CompareOp]sqlir.CompareOp{
	pqlast.OpEq:    sqlir.CmpEq,
	pqlast.OpNe:    sqlir.CmpNe,
	pqlast.OpNeAlt: sqlir.CmpNe,
	pqlast.OpLt:    sqlir.CmpLt,
	pqlast.OpLe:    sqlir.CmpLe,
	pqlast.OpGt:    sqlir.CmpGt,
	pqlast.OpGe:    sqlir.CmpGe,
}

// compileRemote is the relational and scalar compiler of spec.md §4.3,
// dispatching each AST construct the evaluator doesn't resolve directly
// to its Instance. Anything not named below passes through unchanged,
// matching the original's base-case `compile_remote(state, x): return x`.
func compileRemote(s *State, node pqlast.Node) (any, error) {
	switch n := node.(type) {
	case pqlast.Projection:
		return compileProjection(s, n)
	case pqlast.Selection:
		return compileSelection(s, n)
	case pqlast.Order:
		return compileOrder(s, n)
	case pqlast.DescOrder:
		return compileDescOrder(s, n)
	case pqlast.Slice:
		return compileSlice(s, n)
	case pqlast.Like:
		return compileLike(s, n)
	case pqlast.Compare:
		return compileCompare(s, n)
	case pqlast.Arith:
		return compileArithNode(s, n)
	case pqlast.List_:
		return compileList(s, n)
	case pqlast.Dict_:
		return compileDict(s, n)
	case pqlast.Parameter:
		return compileParameter(s, n)
	case pqlast.Ellipsis:
		return nil, pqlerrors.New(pqlerrors.SyntaxError, n.Meta, "ellipsis not allowed here")
	case pqlast.FuncCall:
		return compileFuncCall(s, n)
	default:
		return node, nil
	}
}

func compileArithNode(s *State, arith pqlast.Arith) (pqlobj.Instance, error) {
	a, err := EvaluateInstance(s, arith.Args[0])
	if err != nil {
		return nil, err
	}
	b, err := EvaluateInstance(s, arith.Args[1])
	if err != nil {
		return nil, err
	}
	return compileArith(s, arith, a, b)
}

// compileProjection implements spec.md §4.3's Projection case.
func compileProjection(s *State, proj pqlast.Projection) (pqlobj.Instance, error) {
	table, err := EvaluateInstance(s, proj.Table)
	if err != nil {
		return nil, err
	}
	if pqlobj.IsEmptyList(table) {
		return table, nil
	}

	var columns []pqlobj.NamedColumn
	var structBase *pqlobj.StructColumnInstance
	var tableBase *pqlobj.TableInstance
	switch t := table.(type) {
	case *pqlobj.TableInstance:
		tableBase = t
		columns = t.Columns
	case *pqlobj.StructColumnInstance:
		structBase = t
		columns = t.Members
	default:
		return nil, pqlerrors.New(pqlerrors.TypeError, proj.Meta, "cannot project objects of type %s", table.Type())
	}

	fields, err := expandEllipsis(columns, proj.Fields)
	if err != nil {
		return nil, err
	}

	if dup, ok := findDuplicateFieldName(proj.Fields, proj.AggFields); ok {
		return nil, pqlerrors.New(pqlerrors.TypeError, dup.Meta, "field %q was already used in this projection", *dup.Name)
	}

	scope := make(map[string]any, len(columns)+1)
	for _, c := range columns {
		scope[c.Name] = c.Col
	}
	if structBase != nil {
		scope["this"] = structBase
	} else {
		scope["this"] = tableBase.ToStructColumn()
	}

	processed, err := WithScope(s, scope, func() ([]processedField, error) {
		return processFields(s, fields)
	})
	if err != nil {
		return nil, err
	}

	var aggProcessed []processedField
	if len(proj.AggFields) > 0 {
		aggScope := make(map[string]any, len(scope))
		for k, v := range scope {
			aggScope[k] = pqlobj.Aggregated(v.(pqlobj.Instance))
		}
		aggProcessed, err = WithScope(s, aggScope, func() ([]processedField, error) {
			return processFields(s, proj.AggFields)
		})
		if err != nil {
			return nil, err
		}
	}

	if structBase != nil {
		if len(aggProcessed) > 0 {
			return nil, pqlerrors.New(pqlerrors.TypeError, proj.Meta, "cannot aggregate a struct projection")
		}
		taken := make(map[string]bool, len(processed))
		members := make([]pqlobj.NamedColumn, 0, len(processed))
		structFields := make([]pqltypes.Field, 0, len(processed))
		for _, pf := range processed {
			name := allocateProjectionName(pf.Name, taken)
			members = append(members, pqlobj.NamedColumn{Name: name, Col: pf.Value})
			structFields = append(structFields, pqltypes.Field{Name: name, Type: pf.Value.Type()})
		}
		structType, err := pqltypes.NewStructType(s.UniqueName("struct_proj"), structFields)
		if err != nil {
			return nil, pqlerrors.Wrap(pqlerrors.CompileError, proj.Meta, err)
		}
		return pqlobj.NewStructColumnInstance(table.Code(), *structType, []pqlobj.Instance{table}, members), nil
	}

	taken := make(map[string]bool, len(processed)+len(aggProcessed))
	var newColumns []pqlobj.NamedColumn
	var newTableFields []pqltypes.Field
	var sqlFields []sqlir.Node

	allProcessed := append(append([]processedField{}, processed...), aggProcessed...)
	for _, pf := range allProcessed {
		name := allocateProjectionName(pf.Name, taken)
		ci := pqlobj.RewrapColumn(pf.Value, pf.Alias)
		newColumns = append(newColumns, pqlobj.NamedColumn{Name: name, Col: ci})
		newTableFields = append(newTableFields, pqltypes.Field{Name: name, Type: pf.Value.Type()})

		oldLeaves := pf.Value.Flatten()
		newLeaves := ci.Flatten()
		for i := range oldLeaves {
			sqlFields = append(sqlFields, sqlir.ColumnAlias{Source: oldLeaves[i].Code(), Target: newLeaves[i].Code()})
		}
	}

	var groupBy []sqlir.Node
	if proj.GroupBy && len(processed) > 0 {
		for _, pf := range processed {
			groupBy = append(groupBy, sqlir.Name{Type: pf.Value.Type(), Alias: pf.Alias})
		}
	}

	baseName := "table"
	if tt, ok := tableBase.Type().(pqltypes.TableType); ok {
		baseName = tt.Name
	}
	newTableType, err := pqltypes.NewTableType(s.UniqueName(baseName+"_proj"), newTableFields, true, nil)
	if err != nil {
		return nil, pqlerrors.Wrap(pqlerrors.CompileError, proj.Meta, err)
	}

	code := sqlir.Select{Type: newTableType, Source: table.Code(), Fields: sqlFields, GroupBy: groupBy}
	result := pqlobj.NewTableInstance(code, newTableType, []pqlobj.Instance{table}, newColumns)
	pqlobj.MergeSubqueries(result.Subqueries(), table)
	return result, nil
}

func columnsScope(columns []pqlobj.NamedColumn) map[string]any {
	scope := make(map[string]any, len(columns))
	for _, c := range columns {
		scope[c.Name] = c.Col
	}
	return scope
}

// compileSelection implements spec.md §4.3's Selection case, including
// the §4.5 generic-type-application branch when the base evaluates to a
// type rather than an Instance.
func compileSelection(s *State, sel pqlast.Selection) (any, error) {
	v, err := Evaluate(s, sel.Table)
	if err != nil {
		return nil, err
	}
	if t, ok := v.(pqltypes.Type); ok {
		return applyTypeGenerics(s, t, sel.Conds)
	}

	base, ok := v.(pqlobj.Instance)
	if !ok {
		return nil, pqlerrors.New(pqlerrors.CompileError, sel.Meta, "selection expected a value or a type")
	}
	if pqlobj.IsEmptyList(base) {
		return base, nil
	}
	table, ok := base.(*pqlobj.TableInstance)
	if !ok {
		return nil, pqlerrors.New(pqlerrors.TypeError, sel.Meta, "selection expected an object of type table, instead got %s", base.Type())
	}

	condInsts, err := WithScope(s, columnsScope(table.Columns), func() ([]pqlobj.Instance, error) {
		return EvaluateAll(s, sel.Conds)
	})
	if err != nil {
		return nil, err
	}

	condCols := make([]pqlobj.Instance, 0, len(condInsts))
	condCodes := make([]sqlir.Node, 0, len(condInsts))
	for i, c := range condInsts {
		col, err := pqlobj.EnsureColumn(c)
		if err != nil {
			return nil, pqlerrors.Wrap(pqlerrors.TypeError, sel.Conds[i].GetMeta(), err)
		}
		condCols = append(condCols, col)
		condCodes = append(condCodes, col.Code())
	}

	code := sqlir.TableSelection(table.Type(), table.Code(), condCodes)
	refs := append([]pqlobj.Instance{table}, condCols...)
	result := pqlobj.Remake(table, code, refs)
	pqlobj.MergeSubqueries(result.Subqueries(), refs...)
	return result, nil
}

// compileOrder implements spec.md §4.3's Order case.
func compileOrder(s *State, order pqlast.Order) (pqlobj.Instance, error) {
	base, err := EvaluateInstance(s, order.Table)
	if err != nil {
		return nil, err
	}
	table, ok := base.(*pqlobj.TableInstance)
	if !ok {
		return nil, pqlerrors.New(pqlerrors.TypeError, order.Meta, "'order' expected an object of type table, instead got %s", base.Type())
	}

	fieldInsts, err := WithScope(s, columnsScope(table.Columns), func() ([]pqlobj.Instance, error) {
		return EvaluateAll(s, order.Fields)
	})
	if err != nil {
		return nil, err
	}

	cols := make([]pqlobj.Instance, 0, len(fieldInsts))
	codes := make([]sqlir.Node, 0, len(fieldInsts))
	for i, f := range fieldInsts {
		col, err := pqlobj.EnsureColumn(f)
		if err != nil {
			return nil, pqlerrors.Wrap(pqlerrors.TypeError, order.Fields[i].GetMeta(), err)
		}
		cols = append(cols, col)
		codes = append(codes, col.Code())
	}

	code := sqlir.TableOrder(table.Type(), table.Code(), codes)
	refs := append([]pqlobj.Instance{table}, cols...)
	result := pqlobj.Remake(table, code, refs)
	pqlobj.MergeSubqueries(result.Subqueries(), refs...)
	return result, nil
}

// compileDescOrder implements spec.md §4.3's DescOrder case.
func compileDescOrder(s *State, d pqlast.DescOrder) (pqlobj.Instance, error) {
	v, err := EvaluateInstance(s, d.Value)
	if err != nil {
		return nil, err
	}
	return pqlobj.WithCode(v, sqlir.Desc{Inner: v.Code()}), nil
}

// compileSlice implements spec.md §4.3's Slice case.
func compileSlice(s *State, sl pqlast.Slice) (pqlobj.Instance, error) {
	base, err := EvaluateInstance(s, sl.Table)
	if err != nil {
		return nil, err
	}
	if pqlobj.IsEmptyList(base) {
		return base, nil
	}
	table, ok := base.(*pqlobj.TableInstance)
	if !ok {
		return nil, pqlerrors.New(pqlerrors.TypeError, sl.Meta, "slice expected a collection, instead got %s", base.Type())
	}

	refs := []pqlobj.Instance{table}
	var startInst pqlobj.Instance
	if sl.Range.Start != nil {
		startInst, err = EvaluateInstance(s, sl.Range.Start)
		if err != nil {
			return nil, err
		}
		refs = append(refs, startInst)
	} else {
		startInst, err = pqlobj.NewValueInstanceFromLiteral(int64(0))
		if err != nil {
			return nil, err
		}
	}

	var stopCode sqlir.Node
	if sl.Range.Stop != nil {
		stopInst, err := EvaluateInstance(s, sl.Range.Stop)
		if err != nil {
			return nil, err
		}
		refs = append(refs, stopInst)
		stopCode = stopInst.Code()
	}

	code := sqlir.TableSlice(table.Type(), table.Code(), startInst.Code(), stopCode)
	result := pqlobj.Remake(table, code, refs)
	pqlobj.MergeSubqueries(result.Subqueries(), refs...)
	return result, nil
}

// compileLike implements spec.md §4.3's Like case.
func compileLike(s *State, like pqlast.Like) (pqlobj.Instance, error) {
	str, err := EvaluateInstance(s, like.Str)
	if err != nil {
		return nil, err
	}
	pat, err := EvaluateInstance(s, like.Pattern)
	if err != nil {
		return nil, err
	}
	if !pqltypes.Equal(str.Type(), pqltypes.StringT) {
		return nil, pqlerrors.New(pqlerrors.TypeError, like.Str.GetMeta().WithParent(like.Meta), "like (~) operator expects two strings")
	}
	if !pqltypes.Equal(pat.Type(), pqltypes.StringT) {
		return nil, pqlerrors.New(pqlerrors.TypeError, like.Pattern.GetMeta().WithParent(like.Meta), "like (~) operator expects two strings")
	}
	code := sqlir.Like{Str: str.Code(), Pattern: pat.Code()}
	return pqlobj.NewScalarInstance(code, pqltypes.BoolT, []pqlobj.Instance{str, pat}), nil
}

func isAtomicType(t pqltypes.Type) bool {
	switch pqltypes.EffectiveType(t).(type) {
	case pqltypes.Primitive, pqltypes.IdType, pqltypes.NullType:
		return true
	default:
		return false
	}
}

func comparableInstance(i pqlobj.Instance) pqlobj.Instance {
	if sc, ok := i.(*pqlobj.StructColumnInstance); ok && len(sc.Members) > 0 {
		return sc.Members[0].Col
	}
	return i
}

// compileCompare implements spec.md §4.3's Compare case, including the
// Contains ("in"/"!in") branch (DESIGN.md Open Question 2).
func compileCompare(s *State, cmp pqlast.Compare) (pqlobj.Instance, error) {
	a, err := EvaluateInstance(s, cmp.Args[0])
	if err != nil {
		return nil, err
	}
	b, err := EvaluateInstance(s, cmp.Args[1])
	if err != nil {
		return nil, err
	}

	if cmp.Op == pqlast.OpIn || cmp.Op == pqlast.OpNotIn {
		if !isAtomicType(a.Type()) {
			return nil, pqlerrors.New(pqlerrors.TypeError, cmp.Meta, "expecting an atomic type, got %s", a.Type())
		}
		table, ok := b.(*pqlobj.TableInstance)
		if !ok {
			return nil, pqlerrors.New(pqlerrors.TypeError, cmp.Meta, "expecting a collection, got %s", b.Type())
		}
		if len(table.Columns) != 1 {
			return nil, pqlerrors.New(pqlerrors.TypeError, cmp.Meta, "contains operator expects a collection with only 1 column! (got %d)", len(table.Columns))
		}
		colType := table.Columns[0].Col.Type()
		if !pqltypes.Equal(pqltypes.EffectiveType(colType), pqltypes.EffectiveType(a.Type())) {
			return nil, pqlerrors.New(pqlerrors.TypeError, cmp.Meta, "contains operator expects all types to match: %s -- %s", colType, a.Type())
		}
		op := sqlir.ContainsIn
		if cmp.Op == pqlast.OpNotIn {
			op = sqlir.ContainsNotIn
		}
		ca, cb := comparableInstance(a), comparableInstance(b)
		code := sqlir.Contains{Op: op, Args: [2]sqlir.Node{ca.Code(), cb.Code()}}
		return pqlobj.NewScalarInstance(code, pqltypes.BoolT, []pqlobj.Instance{a, b}), nil
	}

	sqlOp, ok := compareOpRename[cmp.Op]
	if !ok {
		return nil, pqlerrors.New(pqlerrors.CompileError, cmp.Meta, "unknown comparison operator %q", cmp.Op)
	}
	ca, cb := comparableInstance(a), comparableInstance(b)
	code := sqlir.Compare{Op: sqlOp, Args: [2]sqlir.Node{ca.Code(), cb.Code()}}
	return pqlobj.NewScalarInstance(code, pqltypes.BoolT, []pqlobj.Instance{a, b}), nil
}

// compileList implements spec.md §4.3's List literal case.
func compileList(s *State, lst pqlast.List_) (pqlobj.Instance, error) {
	if len(lst.Elems) == 0 {
		return pqlobj.EmptyList, nil
	}

	elems, err := EvaluateAll(s, lst.Elems)
	if err != nil {
		return nil, err
	}

	elemType := elems[0].Type()
	for _, e := range elems[1:] {
		if !pqltypes.Equal(e.Type(), elemType) {
			return nil, pqlerrors.New(pqlerrors.TypeError, lst.Meta, "cannot create a list of mixed types: (%s, %s)", elemType, e.Type())
		}
	}

	listType := pqltypes.ListType{Elem: elemType}
	name := s.UniqueName("list_")
	codes := make([]sqlir.Node, len(elems))
	refs := make([]pqlobj.Instance, len(elems))
	for i, e := range elems {
		codes[i] = e.Code()
		refs[i] = e
	}
	tableCode, subq := sqlir.CreateList(listType, name, codes)

	col := pqlobj.NewColumnInstance(sqlir.Name{Type: elemType, Alias: "value"}, elemType, refs)
	result := pqlobj.NewListTableInstance(tableCode, listType, refs, []pqlobj.NamedColumn{{Name: "value", Col: col}})
	result.AddSubquery(name, subq)
	return result, nil
}

// compileDict implements spec.md §4.3's Dict literal case.
func compileDict(s *State, d pqlast.Dict_) (pqlobj.Instance, error) {
	fields := make([]pqltypes.Field, 0, len(d.Elems))
	codes := make(map[string]sqlir.Node, len(d.Elems))
	refs := make([]pqlobj.Instance, 0, len(d.Elems))
	for k, v := range d.Elems {
		inst, err := EvaluateInstance(s, v)
		if err != nil {
			return nil, err
		}
		fields = append(fields, pqltypes.Field{Name: k, Type: inst.Type()})
		codes[k] = inst.Code()
		refs = append(refs, inst)
	}
	tt, err := pqltypes.NewTableType("_dict", fields, false, nil)
	if err != nil {
		return nil, pqlerrors.Wrap(pqlerrors.CompileError, d.Meta, err)
	}
	code := sqlir.RowDict{Fields: codes}
	return pqlobj.NewValueInstance(code, pqltypes.RowType{Row: tt}, refs, nil), nil
}

// compileParameter implements spec.md §4.3's Parameter case and §4.2's
// access-level branching.
func compileParameter(s *State, p pqlast.Parameter) (any, error) {
	if s.AccessLevel == Compile {
		return pqlobj.NewScalarInstance(sqlir.Parameter{Type: p.Type, Name: p.Name}, p.Type, nil), nil
	}
	v, ok := s.Resolve(p.Name)
	if !ok {
		return nil, pqlerrors.New(pqlerrors.InsufficientAccessLevel, p.Meta, "parameter %q has no bound value at this access level", p.Name)
	}
	return v, nil
}

// compileFuncCall dispatches a function call through the standard-library
// registry (spec.md §6: "looks up... and invokes them via a uniform
// (state, args...) -> Instance calling convention").
func compileFuncCall(s *State, call pqlast.FuncCall) (pqlobj.Instance, error) {
	name, ok := call.Func.(pqlast.Name)
	if !ok {
		return nil, pqlerrors.New(pqlerrors.TypeError, call.Meta, "function call target must be a name")
	}
	fn, ok := s.Registry.Lookup(name.Name)
	if !ok {
		return nil, pqlerrors.New(pqlerrors.CompileError, call.Meta, "function %q is not defined", name.Name)
	}
	args, err := EvaluateAll(s, call.Args)
	if err != nil {
		return nil, err
	}
	res, err := fn(s, args...)
	if err != nil {
		return nil, pqlerrors.Wrap(pqlerrors.TypeError, call.Meta, err)
	}
	return res, nil
}

// applyTypeGenerics implements spec.md §4.5's generic-type application.
func applyTypeGenerics(s *State, genType pqltypes.Type, typeNames []pqlast.Node) (pqltypes.Type, error) {
	if len(typeNames) == 0 {
		return nil, pqlerrors.New(pqlerrors.TypeError, pqlast.Meta{}, "generics expression expected a type, got nothing")
	}

	types := make([]pqltypes.Type, 0, len(typeNames))
	for _, n := range typeNames {
		v, err := Evaluate(s, n)
		if err != nil {
			return nil, err
		}
		t, ok := v.(pqltypes.Type)
		if !ok {
			return nil, pqlerrors.New(pqlerrors.TypeError, n.GetMeta(), "generics expression expected a type, got %v", v)
		}
		types = append(types, t)
	}

	if len(types) > 1 {
		// Union types in generic application: explicitly unimplemented
		// (DESIGN.md Open Question 3; spec.md §4.5/§9).
		return nil, pqlerrors.New(pqlerrors.TypeError, typeNames[0].GetMeta(), "union types not yet supported")
	}

	result, err := pqltypes.ApplyInnerType(genType, types[0])
	if err != nil {
		return nil, pqlerrors.New(pqlerrors.TypeError, typeNames[0].GetMeta(), "%s", err)
	}
	return result, nil
}
