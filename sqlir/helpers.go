package sqlir

import "github.com/ha1tch/preqlc/pqltypes"

// CreateList builds the IR for a list literal: a named subquery
// selecting each element, and the Name reference to that subquery by
// name (spec.md §4.3's List literal case: "call IR helper create_list
// ... returning (table_code, subquery_ir)").
func CreateList(t pqltypes.ListType, name string, elems []Node) (tableCode Node, subquery Node) {
	subquery = listSubquery{Type: t, Elems: elems}
	tableCode = Name{Type: t, Alias: name}
	return tableCode, subquery
}

// listSubquery is the body of a list-literal subquery: one SELECT per
// element, unioned together under a single "value" column.
type listSubquery struct {
	sealed
	Type  pqltypes.ListType
	Elems []Node
}

func (n listSubquery) ResultType() pqltypes.Type { return n.Type }
func (n listSubquery) Children() []Node          { return n.Elems }

// TableOrder wraps base's code to apply an ORDER BY over keys.
func TableOrder(baseType pqltypes.Type, base Node, keys []Node) Node {
	return orderNode{Type: baseType, kids: append([]Node{base}, keys...)}
}

type orderNode struct {
	sealed
	Type pqltypes.Type
	kids []Node
}

func (n orderNode) ResultType() pqltypes.Type { return n.Type }
func (n orderNode) Children() []Node          { return n.kids }

// TableSlice wraps base's code to apply a LIMIT/OFFSET-shaped slice.
func TableSlice(baseType pqltypes.Type, base Node, start Node, stop Node) Node {
	children := []Node{base, start}
	if stop != nil {
		children = append(children, stop)
	}
	return sliceNode{Type: baseType, kids: children}
}

type sliceNode struct {
	sealed
	Type pqltypes.Type
	kids []Node
}

func (n sliceNode) ResultType() pqltypes.Type { return n.Type }
func (n sliceNode) Children() []Node          { return n.kids }

// TableSelection wraps base's code to apply a WHERE-shaped filter.
func TableSelection(baseType pqltypes.Type, base Node, conds []Node) Node {
	return selectionNode{Type: baseType, kids: append([]Node{base}, conds...)}
}

type selectionNode struct {
	sealed
	Type pqltypes.Type
	kids []Node
}

func (n selectionNode) ResultType() pqltypes.Type { return n.Type }
func (n selectionNode) Children() []Node          { return n.kids }
