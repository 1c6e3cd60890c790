package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/preqlc/pqlast"
	"github.com/ha1tch/preqlc/pqlobj"
	"github.com/ha1tch/preqlc/pqltypes"
	"github.com/ha1tch/preqlc/sqlir"
)

func strPtr(s string) *string { return &s }

func TestGuessFieldName(t *testing.T) {
	cases := []struct {
		name string
		node pqlast.Node
		want string
	}{
		{"name", pqlast.Name{Name: "age"}, "age"},
		{"attr", pqlast.Attr{Expr: pqlast.Name{Name: "address"}, Name: "zip"}, "address.zip"},
		{"projection", pqlast.Projection{Table: pqlast.Name{Name: "users"}}, "users"},
		{"funccall", pqlast.FuncCall{Func: pqlast.Name{Name: "count"}}, "count"},
		{"other", pqlast.Const{Value: int64(1)}, "_"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, guessFieldName(c.node))
		})
	}
}

func TestProcessFields_InfersNameAndAllocatesAlias(t *testing.T) {
	s := newTestState()
	age := pqlobj.NewColumnInstance(sqlir.Name{Type: pqltypes.IntT, Alias: "age"}, pqltypes.IntT, nil)
	s.pushScope(map[string]any{"age": age})

	fields := []pqlast.NamedField{{Value: pqlast.Name{Name: "age"}}}
	processed, err := processFields(s, fields)
	require.NoError(t, err)
	require.Len(t, processed, 1)
	assert.Equal(t, "age", processed[0].Name)
	assert.NotEmpty(t, processed[0].Alias)
}

func TestProcessFields_ExplicitNameOverridesGuess(t *testing.T) {
	s := newTestState()
	age := pqlobj.NewColumnInstance(sqlir.Name{Type: pqltypes.IntT, Alias: "age"}, pqltypes.IntT, nil)
	s.pushScope(map[string]any{"age": age})

	fields := []pqlast.NamedField{{Name: strPtr("years"), Value: pqlast.Name{Name: "age"}}}
	processed, err := processFields(s, fields)
	require.NoError(t, err)
	assert.Equal(t, "years", processed[0].Name)
}

func TestProcessFields_LiftsAggregatedScalarIntoArray(t *testing.T) {
	s := newTestState()
	id := pqlobj.NewColumnInstance(sqlir.Name{Type: pqltypes.IntT, Alias: "id"}, pqltypes.IntT, nil)
	aggID := pqlobj.Aggregated(id)
	s.pushScope(map[string]any{"id": aggID})

	fields := []pqlast.NamedField{{Value: pqlast.Name{Name: "id"}}}
	processed, err := processFields(s, fields)
	require.NoError(t, err)
	_, ok := processed[0].Value.Code().(sqlir.MakeArray)
	assert.True(t, ok, "an Aggregated scalar field must be lifted via MakeArray")
}

func TestProcessFields_AggregatedStructIsTypeError(t *testing.T) {
	s := newTestState()
	st, err := pqltypes.NewStructType("address", []pqltypes.Field{{Name: "zip", Type: pqltypes.StringT}})
	require.NoError(t, err)
	zip := pqlobj.NewColumnInstance(sqlir.Name{Type: pqltypes.StringT, Alias: "zip"}, pqltypes.StringT, nil)
	sc := pqlobj.NewStructColumnInstance(sqlir.Name{Type: *st, Alias: "address"}, *st, nil, []pqlobj.NamedColumn{{Name: "zip", Col: zip}})
	aggSC := pqlobj.Aggregated(sc)
	s.pushScope(map[string]any{"address": aggSC})

	fields := []pqlast.NamedField{{Value: pqlast.Name{Name: "address"}}}
	_, err = processFields(s, fields)
	require.Error(t, err)
}

func usersColumns() []pqlobj.NamedColumn {
	name := pqlobj.NewColumnInstance(sqlir.Name{Type: pqltypes.StringT, Alias: "name"}, pqltypes.StringT, nil)
	age := pqlobj.NewColumnInstance(sqlir.Name{Type: pqltypes.IntT, Alias: "age"}, pqltypes.IntT, nil)
	country := pqlobj.NewColumnInstance(sqlir.Name{Type: pqltypes.StringT, Alias: "country"}, pqltypes.StringT, nil)
	return []pqlobj.NamedColumn{
		{Name: "name", Col: name},
		{Name: "age", Col: age},
		{Name: "country", Col: country},
	}
}

func TestExpandEllipsis_ExcludesSiblingsAndExcludeSet(t *testing.T) {
	columns := usersColumns()
	fields := []pqlast.NamedField{
		{Value: pqlast.Ellipsis{Exclude: []string{"country"}}},
		{Value: pqlast.Name{Name: "age"}},
	}
	expanded, err := expandEllipsis(columns, fields)
	require.NoError(t, err)

	var gotNames []string
	for _, f := range expanded {
		if n, ok := f.Value.(pqlast.Name); ok {
			gotNames = append(gotNames, n.Name)
		}
	}
	assert.NotContains(t, gotNames, "country", "the ellipsis's exclude set must be honoured")
	assert.Contains(t, gotNames, "age", "a directly-named sibling still appears once, via its own field")
	assert.Equal(t, 1, countOccurrences(gotNames, "age"), "age must not be duplicated by the ellipsis expansion")
}

func countOccurrences(xs []string, want string) int {
	n := 0
	for _, x := range xs {
		if x == want {
			n++
		}
	}
	return n
}

func TestExpandEllipsis_NamedEllipsisIsSyntaxError(t *testing.T) {
	columns := usersColumns()
	fields := []pqlast.NamedField{{Name: strPtr("x"), Value: pqlast.Ellipsis{}}}
	_, err := expandEllipsis(columns, fields)
	require.Error(t, err)
}

func TestFindDuplicateFieldName_DetectsExplicitDuplicate(t *testing.T) {
	fields := []pqlast.NamedField{
		{Name: strPtr("a"), Value: pqlast.Name{Name: "x"}},
	}
	aggFields := []pqlast.NamedField{
		{Name: strPtr("a"), Value: pqlast.Name{Name: "y"}},
	}
	_, found := findDuplicateFieldName(fields, aggFields)
	assert.True(t, found)
}

func TestFindDuplicateFieldName_InferredNamesNeverCollideHere(t *testing.T) {
	fields := []pqlast.NamedField{
		{Value: pqlast.Name{Name: "x"}},
		{Value: pqlast.Name{Name: "x"}},
	}
	_, found := findDuplicateFieldName(fields, nil)
	assert.False(t, found, "only explicitly-named fields are checked for duplicates here")
}

func TestAllocateProjectionName_SuffixesOnCollision(t *testing.T) {
	taken := map[string]bool{}
	first := allocateProjectionName("x", taken)
	second := allocateProjectionName("x", taken)
	third := allocateProjectionName("x", taken)
	assert.Equal(t, "x", first)
	assert.Equal(t, "x1", second)
	assert.Equal(t, "x2", third)
}

func TestAllocateProjectionName_AutomaticCollidesWithExplicit(t *testing.T) {
	taken := map[string]bool{"x": true}
	got := allocateProjectionName("x", taken)
	assert.Equal(t, "x1", got, "an automatic name colliding with an explicit one must still be suffixed (DESIGN.md Open Question 1)")
}
