package pqlobj_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/preqlc/pqlobj"
	"github.com/ha1tch/preqlc/pqltypes"
	"github.com/ha1tch/preqlc/sqlir"
)

func TestColumnInstance_FlattenIsSelf(t *testing.T) {
	c := pqlobj.NewColumnInstance(sqlir.Name{Type: pqltypes.IntT, Alias: "age"}, pqltypes.IntT, nil)
	assert.Equal(t, []*pqlobj.ColumnInstance{c}, c.Flatten())
}

func TestStructColumnInstance_FlattenRoundTrip(t *testing.T) {
	// spec.md §8's flatten round-trip property: flattening a struct column
	// yields one leaf per nested member, in declaration order.
	a := pqlobj.NewColumnInstance(sqlir.Name{Type: pqltypes.StringT, Alias: "city"}, pqltypes.StringT, nil)
	b := pqlobj.NewColumnInstance(sqlir.Name{Type: pqltypes.StringT, Alias: "zip"}, pqltypes.StringT, nil)
	st, err := pqltypes.NewStructType("address", []pqltypes.Field{
		{Name: "city", Type: pqltypes.StringT},
		{Name: "zip", Type: pqltypes.StringT},
	})
	require.NoError(t, err)

	sc := pqlobj.NewStructColumnInstance(sqlir.Name{Type: *st, Alias: "address"}, *st, nil, []pqlobj.NamedColumn{
		{Name: "city", Col: a},
		{Name: "zip", Col: b},
	})

	flat := sc.Flatten()
	require.Len(t, flat, 2)
	assert.Same(t, a, flat[0])
	assert.Same(t, b, flat[1])
}

func TestStructColumnInstance_MemberByName(t *testing.T) {
	a := pqlobj.NewColumnInstance(sqlir.Name{Type: pqltypes.IntT, Alias: "x"}, pqltypes.IntT, nil)
	sc := pqlobj.NewStructColumnInstance(sqlir.Name{Type: pqltypes.Null, Alias: "s"}, pqltypes.Null, nil, []pqlobj.NamedColumn{
		{Name: "x", Col: a},
	})

	got, ok := sc.MemberByName("x")
	assert.True(t, ok)
	assert.Same(t, a, got)

	_, ok = sc.MemberByName("missing")
	assert.False(t, ok)
}

func TestTableInstance_ColumnByNameAndToStructColumn(t *testing.T) {
	age := pqlobj.NewColumnInstance(sqlir.Name{Type: pqltypes.IntT, Alias: "age"}, pqltypes.IntT, nil)
	tt, err := pqltypes.NewTableType("users", []pqltypes.Field{{Name: "age", Type: pqltypes.IntT}}, false, nil)
	require.NoError(t, err)
	table := pqlobj.NewTableInstance(sqlir.Name{Type: *tt, Alias: "users"}, tt, nil, []pqlobj.NamedColumn{
		{Name: "age", Col: age},
	})

	col, ok := table.ColumnByName("age")
	assert.True(t, ok)
	assert.Same(t, age, col)

	sc := table.ToStructColumn()
	member, ok := sc.MemberByName("age")
	assert.True(t, ok)
	assert.Same(t, age, member)
}

func TestTableInstance_ToStructColumn_FallsBackForNonTableType(t *testing.T) {
	// A list-literal-derived TableInstance declares a ListType, not a
	// TableType; ToStructColumn must not panic asserting the latter.
	value := pqlobj.NewColumnInstance(sqlir.Name{Type: pqltypes.IntT, Alias: "value"}, pqltypes.IntT, nil)
	listType := pqltypes.ListType{Elem: pqltypes.IntT}
	table := pqlobj.NewListTableInstance(sqlir.Name{Type: listType, Alias: "list_1"}, listType, nil, []pqlobj.NamedColumn{
		{Name: "value", Col: value},
	})

	assert.NotPanics(t, func() {
		sc := table.ToStructColumn()
		_, ok := sc.MemberByName("value")
		assert.True(t, ok)
	})
}

func TestMergeSubqueries_FoldsAllSources(t *testing.T) {
	a := pqlobj.NewScalarInstance(sqlir.RawSql{Type: pqltypes.IntT, Text: "1"}, pqltypes.IntT, nil)
	a.AddSubquery("q1", sqlir.RawSql{Type: pqltypes.Null, Text: "subquery 1"})
	b := pqlobj.NewScalarInstance(sqlir.RawSql{Type: pqltypes.IntT, Text: "2"}, pqltypes.IntT, nil)
	b.AddSubquery("q2", sqlir.RawSql{Type: pqltypes.Null, Text: "subquery 2"})

	dst := map[string]sqlir.Node{}
	pqlobj.MergeSubqueries(dst, a, b)
	assert.Len(t, dst, 2)
	assert.Contains(t, dst, "q1")
	assert.Contains(t, dst, "q2")
}
