package pqltypes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/preqlc/pqltypes"
)

func TestEqual_Primitives(t *testing.T) {
	assert.True(t, pqltypes.Equal(pqltypes.IntT, pqltypes.IntT))
	assert.False(t, pqltypes.Equal(pqltypes.IntT, pqltypes.FloatT))
	assert.False(t, pqltypes.Equal(pqltypes.IntT, pqltypes.StringT))
}

func TestEqual_ListAndOptional(t *testing.T) {
	a := pqltypes.ListType{Elem: pqltypes.IntT}
	b := pqltypes.ListType{Elem: pqltypes.IntT}
	c := pqltypes.ListType{Elem: pqltypes.StringT}
	assert.True(t, pqltypes.Equal(a, b))
	assert.False(t, pqltypes.Equal(a, c))

	o1 := pqltypes.OptionalType{Inner: pqltypes.IntT}
	o2 := pqltypes.OptionalType{Inner: pqltypes.IntT}
	assert.True(t, pqltypes.Equal(o1, o2))
	assert.False(t, pqltypes.Equal(o1, a))
}

func TestEqual_StructByShape(t *testing.T) {
	s1, err := pqltypes.NewStructType("s", []pqltypes.Field{{Name: "a", Type: pqltypes.IntT}})
	require.NoError(t, err)
	s2, err := pqltypes.NewStructType("s", []pqltypes.Field{{Name: "a", Type: pqltypes.IntT}})
	require.NoError(t, err)
	s3, err := pqltypes.NewStructType("s", []pqltypes.Field{{Name: "a", Type: pqltypes.StringT}})
	require.NoError(t, err)
	assert.True(t, pqltypes.Equal(*s1, *s2))
	assert.False(t, pqltypes.Equal(*s1, *s3))
}

func TestEqual_TableAndRowByName(t *testing.T) {
	t1, err := pqltypes.NewTableType("users", []pqltypes.Field{{Name: "id", Type: pqltypes.IdType{}}}, false, nil)
	require.NoError(t, err)
	t2, err := pqltypes.NewTableType("users", []pqltypes.Field{{Name: "name", Type: pqltypes.StringT}}, false, nil)
	require.NoError(t, err)
	// Name-only equality: differing columns don't matter once names match.
	assert.True(t, pqltypes.Equal(*t1, *t2))

	r1 := pqltypes.RowType{Row: t1}
	r2 := pqltypes.RowType{Row: t2}
	assert.True(t, pqltypes.Equal(r1, r2))
}

func TestEffectiveType_StripsWrappers(t *testing.T) {
	wrapped := pqltypes.Aggregated{Inner: pqltypes.OptionalType{Inner: pqltypes.DatumColumn{Inner: pqltypes.IntT}}}
	assert.Equal(t, pqltypes.IntT, pqltypes.EffectiveType(wrapped))
	assert.Equal(t, pqltypes.StringT, pqltypes.EffectiveType(pqltypes.StringT))
}
