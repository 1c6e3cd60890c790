package pqltypes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/preqlc/pqltypes"
)

func TestApplyInnerType_ListAndOptional(t *testing.T) {
	res, err := pqltypes.ApplyInnerType(pqltypes.ListType{Elem: pqltypes.AnyT}, pqltypes.StringT)
	require.NoError(t, err)
	assert.Equal(t, pqltypes.ListType{Elem: pqltypes.StringT}, res)

	res, err = pqltypes.ApplyInnerType(pqltypes.OptionalType{Inner: pqltypes.AnyT}, pqltypes.IntT)
	require.NoError(t, err)
	assert.Equal(t, pqltypes.OptionalType{Inner: pqltypes.IntT}, res)
}

func TestApplyInnerType_RejectsNonContainer(t *testing.T) {
	_, err := pqltypes.ApplyInnerType(pqltypes.IntT, pqltypes.StringT)
	require.Error(t, err)
}
