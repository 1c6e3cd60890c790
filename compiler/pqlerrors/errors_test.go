package pqlerrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/preqlc/compiler/pqlerrors"
	"github.com/ha1tch/preqlc/pqlast"
)

func TestNew_FormatsMessage(t *testing.T) {
	err := pqlerrors.New(pqlerrors.TypeError, pqlast.Meta{Line: 3}, "bad type: %s", "int")
	assert.Equal(t, pqlerrors.TypeError, err.Kind)
	assert.Equal(t, "bad type: int", err.Message)
	assert.Nil(t, err.Cause)
	assert.Contains(t, err.Error(), "TypeError")
	assert.Contains(t, err.Error(), "bad type: int")
}

func TestWrap_PreservesCauseAndReplacesRegion(t *testing.T) {
	cause := errors.New("underlying stdlib failure")
	outer := pqlast.Meta{Line: 10}
	err := pqlerrors.Wrap(pqlerrors.TypeError, outer, cause)

	assert.Equal(t, outer, err.Meta)
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.ErrorIs(t, err, cause)
}

func TestIsInsufficientAccessLevel(t *testing.T) {
	err := pqlerrors.New(pqlerrors.InsufficientAccessLevel, pqlast.Meta{}, "no value bound")
	assert.True(t, pqlerrors.IsInsufficientAccessLevel(err))

	other := pqlerrors.New(pqlerrors.TypeError, pqlast.Meta{}, "not this one")
	assert.False(t, pqlerrors.IsInsufficientAccessLevel(other))

	assert.False(t, pqlerrors.IsInsufficientAccessLevel(fmt.Errorf("plain error")))
}

func TestErrorsAs_ExtractsKind(t *testing.T) {
	raised := error(pqlerrors.New(pqlerrors.SyntaxError, pqlast.Meta{}, "bad ellipsis"))
	var target *pqlerrors.Error
	require.True(t, errors.As(raised, &target))
	assert.Equal(t, pqlerrors.SyntaxError, target.Kind)
}
