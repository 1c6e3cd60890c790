package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ha1tch/preqlc/dialect"
)

func TestDefaultConfig_OptimizeOnByDefault(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Optimize)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.PrintSQL)
	assert.False(t, cfg.Cache)
}

func TestNewState_NilTraceFallsBackToNop(t *testing.T) {
	s := NewState(dialect.SQLite, DefaultConfig(), nil, nil)
	assert.IsType(t, NopTrace{}, s.Trace)
}

func TestUniqueName_MonotonicAndPrefixed(t *testing.T) {
	s := NewState(dialect.SQLite, DefaultConfig(), nil, nil)
	a := s.UniqueName("list_")
	b := s.UniqueName("list_")
	assert.NotEqual(t, a, b)
	assert.Equal(t, "list__1", a)
	assert.Equal(t, "list__2", b)
}

func TestDialect_ResolvesFromDBTarget(t *testing.T) {
	s := NewState(dialect.PostgreSQL, DefaultConfig(), nil, nil)
	assert.Equal(t, dialect.PostgreSQL, s.Dialect().Target())
}
