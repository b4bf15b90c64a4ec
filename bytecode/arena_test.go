package bytecode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArenaInternStable(t *testing.T) {
	arena := NewArena()
	code := NewCode(CodeParams{Name: "a"})

	h := arena.Intern(code)
	require.Equal(t, h, arena.Intern(code))
	require.Equal(t, 1, arena.Len())
	require.Same(t, code, arena.At(h))
}

func TestArenaIdentityNotStructure(t *testing.T) {
	arena := NewArena()
	a := NewCode(CodeParams{ID: "same", Name: "same"})
	b := NewCode(CodeParams{ID: "same", Name: "same"})

	ha := arena.Intern(a)
	hb := arena.Intern(b)
	require.NotEqual(t, ha, hb)
	require.Equal(t, 2, arena.Len())
}

func TestArenaLookup(t *testing.T) {
	arena := NewArena()
	code := NewCode(CodeParams{Name: "a"})

	_, ok := arena.Lookup(code)
	require.False(t, ok)

	h := arena.Intern(code)
	got, ok := arena.Lookup(code)
	require.True(t, ok)
	require.Equal(t, h, got)
}

func TestArenaAtOutOfRange(t *testing.T) {
	arena := NewArena()
	require.Nil(t, arena.At(0))
	require.Nil(t, arena.At(-1))
}
