package symbol

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapCompactNumbering(t *testing.T) {
	m := NewMap()
	x := Intern("x")
	y := Intern("y")
	require.Equal(t, int32(0), m.ID(x))
	require.Equal(t, int32(1), m.ID(y))
	require.Equal(t, int32(0), m.ID(x))
	require.Equal(t, 2, m.Len())
	require.Equal(t, []Entry{{0, "x"}, {1, "y"}}, m.Entries())
}

func TestMapGlobalIdentity(t *testing.T) {
	// Two files number the same names differently.
	a := NewMap()
	require.Nil(t, a.Register(0, "alpha"))
	require.Nil(t, a.Register(1, "beta"))
	b := NewMap()
	require.Nil(t, b.Register(7, "beta"))
	require.Nil(t, b.Register(3, "alpha"))

	fromA, err := a.Global(1)
	require.Nil(t, err)
	fromB, err := b.Global(7)
	require.Nil(t, err)
	require.Equal(t, fromA, fromB)
	require.Equal(t, Intern("beta"), fromA)
}

func TestMapRegisterDuplicate(t *testing.T) {
	m := NewMap()
	require.Nil(t, m.Register(0, "a"))
	require.NotNil(t, m.Register(0, "b"))
	require.NotNil(t, m.Register(1, "a"))
}

func TestMapUnknown(t *testing.T) {
	m := NewMap()
	_, err := m.Name(4)
	require.True(t, errors.Is(err, ErrUnknownSymbol))
	_, err = m.Global(4)
	require.True(t, errors.Is(err, ErrUnknownSymbol))
}

func TestMapIDSkipsRegistered(t *testing.T) {
	m := NewMap()
	require.Nil(t, m.Register(0, "taken"))
	require.Equal(t, int32(1), m.ID(Intern("fresh")))
}
