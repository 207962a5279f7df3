package object

import (
	"errors"
	"testing"

	"github.com/creek-lang/creek/errz"
	"github.com/creek-lang/creek/symbol"
	"github.com/stretchr/testify/require"
)

func TestUnsupportedOperation(t *testing.T) {
	_, err := NewNull().Add(num(1))
	var langErr *Error
	require.True(t, errors.As(err, &langErr))
	require.Equal(t, errz.ErrUnsupported, langErr.Kind())
	require.Equal(t, "unsupported operation: null does not support add", err.Error())

	_, err = NewBool(true).Call(nil)
	require.Equal(t, "unsupported operation: bool does not support call", err.Error())
}

func TestBoolValues(t *testing.T) {
	tests := []struct {
		value Value
		want  bool
	}{
		{NewVoid(), false},
		{NewNull(), false},
		{NewBool(true), true},
		{NewBool(false), false},
		{NewString(""), true},
		{NewVector(nil), true},
		{NewMap(), true},
		{NewIdentifier(symbol.Intern("x")), true},
	}
	for _, tt := range tests {
		got, err := tt.value.Bool()
		require.Nil(t, err)
		require.Equal(t, tt.want, got, tt.value.Inspect())
	}
}

func TestBoolCompare(t *testing.T) {
	c, err := NewBool(false).Compare(NewBool(true))
	require.Nil(t, err)
	require.Equal(t, -1, c)
	require.True(t, Equal(NewBool(true), NewBool(true)))
}

func TestStringOps(t *testing.T) {
	s, err := NewString("ab").Add(NewString("cd"))
	require.Nil(t, err)
	require.Equal(t, "abcd", s.(*String).Value())

	s, err = NewString("ab").Mul(num(2.5))
	require.Nil(t, err)
	require.Equal(t, "ababa", s.(*String).Value())

	s, err = NewString("hello").GetIndex(num(-1))
	require.Nil(t, err)
	require.Equal(t, "o", s.(*String).Value())

	_, err = NewString("hi").GetIndex(num(5))
	require.NotNil(t, err)

	str := NewString("cat")
	_, err = str.SetIndex(num(0), NewString("b"))
	require.Nil(t, err)
	require.Equal(t, "bat", str.Value())
	require.Equal(t, `"bat"`, str.Inspect())
}

func TestIdentifier(t *testing.T) {
	id := NewIdentifier(symbol.Intern("point"))
	require.Equal(t, "@point", id.Inspect())
	require.True(t, Equal(id, NewIdentifier(symbol.Intern("point"))))
}

func TestVectorSharesOnCopy(t *testing.T) {
	v := NewVector([]Value{num(1), num(2)})
	alias := v.Copy().(*Vector)
	_, err := alias.SetIndex(num(0), num(10))
	require.Nil(t, err)
	require.Equal(t, "[10, 2]", v.Inspect())

	got, err := v.GetIndex(num(-1))
	require.Nil(t, err)
	require.Equal(t, 2.0, got.(*Number).Value())

	_, err = v.GetIndex(num(2))
	require.NotNil(t, err)
	_, err = v.GetIndex(NewString("0"))
	require.NotNil(t, err)
}

func TestVectorMutation(t *testing.T) {
	v := NewVector(nil)
	v.Append(num(1))
	v.Append(num(3))
	require.Nil(t, v.Insert(1, num(2)))
	require.Equal(t, "[1, 2, 3]", v.Inspect())
	item, err := v.Remove(0)
	require.Nil(t, err)
	require.Equal(t, "1", item.Inspect())
	require.Equal(t, 2, v.Len())
	v.Clear()
	require.Equal(t, "[]", v.Inspect())
}

func TestVectorCompare(t *testing.T) {
	a := NewVector([]Value{num(1), num(2)})
	b := NewVector([]Value{num(1), num(3)})
	c := NewVector([]Value{num(1)})
	cmp, err := a.Compare(b)
	require.Nil(t, err)
	require.Equal(t, -1, cmp)
	cmp, err = a.Compare(c)
	require.Nil(t, err)
	require.Equal(t, 1, cmp)
}

func TestMap(t *testing.T) {
	m := NewMap()
	_, err := m.SetIndex(NewString("b"), num(2))
	require.Nil(t, err)
	_, err = m.SetIndex(NewString("a"), num(1))
	require.Nil(t, err)
	_, err = m.SetIndex(num(5), NewNull())
	require.Nil(t, err)
	require.Equal(t, `{5: null, "a": 1, "b": 2}`, m.Inspect())

	v, err := m.GetIndex(NewString("a"))
	require.Nil(t, err)
	require.Equal(t, 1.0, v.(*Number).Value())

	_, err = m.GetIndex(NewString("zz"))
	require.Equal(t, `value error: key not found: "zz"`, err.Error())

	deleted, err := m.Delete(NewString("b"))
	require.Nil(t, err)
	require.True(t, deleted)
	require.Equal(t, 2, m.Len())

	alias := m.Copy().(*Map)
	alias.Clear()
	require.Equal(t, 0, m.Len())
}

func TestMapAttrUsesIdentifierKeys(t *testing.T) {
	m := NewMap()
	x := symbol.Intern("x")
	_, err := m.SetAttr(x, num(9))
	require.Nil(t, err)
	v, err := m.GetIndex(NewIdentifier(x))
	require.Nil(t, err)
	require.Equal(t, "9", v.Inspect())
	v, err = m.GetAttr(x)
	require.Nil(t, err)
	require.Equal(t, "9", v.Inspect())
}

func TestErrorValue(t *testing.T) {
	e := ValueErrorf("bad %d", 3)
	require.Equal(t, "value error: bad 3", e.Error())
	require.Equal(t, `error("value error: bad 3")`, e.Inspect())
	msg, err := e.GetAttr(symbol.Intern("message"))
	require.Nil(t, err)
	require.Equal(t, "bad 3", msg.(*String).Value())
	kind, err := e.GetAttr(symbol.Intern("kind"))
	require.Nil(t, err)
	require.Equal(t, "value error", kind.(*String).Value())
}

func TestCatch(t *testing.T) {
	v, ok := Catch(&Thrown{Value: num(42)})
	require.True(t, ok)
	require.Equal(t, "42", v.Inspect())

	langErr := NameErrorf("missing")
	v, ok = Catch(langErr)
	require.True(t, ok)
	require.Same(t, langErr, v)

	_, ok = Catch(errors.New("disk on fire"))
	require.False(t, ok)
}

func TestWrapError(t *testing.T) {
	plain := errors.New("boom")
	wrapped := WrapError(plain)
	var langErr *Error
	require.True(t, errors.As(wrapped, &langErr))
	require.Equal(t, errz.ErrNative, langErr.Kind())
	require.True(t, errors.Is(wrapped, plain))

	thrown := &Thrown{Value: NewNull()}
	require.Same(t, thrown, WrapError(thrown))
	require.Nil(t, WrapError(nil))

	exit := &ExitError{Code: 3}
	require.Same(t, exit, WrapError(exit))
	_, ok := Catch(exit)
	require.False(t, ok)
	require.Equal(t, "exit status 3", exit.Error())
}
