package builtins

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/creek-lang/creek/object"
	"github.com/creek-lang/creek/symbol"
)

func invoke(t *testing.T, g *object.GlobalScope, recv object.Value, name string, args ...object.Value) (object.Value, error) {
	t.Helper()
	m, err := g.Method(recv, symbol.Intern(name))
	if err != nil {
		return nil, err
	}
	return m.Call(append([]object.Value{recv}, args...))
}

func installed(t *testing.T) *object.GlobalScope {
	g := object.NewGlobalScope(nil, nil)
	require.NoError(t, Install(g))
	return g
}

func TestInstallDefinesGlobals(t *testing.T) {
	g := installed(t)
	v, err := g.Lookup(symbol.Intern("len"))
	require.NoError(t, err)
	require.Equal(t, "builtin(len)", v.Get().Inspect())

	require.Error(t, Install(g), "installing twice redefines globals")
}

func TestInstallWritesToStdout(t *testing.T) {
	var out bytes.Buffer
	g := object.NewGlobalScope(&out, nil)
	require.NoError(t, Install(g))
	v, err := g.Lookup(symbol.Intern("print"))
	require.NoError(t, err)
	_, err = v.Get().Call([]object.Value{object.NewString("hi"), object.NewNumber(2)})
	require.NoError(t, err)
	require.Equal(t, "hi2", out.String())
}

func TestStringMethods(t *testing.T) {
	g := installed(t)
	s := object.NewString("hello world")
	tests := []struct {
		name string
		args []object.Value
		want string
	}{
		{"size", nil, "11"},
		{"substr", []object.Value{object.NewNumber(6), object.NewNumber(100)}, `"world"`},
		{"find", []object.Value{object.NewString("o")}, "4"},
		{"find", []object.Value{object.NewString("z")}, "-1"},
		{"upper", nil, `"HELLO WORLD"`},
		{"split", []object.Value{object.NewString(" ")}, `["hello", "world"]`},
	}
	for _, tt := range tests {
		v, err := invoke(t, g, s, tt.name, tt.args...)
		require.NoError(t, err, tt.name)
		require.Equal(t, tt.want, v.Inspect(), tt.name)
	}

	v, err := invoke(t, g, object.NewString("42"), "to_number")
	require.NoError(t, err)
	require.Equal(t, "42", v.Inspect())

	_, err = invoke(t, g, s, "substr", object.NewNumber(20), object.NewNumber(1))
	require.ErrorContains(t, err, "out of range")

	_, err = invoke(t, g, s, "sise")
	require.ErrorContains(t, err, "did you mean 'size'?")
}

func TestVectorMethods(t *testing.T) {
	g := installed(t)
	v := nums(1, 2)

	_, err := invoke(t, g, v, "push", object.NewNumber(3))
	require.NoError(t, err)
	require.Equal(t, "[1, 2, 3]", v.Inspect())

	_, err = invoke(t, g, v, "insert", object.NewNumber(0), object.NewNumber(0))
	require.NoError(t, err)
	require.Equal(t, "[0, 1, 2, 3]", v.Inspect())

	popped, err := invoke(t, g, v, "pop")
	require.NoError(t, err)
	require.Equal(t, "3", popped.Inspect())

	erased, err := invoke(t, g, v, "erase", object.NewNumber(0))
	require.NoError(t, err)
	require.Equal(t, "0", erased.Inspect())
	require.Equal(t, "[1, 2]", v.Inspect())

	idx, err := invoke(t, g, v, "find", object.NewNumber(2))
	require.NoError(t, err)
	require.Equal(t, "1", idx.Inspect())

	_, err = invoke(t, g, v, "clear")
	require.NoError(t, err)
	_, err = invoke(t, g, v, "pop")
	require.ErrorContains(t, err, "pop from empty vector")
}

func TestMapMethods(t *testing.T) {
	g := installed(t)
	m := object.NewMap()
	require.NoError(t, m.Set(object.NewString("a"), object.NewNumber(1)))

	has, err := invoke(t, g, m, "has_key", object.NewString("a"))
	require.NoError(t, err)
	require.Equal(t, "true", has.Inspect())

	size, err := invoke(t, g, m, "size")
	require.NoError(t, err)
	require.Equal(t, "1", size.Inspect())

	erased, err := invoke(t, g, m, "erase", object.NewString("a"))
	require.NoError(t, err)
	require.Equal(t, "true", erased.Inspect())
	require.Equal(t, 0, m.Len())
}

func TestNumberMethods(t *testing.T) {
	g := installed(t)
	n := object.NewNumber(-2.5)
	for name, want := range map[string]string{
		"to_string": `"-2.5"`,
		"floor":     "-3",
		"ceil":      "-2",
		"abs":       "2.5",
	} {
		v, err := invoke(t, g, n, name)
		require.NoError(t, err, name)
		require.Equal(t, want, v.Inspect(), name)
	}
}
