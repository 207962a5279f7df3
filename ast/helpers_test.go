package ast

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/creek-lang/creek/bytecode"
	"github.com/creek-lang/creek/object"
	"github.com/creek-lang/creek/op"
	"github.com/creek-lang/creek/symbol"
)

var errNotEncodable = errors.New("test node cannot be encoded")

// valueNode yields a fixed value so tests can check identity.
type valueNode struct {
	v object.Value
}

func (x *valueNode) Op() op.Code      { return op.Nop }
func (x *valueNode) Children() []Node { return nil }

func (x *valueNode) Eval(scope *object.Scope) (object.Value, error) {
	return x.v, nil
}

func (x *valueNode) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	return nil, errNotEncodable
}

// failNode fails the test when evaluated.
type failNode struct {
	t *testing.T
}

func (x *failNode) Op() op.Code      { return op.Nop }
func (x *failNode) Children() []Node { return nil }

func (x *failNode) Eval(scope *object.Scope) (object.Value, error) {
	x.t.Fatal("node should not have been evaluated")
	return nil, nil
}

func (x *failNode) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	return nil, errNotEncodable
}

type testLoader struct{}

func (testLoader) LoadFunc(lib, name string) (object.BuiltinFunction, error) {
	if lib != "libtest" {
		return nil, fmt.Errorf("library %q not found", lib)
	}
	return func(args []object.Value) (object.Value, error) {
		return object.NewNumber(float64(len(args))), nil
	}, nil
}

func (testLoader) LoadMethod(lib, class, method string) (object.BuiltinFunction, error) {
	if lib != "libtest" {
		return nil, fmt.Errorf("library %q not found", lib)
	}
	return func(args []object.Value) (object.Value, error) {
		return object.NewString(class + "." + method), nil
	}, nil
}

func (testLoader) LoadVar(lib, name string) (object.Value, error) {
	if lib != "libtest" {
		return nil, fmt.Errorf("library %q not found", lib)
	}
	return object.NewString(lib + "." + name), nil
}

type env struct {
	global *object.GlobalScope
	scope  *object.Scope
	out    *bytes.Buffer
}

// newEnv returns a scope with x = 5 and vec = [1, 2, 3] bound locally,
// g = 7 bound globally, and a "sum" method installed on numbers.
func newEnv(t *testing.T) *env {
	t.Helper()
	out := &bytes.Buffer{}
	global := object.NewGlobalScope(out, testLoader{})
	_, err := global.Define(sym("g"), object.NewNumber(7))
	require.NoError(t, err)

	numbers := object.NewClass(sym("number"), nil)
	numbers.Define(sym("sum"), object.NewBuiltin("sum", -1, false, func(args []object.Value) (object.Value, error) {
		var total float64
		for _, arg := range args {
			n, ok := arg.(*object.Number)
			if !ok {
				return nil, fmt.Errorf("not a number: %s", arg.Inspect())
			}
			total += n.Value()
		}
		return object.NewNumber(total), nil
	}))
	global.SetTypeClass(object.NUMBER, numbers)

	scope := global.NewChild()
	_, err = scope.Define(sym("x"), object.NewNumber(5))
	require.NoError(t, err)
	_, err = scope.Define(sym("vec"), object.NewVector([]object.Value{
		object.NewNumber(1), object.NewNumber(2), object.NewNumber(3),
	}))
	require.NoError(t, err)
	return &env{global: global, scope: scope, out: out}
}

func sym(s string) symbol.Name {
	return symbol.Intern(s)
}

func num(f float64) *Number {
	return &Number{Value: f}
}

func str(s string) *String {
	return &String{Value: s}
}

func local(name string) *LoadVar {
	return &LoadVar{Name: sym(name)}
}

func define(name string, value Node) *CreateVar {
	return &CreateVar{Name: sym(name), Value: value}
}

func assign(name string, value Node) *StoreVar {
	return &StoreVar{Name: sym(name), Value: value}
}

func binop(code op.Code, x, y Node) *Binary {
	return &Binary{Operator: code, X: x, Y: y}
}

func evalIn(t *testing.T, e *env, n Node) object.Value {
	t.Helper()
	v, err := n.Eval(e.scope)
	require.NoError(t, err)
	return v
}

func run(t *testing.T, n Node) (object.Value, string) {
	t.Helper()
	e := newEnv(t)
	v := evalIn(t, e, n)
	return v, e.out.String()
}

func roundTrip(t *testing.T, n Node) Node {
	t.Helper()
	m := symbol.NewMap()
	buf, err := Encode(n, m)
	require.NoError(t, err)
	decoded, err := Decode(bytecode.NewBuffer(buf.Bytes()), m)
	require.NoError(t, err)
	return decoded
}
