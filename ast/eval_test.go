package ast

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/creek-lang/creek/errz"
	"github.com/creek-lang/creek/object"
	"github.com/creek-lang/creek/op"
	"github.com/creek-lang/creek/symbol"
)

func TestLiterals(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{&Void{}, "void"},
		{&Null{}, "null"},
		{&Boolean{Value: true}, "true"},
		{num(2.5), "2.5"},
		{str("hi"), `"hi"`},
		{&Identifier{Name: sym("name")}, "@name"},
		{&Vector{Items: []Node{num(1), str("a")}}, `[1, "a"]`},
		{&Map{Pairs: []Pair{{Key: str("b"), Value: num(2)}, {Key: str("a"), Value: num(1)}}}, `{"a": 1, "b": 2}`},
	}
	for _, tt := range tests {
		v, _ := run(t, tt.node)
		require.Equal(t, tt.want, v.Inspect())
	}
}

func TestOperators(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{binop(op.Add, num(12), num(5)), "17"},
		{binop(op.Sub, num(12), num(5)), "7"},
		{binop(op.Mul, num(12), num(5)), "60"},
		{binop(op.Div, num(10), num(4)), "2.5"},
		{binop(op.Mod, num(12), num(5)), "2"},
		{binop(op.Exp, num(2), num(10)), "1024"},
		{binop(op.BitAnd, num(12), num(5)), "4"},
		{binop(op.BitOr, num(12), num(5)), "13"},
		{binop(op.BitXor, num(12), num(5)), "9"},
		{binop(op.BitShiftLeft, num(1), num(4)), "16"},
		{binop(op.BitShiftRight, num(16), num(2)), "4"},
		{binop(op.BoolXor, &Boolean{Value: true}, &Boolean{Value: false}), "true"},
		{binop(op.BoolXor, &Boolean{Value: true}, num(1)), "false"},
		{binop(op.Cmp, num(1), num(2)), "-1"},
		{binop(op.Cmp, num(2), num(2)), "0"},
		{binop(op.EQ, str("a"), str("a")), "true"},
		{binop(op.NE, str("a"), str("a")), "false"},
		{binop(op.LT, num(1), num(2)), "true"},
		{binop(op.LE, num(2), num(2)), "true"},
		{binop(op.GT, num(1), num(2)), "false"},
		{binop(op.GE, num(1), num(2)), "false"},
		{&Unary{Operator: op.Negate, X: num(3)}, "-3"},
		{&Unary{Operator: op.BitNot, X: num(0)}, "-1"},
		{&Unary{Operator: op.BoolNot, X: &Null{}}, "true"},
		{binop(op.Add, str("a"), str("b")), `"ab"`},
	}
	for _, tt := range tests {
		v, _ := run(t, tt.node)
		require.Equal(t, tt.want, v.Inspect(), tt.node.Op().String())
	}
}

func TestOperatorErrors(t *testing.T) {
	e := newEnv(t)
	_, err := binop(op.Add, num(1), str("a")).Eval(e.scope)
	var langErr *object.Error
	require.ErrorAs(t, err, &langErr)
	require.Equal(t, errz.ErrType, langErr.Kind())

	_, err = binop(op.AttrGet, num(1), num(2)).Eval(e.scope)
	require.Error(t, err)

	_, err = binop(op.Add, num(1), nil).Eval(e.scope)
	require.ErrorIs(t, err, ErrNilNode)
}

func TestShortCircuit(t *testing.T) {
	e := newEnv(t)

	f := object.NewBool(false)
	v := evalIn(t, e, &And{X: &valueNode{f}, Y: &failNode{t}})
	require.Same(t, f, v)

	tr := object.NewBool(true)
	v = evalIn(t, e, &Or{X: &valueNode{tr}, Y: &failNode{t}})
	require.Same(t, tr, v)

	// The deciding operand is returned unconverted.
	zero := object.NewNumber(0)
	v = evalIn(t, e, &And{X: &valueNode{zero}, Y: &failNode{t}})
	require.Same(t, zero, v)

	s := object.NewString("yes")
	v = evalIn(t, e, &And{X: &Boolean{Value: true}, Y: &valueNode{s}})
	require.Same(t, s, v)

	v = evalIn(t, e, &Or{X: &Null{}, Y: &valueNode{s}})
	require.Same(t, s, v)
}

func TestXorAndNotAreFresh(t *testing.T) {
	e := newEnv(t)
	tr := object.NewBool(true)
	v := evalIn(t, e, &Unary{Operator: op.BoolNot, X: &Unary{Operator: op.BoolNot, X: &valueNode{tr}}})
	require.Equal(t, "true", v.Inspect())
	require.NotSame(t, tr, v)

	v = evalIn(t, e, binop(op.BoolXor, &valueNode{tr}, &Boolean{Value: false}))
	require.Equal(t, "true", v.Inspect())
	require.NotSame(t, tr, v)
}

func TestBlockScoping(t *testing.T) {
	e := newEnv(t)
	v := evalIn(t, e, &Block{Body: []Node{
		define("inner", num(1)),
		local("inner"),
	}})
	require.Equal(t, "1", v.Inspect())
	require.False(t, e.scope.Has(sym("inner")))

	v = evalIn(t, e, &BasicBlock{Body: []Node{define("flat", num(2))}})
	require.Equal(t, "2", v.Inspect())
	require.True(t, e.scope.Has(sym("flat")))

	v = evalIn(t, e, &Block{})
	require.Equal(t, "void", v.Inspect())
}

func TestVariables(t *testing.T) {
	e := newEnv(t)
	v := evalIn(t, e, assign("x", binop(op.Add, local("x"), num(1))))
	require.Equal(t, "6", v.Inspect())
	require.Equal(t, "6", evalIn(t, e, local("x")).Inspect())

	v = evalIn(t, e, &CreateVar{Name: sym("h"), Value: num(1), Global: true})
	require.Equal(t, "1", v.Inspect())
	require.True(t, e.global.Has(sym("h")))
	require.False(t, e.scope.Has(sym("h")))

	evalIn(t, e, &StoreVar{Name: sym("g"), Value: num(8), Global: true})
	require.Equal(t, "8", evalIn(t, e, &LoadVar{Name: sym("g"), Global: true}).Inspect())

	_, err := define("x", num(1)).Eval(e.scope)
	require.ErrorContains(t, err, "variable x already exists")

	_, err = local("missing").Eval(e.scope)
	require.ErrorContains(t, err, "can't find variable missing")

	// Globals are not found through the global path when bound locally.
	_, err = (&LoadVar{Name: sym("x"), Global: true}).Eval(e.scope)
	require.Error(t, err)
}

func TestLoadYieldsCopy(t *testing.T) {
	e := newEnv(t)
	evalIn(t, e, define("s", str("abc")))
	evalIn(t, e, &IndexSet{X: local("s"), Index: num(0), Value: str("x")})
	require.Equal(t, `"abc"`, evalIn(t, e, local("s")).Inspect())
}

func TestIf(t *testing.T) {
	v, _ := run(t, &If{Cond: binop(op.LT, local("x"), num(10)), Then: str("small"), Else: str("big")})
	require.Equal(t, `"small"`, v.Inspect())

	v, _ = run(t, &If{Cond: &Boolean{Value: false}, Then: str("yes")})
	require.Equal(t, "void", v.Inspect())
}

func TestSwitch(t *testing.T) {
	sw := func(cond Node) Node {
		return &Switch{
			Cond: cond,
			Cases: []Case{
				{Values: []Node{num(1), num(2)}, Body: str("low")},
				{Values: []Node{num(5)}, Body: str("five")},
			},
			Default: str("other"),
		}
	}
	v, _ := run(t, sw(num(2)))
	require.Equal(t, `"low"`, v.Inspect())
	v, _ = run(t, sw(local("x")))
	require.Equal(t, `"five"`, v.Inspect())
	v, _ = run(t, sw(num(9)))
	require.Equal(t, `"other"`, v.Inspect())

	v, _ = run(t, &Switch{Cond: num(9)})
	require.Equal(t, "void", v.Inspect())
}

func TestWhile(t *testing.T) {
	e := newEnv(t)
	evalIn(t, e, define("i", num(0)))
	v := evalIn(t, e, &While{
		Cond: binop(op.LT, local("i"), num(5)),
		Body: assign("i", binop(op.Add, local("i"), num(1))),
	})
	require.Equal(t, "5", v.Inspect())

	v = evalIn(t, e, &While{Cond: &Boolean{Value: false}, Body: &failNode{t}})
	require.Equal(t, "void", v.Inspect())
}

func TestFor(t *testing.T) {
	e := newEnv(t)
	evalIn(t, e, define("s", num(0)))
	v := evalIn(t, e, &For{
		Var:   sym("i"),
		Init:  num(0),
		Limit: num(5),
		Step:  num(1),
		Body:  assign("s", binop(op.Add, local("s"), local("i"))),
	})
	require.Equal(t, "10", v.Inspect())
	require.Equal(t, "10", evalIn(t, e, local("s")).Inspect())
	require.False(t, e.scope.Has(sym("i")))

	// The limit is evaluated on every pass.
	evalIn(t, e, define("n", num(3)))
	evalIn(t, e, define("passes", num(0)))
	evalIn(t, e, &For{
		Var:   sym("i"),
		Init:  num(0),
		Limit: local("n"),
		Step:  num(1),
		Body: &BasicBlock{Body: []Node{
			assign("n", num(1)),
			assign("passes", binop(op.Add, local("passes"), num(1))),
		}},
	})
	require.Equal(t, "1", evalIn(t, e, local("passes")).Inspect())
}

func TestForIn(t *testing.T) {
	e := newEnv(t)
	evalIn(t, e, define("s", num(0)))
	v := evalIn(t, e, &ForIn{
		Var:   sym("item"),
		Range: local("vec"),
		Body:  assign("s", binop(op.Add, local("s"), local("item"))),
	})
	require.Equal(t, "6", v.Inspect())

	_, err := (&ForIn{Var: sym("item"), Range: num(3), Body: &Void{}}).Eval(e.scope)
	require.ErrorContains(t, err, "number is not iterable")
}

func TestTry(t *testing.T) {
	// try(throw(42), catch => caught_value)
	v, _ := run(t, &Try{
		Body:    &Throw{X: num(42)},
		Binding: sym("caught_value"),
		Catch:   local("caught_value"),
	})
	require.Equal(t, "42", v.Inspect())

	v, _ = run(t, &Try{Body: num(1), Catch: &failNode{t}})
	require.Equal(t, "1", v.Inspect())

	v, _ = run(t, &Try{
		Body:    binop(op.Add, num(1), str("a")),
		Binding: sym("e"),
		Catch:   &AttrGet{X: local("e"), Attr: sym("kind")},
	})
	require.Equal(t, `"type error"`, v.Inspect())

	// The binding lives in the catch scope only.
	e := newEnv(t)
	evalIn(t, e, &Try{Body: &Throw{X: num(1)}, Binding: sym("e"), Catch: &Void{}})
	require.False(t, e.scope.Has(sym("e")))
}

func TestTryPassesHostErrors(t *testing.T) {
	e := newEnv(t)
	_, err := (&Try{Body: &Print{}, Catch: &failNode{t}}).Eval(e.scope)
	require.ErrorIs(t, err, ErrNilNode)
}

func TestUncaughtThrow(t *testing.T) {
	e := newEnv(t)
	_, err := (&Throw{X: str("boom")}).Eval(e.scope)
	var thrown *object.Thrown
	require.ErrorAs(t, err, &thrown)
	require.Equal(t, `"boom"`, thrown.Value.Inspect())
	require.Equal(t, `uncaught exception: "boom"`, err.Error())
}

func TestReturnUnwindsToFunction(t *testing.T) {
	fn := &Function{Body: &Block{Body: []Node{
		define("depth", num(1)),
		&Block{Body: []Node{
			&Block{Body: []Node{
				&If{Cond: &Boolean{Value: true}, Then: &Return{X: num(42)}},
				&Print{X: str("after return, depth 3")},
			}},
			&Print{X: str("after return, depth 2")},
		}},
		&Print{X: str("after return, depth 1")},
	}}}
	v, out := run(t, &BasicBlock{Body: []Node{
		define("f", fn),
		define("r", &Call{Fn: local("f")}),
		&Print{X: local("r")},
		str("caller continued"),
	}})
	require.Equal(t, `"caller continued"`, v.Inspect())
	require.Equal(t, "42\n", out)
}

func TestReturnInsideLoopLeavesFunction(t *testing.T) {
	fn := &Function{Body: &Block{Body: []Node{
		&Loop{Body: &Block{Body: []Node{
			&Return{X: str("from loop")},
			&Print{X: str("unreachable")},
		}}},
		&Print{X: str("after loop")},
	}}}
	v, out := run(t, &Call{Fn: fn})
	require.Equal(t, `"from loop"`, v.Inspect())
	require.Empty(t, out)
}

func TestBreakUnwindsToLoop(t *testing.T) {
	v, out := run(t, &BasicBlock{Body: []Node{
		define("r", &Loop{Body: &Block{Body: []Node{
			&Block{Body: []Node{
				&Block{Body: []Node{
					&Break{X: num(7)},
					&Print{X: str("after break, depth 3")},
				}},
				&Print{X: str("after break, depth 2")},
			}},
			&Print{X: str("after break, depth 1")},
		}}}),
		&Print{X: local("r")},
		binop(op.Add, local("r"), num(1)),
	}})
	require.Equal(t, "8", v.Inspect())
	require.Equal(t, "7\n", out)
}

func TestBreakInNestedLoop(t *testing.T) {
	e := newEnv(t)
	evalIn(t, e, define("count", num(0)))
	evalIn(t, e, &ForIn{
		Var:   sym("a"),
		Range: local("vec"),
		Body: &Loop{Body: &BasicBlock{Body: []Node{
			assign("count", binop(op.Add, local("count"), num(1))),
			&Break{X: &Null{}},
		}}},
	})
	require.Equal(t, "3", evalIn(t, e, local("count")).Inspect())
}

func TestSiblingsStopOnReturn(t *testing.T) {
	// Vector items and call arguments after a return are not evaluated.
	fn := &Function{Body: &Vector{Items: []Node{
		num(1),
		&Return{X: str("early")},
		&failNode{t},
	}}}
	v, _ := run(t, &Call{Fn: fn})
	require.Equal(t, `"early"`, v.Inspect())

	fn = &Function{Body: &Call{Fn: &Return{X: num(3)}, Args: []Node{&failNode{t}}}}
	v, _ = run(t, &Call{Fn: fn})
	require.Equal(t, "3", v.Inspect())
}

func TestCall(t *testing.T) {
	inc := &Function{Params: []symbol.Name{sym("a")}, Body: binop(op.Add, local("a"), num(1))}
	v, _ := run(t, &Call{Fn: inc, Args: []Node{num(2)}})
	require.Equal(t, "3", v.Inspect())

	_, err := (&Call{Fn: inc, Args: []Node{num(1), num(2)}}).Eval(newEnv(t).scope)
	require.ErrorContains(t, err, "expected 1, passed 2")

	v, _ = run(t, &Try{
		Body:    &Call{Fn: inc},
		Binding: sym("e"),
		Catch:   &AttrGet{X: local("e"), Attr: sym("message")},
	})
	require.Equal(t, `"wrong number of arguments: expected 1, passed 0"`, v.Inspect())

	_, err = (&Call{Fn: num(1)}).Eval(newEnv(t).scope)
	require.ErrorContains(t, err, "number does not support call")
}

func TestVariadicCall(t *testing.T) {
	rest := &Function{
		Params:   []symbol.Name{sym("a"), sym("rest")},
		Variadic: true,
		Body:     &Vector{Items: []Node{local("a"), local("rest")}},
	}
	v, _ := run(t, &Call{Fn: rest, Args: []Node{num(0)}, Vararg: local("vec")})
	require.Equal(t, "[0, [1, 2, 3]]", v.Inspect())

	v, _ = run(t, &Call{Fn: rest, Args: []Node{num(0), num(1)}})
	require.Equal(t, "[0, [1]]", v.Inspect())

	_, err := (&Call{Fn: rest, Vararg: num(1)}).Eval(newEnv(t).scope)
	require.ErrorContains(t, err, "cannot spread number")
}

func TestClosureCapturesDefiningScope(t *testing.T) {
	e := newEnv(t)
	evalIn(t, e, define("make", &Function{Body: &BasicBlock{Body: []Node{
		define("secret", num(99)),
		&Function{Body: local("secret")},
	}}}))
	evalIn(t, e, define("get", &Call{Fn: local("make")}))

	// A caller binding of the same name is not visible to the function.
	caller := &Function{Body: &BasicBlock{Body: []Node{
		define("secret", num(1)),
		&Call{Fn: local("get")},
	}}}
	require.Equal(t, "99", evalIn(t, e, &Call{Fn: caller}).Inspect())
}

func TestCallMethod(t *testing.T) {
	v, _ := run(t, &CallMethod{Object: num(1), Method: sym("sum"), Args: []Node{num(2), num(3)}})
	require.Equal(t, "6", v.Inspect())

	v, _ = run(t, &CallMethod{Object: num(1), Method: sym("sum"), Vararg: local("vec")})
	require.Equal(t, "7", v.Inspect())

	_, err := (&CallMethod{Object: num(1), Method: sym("summ")}).Eval(newEnv(t).scope)
	require.ErrorContains(t, err, "number has no method summ")
	require.ErrorContains(t, err, "did you mean 'sum'?")

	_, err = (&CallMethod{Object: str("s"), Method: sym("sum")}).Eval(newEnv(t).scope)
	require.ErrorContains(t, err, "string has no methods")
}

func TestCallMethodResolvesBeforeArguments(t *testing.T) {
	_, err := (&CallMethod{
		Object: num(1),
		Method: sym("missing"),
		Args:   []Node{&failNode{t}},
		Vararg: &failNode{t},
	}).Eval(newEnv(t).scope)
	require.ErrorContains(t, err, "number has no method missing")
}

func TestClass(t *testing.T) {
	self := sym("self")
	point := &Class{
		Name: sym("Point"),
		Methods: []Method{
			{
				Name:   sym("init"),
				Params: []symbol.Name{self, sym("x")},
				Body:   &AttrSet{X: local("self"), Attr: sym("x"), Value: local("x")},
			},
			{
				Name:   sym("double"),
				Params: []symbol.Name{self},
				Body:   binop(op.Mul, &AttrGet{X: local("self"), Attr: sym("x")}, num(2)),
			},
		},
	}
	v, _ := run(t, &BasicBlock{Body: []Node{
		define("Point", point),
		define("p", &Call{Fn: local("Point"), Args: []Node{num(4)}}),
		&CallMethod{Object: local("p"), Method: sym("double")},
	}})
	require.Equal(t, "8", v.Inspect())

	sub := &Class{
		Name:    sym("Sub"),
		Super:   local("Point"),
		Methods: []Method{{Name: sym("triple"), Params: []symbol.Name{self}, Body: num(0)}},
	}
	v, _ = run(t, &BasicBlock{Body: []Node{
		define("Point", point),
		define("Sub", sub),
		&CallMethod{Object: &Call{Fn: local("Sub"), Args: []Node{num(5)}}, Method: sym("double")},
	}})
	require.Equal(t, "10", v.Inspect())

	_, err := (&Class{Name: sym("Bad"), Super: num(1)}).Eval(newEnv(t).scope)
	require.ErrorContains(t, err, "super class of Bad must be a class")
}

func TestIndexAndAttr(t *testing.T) {
	e := newEnv(t)
	require.Equal(t, "2", evalIn(t, e, &IndexGet{X: local("vec"), Index: num(1)}).Inspect())
	require.Equal(t, "9", evalIn(t, e, &IndexSet{X: local("vec"), Index: num(1), Value: num(9)}).Inspect())
	// Vectors share storage between copies.
	require.Equal(t, "[1, 9, 3]", evalIn(t, e, local("vec")).Inspect())

	evalIn(t, e, define("m", &Map{}))
	evalIn(t, e, &AttrSet{X: local("m"), Attr: sym("key"), Value: str("v")})
	require.Equal(t, `"v"`, evalIn(t, e, &AttrGet{X: local("m"), Attr: sym("key")}).Inspect())
	require.Equal(t, `"v"`, evalIn(t, e, &IndexGet{X: local("m"), Index: &Identifier{Name: sym("key")}}).Inspect())
}

func TestPrint(t *testing.T) {
	v, out := run(t, &Print{X: str("hi")})
	require.Equal(t, `"hi"`, v.Inspect())
	require.Equal(t, "\"hi\"\n", out)
}

func TestDynamicLoad(t *testing.T) {
	v, _ := run(t, &DynVar{Name: sym("version"), Library: "libtest"})
	require.Equal(t, `"libtest.version"`, v.Inspect())

	v, _ = run(t, &Call{
		Fn:   &DynFunc{Params: []symbol.Name{sym("a"), sym("b")}, Library: "libtest", Func: "count"},
		Args: []Node{num(1), num(2)},
	})
	require.Equal(t, "2", v.Inspect())

	v, _ = run(t, &CallMethod{
		Object: &Call{Fn: &DynClass{
			Name:    sym("File"),
			Methods: []DynMethod{{Name: sym("read"), Params: []symbol.Name{sym("self")}}},
			Library: "libtest",
		}},
		Method: sym("read"),
	})
	require.Equal(t, `"File.read"`, v.Inspect())

	v, _ = run(t, &Try{
		Body:    &DynVar{Name: sym("version"), Library: "missing"},
		Binding: sym("e"),
		Catch:   &AttrGet{X: local("e"), Attr: sym("kind")},
	})
	require.Equal(t, `"native error"`, v.Inspect())

	scope := object.NewGlobalScope(nil, nil).NewChild()
	_, err := (&DynVar{Name: sym("version"), Library: "libtest"}).Eval(scope)
	require.ErrorContains(t, err, "native loading is not enabled")
}

func TestNilChildren(t *testing.T) {
	e := newEnv(t)
	nodes := []Node{
		&If{Cond: &Boolean{Value: true}},
		&Return{},
		&Call{},
		&Function{},
		&CreateVar{Name: sym("z")},
	}
	for _, n := range nodes {
		_, err := n.Eval(e.scope)
		require.True(t, errors.Is(err, ErrNilNode), n.Op().String())
	}
}
