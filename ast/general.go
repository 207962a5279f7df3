package ast

import (
	"github.com/creek-lang/creek/bytecode"
	"github.com/creek-lang/creek/object"
	"github.com/creek-lang/creek/op"
	"github.com/creek-lang/creek/symbol"
)

// spread evaluates a variadic argument and appends copies of its items.
func spread(scope *object.Scope, args []object.Value, n Node) ([]object.Value, object.Value, bool, error) {
	v, stop, err := eval(scope, n)
	if stop {
		return nil, v, true, err
	}
	iter, ok := v.(object.Iterable)
	if !ok {
		return nil, nil, true, object.TypeErrorf("cannot spread %s into arguments", v.Type())
	}
	for _, item := range iter.Items() {
		args = append(args, item.Copy())
	}
	return args, nil, false, nil
}

// Call invokes Fn with Args. When Vararg is set its items are passed as
// additional trailing arguments and the node is encoded as a variadic call.
type Call struct {
	Fn     Node
	Args   []Node
	Vararg Node
}

func (x *Call) Op() op.Code {
	if x.Vararg != nil {
		return op.VariadicCall
	}
	return op.Call
}

func (x *Call) Children() []Node {
	nodes := append([]Node{x.Fn}, x.Args...)
	if x.Vararg != nil {
		nodes = append(nodes, x.Vararg)
	}
	return nodes
}

func (x *Call) Eval(scope *object.Scope) (object.Value, error) {
	fn, stop, err := eval(scope, x.Fn)
	if stop {
		return fn, err
	}
	args, last, stop, err := evalAll(scope, x.Args)
	if stop {
		return last, err
	}
	if x.Vararg != nil {
		args, last, stop, err = spread(scope, args, x.Vararg)
		if stop {
			return last, err
		}
	}
	return fn.Call(args)
}

func (x *Call) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(x.Op(), m)
	e.node(x.Fn)
	e.nodes(x.Args)
	if x.Vararg != nil {
		e.node(x.Vararg)
	}
	return e.done()
}

// CallMethod resolves Method on the value of Object and invokes it with
// the object as the first argument.
type CallMethod struct {
	Object Node
	Method symbol.Name
	Args   []Node
	Vararg Node
}

func (x *CallMethod) Op() op.Code {
	if x.Vararg != nil {
		return op.VariadicCallMethod
	}
	return op.CallMethod
}

func (x *CallMethod) Children() []Node {
	nodes := append([]Node{x.Object}, x.Args...)
	if x.Vararg != nil {
		nodes = append(nodes, x.Vararg)
	}
	return nodes
}

func (x *CallMethod) Eval(scope *object.Scope) (object.Value, error) {
	obj, stop, err := eval(scope, x.Object)
	if stop {
		return obj, err
	}
	method, err := scope.Global().Method(obj, x.Method)
	if err != nil {
		return nil, err
	}
	args, last, stop, err := evalAll(scope, x.Args)
	if stop {
		return last, err
	}
	if x.Vararg != nil {
		args, last, stop, err = spread(scope, args, x.Vararg)
		if stop {
			return last, err
		}
	}
	return method.Call(append([]object.Value{obj}, args...))
}

func (x *CallMethod) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(x.Op(), m)
	e.node(x.Object)
	e.name(x.Method)
	e.nodes(x.Args)
	if x.Vararg != nil {
		e.node(x.Vararg)
	}
	return e.done()
}

// IndexGet yields X[Index].
type IndexGet struct {
	X     Node
	Index Node
}

func (x *IndexGet) Op() op.Code      { return op.IndexGet }
func (x *IndexGet) Children() []Node { return []Node{x.X, x.Index} }

func (x *IndexGet) Eval(scope *object.Scope) (object.Value, error) {
	obj, stop, err := eval(scope, x.X)
	if stop {
		return obj, err
	}
	idx, stop, err := eval(scope, x.Index)
	if stop {
		return idx, err
	}
	return obj.GetIndex(idx)
}

func (x *IndexGet) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.IndexGet, m)
	e.node(x.X)
	e.node(x.Index)
	return e.done()
}

// IndexSet assigns X[Index] = Value and yields the assigned value.
type IndexSet struct {
	X     Node
	Index Node
	Value Node
}

func (x *IndexSet) Op() op.Code      { return op.IndexSet }
func (x *IndexSet) Children() []Node { return []Node{x.X, x.Index, x.Value} }

func (x *IndexSet) Eval(scope *object.Scope) (object.Value, error) {
	obj, stop, err := eval(scope, x.X)
	if stop {
		return obj, err
	}
	idx, stop, err := eval(scope, x.Index)
	if stop {
		return idx, err
	}
	v, stop, err := eval(scope, x.Value)
	if stop {
		return v, err
	}
	return obj.SetIndex(idx, v)
}

func (x *IndexSet) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.IndexSet, m)
	e.node(x.X)
	e.node(x.Index)
	e.node(x.Value)
	return e.done()
}

// AttrGet yields X.Attr.
type AttrGet struct {
	X    Node
	Attr symbol.Name
}

func (x *AttrGet) Op() op.Code      { return op.AttrGet }
func (x *AttrGet) Children() []Node { return []Node{x.X} }

func (x *AttrGet) Eval(scope *object.Scope) (object.Value, error) {
	obj, stop, err := eval(scope, x.X)
	if stop {
		return obj, err
	}
	return obj.GetAttr(x.Attr)
}

func (x *AttrGet) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.AttrGet, m)
	e.node(x.X)
	e.name(x.Attr)
	return e.done()
}

// AttrSet assigns X.Attr = Value and yields the assigned value.
type AttrSet struct {
	X     Node
	Attr  symbol.Name
	Value Node
}

func (x *AttrSet) Op() op.Code      { return op.AttrSet }
func (x *AttrSet) Children() []Node { return []Node{x.X, x.Value} }

func (x *AttrSet) Eval(scope *object.Scope) (object.Value, error) {
	obj, stop, err := eval(scope, x.X)
	if stop {
		return obj, err
	}
	v, stop, err := eval(scope, x.Value)
	if stop {
		return v, err
	}
	return obj.SetAttr(x.Attr, v)
}

func (x *AttrSet) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.AttrSet, m)
	e.node(x.X)
	e.name(x.Attr)
	e.node(x.Value)
	return e.done()
}
