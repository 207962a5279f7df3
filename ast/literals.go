package ast

import (
	"github.com/creek-lang/creek/bytecode"
	"github.com/creek-lang/creek/object"
	"github.com/creek-lang/creek/op"
	"github.com/creek-lang/creek/symbol"
)

// Void is the void literal. It is also what a nop decodes to.
type Void struct{}

func (x *Void) Op() op.Code      { return op.DataVoid }
func (x *Void) Children() []Node { return nil }

func (x *Void) Eval(scope *object.Scope) (object.Value, error) {
	return object.NewVoid(), nil
}

func (x *Void) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	return newEncoder(op.DataVoid, m).done()
}

// Null is the null literal.
type Null struct{}

func (x *Null) Op() op.Code      { return op.DataNull }
func (x *Null) Children() []Node { return nil }

func (x *Null) Eval(scope *object.Scope) (object.Value, error) {
	return object.NewNull(), nil
}

func (x *Null) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	return newEncoder(op.DataNull, m).done()
}

// Boolean is a true or false literal.
type Boolean struct {
	Value bool
}

func (x *Boolean) Op() op.Code      { return op.DataBoolean }
func (x *Boolean) Children() []Node { return nil }

func (x *Boolean) Eval(scope *object.Scope) (object.Value, error) {
	return object.NewBool(x.Value), nil
}

func (x *Boolean) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.DataBoolean, m)
	e.boolean(x.Value)
	return e.done()
}

// Number is a numeric literal.
type Number struct {
	Value float64
}

func (x *Number) Op() op.Code      { return op.DataNumber }
func (x *Number) Children() []Node { return nil }

func (x *Number) Eval(scope *object.Scope) (object.Value, error) {
	return object.NewNumber(x.Value), nil
}

func (x *Number) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.DataNumber, m)
	e.number(x.Value)
	return e.done()
}

// String is a string literal.
type String struct {
	Value string
}

func (x *String) Op() op.Code      { return op.DataString }
func (x *String) Children() []Node { return nil }

func (x *String) Eval(scope *object.Scope) (object.Value, error) {
	return object.NewString(x.Value), nil
}

func (x *String) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.DataString, m)
	e.str(x.Value)
	return e.done()
}

// Identifier is a symbol literal.
type Identifier struct {
	Name symbol.Name
}

func (x *Identifier) Op() op.Code      { return op.DataIdentifier }
func (x *Identifier) Children() []Node { return nil }

func (x *Identifier) Eval(scope *object.Scope) (object.Value, error) {
	return object.NewIdentifier(x.Name), nil
}

func (x *Identifier) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.DataIdentifier, m)
	e.name(x.Name)
	return e.done()
}

// Vector is a vector literal. Items are evaluated left to right.
type Vector struct {
	Items []Node
}

func (x *Vector) Op() op.Code      { return op.DataVector }
func (x *Vector) Children() []Node { return x.Items }

func (x *Vector) Eval(scope *object.Scope) (object.Value, error) {
	values, last, stop, err := evalAll(scope, x.Items)
	if stop {
		return last, err
	}
	for i, v := range values {
		values[i] = v.Copy()
	}
	return object.NewVector(values), nil
}

func (x *Vector) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.DataVector, m)
	e.nodes(x.Items)
	return e.done()
}

// Pair is one key/value entry of a map literal.
type Pair struct {
	Key   Node
	Value Node
}

// Map is a map literal. Each key is evaluated before its value.
type Map struct {
	Pairs []Pair
}

func (x *Map) Op() op.Code { return op.DataMap }

func (x *Map) Children() []Node {
	nodes := make([]Node, 0, 2*len(x.Pairs))
	for _, p := range x.Pairs {
		nodes = append(nodes, p.Key, p.Value)
	}
	return nodes
}

func (x *Map) Eval(scope *object.Scope) (object.Value, error) {
	result := object.NewMap()
	for _, p := range x.Pairs {
		k, stop, err := eval(scope, p.Key)
		if stop {
			return k, err
		}
		v, stop, err := eval(scope, p.Value)
		if stop {
			return v, err
		}
		if err := result.Set(k, v); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (x *Map) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.DataMap, m)
	e.count(len(x.Pairs))
	for _, p := range x.Pairs {
		e.node(p.Key)
		e.node(p.Value)
	}
	return e.done()
}

// Function is a function literal. Evaluating it captures the current scope.
type Function struct {
	Params   []symbol.Name
	Variadic bool
	Body     Node
}

func (x *Function) Op() op.Code      { return op.DataFunction }
func (x *Function) Children() []Node { return []Node{x.Body} }

func (x *Function) Eval(scope *object.Scope) (object.Value, error) {
	if x.Body == nil {
		return nil, ErrNilNode
	}
	return object.NewFunction(object.FunctionParams{
		Parameters: x.Params,
		Variadic:   x.Variadic,
		Body:       x.Body,
		Closure:    scope,
	}), nil
}

func (x *Function) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.DataFunction, m)
	e.names(x.Params)
	e.boolean(x.Variadic)
	e.node(x.Body)
	return e.done()
}

// Method is one method definition of a class literal.
type Method struct {
	Name     symbol.Name
	Params   []symbol.Name
	Variadic bool
	Body     Node
}

// Class is a class literal. Super is optional; when present it must
// evaluate to a class or null. Methods capture the defining scope.
type Class struct {
	Name    symbol.Name
	Super   Node
	Methods []Method
}

func (x *Class) Op() op.Code { return op.DataClass }

func (x *Class) Children() []Node {
	var nodes []Node
	if x.Super != nil {
		nodes = append(nodes, x.Super)
	}
	for _, method := range x.Methods {
		nodes = append(nodes, method.Body)
	}
	return nodes
}

func (x *Class) Eval(scope *object.Scope) (object.Value, error) {
	var super *object.Class
	if x.Super != nil {
		v, stop, err := eval(scope, x.Super)
		if stop {
			return v, err
		}
		switch v := v.(type) {
		case *object.Class:
			super = v
		case *object.Null, *object.Void:
		default:
			return nil, object.TypeErrorf("super class of %s must be a class, got %s", x.Name, v.Type())
		}
	}
	class := object.NewClass(x.Name, super)
	for _, method := range x.Methods {
		if method.Body == nil {
			return nil, ErrNilNode
		}
		class.Define(method.Name, object.NewFunction(object.FunctionParams{
			Name:       x.Name.String() + "." + method.Name.String(),
			Parameters: method.Params,
			Variadic:   method.Variadic,
			Body:       method.Body,
			Closure:    scope,
		}))
	}
	return class, nil
}

func (x *Class) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.DataClass, m)
	e.name(x.Name)
	e.optional(x.Super)
	e.count(len(x.Methods))
	for _, method := range x.Methods {
		e.name(method.Name)
		e.names(method.Params)
		e.boolean(method.Variadic)
		e.node(method.Body)
	}
	return e.done()
}
