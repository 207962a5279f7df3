package ast

import (
	"github.com/creek-lang/creek/bytecode"
	"github.com/creek-lang/creek/object"
	"github.com/creek-lang/creek/op"
	"github.com/creek-lang/creek/symbol"
)

func varScope(scope *object.Scope, global bool) *object.Scope {
	if global {
		return scope.Global().Scope
	}
	return scope
}

// CreateVar defines Name in the current scope, or in the global scope when
// Global is set, holding a copy of Value.
type CreateVar struct {
	Name   symbol.Name
	Value  Node
	Global bool
}

func (x *CreateVar) Op() op.Code {
	if x.Global {
		return op.VarCreateGlobal
	}
	return op.VarCreateLocal
}

func (x *CreateVar) Children() []Node { return []Node{x.Value} }

func (x *CreateVar) Eval(scope *object.Scope) (object.Value, error) {
	v, stop, err := eval(scope, x.Value)
	if stop {
		return v, err
	}
	if _, err := varScope(scope, x.Global).Define(x.Name, v.Copy()); err != nil {
		return nil, err
	}
	return v, nil
}

func (x *CreateVar) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(x.Op(), m)
	e.name(x.Name)
	e.node(x.Value)
	return e.done()
}

// LoadVar yields a copy of the value bound to Name.
type LoadVar struct {
	Name   symbol.Name
	Global bool
}

func (x *LoadVar) Op() op.Code {
	if x.Global {
		return op.VarLoadGlobal
	}
	return op.VarLoadLocal
}

func (x *LoadVar) Children() []Node { return nil }

func (x *LoadVar) Eval(scope *object.Scope) (object.Value, error) {
	v, err := varScope(scope, x.Global).Lookup(x.Name)
	if err != nil {
		return nil, err
	}
	return v.Copy(), nil
}

func (x *LoadVar) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(x.Op(), m)
	e.name(x.Name)
	return e.done()
}

// StoreVar assigns a copy of Value to the existing binding of Name.
type StoreVar struct {
	Name   symbol.Name
	Value  Node
	Global bool
}

func (x *StoreVar) Op() op.Code {
	if x.Global {
		return op.VarStoreGlobal
	}
	return op.VarStoreLocal
}

func (x *StoreVar) Children() []Node { return []Node{x.Value} }

func (x *StoreVar) Eval(scope *object.Scope) (object.Value, error) {
	v, stop, err := eval(scope, x.Value)
	if stop {
		return v, err
	}
	variable, err := varScope(scope, x.Global).Lookup(x.Name)
	if err != nil {
		return nil, err
	}
	variable.Set(v.Copy())
	return v, nil
}

func (x *StoreVar) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(x.Op(), m)
	e.name(x.Name)
	e.node(x.Value)
	return e.done()
}
