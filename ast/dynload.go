package ast

import (
	"github.com/creek-lang/creek/bytecode"
	"github.com/creek-lang/creek/object"
	"github.com/creek-lang/creek/op"
	"github.com/creek-lang/creek/symbol"
)

// DynFunc yields the native function Func exported by Library, wrapped so
// calls are checked against Params and Variadic.
type DynFunc struct {
	Params   []symbol.Name
	Variadic bool
	Library  string
	Func     string
}

func (x *DynFunc) Op() op.Code      { return op.DynFunc }
func (x *DynFunc) Children() []Node { return nil }

func (x *DynFunc) Eval(scope *object.Scope) (object.Value, error) {
	loader, err := scope.Global().Loader()
	if err != nil {
		return nil, err
	}
	fn, err := loader.LoadFunc(x.Library, x.Func)
	if err != nil {
		return nil, object.WrapError(err)
	}
	return object.NewBuiltin(x.Func, len(x.Params), x.Variadic, fn), nil
}

func (x *DynFunc) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.DynFunc, m)
	e.names(x.Params)
	e.boolean(x.Variadic)
	e.str(x.Library)
	e.str(x.Func)
	return e.done()
}

// DynMethod declares one method of a native class.
type DynMethod struct {
	Name     symbol.Name
	Params   []symbol.Name
	Variadic bool
}

// DynClass yields a class whose methods are native functions exported by
// Library. Each method receives the instance as its first argument, which
// Params must account for.
type DynClass struct {
	Name    symbol.Name
	Methods []DynMethod
	Library string
}

func (x *DynClass) Op() op.Code      { return op.DynClass }
func (x *DynClass) Children() []Node { return nil }

func (x *DynClass) Eval(scope *object.Scope) (object.Value, error) {
	loader, err := scope.Global().Loader()
	if err != nil {
		return nil, err
	}
	class := object.NewClass(x.Name, nil)
	for _, method := range x.Methods {
		fn, err := loader.LoadMethod(x.Library, x.Name.String(), method.Name.String())
		if err != nil {
			return nil, object.WrapError(err)
		}
		name := x.Name.String() + "." + method.Name.String()
		class.Define(method.Name, object.NewBuiltin(name, len(method.Params), method.Variadic, fn))
	}
	return class, nil
}

func (x *DynClass) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.DynClass, m)
	e.name(x.Name)
	e.count(len(x.Methods))
	for _, method := range x.Methods {
		e.names(method.Params)
		e.boolean(method.Variadic)
		e.name(method.Name)
	}
	e.str(x.Library)
	return e.done()
}

// DynVar yields the native variable Name exported by Library.
type DynVar struct {
	Name    symbol.Name
	Library string
}

func (x *DynVar) Op() op.Code      { return op.DynVar }
func (x *DynVar) Children() []Node { return nil }

func (x *DynVar) Eval(scope *object.Scope) (object.Value, error) {
	loader, err := scope.Global().Loader()
	if err != nil {
		return nil, err
	}
	v, err := loader.LoadVar(x.Library, x.Name.String())
	if err != nil {
		return nil, object.WrapError(err)
	}
	return v, nil
}

func (x *DynVar) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.DynVar, m)
	e.name(x.Name)
	e.str(x.Library)
	return e.done()
}
