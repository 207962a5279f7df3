package object

import (
	"cmp"
	"fmt"

	"github.com/creek-lang/creek/symbol"
	"github.com/gofrs/uuid"
)

// Function is a closure: a parameter list and body bound to the scope it
// was defined in. Calling it never sees the caller's scope.
type Function struct {
	base
	id       string
	name     string
	params   []symbol.Name
	variadic bool
	body     Evaluator
	closure  *Scope
}

// FunctionParams describes a function literal.
type FunctionParams struct {
	Name       string
	Parameters []symbol.Name
	Variadic   bool
	Body       Evaluator
	Closure    *Scope
}

func NewFunction(params FunctionParams) *Function {
	return &Function{
		base:     base{FUNCTION},
		id:       newID(),
		name:     params.Name,
		params:   params.Parameters,
		variadic: params.Variadic,
		body:     params.Body,
		closure:  params.Closure,
	}
}

func newID() string {
	id, err := uuid.NewV4()
	if err != nil {
		panic(fmt.Errorf("failed to generate value id: %w", err))
	}
	return id.String()
}

func (f *Function) ID() string { return f.id }
func (f *Function) Name() string { return f.name }
func (f *Function) Parameters() []symbol.Name { return f.params }
func (f *Function) Variadic() bool { return f.variadic }
func (f *Function) Body() Evaluator { return f.body }
func (f *Function) Closure() *Scope { return f.closure }

func (f *Function) Inspect() string {
	if f.name != "" {
		return fmt.Sprintf("function(%s %s)", f.name, f.id)
	}
	return fmt.Sprintf("function(%s)", f.id)
}

func (f *Function) Copy() Value {
	return f
}

func (f *Function) Bool() (bool, error) {
	return true, nil
}

func (f *Function) Compare(other Value) (int, error) {
	o, ok := other.(*Function)
	if !ok {
		return CompareTypes(f, other), nil
	}
	return cmp.Compare(f.id, o.id), nil
}

// Call binds the arguments in a fresh scope whose parent is the defining
// scope and evaluates the body there. The call scope gets its own return
// and break signals, so a return inside the body stops here.
func (f *Function) Call(args []Value) (Value, error) {
	args, err := bindArgs(len(f.params), f.variadic, args)
	if err != nil {
		return nil, err
	}
	scope := f.closure.NewCallScope()
	for i, name := range f.params {
		if _, err := scope.Define(name, args[i]); err != nil {
			return nil, err
		}
	}
	return f.body.Eval(scope)
}

// bindArgs checks the argument count against nparams. A variadic callee
// receives its trailing arguments collapsed into one vector.
func bindArgs(nparams int, variadic bool, args []Value) ([]Value, error) {
	if variadic {
		if nparams == 0 {
			return nil, NewArityError(0, len(args))
		}
		fixed := nparams - 1
		if len(args) < fixed {
			return nil, NewArityAtLeastError(fixed, len(args))
		}
		rest := make([]Value, len(args)-fixed)
		copy(rest, args[fixed:])
		bound := make([]Value, 0, nparams)
		bound = append(bound, args[:fixed]...)
		return append(bound, NewVector(rest)), nil
	}
	if len(args) != nparams {
		return nil, NewArityError(nparams, len(args))
	}
	return args, nil
}

// BuiltinFunction is the signature of functions implemented in Go.
type BuiltinFunction func(args []Value) (Value, error)

// Builtin wraps a Go function and implements Value. Its arity is checked
// the same way as a script function's.
type Builtin struct {
	base
	id       string
	name     string
	nargs    int
	variadic bool
	fn       BuiltinFunction
}

// NewBuiltin creates a builtin taking nargs arguments. When variadic is
// true the last of those receives the remaining arguments as a vector. A
// negative nargs disables arity checking.
func NewBuiltin(name string, nargs int, variadic bool, fn BuiltinFunction) *Builtin {
	return &Builtin{
		base:     base{BUILTIN},
		id:       newID(),
		name:     name,
		nargs:    nargs,
		variadic: variadic,
		fn:       fn,
	}
}

func (b *Builtin) Name() string {
	return b.name
}

func (b *Builtin) Inspect() string {
	return fmt.Sprintf("builtin(%s)", b.name)
}

func (b *Builtin) Copy() Value {
	return b
}

func (b *Builtin) Bool() (bool, error) {
	return true, nil
}

func (b *Builtin) Compare(other Value) (int, error) {
	o, ok := other.(*Builtin)
	if !ok {
		return CompareTypes(b, other), nil
	}
	return cmp.Compare(b.id, o.id), nil
}

// Call invokes the Go function. Plain Go errors it returns become native
// language errors.
func (b *Builtin) Call(args []Value) (Value, error) {
	if b.nargs >= 0 {
		var err error
		if args, err = bindArgs(b.nargs, b.variadic, args); err != nil {
			return nil, err
		}
	}
	result, err := b.fn(args)
	if err != nil {
		return nil, WrapError(err)
	}
	if result == nil {
		return NewVoid(), nil
	}
	return result, nil
}
