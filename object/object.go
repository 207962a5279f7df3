// Package object provides the Creek value model: the capability contract
// every runtime value implements, the concrete value types, and the scope
// chain expressions evaluate against.
//
// Values are usually type asserted to a concrete type:
//
//	switch v := v.(type) {
//	case *object.Number:
//		// do something with v.Value()
//	case *object.String:
//		// do something with v.Value()
//	}
//
// Operations a type does not implement fail with an unsupported-operation
// [Error], which a script can catch.
package object

import (
	"github.com/creek-lang/creek/symbol"
)

// Type of a value as a string.
type Type string

// Type constants
const (
	BOOL       Type = "bool"
	BUILTIN    Type = "builtin"
	CLASS      Type = "class"
	ERROR      Type = "error"
	FUNCTION   Type = "function"
	IDENTIFIER Type = "identifier"
	INSTANCE   Type = "instance"
	MAP        Type = "map"
	NULL       Type = "null"
	NUMBER     Type = "number"
	STRING     Type = "string"
	VECTOR     Type = "vector"
	VOID       Type = "void"
)

// Value is the capability contract implemented by every runtime value.
type Value interface {
	// Type of the value.
	Type() Type

	// Inspect returns the debug text of the value.
	Inspect() string

	// Copy returns a copy with the type's copy semantics. Scalars are
	// duplicated; containers, functions and instances share their backing.
	Copy() Value

	// Bool returns the truth value.
	Bool() (bool, error)

	// Compare is the three-way comparison every comparison node builds on.
	Compare(other Value) (int, error)

	Add(other Value) (Value, error)
	Sub(other Value) (Value, error)
	Mul(other Value) (Value, error)
	Div(other Value) (Value, error)
	Mod(other Value) (Value, error)
	Exp(other Value) (Value, error)
	Negate() (Value, error)

	BitAnd(other Value) (Value, error)
	BitOr(other Value) (Value, error)
	BitXor(other Value) (Value, error)
	BitNot() (Value, error)
	ShiftLeft(other Value) (Value, error)
	ShiftRight(other Value) (Value, error)

	// Call invokes the value with the given arguments.
	Call(args []Value) (Value, error)

	// GetIndex implements value[key].
	GetIndex(key Value) (Value, error)

	// SetIndex implements value[key] = v and returns the assigned value.
	SetIndex(key, v Value) (Value, error)

	// GetAttr implements value.name.
	GetAttr(name symbol.Name) (Value, error)

	// SetAttr implements value.name = v and returns the assigned value.
	SetAttr(name symbol.Name, v Value) (Value, error)
}

// Evaluator is anything that can be evaluated against a scope. Function
// bodies are stored as Evaluators so this package does not depend on the
// expression tree.
type Evaluator interface {
	Eval(scope *Scope) (Value, error)
}

// Iterable is implemented by values a for-in loop can walk.
type Iterable interface {
	Items() []Value
}

// Classed is implemented by values that carry their own class.
type Classed interface {
	Class() *Class
}

// CompareTypes orders values of different types by type name. It returns 0
// when both values have the same type.
func CompareTypes(a, b Value) int {
	aType := a.Type()
	bType := b.Type()
	if aType != bType {
		if aType < bType {
			return -1
		}
		return 1
	}
	return 0
}

// Equal reports whether a and b compare equal. Incomparable values are
// unequal.
func Equal(a, b Value) bool {
	c, err := a.Compare(b)
	return err == nil && c == 0
}
