// Package builtins defines a default set of built-in functions and the
// methods of the primitive types.
package builtins

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/creek-lang/creek/errz"
	"github.com/creek-lang/creek/object"
	"github.com/creek-lang/creek/symbol"
)

func Len(args []object.Value) (object.Value, error) {
	switch arg := args[0].(type) {
	case *object.String:
		return object.NewNumber(float64(len(arg.Value()))), nil
	case *object.Vector:
		return object.NewNumber(float64(arg.Len())), nil
	case *object.Map:
		return object.NewNumber(float64(arg.Len())), nil
	default:
		return nil, object.TypeErrorf("len() unsupported argument (%s given)", arg.Type())
	}
}

func Type(args []object.Value) (object.Value, error) {
	return object.NewString(string(args[0].Type())), nil
}

// text is the string value of v: the contents of a string, the debug text
// of anything else.
func text(v object.Value) string {
	if s, ok := v.(*object.String); ok {
		return s.Value()
	}
	return v.Inspect()
}

func String(args []object.Value) (object.Value, error) {
	return object.NewString(text(args[0])), nil
}

func Number(args []object.Value) (object.Value, error) {
	switch arg := args[0].(type) {
	case *object.Number:
		return arg.Copy(), nil
	case *object.String:
		f, err := strconv.ParseFloat(arg.Value(), 64)
		if err != nil {
			return nil, object.ValueErrorf("number() invalid literal %q", arg.Value())
		}
		return object.NewNumber(f), nil
	case *object.Bool:
		if arg.Value() {
			return object.NewNumber(1), nil
		}
		return object.NewNumber(0), nil
	default:
		return nil, object.TypeErrorf("number() unsupported argument (%s given)", arg.Type())
	}
}

func Bool(args []object.Value) (object.Value, error) {
	b, err := args[0].Bool()
	if err != nil {
		return nil, err
	}
	return object.NewBool(b), nil
}

// native converts a value to the Go value used for fmt verbs.
func native(v object.Value) any {
	switch v := v.(type) {
	case *object.Number:
		if f := v.Value(); f == float64(int64(f)) {
			return int64(f)
		}
		return v.Value()
	case *object.String:
		return v.Value()
	case *object.Bool:
		return v.Value()
	default:
		return v.Inspect()
	}
}

func format(name string, args []object.Value) (string, error) {
	fs, ok := args[0].(*object.String)
	if !ok {
		return "", object.TypeErrorf("%s() expected a format string (%s given)", name, args[0].Type())
	}
	var rest []object.Value
	if len(args) > 1 {
		rest = args[1].(*object.Vector).Items()
	}
	fmtArgs := make([]any, len(rest))
	for i, v := range rest {
		fmtArgs[i] = native(v)
	}
	return fmt.Sprintf(fs.Value(), fmtArgs...), nil
}

func Sprintf(args []object.Value) (object.Value, error) {
	s, err := format("sprintf", args)
	if err != nil {
		return nil, err
	}
	return object.NewString(s), nil
}

// Error creates an error value without throwing it.
func Error(args []object.Value) (object.Value, error) {
	s, err := format("error", args)
	if err != nil {
		return nil, err
	}
	return object.RuntimeErrorf("%s", s), nil
}

func Assert(args []object.Value) (object.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, object.Errorf(errz.ErrArity, "assert: expected 1-2 arguments, got %d", len(args))
	}
	ok, err := args[0].Bool()
	if err != nil {
		return nil, err
	}
	if ok {
		return object.NewNull(), nil
	}
	if len(args) == 2 {
		if s, isString := args[1].(*object.String); isString {
			return nil, object.RuntimeErrorf("%s", s.Value())
		}
		return nil, object.RuntimeErrorf("%s", args[1].Inspect())
	}
	return nil, object.RuntimeErrorf("assertion failed")
}

func iterate(name string, v object.Value) ([]object.Value, error) {
	iter, ok := v.(object.Iterable)
	if !ok {
		return nil, object.TypeErrorf("%s() expected an iterable (%s given)", name, v.Type())
	}
	return iter.Items(), nil
}

func Any(args []object.Value) (object.Value, error) {
	items, err := iterate("any", args[0])
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		ok, err := item.Bool()
		if err != nil {
			return nil, err
		}
		if ok {
			return object.NewBool(true), nil
		}
	}
	return object.NewBool(false), nil
}

func All(args []object.Value) (object.Value, error) {
	items, err := iterate("all", args[0])
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		ok, err := item.Bool()
		if err != nil {
			return nil, err
		}
		if !ok {
			return object.NewBool(false), nil
		}
	}
	return object.NewBool(true), nil
}

func Keys(args []object.Value) (object.Value, error) {
	m, ok := args[0].(*object.Map)
	if !ok {
		return nil, object.TypeErrorf("keys() unsupported argument (%s given)", args[0].Type())
	}
	return copyItems(m.Keys()), nil
}

func copyItems(items []object.Value) *object.Vector {
	result := make([]object.Value, len(items))
	for i, item := range items {
		result[i] = item.Copy()
	}
	return object.NewVector(result)
}

func Sorted(args []object.Value) (object.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, object.Errorf(errz.ErrArity, "sorted: expected 1-2 arguments, got %d", len(args))
	}
	items, err := iterate("sorted", args[0])
	if err != nil {
		return nil, err
	}
	result := copyItems(items).Items()
	var sortErr error
	less := func(i, j int) bool {
		c, err := result[i].Compare(result[j])
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return c < 0
	}
	if len(args) == 2 {
		fn := args[1]
		less = func(i, j int) bool {
			v, err := fn.Call([]object.Value{result[i], result[j]})
			if err == nil {
				var ok bool
				if ok, err = v.Bool(); err == nil {
					return ok
				}
			}
			if sortErr == nil {
				sortErr = err
			}
			return false
		}
	}
	sort.SliceStable(result, less)
	if sortErr != nil {
		return nil, sortErr
	}
	return object.NewVector(result), nil
}

func Reversed(args []object.Value) (object.Value, error) {
	switch arg := args[0].(type) {
	case *object.Vector:
		items := arg.Items()
		result := make([]object.Value, len(items))
		for i, item := range items {
			result[len(items)-1-i] = item.Copy()
		}
		return object.NewVector(result), nil
	case *object.String:
		b := []byte(arg.Value())
		for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
			b[i], b[j] = b[j], b[i]
		}
		return object.NewString(string(b)), nil
	default:
		return nil, object.TypeErrorf("reversed() unsupported argument (%s given)", arg.Type())
	}
}

func GetAttr(args []object.Value) (object.Value, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, object.Errorf(errz.ErrArity, "getattr: expected 2-3 arguments, got %d", len(args))
	}
	name, ok := args[1].(*object.String)
	if !ok {
		return nil, object.TypeErrorf("getattr() expected a string name (%s given)", args[1].Type())
	}
	v, err := args[0].GetAttr(symbol.Intern(name.Value()))
	if err != nil && len(args) == 3 {
		return args[2], nil
	}
	return v, err
}

func Call(args []object.Value) (object.Value, error) {
	rest := args[1].(*object.Vector).Items()
	return args[0].Call(append([]object.Value(nil), rest...))
}

func Coalesce(args []object.Value) (object.Value, error) {
	for _, arg := range args[0].(*object.Vector).Items() {
		switch arg.(type) {
		case *object.Null, *object.Void:
			continue
		}
		return arg, nil
	}
	return object.NewNull(), nil
}

// Exit ends the program with an optional status code, 0 by default.
func Exit(args []object.Value) (object.Value, error) {
	if len(args) > 1 {
		return nil, object.Errorf(errz.ErrArity, "exit: expected 0-1 arguments, got %d", len(args))
	}
	code := 0
	if len(args) == 1 {
		var err error
		if code, err = object.AsInt(args[0]); err != nil {
			return nil, err
		}
	}
	return nil, &object.ExitError{Code: code}
}

func write(w io.Writer, args []object.Value, format func(object.Value) string) (object.Value, error) {
	for _, arg := range args[0].(*object.Vector).Items() {
		if _, err := io.WriteString(w, format(arg)); err != nil {
			return nil, err
		}
	}
	return object.NewVoid(), nil
}

// Output returns the builtins that write to w. print writes the string
// value of each argument and debug writes its debug text. Neither adds
// separators or a newline.
func Output(w io.Writer) map[string]object.Value {
	return map[string]object.Value{
		"print": object.NewBuiltin("print", 1, true, func(args []object.Value) (object.Value, error) {
			return write(w, args, text)
		}),
		"debug": object.NewBuiltin("debug", 1, true, func(args []object.Value) (object.Value, error) {
			return write(w, args, object.Value.Inspect)
		}),
	}
}

// Builtins returns the global functions keyed by name.
func Builtins() map[string]object.Value {
	return map[string]object.Value{
		"all":      object.NewBuiltin("all", 1, false, All),
		"any":      object.NewBuiltin("any", 1, false, Any),
		"assert":   object.NewBuiltin("assert", -1, false, Assert),
		"bool":     object.NewBuiltin("bool", 1, false, Bool),
		"call":     object.NewBuiltin("call", 2, true, Call),
		"coalesce": object.NewBuiltin("coalesce", 1, true, Coalesce),
		"error":    object.NewBuiltin("error", 2, true, Error),
		"exit":     object.NewBuiltin("exit", -1, false, Exit),
		"getattr":  object.NewBuiltin("getattr", -1, false, GetAttr),
		"keys":     object.NewBuiltin("keys", 1, false, Keys),
		"len":      object.NewBuiltin("len", 1, false, Len),
		"number":   object.NewBuiltin("number", 1, false, Number),
		"reversed": object.NewBuiltin("reversed", 1, false, Reversed),
		"sorted":   object.NewBuiltin("sorted", -1, false, Sorted),
		"sprintf":  object.NewBuiltin("sprintf", 2, true, Sprintf),
		"string":   object.NewBuiltin("string", 1, false, String),
		"type":     object.NewBuiltin("type", 1, false, Type),
	}
}
