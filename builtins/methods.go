package builtins

import (
	"math"
	"strconv"
	"strings"

	"github.com/creek-lang/creek/object"
	"github.com/creek-lang/creek/symbol"
)

// method describes a method of a primitive type. The receiver is the first
// argument and is counted in nargs.
type method struct {
	name     string
	nargs    int
	variadic bool
	fn       object.BuiltinFunction
}

func typeClass(t object.Type, methods []method) *object.Class {
	class := object.NewClass(symbol.Intern(string(t)), nil)
	for _, m := range methods {
		class.Define(symbol.Intern(m.name), object.NewBuiltin(string(t)+"."+m.name, m.nargs, m.variadic, m.fn))
	}
	return class
}

// Install defines the builtin functions in g and installs the methods of
// the string, vector, map and number types.
func Install(g *object.GlobalScope) error {
	for _, set := range []map[string]object.Value{Builtins(), Output(g.Stdout())} {
		for name, fn := range set {
			if _, err := g.Define(symbol.Intern(name), fn); err != nil {
				return err
			}
		}
	}
	g.SetTypeClass(object.STRING, typeClass(object.STRING, stringMethods))
	g.SetTypeClass(object.VECTOR, typeClass(object.VECTOR, vectorMethods))
	g.SetTypeClass(object.MAP, typeClass(object.MAP, mapMethods))
	g.SetTypeClass(object.NUMBER, typeClass(object.NUMBER, numberMethods))
	return nil
}

var stringMethods = []method{
	{"size", 1, false, Len},
	{"substr", 3, false, func(args []object.Value) (object.Value, error) {
		s := args[0].(*object.String).Value()
		start, err := object.AsInt(args[1])
		if err != nil {
			return nil, err
		}
		n, err := object.AsInt(args[2])
		if err != nil {
			return nil, err
		}
		if start < 0 || start > len(s) || n < 0 {
			return nil, object.ValueErrorf("substr(%d, %d) out of range", start, n)
		}
		end := min(start+n, len(s))
		return object.NewString(s[start:end]), nil
	}},
	{"find", 2, false, func(args []object.Value) (object.Value, error) {
		sub, ok := args[1].(*object.String)
		if !ok {
			return nil, object.TypeErrorf("find() expected a string (%s given)", args[1].Type())
		}
		return object.NewNumber(float64(strings.Index(args[0].(*object.String).Value(), sub.Value()))), nil
	}},
	{"to_number", 1, false, Number},
	{"upper", 1, false, func(args []object.Value) (object.Value, error) {
		return object.NewString(strings.ToUpper(args[0].(*object.String).Value())), nil
	}},
	{"lower", 1, false, func(args []object.Value) (object.Value, error) {
		return object.NewString(strings.ToLower(args[0].(*object.String).Value())), nil
	}},
	{"split", 2, false, func(args []object.Value) (object.Value, error) {
		sep, ok := args[1].(*object.String)
		if !ok {
			return nil, object.TypeErrorf("split() expected a string (%s given)", args[1].Type())
		}
		parts := strings.Split(args[0].(*object.String).Value(), sep.Value())
		items := make([]object.Value, len(parts))
		for i, part := range parts {
			items[i] = object.NewString(part)
		}
		return object.NewVector(items), nil
	}},
}

var vectorMethods = []method{
	{"size", 1, false, Len},
	{"push", 2, false, func(args []object.Value) (object.Value, error) {
		args[0].(*object.Vector).Append(args[1].Copy())
		return args[0], nil
	}},
	{"pop", 1, false, func(args []object.Value) (object.Value, error) {
		v := args[0].(*object.Vector)
		if v.Len() == 0 {
			return nil, object.ValueErrorf("pop from empty vector")
		}
		return v.Remove(v.Len() - 1)
	}},
	{"insert", 3, false, func(args []object.Value) (object.Value, error) {
		pos, err := object.AsInt(args[1])
		if err != nil {
			return nil, err
		}
		if err := args[0].(*object.Vector).Insert(pos, args[2].Copy()); err != nil {
			return nil, err
		}
		return args[0], nil
	}},
	{"erase", 2, false, func(args []object.Value) (object.Value, error) {
		pos, err := object.AsInt(args[1])
		if err != nil {
			return nil, err
		}
		return args[0].(*object.Vector).Remove(pos)
	}},
	{"clear", 1, false, func(args []object.Value) (object.Value, error) {
		args[0].(*object.Vector).Clear()
		return args[0], nil
	}},
	{"find", 2, false, func(args []object.Value) (object.Value, error) {
		for i, item := range args[0].(*object.Vector).Items() {
			if object.Equal(item, args[1]) {
				return object.NewNumber(float64(i)), nil
			}
		}
		return object.NewNumber(-1), nil
	}},
}

var mapMethods = []method{
	{"size", 1, false, Len},
	{"keys", 1, false, Keys},
	{"has_key", 2, false, func(args []object.Value) (object.Value, error) {
		_, ok, err := args[0].(*object.Map).Get(args[1])
		if err != nil {
			return nil, err
		}
		return object.NewBool(ok), nil
	}},
	{"erase", 2, false, func(args []object.Value) (object.Value, error) {
		ok, err := args[0].(*object.Map).Delete(args[1])
		if err != nil {
			return nil, err
		}
		return object.NewBool(ok), nil
	}},
	{"clear", 1, false, func(args []object.Value) (object.Value, error) {
		args[0].(*object.Map).Clear()
		return args[0], nil
	}},
}

var numberMethods = []method{
	{"to_string", 1, false, func(args []object.Value) (object.Value, error) {
		return object.NewString(strconv.FormatFloat(args[0].(*object.Number).Value(), 'f', -1, 64)), nil
	}},
	{"floor", 1, false, func(args []object.Value) (object.Value, error) {
		return object.NewNumber(math.Floor(args[0].(*object.Number).Value())), nil
	}},
	{"ceil", 1, false, func(args []object.Value) (object.Value, error) {
		return object.NewNumber(math.Ceil(args[0].(*object.Number).Value())), nil
	}},
	{"abs", 1, false, func(args []object.Value) (object.Value, error) {
		return object.NewNumber(math.Abs(args[0].(*object.Number).Value())), nil
	}},
}
