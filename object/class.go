package object

import (
	"cmp"
	"fmt"
	"sort"

	"github.com/creek-lang/creek/symbol"
)

var (
	methodInit  = symbol.Intern("init")
	methodAdd   = symbol.Intern("add")
	methodSub   = symbol.Intern("sub")
	methodMul   = symbol.Intern("mul")
	methodDiv   = symbol.Intern("div")
	methodMod   = symbol.Intern("mod")
	methodExp   = symbol.Intern("exp")
	methodUnm   = symbol.Intern("unm")
	methodCmp   = symbol.Intern("cmp")
	methodCall  = symbol.Intern("call")
	methodBool  = symbol.Intern("to_boolean")
	methodIndex = symbol.Intern("index_get")
	methodStore = symbol.Intern("index_set")
)

// Class is a user or native class: a name, an optional super class and a
// method table. Calling a class creates an instance.
type Class struct {
	base
	id      string
	name    symbol.Name
	super   *Class
	methods map[symbol.Name]Value
}

// NewClass creates a class. super may be nil.
func NewClass(name symbol.Name, super *Class) *Class {
	return &Class{
		base:    base{CLASS},
		id:      newID(),
		name:    name,
		super:   super,
		methods: map[symbol.Name]Value{},
	}
}

func (c *Class) Name() symbol.Name {
	return c.name
}

func (c *Class) Super() *Class {
	return c.super
}

// Define adds or replaces a method.
func (c *Class) Define(name symbol.Name, method Value) {
	c.methods[name] = method
}

// Method finds a method on the class or its ancestors.
func (c *Class) Method(name symbol.Name) (Value, bool) {
	for k := c; k != nil; k = k.super {
		if m, ok := k.methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// MethodNames returns every method name visible on the class, sorted.
func (c *Class) MethodNames() []string {
	seen := map[string]bool{}
	var names []string
	for k := c; k != nil; k = k.super {
		for name := range k.methods {
			if s := name.String(); !seen[s] {
				seen[s] = true
				names = append(names, s)
			}
		}
	}
	sort.Strings(names)
	return names
}

func (c *Class) Inspect() string {
	return fmt.Sprintf("class(%s)", c.name)
}

func (c *Class) Copy() Value {
	return c
}

func (c *Class) Bool() (bool, error) {
	return true, nil
}

func (c *Class) Compare(other Value) (int, error) {
	o, ok := other.(*Class)
	if !ok {
		return CompareTypes(c, other), nil
	}
	return cmp.Compare(c.id, o.id), nil
}

// Call instantiates the class and runs init(self, args...) when defined.
func (c *Class) Call(args []Value) (Value, error) {
	inst := NewInstance(c)
	ctor, ok := c.Method(methodInit)
	if !ok {
		if len(args) != 0 {
			return nil, NewArityError(0, len(args))
		}
		return inst, nil
	}
	if _, err := ctor.Call(append([]Value{inst}, args...)); err != nil {
		return nil, err
	}
	return inst, nil
}

func (c *Class) GetAttr(name symbol.Name) (Value, error) {
	if m, ok := c.Method(name); ok {
		return m, nil
	}
	return nil, NameErrorf("class %s has no attribute %q", c.name, name.String())
}

func (c *Class) SetAttr(name symbol.Name, v Value) (Value, error) {
	c.methods[name] = v.Copy()
	return v, nil
}

// Instance is an object created by calling a class. Copies share state.
type Instance struct {
	base
	id    string
	class *Class
	attrs map[symbol.Name]Value
}

func NewInstance(class *Class) *Instance {
	return &Instance{
		base:  base{INSTANCE},
		id:    newID(),
		class: class,
		attrs: map[symbol.Name]Value{},
	}
}

func (i *Instance) Class() *Class {
	return i.class
}

func (i *Instance) Inspect() string {
	return fmt.Sprintf("%s(%s)", i.class.name, i.id)
}

func (i *Instance) Copy() Value {
	return i
}

// invoke calls a class method with the instance as receiver. The second
// result is false when the class does not define the method.
func (i *Instance) invoke(name symbol.Name, args ...Value) (Value, bool, error) {
	m, ok := i.class.Method(name)
	if !ok {
		return nil, false, nil
	}
	result, err := m.Call(append([]Value{i}, args...))
	return result, true, err
}

func (i *Instance) binary(name symbol.Name, other Value) (Value, error) {
	result, ok, err := i.invoke(name, other)
	if !ok {
		return nil, i.unsupported(name.String())
	}
	return result, err
}

func (i *Instance) Bool() (bool, error) {
	result, ok, err := i.invoke(methodBool)
	if !ok {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return result.Bool()
}

func (i *Instance) Compare(other Value) (int, error) {
	result, ok, err := i.invoke(methodCmp, other)
	if ok {
		if err != nil {
			return 0, err
		}
		return AsInt(result)
	}
	o, isInst := other.(*Instance)
	if !isInst {
		return CompareTypes(i, other), nil
	}
	return cmp.Compare(i.id, o.id), nil
}

func (i *Instance) Add(other Value) (Value, error) { return i.binary(methodAdd, other) }
func (i *Instance) Sub(other Value) (Value, error) { return i.binary(methodSub, other) }
func (i *Instance) Mul(other Value) (Value, error) { return i.binary(methodMul, other) }
func (i *Instance) Div(other Value) (Value, error) { return i.binary(methodDiv, other) }
func (i *Instance) Mod(other Value) (Value, error) { return i.binary(methodMod, other) }
func (i *Instance) Exp(other Value) (Value, error) { return i.binary(methodExp, other) }

func (i *Instance) Negate() (Value, error) {
	result, ok, err := i.invoke(methodUnm)
	if !ok {
		return nil, i.unsupported("unm")
	}
	return result, err
}

func (i *Instance) Call(args []Value) (Value, error) {
	result, ok, err := i.invoke(methodCall, args...)
	if !ok {
		return nil, i.unsupported("call")
	}
	return result, err
}

func (i *Instance) GetIndex(key Value) (Value, error) {
	return i.binary(methodIndex, key)
}

func (i *Instance) SetIndex(key, v Value) (Value, error) {
	if _, ok, err := i.invoke(methodStore, key, v); !ok {
		return nil, i.unsupported("index set")
	} else if err != nil {
		return nil, err
	}
	return v, nil
}

// GetAttr returns a field, falling back to a class method.
func (i *Instance) GetAttr(name symbol.Name) (Value, error) {
	if v, ok := i.attrs[name]; ok {
		return v.Copy(), nil
	}
	if m, ok := i.class.Method(name); ok {
		return m, nil
	}
	return nil, NameErrorf("%s has no attribute %q", i.class.name, name.String())
}

func (i *Instance) SetAttr(name symbol.Name, v Value) (Value, error) {
	i.attrs[name] = v.Copy()
	return v, nil
}
