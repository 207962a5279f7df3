package object

import (
	"io"
	"sort"

	"github.com/creek-lang/creek/errz"
	"github.com/creek-lang/creek/symbol"
)

// Signal is a flag shared by every scope of one dynamic extent: one function
// body for the return signal, one loop body for the break signal. Once set
// it stays set.
type Signal struct {
	set bool
}

func (s *Signal) Set() {
	s.set = true
}

func (s *Signal) IsSet() bool {
	return s.set
}

// Scope is a lexical environment. It owns its local bindings, links to its
// parent, and shares return and break signals with the other scopes of the
// same function call and loop.
type Scope struct {
	vars   map[symbol.Name]*Variable
	parent *Scope
	global *GlobalScope
	ret    *Signal
	brk    *Signal
}

func newScope(parent *Scope, global *GlobalScope, ret, brk *Signal) *Scope {
	return &Scope{
		vars:   map[symbol.Name]*Variable{},
		parent: parent,
		global: global,
		ret:    ret,
		brk:    brk,
	}
}

// NewChild returns a nested scope sharing both signals.
func (s *Scope) NewChild() *Scope {
	return newScope(s, s.global, s.ret, s.brk)
}

// NewLoopScope returns a nested scope with a fresh break signal. A break
// inside the loop stops at this scope; a return passes through.
func (s *Scope) NewLoopScope() *Scope {
	return newScope(s, s.global, s.ret, &Signal{})
}

// NewCallScope returns a nested scope with fresh return and break signals.
func (s *Scope) NewCallScope() *Scope {
	return newScope(s, s.global, &Signal{}, &Signal{})
}

func (s *Scope) Parent() *Scope {
	return s.parent
}

func (s *Scope) Global() *GlobalScope {
	return s.global
}

// IsReturning reports whether a return is unwinding the current call.
func (s *Scope) IsReturning() bool {
	return s.ret.IsSet()
}

// IsBreaking reports whether evaluation must stop: a break of the current
// loop or a return of the current call.
func (s *Scope) IsBreaking() bool {
	return s.brk.IsSet() || s.ret.IsSet()
}

// Return sets the return signal of the current call.
func (s *Scope) Return() {
	s.ret.Set()
}

// Break sets the break signal of the current loop.
func (s *Scope) Break() {
	s.brk.Set()
}

// Define creates a local binding holding value. Redefining a name in the
// same scope is a name error.
func (s *Scope) Define(name symbol.Name, value Value) (*Variable, error) {
	if _, ok := s.vars[name]; ok {
		return nil, NameErrorf("variable %s already exists", name)
	}
	v := NewVariable(value)
	s.vars[name] = v
	return v, nil
}

// Has reports whether name is bound in this scope, ignoring parents.
func (s *Scope) Has(name symbol.Name) bool {
	_, ok := s.vars[name]
	return ok
}

// Lookup finds the nearest binding of name.
func (s *Scope) Lookup(name symbol.Name) (*Variable, error) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.vars[name]; ok {
			return v, nil
		}
	}
	err := errz.Errorf(errz.ErrName, "can't find variable %s", name)
	err.WithHint(errz.FormatSuggestions(errz.SuggestSimilar(name.String(), s.Names())))
	return nil, NewError(err)
}

// Names returns every name visible from this scope, sorted.
func (s *Scope) Names() []string {
	seen := map[string]bool{}
	var names []string
	for sc := s; sc != nil; sc = sc.parent {
		for name := range sc.vars {
			if str := name.String(); !seen[str] {
				seen[str] = true
				names = append(names, str)
			}
		}
	}
	sort.Strings(names)
	return names
}

// GlobalScope is the root of a scope chain. It holds the global bindings
// and the host services expressions reach through their scope.
type GlobalScope struct {
	*Scope
	stdout  io.Writer
	loader  NativeLoader
	classes map[Type]*Class
}

// NewGlobalScope creates a root scope. A nil stdout discards output; a nil
// loader makes every dynamic load fail.
func NewGlobalScope(stdout io.Writer, loader NativeLoader) *GlobalScope {
	if stdout == nil {
		stdout = io.Discard
	}
	g := &GlobalScope{
		stdout:  stdout,
		loader:  loader,
		classes: map[Type]*Class{},
	}
	g.Scope = newScope(nil, g, &Signal{}, &Signal{})
	return g
}

func (g *GlobalScope) Stdout() io.Writer {
	return g.stdout
}

// Loader returns the native loader used by dynamic-load expressions.
func (g *GlobalScope) Loader() (NativeLoader, error) {
	if g.loader == nil {
		return nil, Errorf(errz.ErrNative, "native loading is not enabled")
	}
	return g.loader, nil
}

// SetTypeClass installs the class whose methods values of type t answer
// method calls with.
func (g *GlobalScope) SetTypeClass(t Type, class *Class) {
	g.classes[t] = class
}

// TypeClass returns the class installed for t.
func (g *GlobalScope) TypeClass(t Type) (*Class, bool) {
	c, ok := g.classes[t]
	return c, ok
}

// Method resolves the method a call of name on v dispatches to: the
// value's own class when it has one, else the class installed for its
// type.
func (g *GlobalScope) Method(v Value, name symbol.Name) (Value, error) {
	var class *Class
	if c, ok := v.(Classed); ok {
		class = c.Class()
	} else if c, ok := g.classes[v.Type()]; ok {
		class = c
	}
	if class == nil {
		return nil, Errorf(errz.ErrUnsupported, "%s has no methods", v.Type())
	}
	m, ok := class.Method(name)
	if !ok {
		err := errz.Errorf(errz.ErrName, "%s has no method %s", v.Type(), name)
		err.WithHint(errz.FormatSuggestions(errz.SuggestSimilar(name.String(), class.MethodNames())))
		return nil, NewError(err)
	}
	return m, nil
}
