package ast

import (
	"slices"

	"github.com/creek-lang/creek/bytecode"
	"github.com/creek-lang/creek/object"
	"github.com/creek-lang/creek/op"
	"github.com/creek-lang/creek/symbol"
)

func evalSequence(scope *object.Scope, body []Node) (object.Value, error) {
	var result object.Value = object.NewVoid()
	for _, stmt := range body {
		if scope.IsBreaking() {
			break
		}
		v, stop, err := eval(scope, stmt)
		if stop {
			return v, err
		}
		result = v
	}
	return result, nil
}

// BasicBlock evaluates statements in order in the current scope. It is the
// flat sequence a scoped block is encoded around.
type BasicBlock struct {
	Body []Node
}

func (x *BasicBlock) Op() op.Code      { return op.ControlBlock }
func (x *BasicBlock) Children() []Node { return x.Body }

func (x *BasicBlock) Eval(scope *object.Scope) (object.Value, error) {
	return evalSequence(scope, x.Body)
}

func (x *BasicBlock) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.ControlBlock, m)
	e.nodes(x.Body)
	return e.done()
}

// Block evaluates statements in order in a new child scope and yields the
// last value, or void when empty. It is written as a do wrapping a basic
// block.
type Block struct {
	Body []Node
}

func (x *Block) Op() op.Code      { return op.ControlDo }
func (x *Block) Children() []Node { return x.Body }

func (x *Block) Eval(scope *object.Scope) (object.Value, error) {
	return evalSequence(scope.NewChild(), x.Body)
}

func (x *Block) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.ControlDo, m)
	e.node(&BasicBlock{Body: x.Body})
	return e.done()
}

// Do evaluates X in a new child scope.
type Do struct {
	X Node
}

func (x *Do) Op() op.Code      { return op.ControlDo }
func (x *Do) Children() []Node { return []Node{x.X} }

func (x *Do) Eval(scope *object.Scope) (object.Value, error) {
	v, _, err := eval(scope.NewChild(), x.X)
	return v, err
}

func (x *Do) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.ControlDo, m)
	e.node(x.X)
	return e.done()
}

// If evaluates Then when Cond is true and Else otherwise. A nil Else
// yields void.
type If struct {
	Cond Node
	Then Node
	Else Node
}

func (x *If) Op() op.Code { return op.ControlIf }

func (x *If) Children() []Node {
	if x.Else == nil {
		return []Node{x.Cond, x.Then}
	}
	return []Node{x.Cond, x.Then, x.Else}
}

func (x *If) Eval(scope *object.Scope) (object.Value, error) {
	child := scope.NewChild()
	cond, stop, err := eval(child, x.Cond)
	if stop {
		return cond, err
	}
	ok, err := cond.Bool()
	if err != nil {
		return nil, err
	}
	branch := x.Else
	if ok {
		branch = x.Then
	} else if branch == nil {
		return object.NewVoid(), nil
	}
	v, _, err := eval(child, branch)
	return v, err
}

func (x *If) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.ControlIf, m)
	e.node(x.Cond)
	e.node(x.Then)
	e.optional(x.Else)
	return e.done()
}

// Case is one branch of a switch.
type Case struct {
	Values []Node
	Body   Node
}

// Switch evaluates the body of the first case holding a value that
// compares equal to Cond, or Default when none does.
type Switch struct {
	Cond    Node
	Cases   []Case
	Default Node
}

func (x *Switch) Op() op.Code { return op.ControlSwitch }

func (x *Switch) Children() []Node {
	nodes := []Node{x.Cond}
	for _, c := range x.Cases {
		nodes = append(nodes, c.Values...)
		nodes = append(nodes, c.Body)
	}
	if x.Default != nil {
		nodes = append(nodes, x.Default)
	}
	return nodes
}

func (x *Switch) Eval(scope *object.Scope) (object.Value, error) {
	child := scope.NewChild()
	cond, stop, err := eval(child, x.Cond)
	if stop {
		return cond, err
	}
	for _, c := range x.Cases {
		for _, value := range c.Values {
			v, stop, err := eval(child, value)
			if stop {
				return v, err
			}
			cmp, err := cond.Compare(v)
			if err != nil {
				return nil, err
			}
			if cmp == 0 {
				v, _, err := eval(child, c.Body)
				return v, err
			}
		}
	}
	if x.Default == nil {
		return object.NewVoid(), nil
	}
	v, _, err := eval(child, x.Default)
	return v, err
}

func (x *Switch) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.ControlSwitch, m)
	e.node(x.Cond)
	e.count(len(x.Cases))
	for _, c := range x.Cases {
		e.nodes(c.Values)
		e.node(c.Body)
	}
	e.optional(x.Default)
	return e.done()
}

// Loop evaluates Body until a break or return.
type Loop struct {
	Body Node
}

func (x *Loop) Op() op.Code      { return op.ControlLoop }
func (x *Loop) Children() []Node { return []Node{x.Body} }

func (x *Loop) Eval(scope *object.Scope) (object.Value, error) {
	outer := scope.NewLoopScope()
	for {
		v, stop, err := eval(outer.NewChild(), x.Body)
		if stop {
			return v, err
		}
	}
}

func (x *Loop) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.ControlLoop, m)
	e.node(x.Body)
	return e.done()
}

// While evaluates Body as long as Cond is true and yields the last body
// value, or void when the body never ran.
type While struct {
	Cond Node
	Body Node
}

func (x *While) Op() op.Code      { return op.ControlWhile }
func (x *While) Children() []Node { return []Node{x.Cond, x.Body} }

func (x *While) Eval(scope *object.Scope) (object.Value, error) {
	outer := scope.NewLoopScope()
	var last object.Value = object.NewVoid()
	for {
		inner := outer.NewChild()
		cond, stop, err := eval(inner, x.Cond)
		if stop {
			return cond, err
		}
		ok, err := cond.Bool()
		if err != nil {
			return nil, err
		}
		if !ok {
			return last, nil
		}
		v, stop, err := eval(inner, x.Body)
		if stop {
			return v, err
		}
		last = v
	}
}

func (x *While) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.ControlWhile, m)
	e.node(x.Cond)
	e.node(x.Body)
	return e.done()
}

// For is a counted loop. Var starts at Init and the body runs while Var
// compares below Limit; Step is added after each pass. Limit and Step are
// evaluated on every pass.
type For struct {
	Var   symbol.Name
	Init  Node
	Limit Node
	Step  Node
	Body  Node
}

func (x *For) Op() op.Code      { return op.ControlFor }
func (x *For) Children() []Node { return []Node{x.Init, x.Limit, x.Step, x.Body} }

func (x *For) Eval(scope *object.Scope) (object.Value, error) {
	outer := scope.NewLoopScope()
	start, stop, err := eval(outer, x.Init)
	if stop {
		return start, err
	}
	counter, err := outer.Define(x.Var, start.Copy())
	if err != nil {
		return nil, err
	}
	var last object.Value = object.NewVoid()
	for {
		inner := outer.NewChild()
		limit, stop, err := eval(inner, x.Limit)
		if stop {
			return limit, err
		}
		cmp, err := counter.Get().Compare(limit)
		if err != nil {
			return nil, err
		}
		if cmp >= 0 {
			return last, nil
		}
		v, stop, err := eval(inner, x.Body)
		if stop {
			return v, err
		}
		last = v
		step, stop, err := eval(inner, x.Step)
		if stop {
			return step, err
		}
		next, err := counter.Get().Add(step)
		if err != nil {
			return nil, err
		}
		counter.Set(next)
	}
}

func (x *For) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.ControlFor, m)
	e.name(x.Var)
	e.node(x.Init)
	e.node(x.Limit)
	e.node(x.Step)
	e.node(x.Body)
	return e.done()
}

// ForIn binds Var to a copy of each item of Range in turn and evaluates
// Body. The items are those present when the loop starts.
type ForIn struct {
	Var   symbol.Name
	Range Node
	Body  Node
}

func (x *ForIn) Op() op.Code      { return op.ControlForIn }
func (x *ForIn) Children() []Node { return []Node{x.Range, x.Body} }

func (x *ForIn) Eval(scope *object.Scope) (object.Value, error) {
	r, stop, err := eval(scope, x.Range)
	if stop {
		return r, err
	}
	iter, ok := r.(object.Iterable)
	if !ok {
		return nil, object.TypeErrorf("%s is not iterable", r.Type())
	}
	items := slices.Clone(iter.Items())
	outer := scope.NewLoopScope()
	item, err := outer.Define(x.Var, object.NewVoid())
	if err != nil {
		return nil, err
	}
	var last object.Value = object.NewVoid()
	for _, value := range items {
		item.Set(value.Copy())
		v, stop, err := eval(outer.NewChild(), x.Body)
		if stop {
			return v, err
		}
		last = v
	}
	return last, nil
}

func (x *ForIn) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.ControlForIn, m)
	e.name(x.Var)
	e.node(x.Range)
	e.node(x.Body)
	return e.done()
}

// Try evaluates Body. When Body raises a language error or throws, Catch
// is evaluated with the error or thrown value bound to Binding, if one is
// named. Host errors pass through.
type Try struct {
	Body    Node
	Binding symbol.Name
	Catch   Node
}

func (x *Try) Op() op.Code      { return op.ControlTry }
func (x *Try) Children() []Node { return []Node{x.Body, x.Catch} }

func (x *Try) Eval(scope *object.Scope) (object.Value, error) {
	v, _, err := eval(scope.NewChild(), x.Body)
	if err == nil {
		return v, nil
	}
	caught, ok := object.Catch(err)
	if !ok {
		return nil, err
	}
	child := scope.NewChild()
	if !x.Binding.IsEmpty() {
		if _, err := child.Define(x.Binding, caught); err != nil {
			return nil, err
		}
	}
	v, _, err = eval(child, x.Catch)
	return v, err
}

func (x *Try) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.ControlTry, m)
	e.node(x.Body)
	e.boolean(!x.Binding.IsEmpty())
	if !x.Binding.IsEmpty() {
		e.name(x.Binding)
	}
	e.node(x.Catch)
	return e.done()
}

// Throw raises the value of X.
type Throw struct {
	X Node
}

func (x *Throw) Op() op.Code      { return op.ControlThrow }
func (x *Throw) Children() []Node { return []Node{x.X} }

func (x *Throw) Eval(scope *object.Scope) (object.Value, error) {
	v, stop, err := eval(scope, x.X)
	if stop {
		return v, err
	}
	return nil, &object.Thrown{Value: v}
}

func (x *Throw) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.ControlThrow, m)
	e.node(x.X)
	return e.done()
}

// Return signals the enclosing function call to finish with the value of X.
type Return struct {
	X Node
}

func (x *Return) Op() op.Code      { return op.ControlReturn }
func (x *Return) Children() []Node { return []Node{x.X} }

func (x *Return) Eval(scope *object.Scope) (object.Value, error) {
	v, stop, err := eval(scope, x.X)
	if stop {
		return v, err
	}
	scope.Return()
	return v, nil
}

func (x *Return) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.ControlReturn, m)
	e.node(x.X)
	return e.done()
}

// Break signals the enclosing loop to finish with the value of X.
type Break struct {
	X Node
}

func (x *Break) Op() op.Code      { return op.ControlBreak }
func (x *Break) Children() []Node { return []Node{x.X} }

func (x *Break) Eval(scope *object.Scope) (object.Value, error) {
	v, stop, err := eval(scope, x.X)
	if stop {
		return v, err
	}
	scope.Break()
	return v, nil
}

func (x *Break) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.ControlBreak, m)
	e.node(x.X)
	return e.done()
}
