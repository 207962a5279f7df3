// Package ast defines the Creek expression tree.
//
// Every node can be evaluated directly against a scope, and encoded to and
// decoded from bytecode. Both paths go through the same opcode table, so a
// tree that is encoded and decoded again evaluates exactly like the
// original.
//
// Return and break do not unwind the Go stack. They set a signal shared by
// the scopes of the enclosing call or loop; every compound node checks the
// signal after each child it evaluates and, when set, stops and passes the
// child's value up unchanged.
package ast

import (
	"errors"
	"fmt"

	"github.com/creek-lang/creek/bytecode"
	"github.com/creek-lang/creek/object"
	"github.com/creek-lang/creek/op"
	"github.com/creek-lang/creek/symbol"
)

// ErrNilNode is returned when a required child expression is missing.
var ErrNilNode = errors.New("nil expression")

// Node is an expression in the tree.
type Node interface {
	// Op returns the opcode the node is encoded with.
	Op() op.Code

	// Eval evaluates the node against scope.
	Eval(scope *object.Scope) (object.Value, error)

	// Encode returns the bytecode for the node and its children. Names are
	// numbered through m.
	Encode(m *symbol.Map) (*bytecode.Buffer, error)

	// Children returns the child expressions in encoding order. Required
	// children are always present, even when nil; optional ones are left
	// out when absent.
	Children() []Node
}

// eval evaluates n and reports whether the caller must stop because a
// return or break is unwinding through scope.
func eval(scope *object.Scope, n Node) (object.Value, bool, error) {
	if n == nil {
		return nil, true, ErrNilNode
	}
	v, err := n.Eval(scope)
	if err != nil {
		return nil, true, err
	}
	return v, scope.IsBreaking(), nil
}

// evalAll evaluates nodes left to right. When a return or break interrupts
// the list, the interrupting value is returned and stop is true.
func evalAll(scope *object.Scope, nodes []Node) (values []object.Value, last object.Value, stop bool, err error) {
	values = make([]object.Value, 0, len(nodes))
	for _, n := range nodes {
		v, stop, err := eval(scope, n)
		if stop {
			return nil, v, true, err
		}
		values = append(values, v)
	}
	return values, nil, false, nil
}

// Encode returns the bytecode of n.
func Encode(n Node, m *symbol.Map) (*bytecode.Buffer, error) {
	if n == nil {
		return nil, ErrNilNode
	}
	return n.Encode(m)
}

// encoder accumulates one node's encoding. The first error sticks and
// later writes are skipped.
type encoder struct {
	buf *bytecode.Buffer
	m   *symbol.Map
	err error
}

func newEncoder(code op.Code, m *symbol.Map) *encoder {
	e := &encoder{buf: bytecode.NewBuffer(nil), m: m}
	e.buf.WriteOp(code)
	return e
}

func (e *encoder) node(n Node) {
	if e.err != nil {
		return
	}
	if n == nil {
		e.err = ErrNilNode
		return
	}
	b, err := n.Encode(e.m)
	if err != nil {
		e.err = err
		return
	}
	e.buf.Append(b)
}

// optional encodes n, or a void literal when n is nil.
func (e *encoder) optional(n Node) {
	if n == nil {
		n = &Void{}
	}
	e.node(n)
}

func (e *encoder) count(n int) {
	e.buf.WriteInt32(int32(n))
}

func (e *encoder) nodes(ns []Node) {
	e.count(len(ns))
	for _, n := range ns {
		e.node(n)
	}
}

func (e *encoder) name(n symbol.Name) {
	e.buf.WriteInt32(e.m.ID(n))
}

func (e *encoder) names(ns []symbol.Name) {
	e.count(len(ns))
	for _, n := range ns {
		e.name(n)
	}
}

func (e *encoder) boolean(b bool) {
	e.buf.WriteBool(b)
}

func (e *encoder) number(f float64) {
	e.buf.WriteFloat64(f)
}

func (e *encoder) str(s string) {
	if e.err != nil {
		return
	}
	e.err = e.buf.WriteString(s)
}

func (e *encoder) done() (*bytecode.Buffer, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.buf, nil
}

func opError(code op.Code, kind string) error {
	return fmt.Errorf("%s is not a valid %s operator", code, kind)
}
