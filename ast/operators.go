package ast

import (
	"github.com/creek-lang/creek/bytecode"
	"github.com/creek-lang/creek/object"
	"github.com/creek-lang/creek/op"
	"github.com/creek-lang/creek/symbol"
)

// Binary applies an arithmetic, bitwise, comparison or boolean xor operator
// to two operands. X is evaluated before Y.
type Binary struct {
	Operator op.Code
	X        Node
	Y        Node
}

func (x *Binary) Op() op.Code      { return x.Operator }
func (x *Binary) Children() []Node { return []Node{x.X, x.Y} }

func (x *Binary) Eval(scope *object.Scope) (object.Value, error) {
	if !isBinary(x.Operator) {
		return nil, opError(x.Operator, "binary")
	}
	l, stop, err := eval(scope, x.X)
	if stop {
		return l, err
	}
	r, stop, err := eval(scope, x.Y)
	if stop {
		return r, err
	}
	return binaryOp(x.Operator, l, r)
}

func (x *Binary) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	if !isBinary(x.Operator) {
		return nil, opError(x.Operator, "binary")
	}
	e := newEncoder(x.Operator, m)
	e.node(x.X)
	e.node(x.Y)
	return e.done()
}

func isBinary(code op.Code) bool {
	switch code {
	case op.Add, op.Sub, op.Mul, op.Div, op.Mod, op.Exp,
		op.BitAnd, op.BitOr, op.BitXor, op.BitShiftLeft, op.BitShiftRight,
		op.BoolXor,
		op.Cmp, op.EQ, op.NE, op.LT, op.LE, op.GT, op.GE:
		return true
	}
	return false
}

func binaryOp(code op.Code, l, r object.Value) (object.Value, error) {
	switch code {
	case op.Add:
		return l.Add(r)
	case op.Sub:
		return l.Sub(r)
	case op.Mul:
		return l.Mul(r)
	case op.Div:
		return l.Div(r)
	case op.Mod:
		return l.Mod(r)
	case op.Exp:
		return l.Exp(r)
	case op.BitAnd:
		return l.BitAnd(r)
	case op.BitOr:
		return l.BitOr(r)
	case op.BitXor:
		return l.BitXor(r)
	case op.BitShiftLeft:
		return l.ShiftLeft(r)
	case op.BitShiftRight:
		return l.ShiftRight(r)
	case op.BoolXor:
		a, err := l.Bool()
		if err != nil {
			return nil, err
		}
		b, err := r.Bool()
		if err != nil {
			return nil, err
		}
		return object.NewBool(a != b), nil
	}
	c, err := l.Compare(r)
	if err != nil {
		return nil, err
	}
	switch code {
	case op.Cmp:
		return object.NewNumber(float64(c)), nil
	case op.EQ:
		return object.NewBool(c == 0), nil
	case op.NE:
		return object.NewBool(c != 0), nil
	case op.LT:
		return object.NewBool(c < 0), nil
	case op.LE:
		return object.NewBool(c <= 0), nil
	case op.GT:
		return object.NewBool(c > 0), nil
	case op.GE:
		return object.NewBool(c >= 0), nil
	}
	return nil, opError(code, "binary")
}

// Unary applies negate, bitwise not or boolean not to one operand.
type Unary struct {
	Operator op.Code
	X        Node
}

func (x *Unary) Op() op.Code      { return x.Operator }
func (x *Unary) Children() []Node { return []Node{x.X} }

func (x *Unary) Eval(scope *object.Scope) (object.Value, error) {
	if !isUnary(x.Operator) {
		return nil, opError(x.Operator, "unary")
	}
	v, stop, err := eval(scope, x.X)
	if stop {
		return v, err
	}
	switch x.Operator {
	case op.Negate:
		return v.Negate()
	case op.BitNot:
		return v.BitNot()
	default:
		b, err := v.Bool()
		if err != nil {
			return nil, err
		}
		return object.NewBool(!b), nil
	}
}

func (x *Unary) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	if !isUnary(x.Operator) {
		return nil, opError(x.Operator, "unary")
	}
	e := newEncoder(x.Operator, m)
	e.node(x.X)
	return e.done()
}

func isUnary(code op.Code) bool {
	return code == op.Negate || code == op.BitNot || code == op.BoolNot
}

// And is the short-circuit boolean and. It yields X when X is false and Y
// otherwise, without converting either to a boolean.
type And struct {
	X Node
	Y Node
}

func (x *And) Op() op.Code      { return op.BoolAnd }
func (x *And) Children() []Node { return []Node{x.X, x.Y} }

func (x *And) Eval(scope *object.Scope) (object.Value, error) {
	l, stop, err := eval(scope, x.X)
	if stop {
		return l, err
	}
	ok, err := l.Bool()
	if err != nil {
		return nil, err
	}
	if !ok {
		return l, nil
	}
	r, _, err := eval(scope, x.Y)
	return r, err
}

func (x *And) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.BoolAnd, m)
	e.node(x.X)
	e.node(x.Y)
	return e.done()
}

// Or is the short-circuit boolean or. It yields X when X is true and Y
// otherwise.
type Or struct {
	X Node
	Y Node
}

func (x *Or) Op() op.Code      { return op.BoolOr }
func (x *Or) Children() []Node { return []Node{x.X, x.Y} }

func (x *Or) Eval(scope *object.Scope) (object.Value, error) {
	l, stop, err := eval(scope, x.X)
	if stop {
		return l, err
	}
	ok, err := l.Bool()
	if err != nil {
		return nil, err
	}
	if ok {
		return l, nil
	}
	r, _, err := eval(scope, x.Y)
	return r, err
}

func (x *Or) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.BoolOr, m)
	e.node(x.X)
	e.node(x.Y)
	return e.done()
}
