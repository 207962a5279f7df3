package object

import (
	"cmp"
	"math"
	"strconv"
)

// Number wraps float64 and implements Value. Bitwise operations and modulo
// truncate both operands to int64 first.
type Number struct {
	base
	value float64
}

func NewNumber(value float64) *Number {
	return &Number{base: base{NUMBER}, value: value}
}

func (n *Number) Value() float64 {
	return n.value
}

// Int returns the value truncated toward zero.
func (n *Number) Int() int64 {
	return int64(n.value)
}

func (n *Number) Inspect() string {
	return strconv.FormatFloat(n.value, 'f', -1, 64)
}

func (n *Number) Copy() Value {
	return NewNumber(n.value)
}

func (n *Number) Bool() (bool, error) {
	return n.value != 0, nil
}

func (n *Number) Compare(other Value) (int, error) {
	o, ok := other.(*Number)
	if !ok {
		return CompareTypes(n, other), nil
	}
	return cmp.Compare(n.value, o.value), nil
}

func (n *Number) operand(op string, other Value) (float64, error) {
	o, ok := other.(*Number)
	if !ok {
		return 0, TypeErrorf("unsupported operand types for %s: number and %s", op, other.Type())
	}
	return o.value, nil
}

func (n *Number) intOperand(op string, other Value) (int64, error) {
	v, err := n.operand(op, other)
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

func (n *Number) Add(other Value) (Value, error) {
	v, err := n.operand("add", other)
	if err != nil {
		return nil, err
	}
	return NewNumber(n.value + v), nil
}

func (n *Number) Sub(other Value) (Value, error) {
	v, err := n.operand("sub", other)
	if err != nil {
		return nil, err
	}
	return NewNumber(n.value - v), nil
}

func (n *Number) Mul(other Value) (Value, error) {
	v, err := n.operand("mul", other)
	if err != nil {
		return nil, err
	}
	return NewNumber(n.value * v), nil
}

// Div follows IEEE-754: dividing by zero yields an infinity or NaN.
func (n *Number) Div(other Value) (Value, error) {
	v, err := n.operand("div", other)
	if err != nil {
		return nil, err
	}
	return NewNumber(n.value / v), nil
}

func (n *Number) Mod(other Value) (Value, error) {
	v, err := n.intOperand("mod", other)
	if err != nil {
		return nil, err
	}
	if v == 0 {
		return nil, ValueErrorf("modulo by zero")
	}
	return NewNumber(float64(n.Int() % v)), nil
}

func (n *Number) Exp(other Value) (Value, error) {
	v, err := n.operand("exp", other)
	if err != nil {
		return nil, err
	}
	return NewNumber(math.Pow(n.value, v)), nil
}

func (n *Number) Negate() (Value, error) {
	return NewNumber(-n.value), nil
}

func (n *Number) BitAnd(other Value) (Value, error) {
	v, err := n.intOperand("bit_and", other)
	if err != nil {
		return nil, err
	}
	return NewNumber(float64(n.Int() & v)), nil
}

func (n *Number) BitOr(other Value) (Value, error) {
	v, err := n.intOperand("bit_or", other)
	if err != nil {
		return nil, err
	}
	return NewNumber(float64(n.Int() | v)), nil
}

func (n *Number) BitXor(other Value) (Value, error) {
	v, err := n.intOperand("bit_xor", other)
	if err != nil {
		return nil, err
	}
	return NewNumber(float64(n.Int() ^ v)), nil
}

func (n *Number) BitNot() (Value, error) {
	return NewNumber(float64(^n.Int())), nil
}

func (n *Number) ShiftLeft(other Value) (Value, error) {
	v, err := n.intOperand("bit_left_shift", other)
	if err != nil {
		return nil, err
	}
	if v < 0 {
		return nil, ValueErrorf("negative shift count %d", v)
	}
	return NewNumber(float64(n.Int() << uint64(v))), nil
}

func (n *Number) ShiftRight(other Value) (Value, error) {
	v, err := n.intOperand("bit_right_shift", other)
	if err != nil {
		return nil, err
	}
	if v < 0 {
		return nil, ValueErrorf("negative shift count %d", v)
	}
	return NewNumber(float64(n.Int() >> uint64(v))), nil
}

// AsInt returns v truncated to an int, or a type error when v is not a
// number.
func AsInt(v Value) (int, error) {
	n, ok := v.(*Number)
	if !ok {
		return 0, TypeErrorf("expected number, got %s", v.Type())
	}
	return int(n.value), nil
}
