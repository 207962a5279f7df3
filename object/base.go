package object

import (
	"cmp"

	"github.com/creek-lang/creek/symbol"
)

// base supplies the unsupported outcome for every optional capability.
// Concrete types embed it and override what they implement.
type base struct {
	typ Type
}

func (b base) Type() Type {
	return b.typ
}

func (b base) unsupported(op string) error {
	return Unsupported(b.typ, op)
}

func (b base) Bool() (bool, error) {
	return false, b.unsupported("bool")
}

func (b base) Compare(other Value) (int, error) {
	if other.Type() != b.typ {
		return cmp.Compare(string(b.typ), string(other.Type())), nil
	}
	return 0, b.unsupported("cmp")
}

func (b base) Add(other Value) (Value, error) { return nil, b.unsupported("add") }
func (b base) Sub(other Value) (Value, error) { return nil, b.unsupported("sub") }
func (b base) Mul(other Value) (Value, error) { return nil, b.unsupported("mul") }
func (b base) Div(other Value) (Value, error) { return nil, b.unsupported("div") }
func (b base) Mod(other Value) (Value, error) { return nil, b.unsupported("mod") }
func (b base) Exp(other Value) (Value, error) { return nil, b.unsupported("exp") }
func (b base) Negate() (Value, error) { return nil, b.unsupported("unm") }

func (b base) BitAnd(other Value) (Value, error) { return nil, b.unsupported("bit_and") }
func (b base) BitOr(other Value) (Value, error) { return nil, b.unsupported("bit_or") }
func (b base) BitXor(other Value) (Value, error) { return nil, b.unsupported("bit_xor") }
func (b base) BitNot() (Value, error) { return nil, b.unsupported("bit_not") }
func (b base) ShiftLeft(other Value) (Value, error) { return nil, b.unsupported("bit_left_shift") }
func (b base) ShiftRight(other Value) (Value, error) { return nil, b.unsupported("bit_right_shift") }

func (b base) Call(args []Value) (Value, error) {
	return nil, b.unsupported("call")
}

func (b base) GetIndex(key Value) (Value, error) {
	return nil, b.unsupported("index get")
}

func (b base) SetIndex(key, v Value) (Value, error) {
	return nil, b.unsupported("index set")
}

func (b base) GetAttr(name symbol.Name) (Value, error) {
	return nil, b.unsupported("attr get")
}

func (b base) SetAttr(name symbol.Name, v Value) (Value, error) {
	return nil, b.unsupported("attr set")
}
