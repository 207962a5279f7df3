package object

import (
	"cmp"
	"strconv"
)

// String wraps a byte string and implements Value.
type String struct {
	base
	value string
}

func NewString(value string) *String {
	return &String{base: base{STRING}, value: value}
}

func (s *String) Value() string {
	return s.value
}

func (s *String) String() string {
	return s.value
}

func (s *String) Inspect() string {
	return strconv.Quote(s.value)
}

func (s *String) Copy() Value {
	return NewString(s.value)
}

func (s *String) Bool() (bool, error) {
	return true, nil
}

func (s *String) Compare(other Value) (int, error) {
	o, ok := other.(*String)
	if !ok {
		return CompareTypes(s, other), nil
	}
	return cmp.Compare(s.value, o.value), nil
}

func (s *String) Add(other Value) (Value, error) {
	o, ok := other.(*String)
	if !ok {
		return nil, TypeErrorf("unsupported operand types for add: string and %s", other.Type())
	}
	return NewString(s.value + o.value), nil
}

// Mul repeats the string cyclically to len(s)*factor bytes, so fractional
// factors are allowed.
func (s *String) Mul(other Value) (Value, error) {
	o, ok := other.(*Number)
	if !ok {
		return nil, TypeErrorf("unsupported operand types for mul: string and %s", other.Type())
	}
	if o.value < 0 {
		return nil, ValueErrorf("negative repeat factor %s", o.Inspect())
	}
	if len(s.value) == 0 {
		return NewString(""), nil
	}
	size := int(float64(len(s.value)) * o.value)
	out := make([]byte, size)
	for i := range out {
		out[i] = s.value[i%len(s.value)]
	}
	return NewString(string(out)), nil
}

func (s *String) position(key Value) (int, error) {
	pos, err := AsInt(key)
	if err != nil {
		return 0, err
	}
	if pos < 0 {
		pos += len(s.value)
	}
	if pos < 0 || pos >= len(s.value) {
		return 0, ValueErrorf("string index %s out of range", key.Inspect())
	}
	return pos, nil
}

func (s *String) GetIndex(key Value) (Value, error) {
	pos, err := s.position(key)
	if err != nil {
		return nil, err
	}
	return NewString(s.value[pos : pos+1]), nil
}

// SetIndex replaces one byte. The new byte is the number's value or the
// first byte of a string.
func (s *String) SetIndex(key, v Value) (Value, error) {
	pos, err := s.position(key)
	if err != nil {
		return nil, err
	}
	var c byte
	switch v := v.(type) {
	case *Number:
		c = byte(v.Int())
	case *String:
		if len(v.value) == 0 {
			return nil, ValueErrorf("cannot assign an empty string to a string index")
		}
		c = v.value[0]
	default:
		return nil, TypeErrorf("cannot assign %s to a string index", v.Type())
	}
	b := []byte(s.value)
	b[pos] = c
	s.value = string(b)
	return v, nil
}
