package object

// Bool wraps bool and implements Value.
type Bool struct {
	base
	value bool
}

func NewBool(value bool) *Bool {
	return &Bool{base: base{BOOL}, value: value}
}

func (b *Bool) Value() bool {
	return b.value
}

func (b *Bool) Inspect() string {
	if b.value {
		return "true"
	}
	return "false"
}

func (b *Bool) Copy() Value {
	return NewBool(b.value)
}

func (b *Bool) Bool() (bool, error) {
	return b.value, nil
}

func (b *Bool) Compare(other Value) (int, error) {
	o, ok := other.(*Bool)
	if !ok {
		return CompareTypes(b, other), nil
	}
	switch {
	case b.value == o.value:
		return 0, nil
	case o.value:
		return -1, nil
	default:
		return 1, nil
	}
}
