package object

// Variable is a slot that owns exactly one value.
type Variable struct {
	value Value
}

func NewVariable(value Value) *Variable {
	return &Variable{value: value}
}

// Get returns the stored value without copying it.
func (v *Variable) Get() Value {
	return v.value
}

// Copy returns a copy of the stored value.
func (v *Variable) Copy() Value {
	if v.value == nil {
		return NewVoid()
	}
	return v.value.Copy()
}

// Set replaces the stored value.
func (v *Variable) Set(value Value) {
	v.value = value
}

// Take moves the value out, leaving the variable empty.
func (v *Variable) Take() Value {
	value := v.value
	v.value = nil
	return value
}

// IsEmpty reports whether the variable holds no value.
func (v *Variable) IsEmpty() bool {
	return v.value == nil
}
