package object

import "github.com/creek-lang/creek/symbol"

// Identifier is a first-class symbol value.
type Identifier struct {
	base
	name symbol.Name
}

func NewIdentifier(name symbol.Name) *Identifier {
	return &Identifier{base: base{IDENTIFIER}, name: name}
}

func (i *Identifier) Value() symbol.Name {
	return i.name
}

func (i *Identifier) Inspect() string {
	return "@" + i.name.String()
}

func (i *Identifier) Copy() Value {
	return NewIdentifier(i.name)
}

func (i *Identifier) Bool() (bool, error) {
	return !i.name.IsEmpty(), nil
}

func (i *Identifier) Compare(other Value) (int, error) {
	o, ok := other.(*Identifier)
	if !ok {
		return CompareTypes(i, other), nil
	}
	return i.name.Compare(o.name), nil
}
