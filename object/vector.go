package object

import (
	"cmp"
	"strings"
)

// Vector is an ordered sequence. Copies share the same backing storage, so
// changes made through one copy are visible through all of them.
type Vector struct {
	base
	items *[]Value
}

// NewVector creates a vector holding the given items. The slice is owned by
// the vector afterwards.
func NewVector(items []Value) *Vector {
	if items == nil {
		items = []Value{}
	}
	return &Vector{base: base{VECTOR}, items: &items}
}

// Items returns the current elements. The slice must not be modified.
func (v *Vector) Items() []Value {
	return *v.items
}

func (v *Vector) Len() int {
	return len(*v.items)
}

// Append adds an item at the end.
func (v *Vector) Append(item Value) {
	*v.items = append(*v.items, item)
}

// Insert places an item before position pos.
func (v *Vector) Insert(pos int, item Value) error {
	items := *v.items
	if pos < 0 {
		pos += len(items)
	}
	if pos < 0 || pos > len(items) {
		return ValueErrorf("vector index %d out of range", pos)
	}
	items = append(items, nil)
	copy(items[pos+1:], items[pos:])
	items[pos] = item
	*v.items = items
	return nil
}

// Remove deletes and returns the item at pos.
func (v *Vector) Remove(pos int) (Value, error) {
	pos, err := v.position(pos)
	if err != nil {
		return nil, err
	}
	items := *v.items
	item := items[pos]
	*v.items = append(items[:pos], items[pos+1:]...)
	return item, nil
}

// Clear removes every item.
func (v *Vector) Clear() {
	*v.items = (*v.items)[:0]
}

func (v *Vector) Inspect() string {
	var b strings.Builder
	b.WriteString("[")
	for i, item := range *v.items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(item.Inspect())
	}
	b.WriteString("]")
	return b.String()
}

func (v *Vector) Copy() Value {
	return &Vector{base: v.base, items: v.items}
}

func (v *Vector) Bool() (bool, error) {
	return true, nil
}

// Compare orders vectors lexicographically.
func (v *Vector) Compare(other Value) (int, error) {
	o, ok := other.(*Vector)
	if !ok {
		return CompareTypes(v, other), nil
	}
	a, b := *v.items, *o.items
	for i := 0; i < len(a) && i < len(b); i++ {
		c, err := a[i].Compare(b[i])
		if err != nil || c != 0 {
			return c, err
		}
	}
	return cmp.Compare(len(a), len(b)), nil
}

func (v *Vector) position(pos int) (int, error) {
	n := len(*v.items)
	if pos < 0 {
		pos += n
	}
	if pos < 0 || pos >= n {
		return 0, ValueErrorf("vector index %d out of range", pos)
	}
	return pos, nil
}

func (v *Vector) GetIndex(key Value) (Value, error) {
	pos, err := AsInt(key)
	if err != nil {
		return nil, err
	}
	if pos, err = v.position(pos); err != nil {
		return nil, err
	}
	return (*v.items)[pos].Copy(), nil
}

func (v *Vector) SetIndex(key, value Value) (Value, error) {
	pos, err := AsInt(key)
	if err != nil {
		return nil, err
	}
	if pos, err = v.position(pos); err != nil {
		return nil, err
	}
	(*v.items)[pos] = value.Copy()
	return value, nil
}
