package object

import (
	"cmp"
	"sort"
	"strings"

	"github.com/creek-lang/creek/symbol"
)

// Map is an ordered associative container keyed by any comparable value.
// Keys are kept sorted by Compare. Copies share the same backing storage.
type Map struct {
	base
	data *mapData
}

type mapData struct {
	keys   []Value
	values []Value
}

func NewMap() *Map {
	return &Map{base: base{MAP}, data: &mapData{}}
}

func (m *Map) Len() int {
	return len(m.data.keys)
}

// Keys returns the keys in order. The slice must not be modified.
func (m *Map) Keys() []Value {
	return m.data.keys
}

// Items returns the keys so a for-in loop walks them in order.
func (m *Map) Items() []Value {
	return m.data.keys
}

func (m *Map) find(key Value) (int, bool, error) {
	var cmpErr error
	i := sort.Search(len(m.data.keys), func(i int) bool {
		c, err := m.data.keys[i].Compare(key)
		if err != nil && cmpErr == nil {
			cmpErr = err
		}
		return c >= 0
	})
	if cmpErr != nil {
		return 0, false, cmpErr
	}
	if i < len(m.data.keys) {
		c, err := m.data.keys[i].Compare(key)
		if err != nil {
			return 0, false, err
		}
		return i, c == 0, nil
	}
	return i, false, nil
}

// Get returns the value stored under key.
func (m *Map) Get(key Value) (Value, bool, error) {
	i, found, err := m.find(key)
	if err != nil || !found {
		return nil, false, err
	}
	return m.data.values[i], true, nil
}

// Set stores a copy of value under a copy of key.
func (m *Map) Set(key, value Value) error {
	i, found, err := m.find(key)
	if err != nil {
		return err
	}
	if found {
		m.data.values[i] = value.Copy()
		return nil
	}
	d := m.data
	d.keys = append(d.keys, nil)
	d.values = append(d.values, nil)
	copy(d.keys[i+1:], d.keys[i:])
	copy(d.values[i+1:], d.values[i:])
	d.keys[i] = key.Copy()
	d.values[i] = value.Copy()
	return nil
}

// Delete removes key and reports whether it was present.
func (m *Map) Delete(key Value) (bool, error) {
	i, found, err := m.find(key)
	if err != nil || !found {
		return false, err
	}
	d := m.data
	d.keys = append(d.keys[:i], d.keys[i+1:]...)
	d.values = append(d.values[:i], d.values[i+1:]...)
	return true, nil
}

// Clear removes every entry.
func (m *Map) Clear() {
	m.data.keys = nil
	m.data.values = nil
}

func (m *Map) Inspect() string {
	var b strings.Builder
	b.WriteString("{")
	for i, k := range m.data.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k.Inspect())
		b.WriteString(": ")
		b.WriteString(m.data.values[i].Inspect())
	}
	b.WriteString("}")
	return b.String()
}

func (m *Map) Copy() Value {
	return &Map{base: m.base, data: m.data}
}

func (m *Map) Bool() (bool, error) {
	return true, nil
}

// Compare orders maps by their key/value pairs in key order.
func (m *Map) Compare(other Value) (int, error) {
	o, ok := other.(*Map)
	if !ok {
		return CompareTypes(m, other), nil
	}
	a, b := m.data, o.data
	for i := 0; i < len(a.keys) && i < len(b.keys); i++ {
		c, err := a.keys[i].Compare(b.keys[i])
		if err != nil || c != 0 {
			return c, err
		}
		c, err = a.values[i].Compare(b.values[i])
		if err != nil || c != 0 {
			return c, err
		}
	}
	return cmp.Compare(len(a.keys), len(b.keys)), nil
}

func (m *Map) GetIndex(key Value) (Value, error) {
	v, ok, err := m.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ValueErrorf("key not found: %s", key.Inspect())
	}
	return v.Copy(), nil
}

func (m *Map) SetIndex(key, value Value) (Value, error) {
	if err := m.Set(key, value); err != nil {
		return nil, err
	}
	return value, nil
}

// GetAttr looks the name up as an identifier key.
func (m *Map) GetAttr(name symbol.Name) (Value, error) {
	return m.GetIndex(NewIdentifier(name))
}

func (m *Map) SetAttr(name symbol.Name, value Value) (Value, error) {
	return m.SetIndex(NewIdentifier(name), value)
}
