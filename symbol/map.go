package symbol

import (
	"fmt"
	"sort"
)

// Entry is one row of a file's symbol table.
type Entry struct {
	ID   int32
	Name string
}

// Map numbers the names referenced by one bytecode file.
//
// While encoding, ID hands out compact local ids on first reference. While
// decoding, Register rebuilds the table from the file and Global resolves a
// local id back to the process-wide Name, so two files that mention the same
// text end up sharing one identity.
type Map struct {
	byName map[string]int32
	byID   map[int32]string
	next   int32
}

// NewMap returns an empty table.
func NewMap() *Map {
	return &Map{
		byName: map[string]int32{},
		byID:   map[int32]string{},
	}
}

// ID returns the local id for n, assigning the next free one if needed.
func (m *Map) ID(n Name) int32 {
	s := n.String()
	if id, ok := m.byName[s]; ok {
		return id
	}
	id := m.next
	for {
		if _, taken := m.byID[id]; !taken {
			break
		}
		id++
	}
	m.next = id + 1
	m.byName[s] = id
	m.byID[id] = s
	return id
}

// Register records a local id read from a file.
func (m *Map) Register(id int32, name string) error {
	if prev, ok := m.byID[id]; ok {
		return fmt.Errorf("duplicate symbol id %d (%q and %q)", id, prev, name)
	}
	if prev, ok := m.byName[name]; ok {
		return fmt.Errorf("duplicate symbol %q (ids %d and %d)", name, prev, id)
	}
	m.byID[id] = name
	m.byName[name] = id
	return nil
}

// Name returns the text registered under a local id.
func (m *Map) Name(id int32) (string, error) {
	s, ok := m.byID[id]
	if !ok {
		return "", fmt.Errorf("%w: local id %d", ErrUnknownSymbol, id)
	}
	return s, nil
}

// Global resolves a local id to the interned Name.
func (m *Map) Global(id int32) (Name, error) {
	s, err := m.Name(id)
	if err != nil {
		return Name{}, err
	}
	return Intern(s), nil
}

// Len returns the number of registered names.
func (m *Map) Len() int {
	return len(m.byID)
}

// Entries returns the table in ascending local-id order.
func (m *Map) Entries() []Entry {
	entries := make([]Entry, 0, len(m.byID))
	for id, name := range m.byID {
		entries = append(entries, Entry{ID: id, Name: name})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	return entries
}
