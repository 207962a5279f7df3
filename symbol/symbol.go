// Package symbol interns identifier names.
//
// A Name is a process-wide handle for one distinct string. Names compare by
// id, never by text, and an id stays valid for the life of the process.
// The empty string is always interned as id 0.
package symbol

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownSymbol is returned when an id has never been interned.
var ErrUnknownSymbol = errors.New("unknown symbol")

// ID is the numeric identity of an interned name.
type ID int32

// Name is an interned identifier.
type Name struct {
	id ID
}

type table struct {
	mu    sync.RWMutex
	ids   map[string]ID
	names []string
}

var global = &table{
	ids:   map[string]ID{"": 0},
	names: []string{""},
}

// Intern returns the Name for s, registering it on first use.
func Intern(s string) Name {
	global.mu.RLock()
	id, ok := global.ids[s]
	global.mu.RUnlock()
	if ok {
		return Name{id: id}
	}
	global.mu.Lock()
	defer global.mu.Unlock()
	if id, ok := global.ids[s]; ok {
		return Name{id: id}
	}
	id = ID(len(global.names))
	global.names = append(global.names, s)
	global.ids[s] = id
	return Name{id: id}
}

// FromID returns the Name registered under id.
func FromID(id ID) (Name, error) {
	global.mu.RLock()
	defer global.mu.RUnlock()
	if id < 0 || int(id) >= len(global.names) {
		return Name{}, fmt.Errorf("%w: id %d", ErrUnknownSymbol, id)
	}
	return Name{id: id}, nil
}

// ID returns the process-wide id of the name.
func (n Name) ID() ID {
	return n.id
}

// String returns the interned text.
func (n Name) String() string {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.names[n.id]
}

// IsEmpty reports whether n is the reserved empty name.
func (n Name) IsEmpty() bool {
	return n.id == 0
}

// Compare orders names by id.
func (n Name) Compare(other Name) int {
	switch {
	case n.id < other.id:
		return -1
	case n.id > other.id:
		return 1
	default:
		return 0
	}
}
