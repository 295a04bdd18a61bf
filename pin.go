// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"sort"
	"strconv"
)

// A PinKey identifies a pin within a gate: the name of its pin group and its
// index in that group.
//
type PinKey struct {
	Name  string
	Index int
}

// Key returns the PinKey for name[index].
//
func Key(name string, index int) PinKey {
	return PinKey{name, index}
}

// Less reports whether k sorts before o. Keys are ordered by name, then index.
//
func (k PinKey) Less(o PinKey) bool {
	if k.Name != o.Name {
		return k.Name < o.Name
	}
	return k.Index < o.Index
}

func (k PinKey) String() string {
	return k.Name + "[" + strconv.Itoa(k.Index) + "]"
}

func sortKeys(keys []PinKey) {
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
}

// PinKind is the kind of a pin.
//
type PinKind int

// Pin kinds.
const (
	Input PinKind = iota
	Internal
	Output
)

func (k PinKind) String() string {
	switch k {
	case Input:
		return "input"
	case Internal:
		return "internal"
	case Output:
		return "output"
	}
	return "PinKind(" + strconv.Itoa(int(k)) + ")"
}

// Direction tells on which side of a gate boundary a connection goes.
//
type Direction int

// Connection directions.
const (
	NotConnected Direction = iota
	ToParent               // pin of a part, connected to a pin of its container
	ToChild                // pin of a container, connected to a pin of one of its parts
)

// A Connection links a pin to its counterpart on the other side of a gate
// boundary. For ToChild connections, Child is the index of the part.
//
type Connection struct {
	Dir   Direction
	Child int
	Key   PinKey
}

// Pin is a single bit terminal of a gate.
//
type Pin struct {
	Name string
	// Index of the pin in its group.
	Index int
	// Size is the declared width of the pin group.
	Size int
	Kind PinKind
	// A Clocked input is only sampled on the clock edge and does not
	// contribute to the value of the outputs in the same clock cycle.
	Clocked bool
	Conn    Connection
}

// Key returns the pin's key.
//
func (p *Pin) Key() PinKey { return PinKey{p.Name, p.Index} }

// PinMap holds the pins declared by a gate.
//
type PinMap map[PinKey]*Pin

func (m PinMap) insert(kind PinKind, name string, size, index int) *Pin {
	p := &Pin{Name: name, Index: index, Size: size, Kind: kind}
	m[p.Key()] = p
	return p
}

// keys returns all keys in m, sorted.
//
func (m PinMap) keys() []PinKey {
	keys := make([]PinKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortKeys(keys)
	return keys
}
