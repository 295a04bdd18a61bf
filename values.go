// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// PinValues is a sparse set of pin states.
//
// The zero value is an empty set ready to use.
//
type PinValues struct {
	m     map[PinKey]bool
	names map[string]struct{}
}

// NewPinValues returns a new empty value set.
//
func NewPinValues() *PinValues {
	return &PinValues{
		m:     make(map[PinKey]bool),
		names: make(map[string]struct{}),
	}
}

// Set sets the state of pin name[index].
//
func (v *PinValues) Set(name string, index int, value bool) {
	if v.m == nil {
		v.m = make(map[PinKey]bool)
		v.names = make(map[string]struct{})
	}
	v.m[PinKey{name, index}] = value
	v.names[name] = struct{}{}
}

// Get returns the state of pin name[index].
//
// Get panics if the pin state was never set. Use Lookup if unsure.
//
func (v *PinValues) Get(name string, index int) bool {
	b, ok := v.m[PinKey{name, index}]
	if !ok {
		panic("read of unset pin " + PinKey{name, index}.String())
	}
	return b
}

// Lookup returns the state of pin name[index] and whether it was set.
//
func (v *PinValues) Lookup(name string, index int) (value, ok bool) {
	value, ok = v.m[PinKey{name, index}]
	return
}

// Len returns the number of pin states in the set.
//
func (v *PinValues) Len() int { return len(v.m) }

// Names returns the distinct pin group names in the set, sorted.
//
func (v *PinValues) Names() []string {
	names := make([]string, 0, len(v.names))
	for n := range v.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Clone returns a copy of v.
//
func (v *PinValues) Clone() *PinValues {
	c := &PinValues{
		m:     make(map[PinKey]bool, len(v.m)),
		names: make(map[string]struct{}, len(v.names)),
	}
	for k, b := range v.m {
		c.m[k] = b
	}
	for n := range v.names {
		c.names[n] = struct{}{}
	}
	return c
}

// SetBinary sets the states of the pin group name from a string of '0' and
// '1' characters. The first character sets index 0.
//
func (v *PinValues) SetBinary(name string, bits string) error {
	for i := 0; i < len(bits); i++ {
		if bits[i] != '0' && bits[i] != '1' {
			return errors.Errorf("invalid bit %q at position %d in %q for %s", bits[i], i, bits, name)
		}
	}
	for i := 0; i < len(bits); i++ {
		v.Set(name, i, bits[i] == '1')
	}
	return nil
}

// Binary returns the states of the pin group name as a string of '0' and
// '1' characters, starting at index 0 and stopping at the first unset index.
//
func (v *PinValues) Binary(name string) string {
	var b strings.Builder
	for i := 0; ; i++ {
		s, ok := v.m[PinKey{name, i}]
		if !ok {
			break
		}
		if s {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// SetUint sets the bits pins of group name to the given value. Pin 0 is lsb.
//
func (v *PinValues) SetUint(name string, bits int, value uint64) {
	for bit := 0; bit < bits; bit++ {
		v.Set(name, bit, value&(1<<uint(bit)) != 0)
	}
}

// Uint returns the pin group name as an unsigned integer. Pin 0 is lsb.
// Reading stops at the first unset index or after 64 bits.
//
func (v *PinValues) Uint(name string) uint64 {
	var out uint64
	for bit := 0; bit < 64; bit++ {
		s, ok := v.m[PinKey{name, bit}]
		if !ok {
			break
		}
		if s {
			out |= 1 << uint(bit)
		}
	}
	return out
}

// String returns one "name:bits" line per pin group, sorted by name. See
// Binary for the bits format.
//
func (v *PinValues) String() string {
	names := v.Names()
	lines := make([]string, len(names))
	for i, n := range names {
		lines[i] = n + ":" + v.Binary(n)
	}
	return strings.Join(lines, "\n")
}

// ParseValues parses a value dump as produced by PinValues.String.
// Blank lines are ignored.
//
func ParseValues(s string) (*PinValues, error) {
	v := NewPinValues()
	for n, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		i := strings.IndexByte(line, ':')
		if i <= 0 {
			return nil, errors.Errorf("line %d: expected name:bits, got %q", n+1, line)
		}
		if err := v.SetBinary(strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:])); err != nil {
			return nil, errors.Wrapf(err, "line %d", n+1)
		}
	}
	return v, nil
}
