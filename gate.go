// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"strconv"

	"github.com/pkg/errors"
)

// A Primitive implements the behavior of a primitive gate.
//
// Evaluate returns the gate's outputs for the given inputs. It must not
// change any state held by the primitive: for a clocked primitive, outputs
// depend on the state latched by the last clock edge.
//
type Primitive interface {
	Evaluate(in *PinValues) *PinValues
}

// A ClockedPrimitive is a Primitive holding state.
//
// Latch is called once per clock cycle, on the clock edge, with all the
// gate's inputs, including the clocked ones.
//
type ClockedPrimitive interface {
	Primitive
	Latch(in *PinValues)
}

// PrimitiveFunc adapts an ordinary function to the Primitive interface.
//
type PrimitiveFunc func(in *PinValues) *PinValues

// Evaluate calls f(in).
//
func (f PrimitiveFunc) Evaluate(in *PinValues) *PinValues { return f(in) }

type phase int

const (
	awaitingTick phase = iota
	awaitingTock
)

// A Gate is a black box exposing named, indexed pins. A gate is either
// primitive, when its behavior is implemented by a Primitive, or composite,
// when its behavior is entirely defined by its parts and their wiring.
//
// The life cycle of a gate is: create it with NewGate, declare its pins, add
// parts and connect them (or set its primitive implementation), call Compile
// once, then run it any number of times.
//
type Gate struct {
	Name string

	pins  PinMap
	parts []*Gate
	prim  Primitive

	compiled bool
	stateful bool
	tick     []GateRunPlan
	latch    []GateRunPlan
	tock     []GateRunPlan
	undriven map[PinKey]bool // outputs written by no part

	phase phase
	in    *PinValues // inputs captured by Tick
}

// NewGate returns a new empty gate.
//
func NewGate(name string) *Gate {
	return &Gate{
		Name: name,
		pins: make(PinMap),
	}
}

func (g *Gate) mutable() error {
	if g.compiled {
		return errors.Wrap(ErrAlreadyCompiled, g.Name)
	}
	return nil
}

// InsertPin declares the pin name[index] of the given kind. size is the width
// of the pin group. A multi-bit bus is declared by calling InsertPin for every
// index. Declaring an existing pin replaces it and drops its connection.
//
func (g *Gate) InsertPin(kind PinKind, name string, size, index int) error {
	if err := g.mutable(); err != nil {
		return err
	}
	if name == "" || index < 0 || index >= size {
		return errors.Errorf("%s: invalid pin %s of size %d", g.Name, PinKey{name, index}, size)
	}
	g.pins.insert(kind, name, size, index)
	return nil
}

// InsertClockedPin declares a clocked input pin. Clocked inputs of primitive
// gates are only passed to ClockedPrimitive.Latch. Composite gates find out
// their clocked inputs on their own in Compile.
//
func (g *Gate) InsertClockedPin(name string, size, index int) error {
	if err := g.InsertPin(Input, name, size, index); err != nil {
		return err
	}
	g.pins[PinKey{name, index}].Clocked = true
	return nil
}

// ExistsPin returns true if the pin is declared.
//
func (g *Gate) ExistsPin(k PinKey) bool {
	_, ok := g.pins[k]
	return ok
}

// GetPin returns a copy of the declared pin with key k.
//
func (g *Gate) GetPin(k PinKey) (Pin, bool) {
	p, ok := g.pins[k]
	if !ok {
		return Pin{}, false
	}
	return *p, true
}

// Width returns the declared width of the pin group name, or 0 if no such
// group exists.
//
func (g *Gate) Width(name string) int {
	if p, ok := g.pins[PinKey{name, 0}]; ok {
		return p.Size
	}
	return 0
}

// Pins returns copies of all pins of the given kind, sorted by key.
//
func (g *Gate) Pins(kind PinKind) []Pin {
	var out []Pin
	for _, k := range g.pins.keys() {
		if p := g.pins[k]; p.Kind == kind {
			out = append(out, *p)
		}
	}
	return out
}

// SetPrimitive makes g a primitive gate implemented by p.
//
func (g *Gate) SetPrimitive(p Primitive) error {
	if err := g.mutable(); err != nil {
		return err
	}
	if len(g.parts) > 0 {
		return errors.Errorf("%s: a gate with parts cannot be primitive", g.Name)
	}
	g.prim = p
	return nil
}

// IsPrimitive returns true if g is a primitive gate.
//
func (g *Gate) IsPrimitive() bool { return g.prim != nil }

// AddGate adds part as a part of g and returns its index. g takes ownership of
// part: it must not be added to any other gate.
//
func (g *Gate) AddGate(part *Gate) (int, error) {
	if err := g.mutable(); err != nil {
		return -1, err
	}
	if g.prim != nil {
		return -1, errors.Errorf("%s: cannot add parts to a primitive gate", g.Name)
	}
	if part == nil || part == g {
		return -1, errors.Errorf("%s: invalid part", g.Name)
	}
	g.parts = append(g.parts, part)
	return len(g.parts) - 1, nil
}

// NumParts returns the number of parts in g.
//
func (g *Gate) NumParts() int { return len(g.parts) }

// Part returns the part at index i.
//
func (g *Gate) Part(i int) *Gate { return g.parts[i] }

func (g *Gate) partName(i int) string {
	return g.parts[i].Name + "#" + strconv.Itoa(i)
}

// ConnectPins connects pin pk of g to pin ck of the part at index part. A part
// pin connects to a single pin of g, while a pin of g may feed several part
// inputs. On error, no connection is changed.
//
func (g *Gate) ConnectPins(part int, pk, ck PinKey) error {
	if err := g.mutable(); err != nil {
		return err
	}
	pp, ok := g.pins[pk]
	if !ok {
		return errors.Wrapf(ErrPinNotExists, "%s: %s", g.Name, pk)
	}
	if part < 0 || part >= len(g.parts) {
		return errors.Wrapf(ErrPinNotExists, "%s: part #%d", g.Name, part)
	}
	cp, ok := g.parts[part].pins[ck]
	if !ok || cp.Kind == Internal {
		return errors.Wrapf(ErrPinNotExists, "%s: %s.%s", g.Name, g.partName(part), ck)
	}
	if cp.Conn.Dir == ToParent {
		return errors.Wrapf(ErrInvalidPinConnection, "%s: %s.%s already connected to %s", g.Name, g.partName(part), ck, cp.Conn.Key)
	}
	pp.Conn = Connection{Dir: ToChild, Child: part, Key: ck}
	cp.Conn = Connection{Dir: ToParent, Key: pk}
	return nil
}
