// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"strings"

	"github.com/db47h/gatesim/internal/graph"
	"github.com/pkg/errors"
)

// PinLink maps a pin of a gate to a pin of one of its parts.
//
type PinLink struct {
	Parent PinKey
	Child  PinKey
}

// GateRunPlan is one step of a compiled gate: run a part, feeding it with
// values read from the gate's working set and storing its outputs.
//
type GateRunPlan struct {
	// Part index.
	Part int
	// Part inputs read from the gate's inputs or internal pins.
	Reads []PinLink
	// Clocked part inputs. Only read when latching the part.
	ClockedReads []PinLink
	// Part outputs written to internal pins.
	WriteInternals []PinLink
	// Part outputs written to the gate's outputs.
	WriteOutputs []PinLink
}

// Plan is a compiled gate's execution plan.
//
// On the clock edge (Tick), the Tick steps are evaluated in order in order to
// compute the inputs of the parts holding state, then all parts in Latch are
// latched. Tock evaluates the Tock steps in order and collects the outputs.
//
type Plan struct {
	Tick  []GateRunPlan
	Latch []GateRunPlan
	Tock  []GateRunPlan
}

// Compiled returns true if g has been successfully compiled.
//
func (g *Gate) Compiled() bool { return g.compiled }

// Stateful returns true if g holds state, i.e. if g is a clocked primitive or
// if any of its parts is stateful.
//
func (g *Gate) Stateful() bool { return g.stateful }

// Plan returns a copy of the compiled execution plan.
//
func (g *Gate) Plan() Plan {
	return Plan{
		Tick:  copyPlan(g.tick),
		Latch: copyPlan(g.latch),
		Tock:  copyPlan(g.tock),
	}
}

func copyPlan(p []GateRunPlan) []GateRunPlan {
	if p == nil {
		return nil
	}
	out := make([]GateRunPlan, len(p))
	for i, s := range p {
		out[i] = GateRunPlan{
			Part:           s.Part,
			Reads:          append([]PinLink(nil), s.Reads...),
			ClockedReads:   append([]PinLink(nil), s.ClockedReads...),
			WriteInternals: append([]PinLink(nil), s.WriteInternals...),
			WriteOutputs:   append([]PinLink(nil), s.WriteOutputs...),
		}
	}
	return out
}

// Compile builds the execution plan of g. All parts of g must be compiled.
//
// Parts are ordered so that every part writing an internal pin runs before the
// parts reading it. Clocked inputs do not induce any ordering: a part holding
// state outputs the value latched on the previous clock edge, so feedback
// loops through such parts are allowed. Any other loop is reported as an
// ErrCombinationalCycle.
//
// Once compiled, the structure of g cannot be changed.
//
func (g *Gate) Compile() error {
	if g.compiled {
		return errors.Wrap(ErrAlreadyCompiled, g.Name)
	}
	if g.prim != nil {
		_, g.stateful = g.prim.(ClockedPrimitive)
		g.compiled = true
		return nil
	}

	var (
		gr      = graph.New()
		steps   = make([]GateRunPlan, len(g.parts))
		readers = make(map[PinKey][]int) // internal pin -> parts reading it
		writers = make(map[PinKey]int)   // internal pin -> part writing it
		latched []PinKey                 // internal pins read by stateful parts
	)

	for i, part := range g.parts {
		if !part.compiled {
			return errors.Wrapf(ErrNotCompiled, "%s: part %s", g.Name, g.partName(i))
		}
		gr.AddNode(i)
		st := GateRunPlan{Part: i}
		for _, ck := range part.pins.keys() {
			cp := part.pins[ck]
			if cp.Kind == Internal {
				continue
			}
			if cp.Conn.Dir != ToParent {
				if cp.Kind == Input {
					return errors.Wrapf(ErrInvalidPinConnection, "%s: %s.%s not connected", g.Name, g.partName(i), ck)
				}
				continue
			}
			pk := cp.Conn.Key
			pp, ok := g.pins[pk]
			if !ok {
				return errors.Wrapf(ErrPinNotExists, "%s: %s.%s -> %s", g.Name, g.partName(i), ck, pk)
			}
			if pp.Conn.Dir != ToChild {
				return errors.Wrapf(ErrInvalidPinConnection, "%s: %s.%s -> %s: no connection back to part", g.Name, g.partName(i), ck, pk)
			}
			l := PinLink{Parent: pk, Child: ck}
			switch cp.Kind {
			case Input:
				switch pp.Kind {
				case Output:
					return errors.Wrapf(ErrInvalidPinConnection, "%s: %s.%s -> %s: output pin used as input", g.Name, g.partName(i), ck, pk)
				case Internal:
					if !cp.Clocked {
						readers[pk] = append(readers[pk], i)
					}
					if part.stateful {
						latched = append(latched, pk)
					}
				}
				if cp.Clocked {
					st.ClockedReads = append(st.ClockedReads, l)
				} else {
					st.Reads = append(st.Reads, l)
				}
			case Output:
				if part.undriven[ck] {
					return errors.Wrapf(ErrInvalidPinConnection, "%s: %s.%s -> %s: part output is never driven", g.Name, g.partName(i), ck, pk)
				}
				switch pp.Kind {
				case Input:
					return errors.Wrapf(ErrInvalidPinConnection, "%s: %s.%s -> %s: input pin used as output", g.Name, g.partName(i), ck, pk)
				case Internal:
					st.WriteInternals = append(st.WriteInternals, l)
					writers[pk] = i
				case Output:
					st.WriteOutputs = append(st.WriteOutputs, l)
				}
			}
		}
		steps[i] = st
	}

	// a gate output has a single driver
	driven := make(map[PinKey]bool)
	for i, st := range steps {
		for _, l := range st.WriteOutputs {
			if c := g.pins[l.Parent].Conn; c.Child != i || c.Key != l.Child {
				return errors.Wrapf(ErrInvalidPinConnection, "%s: output pin %s has multiple drivers", g.Name, l.Parent)
			}
			driven[l.Parent] = true
		}
	}

	// writers before readers
	for _, k := range g.pins.keys() {
		rs, ok := readers[k]
		if !ok {
			continue
		}
		w, ok := writers[k]
		if !ok {
			return errors.Wrapf(ErrInvalidPinConnection, "%s: internal pin %s is never written", g.Name, k)
		}
		for _, r := range rs {
			if err := gr.AddEdge(w, r); err != nil {
				return errors.Wrap(err, g.Name)
			}
		}
	}

	order, err := gr.Sort()
	if err != nil {
		if ce, ok := err.(*graph.CycleError); ok {
			names := make([]string, len(ce.Path))
			for i, p := range ce.Path {
				names[i] = g.partName(p)
			}
			return errors.Wrapf(ErrCombinationalCycle, "%s: %s", g.Name, strings.Join(names, " -> "))
		}
		return errors.Wrap(err, g.Name)
	}

	// Tock: parts needed to compute the outputs.
	var roots []int
	for i, st := range steps {
		if len(st.WriteOutputs) > 0 {
			roots = append(roots, i)
		}
	}
	tock := gr.Ancestors(roots...)

	// Tick: parts needed to compute the inputs of stateful parts.
	roots = roots[:0]
	for _, k := range latched {
		w, ok := writers[k]
		if !ok {
			return errors.Wrapf(ErrInvalidPinConnection, "%s: internal pin %s is never written", g.Name, k)
		}
		roots = append(roots, w)
	}
	tick := gr.Ancestors(roots...)

	g.tick, g.latch, g.tock = nil, nil, nil
	for _, i := range order {
		st := steps[i]
		if tock[i] {
			g.tock = append(g.tock, st)
		}
		if tick[i] {
			g.tick = append(g.tick, GateRunPlan{
				Part:           i,
				Reads:          st.Reads,
				ClockedReads:   st.ClockedReads,
				WriteInternals: st.WriteInternals,
			})
		}
		if g.parts[i].stateful {
			g.latch = append(g.latch, GateRunPlan{
				Part:         i,
				Reads:        st.Reads,
				ClockedReads: st.ClockedReads,
			})
		}
	}
	g.stateful = len(g.latch) > 0

	// inputs not needed to compute the outputs are clocked.
	used := make(map[PinKey]bool)
	for _, st := range g.tock {
		for _, l := range st.Reads {
			used[l.Parent] = true
		}
	}
	g.undriven = nil
	for k, p := range g.pins {
		switch {
		case p.Kind == Input:
			p.Clocked = !used[k]
		case p.Kind == Output && !driven[k]:
			if g.undriven == nil {
				g.undriven = make(map[PinKey]bool)
			}
			g.undriven[k] = true
		}
	}

	g.compiled = true
	return nil
}
