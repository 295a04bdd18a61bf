// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import "github.com/pkg/errors"

// Tick runs the first half of a clock cycle: in is captured as the gate's
// inputs for this cycle and all parts holding state latch their inputs.
//
// Tick must be followed by a call to Tock. For gates that hold no state,
// Tick only captures the inputs. in must hold a value for every input pin.
//
func (g *Gate) Tick(in *PinValues) error {
	if !g.compiled {
		return errors.Wrap(ErrNotCompiled, g.Name)
	}
	if g.phase != awaitingTick {
		return errors.Wrapf(ErrClockPhase, "%s: Tick called before Tock", g.Name)
	}
	if in == nil {
		in = NewPinValues()
	}
	for _, k := range g.pins.keys() {
		if g.pins[k].Kind != Input {
			continue
		}
		if _, ok := in.Lookup(k.Name, k.Index); !ok {
			return errors.Wrapf(ErrPinNotExists, "%s: no value for input %s", g.Name, k)
		}
	}
	g.in = in.Clone()
	g.latchParts(g.in)
	g.phase = awaitingTock
	return nil
}

// Tock runs the second half of a clock cycle and returns the gate's outputs,
// computed from the inputs captured by the previous call to Tick and from the
// state latched at that time.
//
func (g *Gate) Tock() (*PinValues, error) {
	if !g.compiled {
		return nil, errors.Wrap(ErrNotCompiled, g.Name)
	}
	if g.phase != awaitingTock {
		return nil, errors.Wrapf(ErrClockPhase, "%s: Tock called before Tick", g.Name)
	}
	out := g.evaluate(g.in)
	g.in = nil
	g.phase = awaitingTick
	return out, nil
}

// Run runs a full clock cycle and returns the gate's outputs. It is a
// shorthand for Tick(in) followed by Tock().
//
func (g *Gate) Run(in *PinValues) (*PinValues, error) {
	if err := g.Tick(in); err != nil {
		return nil, err
	}
	return g.Tock()
}

// evaluate computes the outputs of g for the given inputs without changing
// any state.
//
func (g *Gate) evaluate(in *PinValues) *PinValues {
	if g.prim != nil {
		return g.prim.Evaluate(in)
	}
	_, out := g.exec(g.tock, in)
	return out
}

// exec runs the given steps. It returns the working set, seeded with the
// gate's inputs, and the gate's outputs.
//
func (g *Gate) exec(steps []GateRunPlan, in *PinValues) (work, out *PinValues) {
	work = in.Clone()
	out = NewPinValues()
	for i := range steps {
		st := &steps[i]
		res := g.parts[st.Part].evaluate(gather(work, st.Reads, nil))
		for _, l := range st.WriteInternals {
			work.Set(l.Parent.Name, l.Parent.Index, res.Get(l.Child.Name, l.Child.Index))
		}
		for _, l := range st.WriteOutputs {
			out.Set(l.Parent.Name, l.Parent.Index, res.Get(l.Child.Name, l.Child.Index))
		}
	}
	return work, out
}

// latchParts latches the state of g on the clock edge.
//
func (g *Gate) latchParts(in *PinValues) {
	if g.prim != nil {
		if cp, ok := g.prim.(ClockedPrimitive); ok {
			cp.Latch(in)
		}
		return
	}
	if len(g.latch) == 0 {
		return
	}
	// compute all part inputs before latching any of them.
	work, _ := g.exec(g.tick, in)
	ins := make([]*PinValues, len(g.latch))
	for i := range g.latch {
		st := &g.latch[i]
		ins[i] = gather(work, st.Reads, st.ClockedReads)
	}
	for i := range g.latch {
		g.parts[g.latch[i].Part].latchParts(ins[i])
	}
}

// gather builds the input set of a part.
//
func gather(work *PinValues, reads, clocked []PinLink) *PinValues {
	in := NewPinValues()
	for _, l := range reads {
		in.Set(l.Child.Name, l.Child.Index, work.Get(l.Parent.Name, l.Parent.Index))
	}
	for _, l := range clocked {
		in.Set(l.Child.Name, l.Child.Index, work.Get(l.Parent.Name, l.Parent.Index))
	}
	return in
}
