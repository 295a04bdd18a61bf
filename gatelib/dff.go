// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatelib

import (
	"strconv"

	"github.com/db47h/gatesim"
)

type dff struct {
	state bool
}

func (d *dff) Evaluate(*gatesim.PinValues) *gatesim.PinValues {
	out := gatesim.NewPinValues()
	out.Set(pOut, 0, d.state)
	return out
}

func (d *dff) Latch(in *gatesim.PinValues) {
	d.state = in.Get(pIn, 0)
}

// DFF is a data flip-flop. Its input is clocked: out does not depend on the
// current value of in, only on the value latched on the previous tick.
//
//	Inputs: in (clocked)
//	Outputs: out
//	Function: out(t) = in(t-1)
//
var DFF = &gatesim.PrimitiveSpec{
	Name:    "DFF",
	Clocked: "in",
	Outputs: "out",
	New:     func() gatesim.Primitive { return new(dff) },
}

// Bit is a 1 bit register.
//
//	Inputs: in, load
//	Outputs: out
//	Function: if load(t-1) then out(t) = in(t-1) else out(t) = out(t-1)
//
// The And part buffers the DFF output since a part cannot read back one of
// the gate's outputs.
//
var Bit = gatesim.Parts{
	{Type: "Mux", Wires: "a=q, b=in, sel=load, out=next"},
	{Type: "DFF", Wires: "in=next, out=q"},
	{Type: "And", Wires: "a=q, b=q, out=out"},
}

// RegisterN registers a N-bits register named "Register<bits>".
//
//	Inputs: in[bits], load
//	Outputs: out[bits]
//	Function: if load(t-1) then out(t) = in(t-1) else out(t) = out(t-1)
//
func RegisterN(f *gatesim.Factory, bits int) error {
	parts := make(gatesim.Parts, bits)
	for i := range parts {
		n := strconv.Itoa(i)
		parts[i] = gatesim.Part{Type: "Bit", Wires: "in=in[" + n + "], load=load, out=out[" + n + "]"}
	}
	return f.Chip("Register"+strconv.Itoa(bits), bus(pIn, bits)+", load", bus(pOut, bits), parts)
}
