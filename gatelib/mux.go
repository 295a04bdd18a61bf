// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatelib

import (
	"strconv"

	"github.com/db47h/gatesim"
)

// Multiplexers.
//
//	Mux:  a, b, sel => out      out = a if sel == 0, b otherwise
//	DMux: in, sel => a, b       a, b = in, 0 if sel == 0; 0, in otherwise
//
var muxes = []struct {
	name  string
	in    string
	out   string
	parts gatesim.Parts
}{
	{"Mux", "a, b, sel", "out", gatesim.Parts{
		{Type: "Not", Wires: "in=sel, out=notSel"},
		{Type: "And", Wires: "a=a, b=notSel, out=w0"},
		{Type: "And", Wires: "a=b, b=sel, out=w1"},
		{Type: "Or", Wires: "a=w0, b=w1, out=out"},
	}},
	{"DMux", "in, sel", "a, b", gatesim.Parts{
		{Type: "Not", Wires: "in=sel, out=notSel"},
		{Type: "And", Wires: "a=in, b=notSel, out=a"},
		{Type: "And", Wires: "a=in, b=sel, out=b"},
	}},
}

// MuxN registers a N-bits multiplexer named "Mux<bits>".
//
//	Inputs: a[bits], b[bits], sel
//	Outputs: out[bits]
//	Function: out = a if sel == 0, b otherwise
//
func MuxN(f *gatesim.Factory, bits int) error {
	parts := make(gatesim.Parts, bits)
	for i := range parts {
		n := strconv.Itoa(i)
		parts[i] = gatesim.Part{Type: "Mux", Wires: "a=a[" + n + "], b=b[" + n + "], sel=sel, out=out[" + n + "]"}
	}
	return f.Chip("Mux"+strconv.Itoa(bits), bus(pA, bits)+", "+bus(pB, bits)+", "+pSel, bus(pOut, bits), parts)
}
