// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatelib

import (
	"strconv"

	"github.com/db47h/gatesim"
	"github.com/pkg/errors"
)

// Adders.
//
//	HalfAdder: a, b => s, c          s = lsb(a + b), c = msb(a + b)
//	FullAdder: a, b, cin => s, cout  s = lsb(a + b + cin), cout = msb(a + b + cin)
//
var adders = []struct {
	name  string
	in    string
	out   string
	parts gatesim.Parts
}{
	{"HalfAdder", "a, b", "s, c", gatesim.Parts{
		{Type: "Xor", Wires: "a=a, b=b, out=s"},
		{Type: "And", Wires: "a=a, b=b, out=c"},
	}},
	{"FullAdder", "a, b, cin", "s, cout", gatesim.Parts{
		{Type: "HalfAdder", Wires: "a=a, b=b, s=s0, c=c0"},
		{Type: "HalfAdder", Wires: "a=s0, b=cin, s=s, c=c1"},
		{Type: "Or", Wires: "a=c0, b=c1, out=cout"},
	}},
}

// AdderN registers a N-bits ripple carry adder named "Add<bits>".
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits], c
//	Function: out = lsb(a + b), c = carry out
//
func AdderN(f *gatesim.Factory, bits int) error {
	if bits < 1 {
		return errors.Errorf("Add%d: invalid width", bits)
	}
	carry := func(i int) string {
		if i == bits-1 {
			return "c"
		}
		return "carry[" + strconv.Itoa(i) + "]"
	}
	parts := make(gatesim.Parts, bits)
	parts[0] = gatesim.Part{Type: "HalfAdder", Wires: "a=a[0], b=b[0], s=out[0], c=" + carry(0)}
	for i := 1; i < bits; i++ {
		n := strconv.Itoa(i)
		parts[i] = gatesim.Part{Type: "FullAdder",
			Wires: "a=a[" + n + "], b=b[" + n + "], cin=" + carry(i-1) + ", s=out[" + n + "], cout=" + carry(i)}
	}
	return f.Chip("Add"+strconv.Itoa(bits), bus(pA, bits)+", "+bus(pB, bits), bus(pOut, bits)+", c", parts)
}
