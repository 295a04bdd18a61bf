// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package gatelib provides a library of reusable gate types for gatesim.
//
// The only combinational primitive is Nand. Every other combinational gate is
// a composite gate built from Nand gates, or from gates built from Nand gates.
// The DFF primitive is the only gate holding state.
//
package gatelib

import (
	"strconv"

	"github.com/db47h/gatesim"
	"github.com/pkg/errors"
)

// common pin names
const (
	pA   = "a"
	pB   = "b"
	pIn  = "in"
	pSel = "sel"
	pOut = "out"
)

// make a bus declaration
func bus(name string, bits int) string {
	return name + "[" + strconv.Itoa(bits) + "]"
}

type nand struct{}

func (nand) Evaluate(in *gatesim.PinValues) *gatesim.PinValues {
	out := gatesim.NewPinValues()
	out.Set(pOut, 0, !(in.Get(pA, 0) && in.Get(pB, 0)))
	return out
}

// Nand is a NAND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a && b)
//
var Nand = &gatesim.PrimitiveSpec{
	Name:    "Nand",
	Inputs:  "a, b",
	Outputs: "out",
	New:     func() gatesim.Primitive { return nand{} },
}

// Basic gates built from Nand gates.
//
//	Not:  in => out           out = !in
//	And:  a, b => out         out = a && b
//	Or:   a, b => out         out = a || b
//	Nor:  a, b => out         out = !(a || b)
//	Xor:  a, b => out         out = a && !b || !a && b
//	Xnor: a, b => out         out = a && b || !a && !b
//
var gates = []struct {
	name  string
	in    string
	out   string
	parts gatesim.Parts
}{
	{"Not", "in", "out", gatesim.Parts{
		{Type: "Nand", Wires: "a=in, b=in, out=out"},
	}},
	{"And", "a, b", "out", gatesim.Parts{
		{Type: "Nand", Wires: "a=a, b=b, out=nandAB"},
		{Type: "Not", Wires: "in=nandAB, out=out"},
	}},
	{"Or", "a, b", "out", gatesim.Parts{
		{Type: "Not", Wires: "in=a, out=notA"},
		{Type: "Not", Wires: "in=b, out=notB"},
		{Type: "Nand", Wires: "a=notA, b=notB, out=out"},
	}},
	{"Nor", "a, b", "out", gatesim.Parts{
		{Type: "Or", Wires: "a=a, b=b, out=orAB"},
		{Type: "Not", Wires: "in=orAB, out=out"},
	}},
	{"Xor", "a, b", "out", gatesim.Parts{
		{Type: "Nand", Wires: "a=a, b=b, out=nandAB"},
		{Type: "Nand", Wires: "a=a, b=nandAB, out=w0"},
		{Type: "Nand", Wires: "a=b, b=nandAB, out=w1"},
		{Type: "Nand", Wires: "a=w0, b=w1, out=out"},
	}},
	{"Xnor", "a, b", "out", gatesim.Parts{
		{Type: "Xor", Wires: "a=a, b=b, out=xorAB"},
		{Type: "Not", Wires: "in=xorAB, out=out"},
	}},
}

// NotN registers a N-bits NOT gate named "Not<bits>".
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i] = !in[i] }
//
func NotN(f *gatesim.Factory, bits int) error {
	parts := make(gatesim.Parts, bits)
	for i := range parts {
		n := strconv.Itoa(i)
		parts[i] = gatesim.Part{Type: "Not", Wires: "in=in[" + n + "], out=out[" + n + "]"}
	}
	return f.Chip("Not"+strconv.Itoa(bits), bus(pIn, bits), bus(pOut, bits), parts)
}

// GateN registers a N-bits version of the two inputs gate type named gate.
// The new gate type is named gate+bits, e.g. "And16".
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i] = gate(a[i], b[i]) }
//
func GateN(f *gatesim.Factory, gate string, bits int) error {
	parts := make(gatesim.Parts, bits)
	for i := range parts {
		n := strconv.Itoa(i)
		parts[i] = gatesim.Part{Type: gate, Wires: "a=a[" + n + "], b=b[" + n + "], out=out[" + n + "]"}
	}
	return f.Chip(gate+strconv.Itoa(bits), bus(pA, bits)+", "+bus(pB, bits), bus(pOut, bits), parts)
}

// NWay registers a N-Way version of the two inputs gate type named gate. The
// new gate type is named gate+ways+"Way", e.g. "Or8Way".
//
//	Inputs: in[ways]
//	Outputs: out
//	Function: out = gate(...gate(gate(in[0], in[1]), in[2])..., in[ways-1])
//
func NWay(f *gatesim.Factory, gate string, ways int) error {
	if ways < 2 {
		return errors.Errorf("%s%dWay: need at least 2 inputs", gate, ways)
	}
	parts := make(gatesim.Parts, ways-1)
	prev := "in[0]"
	for i := range parts {
		out := "w[" + strconv.Itoa(i) + "]"
		if i == len(parts)-1 {
			out = pOut
		}
		parts[i] = gatesim.Part{Type: gate, Wires: "a=" + prev + ", b=in[" + strconv.Itoa(i+1) + "], out=" + out}
		prev = out
	}
	return f.Chip(gate+strconv.Itoa(ways)+"Way", bus(pIn, ways), pOut, parts)
}
