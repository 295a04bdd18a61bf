// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatelib

import (
	"github.com/db47h/gatesim"
)

// Register registers all the gate types of this package into f:
//
//	Nand, DFF
//	Not, And, Or, Nor, Xor, Xnor
//	Mux, DMux
//	HalfAdder, FullAdder
//	Bit
//	Not16, And16, Or16, Mux16, Add16, Register16
//	Or8Way, And8Way
//
func Register(f *gatesim.Factory) error {
	for _, sp := range []*gatesim.PrimitiveSpec{Nand, DFF} {
		if err := f.RegisterPrimitive(sp); err != nil {
			return err
		}
	}
	for _, tbl := range [][]struct {
		name  string
		in    string
		out   string
		parts gatesim.Parts
	}{gates, muxes, adders} {
		for _, c := range tbl {
			if err := f.Chip(c.name, c.in, c.out, c.parts); err != nil {
				return err
			}
		}
	}
	if err := f.Chip("Bit", "in, load", "out", Bit); err != nil {
		return err
	}
	for _, fn := range []func(*gatesim.Factory) error{
		func(f *gatesim.Factory) error { return NotN(f, 16) },
		func(f *gatesim.Factory) error { return GateN(f, "And", 16) },
		func(f *gatesim.Factory) error { return GateN(f, "Or", 16) },
		func(f *gatesim.Factory) error { return MuxN(f, 16) },
		func(f *gatesim.Factory) error { return AdderN(f, 16) },
		func(f *gatesim.Factory) error { return RegisterN(f, 16) },
		func(f *gatesim.Factory) error { return NWay(f, "Or", 8) },
		func(f *gatesim.Factory) error { return NWay(f, "And", 8) },
	} {
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

// NewFactory returns a new factory with all the gate types of this package
// registered. It panics if registration fails.
//
func NewFactory() *gatesim.Factory {
	f := gatesim.NewFactory()
	if err := Register(f); err != nil {
		panic(err)
	}
	return f
}
