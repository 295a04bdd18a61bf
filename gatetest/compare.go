// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package gatetest provides utility functions for testing gates.
//
package gatetest

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/db47h/gatesim"
)

// MaxExhaustive is the maximum number of input pins for which CompareGates
// tries every input combination. Above that, inputs are chosen at random.
//
const MaxExhaustive = 12

func pinKeys(g *gatesim.Gate, kind gatesim.PinKind) []gatesim.PinKey {
	pins := g.Pins(kind)
	keys := make([]gatesim.PinKey, len(pins))
	for i := range pins {
		keys[i] = pins[i].Key()
	}
	return keys
}

func sameKeys(k1, k2 []gatesim.PinKey) bool {
	if len(k1) != len(k2) {
		return false
	}
	for i := range k1 {
		if k1[i] != k2[i] {
			return false
		}
	}
	return true
}

func inputString(in *gatesim.PinValues) string {
	return strings.Replace(in.String(), "\n", ", ", -1)
}

// CompareGates runs two gates with the same inputs and compares their outputs.
// Both gates must have the same input and output pins.
//
// If the gates have MaxExhaustive input pins or less, every input combination
// is tested. Otherwise, all zeros, all ones and 1<<MaxExhaustive random
// combinations are tested. Stateful gates are run in sequence with the same
// inputs so their states evolve identically.
//
func CompareGates(t testing.TB, g1, g2 *gatesim.Gate) {
	t.Helper()

	ins, outs := pinKeys(g1, gatesim.Input), pinKeys(g1, gatesim.Output)
	if !sameKeys(ins, pinKeys(g2, gatesim.Input)) {
		t.Fatalf("%s and %s have different inputs", g1.Name, g2.Name)
	}
	if !sameKeys(outs, pinKeys(g2, gatesim.Output)) {
		t.Fatalf("%s and %s have different outputs", g1.Name, g2.Name)
	}

	check := func(in *gatesim.PinValues) {
		t.Helper()
		o1, err := g1.Run(in)
		if err != nil {
			t.Fatal(err)
		}
		o2, err := g2.Run(in)
		if err != nil {
			t.Fatal(err)
		}
		for _, k := range outs {
			v1, _ := o1.Lookup(k.Name, k.Index)
			v2, ok := o2.Lookup(k.Name, k.Index)
			if !ok || v1 != v2 {
				t.Fatalf("\nInputs %s\nExpected %s=%v\nGot %v", inputString(in), k, v1, v2)
			}
		}
	}

	set := func(bit func(i int) bool) *gatesim.PinValues {
		in := gatesim.NewPinValues()
		for i, k := range ins {
			in.Set(k.Name, k.Index, bit(i))
		}
		return in
	}

	if len(ins) <= MaxExhaustive {
		for n := 0; n < 1<<uint(len(ins)); n++ {
			check(set(func(i int) bool { return n&(1<<uint(i)) != 0 }))
		}
		return
	}

	check(set(func(int) bool { return false }))
	check(set(func(int) bool { return true }))
	rnd := rand.New(rand.NewSource(int64(len(ins))))
	for n := 0; n < 1<<MaxExhaustive; n++ {
		check(set(func(int) bool { return rnd.Int63()&(1<<62) != 0 }))
	}
}

// CompareTypes builds the gate types name1 and name2 with f and compares them
// with CompareGates.
//
func CompareTypes(t testing.TB, f *gatesim.Factory, name1, name2 string) {
	t.Helper()
	g1, err := f.Build(name1)
	if err != nil {
		t.Fatal(err)
	}
	g2, err := f.Build(name2)
	if err != nil {
		t.Fatal(err)
	}
	CompareGates(t, g1, g2)
}
