package gatesim_test

import (
	"fmt"

	"github.com/db47h/gatesim"
	"github.com/db47h/gatesim/gatelib"
)

// mux4 is a custom 4 bits mux.
//
type mux4 struct {
	A   [4]bool `gate:"in"`     // input bus "a"
	B   [4]bool `gate:"in"`     // input bus "b"
	S   bool    `gate:"in,sel"` // single pin, the second tag value forces the pin name to "sel"
	Out [4]bool `gate:"out"`    // output bus "out"
}

// Update implements Updater.
//
func (m *mux4) Update() {
	if m.S {
		m.Out = m.B
	} else {
		m.Out = m.A
	}
}

// MakePrimitive example with a custom Mux4
func ExampleMakePrimitive() {
	f := gatelib.NewFactory()
	// no need to import reflect, just cast a nil pointer to mux4
	sp, err := gatesim.MakePrimitive((*mux4)(nil))
	if err != nil {
		panic(err)
	}
	if err = f.RegisterPrimitive(sp); err != nil {
		panic(err)
	}
	g, err := f.Build("mux4")
	if err != nil {
		panic(err)
	}

	in := gatesim.NewPinValues()
	in.SetUint("a", 4, 1)
	in.SetUint("b", 4, 15)
	for _, sel := range []bool{false, true} {
		in.Set("sel", 0, sel)
		out, err := g.Run(in)
		if err != nil {
			panic(err)
		}
		fmt.Printf("a=%d, b=%d, sel=%v => out=%d\n", in.Uint("a"), in.Uint("b"), sel, out.Uint("out"))
	}

	// Output:
	// a=1, b=15, sel=false => out=1
	// a=1, b=15, sel=true => out=15
}
