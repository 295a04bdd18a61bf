package gatelib_test

import (
	"math/rand"
	"testing"

	"github.com/db47h/gatesim"
	"github.com/db47h/gatesim/gatelib"
	"github.com/db47h/gatesim/gatetest"
)

func randBool() bool {
	return rand.Int63()&(1<<62) != 0
}

func TestDFF(t *testing.T) {
	f := gatelib.NewFactory()
	err := f.Chip("DFF4", "in[4]", "out[4]", gatesim.Parts{
		{Type: "DFF", Wires: "in=in[0], out=out[0]"},
		{Type: "DFF", Wires: "in=in[1], out=out[1]"},
		{Type: "DFF", Wires: "in=in[2], out=out[2]"},
		{Type: "DFF", Wires: "in=in[3], out=out[3]"},
	})
	if err != nil {
		t.Fatal(err)
	}
	g, err := f.Build("DFF4")
	if err != nil {
		t.Fatal(err)
	}
	if !g.Stateful() {
		t.Fatal("DFF4 not stateful")
	}

	in := gatesim.NewPinValues()
	for i := 15; i >= 0; i-- {
		in.SetUint("in", 4, uint64(i))
		if err = g.Tick(in); err != nil {
			t.Fatal(err)
		}
		// inputs are captured on Tick
		in.SetUint("in", 4, 0)
		out, err := g.Tock()
		if err != nil {
			t.Fatal(err)
		}
		if out.Uint("out") != uint64(i) {
			t.Fatalf("bad output for input %d after tock: got %d", i, out.Uint("out"))
		}
	}
}

func TestDFF_clocked(t *testing.T) {
	f := gatelib.NewFactory()
	g, err := f.Build("DFF")
	if err != nil {
		t.Fatal(err)
	}
	p, ok := g.GetPin(gatesim.Key("in", 0))
	if !ok || !p.Clocked {
		t.Fatalf("DFF input not clocked: %+v", p)
	}
	b, err := f.Build("Bit")
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range []string{"in", "load"} {
		if p, _ := b.GetPin(gatesim.Key(n, 0)); !p.Clocked {
			t.Errorf("Bit input %s not clocked", n)
		}
	}
	plan := b.Plan()
	if len(plan.Latch) != 1 || len(plan.Tick) == 0 || len(plan.Tock) == 0 {
		t.Fatalf("unexpected plan sizes: tick %d, latch %d, tock %d", len(plan.Tick), len(plan.Latch), len(plan.Tock))
	}
}

func Test_bit_register(t *testing.T) {
	f := gatelib.NewFactory()
	reg, err := f.Build("Bit")
	if err != nil {
		t.Fatal(err)
	}

	var p bool
	in := gatesim.NewPinValues()
	for i := 0; i < 1000; i++ {
		v, load := randBool(), randBool()
		in.Set("in", 0, v)
		in.Set("load", 0, load)
		out, err := reg.Run(in)
		if err != nil {
			t.Fatal(err)
		}
		if load {
			p = v
		}
		if out.Get("out", 0) != p {
			t.Fatalf("cycle %d: in=%v, load=%v: expected out=%v, got %v", i, v, load, p, !p)
		}
	}
}

func TestBit_load(t *testing.T) {
	f := gatelib.NewFactory()
	reg, err := f.Build("Bit")
	if err != nil {
		t.Fatal(err)
	}
	run := func(bits string) string {
		t.Helper()
		in, err := gatesim.ParseValues(bits)
		if err != nil {
			t.Fatal(err)
		}
		out, err := reg.Run(in)
		if err != nil {
			t.Fatal(err)
		}
		return out.Binary("out")
	}
	for i, d := range []struct{ in, out string }{
		{"in:1\nload:0", "0"},
		{"in:1\nload:1", "1"},
		{"in:0\nload:0", "1"},
		{"in:0\nload:1", "0"},
	} {
		if got := run(d.in); got != d.out {
			t.Errorf("cycle %d: %q => expected out=%s, got %s", i, d.in, d.out, got)
		}
	}
}

func TestRegister16(t *testing.T) {
	f := gatelib.NewFactory()
	if err := gatelib.RegisterN(f, 4); err != nil {
		t.Fatal(err)
	}
	if err := gatelib.GateN(f, "And", 4); err != nil {
		t.Fatal(err)
	}
	err := f.Chip("myRegister4", "in[4], load", "out[4]", gatesim.Parts{
		{Type: "Mux", Wires: "a=q[0], b=in[0], sel=load, out=d[0]"},
		{Type: "Mux", Wires: "a=q[1], b=in[1], sel=load, out=d[1]"},
		{Type: "Mux", Wires: "a=q[2], b=in[2], sel=load, out=d[2]"},
		{Type: "Mux", Wires: "a=q[3], b=in[3], sel=load, out=d[3]"},
		{Type: "DFF", Wires: "in=d[0], out=q[0]"},
		{Type: "DFF", Wires: "in=d[1], out=q[1]"},
		{Type: "DFF", Wires: "in=d[2], out=q[2]"},
		{Type: "DFF", Wires: "in=d[3], out=q[3]"},
		{Type: "And4", Wires: "a=q, b=q, out=out"},
	})
	if err != nil {
		t.Fatal(err)
	}
	gatetest.CompareTypes(t, f, "Register4", "myRegister4")

	g, err := f.Build("Register16")
	if err != nil {
		t.Fatal(err)
	}
	in := gatesim.NewPinValues()
	var prev uint64
	for i := 0; i < 100; i++ {
		v, load := uint64(rand.Intn(1<<16)), randBool()
		in.SetUint("in", 16, v)
		in.Set("load", 0, load)
		out, err := g.Run(in)
		if err != nil {
			t.Fatal(err)
		}
		if load {
			prev = v
		}
		if out.Uint("out") != prev {
			t.Fatalf("cycle %d: expected %x, got %x", i, prev, out.Uint("out"))
		}
	}
}

// T flip-flop: feedback through a combinational part.
func TestToggle(t *testing.T) {
	f := gatelib.NewFactory()
	err := f.Chip("Toggle", "t", "out", gatesim.Parts{
		{Type: "Xor", Wires: "a=t, b=q, out=d"},
		{Type: "DFF", Wires: "in=d, out=q"},
		{Type: "And", Wires: "a=q, b=q, out=out"},
	})
	if err != nil {
		t.Fatal(err)
	}
	g, err := f.Build("Toggle")
	if err != nil {
		t.Fatal(err)
	}
	exp := []bool{true, false, false, true, false}
	ts := []bool{true, true, false, true, true}
	in := gatesim.NewPinValues()
	for i := range ts {
		in.Set("t", 0, ts[i])
		out, err := g.Run(in)
		if err != nil {
			t.Fatal(err)
		}
		if out.Get("out", 0) != exp[i] {
			t.Fatalf("cycle %d: expected %v", i, exp[i])
		}
	}
}
