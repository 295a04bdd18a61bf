package gatetest_test

import (
	"strings"
	"testing"

	"github.com/db47h/gatesim"
	"github.com/db47h/gatesim/gatelib"
	"github.com/db47h/gatesim/gatetest"
)

func TestCompareGates(t *testing.T) {
	f := gatelib.NewFactory()
	err := f.Chip("custom_or", "a, b", "out", gatesim.Parts{
		{Type: "Nand", Wires: "a=a, b=a, out=notA"},
		{Type: "Nand", Wires: "a=b, b=b, out=notB"},
		{Type: "Nand", Wires: "a=notA, b=notB, out=out"},
	})
	if err != nil {
		t.Fatal(err)
	}
	gatetest.CompareTypes(t, f, "Or", "custom_or")
}

func TestCompareGates_random(t *testing.T) {
	f := gatelib.NewFactory()
	// 33 inputs: random testing
	err := f.Chip("myAnd16", "a[16], b[16]", "out[16]", gatesim.Parts{
		{Type: "Not16", Wires: "in=a, out=na"},
		{Type: "Not16", Wires: "in=b, out=nb"},
		{Type: "Or16", Wires: "a=na, b=nb, out=o"},
		{Type: "Not16", Wires: "in=o, out=out"},
	})
	if err != nil {
		t.Fatal(err)
	}
	gatetest.CompareTypes(t, f, "And16", "myAnd16")
}

type recorder struct {
	testing.TB
	failed bool
}

func (r *recorder) Helper() {}

func (r *recorder) Fatalf(format string, args ...interface{}) {
	r.failed = true
	panic(r)
}

func (r *recorder) Fatal(args ...interface{}) {
	r.failed = true
	panic(r)
}

func expectFail(t *testing.T, fn func(tb testing.TB)) {
	t.Helper()
	r := &recorder{TB: t}
	func() {
		defer func() {
			if p := recover(); p != nil && p != r {
				panic(p)
			}
		}()
		fn(r)
	}()
	if !r.failed {
		t.Fatal("comparison did not fail")
	}
}

func TestCompareGates_mismatch(t *testing.T) {
	f := gatelib.NewFactory()
	expectFail(t, func(tb testing.TB) { gatetest.CompareTypes(tb, f, "And", "Or") })
	expectFail(t, func(tb testing.TB) { gatetest.CompareTypes(tb, f, "And", "Not") })
	expectFail(t, func(tb testing.TB) { gatetest.CompareTypes(tb, f, "And", "Mux") })
}

func TestTruthTable(t *testing.T) {
	f := gatelib.NewFactory()
	g, err := f.Build("Xor")
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	if err = gatetest.TruthTable(&b, g); err != nil {
		t.Fatal(err)
	}
	s := b.String()
	for _, h := range []string{"a", "b", "out"} {
		if !strings.Contains(s, h) {
			t.Errorf("header %q missing from\n%s", h, s)
		}
	}
	// header, separators and 4 rows
	if n := strings.Count(s, "\n"); n < 5 {
		t.Errorf("expected at least 5 lines, got %d:\n%s", n, s)
	}

	g, err = f.Build("And16")
	if err != nil {
		t.Fatal(err)
	}
	if err = gatetest.TruthTable(&b, g); err == nil {
		t.Fatal("expected error for 32 inputs")
	}
}
