package gatesim_test

import (
	"strings"
	"testing"

	"github.com/db47h/gatesim"
	"github.com/db47h/gatesim/gatelib"
	"github.com/db47h/gatesim/gatetest"
	"github.com/pkg/errors"
)

const testLib = `
gates:
  # refers to a gate defined below
  - name: MyXnor
    in: a, b
    out: out
    parts:
      - gate: MyXor
        wires: a=a, b=b, out=x
      - gate: Not
        wires: in=x, out=out
  - name: MyXor
    in: a, b
    out: out
    parts:
      - gate: Nand
        wires: a=a, b=b, out=nandAB
      - gate: Nand
        wires: a=a, b=nandAB, out=w0
      - gate: Nand
        wires: a=b, b=nandAB, out=w1
      - gate: Nand
        wires: a=w0, b=w1, out=out
`

func TestLoadLibrary(t *testing.T) {
	f := gatelib.NewFactory()
	if err := gatesim.LoadLibrary(strings.NewReader(testLib), f); err != nil {
		t.Fatal(err)
	}
	gatetest.CompareTypes(t, f, "Xor", "MyXor")
	gatetest.CompareTypes(t, f, "Xnor", "MyXnor")
}

func TestReadLibrary(t *testing.T) {
	l, err := gatesim.ReadLibrary(strings.NewReader(testLib))
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Gates) != 2 || l.Gates[1].Name != "MyXor" || len(l.Gates[1].Parts) != 4 {
		t.Fatalf("bad library %+v", l)
	}
	if p := l.Gates[0].Parts[1]; p.Gate != "Not" || p.Wires != "in=x, out=out" {
		t.Fatalf("bad part %+v", p)
	}

	l, err = gatesim.ReadLibrary(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Gates) != 0 {
		t.Fatal("expected empty library")
	}
}

func TestReadLibrary_errors(t *testing.T) {
	data := []struct {
		name string
		lib  string
		msg  string
	}{
		{"syntax", "gates: [", "decode library"},
		{"unknown_field", "gates:\n  - name: A\n    out: out\n    inputs: a\n", "inputs"},
		{"no_name", "gates:\n  - in: a\n    out: out\n", "missing name"},
		{"twice", "gates:\n  - name: A\n    out: out\n  - name: A\n    out: out\n", "defined twice"},
		{"no_output", "gates:\n  - name: A\n    in: a\n", "no outputs"},
		{"no_gate", "gates:\n  - name: A\n    out: out\n    parts:\n      - wires: a=b\n", "missing gate type"},
	}
	for _, d := range data {
		_, err := gatesim.ReadLibrary(strings.NewReader(d.lib))
		if err == nil {
			t.Errorf("%s: expected error", d.name)
			continue
		}
		if !strings.Contains(err.Error(), d.msg) {
			t.Errorf("%s: expected %q in error %q", d.name, d.msg, err)
		}
	}
}

func TestLibrary_register_error(t *testing.T) {
	f := gatelib.NewFactory()
	l := &gatesim.Library{Gates: []gatesim.ChipDef{
		{Name: "A", In: "a", Out: "out", Parts: []gatesim.PartDef{{Gate: "B", Wires: "a=a, out=out"}}},
		{Name: "B", In: "a", Out: "out", Parts: []gatesim.PartDef{{Gate: "A", Wires: "a=a, out=out"}}},
	}}
	if err := l.Register(f); !errors.Is(err, gatesim.ErrRecursiveGate) {
		t.Fatalf("expected ErrRecursiveGate, got %v", err)
	}
}
