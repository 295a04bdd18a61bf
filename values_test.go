package gatesim_test

import (
	"testing"
	"testing/quick"

	"github.com/db47h/gatesim"
)

func TestPinValues_binary(t *testing.T) {
	v := gatesim.NewPinValues()
	if err := v.SetBinary("x", "101"); err != nil {
		t.Fatal(err)
	}
	for i, exp := range []bool{true, false, true} {
		if got := v.Get("x", i); got != exp {
			t.Errorf("x[%d]: expected %v, got %v", i, exp, got)
		}
	}
	if s := v.Binary("x"); s != "101" {
		t.Errorf("expected 101, got %s", s)
	}
	if s := v.String(); s != "x:101" {
		t.Errorf("expected x:101, got %q", s)
	}
	if _, ok := v.Lookup("x", 3); ok {
		t.Error("x[3] should not be set")
	}
	if err := v.SetBinary("y", "1a0"); err == nil {
		t.Error("expected error for invalid bit")
	}
	if v.Len() != 3 {
		t.Errorf("invalid SetBinary changed values: %s", v)
	}
}

func TestPinValues_get_unset(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("reading an unset pin did not panic")
		}
	}()
	var v gatesim.PinValues
	v.Get("a", 0)
}

func TestPinValues_zero(t *testing.T) {
	var v gatesim.PinValues
	v.Set("b", 1, true)
	v.Set("a", 0, false)
	if v.Len() != 2 {
		t.Fatalf("expected 2 values, got %d", v.Len())
	}
	names := v.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("bad names %v", names)
	}
	// b[0] is not set
	if s := v.Binary("b"); s != "" {
		t.Fatalf("expected empty string, got %q", s)
	}
}

func TestPinValues_clone(t *testing.T) {
	v := gatesim.NewPinValues()
	v.Set("a", 0, true)
	c := v.Clone()
	c.Set("a", 0, false)
	c.Set("b", 0, true)
	if !v.Get("a", 0) || v.Len() != 1 {
		t.Fatalf("clone modified original: %s", v)
	}
}

func TestPinValues_uint(t *testing.T) {
	f := func(x uint16) bool {
		v := gatesim.NewPinValues()
		v.SetUint("n", 16, uint64(x))
		return v.Uint("n") == uint64(x) && len(v.Binary("n")) == 16
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
	v := gatesim.NewPinValues()
	v.SetUint("n", 4, 0x6)
	if s := v.Binary("n"); s != "0110" {
		t.Fatalf("expected 0110, got %s", s)
	}
}

func TestParseValues(t *testing.T) {
	data := []struct {
		in  string
		out string
		err bool
	}{
		{"a:1\nb:0", "a:1\nb:0", false},
		{"\n  out : 0110 \n\n", "out:0110", false},
		{"b:1\na:01", "a:01\nb:1", false},
		{"", "", false},
		{"a", "", true},
		{":1", "", true},
		{"a:2", "", true},
	}
	for _, d := range data {
		v, err := gatesim.ParseValues(d.in)
		if d.err {
			if err == nil {
				t.Errorf("%q: expected error", d.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", d.in, err)
			continue
		}
		if s := v.String(); s != d.out {
			t.Errorf("%q: expected %q, got %q", d.in, d.out, s)
		}
	}
}
