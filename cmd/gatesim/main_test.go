package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/gatesim"
	"github.com/pkg/errors"
)

func testConfig(t *testing.T, gate string, in ...string) *config {
	t.Helper()
	cfg := &config{gate: gate, cycles: 1}
	for _, s := range in {
		if err := cfg.in.Set(s); err != nil {
			t.Fatal(err)
		}
	}
	return cfg
}

func TestRun(t *testing.T) {
	logger, done, err := newLogger(io.Discard, "", false, true)
	if err != nil {
		t.Fatal(err)
	}
	defer done()

	td := []struct {
		gate string
		in   []string
		out  string
	}{
		{"Or", []string{"a=0", "b=0"}, "out:0\n"},
		{"Or", []string{"a=1", "b=0"}, "out:1\n"},
		{"Or", []string{"a=1", "b=1"}, "out:1\n"},
		{"HalfAdder", []string{"a=1", "b=1"}, "c:1\ns:0\n"},
		{"Add16", []string{"a=1000000000000000", "b=1000000000000000"}, "c:0\nout:0100000000000000\n"},
	}
	for _, d := range td {
		var b strings.Builder
		if err := run(&b, logger, testConfig(t, d.gate, d.in...)); err != nil {
			t.Fatal(err)
		}
		if got := b.String(); got != d.out {
			t.Errorf("%s %v: expected %q, got %q", d.gate, d.in, d.out, got)
		}
	}
}

func TestRun_cycles(t *testing.T) {
	logger, done, err := newLogger(io.Discard, "", false, false)
	if err != nil {
		t.Fatal(err)
	}
	defer done()
	cfg := testConfig(t, "Bit", "in=1", "load=1")
	cfg.cycles = 2
	var b strings.Builder
	if err = run(&b, logger, cfg); err != nil {
		t.Fatal(err)
	}
	if exp := "# cycle 0\nout:1\n# cycle 1\nout:1\n"; b.String() != exp {
		t.Fatalf("expected %q, got %q", exp, b.String())
	}
}

func TestRun_errors(t *testing.T) {
	logger, done, err := newLogger(io.Discard, "", false, false)
	if err != nil {
		t.Fatal(err)
	}
	defer done()
	var b strings.Builder
	if err = run(&b, logger, testConfig(t, "")); err == nil {
		t.Error("expected error with no gate")
	}
	if err = run(&b, logger, testConfig(t, "Foo")); !errors.Is(err, gatesim.ErrUnknownGate) {
		t.Errorf("expected ErrUnknownGate, got %v", err)
	}
	if err = run(&b, logger, testConfig(t, "Or", "a=1")); !errors.Is(err, gatesim.ErrPinNotExists) {
		t.Errorf("expected ErrPinNotExists, got %v", err)
	}
	var in inputs
	if err = in.Set("a"); err == nil {
		t.Error("expected error for missing '='")
	}
	if err = in.Set("a=102"); err == nil {
		t.Error("expected error for invalid bits")
	}
}

func TestRun_list(t *testing.T) {
	logger, done, err := newLogger(io.Discard, "", false, false)
	if err != nil {
		t.Fatal(err)
	}
	defer done()
	var b strings.Builder
	if err = run(&b, logger, &config{list: true}); err != nil {
		t.Fatal(err)
	}
	for _, n := range []string{"Nand", "DFF", "Xor", "Register16"} {
		if !strings.Contains(b.String(), n+"\n") {
			t.Errorf("%s not listed", n)
		}
	}
}

func TestRun_lib(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib.yaml")
	err := os.WriteFile(lib, []byte(`
gates:
  - name: Majority
    in: a, b, c
    out: out
    parts:
      - gate: And
        wires: a=a, b=b, out=ab
      - gate: And
        wires: a=a, b=c, out=ac
      - gate: And
        wires: a=b, b=c, out=bc
      - gate: Or3Way
        wires: in[0]=ab, in[1]=ac, in[2]=bc, out=out
  - name: Or3Way
    in: in[3]
    out: out
    parts:
      - gate: Or
        wires: a=in[0], b=in[1], out=w
      - gate: Or
        wires: a=w, b=in[2], out=out
`), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	logFile := filepath.Join(dir, "log.json")
	logger, done, err := newLogger(io.Discard, logFile, false, true)
	if err != nil {
		t.Fatal(err)
	}
	cfg := testConfig(t, "Majority", "a=1", "b=0", "c=1")
	cfg.lib = lib
	var b strings.Builder
	err = run(&b, logger, cfg)
	done()
	if err != nil {
		t.Fatal(err)
	}
	if b.String() != "out:1\n" {
		t.Fatalf("expected out:1, got %q", b.String())
	}
	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"library loaded"`) {
		t.Errorf("library load not logged:\n%s", data)
	}
}

func TestRun_table(t *testing.T) {
	logger, done, err := newLogger(io.Discard, "", false, false)
	if err != nil {
		t.Fatal(err)
	}
	defer done()
	cfg := testConfig(t, "And")
	cfg.table = true
	var b strings.Builder
	if err = run(&b, logger, cfg); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "out") {
		t.Fatalf("bad truth table:\n%s", b.String())
	}
}

func TestToJournalKey(t *testing.T) {
	if k := toJournalKey("gate.name-1"); k != "GATE_NAME_1" {
		t.Fatalf("got %q", k)
	}
}
