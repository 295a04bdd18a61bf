// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command gatesim runs a gate from the built-in library, or from a YAML gate
// library, and prints its outputs.
//
//	gatesim -gate Or -in a=1 -in b=0
//	gatesim -gate Register16 -in in=1010000000000000 -in load=1 -cycles 3
//	gatesim -lib mylib.yaml -gate MyChip -table
//
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/db47h/gatesim"
	"github.com/db47h/gatesim/gatelib"
	"github.com/db47h/gatesim/gatetest"
	"github.com/pkg/errors"
)

// inputs implements flag.Value for repeated -in name=bits flags.
type inputs struct {
	v *gatesim.PinValues
}

func (in *inputs) String() string {
	if in.v == nil {
		return ""
	}
	return strings.Replace(in.v.String(), "\n", " ", -1)
}

func (in *inputs) Set(s string) error {
	i := strings.IndexByte(s, '=')
	if i <= 0 {
		return errors.Errorf("expected name=bits, got %q", s)
	}
	if in.v == nil {
		in.v = gatesim.NewPinValues()
	}
	return in.v.SetBinary(strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]))
}

type config struct {
	gate    string
	lib     string
	cycles  int
	table   bool
	list    bool
	verbose bool
	logFile string
	journal bool
	in      inputs
}

func main() {
	var cfg config
	flag.StringVar(&cfg.gate, "gate", "", "gate type to run")
	flag.Var(&cfg.in, "in", "input `name=bits`, bits index 0 first. Can be repeated")
	flag.IntVar(&cfg.cycles, "cycles", 1, "number of clock cycles to run")
	flag.StringVar(&cfg.lib, "lib", "", "load gate definitions from a YAML `file`")
	flag.BoolVar(&cfg.table, "table", false, "print the truth table of the gate")
	flag.BoolVar(&cfg.list, "list", false, "list available gate types")
	flag.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	flag.StringVar(&cfg.logFile, "log-file", "", "also write JSON logs to `file`")
	flag.BoolVar(&cfg.journal, "journal", false, "also log to the systemd journal")
	flag.Parse()

	logger, closeLog, err := newLogger(os.Stderr, cfg.logFile, cfg.journal, cfg.verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	err = run(os.Stdout, logger, &cfg)
	if err != nil {
		logger.Error("gatesim", "error", err.Error())
	}
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

func run(w io.Writer, logger *slog.Logger, cfg *config) error {
	f := gatesim.NewFactory()
	f.Logger = logger
	if err := gatelib.Register(f); err != nil {
		return err
	}
	if cfg.lib != "" {
		r, err := os.Open(cfg.lib)
		if err != nil {
			return err
		}
		err = gatesim.LoadLibrary(r, f)
		r.Close()
		if err != nil {
			return errors.Wrap(err, cfg.lib)
		}
		logger.Info("library loaded", "file", cfg.lib)
	}

	if cfg.list {
		for _, n := range f.Names() {
			fmt.Fprintln(w, n)
		}
		return nil
	}
	if cfg.gate == "" {
		return errors.New("no gate type specified")
	}

	g, err := f.Build(cfg.gate)
	if err != nil {
		return err
	}
	if cfg.table {
		return gatetest.TruthTable(w, g)
	}

	in := cfg.in.v
	if in == nil {
		in = gatesim.NewPinValues()
	}
	for i := 0; i < cfg.cycles; i++ {
		out, err := g.Run(in)
		if err != nil {
			return err
		}
		if cfg.cycles > 1 {
			fmt.Fprintf(w, "# cycle %d\n", i)
		}
		fmt.Fprintln(w, out)
		logger.Debug("cycle", "gate", cfg.gate, "cycle", i)
	}
	return nil
}
