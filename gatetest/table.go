// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatetest

import (
	"io"

	"github.com/db47h/gatesim"
	"github.com/markkurossi/tabulate"
	"github.com/pkg/errors"
)

type group struct {
	name  string
	width int
}

func groups(g *gatesim.Gate, kind gatesim.PinKind) []group {
	var gs []group
	for _, p := range g.Pins(kind) {
		if p.Index == 0 {
			gs = append(gs, group{p.Name, p.Size})
		}
	}
	return gs
}

// TruthTable runs g with every combination of its inputs and writes the
// results to w as a table with one column per pin group. Bus values are
// printed index 0 first, as in PinValues.Binary.
//
// Rows are run in order with Gate.Run, so a stateful gate carries its state
// from one row to the next.
//
func TruthTable(w io.Writer, g *gatesim.Gate) error {
	ins, outs := groups(g, gatesim.Input), groups(g, gatesim.Output)
	n := 0
	for _, gr := range ins {
		n += gr.width
	}
	if n > MaxExhaustive {
		return errors.Errorf("%s: too many inputs for a truth table (%d)", g.Name, n)
	}

	tab := tabulate.New(tabulate.UnicodeLight)
	for _, gr := range ins {
		tab.Header(gr.name).SetAlign(tabulate.ML)
	}
	for _, gr := range outs {
		tab.Header(gr.name).SetAlign(tabulate.ML)
	}

	for c := 0; c < 1<<uint(n); c++ {
		in := gatesim.NewPinValues()
		// the first input pin is the most significant bit of c
		bit := n - 1
		for _, gr := range ins {
			for i := 0; i < gr.width; i++ {
				in.Set(gr.name, i, c&(1<<uint(bit)) != 0)
				bit--
			}
		}
		out, err := g.Run(in)
		if err != nil {
			return err
		}
		row := tab.Row()
		for _, gr := range ins {
			row.Column(in.Binary(gr.name))
		}
		for _, gr := range outs {
			row.Column(out.Binary(gr.name))
		}
	}
	tab.Print(w)
	return nil
}
