// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"io"
	"log/slog"
	"sort"

	"github.com/db47h/gatesim/internal/hdl"
	"github.com/pkg/errors"
)

// A NewGateFn returns a new instance of a gate type, fully declared. Parts of
// composite gates should be built with f. The returned gate may or may not be
// compiled; Factory.Build compiles it if needed.
//
type NewGateFn func(f *Factory) (*Gate, error)

// Factory is a registry of gate types.
//
// Building a gate type is deterministic: if a gate type fails to build once,
// the factory remembers the error and returns it for every subsequent Build.
//
// A Factory is not safe for concurrent use.
//
type Factory struct {
	// Logger receives build events. If nil, nothing is logged.
	Logger *slog.Logger

	fns      map[string]NewGateFn
	failed   map[string]error
	building map[string]bool
}

// NewFactory returns a new empty factory.
//
func NewFactory() *Factory {
	return &Factory{
		fns:      make(map[string]NewGateFn),
		failed:   make(map[string]error),
		building: make(map[string]bool),
	}
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func (f *Factory) log() *slog.Logger {
	if f.Logger == nil {
		return discard
	}
	return f.Logger
}

// Register registers a gate type. Registering an existing name replaces the
// previous definition and clears any remembered build error for that name.
//
func (f *Factory) Register(name string, fn NewGateFn) {
	f.fns[name] = fn
	delete(f.failed, name)
	f.log().Debug("register gate type", "gate", name)
}

// Has returns true if the gate type name is registered.
//
func (f *Factory) Has(name string) bool {
	_, ok := f.fns[name]
	return ok
}

// Names returns the registered gate type names, sorted.
//
func (f *Factory) Names() []string {
	names := make([]string, 0, len(f.fns))
	for n := range f.fns {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Build returns a new compiled gate of type name.
//
func (f *Factory) Build(name string) (*Gate, error) {
	if err, ok := f.failed[name]; ok {
		return nil, err
	}
	fn, ok := f.fns[name]
	if !ok {
		return nil, errors.Wrap(ErrUnknownGate, name)
	}
	if f.building[name] {
		return nil, errors.Wrap(ErrRecursiveGate, name)
	}
	f.building[name] = true
	g, err := fn(f)
	delete(f.building, name)
	if err == nil && g == nil {
		err = errors.Errorf("%s: nil gate", name)
	}
	if err == nil && !g.compiled {
		err = g.Compile()
	}
	if err != nil {
		f.failed[name] = err
		f.log().Error("build gate", "gate", name, "error", err.Error())
		return nil, err
	}
	f.log().Debug("build gate", "gate", name, "parts", len(g.parts),
		"tick", len(g.tick), "latch", len(g.latch), "tock", len(g.tock))
	return g, nil
}

// Part is a part in a Chip definition: a gate type name and its connections,
// in the format of Builder.Part.
//
type Part struct {
	Type  string
	Wires string
}

// Parts is a list of parts.
//
type Parts []Part

// Chip registers a composite gate type built from the given parts.
// The gate type is built once in order to report wiring errors early.
//
// An Xor gate could be created like this:
//
//	err := f.Chip("XOR", "a, b", "out", gatesim.Parts{
//		{"Nand", "a=a, b=b, out=nandAB"},
//		{"Nand", "a=a, b=nandAB, out=w0"},
//		{"Nand", "a=b, b=nandAB, out=w1"},
//		{"Nand", "a=w0, b=w1, out=out"},
//	})
//
func (f *Factory) Chip(name string, inputs, outputs string, parts Parts) error {
	f.Register(name, func(f *Factory) (*Gate, error) {
		b := NewBuilder(name, f).Input(inputs).Output(outputs)
		for _, p := range parts {
			b.Part(p.Type, p.Wires)
		}
		return b.Build()
	})
	_, err := f.Build(name)
	return err
}

// PrimitiveSpec describes a primitive gate type.
//
type PrimitiveSpec struct {
	Name string
	// Input and output pin declarations, in the format of Builder.Input.
	Inputs  string
	Outputs string
	// Clocked inputs. Pins declared here must not appear in Inputs.
	Clocked string
	// New returns a new Primitive. A new primitive is created for every
	// gate instance.
	New func() Primitive
}

// NewGate returns a new compiled primitive gate.
//
func (sp *PrimitiveSpec) NewGate() (*Gate, error) {
	if sp.New == nil {
		return nil, errors.Errorf("%s: no primitive", sp.Name)
	}
	g := NewGate(sp.Name)
	for _, d := range []struct {
		spec    string
		kind    PinKind
		clocked bool
	}{
		{sp.Inputs, Input, false},
		{sp.Clocked, Input, true},
		{sp.Outputs, Output, false},
	} {
		ds, err := hdl.ParseDecls(d.spec)
		if err != nil {
			return nil, errors.Wrap(err, sp.Name)
		}
		for _, pd := range ds {
			if g.Width(pd.Name) > 0 {
				return nil, errors.Errorf("%s: pin %s declared twice", sp.Name, pd.Name)
			}
			for i := 0; i < pd.Width; i++ {
				var err error
				if d.clocked {
					err = g.InsertClockedPin(pd.Name, pd.Width, i)
				} else {
					err = g.InsertPin(d.kind, pd.Name, pd.Width, i)
				}
				if err != nil {
					return nil, err
				}
			}
		}
	}
	if err := g.SetPrimitive(sp.New()); err != nil {
		return nil, err
	}
	if err := g.Compile(); err != nil {
		return nil, err
	}
	return g, nil
}

// RegisterPrimitive registers a primitive gate type.
//
func (f *Factory) RegisterPrimitive(sp *PrimitiveSpec) error {
	f.Register(sp.Name, func(*Factory) (*Gate, error) { return sp.NewGate() })
	_, err := f.Build(sp.Name)
	return err
}
