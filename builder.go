// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"github.com/db47h/gatesim/internal/hdl"
	"github.com/pkg/errors"
)

// A Builder assembles a composite gate.
//
// Builder methods can be chained. Errors are sticky: once a method fails,
// subsequent calls are no-ops and Build returns the first error.
//
//	g, err := gatesim.NewBuilder("OR", f).
//		Input("a, b").
//		Output("out").
//		Part("Not", "in=a, out=nota").
//		Part("Not", "in=b, out=notb").
//		Part("Nand", "a=nota, b=notb, out=out").
//		Build()
//
type Builder struct {
	f   *Factory
	g   *Gate
	err error
}

// NewBuilder returns a builder for a new gate. Parts added by type name are
// built by f.
//
func NewBuilder(name string, f *Factory) *Builder {
	return &Builder{f: f, g: NewGate(name)}
}

// Err returns the first error encountered by b, if any.
//
func (b *Builder) Err() error { return b.err }

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Input declares input pins. spec is a comma separated list of pin names,
// with an optional bus width: "a, b, sel[3]".
//
func (b *Builder) Input(spec string) *Builder { return b.declare(Input, spec) }

// Output declares output pins. See Input for the declaration format.
//
func (b *Builder) Output(spec string) *Builder { return b.declare(Output, spec) }

func (b *Builder) declare(kind PinKind, spec string) *Builder {
	if b.err != nil {
		return b
	}
	ds, err := hdl.ParseDecls(spec)
	if err != nil {
		b.fail(errors.Wrap(err, b.g.Name))
		return b
	}
	for _, d := range ds {
		b.DeclarePin(kind, d.Name, d.Width)
	}
	return b
}

// DeclarePin declares the width pins of the pin group name.
//
func (b *Builder) DeclarePin(kind PinKind, name string, width int) *Builder {
	if b.err != nil {
		return b
	}
	if b.g.Width(name) > 0 {
		b.fail(errors.Errorf("%s: pin %s declared twice", b.g.Name, name))
		return b
	}
	if width < 1 {
		b.fail(errors.Errorf("%s: invalid width %d for pin %s", b.g.Name, width, name))
		return b
	}
	for i := 0; i < width; i++ {
		if err := b.g.InsertPin(kind, name, width, i); err != nil {
			b.fail(err)
			return b
		}
	}
	return b
}

// AddChild builds a new part of type typeName and adds it to the gate. It
// returns the part index, or -1 on error.
//
func (b *Builder) AddChild(typeName string) int {
	if b.err != nil {
		return -1
	}
	if b.f == nil {
		b.fail(errors.Wrapf(ErrUnknownGate, "%s: %s: no factory", b.g.Name, typeName))
		return -1
	}
	part, err := b.f.Build(typeName)
	if err != nil {
		b.fail(errors.Wrap(err, b.g.Name))
		return -1
	}
	return b.AddGate(part)
}

// AddGate adds an existing gate as a part. It returns the part index, or -1 on
// error.
//
func (b *Builder) AddGate(part *Gate) int {
	if b.err != nil {
		return -1
	}
	i, err := b.g.AddGate(part)
	if err != nil {
		b.fail(err)
		return -1
	}
	return i
}

// Connect connects pins of the gate to pins of the part at index part.
//
// Both references are pin names with an optional index or range: "a",
// "bus[3]", "bus[0..7]" or "bus[7..0]". An unindexed reference covers the
// whole pin group. Both sides must cover the same number of pins.
//
// If parentRef names an undeclared pin group, internal pins are created as
// needed.
//
func (b *Builder) Connect(part int, parentRef, childRef string) *Builder {
	if b.err != nil {
		return b
	}
	pr, err := hdl.ParseRef(parentRef)
	if err != nil {
		b.fail(errors.Wrap(err, b.g.Name))
		return b
	}
	cr, err := hdl.ParseRef(childRef)
	if err != nil {
		b.fail(errors.Wrap(err, b.g.Name))
		return b
	}
	b.connect(part, pr, cr)
	return b
}

func (b *Builder) connect(part int, pr, cr hdl.Ref) {
	if part < 0 || part >= len(b.g.parts) {
		b.fail(errors.Wrapf(ErrPinNotExists, "%s: part #%d", b.g.Name, part))
		return
	}
	child := b.g.parts[part]
	cw := child.Width(cr.Name)
	if cw == 0 {
		b.fail(errors.Wrapf(ErrPinNotExists, "%s: %s.%s", b.g.Name, b.g.partName(part), cr.Name))
		return
	}
	if !cr.Indexed {
		cr.Indexed, cr.Start, cr.End = true, 0, cw-1
	}
	w := cr.Width()

	if !pr.Indexed {
		pw := b.g.Width(pr.Name)
		if pw == 0 {
			b.DeclarePin(Internal, pr.Name, w)
			pw = w
		}
		pr.Indexed, pr.Start, pr.End = true, 0, pw-1
	} else if b.g.Width(pr.Name) == 0 || b.isInternal(pr.Name) {
		b.growInternal(pr)
	}
	if b.err != nil {
		return
	}
	if pr.Width() != w {
		b.fail(errors.Wrapf(ErrBusWidth, "%s: %s=%s: %d pins for %d", b.g.Name, cr, pr, w, pr.Width()))
		return
	}
	for i := 0; i < w; i++ {
		if err := b.g.ConnectPins(part, PinKey{pr.Name, pr.Index(i)}, PinKey{cr.Name, cr.Index(i)}); err != nil {
			b.fail(err)
			return
		}
	}
}

func (b *Builder) isInternal(name string) bool {
	p, ok := b.g.pins[PinKey{name, 0}]
	return ok && p.Kind == Internal
}

// growInternal makes sure that the internal pins referenced by r exist,
// growing the pin group as needed.
//
func (b *Builder) growInternal(r hdl.Ref) {
	size := max(r.Start, r.End) + 1
	if b.g.Width(r.Name) >= size {
		return
	}
	for i := 0; i < size; i++ {
		k := PinKey{r.Name, i}
		if p, ok := b.g.pins[k]; ok {
			p.Size = size
			continue
		}
		if err := b.g.InsertPin(Internal, r.Name, size, i); err != nil {
			b.fail(err)
			return
		}
	}
}

// Part adds a new part of type typeName and connects it according to wires, a
// comma separated list of part=gate pin assignments: "a=x, b=y[2], out=z".
//
func (b *Builder) Part(typeName string, wires string) *Builder {
	if b.err != nil {
		return b
	}
	as, err := hdl.ParseConnections(wires)
	if err != nil {
		b.fail(errors.Wrapf(err, "%s: %s", b.g.Name, typeName))
		return b
	}
	i := b.AddChild(typeName)
	for _, a := range as {
		if b.err != nil {
			break
		}
		b.connect(i, a.RHS, a.LHS)
	}
	return b
}

// Gate returns the gate being built, not yet compiled.
//
func (b *Builder) Gate() *Gate { return b.g }

// Build compiles and returns the gate.
//
func (b *Builder) Build() (*Gate, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.g.Compile(); err != nil {
		b.fail(err)
		return nil, err
	}
	return b.g, nil
}
