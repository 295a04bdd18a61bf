// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Library is a set of composite gate type definitions, usually loaded from a
// YAML document:
//
//	gates:
//	  - name: Xor
//	    in: a, b
//	    out: out
//	    parts:
//	      - gate: Nand
//	        wires: a=a, b=b, out=nandAB
//	      - gate: Nand
//	        wires: a=a, b=nandAB, out=w0
//	      - gate: Nand
//	        wires: a=b, b=nandAB, out=w1
//	      - gate: Nand
//	        wires: a=w0, b=w1, out=out
//
type Library struct {
	Gates []ChipDef `yaml:"gates"`
}

// ChipDef defines a composite gate type.
//
type ChipDef struct {
	Name  string    `yaml:"name"`
	In    string    `yaml:"in"`
	Out   string    `yaml:"out"`
	Parts []PartDef `yaml:"parts"`
}

// PartDef is a part in a ChipDef.
//
type PartDef struct {
	Gate  string `yaml:"gate"`
	Wires string `yaml:"wires"`
}

// Validate checks that the library is well formed. It does not check wiring.
//
func (l *Library) Validate() error {
	seen := make(map[string]bool, len(l.Gates))
	for i, d := range l.Gates {
		if d.Name == "" {
			return errors.Errorf("gate #%d: missing name", i)
		}
		if seen[d.Name] {
			return errors.Errorf("gate %s: defined twice", d.Name)
		}
		seen[d.Name] = true
		if d.Out == "" {
			return errors.Errorf("gate %s: no outputs", d.Name)
		}
		for j, p := range d.Parts {
			if p.Gate == "" {
				return errors.Errorf("gate %s: part #%d: missing gate type", d.Name, j)
			}
		}
	}
	return nil
}

// ReadLibrary decodes a YAML library from r.
//
func ReadLibrary(r io.Reader) (*Library, error) {
	var l Library
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil {
		if err == io.EOF {
			return &l, nil
		}
		return nil, errors.Wrap(err, "decode library")
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Register registers all gate types of l in f, then builds each of them once
// in order to report errors. Gate types may refer to each other regardless
// of their order in the library.
//
func (l *Library) Register(f *Factory) error {
	for _, d := range l.Gates {
		d := d
		f.Register(d.Name, func(f *Factory) (*Gate, error) {
			b := NewBuilder(d.Name, f).Input(d.In).Output(d.Out)
			for _, p := range d.Parts {
				b.Part(p.Gate, p.Wires)
			}
			return b.Build()
		})
	}
	for _, d := range l.Gates {
		if _, err := f.Build(d.Name); err != nil {
			return err
		}
	}
	return nil
}

// LoadLibrary reads a YAML library from r and registers it in f.
//
func LoadLibrary(r io.Reader, f *Factory) error {
	l, err := ReadLibrary(r)
	if err != nil {
		return err
	}
	return l.Register(f)
}
