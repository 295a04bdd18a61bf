// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Updater is the interface that custom primitives built using reflection must
// implement. See MakePrimitive.
//
// Update computes the output fields from the input fields. It must not change
// any state other than output fields.
//
type Updater interface {
	Update()
}

// Latcher is implemented by custom primitives holding state. Latch is called
// on the clock edge, once all input fields, including clocked inputs, are set.
//
type Latcher interface {
	Latch()
}

type reflectField struct {
	index   int
	pin     string
	width   int // 0 for single pins
	input   bool
	clocked bool
}

// MakePrimitive returns a PrimitiveSpec for a struct type implementing
// Updater. Input/output pins are identified by field tags.
//
// The field tag must be `gate:"in"`, `gate:"clk"` or `gate:"out"` to identify
// input, clocked input and output pins. By default, the pin name is the field
// name in lowercase. A specific pin name can be forced by adding it in the
// tag: `gate:"in,pin_name"`.
//
// Pins must be bool fields. Buses must be arrays of bool.
//
//	type mux4 struct {
//		A   [4]bool `gate:"in"`
//		B   [4]bool `gate:"in"`
//		S   bool    `gate:"in,sel"`
//		Out [4]bool `gate:"out"`
//	}
//
//	spec, err := gatesim.MakePrimitive((*mux4)(nil))
//
func MakePrimitive(t Updater) (*PrimitiveSpec, error) {
	typ := reflect.TypeOf(t)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if k := typ.Kind(); k != reflect.Struct {
		return nil, errors.Errorf("unsupported type %q for %q", k, typ.Name())
	}
	if !reflect.PointerTo(typ).Implements(updaterType) {
		return nil, errors.Errorf("%s: *%s does not implement Updater", typ.Name(), typ.Name())
	}

	var (
		fields             []reflectField
		ins, clocked, outs []string
	)
	n := typ.NumField()
	for i := 0; i < n; i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("gate")
		if !ok {
			continue
		}
		rf := reflectField{index: i, pin: strings.ToLower(f.Name)}
		tv := strings.Split(tag, ",")
		if len(tv) > 2 {
			return nil, errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name())
		}
		if len(tv) == 2 && tv[1] != "" {
			rf.pin = tv[1]
		}
		switch tv[0] {
		case "in":
			rf.input = true
		case "clk":
			rf.input, rf.clocked = true, true
		case "out":
		default:
			return nil, errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name())
		}

		ft := f.Type
		decl := rf.pin
		switch k := ft.Kind(); {
		case k == reflect.Array && ft.Elem().Kind() == reflect.Bool && ft.Len() > 0:
			rf.width = ft.Len()
			decl += "[" + strconv.Itoa(rf.width) + "]"
		case k == reflect.Bool:
		default:
			return nil, errors.Errorf("unsupported type %q for field %q in %q", k, f.Name, typ.Name())
		}
		switch {
		case rf.clocked:
			clocked = append(clocked, decl)
		case rf.input:
			ins = append(ins, decl)
		default:
			outs = append(outs, decl)
		}
		fields = append(fields, rf)
	}

	return &PrimitiveSpec{
		Name:    typ.Name(),
		Inputs:  strings.Join(ins, ", "),
		Clocked: strings.Join(clocked, ", "),
		Outputs: strings.Join(outs, ", "),
		New: func() Primitive {
			v := reflect.New(typ)
			p := &reflectPrimitive{v: v.Elem(), fields: fields, u: v.Interface().(Updater)}
			if l, ok := v.Interface().(Latcher); ok {
				return &reflectClocked{p, l}
			}
			return p
		},
	}, nil
}

var updaterType = reflect.TypeOf((*Updater)(nil)).Elem()

type reflectPrimitive struct {
	v      reflect.Value
	fields []reflectField
	u      Updater
}

func (p *reflectPrimitive) load(in *PinValues, clocked bool) {
	for _, f := range p.fields {
		if !f.input || f.clocked && !clocked {
			continue
		}
		fv := p.v.Field(f.index)
		if f.width == 0 {
			if b, ok := in.Lookup(f.pin, 0); ok {
				fv.SetBool(b)
			}
			continue
		}
		for i := 0; i < f.width; i++ {
			if b, ok := in.Lookup(f.pin, i); ok {
				fv.Index(i).SetBool(b)
			}
		}
	}
}

func (p *reflectPrimitive) Evaluate(in *PinValues) *PinValues {
	p.load(in, false)
	p.u.Update()
	out := NewPinValues()
	for _, f := range p.fields {
		if f.input {
			continue
		}
		fv := p.v.Field(f.index)
		if f.width == 0 {
			out.Set(f.pin, 0, fv.Bool())
			continue
		}
		for i := 0; i < f.width; i++ {
			out.Set(f.pin, i, fv.Index(i).Bool())
		}
	}
	return out
}

type reflectClocked struct {
	*reflectPrimitive
	l Latcher
}

func (p *reflectClocked) Latch(in *PinValues) {
	p.load(in, true)
	p.l.Latch()
}
