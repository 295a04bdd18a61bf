// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import "github.com/pkg/errors"

// Error kinds. Errors returned by this package wrap one of these values and
// can be tested with errors.Is.
//
var (
	// ErrPinNotExists is returned when a pin or part is referenced but was
	// never declared.
	ErrPinNotExists = errors.New("pin does not exist")

	// ErrInvalidPinConnection is returned when the wiring of a gate breaks the
	// connection rules: a part input connected to one of the gate's outputs, a
	// part output driving one of the gate's inputs, an internal pin read but
	// never written, or an unconnected part input.
	ErrInvalidPinConnection = errors.New("invalid pin connection")

	// ErrCombinationalCycle is returned when the parts of a gate depend on
	// each other within a single evaluation pass.
	ErrCombinationalCycle = errors.New("combinational cycle")

	// ErrNotCompiled is returned when running a gate, or compiling a gate
	// with a part, that has not been compiled.
	ErrNotCompiled = errors.New("gate not compiled")

	// ErrAlreadyCompiled is returned when the structure of a compiled gate is
	// modified or when it is compiled twice.
	ErrAlreadyCompiled = errors.New("gate already compiled")

	// ErrClockPhase is returned by Tick and Tock when called out of order.
	ErrClockPhase = errors.New("wrong clock phase")

	// ErrUnknownGate is returned by a Factory for unregistered gate types.
	ErrUnknownGate = errors.New("unknown gate type")

	// ErrRecursiveGate is returned by a Factory when a gate type contains
	// itself.
	ErrRecursiveGate = errors.New("recursive gate type")

	// ErrBusWidth is returned by a Builder when the two sides of a connection
	// cover a different number of pins.
	ErrBusWidth = errors.New("bus width mismatch")
)
