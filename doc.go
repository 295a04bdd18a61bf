/*
Package gatesim compiles and runs digital logic circuits described as a
hierarchy of gates.

A gate is a black box exposing named, indexed boolean pins. Primitive gates
implement their behavior in Go (see Primitive); composite gates are built by
wiring together instances of other gates:

	f := gatelib.NewFactory()
	or, err := gatesim.NewBuilder("OR", f).
		Input("a, b").
		Output("out").
		Part("Not", "in=a, out=nota").
		Part("Not", "in=b, out=notb").
		Part("Nand", "a=nota, b=notb, out=out").
		Build()

Building a composite gate compiles its wiring into an execution plan: parts
are sorted so that every part runs after the parts it depends on, and
combinational loops are rejected. Running the gate walks that plan:

	in := gatesim.NewPinValues()
	in.SetBinary("a", "1")
	in.SetBinary("b", "0")
	out, err := or.Run(in)
	fmt.Println(out) // out:1

Sequential circuits are run one clock cycle at a time with Tick and Tock:
Tick latches the inputs of parts holding state (like a data flip-flop), Tock
computes the outputs from the latched state. Because the output of a
stateful part only depends on the state latched on the previous clock edge,
feedback loops through such parts are not combinational cycles.

*/
package gatesim
