/*
Package netsim is a tick based digital logic simulator for textual netlists.

A netlist describes one or more modules. Each module declares its inputs and
instantiates gates wired together by named nodes:

	@TOP halfadder {
		@IN : a b ;
		XOR : a b -> sum ;
		AND : a b -> carry ;
	}

Module keywords are @MODULE, @TOP and @COMB. Gates are AND, OR, XOR, NAND, NOR,
XNOR (two or more inputs), NOT and BUF (one input). Keywords and gate names are
case insensitive. Besides @IN, the directives @OUT, @WAND, @WOR and @UNIQUE
respectively declare module outputs and select the wire function of nodes.

The simulation runs in discrete ticks. On each tick, the next state of every
node is computed from the current state of all nodes, then all nodes switch to
their next state at once. As a result, a signal needs k ticks to travel
through k levels of logic; there is no automatic settling:

	s, err := netsim.New(src)
	if err != nil {
		// handle error
	}
	defer s.Close()
	s.Set("a", true)
	s.Set("b", true)
	s.TickN(1)
	carry, _ := s.Get("carry")

Cyclic netlists (latches, oscillators) are supported since nodes and gates
only refer to each other by index.
*/
package netsim
