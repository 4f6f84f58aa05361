// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlib

import "github.com/db47h/netsim"

// HalfAdder is a half adder.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
var HalfAdder = &Cell{
	Name:    "halfadder",
	Type:    netsim.SubCombinational,
	Inputs:  []string{pA, pB},
	Outputs: []string{"s", "c"},
	Gates: []Stmt{
		gate(netsim.Xor, "a b", "s"),
		gate(netsim.And, "a b", "c"),
	},
}

// FullAdder is a 3 bit adder.
//
//	Inputs: a, b, cin
//	Outputs: s, cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
var FullAdder = &Cell{
	Name:    "fulladder",
	Type:    netsim.SubCombinational,
	Inputs:  []string{pA, pB, "cin"},
	Outputs: []string{"s", "cout"},
	Gates: []Stmt{
		gate(netsim.And, "a b", "c1"),
		gate(netsim.Xor, "a b", "hs"),
		gate(netsim.And, "hs cin", "c2"),
		gate(netsim.Xor, "hs cin", "s"),
		gate(netsim.Or, "c1 c2", "cout"),
	},
}

// Multiplier2 is a 2 bits by 2 bits unsigned multiplier.
//
//	Inputs: a1, a0, b1, b0
//	Outputs: c3, c2, c1, c0
//	Function: c = a * b
//
var Multiplier2 = &Cell{
	Name:    "mul2",
	Type:    netsim.SubCombinational,
	Inputs:  []string{"a1", "a0", "b1", "b0"},
	Outputs: []string{"c3", "c2", "c1", "c0"},
	Gates: []Stmt{
		gate(netsim.And, "a0 b0", "c0"),
		gate(netsim.And, "a1 b0", "p1"),
		gate(netsim.And, "a0 b1", "p2"),
		gate(netsim.Xor, "p1 p2", "c1"),
		gate(netsim.And, "p1 p2", "k"),
		gate(netsim.And, "a1 b1", "p3"),
		gate(netsim.Xor, "p3 k", "c2"),
		gate(netsim.And, "p3 k", "c3"),
	},
}
