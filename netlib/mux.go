// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlib

import "github.com/db47h/netsim"

// Mux is a 2 to 1 multiplexer.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: If sel=0 then out=a else out=b.
//
var Mux = &Cell{
	Name:    "mux",
	Type:    netsim.SubCombinational,
	Inputs:  []string{pA, pB, pSel},
	Outputs: []string{pOut},
	Gates: []Stmt{
		gate(netsim.Not, "sel", "nsel"),
		gate(netsim.And, "a nsel", "x"),
		gate(netsim.And, "b sel", "y"),
		gate(netsim.Or, "x y", "out"),
	},
}

// DMux is a 1 to 2 demultiplexer.
//
//	Inputs: in, sel
//	Outputs: a, b
//	Function: If sel=0 then {a=in, b=0} else {a=0, b=in}
//
var DMux = &Cell{
	Name:    "dmux",
	Type:    netsim.SubCombinational,
	Inputs:  []string{pIn, pSel},
	Outputs: []string{pA, pB},
	Gates: []Stmt{
		gate(netsim.Not, "sel", "nsel"),
		gate(netsim.And, "in nsel", "a"),
		gate(netsim.And, "in sel", "b"),
	},
}

// SRLatch is a set/reset latch made of two cross coupled NOR gates. It has a
// feedback path and cannot be declared @COMB.
//
//	Inputs: s, r
//	Outputs: q, qn
//	Function: s=1 sets q, r=1 resets q, s=r=0 holds.
//
var SRLatch = &Cell{
	Name:    "srlatch",
	Type:    netsim.Sub,
	Inputs:  []string{"s", "r"},
	Outputs: []string{"q", "qn"},
	Gates: []Stmt{
		gate(netsim.Nor, "r qn", "q"),
		gate(netsim.Nor, "s q", "qn"),
	},
}
