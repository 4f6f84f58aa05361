// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlib

import "github.com/db47h/netsim"

// Not is a NOT gate built from a single NAND.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
//
var Not = &Cell{
	Name:    "not",
	Type:    netsim.SubCombinational,
	Inputs:  []string{pIn},
	Outputs: []string{pOut},
	Gates: []Stmt{
		gate(netsim.Nand, "in in", "out"),
	},
}

// And is a AND gate built from NANDs.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b
//
var And = &Cell{
	Name:    "and",
	Type:    netsim.SubCombinational,
	Inputs:  []string{pA, pB},
	Outputs: []string{pOut},
	Gates: []Stmt{
		gate(netsim.Nand, "a b", "n"),
		gate(netsim.Nand, "n n", "out"),
	},
}

// Or is a OR gate built from NANDs.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a || b
//
var Or = &Cell{
	Name:    "or",
	Type:    netsim.SubCombinational,
	Inputs:  []string{pA, pB},
	Outputs: []string{pOut},
	Gates: []Stmt{
		gate(netsim.Nand, "a a", "nota"),
		gate(netsim.Nand, "b b", "notb"),
		gate(netsim.Nand, "nota notb", "out"),
	},
}

// Xor is a XOR gate built from four NANDs.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = (a && !b) || (!a && b)
//
var Xor = &Cell{
	Name:    "xor",
	Type:    netsim.SubCombinational,
	Inputs:  []string{pA, pB},
	Outputs: []string{pOut},
	Gates: []Stmt{
		gate(netsim.Nand, "a b", "n"),
		gate(netsim.Nand, "a n", "x"),
		gate(netsim.Nand, "b n", "y"),
		gate(netsim.Nand, "x y", "out"),
	},
}
