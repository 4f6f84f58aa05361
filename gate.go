// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"github.com/db47h/netsim/internal/lex"
)

// GateKind is the logic function of a gate.
//
type GateKind int

// Gate kinds.
//
const (
	And GateKind = iota
	Or
	Xor
	Nand
	Nor
	Xnor
	Not
	Buf
	Input
)

var gateNames = [...]string{
	And:   "AND",
	Or:    "OR",
	Xor:   "XOR",
	Nand:  "NAND",
	Nor:   "NOR",
	Xnor:  "XNOR",
	Not:   "NOT",
	Buf:   "BUF",
	Input: "INPUT",
}

func (k GateKind) String() string {
	if k < 0 || int(k) >= len(gateNames) {
		return "GATE?"
	}
	return gateNames[k]
}

// ParseGateKind returns the gate kind for the given mnemonic. Matching is
// case insensitive. Input gates cannot be instantiated from a netlist and
// are not recognized.
//
func ParseGateKind(s string) (GateKind, bool) {
	s = lex.Fold(s)
	for k := And; k < Input; k++ {
		if lex.Fold(gateNames[k]) == s {
			return k, true
		}
	}
	return 0, false
}

// arity returns the minimum and maximum input count for k. hi < 0 means
// unbounded.
//
func (k GateKind) arity() (lo, hi int) {
	switch k {
	case Not, Buf:
		return 1, 1
	case Input:
		return 0, 0
	}
	return 2, -1
}

// NoPort is the port value for gates that are not bound to an external port.
//
const NoPort = -1

// A Gate is a logic gate instance. Its inputs are indices into the node table
// of the module that owns it.
//
type Gate struct {
	kind   GateKind
	inputs []int
	port   int
}

// NewGate returns a new gate of the given kind. Input gates must be bound to a
// port (port >= 0) and have no inputs; other kinds must use NoPort.
//
func NewGate(kind GateKind, inputs []int, port int) (Gate, error) {
	if kind < And || kind > Input {
		return Gate{}, newError(InvalidGateInstanceName, kind.String())
	}
	if kind == Input {
		if len(inputs) > 0 {
			return Gate{}, newError(UnnecessaryExternalState, kind.String())
		}
		if port < 0 {
			return Gate{}, newError(MissingExternalState, kind.String())
		}
	}
	lo, hi := kind.arity()
	if len(inputs) < lo || hi >= 0 && len(inputs) > hi {
		return Gate{}, newError(WrongNumberOfInputs, kind.String())
	}
	if kind != Input && port != NoPort {
		return Gate{}, newError(UnnecessaryExternalState, kind.String())
	}
	in := make([]int, len(inputs))
	copy(in, inputs)
	return Gate{kind: kind, inputs: in, port: port}, nil
}

// Kind returns the gate kind.
//
func (g *Gate) Kind() GateKind { return g.kind }

// Inputs returns the node indices of the gate inputs. The returned slice must
// not be modified.
//
func (g *Gate) Inputs() []int { return g.inputs }

// Port returns the port bound to an Input gate, NoPort for other kinds.
//
func (g *Gate) Port() int { return g.port }

// Eval returns the output of the gate given the current node states of its
// module and the external port values.
//
func (g *Gate) Eval(nodes []Node, ports []bool) (bool, error) {
	if g.kind == Input {
		if g.port < 0 || g.port >= len(ports) {
			return false, newError(InvalidGateConnection, g.kind.String())
		}
		return ports[g.port], nil
	}
	for _, i := range g.inputs {
		if i < 0 || i >= len(nodes) {
			return false, newError(InvalidGateConnection, g.kind.String())
		}
	}
	switch g.kind {
	case And:
		return allOf(g.inputs, nodes), nil
	case Nand:
		return !allOf(g.inputs, nodes), nil
	case Or:
		return anyOf(g.inputs, nodes), nil
	case Nor:
		return !anyOf(g.inputs, nodes), nil
	case Xor:
		return parity(g.inputs, nodes), nil
	case Xnor:
		return !parity(g.inputs, nodes), nil
	case Not:
		return !nodes[g.inputs[0]].state, nil
	case Buf:
		return nodes[g.inputs[0]].state, nil
	}
	return false, newError(InvalidGateConnection, g.kind.String())
}

func allOf(in []int, nodes []Node) bool {
	for _, i := range in {
		if !nodes[i].state {
			return false
		}
	}
	return true
}

func anyOf(in []int, nodes []Node) bool {
	for _, i := range in {
		if nodes[i].state {
			return true
		}
	}
	return false
}

func parity(in []int, nodes []Node) bool {
	p := false
	for _, i := range in {
		p = p != nodes[i].state
	}
	return p
}
