// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package netlib provides a library of reusable netlist cells for netsim.
//
// Each cell can be rendered as netlist source with Source, or mounted into an
// existing module with Mount.
//
package netlib

import (
	"strings"

	"github.com/db47h/netsim"
	"github.com/pkg/errors"
)

// common pin names
const (
	pA   = "a"
	pB   = "b"
	pIn  = "in"
	pSel = "sel"
	pOut = "out"
)

// Stmt is a single gate statement of a cell.
//
type Stmt struct {
	Gate    netsim.GateKind
	Inputs  []string
	Outputs []string
}

// A Cell is a named netlist template with declared input and output pins.
//
type Cell struct {
	Name    string
	Type    netsim.ModuleType
	Inputs  []string
	Outputs []string
	Gates   []Stmt
}

func gate(k netsim.GateKind, in string, out string) Stmt {
	return Stmt{Gate: k, Inputs: strings.Fields(in), Outputs: strings.Fields(out)}
}

// Source renders c as a netlist module named name. If name is empty, c.Name is
// used.
//
func (c *Cell) Source(name string) string {
	if name == "" {
		name = c.Name
	}
	var b strings.Builder
	b.WriteString("@")
	b.WriteString(c.Type.String())
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(" {\n")
	if len(c.Inputs) > 0 {
		b.WriteString("\t@IN : " + strings.Join(c.Inputs, " ") + " ;\n")
	}
	if len(c.Outputs) > 0 {
		b.WriteString("\t@OUT : " + strings.Join(c.Outputs, " ") + " ;\n")
	}
	for _, g := range c.Gates {
		b.WriteString("\t")
		b.WriteString(g.Gate.String())
		b.WriteString(" : ")
		b.WriteString(strings.Join(g.Inputs, " "))
		b.WriteString(" -> ")
		b.WriteString(strings.Join(g.Outputs, " "))
		b.WriteString(" ;\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// Netlist concatenates the sources of the given cells, each under its own
// name. The first cell is the top module.
//
func Netlist(cells ...*Cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(c.Source(""))
	}
	return b.String()
}

// Mount adds the gates of c to module m. Pins are connected to the module
// nodes named in conn, keyed by pin name. Unconnected pins and internal nodes
// are named inst + "." + name so that two instances never share nodes.
//
// Mount fails if conn names a pin that c does not have.
//
func (c *Cell) Mount(m *netsim.Module, inst string, conn map[string]string) error {
	for p := range conn {
		if !c.hasPin(p) {
			return errors.Errorf("cell %s: no pin named %q", c.Name, p)
		}
	}
	rename := func(names []string) []string {
		r := make([]string, len(names))
		for i, n := range names {
			if w, ok := conn[n]; ok {
				r[i] = w
			} else {
				r[i] = inst + "." + n
			}
		}
		return r
	}
	for _, g := range c.Gates {
		if _, err := m.AddGate(g.Gate, rename(g.Inputs), rename(g.Outputs)); err != nil {
			return errors.Wrapf(err, "cell %s, instance %q", c.Name, inst)
		}
	}
	return nil
}

func (c *Cell) hasPin(name string) bool {
	for _, p := range c.Inputs {
		if p == name {
			return true
		}
	}
	for _, p := range c.Outputs {
		if p == name {
			return true
		}
	}
	return false
}
