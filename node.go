// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

// Wire selects how a node combines the outputs of its drivers.
//
type Wire int

// Wire functions. The zero value, WireOr, is used for ordinary wires.
//
const (
	// WireOr is true if any driver outputs true, false if undriven.
	WireOr Wire = iota
	// WireAnd is true if every driver outputs true, true if undriven.
	WireAnd
	// WireUniqueDriver passes through the output of its only driver. Two or
	// more drivers is a TooManyNodeDrivers error. Undriven nodes are false.
	WireUniqueDriver
)

func (w Wire) String() string {
	switch w {
	case WireOr:
		return "wor"
	case WireAnd:
		return "wand"
	case WireUniqueDriver:
		return "unique"
	}
	return "wire?"
}

// A Node is a named wire in a module.
//
type Node struct {
	name    string
	state   bool
	pending bool
	drivers []int // indices into the owning module's gate list
	wire    Wire
	input   bool // declared module input, only changed from outside
	output  bool
}

// Name returns the node name.
//
func (n *Node) Name() string { return n.name }

// State returns the current state of the node.
//
func (n *Node) State() bool { return n.state }

// Drivers returns the indices of the gates driving the node. The returned
// slice must not be modified.
//
func (n *Node) Drivers() []int { return n.drivers }

// Wire returns the wire function of the node.
//
func (n *Node) Wire() Wire { return n.wire }

// IsInput returns true if the node is a declared module input.
//
func (n *Node) IsInput() bool { return n.input }

// IsOutput returns true if the node is a declared module output.
//
func (n *Node) IsOutput() bool { return n.output }

// resolve computes the next state of n from the outputs of its drivers. out is
// called for each driver index in order.
//
func (n *Node) resolve(out func(g int) (bool, error)) (bool, error) {
	switch n.wire {
	case WireAnd:
		for _, g := range n.drivers {
			v, err := out(g)
			if err != nil {
				return false, err
			}
			if !v {
				return false, nil
			}
		}
		return true, nil
	case WireUniqueDriver:
		switch len(n.drivers) {
		case 0:
			return false, nil
		case 1:
			return out(n.drivers[0])
		}
		return false, newError(TooManyNodeDrivers, n.name)
	default:
		for _, g := range n.drivers {
			v, err := out(g)
			if err != nil {
				return false, err
			}
			if v {
				return true, nil
			}
		}
		return false, nil
	}
}
