// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"github.com/db47h/netsim/internal/lex"
	"github.com/pkg/errors"
)

// ModuleType is the type of a module as declared by its keyword.
//
type ModuleType int

// Module types.
//
const (
	Sub             ModuleType = iota // @MODULE
	Top                               // @TOP
	SubCombinational                  // @COMB
)

func (t ModuleType) String() string {
	switch t {
	case Sub:
		return "MODULE"
	case Top:
		return "TOP"
	case SubCombinational:
		return "COMB"
	}
	return "MODULE?"
}

// ParseModuleType returns the module type for a module keyword body (without
// the leading '@'). Matching is case insensitive.
//
func ParseModuleType(s string) (ModuleType, bool) {
	switch lex.Fold(s) {
	case "module":
		return Sub, true
	case "top":
		return Top, true
	case "comb":
		return SubCombinational, true
	}
	return 0, false
}

// A Module owns a table of nodes and the gates that drive them.
//
// All cross references are indices: gates reference their input nodes by
// index in the node table and nodes reference their drivers by index in the
// gate list. Nodes and gates are never removed.
//
type Module struct {
	name     string
	typ      ModuleType
	nodes    []Node
	index    map[string]int
	inputs   []int
	outputs  []int
	gates    []Gate
	maxNodes int // < 0 for no limit
}

// NewModule returns a new empty module.
//
func NewModule(name string, typ ModuleType) *Module {
	return &Module{
		name:     name,
		typ:      typ,
		index:    make(map[string]int),
		maxNodes: -1,
	}
}

// Name returns the module name.
//
func (m *Module) Name() string { return m.name }

// Type returns the module type.
//
func (m *Module) Type() ModuleType { return m.typ }

// Len returns the number of nodes in the module.
//
func (m *Module) Len() int { return len(m.nodes) }

// Node returns the index of the named node.
//
func (m *Module) Node(name string) (int, bool) {
	n, ok := m.index[name]
	return n, ok
}

// At returns the node at index i.
//
func (m *Module) At(i int) *Node { return &m.nodes[i] }

// NodeOrNew returns the index of the named node, creating a new node with a
// false state and no drivers if it does not exist.
//
func (m *Module) NodeOrNew(name string) (int, error) {
	if n, ok := m.index[name]; ok {
		return n, nil
	}
	if m.maxNodes >= 0 && len(m.nodes) >= m.maxNodes {
		return -1, newError(TooManyNodes, name)
	}
	n := len(m.nodes)
	m.nodes = append(m.nodes, Node{name: name})
	m.index[name] = n
	return n, nil
}

// Nodes returns the node names in creation order.
//
func (m *Module) Nodes() []string {
	r := make([]string, len(m.nodes))
	for i := range m.nodes {
		r[i] = m.nodes[i].name
	}
	return r
}

func (m *Module) names(idx []int) []string {
	r := make([]string, len(idx))
	for i, n := range idx {
		r[i] = m.nodes[n].name
	}
	return r
}

// Inputs returns the names of the declared inputs in declaration order.
//
func (m *Module) Inputs() []string { return m.names(m.inputs) }

// Outputs returns the names of the declared outputs in declaration order.
//
func (m *Module) Outputs() []string { return m.names(m.outputs) }

// DeclareInput marks the named node as a module input, creating it if
// necessary. Declared inputs are never updated by the simulation.
//
func (m *Module) DeclareInput(name string) error {
	n, err := m.NodeOrNew(name)
	if err != nil {
		return err
	}
	if !m.nodes[n].input {
		m.nodes[n].input = true
		m.inputs = append(m.inputs, n)
	}
	return nil
}

// DeclareOutput marks the named node as a module output, creating it if
// necessary.
//
func (m *Module) DeclareOutput(name string) error {
	n, err := m.NodeOrNew(name)
	if err != nil {
		return err
	}
	if !m.nodes[n].output {
		m.nodes[n].output = true
		m.outputs = append(m.outputs, n)
	}
	return nil
}

// SetWire sets the wire function of the named node, creating it if
// necessary.
//
func (m *Module) SetWire(name string, w Wire) error {
	n, err := m.NodeOrNew(name)
	if err != nil {
		return err
	}
	m.nodes[n].wire = w
	return nil
}

// Gates returns the module's gates. The returned slice must not be modified.
//
func (m *Module) Gates() []Gate { return m.gates }

// AddGate adds a gate of the given kind. Input and output nodes are created as
// needed. The new gate is appended to the driver list of every output node.
// It returns the index of the new gate.
//
func (m *Module) AddGate(kind GateKind, inputs, outputs []string) (int, error) {
	// check arity before creating any node.
	if _, err := NewGate(kind, make([]int, len(inputs)), NoPort); err != nil {
		return -1, err
	}
	return m.addGate(kind, inputs, outputs, NoPort)
}

// AddInputGate adds an Input gate bound to the given external port and
// driving the named outputs.
//
func (m *Module) AddInputGate(port int, outputs []string) (int, error) {
	if _, err := NewGate(Input, nil, port); err != nil {
		return -1, err
	}
	return m.addGate(Input, nil, outputs, port)
}

func (m *Module) addGate(kind GateKind, inputs, outputs []string, port int) (int, error) {
	in := make([]int, len(inputs))
	for i, name := range inputs {
		n, err := m.NodeOrNew(name)
		if err != nil {
			return -1, err
		}
		in[i] = n
	}
	out := make([]int, len(outputs))
	for i, name := range outputs {
		n, err := m.NodeOrNew(name)
		if err != nil {
			return -1, err
		}
		out[i] = n
	}
	g, err := NewGate(kind, in, port)
	if err != nil {
		return -1, err
	}
	gi := len(m.gates)
	m.gates = append(m.gates, g)
	for _, n := range out {
		d := m.nodes[n].drivers
		if len(d) > 0 && d[len(d)-1] == gi {
			// same output listed twice
			continue
		}
		m.nodes[n].drivers = append(d, gi)
	}
	return gi, nil
}

// Get returns the current state of the named node.
//
func (m *Module) Get(name string) (state bool, ok bool) {
	n, ok := m.index[name]
	if !ok {
		return false, false
	}
	return m.nodes[n].state, true
}

// Set sets the current state of the named node. It returns false if no such
// node exists.
//
func (m *Module) Set(name string, v bool) bool {
	n, ok := m.index[name]
	if !ok {
		return false
	}
	m.nodes[n].state = v
	return true
}

// gateOutput returns the output of gate g given the current node states.
//
func (m *Module) gateOutput(g int, ports []bool) (bool, error) {
	if g < 0 || g >= len(m.gates) {
		return false, newError(InvalidGateConnection, "")
	}
	return m.gates[g].Eval(m.nodes, ports)
}

// update computes the pending state of nodes [lo, hi). It only reads current
// states and only writes the pending state of the node being updated.
//
func (m *Module) update(lo, hi int, ports []bool) error {
	out := func(g int) (bool, error) { return m.gateOutput(g, ports) }
	for i := lo; i < hi; i++ {
		n := &m.nodes[i]
		if n.input {
			continue
		}
		v, err := n.resolve(out)
		if err != nil {
			return errors.Wrapf(err, "module %q, node %q", m.name, n.name)
		}
		n.pending = v
	}
	return nil
}

// advance copies the pending state of nodes [lo, hi) into their current state.
//
func (m *Module) advance(lo, hi int) {
	for i := lo; i < hi; i++ {
		n := &m.nodes[i]
		if n.input {
			continue
		}
		n.state = n.pending
	}
}

// Update runs the first phase of a tick: the pending state of every node that
// is not a declared input is computed from the current state of the module.
//
func (m *Module) Update(ports []bool) error {
	return m.update(0, len(m.nodes), ports)
}

// Advance runs the second phase of a tick: pending states become current.
//
func (m *Module) Advance() {
	m.advance(0, len(m.nodes))
}

// Tick runs Update then, if it succeeded, Advance.
//
func (m *Module) Tick(ports []bool) error {
	if err := m.Update(ports); err != nil {
		return err
	}
	m.Advance()
	return nil
}

// Depth returns the logic depth of the module: the number of ticks needed for
// a change on any declared input, port or undriven node to reach every node.
// It fails with CombinationalLoop if the module contains a feedback path.
//
func (m *Module) Depth() (int, error) {
	const (
		white = iota
		grey
		black
	)
	color := make([]int, len(m.nodes))
	level := make([]int, len(m.nodes))
	var visit func(n int) error
	visit = func(n int) error {
		switch color[n] {
		case grey:
			return newError(CombinationalLoop, m.nodes[n].name)
		case black:
			return nil
		}
		color[n] = grey
		nd := &m.nodes[n]
		if !nd.input {
			for _, g := range nd.drivers {
				if g < 0 || g >= len(m.gates) {
					return newError(InvalidGateConnection, nd.name)
				}
				l := 0
				for _, in := range m.gates[g].inputs {
					if err := visit(in); err != nil {
						return err
					}
					if level[in] > l {
						l = level[in]
					}
				}
				if l+1 > level[n] {
					level[n] = l + 1
				}
			}
		}
		color[n] = black
		return nil
	}
	depth := 0
	for n := range m.nodes {
		if err := visit(n); err != nil {
			return 0, errors.Wrapf(err, "module %q", m.name)
		}
		if level[n] > depth {
			depth = level[n]
		}
	}
	return depth, nil
}

func (m *Module) clone() *Module {
	c := &Module{
		name:     m.name,
		typ:      m.typ,
		nodes:    make([]Node, len(m.nodes)),
		index:    make(map[string]int, len(m.index)),
		inputs:   append([]int(nil), m.inputs...),
		outputs:  append([]int(nil), m.outputs...),
		gates:    make([]Gate, len(m.gates)),
		maxNodes: m.maxNodes,
	}
	for i, n := range m.nodes {
		n.drivers = append([]int(nil), n.drivers...)
		c.nodes[i] = n
	}
	for k, v := range m.index {
		c.index[k] = v
	}
	for i, g := range m.gates {
		g.inputs = append([]int(nil), g.inputs...)
		c.gates[i] = g
	}
	return c
}
