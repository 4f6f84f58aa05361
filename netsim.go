// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// A Simulator runs a netlist. It owns its modules and their nodes and gates;
// two simulators never share state.
//
// A Simulator is not safe for concurrent use.
//
type Simulator struct {
	id      uuid.UUID
	modules []*Module
	ports   []bool
	pnames  []string
	ticks   uint
	cfg     config
	log     logrus.FieldLogger

	// phase 1 workers
	spans [][]span
	wc    []chan struct{}
	errs  []error
	wg    sync.WaitGroup
}

// span is a range of nodes in a module updated by a single worker.
//
type span struct {
	m      *Module
	lo, hi int
}

// New parses the netlist source text and returns a new Simulator. Either
// the whole netlist is valid and a ready to run Simulator is returned, or an
// error is returned and nothing is built.
//
// Callers should call Close once the simulator is no longer needed in order
// to stop worker goroutines (see WithWorkers).
//
func New(text string, opts ...Option) (*Simulator, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	toks, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	if err = Validate(toks); err != nil {
		return nil, err
	}
	mods, err := build(toks, &cfg)
	if err != nil {
		return nil, err
	}
	return newSimulator(mods, nil, cfg), nil
}

// NewFromModules returns a new Simulator running the given modules. The
// simulator takes ownership of the modules.
//
func NewFromModules(mods []*Module, opts ...Option) *Simulator {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return newSimulator(mods, nil, cfg)
}

func newSimulator(mods []*Module, pnames []string, cfg config) *Simulator {
	s := &Simulator{
		id:      uuid.New(),
		modules: mods,
		pnames:  pnames,
		ports:   make([]bool, len(pnames)),
		cfg:     cfg,
	}
	s.log = cfg.log.WithField("sim", s.id.String())
	s.startWorkers()
	s.log.WithFields(logrus.Fields{
		"name":    s.Name(),
		"modules": len(mods),
		"workers": len(s.wc),
	}).Debug("simulator ready")
	return s
}

// startWorkers splits the node tables of all modules into spans of roughly
// equal size and starts one goroutine per span list. Nothing is started for a
// single worker.
//
func (s *Simulator) startWorkers() {
	workers := s.cfg.workers
	total := 0
	for _, m := range s.modules {
		total += len(m.nodes)
	}
	if workers <= 1 || total < 2 {
		return
	}
	size := total / workers
	if size*workers < total {
		size++
	}
	var cur []span
	left := size
	for _, m := range s.modules {
		for lo := 0; lo < len(m.nodes); {
			hi := lo + left
			if hi > len(m.nodes) {
				hi = len(m.nodes)
			}
			cur = append(cur, span{m, lo, hi})
			left -= hi - lo
			lo = hi
			if left == 0 {
				s.spans = append(s.spans, cur)
				cur, left = nil, size
			}
		}
	}
	if len(cur) > 0 {
		s.spans = append(s.spans, cur)
	}
	s.errs = make([]error, len(s.spans))
	for i := range s.spans {
		wc := make(chan struct{}, 1)
		s.wc = append(s.wc, wc)
		go s.worker(i, wc)
	}
}

func (s *Simulator) worker(i int, wc <-chan struct{}) {
	for {
		_, ok := <-wc
		if !ok {
			s.wg.Done()
			return
		}
		s.errs[i] = updateSpans(s.spans[i], s.ports)
		s.wg.Done()
	}
}

func updateSpans(spans []span, ports []bool) error {
	for _, sp := range spans {
		if err := sp.m.update(sp.lo, sp.hi, ports); err != nil {
			return err
		}
	}
	return nil
}

// Close stops the worker goroutines. The simulator must not be used after
// Close returns.
//
func (s *Simulator) Close() {
	s.wg.Add(len(s.wc))
	for _, wc := range s.wc {
		close(wc)
	}
	s.wg.Wait()
	s.wc = nil
	s.spans = nil
}

// ID returns the unique id of this simulator instance.
//
func (s *Simulator) ID() uuid.UUID { return s.id }

// Name returns the circuit name: the name of the first module.
//
func (s *Simulator) Name() string {
	if len(s.modules) == 0 {
		return ""
	}
	return s.modules[0].name
}

// Modules returns the simulator's modules in declaration order.
//
func (s *Simulator) Modules() []*Module { return s.modules }

// Module returns the named module or nil if not found.
//
func (s *Simulator) Module(name string) *Module {
	for _, m := range s.modules {
		if m.name == name {
			return m
		}
	}
	return nil
}

// Ticks returns the number of successful ticks run so far.
//
func (s *Simulator) Ticks() uint { return s.ticks }

// update runs phase 1 on all modules. It returns once every node has been
// updated or an error occurred.
//
func (s *Simulator) update() error {
	if len(s.wc) == 0 {
		for _, m := range s.modules {
			if err := m.Update(s.ports); err != nil {
				return err
			}
		}
		return nil
	}
	s.wg.Add(len(s.wc))
	for _, wc := range s.wc {
		wc <- struct{}{}
	}
	s.wg.Wait()
	for _, err := range s.errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Tick advances the simulation by one step: the next state of every node is
// computed from the current state of all nodes, then all nodes switch to
// their next state. A path of depth k through the logic needs k ticks to
// propagate.
//
// If an error is returned, no node state has changed.
//
func (s *Simulator) Tick() error {
	if err := s.update(); err != nil {
		s.log.WithError(err).WithField("tick", s.ticks).Warn("tick aborted")
		return err
	}
	for _, m := range s.modules {
		m.Advance()
	}
	s.ticks++
	return nil
}

// TickN runs n ticks, stopping at the first error.
//
func (s *Simulator) TickN(n int) error {
	for i := 0; i < n; i++ {
		if err := s.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// lookup resolves a node name to a module and node index.
//
func (s *Simulator) lookup(name string) (*Module, int, error) {
	for i := strings.IndexByte(name, '.'); i >= 0; {
		if m := s.Module(name[:i]); m != nil {
			if n, ok := m.index[name[i+1:]]; ok {
				return m, n, nil
			}
		}
		j := strings.IndexByte(name[i+1:], '.')
		if j < 0 {
			break
		}
		i += j + 1
	}
	var (
		fm *Module
		fn int
	)
	for _, m := range s.modules {
		n, ok := m.index[name]
		if !ok {
			continue
		}
		if fm == nil {
			fm, fn = m, n
			if !s.cfg.strict {
				break
			}
			continue
		}
		return nil, -1, errors.Wrapf(newError(AmbiguousNodeName, name), "modules %q and %q", fm.name, m.name)
	}
	if fm == nil {
		return nil, -1, newError(NodeNotFound, name)
	}
	return fm, fn, nil
}

// Get returns the current state of the named node.
//
// A name of the form "module.node" matching an existing module and node
// resolves to that node. Other names resolve to the node of the first module
// (in declaration order) that has a node with that name, or fail with
// AmbiguousNodeName if more than one module has it and WithStrictNames is
// set.
//
func (s *Simulator) Get(name string) (bool, error) {
	m, n, err := s.lookup(name)
	if err != nil {
		return false, err
	}
	return m.nodes[n].state, nil
}

// Set sets the current state of the named node. This is how declared module
// inputs are driven; setting any other node only lasts until the next tick.
// Names are resolved like in Get.
//
func (s *Simulator) Set(name string, v bool) error {
	m, n, err := s.lookup(name)
	if err != nil {
		return err
	}
	m.nodes[n].state = v
	return nil
}

// AddPort allocates a new external port and returns its number. Ports are
// read by Input gates (see Module.AddInputGate).
//
func (s *Simulator) AddPort(name string) int {
	s.pnames = append(s.pnames, name)
	s.ports = append(s.ports, false)
	return len(s.ports) - 1
}

// Port returns the value of port i.
//
func (s *Simulator) Port(i int) bool { return s.ports[i] }

// SetPort sets the value of port i.
//
func (s *Simulator) SetPort(i int, v bool) { s.ports[i] = v }

// PortNames returns the port names indexed by port number.
//
func (s *Simulator) PortNames() []string { return s.pnames }

// Clone returns a deep copy of s with a new ID. The clone shares no state with
// s and must be closed independently.
//
func (s *Simulator) Clone() *Simulator {
	mods := make([]*Module, len(s.modules))
	for i, m := range s.modules {
		mods[i] = m.clone()
	}
	c := newSimulator(mods, append([]string(nil), s.pnames...), s.cfg)
	copy(c.ports, s.ports)
	c.ticks = s.ticks
	return c
}

// Depth returns the largest logic depth of all modules. See Module.Depth.
//
func (s *Simulator) Depth() (int, error) {
	d := 0
	for _, m := range s.modules {
		md, err := m.Depth()
		if err != nil {
			return 0, err
		}
		if md > d {
			d = md
		}
	}
	return d, nil
}
