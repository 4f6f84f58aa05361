// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"github.com/db47h/netsim/internal/lex"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// directives
const (
	dirIn     = "in"
	dirOut    = "out"
	dirWand   = "wand"
	dirWor    = "wor"
	dirUnique = "unique"
)

// builder builds modules from a validated token stream.
//
type builder struct {
	toks     []Token
	pos      int
	mods     []*Module
	byName   map[string]*Module
	maxNodes int
	total    int
	log      logrus.FieldLogger
}

func (b *builder) next() *Token {
	t := &b.toks[b.pos]
	b.pos++
	return t
}

func (b *builder) peek() *Token {
	return &b.toks[b.pos]
}

// at attaches the position of w to err if it does not carry one yet.
//
func at(err error, w lex.Word) error {
	if e, ok := errors.Cause(err).(*Error); ok && e.Pos.Line == 0 {
		e.Pos = w.Pos
		if e.Token == "" {
			e.Token = w.Text
		}
	}
	return err
}

// Build validates a token stream and builds the modules it describes.
//
func Build(toks []Token, opts ...Option) ([]*Module, error) {
	if err := Validate(toks); err != nil {
		return nil, err
	}
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return build(toks, &cfg)
}

func build(toks []Token, cfg *config) ([]*Module, error) {
	b := &builder{
		toks:     toks,
		byName:   make(map[string]*Module),
		maxNodes: cfg.maxNodes,
		log:      cfg.log,
	}
	for b.pos < len(b.toks) {
		m, err := b.module()
		if err != nil {
			return nil, err
		}
		b.register(m)
	}
	return b.mods, nil
}

// module parses a module header and body.
//
func (b *builder) module() (*Module, error) {
	kw := b.next()
	typ, ok := ParseModuleType(kw.Body())
	if !ok {
		return nil, newErrorAt(InvalidModuleType, kw.Word)
	}
	name := b.next()
	if _, ok := b.byName[name.Text]; ok {
		return nil, newErrorAt(DuplicateModule, name.Word)
	}
	m := NewModule(name.Text, typ)
	if b.maxNodes > 0 {
		m.maxNodes = b.maxNodes - b.total
	}
	// only the first word of a module name is significant.
	for b.next().Class != TokOpenBracket {
	}
	for b.peek().Class != TokCloseBracket {
		if err := b.statement(m); err != nil {
			return nil, errors.Wrapf(err, "module %q", m.name)
		}
	}
	b.next() // }
	if typ == SubCombinational {
		if _, err := m.Depth(); err != nil {
			return nil, at(err, name.Word)
		}
	}
	return m, nil
}

func (b *builder) register(m *Module) {
	b.mods = append(b.mods, m)
	b.byName[m.name] = m
	b.total += len(m.nodes)
	b.log.WithFields(logrus.Fields{
		"module": m.name,
		"type":   m.typ,
		"nodes":  len(m.nodes),
		"gates":  len(m.gates),
	}).Debug("module registered")
}

// names returns the statements up to the next separator or semicolon.
//
func (b *builder) names() []string {
	var r []string
	for b.peek().Class == TokStatement {
		r = append(r, b.next().Text)
	}
	return r
}

func (b *builder) statement(m *Module) error {
	lead := b.next()
	b.next() // :
	if lead.Class == TokKeyword {
		return b.directive(m, lead)
	}
	kind, ok := ParseGateKind(lead.Text)
	if !ok {
		return newErrorAt(InvalidGateInstanceName, lead.Word)
	}
	in := b.names()
	b.next() // ->
	out := b.names()
	b.next() // ;
	if _, err := m.AddGate(kind, in, out); err != nil {
		return at(err, lead.Word)
	}
	return nil
}

func (b *builder) directive(m *Module, kw *Token) error {
	var fn func(string) error
	switch lex.Fold(kw.Body()) {
	case dirIn:
		fn = m.DeclareInput
	case dirOut:
		fn = m.DeclareOutput
	case dirWand:
		fn = func(n string) error { return m.SetWire(n, WireAnd) }
	case dirWor:
		fn = func(n string) error { return m.SetWire(n, WireOr) }
	case dirUnique:
		fn = func(n string) error { return m.SetWire(n, WireUniqueDriver) }
	default:
		return newErrorAt(InvalidGateType, kw.Word)
	}
	for _, n := range b.names() {
		if err := fn(n); err != nil {
			return at(err, kw.Word)
		}
	}
	b.next() // ;
	return nil
}
