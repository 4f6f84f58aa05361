// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package nettest

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/db47h/netsim"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Level is a logic level. In vector files it can be written as 0/1,
// true/false, high/low or h/l.
//
type Level bool

// UnmarshalYAML implements yaml.Unmarshaler.
//
func (l *Level) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: logic level must be a scalar", n.Line)
	}
	switch strings.ToLower(n.Value) {
	case "1", "true", "high", "h":
		*l = true
	case "0", "false", "low", "l":
		*l = false
	default:
		return errors.Errorf("line %d: invalid logic level %q", n.Line, n.Value)
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
//
func (l Level) MarshalYAML() (interface{}, error) {
	if l {
		return 1, nil
	}
	return 0, nil
}

// Step sets some nodes, runs a number of ticks, then checks node states.
//
type Step struct {
	Set    map[string]Level `yaml:"set,omitempty"`
	Ticks  int              `yaml:"ticks,omitempty"`
	Expect map[string]Level `yaml:"expect,omitempty"`
}

// Vector is a named sequence of steps. Ticks is the default tick count of
// steps that do not set their own. If both are zero, the logic depth of the
// netlist is used.
//
type Vector struct {
	Name  string `yaml:"name"`
	Ticks int    `yaml:"ticks,omitempty"`
	Steps []Step `yaml:"steps"`
}

// LoadVectors reads test vectors from a YAML stream. The stream may contain
// several documents, each either a single vector or a list of vectors.
//
func LoadVectors(r io.Reader) ([]Vector, error) {
	var vs []Vector
	dec := yaml.NewDecoder(r)
	for {
		var n yaml.Node
		err := dec.Decode(&n)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "decode vectors")
		}
		if len(n.Content) == 0 {
			continue
		}
		doc := n.Content[0]
		switch doc.Kind {
		case yaml.SequenceNode:
			var l []Vector
			if err = doc.Decode(&l); err != nil {
				return nil, errors.Wrap(err, "decode vectors")
			}
			vs = append(vs, l...)
		default:
			var v Vector
			if err = doc.Decode(&v); err != nil {
				return nil, errors.Wrap(err, "decode vector")
			}
			vs = append(vs, v)
		}
	}
	return vs, nil
}

// Mismatch reports a node whose state differs from the expected one.
//
type Mismatch struct {
	Vector string
	Step   int
	Node   string
	Want   bool
	Got    bool
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: step %d: %s = %v, want %v", m.Vector, m.Step, m.Node, m.Got, m.Want)
}

// Run runs v against s and returns all mismatches. Expected nodes are checked
// in name order. A non nil error means that the vector could not be run to
// completion: unknown node, simulation error or missing tick count.
//
func Run(s *netsim.Simulator, v *Vector) ([]Mismatch, error) {
	var ms []Mismatch
	for i := range v.Steps {
		st := &v.Steps[i]
		for _, n := range sortedKeys(st.Set) {
			if err := s.Set(n, bool(st.Set[n])); err != nil {
				return ms, errors.Wrapf(err, "%s: step %d", v.Name, i)
			}
		}
		ticks := st.Ticks
		if ticks == 0 {
			ticks = v.Ticks
		}
		if ticks == 0 {
			d, err := s.Depth()
			if err != nil {
				return ms, errors.Wrapf(err, "%s: step %d: no tick count and cannot compute logic depth", v.Name, i)
			}
			ticks = d
		}
		if err := s.TickN(ticks); err != nil {
			return ms, errors.Wrapf(err, "%s: step %d", v.Name, i)
		}
		for _, n := range sortedKeys(st.Expect) {
			got, err := s.Get(n)
			if err != nil {
				return ms, errors.Wrapf(err, "%s: step %d", v.Name, i)
			}
			if want := bool(st.Expect[n]); got != want {
				ms = append(ms, Mismatch{Vector: v.Name, Step: i, Node: n, Want: want, Got: got})
			}
		}
	}
	return ms, nil
}

func sortedKeys(m map[string]Level) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
