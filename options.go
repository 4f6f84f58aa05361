// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"io"
	"runtime"

	"github.com/sirupsen/logrus"
)

// DefaultMaxNodes is the default limit on the total number of nodes in a
// simulator.
//
const DefaultMaxNodes = 1 << 20

type config struct {
	workers  int
	maxNodes int
	strict   bool
	log      logrus.FieldLogger
}

func defaultConfig() config {
	l := logrus.New()
	l.Out = io.Discard
	return config{
		workers:  1,
		maxNodes: DefaultMaxNodes,
		log:      l,
	}
}

// An Option configures a Simulator.
//
type Option func(*config)

// WithWorkers sets the number of goroutines used to run the first phase of a
// tick. If n is 0, the value of GOMAXPROCS is used. The default is 1: ticks
// run synchronously in the calling goroutine.
//
func WithWorkers(n int) Option {
	return func(c *config) {
		if n == 0 {
			n = runtime.GOMAXPROCS(-1)
		}
		if n < 1 {
			n = 1
		}
		c.workers = n
	}
}

// WithMaxNodes limits the total number of nodes a netlist may create. A value
// <= 0 disables the limit.
//
func WithMaxNodes(n int) Option {
	return func(c *config) { c.maxNodes = n }
}

// WithStrictNames makes unqualified node names that exist in more than one
// module an AmbiguousNodeName error instead of resolving to the first module
// that declares them.
//
func WithStrictNames(strict bool) Option {
	return func(c *config) { c.strict = strict }
}

// WithLogger sets the logger. By default, nothing is logged.
//
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}
