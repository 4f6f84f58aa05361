// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlib

import (
	"strings"

	"github.com/db47h/netsim"
	"github.com/pkg/errors"
)

// ParseConn parses a connection description of the form
//
//	"pin=node, pin=node, ..."
//
// and returns the node name for each pin. Whitespace around names is ignored.
//
func ParseConn(conn string) (map[string]string, error) {
	r := make(map[string]string)
	if strings.TrimSpace(conn) == "" {
		return r, nil
	}
	pos := 0
	for _, item := range strings.Split(conn, ",") {
		i := strings.IndexByte(item, '=')
		if i < 0 {
			return nil, connError(conn, pos, "expected pin=node")
		}
		pin, node := strings.TrimSpace(item[:i]), strings.TrimSpace(item[i+1:])
		switch {
		case pin == "":
			return nil, connError(conn, pos, "missing pin name")
		case node == "" || strings.ContainsAny(node, "= \t"):
			return nil, connError(conn, pos+i+1, "invalid node name")
		}
		if _, ok := r[pin]; ok {
			return nil, connError(conn, pos, "pin "+pin+" connected more than once")
		}
		r[pin] = node
		pos += len(item) + 1
	}
	return r, nil
}

func connError(in string, pos int, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, pos+1, msg)
}

// MountConn is like Mount but takes a connection description as accepted by
// ParseConn.
//
//	netlib.Xor.MountConn(m, "x1", "a=in_a, b=in_b, out=sum")
//
func (c *Cell) MountConn(m *netsim.Module, inst string, conn string) error {
	cm, err := ParseConn(conn)
	if err != nil {
		return errors.Wrapf(err, "cell %s", c.Name)
	}
	return c.Mount(m, inst, cm)
}
