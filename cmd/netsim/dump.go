// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/db47h/netsim"
	"github.com/spf13/cobra"
)

func (a *app) dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <netlist>",
		Short: "Print the node and gate tables of a netlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load(args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, m := range s.Modules() {
				fmt.Fprintf(w, "@%v %s\n", m.Type(), m.Name())
				fmt.Fprintln(w, "#\tNODE\tWIRE\tFLAGS\tDRIVERS")
				for i := 0; i < m.Len(); i++ {
					n := m.At(i)
					fmt.Fprintf(w, "%d\t%s\t%v\t%s\t%s\n", i, n.Name(), n.Wire(), flags(n), drivers(m, n))
				}
			}
			return w.Flush()
		},
	}
}

func flags(n *netsim.Node) string {
	switch {
	case n.IsInput() && n.IsOutput():
		return "in,out"
	case n.IsInput():
		return "in"
	case n.IsOutput():
		return "out"
	}
	return "-"
}

// drivers formats the gates driving n as KIND(input, ...).
//
func drivers(m *netsim.Module, n *netsim.Node) string {
	if len(n.Drivers()) == 0 {
		return "-"
	}
	gates := m.Gates()
	var b strings.Builder
	for i, g := range n.Drivers() {
		if i > 0 {
			b.WriteString(" ")
		}
		gt := &gates[g]
		b.WriteString(gt.Kind().String())
		b.WriteString("(")
		for j, in := range gt.Inputs() {
			if j > 0 {
				b.WriteString(",")
			}
			b.WriteString(m.At(in).Name())
		}
		b.WriteString(")")
	}
	return b.String()
}
