// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/db47h/netsim"
	"github.com/spf13/cobra"
)

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <netlist>",
		Short: "Parse a netlist and print a summary of its modules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load(args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MODULE\tTYPE\tNODES\tGATES\tINPUTS\tOUTPUTS\tDEPTH")
			for _, m := range s.Modules() {
				fmt.Fprintf(w, "%s\t%v\t%d\t%d\t%d\t%d\t%s\n",
					m.Name(), m.Type(), m.Len(), len(m.Gates()), len(m.Inputs()), len(m.Outputs()), depth(m))
			}
			return w.Flush()
		},
	}
}

func depth(m *netsim.Module) string {
	d, err := m.Depth()
	if err != nil {
		return "loop"
	}
	return strconv.Itoa(d)
}
