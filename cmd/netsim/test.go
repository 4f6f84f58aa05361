// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/db47h/netsim/nettest"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func (a *app) testCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test <netlist> <vectors.yaml>",
		Short: "Run YAML test vectors against a netlist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[1])
			if err != nil {
				return errors.Wrap(err, "open vectors")
			}
			defer f.Close()
			vs, err := nettest.LoadVectors(f)
			if err != nil {
				return errors.Wrap(err, args[1])
			}

			s, err := a.load(args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			failed := 0
			for i := range vs {
				// each vector starts from a fresh copy of the initial state
				c := s.Clone()
				ms, err := nettest.Run(c, &vs[i])
				c.Close()
				if err != nil {
					return err
				}
				if len(ms) == 0 {
					fmt.Fprintf(out, "ok   %s\n", vs[i].Name)
					continue
				}
				failed++
				fmt.Fprintf(out, "FAIL %s\n", vs[i].Name)
				for _, m := range ms {
					fmt.Fprintf(out, "\t%v\n", m)
				}
			}
			if failed > 0 {
				return errors.Errorf("%d of %d vectors failed", failed, len(vs))
			}
			return nil
		},
	}
}
