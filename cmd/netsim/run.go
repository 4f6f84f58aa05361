// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/db47h/netsim"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func (a *app) runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <netlist>",
		Short: "Run a netlist and print node states",
		Long: `Run sets the given nodes, runs the simulation and prints the state of the
watched nodes. By default it runs as many ticks as the logic depth of the
netlist and watches the declared outputs of all modules.`,
		Args: cobra.ExactArgs(1),
		RunE: a.run,
	}
	f := cmd.Flags()
	f.StringArrayP("set", "s", nil, "set node state before running, as name=value (repeatable)")
	f.IntP("ticks", "t", 0, "number of ticks to run (0 = logic depth)")
	f.StringSliceP("watch", "w", nil, "nodes to print (default: declared outputs)")
	f.Bool("trace", false, "print watched nodes after every tick")
	return cmd
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	sets, _ := cmd.Flags().GetStringArray("set")
	ticks, _ := cmd.Flags().GetInt("ticks")
	watch, _ := cmd.Flags().GetStringSlice("watch")
	trace, _ := cmd.Flags().GetBool("trace")

	s, err := a.load(args[0])
	if err != nil {
		return err
	}
	defer s.Close()

	for _, kv := range sets {
		name, v, err := parseSet(kv)
		if err != nil {
			return err
		}
		if err = s.Set(name, v); err != nil {
			return err
		}
	}
	if ticks <= 0 {
		if ticks, err = s.Depth(); err != nil {
			return errors.Wrap(err, "cannot compute logic depth, use --ticks")
		}
	}
	if len(watch) == 0 {
		watch = outputs(s)
	}

	out := cmd.OutOrStdout()
	for i := 0; i < ticks; i++ {
		if err = s.Tick(); err != nil {
			return err
		}
		if trace {
			fmt.Fprintf(out, "%d: ", s.Ticks())
			if err = printStates(out, s, watch); err != nil {
				return err
			}
		}
	}
	a.log.WithFields(logrus.Fields{"ticks": s.Ticks(), "sim": s.ID().String()}).Info("run complete")
	if trace {
		return nil
	}
	return printStates(out, s, watch)
}

// parseSet parses a name=value pair. Values are parsed with strconv.ParseBool.
//
func parseSet(kv string) (string, bool, error) {
	i := strings.IndexByte(kv, '=')
	if i <= 0 {
		return "", false, errors.Errorf("invalid --set %q, expected name=value", kv)
	}
	v, err := strconv.ParseBool(kv[i+1:])
	if err != nil {
		return "", false, errors.Errorf("invalid --set %q, value must be 0, 1, true or false", kv)
	}
	return kv[:i], v, nil
}

// outputs returns the qualified names of the declared outputs of all modules.
//
func outputs(s *netsim.Simulator) []string {
	var r []string
	for _, m := range s.Modules() {
		for _, n := range m.Outputs() {
			r = append(r, m.Name()+"."+n)
		}
	}
	return r
}

func printStates(w io.Writer, s *netsim.Simulator, names []string) error {
	var b strings.Builder
	for i, n := range names {
		v, err := s.Get(n)
		if err != nil {
			return err
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(n)
		if v {
			b.WriteString("=1")
		} else {
			b.WriteString("=0")
		}
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}
