// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"os"
	"strings"

	"github.com/db47h/netsim"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app holds the state shared by all commands.
//
type app struct {
	v   *viper.Viper
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: logrus.New()}
	a.log.SetOutput(os.Stderr)

	root := &cobra.Command{
		Use:           "netsim",
		Short:         "Digital logic netlist simulator",
		Long:          "netsim parses gate level netlists and simulates them tick by tick.",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (yaml, json or toml)")
	pf.BoolP("verbose", "v", false, "verbose output")
	pf.Bool("debug", false, "debug output")
	pf.Int("workers", 1, "number of phase 1 worker goroutines (0 = GOMAXPROCS)")
	pf.Int("max-nodes", netsim.DefaultMaxNodes, "maximum number of nodes in a netlist (0 = no limit)")
	pf.Bool("strict", false, "reject node names that exist in more than one module")

	_ = a.v.BindPFlag("config", pf.Lookup("config"))
	_ = a.v.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = a.v.BindPFlag("debug", pf.Lookup("debug"))
	_ = a.v.BindPFlag("workers", pf.Lookup("workers"))
	_ = a.v.BindPFlag("max_nodes", pf.Lookup("max-nodes"))
	_ = a.v.BindPFlag("strict", pf.Lookup("strict"))

	root.AddCommand(
		a.checkCmd(),
		a.runCmd(),
		a.testCmd(),
		a.dumpCmd(),
	)
	return root
}

func (a *app) initConfig(cmd *cobra.Command) error {
	a.v.SetEnvPrefix("NETSIM")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if f := a.v.GetString("config"); f != "" {
		a.v.SetConfigFile(f)
		if err := a.v.ReadInConfig(); err != nil {
			return errors.Wrap(err, "read config")
		}
	}

	a.log.SetOutput(cmd.ErrOrStderr())
	switch {
	case a.v.GetBool("debug"):
		a.log.SetLevel(logrus.DebugLevel)
	case a.v.GetBool("verbose"):
		a.log.SetLevel(logrus.InfoLevel)
	default:
		a.log.SetLevel(logrus.WarnLevel)
	}
	a.log.WithField("config", a.v.ConfigFileUsed()).Debug("configuration loaded")
	return nil
}

func (a *app) options() []netsim.Option {
	return []netsim.Option{
		netsim.WithWorkers(a.v.GetInt("workers")),
		netsim.WithMaxNodes(a.v.GetInt("max_nodes")),
		netsim.WithStrictNames(a.v.GetBool("strict")),
		netsim.WithLogger(a.log),
	}
}

// load reads and builds the netlist in the named file.
//
func (a *app) load(name string) (*netsim.Simulator, error) {
	src, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read netlist")
	}
	s, err := netsim.New(string(src), a.options()...)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	a.log.WithFields(logrus.Fields{
		"file":    name,
		"sim":     s.ID().String(),
		"modules": len(s.Modules()),
	}).Info("netlist loaded")
	return s, nil
}
