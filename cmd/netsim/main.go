// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command netsim checks, runs and tests netlist files.
//
//	netsim check adder.net
//	netsim run adder.net --set in_a=1 --set in_b=1 --watch out_sum,out_carry
//	netsim test adder.net adder.yaml
//	netsim dump adder.net
//
// Global flags can also be set from a config file (--config) or from
// environment variables prefixed with NETSIM_, e.g. NETSIM_WORKERS=4.
//
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
