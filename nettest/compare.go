// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package nettest provides utility functions for testing netlists: truth
// tables, randomized comparison of two netlists and YAML test vectors.
//
package nettest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/db47h/netsim"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// setInputs sets the named inputs from the bits of v, inputs[0] being the most
// significant bit.
//
func setInputs(s *netsim.Simulator, inputs []string, v uint64) error {
	for i, n := range inputs {
		if err := s.Set(n, v&(1<<uint(len(inputs)-i-1)) != 0); err != nil {
			return err
		}
	}
	return nil
}

// TruthTable drives the inputs of s through all their combinations in binary
// counting order, running ticks ticks for each, and returns the resulting
// output states: r[o][i] is the state of outputs[o] for combination i.
//
func TruthTable(s *netsim.Simulator, inputs, outputs []string, ticks int) ([][]bool, error) {
	if len(inputs) > 20 {
		return nil, errors.Errorf("too many inputs for a truth table: %d", len(inputs))
	}
	r := make([][]bool, len(outputs))
	for v := uint64(0); v < 1<<uint(len(inputs)); v++ {
		if err := setInputs(s, inputs, v); err != nil {
			return nil, err
		}
		if err := s.TickN(ticks); err != nil {
			return nil, err
		}
		for o, n := range outputs {
			b, err := s.Get(n)
			if err != nil {
				return nil, err
			}
			r[o] = append(r[o], b)
		}
	}
	return r, nil
}

func randBool(r *rand.Rand) bool {
	return r.Int63()&(1<<62) != 0
}

// Compare drives two simulators with the same input values and checks that
// their outputs match after ticks ticks. Both must have nodes with the given
// input and output names. It tries all zeros, all ones then up to 4096 random
// input combinations.
//
func Compare(t testing.TB, s1, s2 *netsim.Simulator, inputs, outputs []string, ticks int) {
	t.Helper()

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	values := make([]bool, len(inputs))

	errString := func(oname string, ex, got bool) string {
		var b strings.Builder
		for i, n := range inputs {
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", n, values[i])
		}
		return fmt.Sprintf("\nExpected %s => %s=%v\nGot %v", b.String(), oname, ex, got)
	}

	check := func() {
		t.Helper()
		for i, n := range inputs {
			require.NoError(t, s1.Set(n, values[i]))
			require.NoError(t, s2.Set(n, values[i]))
		}
		require.NoError(t, s1.TickN(ticks))
		require.NoError(t, s2.TickN(ticks))
		for _, n := range outputs {
			v1, err := s1.Get(n)
			require.NoError(t, err)
			v2, err := s2.Get(n)
			require.NoError(t, err)
			if v1 != v2 {
				t.Fatal(errString(n, v1, v2))
			}
		}
	}

	iter := len(inputs)
	if iter > 12 {
		iter = 12
	}
	iter = 1 << uint(iter)

	start := time.Now()

	// try all 0
	check()

	// try all 1
	for i := range values {
		values[i] = true
	}
	check()

	for i := 0; i < iter; i++ {
		for in := range values {
			values[in] = randBool(rnd)
		}
		check()
	}

	elapsed := time.Since(start)
	t.Logf("%d input sets, %d ticks in %v", iter+2, s1.Ticks(), elapsed)
}
