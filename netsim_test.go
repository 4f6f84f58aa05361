package netsim_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/db47h/netsim"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullAdder = `@MODULE fulladder {
	@IN: in_a in_b in_carry;
	AND: in_a in_b -> carry_1st;
	XOR: in_a in_b -> half_sum;
	AND: half_sum in_carry -> carry_2nd;
	XOR: half_sum in_carry -> out_sum;
	OR: carry_1st carry_2nd -> out_carry;
}`

const multiplier = `@TOP mul2 {
	@IN : in_a1 in_a0 in_b1 in_b0 ;
	@OUT : out_c3 out_c2 out_c1 out_c0 ;
	AND : in_a0 in_b0 -> out_c0 ;
	AND : in_a1 in_b0 -> p1 ;
	AND : in_a0 in_b1 -> p2 ;
	XOR : p1 p2 -> out_c1 ;
	AND : p1 p2 -> k ;
	AND : in_a1 in_b1 -> p3 ;
	XOR : p3 k -> out_c2 ;
	AND : p3 k -> out_c3 ;
}`

func set(t *testing.T, s *netsim.Simulator, names string, values ...bool) {
	t.Helper()
	for i, n := range strings.Fields(names) {
		require.NoError(t, s.Set(n, values[i]))
	}
}

func get(t *testing.T, s *netsim.Simulator, names string) []bool {
	t.Helper()
	var r []bool
	for _, n := range strings.Fields(names) {
		v, err := s.Get(n)
		require.NoError(t, err)
		r = append(r, v)
	}
	return r
}

func TestSimulator_fullAdder(t *testing.T) {
	s, err := netsim.New(fullAdder)
	require.NoError(t, err)
	defer s.Close()

	for v := 0; v < 8; v++ {
		a, b, c := v&4 != 0, v&2 != 0, v&1 != 0
		set(t, s, "in_a in_b in_carry", a, b, c)
		require.NoError(t, s.TickN(4))
		sum := v&4>>2 + v&2>>1 + v&1
		assert.Equal(t, []bool{sum&2 != 0, sum&1 != 0}, get(t, s, "out_carry out_sum"), "inputs %03b", v)
	}
}

func TestSimulator_fullAdderSingleLine(t *testing.T) {
	src := "@MODULE fulladder { @IN: in_a in_b in_carry; AND: in_a in_b -> carry_1st; XOR: in_a in_b -> half_sum; " +
		"AND: half_sum in_carry -> carry_2nd; XOR: half_sum in_carry -> out_sum; OR: carry_1st carry_2nd -> out_carry; }"
	s, err := netsim.New(src)
	require.NoError(t, err)
	defer s.Close()

	set(t, s, "in_a in_b in_carry", true, true, true)
	require.NoError(t, s.TickN(4))
	assert.Equal(t, []bool{true, true}, get(t, s, "out_carry out_sum"))

	set(t, s, "in_a in_b in_carry", false, false, false)
	require.NoError(t, s.TickN(4))
	assert.Equal(t, []bool{false, false}, get(t, s, "out_carry out_sum"))
}

func testMultiplier(t *testing.T, opts ...netsim.Option) {
	s, err := netsim.New(multiplier, opts...)
	require.NoError(t, err)
	defer s.Close()

	for a := 0; a < 4; a++ {
		for b := 0; b < 4; b++ {
			set(t, s, "in_a1 in_a0 in_b1 in_b0", a&2 != 0, a&1 != 0, b&2 != 0, b&1 != 0)
			require.NoError(t, s.TickN(4))
			p := a * b
			exp := []bool{p&8 != 0, p&4 != 0, p&2 != 0, p&1 != 0}
			assert.Equal(t, exp, get(t, s, "out_c3 out_c2 out_c1 out_c0"), "%d x %d", a, b)
		}
	}
}

func TestSimulator_multiplier(t *testing.T) {
	testMultiplier(t)
}

func TestSimulator_multiplierWorkers(t *testing.T) {
	for _, w := range []int{0, 2, 3, 7, 64} {
		t.Run(fmt.Sprintf("workers=%d", w), func(t *testing.T) {
			testMultiplier(t, netsim.WithWorkers(w))
		})
	}
}

func TestSimulator_depth(t *testing.T) {
	for _, k := range []int{1, 2, 5, 10} {
		t.Run(fmt.Sprintf("depth=%d", k), func(t *testing.T) {
			var b strings.Builder
			b.WriteString("@TOP chain {\n@IN : n0 ;\n")
			for i := 1; i <= k; i++ {
				fmt.Fprintf(&b, "BUF : n%d -> n%d ;\n", i-1, i)
			}
			b.WriteString("}\n")
			s, err := netsim.New(b.String())
			require.NoError(t, err)
			defer s.Close()

			d, err := s.Depth()
			require.NoError(t, err)
			assert.Equal(t, k, d)

			out := fmt.Sprintf("n%d", k)
			require.NoError(t, s.Set("n0", true))
			for i := 1; i < k; i++ {
				require.NoError(t, s.Tick())
				assert.Equal(t, []bool{false}, get(t, s, out), "tick %d", i)
			}
			// converged and stable
			for i := 0; i < 3; i++ {
				require.NoError(t, s.Tick())
				assert.Equal(t, []bool{true}, get(t, s, out))
			}
			assert.Equal(t, uint(k+2), s.Ticks())
		})
	}
}

func TestSimulator_twoPhase(t *testing.T) {
	// a swap only works if every gate sees the same snapshot.
	s, err := netsim.New(`@TOP swap {
		BUF : a -> b ;
		BUF : b -> a ;
	}`)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Set("a", true))
	for i := 0; i < 4; i++ {
		require.NoError(t, s.Tick())
		assert.Equal(t, []bool{i%2 == 1, i%2 == 0}, get(t, s, "a b"), "tick %d", i)
	}
}

func TestSimulator_latch(t *testing.T) {
	s, err := netsim.New(`@MODULE sr {
		@IN : s r ;
		NOR : r qn -> q ;
		NOR : s q -> qn ;
	}`)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Depth()
	assert.Equal(t, netsim.CombinationalLoop, netsim.KindOf(err))

	set(t, s, "s r", true, false)
	require.NoError(t, s.TickN(4))
	assert.Equal(t, []bool{true, false}, get(t, s, "q qn"))
	// hold
	set(t, s, "s r", false, false)
	require.NoError(t, s.TickN(4))
	assert.Equal(t, []bool{true, false}, get(t, s, "q qn"))
	// reset
	set(t, s, "s r", false, true)
	require.NoError(t, s.TickN(4))
	assert.Equal(t, []bool{false, true}, get(t, s, "q qn"))
}

func TestSimulator_crossModule(t *testing.T) {
	src := `@TOP first { @IN : a ; NOT : a -> y ; }
@MODULE second { @IN : a ; BUF : a -> y ; BUF : a -> only2 ; }`
	s, err := netsim.New(src)
	require.NoError(t, err)
	defer s.Close()

	// unqualified names resolve to the first module
	require.NoError(t, s.Set("a", true))
	require.NoError(t, s.Tick())
	assert.Equal(t, []bool{true, false, false, false}, get(t, s, "a y second.a second.y"))

	require.NoError(t, s.Set("second.a", true))
	require.NoError(t, s.Tick())
	assert.Equal(t, []bool{false, true, true}, get(t, s, "first.y second.y only2"))

	_, err = s.Get("nope")
	assert.Equal(t, netsim.NodeNotFound, netsim.KindOf(err))
	_, err = s.Get("second.nope")
	assert.Equal(t, netsim.NodeNotFound, netsim.KindOf(err))
	assert.Equal(t, netsim.NodeNotFound, netsim.KindOf(s.Set("nope", true)))

	strict, err := netsim.New(src, netsim.WithStrictNames(true))
	require.NoError(t, err)
	defer strict.Close()
	_, err = strict.Get("a")
	assert.Equal(t, netsim.AmbiguousNodeName, netsim.KindOf(err))
	_, err = strict.Get("only2")
	assert.NoError(t, err)
	_, err = strict.Get("first.a")
	assert.NoError(t, err)
}

func TestSimulator_atomicTick(t *testing.T) {
	s, err := netsim.New(`@TOP t {
		@IN : a ;
		BUF : a -> y ;
		@UNIQUE : x ;
		BUF : a -> x ;
		NOT : a -> x ;
	}`)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("a", true))
	err = s.Tick()
	require.Error(t, err)
	assert.Equal(t, netsim.TooManyNodeDrivers, netsim.KindOf(err))
	assert.Contains(t, err.Error(), `node "x"`)
	// y's next state was computed but must not have been applied.
	assert.Equal(t, []bool{false, false}, get(t, s, "y x"))
	assert.Equal(t, uint(0), s.Ticks())
}

func TestSimulator_independent(t *testing.T) {
	s1, err := netsim.New(fullAdder)
	require.NoError(t, err)
	defer s1.Close()
	s2, err := netsim.New(fullAdder)
	require.NoError(t, err)
	defer s2.Close()
	assert.NotEqual(t, s1.ID(), s2.ID())

	set(t, s1, "in_a in_b in_carry", true, true, true)
	require.NoError(t, s1.TickN(4))
	require.NoError(t, s2.TickN(4))
	assert.Equal(t, []bool{true, true, true, true}, get(t, s1, "in_a in_b out_carry out_sum"))
	assert.Equal(t, []bool{false, false, false, false}, get(t, s2, "in_a in_b out_carry out_sum"))
}

func TestSimulator_Clone(t *testing.T) {
	s, err := netsim.New(fullAdder, netsim.WithWorkers(2))
	require.NoError(t, err)
	defer s.Close()
	set(t, s, "in_a in_b", true, true)
	require.NoError(t, s.TickN(4))

	c := s.Clone()
	defer c.Close()
	assert.NotEqual(t, s.ID(), c.ID())
	assert.Equal(t, s.Ticks(), c.Ticks())
	assert.Equal(t, get(t, s, "out_carry out_sum"), get(t, c, "out_carry out_sum"))

	set(t, c, "in_carry", true)
	require.NoError(t, c.TickN(4))
	assert.Equal(t, []bool{true, true}, get(t, c, "out_carry out_sum"))
	assert.Equal(t, []bool{false}, get(t, s, "in_carry"))
	assert.Equal(t, []bool{true, false}, get(t, s, "out_carry out_sum"))
}

func TestSimulator_logging(t *testing.T) {
	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	s, err := netsim.New(`@TOP t { @UNIQUE : x ; BUF : a -> x ; BUF : b -> x ; }`, netsim.WithLogger(l))
	require.NoError(t, err)
	defer s.Close()

	require.NotEmpty(t, hook.AllEntries())
	assert.Equal(t, "module registered", hook.AllEntries()[0].Message)
	assert.Equal(t, "t", hook.AllEntries()[0].Data["module"])

	hook.Reset()
	require.Error(t, s.Tick())
	e := hook.LastEntry()
	require.NotNil(t, e)
	assert.Equal(t, logrus.WarnLevel, e.Level)
	assert.Equal(t, s.ID().String(), e.Data["sim"])
}
