package netsim_test

import (
	"strings"
	"testing"

	"github.com/db47h/netsim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_errors(t *testing.T) {
	data := []struct {
		name string
		src  string
		err  netsim.Kind
	}{
		{"bad module type", "@CHIP c { NOT : a -> b ; }", netsim.InvalidModuleType},
		{"bad gate", "@TOP t { FOO : a -> b ; }", netsim.InvalidGateInstanceName},
		{"input gate", "@TOP t { INPUT : a -> b ; }", netsim.InvalidGateInstanceName},
		{"bad directive", "@TOP t { @CLK : a ; }", netsim.InvalidGateType},
		{"not 2 inputs", "@TOP t { NOT : a b -> c ; }", netsim.WrongNumberOfInputs},
		{"buf 2 inputs", "@TOP t { BUF : a b -> c ; }", netsim.WrongNumberOfInputs},
		{"and 1 input", "@TOP t { AND : a -> c ; }", netsim.WrongNumberOfInputs},
		{"xnor 1 input", "@TOP t { XNOR : a -> c ; }", netsim.WrongNumberOfInputs},
		{"duplicate module", "@MODULE m { NOT : a -> b ; } @MODULE m { NOT : a -> b ; }", netsim.DuplicateModule},
		{"comb loop", "@COMB c { NOR : s qn -> q ; NOR : r q -> qn ; }", netsim.CombinationalLoop},
		{"comb self loop", "@COMB c { NOT : q -> q ; }", netsim.CombinationalLoop},
		{"grammar first", "@CHIP c { FOO : a -> b }", netsim.MissingSemicolon},
		{"keyword", "@T-P c { }", netsim.KeywordNotAlphanumeric},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			s, err := netsim.New(d.src)
			assert.Nil(t, s)
			require.Error(t, err)
			assert.Equal(t, d.err, netsim.KindOf(err), "error: %v", err)
		})
	}
}

func TestNew_errorPosition(t *testing.T) {
	_, err := netsim.New("@TOP t {\n\t@IN : a ;\n\tFOO : a -> b ;\n}")
	require.Error(t, err)
	assert.True(t, strings.HasSuffix(err.Error(), "line 3, col 2: invalid gate instance name \"FOO\""), err.Error())
	assert.True(t, strings.HasPrefix(err.Error(), "module \"t\": "), err.Error())

	_, err = netsim.New("@TOP t {\n\tAND : a -> b ;\n}")
	var e *netsim.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, netsim.WrongNumberOfInputs, e.Kind)
	assert.Equal(t, 2, e.Pos.Line)
}

func TestNew_structure(t *testing.T) {
	src := `
# two modules
@TOP Main {
	@IN : a b ;
	@OUT : y z ;
	AND : a b -> y z ;   // fan-out
	OR : a b -> z ;      // second driver on z
	NOT : y -> w ;
}
@comb Sub {
	@in : x ;
	buf : x -> y ;
}
`
	s, err := netsim.New(src)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "Main", s.Name())
	mods := s.Modules()
	require.Len(t, mods, 2)
	assert.Equal(t, netsim.Top, mods[0].Type())
	assert.Equal(t, netsim.SubCombinational, mods[1].Type())

	m := mods[0]
	assert.Equal(t, []string{"a", "b", "y", "z", "w"}, m.Nodes())
	assert.Equal(t, []string{"a", "b"}, m.Inputs())
	assert.Equal(t, []string{"y", "z"}, m.Outputs())
	require.Len(t, m.Gates(), 3)

	g := m.Gates()[0]
	assert.Equal(t, netsim.And, g.Kind())
	assert.Equal(t, []int{0, 1}, g.Inputs())
	assert.Equal(t, netsim.NoPort, g.Port())

	z, ok := m.Node("z")
	require.True(t, ok)
	assert.Equal(t, []int{0, 1}, m.At(z).Drivers())
	a, _ := m.Node("a")
	assert.Empty(t, m.At(a).Drivers())
	assert.True(t, m.At(a).IsInput())
	assert.True(t, m.At(z).IsOutput())
	assert.Equal(t, netsim.WireOr, m.At(z).Wire())

	assert.Same(t, mods[1], s.Module("Sub"))
	assert.Nil(t, s.Module("nope"))
}

func TestNew_wireDirectives(t *testing.T) {
	src := `@TOP t {
	@IN : a b ;
	@WAND : x floatand ;
	@UNIQUE : u floatu ;
	@WOR : floator ;
	BUF : a -> x ;
	BUF : b -> x ;
	BUF : a -> u ;
}`
	s, err := netsim.New(src)
	require.NoError(t, err)
	defer s.Close()
	m := s.Modules()[0]
	x, _ := m.Node("x")
	u, _ := m.Node("u")
	assert.Equal(t, netsim.WireAnd, m.At(x).Wire())
	assert.Equal(t, netsim.WireUniqueDriver, m.At(u).Wire())

	check := func(name string, exp bool) {
		t.Helper()
		v, err := s.Get(name)
		require.NoError(t, err)
		assert.Equal(t, exp, v, name)
	}
	require.NoError(t, s.Set("a", true))
	require.NoError(t, s.Tick())
	check("x", false) // b is false
	check("u", true)
	check("floatand", true) // WireAnd with no driver
	check("floatu", false)  // WireUniqueDriver with no driver
	check("floator", false) // WireOr with no driver

	require.NoError(t, s.Set("b", true))
	require.NoError(t, s.Tick())
	check("x", true)
}

func TestNew_maxNodes(t *testing.T) {
	src := "@MODULE a { AND : i0 i1 -> o ; } @MODULE b { AND : i0 i1 -> o ; }"
	_, err := netsim.New(src, netsim.WithMaxNodes(5))
	assert.Equal(t, netsim.TooManyNodes, netsim.KindOf(err))
	s, err := netsim.New(src, netsim.WithMaxNodes(6))
	require.NoError(t, err)
	s.Close()
	s, err = netsim.New(src, netsim.WithMaxNodes(0))
	require.NoError(t, err)
	s.Close()
}

func TestNew_multiWordModuleName(t *testing.T) {
	s, err := netsim.New("@TOP full adder { @IN : a ; NOT : a -> b ; }\n@COMB half adder x { BUF : a -> b ; }")
	require.NoError(t, err)
	defer s.Close()
	require.Len(t, s.Modules(), 2)
	assert.Equal(t, "full", s.Name())
	assert.Equal(t, []string{"a", "b"}, s.Module("full").Nodes())
	assert.Equal(t, netsim.SubCombinational, s.Module("half").Type())

	_, err = netsim.New("@TOP full adder { NOT : a -> b ; } @TOP full house { NOT : a -> b ; }")
	assert.Equal(t, netsim.DuplicateModule, netsim.KindOf(err))
}

func TestBuild(t *testing.T) {
	toks, err := netsim.Tokenize("@TOP t { NOT : a -> b ; }")
	require.NoError(t, err)
	mods, err := netsim.Build(toks)
	require.NoError(t, err)
	require.Len(t, mods, 1)
	assert.Equal(t, "t", mods[0].Name())

	toks, err = netsim.Tokenize("@TOP t { NOT : a -> b ;")
	require.NoError(t, err)
	_, err = netsim.Build(toks)
	assert.Equal(t, netsim.MissingBracket, netsim.KindOf(err))
}
