package netsim_test

import (
	"fmt"

	"github.com/db47h/netsim"
)

func ExampleNew() {
	s, err := netsim.New(`
@MODULE fulladder {
	@IN: in_a in_b in_carry;
	AND: in_a in_b -> carry_1st;
	XOR: in_a in_b -> half_sum;
	AND: half_sum in_carry -> carry_2nd;
	XOR: half_sum in_carry -> out_sum;
	OR: carry_1st carry_2nd -> out_carry;
}`)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer s.Close()

	d, _ := s.Depth()
	for _, in := range [][3]bool{{false, false, false}, {true, false, true}, {true, true, true}} {
		s.Set("in_a", in[0])
		s.Set("in_b", in[1])
		s.Set("in_carry", in[2])
		if err = s.TickN(d); err != nil {
			fmt.Println(err)
			return
		}
		c, _ := s.Get("out_carry")
		sum, _ := s.Get("out_sum")
		fmt.Printf("%v: carry=%v sum=%v\n", in, c, sum)
	}

	// Output:
	// [false false false]: carry=false sum=false
	// [true false true]: carry=true sum=false
	// [true true true]: carry=true sum=true
}

func ExampleKindOf() {
	_, err := netsim.New("@TOP t {\n\tNOT : a -> b\n}")
	fmt.Println(netsim.KindOf(err))
	fmt.Println(err)

	// Output:
	// missing semicolon
	// line 2, col 13: missing semicolon "b"
}
