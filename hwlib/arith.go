// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import hwsim "github.com/kvory/nandsim"

var halfAdderSpec = &hwsim.PartSpec{
	Name: "HALFADDER", Inputs: []string{pA, pB}, Outputs: []string{"sum", "carry"},
	Mount: func(s *hwsim.Socket) hwsim.Updater {
		a, b, sum, carry := s.Wire(pA), s.Wire(pB), s.Wire("sum"), s.Wire("carry")
		return hwsim.UpdaterFn(func() {
			av, bv := a.Word()&1, b.Word()&1
			sum.SetWord((av ^ bv) & 1)
			carry.SetWord((av & bv) & 1)
		})
	},
}

// HalfAdder returns a half adder.
//
//	Inputs: a, b
//	Outputs: sum, carry
//	Function: sum = a ^ b; carry = a & b
func HalfAdder(conns string) hwsim.Part { return halfAdderSpec.NewPart(conns) }

var fullAdderSpec = &hwsim.PartSpec{
	Name: "FULLADDER", Inputs: []string{pA, pB, "c"}, Outputs: []string{"sum", "carry"},
	Mount: func(s *hwsim.Socket) hwsim.Updater {
		a, b, c, sum, carry := s.Wire(pA), s.Wire(pB), s.Wire("c"), s.Wire("sum"), s.Wire("carry")
		return hwsim.UpdaterFn(func() {
			av, bv, cv := a.Word()&1, b.Word()&1, c.Word()&1
			sum.SetWord((av ^ bv ^ cv) & 1)
			// carry is the OR of the two half-adder carries (a&b, then
			// c&(a^b)); the two can never both be 1, so the OR equals
			// majority(a, b, c).
			carry.SetWord(((av & bv) | (cv & (av ^ bv))) & 1)
		})
	},
}

// FullAdder returns a full adder.
//
//	Inputs: a, b, c
//	Outputs: sum, carry
//	Function: sum = a ^ b ^ c; carry = majority(a, b, c)
func FullAdder(conns string) hwsim.Part { return fullAdderSpec.NewPart(conns) }

var add16Spec = &hwsim.PartSpec{
	Name: "ADD16", Inputs: []string{pA, pB}, Outputs: []string{pOut},
	Widths: map[string]int{pA: 16, pB: 16, pOut: 16},
	Mount: func(s *hwsim.Socket) hwsim.Updater {
		a, b, out := s.Wire(pA), s.Wire(pB), s.Wire(pOut)
		return hwsim.UpdaterFn(func() { out.SetWord(a.Word() + b.Word()) })
	},
}

// Add16 returns a 16-bit adder. Overflow silently wraps (modulo 2^16), as
// SetWord already masks to the pin's width.
//
//	Inputs: a[16], b[16]
//	Outputs: out[16]
//	Function: out = (a + b) mod 65536
func Add16(conns string) hwsim.Part { return add16Spec.NewPart(conns) }

var inc16Spec = &hwsim.PartSpec{
	Name: "INC16", Inputs: []string{pIn}, Outputs: []string{pOut},
	Widths: map[string]int{pIn: 16, pOut: 16},
	Mount: func(s *hwsim.Socket) hwsim.Updater {
		in, out := s.Wire(pIn), s.Wire(pOut)
		return hwsim.UpdaterFn(func() { out.SetWord(in.Word() + 1) })
	},
}

// Inc16 returns a 16-bit incrementer.
//
//	Inputs: in[16]
//	Outputs: out[16]
//	Function: out = (in + 1) mod 65536
func Inc16(conns string) hwsim.Part { return inc16Spec.NewPart(conns) }
