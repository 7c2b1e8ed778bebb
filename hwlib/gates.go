// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of reusable parts for hwsim: the
// combinational gate primitives, 16-bit arithmetic and the ALU, clocked
// storage elements, RAM/ROM, and the memory-mapped screen and keyboard.
package hwlib

import (
	"strconv"

	hwsim "github.com/kvory/nandsim"
)

// common pin names
const (
	pA    = "a"
	pB    = "b"
	pIn   = "in"
	pSel  = "sel"
	pOut  = "out"
	pLoad = "load"
)

func mask(bits int) uint16 {
	if bits >= 16 {
		return 0xFFFF
	}
	return uint16(1)<<uint(bits) - 1
}

// Nand is the one primitive gate every other gate in this library ultimately
// reduces to in nand2tetris; here it is implemented directly against Node,
// since Chip-composing every gate down to Nand buys no clarity once the
// engine already operates on whole words rather than individual bits.
var nandSpec = &hwsim.PartSpec{
	Name: "NAND", Inputs: []string{pA, pB}, Outputs: []string{pOut},
	Mount: func(s *hwsim.Socket) hwsim.Updater {
		a, b, out := s.Wire(pA), s.Wire(pB), s.Wire(pOut)
		return hwsim.UpdaterFn(func() {
			out.SetWord((^(a.Word() & b.Word())) & 1)
		})
	},
}

// Nand returns a NAND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a && b)
func Nand(conns string) hwsim.Part { return nandSpec.NewPart(conns) }

var notSpec = &hwsim.PartSpec{
	Name: "NOT", Inputs: []string{pIn}, Outputs: []string{pOut},
	Mount: func(s *hwsim.Socket) hwsim.Updater {
		in, out := s.Wire(pIn), s.Wire(pOut)
		return hwsim.UpdaterFn(func() { out.SetWord((^in.Word()) & 1) })
	},
}

// Not returns a NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
func Not(conns string) hwsim.Part { return notSpec.NewPart(conns) }

type binFn func(a, b uint16) uint16

func newGate(name string, fn binFn) *hwsim.PartSpec {
	return &hwsim.PartSpec{
		Name: name, Inputs: []string{pA, pB}, Outputs: []string{pOut},
		Mount: func(s *hwsim.Socket) hwsim.Updater {
			a, b, out := s.Wire(pA), s.Wire(pB), s.Wire(pOut)
			return hwsim.UpdaterFn(func() { out.SetWord(fn(a.Word(), b.Word()) & 1) })
		},
	}
}

var (
	andSpec  = newGate("AND", func(a, b uint16) uint16 { return a & b })
	orSpec   = newGate("OR", func(a, b uint16) uint16 { return a | b })
	norSpec  = newGate("NOR", func(a, b uint16) uint16 { return ^(a | b) })
	xorSpec  = newGate("XOR", func(a, b uint16) uint16 { return a ^ b })
	xnorSpec = newGate("XNOR", func(a, b uint16) uint16 { return ^(a ^ b) })
)

// And returns an AND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b
func And(conns string) hwsim.Part { return andSpec.NewPart(conns) }

// Or returns an OR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a || b
func Or(conns string) hwsim.Part { return orSpec.NewPart(conns) }

// Nor returns a NOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a || b)
func Nor(conns string) hwsim.Part { return norSpec.NewPart(conns) }

// Xor returns an XOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a != b
func Xor(conns string) hwsim.Part { return xorSpec.NewPart(conns) }

// Xnor returns an XNOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a == b
func Xnor(conns string) hwsim.Part { return xnorSpec.NewPart(conns) }

func wideUnary(name string, bits int, fn func(uint16) uint16) *hwsim.PartSpec {
	return &hwsim.PartSpec{
		Name:    name + strconv.Itoa(bits),
		Inputs:  []string{pIn},
		Outputs: []string{pOut},
		Widths:  map[string]int{pIn: bits, pOut: bits},
		Mount: func(s *hwsim.Socket) hwsim.Updater {
			in, out := s.Wire(pIn), s.Wire(pOut)
			m := mask(bits)
			return hwsim.UpdaterFn(func() { out.SetWord(fn(in.Word()) & m) })
		},
	}
}

var not16Spec = wideUnary("NOT", 16, func(v uint16) uint16 { return ^v })

// Not16 returns a 16-bit NOT gate.
//
//	Inputs: in[16]
//	Outputs: out[16]
//	Function: out = ^in
func Not16(conns string) hwsim.Part { return not16Spec.NewPart(conns) }

func wideBinary(name string, bits int, fn binFn) *hwsim.PartSpec {
	return &hwsim.PartSpec{
		Name:    name + strconv.Itoa(bits),
		Inputs:  []string{pA, pB},
		Outputs: []string{pOut},
		Widths:  map[string]int{pA: bits, pB: bits, pOut: bits},
		Mount: func(s *hwsim.Socket) hwsim.Updater {
			a, b, out := s.Wire(pA), s.Wire(pB), s.Wire(pOut)
			m := mask(bits)
			return hwsim.UpdaterFn(func() { out.SetWord(fn(a.Word(), b.Word()) & m) })
		},
	}
}

var (
	and16Spec = wideBinary("AND", 16, func(a, b uint16) uint16 { return a & b })
	or16Spec  = wideBinary("OR", 16, func(a, b uint16) uint16 { return a | b })
)

// And16 returns a 16-bit AND gate.
//
//	Inputs: a[16], b[16]
//	Outputs: out[16]
//	Function: out = a & b
func And16(conns string) hwsim.Part { return and16Spec.NewPart(conns) }

// Or16 returns a 16-bit OR gate.
//
//	Inputs: a[16], b[16]
//	Outputs: out[16]
//	Function: out = a | b
func Or16(conns string) hwsim.Part { return or16Spec.NewPart(conns) }

func orNWay(name string, ways int) *hwsim.PartSpec {
	ins := make([]string, ways)
	for i := range ins {
		ins[i] = pIn + strconv.Itoa(i)
	}
	return &hwsim.PartSpec{
		Name: name, Inputs: ins, Outputs: []string{pOut},
		Mount: func(s *hwsim.Socket) hwsim.Updater {
			wires := make([]hwsim.Node, ways)
			for i, n := range ins {
				wires[i] = s.Wire(n)
			}
			out := s.Wire(pOut)
			return hwsim.UpdaterFn(func() {
				var v uint16
				for _, w := range wires {
					v |= w.Word()
				}
				out.SetWord(v & 1)
			})
		},
	}
}

var (
	or8WaySpec = orNWay("OR8WAY", 8)
)

// Or8Way returns an 8-way OR gate: out is set if any of in0..in7 is set.
//
//	Inputs: in0..in7
//	Outputs: out
//	Function: out = in0 || in1 || ... || in7
func Or8Way(conns string) hwsim.Part { return or8WaySpec.NewPart(conns) }
