// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	hwsim "github.com/kvory/nandsim"
)

var muxSpec = &hwsim.PartSpec{
	Name: "MUX", Inputs: []string{pA, pB, pSel}, Outputs: []string{pOut},
	Mount: func(s *hwsim.Socket) hwsim.Updater {
		a, b, sel, out := s.Wire(pA), s.Wire(pB), s.Wire(pSel), s.Wire(pOut)
		return hwsim.UpdaterFn(func() {
			if sel.Word() == 0 {
				out.SetWord(a.Word() & 1)
			} else {
				out.SetWord(b.Word() & 1)
			}
		})
	},
}

// Mux returns a 1-bit 2-way multiplexer.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: out = sel ? b : a
func Mux(conns string) hwsim.Part { return muxSpec.NewPart(conns) }

var dmuxSpec = &hwsim.PartSpec{
	Name: "DMUX", Inputs: []string{pIn, pSel}, Outputs: []string{"a", "b"},
	Mount: func(s *hwsim.Socket) hwsim.Updater {
		in, sel, a, b := s.Wire(pIn), s.Wire(pSel), s.Wire("a"), s.Wire("b")
		return hwsim.UpdaterFn(func() {
			if sel.Word() == 0 {
				a.SetWord(in.Word() & 1)
				b.SetWord(0)
			} else {
				a.SetWord(0)
				b.SetWord(in.Word() & 1)
			}
		})
	},
}

// DMux returns a 1-bit demultiplexer.
//
//	Inputs: in, sel
//	Outputs: a, b
//	Function: a, b = sel ? (0, in) : (in, 0)
func DMux(conns string) hwsim.Part { return dmuxSpec.NewPart(conns) }

func muxWideSpec(bits int) *hwsim.PartSpec {
	return &hwsim.PartSpec{
		Name: "MUX" + strconv.Itoa(bits), Inputs: []string{pA, pB, pSel}, Outputs: []string{pOut},
		Widths: map[string]int{pA: bits, pB: bits, pOut: bits},
		Mount: func(s *hwsim.Socket) hwsim.Updater {
			a, b, sel, out := s.Wire(pA), s.Wire(pB), s.Wire(pSel), s.Wire(pOut)
			return hwsim.UpdaterFn(func() {
				if sel.Word() == 0 {
					out.SetWord(a.Word())
				} else {
					out.SetWord(b.Word())
				}
			})
		},
	}
}

var mux16Spec = muxWideSpec(16)

// Mux16 returns a 16-bit 2-way multiplexer.
//
//	Inputs: a[16], b[16], sel
//	Outputs: out[16]
//	Function: out = sel ? b : a
func Mux16(conns string) hwsim.Part { return mux16Spec.NewPart(conns) }

// muxNWay builds an N-way (ways a power of two) 1-bit multiplexer selecting
// among in0..in(ways-1) with a log2(ways)-bit sel.
func muxNWay(name string, ways int, selBits int) *hwsim.PartSpec {
	ins := make([]string, ways)
	for i := range ins {
		ins[i] = pIn + strconv.Itoa(i)
	}
	return &hwsim.PartSpec{
		Name:    name,
		Inputs:  append(append([]string{}, ins...), pSel),
		Outputs: []string{pOut},
		Widths:  map[string]int{pSel: selBits},
		Mount: func(s *hwsim.Socket) hwsim.Updater {
			wires := make([]hwsim.Node, ways)
			for i, n := range ins {
				wires[i] = s.Wire(n)
			}
			sel, out := s.Wire(pSel), s.Wire(pOut)
			return hwsim.UpdaterFn(func() {
				out.SetWord(wires[sel.Word()].Word() & 1)
			})
		},
	}
}

var (
	mux4WaySpec = muxNWay("MUX4WAY", 4, 2)
	mux8WaySpec = muxNWay("MUX8WAY", 8, 3)
)

// Mux4Way returns a 1-bit 4-way multiplexer.
//
//	Inputs: in0, in1, in2, in3, sel[2]
//	Outputs: out
//	Function: out = in[sel]
func Mux4Way(conns string) hwsim.Part { return mux4WaySpec.NewPart(conns) }

// Mux8Way returns a 1-bit 8-way multiplexer.
//
//	Inputs: in0..in7, sel[3]
//	Outputs: out
//	Function: out = in[sel]
func Mux8Way(conns string) hwsim.Part { return mux8WaySpec.NewPart(conns) }

// muxNWay16 builds an N-way 16-bit multiplexer.
func muxNWay16(name string, ways int, selBits int) *hwsim.PartSpec {
	ins := make([]string, ways)
	for i := range ins {
		ins[i] = pIn + strconv.Itoa(i)
	}
	widths := map[string]int{pSel: selBits, pOut: 16}
	for _, n := range ins {
		widths[n] = 16
	}
	return &hwsim.PartSpec{
		Name:    name,
		Inputs:  append(append([]string{}, ins...), pSel),
		Outputs: []string{pOut},
		Widths:  widths,
		Mount: func(s *hwsim.Socket) hwsim.Updater {
			wires := make([]hwsim.Node, ways)
			for i, n := range ins {
				wires[i] = s.Wire(n)
			}
			sel, out := s.Wire(pSel), s.Wire(pOut)
			return hwsim.UpdaterFn(func() {
				out.SetWord(wires[sel.Word()].Word())
			})
		},
	}
}

var (
	mux4Way16Spec = muxNWay16("MUX4WAY16", 4, 2)
	mux8Way16Spec = muxNWay16("MUX8WAY16", 8, 3)
)

// Mux4Way16 returns a 16-bit 4-way multiplexer.
//
//	Inputs: in0[16], in1[16], in2[16], in3[16], sel[2]
//	Outputs: out[16]
//	Function: out = in[sel]
func Mux4Way16(conns string) hwsim.Part { return mux4Way16Spec.NewPart(conns) }

// Mux8Way16 returns a 16-bit 8-way multiplexer.
//
//	Inputs: in0[16]..in7[16], sel[3]
//	Outputs: out[16]
//	Function: out = in[sel]
func Mux8Way16(conns string) hwsim.Part { return mux8Way16Spec.NewPart(conns) }

// dmuxNWay builds an N-way 1-bit demultiplexer.
func dmuxNWay(name string, ways int, selBits int) *hwsim.PartSpec {
	outs := make([]string, ways)
	for i := range outs {
		outs[i] = pOut + strconv.Itoa(i)
	}
	return &hwsim.PartSpec{
		Name:    name,
		Inputs:  []string{pIn, pSel},
		Outputs: outs,
		Widths:  map[string]int{pSel: selBits},
		Mount: func(s *hwsim.Socket) hwsim.Updater {
			in, sel := s.Wire(pIn), s.Wire(pSel)
			wires := make([]hwsim.Node, ways)
			for i, n := range outs {
				wires[i] = s.Wire(n)
			}
			return hwsim.UpdaterFn(func() {
				v := in.Word() & 1
				k := int(sel.Word())
				for i, w := range wires {
					if i == k {
						w.SetWord(v)
					} else {
						w.SetWord(0)
					}
				}
			})
		},
	}
}

var (
	dmux4WaySpec = dmuxNWay("DMUX4WAY", 4, 2)
	dmux8WaySpec = dmuxNWay("DMUX8WAY", 8, 3)
)

// DMux4Way returns a 1-bit 4-way demultiplexer.
//
//	Inputs: in, sel[2]
//	Outputs: out0, out1, out2, out3
//	Function: out[sel] = in; every other output is 0
func DMux4Way(conns string) hwsim.Part { return dmux4WaySpec.NewPart(conns) }

// DMux8Way returns a 1-bit 8-way demultiplexer.
//
//	Inputs: in, sel[3]
//	Outputs: out0..out7
//	Function: out[sel] = in; every other output is 0
func DMux8Way(conns string) hwsim.Part { return dmux8WaySpec.NewPart(conns) }
