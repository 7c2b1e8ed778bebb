// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import hwsim "github.com/kvory/nandsim"

var aluSpec = &hwsim.PartSpec{
	Name:    "ALU",
	Inputs:  []string{"x", "y", "zx", "nx", "zy", "ny", "f", "no"},
	Outputs: []string{pOut, "zr", "ng"},
	Widths:  map[string]int{"x": 16, "y": 16, pOut: 16},
	Mount: func(s *hwsim.Socket) hwsim.Updater {
		x, y := s.Wire("x"), s.Wire("y")
		zx, nx, zy, ny := s.Wire("zx"), s.Wire("nx"), s.Wire("zy"), s.Wire("ny")
		f, no := s.Wire("f"), s.Wire("no")
		out, zr, ng := s.Wire(pOut), s.Wire("zr"), s.Wire("ng")
		return hwsim.UpdaterFn(func() {
			xv, yv := x.Word(), y.Word()
			if zx.Word() != 0 {
				xv = 0
			}
			if nx.Word() != 0 {
				xv = ^xv
			}
			if zy.Word() != 0 {
				yv = 0
			}
			if ny.Word() != 0 {
				yv = ^yv
			}
			var r uint16
			if f.Word() != 0 {
				r = xv + yv
			} else {
				r = xv & yv
			}
			if no.Word() != 0 {
				r = ^r
			}
			out.SetWord(r)
			if r == 0 {
				zr.SetWord(1)
			} else {
				zr.SetWord(0)
			}
			ng.SetWord((r >> 15) & 1)
		})
	},
}

// ALU returns the Hack arithmetic-logic unit.
//
//	Inputs: x[16], y[16], zx, nx, zy, ny, f, no
//	Outputs: out[16], zr, ng
//	Function: per the control bits zx/nx/zy/ny/f/no, applied to x and y in
//	that order, with out, zr (out==0) and ng (out's sign bit) derived from
//	the final result.
func ALU(conns string) hwsim.Part { return aluSpec.NewPart(conns) }
