// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import hwsim "github.com/kvory/nandsim"

// clockedUpdater adapts three plain closures to the Updater+Ticker
// interface for the clocked storage elements in this file: eval
// republishes current state without resampling, tick samples inputs into
// state, tock publishes state to out.
type clockedUpdater struct {
	evalFn, tickFn, tockFn func()
}

func (u *clockedUpdater) Eval() { u.evalFn() }
func (u *clockedUpdater) Tick() { u.tickFn() }
func (u *clockedUpdater) Tock() { u.tockFn() }

var dffSpec = &hwsim.PartSpec{
	Name: "DFF", Inputs: []string{pIn}, Outputs: []string{pOut},
	Mount: func(s *hwsim.Socket) hwsim.Updater {
		in, out := s.Wire(pIn), s.Wire(pOut)
		var state, curOut uint16
		return &clockedUpdater{
			evalFn: func() { out.SetWord(curOut) },
			tickFn: func() { state = in.Word() & 1 },
			tockFn: func() { curOut = state; out.SetWord(curOut) },
		}
	},
}

// DFF returns a clocked data flip-flop.
//
//	Inputs: in
//	Outputs: out
//	Function: out(t) = in(t-1)
func DFF(conns string) hwsim.Part { return dffSpec.NewPart(conns) }

var bitSpec = &hwsim.PartSpec{
	Name: "BIT", Inputs: []string{pIn, pLoad}, Outputs: []string{pOut},
	Mount: func(s *hwsim.Socket) hwsim.Updater {
		in, load, out := s.Wire(pIn), s.Wire(pLoad), s.Wire(pOut)
		var state, curOut uint16
		return &clockedUpdater{
			evalFn: func() { out.SetWord(curOut) },
			tickFn: func() {
				if load.Word() != 0 {
					state = in.Word() & 1
				}
			},
			tockFn: func() { curOut = state; out.SetWord(curOut) },
		}
	},
}

// Bit returns a clocked 1-bit register.
//
//	Inputs: in, load
//	Outputs: out
//	Function: tick: if load, state ← in. tock: out ← state.
func Bit(conns string) hwsim.Part { return bitSpec.NewPart(conns) }

var registerSpec = &hwsim.PartSpec{
	Name: "REGISTER", Inputs: []string{pIn, pLoad}, Outputs: []string{pOut},
	Widths: map[string]int{pIn: 16, pOut: 16},
	Mount: func(s *hwsim.Socket) hwsim.Updater {
		in, load, out := s.Wire(pIn), s.Wire(pLoad), s.Wire(pOut)
		var state, curOut uint16
		return &clockedUpdater{
			evalFn: func() { out.SetWord(curOut) },
			tickFn: func() {
				if load.Word() != 0 {
					state = in.Word()
				}
			},
			tockFn: func() { curOut = state; out.SetWord(curOut) },
		}
	},
}

// Register returns a clocked 16-bit register.
//
//	Inputs: in[16], load
//	Outputs: out[16]
//	Function: tick: if load, state ← in. tock: out ← state.
func Register(conns string) hwsim.Part { return registerSpec.NewPart(conns) }

var pcSpec = &hwsim.PartSpec{
	Name: "PC", Inputs: []string{pIn, pLoad, "inc", "reset"}, Outputs: []string{pOut},
	Widths: map[string]int{pIn: 16, pOut: 16},
	Mount: func(s *hwsim.Socket) hwsim.Updater {
		in, load, inc, reset, out := s.Wire(pIn), s.Wire(pLoad), s.Wire("inc"), s.Wire("reset"), s.Wire(pOut)
		var state, curOut uint16
		return &clockedUpdater{
			evalFn: func() { out.SetWord(curOut) },
			tickFn: func() {
				switch {
				case reset.Word() != 0:
					state = 0
				case load.Word() != 0:
					state = in.Word()
				case inc.Word() != 0:
					state++
				}
			},
			tockFn: func() { curOut = state; out.SetWord(curOut) },
		}
	},
}

// PC returns a clocked 16-bit program counter.
//
//	Inputs: in[16], load, inc, reset
//	Outputs: out[16]
//	Function: tick: reset > load > inc in priority; tock: out ← state.
func PC(conns string) hwsim.Part { return pcSpec.NewPart(conns) }
