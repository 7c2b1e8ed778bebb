// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import "strconv"

// Input returns a 1-bit input part whose "out" pin is driven by f on every
// evaluation. It is the glue for feeding external state (a switch, a test
// stimulus, an interactive driver) into a circuit.
func Input(f func() bool) NewPartFn {
	p := &PartSpec{
		Name:    "INPUT",
		Outputs: []string{"out"},
		Mount: func(s *Socket) Updater {
			out := s.Wire("out")
			return UpdaterFn(func() {
				var v uint16
				if f() {
					v = 1
				}
				out.SetWord(v)
			})
		}}
	return p.NewPart
}

// Output returns a 1-bit output part that calls f with the value of its "in"
// pin on every evaluation.
func Output(f func(bool)) NewPartFn {
	p := &PartSpec{
		Name:   "OUTPUT",
		Inputs: []string{"in"},
		Mount: func(s *Socket) Updater {
			in := s.Wire("in")
			return UpdaterFn(func() { f(in.Word() != 0) })
		}}
	return p.NewPart
}

// InputN returns an input bus of the given width, driven by f on every
// evaluation. f's result is masked to the bus width.
func InputN(bits int, f func() uint16) NewPartFn {
	if bits < 1 || bits > MaxWidth {
		panic("invalid input bus width " + strconv.Itoa(bits))
	}
	p := &PartSpec{
		Name:    "INPUT" + strconv.Itoa(bits),
		Outputs: []string{"out"},
		Widths:  map[string]int{"out": bits},
		Mount: func(s *Socket) Updater {
			out := s.Wire("out")
			m := mask(bits)
			return UpdaterFn(func() { out.SetWord(f() & m) })
		}}
	return p.NewPart
}

// OutputN returns an output bus of the given width that calls f with the
// word of its "in" pin on every evaluation.
func OutputN(bits int, f func(uint16)) NewPartFn {
	if bits < 1 || bits > MaxWidth {
		panic("invalid output bus width " + strconv.Itoa(bits))
	}
	p := &PartSpec{
		Name:   "OUTPUT" + strconv.Itoa(bits),
		Inputs: []string{"in"},
		Widths: map[string]int{"in": bits},
		Mount: func(s *Socket) Updater {
			in := s.Wire("in")
			return UpdaterFn(func() { f(in.Word()) })
		}}
	return p.NewPart
}
