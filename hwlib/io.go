// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import hwsim "github.com/kvory/nandsim"

var screenSpec = &hwsim.PartSpec{
	Name: "SCREEN", Inputs: []string{pIn, pLoad, "address"}, Outputs: []string{pOut},
	Widths: map[string]int{pIn: 16, pOut: 16, "address": 13},
	Mount: func(s *hwsim.Socket) hwsim.Updater {
		in, load, address, out := s.Wire(pIn), s.Wire(pLoad), s.Wire("address"), s.Wire(pOut)
		mem := make([]uint16, 1<<13)
		var last int
		var curOut uint16
		return &clockedUpdater{
			evalFn: func() { out.SetWord(curOut) },
			tickFn: func() {
				last = int(address.Word()) & (1<<13 - 1)
				if load.Word() != 0 {
					mem[last] = in.Word()
				}
			},
			tockFn: func() { curOut = mem[last]; out.SetWord(curOut) },
		}
	},
}

// Screen returns the memory-mapped 8192-word screen buffer, clocked like a
// RAM. Pixel (x, y), 0<=x<512, 0<=y<256, lives at bit x%16 of word
// y*32+x/16 (bit 0 leftmost).
//
//	Inputs: in[16], load, address[13]
//	Outputs: out[16]
func Screen(conns string) hwsim.Part { return screenSpec.NewPart(conns) }

// PixelAddr returns the screen word index and bit position of pixel (x, y),
// 0 <= x < 512, 0 <= y < 256. Bit 0 is the leftmost pixel of its word.
func PixelAddr(x, y int) (word int, bit uint) {
	return y*32 + x/16, uint(x % 16)
}

// NewlineKey and TabKey are the reserved key codes for the Keyboard
// register's special keys; every other key is its character code point
// truncated to 16 bits.
const (
	NewlineKey = 128
	TabKey     = 129
)

// KeyCode maps a pressed character to the 16-bit code the Keyboard register
// reports for it.
func KeyCode(r rune) uint16 {
	switch r {
	case '\n':
		return NewlineKey
	case '\t':
		return TabKey
	}
	return uint16(r)
}

// A Keyboard is a settable current-key register read combinationally by the
// chip it backs. SetKey is called by the harness or an interactive driver,
// outside of eval, to simulate a keypress.
type Keyboard struct {
	key uint16
}

// SetKey sets the register's current key code (masked to 16 bits).
func (k *Keyboard) SetKey(code uint16) { k.key = code }

// NewPart returns a Part wrapping this Keyboard.
//
//	Inputs: (none)
//	Outputs: out[16]
//	Function: out = current key code
func (k *Keyboard) NewPart(conns string) hwsim.Part {
	spec := &hwsim.PartSpec{
		Name: "KEYBOARD", Outputs: []string{pOut}, Widths: map[string]int{pOut: 16},
		Mount: func(s *hwsim.Socket) hwsim.Updater {
			out := s.Wire(pOut)
			return hwsim.UpdaterFn(func() { out.SetWord(k.key) })
		},
	}
	return spec.NewPart(conns)
}
