// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	hwsim "github.com/kvory/nandsim"
)

func ramSpec(name string, addrBits int) *hwsim.PartSpec {
	size := 1 << uint(addrBits)
	return &hwsim.PartSpec{
		Name:    name,
		Inputs:  []string{pIn, pLoad, "address"},
		Outputs: []string{pOut},
		Widths:  map[string]int{pIn: 16, pOut: 16, "address": addrBits},
		Mount: func(s *hwsim.Socket) hwsim.Updater {
			in, load, address, out := s.Wire(pIn), s.Wire(pLoad), s.Wire("address"), s.Wire(pOut)
			mem := make([]uint16, size)
			var last int
			var curOut uint16
			return &clockedUpdater{
				evalFn: func() { out.SetWord(curOut) },
				tickFn: func() {
					last = int(address.Word()) & (size - 1)
					if load.Word() != 0 {
						mem[last] = in.Word()
					}
				},
				tockFn: func() { curOut = mem[last]; out.SetWord(curOut) },
			}
		},
	}
}

var (
	ram8Spec    = ramSpec("RAM8", 3)
	ram64Spec   = ramSpec("RAM64", 6)
	ram512Spec  = ramSpec("RAM512", 9)
	ram4kSpec   = ramSpec("RAM4K", 12)
	ram16kSpec  = ramSpec("RAM16K", 14)
)

// RAM8 returns a clocked 8-word, 16-bit RAM.
//
//	Inputs: in[16], load, address[3]
//	Outputs: out[16]
func RAM8(conns string) hwsim.Part { return ram8Spec.NewPart(conns) }

// RAM64 returns a clocked 64-word, 16-bit RAM.
//
//	Inputs: in[16], load, address[6]
//	Outputs: out[16]
func RAM64(conns string) hwsim.Part { return ram64Spec.NewPart(conns) }

// RAM512 returns a clocked 512-word, 16-bit RAM.
//
//	Inputs: in[16], load, address[9]
//	Outputs: out[16]
func RAM512(conns string) hwsim.Part { return ram512Spec.NewPart(conns) }

// RAM4K returns a clocked 4096-word, 16-bit RAM.
//
//	Inputs: in[16], load, address[12]
//	Outputs: out[16]
func RAM4K(conns string) hwsim.Part { return ram4kSpec.NewPart(conns) }

// RAM16K returns a clocked 16384-word, 16-bit RAM.
//
//	Inputs: in[16], load, address[14]
//	Outputs: out[16]
func RAM16K(conns string) hwsim.Part { return ram16kSpec.NewPart(conns) }

// A ROM32K is a 32768-word, 16-bit, combinational read-only memory. Its
// content is set directly on Data before wiring it into a circuit (the
// connection-string constructor has no way to carry a program image, so the
// image lives on the Go value instead).
type ROM32K struct {
	Data [1 << 15]uint16
}

// NewPart binds this ROM's content, returning a Part wired per conns.
//
//	Inputs: address[15]
//	Outputs: out[16]
//	Function: out = Data[address & 0x7FFF]
func (r *ROM32K) NewPart(conns string) hwsim.Part {
	spec := &hwsim.PartSpec{
		Name: "ROM32K", Inputs: []string{"address"}, Outputs: []string{pOut},
		Widths: map[string]int{"address": 15, pOut: 16},
		Mount: func(s *hwsim.Socket) hwsim.Updater {
			address, out := s.Wire("address"), s.Wire(pOut)
			return hwsim.UpdaterFn(func() {
				out.SetWord(r.Data[address.Word()&0x7FFF])
			})
		},
	}
	return spec.NewPart(conns)
}

const (
	ramRegionEnd    = 0x4000
	screenRegionEnd = 0x6000
	keyboardAddr    = 0x6000
)

// A Memory is the Hack computer's unified 16-bit address space: RAM16K at
// 0x0000-0x3FFF, the Screen's 8K words at 0x4000-0x5FFF, the Keyboard's
// single word at 0x6000. Every other address reads as 0xFFFF rather than
// zero or an error; callers depend on that sentinel.
type Memory struct{}

// NewPart returns a Part wrapping a fresh Memory instance.
//
//	Inputs: in[16], load, address[16]
//	Outputs: out[16]
//	Function: routes to RAM16K/Screen/Keyboard by address, or 0xFFFF if the
//	address falls outside every mapped region.
func (Memory) NewPart(conns string) hwsim.Part { return memorySpec.NewPart(conns) }

var memorySpec = &hwsim.PartSpec{
	Name: "MEMORY", Inputs: []string{pIn, pLoad, "address"}, Outputs: []string{pOut},
	Widths: map[string]int{pIn: 16, pOut: 16, "address": 16},
	Mount: func(s *hwsim.Socket) hwsim.Updater {
		in, load, address, out := s.Wire(pIn), s.Wire(pLoad), s.Wire("address"), s.Wire(pOut)
		ram := make([]uint16, 1<<14)
		screen := make([]uint16, 1<<13)
		var lastAddr uint16
		// region 2 (the keyboard word) always reads 0 here: a standalone
		// Memory has no live Keyboard register to forward to. Use the
		// Keyboard built-in directly to read keys.
		var lastRegion int // 0: ram, 1: screen, 2: keyboard, 3: unmapped
		var curOut uint16
		return &clockedUpdater{
			evalFn: func() { out.SetWord(curOut) },
			tickFn: func() {
				lastAddr = address.Word()
				switch {
				case lastAddr < ramRegionEnd:
					lastRegion = 0
					if load.Word() != 0 {
						ram[lastAddr] = in.Word()
					}
				case lastAddr < screenRegionEnd:
					lastRegion = 1
					if load.Word() != 0 {
						screen[lastAddr-ramRegionEnd] = in.Word()
					}
				case lastAddr == keyboardAddr:
					lastRegion = 2
				default:
					lastRegion = 3
				}
			},
			tockFn: func() {
				curOut = memoryRead(ram, screen, 0, lastRegion, lastAddr)
				out.SetWord(curOut)
			},
		}
	},
}

func memoryRead(ram, screen []uint16, keyboard uint16, region int, addr uint16) uint16 {
	switch region {
	case 0:
		return ram[addr]
	case 1:
		return screen[addr-ramRegionEnd]
	case 2:
		return keyboard
	default:
		return 0xFFFF
	}
}
