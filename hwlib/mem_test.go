// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"testing"

	hwsim "github.com/kvory/nandsim"
	"github.com/kvory/nandsim/hwlib"
)

func TestRAM8IndependentAddresses(t *testing.T) {
	newPart, err := hwsim.Chip("RAM8TEST", "in[16], load, address[3]", "out[16]", hwlib.RAM8("in=in, load=load, address=address, out=out"))
	if err != nil {
		t.Fatal(err)
	}
	c, err := hwsim.NewCircuit(newPart(""))
	if err != nil {
		t.Fatal(err)
	}
	in, _ := c.Pin("in")
	load, _ := c.Pin("load")
	addr, _ := c.Pin("address")
	out, _ := c.Pin("out")

	write := func(a, v uint16) {
		addr.SetWord(a)
		in.SetWord(v)
		load.SetWord(1)
		c.Tick()
		c.Tock()
	}
	read := func(a uint16) uint16 {
		addr.SetWord(a)
		load.SetWord(0)
		c.Tick()
		c.Tock()
		return out.Word()
	}

	write(2, 0xAAAA)
	write(5, 0x5555)
	if got := read(2); got != 0xAAAA {
		t.Fatalf("RAM8[2] = %#x, want 0xAAAA (write to 5 must not perturb 2)", got)
	}
	if got := read(5); got != 0x5555 {
		t.Fatalf("RAM8[5] = %#x, want 0x5555", got)
	}
}

func TestRAM8AddressMasked(t *testing.T) {
	newPart, err := hwsim.Chip("RAM8TEST2", "in[16], load, address[3]", "out[16]", hwlib.RAM8("in=in, load=load, address=address, out=out"))
	if err != nil {
		t.Fatal(err)
	}
	c, err := hwsim.NewCircuit(newPart(""))
	if err != nil {
		t.Fatal(err)
	}
	in, _ := c.Pin("in")
	load, _ := c.Pin("load")
	addr, _ := c.Pin("address")
	out, _ := c.Pin("out")

	addr.SetWord(3)
	in.SetWord(0x1234)
	load.SetWord(1)
	c.Tick()
	c.Tock()

	addr.SetWord(3 | 8) // 11 does not fit the 3-bit address pin; it is masked to 3
	load.SetWord(0)
	c.Tick()
	c.Tock()
	if out.Word() != 0x1234 {
		t.Fatalf("out = %#x, want 0x1234", out.Word())
	}
}

func TestROM32KCombinationalRead(t *testing.T) {
	rom := &hwlib.ROM32K{}
	rom.Data[5] = 0xBEEF
	newPart, err := hwsim.Chip("ROMTEST", "address[15]", "out[16]", rom.NewPart("address=address, out=out"))
	if err != nil {
		t.Fatal(err)
	}
	c, err := hwsim.NewCircuit(newPart(""))
	if err != nil {
		t.Fatal(err)
	}
	addr, _ := c.Pin("address")
	out, _ := c.Pin("out")
	addr.SetWord(5)
	c.Eval()
	if out.Word() != 0xBEEF {
		t.Fatalf("ROM32K[5] = %#x, want 0xBEEF", out.Word())
	}
}

func TestMemoryOutOfBoundsReadsSentinel(t *testing.T) {
	mem := hwlib.Memory{}
	newPart, err := hwsim.Chip("MEMTEST", "in[16], load, address[16]", "out[16]", mem.NewPart("in=in, load=load, address=address, out=out"))
	if err != nil {
		t.Fatal(err)
	}
	c, err := hwsim.NewCircuit(newPart(""))
	if err != nil {
		t.Fatal(err)
	}
	in, _ := c.Pin("in")
	load, _ := c.Pin("load")
	addr, _ := c.Pin("address")
	out, _ := c.Pin("out")

	// 0x6001 falls outside the RAM/screen/keyboard map.
	addr.SetWord(0x6001)
	load.SetWord(0)
	in.SetWord(0)
	c.Tick()
	c.Tock()
	if out.Word() != 0xFFFF {
		t.Fatalf("out-of-bounds read = %#x, want the 0xFFFF sentinel", out.Word())
	}
}

func TestMemoryRAMRegion(t *testing.T) {
	mem := hwlib.Memory{}
	newPart, err := hwsim.Chip("MEMTEST2", "in[16], load, address[16]", "out[16]", mem.NewPart("in=in, load=load, address=address, out=out"))
	if err != nil {
		t.Fatal(err)
	}
	c, err := hwsim.NewCircuit(newPart(""))
	if err != nil {
		t.Fatal(err)
	}
	in, _ := c.Pin("in")
	load, _ := c.Pin("load")
	addr, _ := c.Pin("address")
	out, _ := c.Pin("out")

	addr.SetWord(0x0010)
	in.SetWord(0x4242)
	load.SetWord(1)
	c.Tick()
	c.Tock()

	load.SetWord(0)
	c.Tick()
	c.Tock()
	if out.Word() != 0x4242 {
		t.Fatalf("RAM region read = %#x, want 0x4242", out.Word())
	}
}
