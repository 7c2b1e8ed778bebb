// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"testing"

	hwsim "github.com/kvory/nandsim"
	"github.com/kvory/nandsim/hwlib"
	"github.com/kvory/nandsim/hwtest"
)

func TestMux(t *testing.T) {
	hwtest.ComparePart(t, "Mux", hwlib.Mux, func(in map[string]uint16) map[string]uint16 {
		if in["sel"] == 0 {
			return map[string]uint16{"out": in["a"]}
		}
		return map[string]uint16{"out": in["b"]}
	})
}

func TestDMux(t *testing.T) {
	hwtest.ComparePart(t, "DMux", hwlib.DMux, func(in map[string]uint16) map[string]uint16 {
		if in["sel"] == 0 {
			return map[string]uint16{"a": in["in"], "b": 0}
		}
		return map[string]uint16{"a": 0, "b": in["in"]}
	})
}

func TestMux4Way8Way(t *testing.T) {
	hwtest.ComparePart(t, "Mux4Way", hwlib.Mux4Way, func(in map[string]uint16) map[string]uint16 {
		sel := in["sel"]
		return map[string]uint16{"out": in["in"+string(rune('0'+sel))]}
	})
	hwtest.ComparePart(t, "Mux8Way", hwlib.Mux8Way, func(in map[string]uint16) map[string]uint16 {
		sel := in["sel"]
		return map[string]uint16{"out": in["in"+string(rune('0'+sel))]}
	})
}

func TestDMux4Way8Way(t *testing.T) {
	hwtest.ComparePart(t, "DMux4Way", hwlib.DMux4Way, func(in map[string]uint16) map[string]uint16 {
		sel := int(in["sel"])
		out := map[string]uint16{"out0": 0, "out1": 0, "out2": 0, "out3": 0}
		out["out"+string(rune('0'+sel))] = in["in"]
		return out
	})
	hwtest.ComparePart(t, "DMux8Way", hwlib.DMux8Way, func(in map[string]uint16) map[string]uint16 {
		sel := int(in["sel"])
		out := map[string]uint16{
			"out0": 0, "out1": 0, "out2": 0, "out3": 0,
			"out4": 0, "out5": 0, "out6": 0, "out7": 0,
		}
		out["out"+string(rune('0'+sel))] = in["in"]
		return out
	})
}

func TestMux16(t *testing.T) {
	newPart, err := hwsim.Chip("MUX16TEST", "a[16], b[16], sel", "out[16]", hwlib.Mux16("a=a, b=b, sel=sel, out=out"))
	if err != nil {
		t.Fatal(err)
	}
	c, err := hwsim.NewCircuit(newPart(""))
	if err != nil {
		t.Fatal(err)
	}
	a, _ := c.Pin("a")
	b, _ := c.Pin("b")
	sel, _ := c.Pin("sel")
	a.SetWord(0x1111)
	b.SetWord(0x2222)
	sel.SetWord(0)
	c.Eval()
	out, _ := c.Pin("out")
	if out.Word() != 0x1111 {
		t.Fatalf("Mux16 sel=0: out = %#x, want 0x1111", out.Word())
	}
	sel.SetWord(1)
	c.Eval()
	if out.Word() != 0x2222 {
		t.Fatalf("Mux16 sel=1: out = %#x, want 0x2222", out.Word())
	}
}

func TestMux4Way16AndMux8Way16(t *testing.T) {
	newPart, err := hwsim.Chip("MUX4WAY16TEST", "in0[16], in1[16], in2[16], in3[16], sel[2]", "out[16]",
		hwlib.Mux4Way16("in0=in0, in1=in1, in2=in2, in3=in3, sel=sel, out=out"))
	if err != nil {
		t.Fatal(err)
	}
	c, err := hwsim.NewCircuit(newPart(""))
	if err != nil {
		t.Fatal(err)
	}
	ins := []string{"in0", "in1", "in2", "in3"}
	for i, n := range ins {
		p, _ := c.Pin(n)
		p.SetWord(uint16(0x1000 + i))
	}
	sel, _ := c.Pin("sel")
	out, _ := c.Pin("out")
	for i := 0; i < 4; i++ {
		sel.SetWord(uint16(i))
		c.Eval()
		if want := uint16(0x1000 + i); out.Word() != want {
			t.Fatalf("sel=%d: out = %#x, want %#x", i, out.Word(), want)
		}
	}
}
