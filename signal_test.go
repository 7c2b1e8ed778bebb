// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import "testing"

func TestWireWordRoundTrip(t *testing.T) {
	for w := 1; w <= MaxWidth; w++ {
		wire := NewWire(w)
		for v := 0; v < 1<<uint(w) && v < 1024; v++ {
			wire.SetWord(uint16(v))
			if got := wire.Word(); got != uint16(v) {
				t.Fatalf("width %d: SetWord(%d); Word() = %d", w, v, got)
			}
			for i := 0; i < w; i++ {
				want := (v >> uint(i)) & 1
				b, err := wire.Bit(i)
				if err != nil {
					t.Fatalf("Bit(%d): %v", i, err)
				}
				if b != want {
					t.Fatalf("width %d v=%d: Bit(%d) = %d, want %d", w, v, i, b, want)
				}
			}
		}
	}
}

func TestWireSetBit(t *testing.T) {
	wire := NewWire(8)
	for i := 0; i < 8; i++ {
		if err := wire.SetBit(i, 1); err != nil {
			t.Fatal(err)
		}
		b, err := wire.Bit(i)
		if err != nil || b != 1 {
			t.Fatalf("Bit(%d) = %d, %v; want 1, nil", i, b, err)
		}
		if err := wire.SetBit(i, 0); err != nil {
			t.Fatal(err)
		}
		b, err = wire.Bit(i)
		if err != nil || b != 0 {
			t.Fatalf("Bit(%d) = %d, %v; want 0, nil", i, b, err)
		}
	}
}

func TestWireToggle(t *testing.T) {
	wire := NewWire(4)
	wire.SetWord(0b0101)
	if err := wire.Toggle(0); err != nil {
		t.Fatal(err)
	}
	if wire.Word() != 0b0100 {
		t.Fatalf("Word() = %#b, want 0b0100", wire.Word())
	}
}

func TestBitOutOfRange(t *testing.T) {
	wire := NewWire(4)
	if _, err := wire.Bit(4); err == nil {
		t.Fatal("expected error for out-of-range bit index")
	}
	if err := wire.SetBit(-1, 0); err == nil {
		t.Fatal("expected error for negative bit index")
	}
	if err := wire.SetBit(0, 2); err == nil {
		t.Fatal("expected error for invalid bit value")
	}
}

func TestAttachPushesCurrentWord(t *testing.T) {
	wire := NewWire(8)
	wire.SetWord(0x2A)
	listener := NewWire(8)
	wire.Attach(listener)
	if listener.Word() != 0x2A {
		t.Fatalf("Attach did not push current word: got %#x, want 0x2A", listener.Word())
	}
	wire.SetWord(0x7F)
	if listener.Word() != 0x7F {
		t.Fatalf("listener not updated after SetWord: got %#x, want 0x7F", listener.Word())
	}
}

func TestAttachFanOut(t *testing.T) {
	wire := NewWire(1)
	var listeners []*Wire
	for i := 0; i < 5; i++ {
		l := NewWire(1)
		wire.Attach(l)
		listeners = append(listeners, l)
	}
	wire.SetWord(1)
	for i, l := range listeners {
		if l.Word() != 1 {
			t.Fatalf("listener %d not updated", i)
		}
	}
}

func TestInputSubBusReadWrite(t *testing.T) {
	parent := NewWire(8)
	sub, err := NewSubBus(parent, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	parent.SetWord(0b11010100) // bits [2,5) = 0b101
	if sub.Word() != 0b101 {
		t.Fatalf("sub.Word() = %#b, want 0b101", sub.Word())
	}
	sub.SetWord(0b010)
	want := uint16(0b11001000)
	if parent.Word() != want {
		t.Fatalf("parent.Word() = %#b, want %#b (bits outside the slice must be preserved)", parent.Word(), want)
	}
}

func TestSubBusOutOfBoundsRejected(t *testing.T) {
	parent := NewWire(4)
	if _, err := NewSubBus(parent, 2, 4); err == nil {
		t.Fatal("expected out-of-bounds sub-bus to fail")
	}
	if _, err := NewSubBus(parent, -1, 2); err == nil {
		t.Fatal("expected negative offset to fail")
	}
}

func TestInputSubBusAttachForwardsToParent(t *testing.T) {
	parent := NewWire(8)
	sub, err := NewSubBus(parent, 0, 4)
	if err != nil {
		t.Fatal(err)
	}
	listener := NewWire(8)
	sub.Attach(listener)
	parent.SetWord(0xAB)
	if listener.Word() != 0xAB {
		t.Fatalf("listener attached via input sub-bus should observe parent's full word: got %#x", listener.Word())
	}
}

func TestOutSubBusFanOutOnlyOnChange(t *testing.T) {
	parent := NewWire(8)
	outA, err := NewOutSubBus(parent, 0, 4)
	if err != nil {
		t.Fatal(err)
	}
	listener := NewWire(4)
	outA.Attach(listener)

	parent.SetWord(0xF0) // low nibble unchanged (0)
	if listener.Word() != 0 {
		t.Fatalf("listener should still read 0, got %#x", listener.Word())
	}
	parent.SetWord(0xF3) // low nibble changes to 3
	if listener.Word() != 3 {
		t.Fatalf("listener should observe the new slice value 3, got %#x", listener.Word())
	}
}

func TestOutSubBusIndependentListenerLists(t *testing.T) {
	parent := NewWire(8)
	lo, err := NewOutSubBus(parent, 0, 4)
	if err != nil {
		t.Fatal(err)
	}
	hi, err := NewOutSubBus(parent, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	var loSeen, hiSeen uint16
	loListener := NewWire(4)
	hiListener := NewWire(4)
	lo.Attach(loListener)
	hi.Attach(hiListener)
	parent.SetWord(0x5C)
	loSeen, hiSeen = loListener.Word(), hiListener.Word()
	if loSeen != 0xC || hiSeen != 0x5 {
		t.Fatalf("lo=%#x hi=%#x, want lo=0xC hi=0x5", loSeen, hiSeen)
	}
}

func TestConstantIsImmutable(t *testing.T) {
	c := NewConstant(1)
	if c.Width() != 1 {
		t.Fatalf("Constant width = %d, want 1", c.Width())
	}
	c.SetWord(0)
	if c.Word() != 1 {
		t.Fatal("Constant value changed by SetWord")
	}
	if err := c.Toggle(0); err != nil {
		t.Fatal(err)
	}
	if c.Word() != 1 {
		t.Fatal("Constant value changed by Toggle")
	}
}

func TestConstantAttachPushesFixedValue(t *testing.T) {
	c := NewConstant(1)
	listener := NewWire(1)
	c.Attach(listener)
	if listener.Word() != 1 {
		t.Fatalf("listener of a true constant should read 1, got %d", listener.Word())
	}
}

