// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import "testing"

type xorGate struct {
	A   Node `hw:"in"`
	B   Node `hw:"in"`
	Out Node `hw:"out"`
}

func (g *xorGate) Eval() { g.Out.SetWord((g.A.Word() ^ g.B.Word()) & 1) }

func TestMakePartTruthTable(t *testing.T) {
	newPart := MakePart(&xorGate{}).NewPart
	c, err := NewCircuit(newPart(""))
	if err != nil {
		t.Fatal(err)
	}
	a, _ := c.Pin("a")
	b, _ := c.Pin("b")
	out, _ := c.Pin("out")
	for _, tc := range []struct{ a, b, want uint16 }{
		{0, 0, 0}, {0, 1, 1}, {1, 0, 1}, {1, 1, 0},
	} {
		a.SetWord(tc.a)
		b.SetWord(tc.b)
		c.Eval()
		if out.Word() != tc.want {
			t.Errorf("xor(%d, %d) = %d, want %d", tc.a, tc.b, out.Word(), tc.want)
		}
	}
}

type wideAnd struct {
	X   Node `hw:"in,a,16"`
	Y   Node `hw:"in,b,16"`
	Out Node `hw:"out,out,16"`
}

func (g *wideAnd) Eval() { g.Out.SetWord(g.X.Word() & g.Y.Word()) }

func TestMakePartBusWidthAndRenaming(t *testing.T) {
	spec := MakePart(&wideAnd{})
	if got := spec.Width("a"); got != 16 {
		t.Fatalf("pin a width = %d, want 16", got)
	}
	c, err := NewCircuit(spec.NewPart(""))
	if err != nil {
		t.Fatal(err)
	}
	a, _ := c.Pin("a")
	b, _ := c.Pin("b")
	a.SetWord(0xF0F0)
	b.SetWord(0xFF00)
	c.Eval()
	out, _ := c.Pin("out")
	if out.Word() != 0xF000 {
		t.Fatalf("out = %#x, want 0xF000", out.Word())
	}
}

type latch struct {
	In  Node `hw:"in"`
	Out Node `hw:"out"`
	s   uint16
	cur uint16
}

func (l *latch) Eval() { l.Out.SetWord(l.cur) }
func (l *latch) Tick() { l.s = l.In.Word() & 1 }
func (l *latch) Tock() { l.cur = l.s; l.Out.SetWord(l.cur) }

func TestMakePartClockedDispatch(t *testing.T) {
	// A struct implementing Ticker must be driven through the clock phases
	// when mounted inside a composite.
	newPart, err := Chip("WRAP", "in", "out", MakePart(&latch{}).NewPart("in=in, out=out"))
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewCircuit(newPart(""))
	if err != nil {
		t.Fatal(err)
	}
	in, _ := c.Pin("in")
	out, _ := c.Pin("out")
	in.SetWord(1)
	c.Eval()
	if out.Word() != 0 {
		t.Fatalf("out = %d before any clock cycle, want 0", out.Word())
	}
	c.Tick()
	if out.Word() != 0 {
		t.Fatalf("out = %d between tick and tock, want 0", out.Word())
	}
	c.Tock()
	if out.Word() != 1 {
		t.Fatalf("out = %d after tick+tock, want 1", out.Word())
	}
}
