// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import "github.com/pkg/errors"

// MaxWidth is the largest width a Node can have.
const MaxWidth = 16

// A Node is a signal node: a wire of fixed width W in [1,16] holding an
// unsigned bit-vector state, interpreted little-endian (bit 0 is least
// significant). Writes are unconditionally applied to local state and then
// pushed to every downstream listener; writes are idempotent and
// last-writer-wins — the engine never detects conflicting drivers.
//
// Three concrete variants implement Node: Wire (a full bus, owning its
// storage and listener list), a sub-bus view over a parent bus (input or
// output flavor, see NewSubBus/NewOutSubBus), and a Constant.
type Node interface {
	// Width returns the node's bit width, fixed at construction.
	Width() int
	// Word returns the node's current W-bit value.
	Word() uint16
	// SetWord sets local state to v mod 2^W, then pushes to every listener.
	SetWord(v uint16)
	// Bit returns bit i (0 or 1). Fails if i >= Width().
	Bit(i int) (int, error)
	// SetBit sets bit i, then pushes bit i to every listener at the same
	// bit position. Fails if i >= Width() or b is not 0 or 1.
	SetBit(i int, b int) error
	// Toggle is equivalent to SetBit(i, 1-Bit(i)).
	Toggle(i int) error
	// Attach registers listener as an observer of this node: listener is
	// appended to the listener list and the current word is immediately
	// written into it, so a late-wired listener never reads stale state.
	Attach(listener Node)
}

// refresher is implemented by nodes whose value is derived from another node
// (sub-bus views) so that propagation recomputes the projected value instead
// of blindly copying the upstream word.
type refresher interface {
	refresh()
}

func mask(w int) uint16 {
	if w >= MaxWidth {
		return 0xFFFF
	}
	return uint16(1)<<uint(w) - 1
}

func checkBit(i, w int) error {
	if i < 0 || i >= w {
		return newErr(KindHardware, errors.Errorf("bit index %d out of range [0,%d)", i, w).Error())
	}
	return nil
}

func checkBitValue(b int) error {
	if b != 0 && b != 1 {
		return newErr(KindHardware, errors.Errorf("invalid bit value %d", b).Error())
	}
	return nil
}

// push writes v (already masked to the source's width) into every listener.
// Listeners that derive their value from the source (refresher) recompute;
// plain listeners mirror the word, masked to their own width.
func push(listeners []Node, v uint16) {
	for _, l := range listeners {
		if r, ok := l.(refresher); ok {
			r.refresh()
		} else {
			l.SetWord(v)
		}
	}
}

// attachTo appends listener to *listeners and immediately writes cur into it,
// per the Attach contract shared by Wire and outSubBus.
func attachTo(listeners *[]Node, listener Node, cur uint16) {
	*listeners = append(*listeners, listener)
	if r, ok := listener.(refresher); ok {
		r.refresh()
	} else {
		listener.SetWord(cur)
	}
}

// A Wire is a full bus: it owns its bit-vector storage and its listener
// list. It is the root of every signal net built by the wiring engine.
type Wire struct {
	width     int
	word      uint16
	listeners []Node
}

// NewWire returns a new full bus of the given width, initialized to zero.
func NewWire(width int) *Wire {
	if width < 1 || width > MaxWidth {
		panic(errors.Errorf("invalid wire width %d", width))
	}
	return &Wire{width: width}
}

// Width implements Node.
func (w *Wire) Width() int { return w.width }

// Word implements Node.
func (w *Wire) Word() uint16 { return w.word }

// SetWord implements Node.
func (w *Wire) SetWord(v uint16) {
	w.word = v & mask(w.width)
	push(w.listeners, w.word)
}

// Bit implements Node.
func (w *Wire) Bit(i int) (int, error) {
	if err := checkBit(i, w.width); err != nil {
		return 0, err
	}
	return int((w.word >> uint(i)) & 1), nil
}

// SetBit implements Node.
func (w *Wire) SetBit(i int, b int) error {
	if err := checkBit(i, w.width); err != nil {
		return err
	}
	if err := checkBitValue(b); err != nil {
		return err
	}
	if b != 0 {
		w.word |= 1 << uint(i)
	} else {
		w.word &^= 1 << uint(i)
	}
	push(w.listeners, w.word)
	return nil
}

// Toggle implements Node.
func (w *Wire) Toggle(i int) error {
	b, err := w.Bit(i)
	if err != nil {
		return err
	}
	return w.SetBit(i, 1-b)
}

// Attach implements Node.
func (w *Wire) Attach(listener Node) {
	attachTo(&w.listeners, listener, w.word)
}

// subBus is an input sub-bus: a view over a parent bus at offset s, width w.
// Writes are rewritten into the parent at bits [s, s+w), preserving other
// bits. Reads project the parent's bits [s, s+w) down to positions [0, w).
// Listener registration forwards to the parent; the offset is validated
// against the parent's width at construction.
type subBus struct {
	parent      Node
	offset, wid int
}

// NewSubBus returns an input sub-bus view over parent, covering bits
// [offset, offset+width). It fails if the range does not lie within parent's
// width.
func NewSubBus(parent Node, offset, width int) (Node, error) {
	if width < 1 || offset < 0 || offset+width > parent.Width() {
		return nil, newErr(KindHardware, errors.Errorf(
			"sub-bus range [%d,%d) out of bounds for %d-bit parent", offset, offset+width, parent.Width()).Error())
	}
	return &subBus{parent: parent, offset: offset, wid: width}, nil
}

func (b *subBus) Width() int { return b.wid }

func (b *subBus) Word() uint16 {
	return (b.parent.Word() >> uint(b.offset)) & mask(b.wid)
}

func (b *subBus) SetWord(v uint16) {
	v &= mask(b.wid)
	m := mask(b.wid)
	full := b.parent.Word()
	full = (full &^ (m << uint(b.offset))) | (v << uint(b.offset))
	b.parent.SetWord(full)
}

func (b *subBus) Bit(i int) (int, error) {
	if err := checkBit(i, b.wid); err != nil {
		return 0, err
	}
	return b.parent.Bit(b.offset + i)
}

func (b *subBus) SetBit(i int, v int) error {
	if err := checkBit(i, b.wid); err != nil {
		return err
	}
	return b.parent.SetBit(b.offset+i, v)
}

func (b *subBus) Toggle(i int) error {
	if err := checkBit(i, b.wid); err != nil {
		return err
	}
	return b.parent.Toggle(b.offset + i)
}

func (b *subBus) Attach(listener Node) {
	b.parent.Attach(listener)
}

// outSubBus is an output sub-bus: same read/write projection as subBus, but
// it maintains its own listener list and re-pushes to it whenever the
// slice's observable value changes as a side effect of a parent write. This
// is the mechanism by which a part's full-width output pin fans out to
// multiple narrower destinations. outSubBus registers itself as a listener
// of its parent at construction so that parent writes trigger refresh().
type outSubBus struct {
	parent      Node
	offset, wid int
	last        uint16
	listeners   []Node
}

// NewOutSubBus returns an output sub-bus view over parent, covering bits
// [offset, offset+width). It fails under the same conditions as NewSubBus.
func NewOutSubBus(parent Node, offset, width int) (Node, error) {
	if width < 1 || offset < 0 || offset+width > parent.Width() {
		return nil, newErr(KindHardware, errors.Errorf(
			"sub-bus range [%d,%d) out of bounds for %d-bit parent", offset, offset+width, parent.Width()).Error())
	}
	o := &outSubBus{parent: parent, offset: offset, wid: width}
	o.last = o.projected()
	parent.Attach(o)
	return o, nil
}

func (o *outSubBus) projected() uint16 {
	return (o.parent.Word() >> uint(o.offset)) & mask(o.wid)
}

// refresh implements refresher: called by the parent after one of its
// writes. Recomputes the projected slice and, if it changed, re-pushes to
// this sub-bus's own listeners.
func (o *outSubBus) refresh() {
	v := o.projected()
	if v == o.last {
		return
	}
	o.last = v
	push(o.listeners, v)
}

func (o *outSubBus) Width() int { return o.wid }

func (o *outSubBus) Word() uint16 { return o.projected() }

func (o *outSubBus) SetWord(v uint16) {
	v &= mask(o.wid)
	m := mask(o.wid)
	full := o.parent.Word()
	full = (full &^ (m << uint(o.offset))) | (v << uint(o.offset))
	o.parent.SetWord(full)
}

func (o *outSubBus) Bit(i int) (int, error) {
	if err := checkBit(i, o.wid); err != nil {
		return 0, err
	}
	return o.parent.Bit(o.offset + i)
}

func (o *outSubBus) SetBit(i int, v int) error {
	if err := checkBit(i, o.wid); err != nil {
		return err
	}
	return o.parent.SetBit(o.offset+i, v)
}

func (o *outSubBus) Toggle(i int) error {
	if err := checkBit(i, o.wid); err != nil {
		return err
	}
	return o.parent.Toggle(o.offset + i)
}

func (o *outSubBus) Attach(listener Node) {
	attachTo(&o.listeners, listener, o.projected())
}

// Constant is a fixed-value, width-1 node. Writes and toggles are silently
// dropped; it provides Word/Bit/Attach like any other node.
type Constant struct {
	value uint16
}

// NewConstant returns a width-1 node permanently fixed to v (0 or 1).
func NewConstant(v int) *Constant {
	if v != 0 {
		v = 1
	}
	return &Constant{value: uint16(v)}
}

func (c *Constant) Width() int     { return 1 }
func (c *Constant) Word() uint16   { return c.value }
func (c *Constant) SetWord(uint16) {}

func (c *Constant) Bit(i int) (int, error) {
	if err := checkBit(i, 1); err != nil {
		return 0, err
	}
	return int(c.value), nil
}

func (c *Constant) SetBit(i int, b int) error {
	if err := checkBit(i, 1); err != nil {
		return err
	}
	return nil
}

func (c *Constant) Toggle(i int) error {
	if err := checkBit(i, 1); err != nil {
		return err
	}
	return nil
}

// Attach implements Node; constants have no listener list since their value
// never changes after the initial write, but a newly attached listener must
// still observe the constant's fixed value immediately.
func (c *Constant) Attach(listener Node) {
	listener.SetWord(c.value)
}
