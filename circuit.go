// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

// A Circuit is a fully wired, mounted chip together with the Clock driving
// its sequential elements. It is the entry point used by the test harness
// and the command-line tools: build one with NewCircuit, drive it with
// Eval/Tick/Tock/Reset, and read/write its top-level pins with Pin.
type Circuit struct {
	top   Updater
	clock *Clock
	pins  map[string]Node
}

// NewCircuit mounts top as the top-level chip of a new Circuit. top is
// typically the result of calling a PartSpec's NewPartFn (or a Chip-built
// composite's) with an empty connection string, since a top-level chip's
// pins are driven directly by the harness rather than wired to another
// part.
func NewCircuit(top Part) (*Circuit, error) {
	c := &Circuit{clock: NewClock(), pins: make(map[string]Node)}
	s := newSocket(c)
	for _, n := range top.Inputs {
		s.m[n] = NewWire(top.Width(n))
	}
	for _, n := range top.Outputs {
		s.m[n] = NewWire(top.Width(n))
	}
	for _, n := range top.Inputs {
		c.pins[n] = s.m[n]
	}
	for _, n := range top.Outputs {
		c.pins[n] = s.m[n]
	}
	c.top = top.PartSpec.Mount(s)
	return c, nil
}

// netLookup is implemented by mounted composites to expose their internal
// nets by name, so that pin lookup can reach them.
type netLookup interface {
	net(name string) Node
}

// Pin returns the Node for one of the top chip's pins, searching its
// declared input pins, then its output pins, then (when the top chip is a
// composite) its internal nets. It fails with a pin-not-found error when
// name matches none of the three.
func (c *Circuit) Pin(name string) (Node, error) {
	if n, ok := c.pins[name]; ok {
		return n, nil
	}
	if l, ok := c.top.(netLookup); ok {
		if n := l.net(name); n != nil {
			return n, nil
		}
	}
	return nil, errPinNotFound("circuit", name)
}

// Clock returns the circuit's Clock.
func (c *Circuit) Clock() *Clock { return c.clock }

// Eval recomputes every output pin in the circuit from its current inputs.
// It does not advance the clock.
func (c *Circuit) Eval() { c.top.Eval() }

// Tick advances the clock's rising edge and invokes Tick on every clocked
// element reachable from the top chip, then evaluates the combinational
// logic that depends on the newly sampled state.
func (c *Circuit) Tick() {
	c.clock.Tick()
	if t, ok := c.top.(Ticker); ok {
		t.Tick()
	}
	c.top.Eval()
}

// Tock advances the clock's falling edge, invokes Tock to publish sampled
// state to output pins, then re-evaluates combinational logic.
func (c *Circuit) Tock() {
	c.clock.Tick()
	if t, ok := c.top.(Ticker); ok {
		t.Tock()
	}
	c.top.Eval()
}

// Reset sets the clock back to level low and tick count zero, clears every
// top-level pin to zero, and calls Reset on the top chip when it implements
// Resetter (a composite built by Chip clears its nets and resets its
// Resetter parts). It does not re-evaluate the circuit.
func (c *Circuit) Reset() {
	c.clock.Reset()
	for _, n := range c.pins {
		n.SetWord(0)
	}
	if r, ok := c.top.(Resetter); ok {
		r.Reset()
	}
}
