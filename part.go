// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

// Updater is the interface for components in a circuit. Eval is called
// every time a chip's output pins must be recomputed from its current
// input pins.
type Updater interface {
	Eval()
}

// Ticker is implemented by clocked components: Tick samples inputs and
// control signals on the clock's rising edge and updates internal state;
// Tock publishes that state to output pins on the falling edge. Neither
// hook makes the new state visible through the other.
type Ticker interface {
	Updater
	Tick()
	Tock()
}

// Resetter is implemented by components that support reset: clear every
// input/output/internal pin to zero, then reset recursively. Reset returns
// no error. The hwlib built-ins do not implement Resetter, so a reset
// leaves their stored state (flip-flops, registers, memories) unchanged.
type Resetter interface {
	Reset()
}

// A MountFn mounts a part into socket s, returning the Updater that
// implements the part's behavior. Mount functions query the socket to get
// the Nodes wired to a part's pins and close over them.
//
// A Not gate could be implemented like this:
//
//	notSpec := &hwsim.PartSpec{
//		Name:    "Not",
//		Inputs:  []string{"in"},
//		Outputs: []string{"out"},
//		Mount: func(s *hwsim.Socket) hwsim.Updater {
//			in, out := s.Wire("in"), s.Wire("out")
//			return hwsim.UpdaterFn(func() { out.SetWord(^in.Word() & 1) })
//		}}
type MountFn func(s *Socket) Updater

// UpdaterFn adapts a plain function to the Updater interface.
type UpdaterFn func()

// Eval implements Updater.
func (f UpdaterFn) Eval() { f() }

// A PartSpec is a part's blueprint: its name, pin interface, and Mount
// function. Built-ins and composites (the result of Chip) are both
// represented as a PartSpec.
type PartSpec struct {
	// Name is the part's name, used in diagnostics.
	Name string
	// Inputs lists the part's input pin names. Must be distinct.
	Inputs []string
	// Outputs lists the part's output pin names. Must be distinct, and
	// distinct from Inputs.
	Outputs []string
	// Widths gives the declared bit width of each input/output pin. A pin
	// absent from this map defaults to width 1.
	Widths map[string]int
	// Pinout maps a pin's public name (as used in connection strings) to
	// its internal name (as used inside Mount/Socket). A nil Pinout is
	// equivalent to the identity mapping. Most custom parts should leave
	// this nil; it exists so that generic builders (e.g. a parametrized
	// N-bit gate) can reuse one Mount implementation under several public
	// pin names.
	Pinout map[string]string
	// Mount builds an instance of this part.
	Mount MountFn
}

// Width returns the declared width of pin, defaulting to 1.
func (p *PartSpec) Width(pin string) int {
	if p.Widths != nil {
		if w, ok := p.Widths[pin]; ok {
			return w
		}
	}
	return 1
}

func (p *PartSpec) isInput(name string) bool {
	for _, n := range p.Inputs {
		if n == name {
			return true
		}
	}
	return false
}

func (p *PartSpec) isOutput(name string) bool {
	for _, n := range p.Outputs {
		if n == name {
			return true
		}
	}
	return false
}

func (p *PartSpec) internalName(pub string) string {
	if p.Pinout == nil {
		return pub
	}
	if n, ok := p.Pinout[pub]; ok {
		return n
	}
	return pub
}

// NewPart wraps p with the given connections into a Part. It panics if the
// connection string is malformed: NewPart is meant to be called while
// building a static part library in Go source, where a malformed literal is
// a programming error, not a runtime condition to recover from.
func (p *PartSpec) NewPart(connections string) Part {
	conns, err := ParseConnections(connections)
	if err != nil {
		panic(err)
	}
	return Part{p, conns}
}

// A NewPartFn takes a connection configuration and returns a new Part. See
// ParseConnections for the connection-string syntax.
type NewPartFn func(connections string) Part

// A Part wraps a part specification together with its connections within a
// host chip.
type Part struct {
	*PartSpec
	Conns []Connection
}

// A Socket maps a part instance's internal pin names to the Nodes wired to
// them by the host chip. Mount functions use a Socket's Wire method to
// obtain the Node for each of their pins.
type Socket struct {
	m map[string]Node
	c *Circuit
}

func newSocket(c *Circuit) *Socket {
	return &Socket{m: make(map[string]Node), c: c}
}

// Wire returns the Node assigned to the given internal pin name, or nil if
// none was assigned (only possible for unused optional pins).
func (s *Socket) Wire(name string) Node {
	return s.m[name]
}
