// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import "github.com/pkg/errors"

// endpoint identifies one side of a resolved wiring operation: either a
// named net of the host chip being built, a constant, or a specific pin of
// one of its parts.
type endpoint struct {
	isPart bool // true: part pin; false: host net or constant
	part   int
	pin    string // internal pin name (isPart) or net name (!isPart && !isConst)

	isConst  bool
	constVal int

	ranged bool
	start  int
	width  int
}

// wireOp is one resolved Attach operation: at mount time, src.Attach(dst)
// wires the source node (with an output sub-bus view applied if ranged) to
// the destination node (with an input sub-bus view applied if ranged).
type wireOp struct {
	src, dst endpoint
}

// chipDef is the static, validated wiring plan produced once by Chip. It is
// re-executed, allocating fresh Wires, every time the resulting PartSpec is
// mounted.
type chipDef struct {
	name           string
	inputs         []PinDecl
	outputs        []PinDecl
	widths         map[string]int // every net (declared + internal), by name
	declaredInput  map[string]bool
	declaredOutput map[string]bool
	parts          []Part
	plan           []wireOp
}

// Chip builds a new composite part named name, with the given input/output
// pin declarations (see ParseIOSpec for syntax), wired internally from
// parts. Each part's connections bind one of its own pins (by internal
// name) to a pin, bit range, or constant of the host's own interface, or to
// an internal net created implicitly by naming it in a connection; parts
// reach each other only through such shared nets.
//
// Internal net widths are inferred from the widest reference to that name
// across every connection; it is an error for a net to have width zero (a
// name referenced only as a bare, unranged destination of a part whose
// matching pin has width 0 cannot occur, since every declared pin has width
// at least 1).
func Chip(name string, inputs, outputs string, parts ...Part) (NewPartFn, error) {
	inDecls, err := ParseIOSpec(inputs)
	if err != nil {
		return nil, wrapErr(KindParse, err, "chip "+name+": inputs")
	}
	outDecls, err := ParseIOSpec(outputs)
	if err != nil {
		return nil, wrapErr(KindParse, err, "chip "+name+": outputs")
	}

	widths := make(map[string]int, len(inDecls)+len(outDecls))
	declaredIn := make(map[string]bool, len(inDecls))
	declaredOut := make(map[string]bool, len(outDecls))
	for _, d := range inDecls {
		widths[d.Name] = d.Width
		declaredIn[d.Name] = true
	}
	for _, d := range outDecls {
		if declaredIn[d.Name] {
			return nil, newErr(KindParse, "chip "+name+": "+d.Name+" declared as both input and output")
		}
		widths[d.Name] = d.Width
		declaredOut[d.Name] = true
	}

	if len(parts) == 0 {
		return nil, newErr(KindParse, "chip "+name+": no parts")
	}

	// driven tracks, per net name, which bits already have a producer, to
	// detect conflicting drivers statically.
	driven := make(map[string]uint32)

	// Pass 1: infer every net's width from the widest reference to it.
	for _, p := range parts {
		for _, c := range p.Conns {
			if c.Host.Const {
				continue
			}
			internal := p.internalName(c.Part.Name)
			isIn, isOut := p.isInput(internal), p.isOutput(internal)
			if !isIn && !isOut {
				return nil, errPinNotFound(p.Name, c.Part.Name)
			}
			partWidth := p.Width(internal)
			need := partWidth
			if c.Part.HasRange {
				need = c.Part.End - c.Part.Start + 1
			}
			if c.Host.HasRange {
				need = c.Host.End + 1
			}
			if w, ok := widths[c.Host.Name]; ok {
				if declaredIn[c.Host.Name] || declaredOut[c.Host.Name] {
					if c.Host.HasRange {
						if need > w {
							return nil, newErr(KindHardware, "chip "+name+": range on "+c.Host.Name+" exceeds its declared width")
						}
					} else if need != w {
						return nil, errWidthMismatch(p.Name+"."+c.Part.Name, partWidth, c.Host.Name, w)
					}
				} else if need > w {
					widths[c.Host.Name] = need
				}
			} else {
				widths[c.Host.Name] = need
			}
		}
	}

	plan := make([]wireOp, 0, 2*len(parts))

	for pi, p := range parts {
		for _, c := range p.Conns {
			internal := p.internalName(c.Part.Name)
			isIn := p.isInput(internal)
			partWidth := p.Width(internal)
			partEp := endpoint{isPart: true, part: pi, pin: internal}
			if c.Part.HasRange {
				if c.Part.End >= partWidth {
					return nil, newErr(KindHardware, "chip "+name+": range on "+p.Name+"."+c.Part.Name+" exceeds its width")
				}
				partEp.ranged, partEp.start, partEp.width = true, c.Part.Start, c.Part.End-c.Part.Start+1
			} else {
				partEp.width = partWidth
			}

			var hostEp endpoint
			if c.Host.Const {
				hostEp = endpoint{isConst: true, constVal: c.Host.ConstVal, width: 1}
			} else {
				w := widths[c.Host.Name]
				hostEp = endpoint{pin: c.Host.Name, width: w}
				if c.Host.HasRange {
					hostEp.ranged, hostEp.start, hostEp.width = true, c.Host.Start, c.Host.End-c.Host.Start+1
				}
			}

			if partEp.width != hostEp.width {
				return nil, errWidthMismatch(p.Name+"."+c.Part.Name, partEp.width, refName(c.Host), hostEp.width)
			}

			var op wireOp
			if isIn {
				// host (or constant) drives the part's input pin.
				op = wireOp{src: hostEp, dst: partEp}
			} else {
				if hostEp.isConst {
					return nil, newErr(KindHardware, "chip "+name+": cannot connect "+p.Name+"."+c.Part.Name+" output to a constant")
				}
				if declaredIn[hostEp.pin] {
					return nil, newErr(KindHardware, "chip "+name+": cannot drive chip input "+hostEp.pin+" from "+p.Name+"."+c.Part.Name)
				}
				bits := bitRange(hostEp)
				if driven[hostEp.pin]&bits != 0 {
					return nil, newErr(KindHardware, "chip "+name+": "+hostEp.pin+" driven by more than one output")
				}
				driven[hostEp.pin] |= bits
				op = wireOp{src: partEp, dst: hostEp}
			}
			plan = append(plan, op)
		}
	}

	def := &chipDef{
		name: name, inputs: inDecls, outputs: outDecls, widths: widths,
		declaredInput: declaredIn, declaredOutput: declaredOut,
		parts: parts, plan: plan,
	}

	spec := &PartSpec{
		Name:    name,
		Inputs:  declNames(inDecls),
		Outputs: declNames(outDecls),
		Widths:  widths,
		Mount:   def.mount,
	}
	return spec.NewPart, nil
}

func declNames(decls []PinDecl) []string {
	names := make([]string, len(decls))
	for i, d := range decls {
		names[i] = d.Name
	}
	return names
}

func refName(r PinRef) string {
	if r.Const {
		if r.ConstVal != 0 {
			return "true"
		}
		return "false"
	}
	return r.Name
}

func bitRange(e endpoint) uint32 {
	if !e.ranged {
		return uint32(mask(e.width))
	}
	return uint32(mask(e.width)) << uint(e.start)
}

// compositeUpdater is the Updater/Ticker/Resetter for a mounted composite
// chip: it owns the per-instance net Wires and cascades Eval/Tick/Tock/Reset
// to its mounted parts in PARTS declaration order.
type compositeUpdater struct {
	subs     []Updater
	tickers  []Ticker
	resetter []Resetter
	nets     []*Wire         // every net Wire of this instance (declared + internal)
	internal map[string]Node // nets this instance allocated (not declared pins), by name
	tracked  []*outSubBus
}

// net returns the named internal net of this composite, or nil. It is the
// third tier of Circuit.Pin's lookup, after declared inputs and outputs.
func (c *compositeUpdater) net(name string) Node { return c.internal[name] }

func (c *compositeUpdater) Eval() {
	for _, t := range c.tracked {
		t.refresh()
	}
	for _, u := range c.subs {
		u.Eval()
	}
	for _, t := range c.tracked {
		t.refresh()
	}
}

func (c *compositeUpdater) Tick() {
	for _, t := range c.tickers {
		t.Tick()
	}
}

func (c *compositeUpdater) Tock() {
	for _, t := range c.tickers {
		t.Tock()
	}
}

func (c *compositeUpdater) Reset() {
	for _, w := range c.nets {
		w.SetWord(0)
	}
	for _, r := range c.resetter {
		r.Reset()
	}
}

func (d *chipDef) mount(s *Socket) Updater {
	nets := make(map[string]Node, len(d.widths))
	c := &compositeUpdater{internal: make(map[string]Node)}
	for name, w := range d.widths {
		if d.declaredInput[name] || d.declaredOutput[name] {
			n := s.Wire(name)
			if n == nil {
				panic(errors.Errorf("chip %s: outer socket did not provide pin %q", d.name, name))
			}
			nets[name] = n
			if wire, ok := n.(*Wire); ok {
				c.nets = append(c.nets, wire)
			}
			continue
		}
		wr := NewWire(w)
		nets[name] = wr
		c.nets = append(c.nets, wr)
		c.internal[name] = wr
	}

	partSockets := make([]*Socket, len(d.parts))
	for i, p := range d.parts {
		sp := newSocket(s.c)
		for _, n := range p.Inputs {
			sp.m[n] = NewWire(p.Width(n))
		}
		for _, n := range p.Outputs {
			sp.m[n] = NewWire(p.Width(n))
		}
		partSockets[i] = sp
	}

	for _, op := range d.plan {
		src, srcSub := resolveEndpoint(op.src, nets, partSockets, true)
		dst, _ := resolveEndpoint(op.dst, nets, partSockets, false)
		if srcSub != nil {
			c.tracked = append(c.tracked, srcSub)
		}
		src.Attach(dst)
	}

	for i, p := range d.parts {
		u := p.PartSpec.Mount(partSockets[i])
		c.subs = append(c.subs, u)
		if t, ok := u.(Ticker); ok {
			c.tickers = append(c.tickers, t)
		}
		if r, ok := u.(Resetter); ok {
			c.resetter = append(c.resetter, r)
		}
	}

	return c
}

// resolveEndpoint returns the Node for e, wrapping it in a sub-bus view if
// ranged. asSource selects the wrapper flavor for ranged host/net
// references: output sub-bus when e is the data source, input sub-bus when
// it is the destination (per the wiring engine's propagation contract).
// The second return value is non-nil exactly when an output sub-bus view
// was created, so the caller can register it to be refreshed before and
// after each Eval; a refresh pushes to the view's listeners only when its
// slice value has changed, so unchanged values are not reasserted.
func resolveEndpoint(e endpoint, nets map[string]Node, socks []*Socket, asSource bool) (Node, *outSubBus) {
	if e.isConst {
		return NewConstant(e.constVal), nil
	}
	var base Node
	if e.isPart {
		base = socks[e.part].Wire(e.pin)
	} else {
		base = nets[e.pin]
	}
	if !e.ranged {
		return base, nil
	}
	if asSource {
		n, err := NewOutSubBus(base, e.start, e.width)
		if err != nil {
			panic(err)
		}
		return n, n.(*outSubBus)
	}
	n, err := NewSubBus(base, e.start, e.width)
	if err != nil {
		panic(err)
	}
	return n, nil
}
