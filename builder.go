// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import "strconv"

// Registry maps built-in chip names to their constructors. The core ships
// no built-ins of its own (see hwlib); callers assemble a Registry from
// whichever built-in library they need and pass it to Build.
type Registry map[string]NewPartFn

// Builder turns a set of parsed HDL chip definitions into buildable parts,
// recursively resolving PARTS entries against either the built-in registry
// or another definition in the same set, memoizing each chip name's result.
type Builder struct {
	defs  map[string]*ChipDef
	reg   Registry
	built map[string]NewPartFn
	// building tracks names currently on the call stack, to turn an
	// accidental self-referential composite into a hardware error instead
	// of infinite recursion.
	building map[string]bool
}

// NewBuilder returns a Builder over defs (by chip name) and the built-in
// registry reg.
func NewBuilder(defs []*ChipDef, reg Registry) *Builder {
	m := make(map[string]*ChipDef, len(defs))
	for _, d := range defs {
		m[d.Name] = d
	}
	return &Builder{defs: m, reg: reg, built: make(map[string]NewPartFn), building: make(map[string]bool)}
}

// Build resolves chip name to a NewPartFn: a built-in from the registry, or
// a composite recursively assembled from its ChipDef.
func (b *Builder) Build(name string) (NewPartFn, error) {
	if fn, ok := b.built[name]; ok {
		return fn, nil
	}
	if fn, ok := b.reg[name]; ok {
		b.built[name] = fn
		return fn, nil
	}
	def, ok := b.defs[name]
	if !ok {
		return nil, newErr(KindHardware, "unknown built-in or chip definition "+strconv.Quote(name))
	}
	if def.IsBuiltin {
		return nil, newErr(KindHardware, "unrecognized builtin "+strconv.Quote(name))
	}
	if b.building[name] {
		return nil, newErr(KindHardware, "chip "+strconv.Quote(name)+" is defined in terms of itself")
	}
	b.building[name] = true
	defer delete(b.building, name)

	parts := make([]Part, 0, len(def.Parts))
	for _, ap := range def.Parts {
		newPart, err := b.Build(ap.Name)
		if err != nil {
			return nil, wrapErr(KindHardware, err, "chip "+name+": part "+ap.Name)
		}
		conns, err := astConns(ap.Conns)
		if err != nil {
			return nil, wrapErr(KindParse, err, "chip "+name+": part "+ap.Name)
		}
		part := newPart("")
		part.Conns = conns
		parts = append(parts, part)
	}

	fn, err := Chip(name, ioSpecString(def.Inputs), ioSpecString(def.Outputs), parts...)
	if err != nil {
		return nil, err
	}
	b.built[name] = fn
	return fn, nil
}

// ioSpecString renders pin declarations back into ParseIOSpec syntax, so
// Build can reuse Chip's own spec parser instead of a second code path.
func ioSpecString(decls []ASTPinDecl) string {
	s := ""
	for i, d := range decls {
		if i > 0 {
			s += ", "
		}
		s += d.Name
		if d.Width > 1 {
			s += "[" + strconv.Itoa(d.Width) + "]"
		}
	}
	return s
}

func astConns(wires []ASTWire) ([]Connection, error) {
	conns := make([]Connection, 0, len(wires))
	for _, w := range wires {
		if w.From.IsConst {
			return nil, newErr(KindParse, "part-side reference cannot be a constant")
		}
		part, err := astSide(w.From)
		if err != nil {
			return nil, err
		}
		host, err := astSide(w.To)
		if err != nil {
			return nil, err
		}
		conns = append(conns, Connection{Part: part, Host: host})
	}
	return conns, nil
}

func astSide(s ASTWireSide) (PinRef, error) {
	if s.IsConst {
		v := 0
		if s.Const {
			v = 1
		}
		return PinRef{Const: true, ConstVal: v}, nil
	}
	if s.Pin == "" {
		return PinRef{}, newErr(KindParse, "empty pin reference")
	}
	r := PinRef{Name: s.Pin}
	if s.HasRange {
		lo, hi := s.Range.Start, s.Range.End
		if lo > hi {
			lo, hi = hi, lo
		}
		r.HasRange, r.Start, r.End = true, lo, hi
	}
	return r, nil
}
