// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"strconv"
	"strings"
)

// A PinDecl is one declared pin name with its bit width, as parsed from an
// IO spec string by ParseIOSpec.
type PinDecl struct {
	Name  string
	Width int
}

// ParseIOSpec parses a comma-separated pin declaration list such as
// "a, b, sel[2], out[4]". A bare name declares a 1-bit pin; name[n]
// declares an n-bit pin. Names must be non-empty and distinct within spec.
func ParseIOSpec(spec string) ([]PinDecl, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}
	fields := strings.Split(spec, ",")
	decls := make([]PinDecl, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			return nil, newErr(KindParse, "empty pin name in IO spec "+strconv.Quote(spec))
		}
		name, width := f, 1
		if i := strings.IndexByte(f, '['); i >= 0 {
			if !strings.HasSuffix(f, "]") {
				return nil, newErr(KindParse, "malformed pin width in "+strconv.Quote(f))
			}
			name = strings.TrimSpace(f[:i])
			n, err := strconv.Atoi(strings.TrimSpace(f[i+1 : len(f)-1]))
			if err != nil || n < 1 || n > MaxWidth {
				return nil, newErr(KindParse, "invalid pin width in "+strconv.Quote(f))
			}
			width = n
		}
		if name == "" {
			return nil, newErr(KindParse, "empty pin name in "+strconv.Quote(f))
		}
		if seen[name] {
			return nil, newErr(KindParse, "duplicate pin name "+strconv.Quote(name))
		}
		seen[name] = true
		decls = append(decls, PinDecl{Name: name, Width: width})
	}
	return decls, nil
}

// A PinRef is one side of a connection: either a named pin reference,
// optionally qualified with a bit range or single bit index, or a fixed
// boolean constant.
type PinRef struct {
	Name     string
	HasRange bool
	Start    int // inclusive
	End      int // inclusive
	Const    bool
	ConstVal int
}

// Width reports the number of bits this reference spans when declaredWidth
// is the width of the pin it names (ignored for constants).
func (r PinRef) Width(declaredWidth int) int {
	if r.Const {
		return 1
	}
	if r.HasRange {
		return r.End - r.Start + 1
	}
	return declaredWidth
}

// A Connection binds one pin of a part (Part side) to one pin, bit range,
// or constant of the host chip (Host side).
type Connection struct {
	Part PinRef
	Host PinRef
}

// ParseConnections parses a comma-separated list of part-pin=host-ref
// bindings, e.g. "a=in[0..7], b=w1, out=sum, carry=true". Whitespace around
// tokens is ignored. Ranges are written name[lo..hi] (inclusive) or name[i]
// for a single bit; ranges are auto-normalized so name[hi..lo] with hi<lo is
// accepted and treated identically to name[lo..hi].
func ParseConnections(s string) ([]Connection, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	fields := splitTopLevel(s, ',')
	conns := make([]Connection, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		eq := strings.IndexByte(f, '=')
		if eq < 0 {
			return nil, newErr(KindParse, "malformed connection "+strconv.Quote(f)+": missing '='")
		}
		lhs, rhs := strings.TrimSpace(f[:eq]), strings.TrimSpace(f[eq+1:])
		part, err := parsePinRef(lhs)
		if err != nil {
			return nil, err
		}
		if part.Const {
			return nil, newErr(KindParse, "part-side reference cannot be a constant in "+strconv.Quote(f))
		}
		host, err := parsePinRef(rhs)
		if err != nil {
			return nil, err
		}
		conns = append(conns, Connection{Part: part, Host: host})
	}
	return conns, nil
}

func splitTopLevel(s string, sep byte) []string {
	var out []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		case sep:
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

func parsePinRef(tok string) (PinRef, error) {
	switch tok {
	case "true":
		return PinRef{Const: true, ConstVal: 1}, nil
	case "false":
		return PinRef{Const: true, ConstVal: 0}, nil
	}
	i := strings.IndexByte(tok, '[')
	if i < 0 {
		if tok == "" {
			return PinRef{}, newErr(KindParse, "empty pin reference")
		}
		return PinRef{Name: tok}, nil
	}
	if !strings.HasSuffix(tok, "]") {
		return PinRef{}, newErr(KindParse, "malformed bit range in "+strconv.Quote(tok))
	}
	name := strings.TrimSpace(tok[:i])
	if name == "" {
		return PinRef{}, newErr(KindParse, "empty pin name in "+strconv.Quote(tok))
	}
	rng := strings.TrimSpace(tok[i+1 : len(tok)-1])
	if dot := strings.Index(rng, ".."); dot >= 0 {
		lo, err1 := strconv.Atoi(strings.TrimSpace(rng[:dot]))
		hi, err2 := strconv.Atoi(strings.TrimSpace(rng[dot+2:]))
		if err1 != nil || err2 != nil || lo < 0 || hi < 0 {
			return PinRef{}, newErr(KindParse, "invalid bit range in "+strconv.Quote(tok))
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		return PinRef{Name: name, HasRange: true, Start: lo, End: hi}, nil
	}
	bit, err := strconv.Atoi(rng)
	if err != nil || bit < 0 {
		return PinRef{}, newErr(KindParse, "invalid bit index in "+strconv.Quote(tok))
	}
	return PinRef{Name: name, HasRange: true, Start: bit, End: bit}, nil
}
