// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var nodeType = reflect.TypeOf((*Node)(nil)).Elem()

// MakePart wraps an Updater implementation into a custom part's PartSpec.
// Pins are identified by struct field tags.
//
// The field tag must be `hw:"in"` or `hw:"out"` to declare input and output
// pins; tagged fields must have type Node. By default the pin name is the
// field name in lowercase; a specific name can be forced by adding it in the
// tag (`hw:"in,pin_name"`), and a bus width greater than 1 by adding it as a
// third element (`hw:"in,data,16"`).
//
// At mount time a fresh instance of the struct is allocated, its tagged
// fields are populated with the Nodes wired to the matching pins, and the
// instance itself becomes the mounted Updater. A struct that additionally
// implements Ticker takes part in the clock phases like a clocked built-in,
// and one that implements Resetter takes part in reset cascades.
//
// MakePart panics on malformed tags or field types: like NewPart, it is
// meant to be called while assembling a static part library, where such a
// mistake is a programming error.
func MakePart(u Updater) *PartSpec {
	typ := reflect.TypeOf(u)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if k := typ.Kind(); k != reflect.Struct {
		panic(errors.Errorf("unsupported type %q for %q", k, typ.Name()))
	}

	sp := &PartSpec{Name: typ.Name(), Widths: make(map[string]int)}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("hw")
		if !ok {
			continue
		}
		isInput, pin, width := parseHWTag(typ.Name(), f.Name, tag)
		if f.Type != nodeType {
			panic(errors.Errorf("unsupported type %q for field %q in %q", f.Type, f.Name, typ.Name()))
		}
		if isInput {
			sp.Inputs = append(sp.Inputs, pin)
		} else {
			sp.Outputs = append(sp.Outputs, pin)
		}
		if width > 1 {
			sp.Widths[pin] = width
		}
	}
	sp.Mount = mountStruct(typ)
	return sp
}

func parseHWTag(typeName, fieldName, tag string) (isInput bool, pin string, width int) {
	pin, width = strings.ToLower(fieldName), 1
	tv := strings.Split(tag, ",")
	switch tv[0] {
	case "in":
		isInput = true
	case "out":
	default:
		panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, fieldName, typeName))
	}
	if len(tv) > 1 && tv[1] != "" {
		pin = tv[1]
	}
	if len(tv) > 2 {
		n, err := strconv.Atoi(tv[2])
		if err != nil || n < 1 || n > MaxWidth {
			panic(errors.Errorf("invalid pin width in tag %q for field %q in %q", tag, fieldName, typeName))
		}
		width = n
	}
	return isInput, pin, width
}

func mountStruct(typ reflect.Type) MountFn {
	return func(s *Socket) Updater {
		v := reflect.New(typ)
		e := v.Elem()
		for i := 0; i < typ.NumField(); i++ {
			f := typ.Field(i)
			tag, ok := f.Tag.Lookup("hw")
			if !ok {
				continue
			}
			_, pin, _ := parseHWTag(typ.Name(), f.Name, tag)
			if n := s.Wire(pin); n != nil {
				e.Field(i).Set(reflect.ValueOf(n))
			}
		}
		return v.Interface().(Updater)
	}
}
