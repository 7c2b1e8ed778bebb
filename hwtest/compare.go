// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"testing"

	hwsim "github.com/kvory/nandsim"
)

// ComparePart exhaustively drives a newPart instance's input pins through
// every combination of 0/1 values (bus inputs are only ever driven 0 or
// all-ones, keeping the search space tractable for wide buses) and checks
// that every output pin's word matches want's corresponding entry. want is
// called once per input assignment, receiving the same input map, and must
// return the expected output-pin -> word assignment.
func ComparePart(t *testing.T, name string, newPart hwsim.NewPartFn, want func(in map[string]uint16) map[string]uint16) {
	t.Helper()

	probe := newPart("")
	circuit, err := hwsim.NewCircuit(probe)
	if err != nil {
		t.Fatalf("%s: build probe circuit: %v", name, err)
	}

	inputs := probe.Inputs
	total := 1
	for range inputs {
		total *= 2
	}
	for mask := 0; mask < total; mask++ {
		in := make(map[string]uint16, len(inputs))
		for i, pin := range inputs {
			v := uint16(0)
			if mask&(1<<uint(i)) != 0 {
				v = mask16(probe.Width(pin))
			}
			in[pin] = v
			node, err := circuit.Pin(pin)
			if err != nil {
				t.Fatalf("%s: pin %s: %v", name, pin, err)
			}
			node.SetWord(v)
		}
		circuit.Eval()

		exp := want(in)
		for pin, wantV := range exp {
			node, err := circuit.Pin(pin)
			if err != nil {
				t.Fatalf("%s: output pin %s: %v", name, pin, err)
			}
			if got := node.Word(); got != wantV {
				t.Errorf("%s: in=%v: out %s = %#x, want %#x", name, in, pin, got, wantV)
			}
		}
	}
}

func mask16(bits int) uint16 {
	if bits >= 16 {
		return 0xFFFF
	}
	return uint16(1)<<uint(bits) - 1
}
