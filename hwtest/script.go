// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides a scripted test harness that drives a
// hwsim.Circuit through set/eval/tick/tock/output instructions, and a
// ComparePart helper for exhaustive truth-table style unit tests.
package hwtest

import (
	"io"

	hwsim "github.com/kvory/nandsim"
)

// An Instruction is one step of a Script. Exactly one of the typed fields
// applies, selected by Kind.
type Instruction struct {
	Kind  InstructionKind
	Set   SetInstruction
	Out   OutputSpec
	Group []Instruction // Kind == KindCompound
}

// InstructionKind discriminates an Instruction's active field.
type InstructionKind int

const (
	KindSet InstructionKind = iota
	KindEval
	KindTick
	KindTock
	KindOutput
	KindCompound
)

// SetInstruction writes Value to Pin.
type SetInstruction struct {
	Pin   string
	Value uint16
}

// A Script is an ordered sequence of instructions run against one circuit.
type Script struct {
	Instructions []Instruction
	Outputs      []OutputSpec // the declared output list used by bare KindOutput steps
}

// Run executes every instruction in s against c in order, writing one
// formatted line per output instruction to w.
func Run(c *hwsim.Circuit, s *Script, w io.Writer) error {
	for _, instr := range s.Instructions {
		if err := runOne(c, s, instr, w); err != nil {
			return err
		}
	}
	return nil
}

func runOne(c *hwsim.Circuit, s *Script, instr Instruction, w io.Writer) error {
	switch instr.Kind {
	case KindSet:
		pin, err := c.Pin(instr.Set.Pin)
		if err != nil {
			return err
		}
		pin.SetWord(instr.Set.Value)
	case KindEval:
		c.Eval()
	case KindTick:
		c.Tick()
	case KindTock:
		c.Tock()
	case KindOutput:
		specs := s.Outputs
		if instr.Out.Pin != "" {
			specs = []OutputSpec{instr.Out}
		}
		line, err := FormatLine(c, specs)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	case KindCompound:
		for _, sub := range instr.Group {
			if err := runOne(c, s, sub, w); err != nil {
				return err
			}
		}
	}
	return nil
}

// Set returns a KindSet instruction writing value to pin.
func Set(pin string, value uint16) Instruction {
	return Instruction{Kind: KindSet, Set: SetInstruction{Pin: pin, Value: value}}
}

// Eval returns a KindEval instruction.
func Eval() Instruction { return Instruction{Kind: KindEval} }

// Tick returns a KindTick instruction.
func Tick() Instruction { return Instruction{Kind: KindTick} }

// Tock returns a KindTock instruction.
func Tock() Instruction { return Instruction{Kind: KindTock} }

// Output returns a KindOutput instruction formatting the script's declared
// output list.
func Output() Instruction { return Instruction{Kind: KindOutput} }

// Compound groups a sequence of instructions into a single step.
func Compound(steps ...Instruction) Instruction {
	return Instruction{Kind: KindCompound, Group: steps}
}
