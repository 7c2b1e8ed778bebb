// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	hwsim "github.com/kvory/nandsim"
	"github.com/kvory/nandsim/hwlib"
	"github.com/kvory/nandsim/internal/hdl"
)

func builtinRegistry() hwsim.Registry {
	return hwsim.Registry{
		"Nand": hwlib.Nand, "Not": hwlib.Not,
		"And": hwlib.And, "Or": hwlib.Or, "Nor": hwlib.Nor, "Xor": hwlib.Xor, "Xnor": hwlib.Xnor,
		"Mux": hwlib.Mux, "DMux": hwlib.DMux,
		"Mux4Way": hwlib.Mux4Way, "Mux8Way": hwlib.Mux8Way,
		"DMux4Way": hwlib.DMux4Way, "DMux8Way": hwlib.DMux8Way,
		"Not16": hwlib.Not16, "And16": hwlib.And16, "Or16": hwlib.Or16, "Or8Way": hwlib.Or8Way,
		"Mux16": hwlib.Mux16, "Mux4Way16": hwlib.Mux4Way16, "Mux8Way16": hwlib.Mux8Way16,
		"Add16": hwlib.Add16, "Inc16": hwlib.Inc16,
		"HalfAdder": hwlib.HalfAdder, "FullAdder": hwlib.FullAdder,
		"ALU": hwlib.ALU,
		"DFF": hwlib.DFF, "Bit": hwlib.Bit, "Register": hwlib.Register, "PC": hwlib.PC,
		"RAM8": hwlib.RAM8, "RAM64": hwlib.RAM64, "RAM512": hwlib.RAM512,
		"RAM4K": hwlib.RAM4K, "RAM16K": hwlib.RAM16K,
		"Screen": hwlib.Screen,
		"Keyboard": func(conns string) hwsim.Part { return (&hwlib.Keyboard{}).NewPart(conns) },
		"Memory":   func(conns string) hwsim.Part { return hwlib.Memory{}.NewPart(conns) },
		"ROM32K":   func(conns string) hwsim.Part { return (&hwlib.ROM32K{}).NewPart(conns) },
	}
}

func loadChip(path, name string) (hwsim.NewPartFn, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	defs, err := hdl.NewParser(string(src)).ParseFile()
	if err != nil {
		return nil, err
	}
	b := hwsim.NewBuilder(defs, builtinRegistry())
	return b.Build(name)
}

func main() {
	var topName string

	buildCmd := &cobra.Command{
		Use:   "build [hdl-file]",
		Short: "Parse an HDL file and report its chip definitions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			defs, err := hdl.NewParser(string(src)).ParseFile()
			if err != nil {
				return err
			}
			for _, d := range defs {
				log.Printf("chip %s: %d input(s), %d output(s), %d part(s)",
					d.Name, len(d.Inputs), len(d.Outputs), len(d.Parts))
			}
			return nil
		},
	}

	runCmd := &cobra.Command{
		Use:   "run [hdl-file]",
		Short: "Build a chip from an HDL file and tick its clock once, reporting its pins",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			newPart, err := loadChip(args[0], topName)
			if err != nil {
				return err
			}
			top := newPart("")
			c, err := hwsim.NewCircuit(top)
			if err != nil {
				return err
			}
			c.Eval()
			c.Tick()
			c.Tock()
			for _, n := range append(append([]string{}, top.Inputs...), top.Outputs...) {
				pin, err := c.Pin(n)
				if err != nil {
					return err
				}
				log.Printf("%s = %d", n, pin.Word())
			}
			return nil
		},
	}
	runCmd.Flags().StringVar(&topName, "chip", "", "name of the chip definition to build and run")
	runCmd.MarkFlagRequired("chip")

	root := &cobra.Command{
		Use:   "nandsim",
		Short: "nandsim — a digital hardware simulator for nand2tetris-style HDL",
	}
	root.AddCommand(buildCmd, runCmd)

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}
