// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

// ChipDef is the AST node for one chip definition, as produced by an HDL
// parser (see internal/hdl for the bundled thin parser). The core treats
// chip and pin names as opaque non-empty strings; validating HDL syntax is
// the parser's responsibility.
type ChipDef struct {
	Name      string
	Inputs    []ASTPinDecl
	Outputs   []ASTPinDecl
	Parts     []ASTPart
	IsBuiltin bool
	// Clocked lists the names of this definition's own input pins that act
	// as clock-edge-sensitive control signals; informational only, since
	// the core derives clocked behavior from a built-in's Mount function or
	// a composite's sub-chips, not from this list.
	Clocked []string
}

// ASTPinDecl is one declared pin name with its bit width (defaulting to 1
// when absent, signaled by Width == 0).
type ASTPinDecl struct {
	Name  string
	Width int
}

// ASTPart is one PARTS entry: an instance of chip Name wired by Conns.
type ASTPart struct {
	Name  string
	Conns []ASTWire
}

// ASTWire binds one part-side pin reference to one host-side reference.
type ASTWire struct {
	From ASTWireSide
	To   ASTWireSide
}

// ASTWireSide is either a (possibly ranged) pin reference or a boolean
// constant. Exactly one of Pin/IsConst applies: if IsConst is true, Const
// holds the literal value and Pin/HasRange/Range are ignored.
type ASTWireSide struct {
	Pin      string
	HasRange bool
	Range    ASTRange

	IsConst bool
	Const   bool
}

// ASTRange is an inclusive bit range, Start <= End after normalization.
type ASTRange struct {
	Start int
	End   int
}
