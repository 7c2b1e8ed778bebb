/*
Package hwsim provides a digital hardware simulator: a pin/bus electrical
model with bit-slice sub-buses, chip composition and wiring, a built-in gate
library, and a two-phase clock that drives sequential elements.

A user composes chips out of simpler chips (ultimately out of Nand gates) by
calling Chip with a list of Parts, each wired to the host chip's pins with
ParseConnections-style connection strings. The sub-package hwlib provides the
standard library of built-ins: combinational gates, 16-bit arithmetic, an
ALU, flip-flops, registers, RAM, ROM, a memory-mapped screen and keyboard. The
sub-package hwtest provides a scripted test harness that drives a chip
through set/eval/tick/tock/output instructions.

Package hdl (internal/hdl) implements the thin textual HDL parser that turns
HDL source into the AST consumed by Build; the core engine never depends on
HDL's concrete syntax, only on the ChipDef/Part/Wire AST shape.
*/
package hwsim
