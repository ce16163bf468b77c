// Package cpu implements the dispatch engine and assembler for the mvm.
//
// The engine has no registers. Every operand is an address in the tiered
// address space of package memory, and every instruction is a one byte
// opcode followed by little-endian operands whose widths are fixed by the
// opcode table in opcode.go. The same table drives the assembler, the
// engine and the disassembler.
//
// The assembler reads one command, label or comment per line. A label may
// prefix a command. Operands are addresses (&123), labels (.name),
// integer or float literals, strings, or compile-time $(...) expressions.
// Labels resolve to the load address of the following instruction. The
// built-in label ._zero names the exit cell that a bare xit returns.
package cpu
