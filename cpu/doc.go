// Package cpu implements the processor, loader and assembler for the LS-8 system.
//
// The LS-8 is an 8-bit stored program computer with 256 bytes of memory, eight
// 8-bit general-purpose registers (r7 doubles as the stack pointer), a program
// counter, and a three bit comparison flags register.
//
// Each instruction is a single opcode byte followed by zero, one or two operand
// bytes. The two high bits of the opcode give the operand count.
//
// Programs reach memory either from the .ls8 text format (one binary byte per
// line, '#' comments) or from the assembler, which accepts mnemonics, labels,
// macros, equates and compile-time expressions.
package cpu
