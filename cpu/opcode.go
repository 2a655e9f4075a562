package cpu

import (
	"fmt"
	"strings"
)

// Code is an LS-8 instruction opcode byte.
//
// The byte is laid out as AABCDDDD:
//
//	AA   number of operand bytes that follow (0-2)
//	B    ALU operation
//	C    instruction sets the PC
//	DDDD instruction identifier
type Code uint8

const (
	CODE_OPERANDS_MASK  = Code(0b1100_0000) // Operand count field.
	CODE_OPERANDS_SHIFT = 6                 // Operand count shift.
	CODE_ALU            = Code(0b0010_0000) // ALU operation bit.
	CODE_SETS_PC        = Code(0b0001_0000) // Sets PC bit.
	CODE_ID_MASK        = Code(0b0000_1111) // Instruction identifier.
)

const (
	OP_NOP  = Code(0b0000_0000) // NOP
	OP_HLT  = Code(0b0000_0001) // HLT
	OP_RET  = Code(0b0001_0001) // RET
	OP_PUSH = Code(0b0100_0101) // PUSH
	OP_POP  = Code(0b0100_0110) // POP
	OP_PRN  = Code(0b0100_0111) // PRN
	OP_PRA  = Code(0b0100_1000) // PRA
	OP_CALL = Code(0b0101_0000) // CALL
	OP_JMP  = Code(0b0101_0100) // JMP
	OP_JEQ  = Code(0b0101_0101) // JEQ
	OP_JNE  = Code(0b0101_0110) // JNE
	OP_JGT  = Code(0b0101_0111) // JGT
	OP_JLT  = Code(0b0101_1000) // JLT
	OP_JLE  = Code(0b0101_1001) // JLE
	OP_JGE  = Code(0b0101_1010) // JGE
	OP_INC  = Code(0b0110_0101) // INC
	OP_DEC  = Code(0b0110_0110) // DEC
	OP_NOT  = Code(0b0110_1001) // NOT
	OP_LDI  = Code(0b1000_0010) // LDI
	OP_LD   = Code(0b1000_0011) // LD
	OP_ST   = Code(0b1000_0100) // ST
	OP_ADD  = Code(0b1010_0000) // ADD
	OP_SUB  = Code(0b1010_0001) // SUB
	OP_MUL  = Code(0b1010_0010) // MUL
	OP_DIV  = Code(0b1010_0011) // DIV
	OP_MOD  = Code(0b1010_0100) // MOD
	OP_CMP  = Code(0b1010_0111) // CMP
	OP_AND  = Code(0b1010_1000) // AND
	OP_OR   = Code(0b1010_1010) // OR
	OP_XOR  = Code(0b1010_1011) // XOR
	OP_SHL  = Code(0b1010_1100) // SHL
	OP_SHR  = Code(0b1010_1101) // SHR
)

// codeName is the mnemonic of every defined opcode.
var codeName = map[Code]string{
	OP_NOP:  "NOP",
	OP_HLT:  "HLT",
	OP_RET:  "RET",
	OP_PUSH: "PUSH",
	OP_POP:  "POP",
	OP_PRN:  "PRN",
	OP_PRA:  "PRA",
	OP_CALL: "CALL",
	OP_JMP:  "JMP",
	OP_JEQ:  "JEQ",
	OP_JNE:  "JNE",
	OP_JGT:  "JGT",
	OP_JLT:  "JLT",
	OP_JLE:  "JLE",
	OP_JGE:  "JGE",
	OP_INC:  "INC",
	OP_DEC:  "DEC",
	OP_NOT:  "NOT",
	OP_LDI:  "LDI",
	OP_LD:   "LD",
	OP_ST:   "ST",
	OP_ADD:  "ADD",
	OP_SUB:  "SUB",
	OP_MUL:  "MUL",
	OP_DIV:  "DIV",
	OP_MOD:  "MOD",
	OP_CMP:  "CMP",
	OP_AND:  "AND",
	OP_OR:   "OR",
	OP_XOR:  "XOR",
	OP_SHL:  "SHL",
	OP_SHR:  "SHR",
}

// codeMap maps upper case mnemonics back to opcodes.
var codeMap = func() map[string]Code {
	m := make(map[string]Code, len(codeName))
	for code, name := range codeName {
		m[name] = code
	}
	return m
}()

// CodeOf returns the opcode for a mnemonic, in any letter case.
func CodeOf(mnemonic string) (code Code, ok bool) {
	code, ok = codeMap[strings.ToUpper(mnemonic)]
	return
}

// Valid returns true if the opcode is a defined instruction.
func (code Code) Valid() bool {
	_, ok := codeName[code]
	return ok
}

// Operands returns the number of operand bytes that follow the opcode.
func (code Code) Operands() int {
	return int((code & CODE_OPERANDS_MASK) >> CODE_OPERANDS_SHIFT)
}

// IsAlu returns true if the opcode is executed by the ALU.
func (code Code) IsAlu() bool {
	return (code & CODE_ALU) != 0
}

// SetsPc returns true if the opcode may set the PC directly.
func (code Code) SetsPc() bool {
	return (code & CODE_SETS_PC) != 0
}

// Id returns the instruction identifier bits.
func (code Code) Id() int {
	return int(code & CODE_ID_MASK)
}

// String returns the mnemonic, or the hex byte for an unknown opcode.
func (code Code) String() string {
	name, ok := codeName[code]
	if !ok {
		return fmt.Sprintf("0x%02x", uint8(code))
	}
	return name
}

// AluOp returns the ALU operation performed by the opcode.
func (code Code) AluOp() (op AluOp, ok bool) {
	op, ok = codeAlu[code]
	return
}

// codeAlu maps ALU opcodes to their operation.
var codeAlu = map[Code]AluOp{
	OP_INC: ALU_OP_INC,
	OP_DEC: ALU_OP_DEC,
	OP_NOT: ALU_OP_NOT,
	OP_ADD: ALU_OP_ADD,
	OP_SUB: ALU_OP_SUB,
	OP_MUL: ALU_OP_MUL,
	OP_DIV: ALU_OP_DIV,
	OP_MOD: ALU_OP_MOD,
	OP_CMP: ALU_OP_CMP,
	OP_AND: ALU_OP_AND,
	OP_OR:  ALU_OP_OR,
	OP_XOR: ALU_OP_XOR,
	OP_SHL: ALU_OP_SHL,
	OP_SHR: ALU_OP_SHR,
}
