package cpu

import (
	"fmt"
)

const (
	MEMORY_SIZE   = 256 // Bytes of memory.
	REGISTER_SIZE = 8   // General purpose registers.
)

// Memory is the LS-8 main memory. Every uint8 address is valid.
type Memory [MEMORY_SIZE]uint8

// Read returns the byte at addr.
func (m *Memory) Read(addr uint8) uint8 {
	return m[addr]
}

// Write stores val at addr.
func (m *Memory) Write(addr uint8, val uint8) {
	m[addr] = val
}

// A RegNum is a register number (0..7).
type RegNum uint8

const (
	SP = RegNum(7) // r7 is the stack pointer
)

// String returns the register name: r0 through r6, or sp.
func (r RegNum) String() string {
	if r == SP {
		return "sp"
	}
	return fmt.Sprintf("r%d", uint8(r))
}

// Registers is the register file.
type Registers [REGISTER_SIZE]uint8

// Sp returns the stack pointer.
func (r *Registers) Sp() uint8 {
	return r[SP]
}

// SetSp sets the stack pointer.
func (r *Registers) SetSp(val uint8) {
	r[SP] = val
}

// regNum validates a register operand byte.
func regNum(operand uint8) (reg RegNum, err error) {
	if int(operand) >= REGISTER_SIZE {
		err = ErrAddressRange(operand)
		return
	}
	reg = RegNum(operand)
	return
}
