package cpu

const (
	STACK_TOP = 0xf4 // Stack pointer reset value.
)

// Push writes value at the stack pointer, then decrements the stack pointer.
func (cpu *Cpu) Push(value uint8) {
	sp := cpu.Register.Sp()
	cpu.Memory.Write(sp, value)
	cpu.Register.SetSp(sp - 1)
}

// Pop increments the stack pointer, then reads and clears the top of stack.
func (cpu *Cpu) Pop() (value uint8) {
	sp := cpu.Register.Sp() + 1
	cpu.Register.SetSp(sp)
	value = cpu.Memory.Read(sp)
	cpu.Memory.Write(sp, 0)
	return
}

// Peek returns the value Pop would return, without changing state.
func (cpu *Cpu) Peek() (value uint8, ok bool) {
	if cpu.StackEmpty() {
		return
	}
	return cpu.Memory.Read(cpu.Register.Sp() + 1), true
}

// StackEmpty returns true if the stack pointer is at its reset value.
func (cpu *Cpu) StackEmpty() bool {
	return cpu.Register.Sp() == STACK_TOP
}

// StackDepth returns the number of bytes pushed below STACK_TOP.
// The stack wraps modulo 256, so the depth does as well.
func (cpu *Cpu) StackDepth() int {
	return int(uint8(STACK_TOP - cpu.Register.Sp()))
}
