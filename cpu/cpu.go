package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strconv"

	"github.com/ezrec/ls8/io"
)

// Channel is an output channel interface.
type Channel io.Channel

var _cpu_defines = map[string]string{
	"STACK_TOP":   fmt.Sprintf("0x%x", STACK_TOP),
	"MEMORY_SIZE": fmt.Sprintf("%d", MEMORY_SIZE),
	"FL_L":        fmt.Sprintf("0x%x", uint8(FL_L)),
	"FL_G":        fmt.Sprintf("0x%x", uint8(FL_G)),
	"FL_E":        fmt.Sprintf("0x%x", uint8(FL_E)),
}

// Cpu is the simulation context for the LS-8 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory   Memory    // Main memory.
	Register Registers // Register bank; r7 is the stack pointer.
	Pc       uint8     // Program counter.
	Flags    Flags     // Comparison flags.

	Halted bool  // Set by HLT, or by a fault.
	Fault  error // Error that halted the CPU, if any.

	Ticks int // Instructions executed since reset.

	channel Channel // Output channel for PRN and PRA.
}

// NewCpu creates a new CPU in the reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc", "code", "fl",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "sp",
		"stack",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X", cpu.Pc)
		case "code":
			code := Code(cpu.Memory.Read(cpu.Pc))
			strval = fmt.Sprintf("%02X %v", uint8(code), code)
		case "fl":
			strval = cpu.Flags.String()
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6":
			strval = fmt.Sprintf("%02X", cpu.Register[reg[1]-'0'])
		case "sp":
			strval = fmt.Sprintf("%02X", cpu.Register.Sp())
		case "stack":
			val, ok := cpu.Peek()
			if ok {
				strval = fmt.Sprintf("%02X (%d deep)", val, cpu.StackDepth())
			} else {
				strval = "--"
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	if cpu.Halted {
		text += fmt.Sprintf("% 5s: %v\n", "halt", cpu.Fault)
	}

	return
}

// Reset the CPU state.
// - Clears memory, registers and flags.
// - Sets the stack pointer to STACK_TOP and the PC to 0.
// - Zeros statistics counters.
// - Rewinds the output channel.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Memory[:])
	clear(cpu.Register[:])
	cpu.Register.SetSp(STACK_TOP)
	cpu.Pc = 0
	cpu.Flags = 0
	cpu.Halted = false
	cpu.Fault = nil
	cpu.Ticks = 0

	if cpu.channel != nil {
		cpu.channel.Rewind()
	}
}

// Load copies program into memory at ascending addresses from start.
func (cpu *Cpu) Load(program []uint8, start uint8) (err error) {
	end := int(start) + len(program)
	if end > MEMORY_SIZE {
		err = errors.Join(ErrProgramTooLarge, ErrAddressRange(end-1))
		return
	}

	copy(cpu.Memory[start:], program)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes at 0x%02x", len(program), start)
	}

	return
}

// SetChannel attaches the output channel. A nil channel detaches it.
func (cpu *Cpu) SetChannel(channel Channel) {
	cpu.channel = channel
}

// GetChannel returns the attached output channel.
func (cpu *Cpu) GetChannel() (channel Channel, err error) {
	if cpu.channel == nil {
		err = ErrChannelInvalid
		return
	}

	channel = cpu.channel
	return
}

// FetchCode fetches the opcode at the PC.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	code = Code(cpu.Memory.Read(cpu.Pc))
	return
}

// Tick executes a single CPU instruction cycle.
// Any execution error halts the CPU and is kept in Fault.
// A faulted CPU returns its Fault on every later Tick.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted && cpu.Fault != nil {
		err = cpu.Fault
		return
	}

	code, err := cpu.FetchCode()
	if err != nil {
		return
	}

	err = cpu.Execute(code)
	if err != nil {
		cpu.Halted = true
		cpu.Fault = err
		return
	}

	cpu.Ticks += 1

	return
}

// Run ticks the CPU until it halts.
// If limit is positive, at most limit instructions are executed before
// ErrTickLimit is returned.
// Running a faulted CPU returns its Fault.
func (cpu *Cpu) Run(limit int) (err error) {
	if cpu.Halted {
		err = cpu.Fault
		return
	}

	for ticks := 0; !cpu.Halted; ticks++ {
		if limit > 0 && ticks == limit {
			err = ErrTickLimit
			return
		}
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Execute executes a single decoded instruction located at the PC.
// Operands are read from the bytes following the PC.
func (cpu *Cpu) Execute(code Code) (err error) {
	pc := cpu.Pc

	defer func() {
		if err != nil {
			err = &ErrExecute{Pc: pc, Code: code, Err: err}
		}
	}()

	op_a := cpu.Memory.Read(pc + 1)
	op_b := cpu.Memory.Read(pc + 2)

	if cpu.Verbose {
		switch code.Operands() {
		case 0:
			log.Printf("%02x: %v", pc, code)
		case 1:
			log.Printf("%02x: %v %02x", pc, code, op_a)
		default:
			log.Printf("%02x: %v %02x %02x", pc, code, op_a, op_b)
		}
	}

	next_pc := pc + 1 + uint8(code.Operands())

	if !code.Valid() {
		err = ErrOpcodeUnknown(code)
		return
	}

	// Operands are register numbers, except the immediate of LDI.
	var ra, rb RegNum
	if code.Operands() >= 1 {
		ra, err = regNum(op_a)
		if err != nil {
			return
		}
	}
	if code.Operands() == 2 && code != OP_LDI {
		rb, err = regNum(op_b)
		if err != nil {
			return
		}
	}

	switch code {
	case OP_NOP:
		// pass
	case OP_HLT:
		cpu.Halted = true
	case OP_LDI:
		cpu.Register[ra] = op_b
	case OP_LD:
		cpu.Register[ra] = cpu.Memory.Read(cpu.Register[rb])
	case OP_ST:
		cpu.Memory.Write(cpu.Register[ra], cpu.Register[rb])
	case OP_PRN:
		err = cpu.send([]byte(strconv.Itoa(int(cpu.Register[ra])) + "\n"))
	case OP_PRA:
		err = cpu.send([]byte{cpu.Register[ra]})
	case OP_PUSH:
		cpu.Push(cpu.Register[ra])
	case OP_POP:
		cpu.Register[ra] = cpu.Pop()
	case OP_CALL:
		cpu.Push(next_pc)
		next_pc = cpu.Register[ra]
	case OP_RET:
		next_pc = cpu.Pop()
	case OP_JMP:
		next_pc = cpu.Register[ra]
	case OP_JEQ, OP_JNE, OP_JGT, OP_JLT, OP_JLE, OP_JGE:
		if cpu.jumpTaken(code) {
			next_pc = cpu.Register[ra]
		}
	case OP_INC, OP_DEC, OP_NOT,
		OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_MOD, OP_CMP,
		OP_AND, OP_OR, OP_XOR, OP_SHL, OP_SHR:
		err = cpu.doAlu(code, ra, rb)
	default:
		err = ErrOpcodeUnknown(code)
	}

	if err != nil {
		return
	}

	cpu.Pc = next_pc

	return
}

// jumpTaken evaluates the flags condition of a conditional jump.
func (cpu *Cpu) jumpTaken(code Code) (taken bool) {
	fl := cpu.Flags
	switch code {
	case OP_JEQ:
		taken = fl.Equal()
	case OP_JNE:
		taken = !fl.Equal()
	case OP_JGT:
		taken = fl.Greater()
	case OP_JLT:
		taken = fl.Less()
	case OP_JLE:
		taken = fl.Less() || fl.Equal()
	case OP_JGE:
		taken = fl.Greater() || fl.Equal()
	}
	return
}

// doAlu runs an ALU opcode against registers ra and rb.
// CMP updates the flags; every other operation writes ra.
func (cpu *Cpu) doAlu(code Code, ra, rb RegNum) (err error) {
	op, ok := code.AluOp()
	if !ok {
		err = ErrAluOp(-1)
		return
	}

	var value uint8
	if !op.Unary() {
		value = cpu.Register[rb]
	}

	output, flags, err := Alu(op, cpu.Register[ra], value)
	if err != nil {
		return
	}

	if op == ALU_OP_CMP {
		cpu.Flags = flags
	} else {
		cpu.Register[ra] = output
	}

	return
}

// send writes data to the output channel.
func (cpu *Cpu) send(data []byte) (err error) {
	channel, err := cpu.GetChannel()
	if err != nil {
		return
	}

	return channel.Send(data)
}
