package cpu

// AluOp is an ALU operation type.
type AluOp int

const (
	ALU_OP_INC = AluOp(iota) // inc
	ALU_OP_DEC               // dec
	ALU_OP_ADD               // add
	ALU_OP_SUB               // sub
	ALU_OP_MUL               // mul
	ALU_OP_DIV               // div
	ALU_OP_MOD               // mod
	ALU_OP_CMP               // cmp
	ALU_OP_AND               // and
	ALU_OP_OR                // or
	ALU_OP_XOR               // xor
	ALU_OP_NOT               // not
	ALU_OP_SHL               // shl
	ALU_OP_SHR               // shr
)

var aluName = [...]string{
	ALU_OP_INC: "inc",
	ALU_OP_DEC: "dec",
	ALU_OP_ADD: "add",
	ALU_OP_SUB: "sub",
	ALU_OP_MUL: "mul",
	ALU_OP_DIV: "div",
	ALU_OP_MOD: "mod",
	ALU_OP_CMP: "cmp",
	ALU_OP_AND: "and",
	ALU_OP_OR:  "or",
	ALU_OP_XOR: "xor",
	ALU_OP_NOT: "not",
	ALU_OP_SHL: "shl",
	ALU_OP_SHR: "shr",
}

func (op AluOp) String() string {
	if op < 0 || int(op) >= len(aluName) {
		return f("alu(%d)", int(op))
	}
	return aluName[op]
}

// Unary returns true if the operation only uses its first input.
func (op AluOp) Unary() bool {
	return op == ALU_OP_INC || op == ALU_OP_DEC || op == ALU_OP_NOT
}

// Alu performs the requested ALU operation on two register values.
//
// Arithmetic wraps modulo 256. For ALU_OP_CMP the output is the unchanged
// input, and flags holds exactly one of FL_L, FL_G or FL_E. For every
// other operation flags is zero.
func Alu(op AluOp, input uint8, value uint8) (output uint8, flags Flags, err error) {
	switch op {
	case ALU_OP_INC:
		output = input + 1
	case ALU_OP_DEC:
		output = input - 1
	case ALU_OP_ADD:
		output = input + value
	case ALU_OP_SUB:
		output = input - value
	case ALU_OP_MUL:
		output = input * value
	case ALU_OP_DIV:
		if value == 0 {
			err = ErrDivideByZero
			return
		}
		output = input / value
	case ALU_OP_MOD:
		if value == 0 {
			err = ErrDivideByZero
			return
		}
		output = input % value
	case ALU_OP_CMP:
		output = input
		switch {
		case input < value:
			flags = FL_L
		case input > value:
			flags = FL_G
		default:
			flags = FL_E
		}
	case ALU_OP_AND:
		output = input & value
	case ALU_OP_OR:
		output = input | value
	case ALU_OP_XOR:
		output = input ^ value
	case ALU_OP_NOT:
		output = ^input
	case ALU_OP_SHL:
		output = input << value
	case ALU_OP_SHR:
		output = input >> value
	default:
		err = ErrAluOp(op)
	}

	return
}
