package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assemble(t *testing.T, program ...string) (prog *Program, err error) {
	asm := &Assembler{}
	prog, err = asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))

	assert.Equal("0", asm.Equate["LINENO"])
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("STACK_TOP", "0xf4")
	asm.Predefine("MEMORY_SIZE", "256")

	prog, err := asm.Parse(strings.NewReader("LDI R0, STACK_TOP\nLDI R1, $(MEMORY_SIZE - 1)"))
	assert.NoError(err)
	assert.Equal([]uint8{0x82, 0x00, 0xf4, 0x82, 0x01, 0xff}, prog.Binary())
}

func TestAssemblerPrint8(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		"; print8",
		"LDI R0,8",
		"PRN R0 ; print it",
		"",
		"HLT",
	)
	assert.NoError(err)

	expected := []Opcode{
		{2, 0, []string{"LDI", "R0", "8"}, []uint8{0x82, 0x00, 0x08}, ""},
		{3, 3, []string{"PRN", "R0"}, []uint8{0x47, 0x00}, ""},
		{5, 5, []string{"HLT"}, []uint8{0x01}, ""},
	}
	assert.Equal(expected, prog.Opcodes)
}

func TestAssemblerRegisters(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		"push r0",
		"pop R6",
		"push sp",
		"ADD r1, R7",
	)
	assert.NoError(err)
	assert.Equal([]uint8{0x45, 0x00, 0x46, 0x06, 0x45, 0x07, 0xa0, 0x01, 0x07}, prog.Binary())
}

func TestAssemblerValues(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		"LDI R0, 0x10",
		"LDI R1, 0b1010",
		"LDI R2, 'A'",
		"LDI R3, '\\n'",
		"LDI R4, -1",
		"LDI R5, ~0x0f",
		"LDI R6, $(3 * 7 + 1)",
		"db 1, 2, 0xff",
	)
	assert.NoError(err)
	assert.Equal([]uint8{
		0x82, 0x00, 0x10,
		0x82, 0x01, 0x0a,
		0x82, 0x02, 'A',
		0x82, 0x03, '\n',
		0x82, 0x04, 0xff,
		0x82, 0x05, 0xf0,
		0x82, 0x06, 22,
		0x01, 0x02, 0xff,
	}, prog.Binary())
}

func TestAssemblerCharacterComment(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		"LDI R0, ';'",
		"LDI R1, ';' ; semicolon",
		"LDI R2, '\\\\' ; backslash",
		"PRA R0;print it",
	)
	assert.NoError(err)
	assert.Equal([]uint8{
		0x82, 0x00, ';',
		0x82, 0x01, ';',
		0x82, 0x02, '\\',
		0x48, 0x00,
	}, prog.Binary())

	table := [](struct {
		text   string
		expect string
	}){
		{"NOP", "NOP"},
		{"NOP ; x", "NOP "},
		{"; all comment", ""},
		{"LDI R0, ';' ; x", "LDI R0, ';' "},
		{"LDI R0, '\\'' ; x", "LDI R0, '\\'' "},
	}
	for _, entry := range table {
		assert.Equal(entry.expect, cutComment(entry.text), entry.text)
	}
}

func TestAssemblerEqu(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		".equ CONST_10 0x10",
		"LDI R0, CONST_10",
		"LDI R1, $(CONST_10 + CONST_10)",
		".equ CONST_30 $(2 * CONST_10 + CONST_10)",
		"LDI R2, CONST_30",
		"LDI R3, $(LINENO * 8 + 0x10)",
		".equ COUNTER R4",
		"INC COUNTER",
	)
	assert.NoError(err)
	assert.Equal([]uint8{
		0x82, 0x00, 0x10,
		0x82, 0x01, 0x20,
		0x82, 0x02, 0x30,
		0x82, 0x03, 0x40,
		0x65, 0x04,
	}, prog.Binary())
}

func TestAssemblerMacro(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		".macro SETADD rn rt a b",
		"LDI rn, a",
		"LDI rt, b",
		"ADD rn, rt",
		".endm",
		"SETADD R0 R7 8 8",
	)
	assert.NoError(err)
	assert.Equal([]uint8{
		0x82, 0x00, 0x08,
		0x82, 0x07, 0x08,
		0xa0, 0x00, 0x07,
	}, prog.Binary())
	assert.Equal(2, prog.Opcodes[0].LineNo)
	assert.Equal(4, prog.Opcodes[2].LineNo)
}

func TestAssemblerMacroLocalLabel(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		".macro SKIP rn",
		"LDI rn, @done",
		"JMP rn",
		"@done:",
		".endm",
		"SKIP R2",
		"SKIP R3",
		"HLT",
	)
	assert.NoError(err)
	assert.Equal([]uint8{
		0x82, 0x02, 0x05,
		0x54, 0x02,
		0x82, 0x03, 0x0a,
		0x54, 0x03,
		0x01,
	}, prog.Binary())
}

func TestAssemblerLabel(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		"        LDI R1, Sub",
		"        CALL R1",
		"        HLT",
		"Sub:",
		"Also:   LDI R0, Also",
		"        RET",
	)
	assert.NoError(err)
	assert.Equal([]uint8{
		0x82, 0x01, 0x06,
		0x50, 0x01,
		0x01,
		0x82, 0x00, 0x06,
		0x11,
	}, prog.Binary())
	assert.Equal("Sub", prog.Opcodes[0].LinkLabel)
}

func TestAssemblerRun(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		"; print 5 4 3 2 1 using a counted loop",
		"        LDI R0, 5",
		"        LDI R1, 0",
		"        LDI R2, Loop",
		"        LDI R3, Done",
		"Loop:   CMP R0, R1",
		"        JEQ R3",
		"        PRN R0",
		"        DEC R0",
		"        JMP R2",
		"Done:   HLT",
	)
	assert.NoError(err)

	cpu, output := newTestCpu(t, prog.Binary()...)
	assert.NoError(cpu.Run(1000))
	assert.Equal("5\n4\n3\n2\n1\n", output.String())
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		lineno  int
		err     error
	}){
		{"invalid", []string{"NOP", "FOO R0"}, 2, ErrInstructionInvalid},
		{"missing", []string{"LDI R0"}, 1, ErrOpcodeValueMissing},
		{"extra", []string{"PRN R0, R1"}, 1, ErrOpcodeExtraArgs},
		{"register", []string{"PRN R8"}, 1, ErrRegisterInvalid},
		{"range", []string{"LDI R0, 256"}, 1, ErrValueRange},
		{"number", []string{"LDI R0, 12abc"}, 1, ErrParseNumber("12abc")},
		{"label_reg", []string{"LDI R0, R1"}, 1, ErrParseNumber("R1")},
		{"label_missing", []string{"NOP", "LDI R0, Nowhere"}, 2, ErrLabelMissing("Nowhere")},
		{"label_dup", []string{"A: NOP", "A: NOP"}, 2, ErrLabelDuplicate},
		{"equ_syntax", []string{".equ A"}, 1, ErrEquateSyntax},
		{"equ_dup", []string{".equ A 1", ".equ A 2"}, 2, ErrEquateDuplicate},
		{"macro_nest", []string{".macro A", ".macro B"}, 2, ErrMacroNesting},
		{"macro_lonely", []string{".macro A", "NOP"}, 2, ErrMacroLonely},
		{"macro_endm", []string{".endm"}, 1, ErrMacroLonelyEndm},
		{"macro_args", []string{".macro A x", "PRN x", ".endm", "A"}, 4, ErrMacroSyntax},
		{"db_empty", []string{"db"}, 1, ErrOpcodeValueMissing},
		{"large", []string{"db " + strings.TrimSpace(strings.Repeat("0 ", MEMORY_SIZE+1))}, 1, ErrProgramTooLarge},
	}

	for _, entry := range table {
		_, err := assemble(t, entry.program...)
		assert.True(errors.Is(err, ErrProgramLoad), entry.name)
		assert.True(errors.Is(err, entry.err), "%v: %v", entry.name, err)

		var syntax *ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.name) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.name)
		}
	}
}

func TestAssemblerExpressionError(t *testing.T) {
	assert := assert.New(t)

	_, err := assemble(t, "LDI R0, $(1 +)")
	assert.Error(err)

	_, err = assemble(t, "LDI R0, $(\"text\")")
	assert.True(errors.Is(err, ErrParseExpression("\"text\"")))
}

func TestAssemblerMacroError(t *testing.T) {
	assert := assert.New(t)

	_, err := assemble(t,
		".macro BAD",
		"PRN R9",
		".endm",
		"BAD",
	)
	assert.True(errors.Is(err, ErrRegisterInvalid))

	var macro *ErrMacro
	assert.True(errors.As(err, &macro))
	assert.Equal("BAD", macro.Macro)
	assert.Equal(2, macro.Line)
}
