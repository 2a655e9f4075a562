package cpu

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"
)

// Opcode represents a line of program text with its address and generated bytes.
type Opcode struct {
	LineNo    int
	Pc        int
	Words     []string
	Bytes     []uint8
	LinkLabel string
}

// Program is a listing of opcodes, in ascending address order.
type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// Debug returns the opcode that generated the byte at pc.
func (prog *Program) Debug(pc uint8) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(pc) >= op.Pc && int(pc) < op.Pc+len(op.Bytes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(pc) - op.Pc,
			}
			break
		}
	}

	return
}

// Size returns one past the highest address used by the program.
func (prog *Program) Size() (size int) {
	for _, op := range prog.Opcodes {
		size = max(size, op.Pc+len(op.Bytes))
	}
	return
}

// Binary returns the memory image of the program, starting at address 0.
func (prog *Program) Binary() (bins []uint8) {
	bins = make([]uint8, prog.Size())
	for pc, data := range prog.Codes() {
		bins[pc] = data
	}

	return
}

// Codes iterates over every address and byte of the program.
func (prog *Program) Codes() iter.Seq2[int, uint8] {
	return func(yield func(pc int, data uint8) bool) {
		for _, op := range prog.Opcodes {
			for n, data := range op.Bytes {
				if !yield(op.Pc+n, data) {
					return
				}
			}
		}
	}
}

// WriteTo writes the program in .ls8 text format, one byte per line.
// The first byte of each opcode carries the source words as a comment.
func (prog *Program) WriteTo(w io.Writer) (n int64, err error) {
	out := bufio.NewWriter(w)

	pc := 0
	for _, op := range prog.Opcodes {
		// Fill any gap so the text reloads to the same addresses.
		for ; pc < op.Pc; pc++ {
			var c int
			c, err = fmt.Fprintf(out, "%08b\n", 0)
			n += int64(c)
			if err != nil {
				return
			}
		}
		for i, data := range op.Bytes {
			var line string
			if i == 0 && len(op.Words) > 0 {
				line = fmt.Sprintf("%08b # %v\n", data, strings.Join(op.Words, " "))
			} else {
				line = fmt.Sprintf("%08b\n", data)
			}
			var c int
			c, err = out.WriteString(line)
			n += int64(c)
			if err != nil {
				return
			}
			pc++
		}
	}

	err = out.Flush()

	return
}
