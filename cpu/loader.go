// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// Loader reads programs in the .ls8 text format.
//
// Each non-blank line holds one byte as exactly eight binary digits.
// A '#' starts a comment that runs to the end of the line.
type Loader struct {
	Verbose bool // If set, logs each loaded byte.
}

// Parse parses an input stream into a Program, one Opcode per byte.
func (ld *Loader) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	prog = &Program{}
	pc := 0

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		text, _, _ = strings.Cut(text, "#")
		line = strings.TrimSpace(text)
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		word := words[0]
		if len(words) > 1 {
			err = ErrOpcodeExtraArgs
			return
		}

		var value uint8
		value, err = parseBinary(word)
		if err != nil {
			return
		}

		if pc >= MEMORY_SIZE {
			err = ErrProgramTooLarge
			return
		}

		if ld.Verbose {
			log.Printf("%v: %02x %08b %v", lineno, pc, value, Code(value))
		}

		prog.Opcodes = append(prog.Opcodes, Opcode{
			LineNo: lineno,
			Pc:     pc,
			Words:  []string{word},
			Bytes:  []uint8{value},
		})
		pc++
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	return
}

// LoadFile parses a .ls8 file. A missing file is returned as the
// os error, not as ErrProgramLoad.
func (ld *Loader) LoadFile(path string) (prog *Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	return ld.Parse(inf)
}

// parseBinary converts an eight digit binary word to a byte.
func parseBinary(word string) (value uint8, err error) {
	if len(word) != 8 || strings.Trim(word, "01") != "" {
		err = ErrParseBinary(word)
		return
	}

	v64, err := strconv.ParseUint(word, 2, 8)
	if err != nil {
		err = ErrParseBinary(word)
		return
	}

	value = uint8(v64)
	return
}
