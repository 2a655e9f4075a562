// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
	"github.com/ezrec/ls8/translate"
)

func main() {
	var limit int
	var save bool
	var output string
	var verbose bool

	log.SetPrefix("ls8: ")
	log.SetFlags(0)

	flag.IntVar(&limit, "n", 0, "Maximum instructions to execute (0 is unlimited)")
	flag.BoolVar(&save, "s", false, "Write the program as .ls8 text, do not execute")
	flag.StringVar(&output, "o", "-", "Program output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("usage: %v [-v] [-n ticks] [-s] [-o output] program.{ls8,asm}", filepath.Base(os.Args[0]))
	}

	source := flag.Arg(0)

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	inf, err := os.Open(source)
	if err != nil {
		// Missing files are reported apart from program errors.
		log.Fatalf("%v: %v", source, err)
	}
	defer inf.Close()

	var prog *cpu.Program
	if strings.EqualFold(filepath.Ext(source), ".asm") {
		prog, err = emu.Assembler().Parse(inf)
	} else {
		ld := &cpu.Loader{Verbose: verbose}
		prog, err = ld.Parse(inf)
	}
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	ouf := os.Stdout
	if output != "-" {
		ouf, err = os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
	}

	if save {
		_, err = prog.WriteTo(ouf)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	emu.Program = prog
	emu.Tape.Output = ouf

	err = emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	err = emu.Run(limit)
	if err != nil {
		if errors.Is(err, cpu.ErrTickLimit) {
			translate.Fprintf(os.Stderr, "%v: stopped after %d instructions\n", source, emu.Ticks())
		}
		if term.IsTerminal(int(os.Stderr.Fd())) {
			os.Stderr.WriteString(emu.Cpu.String())
		}
		log.Fatalf("%v: %v", source, err)
	}
}
