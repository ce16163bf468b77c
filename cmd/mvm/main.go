// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/ezrec/mvm/cpu"
	"github.com/ezrec/mvm/emulator"
)

// openSource opens the named source file, or stdin for "" or "-".
func openSource(name string) (inf io.ReadCloser, err error) {
	if name == "" || name == "-" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			err = errors.New("refusing to read source from a terminal")
			return
		}
		inf = io.NopCloser(os.Stdin)
		return
	}

	inf, err = os.Open(name)
	if err != nil {
		err = errors.Wrapf(err, "open %v", name)
	}

	return
}

func main() {
	var compile string
	var listing bool
	var disasm bool
	var verbose bool
	var ticks int

	flag.StringVar(&compile, "c", "-", ".mvm file to compile")
	flag.BoolVar(&listing, "l", false, "Print listing, do not execute")
	flag.BoolVar(&disasm, "d", false, "Print disassembly, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.IntVar(&ticks, "t", 0, "Tick limit (0 is unlimited)")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	inf, err := openSource(compile)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	asm := &cpu.Assembler{Verbose: verbose}
	prog, err := asm.Parse(inf)
	inf.Close()
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	if listing || disasm {
		if listing {
			err = prog.Listing(os.Stdout)
		}
		if err == nil && disasm {
			err = cpu.DisassembleAll(prog.Binary(), os.Stdout)
		}
		if err != nil {
			log.Fatalf("%v: %v", compile, errors.Wrap(err, "listing"))
		}
		return
	}

	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Verbose = verbose
	emu.Cpu.MaxTicks = ticks

	err = emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	exit, err := emu.Run()
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	os.Exit(int(exit))
}
