// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"io"
	"log"

	"github.com/ezrec/mvm/cpu"
)

// Emulator state. Engine + program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the engine.
	Program  *cpu.Program // Reference to the currently loaded program listing.
}

// NewEmulator creates a new emulator with an empty program.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// Reset loads the program image into a fresh address space.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	err = emu.Cpu.Reset(emu.Program.Binary())

	return
}

// LineNo returns the source line of the opcode at the program counter, or
// 0 if the program counter is outside of the program.
func (emu *Emulator) LineNo() int {
	op, ok := emu.Program.Debug(emu.Cpu.Pc)
	if !ok {
		return 0
	}

	return op.LineNo
}

func (emu *Emulator) wrap(err error) error {
	if err == nil {
		return nil
	}

	var er *ErrRuntime
	if errors.As(err, &er) {
		return err
	}

	return &ErrRuntime{LineNo: emu.LineNo(), Pc: emu.Cpu.Pc, Err: err}
}

// Tick performs a single tick of the emulator. done is set once the
// program has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	if emu.Cpu.State == cpu.STATE_HALTED {
		done = true
		return
	}

	err = emu.wrap(emu.Cpu.Tick())
	if err != nil {
		return
	}

	done = emu.Cpu.State == cpu.STATE_HALTED

	return
}

// Run ticks the emulator until the program halts, faults, or reaches the
// tick limit.
func (emu *Emulator) Run() (exit byte, err error) {
	emu.Cpu.Verbose = emu.Verbose

	exit, err = emu.Cpu.Run()
	err = emu.wrap(err)

	if emu.Verbose {
		if err != nil {
			log.Print(f("emulator: %v", err))
		} else {
			log.Print(f("emulator: exit %d after %d ticks", exit, emu.Cpu.Ticks))
		}
	}

	return
}

// Execute assembles source text from input, then loads and runs it.
func (emu *Emulator) Execute(input io.Reader) (exit byte, err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog

	err = emu.Reset()
	if err != nil {
		return
	}

	exit, err = emu.Run()

	return
}
