package cpu

import (
	"errors"
	"fmt"
	"log"

	"github.com/ezrec/mvm/memory"
)

// CpuState is the execution state of the dispatch engine.
type CpuState int

const (
	STATE_RUNNING = CpuState(iota) // running
	STATE_HALTED                   // halted
	STATE_FAULTED                  // faulted
)

func (state CpuState) String() string {
	switch state {
	case STATE_RUNNING:
		return "running"
	case STATE_HALTED:
		return "halted"
	case STATE_FAULTED:
		return "faulted"
	}
	return fmt.Sprintf("CpuState(%d)", int(state))
}

// Cpu is the dispatch engine of a single virtual machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory *memory.Memory // Address space owned by this engine.

	Pc    uint64   // Address of the next instruction.
	State CpuState // Execution state.
	Exit  byte     // Exit value, once halted.

	Ticks    int // Executed instruction counter.
	MaxTicks int // If non-zero, the tick limit of Run().

	fault error
}

// NewCpu creates a new engine with an empty address space.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Memory: memory.NewMemory(),
	}
	cpu.Pc = memory.PROGRAM_BASE

	return
}

// String returns the current engine state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("   pc: %04x\n", cpu.Pc)
	text += fmt.Sprintf("state: %v\n", cpu.State)
	text += fmt.Sprintf("   sp: %04x (%d)\n", cpu.Memory.Sp(), cpu.Memory.Depth())
	text += fmt.Sprintf("pages: %d\n", cpu.Memory.Pages())
	text += fmt.Sprintf("ticks: %d\n", cpu.Ticks)

	return
}

// Reset loads an image and restarts execution at PROGRAM_BASE.
func (cpu *Cpu) Reset(image []byte) (err error) {
	if cpu.Verbose {
		log.Print(f("cpu: reset, %d byte image", len(image)))
	}

	cpu.Memory.Verbose = cpu.Verbose
	err = cpu.Memory.Load(image)
	if err != nil {
		return
	}

	cpu.Pc = memory.PROGRAM_BASE
	cpu.State = STATE_RUNNING
	cpu.Exit = 0
	cpu.Ticks = 0
	cpu.fault = nil

	return
}

// Fault returns the error that stopped the engine, if any.
func (cpu *Cpu) Fault() error {
	return cpu.fault
}

// Fetch decodes the instruction at the program counter.
func (cpu *Cpu) Fetch() (code Code, err error) {
	b, err := memory.Get[uint8](cpu.Memory, cpu.Pc)
	if err != nil {
		return
	}

	code.Op, err = Decode(b)
	if err != nil {
		return
	}

	addr := cpu.Pc + 1
	for _, width := range code.Info().Operands() {
		var arg uint64
		arg, err = cpu.Memory.Read(addr, width)
		if err != nil {
			return
		}
		code.Args = append(code.Args, arg)
		addr += uint64(width)
	}

	return
}

// Tick executes a single instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	switch cpu.State {
	case STATE_HALTED:
		err = ErrHalted
		return
	case STATE_FAULTED:
		err = cpu.fault
		return
	}

	defer func() {
		if err != nil {
			cpu.State = STATE_FAULTED
			cpu.fault = err
		}
	}()

	code, err := cpu.Fetch()
	if err != nil {
		return
	}

	err = cpu.Execute(code)
	if err != nil {
		return
	}

	cpu.Ticks++

	return
}

// Run executes instructions until the engine halts or faults, and returns
// the exit value.
func (cpu *Cpu) Run() (exit byte, err error) {
	for cpu.State == STATE_RUNNING {
		if cpu.MaxTicks > 0 && cpu.Ticks >= cpu.MaxTicks {
			err = ErrTickLimit
			return
		}

		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	if cpu.State == STATE_FAULTED {
		err = cpu.fault
		return
	}

	exit = cpu.Exit

	return
}

// source returns the value of an immediate or pointer source operand.
func (cpu *Cpu) source(info CodeInfo, arg uint64) (value uint64, err error) {
	if info.Source == SOURCE_IMM {
		value = arg
		return
	}

	value, err = cpu.Memory.Read(arg, info.Width)

	return
}

// Execute executes a single decoded instruction at the program counter.
// On error, the program counter is unchanged.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode{Pc: cpu.Pc, Code: code}, err)
		}
	}()

	if cpu.Verbose {
		log.Print(f("%04x: %v", cpu.Pc, code))
	}

	_, err = Decode(byte(code.Op))
	if err != nil {
		return
	}

	info := code.Info()
	if len(code.Args) != len(info.Operands()) {
		err = ErrOpcodeArgs
		return
	}

	m := cpu.Memory
	args := code.Args
	next := cpu.Pc + uint64(info.Size())

	switch info.Class {
	case CLASS_NOP:
		// pass
	case CLASS_EXIT:
		var exit uint8
		exit, err = memory.Get[uint8](m, args[0])
		if err != nil {
			return
		}
		cpu.Exit = exit
		cpu.State = STATE_HALTED
		if cpu.Verbose {
			log.Print(f("cpu: exit %d", exit))
		}
	case CLASS_ALU:
		var value uint64
		value, err = cpu.source(info, args[1])
		if err != nil {
			return
		}
		switch info.Width {
		case 1:
			err = aluAt[uint8](m, info.Alu, args[0], value)
		case 2:
			err = aluAt[uint16](m, info.Alu, args[0], value)
		case 4:
			err = aluAt[uint32](m, info.Alu, args[0], value)
		default:
			err = aluAt[uint64](m, info.Alu, args[0], value)
		}
	case CLASS_FLOAT:
		if info.Width == 4 {
			err = floatAt[float32](m, info.Alu, args[0], args[1])
		} else {
			err = floatAt[float64](m, info.Alu, args[0], args[1])
		}
	case CLASS_COPY:
		var value uint64
		value, err = cpu.source(info, args[1])
		if err != nil {
			return
		}
		err = m.Write(args[0], info.Width, value)
	case CLASS_COPY_THROUGH:
		var ptr, value uint64
		ptr, err = memory.Get[uint64](m, args[1])
		if err != nil {
			return
		}
		value, err = m.Read(ptr, info.Width)
		if err != nil {
			return
		}
		err = m.Write(args[0], info.Width, value)
	case CLASS_PUSH:
		var value uint64
		value, err = cpu.source(info, args[0])
		if err != nil {
			return
		}
		err = m.PushReturn(value)
	case CLASS_POP:
		var value uint64
		value, err = m.PopReturn()
		if err != nil {
			return
		}
		err = m.Write(args[0], info.Width, value)
	case CLASS_JUMP:
		next = args[0]
	case CLASS_BRANCH:
		var test uint64
		test, err = memory.Get[uint64](m, args[1])
		if err != nil {
			return
		}
		if test != 0 {
			next = args[0]
		}
	case CLASS_CALL:
		err = m.PushReturn(next)
		next = args[0]
	case CLASS_RETURN:
		next, err = m.PopReturn()
	case CLASS_ALLOC:
		page := m.AllocPage()
		err = memory.Set(m, args[0], page)
		if err != nil {
			// Nothing can name the page.
			_ = m.FreePage(page)
		}
	case CLASS_FREE:
		var page uint64
		page, err = memory.Get[uint64](m, args[0])
		if err != nil {
			return
		}
		err = m.FreePage(page)
	case CLASS_RESERVED:
		err = ErrOpcodeReserved
	default:
		err = ErrOpcodeUnknown(code.Op)
	}

	if err != nil {
		return
	}

	cpu.Pc = next

	return
}

// integer is the set of ALU operand types.
type integer interface {
	uint8 | uint16 | uint32 | uint64
}

// float is the set of float ALU operand types.
type float interface {
	float32 | float64
}

// alu performs an integer operation, wrapping at the width of T.
func alu[T integer](op CodeAluOp, input T, value T) (output T, err error) {
	switch op {
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
	case ALU_OP_SHR:
		output = input >> value
	case ALU_OP_SHL:
		output = input << value
	case ALU_OP_AND:
		output = input & value
	case ALU_OP_ORR:
		output = input | value
	case ALU_OP_XOR:
		output = input ^ value
	}

	return
}

// aluAt applies an integer operation to the value at dst.
func aluAt[T integer](m *memory.Memory, op CodeAluOp, dst uint64, value uint64) (err error) {
	input, err := memory.Get[T](m, dst)
	if err != nil {
		return
	}

	// A shift count at or above the width shifts out every bit.
	var output T
	shifted := (op == ALU_OP_SHR || op == ALU_OP_SHL) && value >= uint64(8*memory.SizeOf[T]())
	if !shifted {
		output, err = alu(op, input, T(value))
		if err != nil {
			return
		}
	}

	err = memory.Set(m, dst, output)

	return
}

// floatAt applies an IEEE754 operation to the values at dst and src.
func floatAt[T float](m *memory.Memory, op CodeAluOp, dst uint64, src uint64) (err error) {
	input, err := memory.Get[T](m, dst)
	if err != nil {
		return
	}

	value, err := memory.Get[T](m, src)
	if err != nil {
		return
	}

	var output T
	switch op {
	case ALU_OP_ADD:
		output = input + value
	case ALU_OP_SUB:
		output = input - value
	case ALU_OP_MUL:
		output = input * value
	case ALU_OP_DIV:
		output = input / value
	}

	err = memory.Set(m, dst, output)

	return
}
