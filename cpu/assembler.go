// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"encoding/binary"
	"errors"
	"io"
	"iter"
	"log"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/ezrec/mvm/internal"
	"github.com/ezrec/mvm/memory"
)

// ZERO_LABEL is the built-in label of the reserved exit cell.
const ZERO_LABEL = "._zero"

// Data directives, and their element widths.
var dataWidth = map[string]int{
	"datb": 1,
	"dats": 2,
	"datl": 4,
	"datw": 8,
}

// mnemonicMap maps each mnemonic to its opcode variants.
var mnemonicMap = func() (mnemonics map[string][]Op) {
	mnemonics = make(map[string][]Op, len(codeInfo))
	for op := range OP_COUNT {
		info, ok := codeInfo[Op(op)]
		if !ok {
			continue
		}
		mnemonics[info.Mnemonic] = append(mnemonics[info.Mnemonic], Op(op))
	}

	return
}()

// Assembler is a two pass assembler for the mvm.
type Assembler struct {
	Verbose bool              // If set, verbosely logs the assembler actions.
	Label   map[string]uint64 // Map of labels to addresses.

	predefine map[string]uint64 // Predefines
}

// Predefine defines a name for compile-time $(...) expressions.
func (asm *Assembler) Predefine(name string, value uint64) {
	if asm.predefine == nil {
		asm.predefine = map[string]uint64{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// Defines returns all names visible to compile-time expressions.
func (asm *Assembler) Defines() iter.Seq2[string, uint64] {
	return internal.IterSeq2Concat(memory.Defines(), maps.All(asm.predefine))
}

// Assemble assembles source text into an image.
func Assemble(source string) (image []byte, err error) {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(source))
	if err != nil {
		return
	}

	image = prog.Binary()

	return
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	parser := &Parser{Defines: asm.Defines()}
	tree, err := parser.Parse(input)
	if err != nil {
		return
	}

	prog, err = asm.Compile(tree)

	return
}

// Compile assembles a syntax tree into a Program. No program is returned
// on error.
func (asm *Assembler) Compile(tree *Tree) (prog *Program, err error) {
	var cmd *Cmd

	defer func() {
		if err != nil {
			prog = nil
			if cmd != nil {
				err = &ErrSyntax{LineNo: cmd.LineNo, Column: cmd.column(err), Text: cmd.String(), Err: err}
			}
		}
	}()

	// Pass 1: labels and sizes.
	asm.Label = map[string]uint64{ZERO_LABEL: memory.IMAGE_BASE}
	sizes := make(map[*Cmd]int, len(tree.Nodes))

	addr := uint64(memory.PROGRAM_BASE)
	for _, node := range tree.Nodes {
		switch node := node.(type) {
		case *Label:
			_, ok := asm.Label[node.Name]
			if ok {
				err = &ErrSyntax{LineNo: node.LineNo, Column: node.Column, Text: node.Name, Err: ErrLabelDuplicate(node.Name)}
				return
			}
			asm.Label[node.Name] = addr
		case *Cmd:
			cmd = node
			var size int
			size, err = asm.sizeOf(cmd)
			if err != nil {
				return
			}
			sizes[cmd] = size
			addr += uint64(size)
			cmd = nil
		}
	}

	// Pass 2: encoding.
	prog = &Program{Label: maps.Clone(asm.Label)}

	addr = memory.PROGRAM_BASE
	for _, node := range tree.Nodes {
		var ok bool
		cmd, ok = node.(*Cmd)
		if !ok {
			continue
		}

		opcode := Opcode{LineNo: cmd.LineNo, Addr: addr, Words: cmd.Words()}
		opcode.Bytes, opcode.Code, err = asm.encode(cmd)
		if err != nil {
			return
		}

		if len(opcode.Bytes) != sizes[cmd] {
			err = ErrSizeMismatch
			return
		}

		if asm.Verbose {
			log.Print(f("asm: %04x: %v", addr, cmd.String()))
		}

		prog.Opcodes = append(prog.Opcodes, opcode)
		addr += uint64(len(opcode.Bytes))
	}
	cmd = nil

	return
}

// column returns the source column of the operand an error names, or of
// the mnemonic.
func (cmd *Cmd) column(err error) int {
	var kind ErrOperandKind
	if errors.As(err, &kind) && kind.Index < len(cmd.Args) {
		return cmd.Args[kind.Index].Column
	}

	var missing ErrLabelMissing
	if errors.As(err, &missing) {
		for _, arg := range cmd.Args {
			if arg.Kind == VALUE_LABEL && arg.Name == string(missing) {
				return arg.Column
			}
		}
	}

	return cmd.Column
}

// arity returns the minimum and maximum argument count of a class.
func arity(class CodeClass) (minArgs int, maxArgs int) {
	switch class {
	case CLASS_EXIT:
		maxArgs = 1
	case CLASS_ALU, CLASS_COPY, CLASS_FLOAT, CLASS_COPY_THROUGH, CLASS_BRANCH:
		minArgs, maxArgs = 2, 2
	case CLASS_PUSH, CLASS_POP, CLASS_JUMP, CLASS_CALL, CLASS_ALLOC, CLASS_FREE:
		minArgs, maxArgs = 1, 1
	}

	return
}

// selectOp chooses the opcode variant for a command from its operand kinds.
func (asm *Assembler) selectOp(cmd *Cmd) (op Op, err error) {
	ops, ok := mnemonicMap[cmd.Mnemonic]
	if !ok {
		err = ErrMnemonicUnknown(cmd.Mnemonic)
		return
	}

	info := ops[0].Info()
	minArgs, maxArgs := arity(info.Class)
	switch {
	case len(cmd.Args) < minArgs:
		err = ErrOpcodeValueMissing
		return
	case len(cmd.Args) > maxArgs:
		err = ErrOpcodeExtraArgs
		return
	}

	kindErr := func(n int) error {
		return ErrOperandKind{Mnemonic: cmd.Mnemonic, Index: n, Kind: cmd.Args[n].Kind}
	}

	// Every operand but an immediate source must be an address.
	source := -1
	if info.Class == CLASS_ALU || info.Class == CLASS_COPY {
		source = 1
	} else if info.Class == CLASS_PUSH {
		source = 0
	}

	for n, arg := range cmd.Args {
		if n != source && !arg.IsAddress() {
			err = kindErr(n)
			return
		}
	}

	op = ops[0]
	if source < 0 {
		return
	}

	arg := cmd.Args[source]
	want := SOURCE_PTR
	switch {
	case arg.IsAddress():
	case arg.IsInteger():
		want = SOURCE_IMM
	case arg.Kind == VALUE_FLOAT && info.Class == CLASS_COPY && info.Width >= 4:
		want = SOURCE_IMM
	default:
		err = kindErr(source)
		return
	}

	for _, variant := range ops {
		if variant.Info().Source == want {
			op = variant
			return
		}
	}

	err = kindErr(source)

	return
}

// sizeOf computes the encoded size of a command.
func (asm *Assembler) sizeOf(cmd *Cmd) (size int, err error) {
	width, ok := dataWidth[cmd.Mnemonic]
	if ok {
		if len(cmd.Args) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		for n, arg := range cmd.Args {
			switch {
			case arg.Kind == VALUE_STRING && width == 1:
				size += len(arg.Name)
			case arg.IsInteger():
				size += width
			case arg.Kind == VALUE_FLOAT && width >= 4:
				size += width
			case arg.IsAddress() && width == memory.ADDRESS_SIZE:
				size += width
			default:
				err = ErrOperandKind{Mnemonic: cmd.Mnemonic, Index: n, Kind: arg.Kind}
				return
			}
		}
		return
	}

	op, err := asm.selectOp(cmd)
	if err != nil {
		return
	}

	size = op.Info().Size()

	return
}

// resolve returns the address an operand refers to.
func (asm *Assembler) resolve(value Value) (addr uint64, err error) {
	if value.Kind != VALUE_LABEL {
		addr = value.Bits
		return
	}

	addr, ok := asm.Label[value.Name]
	if !ok {
		err = ErrLabelMissing(value.Name)
	}

	return
}

// literal returns the bit pattern of a value at a width.
func (asm *Assembler) literal(value Value, width int) (bits uint64, err error) {
	switch {
	case value.IsAddress():
		bits, err = asm.resolve(value)
	case value.Kind == VALUE_FLOAT && width == 8:
		bits = math.Float64bits(float64(value.Float()))
	default:
		bits = value.Bits
	}

	return
}

// encode emits the bytes of a command.
func (asm *Assembler) encode(cmd *Cmd) (buf []byte, code *Code, err error) {
	width, ok := dataWidth[cmd.Mnemonic]
	if ok {
		for _, arg := range cmd.Args {
			if arg.Kind == VALUE_STRING {
				buf = append(buf, arg.Name...)
				continue
			}
			var bits uint64
			bits, err = asm.literal(arg, width)
			if err != nil {
				return
			}
			var raw [8]byte
			binary.LittleEndian.PutUint64(raw[:], bits)
			buf = append(buf, raw[:width]...)
		}
		return
	}

	op, err := asm.selectOp(cmd)
	if err != nil {
		return
	}

	info := op.Info()
	args := slices.Clone(cmd.Args)
	if info.Class == CLASS_EXIT && len(args) == 0 {
		args = append(args, Value{Kind: VALUE_LABEL, Name: ZERO_LABEL})
	}

	code = &Code{Op: op}
	for n, arg := range args {
		var bits uint64
		bits, err = asm.literal(arg, info.Width)
		if err != nil {
			return
		}
		if n == 1 && isShift(info) {
			bits = saturate(bits, info.Width)
		}
		code.Args = append(code.Args, bits)
	}

	buf, err = code.Bytes()

	return
}

// isShift is true for shifts by an immediate count.
func isShift(info CodeInfo) bool {
	return info.Class == CLASS_ALU && info.Source == SOURCE_IMM &&
		(info.Alu == ALU_OP_SHR || info.Alu == ALU_OP_SHL)
}

// saturate clamps an immediate to the largest value of a width, so that
// an oversize shift count still shifts out every bit.
func saturate(bits uint64, width int) uint64 {
	if width >= 8 {
		return bits
	}

	limit := uint64(1)<<(8*width) - 1

	return min(bits, limit)
}
