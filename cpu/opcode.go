package cpu

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/ezrec/mvm/memory"
)

// Op is a one byte operation code.
type Op uint8

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_NOP    = Op(0)   // nop
	OP_XIT    = Op(1)   // xit
	OP_ADDB_I = Op(2)   // addb.i
	OP_ADDB_P = Op(3)   // addb.p
	OP_ADDS_I = Op(4)   // adds.i
	OP_ADDS_P = Op(5)   // adds.p
	OP_ADDL_I = Op(6)   // addl.i
	OP_ADDL_P = Op(7)   // addl.p
	OP_ADDW_I = Op(8)   // addw.i
	OP_ADDW_P = Op(9)   // addw.p
	OP_SUBB_I = Op(10)  // subb.i
	OP_SUBB_P = Op(11)  // subb.p
	OP_SUBS_I = Op(12)  // subs.i
	OP_SUBS_P = Op(13)  // subs.p
	OP_SUBL_I = Op(14)  // subl.i
	OP_SUBL_P = Op(15)  // subl.p
	OP_SUBW_I = Op(16)  // subw.i
	OP_SUBW_P = Op(17)  // subw.p
	OP_MULB_I = Op(18)  // mulb.i
	OP_MULB_P = Op(19)  // mulb.p
	OP_MULS_I = Op(20)  // muls.i
	OP_MULS_P = Op(21)  // muls.p
	OP_MULL_I = Op(22)  // mull.i
	OP_MULL_P = Op(23)  // mull.p
	OP_MULW_I = Op(24)  // mulw.i
	OP_MULW_P = Op(25)  // mulw.p
	OP_DIVB_I = Op(26)  // divb.i
	OP_DIVB_P = Op(27)  // divb.p
	OP_DIVS_I = Op(28)  // divs.i
	OP_DIVS_P = Op(29)  // divs.p
	OP_DIVL_I = Op(30)  // divl.i
	OP_DIVL_P = Op(31)  // divl.p
	OP_DIVW_I = Op(32)  // divw.i
	OP_DIVW_P = Op(33)  // divw.p
	OP_MODB_I = Op(34)  // modb.i
	OP_MODB_P = Op(35)  // modb.p
	OP_MODS_I = Op(36)  // mods.i
	OP_MODS_P = Op(37)  // mods.p
	OP_MODL_I = Op(38)  // modl.i
	OP_MODL_P = Op(39)  // modl.p
	OP_MODW_I = Op(40)  // modw.i
	OP_MODW_P = Op(41)  // modw.p
	OP_SHRB_I = Op(42)  // shrb.i
	OP_SHRB_P = Op(43)  // shrb.p
	OP_SHRS_I = Op(44)  // shrs.i
	OP_SHRS_P = Op(45)  // shrs.p
	OP_SHRL_I = Op(46)  // shrl.i
	OP_SHRL_P = Op(47)  // shrl.p
	OP_SHRW_I = Op(48)  // shrw.i
	OP_SHRW_P = Op(49)  // shrw.p
	OP_SHLB_I = Op(50)  // shlb.i
	OP_SHLB_P = Op(51)  // shlb.p
	OP_SHLS_I = Op(52)  // shls.i
	OP_SHLS_P = Op(53)  // shls.p
	OP_SHLL_I = Op(54)  // shll.i
	OP_SHLL_P = Op(55)  // shll.p
	OP_SHLW_I = Op(56)  // shlw.i
	OP_SHLW_P = Op(57)  // shlw.p
	OP_ANDB_I = Op(58)  // andb.i
	OP_ANDB_P = Op(59)  // andb.p
	OP_ANDS_I = Op(60)  // ands.i
	OP_ANDS_P = Op(61)  // ands.p
	OP_ANDL_I = Op(62)  // andl.i
	OP_ANDL_P = Op(63)  // andl.p
	OP_ANDW_I = Op(64)  // andw.i
	OP_ANDW_P = Op(65)  // andw.p
	OP_ORRB_I = Op(66)  // orrb.i
	OP_ORRB_P = Op(67)  // orrb.p
	OP_ORRS_I = Op(68)  // orrs.i
	OP_ORRS_P = Op(69)  // orrs.p
	OP_ORRL_I = Op(70)  // orrl.i
	OP_ORRL_P = Op(71)  // orrl.p
	OP_ORRW_I = Op(72)  // orrw.i
	OP_ORRW_P = Op(73)  // orrw.p
	OP_XORB_I = Op(74)  // xorb.i
	OP_XORB_P = Op(75)  // xorb.p
	OP_XORS_I = Op(76)  // xors.i
	OP_XORS_P = Op(77)  // xors.p
	OP_XORL_I = Op(78)  // xorl.i
	OP_XORL_P = Op(79)  // xorl.p
	OP_XORW_I = Op(80)  // xorw.i
	OP_XORW_P = Op(81)  // xorw.p
	OP_CPYB_I = Op(82)  // cpyb.i
	OP_CPYB_P = Op(83)  // cpyb.p
	OP_CPYS_I = Op(84)  // cpys.i
	OP_CPYS_P = Op(85)  // cpys.p
	OP_CPYL_I = Op(86)  // cpyl.i
	OP_CPYL_P = Op(87)  // cpyl.p
	OP_CPYW_I = Op(88)  // cpyw.i
	OP_CPYW_P = Op(89)  // cpyw.p
	OP_CPAB   = Op(90)  // cpab
	OP_CPAS   = Op(91)  // cpas
	OP_CPAL   = Op(92)  // cpal
	OP_CPAW   = Op(93)  // cpaw
	OP_ADDF   = Op(94)  // addf
	OP_ADDD   = Op(95)  // addd
	OP_SUBF   = Op(96)  // subf
	OP_SUBD   = Op(97)  // subd
	OP_MULF   = Op(98)  // mulf
	OP_MULD   = Op(99)  // muld
	OP_DIVF   = Op(100) // divf
	OP_DIVD   = Op(101) // divd
	OP_PSHB_I = Op(102) // pshb.i
	OP_PSHB_P = Op(103) // pshb.p
	OP_PSHS_I = Op(104) // pshs.i
	OP_PSHS_P = Op(105) // pshs.p
	OP_PSHL_I = Op(106) // pshl.i
	OP_PSHL_P = Op(107) // pshl.p
	OP_PSHW_I = Op(108) // pshw.i
	OP_PSHW_P = Op(109) // pshw.p
	OP_POPB   = Op(110) // popb
	OP_POPS   = Op(111) // pops
	OP_POPL   = Op(112) // popl
	OP_POPW   = Op(113) // popw
	OP_JMP    = Op(114) // jmp
	OP_JIT    = Op(115) // jit
	OP_CAL    = Op(116) // cal
	OP_RET    = Op(117) // ret
	OP_ALP    = Op(118) // alp
	OP_FRP    = Op(119) // frp
	OP_ASY    = Op(120) // asy
	OP_EXT    = Op(121) // ext
)

// OP_COUNT is the number of defined opcodes. Opcode bytes at or above it
// are unrecognized.
const OP_COUNT = int(OP_EXT) + 1

// CodeClass is the semantic family of an opcode.
type CodeClass int

const (
	CLASS_NOP          = CodeClass(iota) // No operation.
	CLASS_EXIT                           // Halt with the byte at the operand address.
	CLASS_ALU                            // Integer arithmetic and bitwise.
	CLASS_FLOAT                          // IEEE754 arithmetic.
	CLASS_COPY                           // Store a value.
	CLASS_COPY_THROUGH                   // Store a pointed-to value.
	CLASS_PUSH                           // Push a value on the return stack.
	CLASS_POP                            // Pop a value off the return stack.
	CLASS_JUMP                           // Unconditional jump.
	CLASS_BRANCH                         // Jump if true.
	CLASS_CALL                           // Push return address and jump.
	CLASS_RETURN                         // Pop return address and jump.
	CLASS_ALLOC                          // Allocate a page.
	CLASS_FREE                           // Free a page.
	CLASS_RESERVED                       // Reserved for extensions.
)

// CodeAluOp is an arithmetic operation.
type CodeAluOp int

const (
	ALU_OP_NONE = CodeAluOp(iota)
	ALU_OP_ADD
	ALU_OP_SUB
	ALU_OP_MUL
	ALU_OP_DIV
	ALU_OP_MOD
	ALU_OP_SHR
	ALU_OP_SHL
	ALU_OP_AND
	ALU_OP_ORR
	ALU_OP_XOR
)

// CodeSource is the encoding of an instruction's source operand.
type CodeSource int

const (
	SOURCE_NONE = CodeSource(0) // No source operand.
	SOURCE_IMM  = CodeSource(1) // Immediate value, encoded at the value width.
	SOURCE_PTR  = CodeSource(2) // Address of the value.
)

// CodeInfo describes an opcode's semantics and operand layout.
type CodeInfo struct {
	Mnemonic string     // Assembly mnemonic.
	Class    CodeClass  // Semantic family.
	Alu      CodeAluOp  // Arithmetic operation, for ALU and FLOAT classes.
	Width    int        // Value width in bytes.
	Source   CodeSource // Source operand encoding.
}

var codeInfo = map[Op]CodeInfo{
	OP_NOP:    {"nop", CLASS_NOP, ALU_OP_NONE, 0, SOURCE_NONE},
	OP_XIT:    {"xit", CLASS_EXIT, ALU_OP_NONE, 0, SOURCE_NONE},
	OP_ADDB_I: {"addb", CLASS_ALU, ALU_OP_ADD, 1, SOURCE_IMM},
	OP_ADDB_P: {"addb", CLASS_ALU, ALU_OP_ADD, 1, SOURCE_PTR},
	OP_ADDS_I: {"adds", CLASS_ALU, ALU_OP_ADD, 2, SOURCE_IMM},
	OP_ADDS_P: {"adds", CLASS_ALU, ALU_OP_ADD, 2, SOURCE_PTR},
	OP_ADDL_I: {"addl", CLASS_ALU, ALU_OP_ADD, 4, SOURCE_IMM},
	OP_ADDL_P: {"addl", CLASS_ALU, ALU_OP_ADD, 4, SOURCE_PTR},
	OP_ADDW_I: {"addw", CLASS_ALU, ALU_OP_ADD, 8, SOURCE_IMM},
	OP_ADDW_P: {"addw", CLASS_ALU, ALU_OP_ADD, 8, SOURCE_PTR},
	OP_SUBB_I: {"subb", CLASS_ALU, ALU_OP_SUB, 1, SOURCE_IMM},
	OP_SUBB_P: {"subb", CLASS_ALU, ALU_OP_SUB, 1, SOURCE_PTR},
	OP_SUBS_I: {"subs", CLASS_ALU, ALU_OP_SUB, 2, SOURCE_IMM},
	OP_SUBS_P: {"subs", CLASS_ALU, ALU_OP_SUB, 2, SOURCE_PTR},
	OP_SUBL_I: {"subl", CLASS_ALU, ALU_OP_SUB, 4, SOURCE_IMM},
	OP_SUBL_P: {"subl", CLASS_ALU, ALU_OP_SUB, 4, SOURCE_PTR},
	OP_SUBW_I: {"subw", CLASS_ALU, ALU_OP_SUB, 8, SOURCE_IMM},
	OP_SUBW_P: {"subw", CLASS_ALU, ALU_OP_SUB, 8, SOURCE_PTR},
	OP_MULB_I: {"mulb", CLASS_ALU, ALU_OP_MUL, 1, SOURCE_IMM},
	OP_MULB_P: {"mulb", CLASS_ALU, ALU_OP_MUL, 1, SOURCE_PTR},
	OP_MULS_I: {"muls", CLASS_ALU, ALU_OP_MUL, 2, SOURCE_IMM},
	OP_MULS_P: {"muls", CLASS_ALU, ALU_OP_MUL, 2, SOURCE_PTR},
	OP_MULL_I: {"mull", CLASS_ALU, ALU_OP_MUL, 4, SOURCE_IMM},
	OP_MULL_P: {"mull", CLASS_ALU, ALU_OP_MUL, 4, SOURCE_PTR},
	OP_MULW_I: {"mulw", CLASS_ALU, ALU_OP_MUL, 8, SOURCE_IMM},
	OP_MULW_P: {"mulw", CLASS_ALU, ALU_OP_MUL, 8, SOURCE_PTR},
	OP_DIVB_I: {"divb", CLASS_ALU, ALU_OP_DIV, 1, SOURCE_IMM},
	OP_DIVB_P: {"divb", CLASS_ALU, ALU_OP_DIV, 1, SOURCE_PTR},
	OP_DIVS_I: {"divs", CLASS_ALU, ALU_OP_DIV, 2, SOURCE_IMM},
	OP_DIVS_P: {"divs", CLASS_ALU, ALU_OP_DIV, 2, SOURCE_PTR},
	OP_DIVL_I: {"divl", CLASS_ALU, ALU_OP_DIV, 4, SOURCE_IMM},
	OP_DIVL_P: {"divl", CLASS_ALU, ALU_OP_DIV, 4, SOURCE_PTR},
	OP_DIVW_I: {"divw", CLASS_ALU, ALU_OP_DIV, 8, SOURCE_IMM},
	OP_DIVW_P: {"divw", CLASS_ALU, ALU_OP_DIV, 8, SOURCE_PTR},
	OP_MODB_I: {"modb", CLASS_ALU, ALU_OP_MOD, 1, SOURCE_IMM},
	OP_MODB_P: {"modb", CLASS_ALU, ALU_OP_MOD, 1, SOURCE_PTR},
	OP_MODS_I: {"mods", CLASS_ALU, ALU_OP_MOD, 2, SOURCE_IMM},
	OP_MODS_P: {"mods", CLASS_ALU, ALU_OP_MOD, 2, SOURCE_PTR},
	OP_MODL_I: {"modl", CLASS_ALU, ALU_OP_MOD, 4, SOURCE_IMM},
	OP_MODL_P: {"modl", CLASS_ALU, ALU_OP_MOD, 4, SOURCE_PTR},
	OP_MODW_I: {"modw", CLASS_ALU, ALU_OP_MOD, 8, SOURCE_IMM},
	OP_MODW_P: {"modw", CLASS_ALU, ALU_OP_MOD, 8, SOURCE_PTR},
	OP_SHRB_I: {"shrb", CLASS_ALU, ALU_OP_SHR, 1, SOURCE_IMM},
	OP_SHRB_P: {"shrb", CLASS_ALU, ALU_OP_SHR, 1, SOURCE_PTR},
	OP_SHRS_I: {"shrs", CLASS_ALU, ALU_OP_SHR, 2, SOURCE_IMM},
	OP_SHRS_P: {"shrs", CLASS_ALU, ALU_OP_SHR, 2, SOURCE_PTR},
	OP_SHRL_I: {"shrl", CLASS_ALU, ALU_OP_SHR, 4, SOURCE_IMM},
	OP_SHRL_P: {"shrl", CLASS_ALU, ALU_OP_SHR, 4, SOURCE_PTR},
	OP_SHRW_I: {"shrw", CLASS_ALU, ALU_OP_SHR, 8, SOURCE_IMM},
	OP_SHRW_P: {"shrw", CLASS_ALU, ALU_OP_SHR, 8, SOURCE_PTR},
	OP_SHLB_I: {"shlb", CLASS_ALU, ALU_OP_SHL, 1, SOURCE_IMM},
	OP_SHLB_P: {"shlb", CLASS_ALU, ALU_OP_SHL, 1, SOURCE_PTR},
	OP_SHLS_I: {"shls", CLASS_ALU, ALU_OP_SHL, 2, SOURCE_IMM},
	OP_SHLS_P: {"shls", CLASS_ALU, ALU_OP_SHL, 2, SOURCE_PTR},
	OP_SHLL_I: {"shll", CLASS_ALU, ALU_OP_SHL, 4, SOURCE_IMM},
	OP_SHLL_P: {"shll", CLASS_ALU, ALU_OP_SHL, 4, SOURCE_PTR},
	OP_SHLW_I: {"shlw", CLASS_ALU, ALU_OP_SHL, 8, SOURCE_IMM},
	OP_SHLW_P: {"shlw", CLASS_ALU, ALU_OP_SHL, 8, SOURCE_PTR},
	OP_ANDB_I: {"andb", CLASS_ALU, ALU_OP_AND, 1, SOURCE_IMM},
	OP_ANDB_P: {"andb", CLASS_ALU, ALU_OP_AND, 1, SOURCE_PTR},
	OP_ANDS_I: {"ands", CLASS_ALU, ALU_OP_AND, 2, SOURCE_IMM},
	OP_ANDS_P: {"ands", CLASS_ALU, ALU_OP_AND, 2, SOURCE_PTR},
	OP_ANDL_I: {"andl", CLASS_ALU, ALU_OP_AND, 4, SOURCE_IMM},
	OP_ANDL_P: {"andl", CLASS_ALU, ALU_OP_AND, 4, SOURCE_PTR},
	OP_ANDW_I: {"andw", CLASS_ALU, ALU_OP_AND, 8, SOURCE_IMM},
	OP_ANDW_P: {"andw", CLASS_ALU, ALU_OP_AND, 8, SOURCE_PTR},
	OP_ORRB_I: {"orrb", CLASS_ALU, ALU_OP_ORR, 1, SOURCE_IMM},
	OP_ORRB_P: {"orrb", CLASS_ALU, ALU_OP_ORR, 1, SOURCE_PTR},
	OP_ORRS_I: {"orrs", CLASS_ALU, ALU_OP_ORR, 2, SOURCE_IMM},
	OP_ORRS_P: {"orrs", CLASS_ALU, ALU_OP_ORR, 2, SOURCE_PTR},
	OP_ORRL_I: {"orrl", CLASS_ALU, ALU_OP_ORR, 4, SOURCE_IMM},
	OP_ORRL_P: {"orrl", CLASS_ALU, ALU_OP_ORR, 4, SOURCE_PTR},
	OP_ORRW_I: {"orrw", CLASS_ALU, ALU_OP_ORR, 8, SOURCE_IMM},
	OP_ORRW_P: {"orrw", CLASS_ALU, ALU_OP_ORR, 8, SOURCE_PTR},
	OP_XORB_I: {"xorb", CLASS_ALU, ALU_OP_XOR, 1, SOURCE_IMM},
	OP_XORB_P: {"xorb", CLASS_ALU, ALU_OP_XOR, 1, SOURCE_PTR},
	OP_XORS_I: {"xors", CLASS_ALU, ALU_OP_XOR, 2, SOURCE_IMM},
	OP_XORS_P: {"xors", CLASS_ALU, ALU_OP_XOR, 2, SOURCE_PTR},
	OP_XORL_I: {"xorl", CLASS_ALU, ALU_OP_XOR, 4, SOURCE_IMM},
	OP_XORL_P: {"xorl", CLASS_ALU, ALU_OP_XOR, 4, SOURCE_PTR},
	OP_XORW_I: {"xorw", CLASS_ALU, ALU_OP_XOR, 8, SOURCE_IMM},
	OP_XORW_P: {"xorw", CLASS_ALU, ALU_OP_XOR, 8, SOURCE_PTR},
	OP_CPYB_I: {"cpyb", CLASS_COPY, ALU_OP_NONE, 1, SOURCE_IMM},
	OP_CPYB_P: {"cpyb", CLASS_COPY, ALU_OP_NONE, 1, SOURCE_PTR},
	OP_CPYS_I: {"cpys", CLASS_COPY, ALU_OP_NONE, 2, SOURCE_IMM},
	OP_CPYS_P: {"cpys", CLASS_COPY, ALU_OP_NONE, 2, SOURCE_PTR},
	OP_CPYL_I: {"cpyl", CLASS_COPY, ALU_OP_NONE, 4, SOURCE_IMM},
	OP_CPYL_P: {"cpyl", CLASS_COPY, ALU_OP_NONE, 4, SOURCE_PTR},
	OP_CPYW_I: {"cpyw", CLASS_COPY, ALU_OP_NONE, 8, SOURCE_IMM},
	OP_CPYW_P: {"cpyw", CLASS_COPY, ALU_OP_NONE, 8, SOURCE_PTR},
	OP_CPAB:   {"cpab", CLASS_COPY_THROUGH, ALU_OP_NONE, 1, SOURCE_PTR},
	OP_CPAS:   {"cpas", CLASS_COPY_THROUGH, ALU_OP_NONE, 2, SOURCE_PTR},
	OP_CPAL:   {"cpal", CLASS_COPY_THROUGH, ALU_OP_NONE, 4, SOURCE_PTR},
	OP_CPAW:   {"cpaw", CLASS_COPY_THROUGH, ALU_OP_NONE, 8, SOURCE_PTR},
	OP_ADDF:   {"addf", CLASS_FLOAT, ALU_OP_ADD, 4, SOURCE_PTR},
	OP_ADDD:   {"addd", CLASS_FLOAT, ALU_OP_ADD, 8, SOURCE_PTR},
	OP_SUBF:   {"subf", CLASS_FLOAT, ALU_OP_SUB, 4, SOURCE_PTR},
	OP_SUBD:   {"subd", CLASS_FLOAT, ALU_OP_SUB, 8, SOURCE_PTR},
	OP_MULF:   {"mulf", CLASS_FLOAT, ALU_OP_MUL, 4, SOURCE_PTR},
	OP_MULD:   {"muld", CLASS_FLOAT, ALU_OP_MUL, 8, SOURCE_PTR},
	OP_DIVF:   {"divf", CLASS_FLOAT, ALU_OP_DIV, 4, SOURCE_PTR},
	OP_DIVD:   {"divd", CLASS_FLOAT, ALU_OP_DIV, 8, SOURCE_PTR},
	OP_PSHB_I: {"pshb", CLASS_PUSH, ALU_OP_NONE, 1, SOURCE_IMM},
	OP_PSHB_P: {"pshb", CLASS_PUSH, ALU_OP_NONE, 1, SOURCE_PTR},
	OP_PSHS_I: {"pshs", CLASS_PUSH, ALU_OP_NONE, 2, SOURCE_IMM},
	OP_PSHS_P: {"pshs", CLASS_PUSH, ALU_OP_NONE, 2, SOURCE_PTR},
	OP_PSHL_I: {"pshl", CLASS_PUSH, ALU_OP_NONE, 4, SOURCE_IMM},
	OP_PSHL_P: {"pshl", CLASS_PUSH, ALU_OP_NONE, 4, SOURCE_PTR},
	OP_PSHW_I: {"pshw", CLASS_PUSH, ALU_OP_NONE, 8, SOURCE_IMM},
	OP_PSHW_P: {"pshw", CLASS_PUSH, ALU_OP_NONE, 8, SOURCE_PTR},
	OP_POPB:   {"popb", CLASS_POP, ALU_OP_NONE, 1, SOURCE_NONE},
	OP_POPS:   {"pops", CLASS_POP, ALU_OP_NONE, 2, SOURCE_NONE},
	OP_POPL:   {"popl", CLASS_POP, ALU_OP_NONE, 4, SOURCE_NONE},
	OP_POPW:   {"popw", CLASS_POP, ALU_OP_NONE, 8, SOURCE_NONE},
	OP_JMP:    {"jmp", CLASS_JUMP, ALU_OP_NONE, 0, SOURCE_NONE},
	OP_JIT:    {"jit", CLASS_BRANCH, ALU_OP_NONE, 0, SOURCE_NONE},
	OP_CAL:    {"cal", CLASS_CALL, ALU_OP_NONE, 0, SOURCE_NONE},
	OP_RET:    {"ret", CLASS_RETURN, ALU_OP_NONE, 0, SOURCE_NONE},
	OP_ALP:    {"alp", CLASS_ALLOC, ALU_OP_NONE, 0, SOURCE_NONE},
	OP_FRP:    {"frp", CLASS_FREE, ALU_OP_NONE, 0, SOURCE_NONE},
	OP_ASY:    {"asy", CLASS_RESERVED, ALU_OP_NONE, 0, SOURCE_NONE},
	OP_EXT:    {"ext", CLASS_RESERVED, ALU_OP_NONE, 0, SOURCE_NONE},
}

// Decode maps an opcode byte to its Op. Bytes without an opcode are an
// error, never an Op.
func Decode(b byte) (op Op, err error) {
	op = Op(b)
	if _, ok := codeInfo[op]; !ok {
		err = ErrOpcodeUnknown(b)
	}

	return
}

// Info returns the description of a defined opcode.
func (op Op) Info() (info CodeInfo) {
	return codeInfo[op]
}

// Operands returns the encoded width of each operand following the opcode.
func (info CodeInfo) Operands() (widths []int) {
	source := memory.ADDRESS_SIZE
	if info.Source == SOURCE_IMM {
		source = info.Width
	}

	switch info.Class {
	case CLASS_ALU, CLASS_COPY:
		widths = []int{memory.ADDRESS_SIZE, source}
	case CLASS_FLOAT, CLASS_COPY_THROUGH, CLASS_BRANCH:
		widths = []int{memory.ADDRESS_SIZE, memory.ADDRESS_SIZE}
	case CLASS_PUSH:
		widths = []int{source}
	case CLASS_EXIT, CLASS_POP, CLASS_JUMP, CLASS_CALL, CLASS_ALLOC, CLASS_FREE:
		widths = []int{memory.ADDRESS_SIZE}
	}

	return
}

// Size returns the encoded size of the opcode and its operands.
func (info CodeInfo) Size() (size int) {
	size = 1
	for _, width := range info.Operands() {
		size += width
	}

	return
}

// Code is a single instruction: an opcode and its operand values.
type Code struct {
	Op   Op
	Args []uint64
}

// MakeCode creates an instruction.
func MakeCode(op Op, args ...uint64) Code {
	return Code{Op: op, Args: args}
}

// Info returns the description of the instruction's opcode.
func (code Code) Info() CodeInfo {
	return code.Op.Info()
}

// Size returns the encoded size of the instruction.
func (code Code) Size() int {
	return code.Info().Size()
}

// Bytes encodes the instruction. Operand values are truncated to their
// encoded width.
func (code Code) Bytes() (buf []byte, err error) {
	if _, err = Decode(byte(code.Op)); err != nil {
		return
	}

	widths := code.Info().Operands()
	if len(widths) != len(code.Args) {
		err = ErrOpcodeArgs
		return
	}

	buf = append(buf, byte(code.Op))
	for n, width := range widths {
		var raw [8]byte
		binary.LittleEndian.PutUint64(raw[:], code.Args[n])
		buf = append(buf, raw[:width]...)
	}

	return
}

// DecodeCode decodes the instruction at the start of buf.
func DecodeCode(buf []byte) (code Code, err error) {
	if len(buf) == 0 {
		err = ErrOpcodeTruncated
		return
	}

	code.Op, err = Decode(buf[0])
	if err != nil {
		return
	}

	buf = buf[1:]
	for _, width := range code.Info().Operands() {
		if len(buf) < width {
			err = ErrOpcodeTruncated
			return
		}
		var raw [8]byte
		copy(raw[:], buf[:width])
		code.Args = append(code.Args, binary.LittleEndian.Uint64(raw[:]))
		buf = buf[width:]
	}

	return
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	info := code.Info()
	if info.Mnemonic == "" {
		return code.Op.String()
	}

	words := []string{info.Mnemonic}
	for n, arg := range code.Args {
		immediate := info.Source == SOURCE_IMM && n == len(code.Args)-1
		if immediate {
			words = append(words, fmt.Sprintf("%d", arg))
		} else {
			words = append(words, fmt.Sprintf("&%d", arg))
		}
	}

	return strings.Join(words, " ")
}
