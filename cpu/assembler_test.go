package cpu

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mvm/memory"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))
	assert.Equal([]byte{0}, prog.Binary())

	assert.Equal(uint64(memory.IMAGE_BASE), asm.Label[ZERO_LABEL])
	assert.Equal(uint64(memory.IMAGE_BASE), prog.Label[ZERO_LABEL])
}

func TestAssemble_Example(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"addb ._zero 10",
		"modb ._zero 7",
		"xit",
	}

	image, err := Assemble(strings.Join(program, "\n"))
	assert.NoError(err)

	expected := []byte{
		0,
		byte(OP_ADDB_I), 64, 0, 0, 0, 0, 0, 0, 0, 10,
		byte(OP_MODB_I), 64, 0, 0, 0, 0, 0, 0, 0, 7,
		byte(OP_XIT), 64, 0, 0, 0, 0, 0, 0, 0,
	}
	assert.Equal(expected, image)
}

func TestAssemble_Sizes(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source string
		size   int
	}){
		{"nop", 1},
		{"ret", 1},
		{"xit", 9},
		{"xit &100", 9},
		{"addb &100 1", 10},
		{"addb &100 &200", 17},
		{"adds &100 1", 11},
		{"addl &100 1", 13},
		{"addw &100 1", 17},
		{"xorb ._zero 0xff", 10},
		{"cpyl &100 1.5", 13},
		{"cpyw &100 1.5", 17},
		{"cpab &100 &200", 17},
		{"addf &100 &200", 17},
		{"muld &100 &200", 17},
		{"jmp &100", 9},
		{"jit &100 &200", 17},
		{"cal &100", 9},
		{"alp &100", 9},
		{"frp &100", 9},
		{"asy", 1},
		{"ext", 1},
		{"pshb 1", 2},
		{"pshl 1", 5},
		{"pshw &100", 9},
		{"popl &100", 9},
		{"datb 1 2 3", 3},
		{`datb "hi" 0`, 3},
		{"dats 1", 2},
		{"datl 1.5", 4},
		{"datw ._zero 1", 16},
	}

	for _, entry := range table {
		image, err := Assemble(entry.source)
		assert.NoError(err, entry.source)
		assert.Equal(1+entry.size, len(image), entry.source)
	}
}

func TestAssemble_SizeSum(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"cpyb &200 250",
		"addb &200 &208",
		"pshw 9",
		"popw &216",
		"addd &200 &208",
		"xit &200",
	}

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		return
	}

	size := 0
	for _, op := range prog.Opcodes {
		assert.Equal(op.Code.Size(), len(op.Bytes))
		size += op.Code.Size()
	}
	assert.Equal(1+size, len(prog.Binary()))
}

func TestAssembler_Labels(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".start:",
		"  nop",
		".loop",
		"  addb &100 1",
		"  jmp .loop",
		".end: xit",
		"  datw .start .end",
	}

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		return
	}

	assert.Equal(uint64(65), asm.Label[".start"])
	assert.Equal(uint64(66), asm.Label[".loop"])
	assert.Equal(uint64(85), asm.Label[".end"])

	assert.Equal(5, len(prog.Opcodes))
	jmp := prog.Opcodes[2]
	assert.Equal(5, jmp.LineNo)
	assert.Equal(uint64(76), jmp.Addr)
	assert.Equal([]string{"jmp", ".loop"}, jmp.Words)
	assert.Equal(MakeCode(OP_JMP, 66), *jmp.Code)

	data := prog.Opcodes[4]
	assert.Nil(data.Code)
	assert.Equal([]byte{65, 0, 0, 0, 0, 0, 0, 0, 85, 0, 0, 0, 0, 0, 0, 0}, data.Bytes)
}

func TestAssembler_LabelDuplicate(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(".a\nnop\n.a\nxit"))
	assert.Nil(prog)
	assert.ErrorIs(err, ErrLabelDuplicate(".a"))

	var syntax *ErrSyntax
	assert.True(errors.As(err, &syntax))
	if syntax != nil {
		assert.Equal(3, syntax.LineNo)
		assert.Equal(1, syntax.Column)
	}

	// The built-in label is reserved.
	_, err = asm.Parse(strings.NewReader("._zero: nop"))
	assert.ErrorIs(err, ErrLabelDuplicate(ZERO_LABEL))
}

func TestAssembler_LabelMissing(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader("nop\njmp .nowhere\nxit"))
	assert.Nil(prog)
	assert.ErrorIs(err, ErrLabelMissing(".nowhere"))

	var syntax *ErrSyntax
	assert.True(errors.As(err, &syntax))
	if syntax != nil {
		assert.Equal(2, syntax.LineNo)
		assert.Equal(5, syntax.Column)
		assert.Equal("jmp .nowhere", syntax.Text)
	}
}

func TestAssembler_ErrorColumn(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source string
		column int
	}){
		{"  bogus &1", 3},
		{"addb \"s\" 1", 6},
		{"cpyb &1   \"s\"", 11},
		{".x: jit .x  .nowhere", 13},
		{".x ret 1", 4},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(entry.source))

		var syntax *ErrSyntax
		assert.True(errors.As(err, &syntax), entry.source)
		if syntax != nil {
			assert.Equal(1, syntax.LineNo, entry.source)
			assert.Equal(entry.column, syntax.Column, entry.source)
		}
	}
}

func TestAssembler_MnemonicCase(t *testing.T) {
	assert := assert.New(t)

	lower, err := Assemble("addb ._zero 10\nxit")
	assert.NoError(err)

	upper, err := Assemble("ADDB ._zero 10\nXIT")
	assert.NoError(err)
	assert.Equal(lower, upper)
}

func TestAssembler_ShiftCount(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source string
		count  uint64
	}){
		{"shrb &200 7", 7},
		{"shrb &200 256", 0xff},
		{"shrb &200 -1", 0xff},
		{"shls &200 0x10000", 0xffff},
		{"shlw &200 1000", 1000},
		{"addb &200 256", 256},
	}

	for _, entry := range table {
		asm := &Assembler{}
		prog, err := asm.Parse(strings.NewReader(entry.source))
		assert.NoError(err, entry.source)
		if err != nil {
			continue
		}
		assert.Equal(entry.count, prog.Opcodes[0].Code.Args[1], entry.source)
	}
}

func TestAssembler_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source string
		err    error
	}){
		{"foo &1", ErrMnemonicUnknown("foo")},
		{"addb &1", ErrOpcodeValueMissing},
		{"jit &1", ErrOpcodeValueMissing},
		{"ret 1", ErrOpcodeExtraArgs},
		{"xit &1 &2", ErrOpcodeExtraArgs},
		{"datb", ErrOpcodeValueMissing},
		{"nop\n@", ErrCharUnexpected('@')},
	}

	for _, entry := range table {
		asm := &Assembler{}
		prog, err := asm.Parse(strings.NewReader(entry.source))
		assert.Nil(prog, entry.source)
		assert.ErrorIs(err, entry.err, entry.source)
	}
}

func TestAssembler_OperandKind(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source string
		index  int
		kind   ValueKind
	}){
		{`addb "x" 1`, 0, VALUE_STRING},
		{"addb 1 1", 0, VALUE_SIGNED},
		{"addb &1 1.5", 1, VALUE_FLOAT},
		{`addb &1 "x"`, 1, VALUE_STRING},
		{"cpyb &1 1.5", 1, VALUE_FLOAT},
		{"addf &1 1", 1, VALUE_SIGNED},
		{"cpaw &1 1", 1, VALUE_SIGNED},
		{"jmp 100", 0, VALUE_SIGNED},
		{"jit &1 0", 1, VALUE_SIGNED},
		{"xit 0", 0, VALUE_SIGNED},
		{"popb 3", 0, VALUE_SIGNED},
		{`pshb "x"`, 0, VALUE_STRING},
		{`dats "x"`, 0, VALUE_STRING},
		{"datb .label", 0, VALUE_LABEL},
		{"datb 1.5", 0, VALUE_FLOAT},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(entry.source))

		var kind ErrOperandKind
		assert.True(errors.As(err, &kind), entry.source)
		assert.Equal(entry.index, kind.Index, entry.source)
		assert.Equal(entry.kind, kind.Kind, entry.source)
	}
}

func TestAssembler_Literals(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"cpyb &200 -1",
		"cpys &200 0x12345",
		"cpyl &200 1.5",
		"cpyw &200 1.5",
		"pshs -2",
	}

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		return
	}

	assert.Equal(byte(0xff), prog.Opcodes[0].Bytes[9])
	assert.Equal([]byte{0x45, 0x23}, prog.Opcodes[1].Bytes[9:])
	assert.Equal(uint64(math.Float32bits(1.5)), prog.Opcodes[2].Code.Args[1])
	assert.Equal(math.Float64bits(1.5), prog.Opcodes[3].Code.Args[1])
	assert.Equal([]byte{byte(OP_PSHS_I), 0xfe, 0xff}, prog.Opcodes[4].Bytes)
	assert.Equal(OP_CPYL_I, prog.Opcodes[2].Code.Op)
}

func TestAssembler_Variants(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source string
		op     Op
	}){
		{"addb &1 1", OP_ADDB_I},
		{"addb &1 &2", OP_ADDB_P},
		{"addb &1 .x", OP_ADDB_P},
		{"shlw &1 3", OP_SHLW_I},
		{"cpyl &1 &2", OP_CPYL_P},
		{"pshw .x", OP_PSHW_P},
		{"pshw 1", OP_PSHW_I},
		{"subd &1 &2", OP_SUBD},
	}

	for _, entry := range table {
		asm := &Assembler{}
		prog, err := asm.Parse(strings.NewReader(".x\n" + entry.source))
		assert.NoError(err, entry.source)
		if err != nil {
			continue
		}
		assert.Equal(entry.op, prog.Opcodes[0].Code.Op, entry.source)
	}
}

func TestAssembler_Predefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BASE", 0x100)
	asm.Predefine("COUNT", 3)

	prog, err := asm.Parse(strings.NewReader("cpyb &$(BASE + 1) $(COUNT * 2)\ncpyw &$(FAST_SIZE) $(LINENO)"))
	assert.NoError(err)
	if err != nil {
		return
	}

	assert.Equal([]uint64{0x101, 6}, prog.Opcodes[0].Code.Args)
	assert.Equal([]uint64{memory.FAST_SIZE, 2}, prog.Opcodes[1].Code.Args)

	names := map[string]uint64{}
	for name, value := range asm.Defines() {
		names[name] = value
	}
	assert.Equal(uint64(0x100), names["BASE"])
	assert.Equal(uint64(memory.PAGE_SIZE), names["PAGE_SIZE"])
}
