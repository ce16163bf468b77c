package cpu

import (
	"errors"

	"github.com/ezrec/mvm/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted         = errors.New(f("cpu halted"))
	ErrTickLimit      = errors.New(f("tick limit exceeded"))
	ErrDivideByZero   = errors.New(f("divide by zero"))
	ErrOpcodeReserved = errors.New(f("opcode reserved"))

	// Instruction encoding errors
	ErrOpcodeArgs      = errors.New(f("operand count mismatch"))
	ErrOpcodeTruncated = errors.New(f("opcode truncated"))

	// Assembler errors
	ErrStringUnterminated = errors.New(f("string unterminated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrSizeMismatch       = errors.New(f("encoded size mismatch"))
)

type ErrOpcodeUnknown byte

func (eo ErrOpcodeUnknown) Error() string {
	return f("opcode 0x%02x unknown", byte(eo))
}

type ErrOpcode struct {
	Pc   uint64
	Code Code
}

func (eo ErrOpcode) Error() string {
	return f("fault at 0x%x: %v", eo.Pc, eo.Code.String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrLabelDuplicate string

func (el ErrLabelDuplicate) Error() string {
	return f("label %v duplicated", string(el))
}

type ErrMnemonicUnknown string

func (em ErrMnemonicUnknown) Error() string {
	return f("mnemonic '%v' unknown", string(em))
}

type ErrCharUnexpected rune

func (ec ErrCharUnexpected) Error() string {
	return f("unexpected character %q", rune(ec))
}

type ErrSyntax struct {
	LineNo int
	Column int
	Text   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d:%d '%v' %v", err.LineNo, err.Column, err.Text, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseAddress string

func (err ErrParseAddress) Error() string {
	return f("'%v' is not an address", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrOperandKind is an operand whose kind the instruction cannot encode.
type ErrOperandKind struct {
	Mnemonic string
	Index    int
	Kind     ValueKind
}

func (err ErrOperandKind) Error() string {
	return f("%v operand %d cannot be %v", err.Mnemonic, err.Index+1, err.Kind)
}
