package emulator

import (
	"github.com/ezrec/mvm/translate"
)

var f = translate.From

// ErrRuntime indicates the source location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Pc     uint64
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d (pc 0x%04x) %v", err.LineNo, err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
