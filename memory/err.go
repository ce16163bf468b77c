package memory

import (
	"errors"

	"github.com/ezrec/mvm/translate"
)

var f = translate.From

var (
	ErrAddressNull = errors.New(f("null address"))
	ErrPageMissing = errors.New(f("page missing"))
	ErrPageFree    = errors.New(f("page not allocated"))
	ErrPageAlign   = errors.New(f("page address misaligned"))
	ErrStackEmpty  = errors.New(f("return stack empty"))
	ErrStackFull   = errors.New(f("return stack full"))
	ErrImageSize   = errors.New(f("image too large"))
)

// ErrAddress identifies the address of a faulting access.
type ErrAddress uint64

func (ea ErrAddress) Error() string {
	return f("address 0x%x", uint64(ea))
}
