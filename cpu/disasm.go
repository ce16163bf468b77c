package cpu

import (
	"errors"
	"fmt"
	"io"

	"github.com/ezrec/mvm/memory"
)

// Disassemble decodes the instruction at addr of an image loaded at
// IMAGE_BASE, and returns the address of the following instruction.
func Disassemble(image []byte, addr uint64) (text string, next uint64, err error) {
	if addr < memory.IMAGE_BASE || addr-memory.IMAGE_BASE >= uint64(len(image)) {
		err = errors.Join(ErrOpcodeTruncated, memory.ErrAddress(addr))
		return
	}

	code, err := DecodeCode(image[addr-memory.IMAGE_BASE:])
	if err != nil {
		return
	}

	text = code.String()
	next = addr + uint64(code.Size())

	return
}

// DisassembleAll writes a listing of every instruction in an image.
// Bytes that do not decode are listed as data.
func DisassembleAll(image []byte, w io.Writer) (err error) {
	end := uint64(memory.IMAGE_BASE + len(image))

	for addr := uint64(memory.PROGRAM_BASE); addr < end; {
		text, next, dis_err := Disassemble(image, addr)
		if dis_err != nil {
			text = fmt.Sprintf("datb %d", image[addr-memory.IMAGE_BASE])
			next = addr + 1
		}

		_, err = fmt.Fprintf(w, "%04x: %v\n", addr, text)
		if err != nil {
			return
		}

		addr = next
	}

	return
}
