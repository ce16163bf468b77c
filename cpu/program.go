package cpu

import (
	"cmp"
	"fmt"
	"io"
	"iter"
	"maps"
	"slices"
	"strings"
)

// Opcode is the assembled form of a single source command.
type Opcode struct {
	LineNo int      // Source line number.
	Addr   uint64   // Load address of the first byte.
	Words  []string // Source words.
	Code   *Code    // Decoded instruction, nil for data.
	Bytes  []byte   // Encoded bytes.
}

// Program is the listing of an assembled source.
type Program struct {
	Opcodes []Opcode
	Label   map[string]uint64
}

// Binary returns the image: the reserved exit cell followed by every
// encoding in program order.
func (prog *Program) Binary() (image []byte) {
	image = []byte{0}
	for _, op := range prog.Opcodes {
		image = append(image, op.Bytes...)
	}

	return
}

// Debug returns the opcode whose bytes contain addr.
func (prog *Program) Debug(addr uint64) (op *Opcode, ok bool) {
	n, found := slices.BinarySearchFunc(prog.Opcodes, addr, func(op Opcode, addr uint64) int {
		switch {
		case addr < op.Addr:
			return 1
		case addr >= op.Addr+uint64(len(op.Bytes)):
			return -1
		}
		return 0
	})
	if !found {
		return
	}

	op = &prog.Opcodes[n]
	ok = true

	return
}

// Labels returns the labels in address order.
func (prog *Program) Labels() iter.Seq2[string, uint64] {
	return func(yield func(string, uint64) bool) {
		names := slices.SortedFunc(maps.Keys(prog.Label), func(a, b string) int {
			return cmp.Or(cmp.Compare(prog.Label[a], prog.Label[b]), strings.Compare(a, b))
		})
		for _, name := range names {
			if !yield(name, prog.Label[name]) {
				return
			}
		}
	}
}

// Listing writes the address, encoding and source of each opcode.
func (prog *Program) Listing(w io.Writer) (err error) {
	labels := map[uint64][]string{}
	for name, addr := range prog.Labels() {
		labels[addr] = append(labels[addr], name)
	}

	for _, op := range prog.Opcodes {
		for _, name := range labels[op.Addr] {
			_, err = fmt.Fprintf(w, "%s:\n", name)
			if err != nil {
				return
			}
		}
		_, err = fmt.Fprintf(w, "%04x: %-36x %4d: %s\n", op.Addr, op.Bytes, op.LineNo, strings.Join(op.Words, " "))
		if err != nil {
			return
		}
	}

	return
}
