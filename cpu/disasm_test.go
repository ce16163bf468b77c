package cpu

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mvm/memory"
)

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	image, err := Assemble("addb ._zero 10\nmodb ._zero 7\nxit")
	assert.NoError(err)

	text, next, err := Disassemble(image, memory.PROGRAM_BASE)
	assert.NoError(err)
	assert.Equal("addb &64 10", text)
	assert.Equal(uint64(memory.PROGRAM_BASE+10), next)

	_, _, err = Disassemble(image, 10)
	assert.ErrorIs(err, ErrOpcodeTruncated)

	_, _, err = Disassemble(image, memory.IMAGE_BASE+uint64(len(image)))
	assert.ErrorIs(err, ErrOpcodeTruncated)
}

func TestDisassembleAll(t *testing.T) {
	assert := assert.New(t)

	image, err := Assemble("addb ._zero 10\nmodb ._zero 7\nxit\ndatb 255")
	assert.NoError(err)

	var buf bytes.Buffer
	assert.NoError(DisassembleAll(image, &buf))

	expected := "" +
		"0041: addb &64 10\n" +
		"004b: modb &64 7\n" +
		"0055: xit &64\n" +
		"005e: datb 255\n"
	assert.Equal(expected, buf.String())
}

func TestDisassemble_Reassemble(t *testing.T) {
	assert := assert.New(t)

	source := "cpyw &300 &200\njit &65 &300\npshs 513\nret"
	image, err := Assemble(source)
	assert.NoError(err)

	var buf bytes.Buffer
	addr := uint64(memory.PROGRAM_BASE)
	for addr < memory.IMAGE_BASE+uint64(len(image)) {
		var text string
		text, addr, err = Disassemble(image, addr)
		assert.NoError(err)
		if err != nil {
			return
		}
		buf.WriteString(text + "\n")
	}

	again, err := Assemble(buf.String())
	assert.NoError(err)
	assert.Equal(image, again)
}
