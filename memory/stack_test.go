package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()
	assert.True(m.Empty())
	assert.False(m.Full())

	assert.NoError(m.PushReturn(0x12345678))
	assert.False(m.Empty())
	assert.Equal(1, m.Depth())
	assert.Equal(uint64(STACK_TOP-ADDRESS_SIZE), m.Sp())

	value, err := Get[uint64](m, STACK_TOP)
	assert.NoError(err)
	assert.Equal(uint64(0x12345678), value)
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()
	assert.NoError(m.PushReturn(0x12345678))
	assert.NoError(m.PushReturn(0xABCDEF01))

	val, err := m.PopReturn()
	assert.NoError(err)
	assert.Equal(uint64(0xABCDEF01), val)
	assert.Equal(1, m.Depth())

	val, err = m.PopReturn()
	assert.NoError(err)
	assert.Equal(uint64(0x12345678), val)
	assert.Equal(0, m.Depth())
	assert.Equal(uint64(STACK_TOP), m.Sp())
}

func TestStack_Pop_Empty(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()
	val, err := m.PopReturn()
	assert.ErrorIs(err, ErrStackEmpty)
	assert.Equal(uint64(0), val)
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()
	_, ok := m.Peek()
	assert.False(ok)

	assert.NoError(m.PushReturn(0x12345678))
	assert.NoError(m.PushReturn(0xABCDEF01))

	val, ok := m.Peek()
	assert.True(ok)
	assert.Equal(uint64(0xABCDEF01), val)
	assert.Equal(2, m.Depth())
}

func TestStack_Capacity(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()

	for i := 0; i < STACK_LIMIT; i++ {
		assert.False(m.Full())
		assert.NoError(m.PushReturn(uint64(i)))
	}

	assert.True(m.Full())
	assert.ErrorIs(m.PushReturn(0), ErrStackFull)
	assert.Equal(STACK_LIMIT, m.Depth())

	m.Reset()
	assert.True(m.Empty())
}
