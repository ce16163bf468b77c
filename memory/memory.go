// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package memory

import (
	"encoding/binary"
	"errors"
	"iter"
	"log"
	"maps"
	"math"
)

const (
	KB = 1024

	FAST_SIZE    = 32 * KB        // Size of the fast region.
	PAGE_SIZE    = 4 * KB         // Size of an allocated page.
	PAGE_SHIFT   = 12             // log2(PAGE_SIZE)
	FRAME_SIZE   = 64             // Addresses 1..FRAME_SIZE-1 are frame-relative.
	ADDRESS_SIZE = 8              // Size of an encoded address.
	IMAGE_BASE   = FRAME_SIZE     // Load address of the image's reserved exit cell.
	PROGRAM_BASE = IMAGE_BASE + 1 // First instruction of a loaded image.

	STACK_TOP   = FAST_SIZE - ADDRESS_SIZE                           // Initial stack pointer.
	STACK_FLOOR = STACK_TOP - STACK_LIMIT*ADDRESS_SIZE - FRAME_SIZE // Images must end below.
)

var _memory_defines = map[string]uint64{
	"FAST_SIZE":    FAST_SIZE,
	"PAGE_SIZE":    PAGE_SIZE,
	"FRAME_SIZE":   FRAME_SIZE,
	"IMAGE_BASE":   IMAGE_BASE,
	"PROGRAM_BASE": PROGRAM_BASE,
	"STACK_TOP":    STACK_TOP,
	"STACK_LIMIT":  STACK_LIMIT,
}

// Scalar is the set of fixed width values that can be stored in memory.
type Scalar interface {
	uint8 | uint16 | uint32 | uint64 | int8 | int16 | int32 | int64 | float32 | float64
}

// Memory is the address space owned by a single virtual machine.
type Memory struct {
	Verbose bool // Set to log page management.

	fast [FAST_SIZE]byte
	page [](*[PAGE_SIZE]byte)
	sp   uint64
}

// NewMemory creates an empty address space.
func NewMemory() (m *Memory) {
	m = &Memory{}
	m.Reset()

	return
}

// Defines returns the address space layout constants.
func Defines() iter.Seq2[string, uint64] {
	return maps.All(_memory_defines)
}

// Reset zeros the fast region, drops all pages and empties the return stack.
func (m *Memory) Reset() {
	clear(m.fast[:])
	clear(m.page)
	m.page = m.page[:0]
	m.sp = STACK_TOP
}

// Load resets the address space and copies the image to IMAGE_BASE.
func (m *Memory) Load(image []byte) (err error) {
	if IMAGE_BASE+len(image) > STACK_FLOOR {
		err = errors.Join(ErrImageSize, ErrAddress(IMAGE_BASE+len(image)))
		return
	}

	m.Reset()
	copy(m.fast[IMAGE_BASE:], image)

	return
}

// Pages returns the number of page slots, allocated or not.
func (m *Memory) Pages() int {
	return len(m.page)
}

// AllocPage allocates a zeroed page and returns its address.
// The first free slot is reused before the page table is extended.
func (m *Memory) AllocPage() (addr uint64) {
	n := 0
	for ; n < len(m.page); n++ {
		if m.page[n] == nil {
			break
		}
	}

	if n == len(m.page) {
		m.page = append(m.page, nil)
	}
	m.page[n] = &[PAGE_SIZE]byte{}

	addr = FAST_SIZE + uint64(n)*PAGE_SIZE

	if m.Verbose {
		log.Print(f("memory: alloc page %d at 0x%x", n, addr))
	}

	return
}

// FreePage releases the page at addr.
func (m *Memory) FreePage(addr uint64) (err error) {
	if addr < FAST_SIZE {
		err = errors.Join(ErrPageFree, ErrAddress(addr))
		return
	}

	offset := addr - FAST_SIZE
	if offset&(PAGE_SIZE-1) != 0 {
		err = errors.Join(ErrPageAlign, ErrAddress(addr))
		return
	}

	n := offset >> PAGE_SHIFT
	if n >= uint64(len(m.page)) || m.page[n] == nil {
		err = errors.Join(ErrPageFree, ErrAddress(addr))
		return
	}

	m.page[n] = nil

	if m.Verbose {
		log.Print(f("memory: free page %d at 0x%x", n, addr))
	}

	return
}

// linear resolves frame-relative addresses against the stack pointer.
func (m *Memory) linear(addr uint64) (linear uint64, err error) {
	switch {
	case addr == 0:
		err = ErrAddressNull
	case addr < FRAME_SIZE:
		linear = m.sp - addr
	default:
		linear = addr
	}

	return
}

// block returns the storage from a linear address to the end of its
// region or page.
func (m *Memory) block(linear uint64) (data []byte, err error) {
	if linear < FAST_SIZE {
		data = m.fast[linear:]
		return
	}

	offset := linear - FAST_SIZE
	n := offset >> PAGE_SHIFT
	if n >= uint64(len(m.page)) || m.page[n] == nil {
		err = errors.Join(ErrPageMissing, ErrAddress(linear))
		return
	}

	data = m.page[n][offset&(PAGE_SIZE-1):]

	return
}

// access walks the storage backing len(buf) bytes at addr.
func (m *Memory) access(addr uint64, size int, fn func(data []byte) int) (err error) {
	linear, err := m.linear(addr)
	if err != nil {
		return
	}

	for size > 0 {
		var data []byte
		data, err = m.block(linear)
		if err != nil {
			return
		}
		if len(data) > size {
			data = data[:size]
		}
		n := fn(data)
		size -= n
		linear += uint64(n)
	}

	return
}

// ReadBytes fills buf from the memory at addr.
func (m *Memory) ReadBytes(addr uint64, buf []byte) (err error) {
	return m.access(addr, len(buf), func(data []byte) int {
		n := copy(buf, data)
		buf = buf[n:]
		return n
	})
}

// WriteBytes copies buf to the memory at addr.
func (m *Memory) WriteBytes(addr uint64, buf []byte) (err error) {
	return m.access(addr, len(buf), func(data []byte) int {
		n := copy(data, buf)
		buf = buf[n:]
		return n
	})
}

// Read returns the size byte little-endian unsigned value at addr.
func (m *Memory) Read(addr uint64, size int) (value uint64, err error) {
	var buf [8]byte
	err = m.ReadBytes(addr, buf[:size])
	if err != nil {
		return
	}

	value = binary.LittleEndian.Uint64(buf[:])

	return
}

// Write stores the low size bytes of value at addr, little-endian.
func (m *Memory) Write(addr uint64, size int, value uint64) (err error) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], value)

	return m.WriteBytes(addr, buf[:size])
}

// SizeOf returns the number of bytes a Scalar occupies in memory.
func SizeOf[T Scalar]() int {
	var value T
	switch any(value).(type) {
	case uint8, int8:
		return 1
	case uint16, int16:
		return 2
	case uint32, int32, float32:
		return 4
	default:
		return 8
	}
}

// Encode packs a Scalar as little-endian bytes.
func Encode[T Scalar](value T) (buf []byte) {
	var bits uint64
	switch v := any(value).(type) {
	case uint8:
		bits = uint64(v)
	case uint16:
		bits = uint64(v)
	case uint32:
		bits = uint64(v)
	case uint64:
		bits = v
	case int8:
		bits = uint64(v)
	case int16:
		bits = uint64(v)
	case int32:
		bits = uint64(v)
	case int64:
		bits = uint64(v)
	case float32:
		bits = uint64(math.Float32bits(v))
	case float64:
		bits = math.Float64bits(v)
	}

	buf = binary.LittleEndian.AppendUint64(nil, bits)

	return buf[:SizeOf[T]()]
}

// Decode unpacks a little-endian Scalar. buf must hold SizeOf[T]() bytes.
func Decode[T Scalar](buf []byte) (value T) {
	var raw [8]byte
	copy(raw[:], buf[:SizeOf[T]()])
	bits := binary.LittleEndian.Uint64(raw[:])

	switch p := any(&value).(type) {
	case *uint8:
		*p = uint8(bits)
	case *uint16:
		*p = uint16(bits)
	case *uint32:
		*p = uint32(bits)
	case *uint64:
		*p = bits
	case *int8:
		*p = int8(bits)
	case *int16:
		*p = int16(bits)
	case *int32:
		*p = int32(bits)
	case *int64:
		*p = int64(bits)
	case *float32:
		*p = math.Float32frombits(uint32(bits))
	case *float64:
		*p = math.Float64frombits(bits)
	}

	return
}

// Get reads a Scalar at addr.
func Get[T Scalar](m *Memory, addr uint64) (value T, err error) {
	var buf [8]byte
	size := SizeOf[T]()

	err = m.ReadBytes(addr, buf[:size])
	if err != nil {
		return
	}

	value = Decode[T](buf[:size])

	return
}

// Set writes a Scalar at addr.
func Set[T Scalar](m *Memory, addr uint64, value T) (err error) {
	return m.WriteBytes(addr, Encode(value))
}

// GetPair reads two consecutive addresses at addr.
func (m *Memory) GetPair(addr uint64) (pair [2]uint64, err error) {
	var buf [2 * ADDRESS_SIZE]byte

	err = m.ReadBytes(addr, buf[:])
	if err != nil {
		return
	}

	pair[0] = binary.LittleEndian.Uint64(buf[:ADDRESS_SIZE])
	pair[1] = binary.LittleEndian.Uint64(buf[ADDRESS_SIZE:])

	return
}
