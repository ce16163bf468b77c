package memory

const (
	STACK_LIMIT = 512 // Maximum return stack depth, in slots.
)

// Sp returns the current stack pointer.
func (m *Memory) Sp() uint64 {
	return m.sp
}

// Depth returns the number of addresses on the return stack.
func (m *Memory) Depth() int {
	return int((STACK_TOP - m.sp) / ADDRESS_SIZE)
}

// Empty is true when nothing has been pushed.
func (m *Memory) Empty() bool {
	return m.sp == STACK_TOP
}

// Full is true when another push would exceed STACK_LIMIT.
func (m *Memory) Full() bool {
	return m.Depth() == STACK_LIMIT
}

// PushReturn stores addr at the stack pointer, then moves the pointer down
// one slot.
func (m *Memory) PushReturn(addr uint64) (err error) {
	if m.Full() {
		err = ErrStackFull
		return
	}

	err = Set(m, m.sp, addr)
	if err != nil {
		return
	}

	m.sp -= ADDRESS_SIZE

	return
}

// PopReturn moves the stack pointer up one slot and returns the address
// stored there.
func (m *Memory) PopReturn() (addr uint64, err error) {
	if m.Empty() {
		err = ErrStackEmpty
		return
	}

	m.sp += ADDRESS_SIZE
	addr, err = Get[uint64](m, m.sp)

	return
}

// Peek returns the most recently pushed address.
func (m *Memory) Peek() (addr uint64, ok bool) {
	if m.Empty() {
		return
	}

	addr, err := Get[uint64](m, m.sp+ADDRESS_SIZE)
	ok = err == nil

	return
}
