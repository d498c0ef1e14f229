package pipeline

// ReturnAddressStack is the predictor's 32-entry circular return-address
// stack. Push writes the call's return address (decrementing the pointer
// first, so the slot it just wrote is what the next Pop reads); Pop reads
// the current top and then advances the pointer past it.
type ReturnAddressStack struct {
	entries []uint32
	top     uint8
}

// NewReturnAddressStack returns an empty stack with the given entry count.
func NewReturnAddressStack(size int) *ReturnAddressStack {
	return &ReturnAddressStack{entries: make([]uint32, size)}
}

// Pointer returns the stack's current top-of-stack index.
func (r *ReturnAddressStack) Pointer() uint8 { return r.top }

// SetPointer restores the stack pointer, used by misprediction recovery to
// rewind to a snapshot taken at fetch time. Entry contents are not rewound:
// a sufficiently deep wrong-path call sequence can overwrite slots the
// correct path will eventually read again, the same bounded corruption a
// real hardware RAS of fixed depth accepts.
func (r *ReturnAddressStack) SetPointer(p uint8) { r.top = p }

// Push records addr as a call's return address.
func (r *ReturnAddressStack) Push(addr uint32) {
	r.top = uint8((int(r.top) - 1 + len(r.entries)) % len(r.entries))
	r.entries[r.top] = addr
}

// Pop returns the most recently pushed return address not yet popped.
func (r *ReturnAddressStack) Pop() uint32 {
	addr := r.entries[r.top]
	r.top = uint8((int(r.top) + 1) % len(r.entries))
	return addr
}

// Reset empties the stack.
func (r *ReturnAddressStack) Reset() {
	r.top = 0
	for i := range r.entries {
		r.entries[i] = 0
	}
}
