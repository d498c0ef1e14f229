package pipeline

import "github.com/oomips/sim/insts"

// ROBEntry is one reorder-buffer slot. Its index in the ROB IS the tag every
// reservation station, the register file, and the load/store queue carry
// while waiting on this instruction's result.
type ROBEntry struct {
	Busy          bool
	DecodeSuccess bool
	IsStore       bool
	BranchType    insts.BranchKind

	// SetReg is the unified register-file slot this entry writes at
	// retirement, or RegZero for an instruction with no destination.
	SetReg uint8

	// Val is the instruction's result: the ALU/FP/load value for most ops,
	// or the store's data word for a store (read at dispatch per the
	// store-forwarding-not-performed rule).
	Val Operand

	// BranchTarget is the branch unit's resolved actual next PC (a word
	// address), pending on this entry's own tag until the branch issues.
	BranchTarget Operand

	// PredictedBranch is the word address the predictor guessed at fetch.
	PredictedBranch uint32

	// PC is the fetch-time word address, reported as the pc of a FatalError
	// raised when this entry reaches commit.
	PC uint32

	// Rasp is the return-address-stack pointer snapshotted at fetch, before
	// this instruction's own push/pop (if any) mutated it.
	Rasp uint8

	// PrevDest is the destination register's value-or-tag immediately
	// before this entry renamed it, used to unwind the rename chain on a
	// misprediction flush.
	PrevDest Operand
}

// ROB is the 32-entry circular reorder buffer. Top is the oldest in-flight
// instruction (the next one eligible to commit); Bottom is the next free
// slot instructions are dispatched into.
type ROB struct {
	entries []ROBEntry
	top     int
	bottom  int
	count   int
}

// NewROB returns an empty ROB with the given number of entries.
func NewROB(size int) *ROB {
	return &ROB{entries: make([]ROBEntry, size)}
}

// Size returns the ROB's entry count.
func (r *ROB) Size() int { return len(r.entries) }

// Full reports whether the ROB has no free slot for dispatch.
func (r *ROB) Full() bool { return r.count == len(r.entries) }

// Empty reports whether the ROB holds no in-flight instruction.
func (r *ROB) Empty() bool { return r.count == 0 }

// Allocate reserves the next free slot and returns its tag. The caller must
// check Full first; Allocate panics on an already-full ROB since dispatch
// logic is expected to gate on Full itself.
func (r *ROB) Allocate(e ROBEntry) int {
	if r.Full() {
		panic("pipeline: ROB allocate on a full buffer")
	}
	tag := r.bottom
	e.Busy = true
	r.entries[tag] = e
	r.bottom = (r.bottom + 1) % len(r.entries)
	r.count++
	return tag
}

// HeadTag returns the oldest in-flight entry's tag.
func (r *ROB) HeadTag() int { return r.top }

// Head returns a pointer to the oldest in-flight entry, or nil if empty.
func (r *ROB) Head() *ROBEntry {
	if r.Empty() {
		return nil
	}
	return &r.entries[r.top]
}

// Entry returns a pointer to the entry at tag, regardless of its Busy
// state; callers must check Busy/tag liveness themselves where it matters.
func (r *ROB) Entry(tag int) *ROBEntry {
	return &r.entries[tag]
}

// Retire pops the head entry, marking it no longer busy and advancing Top.
// The caller must already have committed its effect (register writeback,
// store to memory) before calling Retire.
func (r *ROB) Retire() {
	if r.Empty() {
		return
	}
	r.entries[r.top].Busy = false
	r.top = (r.top + 1) % len(r.entries)
	r.count--
}

// Flush discards every remaining in-flight entry. Retirement is strictly in
// program order, so by the time a misprediction is detected (always at the
// head, during its own commit) everything else still in the ROB is younger
// and speculative; Flush simply empties the buffer and sets Bottom equal to
// Top.
func (r *ROB) Flush() {
	for i := range r.entries {
		r.entries[i].Busy = false
	}
	r.bottom = r.top
	r.count = 0
}

// YoungerThan returns the tags of every entry dispatched after tag, ordered
// youngest-first. It is used to unwind the rename chain on a misprediction
// flush, where recovery must restore the most recently broken renames first
// before Flush discards the bookkeeping needed to do so.
func (r *ROB) YoungerThan(tag int) []int {
	size := len(r.entries)
	var tags []int
	for i := (r.bottom - 1 + size) % size; i != tag; i = (i - 1 + size) % size {
		if r.entries[i].Busy {
			tags = append(tags, i)
		}
	}
	return tags
}

// Snoop resolves Val and BranchTarget against the CDB for every busy entry.
func (r *ROB) Snoop(cdb *CDB) {
	for i := range r.entries {
		if !r.entries[i].Busy {
			continue
		}
		r.entries[i].Val = cdb.Snoop(r.entries[i].Val)
		r.entries[i].BranchTarget = cdb.Snoop(r.entries[i].BranchTarget)
	}
}
