package pipeline

// RegCount is the size of the unified architectural register file: 32
// integer registers, 32 single-precision FP registers at offset 32, the FP
// condition code (cc0) at slot 64, with the remainder reserved/unused.
const RegCount = 128

// RegZero is the integer zero register; renaming it is a no-op and reads
// always return 0.
const RegZero = 0

// RegCC0 is the unified slot the FP-compare unit's result is written to.
const RegCC0 = 64

// FPRegBase is the unified-slot offset of FP register 0.
const FPRegBase = 32

// RegFile is the architectural register file, holding either a committed
// value or a tag pointing at the in-flight ROB entry that will produce it.
// There is no separate speculative rename table: the register file entry
// itself IS the rename, exactly as the value-or-tag Operand type models.
type RegFile struct {
	slots [RegCount]Operand
}

// NewRegFile returns a RegFile with every register ready at zero.
func NewRegFile() *RegFile {
	rf := &RegFile{}
	rf.Reset()
	return rf
}

// Reset clears every register back to ready-zero.
func (rf *RegFile) Reset() {
	for i := range rf.slots {
		rf.slots[i] = ReadyOperand(0)
	}
}

// Rename marks register r as pending production by the ROB entry at tag.
// Renaming r0 is a no-op: it is architecturally hardwired to zero.
func (rf *RegFile) Rename(r uint8, tag int) {
	if r == RegZero {
		return
	}
	rf.slots[r] = PendingOperand(tag)
}

// Read returns register r's current value-or-tag.
func (rf *RegFile) Read(r uint8) Operand {
	if r == RegZero {
		return ReadyOperand(0)
	}
	return rf.slots[r]
}

// Restore force-sets register r back to a specific value-or-tag, used only
// to undo a rename during misprediction recovery.
func (rf *RegFile) Restore(r uint8, o Operand) {
	if r == RegZero {
		return
	}
	rf.slots[r] = o
}

// Commit writes value into r and resolves its pending bit, but only if r is
// still tagged to tag: a later instruction may already have renamed it to a
// newer producer, in which case this (now-stale) writeback must not clobber
// that newer rename.
func (rf *RegFile) Commit(r uint8, tag int, value uint32) {
	if r == RegZero {
		return
	}
	if !rf.slots[r].Ready && rf.slots[r].Tag == tag {
		rf.slots[r] = ReadyOperand(value)
	}
}
