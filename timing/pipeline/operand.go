// Package pipeline implements the out-of-order execution engine: the
// reorder buffer and register renaming table, the common data bus and
// snoop network, the typed reservation stations, the two-stage load/store
// queue, the branch/return-address predictor, and the top-level per-cycle
// machine that wires them together.
package pipeline

// Operand is the value-or-tag discriminated union threaded through the
// register file, ROB, reservation stations, and load/store queue: it is
// either Ready with a value, or pending on the ROB entry identified by Tag.
type Operand struct {
	Ready bool
	Value uint32
	Tag   int
}

// ReadyOperand returns an already-resolved operand.
func ReadyOperand(v uint32) Operand {
	return Operand{Ready: true, Value: v}
}

// PendingOperand returns an operand waiting on the ROB entry at tag.
func PendingOperand(tag int) Operand {
	return Operand{Tag: tag}
}
