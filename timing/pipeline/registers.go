package pipeline

import "github.com/oomips/sim/insts"

// FetchLatch holds one fetched-but-not-yet-decoded instruction word. The
// out-of-order core has no multi-stage execute pipeline to latch between,
// but fetch and decode are still separate per-cycle stages: if decode
// cannot accept a new word this cycle (the decode latch it would write into
// is still occupied from a dispatch stall), the fetched word sits here
// rather than being refetched.
type FetchLatch struct {
	Valid bool
	PC    uint32
	Word  uint32
	// Inst is decoded at fetch time (fetch needs it to drive the branch
	// predictor anyway); the decode stage's job is exposing it to dispatch
	// a cycle later, not redoing the decode.
	Inst insts.Instruction
	// Prediction is the fetch-time branch/jump guess for this word, carried
	// forward so decode/dispatch can snapshot it into the ROB entry.
	Prediction Prediction
}

// Clear empties the latch.
func (l *FetchLatch) Clear() { *l = FetchLatch{} }

// DecodeLatch holds one decoded-but-not-yet-dispatched instruction. It is
// the single point where dispatch backpressure (a full ROB, reservation
// station, or load/store queue stage) stalls the front end: decode keeps
// producing into this latch, but fetch does not advance past it until
// dispatch drains it.
type DecodeLatch struct {
	Valid      bool
	PC         uint32
	Inst       insts.Instruction
	Prediction Prediction
}

// Clear empties the latch.
func (l *DecodeLatch) Clear() { *l = DecodeLatch{} }
