package pipeline

import "github.com/oomips/sim/timing/latency"

// Compute evaluates a reservation station's function once every operand is
// ready, returning the 32-bit result placed on the CDB.
type Compute func(subOp int, operands []Operand) uint32

type stationEntry struct {
	Busy     bool
	Tag      int
	SubOp    int
	Operands []Operand
}

func (e *stationEntry) ready() bool {
	for _, o := range e.Operands {
		if !o.Ready {
			return false
		}
	}
	return true
}

// PipelineSlot is one stage of a reservation station's internal result
// pipeline: a computed (tag, value) pair in flight toward the CDB.
type PipelineSlot struct {
	Busy  bool
	Tag   int
	Value uint32
}

// Station is a generic typed reservation station: a small in-order queue of
// waiting operations plus an L+1-deep result pipeline that gives the unit
// its fixed latency. Queue entries stay compacted toward index 0 so the
// oldest busy entry is always the first one scanned, giving oldest-ready
// issue priority without an explicit age counter.
type Station struct {
	unit         latency.Unit
	entries      []stationEntry
	pipe         []PipelineSlot
	operandCount int
	compute      Compute
}

// NewStation returns a Station with the given entry count, result-pipeline
// depth (the unit's latency L, giving an L+1-slot pipe), per-entry operand
// count, and compute function.
func NewStation(unit latency.Unit, entries int, latencyCycles uint64, operandCount int, compute Compute) *Station {
	s := &Station{
		unit:         unit,
		entries:      make([]stationEntry, entries),
		pipe:         make([]PipelineSlot, latencyCycles+1),
		operandCount: operandCount,
		compute:      compute,
	}
	for i := range s.entries {
		s.entries[i].Operands = make([]Operand, operandCount)
	}
	return s
}

// Full reports whether every entry is occupied. Entries compact toward
// index 0, so the queue is full exactly when its last slot is busy.
func (s *Station) Full() bool {
	return s.entries[len(s.entries)-1].Busy
}

func (s *Station) busyCount() int {
	for i := range s.entries {
		if !s.entries[i].Busy {
			return i
		}
	}
	return len(s.entries)
}

// Dispatch appends a new waiting operation, reporting false if the station
// was full (the caller is expected to have checked Full before committing
// to dispatching this cycle's instruction at all).
func (s *Station) Dispatch(tag int, subOp int, operands []Operand) bool {
	if s.Full() {
		return false
	}
	idx := s.busyCount()
	e := &s.entries[idx]
	e.Busy = true
	e.Tag = tag
	e.SubOp = subOp
	copy(e.Operands, operands)
	return true
}

// Snoop resolves every waiting entry's operands against the CDB.
func (s *Station) Snoop(cdb *CDB) {
	for i := range s.entries {
		if !s.entries[i].Busy {
			continue
		}
		for j := range s.entries[i].Operands {
			s.entries[i].Operands[j] = cdb.Snoop(s.entries[i].Operands[j])
		}
	}
}

// Issue runs one cycle of the unit's pipeline: the result due this cycle
// falls off the pipe's head and is published to the CDB, the pipe shifts
// down, and the oldest ready-and-busy entry (if any) is computed and placed
// into the now-empty tail, then removed from the waiting queue.
func (s *Station) Issue(cdb *CDB) {
	out := s.pipe[0]
	copy(s.pipe, s.pipe[1:])
	s.pipe[len(s.pipe)-1] = PipelineSlot{}
	if out.Busy {
		cdb.Publish(s.unit, out.Tag, out.Value)
	}

	idx := -1
	for i := range s.entries {
		if s.entries[i].Busy && s.entries[i].ready() {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	e := s.entries[idx]
	result := s.compute(e.SubOp, e.Operands)
	s.pipe[len(s.pipe)-1] = PipelineSlot{Busy: true, Tag: e.Tag, Value: result}
	s.compact(idx)
}

func (s *Station) compact(idx int) {
	copy(s.entries[idx:], s.entries[idx+1:])
	last := len(s.entries) - 1
	s.entries[last] = stationEntry{Operands: make([]Operand, s.operandCount)}
}

// Flush discards every waiting entry and in-flight pipeline result. Called
// on a misprediction recovery: anything still queued in a reservation
// station at that point is, by construction, younger than the retiring
// branch and therefore speculative.
func (s *Station) Flush() {
	for i := range s.entries {
		s.entries[i] = stationEntry{Operands: make([]Operand, s.operandCount)}
	}
	for i := range s.pipe {
		s.pipe[i] = PipelineSlot{}
	}
}
