package pipeline

import (
	"github.com/oomips/sim/emu"
	"github.com/oomips/sim/timing/latency"
)

type lsqEntry struct {
	Busy      bool
	Tag       int
	IsStore   bool
	Base      Operand
	Offset    int32
	Addr      uint32
	AddrReady bool
	Issued    bool
}

// LoadStoreQueue is the two-stage load/store queue: stage 1 holds entries
// still waiting on their base-register operand, stage 2 holds entries with
// a resolved address. Loads in stage 2 run through a shared latency
// pipeline before publishing to the CDB; stores never leave stage 2 under
// their own power; they sit there until the commit stage retires them,
// since a store's write to memory (and any MMIO side effect) must never
// happen speculatively. Store-to-load forwarding is deliberately not
// performed: a load whose address might alias an older, still-resident
// store stalls rather than reading a forwarded value.
type LoadStoreQueue struct {
	mem    *emu.Memory
	stage1 []lsqEntry
	stage2 []lsqEntry
	pipe   []PipelineSlot
}

// NewLoadStoreQueue returns an empty queue with the given stage depths and
// load latency (in cycles, from a load entering the pipe to its CDB
// publish).
func NewLoadStoreQueue(mem *emu.Memory, stage1Depth, stage2Depth int, loadLatency uint64) *LoadStoreQueue {
	return &LoadStoreQueue{
		mem:    mem,
		stage1: make([]lsqEntry, stage1Depth),
		stage2: make([]lsqEntry, stage2Depth),
		pipe:   make([]PipelineSlot, loadLatency+1),
	}
}

// Stage1Full reports whether stage 1 has no free slot for a new dispatch.
func (q *LoadStoreQueue) Stage1Full() bool {
	for _, e := range q.stage1 {
		if !e.Busy {
			return false
		}
	}
	return true
}

// Dispatch enters a new load or store into stage 1, waiting on its base
// register. offset is the sign-extended displacement added to Base.Value
// to form the effective byte address.
func (q *LoadStoreQueue) Dispatch(tag int, isStore bool, base Operand, offset int32) bool {
	for i := range q.stage1 {
		if !q.stage1[i].Busy {
			q.stage1[i] = lsqEntry{Busy: true, Tag: tag, IsStore: isStore, Base: base, Offset: offset}
			return true
		}
	}
	return false
}

// Snoop resolves every waiting entry's base-register operand against the
// CDB.
func (q *LoadStoreQueue) Snoop(cdb *CDB) {
	for i := range q.stage1 {
		if q.stage1[i].Busy {
			q.stage1[i].Base = cdb.Snoop(q.stage1[i].Base)
		}
	}
	for i := range q.stage2 {
		if q.stage2[i].Busy {
			q.stage2[i].Base = cdb.Snoop(q.stage2[i].Base)
		}
	}
}

// resolveAddresses computes addresses for stage-1 entries whose base is
// ready and promotes them into a free stage-2 slot.
func (q *LoadStoreQueue) resolveAddresses() {
	for i := range q.stage1 {
		e := &q.stage1[i]
		if !e.Busy || !e.Base.Ready {
			continue
		}
		addr := uint32(int32(e.Base.Value) + e.Offset)
		for j := range q.stage2 {
			if q.stage2[j].Busy {
				continue
			}
			q.stage2[j] = lsqEntry{Busy: true, Tag: e.Tag, IsStore: e.IsStore, Addr: addr, AddrReady: true}
			*e = lsqEntry{}
			break
		}
	}
}

// age returns tag's distance behind headTag in ROB program order, used to
// decide whether one in-flight memory op is older than another.
func age(tag, headTag, robSize int) int {
	d := tag - headTag
	if d < 0 {
		d += robSize
	}
	return d
}

// olderStoreAliases reports whether any busy store entry older than
// (tag, addr) either has an unresolved address (must conservatively assume
// alias) or resolves to the same word address.
func (q *LoadStoreQueue) olderStoreAliases(tag int, addr uint32, headTag, robSize int) bool {
	check := func(e lsqEntry) bool {
		if !e.Busy || !e.IsStore {
			return false
		}
		if age(e.Tag, headTag, robSize) >= age(tag, headTag, robSize) {
			return false
		}
		return !e.AddrReady || e.Addr == addr
	}
	for _, e := range q.stage1 {
		if check(e) {
			return true
		}
	}
	for _, e := range q.stage2 {
		if check(e) {
			return true
		}
	}
	return false
}

// Issue resolves stage-1 addresses, admits at most one ready, alias-clear
// load into the latency pipeline, and shifts the pipeline, publishing any
// result that fell off the end onto the CDB. It reports true if the load it
// admitted this cycle is the clean-termination signal: a receive-status
// probe reading the serial port once the input stream is empty and at EOF.
func (q *LoadStoreQueue) Issue(cdb *CDB, headTag, robSize int) bool {
	q.resolveAddresses()

	out := q.pipe[0]
	copy(q.pipe, q.pipe[1:])
	q.pipe[len(q.pipe)-1] = PipelineSlot{}
	if out.Busy {
		cdb.Publish(latency.UnitLSQ, out.Tag, out.Value)
	}

	for i := range q.stage2 {
		e := &q.stage2[i]
		if !e.Busy || e.IsStore || e.Issued || !e.AddrReady {
			continue
		}
		if q.olderStoreAliases(e.Tag, e.Addr, headTag, robSize) {
			continue
		}
		// A memory-mapped read can have a side effect (draining the UART
		// receive FIFO, or ending the simulation), so it must never fire on
		// a speculative path: admit it only once it is the ROB head, the
		// oldest in-flight instruction in the machine, i.e. it cannot be
		// undone by a later misprediction.
		if emu.IsMMIO(e.Addr) && age(e.Tag, headTag, robSize) != 0 {
			continue
		}
		halt := e.Addr == emu.AddrRecvStatus && q.mem.Serial.Halt()
		value, _ := q.mem.ReadWord(e.Addr)
		q.pipe[len(q.pipe)-1] = PipelineSlot{Busy: true, Tag: e.Tag, Value: value}
		*e = lsqEntry{}
		return halt
	}
	return false
}

// StoreAddress returns the resolved address for a store entry at tag, or
// ok=false if it has not yet reached stage 2 with a resolved address.
func (q *LoadStoreQueue) StoreAddress(tag int) (addr uint32, ok bool) {
	for _, e := range q.stage2 {
		if e.Busy && e.IsStore && e.Tag == tag && e.AddrReady {
			return e.Addr, true
		}
	}
	return 0, false
}

// Retire removes the store entry at tag, called once the commit stage has
// performed its write to memory.
func (q *LoadStoreQueue) Retire(tag int) {
	for i := range q.stage2 {
		if q.stage2[i].Busy && q.stage2[i].IsStore && q.stage2[i].Tag == tag {
			q.stage2[i] = lsqEntry{}
			return
		}
	}
}

// Flush discards every in-flight entry and in-flight load result: anything
// still resident in the queue at flush time is younger than the retiring
// branch and therefore speculative.
func (q *LoadStoreQueue) Flush() {
	for i := range q.stage1 {
		q.stage1[i] = lsqEntry{}
	}
	for i := range q.stage2 {
		q.stage2[i] = lsqEntry{}
	}
	for i := range q.pipe {
		q.pipe[i] = PipelineSlot{}
	}
}
