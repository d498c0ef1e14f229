package pipeline

import (
	"fmt"
	"io"

	"github.com/oomips/sim/emu"
	"github.com/oomips/sim/fpu"
	"github.com/oomips/sim/insts"
	"github.com/oomips/sim/timing/latency"
)

// Machine is the complete out-of-order core: the unified register file, the
// reorder buffer, the common data bus, one reservation station per
// functional unit, the load/store queue, and the static branch/return
// predictor, all driven one cycle at a time by Tick.
type Machine struct {
	Mem     *emu.Memory
	Decoder *insts.Decoder
	FPU     fpu.Kernels

	RegFile *RegFile
	ROB     *ROB
	CDB     *CDB

	ALU       *Station
	Branch    *Station
	FPAdd     *Station
	FPMul     *Station
	FPCompare *Station
	FPOthers  *Station
	LSQ       *LoadStoreQueue
	Predictor *Predictor

	FetchLatch  FetchLatch
	DecodeLatch DecodeLatch

	PC     uint32
	Halted bool

	CommitLog io.Writer

	Stats Stats
}

// NewMachine builds a Machine around mem, sized and timed per config, using
// fpuMode for every floating-point kernel.
func NewMachine(mem *emu.Memory, config *latency.Config, fpuMode fpu.Mode) *Machine {
	table := latency.NewTableWithConfig(config)
	kernels := fpu.New(fpuMode)

	return &Machine{
		Mem:     mem,
		Decoder: &insts.Decoder{},
		FPU:     kernels,

		RegFile: NewRegFile(),
		ROB:     NewROB(config.ROBSize),
		CDB:     NewCDB(),

		ALU:       NewStation(latency.UnitALU, config.ALUEntries, table.Latency(latency.UnitALU), 2, aluCompute),
		Branch:    NewStation(latency.UnitBranch, config.BranchEntries, table.Latency(latency.UnitBranch), 4, branchCompute),
		FPAdd:     NewStation(latency.UnitFPAdd, config.FPAddEntries, table.Latency(latency.UnitFPAdd), 2, newFPAddCompute(kernels)),
		FPMul:     NewStation(latency.UnitFPMul, config.FPMulEntries, table.Latency(latency.UnitFPMul), 2, newFPMulCompute(kernels)),
		FPCompare: NewStation(latency.UnitFPCompare, config.FPCompareEntries, table.Latency(latency.UnitFPCompare), 2, newFPCompareCompute(kernels)),
		FPOthers:  NewStation(latency.UnitFPOthers, config.FPOthersEntries, table.Latency(latency.UnitFPOthers), 2, newFPOthersCompute(kernels)),

		LSQ:       NewLoadStoreQueue(mem, config.LSQStage1Depth, config.LSQStage2Depth, table.Latency(latency.UnitLSQ)),
		Predictor: NewPredictor(config.ReturnAddressStackSize),
	}
}

// SetPC sets the word address fetch resumes from; callers use this once
// before running, after loading a program image.
func (m *Machine) SetPC(pc uint32) { m.PC = pc }

// Reset returns every stateful component to its power-on condition and
// rewinds the fetch PC to zero.
func (m *Machine) Reset() {
	m.RegFile.Reset()
	*m.ROB = *NewROB(m.ROB.Size())
	m.CDB.Clear()
	m.ALU.Flush()
	m.Branch.Flush()
	m.FPAdd.Flush()
	m.FPMul.Flush()
	m.FPCompare.Flush()
	m.FPOthers.Flush()
	m.LSQ.Flush()
	m.Predictor.Reset()
	m.FetchLatch.Clear()
	m.DecodeLatch.Clear()
	m.PC = 0
	m.Halted = false
	m.Stats = Stats{}
}

// Tick advances the machine by one cycle, running the serial port's clock,
// then commit, snoop, dispatch, decode, fetch, and issue in that fixed
// order. It returns a *FatalError (terminate with a nonzero exit) if commit
// reaches an undecodable instruction or a store lands outside addressable
// memory; any other returned error comes from the serial port's input
// stream. The one clean termination path carries no error at all: Halted is
// set with a nil return when a receive-status probe observes the input
// stream empty and at EOF.
func (m *Machine) Tick() error {
	if m.Halted {
		return nil
	}
	m.Stats.Cycles++

	if err := m.Mem.Serial.Tick(); err != nil {
		return err
	}

	if err := m.commitStage(); err != nil {
		if _, fatal := err.(*FatalError); fatal {
			m.Halted = true
		}
		return err
	}

	m.snoopStage()

	stall := m.dispatchStage()
	m.Stats.RecordStall(stall)

	m.decodeStage()
	m.fetchStage()
	m.issueStage()

	return nil
}

// Run ticks the machine until Halted is set or an error (including a
// *FatalError) occurs.
func (m *Machine) Run() error {
	for !m.Halted {
		if err := m.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// RunCycles ticks the machine up to n times, stopping early if Halted is
// set or an error occurs.
func (m *Machine) RunCycles(n uint64) error {
	for i := uint64(0); i < n && !m.Halted; i++ {
		if err := m.Tick(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) commitStage() error {
	if m.ROB.Empty() {
		return nil
	}
	tag := m.ROB.HeadTag()
	head := m.ROB.Entry(tag)

	if !head.DecodeSuccess {
		m.Stats.DecodeFailures++
		return &FatalError{PC: head.PC, Reason: "undecodable instruction reached commit"}
	}

	if head.IsStore {
		if !head.Val.Ready {
			return nil
		}
		addr, ok := m.LSQ.StoreAddress(tag)
		if !ok {
			return nil
		}
		if err := m.Mem.WriteWord(addr, head.Val.Value); err != nil {
			return &FatalError{PC: head.PC, Reason: err.Error()}
		}
		m.LSQ.Retire(tag)
		m.logCommit(tag, head)
		m.ROB.Retire()
		m.Stats.Instructions++
		return nil
	}

	if head.BranchType != insts.BranchNone {
		if !head.BranchTarget.Ready {
			return nil
		}
		actual := head.BranchTarget.Value
		m.RegFile.Commit(head.SetReg, tag, head.Val.Value)
		mispredicted := actual != head.PredictedBranch
		m.Predictor.Update(!mispredicted)
		m.logCommit(tag, head)
		if mispredicted {
			m.logRefetch()
		}
		m.ROB.Retire()
		m.Stats.Instructions++
		if mispredicted {
			m.recoverFromMisprediction(tag, actual)
		}
		return nil
	}

	if head.SetReg != RegZero && !head.Val.Ready {
		return nil
	}
	m.RegFile.Commit(head.SetReg, tag, head.Val.Value)
	m.logCommit(tag, head)
	m.ROB.Retire()
	m.Stats.Instructions++
	return nil
}

// recoverFromMisprediction unwinds every rename chain broken by the
// speculative instructions following tag, then discards them from every
// component in the machine and redirects fetch to the resolved target.
func (m *Machine) recoverFromMisprediction(tag int, actualTarget uint32) {
	rasp := m.ROB.Entry(tag).Rasp

	for _, younger := range m.ROB.YoungerThan(tag) {
		e := m.ROB.Entry(younger)
		if e.SetReg == RegZero {
			continue
		}
		current := m.RegFile.Read(e.SetReg)
		if !current.Ready && current.Tag == younger {
			prev := e.PrevDest
			if older := m.ROB.Entry(prev.Tag); !prev.Ready && !older.Busy {
				prev = older.Val
			}
			m.RegFile.Restore(e.SetReg, prev)
		}
	}

	m.Stats.Mispredictions++
	m.Stats.Flushes++

	m.ROB.Flush()
	m.ALU.Flush()
	m.Branch.Flush()
	m.FPAdd.Flush()
	m.FPMul.Flush()
	m.FPCompare.Flush()
	m.FPOthers.Flush()
	m.LSQ.Flush()

	m.Predictor.RAS().SetPointer(rasp)
	m.PC = actualTarget
	m.FetchLatch.Clear()
	m.DecodeLatch.Clear()
}

// logCommit writes the committed register write, if any, to the commit
// trace. Instructions with no destination (stores, not-taken branches)
// write nothing here.
func (m *Machine) logCommit(tag int, head *ROBEntry) {
	if m.CommitLog == nil || head.SetReg == RegZero {
		return
	}
	fmt.Fprintf(m.CommitLog, "$%s <- 0x%08x\n", RegName(head.SetReg), head.Val.Value)
}

// logRefetch marks a misprediction in the commit trace, independent of
// whether the mispredicted branch itself wrote a register.
func (m *Machine) logRefetch() {
	if m.CommitLog == nil {
		return
	}
	fmt.Fprintf(m.CommitLog, "refetch\n")
}

func (m *Machine) snoopStage() {
	m.ROB.Snoop(m.CDB)
	m.ALU.Snoop(m.CDB)
	m.Branch.Snoop(m.CDB)
	m.FPAdd.Snoop(m.CDB)
	m.FPMul.Snoop(m.CDB)
	m.FPCompare.Snoop(m.CDB)
	m.FPOthers.Snoop(m.CDB)
	m.LSQ.Snoop(m.CDB)
	m.CDB.Clear()
}

func (m *Machine) dispatchStage() StallCause {
	if !m.DecodeLatch.Valid {
		return StallDecodeLatchEmpty
	}
	cause := m.dispatch(m.DecodeLatch.Inst, m.DecodeLatch.PC, m.DecodeLatch.Prediction)
	if cause == StallNone {
		m.DecodeLatch.Clear()
	}
	return cause
}

func (m *Machine) decodeStage() {
	if m.DecodeLatch.Valid || !m.FetchLatch.Valid {
		return
	}
	m.DecodeLatch = DecodeLatch{
		Valid:      true,
		PC:         m.FetchLatch.PC,
		Inst:       m.FetchLatch.Inst,
		Prediction: m.FetchLatch.Prediction,
	}
	m.FetchLatch.Clear()
}

func (m *Machine) fetchStage() {
	if m.FetchLatch.Valid {
		return
	}
	if m.PC >= emu.FetchWordLimit {
		return
	}
	word, _ := m.Mem.ReadWord(m.PC * 4)
	inst := m.Decoder.Decode(word, m.PC)
	pred := m.Predictor.Predict(m.PC, inst)

	m.FetchLatch = FetchLatch{Valid: true, PC: m.PC, Word: word, Inst: inst, Prediction: pred}
	m.PC = pred.Target
}

// issueStage drives every functional unit's result pipeline one step. A
// receive-status probe hitting end of input is the simulation's only clean
// termination condition (spec: "the next serial-status read terminates the
// simulation with success"), so it takes effect immediately, overriding
// whatever else the rest of the cycle would otherwise have done.
func (m *Machine) issueStage() {
	m.ALU.Issue(m.CDB)
	m.Branch.Issue(m.CDB)
	m.FPAdd.Issue(m.CDB)
	m.FPMul.Issue(m.CDB)
	m.FPCompare.Issue(m.CDB)
	m.FPOthers.Issue(m.CDB)
	if m.LSQ.Issue(m.CDB, m.ROB.HeadTag(), m.ROB.Size()) {
		m.Halted = true
	}
}
