package pipeline_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oomips/sim/benchmarks"
	"github.com/oomips/sim/emu"
	"github.com/oomips/sim/fpu"
	"github.com/oomips/sim/loader"
	"github.com/oomips/sim/timing/latency"
	"github.com/oomips/sim/timing/pipeline"
)

func newTestMachine(words ...uint32) *pipeline.Machine {
	mem := emu.NewMemory()
	_, err := loader.Load(bytes.NewReader(benchmarks.Assemble(words...)), mem)
	Expect(err).NotTo(HaveOccurred())
	return pipeline.NewMachine(mem, latency.DefaultConfig(), fpu.Native)
}

var _ = Describe("Machine", func() {
	It("halts fatally once it runs off the end of the program into the sentinel region", func() {
		m := newTestMachine(benchmarks.ADDIU(8, 0, 5))
		err := m.RunCycles(1000)
		var fatal *pipeline.FatalError
		Expect(err).To(HaveOccurred())
		Expect(err).To(BeAssignableToTypeOf(fatal))
		Expect(m.Halted).To(BeTrue())
	})

	It("commits straight-line arithmetic in program order", func() {
		m := newTestMachine(
			benchmarks.ADDIU(8, 0, 5),
			benchmarks.ADDIU(9, 0, 7),
			benchmarks.ADDU(10, 8, 9),
		)
		_ = m.RunCycles(1000)
		Expect(m.RegFile.Read(10)).To(Equal(pipeline.ReadyOperand(12)))
	})

	It("recovers a forward branch that the static predictor mispredicts", func() {
		// BEQ 0,0,+1 (always equal, forward offset -> predicted not-taken,
		// actually taken): the instruction skipped must never commit.
		m := newTestMachine(
			benchmarks.BEQ(0, 0, 1),
			benchmarks.ADDIU(8, 0, 0xDEAD), // skipped
			benchmarks.ADDIU(8, 0, 0xBEEF), // branch target
		)
		_ = m.RunCycles(1000)
		Expect(m.RegFile.Read(8)).To(Equal(pipeline.ReadyOperand(0xFFFFBEEF)))
		Expect(m.Stats.Mispredictions).To(BeNumerically(">=", uint64(1)))
	})

	It("mispredicts exactly once on a backward-branch loop's final, not-taken exit", func() {
		// word0: r8=2; word1: r8--; word2: BNE r8,r0,-2 (loop to word1).
		// Every taken iteration matches the negative-offset predict-taken
		// rule; only the final, not-taken exit iteration mispredicts.
		m := newTestMachine(
			benchmarks.ADDIU(8, 0, 2),
			benchmarks.ADDIU(8, 8, -1),
			benchmarks.BNE(8, 0, -2),
			benchmarks.ADDIU(9, 0, 1),
		)
		_ = m.RunCycles(1000)
		Expect(m.RegFile.Read(8)).To(Equal(pipeline.ReadyOperand(0)))
		Expect(m.RegFile.Read(9)).To(Equal(pipeline.ReadyOperand(1)))
		Expect(m.Stats.Mispredictions).To(Equal(uint64(1)))
	})

	It("loads back a value stored to memory once the store retires", func() {
		m := newTestMachine(
			benchmarks.ADDIU(8, 0, 0x41),
			benchmarks.SW(8, 0, 400),
			benchmarks.LW(9, 0, 400),
		)
		_ = m.RunCycles(1000)
		Expect(m.RegFile.Read(9)).To(Equal(pipeline.ReadyOperand(0x41)))
	})

	It("resets every stateful component back to empty", func() {
		m := newTestMachine(benchmarks.ADDIU(8, 0, 5))
		_ = m.RunCycles(10)
		m.Reset()
		Expect(m.Halted).To(BeFalse())
		Expect(m.PC).To(Equal(uint32(0)))
		Expect(m.ROB.Empty()).To(BeTrue())
		Expect(m.Stats.Cycles).To(Equal(uint64(0)))
	})
})
