package latency_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oomips/sim/insts"
	"github.com/oomips/sim/timing/latency"
)

var _ = Describe("Latency", func() {
	var table *latency.Table

	BeforeEach(func() {
		table = latency.NewTable()
	})

	Describe("default configuration", func() {
		It("matches the fixed ALU/branch/FP unit instantiation", func() {
			c := table.Config()
			Expect(c.ALULatency).To(Equal(uint64(1)))
			Expect(c.BranchLatency).To(Equal(uint64(1)))
			Expect(c.FPAddLatency).To(Equal(uint64(2)))
			Expect(c.FPMulLatency).To(Equal(uint64(2)))
			Expect(c.FPCompareLatency).To(Equal(uint64(1)))
			Expect(c.FPOthersLatency).To(Equal(uint64(7)))
			Expect(c.LoadLatency).To(Equal(uint64(3)))
		})

		It("sizes the ROB, queues, and RAS per the fixed instantiation", func() {
			c := table.Config()
			Expect(c.ROBSize).To(Equal(32))
			Expect(c.LSQStage1Depth).To(Equal(2))
			Expect(c.LSQStage2Depth).To(Equal(2))
			Expect(c.ReturnAddressStackSize).To(Equal(32))
			Expect(c.BranchEntries).To(Equal(2))
		})
	})

	Describe("UnitFor", func() {
		It("routes ALU ops to UnitALU", func() {
			Expect(latency.UnitFor(insts.OpADD)).To(Equal(latency.UnitALU))
			Expect(latency.UnitFor(insts.OpSLL)).To(Equal(latency.UnitALU))
		})

		It("routes JR/JALR and conditional branches to UnitBranch", func() {
			Expect(latency.UnitFor(insts.OpJR)).To(Equal(latency.UnitBranch))
			Expect(latency.UnitFor(insts.OpBEQ)).To(Equal(latency.UnitBranch))
			Expect(latency.UnitFor(insts.OpBC1T)).To(Equal(latency.UnitBranch))
		})

		It("routes MFC1/MTC1 to UnitFPAdd alongside ADD.S/SUB.S", func() {
			Expect(latency.UnitFor(insts.OpMFC1)).To(Equal(latency.UnitFPAdd))
			Expect(latency.UnitFor(insts.OpMTC1)).To(Equal(latency.UnitFPAdd))
			Expect(latency.UnitFor(insts.OpFADD)).To(Equal(latency.UnitFPAdd))
		})

		It("routes divide/sqrt/conversions to UnitFPOthers", func() {
			Expect(latency.UnitFor(insts.OpFDIV)).To(Equal(latency.UnitFPOthers))
			Expect(latency.UnitFor(insts.OpFSQRT)).To(Equal(latency.UnitFPOthers))
			Expect(latency.UnitFor(insts.OpCVTWS)).To(Equal(latency.UnitFPOthers))
		})

		It("routes loads and stores, integer and FP, to UnitLSQ", func() {
			Expect(latency.UnitFor(insts.OpLW)).To(Equal(latency.UnitLSQ))
			Expect(latency.UnitFor(insts.OpSWC1)).To(Equal(latency.UnitLSQ))
		})

		It("has no unit for J/JAL, which resolve at dispatch", func() {
			Expect(latency.UnitFor(insts.OpJ)).To(Equal(latency.UnitNone))
			Expect(latency.UnitFor(insts.OpJAL)).To(Equal(latency.UnitNone))
		})
	})

	Describe("GetLatency", func() {
		It("returns the FP-others latency for a decoded square root", func() {
			inst := &insts.Instruction{Op: insts.OpFSQRT}
			Expect(table.GetLatency(inst)).To(Equal(uint64(7)))
		})

		It("returns 1 for a nil instruction", func() {
			Expect(table.GetLatency(nil)).To(Equal(uint64(1)))
		})
	})

	Describe("Validate", func() {
		It("rejects a zero latency", func() {
			c := latency.DefaultConfig()
			c.LoadLatency = 0
			Expect(c.Validate()).To(HaveOccurred())
		})

		It("rejects zero geometry", func() {
			c := latency.DefaultConfig()
			c.ROBSize = 0
			Expect(c.Validate()).To(HaveOccurred())
		})

		It("accepts the defaults", func() {
			Expect(latency.DefaultConfig().Validate()).NotTo(HaveOccurred())
		})
	})

	Describe("Clone", func() {
		It("produces an independent copy", func() {
			c := latency.DefaultConfig()
			clone := c.Clone()
			clone.ALULatency = 99
			Expect(c.ALULatency).To(Equal(uint64(1)))
		})
	})
})
