package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oomips/sim/timing/latency"
	"github.com/oomips/sim/timing/pipeline"
)

var _ = Describe("Station", func() {
	var (
		cdb     *pipeline.CDB
		station *pipeline.Station
		add     = func(subOp int, operands []pipeline.Operand) uint32 {
			return operands[0].Value + operands[1].Value
		}
	)

	BeforeEach(func() {
		cdb = pipeline.NewCDB()
		station = pipeline.NewStation(latency.UnitALU, 2, 1, 2, add) // L=1 -> 2-deep pipe
	})

	It("reports full once every entry is occupied", func() {
		Expect(station.Full()).To(BeFalse())
		station.Dispatch(0, 0, []pipeline.Operand{pipeline.ReadyOperand(1), pipeline.ReadyOperand(2)})
		Expect(station.Full()).To(BeFalse())
		station.Dispatch(1, 0, []pipeline.Operand{pipeline.ReadyOperand(1), pipeline.ReadyOperand(2)})
		Expect(station.Full()).To(BeTrue())
	})

	It("refuses to dispatch into a full station", func() {
		station.Dispatch(0, 0, []pipeline.Operand{pipeline.ReadyOperand(1), pipeline.ReadyOperand(2)})
		station.Dispatch(1, 0, []pipeline.Operand{pipeline.ReadyOperand(1), pipeline.ReadyOperand(2)})
		ok := station.Dispatch(2, 0, []pipeline.Operand{pipeline.ReadyOperand(1), pipeline.ReadyOperand(2)})
		Expect(ok).To(BeFalse())
	})

	It("resolves a waiting entry's operands against the CDB then computes once ready", func() {
		station.Dispatch(5, 0, []pipeline.Operand{pipeline.ReadyOperand(10), pipeline.PendingOperand(1)})
		cdb.Publish(latency.UnitBranch, 1, 7)
		station.Snoop(cdb)
		cdb.Clear()

		// The entry computes into the pipe's tail on the first Issue, then
		// needs one shift per remaining pipe stage before it reaches the
		// head and publishes; the 2-deep pipe needs three calls total.
		station.Issue(cdb)
		station.Issue(cdb)
		station.Issue(cdb)
		slots := cdb.Slots()
		found := false
		for _, s := range slots {
			if s.Valid && s.Tag == 5 && s.Value == 17 {
				found = true
			}
		}
		Expect(found).To(BeTrue())
	})

	It("discards every waiting entry and in-flight result on Flush", func() {
		station.Dispatch(5, 0, []pipeline.Operand{pipeline.ReadyOperand(1), pipeline.ReadyOperand(2)})
		station.Issue(cdb)
		station.Flush()
		Expect(station.Full()).To(BeFalse())
		for i := 0; i < 3; i++ {
			station.Issue(cdb)
		}
		for _, s := range cdb.Slots() {
			Expect(s.Valid).To(BeFalse())
		}
	})
})
