package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oomips/sim/timing/latency"
	"github.com/oomips/sim/timing/pipeline"
)

var _ = Describe("ROB", func() {
	var rob *pipeline.ROB

	BeforeEach(func() {
		rob = pipeline.NewROB(4)
	})

	It("starts empty, not full", func() {
		Expect(rob.Empty()).To(BeTrue())
		Expect(rob.Full()).To(BeFalse())
	})

	It("allocates tags in order and reports full once capacity is reached", func() {
		for i := 0; i < 4; i++ {
			Expect(rob.Full()).To(BeFalse())
			rob.Allocate(pipeline.ROBEntry{DecodeSuccess: true})
		}
		Expect(rob.Full()).To(BeTrue())
	})

	It("retires in FIFO order", func() {
		t0 := rob.Allocate(pipeline.ROBEntry{DecodeSuccess: true, PC: 10})
		rob.Allocate(pipeline.ROBEntry{DecodeSuccess: true, PC: 11})
		Expect(rob.HeadTag()).To(Equal(t0))
		Expect(rob.Head().PC).To(Equal(uint32(10)))
		rob.Retire()
		Expect(rob.Head().PC).To(Equal(uint32(11)))
	})

	It("reports every entry dispatched after a tag, youngest first", func() {
		t0 := rob.Allocate(pipeline.ROBEntry{DecodeSuccess: true})
		t1 := rob.Allocate(pipeline.ROBEntry{DecodeSuccess: true})
		t2 := rob.Allocate(pipeline.ROBEntry{DecodeSuccess: true})
		Expect(rob.YoungerThan(t0)).To(Equal([]int{t2, t1}))
	})

	It("empties on Flush and lets Allocate resume immediately after", func() {
		rob.Allocate(pipeline.ROBEntry{DecodeSuccess: true})
		rob.Allocate(pipeline.ROBEntry{DecodeSuccess: true})
		rob.Flush()
		Expect(rob.Empty()).To(BeTrue())
		Expect(rob.Full()).To(BeFalse())
		tag := rob.Allocate(pipeline.ROBEntry{DecodeSuccess: true, PC: 99})
		Expect(rob.Entry(tag).PC).To(Equal(uint32(99)))
	})

	It("resolves Val and BranchTarget against the CDB on Snoop", func() {
		cdb := pipeline.NewCDB()
		tag := rob.Allocate(pipeline.ROBEntry{DecodeSuccess: true, Val: pipeline.PendingOperand(0)})
		cdb.Publish(latency.UnitALU, tag, 55)
		rob.Snoop(cdb)
		Expect(rob.Entry(tag).Val).To(Equal(pipeline.ReadyOperand(55)))
	})
})
