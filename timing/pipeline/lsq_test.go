package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oomips/sim/emu"
	"github.com/oomips/sim/timing/pipeline"
)

var _ = Describe("LoadStoreQueue", func() {
	var (
		mem *emu.Memory
		lsq *pipeline.LoadStoreQueue
		cdb *pipeline.CDB
	)

	BeforeEach(func() {
		mem = emu.NewMemory()
		lsq = pipeline.NewLoadStoreQueue(mem, 2, 2, 1) // loadLatency=1 -> 2-deep pipe
		cdb = pipeline.NewCDB()
	})

	It("reports stage 1 full once both slots are occupied", func() {
		Expect(lsq.Stage1Full()).To(BeFalse())
		lsq.Dispatch(0, false, pipeline.ReadyOperand(0), 0)
		lsq.Dispatch(1, false, pipeline.ReadyOperand(0), 0)
		Expect(lsq.Stage1Full()).To(BeTrue())
	})

	It("publishes a load's value once its address resolves and it reaches the pipe head", func() {
		mem.LoadWord(40/4, 0xCAFEBABE)
		lsq.Dispatch(5, false, pipeline.ReadyOperand(40), 0)

		for i := 0; i < 3; i++ {
			lsq.Issue(cdb, 0, 8)
		}

		var published bool
		for _, s := range cdb.Slots() {
			if s.Valid && s.Tag == 5 && s.Value == 0xCAFEBABE {
				published = true
			}
		}
		Expect(published).To(BeTrue())
	})

	It("stalls a load that aliases an older, still-resident store", func() {
		lsq.Dispatch(5, true, pipeline.ReadyOperand(40), 0)  // older store to 40
		lsq.Dispatch(6, false, pipeline.ReadyOperand(40), 0) // younger load from 40
		lsq.Issue(cdb, 5, 8)                                 // resolves both addresses into stage 2
		lsq.Issue(cdb, 5, 8)
		lsq.Issue(cdb, 5, 8)

		for _, s := range cdb.Slots() {
			Expect(s.Valid && s.Tag == 6).To(BeFalse())
		}
	})

	It("holds back a speculative MMIO read until it is the ROB head", func() {
		lsq.Dispatch(5, false, pipeline.ReadyOperand(emu.AddrRecvData), 0)
		// headTag=0, robSize=8: tag 5 is not the ROB head yet (age != 0)
		lsq.Issue(cdb, 0, 8)
		lsq.Issue(cdb, 0, 8)
		lsq.Issue(cdb, 0, 8)
		for _, s := range cdb.Slots() {
			Expect(s.Valid && s.Tag == 5).To(BeFalse())
		}

		// once tag 5 is the ROB head, the read is safe to perform
		lsq.Issue(cdb, 5, 8)
		lsq.Issue(cdb, 5, 8)
		lsq.Issue(cdb, 5, 8)
		var published bool
		for _, s := range cdb.Slots() {
			if s.Valid && s.Tag == 5 {
				published = true
			}
		}
		Expect(published).To(BeTrue())
	})

	It("resolves a store's address once dispatched, readable via StoreAddress", func() {
		lsq.Dispatch(7, true, pipeline.ReadyOperand(80), 0)
		lsq.Issue(cdb, 0, 8)
		addr, ok := lsq.StoreAddress(7)
		Expect(ok).To(BeTrue())
		Expect(addr).To(Equal(uint32(80)))
	})

	It("removes a store entry on Retire", func() {
		lsq.Dispatch(7, true, pipeline.ReadyOperand(80), 0)
		lsq.Issue(cdb, 0, 8)
		lsq.Retire(7)
		_, ok := lsq.StoreAddress(7)
		Expect(ok).To(BeFalse())
	})

	It("discards every in-flight entry and pipelined result on Flush", func() {
		lsq.Dispatch(5, false, pipeline.ReadyOperand(40), 0)
		lsq.Issue(cdb, 0, 8)
		lsq.Flush()
		Expect(lsq.Stage1Full()).To(BeFalse())
		for i := 0; i < 3; i++ {
			lsq.Issue(cdb, 0, 8)
		}
		for _, s := range cdb.Slots() {
			Expect(s.Valid).To(BeFalse())
		}
	})
})
