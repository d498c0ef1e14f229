package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oomips/sim/timing/pipeline"
)

var _ = Describe("RegFile", func() {
	var rf *pipeline.RegFile

	BeforeEach(func() {
		rf = pipeline.NewRegFile()
	})

	It("starts every register ready at zero", func() {
		op := rf.Read(5)
		Expect(op.Ready).To(BeTrue())
		Expect(op.Value).To(Equal(uint32(0)))
	})

	It("never renames the zero register", func() {
		rf.Rename(pipeline.RegZero, 7)
		op := rf.Read(pipeline.RegZero)
		Expect(op.Ready).To(BeTrue())
		Expect(op.Value).To(Equal(uint32(0)))
	})

	It("reads a renamed register as pending on its tag", func() {
		rf.Rename(3, 12)
		op := rf.Read(3)
		Expect(op.Ready).To(BeFalse())
		Expect(op.Tag).To(Equal(12))
	})

	It("commits a value only while the register is still tagged to it", func() {
		rf.Rename(3, 12)
		rf.Rename(3, 13) // a newer instruction renames it again
		rf.Commit(3, 12, 99) // the stale producer's writeback must not apply
		Expect(rf.Read(3).Ready).To(BeFalse())
		Expect(rf.Read(3).Tag).To(Equal(13))

		rf.Commit(3, 13, 42)
		Expect(rf.Read(3)).To(Equal(pipeline.ReadyOperand(42)))
	})

	It("restores a prior value-or-tag on misprediction recovery", func() {
		rf.Rename(4, 1)
		prev := rf.Read(4)
		rf.Rename(4, 2)
		rf.Restore(4, prev)
		Expect(rf.Read(4)).To(Equal(prev))
	})
})
