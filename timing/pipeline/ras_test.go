package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oomips/sim/timing/pipeline"
)

var _ = Describe("ReturnAddressStack", func() {
	var ras *pipeline.ReturnAddressStack

	BeforeEach(func() {
		ras = pipeline.NewReturnAddressStack(4)
	})

	It("pops what it most recently pushed", func() {
		ras.Push(100)
		ras.Push(200)
		Expect(ras.Pop()).To(Equal(uint32(200)))
		Expect(ras.Pop()).To(Equal(uint32(100)))
	})

	It("lets SetPointer rewind the stack without touching entry contents", func() {
		ras.Push(100)
		snapshot := ras.Pointer()
		ras.Push(200)
		ras.SetPointer(snapshot)
		Expect(ras.Pop()).To(Equal(uint32(100)))
	})
})

var _ = Describe("Predictor", func() {
	It("predicts an unconditional jump taken to its known target", func() {
		p := pipeline.NewPredictor(8)
		pred := p.Predict(10, insJump(40))
		Expect(pred.Taken).To(BeTrue())
		Expect(pred.Target).To(Equal(uint32(40)))
	})

	It("predicts a negative-offset conditional branch taken", func() {
		p := pipeline.NewPredictor(8)
		pred := p.Predict(10, insBranch(-4))
		Expect(pred.Taken).To(BeTrue())
		Expect(pred.Target).To(Equal(uint32(7)))
	})

	It("predicts a positive-offset conditional branch not taken", func() {
		p := pipeline.NewPredictor(8)
		pred := p.Predict(10, insBranch(4))
		Expect(pred.Taken).To(BeFalse())
		Expect(pred.Target).To(Equal(uint32(11)))
	})

	It("pushes the RAS on a call and pops it on the matching return", func() {
		p := pipeline.NewPredictor(8)
		p.Predict(10, insCall(100)) // JAL at word 10, pushes word 11
		pred := p.Predict(50, insReturn())
		Expect(pred.Taken).To(BeTrue())
		Expect(pred.Target).To(Equal(uint32(11)))
	})

	It("defaults an un-pushed register jump to fall-through", func() {
		p := pipeline.NewPredictor(8)
		pred := p.Predict(10, insRegJump())
		Expect(pred.Taken).To(BeFalse())
		Expect(pred.Target).To(Equal(uint32(11)))
	})

	It("tracks prediction accuracy across Update calls", func() {
		p := pipeline.NewPredictor(8)
		p.Update(true)
		p.Update(false)
		stats := p.Stats()
		Expect(stats.Predictions).To(Equal(uint64(2)))
		Expect(stats.Accuracy()).To(Equal(0.5))
	})
})
