package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oomips/sim/insts"
)

var _ = Describe("Insts package", func() {
	It("has a zero Instruction that decodes to invalid", func() {
		var i insts.Instruction
		Expect(i.Valid).To(BeFalse())
		Expect(i.Op).To(Equal(insts.OpUnknown))
	})

	It("has a Decoder type", func() {
		decoder := insts.NewDecoder()
		Expect(decoder).ToNot(BeNil())
	})

	It("gives a decoded BEQ a non-None BranchKind", func() {
		decoder := insts.NewDecoder()
		word := encodeI(004, 1, 2, 4) // BEQ
		inst := decoder.Decode(word, 0)
		Expect(inst.Branch).ToNot(Equal(insts.BranchNone))
	})
})
