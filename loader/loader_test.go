package loader_test

import (
	"bytes"
	"encoding/binary"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oomips/sim/emu"
	"github.com/oomips/sim/loader"
)

func bigEndianWords(words ...uint32) []byte {
	buf := new(bytes.Buffer)
	for _, w := range words {
		_ = binary.Write(buf, binary.BigEndian, w)
	}
	return buf.Bytes()
}

var _ = Describe("Loader", func() {
	var mem *emu.Memory

	BeforeEach(func() {
		mem = emu.NewMemory()
	})

	It("loads words up to the sentinel and stops before storing it", func() {
		image := bigEndianWords(0x00000001, 0x00000002, loader.Sentinel, 0xDEADBEEF)
		n, err := loader.Load(bytes.NewReader(image), mem)

		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(2))
		v, ok := mem.ReadWord(0)
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(uint32(0x00000001)))
		v, ok = mem.ReadWord(4)
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(uint32(0x00000002)))
	})

	It("appends trailing zero words after the loaded image", func() {
		image := bigEndianWords(0xCAFEBABE, loader.Sentinel)
		n, err := loader.Load(bytes.NewReader(image), mem)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(1))

		v, ok := mem.ReadWord(4)
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(uint32(0)))
	})

	It("accepts a stream that ends at EOF with no sentinel", func() {
		image := bigEndianWords(0x11111111, 0x22222222)
		n, err := loader.Load(bytes.NewReader(image), mem)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(2))
	})

	It("leaves memory beyond the trailing zero words at the sentinel fill value", func() {
		image := bigEndianWords(loader.Sentinel)
		_, err := loader.Load(bytes.NewReader(image), mem)
		Expect(err).NotTo(HaveOccurred())

		beyond := uint32((loader.TrailingZeroWords + 1) * 4)
		v, ok := mem.ReadWord(beyond)
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(uint32(emu.Sentinel)))
	})
})
